// Package vsop holds periodic-sum series of the VSOP87 kind: for each of the
// heliocentric ecliptic longitude, latitude and radius, six groups of terms
// A·cos(B + C·τ), the group i being weighted by τ^i, τ in Julian millennia from J2000.
package vsop

import (
	"math"

	"github.com/pkg/errors"
)

// ErrNoData is returned when no coefficient was found for a body.
var ErrNoData = errors.New("series data not loaded")

// Term is one periodic term A·cos(B + C·τ).
type Term struct {
	A, B, C float64
}

// Series is the six power-of-time groups of one coordinate.
type Series [6][]Term

// Sum evaluates the series at τ.
func (s *Series) Sum(tau float64) float64 {
	var r, tpow float64 = 0, 1
	for _, group := range s {
		var g float64
		for _, t := range group {
			g += t.A * math.Cos(t.B+t.C*tau)
		}
		r += g * tpow
		tpow *= tau
	}
	return r
}

// Len returns the total number of terms.
func (s *Series) Len() (n int) {
	for _, group := range s {
		n += len(group)
	}
	return
}

// Table is the complete series of one body. Once loaded it is never modified and may
// be read from several goroutines.
type Table struct {
	Name          string
	Lon, Lat, Rad Series
}

// Ecliptic returns the heliocentric longitude (radians, in [0, 2π)), latitude
// (radians) and radius vector (AU) at tau Julian millennia from J2000.
func (t *Table) Ecliptic(tau float64) (lon, lat, r float64) {
	lon = math.Mod(t.Lon.Sum(tau), 2*math.Pi)
	if lon < 0 {
		lon += 2 * math.Pi
	}
	return lon, t.Lat.Sum(tau), t.Rad.Sum(tau)
}

// Empty reports whether the table has no longitude term, which no valid table lacks.
func (t *Table) Empty() bool {
	return t == nil || t.Lon.Len() == 0
}
