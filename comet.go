package sky

import (
	"math"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// SmallBodyInfo is the catalogue data of a comet or an asteroid that the position
// does not depend on. Zero values mean unknown.
type SmallBodyInfo struct {
	EarthMOID      float64 // AU
	Albedo         float64
	DiameterKm     float64
	Dimensions     string
	NEO            bool
	OrbitClass     string
	OrbitID        string
	PeriodYears    float64
	RotationPeriod float64 // hours
}

// Comet is a comet on a heliocentric orbit referred to J2000.
type Comet struct {
	keplerian
	Info SmallBodyInfo

	m1, m2, k1, k2 float64
	uidPart        uint64

	nucleusSize, comaSize, tailSize float64
}

// NewComet returns the comet called name (its designation, e.g. "1P/Halley" or
// "C/1995 O1 (Hale-Bopp)") with perihelion distance q (AU), eccentricity e, inclination
// i, argument of perihelion ω and longitude of the ascending node Ω. tp encodes the
// perihelion passage as YYYYMMDD.dddd (TT). m1, k1 are the total magnitude parameters
// and m2, k2 the nuclear ones.
func NewComet(name string, q, e float64, i, ω, Ω Angle, tp float64, m1, m2, k1, k2 float64) (*Comet, error) {
	o, err := NewOrbit(q, e, i, Ω, ω, perihelionJD(tp))
	if err != nil {
		return nil, errors.Wrapf(err, "comet %s", name)
	}
	c := &Comet{m1: m1, m2: m2, k1: k1, k2: k2, uidPart: cometUIDPart(name)}
	c.keplerian = keplerian{SolarSystemBody: newSolarSystemBody(name, KindComet), orbit: o}
	return c, nil
}

// perihelionJD converts a date written YYYYMMDD.dddd to a Julian Day.
func perihelionJD(tp float64) float64 {
	ymd := int(tp)
	return CalendarToJD(ymd/10000, (ymd%10000)/100, float64(ymd%100)+tp-float64(ymd))
}

// Geocentric implements Body.
func (c *Comet) Geocentric(num *Numbers, sys *SolarSystem) error {
	if err := c.geocentric(num, sys); err != nil {
		return err
	}
	c.findPhysicalParameters()
	return nil
}

// findPhysicalParameters estimates the sizes of the nucleus, coma and tail from the
// absolute magnitude and the distance to the Sun (Kresák). The coma is taken as the
// physical size.
func (c *Comet) findPhysicalParameters() {
	r := c.rsun
	c.nucleusSize = math.Pow(10, 2.1-0.2*c.m1)
	mH := c.m1 + c.k1*math.Log10(r)
	l0 := math.Pow(10, -0.0075*mH*mH-0.19*mH+2.10)
	d0 := math.Pow(10, -0.0033*mH*mH-0.07*mH+3.25)
	c.tailSize = l0 * (1 - math.Pow(10, -4*r)) * (1 - math.Pow(10, -2*r)) * 1e6
	c.comaSize = d0 * (1 - math.Pow(10, -2*r)) * (1 - math.Pow(10, -r)) * 1e3
	c.physicalSize = c.comaSize
}

// FindMagnitude implements Body with the total magnitude M1 + 5 log Δ + K1 log r.
func (c *Comet) FindMagnitude(*Numbers) {
	c.magnitude = c.m1 + 5*math.Log10(c.rearth) + c.k1*math.Log10(c.rsun)
}

// NuclearMagnitude returns M2 + 5 log Δ + K2 log r.
func (c *Comet) NuclearMagnitude() float64 {
	return c.m2 + 5*math.Log10(c.rearth) + c.k2*math.Log10(c.rsun)
}

// NucleusSize returns the estimated diameter of the nucleus in km.
func (c *Comet) NucleusSize() float64 { return c.nucleusSize }

// ComaSize returns the estimated diameter of the coma in km.
func (c *Comet) ComaSize() float64 { return c.comaSize }

// TailSize returns the estimated length of the tail in km.
func (c *Comet) TailSize() float64 { return c.tailSize }

// UID returns the unique identifier derived from the designation.
func (c *Comet) UID() uint64 {
	return solarSystemUID(uidComet) | c.uidPart
}

var (
	periodicDesignation    = regexp.MustCompile(`^(\d+)[PD](-([A-Z]+))?`)
	provisionalDesignation = regexp.MustCompile(`^([PCXDA])/.*\((\d{4}) ([A-Z])(\d+)(-([A-Z]+))?\)`)
	cometTypes             = map[byte]uint64{'P': 0, 'C': 1, 'X': 2, 'D': 3, 'A': 4}
)

// cometUIDPart packs a designation into the low bits of a UID. Periodic comets such
// as "12P-C" give number<<16 | fragment; provisional designations such as
// "C/2006 A7" (written within parentheses) set bit 43 and pack the type, the half
// month letter, its order, the year and the fragment. Other names give zero.
func cometUIDPart(name string) uint64 {
	if m := periodicDesignation.FindStringSubmatch(name); m != nil {
		num, _ := strconv.ParseUint(m[1], 10, 64)
		return num<<16 | letterDesigToN(m[3])
	}
	if m := provisionalDesignation.FindStringSubmatch(name); m != nil {
		year, _ := strconv.ParseUint(m[2], 10, 64)
		nHalfMonth, _ := strconv.ParseUint(m[4], 10, 64)
		return 1<<43 | cometTypes[m[1][0]]<<40 |
			letterToNum(m[3][0])<<33 |
			nHalfMonth<<28 |
			year<<16 |
			letterDesigToN(m[6])
	}
	return 0
}

// letterToNum numbers the capital letters from 1, skipping I.
func letterToNum(l byte) uint64 {
	switch {
	case l < 'A' || l > 'Z' || l == 'I':
		return 0
	case l > 'I':
		return uint64(l - 'A')
	}
	return uint64(l-'A') + 1
}

// letterDesigToN reads a letter designation such as "AZ" in base 25.
func letterDesigToN(s string) uint64 {
	var n uint64
	for i := 0; i < len(s); i++ {
		nl := letterToNum(s[i])
		if nl == 0 {
			return 0
		}
		n = n*25 + nl
	}
	return n
}
