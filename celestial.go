package sky

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/soniakeys/meeus/v3/planetposition"

	"github.com/ChristopherRabotin/sky/vsop"
)

const (
	// earthEquatorialKm is the equatorial radius of the Earth in kilometers.
	earthEquatorialKm = 6378.14
	// sunRadiusKm is the radius of the photosphere in kilometers.
	sunRadiusKm = 696000.0
)

// Kind identifies a solar system body, or the family it belongs to.
type Kind uint8

// Body kinds. Planets are in order of distance to the Sun.
const (
	KindSun Kind = iota
	KindMoon
	KindMercury
	KindVenus
	KindEarth
	KindMars
	KindJupiter
	KindSaturn
	KindUranus
	KindNeptune
	KindPluto
	KindComet
	KindAsteroid
	KindEarthShadow
	KindPlanetMoon
)

// UID families of solar system objects, in bits 56 to 59 of a UID.
const (
	uidSolarSystem = 3
	uidBigObject   = 0
	uidAsteroid    = 1
	uidComet       = 2
)

func solarSystemUID(family uint64) uint64 {
	return uidSolarSystem<<60 | family<<56
}

// KindConfig holds what is fixed for every body of a kind.
type KindConfig struct {
	Name string
	// PhysicalSizeKm is the diameter used for the angular size; zero when it varies per body.
	PhysicalSizeKm float64
	// RingInflation multiplies the angular size when a body is drawn. Only Saturn's
	// rings make it differ from 1.
	RingInflation float64
	// MinLabelSize is the angular size, in arcminutes, below which a body is not labelled.
	MinLabelSize float64
	// UIDNumber is the low part of the UID of the major bodies.
	UIDNumber uint64
}

var kindConfigs = [...]KindConfig{
	KindSun:         {"Sun", 1392000, 1, 0, 0},
	KindMoon:        {"Moon", 3474.8, 1, 0, 10},
	KindMercury:     {"Mercury", 4879.4, 1, 0, 1},
	KindVenus:       {"Venus", 12103.6, 1, 0, 2},
	KindEarth:       {"Earth", 2 * earthEquatorialKm, 1, 0, 3},
	KindMars:        {"Mars", 6792.4, 1, 0, 4},
	KindJupiter:     {"Jupiter", 142984, 1, 0, 5},
	KindSaturn:      {"Saturn", 120536, 2.5, 0, 6},
	KindUranus:      {"Uranus", 51118, 1, 0, 7},
	KindNeptune:     {"Neptune", 49572, 1, 0, 8},
	KindPluto:       {"Pluto", 2376.6, 1, 0, 9},
	KindComet:       {"Comet", 0, 1, 0.01, 0},
	KindAsteroid:    {"Asteroid", 0, 1, 0.01, 0},
	KindEarthShadow: {"Earth Shadow", 0, 1, 0, 11},
	KindPlanetMoon:  {"Moon of a planet", 0, 1, 0, 0},
}

// Config returns the configuration of the kind.
func (k Kind) Config() KindConfig {
	if int(k) < len(kindConfigs) {
		return kindConfigs[k]
	}
	return KindConfig{Name: "Unknown", RingInflation: 1}
}

// String implements the Stringer interface.
func (k Kind) String() string {
	return k.Config().Name
}

// IsMajorPlanet reports whether the kind is one of the eight planets.
func (k Kind) IsMajorPlanet() bool {
	return k >= KindMercury && k <= KindNeptune
}

// UID returns the unique identifier of the major body of this kind.
func (k Kind) UID() uint64 {
	return solarSystemUID(uidBigObject) | k.Config().UIDNumber
}

// KindFromString returns the kind of a named major body.
func KindFromString(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sun":
		return KindSun, nil
	case "moon":
		return KindMoon, nil
	case "mercury":
		return KindMercury, nil
	case "venus":
		return KindVenus, nil
	case "earth":
		return KindEarth, nil
	case "mars":
		return KindMars, nil
	case "jupiter":
		return KindJupiter, nil
	case "saturn":
		return KindSaturn, nil
	case "uranus":
		return KindUranus, nil
	case "neptune":
		return KindNeptune, nil
	case "pluto":
		return KindPluto, nil
	case "earth shadow", "earthshadow", "shadow":
		return KindEarthShadow, nil
	default:
		return 0, errors.Wrapf(ErrUnknownBody, "undefined body '%s'", name)
	}
}

// HeliocentricSource gives the heliocentric ecliptic longitude and latitude (radians,
// mean ecliptic and equinox of date) and radius vector (AU) of a body at a Julian
// Ephemeris Day.
type HeliocentricSource interface {
	Heliocentric(jde float64) (lon, lat, r float64)
}

// seriesSource evaluates a periodic-sum table.
type seriesSource struct {
	tbl *vsop.Table
}

func (s seriesSource) Heliocentric(jde float64) (lon, lat, r float64) {
	return s.tbl.Ecliptic(JulianMillennia(jde))
}

// v87Source reads the full VSOP87 theory through meeus.
type v87Source struct {
	planet *planetposition.V87Planet
}

func (s v87Source) Heliocentric(jde float64) (lon, lat, r float64) {
	l, b, r := s.planet.Position(jde)
	return l.Rad(), b.Rad(), r
}

// loadV87 loads the VSOP87B file of a planet from dir.
func loadV87(k Kind, dir string) (HeliocentricSource, error) {
	if !k.IsMajorPlanet() {
		return nil, errors.Wrapf(ErrUnknownBody, "%s has no VSOP87 theory", k)
	}
	// meeus numbers the planets from Mercury = 0.
	planet, err := planetposition.LoadPlanetPath(int(k-KindMercury), dir)
	if err != nil {
		return nil, errors.Wrapf(ErrNoData, "could not load %s from %s: %s", k, dir, err)
	}
	return v87Source{planet}, nil
}
