package sky

import (
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/ChristopherRabotin/sky/vsop"
)

// planetKinds lists the bodies with a periodic-sum theory.
var planetKinds = []Kind{KindMercury, KindVenus, KindEarth, KindMars, KindJupiter, KindSaturn, KindUranus, KindNeptune}

// SolarSystem is what every position calculator shares for one instant: the
// heliocentric theories of the planets, the heliocentric position of the Earth and
// the Sun. It is passed explicitly to the calculators and is not safe for concurrent
// updates; the theories themselves are immutable.
type SolarSystem struct {
	sources map[Kind]HeliocentricSource
	earth   EclipticPosition
	sun     *Sun
	jd      float64
	ready   bool
}

// NewSolarSystem returns a context reading the series of cat, which must hold the Earth.
func NewSolarSystem(cat *vsop.Catalog) (*SolarSystem, error) {
	earth, err := cat.Table("Earth")
	if err != nil {
		return nil, err
	}
	s := &SolarSystem{sources: map[Kind]HeliocentricSource{KindEarth: seriesSource{earth}}, sun: NewSun()}
	for _, k := range planetKinds {
		if t, err := cat.Table(k.String()); err == nil {
			s.sources[k] = seriesSource{t}
		}
	}
	return s, nil
}

// LoadSolarSystem builds the context the configuration asks for: the full VSOP87
// theory read by meeus when VSOP87.enabled is set, otherwise the KStars-format series
// of series.directory, the Earth falling back to its embedded series.
func LoadSolarSystem() (*SolarSystem, error) {
	cfg := skyConfig()
	if cfg.VSOP87 {
		s := &SolarSystem{sources: make(map[Kind]HeliocentricSource), sun: NewSun()}
		for _, k := range planetKinds {
			src, err := loadV87(k, cfg.VSOP87Dir)
			if err != nil {
				level.Error(subsys("vsop")).Log("message", "VSOP87 theory not loaded", "body", k, "err", err)
				return nil, err
			}
			s.sources[k] = src
		}
		return s, nil
	}
	names := make([]string, len(planetKinds))
	for i, k := range planetKinds {
		names[i] = k.String()
	}
	cat, err := vsop.LoadCatalog(cfg.SeriesDir, names...)
	if err != nil {
		level.Error(subsys("vsop")).Log("message", "series not loaded", "dir", cfg.SeriesDir, "err", err)
		return nil, err
	}
	level.Info(subsys("vsop")).Log("message", "series loaded", "bodies", len(cat.Names()))
	return NewSolarSystem(cat)
}

// Source returns the heliocentric theory of a planet.
func (s *SolarSystem) Source(k Kind) (HeliocentricSource, error) {
	if src, ok := s.sources[k]; ok {
		return src, nil
	}
	return nil, errors.Wrapf(ErrNoData, "no theory for %s", k)
}

// Has reports whether the theory of a planet is loaded.
func (s *SolarSystem) Has(k Kind) bool {
	_, ok := s.sources[k]
	return ok
}

// Update computes the Earth and the Sun for the epoch of num, unless they already are.
func (s *SolarSystem) Update(num *Numbers) error {
	if s.ready && sameInstant(s.jd, num.JD()) {
		return nil
	}
	src, err := s.Source(KindEarth)
	if err != nil {
		return err
	}
	lon, lat, r := src.Heliocentric(num.JD())
	s.earth = EclipticPosition{Rad(lon), Rad(lat), r}
	s.jd = num.JD()
	s.ready = true
	if err := FindPosition(s.sun, num, s, nil); err != nil {
		s.ready = false
		return err
	}
	return nil
}

// JD returns the Julian Day of the last update.
func (s *SolarSystem) JD() float64 { return s.jd }

// EarthHeliocentric returns the heliocentric ecliptic position of the Earth at the
// last update.
func (s *SolarSystem) EarthHeliocentric() EclipticPosition { return s.earth }

// Sun returns the Sun, computed at the last update.
func (s *SolarSystem) Sun() *Sun { return s.sun }

// NewPlanet returns a major planet reading its theory from s.
func (s *SolarSystem) NewPlanet(k Kind) (*Planet, error) {
	src, err := s.Source(k)
	if err != nil {
		return nil, err
	}
	return NewPlanet(k, src)
}

// Compute updates s for the epoch of num when needed and computes b.
func (s *SolarSystem) Compute(b Body, num *Numbers, site *Site) error {
	if err := s.Update(num); err != nil {
		return err
	}
	return FindPosition(b, num, s, site)
}
