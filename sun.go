package sky

import "math"

const sunMagnitude = -26.73

// Sun is the geocentric Sun. Its position is the Earth's, reversed, at the instant the
// light left the Sun; this one light-time step accounts for the annual aberration, so
// only nutation is applied on top.
type Sun struct {
	SolarSystemBody
	computed bool
}

// NewSun returns a Sun not computed yet.
func NewSun() *Sun {
	return &Sun{SolarSystemBody: newSolarSystemBody("Sun", KindSun)}
}

// Computed reports whether a position was computed.
func (s *Sun) Computed() bool {
	return s != nil && s.computed
}

// Geocentric implements Body.
func (s *Sun) Geocentric(num *Numbers, sys *SolarSystem) error {
	src, err := sys.Source(KindEarth)
	if err != nil {
		return err
	}
	jd := num.JD()
	_, _, r := src.Heliocentric(jd)
	lon, lat, r := src.Heliocentric(jd - lightTimeDaysPerAU*r)

	s.helio = EclipticPosition{}
	s.rsun = 0
	s.geo = EclipticPosition{Rad(lon + math.Pi).Reduce(), Rad(-lat), r}
	s.rearth = r

	s.SetFromEcliptic(num.MeanObliquity(), s.geo.Lon, s.geo.Lat)
	j2000 := s.Deprecess(num, J2000)
	s.RA0, s.Dec0 = j2000.RA, j2000.Dec
	s.Nutate(num, false)
	s.computed = true
	return nil
}

func (s *Sun) findPhase(*SolarSystem) {
	s.phase = 0
	s.illumination = 1
}

// FindMagnitude implements Body.
func (s *Sun) FindMagnitude(*Numbers) {
	s.magnitude = sunMagnitude
}
