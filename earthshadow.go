package sky

import (
	"math"

	"github.com/pkg/errors"
)

// Eclipse is the immersion of the Moon in the shadow of the Earth.
type Eclipse uint8

// Eclipse types.
const (
	EclipseNone Eclipse = iota
	// EclipsePartial is any overlap that is not a full immersion.
	EclipsePartial
	EclipseFullPenumbra
	EclipseFullUmbra
)

func (e Eclipse) String() string {
	switch e {
	case EclipsePartial:
		return "partial"
	case EclipseFullPenumbra:
		return "penumbral"
	case EclipseFullUmbra:
		return "total"
	}
	return "none"
}

// atmosphereEnlargement widens the geometric shadow for the atmosphere of the Earth.
const atmosphereEnlargement = 1.02

// EarthShadow is the shadow cone of the Earth where it crosses the orbit of the Moon.
type EarthShadow struct {
	SolarSystemBody
	moon            *Moon
	umbra, penumbra float64 // angular radii, arcmin
}

// NewEarthShadow returns the shadow of the Earth at the distance of moon.
func NewEarthShadow(moon *Moon) *EarthShadow {
	return &EarthShadow{SolarSystemBody: newSolarSystemBody("Earth Shadow", KindEarthShadow), moon: moon}
}

// Moon returns the Moon the shadow is computed for.
func (s *EarthShadow) Moon() *Moon { return s.moon }

// ShouldUpdate reports whether the Moon is full enough for an eclipse to be possible.
func (s *EarthShadow) ShouldUpdate() bool {
	return s.moon != nil && s.moon.IlluminatedFraction() > 0.8
}

// Geocentric implements Body. The Moon is computed first when it is not at the epoch
// of num.
func (s *EarthShadow) Geocentric(num *Numbers, sys *SolarSystem) error {
	if s.moon == nil {
		return errors.Wrap(ErrNoData, "earth shadow without a moon")
	}
	if err := sys.Update(num); err != nil {
		return err
	}
	if !sameInstant(s.moon.LastPrecessJD(), num.JD()) {
		if err := FindPosition(s.moon, num, sys, nil); err != nil {
			return err
		}
	}
	sun := sys.Sun()
	s.RA, s.Dec = sun.RA.Add(Deg(180)).Reduce(), sun.Dec.Neg()
	s.RA0, s.Dec0 = sun.RA0.Add(Deg(180)).Reduce(), sun.Dec0.Neg()
	s.geo = EclipticPosition{sun.Ecliptic().Lon.Add(Deg(180)).Reduce(), sun.Ecliptic().Lat.Neg(), s.moon.Rearth()}
	s.rearth = s.moon.Rearth()
	s.rsun = sun.Rearth() + s.rearth
	s.helio = EclipticPosition{}

	s.findRadii(sun.Rearth())
	s.physicalSize = s.rearth * AUKm * math.Sin(2*s.penumbra/60*deg2rad)
	return nil
}

// findRadii computes the radii of the umbra and the penumbra, by similar triangles
// from the parallaxes of the Moon and the Sun and the semi-diameter of the Sun, seen
// from the Earth at sunR AU.
func (s *EarthShadow) findRadii(sunR float64) {
	πMoon := math.Asin(earthEquatorialKm / (s.rearth * AUKm))
	πSun := math.Asin(earthEquatorialKm / (sunR * AUKm))
	σSun := math.Asin(sunRadiusKm / (sunR * AUKm))
	s.umbra = atmosphereEnlargement * (πMoon + πSun - σSun) * rad2deg * 60
	s.penumbra = atmosphereEnlargement * (πMoon + πSun + σSun) * rad2deg * 60
}

// UmbraRadius returns the angular radius of the umbra in arcminutes.
func (s *EarthShadow) UmbraRadius() float64 { return s.umbra }

// PenumbraRadius returns the angular radius of the penumbra in arcminutes.
func (s *EarthShadow) PenumbraRadius() float64 { return s.penumbra }

func (s *EarthShadow) findPhase(*SolarSystem) {
	s.phase = 0
	s.illumination = 0
}

// FindMagnitude implements Body.
func (s *EarthShadow) FindMagnitude(*Numbers) {
	s.magnitude = 0
}

// EclipseType classifies the position of the Moon in the shadow, from their
// geocentric separation.
func (s *EarthShadow) EclipseType() Eclipse {
	if s.moon == nil {
		return EclipseNone
	}
	return classifyEclipse(s.separation(), s.moon.AngularSize()/2, s.umbra, s.penumbra)
}

// separation returns the geocentric angular distance between the centres of the
// shadow and the Moon, in arcminutes.
func (s *EarthShadow) separation() float64 {
	m := s.moon.Ecliptic()
	sinB1, cosB1 := s.geo.Lat.SinCos()
	sinB2, cosB2 := m.Lat.SinCos()
	dLon := m.Lon.Sub(s.geo.Lon)
	_, cosDL := dLon.SinCos()
	c, _ := clamp(sinB1*sinB2 + cosB1*cosB2*cosDL)
	return math.Acos(c) * rad2deg * 60
}

// classifyEclipse places a disc of radius r at distance d from the centre of the
// umbra and penumbra circles, all in the same unit.
func classifyEclipse(d, r, umbra, penumbra float64) Eclipse {
	switch {
	case d >= penumbra+r:
		return EclipseNone
	case d <= umbra-r:
		return EclipseFullUmbra
	case d <= penumbra-r && d >= umbra+r:
		return EclipseFullPenumbra
	}
	return EclipsePartial
}
