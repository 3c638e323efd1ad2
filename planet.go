package sky

import (
	"math"

	"github.com/pkg/errors"
)

// Planet is one of the major planets, positioned by a heliocentric theory of date.
type Planet struct {
	SolarSystemBody
	source HeliocentricSource
}

// NewPlanet returns a planet positioned by src.
func NewPlanet(k Kind, src HeliocentricSource) (*Planet, error) {
	if !k.IsMajorPlanet() || k == KindEarth {
		return nil, errors.Wrapf(ErrUnknownBody, "%s is not a planet seen from the Earth", k)
	}
	return &Planet{SolarSystemBody: newSolarSystemBody(k.String(), k), source: src}, nil
}

func (p *Planet) heliocentric(jd float64) EclipticPosition {
	lon, lat, r := p.source.Heliocentric(jd)
	return EclipticPosition{Rad(lon), Rad(lat), r}
}

// Geocentric implements Body. The heliocentric position is taken once more at the
// time the light left the planet, a single light-time iteration.
func (p *Planet) Geocentric(num *Numbers, sys *SolarSystem) error {
	if p.source == nil {
		return errors.Wrapf(ErrNoData, "no theory for %s", p.name)
	}
	if err := sys.Update(num); err != nil {
		return err
	}
	jd := num.JD()
	earth := sys.EarthHeliocentric().vector()
	helio := p.heliocentric(jd)
	delta := norm(sub(helio.vector(), earth))
	helio = p.heliocentric(jd - lightTimeDaysPerAU*delta)

	p.helio = helio
	p.rsun = helio.R
	p.setGeocentric(sub(helio.vector(), earth))
	p.setFromEclipticOfDate(num, sys.Sun())
	return nil
}

// setFromEclipticOfDate converts the geocentric ecliptic position, referred to the
// mean equinox of date, to the catalogue and apparent places.
func (b *SolarSystemBody) setFromEclipticOfDate(num *Numbers, sun *Sun) {
	b.SetFromEcliptic(num.MeanObliquity(), b.geo.Lon, b.geo.Lat)
	j2000 := b.Deprecess(num, J2000)
	b.RA0, b.Dec0 = j2000.RA, j2000.Dec
	b.ApparentCoord(J2000, num.JD(), sun)
}

// FindMagnitude implements Body with the V band phase laws of each planet.
func (p *Planet) FindMagnitude(num *Numbers) {
	param := 5 * math.Log10(p.rsun*p.rearth)
	phase := p.phase
	f1 := phase / 100
	mag := 30.0
	switch p.kind {
	case KindMercury:
		if phase > 150 {
			f1 = 1.5
		}
		mag = -0.36 + param + 3.8*f1 - 2.73*f1*f1 + 2*f1*f1*f1
	case KindVenus:
		mag = -4.29 + param + 0.09*f1 + 2.39*f1*f1 - 0.65*f1*f1*f1
	case KindMars:
		mag = -1.52 + param + 0.016*phase
	case KindJupiter:
		mag = -9.25 + param + 0.005*phase
	case KindSaturn:
		mag = -8.88 + param + 0.044*phase + saturnRings(num.JulianCenturies(), p.RA, p.Dec)
	case KindUranus:
		mag = -7.19 + param + 0.0028*phase
	case KindNeptune:
		mag = -6.87 + param
	}
	p.magnitude = mag
}

// saturnRings returns the brightening by the rings, from the sine of the angle
// between the line of sight and the ring plane.
func saturnRings(T float64, ra, dec Angle) float64 {
	a0 := (40.66 - 4.695*T) * deg2rad
	d0 := (83.52 + 0.403*T) * deg2rad
	sinDec, cosDec := dec.SinCos()
	sinx := math.Abs(-math.Cos(d0)*cosDec*math.Cos(a0-ra.Radians()) - math.Sin(d0)*sinDec)
	return -2.6*sinx + 1.25*sinx*sinx
}
