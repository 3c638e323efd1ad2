package sky

import "math"

// Elements of Pluto at J2000 referred to the J2000 ecliptic, with their rates per
// Julian century (angles in arcseconds).
const (
	plutoA0, plutoADot = 39.48168677, -0.00076912
	plutoE0, plutoEDot = 0.24880766, 0.00006465
	plutoI0, plutoIDot = 17.14175, 11.07
	plutoW0, plutoWDot = 113.76329, -94.06
	plutoN0, plutoNDot = 110.30347, -37.33
	plutoM0, plutoMDot = 14.86205, 522747.90
)

// Pluto moves on a Keplerian orbit whose elements drift linearly with time.
type Pluto struct {
	keplerian
}

// NewPluto returns Pluto.
func NewPluto() *Pluto {
	return &Pluto{keplerian{SolarSystemBody: newSolarSystemBody("Pluto", KindPluto)}}
}

// plutoOrbit returns the osculating orbit at jd.
func plutoOrbit(jd float64) *Orbit {
	T := JulianCenturies(jd)
	o, _ := NewOrbitFromMeanAnomaly(
		plutoA0+plutoADot*T,
		plutoE0+plutoEDot*T,
		Deg(plutoI0+plutoIDot*T/3600),
		Deg(plutoN0+plutoNDot*T/3600),
		Deg(plutoW0+plutoWDot*T/3600),
		Deg(plutoM0+plutoMDot*T/3600),
		jd)
	return o
}

// Geocentric implements Body.
func (p *Pluto) Geocentric(num *Numbers, sys *SolarSystem) error {
	p.orbit = plutoOrbit(num.JD())
	return p.geocentric(num, sys)
}

// FindMagnitude implements Body.
func (p *Pluto) FindMagnitude(*Numbers) {
	p.magnitude = -1.0 + 5*math.Log10(p.rsun*p.rearth)
}
