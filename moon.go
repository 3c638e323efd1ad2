package sky

import (
	"math"

	"github.com/soniakeys/meeus/v3/moonposition"
)

// Moon is the Moon, positioned by the truncated ELP-2000/82 series of Meeus ch. 47.
type Moon struct {
	SolarSystemBody
}

// NewMoon returns a Moon not computed yet.
func NewMoon() *Moon {
	return &Moon{SolarSystemBody: newSolarSystemBody("Moon", KindMoon)}
}

// Geocentric implements Body. The series gives the geometric place referred to the
// mean equinox of date, so only nutation is applied.
func (m *Moon) Geocentric(num *Numbers, sys *SolarSystem) error {
	if err := sys.Update(num); err != nil {
		return err
	}
	λ, β, Δ := moonposition.Position(num.JD())
	m.geo = EclipticPosition{FromUnit(λ).Reduce(), FromUnit(β), Δ / AUKm}
	m.rearth = m.geo.R

	earth := sys.EarthHeliocentric().vector()
	geo := m.geo.vector()
	m.helio = eclipticFromVector([]float64{earth[0] + geo[0], earth[1] + geo[1], earth[2] + geo[2]})
	m.rsun = m.helio.R

	m.SetFromEcliptic(num.MeanObliquity(), m.geo.Lon, m.geo.Lat)
	j2000 := m.Deprecess(num, J2000)
	m.RA0, m.Dec0 = j2000.RA, j2000.Dec
	m.Nutate(num, false)
	return nil
}

// findPhase takes the phase as the elongation in longitude from the Sun, 0 at new
// Moon and 180 at full Moon.
func (m *Moon) findPhase(sys *SolarSystem) {
	sun := sys.Sun()
	m.phase = m.geo.Lon.Sub(sun.Ecliptic().Lon).Reduce().Degrees()
	m.illumination = (1 - math.Cos(m.phase*deg2rad)) / 2
}

// FindMagnitude implements Body from the phase angle, taken as the supplement of the
// elongation.
func (m *Moon) FindMagnitude(*Numbers) {
	ψ := math.Abs(180 - m.phase)
	m.magnitude = -12.73 + 0.026*ψ + 4e-9*ψ*ψ*ψ*ψ
}
