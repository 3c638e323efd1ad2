package sky

import (
	"math"

	"github.com/pkg/errors"
)

// Asteroid is a minor planet on an elliptic orbit given by osculating elements at an
// epoch.
type Asteroid struct {
	keplerian
	Info SmallBodyInfo

	number int
	h, g   float64
}

// NewAsteroid returns the asteroid numbered number (0 when unnumbered) whose elements
// at the Julian Day epoch are the semi-major axis a (AU), eccentricity e, inclination
// i, argument of perihelion ω, longitude of the ascending node Ω and mean anomaly M0.
// h and g are the parameters of the H-G magnitude system.
func NewAsteroid(number int, name string, epoch, a, e float64, i, ω, Ω, M0 Angle, h, g float64) (*Asteroid, error) {
	o, err := NewOrbitFromMeanAnomaly(a, e, i, Ω, ω, M0, epoch)
	if err != nil {
		return nil, errors.Wrapf(err, "asteroid %s", name)
	}
	ast := &Asteroid{number: number, h: h, g: g}
	ast.keplerian = keplerian{SolarSystemBody: newSolarSystemBody(name, KindAsteroid), orbit: o}
	return ast, nil
}

// Number returns the catalogue number, 0 when unnumbered.
func (a *Asteroid) Number() int { return a.number }

// SetDiameter sets the diameter used for the angular size.
func (a *Asteroid) SetDiameter(km float64) {
	a.Info.DiameterKm = km
	a.physicalSize = km
}

// Geocentric implements Body.
func (a *Asteroid) Geocentric(num *Numbers, sys *SolarSystem) error {
	return a.geocentric(num, sys)
}

// FindMagnitude implements Body with the H-G system (Meeus ch. 33).
func (a *Asteroid) FindMagnitude(*Numbers) {
	a.magnitude = hgMagnitude(a.h, a.g, a.rsun, a.rearth, a.phase)
}

// hgMagnitude returns the magnitude at distances r from the Sun and Δ from the
// Earth (AU) and phase angle ψ (degrees).
func hgMagnitude(h, g, r, Δ, ψ float64) float64 {
	t := math.Tan(math.Abs(ψ) * deg2rad / 2)
	φ1 := math.Exp(-3.33 * math.Pow(t, 0.63))
	φ2 := math.Exp(-1.87 * math.Pow(t, 1.22))
	return h + 5*math.Log10(r*Δ) - 2.5*math.Log10((1-g)*φ1+g*φ2)
}

// UID returns the unique identifier derived from the catalogue number.
func (a *Asteroid) UID() uint64 {
	return solarSystemUID(uidAsteroid) | uint64(a.number)
}
