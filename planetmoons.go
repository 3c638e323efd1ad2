package sky

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// moonCoords is the position of a satellite relative to its primary, in equatorial
// radii of the primary. A points towards the ecliptic west, B away from the Earth and
// C towards the ecliptic north. X and Y are A and C rotated so that Y points to the
// north pole of the primary, and Z is B.
type moonCoords struct {
	A, B, C float64
	X, Y, Z float64
}

// projectMoons rotates planet-centred positions onto the sky with toSky. The last
// position must be the north pole of the primary, a unit vector along Z.
func projectMoons(pos [][3]float64, toSky mat.Matrix) []moonCoords {
	abc := make([][]float64, len(pos))
	for i, p := range pos {
		abc[i] = MxV33(toSky, p[:])
	}
	pole := abc[len(abc)-1]
	sinD, cosD := math.Sincos(math.Atan2(pole[0], pole[2]))
	out := make([]moonCoords, len(pos)-1)
	for i := range out {
		a, b, c := abc[i][0], abc[i][1], abc[i][2]
		out[i] = moonCoords{
			A: a, B: b, C: c,
			X: a*cosD - c*sinD,
			Y: a*sinD + c*cosD,
			Z: b,
		}
	}
	return out
}

// skyRotation returns the rotation from the ecliptic of date to the sky frame of a
// primary seen at geocentric ecliptic longitude λ and latitude β (radians): A west,
// B away from the Earth, C north.
func skyRotation(λ, β float64) *mat.Dense {
	var r mat.Dense
	r.Mul(R1(β), R3(λ-math.Pi/2))
	return &r
}

// moonTheory computes the satellites of a primary at jd from the heliocentric
// position of the primary and the geocentric longitude and distance of the Sun.
type moonTheory func(jd float64, primary EclipticPosition, sunLon Angle, sunR float64) []moonCoords

// primaryGeometry returns the geocentric ecliptic longitude, latitude and distance
// of a primary from its heliocentric position and the geocentric Sun.
func primaryGeometry(primary EclipticPosition, sunLon Angle, sunR float64) (λ, β, Δ float64) {
	sinL, cosL := primary.Lon.SinCos()
	sinB, cosB := primary.Lat.SinCos()
	sinS, cosS := sunLon.SinCos()
	x := primary.R*cosB*cosL + sunR*cosS
	y := primary.R*cosB*sinL + sunR*sinS
	z := primary.R * sinB
	return math.Atan2(y, x), math.Atan2(z, math.Hypot(x, y)), math.Sqrt(x*x + y*y + z*z)
}

// PlanetMoon is a satellite of a major planet.
type PlanetMoon struct {
	SkyPoint
	name      string
	magnitude float64

	coords  moonCoords
	inFront bool
	trail   *Trail
}

// Name returns the name of the satellite.
func (m *PlanetMoon) Name() string { return m.name }

// Magnitude returns the visual magnitude.
func (m *PlanetMoon) Magnitude() float64 { return m.magnitude }

// XYZ returns the apparent rectangular coordinates relative to the primary in
// equatorial radii of the primary: X positive towards the west along the equator of
// the primary, Y towards its north pole and Z positive when the satellite is farther
// than the primary.
func (m *PlanetMoon) XYZ() (x, y, z float64) {
	return m.coords.X, m.coords.Y, m.coords.Z
}

// InFront reports whether the satellite is closer to the Earth than its primary.
func (m *PlanetMoon) InFront() bool { return m.inFront }

// Trail returns the trail of the satellite, nil unless enabled.
func (m *PlanetMoon) Trail() *Trail { return m.trail }

// EnableTrail starts recording the positions of the satellite.
func (m *PlanetMoon) EnableTrail() {
	if m.trail == nil {
		m.trail = NewTrail(skyConfig().MaxTrail)
	}
}

// DisableTrail stops recording and drops the trail.
func (m *PlanetMoon) DisableTrail() { m.trail = nil }

// PlanetMoons is the system of satellites of one planet.
type PlanetMoons struct {
	primary Kind
	moons   []*PlanetMoon
	theory  moonTheory
}

func newPlanetMoons(primary Kind, theory moonTheory, names []string, mags []float64) *PlanetMoons {
	pm := &PlanetMoons{primary: primary, theory: theory, moons: make([]*PlanetMoon, len(names))}
	for i, name := range names {
		pm.moons[i] = &PlanetMoon{name: name, magnitude: mags[i]}
	}
	return pm
}

// Primary returns the planet the satellites orbit.
func (pm *PlanetMoons) Primary() Kind { return pm.primary }

// Count returns the number of satellites.
func (pm *PlanetMoons) Count() int { return len(pm.moons) }

// Moon returns the i-th satellite.
func (pm *PlanetMoons) Moon(i int) *PlanetMoon { return pm.moons[i] }

// MoonNamed returns the satellite called name, nil if there is none.
func (pm *PlanetMoons) MoonNamed(name string) *PlanetMoon {
	for _, m := range pm.moons {
		if m.name == name {
			return m
		}
	}
	return nil
}

// FindPosition computes the satellites at the epoch of num. The planet must have
// been computed for that epoch, and so must the Sun.
func (pm *PlanetMoons) FindPosition(num *Numbers, planet *Planet, sun *Sun) error {
	if planet.Kind() != pm.primary {
		return errors.Wrapf(ErrUnknownBody, "%s has no satellites of %s", planet.Name(), pm.primary)
	}
	if !sun.Computed() || !sameInstant(planet.LastPrecessJD(), num.JD()) {
		return errors.Wrapf(ErrNoData, "%s not computed at JD %f", planet.Name(), num.JD())
	}
	coords := pm.theory(num.JD(), planet.Heliocentric(), sun.Ecliptic().Lon, sun.Rearth())

	// Angular radius of the primary, in degrees.
	x, _ := clamp(pm.primary.Config().PhysicalSizeKm / 2 / (planet.Rearth() * AUKm))
	ρ := math.Asin(x) * rad2deg

	// Position angle of the ecliptic north at the primary.
	var centre, north SkyPoint
	geo := planet.Ecliptic()
	centre.SetFromEcliptic(num.Obliquity(), geo.Lon, geo.Lat)
	north.SetFromEcliptic(num.Obliquity(), geo.Lon, Deg(geo.Lat.Degrees()+1))
	_, pa := centre.AngularDistancePA(&north)
	sinPA, cosPA := math.Sincos(pa * deg2rad)
	_, cosDec := planet.Dec.SinCos()

	for i, m := range pm.moons {
		c := coords[i]
		east := ρ * (-c.A*cosPA + c.C*sinPA)
		northward := ρ * (c.A*sinPA + c.C*cosPA)
		m.RA = Deg(planet.RA.Degrees() + east/cosDec).Reduce()
		m.Dec = Deg(planet.Dec.Degrees() + northward)
		m.coords = c
		m.inFront = c.Z < 0

		cat := m.SkyPoint
		j2000 := cat.CatalogueCoord(num.JD())
		m.RA0, m.Dec0 = j2000.RA, j2000.Dec
		m.lastPrecessJD = num.JD()

		if m.trail != nil {
			m.trail.Add(m.SkyPoint)
		}
	}
	return nil
}

// EquatorialToHorizontal computes the horizontal coordinates of every satellite.
func (pm *PlanetMoons) EquatorialToHorizontal(lst, lat Angle) {
	for _, m := range pm.moons {
		m.SkyPoint.EquatorialToHorizontal(lst, lat)
	}
}
