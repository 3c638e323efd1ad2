package sky

import (
	"fmt"
	"math"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	eccentricityε = 5e-5
	angleε        = 5e-3 // degrees
	distanceε     = 1e-6 // AU
	// obliquityJ2000 is the mean obliquity of the ecliptic at J2000, in degrees.
	obliquityJ2000 = 23.4392911
)

// Orbit is a heliocentric conic referred to the ecliptic and equinox of J2000,
// defined by its perihelion passage.
type Orbit struct {
	q, e    float64
	i, Ω, ω Angle
	tp      float64
}

// NewOrbit returns the orbit of perihelion distance q (AU) and eccentricity e passing
// perihelion at the Julian Day tp. Any conic is accepted.
func NewOrbit(q, e float64, i, Ω, ω Angle, tp float64) (*Orbit, error) {
	if !(q > 0) || !(e >= 0) {
		return nil, errors.Wrapf(ErrOutOfRange, "q=%f e=%f", q, e)
	}
	return &Orbit{q, e, i, Ω, ω, tp}, nil
}

// NewOrbitFromMeanAnomaly returns the ellipse of semi-major axis a (AU) on which the
// body has the mean anomaly M0 at the Julian Day epoch.
func NewOrbitFromMeanAnomaly(a, e float64, i, Ω, ω, M0 Angle, epoch float64) (*Orbit, error) {
	if !(a > 0) || !(e >= 0 && e < 1) {
		return nil, errors.Wrapf(ErrOutOfRange, "a=%f e=%f is not an ellipse", a, e)
	}
	o := &Orbit{q: a * (1 - e), e: e, i: i, Ω: Ω, ω: ω}
	o.tp = epoch - reduceDeg(M0.Degrees())/o.MeanMotion()
	return o, nil
}

// Perihelion returns the perihelion distance in AU.
func (o Orbit) Perihelion() float64 { return o.q }

// Eccentricity returns the eccentricity.
func (o Orbit) Eccentricity() float64 { return o.e }

// PerihelionJD returns the Julian Day of the perihelion passage.
func (o Orbit) PerihelionJD() float64 { return o.tp }

// SemiMajorAxis returns the semi-major axis in AU, infinite for a parabola and
// negative for a hyperbola.
func (o Orbit) SemiMajorAxis() float64 {
	return o.q / (1 - o.e)
}

// Aphelion returns the aphelion distance, infinite for open orbits.
func (o Orbit) Aphelion() float64 {
	if o.e >= 1 {
		return math.Inf(1)
	}
	return o.SemiMajorAxis() * (1 + o.e)
}

// Period returns the period in days, infinite for open orbits.
func (o Orbit) Period() float64 {
	if o.e >= 1 {
		return math.Inf(1)
	}
	return siderealYearDays * math.Pow(o.SemiMajorAxis(), 1.5)
}

// MeanMotion returns the mean motion in degrees per day, zero for open orbits.
func (o Orbit) MeanMotion() float64 {
	if o.e >= 1 {
		return 0
	}
	return 360 / o.Period()
}

// Elements returns the perihelion distance, eccentricity, inclination, longitude of
// the ascending node, argument of perihelion and the perihelion passage.
func (o Orbit) Elements() (q, e float64, i, Ω, ω Angle, tp float64) {
	return o.q, o.e, o.i, o.Ω, o.ω, o.tp
}

// Anomaly returns the true anomaly and the heliocentric distance (AU) at jd. It
// reports false when the Kepler equation hit its iteration cap.
func (o Orbit) Anomaly(jd float64) (v Angle, r float64, converged bool) {
	dt := jd - o.tp
	if UsesNearParabolic(o.e) {
		vd, r := NearParabolic(dt, o.q, o.e)
		return Deg(vd), r, true
	}
	a := o.SemiMajorAxis()
	E, converged := SolveKepler(reduceDeg(o.MeanMotion()*dt), o.e)
	sinE, cosE := math.Sincos(E * deg2rad)
	xv := a * (cosE - o.e)
	yv := a * math.Sqrt(1-o.e*o.e) * sinE
	return Rad(math.Atan2(yv, xv)), math.Hypot(xv, yv), converged
}

// helioVector returns the heliocentric position at jd in AU, in ecliptic Cartesian
// coordinates of J2000.
func (o Orbit) helioVector(jd float64) ([]float64, bool) {
	v, r, converged := o.Anomaly(jd)
	sinv, cosv := v.SinCos()
	pqw := []float64{r * cosv, r * sinv, 0}
	return Rot313Vec(-o.ω.Radians(), -o.i.Radians(), -o.Ω.Radians(), pqw), converged
}

// Heliocentric returns the heliocentric ecliptic position at jd referred to J2000.
func (o Orbit) Heliocentric(jd float64) (EclipticPosition, bool) {
	v, converged := o.helioVector(jd)
	return eclipticFromVector(v), converged
}

// String implements the stringer interface.
func (o Orbit) String() string {
	return fmt.Sprintf("q=%.6f e=%.6f i=%.4f Ω=%.4f ω=%.4f Tp=%.4f", o.q, o.e, o.i.Degrees(), o.Ω.Degrees(), o.ω.Degrees(), o.tp)
}

// Equals returns whether two orbits have the same shape and orientation, the
// perihelion passage excepted.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if !scalar.EqualWithinAbs(o.q, o1.q, distanceε) {
		return false, errors.New("perihelion distance invalid")
	}
	if !scalar.EqualWithinAbs(o.e, o1.e, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if !scalar.EqualWithinAbs(o.i.Degrees(), o1.i.Degrees(), angleε) {
		return false, errors.New("inclination invalid")
	}
	if o.i.Degrees() > angleε && !scalar.EqualWithinAbs(o.Ω.DeltaAngle(o1.Ω).Degrees(), 0, angleε) {
		return false, errors.New("ascending node invalid")
	}
	if o.e > eccentricityε && !scalar.EqualWithinAbs(o.ω.DeltaAngle(o1.ω).Degrees(), 0, angleε) {
		return false, errors.New("argument of perihelion invalid")
	}
	return true, nil
}

// StrictlyEquals also compares the perihelion passage, to a minute.
func (o Orbit) StrictlyEquals(o1 Orbit) (bool, error) {
	if !scalar.EqualWithinAbs(o.tp, o1.tp, recomputeThreshold) {
		return false, errors.New("perihelion passage invalid")
	}
	return o.Equals(o1)
}

// earthEquatorialJ2000 returns the heliocentric position of the Earth, given in the
// ecliptic of date, in equatorial Cartesian coordinates of J2000.
func earthEquatorialJ2000(num *Numbers, earth EclipticPosition) []float64 {
	eq := MxV33(R1(-num.MeanObliquity().Radians()), earth.vector())
	return MxV33(num.PrecessTo2000(), eq)
}

// eclipticToEquatorialJ2000 rotates a J2000 ecliptic vector onto the J2000 equator.
func eclipticToEquatorialJ2000(v []float64) []float64 {
	return MxV33(R1(-obliquityJ2000*deg2rad), v)
}

// keplerian is the common part of the bodies moving on an Orbit.
type keplerian struct {
	SolarSystemBody
	orbit     *Orbit
	converged bool
}

// Orbit returns the orbit of the body.
func (k *keplerian) Orbit() *Orbit { return k.orbit }

// UpdateOrbit replaces the elements with a reloaded set and reports whether they
// changed. A set describing the same orbit, perihelion passage included, is
// ignored. A change clears the trail, which was drawn on the old orbit.
func (k *keplerian) UpdateOrbit(o *Orbit) bool {
	if o == nil {
		return false
	}
	if k.orbit != nil {
		same, diff := k.orbit.StrictlyEquals(*o)
		if same {
			return false
		}
		level.Debug(subsys("orbit")).Log("message", "elements changed", "body", k.name, "diff", diff)
	}
	k.orbit = o
	if k.trail != nil {
		k.trail.Clear()
	}
	return true
}

// Converged reports whether the last position was computed with a converged Kepler
// equation.
func (k *keplerian) Converged() bool { return k.converged }

// geocentric computes the place of the body on its orbit. The subtraction of the
// Earth is done in J2000 equatorial coordinates, followed by one light-time step.
func (k *keplerian) geocentric(num *Numbers, sys *SolarSystem) error {
	if k.orbit == nil {
		return errors.Wrapf(ErrNoData, "no orbit for %s", k.name)
	}
	if err := sys.Update(num); err != nil {
		return err
	}
	jd := num.JD()
	earth := earthEquatorialJ2000(num, sys.EarthHeliocentric())
	helio, _ := k.orbit.helioVector(jd)
	delta := norm(sub(eclipticToEquatorialJ2000(helio), earth))
	helio, k.converged = k.orbit.helioVector(jd - lightTimeDaysPerAU*delta)
	if !k.converged {
		keplerNotConverged.WithLabelValues(k.name).Inc()
		level.Warn(subsys("kepler")).Log("message", "Kepler equation not converged", "body", k.name, "jd", jd, "e", k.orbit.e)
	}

	k.helio = eclipticFromVector(helio)
	k.rsun = k.helio.R
	geo := sub(eclipticToEquatorialJ2000(helio), earth)
	ra, dec, _ := cartesianToSpherical(geo)
	k.RA0, k.Dec0 = Rad(ra), Rad(dec)
	ofDate := MxV33(num.PrecessFrom2000(), geo)
	k.setGeocentric(MxV33(R1(num.MeanObliquity().Radians()), ofDate))
	k.ApparentCoord(J2000, jd, sys.Sun())
	return nil
}
