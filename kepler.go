package sky

import "math"

const (
	// keplerTolerance is the change of eccentric anomaly, in degrees, below which the
	// solution is accepted.
	keplerTolerance = 0.001
	// keplerMaxIter caps the iterations of SolveKepler.
	keplerMaxIter = 1000
	// nearParabolicEccentricity is the eccentricity beyond which the orbit is solved
	// with the near-parabolic series instead of the Kepler equation.
	nearParabolicEccentricity = 0.98
	// gaussK is the Gaussian gravitational constant.
	gaussK = 0.01720209895
	// siderealYearDays scales the period of an orbit from its semi-major axis.
	siderealYearDays = 365.2568984
)

// UsesNearParabolic reports whether an orbit of eccentricity e is solved by
// NearParabolic rather than SolveKepler.
func UsesNearParabolic(e float64) bool {
	return e > nearParabolicEccentricity
}

// SolveKepler solves M = E - e sin E for the eccentric anomaly E, both in degrees.
// It reports false when the iteration cap was hit before the correction dropped
// below 0.001°, in which case E is the last iterate.
func SolveKepler(M, e float64) (E float64, converged bool) {
	E, _, converged = solveKepler(M, e, keplerMaxIter)
	return
}

func solveKepler(M, e float64, maxIter int) (E float64, iter int, converged bool) {
	sinM, cosM := math.Sincos(M * deg2rad)
	E = M + e*rad2deg*sinM*(1+e*cosM)
	for iter = 1; iter <= maxIter; iter++ {
		E0 := E
		sinE, cosE := math.Sincos(E0 * deg2rad)
		E = E0 - (E0-e*rad2deg*sinE-M)/(1-e*cosE)
		if math.Abs(E-E0) <= keplerTolerance {
			return E, iter, true
		}
	}
	return E, maxIter, false
}

// NearParabolic returns the true anomaly (degrees) and the heliocentric distance (AU)
// of a body dt days after its perihelion passage, on an orbit of perihelion distance
// q (AU) and eccentricity e close to 1 (Landgraf's series, Meeus ch. 35).
func NearParabolic(dt, q, e float64) (v, r float64) {
	a := 0.75 * dt * gaussK * math.Sqrt((1+e)/(q*q*q))
	b := math.Sqrt(1 + a*a)
	W := math.Cbrt(b+a) - math.Cbrt(b-a)
	if W == 0 {
		return 0, q
	}
	W2 := W * W
	c := 1 + 1/W2
	f := (1 - e) / (1 + e)
	g := f / (c * c)

	a1 := 2.0/3 + 2*W2/5
	a2 := 7.0/5 + 33*W2/35 + 37*W2*W2/175
	a3 := W2 * (432.0/175 + 956*W2/1125 + 84*W2*W2/1575)
	w := W * (1 + g*c*(a1+a2*g+a3*g*g))

	v = 2 * math.Atan(w) * rad2deg
	r = q * (1 + w*w) / (1 + w*w*f)
	return
}
