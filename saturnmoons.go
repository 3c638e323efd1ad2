package sky

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	saturnianNames      = []string{"Mimas", "Enceladus", "Tethys", "Dione", "Rhea", "Titan", "Hyperion", "Iapetus"}
	saturnianMagnitudes = []float64{12.9, 11.7, 10.2, 10.4, 10.0, 7.9, 14.9, 11.0}
)

// Node and inclination of the equator of Saturn on the ecliptic of B1950, in degrees.
const (
	saturnEquatorNode = 168.8112
	saturnEquatorInc  = 28.0817
)

// NewSaturnMoons returns the eight major satellites of Saturn.
func NewSaturnMoons() *PlanetMoons {
	return newPlanetMoons(KindSaturn, saturnianMoons, saturnianNames, saturnianMagnitudes)
}

// saturnianOrbit is the osculating orbit of a satellite of Saturn on the equator of
// the planet: radius vector r in equatorial radii and λ, γ and ω in degrees.
type saturnianOrbit struct {
	r, λ, γ, ω float64
}

// xyz returns the rectangular coordinates on the equator of Saturn, X towards the
// node of the equator on the ecliptic.
func (o saturnianOrbit) xyz() [3]float64 {
	u := (o.λ - o.ω) * deg2rad
	w := (o.ω - saturnEquatorNode) * deg2rad
	g := o.γ * deg2rad
	x := o.r * (math.Cos(u)*math.Cos(w) - math.Sin(u)*math.Cos(g)*math.Sin(w))
	y := o.r * (math.Sin(u)*math.Cos(w)*math.Cos(g) + math.Cos(u)*math.Sin(w))
	return [3]float64{x, y, o.r * math.Sin(u) * math.Sin(g)}
}

// saturnianEllipse refers the elliptic elements of Rhea, Titan, Hyperion and Iapetus
// (eccentricity e, mean longitude λm, longitude of pericentre p, semi-major axis a,
// node ω and inclination i on the ecliptic of B1950, angles in degrees) to the
// equator of Saturn.
func saturnianEllipse(e, λm, p, a, ω, i float64) saturnianOrbit {
	e2 := e * e
	e3 := e2 * e
	e4 := e3 * e
	e5 := e4 * e
	M := (λm - p) * deg2rad

	C := (2*e-0.25*e3+0.0520833333*e5)*math.Sin(M) + (1.25*e2-0.458333333*e4)*math.Sin(2*M) +
		(1.083333333*e3-0.671875*e5)*math.Sin(3*M) + 1.072917*e4*math.Sin(4*M) + 1.142708*e5*math.Sin(5*M)
	r := a * (1 - e2) / (1 + e*math.Cos(M+C))

	sinE, cosE := math.Sincos(saturnEquatorInc * deg2rad)
	g := (ω - saturnEquatorNode) * deg2rad
	sini, cosi := math.Sincos(i * deg2rad)
	a1 := sini * math.Sin(g)
	a2 := cosE*sini*math.Cos(g) - sinE*cosi
	u := math.Atan2(a1, a2)
	ψ := math.Atan2(sinE*math.Sin(g), cosE*sini-sinE*cosi*math.Cos(g))
	return saturnianOrbit{
		r: r,
		λ: λm + (C+u-g-ψ)*rad2deg,
		γ: math.Asin(math.Hypot(a1, a2)) * rad2deg,
		ω: reduceDeg(saturnEquatorNode + u*rad2deg),
	}
}

// saturnianMoons is the theory of the major satellites of Saturn of Meeus ch. 46, in
// equatorial radii of Saturn.
func saturnianMoons(jd float64, saturn EclipticPosition, sunLon Angle, sunR float64) []moonCoords {
	λ, β, Δ := primaryGeometry(saturn, sunLon, sunR)
	t := jd - lightTimeDaysPerAU*Δ

	t1 := t - 2411093.0
	t2 := t1 / 365.25
	t3 := (t-2433282.423)/365.25 + 1950.0
	t4 := t - 2411368.0
	t5 := t4 / 365.25
	t6 := t - 2415020.0
	t7 := t6 / 36525.0
	t8 := t6 / 365.25
	t9 := (t - 2442000.5) / 365.25
	t10 := t - 2409786.0
	t11 := t10 / 36525.0

	W0 := reduceDeg(5.095*(t3-1866.39)) * deg2rad
	W1 := reduceDeg(74.4-32.39*t2) * deg2rad
	W2 := reduceDeg(134.3-92.62*t2) * deg2rad
	W3 := reduceDeg(42.0-0.5118*t5) * deg2rad
	W4d := reduceDeg(276.59 - 0.5118*t5)
	W4 := W4d * deg2rad
	W5d := reduceDeg(267.2635 - 1222.1136*t7)
	W5 := W5d * deg2rad
	W6 := reduceDeg(175.4762-1221.5515*t7) * deg2rad
	W7 := reduceDeg(2.4891-0.002435*t7) * deg2rad
	W8 := reduceDeg(113.35-0.2597*t7) * deg2rad
	e1 := 0.05589 - 0.000346*t7

	var orbits [8]saturnianOrbit

	// Mimas
	L := reduceDeg(127.64 + 381.994497*t1 - 43.57*math.Sin(W0) - 0.720*math.Sin(3*W0) - 0.02144*math.Sin(5*W0))
	M := (L - (106.1 + 365.549*t2)) * deg2rad
	C := 2.18287*math.Sin(M) + 0.025988*math.Sin(2*M) + 0.00043*math.Sin(3*M)
	orbits[0] = saturnianOrbit{
		r: 3.06879 / (1 + 0.01905*math.Cos(M+C*deg2rad)),
		λ: reduceDeg(L + C),
		γ: 1.563,
		ω: reduceDeg(54.5 - 365.072*t2),
	}

	// Enceladus
	L = reduceDeg(200.317 + 262.7319002*t1 + 0.25667*math.Sin(W1) + 0.20883*math.Sin(W2))
	M = (L - (309.107 + 123.44121*t2)) * deg2rad
	C = 0.55577*math.Sin(M) + 0.00168*math.Sin(2*M)
	orbits[1] = saturnianOrbit{
		r: 3.94118 / (1 + 0.00485*math.Cos(M+C*deg2rad)),
		λ: reduceDeg(L + C),
		γ: 0.0262,
		ω: reduceDeg(348 - 151.95*t2),
	}

	// Tethys
	orbits[2] = saturnianOrbit{
		r: 4.880998,
		λ: reduceDeg(285.306 + 190.69791226*t1 + 2.063*math.Sin(W0) + 0.03409*math.Sin(3*W0) + 0.001015*math.Sin(5*W0)),
		γ: 1.0976,
		ω: reduceDeg(111.33 - 72.2441*t2),
	}

	// Dione
	L = reduceDeg(254.712 + 131.53493193*t1 - 0.0215*math.Sin(W1) - 0.01733*math.Sin(W2))
	M = (L - (174.8 + 30.820*t2)) * deg2rad
	C = 0.24717*math.Sin(M) + 0.00033*math.Sin(2*M)
	orbits[3] = saturnianOrbit{
		r: 6.24871 / (1 + 0.002157*math.Cos(M+C*deg2rad)),
		λ: reduceDeg(L + C),
		γ: 0.0139,
		ω: reduceDeg(232 - 30.27*t2),
	}

	// Rhea. The coefficients of W4 are 0.001, not the 0.01 printed in the book.
	pdash := (342.7 + 10.057*t2) * deg2rad
	a1 := 0.000265*math.Sin(pdash) + 0.001*math.Sin(W4)
	a2 := 0.000265*math.Cos(pdash) + 0.001*math.Cos(W4)
	N := (345 - 10.057*t2) * deg2rad
	orbits[4] = saturnianEllipse(
		math.Hypot(a1, a2),
		reduceDeg(359.244+79.69004720*t1+0.086754*math.Sin(N)),
		math.Atan2(a1, a2)*rad2deg,
		8.725924,
		168.8034+0.736936*math.Sin(N)+0.041*math.Sin(W3),
		28.0362+0.346898*math.Cos(N)+0.01930*math.Cos(W3),
	)

	// Titan
	L = 261.1582 + 22.57697855*t4 + 0.074025*math.Sin(W3)
	idash := 27.45141 + 0.295999*math.Cos(W3)
	idashrad := idash * deg2rad
	omegadash := 168.66925 + 0.628808*math.Sin(W3)
	omegadashrad := omegadash * deg2rad
	a1 = math.Sin(W7) * math.Sin(omegadashrad-W8)
	a2 = math.Cos(W7)*math.Sin(idashrad) - math.Sin(W7)*math.Cos(idashrad)*math.Cos(omegadashrad-W8)
	g0 := 102.8623 * deg2rad
	psi := math.Atan2(a1, a2)
	if a2 < 0 {
		psi += math.Pi
	}
	s := math.Hypot(a1, a2)
	g := W4d - omegadash - psi*rad2deg
	var w0 float64
	for j := 0; j < 3; j++ {
		w0 = W4d + 0.37515*(math.Sin(2*g*deg2rad)-math.Sin(2*g0))
		g = w0 - omegadash - psi*rad2deg
	}
	edash := 0.029092 + 0.00019048*(math.Cos(2*g*deg2rad)-math.Cos(2*g0))
	q := 2 * (W5d - w0) * deg2rad
	b1 := math.Sin(idashrad) * math.Sin(omegadashrad-W8)
	b2 := math.Cos(W7)*math.Sin(idashrad)*math.Cos(omegadashrad-W8) - math.Sin(W7)*math.Cos(idashrad)
	theta := math.Atan2(b1, b2) + W8
	u := 2*W5 - 2*theta + psi
	h := 0.9375*edash*edash*math.Sin(q) + 0.1875*s*s*math.Sin(2*(W5-theta))
	orbits[5] = saturnianEllipse(
		edash+0.002778797*edash*math.Cos(q),
		reduceDeg(L-0.254744*(e1*math.Sin(W6)+0.75*e1*e1*math.Sin(2*W6)+h)),
		w0+0.159215*math.Sin(q),
		20.216193,
		omegadash+0.031843*s*math.Sin(u)/math.Sin(idashrad),
		idash+0.031843*s*math.Cos(u),
	)

	// Hyperion
	eta := (92.39 + 0.5621071*t6) * deg2rad
	zeta := (148.19 - 19.18*t8) * deg2rad
	theta = (184.8 - 35.41*t9) * deg2rad
	thetadash := theta - 7.5*deg2rad
	as := (176 + 12.22*t8) * deg2rad
	bs := (8 + 24.44*t8) * deg2rad
	cs := bs + 5*deg2rad
	w0 = 69.898 - 18.67088*t8
	phi := 2 * (w0 - W5d) * deg2rad
	chi := (94.9 - 2.292*t8) * deg2rad
	a := 24.50601 - 0.08686*math.Cos(eta) - 0.00166*math.Cos(zeta+eta) + 0.00175*math.Cos(zeta-eta)
	e := 0.103458 - 0.004099*math.Cos(eta) - 0.000167*math.Cos(zeta+eta) + 0.000235*math.Cos(zeta-eta) +
		0.02303*math.Cos(zeta) - 0.00212*math.Cos(2*zeta) + 0.000151*math.Cos(3*zeta) + 0.00013*math.Cos(phi)
	p := w0 + 0.15648*math.Sin(chi) - 0.4457*math.Sin(eta) - 0.2657*math.Sin(zeta+eta) - 0.3573*math.Sin(zeta-eta) -
		12.872*math.Sin(zeta) + 1.668*math.Sin(2*zeta) - 0.2419*math.Sin(3*zeta) - 0.07*math.Sin(phi)
	λm := reduceDeg(177.047 + 16.91993829*t6 + 0.15648*math.Sin(chi) + 9.142*math.Sin(eta) + 0.007*math.Sin(2*eta) -
		0.014*math.Sin(3*eta) + 0.2275*math.Sin(zeta+eta) + 0.2112*math.Sin(zeta-eta) - 0.26*math.Sin(zeta) -
		0.0098*math.Sin(2*zeta) - 0.013*math.Sin(as) + 0.017*math.Sin(bs) - 0.0303*math.Sin(phi))
	i := 27.3347 + 0.643486*math.Cos(chi) + 0.315*math.Cos(W3) + 0.018*math.Cos(theta) - 0.018*math.Cos(cs)
	ω := 168.6812 + 1.40136*math.Cos(chi) + 0.68599*math.Sin(W3) - 0.0392*math.Sin(cs) + 0.0366*math.Sin(thetadash)
	orbits[6] = saturnianEllipse(e, λm, p, a, ω, i)

	// Iapetus
	L = reduceDeg(261.1582 + 22.57697855*t4)
	wdash := 91.796 + 0.562*t7
	psi = (4.367 - 0.195*t7) * deg2rad
	theta = 146.819 - 3.198*t7
	phid := 60.470 + 1.521*t7
	phi = phid * deg2rad
	PHI := 205.055 - 2.091*t7
	edash = 0.028298 + 0.001156*t11
	w0 = 352.91 + 11.71*t11
	mu := reduceDeg(76.3852 + 4.53795125*t10)
	idash = 18.4602 - 0.9518*t11 - 0.072*t11*t11 + 0.0054*t11*t11*t11
	omegadash = 143.198 - 3.919*t11 + 0.116*t11*t11 + 0.008*t11*t11*t11
	l := (mu - w0) * deg2rad
	g = (w0 - omegadash - psi*rad2deg) * deg2rad
	g1 := (w0 - omegadash - phid) * deg2rad
	ls := (W5d - wdash) * deg2rad
	gs := (wdash - theta) * deg2rad
	lt := (L - W4d) * deg2rad
	gt := (W4d - PHI) * deg2rad
	u1 := 2 * (l + g - ls - gs)
	u2 := l + g1 - lt - gt
	u3 := l + 2*(g-ls-gs)
	u4 := lt + gt - g1
	u5 := 2 * (ls + gs)
	a = 58.935028 + 0.004638*math.Cos(u1) + 0.058222*math.Cos(u2)
	e = edash - 0.0014097*math.Cos(g1-gt) + 0.0003733*math.Cos(u5-2*g) + 0.0001180*math.Cos(u3) + 0.0002408*math.Cos(l) +
		0.0002849*math.Cos(l+u2) + 0.0006190*math.Cos(u4)
	w := 0.08077*math.Sin(g1-gt) + 0.02139*math.Sin(u5-2*g) - 0.00676*math.Sin(u3) + 0.01380*math.Sin(l) +
		0.01632*math.Sin(l+u2) + 0.03547*math.Sin(u4)
	λm = mu - 0.04299*math.Sin(u2) - 0.00789*math.Sin(u1) - 0.06312*math.Sin(ls) - 0.00295*math.Sin(2*ls) -
		0.02231*math.Sin(u5) + 0.00650*math.Sin(u5+psi)
	i = idash + 0.04204*math.Cos(u5+psi) + 0.00235*math.Cos(l+g1+lt+gt+phi) + 0.00360*math.Cos(u2+phi)
	wd := 0.04204*math.Sin(u5+psi) + 0.00235*math.Sin(l+g1+lt+gt+phi) + 0.00358*math.Sin(u2+phi)
	orbits[7] = saturnianEllipse(e, λm, w0+w/edash, a, omegadash+wd/math.Sin(idash*deg2rad), i)

	pos := make([][3]float64, 0, len(orbits)+1)
	for _, o := range orbits {
		pos = append(pos, o.xyz())
	}
	pos = append(pos, [3]float64{0, 0, 1})

	// Equator of Saturn, ecliptic of B1950, sky.
	var toSky mat.Dense
	toSky.Mul(skyRotation(λ, β), R3(-saturnEquatorNode*deg2rad))
	toSky.Mul(&toSky, R1(-saturnEquatorInc*deg2rad))
	return projectMoons(pos, &toSky)
}
