package sky

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// aberrationConstant is the constant of annual aberration, in arcseconds.
	aberrationConstant = 20.49552
	// earthPerihelion is the longitude of Earth's perihelion used by the aberration formula.
	earthPerihelion = 102.94719
	// speedOfLight in km/s.
	speedOfLight = 299792.458
	arcsec2rad   = deg2rad / 3600
)

// Newcomb precession angles from B1950.0 to 1984.0, in degrees.
const (
	ζ1950 = 0.217697
	θ1950 = 0.189274
	z1950 = 0.217722
)

// Numbers holds every epoch-dependent quantity the coordinate engine needs for one
// instant. It is immutable: build a new one for every distinct Julian Day.
type Numbers struct {
	jd, t   float64
	precise bool

	meanObliquity, obliquity Angle
	dEcLong, dObliq          Angle
	k                        Angle
	p                        Angle
	e                        float64

	sunMeanLongitude, sunMeanAnomaly, sunTrueLongitude Angle
	d, mSun, mm, f, ω, moonMeanLongitude             Angle

	from2000, to2000 *mat.Dense
	from1950, to1950 *mat.Dense

	vEarth []float64
}

// NewNumbers returns the epoch context for a Julian Day with the nutation precision
// chosen in the configuration.
func NewNumbers(jd float64) *Numbers {
	return NewNumbersPrecision(jd, skyConfig().PreciseNutation)
}

// NewNumbersPrecision returns the epoch context for a Julian Day. When precise is set
// the full 63-term IAU 1980 nutation series is summed, otherwise its four principal terms.
func NewNumbersPrecision(jd float64, precise bool) *Numbers {
	n := &Numbers{jd: jd, t: JulianCenturies(jd), precise: precise}
	n.computeSun()
	n.computeNutation()
	n.computeObliquity()
	n.computePrecession()
	n.computeVEarth()
	return n
}

func (n *Numbers) computeSun() {
	T := n.t
	n.k = Deg(aberrationConstant / 3600)
	n.p = Deg(earthPerihelion)
	n.e = 0.016708617 - 0.000042037*T - 0.0000001236*T*T

	L := reduceDeg(280.46645 + 36000.76983*T + 0.0003032*T*T)
	M := reduceDeg(357.52910 + 35999.05030*T - 0.0001559*T*T - 0.00000048*T*T*T)
	sM, cM := math.Sincos(M * deg2rad)
	s2M := 2 * sM * cM
	s3M := math.Sin(3 * M * deg2rad)
	C := (1.914600-0.004817*T-0.000014*T*T)*sM + (0.019993-0.000101*T)*s2M + 0.000290*s3M
	n.sunMeanLongitude = Deg(L)
	n.sunMeanAnomaly = Deg(M)
	n.sunTrueLongitude = Deg(reduceDeg(L + C))

	n.d = Deg(reduceDeg(297.85036 + 445267.111480*T - 0.0019142*T*T + T*T*T/189474))
	n.mSun = Deg(reduceDeg(357.52772 + 35999.050340*T - 0.0001603*T*T - T*T*T/300000))
	n.mm = Deg(reduceDeg(134.96298 + 477198.867398*T + 0.0086972*T*T + T*T*T/56250))
	n.f = Deg(reduceDeg(93.27191 + 483202.017538*T - 0.0036825*T*T + T*T*T/327270))
	n.ω = Deg(reduceDeg(125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000))
	n.moonMeanLongitude = Deg(reduceDeg(218.3164591 + 481267.88134236*T - 0.0013268*T*T + T*T*T/538841 - T*T*T*T/6519400))
}

func (n *Numbers) computeNutation() {
	T := n.t
	var Δψ, Δε float64 // arcseconds
	if n.precise {
		D, M, MM, F, Ω := n.d.Radians(), n.mSun.Radians(), n.mm.Radians(), n.f.Radians(), n.ω.Radians()
		for _, term := range nutationTerms {
			arg := float64(term.d)*D + float64(term.m)*M + float64(term.mm)*MM + float64(term.f)*F + float64(term.ω)*Ω
			s, c := math.Sincos(arg)
			Δψ += (term.ψ0 + term.ψ1*T) * s
			Δε += (term.ε0 + term.ε1*T) * c
		}
		Δψ *= 1e-4
		Δε *= 1e-4
	} else {
		L := 2 * n.sunMeanLongitude.Radians()
		Lm := 2 * n.moonMeanLongitude.Radians()
		Ω := n.ω.Radians()
		Δψ = -17.20*math.Sin(Ω) - 1.32*math.Sin(L) - 0.23*math.Sin(Lm) + 0.21*math.Sin(2*Ω)
		Δε = 9.20*math.Cos(Ω) + 0.57*math.Cos(L) + 0.10*math.Cos(Lm) - 0.09*math.Cos(2*Ω)
	}
	n.dEcLong = Deg(Δψ / 3600)
	n.dObliq = Deg(Δε / 3600)
}

// computeObliquity uses Laskar's polynomial, valid over ±10 000 years.
func (n *Numbers) computeObliquity() {
	U := n.t / 100
	coeffs := [...]float64{-4680.93, -1.55, 1999.25, -51.38, -249.67, -39.05, 7.12, 27.87, 5.79, 2.45}
	ε, Un := 0.0, 1.0
	for _, c := range coeffs {
		Un *= U
		ε += c * Un
	}
	n.meanObliquity = Deg(23.43929111 + ε/3600)
	n.obliquity = n.meanObliquity.Add(n.dObliq)
}

// fk4To1984 and its transpose are the same for every epoch.
var (
	fk4To1984   = precessionMatrix(ζ1950*deg2rad, z1950*deg2rad, θ1950*deg2rad)
	fk4From1984 = mat.DenseCopyOf(fk4To1984.T())
)

// iau1976Precession returns the rotation from the J2000 mean equator to the mean
// equator of T centuries later.
func iau1976Precession(T float64) *mat.Dense {
	ζ := (0.6406161*T + 0.0000839*T*T + 0.0000050*T*T*T) * deg2rad
	θ := (0.5567530*T - 0.0001185*T*T - 0.0000116*T*T*T) * deg2rad
	z := (0.6406161*T + 0.0003041*T*T + 0.0000051*T*T*T) * deg2rad
	return precessionMatrix(ζ, z, θ)
}

func (n *Numbers) computePrecession() {
	n.from2000 = iau1976Precession(n.t)
	n.to2000 = mat.DenseCopyOf(n.from2000.T())
	n.from1950 = fk4To1984
	n.to1950 = fk4From1984
}

// computeVEarth derives the orbital velocity of the Earth from the same elliptic
// elements as the aberration correction, then refers it to the J2000 equator.
func (n *Numbers) computeVEarth() {
	v := speedOfLight * n.k.Radians()
	sL, cL := math.Sincos(n.sunTrueLongitude.Radians())
	sP, cP := math.Sincos(n.p.Radians())
	vEcl := []float64{v * (sL - n.e*sP), -v * (cL - n.e*cP), 0}
	sε, cε := math.Sincos(n.meanObliquity.Radians())
	vEq := []float64{vEcl[0], vEcl[1] * cε, vEcl[1] * sε}
	n.vEarth = MxV33(n.to2000, vEq)
}

// JD returns the Julian Day of this context.
func (n *Numbers) JD() float64 { return n.jd }

// JulianCenturies returns the centuries since J2000.
func (n *Numbers) JulianCenturies() float64 { return n.t }

// JulianMillennia returns the millennia since J2000.
func (n *Numbers) JulianMillennia() float64 { return n.t / 10 }

// Precise reports whether the full nutation series was used.
func (n *Numbers) Precise() bool { return n.precise }

// Obliquity returns the true obliquity of the ecliptic (mean plus nutation).
func (n *Numbers) Obliquity() Angle { return n.obliquity }

// MeanObliquity returns the mean obliquity of the ecliptic.
func (n *Numbers) MeanObliquity() Angle { return n.meanObliquity }

// DEcLong returns the nutation in longitude Δψ.
func (n *Numbers) DEcLong() Angle { return n.dEcLong }

// DObliq returns the nutation in obliquity Δε.
func (n *Numbers) DObliq() Angle { return n.dObliq }

// Aberration returns the constant of aberration.
func (n *Numbers) Aberration() Angle { return n.k }

// EarthEccentricity returns the eccentricity of the Earth's orbit.
func (n *Numbers) EarthEccentricity() float64 { return n.e }

// EarthPerihelion returns the longitude of the perihelion of the Earth's orbit.
func (n *Numbers) EarthPerihelion() Angle { return n.p }

// SunTrueLongitude returns the geometric longitude of the Sun.
func (n *Numbers) SunTrueLongitude() Angle { return n.sunTrueLongitude }

// SunMeanLongitude returns the mean longitude of the Sun.
func (n *Numbers) SunMeanLongitude() Angle { return n.sunMeanLongitude }

// SunMeanAnomaly returns the mean anomaly of the Sun.
func (n *Numbers) SunMeanAnomaly() Angle { return n.sunMeanAnomaly }

// MoonMeanLongitude returns the mean longitude of the Moon.
func (n *Numbers) MoonMeanLongitude() Angle { return n.moonMeanLongitude }

// MoonMeanElongation returns D, the mean elongation of the Moon from the Sun.
func (n *Numbers) MoonMeanElongation() Angle { return n.d }

// MoonMeanAnomaly returns M', the mean anomaly of the Moon.
func (n *Numbers) MoonMeanAnomaly() Angle { return n.mm }

// MoonArgumentOfLatitude returns F.
func (n *Numbers) MoonArgumentOfLatitude() Angle { return n.f }

// MoonAscendingNode returns Ω, the longitude of the Moon's ascending node.
func (n *Numbers) MoonAscendingNode() Angle { return n.ω }

// PrecessFrom2000 returns the rotation from the J2000 mean equator to that of this epoch.
func (n *Numbers) PrecessFrom2000() mat.Matrix { return n.from2000 }

// PrecessTo2000 returns the rotation from the mean equator of this epoch to J2000.
func (n *Numbers) PrecessTo2000() mat.Matrix { return n.to2000 }

// PrecessFrom1950 returns the rotation from the B1950.0 mean equator to that of 1984.0.
func (n *Numbers) PrecessFrom1950() mat.Matrix { return n.from1950 }

// PrecessTo1950 returns the rotation from the 1984.0 mean equator to that of B1950.0.
func (n *Numbers) PrecessTo1950() mat.Matrix { return n.to1950 }

// VEarth returns the orbital velocity of the Earth in km/s, J2000 equatorial axes.
func (n *Numbers) VEarth() []float64 {
	return []float64{n.vEarth[0], n.vEarth[1], n.vEarth[2]}
}
