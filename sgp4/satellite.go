package sgp4

import (
	"fmt"
	"math"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// WGS-72 constants, Earth radii and minutes.
const (
	earthRadiusKm = 6378.135
	xke           = 0.07436691613317 // sqrt(GM) in Earth radii^1.5 per minute
	j2            = 0.001082616
	j4            = -0.00000165597
	j3oj2         = -2.34506972e-3 // J3/J2

	twoPi         = 2 * math.Pi
	x2o3          = 2.0 / 3.0
	deg2rad       = math.Pi / 180
	minutesPerDay = 1440.0

	// Atmosphere model parameters: s and (q0-s)^4, in Earth radii.
	ss     = 1.0122292801892716288
	qzms2t = 1.8802791590152706439e-9

	// deepSpacePeriod is the orbital period in minutes from which the lunar and
	// solar perturbations are modelled.
	deepSpacePeriod = 225.0
	smallDivisor    = 1.5e-12
)

// Resonance is the kind of geopotential resonance of a deep space orbit.
type Resonance uint8

// Resonances.
const (
	ResonanceNone Resonance = iota
	ResonanceSynchronous
	ResonanceHalfDay
)

func (r Resonance) String() string {
	switch r {
	case ResonanceNone:
		return "none"
	case ResonanceSynchronous:
		return "synchronous"
	case ResonanceHalfDay:
		return "12h"
	default:
		return "unknown"
	}
}

// Satellite is an element set initialised for propagation. It is not modified by
// Propagate and may be shared between goroutines.
type Satellite struct {
	tle *TLE

	// Elements at epoch in radians and radians per minute. The mean motion is the
	// un-Kozai'd (Brouwer) one.
	ecco, inclo, nodeo, argpo, mo, no, bstar float64
	epochJD, gsto                            float64

	// simple drops the higher order drag terms for low perigees and deep space.
	simple bool

	aycof, con41, cc1, cc4, cc5   float64
	d2, d3, d4, delmo, eta        float64
	argpdot, omgcof, sinmao       float64
	t2cof, t3cof, t4cof, t5cof    float64
	x1mth2, x7thm1, mdot, nodedot float64
	xlcof, xmcof, nodecf          float64

	deep *deepSpace
}

// New initialises a satellite from its element set. The eccentricity must be in
// [0, 1) and the mean motion positive.
func New(tle *TLE) (*Satellite, error) {
	if tle == nil {
		return nil, errors.Wrap(ErrFormat, "nil element set")
	}
	if tle.Eccentricity < 0 || tle.Eccentricity >= 1 {
		return nil, errors.Wrapf(ErrEccentricity, "%s: e=%g", tle.Name, tle.Eccentricity)
	}
	if tle.MeanMotion <= 0 {
		return nil, errors.Wrapf(ErrMeanMotion, "%s: n=%g rev/day", tle.Name, tle.MeanMotion)
	}
	s := &Satellite{
		tle:     tle,
		ecco:    tle.Eccentricity,
		inclo:   tle.Inclination * deg2rad,
		nodeo:   tle.RAAN * deg2rad,
		argpo:   tle.ArgPerigee * deg2rad,
		mo:      tle.MeanAnomaly * deg2rad,
		no:      tle.MeanMotion * twoPi / minutesPerDay,
		bstar:   tle.BStar,
		epochJD: tle.EpochJD,
	}
	s.init()
	level.Debug(logger).Log("sat", tle.Name, "deep", s.DeepSpace(), "resonance", s.Resonance(), "period_min", s.Period())
	return s, nil
}

// Parse is ParseTLE followed by New.
func Parse(name, line1, line2 string) (*Satellite, error) {
	tle, err := ParseTLE(name, line1, line2)
	if err != nil {
		return nil, err
	}
	return New(tle)
}

func (s *Satellite) init() {
	e := s.ecco
	eccsq := e * e
	omeosq := 1 - eccsq
	rteosq := math.Sqrt(omeosq)
	sinio, cosio := math.Sincos(s.inclo)
	cosio2 := cosio * cosio

	// Recover the original mean motion and semi-major axis from the Kozai mean motion.
	ak := math.Pow(xke/s.no, x2o3)
	d1 := 0.75 * j2 * (3*cosio2 - 1) / (rteosq * omeosq)
	de := d1 / (ak * ak)
	adel := ak * (1 - de*de - de*(1.0/3.0+134*de*de/81))
	de = d1 / (adel * adel)
	s.no = s.no / (1 + de)

	ao := math.Pow(xke/s.no, x2o3)
	po := ao * omeosq
	con42 := 1 - 5*cosio2
	s.con41 = -con42 - 2*cosio2
	posq := po * po
	rp := ao * (1 - e)
	s.gsto = gstime70(s.epochJD)

	if rp < 220/earthRadiusKm+1 {
		s.simple = true
	}

	sfour := ss
	qzms24 := qzms2t
	if perigee := (rp - 1) * earthRadiusKm; perigee < 156 {
		sfour = perigee - 78
		if perigee < 98 {
			sfour = 20
		}
		qzms24 = math.Pow((120-sfour)/earthRadiusKm, 4)
		sfour = sfour/earthRadiusKm + 1
	}
	pinvsq := 1 / posq
	tsi := 1 / (ao - sfour)
	s.eta = ao * e * tsi
	etasq := s.eta * s.eta
	eeta := e * s.eta
	psisq := math.Abs(1 - etasq)
	coef := qzms24 * math.Pow(tsi, 4)
	coef1 := coef / math.Pow(psisq, 3.5)
	cc2 := coef1 * s.no * (ao*(1+1.5*etasq+eeta*(4+etasq)) +
		0.375*j2*tsi/psisq*s.con41*(8+3*etasq*(8+etasq)))
	s.cc1 = s.bstar * cc2
	cc3 := 0.0
	if e > 1e-4 {
		cc3 = -2 * coef * tsi * j3oj2 * s.no * sinio / e
	}
	s.x1mth2 = 1 - cosio2
	s.cc4 = 2 * s.no * coef1 * ao * omeosq * (s.eta*(2+0.5*etasq) + e*(0.5+2*etasq) -
		j2*tsi/(ao*psisq)*(-3*s.con41*(1-2*eeta+etasq*(1.5-0.5*eeta))+
			0.75*s.x1mth2*(2*etasq-eeta*(1+etasq))*math.Cos(2*s.argpo)))
	s.cc5 = 2 * coef1 * ao * omeosq * (1 + 2.75*(etasq+eeta) + eeta*etasq)

	cosio4 := cosio2 * cosio2
	temp1 := 1.5 * j2 * pinvsq * s.no
	temp2 := 0.5 * temp1 * j2 * pinvsq
	temp3 := -0.46875 * j4 * pinvsq * pinvsq * s.no
	s.mdot = s.no + 0.5*temp1*rteosq*s.con41 + 0.0625*temp2*rteosq*(13-78*cosio2+137*cosio4)
	s.argpdot = -0.5*temp1*con42 + 0.0625*temp2*(7-114*cosio2+395*cosio4) +
		temp3*(3-36*cosio2+49*cosio4)
	xhdot1 := -temp1 * cosio
	s.nodedot = xhdot1 + (0.5*temp2*(4-19*cosio2)+2*temp3*(3-7*cosio2))*cosio
	xpidot := s.argpdot + s.nodedot
	s.omgcof = s.bstar * cc3 * math.Cos(s.argpo)
	if e > 1e-4 {
		s.xmcof = -x2o3 * coef * s.bstar / eeta
	}
	s.nodecf = 3.5 * omeosq * xhdot1 * s.cc1
	s.t2cof = 1.5 * s.cc1
	s.xlcof = xlcofFor(sinio, cosio)
	s.aycof = -0.5 * j3oj2 * sinio
	s.delmo = math.Pow(1+s.eta*math.Cos(s.mo), 3)
	s.sinmao = math.Sin(s.mo)
	s.x7thm1 = 7*cosio2 - 1

	if twoPi/s.no >= deepSpacePeriod {
		s.simple = true
		s.deep = newDeepSpace(s, eccsq, xpidot)
	}

	if !s.simple {
		cc1sq := s.cc1 * s.cc1
		s.d2 = 4 * ao * tsi * cc1sq
		temp := s.d2 * tsi * s.cc1 / 3
		s.d3 = (17*ao + sfour) * temp
		s.d4 = 0.5 * temp * ao * tsi * (221*ao + 31*sfour) * s.cc1
		s.t3cof = s.d2 + 2*cc1sq
		s.t4cof = 0.25 * (3*s.d3 + s.cc1*(12*s.d2+10*cc1sq))
		s.t5cof = 0.2 * (3*s.d4 + 12*s.cc1*s.d3 + 6*s.d2*s.d2 + 15*cc1sq*(2*s.d2+cc1sq))
	}
}

// gstime70 returns the Greenwich sidereal time in radians at a UT Julian date,
// with the 1970 polynomial the element sets are fitted with.
func gstime70(jd float64) float64 {
	const (
		c1     = 1.72027916940703639e-2
		thgr70 = 1.7321343856509374
		fk5r   = 5.07551419432269442e-15
	)
	ts70 := jd - 2433281.5 - 7305.0
	ds70 := math.Floor(ts70 + 1e-8)
	tfrac := ts70 - ds70
	gst := math.Mod(thgr70+c1*ds70+(c1+twoPi)*tfrac+ts70*ts70*fk5r, twoPi)
	if gst < 0 {
		gst += twoPi
	}
	return gst
}

// xlcofFor is the long period J3 coefficient of the mean longitude, which is
// singular for retrograde equatorial orbits.
func xlcofFor(sini, cosi float64) float64 {
	den := 1 + cosi
	if math.Abs(den) <= smallDivisor {
		den = smallDivisor
	}
	return -0.25 * j3oj2 * sini * (3 + 5*cosi) / den
}

// Name returns the name of the element set.
func (s *Satellite) Name() string { return s.tle.Name }

// TLE returns the element set the satellite was built from.
func (s *Satellite) TLE() *TLE { return s.tle }

// EpochJD returns the UT Julian date of the elements.
func (s *Satellite) EpochJD() float64 { return s.epochJD }

// DeepSpace reports whether the lunar and solar perturbations are modelled.
func (s *Satellite) DeepSpace() bool { return s.deep != nil }

// Resonance returns the resonance class of a deep space orbit.
func (s *Satellite) Resonance() Resonance {
	if s.deep == nil {
		return ResonanceNone
	}
	return s.deep.irez
}

// Period returns the anomalistic period in minutes.
func (s *Satellite) Period() float64 { return twoPi / s.no }

func (s *Satellite) String() string {
	mode := "near earth"
	if s.deep != nil {
		mode = fmt.Sprintf("deep space, %s resonance", s.deep.irez)
	}
	return fmt.Sprintf("%s: %s, period %.2f min", s.tle.Name, mode, s.Period())
}
