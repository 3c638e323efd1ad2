package sgp4

import (
	"math"
	"strconv"

	"github.com/go-kit/log/level"
)

const (
	keplerTolerance = 1e-12
	keplerMaxPasses = 10
)

// State is a TEME position in km and velocity in km/s.
type State struct {
	Pos, Vel [3]float64
	// KeplerConverged is false when Kepler's equation was still moving by more
	// than 1e-12 rad after ten passes.
	KeplerConverged bool
}

// Propagate returns the state tsince minutes after the epoch of the elements. A
// failure is returned as an Error; ErrDecayed still comes with the computed state.
func (s *Satellite) Propagate(tsince float64) (State, error) {
	st, code := s.sgp4(tsince)
	if code != 0 {
		propagationFailures.WithLabelValues(strconv.Itoa(int(code))).Inc()
		level.Warn(logger).Log("sat", s.tle.Name, "tsince", tsince, "code", int(code), "err", code)
		return st, code
	}
	return st, nil
}

// PropagateJD propagates to a UT Julian date.
func (s *Satellite) PropagateJD(jd float64) (State, error) {
	return s.Propagate((jd - s.epochJD) * minutesPerDay)
}

func (s *Satellite) sgp4(tsince float64) (State, Error) {
	var st State

	// Secular gravity and drag.
	xmdf := s.mo + s.mdot*tsince
	argpdf := s.argpo + s.argpdot*tsince
	nodedf := s.nodeo + s.nodedot*tsince
	t2 := tsince * tsince
	m := meanElements{
		em:    s.ecco,
		inclm: s.inclo,
		argpm: argpdf,
		nodem: nodedf + s.nodecf*t2,
		mm:    xmdf,
		nm:    s.no,
	}
	tempa := 1 - s.cc1*tsince
	tempe := s.bstar * s.cc4 * tsince
	templ := s.t2cof * t2
	if !s.simple {
		delomg := s.omgcof * tsince
		delm := s.xmcof * (math.Pow(1+s.eta*math.Cos(xmdf), 3) - s.delmo)
		temp := delomg + delm
		m.mm = xmdf + temp
		m.argpm = argpdf - temp
		t3 := t2 * tsince
		t4 := t3 * tsince
		tempa = tempa - s.d2*t2 - s.d3*t3 - s.d4*t4
		tempe = tempe + s.bstar*s.cc5*(math.Sin(m.mm)-s.sinmao)
		templ = templ + s.t3cof*t3 + t4*(s.t4cof+tsince*s.t5cof)
	}
	if s.deep != nil {
		s.deep.secular(s, tsince, &m)
	}

	if m.nm <= 0 {
		return st, ErrMeanMotion
	}
	am := math.Pow(xke/m.nm, x2o3) * tempa * tempa
	nm := xke / math.Pow(am, 1.5)
	em := m.em - tempe
	if em >= 1 || em < -0.001 {
		return st, ErrEccentricity
	}
	if em < 1e-6 {
		em = 1e-6
	}
	mm := m.mm + s.no*templ
	xlm := mm + m.argpm + m.nodem
	nodem := math.Mod(m.nodem, twoPi)
	argpm := math.Mod(m.argpm, twoPi)
	xlm = math.Mod(xlm, twoPi)
	mm = math.Mod(xlm-argpm-nodem, twoPi)

	// Lunar and solar periodics.
	p := periodicElements{ep: em, xincp: m.inclm, argpp: argpm, nodep: nodem, mp: mm}
	aycof, xlcof := s.aycof, s.xlcof
	if s.deep != nil {
		s.deep.periodics(tsince, &p)
		if p.ep < 0 || p.ep > 1 {
			return st, ErrPerturbedEccentricity
		}
		sinip := math.Sin(p.xincp)
		aycof = -0.5 * j3oj2 * sinip
		xlcof = xlcofFor(sinip, math.Cos(p.xincp))
	}

	// Long period periodics.
	axnl := p.ep * math.Cos(p.argpp)
	temp := 1 / (am * (1 - p.ep*p.ep))
	aynl := p.ep*math.Sin(p.argpp) + temp*aycof
	xl := p.mp + p.argpp + p.nodep + temp*xlcof*axnl

	// Kepler's equation.
	u := math.Mod(xl-p.nodep, twoPi)
	eo1 := u
	tem5 := 9999.9
	var sineo1, coseo1 float64
	for ktr := 1; math.Abs(tem5) >= keplerTolerance && ktr <= keplerMaxPasses; ktr++ {
		sineo1, coseo1 = math.Sincos(eo1)
		tem5 = 1 - coseo1*axnl - sineo1*aynl
		tem5 = (u - aynl*coseo1 + axnl*sineo1 - eo1) / tem5
		if math.Abs(tem5) >= 0.95 {
			tem5 = math.Copysign(0.95, tem5)
		}
		eo1 += tem5
	}
	st.KeplerConverged = math.Abs(tem5) < keplerTolerance
	if !st.KeplerConverged {
		keplerNotConverged.Inc()
		level.Debug(logger).Log("sat", s.tle.Name, "tsince", tsince, "msg", "kepler did not converge", "step", tem5)
	}

	// Short period periodics.
	ecose := axnl*coseo1 + aynl*sineo1
	esine := axnl*sineo1 - aynl*coseo1
	el2 := axnl*axnl + aynl*aynl
	pl := am * (1 - el2)
	if pl < 0 {
		return st, ErrSemiLatusRectum
	}
	rl := am * (1 - ecose)
	rdotl := math.Sqrt(am) * esine / rl
	rvdotl := math.Sqrt(pl) / rl
	betal := math.Sqrt(1 - el2)
	temp = esine / (1 + betal)
	sinu := am / rl * (sineo1 - aynl - axnl*temp)
	cosu := am / rl * (coseo1 - axnl + aynl*temp)
	su := math.Atan2(sinu, cosu)
	sin2u := (cosu + cosu) * sinu
	cos2u := 1 - 2*sinu*sinu
	temp = 1 / pl
	temp1 := 0.5 * j2 * temp
	temp2 := temp1 * temp

	con41, x1mth2, x7thm1 := s.con41, s.x1mth2, s.x7thm1
	sinip, cosip := math.Sincos(p.xincp)
	if s.deep != nil {
		cosisq := cosip * cosip
		con41 = 3*cosisq - 1
		x1mth2 = 1 - cosisq
		x7thm1 = 7*cosisq - 1
	}
	mrt := rl*(1-1.5*temp2*betal*con41) + 0.5*temp1*x1mth2*cos2u
	su = su - 0.25*temp2*x7thm1*sin2u
	xnode := p.nodep + 1.5*temp2*cosip*sin2u
	xinc := p.xincp + 1.5*temp2*cosip*sinip*cos2u
	mvt := rdotl - nm*temp1*x1mth2*sin2u/xke
	rvdot := rvdotl + nm*temp1*(x1mth2*cos2u+1.5*con41)/xke

	// Orientation vectors.
	sinsu, cossu := math.Sincos(su)
	snod, cnod := math.Sincos(xnode)
	sini, cosi := math.Sincos(xinc)
	xmx := -snod * cosi
	xmy := cnod * cosi
	ux := [3]float64{xmx*sinsu + cnod*cossu, xmy*sinsu + snod*cossu, sini * sinsu}
	vx := [3]float64{xmx*cossu - cnod*sinsu, xmy*cossu - snod*sinsu, sini * cossu}
	const vkmpersec = earthRadiusKm * xke / 60
	for i := 0; i < 3; i++ {
		st.Pos[i] = mrt * ux[i] * earthRadiusKm
		st.Vel[i] = (mvt*ux[i] + rvdot*vx[i]) * vkmpersec
	}
	if mrt < 1 {
		return st, ErrDecayed
	}
	return st, 0
}
