package sgp4

import "math"

// Lunar and solar perturbation constants.
const (
	zns    = 1.19459e-5
	zes    = 0.01675
	znl    = 1.5835218e-4
	zel    = 0.05490
	c1ss   = 2.9864797e-6
	c1l    = 4.7968065e-7
	zsinis = 0.39785416
	zcosis = 0.91744867
	zcosgs = 0.1945905
	zsings = -0.98088458

	// rptim is the Earth rotation rate in radians per minute.
	rptim = 4.37526908801129966e-3
	// resonanceStep is the integration step of the resonance terms in minutes.
	resonanceStep = 720.0
	// equatorial is the inclination under which the node rates are dropped.
	equatorial = 5.2359877e-2
)

// Geopotential resonance coefficients and phases.
const (
	q22    = 1.7891679e-6
	q31    = 2.1460748e-6
	q33    = 2.2123015e-7
	root22 = 1.7891679e-6
	root32 = 3.7393792e-7
	root44 = 7.3636953e-9
	root52 = 1.1428639e-7
	root54 = 2.1765803e-9

	fasx2 = 0.13130908
	fasx4 = 2.8843198
	fasx6 = 0.37448087
	g22   = 5.7686396
	g32   = 0.95240898
	g44   = 1.8014998
	g52   = 1.0508330
	g54   = 4.4108898
)

// deepSpace holds the lunar and solar terms of an orbit with a period of at least
// 225 minutes, and its resonance terms if any.
type deepSpace struct {
	irez Resonance

	// Secular rates.
	dedt, didt, dmdt, domdt, dnodt float64

	// Solar periodic coefficients.
	se2, se3, si2, si3, sl2, sl3, sl4, sgh2, sgh3, sgh4, sh2, sh3 float64
	// Lunar periodic coefficients.
	ee2, e3, xi2, xi3, xl2, xl3, xl4, xgh2, xgh3, xgh4, xh2, xh3  float64
	zmol, zmos                                                    float64

	// Resonance terms.
	del1, del2, del3           float64
	d2201, d2211, d3210, d3222 float64
	d4410, d4422, d5220, d5232 float64
	d5421, d5433               float64
	xfact, xlamo               float64
}

// thirdBody are the lunar or solar coefficients of the orbit.
type thirdBody struct {
	s1, s2, s3, s4, s5, s6, s7   float64
	z1, z2, z3                   float64
	z11, z12, z13, z21, z22, z23 float64
	z31, z32, z33                float64
}

// orbitTrig is the geometry of the orbit the third body terms depend on.
type orbitTrig struct {
	sinim, cosim, sinomm, cosomm float64
	em, emsq, betasq, rtemsq     float64
	xnoi                         float64
}

// newThirdBody computes the perturbation coefficients of a body whose orbit
// has the given argument of perigee (g), inclination (i) and node (h), and
// whose strength is cc.
func newThirdBody(o orbitTrig, zcosg, zsing, zcosi, zsini, zcosh, zsinh, cc float64) thirdBody {
	a1 := zcosg*zcosh + zsing*zcosi*zsinh
	a3 := -zsing*zcosh + zcosg*zcosi*zsinh
	a7 := -zcosg*zsinh + zsing*zcosi*zcosh
	a8 := zsing * zsini
	a9 := zsing*zsinh + zcosg*zcosi*zcosh
	a10 := zcosg * zsini
	a2 := o.cosim*a7 + o.sinim*a8
	a4 := o.cosim*a9 + o.sinim*a10
	a5 := -o.sinim*a7 + o.cosim*a8
	a6 := -o.sinim*a9 + o.cosim*a10

	x1 := a1*o.cosomm + a2*o.sinomm
	x2 := a3*o.cosomm + a4*o.sinomm
	x3 := -a1*o.sinomm + a2*o.cosomm
	x4 := -a3*o.sinomm + a4*o.cosomm
	x5 := a5 * o.sinomm
	x6 := a6 * o.sinomm
	x7 := a5 * o.cosomm
	x8 := a6 * o.cosomm

	var t thirdBody
	emsq := o.emsq
	t.z31 = 12*x1*x1 - 3*x3*x3
	t.z32 = 24*x1*x2 - 6*x3*x4
	t.z33 = 12*x2*x2 - 3*x4*x4
	z1 := 3*(a1*a1+a2*a2) + t.z31*emsq
	z2 := 6*(a1*a3+a2*a4) + t.z32*emsq
	z3 := 3*(a3*a3+a4*a4) + t.z33*emsq
	t.z11 = -6*a1*a5 + emsq*(-24*x1*x7-6*x3*x5)
	t.z12 = -6*(a1*a6+a3*a5) + emsq*(-24*(x2*x7+x1*x8)-6*(x3*x6+x4*x5))
	t.z13 = -6*a3*a6 + emsq*(-24*x2*x8-6*x4*x6)
	t.z21 = 6*a2*a5 + emsq*(24*x1*x5-6*x3*x7)
	t.z22 = 6*(a4*a5+a2*a6) + emsq*(24*(x2*x5+x1*x6)-6*(x4*x7+x3*x8))
	t.z23 = 6*a4*a6 + emsq*(24*x2*x6-6*x4*x8)
	t.z1 = z1 + z1 + o.betasq*t.z31
	t.z2 = z2 + z2 + o.betasq*t.z32
	t.z3 = z3 + z3 + o.betasq*t.z33

	t.s3 = cc * o.xnoi
	t.s2 = -0.5 * t.s3 / o.rtemsq
	t.s4 = t.s3 * o.rtemsq
	t.s1 = -15 * o.em * t.s4
	t.s5 = x1*x3 + x2*x4
	t.s6 = x2*x3 + x1*x4
	t.s7 = x2*x4 - x1*x3
	return t
}

// newDeepSpace initialises the deep space terms of s, whose near earth terms must
// already be set.
func newDeepSpace(s *Satellite, eccsq, xpidot float64) *deepSpace {
	d := &deepSpace{}
	nm := s.no
	em := s.ecco
	emsq := eccsq
	snodm, cnodm := math.Sincos(s.nodeo)
	sinomm, cosomm := math.Sincos(s.argpo)
	sinim, cosim := math.Sincos(s.inclo)
	betasq := 1 - emsq
	o := orbitTrig{
		sinim: sinim, cosim: cosim, sinomm: sinomm, cosomm: cosomm,
		em: em, emsq: emsq, betasq: betasq, rtemsq: math.Sqrt(betasq),
		xnoi: 1 / nm,
	}

	// Lunar orbit at epoch, in days from 1900 January 0.5.
	day := s.epochJD - 2433281.5 + 18261.5
	xnodce := math.Mod(4.5236020-9.2422029e-4*day, twoPi)
	stem, ctem := math.Sincos(xnodce)
	zcosil := 0.91375164 - 0.03568096*ctem
	zsinil := math.Sqrt(1 - zcosil*zcosil)
	zsinhl := 0.089683511 * stem / zsinil
	zcoshl := math.Sqrt(1 - zsinhl*zsinhl)
	gam := 5.8351514 + 0.0019443680*day
	zx := 0.39785416 * stem / zsinil
	zy := zcoshl*ctem + 0.91744867*zsinhl*stem
	zx = gam + math.Atan2(zx, zy) - xnodce
	zsingl, zcosgl := math.Sincos(zx)

	sun := newThirdBody(o, zcosgs, zsings, zcosis, zsinis, cnodm, snodm, c1ss)
	moon := newThirdBody(o, zcosgl, zsingl, zcosil, zsinil,
		zcoshl*cnodm+zsinhl*snodm, snodm*zcoshl-cnodm*zsinhl, c1l)

	d.zmol = math.Mod(4.7199672+0.22997150*day-gam, twoPi)
	d.zmos = math.Mod(6.2565837+0.017201977*day, twoPi)

	d.se2 = 2 * sun.s1 * sun.s6
	d.se3 = 2 * sun.s1 * sun.s7
	d.si2 = 2 * sun.s2 * sun.z12
	d.si3 = 2 * sun.s2 * (sun.z13 - sun.z11)
	d.sl2 = -2 * sun.s3 * sun.z2
	d.sl3 = -2 * sun.s3 * (sun.z3 - sun.z1)
	d.sl4 = -2 * sun.s3 * (-21 - 9*emsq) * zes
	d.sgh2 = 2 * sun.s4 * sun.z32
	d.sgh3 = 2 * sun.s4 * (sun.z33 - sun.z31)
	d.sgh4 = -18 * sun.s4 * zes
	d.sh2 = -2 * sun.s2 * sun.z22
	d.sh3 = -2 * sun.s2 * (sun.z23 - sun.z21)

	d.ee2 = 2 * moon.s1 * moon.s6
	d.e3 = 2 * moon.s1 * moon.s7
	d.xi2 = 2 * moon.s2 * moon.z12
	d.xi3 = 2 * moon.s2 * (moon.z13 - moon.z11)
	d.xl2 = -2 * moon.s3 * moon.z2
	d.xl3 = -2 * moon.s3 * (moon.z3 - moon.z1)
	d.xl4 = -2 * moon.s3 * (-21 - 9*emsq) * zel
	d.xgh2 = 2 * moon.s4 * moon.z32
	d.xgh3 = 2 * moon.s4 * (moon.z33 - moon.z31)
	d.xgh4 = -18 * moon.s4 * zel
	d.xh2 = -2 * moon.s2 * moon.z22
	d.xh3 = -2 * moon.s2 * (moon.z23 - moon.z21)

	switch {
	case nm > 0.0034906585 && nm < 0.0052359877:
		d.irez = ResonanceSynchronous
	case nm >= 8.26e-3 && nm <= 9.24e-3 && em >= 0.5:
		d.irez = ResonanceHalfDay
	}

	// Secular rates.
	nearEquator := s.inclo < equatorial || s.inclo > math.Pi-equatorial
	ses := sun.s1 * zns * sun.s5
	sis := sun.s2 * zns * (sun.z11 + sun.z13)
	sls := -zns * sun.s3 * (sun.z1 + sun.z3 - 14 - 6*emsq)
	sghs := sun.s4 * zns * (sun.z31 + sun.z33 - 6)
	shs := -zns * sun.s2 * (sun.z21 + sun.z23)
	if nearEquator {
		shs = 0
	}
	if sinim != 0 {
		shs = shs / sinim
	}
	sgs := sghs - cosim*shs

	d.dedt = ses + moon.s1*znl*moon.s5
	d.didt = sis + moon.s2*znl*(moon.z11+moon.z13)
	d.dmdt = sls - znl*moon.s3*(moon.z1+moon.z3-14-6*emsq)
	sghl := moon.s4 * znl * (moon.z31 + moon.z33 - 6)
	shll := -znl * moon.s2 * (moon.z21 + moon.z23)
	if nearEquator {
		shll = 0
	}
	d.domdt = sgs + sghl
	d.dnodt = shs
	if sinim != 0 {
		d.domdt = d.domdt - cosim/sinim*shll
		d.dnodt = d.dnodt + shll/sinim
	}

	theta := math.Mod(s.gsto, twoPi)
	aonv := math.Pow(nm/xke, x2o3)
	switch d.irez {
	case ResonanceHalfDay:
		d.initHalfDay(nm, em, emsq, sinim, cosim, aonv)
		d.xlamo = math.Mod(s.mo+s.nodeo+s.nodeo-theta-theta, twoPi)
		d.xfact = s.mdot + d.dmdt + 2*(s.nodedot+d.dnodt-rptim) - s.no
	case ResonanceSynchronous:
		g200 := 1 + emsq*(-2.5+0.8125*emsq)
		g310 := 1 + 2*emsq
		g300 := 1 + emsq*(-6+6.60937*emsq)
		f220 := 0.75 * (1 + cosim) * (1 + cosim)
		f311 := 0.9375*sinim*sinim*(1+3*cosim) - 0.75*(1+cosim)
		f330 := 1.875 * math.Pow(1+cosim, 3)
		d.del1 = 3 * nm * nm * aonv * aonv
		d.del2 = 2 * d.del1 * f220 * g200 * q22
		d.del3 = 3 * d.del1 * f330 * g300 * q33 * aonv
		d.del1 = d.del1 * f311 * g310 * q31 * aonv
		d.xlamo = math.Mod(s.mo+s.nodeo+s.argpo-theta, twoPi)
		d.xfact = s.mdot + xpidot - rptim + d.dmdt + d.domdt + d.dnodt - s.no
	}
	return d
}

// initHalfDay sets the coefficients of the 12 hour resonance of eccentric orbits.
func (d *deepSpace) initHalfDay(nm, em, emsq, sinim, cosim, aonv float64) {
	cosisq := cosim * cosim
	eoc := em * emsq
	g201 := -0.306 - (em-0.64)*0.440

	var g211, g310, g322, g410, g422, g520, g521, g532, g533 float64
	if em <= 0.65 {
		g211 = 3.616 - 13.2470*em + 16.2900*emsq
		g310 = -19.302 + 117.3900*em - 228.4190*emsq + 156.5910*eoc
		g322 = -18.9068 + 109.7927*em - 214.6334*emsq + 146.5816*eoc
		g410 = -41.122 + 242.6940*em - 471.0940*emsq + 313.9530*eoc
		g422 = -146.407 + 841.8800*em - 1629.014*emsq + 1083.4350*eoc
		g520 = -532.114 + 3017.977*em - 5740.032*emsq + 3708.2760*eoc
	} else {
		g211 = -72.099 + 331.819*em - 508.738*emsq + 266.724*eoc
		g310 = -346.844 + 1582.851*em - 2415.925*emsq + 1246.113*eoc
		g322 = -342.585 + 1554.908*em - 2366.899*emsq + 1215.972*eoc
		g410 = -1052.797 + 4758.686*em - 7193.992*emsq + 3651.957*eoc
		g422 = -3581.690 + 16178.110*em - 24462.770*emsq + 12422.520*eoc
		if em > 0.715 {
			g520 = -5149.66 + 29936.92*em - 54087.36*emsq + 31324.56*eoc
		} else {
			g520 = 1464.74 - 4664.75*em + 3763.64*emsq
		}
	}
	if em < 0.7 {
		g533 = -919.22770 + 4988.6100*em - 9064.7700*emsq + 5542.21*eoc
		g521 = -822.71072 + 4568.6173*em - 8491.4146*emsq + 5337.524*eoc
		g532 = -853.66600 + 4690.2500*em - 8624.7700*emsq + 5341.4*eoc
	} else {
		g533 = -37995.780 + 161616.52*em - 229838.20*emsq + 109377.94*eoc
		g521 = -51752.104 + 218913.95*em - 309468.16*emsq + 146349.42*eoc
		g532 = -40023.880 + 170470.89*em - 242699.48*emsq + 115605.82*eoc
	}

	sini2 := sinim * sinim
	f220 := 0.75 * (1 + 2*cosim + cosisq)
	f221 := 1.5 * sini2
	f321 := 1.875 * sinim * (1 - 2*cosim - 3*cosisq)
	f322 := -1.875 * sinim * (1 + 2*cosim - 3*cosisq)
	f441 := 35 * sini2 * f220
	f442 := 39.3750 * sini2 * sini2
	f522 := 9.84375 * sinim * (sini2*(1-2*cosim-5*cosisq) + 0.33333333*(-2+4*cosim+6*cosisq))
	f523 := sinim * (4.92187512*sini2*(-2-4*cosim+10*cosisq) + 6.56250012*(1+2*cosim-3*cosisq))
	f542 := 29.53125 * sinim * (2 - 8*cosim + cosisq*(-12+8*cosim+10*cosisq))
	f543 := 29.53125 * sinim * (-2 - 8*cosim + cosisq*(12+8*cosim-10*cosisq))

	xno2 := nm * nm
	ainv2 := aonv * aonv
	temp1 := 3 * xno2 * ainv2
	temp := temp1 * root22
	d.d2201 = temp * f220 * g201
	d.d2211 = temp * f221 * g211
	temp1 = temp1 * aonv
	temp = temp1 * root32
	d.d3210 = temp * f321 * g310
	d.d3222 = temp * f322 * g322
	temp1 = temp1 * aonv
	temp = 2 * temp1 * root44
	d.d4410 = temp * f441 * g410
	d.d4422 = temp * f442 * g422
	temp1 = temp1 * aonv
	temp = temp1 * root52
	d.d5220 = temp * f522 * g520
	d.d5232 = temp * f523 * g532
	temp = 2 * temp1 * root54
	d.d5421 = temp * f542 * g521
	d.d5433 = temp * f543 * g533
}

// meanElements are the elements being propagated, in radians and radians per
// minute.
type meanElements struct {
	em, inclm, argpm, nodem, mm, nm float64
}

// secular applies the lunar and solar secular rates to m, then integrates the
// resonance terms from epoch to tsince.
func (d *deepSpace) secular(s *Satellite, tsince float64, m *meanElements) {
	theta := math.Mod(s.gsto+tsince*rptim, twoPi)
	m.em += d.dedt * tsince
	m.inclm += d.didt * tsince
	m.argpm += d.domdt * tsince
	m.nodem += d.dnodt * tsince
	m.mm += d.dmdt * tsince
	if d.irez == ResonanceNone {
		return
	}

	delt := resonanceStep
	if tsince < 0 {
		delt = -resonanceStep
	}
	const step2 = resonanceStep * resonanceStep / 2
	xli, xni, atime := d.xlamo, s.no, 0.0
	var xndt, xnddt, xldot, ft float64
	for {
		xndt, xnddt = d.resonanceRates(s, xli, atime)
		xldot = xni + d.xfact
		xnddt *= xldot
		if math.Abs(tsince-atime) < resonanceStep {
			ft = tsince - atime
			break
		}
		xli = xli + xldot*delt + xndt*step2
		xni = xni + xndt*delt + xnddt*step2
		atime += delt
	}

	m.nm = xni + xndt*ft + xnddt*ft*ft*0.5
	xl := xli + xldot*ft + xndt*ft*ft*0.5
	if d.irez == ResonanceSynchronous {
		m.mm = xl - m.nodem - m.argpm + theta
	} else {
		m.mm = xl - 2*m.nodem + 2*theta
	}
}

// resonanceRates returns the first derivative of the mean motion and, before its
// scaling by the rate of the mean longitude, the second one.
func (d *deepSpace) resonanceRates(s *Satellite, xli, atime float64) (xndt, xnddt float64) {
	if d.irez == ResonanceSynchronous {
		xndt = d.del1*math.Sin(xli-fasx2) + d.del2*math.Sin(2*(xli-fasx4)) + d.del3*math.Sin(3*(xli-fasx6))
		xnddt = d.del1*math.Cos(xli-fasx2) + 2*d.del2*math.Cos(2*(xli-fasx4)) + 3*d.del3*math.Cos(3*(xli-fasx6))
		return
	}
	xomi := s.argpo + s.argpdot*atime
	x2omi := xomi + xomi
	x2li := xli + xli
	xndt = d.d2201*math.Sin(x2omi+xli-g22) + d.d2211*math.Sin(xli-g22) +
		d.d3210*math.Sin(xomi+xli-g32) + d.d3222*math.Sin(-xomi+xli-g32) +
		d.d4410*math.Sin(x2omi+x2li-g44) + d.d4422*math.Sin(x2li-g44) +
		d.d5220*math.Sin(xomi+xli-g52) + d.d5232*math.Sin(-xomi+xli-g52) +
		d.d5421*math.Sin(xomi+x2li-g54) + d.d5433*math.Sin(-xomi+x2li-g54)
	xnddt = d.d2201*math.Cos(x2omi+xli-g22) + d.d2211*math.Cos(xli-g22) +
		d.d3210*math.Cos(xomi+xli-g32) + d.d3222*math.Cos(-xomi+xli-g32) +
		d.d5220*math.Cos(xomi+xli-g52) + d.d5232*math.Cos(-xomi+xli-g52) +
		2*(d.d4410*math.Cos(x2omi+x2li-g44)+d.d4422*math.Cos(x2li-g44)+
			d.d5421*math.Cos(xomi+x2li-g54)+d.d5433*math.Cos(-xomi+x2li-g54))
	return
}

// periodicElements are the osculating elements after the lunar and solar
// periodics.
type periodicElements struct {
	ep, xincp, argpp, nodep, mp float64
}

// periodics adds the lunar and solar periodic terms to p. Low inclinations use
// the Lyddane modification. A negative inclination is flipped.
func (d *deepSpace) periodics(tsince float64, p *periodicElements) {
	zm := d.zmos + zns*tsince
	zf := zm + 2*zes*math.Sin(zm)
	sinzf, coszf := math.Sincos(zf)
	f2 := 0.5*sinzf*sinzf - 0.25
	f3 := -0.5 * sinzf * coszf
	ses := d.se2*f2 + d.se3*f3
	sis := d.si2*f2 + d.si3*f3
	sls := d.sl2*f2 + d.sl3*f3 + d.sl4*sinzf
	sghs := d.sgh2*f2 + d.sgh3*f3 + d.sgh4*sinzf
	shs := d.sh2*f2 + d.sh3*f3

	zm = d.zmol + znl*tsince
	zf = zm + 2*zel*math.Sin(zm)
	sinzf, coszf = math.Sincos(zf)
	f2 = 0.5*sinzf*sinzf - 0.25
	f3 = -0.5 * sinzf * coszf
	sel := d.ee2*f2 + d.e3*f3
	sil := d.xi2*f2 + d.xi3*f3
	sll := d.xl2*f2 + d.xl3*f3 + d.xl4*sinzf
	sghl := d.xgh2*f2 + d.xgh3*f3 + d.xgh4*sinzf
	shll := d.xh2*f2 + d.xh3*f3

	pe := ses + sel
	pinc := sis + sil
	pl := sls + sll
	pgh := sghs + sghl
	ph := shs + shll

	p.xincp += pinc
	p.ep += pe
	sinip, cosip := math.Sincos(p.xincp)
	if p.xincp >= 0.2 {
		ph = ph / sinip
		pgh = pgh - cosip*ph
		p.argpp += pgh
		p.nodep += ph
		p.mp += pl
	} else {
		sinop, cosop := math.Sincos(p.nodep)
		alfdp := sinip * sinop
		betdp := sinip * cosop
		dalf := ph*cosop + pinc*cosip*sinop
		dbet := -ph*sinop + pinc*cosip*cosop
		alfdp += dalf
		betdp += dbet
		p.nodep = math.Mod(p.nodep, twoPi)
		if p.nodep < 0 {
			p.nodep += twoPi
		}
		xls := p.mp + p.argpp + cosip*p.nodep
		dls := pl + pgh - pinc*p.nodep*sinip
		xls += dls
		xnoh := p.nodep
		p.nodep = math.Atan2(alfdp, betdp)
		if p.nodep < 0 {
			p.nodep += twoPi
		}
		if math.Abs(xnoh-p.nodep) > math.Pi {
			if p.nodep < xnoh {
				p.nodep += twoPi
			} else {
				p.nodep -= twoPi
			}
		}
		p.mp += pl
		p.argpp = xls - p.mp - cosip*p.nodep
	}

	if p.xincp < 0 {
		p.xincp = -p.xincp
		p.nodep += math.Pi
		p.argpp -= math.Pi
	}
}
