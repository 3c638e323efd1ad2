package sky

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	galileanNames      = []string{"Io", "Europa", "Ganymede", "Callisto"}
	galileanMagnitudes = []float64{5.0, 5.3, 4.6, 5.7}
)

// NewJupiterMoons returns the Galilean satellites.
func NewJupiterMoons() *PlanetMoons {
	return newPlanetMoons(KindJupiter, galileanMoons, galileanNames, galileanMagnitudes)
}

// galileanMoons is the theory of the Galilean satellites of Meeus ch. 44 (high
// accuracy method), in equatorial radii of Jupiter.
func galileanMoons(jd float64, jupiter EclipticPosition, sunLon Angle, sunR float64) []moonCoords {
	λ, β, Δ := primaryGeometry(jupiter, sunLon, sunR)

	// Days since 1976 August 10 0h, at the time the light left Jupiter.
	t := jd - 2443000.5 - lightTimeDaysPerAU*Δ

	// Mean longitudes of the satellites.
	l1 := (106.07947 + 203.488955432*t) * deg2rad
	l2 := (175.72938 + 101.374724550*t) * deg2rad
	l3 := (120.55434 + 50.317609110*t) * deg2rad
	l4 := (84.44868 + 21.571071314*t) * deg2rad

	// Longitudes of the perijoves.
	p1 := (58.3329 + 0.16103936*t) * deg2rad
	p2 := (132.8959 + 0.04647985*t) * deg2rad
	p3 := (187.2887 + 0.00712740*t) * deg2rad
	p4 := (335.3418 + 0.00183998*t) * deg2rad

	// Longitudes of the nodes on the equatorial plane of Jupiter.
	w1 := (311.0793 - 0.13279430*t) * deg2rad
	w2 := (100.5099 - 0.03263047*t) * deg2rad
	w3 := (119.1688 - 0.00717704*t) * deg2rad
	w4 := (322.5729 - 0.00175934*t) * deg2rad

	// Principal inequality in the longitude of Jupiter.
	G := (0.33033*math.Sin(2.85674+0.0000183469*t) + 0.03439*math.Sin(0.601894-0.000282274*t)) * deg2rad
	// Phase of free libration.
	fl := (191.8132 + 0.17390023*t) * deg2rad
	// Longitude of the node of the equator of Jupiter on the ecliptic.
	z := (316.5182 - 0.00000208*t) * deg2rad
	// Mean anomalies of Jupiter and Saturn, and the longitude of the perihelion of Jupiter.
	Gj := (30.23756+0.0830925701*t)*deg2rad + G
	Gs := (31.97853 + 0.0334597339*t) * deg2rad
	Pj := 13.469942 * deg2rad

	// Periodic terms in the longitudes, latitudes and radii.
	S1 := 0.47259*math.Sin(2*(l1-l2)) - 0.03480*math.Sin(p3-p4) - 0.01756*math.Sin(p1+p3-2*Pj-2*Gj) +
		0.01080*math.Sin(l2-2*l3+p3) + 0.00757*math.Sin(fl) + 0.00663*math.Sin(l2-2*l3+p4) + 0.00453*math.Sin(l1-p3) +
		0.00453*math.Sin(l2-2*l3+p2) - 0.00354*math.Sin(l1-l2) - 0.00317*math.Sin(2*z-2*Pj) - 0.00269*math.Sin(l2-2*l3+p1) +
		0.00263*math.Sin(l1-p4) + 0.00186*math.Sin(l1-p1) - 0.00186*math.Sin(Gj) + 0.00167*math.Sin(p2-p3) +
		0.00158*math.Sin(4*(l1-l2)) - 0.00155*math.Sin(l1-l3) - 0.00142*math.Sin(z+w3-2*Pj-2*Gj) -
		0.00115*math.Sin(2*(l1-2*l2+w2)) + 0.00089*math.Sin(p2-p4) + 0.00084*math.Sin(w2-w3) +
		0.00084*math.Sin(l1+p3-2*Pj-2*Gj) + 0.00053*math.Sin(z-w2)
	S2 := 1.06476*math.Sin(2*(l2-l3)) + 0.04253*math.Sin(l1-2*l2+p3) + 0.03579*math.Sin(l2-p3) +
		0.02383*math.Sin(l1-2*l2+p4) + 0.01977*math.Sin(l2-p4) - 0.01843*math.Sin(fl) + 0.01299*math.Sin(p3-p4) -
		0.01142*math.Sin(l2-l3) + 0.01078*math.Sin(l2-p2) - 0.01058*math.Sin(Gj) + 0.00870*math.Sin(l2-2*l3+p2) -
		0.00775*math.Sin(2*(z-Pj)) + 0.00524*math.Sin(2*(l1-l2)) - 0.00460*math.Sin(l1-l3) + 0.00450*math.Sin(l2-2*l3+p1) +
		0.00327*math.Sin(z+w3-2*Pj-2*Gj) - 0.00296*math.Sin(p1+p3-2*Pj-2*Gj) - 0.00151*math.Sin(2*Gj) +
		0.00146*math.Sin(z-w3) + 0.00125*math.Sin(z-w4) - 0.00117*math.Sin(l1-2*l3+p3) - 0.00095*math.Sin(2*(l2-w2)) +
		0.00086*math.Sin(l1-2*l2+w2) - 0.00086*math.Sin(5*Gs-Gj+0.911497) - 0.00078*math.Sin(l2-l4) -
		0.00064*math.Sin(l1-2*l3+p4) - 0.00063*math.Sin(3*l3-7*l4+4*p4) + 0.00061*math.Sin(p1-p4) +
		0.00058*math.Sin(2*(z-Pj-Gj)) + 0.00058*math.Sin(w3-w4) + 0.00056*math.Sin(2*(l2-l4)) + 0.00055*math.Sin(2*(l1-l3)) +
		0.00052*math.Sin(3*l3-7*l4+p3+3*p4) - 0.00043*math.Sin(l1-p3) + 0.00042*math.Sin(p3-p2) +
		0.00041*math.Sin(5*(l2-l3)) + 0.00041*math.Sin(p4-Pj) + 0.00038*math.Sin(l2-p1) + 0.00032*math.Sin(w2-w3) +
		0.00032*math.Sin(2*(l3-Gj-Pj)) + 0.00029*math.Sin(p1-p3)
	S3 := 0.16477*math.Sin(l3-p3) + 0.09062*math.Sin(l3-p4) - 0.06907*math.Sin(l2-l3) + 0.03786*math.Sin(p3-p4) +
		0.01844*math.Sin(2*(l3-l4)) - 0.01340*math.Sin(Gj) + 0.00703*math.Sin(l2-2*l3+p3) - 0.00670*math.Sin(2*(z-Pj)) -
		0.00540*math.Sin(l3-l4) + 0.00481*math.Sin(p1+p3-2*Pj-2*Gj) - 0.00409*math.Sin(l2-2*l3+p2) +
		0.00379*math.Sin(l2-2*l3+p4) + 0.00235*math.Sin(z-w3) + 0.00198*math.Sin(z-w4) + 0.00180*math.Sin(fl) +
		0.00129*math.Sin(3*(l3-l4)) + 0.00124*math.Sin(l1-l3) - 0.00119*math.Sin(5*Gs-2*Gj+0.911497) +
		0.00109*math.Sin(l1-l2) - 0.00099*math.Sin(3*l3-7*l4+4*p4) + 0.00091*math.Sin(w3-w4) +
		0.00081*math.Sin(3*l3-7*l4+p3+3*p4) - 0.00076*math.Sin(2*l2-3*l3+p3) + 0.00069*math.Sin(p4-Pj) -
		0.00058*math.Sin(2*l3-3*l4+p4) + 0.00057*math.Sin(l3+p3-2*Pj-2*Gj) - 0.00057*math.Sin(l3-2*l4+p4) -
		0.00052*math.Sin(p2-p3) - 0.00052*math.Sin(l2-2*l3+p1) + 0.00048*math.Sin(l3-2*l4+p3) -
		0.00045*math.Sin(2*l2-3*l3+p4) - 0.00041*math.Sin(p2-p4) - 0.00038*math.Sin(2*Gj) - 0.00033*math.Sin(p3-p4+w3-w4) -
		0.00032*math.Sin(3*l3-7*l4+2*p3+2*p4) + 0.00030*math.Sin(4*(l3-l4)) - 0.00029*math.Sin(w3+z-2*Pj-2*Gj) +
		0.00029*math.Sin(l3+p4-2*Pj-2*Gj) + 0.00026*math.Sin(l3-Pj-Gj) + 0.00024*math.Sin(l2-3*l3+2*l4) +
		0.00021*math.Sin(2*(l3-Pj-Gj)) - 0.00021*math.Sin(l3-p2) + 0.00017*math.Sin(2*(l3-p2))
	S4 := 0.84109*math.Sin(l4-p4) + 0.03429*math.Sin(p4-p3) - 0.03305*math.Sin(2*(z-Pj)) - 0.03211*math.Sin(Gj) -
		0.01860*math.Sin(l4-p3) + 0.01182*math.Sin(z-w4) + 0.00622*math.Sin(l4+p4-2*Gj-2*Pj) + 0.00385*math.Sin(2*(l4-p4)) -
		0.00284*math.Sin(5*Gs-2*Gj+0.911497) - 0.00233*math.Sin(2*(z-p4)) - 0.00223*math.Sin(l3-l4) -
		0.00208*math.Sin(l4-Pj) + 0.00177*math.Sin(z+w4-2*p4) + 0.00134*math.Sin(p4-Pj) + 0.00125*math.Sin(2*(l4-Gj-Pj)) -
		0.00117*math.Sin(2*Gj) - 0.00112*math.Sin(2*(l3-l4)) + 0.00106*math.Sin(3*l3-7*l4+4*p4) + 0.00102*math.Sin(l4-Gj-Pj) +
		0.00096*math.Sin(2*l4-z-w4) + 0.00087*math.Sin(2*(z-w4)) - 0.00087*math.Sin(3*l3-7*l4+p3+3*p4) +
		0.00085*math.Sin(l3-2*l4+p4) - 0.00081*math.Sin(2*(l4-z)) + 0.00071*math.Sin(l4+p4-2*Pj-2*Gj) +
		0.00060*math.Sin(l1-l4) - 0.00056*math.Sin(z-w3) - 0.00055*math.Sin(l3-2*l4+p3) + 0.00051*math.Sin(l2-l4) +
		0.00042*math.Sin(2*(z-Gj-Pj)) + 0.00039*math.Sin(2*(p4-w4)) + 0.00036*math.Sin(z+Pj-p4-w4) +
		0.00035*math.Sin(2*Gs-Gj+3.28767) - 0.00035*math.Sin(l4-p4+2*Pj-2*z) - 0.00032*math.Sin(l4+p4-2*Pj-Gj) +
		0.00030*math.Sin(3*l3-7*l4+2*p3+2*p4) + 0.00030*math.Sin(2*Gs-2*Gj+2.60316) + 0.00028*math.Sin(l4-p4+2*z-2*Pj) -
		0.00028*math.Sin(2*(l4-w4)) - 0.00027*math.Sin(p3-p4+w3-w4) - 0.00026*math.Sin(5*Gs-3*Gj+3.28767) +
		0.00025*math.Sin(w4-w3) - 0.00025*math.Sin(l2-3*l3+2*l4) - 0.00023*math.Sin(3*(l3-l4)) +
		0.00021*math.Sin(2*l4-2*Pj-3*Gj) - 0.00021*math.Sin(2*l3-3*l4+p4) + 0.00019*math.Sin(l4-p4-Gj) -
		0.00019*math.Sin(2*l4-p4+Gj) - 0.00018*math.Sin(l4-p4+Gj) - 0.00016*math.Sin(l4+p3-2*Pj-2*Gj)
	S1 *= deg2rad
	S2 *= deg2rad
	S3 *= deg2rad
	S4 *= deg2rad
	L1 := l1 + S1
	L2 := l2 + S2
	L3 := l3 + S3
	L4 := l4 + S4
	tb := 0.0006502*math.Sin(L1-w1) + 0.0001835*math.Sin(L1-w2) + 0.0000329*math.Sin(L1-w3) - 0.0000311*math.Sin(L1-z) +
		0.0000093*math.Sin(L1-w4) + 0.0000075*math.Sin(3*L1-4*l2-1.9927*S1+w2) + 0.0000046*math.Sin(L1+z-2*Pj-2*Gj)
	b1 := math.Atan(tb)
	tb = 0.0081275*math.Sin(L2-w2) + 0.0004512*math.Sin(L2-w3) - 0.0003286*math.Sin(L2-z) + 0.0001164*math.Sin(L2-w4) +
		0.0000273*math.Sin(l1-2*l3+1.0146*S2+w2) + 0.0000143*math.Sin(L2+z-2*Pj-2*Gj) - 0.0000143*math.Sin(L2-w1) +
		0.0000035*math.Sin(L2-z+Gj) - 0.0000028*math.Sin(l1-2*l3+1.0146*S2+w3)
	b2 := math.Atan(tb)
	tb = 0.0032364*math.Sin(L3-w3) - 0.0016911*math.Sin(L3-z) + 0.0006849*math.Sin(L3-w4) - 0.0002806*math.Sin(L3-w2) +
		0.0000321*math.Sin(L3+z-2*Pj-2*Gj) + 0.0000051*math.Sin(L3-z+Gj) - 0.0000045*math.Sin(L3-z-Gj) -
		0.0000045*math.Sin(L3+z-2*Pj) + 0.0000037*math.Sin(L3+z-2*Pj-3*Gj) + 0.0000030*math.Sin(2*l2-3*L3+4.03*S3+w2) -
		0.0000021*math.Sin(2*l2-3*L3+4.03*S3+w3)
	b3 := math.Atan(tb)
	tb = -0.0076579*math.Sin(L4-z) + 0.0044148*math.Sin(L4-w4) - 0.0005106*math.Sin(L4-w3) +
		0.0000773*math.Sin(L4+z-2*Pj-2*Gj) + 0.0000104*math.Sin(L4-z+Gj) - 0.0000102*math.Sin(L4-z-Gj) +
		0.0000088*math.Sin(L4+z-2*Pj-3*Gj) - 0.0000038*math.Sin(L4+z-2*Pj-Gj)
	b4 := math.Atan(tb)
	r1 := 5.90730 * (1.0 + -0.0041339*math.Cos(2*(l1-l2)) - 0.0000395*math.Cos(l1-p3) - 0.0000214*math.Cos(l1-p4) +
		0.0000170*math.Cos(l1-l2) - 0.0000162*math.Cos(l1-p1) - 0.0000130*math.Cos(4*(l1-l2)) + 0.0000106*math.Cos(l1-l3) -
		0.0000063*math.Cos(l1+p3-2*Pj-2*Gj))
	r2 := 9.39912 * (1.0 + 0.0093847*math.Cos(l1-l2) - 0.0003114*math.Cos(l2-p3) - 0.0001738*math.Cos(l2-p4) -
		0.0000941*math.Cos(l2-p2) + 0.0000553*math.Cos(l2-l3) + 0.0000523*math.Cos(l1-l3) - 0.0000290*math.Cos(2*(l1-l2)) +
		0.0000166*math.Cos(2*(l2-w2)) + 0.0000107*math.Cos(l1-2*l3+p3) - 0.0000102*math.Cos(l2-p1) -
		0.0000091*math.Cos(2*(l1-l3)))
	r3 := 14.99240 * (1.0 + -0.0014377*math.Cos(l3-p3) - 0.0007904*math.Cos(l3-p4) + 0.0006342*math.Cos(l2-l3) -
		0.0001758*math.Cos(2*(l3-l4)) + 0.0000294*math.Cos(l3-l4) - 0.0000156*math.Cos(3*(l3-l4)) +
		0.0000155*math.Cos(l1-l3) - 0.0000153*math.Cos(l1-l2) + 0.0000070*math.Cos(2*l2-3*l3+p3) -
		0.0000051*math.Cos(l3+p3-2*Pj-2*Gj))
	r4 := 26.36990 * (1.0 + -0.0073391*math.Cos(l4-p4) + 0.0001620*math.Cos(l4-p3) + 0.0000974*math.Cos(l3-l4) -
		0.0000541*math.Cos(l4+p4-2*Pj-2*Gj) - 0.0000269*math.Cos(2*(l4-p4)) + 0.0000182*math.Cos(l4-Pj) +
		0.0000177*math.Cos(2*(l3-l4)) - 0.0000167*math.Cos(2*l4-z-w4) + 0.0000167*math.Cos(z-w4) -
		0.0000155*math.Cos(2*(l4-Pj-Gj)) + 0.0000142*math.Cos(2*(l4-z)) + 0.0000104*math.Cos(l1-l4) +
		0.0000092*math.Cos(l2-l4) - 0.0000089*math.Cos(l4-Pj-Gj) - 0.0000062*math.Cos(l4+p4-2*Pj-3*Gj) +
		0.0000048*math.Cos(2*(l4-w4)))

	// Inclination of the axis of Jupiter on its orbit, and precession since B1950.
	I := (3.120262 + 0.0006*(jd-2415020.5)/daysPerCentury) * deg2rad
	tb1950 := (jd - 2433282.423) / daysPerCentury
	P := (1.3966626*tb1950 + 0.0003088*tb1950*tb1950) * deg2rad
	L1 += P
	L2 += P
	L3 += P
	L4 += P
	z += P

	pos := [][3]float64{
		{r1 * math.Cos(L1-z) * math.Cos(b1), r1 * math.Sin(L1-z) * math.Cos(b1), r1 * math.Sin(b1)},
		{r2 * math.Cos(L2-z) * math.Cos(b2), r2 * math.Sin(L2-z) * math.Cos(b2), r2 * math.Sin(b2)},
		{r3 * math.Cos(L3-z) * math.Cos(b3), r3 * math.Sin(L3-z) * math.Cos(b3), r3 * math.Sin(b3)},
		{r4 * math.Cos(L4-z) * math.Cos(b4), r4 * math.Sin(L4-z) * math.Cos(b4), r4 * math.Sin(b4)},
		{0, 0, 1},
	}

	// Ascending node and inclination of the orbit of Jupiter on the ecliptic of date.
	T := JulianCenturies(jd)
	Ω := (100.464441 + 1.0209550*T + 0.00040117*T*T + 0.000000569*T*T*T) * deg2rad
	inc := (1.303270 - 0.0054966*T + 0.00000465*T*T - 0.000000004*T*T*T) * deg2rad

	// Equator of Jupiter, orbit of Jupiter, ecliptic of date, sky.
	var toEcliptic, toSky mat.Dense
	toEcliptic.Mul(R3(-Ω), R1(-inc))
	toEcliptic.Mul(&toEcliptic, R3(-(z - Ω)))
	toEcliptic.Mul(&toEcliptic, R1(-I))
	toSky.Mul(skyRotation(λ, β), &toEcliptic)
	return projectMoons(pos, &toSky)
}
