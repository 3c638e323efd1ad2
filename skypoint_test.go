package sky

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

func mustParse(t *testing.T, str string, isDeg bool) Angle {
	a, err := ParseAngle(str, isDeg)
	if err != nil {
		t.Fatalf("could not parse %q: %s", str, err)
	}
	return a
}

// raDecWithin checks RA and Dec in degrees, the RA difference taken across 0°.
func raDecWithin(p *SkyPoint, ra, dec, raTol, decTol float64) bool {
	dRA := p.RA.DeltaAngle(Deg(ra)).Degrees()
	return math.Abs(dRA) < raTol && scalar.EqualWithinAbs(p.Dec.Degrees(), dec, decTol)
}

func TestPrecessionNED(t *testing.T) {
	testConfig()
	// Reference values from the NED coordinate calculator.
	const tol = 3e-4
	p := NewSkyPoint(mustParse(t, "18:22:54", false), mustParse(t, "34:23:19", true))
	p.Precess(NewNumbers(EpochToJD(1992.5)))
	if !raDecWithin(p, 275.65734620, 34.38447020, 15*tol, tol) {
		t.Fatalf("J1992.5: %s", p)
	}

	p.Set(mustParse(t, "23:24:25", false), mustParse(t, "-08:07:06", true))
	p.Precess(NewNumbers(EpochToJD(2016.8)))
	if !raDecWithin(p, 351.32145112, -8.02590004, 15*tol, tol) {
		t.Fatalf("J2016.8: %s", p)
	}
	p.Precess(NewNumbers(EpochToJD(2109.8)))
	if !raDecWithin(p, 352.52338626, -7.51340424, 15*tol, tol) {
		t.Fatalf("J2109.8: %s", p)
	}

	p.Set(mustParse(t, "11:22:33", false), mustParse(t, "44:55:66", true))
	p.B1950ToJ2000()
	if !raDecWithin(p, 171.32145647, 44.66010982, 15*tol, tol) {
		t.Fatalf("B1950 to J2000: %s", p)
	}
	// The catalogue coordinates were left alone.
	p.PrecessFromAnyEpoch(B1950, EpochToJD(2016.8))
	if !raDecWithin(p, 171.55045618, 44.56762158, 15*tol, tol) {
		t.Fatalf("B1950 to J2016.8: %s", p)
	}

	p.Set(mustParse(t, "11:22:33", false), mustParse(t, "44:55:66", true))
	p.J2000ToB1950()
	if !raDecWithin(p, 169.94978888, 45.20928652, 15*tol, tol) {
		t.Fatalf("J2000 to B1950: %s", p)
	}
	p.PrecessFromAnyEpoch(EpochToJD(2016.8), B1950)
	if !raDecWithin(p, 169.71785991, 45.30132855, 15*tol, tol) {
		t.Fatalf("J2016.8 to B1950: %s", p)
	}
}

func TestPrecessFromAnyEpochRoundTrip(t *testing.T) {
	testConfig()
	for _, c := range []struct{ ra, dec, epoch float64 }{
		{0, 0, 1800},
		{45.5, 60, 1900.5},
		{123.4, -45.6, 2050},
		{300, 89.5, 2200},
		{359.99, -89.9, 1950},
	} {
		jd := EpochToJD(c.epoch)
		p := NewSkyPoint(Deg(c.ra), Deg(c.dec))
		p.PrecessFromAnyEpoch(J2000, jd)
		back := NewSkyPoint(p.RA, p.Dec)
		back.PrecessFromAnyEpoch(jd, J2000)
		if !raDecWithin(back, c.ra, c.dec, 1e-6/math.Cos(c.dec*deg2rad), 1e-6) {
			t.Fatalf("%+v came back as %s", c, back)
		}
	}
}

func TestApparentCoord(t *testing.T) {
	testConfig()
	// Apparent places from the ASCOM transform component, 2028-04-27 06:30 UTC.
	jd := CalendarToJD(2028, 4, 27+6.5/24)
	for _, c := range []struct {
		ra, dec     float64 // J2000, hours and degrees
		jnRA, jnDec float64
	}{
		{4, 20, 4.0274, 20.0791},
		{10, -35, 10.0208, -35.1418},
		{10, -55, 10.01698, -55.14256},
		{22, 85, 21.9601, 85.1317},
		{15, -85, 15.1159, -85.1112},
	} {
		p := NewSkyPoint(Hours(c.ra), Deg(c.dec))
		p.ApparentCoord(J2000, jd, nil)
		if !scalar.EqualWithinAbs(p.RA.Hours(), c.jnRA, 1e-4) || !scalar.EqualWithinAbs(p.Dec.Degrees(), c.jnDec, 1e-4) {
			t.Fatalf("J2000 (%f, %f) gave %f %f instead of %f %f", c.ra, c.dec, p.RA.Hours(), p.Dec.Degrees(), c.jnRA, c.jnDec)
		}
	}
}

func TestCatalogueCoordInvertsApparent(t *testing.T) {
	testConfig()
	const tol = 0.02 / 3600
	for _, c := range []struct{ ra, dec, epoch float64 }{
		{15.32, 34.50, 2012.34},
		{72.96, 24.10, 2022.39},
		{188.52, -36.58, 2042.86},
		{239.22, -47.32, 2139.23},
		{278.78, 1.68, 2058.62},
		{172.59, 88.95, 2029.88},
		{145.22, -88.86, 2034.72},
		{280.74, 70.81, 2021.23},
	} {
		jd := EpochToJD(c.epoch)
		p := NewSkyPoint(Deg(c.ra), Deg(c.dec))
		p.ApparentCoord(J2000, jd, nil)

		q := NewSkyPoint(p.RA, p.Dec)
		cat := q.CatalogueCoord(jd)
		if !raDecWithin(cat, c.ra, c.dec, tol/math.Cos(c.dec*deg2rad), tol) {
			t.Fatalf("%+v: catalogue position %s", c, cat)
		}
		if q.RA0.Degrees() != cat.RA0.Degrees() || q.Dec0.Degrees() != cat.Dec0.Degrees() || q.LastPrecessJD() != J2000 {
			t.Fatal("catalogue coordinates were not stored")
		}
	}
}

func TestNutateAberrateInverse(t *testing.T) {
	testConfig()
	num := NewNumbers(2460000.5)
	for _, c := range []struct{ ra, dec float64 }{
		{10, 10}, {100, -45}, {200, 79.9}, {250, 85}, {30, -88}, {0, 0},
	} {
		p := NewSkyPoint(Deg(c.ra), Deg(c.dec))
		p.Nutate(num, false)
		moved := p.AngularDistanceTo(NewSkyPoint(Deg(c.ra), Deg(c.dec))).Degrees() * 3600
		if moved == 0 || moved > 25 {
			t.Fatalf("nutation moved (%f, %f) by %f\"", c.ra, c.dec, moved)
		}
		p.Nutate(num, true)
		if !raDecWithin(p, c.ra, c.dec, 1e-5/math.Cos(c.dec*deg2rad), 1e-5) {
			t.Fatalf("nutation of (%f, %f) not undone: %s", c.ra, c.dec, p)
		}

		p.Aberrate(num, false)
		moved = p.AngularDistanceTo(NewSkyPoint(Deg(c.ra), Deg(c.dec))).Degrees() * 3600
		if moved > 21 {
			t.Fatalf("aberration moved (%f, %f) by %f\"", c.ra, c.dec, moved)
		}
		p.Aberrate(num, true)
		if !raDecWithin(p, c.ra, c.dec, 1e-5/math.Cos(c.dec*deg2rad), 1e-5) {
			t.Fatalf("aberration of (%f, %f) not undone: %s", c.ra, c.dec, p)
		}
	}
}

func TestUpdateCoords(t *testing.T) {
	testConfig()
	num := NewNumbers(2460000.5)
	p := NewSkyPoint(Deg(83.63), Deg(22.01))
	p.UpdateCoords(num, nil, false)

	exp := NewSkyPoint(Deg(83.63), Deg(22.01))
	exp.Precess(num)
	exp.Nutate(num, false)
	exp.Aberrate(num, false)
	if p.RA.Degrees() != exp.RA.Degrees() || p.Dec.Degrees() != exp.Dec.Degrees() {
		t.Fatalf("UpdateCoords gave %s instead of %s", p, exp)
	}
	if p.LastPrecessJD() != num.JD() {
		t.Fatal("last precession epoch not recorded")
	}

	// Less than a minute later nothing changes unless forced.
	later := NewNumbers(num.JD() + 30./86400)
	ra := p.RA.Degrees()
	p.UpdateCoords(later, nil, false)
	if p.RA.Degrees() != ra || p.LastPrecessJD() != num.JD() {
		t.Fatal("coordinates recomputed within a minute")
	}
	p.UpdateCoords(later, nil, true)
	if p.LastPrecessJD() != later.JD() {
		t.Fatal("forced update ignored")
	}

	for _, dec := range []float64{89.9999, -89.9999, 90, -90} {
		pole := NewSkyPoint(Deg(12), Deg(dec))
		pole.UpdateCoords(NewNumbers(EpochToJD(2150)), nil, true)
		if d := pole.Dec.Degrees(); math.IsNaN(d) || math.Abs(d) > 90 {
			t.Fatalf("declination %f from %f", d, dec)
		}
	}
}

func TestHorizontalRoundTrip(t *testing.T) {
	lst := Deg(100)
	for _, lat := range []float64{-60, -20, 0, 35, 51.5, 78} {
		for _, c := range []struct{ ra, dec float64 }{
			{30, 10}, {150, -30}, {200, 60}, {320, -5}, {60, 80},
		} {
			p := NewSkyPoint(Deg(c.ra), Deg(c.dec))
			p.EquatorialToHorizontal(lst, Deg(lat))
			if alt := p.Alt.Degrees(); alt < -90 || alt > 90 {
				t.Fatalf("altitude %f", alt)
			}
			if az := p.Az.Degrees(); az < 0 || az >= 360 {
				t.Fatalf("azimuth %f", az)
			}
			q := &SkyPoint{Alt: p.Alt, Az: p.Az}
			if err := q.HorizontalToEquatorial(lst, Deg(lat)); err != nil {
				t.Fatalf("(%f, %f) at %f: %s", c.ra, c.dec, lat, err)
			}
			if !raDecWithin(q, c.ra, c.dec, 1e-5, 1e-6) {
				t.Fatalf("(%f, %f) at %f came back as %s", c.ra, c.dec, lat, q)
			}
		}
	}

	// A point on the meridian south of the zenith.
	p := NewSkyPoint(lst, Deg(0))
	p.EquatorialToHorizontal(lst, Deg(40))
	if !scalar.EqualWithinAbs(p.Alt.Degrees(), 50, 1e-9) || !scalar.EqualWithinAbs(p.Az.Degrees(), 180, 1e-5) {
		t.Fatalf("meridian point at alt %f az %f", p.Alt.Degrees(), p.Az.Degrees())
	}
	// East of the meridian the azimuth is below 180°.
	p = NewSkyPoint(lst.Add(Deg(30)), Deg(0))
	p.EquatorialToHorizontal(lst, Deg(40))
	if az := p.Az.Degrees(); az <= 90 || az >= 180 {
		t.Fatalf("rising point at azimuth %f", az)
	}
	// At the pole the azimuth stays finite.
	p.EquatorialToHorizontal(lst, Deg(90))
	if math.IsNaN(p.Az.Degrees()) {
		t.Fatal("azimuth undefined at the pole")
	}
}

func TestHorizontalToEquatorialInvalid(t *testing.T) {
	p := &SkyPoint{Alt: Deg(math.NaN()), Az: Deg(10)}
	err := p.HorizontalToEquatorial(Deg(0), Deg(45))
	if err == nil || errors.Cause(err) != ErrOutOfRange {
		t.Fatalf("expected an out of range error, got %v", err)
	}
}

func TestAngularDistance(t *testing.T) {
	for _, c := range []struct {
		ra1, dec1, ra2, dec2 float64
		dist, pa             float64
	}{
		{0, 0, 90, 0, 90, 90},
		{0, 0, 0, 10, 10, 0},
		{10, 0, 0, 0, 10, -90},
		{0, 90, 123, -90, 180, math.NaN()},
		{350, -20, 10, -20, 18.783, math.NaN()},
		{56.75, 24.12, 56.75, 24.12, 0, math.NaN()},
	} {
		a := NewSkyPoint(Deg(c.ra1), Deg(c.dec1))
		b := NewSkyPoint(Deg(c.ra2), Deg(c.dec2))
		d, pa := a.AngularDistancePA(b)
		if !scalar.EqualWithinAbs(d.Degrees(), c.dist, 1e-2) {
			t.Fatalf("distance %+v = %f", c, d.Degrees())
		}
		if back := b.AngularDistanceTo(a); !scalar.EqualWithinAbs(back.Degrees(), d.Degrees(), 1e-12) {
			t.Fatalf("distance not symmetric: %f and %f", d.Degrees(), back.Degrees())
		}
		if !math.IsNaN(c.pa) && !scalar.EqualWithinAbs(pa, c.pa, 1e-9) {
			t.Fatalf("position angle %+v = %f", c, pa)
		}
	}
}

func TestMoveAway(t *testing.T) {
	from := NewSkyPoint(Deg(100), Deg(20))
	p := NewSkyPoint(Deg(101), Deg(20.5))
	d0 := p.AngularDistanceTo(from).Degrees()
	for _, arcsec := range []float64{1.75, 60, -60} {
		moved := p.MoveAway(from, arcsec)
		d := moved.AngularDistanceTo(from).Degrees()
		if !scalar.EqualWithinAbs((d-d0)*3600, arcsec, 0.01*math.Abs(arcsec)) {
			t.Fatalf("moved by %f\" instead of %f\"", (d-d0)*3600, arcsec)
		}
	}
	if same := p.MoveAway(from, 0); same.RA != p.RA || same.Dec != p.Dec {
		t.Fatal("zero displacement moved the point")
	}
}

func TestEclipticRoundTrip(t *testing.T) {
	ob := NewNumbers(J2000).Obliquity()
	for _, c := range []struct{ ra, dec float64 }{{0, 0}, {90, 23.4}, {200, -45}, {270, -66.56}, {10, 89.99}} {
		p := NewSkyPoint(Deg(c.ra), Deg(c.dec))
		lon, lat := p.FindEcliptic(ob)
		q := &SkyPoint{}
		q.SetFromEcliptic(ob, lon, lat)
		if !raDecWithin(q, c.ra, c.dec, 1e-7/math.Cos(c.dec*deg2rad), 1e-7) {
			t.Fatalf("(%f, %f) came back as %s", c.ra, c.dec, q)
		}
	}
	// The summer solstice.
	p := NewSkyPoint(Deg(90), ob)
	if lon, lat := p.FindEcliptic(ob); !scalar.EqualWithinAbs(lon.Degrees(), 90, 1e-9) || !scalar.EqualWithinAbs(lat.Degrees(), 0, 1e-9) {
		t.Fatalf("solstice at %f %f", lon.Degrees(), lat.Degrees())
	}
}

func TestTransits(t *testing.T) {
	p := NewSkyPoint(Deg(0), Deg(80))
	lat := Deg(45)
	if !p.IsCircumpolar(lat) || p.MaxAlt(lat) != 55 || p.MinAlt(lat) != 35 {
		t.Fatalf("circumpolar %v max %f min %f", p.IsCircumpolar(lat), p.MaxAlt(lat), p.MinAlt(lat))
	}
	q := NewSkyPoint(Deg(0), Deg(-30))
	if q.IsCircumpolar(lat) || q.MaxAlt(lat) != 15 {
		t.Fatalf("circumpolar %v max %f", q.IsCircumpolar(lat), q.MaxAlt(lat))
	}
	// Half a sidereal day later the altitude is that of the lower transit.
	jd := 2460000.5
	lon := Deg(0)
	ra := LocalSiderealTime(jd, lon)
	p = NewSkyPoint(ra, Deg(80))
	if alt := p.FindAltitude(jd, lon, lat, 0); !scalar.EqualWithinAbs(alt.Degrees(), 55, 1e-6) {
		t.Fatalf("upper transit altitude %f", alt.Degrees())
	}
	if alt := p.FindAltitude(jd, lon, lat, 12*0.99726957); !scalar.EqualWithinAbs(alt.Degrees(), 35, 1e-3) {
		t.Fatalf("lower transit altitude %f", alt.Degrees())
	}
}
