package sky

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestRadialVelocityChain(t *testing.T) {
	testConfig()
	jd := 2460000.5
	p := NewSkyPoint(Deg(83.82), Deg(-5.39))
	vsite := SiteVelocity(LocalSiderealTime(jd, Deg(-70.7)), Deg(-30.2), 2.7)

	vlsr := 12.5
	vhelio := p.VHeliocentric(vlsr, J2000)
	vgeo := p.VGeocentric(vhelio, jd)
	vtopo := p.VTopocentric(vgeo, vsite)
	if back := p.VHelioToVLSR(p.VGeoToVHelio(p.VTopoToVGeo(vtopo, vsite), jd), J2000); !scalar.EqualWithinAbs(back, vlsr, 1e-12) {
		t.Fatalf("velocity chain returned %f instead of %f", back, vlsr)
	}
	for _, c := range []struct {
		name string
		v    float64
		max  float64
	}{
		{"sun", p.VRSun(J2000), solarApexV},
		{"earth", p.VREarth(jd), 30.3},
		{"site", p.VRSite(vsite), 0.47},
	} {
		if math.Abs(c.v) > c.max {
			t.Fatalf("%s contribution %f km/s", c.name, c.v)
		}
	}
}

func TestVRSunTowardsApex(t *testing.T) {
	apex := NewSkyPoint(Deg(solarApexRA), Deg(solarApexDec))
	if v := apex.VRSun(J2000); !scalar.EqualWithinAbs(v, solarApexV, 1e-9) {
		t.Fatalf("velocity towards the apex %f", v)
	}
	anti := NewSkyPoint(Deg(solarApexRA-180), Deg(-solarApexDec))
	if v := anti.VRSun(J2000); !scalar.EqualWithinAbs(v, -solarApexV, 1e-9) {
		t.Fatalf("velocity away from the apex %f", v)
	}
}

func TestVREarthAnnual(t *testing.T) {
	// The ecliptic pole sees almost none of the Earth's orbital motion, a star on the
	// ecliptic 90° behind the Sun sees all of it.
	num := NewNumbers(2460000.5)
	pole := &SkyPoint{}
	pole.SetFromEcliptic(num.Obliquity(), Deg(0), Deg(90))
	pole.Set(pole.RA, pole.Dec)
	if v := pole.VREarth(num.JD()); math.Abs(v) > 0.5 {
		t.Fatalf("ecliptic pole %f km/s", v)
	}
	apex := &SkyPoint{}
	apex.SetFromEcliptic(num.Obliquity(), num.SunTrueLongitude().Sub(Deg(90)), Deg(0))
	apex.Set(apex.RA, apex.Dec)
	if v := apex.VREarth(num.JD()); v < 29 || v > 30.5 {
		t.Fatalf("apex of the Earth's way %f km/s", v)
	}
}

func TestSiteVelocity(t *testing.T) {
	v := SiteVelocity(Deg(0), Deg(0), 0)
	if !scalar.EqualWithinAbs(v[1], 0.4651, 1e-4) || v[0] != 0 || v[2] != 0 {
		t.Fatalf("equatorial site velocity %v", v)
	}
	if v := SiteVelocity(Deg(45), Deg(90), 0); norm(v[:]) > 1e-15 {
		t.Fatalf("polar site velocity %v", v)
	}
}
