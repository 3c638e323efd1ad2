package sky

import (
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestKindFromString(t *testing.T) {
	for k := KindSun; k <= KindPluto; k++ {
		for _, name := range []string{k.String(), "  " + k.String() + " "} {
			got, err := KindFromString(name)
			if err != nil {
				t.Fatalf("%q: %s", name, err)
			}
			if got != k {
				t.Fatalf("%q gave %s", name, got)
			}
		}
	}
	if k, err := KindFromString("EARTH SHADOW"); err != nil || k != KindEarthShadow {
		t.Fatalf("shadow gave %s: %v", k, err)
	}
	if _, err := KindFromString("Vesta"); errors.Cause(err) != ErrUnknownBody {
		t.Fatalf("Vesta is not a major body: %v", err)
	}
}

func TestKindConfig(t *testing.T) {
	for k := KindSun; k <= KindPlanetMoon; k++ {
		cfg := k.Config()
		if cfg.Name == "" || cfg.RingInflation < 1 {
			t.Fatalf("%d: %+v", k, cfg)
		}
		if k.IsMajorPlanet() != (k >= KindMercury && k <= KindNeptune) {
			t.Fatalf("%s IsMajorPlanet=%t", k, k.IsMajorPlanet())
		}
	}
	if KindPluto.IsMajorPlanet() || KindSun.IsMajorPlanet() {
		t.Fatal("neither Pluto nor the Sun are major planets")
	}
	if KindSaturn.Config().RingInflation != 2.5 {
		t.Fatal("Saturn is drawn with its rings")
	}
	if unknown := Kind(200); unknown.String() != "Unknown" || unknown.Config().RingInflation != 1 {
		t.Fatalf("unknown kind %+v", unknown.Config())
	}
}

func TestKindUID(t *testing.T) {
	seen := make(map[uint64]Kind)
	for k := KindSun; k <= KindPluto; k++ {
		uid := k.UID()
		if uid>>60 != uidSolarSystem || (uid>>56)&0xf != uidBigObject {
			t.Fatalf("%s: UID %x has the wrong family", k, uid)
		}
		if other, dup := seen[uid]; dup {
			t.Fatalf("%s and %s share UID %x", k, other, uid)
		}
		seen[uid] = k
	}
	if KindSun.UID() != solarSystemUID(uidBigObject) {
		t.Fatalf("Sun UID %x", KindSun.UID())
	}
}

func TestHeliocentricSources(t *testing.T) {
	src := seriesSource{fixedTable("Mars", 1.2, 0.01, 1.5)}
	for _, jde := range []float64{J2000, 2448908.5} {
		lon, lat, r := src.Heliocentric(jde)
		if !scalar.EqualWithinAbs(lon, 1.2, 1e-12) || !scalar.EqualWithinAbs(lat, 0.01, 1e-12) || r != 1.5 {
			t.Fatalf("%f: %f %f %f", jde, lon, lat, r)
		}
	}
	if _, err := loadV87(KindPluto, "."); errors.Cause(err) != ErrUnknownBody {
		t.Fatalf("Pluto has no VSOP87 theory: %v", err)
	}
	if _, err := loadV87(KindMars, "does-not-exist"); errors.Cause(err) != ErrNoData {
		t.Fatalf("missing directory: %v", err)
	}
}

func TestTrail(t *testing.T) {
	tr := NewTrail(0)
	if tr.Cap() != 1 {
		t.Fatalf("capacity %d", tr.Cap())
	}
	if _, ok := tr.Last(); ok {
		t.Fatal("empty trail has a last point")
	}
	tr = NewTrail(3)
	for i := 1; i <= 5; i++ {
		tr.Add(*NewSkyPoint(Deg(float64(i)), Deg(0)))
	}
	if tr.Len() != 3 {
		t.Fatalf("length %d", tr.Len())
	}
	pts := tr.Points()
	for i, exp := range []float64{3, 4, 5} {
		if !scalar.EqualWithinAbs(pts[i].RA.Degrees(), exp, 1e-12) {
			t.Fatalf("point %d at %s, expected %f", i, pts[i].RA, exp)
		}
	}
	if last, ok := tr.Last(); !ok || !scalar.EqualWithinAbs(last.RA.Degrees(), 5, 1e-12) {
		t.Fatalf("last %s", last.RA)
	}
	tr.Clear()
	if tr.Len() != 0 || len(tr.Points()) != 0 {
		t.Fatal("not cleared")
	}
}
