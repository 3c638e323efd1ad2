package sky

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestGreatCircle(t *testing.T) {
	gc := NewGreatCircle(-122.42, 37.77, -74.01, 40.71)
	if d := gc.Distance(); !scalar.EqualWithinAbs(d, 37.1335, 1e-4) {
		t.Fatalf("distance %f", d)
	}
	az, alt := gc.Waypoint(0.5)
	if !scalar.EqualWithinAbs(az, -98.754805, 1e-6) || !scalar.EqualWithinAbs(alt, 41.842196, 1e-6) {
		t.Fatalf("midpoint at %f %f", az, alt)
	}
	if a := gc.AltAtAz(az); !scalar.EqualWithinAbs(a, alt, 1e-5) {
		t.Fatalf("altitude at the midpoint azimuth %f", a)
	}
	if az, alt := gc.Waypoint(0); !scalar.EqualWithinAbs(az, -122.42, 1e-12) || !scalar.EqualWithinAbs(alt, 37.77, 1e-12) {
		t.Fatalf("start at %f %f", az, alt)
	}
	if az, alt := gc.Waypoint(1); !scalar.EqualWithinAbs(az, -74.01, 1e-12) || !scalar.EqualWithinAbs(alt, 40.71, 1e-12) {
		t.Fatalf("end at %f %f", az, alt)
	}
	// Every waypoint lies on the circle.
	for f := 0.1; f < 1; f += 0.2 {
		az, alt := gc.Waypoint(f)
		if a := gc.AltAtAz(az); !scalar.EqualWithinAbs(a, alt, 1e-6) {
			t.Fatalf("waypoint %f at %f %f off the circle (%f)", f, az, alt, a)
		}
	}
}

func TestGreatCircleDegenerate(t *testing.T) {
	gc := NewGreatCircle(10, 20, 10, 20)
	if gc.Distance() != 0 {
		t.Fatal("zero length arc")
	}
	if az, alt := gc.Waypoint(0.3); !scalar.EqualWithinAbs(az, 10, 1e-12) || !scalar.EqualWithinAbs(alt, 20, 1e-12) {
		t.Fatalf("degenerate waypoint %f %f", az, alt)
	}
}
