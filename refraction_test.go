package sky

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestRefraction(t *testing.T) {
	// About 29' at the horizon and 1' at 45°.
	if r := RefractionCorr(0) * 60; !scalar.EqualWithinAbs(r, 29.0, 0.1) {
		t.Fatalf("horizon refraction %f'", r)
	}
	if r := RefractionCorr(45) * 60; !scalar.EqualWithinAbs(r, 1.0, 0.05) {
		t.Fatalf("refraction at 45° = %f'", r)
	}
	if Refract(12.3, false) != 12.3 || Unrefract(12.3, false) != 12.3 {
		t.Fatal("unconditional refraction changed the altitude")
	}
	if Refract(-90, true) != -90 {
		t.Fatal("no refraction at the nadir")
	}
	prev := Refract(-90, true)
	for alt := -89.5; alt <= 90; alt += 0.5 {
		r := Refract(alt, true)
		if r <= prev {
			t.Fatalf("refracted altitude not increasing at %f: %f <= %f", alt, r, prev)
		}
		if r < alt {
			t.Fatalf("refraction lowered %f to %f", alt, r)
		}
		prev = r
		if alt < -1 {
			continue
		}
		if back := Unrefract(r, true); !scalar.EqualWithinAbs(back, alt, 2e-4) {
			t.Fatalf("unrefract(refract(%f)) = %f", alt, back)
		}
	}
}

func TestRefractionNearZenith(t *testing.T) {
	prevCorr, prevAlt := RefractionCorr(89.8), Refract(89.8, true)
	for _, alt := range []float64{89.85, 89.88, 89.9, 89.95, 89.99, 90} {
		corr := RefractionCorr(alt)
		if corr < 0 {
			t.Fatalf("negative refraction %g\" at %f", corr*3600, alt)
		}
		if corr > prevCorr {
			t.Fatalf("refraction grows from %g\" to %g\" at %f", prevCorr*3600, corr*3600, alt)
		}
		r := Refract(alt, true)
		if r < alt || r <= prevAlt {
			t.Fatalf("refract(%f) = %f after %f", alt, r, prevAlt)
		}
		prevCorr, prevAlt = corr, r
	}
	if RefractionCorr(90) != 0 || Refract(90, true) != 90 {
		t.Fatalf("zenith refracted to %f", Refract(90, true))
	}
	if back := Unrefract(90, true); !scalar.EqualWithinAbs(back, 90, 1e-4) {
		t.Fatalf("unrefract(90) = %f", back)
	}
}

func TestAltRefracted(t *testing.T) {
	testConfig()
	p := &SkyPoint{Alt: Deg(10)}
	app := p.AltRefracted()
	if app.Degrees() <= 10 {
		t.Fatalf("apparent altitude %f", app.Degrees())
	}
	p.SetAltRefracted(app)
	if !scalar.EqualWithinAbs(p.Alt.Degrees(), 10, 2e-4) {
		t.Fatalf("true altitude %f", p.Alt.Degrees())
	}

	config.Refraction = false
	defer testConfig()
	if a := p.AltRefracted(); a.Degrees() != p.Alt.Degrees() {
		t.Fatal("refraction applied while disabled")
	}
}
