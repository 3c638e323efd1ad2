package sky

import (
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/nutation"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestNumbersMeeus22a(t *testing.T) {
	// Meeus example 22.a: 1987 April 10, 0h TD.
	num := NewNumbersPrecision(2446895.5, true)
	for _, c := range []struct {
		name     string
		got, exp float64 // arcseconds
		tol      float64
	}{
		{"Δψ", num.DEcLong().Degrees() * 3600, -3.788, 1e-3},
		{"Δε", num.DObliq().Degrees() * 3600, 9.443, 1e-3},
		{"ε0", (num.MeanObliquity().Degrees() - 23 - 26./60) * 3600, 27.407, 1e-3},
		{"ε", (num.Obliquity().Degrees() - 23 - 26./60) * 3600, 36.850, 2e-3},
	} {
		if !scalar.EqualWithinAbs(c.got, c.exp, c.tol) {
			t.Fatalf("%s = %f\" instead of %f\"", c.name, c.got, c.exp)
		}
	}
}

func TestNumbersAgainstMeeus(t *testing.T) {
	for _, jd := range []float64{2415020.5, 2440000.5, J2000, 2460000.5, 2488069.5} {
		num := NewNumbersPrecision(jd, true)
		Δψ, Δε := nutation.Nutation(jd)
		if !scalar.EqualWithinAbs(num.DEcLong().Radians(), Δψ.Rad(), 1e-3*arcsec2rad) {
			t.Fatalf("Δψ(%f) = %f\" meeus %f\"", jd, num.DEcLong().Degrees()*3600, Δψ.Deg()*3600)
		}
		if !scalar.EqualWithinAbs(num.DObliq().Radians(), Δε.Rad(), 1e-3*arcsec2rad) {
			t.Fatalf("Δε(%f) = %f\" meeus %f\"", jd, num.DObliq().Degrees()*3600, Δε.Deg()*3600)
		}
		ε0 := nutation.MeanObliquityLaskar(jd)
		if !scalar.EqualWithinAbs(num.MeanObliquity().Radians(), ε0.Rad(), 1e-4*arcsec2rad) {
			t.Fatalf("ε0(%f) = %f meeus %f", jd, num.MeanObliquity().Degrees(), ε0.Deg())
		}
		// The four principal terms are good to about half an arcsecond.
		fast := NewNumbersPrecision(jd, false)
		if !scalar.EqualWithinAbs(fast.DEcLong().Degrees()*3600, Δψ.Deg()*3600, 0.5) {
			t.Fatalf("low precision Δψ(%f) = %f\" meeus %f\"", jd, fast.DEcLong().Degrees()*3600, Δψ.Deg()*3600)
		}
		if !scalar.EqualWithinAbs(fast.DObliq().Degrees()*3600, Δε.Deg()*3600, 0.2) {
			t.Fatalf("low precision Δε(%f) = %f\" meeus %f\"", jd, fast.DObliq().Degrees()*3600, Δε.Deg()*3600)
		}
	}
}

func TestNumbersPrecessionMatrices(t *testing.T) {
	num := NewNumbersPrecision(EpochToJD(2050), true)
	var prod mat.Dense
	prod.Mul(num.PrecessFrom2000(), num.PrecessTo2000())
	if !mat.EqualApprox(&prod, mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-14) {
		t.Fatalf("to and from J2000 are not inverse\n%v", mat.Formatted(&prod))
	}
	prod.Mul(num.PrecessFrom1950(), num.PrecessTo1950())
	if !mat.EqualApprox(&prod, mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-14) {
		t.Fatalf("B1950 matrices are not inverse\n%v", mat.Formatted(&prod))
	}
	// The equinox moves by about 50.3" a year along the ecliptic: after fifty years
	// the J2000 equinox direction has an RA of about +0.64°.
	v := MxV33(num.PrecessFrom2000(), []float64{1, 0, 0})
	ra, _, _ := cartesianToSpherical(v)
	if ra > math.Pi {
		ra -= 2 * math.Pi
	}
	if !scalar.EqualWithinAbs(ra*rad2deg, 50*50.3/3600*math.Cos(23.44*deg2rad), 0.01) {
		t.Fatalf("equinox moved by %f°", ra*rad2deg)
	}
}

func TestNumbersSunAndEarth(t *testing.T) {
	// Meeus example 25.a: 1992 October 13, 0h TD.
	num := NewNumbersPrecision(2448908.5, true)
	if !scalar.EqualWithinAbs(num.SunTrueLongitude().Degrees(), 199.90988, 1e-4) {
		t.Fatalf("true longitude = %f", num.SunTrueLongitude().Degrees())
	}
	if !scalar.EqualWithinAbs(num.SunMeanAnomaly().Degrees(), 278.99397, 1e-4) {
		t.Fatalf("mean anomaly = %f", num.SunMeanAnomaly().Degrees())
	}
	if !scalar.EqualWithinAbs(num.EarthEccentricity(), 0.016711668, 1e-7) {
		t.Fatalf("eccentricity = %f", num.EarthEccentricity())
	}
	if !scalar.EqualWithinAbs(num.Aberration().Degrees()*3600, 20.49552, 1e-9) {
		t.Fatal("wrong constant of aberration")
	}

	v := NewNumbersPrecision(J2000, true).VEarth()
	if speed := norm(v); speed < 29.2 || speed > 30.4 {
		t.Fatalf("Earth speed = %f km/s", speed)
	}
	// Early January the Earth moves towards -x with a small -y, -z component.
	if !vectorsEqual(v, []float64{-29.79, -5.03, -2.18}, 0.1) {
		t.Fatalf("vEarth at J2000 = %v", v)
	}
}

func TestNumbersImmutable(t *testing.T) {
	num := NewNumbersPrecision(2460000.5, true)
	v := num.VEarth()
	v[0] = 0
	if num.VEarth()[0] == 0 {
		t.Fatal("VEarth must return a copy")
	}
	if num.JD() != 2460000.5 || num.JulianMillennia() != num.JulianCenturies()/10 {
		t.Fatal("wrong epoch")
	}
}
