package sky

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func vectorsEqual(a, b []float64, tol float64) bool {
	return floats.EqualApprox(a, b, tol)
}

func TestR1R2R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r2 := R2(x)
	r3 := R3(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r2.At(1, 1) || r1.At(0, 0) != r3.At(2, 2) || r3.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R2.At(1, 1) = R3.At(2, 2) = 1")
	}
	// Test items equal to 0.
	if r1.At(0, 1) != r1.At(0, 2) || r1.At(1, 0) != r1.At(2, 0) || r1.At(0, 1) != 0 {
		t.Fatal("misplaced zeros in R1")
	}
	if r2.At(0, 1) != r2.At(1, 2) || r2.At(1, 0) != r2.At(1, 2) || r2.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R2")
	}
	if r3.At(2, 0) != r3.At(2, 1) || r3.At(0, 2) != r3.At(1, 2) || r3.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R3")
	}
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced")
	}
	if r2.At(0, 0) != r2.At(2, 2) || r2.At(2, 2) != c {
		t.Fatal("expected R2 cosines misplaced")
	}
	if r2.At(2, 0) != -r2.At(0, 2) || r2.At(2, 0) != s {
		t.Fatal("expected R2 sines misplaced")
	}
	if r3.At(1, 1) != r3.At(0, 0) || r3.At(0, 0) != c {
		t.Fatal("expected R3 cosines misplaced")
	}
	if r3.At(0, 1) != -r3.At(1, 0) || r3.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced")
	}
}

func TestRot313(t *testing.T) {
	var R1R3, R3R1R3m mat.Dense
	θ1 := math.Pi / 17
	θ2 := math.Pi / 16
	θ3 := math.Pi / 15
	R1R3.Mul(R1(θ2), R3(θ1))
	R3R1R3m.Mul(R3(θ3), &R1R3)
	if !mat.EqualApprox(&R3R1R3m, R3R1R3(θ1, θ2, θ3), 1e-15) {
		t.Logf("\n%v", mat.Formatted(&R3R1R3m))
		t.Logf("\n%v", mat.Formatted(R3R1R3(θ1, θ2, θ3)))
		t.Fatal("failed")
	}
}

func TestPQWToReference(t *testing.T) {
	// Vallado example 2-6.
	i := 87.87 * deg2rad
	ω := 53.38 * deg2rad
	Ω := 227.89 * deg2rad
	Rp := Rot313Vec(-ω, -i, -Ω, []float64{-466.7639, 11447.0219, 0})
	Re := []float64{6525.368103709379, 6861.531814548294, 6449.118636407358}
	if !vectorsEqual(Re, Rp, 1e-9) {
		t.Fatalf("R conversion failed: %v", Rp)
	}
	Vp := Rot313Vec(-ω, -i, -Ω, []float64{-5.996222, 4.753601, 0})
	Ve := []float64{4.902278620687254, 5.533139558121602, -1.9757104281719946}
	if !vectorsEqual(Ve, Vp, 1e-9) {
		t.Fatalf("V conversion failed: %v", Vp)
	}
}

func TestPrecessionMatrixIsRotation(t *testing.T) {
	for _, T := range []float64{-2, -0.5, 0.1, 1, 3} {
		P := iau1976Precession(T)
		var PPt mat.Dense
		PPt.Mul(P, P.T())
		if !mat.EqualApprox(&PPt, mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-14) {
			t.Fatalf("precession matrix for T=%f is not orthonormal\n%v", T, mat.Formatted(&PPt))
		}
		if d := mat.Det(P); !scalar.EqualWithinAbs(d, 1, 1e-14) {
			t.Fatalf("det(P)=%f", d)
		}
	}
	if !mat.EqualApprox(iau1976Precession(0), mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-15) {
		t.Fatal("precession at J2000 should be the identity")
	}
}
