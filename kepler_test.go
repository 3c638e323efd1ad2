package sky

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestSolveKepler(t *testing.T) {
	for _, test := range []struct {
		M, e, E float64
	}{
		{5, 0.1, 5.554589},
		{60, 0.5, 88.639818},
		{120, 0.9, 147.617360},
		{3, 0.97, 34.395582},
		{359, 0.5, 358.000406},
		{42, 0, 42},
	} {
		E, converged := SolveKepler(test.M, test.e)
		if !converged {
			t.Fatalf("M=%f e=%f did not converge", test.M, test.e)
		}
		if !scalar.EqualWithinAbs(E, test.E, keplerTolerance) {
			t.Fatalf("M=%f e=%f: E=%f expected %f", test.M, test.e, E, test.E)
		}
		// The solution satisfies the equation.
		if M := E - test.e*rad2deg*math.Sin(E*deg2rad); !scalar.EqualWithinAbs(M, test.M, keplerTolerance) {
			t.Fatalf("M=%f e=%f: E=%f gives M=%f", test.M, test.e, E, M)
		}
	}
}

func TestSolveKeplerCap(t *testing.T) {
	E, iter, converged := solveKepler(120, 0.9, 1)
	if converged || iter != 1 {
		t.Fatalf("one iteration should not be enough: iter=%d converged=%t", iter, converged)
	}
	if math.IsNaN(E) {
		t.Fatal("the last iterate should be returned")
	}
	_, iter, converged = solveKepler(5, 0.1, keplerMaxIter)
	if !converged || iter > 3 {
		t.Fatalf("iter=%d converged=%t", iter, converged)
	}
}

func TestNearParabolic(t *testing.T) {
	if UsesNearParabolic(0.98) || !UsesNearParabolic(0.9801) || !UsesNearParabolic(1.2) {
		t.Fatal("the near-parabolic branch starts beyond e=0.98")
	}
	// At e=0.98 both methods apply: the elliptic solution is the reference.
	const q, e = 0.5, 0.98
	for _, test := range []struct {
		dt, v, r float64
	}{
		{10, 36.581426, 0.554016},
		{30, 79.861259, 0.844341},
		{60, 105.681168, 1.346716},
		{-45, -95.740735, 1.097593},
	} {
		v, r := NearParabolic(test.dt, q, e)
		if !scalar.EqualWithinAbs(v, test.v, 1e-3) || !scalar.EqualWithinAbs(r, test.r, 1e-4) {
			t.Fatalf("dt=%f: v=%f r=%f expected v=%f r=%f", test.dt, v, r, test.v, test.r)
		}
	}
	if v, r := NearParabolic(0, q, e); v != 0 || r != q {
		t.Fatalf("at perihelion v=%f r=%f", v, r)
	}
	// Parabola: Barker's equation, tan(v/2) + tan³(v/2)/3 = k dt / sqrt(2q³).
	v, r := NearParabolic(100, 1, 1)
	w := math.Tan(v * deg2rad / 2)
	if lhs, rhs := w+w*w*w/3, gaussK*100/math.Sqrt(2); !scalar.EqualWithinAbs(lhs, rhs, 1e-9) {
		t.Fatalf("Barker: %f != %f", lhs, rhs)
	}
	if !scalar.EqualWithinAbs(r, 1+w*w, 1e-9) {
		t.Fatalf("parabola r=%f", r)
	}
}
