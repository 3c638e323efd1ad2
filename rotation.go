package sky

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

const (
	// EarthRotationRate is the average Earth rotation rate in radians per second.
	EarthRotationRate = 7.2921158553e-5
)

// Rot313Vec converts a vector from the orbital plane (PQW) to the reference plane
// when called with (-ω, -i, -Ω).
func Rot313Vec(θ1, θ2, θ3 float64, vI []float64) []float64 {
	return MxV33(R3R1R3(θ1, θ2, θ3), vI)
}

// R3R1R3 performs a 3-1-3 Euler rotation: R3(θ3)·R1(θ2)·R3(θ1).
func R3R1R3(θ1, θ2, θ3 float64) *mat.Dense {
	var tmp, r mat.Dense
	tmp.Mul(R1(θ2), R3(θ1))
	r.Mul(R3(θ3), &tmp)
	return &r
}

// precessionMatrix returns the rotation from the mean equator of the starting epoch
// to that of the final epoch given the three precession angles ζ, z and θ (radians):
// R3(-z)·R2(θ)·R3(-ζ).
func precessionMatrix(ζ, z, θ float64) *mat.Dense {
	var tmp, r mat.Dense
	tmp.Mul(R3(-z), R2(θ))
	r.Mul(&tmp, R3(-ζ))
	return &r
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v []float64) []float64 {
	var r mat.VecDense
	r.MulVec(m, mat.NewVecDense(len(v), v))
	return []float64{r.AtVec(0), r.AtVec(1), r.AtVec(2)}
}

// MTxV33 multiplies the transpose of a matrix with a vector.
func MTxV33(m mat.Matrix, v []float64) []float64 {
	return MxV33(m.T(), v)
}
