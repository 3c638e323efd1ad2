package sky

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// dot performs the inner product.
func dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// sub returns a-b.
func sub(a, b []float64) []float64 {
	return floats.SubTo(make([]float64, len(a)), a, b)
}

// sphericalToCartesian returns the Cartesian vector of a longitude (or RA), latitude
// (or Dec) and radius.
func sphericalToCartesian(lon, lat, r float64) []float64 {
	sλ, cλ := math.Sincos(lon)
	sβ, cβ := math.Sincos(lat)
	return []float64{r * cβ * cλ, r * cβ * sλ, r * sβ}
}

// cartesianToSpherical is the inverse of sphericalToCartesian; the longitude is in [0, 2π).
func cartesianToSpherical(v []float64) (lon, lat, r float64) {
	r = norm(v)
	if r == 0 {
		return 0, 0, 0
	}
	lon = math.Atan2(v[1], v[0])
	if lon < 0 {
		lon += 2 * math.Pi
	}
	lat = math.Atan2(v[2], math.Hypot(v[0], v[1]))
	return
}

// clamp bounds x to [-1, 1] and reports whether it had to.
func clamp(x float64) (float64, bool) {
	if x > 1 {
		return 1, true
	}
	if x < -1 {
		return -1, true
	}
	return x, false
}

// reduceDeg maps d to [0, 360).
func reduceDeg(d float64) float64 {
	return d - 360*math.Floor(d/360)
}
