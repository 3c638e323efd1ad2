package sky

import "math"

// GreatCircle is the great circle through two horizontal positions, azimuth taken as
// the longitude and altitude as the latitude.
type GreatCircle struct {
	az1, alt1, az2, alt2 float64 // radians
	d                    float64 // angular distance, radians
}

// NewGreatCircle returns the great circle from (az1, alt1) to (az2, alt2), in degrees.
func NewGreatCircle(az1, alt1, az2, alt2 float64) GreatCircle {
	gc := GreatCircle{az1: az1 * deg2rad, alt1: alt1 * deg2rad, az2: az2 * deg2rad, alt2: alt2 * deg2rad}
	sΔφ := math.Sin((gc.alt2 - gc.alt1) / 2)
	sΔλ := math.Sin((gc.az2 - gc.az1) / 2)
	gc.d = 2 * math.Asin(math.Sqrt(sΔφ*sΔφ+math.Cos(gc.alt1)*math.Cos(gc.alt2)*sΔλ*sΔλ))
	return gc
}

// Distance returns the angular length of the arc, in degrees.
func (gc GreatCircle) Distance() float64 {
	return gc.d * rad2deg
}

// Waypoint returns the azimuth and altitude, in degrees, of the point at fraction of
// the way along the arc. Fractions 0 and 1 return the endpoints.
func (gc GreatCircle) Waypoint(fraction float64) (az, alt float64) {
	switch {
	case fraction == 0 || gc.d == 0:
		return gc.az1 * rad2deg, gc.alt1 * rad2deg
	case fraction == 1:
		return gc.az2 * rad2deg, gc.alt2 * rad2deg
	}
	sd := math.Sin(gc.d)
	A := math.Sin((1-fraction)*gc.d) / sd
	B := math.Sin(fraction*gc.d) / sd
	v1 := sphericalToCartesian(gc.az1, gc.alt1, A)
	v2 := sphericalToCartesian(gc.az2, gc.alt2, B)
	x, y, z := v1[0]+v2[0], v1[1]+v2[1], v1[2]+v2[2]
	return math.Atan2(y, x) * rad2deg, math.Atan2(z, math.Hypot(x, y)) * rad2deg
}

// AltAtAz returns the altitude, in degrees, where the great circle crosses the azimuth.
// The circle must not be a meridian (equal endpoint azimuths).
func (gc GreatCircle) AltAtAz(az float64) float64 {
	λ := az * deg2rad
	s1, c1 := math.Sincos(gc.alt1)
	s2, c2 := math.Sincos(gc.alt2)
	num := s1*c2*math.Sin(λ-gc.az2) - s2*c1*math.Sin(λ-gc.az1)
	return math.Atan(num/(c1*c2*math.Sin(gc.az1-gc.az2))) * rad2deg
}
