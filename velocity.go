package sky

import "math"

// Solar apex (J2000) and the speed of the Sun towards it, in km/s.
const (
	solarApexRA  = 270.9592
	solarApexDec = 30.00467
	solarApexV   = 20.0
)

// j2000Direction returns the unit vector of the catalogue coordinates, taken as
// referred to jd0, in J2000 axes.
func (p *SkyPoint) j2000Direction(jd0 float64) []float64 {
	aux := NewSkyPoint(p.RA0, p.Dec0)
	aux.PrecessFromAnyEpoch(jd0, J2000)
	return sphericalToCartesian(aux.RA.Radians(), aux.Dec.Radians(), 1)
}

// VRSun returns the projection of the Sun's motion relative to the local standard of
// rest on the line of sight, in km/s.
func (p *SkyPoint) VRSun(jd0 float64) float64 {
	apex := sphericalToCartesian(solarApexRA*deg2rad, solarApexDec*deg2rad, solarApexV)
	return dot(apex, p.j2000Direction(jd0))
}

// VHeliocentric converts a radial velocity relative to the local standard of rest to
// a heliocentric one.
func (p *SkyPoint) VHeliocentric(vlsr, jd0 float64) float64 {
	return vlsr - p.VRSun(jd0)
}

// VHelioToVLSR is the inverse of VHeliocentric.
func (p *SkyPoint) VHelioToVLSR(vhelio, jd0 float64) float64 {
	return vhelio + p.VRSun(jd0)
}

// VREarth returns the projection of the Earth's orbital velocity at jd0 on the line
// of sight, in km/s.
func (p *SkyPoint) VREarth(jd0 float64) float64 {
	return dot(NewNumbers(jd0).VEarth(), p.j2000Direction(jd0))
}

// VGeocentric converts a heliocentric radial velocity to a geocentric one.
func (p *SkyPoint) VGeocentric(vhelio, jd0 float64) float64 {
	return vhelio - p.VREarth(jd0)
}

// VGeoToVHelio is the inverse of VGeocentric.
func (p *SkyPoint) VGeoToVHelio(vgeo, jd0 float64) float64 {
	return vgeo + p.VREarth(jd0)
}

// VRSite returns the projection of an observer velocity (km/s, equatorial axes of the
// current coordinates) on the line of sight.
func (p *SkyPoint) VRSite(vsite [3]float64) float64 {
	return dot(vsite[:], sphericalToCartesian(p.RA.Radians(), p.Dec.Radians(), 1))
}

// VTopocentric converts a geocentric radial velocity to a topocentric one.
func (p *SkyPoint) VTopocentric(vgeo float64, vsite [3]float64) float64 {
	return vgeo - p.VRSite(vsite)
}

// VTopoToVGeo is the inverse of VTopocentric.
func (p *SkyPoint) VTopoToVGeo(vtopo float64, vsite [3]float64) float64 {
	return vtopo + p.VRSite(vsite)
}

// SiteVelocity returns the velocity, in km/s, of an observer at the latitude and
// height (km above the equatorial radius) due to the Earth's rotation, in the
// equatorial axes of date for the local sidereal time.
func SiteVelocity(lst, lat Angle, heightKm float64) [3]float64 {
	r := (earthEquatorialKm + heightKm) * math.Cos(lat.Radians())
	s, c := math.Sincos(lst.Radians())
	return [3]float64{-EarthRotationRate * r * s, EarthRotationRate * r * c, 0}
}
