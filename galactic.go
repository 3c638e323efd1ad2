package sky

import "math"

// Galactic pole and node in the B1950 frame, in degrees.
const (
	galPoleRA     = 192.25
	galPoleDec    = 27.4
	galNodeLon    = 303.0
	galPoleRAInv  = 123.0
	galNodeLonInv = 12.25
)

// Equatorial1950ToGalactic returns the galactic coordinates of the current RA and
// Dec, taken as B1950.
func (p *SkyPoint) Equatorial1950ToGalactic() (lon, lat Angle) {
	sinb, cosb := math.Sincos(galPoleDec * deg2rad)
	sinaRA, cosaRA := math.Sincos((galPoleRA - p.RA.Degrees()) * deg2rad)
	sinDec, cosDec := p.Dec.SinCos()
	tanDec := math.Tan(p.Dec.Radians())

	lon = Rad(galNodeLon*deg2rad - math.Atan2(sinaRA, cosaRA*sinb-tanDec*cosb)).Reduce()
	lat = Rad(math.Asin(sinDec*sinb + cosDec*cosb*cosaRA))
	return
}

// GalacticToEquatorial1950 sets RA and Dec, in the B1950 frame, from galactic coordinates.
func (p *SkyPoint) GalacticToEquatorial1950(lon, lat Angle) {
	sinb, cosb := math.Sincos(galPoleDec * deg2rad)
	sinLat, cosLat := lat.SinCos()
	tanLat := math.Tan(lat.Radians())
	sinl, cosl := math.Sincos((lon.Degrees() - galPoleRAInv) * deg2rad)

	p.RA = Rad(galNodeLonInv*deg2rad + math.Atan2(sinl, cosl*sinb-tanLat*cosb)).Reduce()
	p.Dec = Rad(math.Asin(sinLat*sinb + cosLat*cosb*cosl))
}

// Galactic returns the galactic coordinates of the catalogue (J2000) position.
func (p *SkyPoint) Galactic() (lon, lat Angle) {
	aux := NewSkyPoint(p.RA0, p.Dec0)
	aux.PrecessFromAnyEpoch(J2000, B1950)
	return aux.Equatorial1950ToGalactic()
}

// SkyPointFromGalactic returns the point of the given galactic coordinates, with its
// catalogue coordinates referred to J2000.
func SkyPointFromGalactic(lon, lat Angle) *SkyPoint {
	p := &SkyPoint{}
	p.GalacticToEquatorial1950(lon, lat)
	p.RA0, p.Dec0 = p.RA, p.Dec
	p.PrecessFromAnyEpoch(B1950, J2000)
	p.Set(p.RA, p.Dec)
	return p
}
