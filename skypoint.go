package sky

import (
	"fmt"
	"math"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

const (
	// recomputeThreshold is the epoch change, in days, below which UpdateCoords keeps
	// the current coordinates (one minute).
	recomputeThreshold = 0.00069444
	// bendLightMaxAngle is the separation from the Sun, in degrees, within which light
	// bending is corrected (10 solar radii seen from 200 solar radii, about 15°).
	bendLightMaxAngle = 1.75 * (30.0 / 200.0) * rad2deg
	// clampTolerance is how far beyond ±1 a cosine may drift from roundoff alone.
	clampTolerance = 1.000001
)

// SkyPoint is a position on the celestial sphere.
// RA0 and Dec0 are the catalogue coordinates, referred to J2000 unless the point was
// built otherwise. RA and Dec are the coordinates for the epoch last applied, and Alt
// and Az are only meaningful after EquatorialToHorizontal (or after they were set and
// HorizontalToEquatorial was called). Keeping them consistent is up to the caller.
type SkyPoint struct {
	RA0, Dec0 Angle
	RA, Dec   Angle
	Alt, Az   Angle

	lastPrecessJD float64
}

// NewSkyPoint returns a point whose catalogue and current coordinates are both (ra, dec).
func NewSkyPoint(ra, dec Angle) *SkyPoint {
	p := &SkyPoint{}
	p.Set(ra, dec)
	return p
}

// Set sets both the catalogue and the current coordinates, referred to J2000.
func (p *SkyPoint) Set(ra, dec Angle) {
	p.RA0, p.RA = ra, ra
	p.Dec0, p.Dec = dec, dec
	p.lastPrecessJD = J2000
}

// LastPrecessJD returns the Julian Day of the last UpdateCoords recomputation.
func (p *SkyPoint) LastPrecessJD() float64 {
	return p.lastPrecessJD
}

func (p SkyPoint) String() string {
	return fmt.Sprintf("RA=%s Dec=%s", p.RA.HMSString(), p.Dec)
}

// EquatorialToHorizontal computes Alt and Az from the current RA and Dec for a local
// sidereal time and a geographic latitude.
func (p *SkyPoint) EquatorialToHorizontal(lst, lat Angle) {
	sinLat, cosLat := lat.SinCos()
	sinDec, cosDec := p.Dec.SinCos()
	ha := lst.Sub(p.RA)
	sinHA, cosHA := ha.SinCos()

	sinAlt := sinDec*sinLat + cosDec*cosLat*cosHA
	altRad := math.Asin(sinAlt)
	cosAlt := math.Sqrt(1 - sinAlt*sinAlt)
	if cosAlt == 0 {
		cosAlt = math.Cos(altRad)
	}

	var azRad float64
	if den := cosLat * cosAlt; math.Abs(den) < 1e-12 {
		// At a pole or the zenith the acos ratio is undefined.
		azRad = math.Atan2(-cosDec*sinHA, sinDec*cosLat-cosDec*sinLat*cosHA)
		if azRad < 0 {
			azRad += 2 * math.Pi
		}
	} else {
		arg := (sinDec - sinLat*sinAlt) / den
		switch {
		case arg <= -1:
			azRad = math.Pi
		case arg >= 1:
			azRad = 0
		default:
			azRad = math.Acos(arg)
		}
		if sinHA > 0 && azRad != 0 {
			azRad = 2*math.Pi - azRad
		}
	}
	p.Alt = Rad(altRad)
	p.Az = Rad(azRad)
}

// HorizontalToEquatorial computes RA and Dec from Alt and Az. A ratio slightly beyond
// [-1, 1] from roundoff is clamped silently; one further out is clamped too, counted,
// and reported with an error wrapping ErrOutOfRange.
func (p *SkyPoint) HorizontalToEquatorial(lst, lat Angle) error {
	sinLat, cosLat := lat.SinCos()
	sinAlt, cosAlt := p.Alt.SinCos()
	sinAz, cosAz := p.Az.SinCos()

	sinDec := sinAlt*sinLat + cosAlt*cosLat*cosAz
	decRad := math.Asin(sinDec)
	cosDec := math.Cos(decRad)
	p.Dec = Rad(decRad)

	var err error
	x := (sinAlt - sinLat*sinDec) / (cosLat * cosDec)
	if math.Abs(x) >= clampTolerance {
		err = errors.Wrapf(ErrOutOfRange, "hour angle cosine %f", x)
		coordinateClamps.WithLabelValues("horizontal_to_equatorial").Inc()
		level.Warn(subsys("skypoint")).Log("message", "coordinate out of range", "x", x, "alt", p.Alt.Degrees(), "az", p.Az.Degrees())
	}
	var haRad float64
	if math.IsNaN(x) {
		err = errors.Wrap(ErrOutOfRange, "hour angle undefined at the pole")
	} else {
		x, _ = clamp(x)
		haRad = math.Acos(x)
	}
	if sinAz > 0 {
		haRad = 2*math.Pi - haRad
	}
	p.RA = Rad(lst.Radians() - haRad).Reduce()
	return err
}

// FindEcliptic returns the ecliptic longitude and latitude of the current RA and Dec
// for the given obliquity.
func (p *SkyPoint) FindEcliptic(obliquity Angle) (lon, lat Angle) {
	sinRA, cosRA := p.RA.SinCos()
	sinDec, cosDec := p.Dec.SinCos()
	sinOb, cosOb := obliquity.SinCos()

	ycosDec := sinRA*cosOb*cosDec + sinDec*sinOb
	lon = Rad(math.Atan2(ycosDec, cosDec*cosRA)).Reduce()
	sinLat, _ := clamp(sinDec*cosOb - cosDec*sinOb*sinRA)
	lat = Rad(math.Asin(sinLat))
	return
}

// SetFromEcliptic sets RA and Dec from ecliptic coordinates.
func (p *SkyPoint) SetFromEcliptic(obliquity, lon, lat Angle) {
	sinLon, cosLon := lon.SinCos()
	sinLat, cosLat := lat.SinCos()
	sinOb, cosOb := obliquity.SinCos()

	ycosLat := sinLon*cosOb*cosLat - sinLat*sinOb
	p.RA = Rad(math.Atan2(ycosLat, cosLon*cosLat)).Reduce()
	// Haversine form, stable near the poles.
	hav := 0.5 * (1 - sinLat*cosOb - cosLat*sinOb*sinLon)
	if hav < 0 {
		hav = 0
	}
	p.Dec = Rad(math.Pi/2 - 2*math.Asin(math.Sqrt(hav)))
}

// AngularDistanceTo returns the great circle distance to sp, in [0°, 180°].
func (p *SkyPoint) AngularDistanceTo(sp *SkyPoint) Angle {
	d, _ := p.AngularDistancePA(sp)
	return d
}

// AngularDistancePA returns the great circle distance to sp and the position angle,
// in degrees east of north, of the direction from p towards sp.
func (p *SkyPoint) AngularDistancePA(sp *SkyPoint) (Angle, float64) {
	dα := sp.RA.Sub(p.RA)
	dδ := sp.Dec.Sub(p.Dec)
	sinDα, cosDα := dα.SinCos()
	_, cosDδ := dδ.SinCos()
	sinDec, cosDec := p.Dec.SinCos()
	_, cosSpDec := sp.Dec.SinCos()

	hava := (1 - cosDα) / 2
	havd := (1 - cosDδ) / 2
	aux := havd + cosSpDec*cosDec*hava
	if aux > 1 {
		aux = 1
	} else if aux < 0 {
		aux = 0
	}
	dist := Rad(2 * math.Abs(math.Asin(math.Sqrt(aux))))
	pa := math.Atan2(sinDα, cosDec*math.Tan(sp.Dec.Radians())-sinDec*cosDα) * rad2deg
	return dist, pa
}

// Precess sets RA and Dec to the catalogue coordinates precessed from J2000 to the
// epoch of num.
func (p *SkyPoint) Precess(num *Numbers) {
	s := sphericalToCartesian(p.RA0.Radians(), p.Dec0.Radians(), 1)
	p.setFromVector(MxV33(num.PrecessFrom2000(), s))
}

func (p *SkyPoint) setFromVector(v []float64) {
	lon, lat, _ := cartesianToSpherical(v)
	p.RA = Rad(lon)
	p.Dec = Rad(lat)
}

// Deprecess returns a copy of the point with its current coordinates, valid at the
// epoch of num, precessed to epoch. When the catalogue coordinates are unset and
// epoch is J2000, they are filled from the result.
func (p *SkyPoint) Deprecess(num *Numbers, epoch float64) *SkyPoint {
	p1 := NewSkyPoint(p.RA, p.Dec)
	p1.PrecessFromAnyEpoch(num.JD(), epoch)
	d0 := p.Dec0.Degrees()
	if math.IsNaN(p.RA0.Degrees()) || math.IsNaN(d0) || math.Abs(d0) > 90 {
		if epoch == J2000 {
			p.RA0 = p1.RA
			p.Dec0 = p1.Dec
		}
	}
	return p1
}

// PrecessFromAnyEpoch sets RA and Dec to the catalogue coordinates, taken as referred
// to the mean equator of jd0, precessed to that of jdf. B1950 at either end goes
// through the FK4 to FK5 conversion with its E-terms.
func (p *SkyPoint) PrecessFromAnyEpoch(jd0, jdf float64) {
	p.RA, p.Dec = p.RA0, p.Dec0
	if jd0 == jdf {
		return
	}
	if jd0 == B1950 {
		p.B1950ToJ2000()
		jd0 = J2000
		if jd0 == jdf {
			return
		}
	}
	s := sphericalToCartesian(p.RA.Radians(), p.Dec.Radians(), 1)
	if jd0 != J2000 {
		s = MTxV33(iau1976Precession(JulianCenturies(jd0)), s)
	}
	if jdf == B1950 {
		p.setFromVector(s)
		p.J2000ToB1950()
		return
	}
	p.setFromVector(MxV33(iau1976Precession(JulianCenturies(jdf)), s))
}

// B1950ToJ2000 converts the current coordinates from the FK4 B1950.0 system to FK5
// J2000.0: E-terms removal, Newcomb precession to 1984.0, the equinox offset, and
// IAU 1976 precession to J2000.
func (p *SkyPoint) B1950ToJ2000() {
	p.addETerms()
	s := sphericalToCartesian(p.RA.Radians(), p.Dec.Radians(), 1)
	p.setFromVector(MxV33(fk4To1984, s))
	p.RA = Hours(p.RA.Hours() + 0.06390/3600)

	s = sphericalToCartesian(p.RA.Radians(), p.Dec.Radians(), 1)
	p.setFromVector(MTxV33(iau1976Precession(JulianCenturies(J1984)), s))
}

// J2000ToB1950 is the inverse of B1950ToJ2000.
func (p *SkyPoint) J2000ToB1950() {
	s := sphericalToCartesian(p.RA.Radians(), p.Dec.Radians(), 1)
	p.setFromVector(MxV33(iau1976Precession(JulianCenturies(J1984)), s))
	p.RA = Hours(p.RA.Hours() - 0.06390/3600).Reduce()

	s = sphericalToCartesian(p.RA.Radians(), p.Dec.Radians(), 1)
	p.setFromVector(MxV33(fk4From1984, s))
	p.subtractETerms()
}

// ETerms returns the E-terms of elliptic aberration at the current position, as RA
// and Dec offsets.
func (p *SkyPoint) ETerms() (dRA, dDec Angle) {
	sd, cd := p.Dec.SinCos()
	s, c := math.Sincos(Hours(p.RA.Hours() + 11.25).Radians())
	dRA = Hours(0.0227 * s / (3600 * cd))
	dDec = Deg(0.341*c*sd/3600 + 0.029*cd/3600)
	return
}

func (p *SkyPoint) addETerms() {
	dRA, dDec := p.ETerms()
	p.RA = p.RA.Add(dRA)
	p.Dec = p.Dec.Add(dDec)
}

func (p *SkyPoint) subtractETerms() {
	dRA, dDec := p.ETerms()
	p.RA = p.RA.Sub(dRA)
	p.Dec = p.Dec.Sub(dDec)
}

// Nutate applies (or with reverse, removes) nutation to the current coordinates.
// Below 80° of declination Meeus' first order formulas are used; closer to the poles
// the longitude is shifted by Δψ in ecliptic coordinates.
func (p *SkyPoint) Nutate(num *Numbers, reverse bool) {
	dψ := num.DEcLong().Degrees()
	dε := num.DObliq().Degrees()
	if math.Abs(p.Dec.Degrees()) < 80 {
		sinRA, cosRA := p.RA.SinCos()
		sinDec, cosDec := p.Dec.SinCos()
		tanDec := sinDec / cosDec
		sinOb, cosOb := math.Sincos(num.Obliquity().Radians())

		dRA := dψ*(cosOb+sinOb*sinRA*tanDec) - dε*cosRA*tanDec
		dDec := dψ*sinOb*cosRA + dε*sinRA
		if reverse {
			dRA, dDec = -dRA, -dDec
		}
		p.RA = Deg(p.RA.Degrees() + dRA)
		p.Dec = Deg(p.Dec.Degrees() + dDec)
		return
	}
	// The mean place is referred to the unnutated equator.
	mean := num.Obliquity().Sub(num.DObliq())
	if reverse {
		lon, lat := p.FindEcliptic(num.Obliquity())
		p.SetFromEcliptic(mean, Deg(lon.Degrees()-dψ), lat)
		return
	}
	lon, lat := p.FindEcliptic(mean)
	p.SetFromEcliptic(num.Obliquity(), Deg(lon.Degrees()+dψ), lat)
}

// Aberrate applies (or with reverse, removes to first order) annual aberration with
// the Sun's true longitude and the eccentricity of the Earth's orbit.
func (p *SkyPoint) Aberrate(num *Numbers, reverse bool) {
	K := num.Aberration().Degrees()
	e := num.EarthEccentricity()
	sinL, cosL := math.Sincos(num.SunTrueLongitude().Radians())
	sinP, cosP := math.Sincos(num.EarthPerihelion().Radians())

	if math.Abs(p.Dec.Degrees()) < 80 {
		sinRA, cosRA := p.RA.SinCos()
		sinDec, cosDec := p.Dec.SinCos()
		sinOb, cosOb := math.Sincos(num.Obliquity().Radians())

		dRA := (K / cosDec) * (cosRA*cosOb*(e*cosP-cosL) + sinRA*(e*sinP-sinL))
		dDec := K * ((sinOb*cosDec-cosOb*sinDec*sinRA)*(e*cosP-cosL) + cosRA*sinDec*(e*sinP-sinL))
		if reverse {
			dRA, dDec = -dRA, -dDec
		}
		p.RA = Deg(p.RA.Degrees() + dRA)
		p.Dec = Deg(p.Dec.Degrees() + dDec)
		return
	}

	lon, lat := p.FindEcliptic(num.Obliquity())
	sinLat, cosLat := lat.SinCos()
	sinLλ, cosLλ := math.Sincos(num.SunTrueLongitude().Sub(lon).Radians())
	sinPλ, cosPλ := math.Sincos(num.EarthPerihelion().Sub(lon).Radians())
	dLon := (K / cosLat) * (e*cosPλ - cosLλ)
	dLat := K * sinLat * (e*sinPλ - sinLλ)
	if reverse {
		dLon, dLat = -dLon, -dLat
	}
	p.SetFromEcliptic(num.Obliquity(), Deg(lon.Degrees()+dLon), Deg(lat.Degrees()+dLat))
}

// MoveAway returns the point displaced by dist arcseconds along the great circle
// leading away from from. A negative dist moves towards it.
func (p *SkyPoint) MoveAway(from *SkyPoint, dist float64) *SkyPoint {
	if dist == 0 {
		level.Debug(subsys("skypoint")).Log("message", "MoveAway called with zero distance")
		return NewSkyPoint(p.RA, p.Dec)
	}
	dst := math.Abs(dist * arcsec2rad)
	dRA := p.RA.Sub(from.RA)
	dDec := p.Dec.Sub(from.Dec)
	sinDRA, cosDRA := dRA.SinCos()
	sinDDec, _ := dDec.SinCos()
	bearing := math.Atan2(sinDRA/cosDRA, sinDDec)
	dir0 := bearing
	if dist < 0 {
		dir0 += math.Pi
	}
	sinDst, cosDst := math.Sincos(dst)
	sinDec, cosDec := p.Dec.SinCos()
	sinDir, cosDir := math.Sincos(dir0)

	sinLat1 := sinDec*cosDst + cosDec*sinDst*cosDir
	lat1 := math.Asin(sinLat1)
	dθ := math.Atan2(sinDir*sinDst*cosDec, cosDst-sinDec*sinLat1)
	return NewSkyPoint(p.RA.Add(Rad(dθ)), Rad(lat1))
}

// CheckBendLight reports whether the point is close enough to the Sun for light
// bending to matter. Without a computed Sun it is always false.
func (p *SkyPoint) CheckBendLight(sun *Sun) bool {
	if sun == nil || !sun.Computed() {
		return false
	}
	return math.Abs(p.AngularDistanceTo(sun.Position()).Degrees()) <= bendLightMaxAngle
}

// BendLight moves the point away from the Sun by the gravitational deflection of its
// light. It must be applied before aberration. It reports whether a correction was made.
func (p *SkyPoint) BendLight(sun *Sun) bool {
	if sun == nil || !sun.Computed() {
		return false
	}
	rearth := sun.Rearth()
	if math.IsNaN(rearth) || math.IsInf(rearth, 0) || rearth <= 0 {
		rearth = 1
	}
	dist := p.AngularDistanceTo(sun.Position())
	s := math.Sin(dist.Radians())
	if s == 0 {
		return false
	}
	corr := 1.75 * sun.PhysicalSize() / (rearth * AUKm * s)
	moved := p.MoveAway(sun.Position(), corr)
	p.RA, p.Dec = moved.RA, moved.Dec
	return true
}

// UpdateCoords brings the catalogue coordinates to the epoch of num by applying, in
// this order, precession, nutation, light bending and aberration. Nothing is done when
// the point was updated less than a minute before, unless force is set or the point
// is close enough to the Sun for light bending.
func (p *SkyPoint) UpdateCoords(num *Numbers, sun *Sun, force bool) {
	lens := skyConfig().Relativistic && p.CheckBendLight(sun)
	recompute := lens || force || math.Abs(p.lastPrecessJD-num.JD()) >= recomputeThreshold
	if !recompute {
		return
	}
	p.Precess(num)
	p.Nutate(num, false)
	if lens {
		p.BendLight(sun)
	}
	p.Aberrate(num, false)
	p.lastPrecessJD = num.JD()
}

// ApparentCoord computes the apparent place at jdf of catalogue coordinates referred
// to the mean equator of jd0.
func (p *SkyPoint) ApparentCoord(jd0, jdf float64, sun *Sun) {
	p.PrecessFromAnyEpoch(jd0, jdf)
	num := NewNumbers(jdf)
	p.Nutate(num, false)
	if skyConfig().Relativistic && p.CheckBendLight(sun) {
		p.BendLight(sun)
	}
	p.Aberrate(num, false)
}

// CatalogueCoord removes aberration, nutation and precession from the current
// coordinates, taken as the apparent place at jdf, and stores the J2000 result as the
// catalogue coordinates.
func (p *SkyPoint) CatalogueCoord(jdf float64) *SkyPoint {
	num := NewNumbers(jdf)
	p.Aberrate(num, true)
	p.Nutate(num, true)
	p.RA0, p.Dec0 = p.RA, p.Dec
	p.PrecessFromAnyEpoch(jdf, J2000)
	p.RA0, p.Dec0 = p.RA, p.Dec
	p.lastPrecessJD = J2000
	return NewSkyPoint(p.RA0, p.Dec0)
}

// IsCircumpolar reports whether the point never sets at the latitude.
func (p *SkyPoint) IsCircumpolar(lat Angle) bool {
	return math.Abs(p.Dec.Degrees()) > 90-math.Abs(lat.Degrees())
}

// MaxAlt returns the altitude of the upper transit, in degrees.
func (p *SkyPoint) MaxAlt(lat Angle) float64 {
	alt := lat.Degrees() + 90 - p.Dec.Degrees()
	if alt > 90 {
		alt = 180 - alt
	}
	return alt
}

// MinAlt returns the altitude of the lower transit, in degrees.
func (p *SkyPoint) MinAlt(lat Angle) float64 {
	alt := lat.Degrees() - 90 + p.Dec.Degrees()
	if alt < -90 {
		alt = 180 + alt
	}
	return alt
}

// TimeTransformed returns a copy of the point with its horizontal coordinates
// computed hours after jd, for an observer at the east-positive longitude and latitude.
func (p *SkyPoint) TimeTransformed(jd float64, lon, lat Angle, hours float64) *SkyPoint {
	sp := *p
	sp.EquatorialToHorizontal(LocalSiderealTime(jd+hours/24, lon), lat)
	return &sp
}

// FindAltitude returns the altitude of the point hours after jd.
func (p *SkyPoint) FindAltitude(jd float64, lon, lat Angle, hours float64) Angle {
	return p.TimeTransformed(jd, lon, lat, hours).Alt
}
