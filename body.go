package sky

import (
	"fmt"
	"math"

	"github.com/go-kit/log/level"
	"github.com/soniakeys/meeus/v3/globe"
)

// EclipticPosition is a position in ecliptic coordinates with its distance in AU.
type EclipticPosition struct {
	Lon, Lat Angle
	R        float64
}

// vector returns the Cartesian coordinates, in AU.
func (e EclipticPosition) vector() []float64 {
	return sphericalToCartesian(e.Lon.Radians(), e.Lat.Radians(), e.R)
}

func eclipticFromVector(v []float64) EclipticPosition {
	lon, lat, r := cartesianToSpherical(v)
	return EclipticPosition{Rad(lon), Rad(lat), r}
}

// Body is a solar system object whose position is computed for an instant.
type Body interface {
	Name() string
	Kind() Kind
	Position() *SkyPoint
	// Geocentric computes the geocentric apparent place for the epoch of num.
	Geocentric(num *Numbers, sys *SolarSystem) error
	FindMagnitude(num *Numbers)
	PhysicalSize() float64
	UID() uint64

	base() *SolarSystemBody
	findPhase(sys *SolarSystem)
}

// SolarSystemBody holds what all solar system bodies have in common. The embedded
// SkyPoint carries the apparent (RA, Dec) and the J2000 catalogue (RA0, Dec0) places.
type SolarSystemBody struct {
	SkyPoint

	name string
	kind Kind

	helio, geo    EclipticPosition
	rsun, rearth  float64
	physicalSize  float64 // km
	angularSize   float64 // arcmin
	phase         float64 // degrees
	illumination  float64
	positionAngle float64 // degrees
	magnitude     float64

	trail *Trail
}

func newSolarSystemBody(name string, kind Kind) SolarSystemBody {
	return SolarSystemBody{
		name:         name,
		kind:         kind,
		physicalSize: kind.Config().PhysicalSizeKm,
		rsun:         math.NaN(),
		rearth:       math.NaN(),
	}
}

func (b *SolarSystemBody) base() *SolarSystemBody { return b }

// Name returns the name of the body.
func (b *SolarSystemBody) Name() string { return b.name }

// Kind returns the kind of the body.
func (b *SolarSystemBody) Kind() Kind { return b.kind }

// UID returns the unique identifier of the body.
func (b *SolarSystemBody) UID() uint64 { return b.kind.UID() }

// Position returns the sky position of the body.
func (b *SolarSystemBody) Position() *SkyPoint { return &b.SkyPoint }

// Heliocentric returns the heliocentric ecliptic position last computed.
func (b *SolarSystemBody) Heliocentric() EclipticPosition { return b.helio }

// Ecliptic returns the geocentric ecliptic position last computed.
func (b *SolarSystemBody) Ecliptic() EclipticPosition { return b.geo }

// Rsun returns the distance to the Sun in AU.
func (b *SolarSystemBody) Rsun() float64 { return b.rsun }

// Rearth returns the distance to the Earth in AU.
func (b *SolarSystemBody) Rearth() float64 { return b.rearth }

// PhysicalSize returns the diameter in km.
func (b *SolarSystemBody) PhysicalSize() float64 { return b.physicalSize }

// AngularSize returns the apparent diameter in arcminutes.
func (b *SolarSystemBody) AngularSize() float64 { return b.angularSize }

// RenderSize returns the angular size a body is drawn with: Saturn is inflated so
// that its rings fit.
func (b *SolarSystemBody) RenderSize() float64 {
	return b.angularSize * b.kind.Config().RingInflation
}

// Labelled reports whether the body is big enough to deserve a label.
func (b *SolarSystemBody) Labelled() bool {
	return b.angularSize >= b.kind.Config().MinLabelSize
}

// Phase returns the phase angle in degrees: 0 when fully lit. For the Moon it is the
// elongation from the Sun instead, 0 at new moon.
func (b *SolarSystemBody) Phase() float64 { return b.phase }

// IlluminatedFraction returns the fraction of the disk lit by the Sun.
func (b *SolarSystemBody) IlluminatedFraction() float64 { return b.illumination }

// PA returns the position angle of the ecliptic north in degrees, used as an
// approximation of the rotation axis.
func (b *SolarSystemBody) PA() float64 { return b.positionAngle }

// Magnitude returns the visual magnitude.
func (b *SolarSystemBody) Magnitude() float64 { return b.magnitude }

// Trail returns the trail of the body, nil unless enabled.
func (b *SolarSystemBody) Trail() *Trail { return b.trail }

// EnableTrail starts recording the positions of the body.
func (b *SolarSystemBody) EnableTrail() {
	if b.trail == nil {
		b.trail = NewTrail(skyConfig().MaxTrail)
	}
}

// DisableTrail stops recording and drops the trail.
func (b *SolarSystemBody) DisableTrail() {
	b.trail = nil
}

func (b *SolarSystemBody) String() string {
	return fmt.Sprintf("%s %s Δ=%.6f AU", b.name, b.SkyPoint, b.rearth)
}

// setGeocentric stores the geocentric ecliptic position of a vector in AU.
func (b *SolarSystemBody) setGeocentric(v []float64) {
	b.geo = eclipticFromVector(v)
	b.rearth = b.geo.R
}

func (b *SolarSystemBody) findPhase(sys *SolarSystem) {
	earthSun := sys.EarthHeliocentric().R
	cosPhase := (b.rsun*b.rsun + b.rearth*b.rearth - earthSun*earthSun) / (2 * b.rsun * b.rearth)
	b.phase = math.Acos(cosPhase) * rad2deg
	if math.IsNaN(b.phase) {
		b.phase = 0
	}
	b.illumination = (1 + math.Cos(b.phase*deg2rad)) / 2
}

// findAngularSize uses the physical diameter and the distance.
func (b *SolarSystemBody) findAngularSize() {
	if b.rearth <= 0 || math.IsNaN(b.rearth) {
		b.angularSize = 0
		return
	}
	x, _ := clamp(b.physicalSize / (b.rearth * AUKm))
	b.angularSize = math.Asin(x) * 60 * rad2deg
}

// findPA displaces the body one degree towards the north ecliptic pole and measures
// the direction of the displacement.
func (b *SolarSystemBody) findPA(num *Numbers) {
	var test SkyPoint
	test.SetFromEcliptic(num.Obliquity(), b.geo.Lon, Deg(b.geo.Lat.Degrees()+1))
	dx := b.RA.Degrees() - test.RA.Degrees()
	dy := test.Dec.Degrees() - b.Dec.Degrees()
	switch {
	case dy != 0:
		b.positionAngle = math.Atan2(dx, dy) * rad2deg
	case dx < 0:
		b.positionAngle = 90
	default:
		b.positionAngle = -90
	}
}

// Site is an observer on the surface of the Earth.
type Site struct {
	Lat, Lon Angle // geodetic, longitude positive east
	HeightM  float64
}

// LST returns the local sidereal time at the site.
func (s Site) LST(jd float64) Angle {
	return LocalSiderealTime(jd, s.Lon)
}

// topocentric moves the apparent place from the centre of the Earth to the site and
// computes the horizontal coordinates.
func (b *SolarSystemBody) topocentric(num *Numbers, site Site) {
	lst := site.LST(num.JD())
	if b.rearth > 0 && !math.IsNaN(b.rearth) {
		ρsinφ, ρcosφ := globe.Earth76.ParallaxConstants(site.Lat.Unit(), site.HeightM)
		sinπ := earthEquatorialKm / (b.rearth * AUKm)
		ha := lst.Sub(b.RA)
		sinH, cosH := ha.SinCos()
		sinDec, cosDec := b.Dec.SinCos()

		dRA := math.Atan2(-ρcosφ*sinπ*sinH, cosDec-ρcosφ*sinπ*cosH)
		dec := math.Atan2((sinDec-ρsinφ*sinπ)*math.Cos(dRA), cosDec-ρcosφ*sinπ*cosH)
		b.RA = Rad(b.RA.Radians() + dRA).Reduce()
		b.Dec = Rad(dec)
	}
	b.EquatorialToHorizontal(lst, site.Lat)
}

// FindPosition computes everything about b at the epoch of num: its geocentric
// apparent place, phase, angular size, position angle and magnitude. With a site,
// the place is made topocentric and the horizontal coordinates are computed. The
// position is appended to the trail when one is enabled.
func FindPosition(b Body, num *Numbers, sys *SolarSystem, site *Site) error {
	base := b.base()
	if err := b.Geocentric(num, sys); err != nil {
		bodyFailures.WithLabelValues(b.Name(), "geocentric").Inc()
		level.Error(subsys("body")).Log("message", "position not computed", "body", b.Name(), "jd", num.JD(), "err", err)
		return err
	}
	base.lastPrecessJD = num.JD()
	b.findPhase(sys)
	base.findAngularSize()
	if site != nil {
		base.topocentric(num, *site)
	}
	base.findPA(num)
	b.FindMagnitude(num)
	if base.trail != nil {
		base.trail.Add(base.SkyPoint)
	}
	return nil
}
