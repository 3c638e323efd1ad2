package sgp4

import (
	"fmt"
	"math"

	"github.com/ChristopherRabotin/sky"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/floats"
)

const (
	flattening    = 3.35281066474748e-3 // WGS-72
	solarRadiusKm = 6.96000e5
	auKm          = 1.49597870691e8
	// twilight is the Sun elevation above which a satellite is lost in the sky.
	twilight = -12 * deg2rad
)

// Observer is a geodetic site. Lon is east positive.
type Observer struct {
	Lat, Lon sky.Angle
	AltKm    float64
}

// NewObserver returns an observer from angles in degrees and a height in meters.
func NewObserver(latDeg, lonDeg, heightM float64) Observer {
	return Observer{Lat: sky.Deg(latDeg), Lon: sky.Deg(lonDeg), AltKm: heightM / 1000}
}

// eci returns the position and velocity of the observer in the inertial frame when
// the local sidereal time is lst radians.
func (o Observer) eci(lst float64) (r, v []float64) {
	sinLat, cosLat := math.Sincos(o.Lat.Radians())
	sinT, cosT := math.Sincos(lst)
	c := 1 / math.Sqrt(1+flattening*(flattening-2)*sinLat*sinLat)
	sq := (1 - flattening) * (1 - flattening) * c
	achcp := (earthRadiusKm*c + o.AltKm) * cosLat
	r = []float64{achcp * cosT, achcp * sinT, (earthRadiusKm*sq + o.AltKm) * sinLat}
	v = []float64{-sky.EarthRotationRate * r[1], sky.EarthRotationRate * r[0], 0}
	return
}

// sez rotates an inertial vector to the topocentric south, east, zenith frame.
func (o Observer) sez(lst float64, v []float64) []float64 {
	return sky.MxV33(sky.R2(math.Pi/2-o.Lat.Radians()), sky.MxV33(sky.R3(lst), v))
}

func (o Observer) String() string {
	return fmt.Sprintf("(%s, %s) alt = %.3f km", o.Lat, o.Lon, o.AltKm)
}

// Look is the topocentric direction of a target. Range is in km and RangeRate in km/s,
// positive when receding.
type Look struct {
	Az, El           sky.Angle
	Range, RangeRate float64
}

// LookAngles returns the direction of the inertial position r (km) and velocity v
// (km/s) from o when the local sidereal time is lst.
func (o Observer) LookAngles(lst sky.Angle, r, v []float64) Look {
	obsR, obsV := o.eci(lst.Radians())
	ρ := floats.SubTo(make([]float64, 3), r, obsR)
	ρDot := floats.SubTo(make([]float64, 3), v, obsV)
	rng := floats.Norm(ρ, 2)
	rSEZ := o.sez(lst.Radians(), ρ)
	az := math.Atan2(rSEZ[1], -rSEZ[0])
	if az < 0 {
		az += twoPi
	}
	return Look{
		Az:        sky.Rad(az),
		El:        sky.Rad(arcSin(rSEZ[2] / rng)),
		Range:     rng,
		RangeRate: floats.Dot(ρ, ρDot) / rng,
	}
}

// SubPoint returns the geodetic latitude, east longitude and height in km below an
// inertial position r when the Greenwich sidereal time is gst.
func SubPoint(r []float64, gst sky.Angle) (lat, lon sky.Angle, heightKm float64) {
	e2 := flattening * (2 - flattening)
	ρ := math.Hypot(r[0], r[1])
	φ := math.Atan2(r[2], ρ)
	var c float64
	for i := 0; i < 10; i++ {
		prev := φ
		sinφ := math.Sin(prev)
		c = 1 / math.Sqrt(1-e2*sinφ*sinφ)
		φ = math.Atan2(r[2]+earthRadiusKm*c*e2*sinφ, ρ)
		if math.Abs(φ-prev) < 1e-10 {
			break
		}
	}
	heightKm = ρ/math.Cos(φ) - earthRadiusKm*c
	lon = sky.Rad(math.Atan2(r[1], r[0]) - gst.Radians()).Reduce()
	if lon.Degrees() > 180 {
		lon = sky.Deg(lon.Degrees() - 360)
	}
	return sky.Rad(φ), lon, heightKm
}

// Position is a satellite seen from an observer at a given instant.
type Position struct {
	JD    float64
	State State
	Look  Look
	// Sky holds the horizontal coordinates of Look and the matching RA and Dec.
	Sky sky.SkyPoint

	Lat, Lon   sky.Angle // sub-satellite point
	AltitudeKm float64
	Velocity   float64 // km/s
	SunEl      sky.Angle

	Eclipsed     bool
	EclipseDepth float64 // radians, positive in the shadow
	Visible      bool
}

// PositionAt propagates the satellite to the UT Julian date jd and looks at it from
// obs. It is visible when lit while the Sun is at least 12° below the horizon and
// the satellite above it.
func (s *Satellite) PositionAt(jd float64, obs Observer) (*Position, error) {
	st, err := s.PropagateJD(jd)
	if err != nil {
		return nil, err
	}
	gst := sky.GreenwichSiderealTime(jd)
	lst := gst.Add(obs.Lon).Reduce()
	r, v := st.Pos[:], st.Vel[:]

	p := &Position{JD: jd, State: st}
	p.Look = obs.LookAngles(lst, r, v)
	p.Lat, p.Lon, p.AltitudeKm = SubPoint(r, gst)
	p.Velocity = floats.Norm(v, 2)
	p.Sky.Alt, p.Sky.Az = p.Look.El, p.Look.Az
	if err := p.Sky.HorizontalToEquatorial(lst, obs.Lat); err != nil {
		level.Debug(logger).Log("sat", s.tle.Name, "jd", jd, "err", err)
	}
	p.Sky.RA0, p.Sky.Dec0 = p.Sky.RA, p.Sky.Dec

	sun := SunECI(jd)
	p.Eclipsed, p.EclipseDepth = Eclipse(r, sun)
	p.SunEl = obs.LookAngles(lst, sun, make([]float64, 3)).El
	p.Visible = !p.Eclipsed && p.SunEl.Radians() <= twilight && p.Look.El.Radians() >= 0
	return p, nil
}

// SunECI returns the low precision inertial position of the Sun in km at a UT
// Julian date, good to about 0.01°.
func SunECI(jd float64) []float64 {
	mjd := jd - 2415020.0
	year := 1900 + mjd/365.25
	t := (mjd + deltaET(year)/(minutesPerDay*60)) / 36525
	m := deg2rad * modulus(358.47583+modulus(35999.04975*t, 360)-(0.000150+0.0000033*t)*t*t, 360)
	l := deg2rad * modulus(279.69668+modulus(36000.76892*t, 360)+0.0003025*t*t, 360)
	e := 0.01675104 - (0.0000418+0.000000126*t)*t
	c := deg2rad * ((1.919460-(0.004789+0.000014*t)*t)*math.Sin(m) +
		(0.020094-0.000100*t)*math.Sin(2*m) + 0.000293*math.Sin(3*m))
	o := deg2rad * modulus(259.18-1934.142*t, 360)
	lsa := modulus(l+c-deg2rad*(0.00569-0.00479*math.Sin(o)), twoPi)
	nu := modulus(m+c, twoPi)
	r := auKm * 1.0000002 * (1 - e*e) / (1 + e*math.Cos(nu))
	eps := deg2rad * (23.452294 - (0.0130125+(0.00000164-0.000000503*t)*t)*t + 0.00256*math.Cos(o))
	sinL, cosL := math.Sincos(lsa)
	sinE, cosE := math.Sincos(eps)
	return []float64{r * cosL, r * sinL * cosE, r * sinL * sinE}
}

// Eclipse reports whether a satellite at sat (km) is in the shadow of the Earth
// with the Sun at sun (km), and how deep.
func Eclipse(sat, sun []float64) (eclipsed bool, depth float64) {
	satR := floats.Norm(sat, 2)
	sdEarth := arcSin(earthRadiusKm / satR)
	toSun := floats.SubTo(make([]float64, 3), sun, sat)
	sdSun := arcSin(solarRadiusKm / floats.Norm(toSun, 2))
	δ := math.Pi/2 - arcSin(-floats.Dot(sun, sat)/(floats.Norm(sun, 2)*satR))
	depth = sdEarth - sdSun - δ
	return sdEarth >= sdSun && depth >= 0, depth
}

// deltaET is the difference between ephemeris and universal time in seconds.
func deltaET(year float64) float64 {
	return 26.465 + 0.747622*(year-1950) + 1.886913*math.Sin(twoPi*(year-1975)/33)
}

// modulus is x modulo y in [0, y), truncating first like an integer division.
func modulus(x, y float64) float64 {
	r := x - math.Trunc(x/y)*y
	if r < 0 {
		r += y
	}
	return r
}

// arcSin is math.Asin saturated at ±π/2.
func arcSin(x float64) float64 {
	switch {
	case x >= 1:
		return math.Pi / 2
	case x <= -1:
		return -math.Pi / 2
	}
	return math.Asin(x)
}
