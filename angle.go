package sky

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/soniakeys/unit"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// AngleRange selects the interval ReduceToRange normalizes into.
type AngleRange uint8

const (
	// ZeroTo2Pi is [0°, 360°).
	ZeroTo2Pi AngleRange = iota
	// MinusPiToPi is [-180°, 180°).
	MinusPiToPi
)

// Angle is a directed angle stored in degrees. The sine and cosine are computed
// on the first call to SinCos and cached until the angle is changed.
type Angle struct {
	d        float64
	sin, cos float64
	trig     bool
}

// Deg returns an Angle of d degrees.
func Deg(d float64) Angle {
	return Angle{d: d}
}

// Rad returns an Angle of r radians.
func Rad(r float64) Angle {
	return Angle{d: r * rad2deg}
}

// Hours returns an Angle of h hours (15 degrees per hour).
func Hours(h float64) Angle {
	return Angle{d: h * 15}
}

// DMS returns the angle d° m' s". A negative d makes the whole angle negative.
func DMS(d, m int, s float64) Angle {
	v := math.Abs(float64(d)) + (float64(m)+s/60)/60
	if d < 0 {
		v = -v
	}
	return Angle{d: v}
}

// HMS returns the angle h:m:s in hours. A negative h makes the whole angle negative.
func HMS(h, m int, s float64) Angle {
	v := math.Abs(float64(h)) + (float64(m)+s/60)/60
	if h < 0 {
		v = -v
	}
	return Angle{d: 15 * v}
}

// FromUnit converts a meeus angle.
func FromUnit(a unit.Angle) Angle {
	return Rad(a.Rad())
}

// Unit returns the angle as a meeus angle.
func (a Angle) Unit() unit.Angle {
	return unit.Angle(a.Radians())
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return a.d
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	return a.d * deg2rad
}

// Hours returns the reduced angle in hours, in [0, 24).
func (a Angle) Hours() float64 {
	return a.Reduce().d / 15
}

// HoursHA returns the angle as an hour angle, in (-12, 12].
func (a Angle) HoursHA() float64 {
	h := a.Hours()
	if h <= 12 {
		return h
	}
	return h - 24
}

// SetD sets the angle in degrees and drops the cached trigonometry.
func (a *Angle) SetD(d float64) {
	a.d = d
	a.trig = false
}

// SetRadians sets the angle in radians and drops the cached trigonometry.
func (a *Angle) SetRadians(r float64) {
	a.SetD(r * rad2deg)
}

// SetH sets the angle in hours.
func (a *Angle) SetH(h float64) {
	a.SetD(h * 15)
}

// SinCos returns the sine and cosine of the angle, computing them at most once.
func (a *Angle) SinCos() (s, c float64) {
	if !a.trig {
		a.sin, a.cos = math.Sincos(a.d * deg2rad)
		a.trig = true
	}
	return a.sin, a.cos
}

// Reduce returns the angle normalized to [0, 360). NaN reduces to zero.
func (a Angle) Reduce() Angle {
	if math.IsNaN(a.d) {
		return Angle{}
	}
	return Angle{d: a.d - 360*math.Floor(a.d/360)}
}

// ReduceToRange normalizes the angle in place.
func (a *Angle) ReduceToRange(r AngleRange) {
	switch r {
	case MinusPiToPi:
		a.SetD(a.d - 360*math.Floor((a.d+180)/360))
	default:
		a.SetD(a.Reduce().d)
	}
}

// Add returns a+b.
func (a Angle) Add(b Angle) Angle {
	return Angle{d: a.d + b.d}
}

// Sub returns a-b.
func (a Angle) Sub(b Angle) Angle {
	return Angle{d: a.d - b.d}
}

// Neg returns -a.
func (a Angle) Neg() Angle {
	return Angle{d: -a.d}
}

// DeltaAngle returns the signed shortest rotation from b to a, in [-180°, 180°].
func (a Angle) DeltaAngle(b Angle) Angle {
	Δ := math.Mod(a.d-b.d, 360)
	if Δ > 180 {
		Δ -= 360
	} else if Δ < -180 {
		Δ += 360
	}
	return Angle{d: Δ}
}

// Degree returns the integer degree part.
func (a Angle) Degree() int {
	if math.IsNaN(a.d) {
		return 0
	}
	return int(a.d)
}

// Arcmin returns the arcminute part, negative only for angles in (-1°, 0).
func (a Angle) Arcmin() int {
	if math.IsNaN(a.d) {
		return 0
	}
	am := int(60 * (math.Abs(a.d) - math.Abs(float64(a.Degree()))))
	if a.d < 0 && a.d > -1 {
		am = -am
	}
	return am
}

// Arcsec returns the arcsecond part, negative only for angles in (-1', 0).
func (a Angle) Arcsec() int {
	if math.IsNaN(a.d) {
		return 0
	}
	abs := math.Abs(a.d) - math.Abs(float64(a.Degree()))
	as := int(60 * (60*abs - math.Abs(float64(a.Arcmin()))))
	if a.Degree() == 0 && a.Arcmin() == 0 && a.d < 0 {
		as = -as
	}
	return as
}

// Hour returns the integer hour of the reduced angle.
func (a Angle) Hour() int {
	return int(a.Hours())
}

// Minute returns the minute of time of the reduced angle.
func (a Angle) Minute() int {
	h := a.Hours()
	return int(60 * (h - float64(int(h))))
}

// Second returns the second of time of the reduced angle.
func (a Angle) Second() int {
	h := a.Hours()
	return int(60 * (60*(h-float64(int(h))) - float64(a.Minute())))
}

// String implements the Stringer interface as ±DD° MM' SS".
func (a Angle) String() string {
	sign := '+'
	if a.d < 0 {
		sign = '-'
	}
	// Round to the nearest arcsecond before splitting.
	v := math.Round(math.Abs(a.d)*3600) / 3600
	d := int(v)
	m := int((v - float64(d)) * 60)
	s := int(math.Round(((v-float64(d))*60 - float64(m)) * 60))
	if s == 60 {
		s, m = 0, m+1
	}
	if m == 60 {
		m, d = 0, d+1
	}
	return fmt.Sprintf("%c%02d° %02d' %02d\"", sign, d, m, s)
}

// HMSString formats the reduced angle as HHh MMm SS.SSs.
func (a Angle) HMSString() string {
	h := a.Hours()
	hh := int(h)
	mm := int((h - float64(hh)) * 60)
	ss := ((h-float64(hh))*60 - float64(mm)) * 60
	return fmt.Sprintf("%02dh %02dm %05.2fs", hh, mm, ss)
}

// ParseAngle reads an angle from text. Accepted forms are an integer, a decimal
// number, or two or three colon or space separated fields (d m s). When isDeg is
// false the value is read as hours. Units markers (h d m s ' " °) are ignored.
func ParseAngle(str string, isDeg bool) (Angle, error) {
	nan := Angle{d: math.NaN()}
	entry := strings.TrimSpace(str)
	entry = strings.Map(func(r rune) rune {
		switch r {
		case 'h', 'd', 'm', 's', '\'', '"', '°':
			return -1
		}
		return r
	}, entry)
	if entry == "" {
		return nan, errors.Wrap(ErrOutOfRange, "empty angle")
	}
	build := func(v float64) Angle {
		if isDeg {
			return Deg(v)
		}
		return Hours(v)
	}
	if v, err := strconv.ParseFloat(entry, 64); err == nil {
		return build(v), nil
	}

	var fields []string
	if strings.Contains(entry, ":") {
		fields = strings.FieldsFunc(entry, func(r rune) bool { return r == ':' })
	} else {
		fields = strings.Fields(entry)
	}
	switch len(fields) {
	case 0, 1:
		return nan, errors.Wrapf(ErrOutOfRange, "cannot parse angle %q", str)
	case 2:
		if _, err := strconv.Atoi(fields[1]); err == nil {
			fields = append(fields, "0")
		} else if mx, err := strconv.ParseFloat(fields[1], 64); err == nil {
			fields[1] = strconv.Itoa(int(mx))
			fields = append(fields, strconv.Itoa(int(60*(mx-float64(int(mx))))))
		} else {
			return nan, errors.Wrapf(ErrOutOfRange, "cannot parse angle %q", str)
		}
	case 3:
	default:
		return nan, errors.Wrapf(ErrOutOfRange, "too many fields in angle %q", str)
	}
	d, errD := strconv.Atoi(fields[0])
	m, errM := strconv.Atoi(fields[1])
	s, errS := strconv.ParseFloat(fields[2], 64)
	if errD != nil || errM != nil || errS != nil {
		return nan, errors.Wrapf(ErrOutOfRange, "cannot parse angle %q", str)
	}
	v := math.Abs(float64(d)) + math.Abs(float64(m))/60 + math.Abs(s)/3600
	if strings.HasPrefix(fields[0], "-") || d < 0 || m < 0 || s < 0 {
		v = -v
	}
	return build(v), nil
}
