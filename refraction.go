package sky

import (
	"math"

	"github.com/go-kit/log/level"
)

const (
	// altCrit is the altitude, in degrees, below which the refraction formula is
	// replaced by a linear ramp to zero at -90°.
	altCrit = -1.0
	// unrefractMaxIter bounds the fixed point iteration of Unrefract.
	unrefractMaxIter = 100
)

var corrCrit = RefractionCorr(altCrit)

// RefractionCorr returns the atmospheric refraction, in degrees, at the true altitude
// alt (degrees): 1.02/tan(alt + 10.3/(alt + 5.11)) arcminutes. The correction is zero
// once the argument of the tangent reaches 90°, a little below the zenith.
func RefractionCorr(alt float64) float64 {
	arg := alt + 10.3/(alt+5.11)
	if arg >= 90 {
		return 0
	}
	return 1.02 / math.Tan(deg2rad*arg) / 60
}

// Refract returns the apparent altitude of a true altitude, both in degrees. Below
// the critical altitude the correction decreases linearly to zero at -90°. When
// conditional is false the altitude is returned unchanged.
func Refract(alt float64, conditional bool) float64 {
	if !conditional {
		return alt
	}
	if alt > altCrit {
		return alt + RefractionCorr(alt)
	}
	return alt + corrCrit*(alt+90)/(altCrit+90)
}

// Unrefract is the inverse of Refract, solved by fixed point iteration to 1e-4°.
func Unrefract(alt float64, conditional bool) float64 {
	if !conditional {
		return alt
	}
	h0 := alt
	h1 := alt - (Refract(h0, true) - h0)
	for i := 0; math.Abs(h1-h0) > 1e-4; i++ {
		if i == unrefractMaxIter {
			level.Warn(subsys("refraction")).Log("message", "unrefract stopped at the iteration cap", "alt", alt, "residual", h1-h0)
			break
		}
		h0 = h1
		h1 = alt - (Refract(h0, true) - h0)
	}
	return h1
}

// AltRefracted returns the apparent altitude, refracted when the configuration asks for it.
func (p *SkyPoint) AltRefracted() Angle {
	return Deg(Refract(p.Alt.Degrees(), skyConfig().Refraction))
}

// SetAltRefracted sets the true altitude from an apparent one.
func (p *SkyPoint) SetAltRefracted(apparent Angle) {
	p.Alt = Deg(Unrefract(apparent.Degrees(), skyConfig().Refraction))
}
