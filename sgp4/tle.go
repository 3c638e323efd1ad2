package sgp4

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/soniakeys/meeus/v3/julian"
)

// tleLineLength is the number of columns of a TLE line, checksum included.
const tleLineLength = 69

// TLE is a parsed two-line element set. Angles are in degrees as in the file.
type TLE struct {
	Name           string
	Number         int
	Classification byte
	IntlDesignator string
	EpochYear      int
	EpochDay       float64 // day of the year and fraction, from 1.0
	EpochJD        float64 // UT
	NDot           float64 // first derivative of the mean motion over two, rev/day²
	NDDot          float64 // second derivative of the mean motion over six, rev/day³
	BStar          float64 // drag term, per Earth radius
	EphemerisType  int
	ElementNumber  int
	Inclination    float64
	RAAN           float64
	Eccentricity   float64
	ArgPerigee     float64
	MeanAnomaly    float64
	MeanMotion     float64 // rev/day
	RevNumber      int
	Line1, Line2   string
}

// ParseTLE parses the two lines of an element set. Both lines must carry a valid
// checksum in their last column.
func ParseTLE(name, line1, line2 string) (*TLE, error) {
	name = strings.TrimSpace(name)
	line1 = strings.TrimRight(line1, "\r\n")
	line2 = strings.TrimRight(line2, "\r\n")
	for i, line := range []string{line1, line2} {
		if len(line) < tleLineLength {
			return nil, errors.Wrapf(ErrFormat, "%s: line %d has %d columns", name, i+1, len(line))
		}
		if line[0] != byte('1'+i) {
			return nil, errors.Wrapf(ErrFormat, "%s: line %d starts with %q", name, i+1, line[0])
		}
		exp := int(line[68] - '0')
		if sum := Checksum(line); sum != exp {
			return nil, errors.Wrapf(ErrChecksum, "%s: line %d sums to %d, not %d", name, i+1, sum, exp)
		}
	}

	t := &TLE{Name: name, Line1: line1, Line2: line2}
	p := &fieldParser{name: name, line: line1}
	t.Number = p.integer(2, 7, "catalogue number")
	t.Classification = line1[7]
	t.IntlDesignator = strings.TrimSpace(line1[9:17])
	yy := p.integer(18, 20, "epoch year")
	t.EpochDay = p.decimal(20, 32, "epoch day")
	t.NDot = p.decimal(33, 43, "first derivative")
	t.NDDot = p.exponent(44, "second derivative")
	t.BStar = p.exponent(53, "drag term")
	t.EphemerisType = p.integer(62, 63, "ephemeris type")
	t.ElementNumber = p.integer(64, 68, "element number")
	if p.err != nil {
		return nil, p.err
	}

	p.line = line2
	if n := p.integer(2, 7, "catalogue number"); p.err == nil && n != t.Number {
		return nil, errors.Wrapf(ErrFormat, "%s: catalogue numbers %d and %d differ", name, t.Number, n)
	}
	t.Inclination = p.decimal(8, 16, "inclination")
	t.RAAN = p.decimal(17, 25, "right ascension of the node")
	t.Eccentricity = p.decimal(26, 33, "eccentricity") * 1e-7
	t.ArgPerigee = p.decimal(34, 42, "argument of perigee")
	t.MeanAnomaly = p.decimal(43, 51, "mean anomaly")
	t.MeanMotion = p.decimal(52, 63, "mean motion")
	t.RevNumber = p.integer(63, 68, "revolution number")
	if p.err != nil {
		return nil, p.err
	}

	// Two-digit years from 57 belong to the 20th century.
	if yy < 57 {
		t.EpochYear = 2000 + yy
	} else {
		t.EpochYear = 1900 + yy
	}
	t.EpochJD = julian.CalendarGregorianToJD(t.EpochYear, 1, t.EpochDay)
	return t, nil
}

// Checksum returns the modulo 10 sum of the first 68 columns of a TLE line, where
// digits count for their value and minus signs for one.
func Checksum(line string) int {
	sum := 0
	for i := 0; i < len(line) && i < tleLineLength-1; i++ {
		switch c := line[i]; {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

func (t TLE) String() string {
	return fmt.Sprintf("%s (%d %s) epoch %d/%.8f i=%.4f e=%.7f n=%.8f rev/day",
		t.Name, t.Number, t.IntlDesignator, t.EpochYear, t.EpochDay, t.Inclination, t.Eccentricity, t.MeanMotion)
}

// fieldParser reads columns of a line and keeps the first error.
type fieldParser struct {
	name, line string
	err        error
}

func (p *fieldParser) field(from, to int) string {
	return strings.TrimSpace(p.line[from:to])
}

func (p *fieldParser) fail(what, s string) {
	if p.err == nil {
		p.err = errors.Wrapf(ErrFormat, "%s: %s %q", p.name, what, s)
	}
}

func (p *fieldParser) decimal(from, to int, what string) float64 {
	s := p.field(from, to)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(what, s)
	}
	return f
}

func (p *fieldParser) integer(from, to int, what string) int {
	s := p.field(from, to)
	if s == "" {
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		p.fail(what, s)
	}
	return i
}

// exponent reads the eight columns from "from" written as ±NNNNN±E, meaning
// ±0.NNNNN×10^±E.
func (p *fieldParser) exponent(from int, what string) float64 {
	mantissa := p.field(from, from+6)
	if mantissa == "" || strings.Trim(mantissa, "+-0") == "" {
		return 0
	}
	m, err := strconv.ParseFloat(mantissa, 64)
	if err != nil {
		p.fail(what, mantissa)
		return 0
	}
	e, err := strconv.Atoi(p.field(from+6, from+8))
	if err != nil {
		p.fail(what, p.line[from:from+8])
		return 0
	}
	return m * 1e-5 * math.Pow(10, float64(e))
}
