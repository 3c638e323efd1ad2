package sgp4

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// Spacetrack Report #3 test element sets, with their checksums.
	nearEarthL1 = "1 88888U          80275.98708465  .00073094  13844-3  66816-4 0    87"
	nearEarthL2 = "2 88888  72.8435 115.9689 0086731  52.6988 110.5714 16.05824518  1058"
	deepL1      = "1 11801U          80230.29629788  .01431103  00000-0  14311-1 0    13"
	deepL2      = "2 11801  46.7916 230.4354 7318036  47.4722  10.4117  2.28537848    13"

	geoL1      = "1 28626U 05005A   20001.50000000 -.00000300  00000-0  00000+0 0  9995"
	geoL2      = "2 28626   0.0200  90.0000 0002000 270.0000 100.0000  1.00270000 54323"
	molniyaL1  = "1 20413U 83020D   20001.50000000  .00000000  00000-0  00000+0 0  9990"
	molniyaL2  = "2 20413  62.8000 100.0000 7300000 280.0000  20.0000  2.00600000 12349"
	highDragL1 = "1 99999U 20001A   20001.50000000  .01000000  00000-0  50000-2 0  9994"
	highDragL2 = "2 99999  51.6000 100.0000 0010000  90.0000 270.0000 16.30000000 10000"
	decayL1    = "1 99999U 20001A   20001.50000000  .01000000  00000-0  50000-3 0  9995"
	decayL2    = "2 99999  51.6000 100.0000 0500000  90.0000 270.0000 16.30000000 10004"
)

func TestParseTLE(t *testing.T) {
	tle, err := ParseTLE(" STR#3 ", nearEarthL1+"\r\n", nearEarthL2+"\n")
	if err != nil {
		t.Fatal(err)
	}
	if tle.Name != "STR#3" || tle.Number != 88888 || tle.Classification != 'U' || tle.IntlDesignator != "" {
		t.Fatalf("header %+v", tle)
	}
	if tle.EpochYear != 1980 || tle.EphemerisType != 0 || tle.ElementNumber != 8 || tle.RevNumber != 105 {
		t.Fatalf("integers %+v", tle)
	}
	for _, c := range []struct {
		name      string
		got, want float64
		tol       float64
	}{
		{"epoch day", tle.EpochDay, 275.98708465, 1e-12},
		{"epoch JD", tle.EpochJD, 2444514.48708465, 1e-7},
		{"ndot", tle.NDot, 0.00073094, 1e-15},
		{"nddot", tle.NDDot, 1.3844e-4, 1e-15},
		{"bstar", tle.BStar, 6.6816e-5, 1e-15},
		{"inclination", tle.Inclination, 72.8435, 1e-12},
		{"raan", tle.RAAN, 115.9689, 1e-12},
		{"eccentricity", tle.Eccentricity, 0.0086731, 1e-12},
		{"argument of perigee", tle.ArgPerigee, 52.6988, 1e-12},
		{"mean anomaly", tle.MeanAnomaly, 110.5714, 1e-12},
		{"mean motion", tle.MeanMotion, 16.05824518, 1e-12},
	} {
		if !scalar.EqualWithinAbs(c.got, c.want, c.tol) {
			t.Fatalf("%s: %.12g instead of %.12g", c.name, c.got, c.want)
		}
	}
	if !strings.Contains(tle.String(), "STR#3 (88888") {
		t.Fatalf("String() = %s", tle)
	}

	geo, err := ParseTLE("GEO", geoL1, geoL2)
	if err != nil {
		t.Fatal(err)
	}
	if geo.EpochYear != 2020 || geo.IntlDesignator != "05005A" || geo.NDot != -0.000003 || geo.BStar != 0 {
		t.Fatalf("%+v", geo)
	}
	if !scalar.EqualWithinAbs(geo.EpochJD, 2458850.0, 1e-9) {
		t.Fatalf("epoch %f", geo.EpochJD)
	}
}

func TestChecksum(t *testing.T) {
	for _, line := range []string{nearEarthL1, nearEarthL2, deepL1, deepL2, geoL1, geoL2, molniyaL1, molniyaL2} {
		if sum := Checksum(line); sum != int(line[68]-'0') {
			t.Fatalf("%q sums to %d", line, sum)
		}
	}
	if Checksum("1-1-") != 4 {
		t.Fatal("minus signs count for one")
	}
}

func TestParseTLEErrors(t *testing.T) {
	corrupt := nearEarthL2[:10] + "9" + nearEarthL2[11:]
	otherSat := withChecksum(strings.Replace(deepL2, "11801", "11802", 1))
	badEpoch := withChecksum(strings.Replace(nearEarthL1, "80275.98708465", "80275.9870846x", 1))
	for _, c := range []struct {
		name         string
		line1, line2 string
		cause        error
	}{
		{"short", nearEarthL1[:60], nearEarthL2, ErrFormat},
		{"swapped", nearEarthL2, nearEarthL1, ErrFormat},
		{"checksum", nearEarthL1, corrupt, ErrChecksum},
		{"catalogue", deepL1, otherSat, ErrFormat},
		{"field", badEpoch, nearEarthL2, ErrFormat},
	} {
		if _, err := ParseTLE(c.name, c.line1, c.line2); errors.Cause(err) != c.cause {
			t.Fatalf("%s: %v", c.name, err)
		}
	}
	if _, err := Parse("short", "1", "2"); errors.Cause(err) != ErrFormat {
		t.Fatalf("Parse: %v", err)
	}
}

// withChecksum replaces the last column of a line with its checksum.
func withChecksum(line string) string {
	return line[:68] + string(rune('0'+Checksum(line)))
}
