package sky

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/viper"
)

// testConfig installs the default configuration with light bending disabled, the way
// the reference values of the tests were computed.
func testConfig() {
	cfgOnce = sync.Once{}
	cfgOnce.Do(func() {
		config = _skyconfig{Refraction: true, PreciseNutation: true, MaxTrail: defaultMaxTrail, LogLevel: "none"}
	})
	logMu.Lock()
	logger, customLogger = newLogger("none"), false
	logMu.Unlock()
}

func TestConfigDefaults(t *testing.T) {
	v := viper.New()
	setConfigDefaults(v)
	c := configFrom(v)
	if !c.Refraction || !c.Relativistic || !c.PreciseNutation {
		t.Fatalf("corrections should default to on: %+v", c)
	}
	if c.MaxTrail != defaultMaxTrail || c.VSOP87 || c.SeriesDir != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestUseViper(t *testing.T) {
	defer testConfig()
	v := viper.New()
	v.Set("trail.max", -3)
	v.Set("corrections.relativistic", false)
	v.Set("series.directory", "/tmp/series")
	v.Set("log.level", "error")
	UseViper(v)
	c := skyConfig()
	if c.MaxTrail != defaultMaxTrail {
		t.Fatalf("negative trail size should fall back to %d, got %d", defaultMaxTrail, c.MaxTrail)
	}
	if c.Relativistic || c.SeriesDir != "/tmp/series" || !c.Refraction {
		t.Fatalf("viper values not honored: %+v", c)
	}
}

func TestLazyConfigConcurrent(t *testing.T) {
	defer testConfig()
	t.Setenv(ConfigEnv, "")
	cfgOnce = sync.Once{}

	jd := CalendarToJD(2028, 4, 27+6.5/24)
	coords := []struct{ ra, dec float64 }{{4, 20}, {10, -35}, {22, 85}, {15, -85}, {0, 0}, {18, 66}}
	got := make([]*SkyPoint, len(coords))
	nums := make([]*Numbers, len(coords))
	var wg sync.WaitGroup
	for i, c := range coords {
		wg.Add(1)
		go func(i int, ra, dec float64) {
			defer wg.Done()
			nums[i] = NewNumbers(jd + float64(i))
			p := NewSkyPoint(Hours(ra), Deg(dec))
			p.ApparentCoord(J2000, jd, nil)
			got[i] = p
		}(i, c.ra, c.dec)
	}
	wg.Wait()

	if c := skyConfig(); !c.Relativistic || c.MaxTrail != defaultMaxTrail {
		t.Fatalf("defaults not loaded: %+v", c)
	}
	for i, c := range coords {
		p := NewSkyPoint(Hours(c.ra), Deg(c.dec))
		p.ApparentCoord(J2000, jd, nil)
		if p.RA.Degrees() != got[i].RA.Degrees() || p.Dec.Degrees() != got[i].Dec.Degrees() {
			t.Fatalf("(%f, %f): %s in parallel, %s alone", c.ra, c.dec, got[i], p)
		}
		if nums[i].JD() != jd+float64(i) {
			t.Fatalf("numbers %d at %f", i, nums[i].JD())
		}
	}
}

func TestConfigKeepsCallerLogger(t *testing.T) {
	defer testConfig()
	var buf bytes.Buffer
	SetLogger(level.NewFilter(kitlog.NewLogfmtLogger(&buf), level.AllowDebug()))

	v := viper.New()
	v.Set("log.level", "none")
	UseViper(v)
	level.Debug(subsys("test")).Log("message", "after UseViper")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "conf.toml"), []byte("[log]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigEnv, dir)
	cfgOnce = sync.Once{}
	if lvl := skyConfig().LogLevel; lvl != "error" {
		t.Fatalf("conf.toml not read, level %q", lvl)
	}
	level.Debug(subsys("test")).Log("message", "after lazy load")

	for _, msg := range []string{"after UseViper", "after lazy load"} {
		if !strings.Contains(buf.String(), msg) {
			t.Fatalf("caller logger replaced, missing %q in %q", msg, buf.String())
		}
	}

	// Without a caller logger the level applies.
	testConfig()
	UseViper(v)
	before := Logger()
	UseViper(v)
	if Logger() == before {
		t.Fatal("default logger not rebuilt")
	}
}
