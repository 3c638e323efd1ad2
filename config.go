package sky

import (
	"os"
	"sync"

	"github.com/go-kit/log/level"
	"github.com/spf13/viper"
)

const (
	// ConfigEnv names the environment variable holding the directory of conf.toml.
	ConfigEnv       = "SKY_CONFIG"
	defaultMaxTrail = 400
)

var (
	cfgOnce sync.Once
	config  _skyconfig
)

// _skyconfig is a "hidden" struct, just use `skyConfig`
type _skyconfig struct {
	SeriesDir       string
	VSOP87          bool
	VSOP87Dir       string
	Refraction      bool
	Relativistic    bool
	PreciseNutation bool
	MaxTrail        int
	LogLevel        string
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("series.directory", "")
	v.SetDefault("VSOP87.enabled", false)
	v.SetDefault("VSOP87.directory", "")
	v.SetDefault("corrections.refraction", true)
	v.SetDefault("corrections.relativistic", true)
	v.SetDefault("corrections.precise_nutation", true)
	v.SetDefault("trail.max", defaultMaxTrail)
	v.SetDefault("log.level", "info")
}

// skyConfig returns the sky configuration, reading $SKY_CONFIG/conf.toml on first use.
// Without the environment variable the defaults apply.
func skyConfig() _skyconfig {
	cfgOnce.Do(loadConfig)
	return config
}

func loadConfig() {
	v := viper.New()
	setConfigDefaults(v)
	if confPath := os.Getenv(ConfigEnv); confPath != "" {
		v.SetConfigName("conf")
		v.AddConfigPath(confPath)
		if err := v.ReadInConfig(); err != nil {
			level.Error(subsys("config")).Log("message", "could not read configuration, using defaults", "path", confPath, "err", err)
		}
	}
	config = configFrom(v)
	if config.LogLevel != "info" {
		setLogLevel(config.LogLevel)
	}
	level.Debug(subsys("config")).Log("series", config.SeriesDir, "vsop87", config.VSOP87, "trail", config.MaxTrail)
}

func configFrom(v *viper.Viper) _skyconfig {
	maxTrail := v.GetInt("trail.max")
	if maxTrail <= 0 {
		maxTrail = defaultMaxTrail
	}
	return _skyconfig{
		SeriesDir:       v.GetString("series.directory"),
		VSOP87:          v.GetBool("VSOP87.enabled"),
		VSOP87Dir:       v.GetString("VSOP87.directory"),
		Refraction:      v.GetBool("corrections.refraction"),
		Relativistic:    v.GetBool("corrections.relativistic"),
		PreciseNutation: v.GetBool("corrections.precise_nutation"),
		MaxTrail:        maxTrail,
		LogLevel:        v.GetString("log.level"),
	}
}

// UseViper replaces the cached configuration with the values held by v, with the
// usual defaults for unset keys. The command line tools bind their flags this way.
// It must not run concurrently with computations.
func UseViper(v *viper.Viper) {
	setConfigDefaults(v)
	c := configFrom(v)
	cfgOnce = sync.Once{}
	cfgOnce.Do(func() { config = c })
	setLogLevel(c.LogLevel)
}
