// Command skycalc computes where the bodies of the solar system and artificial
// satellites are in the sky of an observer.
package main

import (
	"fmt"
	"os"

	"github.com/ChristopherRabotin/sky"
	"github.com/ChristopherRabotin/sky/sgp4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:           "skycalc",
	Short:         "Positions of solar system bodies and satellites",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("time", "", "instant as RFC3339, now when empty")
	flags.Float64("lat", 0, "geodetic latitude of the observer in degrees")
	flags.Float64("lon", 0, "longitude of the observer in degrees, east positive")
	flags.Float64("height", 0, "height of the observer in meters")
	flags.String("log-level", "info", "log level (debug, info, warn, error, none)")

	rootCmd.AddCommand(positionCmd, satCmd, watchCmd, ephemerisCmd)
}

// loadConfig reads $SKY_CONFIG/conf.toml when set, binds the flags over it and hands
// the result to the library.
func loadConfig(cmd *cobra.Command) error {
	if confPath := os.Getenv(sky.ConfigEnv); confPath != "" {
		v.SetConfigName("conf")
		v.AddConfigPath(confPath)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading %s/conf", confPath)
		}
	}
	for key, flag := range map[string]string{
		"site.time":      "time",
		"site.latitude":  "lat",
		"site.longitude": "lon",
		"site.height":    "height",
		"log.level":      "log-level",
	} {
		if err := v.BindPFlag(key, cmd.Flag(flag)); err != nil {
			return err
		}
	}
	sky.UseViper(v)
	sgp4.SetLogger(sky.Logger())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
