package sgp4

import (
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var logger = kitlog.With(
	level.NewFilter(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr)), level.AllowInfo()),
	"ts", kitlog.DefaultTimestampUTC, "subsys", "sgp4")

// SetLogger replaces the package logger. A nil logger silences all output.
func SetLogger(l kitlog.Logger) {
	if l == nil {
		l = kitlog.NewNopLogger()
	}
	logger = kitlog.With(l, "subsys", "sgp4")
}
