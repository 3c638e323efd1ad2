package sky

import (
	"os"
	"strings"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	logMu  sync.RWMutex
	logger = newLogger("info")
	// customLogger is set once the caller installed its own logger, which the
	// configuration then leaves alone.
	customLogger bool
)

func newLogger(lvl string) kitlog.Logger {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	klog = level.NewFilter(klog, levelOption(lvl))
	return kitlog.With(klog, "ts", kitlog.DefaultTimestampUTC)
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	case "none":
		return level.AllowNone()
	default:
		return level.AllowInfo()
	}
}

// SetLogger replaces the package logger. A nil logger silences all output.
func SetLogger(l kitlog.Logger) {
	if l == nil {
		l = kitlog.NewNopLogger()
	}
	logMu.Lock()
	defer logMu.Unlock()
	logger, customLogger = l, true
}

// setLogLevel rebuilds the default logger at lvl, unless SetLogger was called.
func setLogLevel(lvl string) {
	logMu.Lock()
	defer logMu.Unlock()
	if !customLogger {
		logger = newLogger(lvl)
	}
}

// Logger returns the package logger, for callers that want to share it.
func Logger() kitlog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

func subsys(name string) kitlog.Logger {
	return kitlog.With(Logger(), "subsys", name)
}
