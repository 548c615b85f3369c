package config

import (
	"os"

	"github.com/labstack/gommon/log"
)

// NewLogger returns a gommon logger writing to stdout at the named level.
// Unknown levels fall back to info.
func NewLogger(prefix, level string) *log.Logger {
	l := log.New(prefix)
	l.SetOutput(os.Stdout)
	l.SetHeader("${time_rfc3339} ${level} ${prefix} ${short_file}:${line}")
	switch level {
	case "debug":
		l.SetLevel(log.DEBUG)
	case "warn":
		l.SetLevel(log.WARN)
	case "error":
		l.SetLevel(log.ERROR)
	case "off":
		l.SetLevel(log.OFF)
	default:
		l.SetLevel(log.INFO)
	}
	return l
}
