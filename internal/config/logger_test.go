package config

import (
	"testing"

	"github.com/labstack/gommon/log"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := map[string]log.Lvl{
		"debug":   log.DEBUG,
		"info":    log.INFO,
		"warn":    log.WARN,
		"error":   log.ERROR,
		"off":     log.OFF,
		"verbose": log.INFO,
	}
	for in, want := range cases {
		if got := NewLogger("test", in).Level(); got != want {
			t.Fatalf("NewLogger(%q).Level() = %v, want %v", in, got, want)
		}
	}
}
