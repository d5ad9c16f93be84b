package config

import (
	"os"

	"github.com/phuslu/log"
)

// SetupLogging installs the global logger: a console writer on a
// terminal, JSON to stderr otherwise, or a rotating file when configured.
func (c *Config) SetupLogging() {
	var w log.Writer
	switch {
	case c.Log.File != "":
		w = &log.FileWriter{
			Filename:     c.Log.File,
			MaxSize:      50 * 1024 * 1024,
			MaxBackups:   7,
			EnsureFolder: true,
			LocalTime:    true,
		}
	case log.IsTerminal(os.Stderr.Fd()):
		w = &log.ConsoleWriter{ColorOutput: true, Writer: os.Stderr}
	default:
		w = log.IOWriter{Writer: os.Stderr}
	}
	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(c.Log.Level),
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Writer:     w,
	}
}
