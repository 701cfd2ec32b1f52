package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// SetupLogger configures the standard logger. Logs always go to stderr:
// stdout carries payloads and the bridge protocol.
func SetupLogger(level, format string) error {
	return Configure(logrus.StandardLogger(), os.Stderr, level, format)
}

// Configure applies level and format to log and points it at out.
func Configure(log *logrus.Logger, out io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q: want text or json", format)
	}

	log.SetOutput(out)
	log.SetLevel(lvl)
	return nil
}

// For returns a logger tagged with the component name.
func For(component string) logrus.FieldLogger {
	return logrus.WithField("component", component)
}
