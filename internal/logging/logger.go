// Package logging builds the application zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "focusclock.log"

// Options control logger level and outputs.
type Options struct {
	Verbose bool
	Quiet   bool
	// Console defaults to os.Stderr.
	Console io.Writer
	// FilePath enables a rotating log file when set.
	FilePath string
}

// LogPath returns the default rotating log file location.
func LogPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, "logs", logFileName), nil
}

// New creates the logger, installs it as the zerolog global logger and returns a closer
// for the log file.
func New(options Options) (zerolog.Logger, func() error) {
	console := options.Console
	if console == nil {
		console = os.Stderr
	}

	writer := consoleWriter(console)
	closer := func() error { return nil }
	if options.FilePath != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   options.FilePath,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		writer = zerolog.MultiLevelWriter(writer, fileWriter)
		closer = fileWriter.Close
	}

	logger := zerolog.New(writer).Level(Level(options.Verbose, options.Quiet)).With().Timestamp().Logger()
	log.Logger = logger
	return logger, closer
}

// Level maps the verbosity flags to a zerolog level.
func Level(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// consoleWriter prints human readable lines on a terminal and JSON elsewhere.
func consoleWriter(out io.Writer) io.Writer {
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return out
	}
	_, noColor := os.LookupEnv("NO_COLOR")
	return zerolog.ConsoleWriter{Out: file, TimeFormat: time.Kitchen, NoColor: noColor}
}
