/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Disabled until InitLogger or SetOutput is called, so library code can log
// unconditionally.
var globalLogger = zerolog.Nop()

// Options configures InitLogger.
type Options struct {
	LogFile    string
	Level      string
	MaxAge     int // days
	MaxSize    int // MB
	MaxBackups int
	// Console mirrors log lines to stderr. Leave it off while the TUI owns
	// the terminal.
	Console bool
}

// InitLogger sets up logging with file rotation and optional console output
func InitLogger(opts Options) error {
	logFile, err := expandHome(opts.LogFile)
	if err != nil {
		return err
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    opts.MaxSize,
		MaxAge:     opts.MaxAge,
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
		Compress:   true,
	}

	var out io.Writer = fileWriter
	if opts.Console {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "2006-01-02 15:04:05",
		}
		out = io.MultiWriter(fileWriter, consoleWriter)
	}

	setLogger(zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Caller().
		Logger())

	return nil
}

// SetOutput points the logger at w at the given level. Used by tests and by
// one-shot CLI commands that only want stderr.
func SetOutput(w io.Writer, level string) {
	setLogger(zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger())
}

func setLogger(l zerolog.Logger) {
	globalLogger = l
	log.Logger = globalLogger
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, path[2:]), nil
}

func parseLevel(level string) zerolog.Level {
	if strings.EqualFold(level, "warning") {
		return zerolog.WarnLevel
	}
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return logLevel
}

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	globalLogger.Debug().Msgf(format, args...)
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	globalLogger.Info().Msgf(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	globalLogger.Warn().Msgf(format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	globalLogger.Error().Msgf(format, args...)
}

// SetLevel changes the logging level
func SetLevel(level string) {
	setLogger(globalLogger.Level(parseLevel(level)))
}

// GetLevel returns the current level name
func GetLevel() string {
	return globalLogger.GetLevel().String()
}

// GetLogger returns the configured logger instance
func GetLogger() zerolog.Logger {
	return globalLogger
}
