// Package logging configures the process-wide zerolog logger and keeps the
// API credential out of emitted log lines.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Setup builds the root logger writing human-readable lines to stderr.
// Unrecognized levels fall back to info. When apiKey is non-empty it is
// redacted from every line at info level and above; debug and trace output
// stays raw for diagnosis.
func Setup(level, apiKey string) zerolog.Logger {
	lvl := parseLevel(level)

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}
	if apiKey != "" {
		out = &RedactWriter{Next: out, Secret: apiKey}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// RedactWriter replaces occurrences of Secret with a truncated placeholder
// before the line reaches the next writer. Lines below info level pass
// through unchanged.
type RedactWriter struct {
	Next   io.Writer
	Secret string
}

// Write treats unleveled writes as info so a bare write is still redacted.
func (w *RedactWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.InfoLevel, p)
}

// WriteLevel implements zerolog.LevelWriter.
func (w *RedactWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.InfoLevel || w.Secret == "" || !bytes.Contains(p, []byte(w.Secret)) {
		return w.Next.Write(p)
	}

	redacted := bytes.ReplaceAll(p, []byte(w.Secret), []byte(placeholder(w.Secret)))
	if _, err := w.Next.Write(redacted); err != nil {
		return 0, err
	}
	return len(p), nil
}

// placeholder keeps the first and last four characters so operators can tell
// keys apart without exposing them. Keys too short to truncate safely are
// hidden entirely.
func placeholder(secret string) string {
	if len(secret) <= 8 {
		return "REDACTED_API_KEY(...)"
	}
	return fmt.Sprintf("REDACTED_API_KEY(%s...%s)", secret[:4], secret[len(secret)-4:])
}
