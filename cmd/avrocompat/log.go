package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Logging flags.
const (
	LogFormatFlag = "log-format"
	LogLevelFlag  = "log-level"

	FormatText = "text" // Human-readable text format
	FormatJSON = "json" // JSON format for machine processing

	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// enumFlag is a string flag restricted to a fixed set of options. The first
// option is the default.
type enumFlag struct {
	options []string
	value   string
}

func newEnumFlag(options ...string) *enumFlag {
	if len(options) == 0 {
		panic("enum flag needs at least one option")
	}
	return &enumFlag{options: options, value: options[0]}
}

func (f *enumFlag) String() string { return f.value }

func (f *enumFlag) Set(v string) error {
	if !slices.Contains(f.options, v) {
		return fmt.Errorf("must be one of %s", strings.Join(f.options, ", "))
	}
	f.value = v
	return nil
}

func (f *enumFlag) Type() string { return "string" }

// logFlags holds the values of the logging flags.
type logFlags struct {
	format *enumFlag
	level  *enumFlag
}

func registerLogFlags(fs *pflag.FlagSet) *logFlags {
	lf := &logFlags{
		format: newEnumFlag(FormatText, FormatJSON),
		level:  newEnumFlag(LevelWarn, LevelDebug, LevelInfo, LevelError),
	}
	fs.Var(lf.format, LogFormatFlag, "log format: text or json")
	fs.Var(lf.level, LogLevelFlag, "log level: debug, info, warn or error")
	return lf
}

// logger returns a logger writing to w according to the flags.
func (lf *logFlags) logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(lf.level.String())}
	if lf.format.String() == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch s {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
