package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

// Logger is a zerolog.Logger tagged with the service name.
type Logger struct {
	logger  zerolog.Logger
	service string
}

// New builds a logger writing to cfg.Output.
func New(cfg *Config, serviceName string) *Logger {
	return NewWithWriter(outputWriter(cfg.Output), cfg, serviceName)
}

// NewWithWriter builds a logger writing to w. An unknown level falls back
// to info.
func NewWithWriter(w io.Writer, cfg *Config, serviceName string) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w)
	if isConsole(cfg.Format) {
		zl = newConsoleLogger(w, cfg)
	}
	ctx := zl.Level(level).With().Str("service", serviceName)
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return &Logger{logger: ctx.Logger(), service: serviceName}
}

// NewDefault builds an info-level console logger on stderr.
func NewDefault(serviceName string) *Logger {
	cfg := Config{}
	cfg.ApplyDefaults()
	return New(&cfg, serviceName)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

func (l *Logger) derive(zc zerolog.Context) *Logger {
	return &Logger{logger: zc.Logger(), service: l.service}
}

// WithComponent tags every entry with the component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.logger.With().Str(FieldComponent, name))
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.derive(l.logger.With().Fields(fields))
}

func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.logger.With().Err(err))
}

// Zerolog exposes the underlying logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Error(), msg, fields)
}

// emit is a no-op for events below the logger level, which zerolog
// reports as nil.
func emit(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	if event == nil {
		return
	}
	for _, fm := range fields {
		event.Fields(fm)
	}
	event.Msg(msg)
}

// --- package-level logger ---

// globalLogger serves packages built without an injected logger.
var globalLogger *Logger

func SetGlobalLogger(l *Logger) { globalLogger = l }

// GetGlobalLogger returns the package-level logger, creating a default one
// on first use.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger = NewDefault("storefront")
	}
	return globalLogger
}

func Debug(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Warn(msg, fields...) }
func Error(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Error(msg, fields...) }

// WithComponent tags the package-level logger.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}

func isConsole(format string) bool {
	f := strings.ToLower(format)
	return f == FormatConsole || f == FormatPretty
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return os.Stdout
	}
	return os.Stderr
}

type levelTag struct {
	tag   string
	color string
}

var levelTags = map[string]levelTag{
	"debug": {"[DBG]", "36"},
	"info":  {"[INF]", "32"},
	"warn":  {"[WRN]", "33"},
	"error": {"[ERR]", "31"},
}

func newConsoleLogger(w io.Writer, cfg *Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    cfg.NoColor,
		FormatLevel: func(i interface{}) string {
			lvl := fmt.Sprint(i)
			lt, ok := levelTags[lvl]
			if !ok {
				return "[" + strings.ToUpper(lvl) + "]"
			}
			if cfg.NoColor {
				return lt.tag
			}
			return "\033[" + lt.color + "m" + lt.tag + "\033[0m"
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprint(i) + ":"
		},
	})
}
