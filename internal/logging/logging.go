package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log levels constants.
const (
	None = iota
	Error
	Warning
	Info
	Debug
)

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	silent bool // None disables output entirely; zap has no level above Fatal we can park on.
	base   *zap.Logger
	sugar  *zap.SugaredLogger
)

func init() {
	rebuild(os.Stderr)
}

// rebuild constructs the console logger writing to w. Caller info is only emitted at Debug.
func rebuild(w io.Writer) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)

	mu.Lock()
	defer mu.Unlock()
	base = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	sugar = base.Sugar()
}

// SetLevel sets the global logging level, clamped to [None, Debug].
func SetLevel(l int) {
	if l < None {
		l = None
	} else if l > Debug {
		l = Debug
	}
	mu.Lock()
	silent = l == None
	mu.Unlock()
	level.SetLevel(toZap(l))
	if l >= Debug {
		Logf(Debug, "Log level set to %d", l)
	}
}

// GetLevel returns the current logging level.
func GetLevel() int {
	mu.RLock()
	defer mu.RUnlock()
	if silent {
		return None
	}
	switch level.Level() {
	case zapcore.DebugLevel:
		return Debug
	case zapcore.InfoLevel:
		return Info
	case zapcore.WarnLevel:
		return Warning
	default:
		return Error
	}
}

// ParseLevel converts a log level string (case-insensitive) to its integer representation.
// Returns Info level and an error if the string is invalid.
func ParseLevel(levelStr string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "none":
		return None, nil
	case "error":
		return Error, nil
	case "warn", "warning":
		return Warning, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	default:
		return Info, fmt.Errorf("invalid log level string: '%s'", levelStr)
	}
}

// SetupLogging configures the logging level from a string and returns the level actually set.
func SetupLogging(levelStr string) int {
	l, err := ParseLevel(levelStr)
	if err != nil {
		Logf(Warning, "Invalid log level '%s' provided, defaulting to 'info'. Error: %v", levelStr, err)
	}
	SetLevel(l)
	return l
}

// SetOutput changes the output destination of the global logger.
func SetOutput(w io.Writer) {
	rebuild(w)
}

// With returns a structured logger carrying the given fields, e.g. the run id of a command.
func With(fields ...zap.Field) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.WithOptions(zap.AddCallerSkip(-1)).With(fields...)
}

// Logf logs a formatted message if the specified level is enabled.
func Logf(l int, format string, v ...interface{}) {
	mu.RLock()
	s, off := sugar, silent
	mu.RUnlock()
	if off || l <= None {
		return
	}
	switch l {
	case Error:
		s.Errorf(format, v...)
	case Warning:
		s.Warnf(format, v...)
	case Info:
		s.Infof(format, v...)
	default:
		s.Debugf(format, v...)
	}
}

func toZap(l int) zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Info:
		return zapcore.InfoLevel
	case Warning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
