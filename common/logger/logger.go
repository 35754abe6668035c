package logger

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
	TRACE
)

var (
	nullWriter = &NullWriter{}
	logLevel   = INFO
	Info       *log.Logger
	Warn       *log.Logger
	Error      *log.Logger
	Debug      *log.Logger
	Trace      *log.Logger
)

func StringToLogLevel(value string) LogLevel {
	switch strings.ToLower(value) {
	case "error":
		return ERROR
	case "warn":
		return WARN
	case "info":
		return INFO
	case "debug":
		return DEBUG
	case "trace":
		return TRACE
	}
	log.Printf("Invalid log level: '%s'. Returning INFO", value)
	return INFO
}

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	}
	return "UNKNOWN"
}

func (s LogLevel) zerologLevel() zerolog.Level {
	switch s {
	case ERROR:
		return zerolog.ErrorLevel
	case WARN:
		return zerolog.WarnLevel
	case DEBUG:
		return zerolog.DebugLevel
	case TRACE:
		return zerolog.TraceLevel
	}
	return zerolog.InfoLevel
}

type NullWriter struct {
	io.Writer
}

func (s *NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// levelWriter forwards each formatted log line to zerolog at a fixed level.
type levelWriter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func (s *levelWriter) Write(p []byte) (n int, err error) {
	s.logger.WithLevel(s.level).Msg(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func init() {
	Error = log.New(nullWriter, "", 0)
	Warn = log.New(nullWriter, "", 0)
	Info = log.New(nullWriter, "", 0)
	Debug = log.New(nullWriter, "", 0)
	Trace = log.New(nullWriter, "", 0)
}

func Initialize(level LogLevel) {
	InitializeWithWriter(level, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
}

// InitializeWithWriter sends every enabled level to out through zerolog.
func InitializeWithWriter(level LogLevel, out io.Writer) {
	logLevel = level
	zerolog.SetGlobalLevel(level.zerologLevel())
	base := zerolog.New(out).Level(level.zerologLevel()).With().Timestamp().Logger()

	newLogger := func(l LogLevel) *log.Logger {
		if level >= l {
			return log.New(&levelWriter{logger: base, level: l.zerologLevel()}, "", log.Lshortfile)
		}
		return log.New(nullWriter, "", 0)
	}

	Error = newLogger(ERROR)
	Warn = newLogger(WARN)
	Info = newLogger(INFO)
	Debug = newLogger(DEBUG)
	Trace = newLogger(TRACE)

	Debug.Printf("Initialized loggers: '%s'", level.String())
}

func IsLogLevel(level LogLevel) bool {
	return logLevel >= level
}
