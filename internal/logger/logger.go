package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Info    *Leveled
	Warn    *Leveled
	Debug   *Leveled
	Verbose *Leveled
	Error   *Leveled
	Always  *Leveled // Always logs to file regardless of log level

	std    *logrus.Logger
	always *logrus.Logger
)

// Leveled pins a logrus logger to a single level so call sites can keep the
// familiar Printf/Println shape.
type Leveled struct {
	log   *logrus.Logger
	level logrus.Level
}

func (l *Leveled) Printf(format string, args ...interface{}) {
	l.log.Logf(l.level, format, args...)
}

func (l *Leveled) Println(args ...interface{}) {
	l.log.Logln(l.level, args...)
}

func (l *Leveled) Print(args ...interface{}) {
	l.log.Log(l.level, args...)
}

// init wires a stdout-only default so library code and tests can log
// before InitWithConfig replaces it.
func init() {
	setup("info", "")
}

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "tetra.log")
}

func InitWithConfig(logLevel, logFilePath string) error {
	setup(logLevel, logFilePath)
	return nil
}

func setup(logLevel, logFilePath string) {
	std = logrus.New()
	std.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(normalizeLevel(logLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	std.SetLevel(level)

	// The always logger bypasses level filtering and writes to file only
	always = logrus.New()
	always.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	always.SetLevel(logrus.InfoLevel)

	if logFilePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		std.SetOutput(io.MultiWriter(os.Stdout, rotator))
		always.SetOutput(rotator)
	} else {
		std.SetOutput(os.Stdout)
		always.SetOutput(io.Discard)
	}

	Info = &Leveled{log: std, level: logrus.InfoLevel}
	Warn = &Leveled{log: std, level: logrus.WarnLevel}
	Debug = &Leveled{log: std, level: logrus.DebugLevel}
	Verbose = &Leveled{log: std, level: logrus.TraceLevel}
	Error = &Leveled{log: std, level: logrus.ErrorLevel}
	Always = &Leveled{log: always, level: logrus.InfoLevel}
}

// normalizeLevel maps config level names onto logrus levels. "verbose" is the
// most chatty setting and lands on trace.
func normalizeLevel(level string) string {
	if level == "verbose" {
		return "trace"
	}
	return level
}
