package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *logrus.Logger

// Init configures the package logger. Unknown levels fall back to info.
func Init(level string) {
	log = logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	ensure()
	log.SetOutput(w)
}

// UseFile sends log output to a size-rotated file in addition to stderr.
func UseFile(path string) io.Closer {
	ensure()
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return rotator
}

func ensure() {
	if log == nil {
		Init("info")
	}
}

func WithFields(fields map[string]interface{}) *logrus.Entry {
	ensure()
	return log.WithFields(logrus.Fields(fields))
}

func Debug(args ...interface{}) {
	ensure()
	log.Debug(args...)
}

func Info(args ...interface{}) {
	ensure()
	log.Info(args...)
}

func Warn(args ...interface{}) {
	ensure()
	log.Warn(args...)
}

func Error(args ...interface{}) {
	ensure()
	log.Error(args...)
}

func Fatal(args ...interface{}) {
	ensure()
	log.Fatal(args...)
}

func Debugf(format string, args ...interface{}) {
	ensure()
	log.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	ensure()
	log.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	ensure()
	log.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	ensure()
	log.Errorf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	ensure()
	log.Fatalf(format, args...)
}
