package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	Logger *logrus.Logger
	once   sync.Once
)

// GetLogger returns the process-wide logger. LOG_LEVEL picks the level
// (default info) and LOG_FORMAT=text switches to the human readable format.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		Logger = newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	})
	return Logger
}

func newLogger(level string, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return l
}
