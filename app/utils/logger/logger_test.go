package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevelAndFormat(t *testing.T) {
	l := newLogger("debug", "text")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	l = newLogger("nonsense", "")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

func TestGetLoggerIsSingleton(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}
