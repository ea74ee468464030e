package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rpgo/networth-planner/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  logrus.Level
	}{
		{"debug", "debug", logrus.DebugLevel},
		{"upper case warn", "WARN", logrus.WarnLevel},
		{"invalid falls back to info", "chatty", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := logrus.New()
			var buf bytes.Buffer
			Configure(l, &config.AppConfig{LogLevel: tt.level, Environment: "development"}, &buf)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestConfigureInvalidLevelWarns(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	Configure(l, &config.AppConfig{LogLevel: "chatty"}, &buf)
	assert.Contains(t, buf.String(), "Invalid log level 'chatty'")
}

func TestConfigureFormatters(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	Configure(l, &config.AppConfig{LogLevel: "info", Environment: "production"}, &buf)
	_, isJSON := l.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	Configure(l, &config.AppConfig{LogLevel: "info", Environment: "development"}, &buf)
	_, isText := l.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestEngineLoggerCarriesFields(t *testing.T) {
	l := logrus.New()
	var buf bytes.Buffer
	Configure(l, &config.AppConfig{LogLevel: "info", Environment: "staging"}, &buf)

	el := NewEngineLogger(l)
	tagged := el.With("run_id", "abc")
	tagged.Infof("projected %d months", 12)
	el.Debugf("suppressed at info level")

	out := strings.TrimSpace(buf.String())
	require.Equal(t, 1, strings.Count(out, "\n")+1, out)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "projected 12 months", entry["msg"])
	assert.Equal(t, "info", entry["level"])
}
