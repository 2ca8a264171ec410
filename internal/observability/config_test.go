package observability

import (
	"testing"

	"github.com/smallbiznis/debitplan/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppName:      " debitplan ",
		AppVersion:   "1.2.3",
		Environment:  "production",
		LogLevel:     " INFO ",
		LogFormat:    "Console",
		OtelEnabled:  true,
		OTLPEndpoint: "collector:4318",
		OTLPProtocol: "HTTP",
	})

	assert.Equal(t, "debitplan", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.Equal(t, "collector:4318", cfg.OtelExporterEndpoint)
	assert.False(t, cfg.Debug())
}

func TestDebug(t *testing.T) {
	assert.True(t, Config{Environment: "Test"}.Debug())
	assert.True(t, Config{Environment: "production", LogLevel: "debug"}.Debug())
	assert.True(t, LoadConfig(config.Config{Environment: "production", LogLevel: "DEBUG"}).Debug())
	assert.False(t, Config{Environment: "staging"}.Debug())
}
