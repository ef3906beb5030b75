package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port       int      `env:"TEST_CFG_PORT" envDefault:"8080"`
	MaxConns   int32    `env:"TEST_CFG_MAX_CONNS" envDefault:"25"`
	SampleRate float64  `env:"TEST_CFG_SAMPLE_RATE" envDefault:"1.0"`
	Enabled    bool     `env:"TEST_CFG_ENABLED" envDefault:"false"`
	Brokers    []string `env:"TEST_CFG_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_MAX_CONNS", "50")
	t.Setenv("TEST_CFG_SAMPLE_RATE", "0.25")
	t.Setenv("TEST_CFG_ENABLED", "true")
	t.Setenv("TEST_CFG_BROKERS", "kafka-1:9092,kafka-2:9092")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, int32(50), cfg.MaxConns)
	assert.Equal(t, 0.25, cfg.SampleRate)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
}

func TestLoad_TrimsWhitespace(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", " 9091 ")
	t.Setenv("TEST_CFG_ENABLED", "true\n")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9091, cfg.Port)
	assert.True(t, cfg.Enabled)
}

type requiredConfig struct {
	DSN string `env:"TEST_CFG_DSN,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
