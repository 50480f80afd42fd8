package config

import (
	"errors"
	"testing"
	"time"

	utils "github.com/minaorangina/clab/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Addr:            ":5555",
		AllowedOrigins:  []string{"*"},
		OutboundQueue:   64,
		MaxMessageSize:  4096,
		WriteWait:       10 * time.Second,
		PongWait:        60 * time.Second,
		LogLevel:        "info",
		Dev:             false,
		ShutdownTimeout: 5 * time.Second,
	}, cfg)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CLAB_ADDR", "127.0.0.1:9000")
	t.Setenv("CLAB_ALLOWED_ORIGINS", "https://a.example;https://b.example")
	t.Setenv("CLAB_OUTBOUND_QUEUE", "8")
	t.Setenv("CLAB_PONG_WAIT", "30s")
	t.Setenv("CLAB_LOG_LEVEL", "debug")
	t.Setenv("CLAB_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)

	utils.AssertEqual(t, cfg.Addr, "127.0.0.1:9000")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	utils.AssertEqual(t, cfg.OutboundQueue, 8)
	utils.AssertEqual(t, cfg.PongWait, 30*time.Second)
	utils.AssertTrue(t, cfg.Dev)

	log, err := cfg.NewLogger()
	require.NoError(t, err)
	utils.AssertTrue(t, log.Core().Enabled(zap.DebugLevel))
}

func TestLoadRejectsNonsense(t *testing.T) {
	for env, value := range map[string]string{
		"CLAB_OUTBOUND_QUEUE": "0",
		"CLAB_PONG_WAIT":      "-1s",
		"CLAB_LOG_LEVEL":      "shouty",
		"CLAB_WRITE_WAIT":     "soon",
	} {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, value)
			_, err := Load()
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestConnOpts(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	log := zap.NewNop()
	opts := cfg.ConnOpts(log)
	utils.AssertEqual(t, opts.QueueSize, 64)
	utils.AssertEqual(t, opts.MaxMessageSize, int64(4096))
	utils.AssertEqual(t, opts.WriteWait, 10*time.Second)
	utils.AssertEqual(t, opts.PongWait, 60*time.Second)
	assert.Same(t, log, opts.Logger)
}
