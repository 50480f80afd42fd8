package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/minaorangina/clab/players"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is read from the environment; every field has a default
type Config struct {
	Addr string `env:"CLAB_ADDR,default=:5555"`
	// separated by ";"
	AllowedOrigins  []string      `env:"CLAB_ALLOWED_ORIGINS,default=*"`
	OutboundQueue   int           `env:"CLAB_OUTBOUND_QUEUE,default=64"`
	MaxMessageSize  int64         `env:"CLAB_MAX_MESSAGE_SIZE,default=4096"`
	WriteWait       time.Duration `env:"CLAB_WRITE_WAIT,default=10s"`
	PongWait        time.Duration `env:"CLAB_PONG_WAIT,default=60s"`
	LogLevel        string        `env:"CLAB_LOG_LEVEL,default=info"`
	Dev             bool          `env:"CLAB_DEV,default=false"`
	ShutdownTimeout time.Duration `env:"CLAB_SHUTDOWN_TIMEOUT,default=5s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: CLAB_ADDR is empty", ErrInvalidConfig)
	case c.OutboundQueue <= 0:
		return fmt.Errorf("%w: CLAB_OUTBOUND_QUEUE must be positive", ErrInvalidConfig)
	case c.MaxMessageSize <= 0:
		return fmt.Errorf("%w: CLAB_MAX_MESSAGE_SIZE must be positive", ErrInvalidConfig)
	case c.WriteWait <= 0 || c.PongWait <= 0:
		return fmt.Errorf("%w: websocket timeouts must be positive", ErrInvalidConfig)
	case c.ShutdownTimeout < 0:
		return fmt.Errorf("%w: CLAB_SHUTDOWN_TIMEOUT is negative", ErrInvalidConfig)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("%w: CLAB_LOG_LEVEL: %v", ErrInvalidConfig, err)
	}
	return level, nil
}

// NewLogger builds a JSON logger, or a console one in dev mode
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

// ConnOpts are the per-connection websocket settings
func (c Config) ConnOpts(log *zap.Logger) players.WSConnOpts {
	return players.WSConnOpts{
		WriteWait:      c.WriteWait,
		PongWait:       c.PongWait,
		MaxMessageSize: c.MaxMessageSize,
		QueueSize:      c.OutboundQueue,
		Logger:         log,
	}
}
