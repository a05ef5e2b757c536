// Package observability provides structured logging for the battle runner.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/rpgbattle/internal/config"
	"github.com/cory-johannsen/rpgbattle/internal/game/unit"
)

// NewLogger creates a structured logger from the given logging configuration.
//
// Log output goes to stderr so it never interleaves with battle text on stdout.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// Unit returns a field that encodes u's identity and pools as a nested object.
func Unit(key string, u *unit.Unit) zap.Field {
	if u == nil {
		return zap.Skip()
	}
	return zap.Object(key, unitMarshaler{u})
}

type unitMarshaler struct{ u *unit.Unit }

func (m unitMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", m.u.ID)
	enc.AddString("name", m.u.Name)
	enc.AddString("archetype", m.u.Archetype.ID)
	enc.AddInt("level", m.u.Level)
	enc.AddInt("hp", m.u.HP)
	enc.AddInt("max_hp", m.u.MaxHP)
	enc.AddInt("mp", m.u.MP)
	return nil
}
