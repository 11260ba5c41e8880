package infra

import (
	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"
)

// NewLogger builds the process logger. "debug" switches to the development
// config; anything else is production JSON at the given level.
func NewLogger(level string) (*logger.ZapLogger, func(), error) {
	var (
		zcore *zap.Logger
		err   error
	)
	if level == "debug" {
		zcore, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		if lvl, perr := zap.ParseAtomicLevel(level); perr == nil {
			cfg.Level = lvl
		}
		zcore, err = cfg.Build()
	}
	if err != nil {
		return nil, nil, err
	}
	return logger.NewZapLogger(zcore.Sugar()), func() { _ = zcore.Sync() }, nil
}
