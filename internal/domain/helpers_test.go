package domain

import (
	"errors"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"
)

var errBoom = errors.New("boom")

func nopLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}
