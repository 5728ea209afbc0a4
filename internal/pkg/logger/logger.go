package logger

import (
	"go.uber.org/zap"
)

// New builds a production logger. An empty level means info.
func New(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		atomicLevel, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		config.Level = atomicLevel
	}

	return config.Build()
}
