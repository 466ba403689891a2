package builder

import (
	"fmt"

	"go.uber.org/zap"
)

// setupLogger returns a JSON production logger, or a console logger for
// local environments, at the given level.
func setupLogger(level string, development bool) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = atomicLevel

	return zapCfg.Build()
}
