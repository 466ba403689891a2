package builder

import (
	"context"
	"fmt"

	"github.com/futig/outreach-backend/internal/config"
	"github.com/futig/outreach-backend/internal/integration/directory"
	"go.uber.org/zap"
)

// setupDirectory picks the context source. The file directory is fronted by
// a cache which is flushed whenever the watcher reloads the file.
func setupDirectory(ctx context.Context, cfg config.ContextConfig, logger *zap.Logger) (directory.Provider, error) {
	if cfg.File == "" {
		logger.Info("Using built-in context records")
		return directory.NewStaticDirectory(), nil
	}

	file, err := directory.NewFileDirectory(cfg.File, logger)
	if err != nil {
		return nil, fmt.Errorf("load context file: %w", err)
	}

	cached := directory.NewCachedDirectory(file, cfg.CacheTTL)

	if cfg.Watch {
		if err := file.Watch(ctx, cached.Flush); err != nil {
			return nil, err
		}
	}

	logger.Info("Using context file",
		zap.String("path", cfg.File),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Bool("watch", cfg.Watch),
	)

	return cached, nil
}
