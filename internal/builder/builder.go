package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/outreach-backend/internal/api"
	chatapi "github.com/futig/outreach-backend/internal/api/chat"
	sequenceapi "github.com/futig/outreach-backend/internal/api/sequence"
	"github.com/futig/outreach-backend/internal/config"
	"github.com/futig/outreach-backend/internal/integration/llm"
	"github.com/futig/outreach-backend/internal/pkg/formatter"
	"github.com/futig/outreach-backend/internal/pkg/validator"
	"github.com/futig/outreach-backend/internal/repository"
	"github.com/futig/outreach-backend/internal/usecase/chat"
	"github.com/futig/outreach-backend/internal/usecase/sequence"
	"go.uber.org/zap"
)

const serverIdleTimeout = 60 * time.Second

// Build loads configuration for the environment, connects to the database,
// applies migrations and wires the HTTP server.
func Build(environment string) (*App, error) {
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	ctx, stop := context.WithCancel(context.Background())

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		stop()
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		stop()
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	sequenceRepo := repository.NewSequencePostgres(db)

	var completion chat.CompletionConnector
	if cfg.EnableMocks {
		logger.Info("Using mock completion connector")
		completion = llm.NewMockConnector()
	} else {
		logger.Info("Using completion provider", zap.String("model", cfg.LLMConnectorCfg.Model))
		completion = llm.NewConnector(cfg.LLMConnectorCfg)
	}

	contexts, err := setupDirectory(ctx, cfg.ContextCfg, logger)
	if err != nil {
		stop()
		db.Close()
		return nil, fmt.Errorf("setup context directory: %w", err)
	}

	if cfg.DocxLicenseKey != "" {
		if err := formatter.SetLicenseKey(cfg.DocxLicenseKey); err != nil {
			stop()
			db.Close()
			return nil, fmt.Errorf("set unioffice license: %w", err)
		}
	} else {
		logger.Warn("UNIDOC_LICENSE_API_KEY is not set, DOCX export will fail")
	}

	v := validator.New()

	chatUC := chat.NewUsecase(completion, contexts)
	sequenceUC := sequence.NewUsecase(sequenceRepo, time.Now)
	logger.Info("Use cases initialized")

	chatHandler := chatapi.NewHandler(chatUC, v)
	sequenceHandler := sequenceapi.NewHandler(sequenceUC, v, formatter.NewFactory())

	router := api.SetupRouter(chatHandler, sequenceHandler, api.RouterConfig{
		HandlerTimeout: cfg.ServerHandlerTimeout,
		ChatRPS:        cfg.ChatRateLimitCfg.RPS,
		ChatBurst:      cfg.ChatRateLimitCfg.Burst,
	}, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:         server,
		db:             db,
		logger:         logger,
		stopBackground: stop,
	}, nil
}

// Migrate applies pending migrations and exits without serving.
func Migrate(environment string) error {
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Running database migrations", zap.String("environment", cfg.Environment))
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := repository.MigrationVersion(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}

	logger.Info("Database migrations completed successfully",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
