package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
	accountUseCase "github.com/amirhossein-jamali/balance-app/internal/domain/usecase/account"
	dataUseCase "github.com/amirhossein-jamali/balance-app/internal/domain/usecase/data"

	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/backup/gist"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/backup/memory"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/identity"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/scheduler"
	timeProvider "github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
		CallerInfo: cfg.Logger.CallerInfo,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Flush()

	tp := timeProvider.NewRealTimeProvider()
	ids := idgen.NewUUIDGenerator()

	// Local store
	dbManager := database.NewManager(database.FromAppConfig(cfg.Database, cfg.Database.LogLevel), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", coreport.ErrorFields(err, nil))
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(context.Background()); err != nil {
		appLogger.Error("Failed to run migrations", coreport.ErrorFields(err, nil))
		os.Exit(1)
	}

	dataRepo := repository.NewDataRepository(dbManager, appLogger)
	accountRepo := repository.NewAccountRepository(dbManager, appLogger)
	preferencesRepo := repository.NewPreferencesRepository(dbManager, appLogger)

	gateways := newGatewayFactory(cfg, ids, tp, appLogger)

	decoder := identity.NewJWTDecoder(cfg.Auth.FederatedClient, issuers(cfg.Auth.FederatedIssuer), tp, appLogger)

	// Use cases
	accounts := accountUseCase.NewStore(
		accountRepo,
		preferencesRepo,
		decoder,
		gateways,
		accountUseCase.DemoCredentials{Username: cfg.Auth.DemoUsername, Password: cfg.Auth.DemoPassword},
		appLogger,
	)

	data := dataUseCase.NewStore(
		dataRepo,
		accounts,
		gateways,
		ids,
		tp,
		appLogger,
		dataUseCase.Options{
			SnapshotVersion: cfg.Backup.SnapshotVersion,
			SyncTimeout:     coreport.Duration(cfg.Backup.SyncTimeout),
			RecentLimit:     cfg.Sync.RecentLimit,
		},
	)
	accounts.SetDataWiper(data)

	ctx := context.Background()
	if err := accounts.Load(ctx); err != nil {
		appLogger.Error("Failed to restore session", coreport.ErrorFields(err, nil))
		os.Exit(1)
	}
	if err := data.Load(ctx); err != nil {
		appLogger.Error("Failed to restore local data", coreport.ErrorFields(err, nil))
		os.Exit(1)
	}

	// Periodic sync
	var syncScheduler *scheduler.SyncScheduler
	if cfg.Sync.SchedulerEnabled {
		syncScheduler = scheduler.NewSyncScheduler(data, accounts, tp, appLogger)
		data.OnSettingsChange(syncScheduler.Reschedule)
		syncScheduler.Start()
	}

	schemaVersion, err := dbManager.MigrationManager().GetCurrentVersion(ctx)
	if err != nil {
		appLogger.Warn("Failed to read schema version", coreport.ErrorFields(err, nil))
	}

	// HTTP API
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp, ids)
	routes.SetupRoutes(router, routes.Handlers{
		Session:      handler.NewSessionHandler(accounts, appLogger),
		Cards:        handler.NewCardHandler(data, appLogger),
		Transactions: handler.NewTransactionHandler(data, cfg.Sync.RecentLimit, appLogger),
		Sync:         handler.NewSyncHandler(data, appLogger),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":           server.Addr,
			"env":            cfg.Environment,
			"backup":         cfg.Backup.Provider,
			"database":       cfg.Database.Driver,
			"authenticated":  accounts.IsAuthenticated(),
			"cards":          len(data.Cards()),
			"scheduler":      cfg.Sync.SchedulerEnabled,
			"schema_version": schemaVersion,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", coreport.ErrorFields(err, nil))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", coreport.ErrorFields(err, nil))
	}

	if syncScheduler != nil {
		if err := syncScheduler.Stop(shutdownCtx); err != nil {
			appLogger.Warn("Sync scheduler did not stop cleanly", coreport.ErrorFields(err, nil))
		}
	}

	appLogger.Info("Shutting down sync queue...", nil)
	data.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
}

// newGatewayFactory picks the backup store named by the configuration
func newGatewayFactory(
	cfg *config.Config,
	ids coreport.IDGenerator,
	tp coreport.TimeProvider,
	appLogger coreport.Logger,
) remote.GatewayFactory {
	if strings.EqualFold(cfg.Backup.Provider, "memory") {
		appLogger.Warn("Using in-memory backup store, backups are lost on exit", nil)
		return memory.NewStore(ids, tp, appLogger).Factory()
	}

	return gist.NewFactory(gist.Options{
		BaseURL:        cfg.Backup.BaseURL,
		RequestTimeout: coreport.Duration(cfg.Backup.RequestTimeout),
	}, tp, appLogger)
}

// issuers expands the configured issuer; Google signs with two spellings
func issuers(configured string) []string {
	for _, issuer := range identity.GoogleIssuers {
		if configured == issuer {
			return identity.GoogleIssuers
		}
	}
	if configured == "" {
		return nil
	}
	return []string{configured}
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	switch strings.ToLower(cfg.Database.Driver) {
	case database.DriverSQLite:
		if cfg.Database.Path == "" {
			missingConfigs = append(missingConfigs, "database.path (or BA_DB_PATH environment variable)")
		}
	case database.DriverPostgres:
		if cfg.Database.Host == "" {
			missingConfigs = append(missingConfigs, "database.host (or BA_DB_HOST environment variable)")
		}
		if cfg.Database.Database == "" {
			missingConfigs = append(missingConfigs, "database.database (or BA_DB_NAME environment variable)")
		}
	default:
		missingConfigs = append(missingConfigs, "database.driver (sqlite or postgres)")
	}

	switch strings.ToLower(cfg.Backup.Provider) {
	case "gist":
		if cfg.Backup.BaseURL == "" {
			missingConfigs = append(missingConfigs, "backup.baseURL")
		}
	case "memory":
	default:
		missingConfigs = append(missingConfigs, "backup.provider (gist or memory)")
	}

	if cfg.Auth.DemoUsername == "" || cfg.Auth.DemoPassword == "" {
		missingConfigs = append(missingConfigs, "auth.demoUsername and auth.demoPassword")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingConfigs, ", "))
	}
	return nil
}
