package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meokisama/toolkit-core/internal/api"
	"github.com/meokisama/toolkit-core/internal/audit"
	"github.com/meokisama/toolkit-core/internal/infrastructure/config"
	"github.com/meokisama/toolkit-core/internal/infrastructure/database"
	"github.com/meokisama/toolkit-core/internal/infrastructure/logging"
	"github.com/meokisama/toolkit-core/internal/infrastructure/mqtt"
	"github.com/meokisama/toolkit-core/internal/recon"
	"github.com/meokisama/toolkit-core/internal/store"
)

// newServeCmd builds the serve subcommand.
func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the comparison HTTP API",
		Long: `Serve runs the toolkit as a long-lived service: the HTTP API accepts
snapshot uploads, runs comparisons against the project database, and
records every run in the audit database. With MQTT enabled, each
completed comparison is also published to the broker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), resolveConfigPath(*configPath))
		},
	}
}

// runServe is the service lifecycle, separated from the cobra wiring
// for testability. It returns on shutdown signal or startup failure;
// deferred Close calls unwind in reverse start order.
func runServe(ctx context.Context, configPath string) error {
	// Use default logger until config is loaded.
	log := logging.Default()
	log.Info("starting toolkit",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings.
	log = logging.New(cfg.Logging, version)

	// Open the audit database (writable, migrated).
	auditDB, err := database.Open(database.Config{
		Path:        cfg.Audit.Path,
		WALMode:     cfg.Audit.WALMode,
		BusyTimeout: cfg.Audit.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening audit database: %w", err)
	}
	defer func() {
		log.Info("closing audit database")
		if closeErr := auditDB.Close(); closeErr != nil {
			log.Error("error closing audit database", "error", closeErr)
		}
	}()

	if migrateErr := auditDB.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("audit database ready", "path", cfg.Audit.Path)

	// Open the project database. Read-only: the toolkit must never
	// mutate the editor's data.
	projectDB, err := database.OpenReadOnly(cfg.Project.Path)
	if err != nil {
		return fmt.Errorf("opening project database: %w", err)
	}
	defer func() {
		log.Info("closing project database")
		if closeErr := projectDB.Close(); closeErr != nil {
			log.Error("error closing project database", "error", closeErr)
		}
	}()
	log.Info("project database opened", "path", cfg.Project.Path)

	provider := store.New(projectDB.DB)

	resolver, err := provider.LoadResolver(ctx)
	if err != nil {
		return fmt.Errorf("loading device resolver: %w", err)
	}

	engine := recon.NewEngine(log.Logger, resolver)
	runs := audit.NewSQLiteRepository(auditDB.DB)

	// MQTT is optional; comparisons persist without a broker.
	var publisher api.EventPublisher
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		publisher = mqttClient
	} else {
		log.Info("MQTT disabled")
	}

	server, err := api.New(api.Deps{
		Config:    cfg.API,
		Logger:    log.With("component", "api"),
		Project:   provider,
		Runs:      runs,
		Engine:    engine,
		Publisher: publisher,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	if err := healthCheck(ctx, auditDB, projectDB, mqttClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// healthCheck verifies the infrastructure connections.
// mqttClient may be nil when the broker is disabled.
func healthCheck(ctx context.Context, auditDB, projectDB *database.DB, mqttClient *mqtt.Client) error {
	if err := auditDB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("audit database: %w", err)
	}
	if err := projectDB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("project database: %w", err)
	}
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	return nil
}
