package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/database"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"

	_ "github.com/onurcolak/whatsapp-session-bridge/docs" // swagger docs
)

// @title WhatsApp Session Bridge API
// @version 1.0
// @description Bridges tenants to a WhatsApp gateway: session lifecycle, webhooks and outbound messages
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email onur.colak@useinsider.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @schemes http https
func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whatsapp-bridge",
		Short: "WhatsApp session bridge and message pipeline",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// A missing .env is normal outside local development.
			_ = godotenv.Load()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve()
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and background task workers",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or upgrade the database schema and exit",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return migrate()
			},
		},
	)

	return cmd
}

func loadConfig() (*environments.Config, error) {
	cfg, err := environments.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Server.LogLevel)
	return cfg, nil
}

func migrate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Errorf("Error closing database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Infof("Migrations completed successfully")
	return nil
}
