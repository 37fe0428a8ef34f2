package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/internal/repository"
	"github.com/onurcolak/whatsapp-session-bridge/internal/service"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/database"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

var sampleContacts = []domain.Contact{
	{ID: "CONT-0001", FullName: "Jane Doe", MobileNo: "14155550100", Kind: repository.ContactKindContact, Customer: "Acme Co", IsPrimary: true},
	{ID: "CONT-0002", FullName: "John Roe", MobileNo: "14155550101", Kind: repository.ContactKindContact, Customer: "Acme Co"},
	{ID: "Acme Co", FullName: "Acme Co", MobileNo: "14155550199", Kind: repository.ContactKindCustomer},
}

func main() {
	var (
		tenants  []string
		contacts bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create enabled sessions for the given tenants and optional sample contacts",
		Example: `  seed --tenant "Acme Co"
  seed --tenant "Acme Co" --tenant Globex --contacts`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			return run(cmd.Context(), tenants, contacts)
		},
	}

	cmd.Flags().StringArrayVar(&tenants, "tenant", []string{"Acme Co"}, "Tenant to enable (repeatable)")
	cmd.Flags().BoolVar(&contacts, "contacts", false, "Insert sample contacts and customers")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, tenants []string, withContacts bool) error {
	cfg, err := environments.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Errorf("Failed to close database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	registry := service.NewSessionRegistry(repository.NewSessionRepository(db), nil, service.NewMemoryGuard(cfg.Reconnect.LockTTL))
	for _, tenant := range tenants {
		session, err := registry.Configure(ctx, tenant, "", true)
		if err != nil {
			return fmt.Errorf("seed tenant %q: %w", tenant, err)
		}
		logger.Infof("Session %s ready for tenant %q", session.SessionID, tenant)
	}

	if withContacts {
		contactRepo := repository.NewContactRepository(db)
		for _, c := range sampleContacts {
			if err := contactRepo.Upsert(ctx, c); err != nil {
				return fmt.Errorf("seed contact %s: %w", c.ID, err)
			}
		}
		logger.Infof("Seeded %d contacts", len(sampleContacts))
	}

	logger.Infof("Seed completed successfully")
	return nil
}
