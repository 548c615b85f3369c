// Command hotelctl runs one-off maintenance tasks against the hotel admin
// database: applying the schema, reconciling room statuses and seeding admin
// accounts.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/iliyamo/hotel-booking-admin/internal/config"
	"github.com/iliyamo/hotel-booking-admin/internal/database"
	"github.com/iliyamo/hotel-booking-admin/internal/jobs"
	"github.com/iliyamo/hotel-booking-admin/internal/repository"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env is what every subcommand needs once configuration is loaded.
type env struct {
	cfg config.Config
	db  *sql.DB
	log *log.Logger
}

// connect loads configuration and opens the database.  The caller closes db.
func connect(ctx context.Context) (*env, error) {
	cfg := config.Load()
	db, err := database.Open(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return &env{cfg: cfg, db: db, log: config.NewLogger("hotelctl", cfg.LogLevel)}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hotelctl",
		Short:        "Maintenance tasks for the hotel admin API",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newReconcileCmd(), newCreateAdminCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()
			if err := database.Migrate(cmd.Context(), e.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Release rooms whose stays have ended and recount availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()
			res, err := jobs.RunReconcile(cmd.Context(), repository.NewReconcileRepo(e.db), e.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "released %d rooms, recounted %d room types\n", res.ReleasedRooms, res.RecountedTypes)
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 6 {
				return errors.New("password must be at least 6 characters")
			}
			e, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()
			id, err := repository.NewAdminRepo(e.db).Create(cmd.Context(), email, password, e.cfg.BcryptCost)
			if err != nil {
				if errors.Is(err, repository.ErrEmailExists) {
					return fmt.Errorf("admin %s already exists", email)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %d created\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password (min 6 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
