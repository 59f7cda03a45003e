package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/tripflow/planner/migrations"
)

func migrateCommand(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "migrate",
		Short:   "apply or roll back the Postgres schema",
		Long:    `migrate runs the embedded goose migrations against DATABASE_URL and prints the resulting status. The local file store needs no migrations.`,
		Example: "tripctl migrate --up\ntripctl migrate --down",
		RunE: func(cmd *cobra.Command, _ []string) error {
			up, _ := cmd.Flags().GetBool("up")
			down, _ := cmd.Flags().GetBool("down")
			if down {
				up = false
			}

			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required for migrate")
			}

			db, err := sql.Open("pgx", cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			ctx := cmdContext(cmd)
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
			if err != nil {
				return fmt.Errorf("create goose provider: %w", err)
			}

			out := cmd.OutOrStdout()
			switch {
			case up:
				results, err := provider.Up(ctx)
				if err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				for _, r := range results {
					fmt.Fprintf(out, "up    %s (%s)\n", r.Source.Path, r.Duration.Round(time.Millisecond))
				}
			case down:
				r, err := provider.Down(ctx)
				if err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				fmt.Fprintf(out, "down  %s\n", r.Source.Path)
			}

			statuses, err := provider.Status(ctx)
			if err != nil {
				return fmt.Errorf("migration status: %w", err)
			}
			for _, s := range statuses {
				fmt.Fprintf(out, "%-8s %d %s\n", s.State, s.Source.Version, s.Source.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolP("up", "u", true, "apply all pending migrations")
	cmd.Flags().BoolP("down", "d", false, "roll back the latest migration")
	return cmd
}
