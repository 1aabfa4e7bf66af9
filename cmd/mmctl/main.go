// Package main is the MeetingMind admin CLI: schema migrations, index
// backfills and local development fixtures.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/bootstrap"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/database"
	teamUsecase "github.com/johnquangdev/meetingmind/internal/usecase/team"
	"github.com/johnquangdev/meetingmind/pkg/config"
	pkgjwt "github.com/johnquangdev/meetingmind/pkg/jwt"
)

// devUsers are the fixture identities dev tokens are minted for
var devUsers = []struct {
	ID    string
	Email string
}{
	{ID: "dev-alice", Email: "alice@test.local"},
	{ID: "dev-bob", Email: "bob@test.local"},
	{ID: "dev-charlie", Email: "charlie@test.local"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := bootstrap.NewLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:          "mmctl",
		Short:        "MeetingMind admin CLI",
		SilenceUsage: true,
	}
	root.AddCommand(
		migrateCmd(cfg, logger),
		devTokensCmd(cfg),
		seedTeamCmd(cfg, logger),
		backfillMembershipsCmd(cfg, logger),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var dir string
	var steps int

	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect PostgreSQL schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Store.Backend != config.StoreBackendPostgres {
				return fmt.Errorf("migrations apply to the postgres store only (STORE_BACKEND=%s)", cfg.Store.Backend)
			}

			db, err := database.NewPostgresDB(cfg, logger)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get database connection: %w", err)
			}
			source := &migrate.FileMigrationSource{Dir: dir}

			switch args[0] {
			case "up":
				n, err := migrate.ExecMax(sqlDB, "postgres", source, migrate.Up, steps)
				if err != nil {
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Applied %d migration(s)\n", n)
			case "down":
				if steps == 0 {
					steps = 1
				}
				n, err := migrate.ExecMax(sqlDB, "postgres", source, migrate.Down, steps)
				if err != nil {
					return fmt.Errorf("failed to roll back migrations: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Rolled back %d migration(s)\n", n)
			case "status":
				records, err := migrate.GetMigrationRecords(sqlDB, "postgres")
				if err != nil {
					return fmt.Errorf("failed to read migration records: %w", err)
				}
				rows := make([][]string, 0, len(records))
				for _, r := range records {
					rows = append(rows, []string{r.Id, r.AppliedAt.UTC().Format(time.RFC3339)})
				}
				renderTable(cmd.OutOrStdout(), []string{"Migration", "Applied At"}, rows)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", cfg.Database.MigrationsDir, "migrations directory")
	cmd.Flags().IntVar(&steps, "steps", 0, "maximum migrations to apply (0 = all for up, 1 for down)")
	return cmd
}

func devTokensCmd(cfg *config.Config) *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "dev-tokens",
		Short: "Mint bearer tokens for the development fixture users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.IsProduction() {
				return fmt.Errorf("dev tokens are not available in production")
			}
			manager := pkgjwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.Issuer, expiry)

			out := cmd.OutOrStdout()
			for _, u := range devUsers {
				token, err := manager.GenerateAccessToken(u.ID, u.Email)
				if err != nil {
					return fmt.Errorf("failed to sign token for %s: %w", u.Email, err)
				}
				fmt.Fprintf(out, "🟢 %s (%s)\n%s\n\n", u.Email, u.ID, token)
			}
			fmt.Fprintf(out, "💡 Send as: Authorization: Bearer <token> (expires in %v)\n", expiry)
			return nil
		},
	}
	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "token lifetime")
	return cmd
}

func seedTeamCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "seed-team",
		Short: "Create a team owned by the first fixture user and join the others to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.IsProduction() {
				return fmt.Errorf("fixtures are not available in production")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			stores, err := bootstrap.OpenStores(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer stores.Close()

			svc := teamUsecase.NewTeamService(stores.Teams, teamUsecase.ListingStrategy(cfg.Store.TeamListing), logger)

			owner := devUsers[0]
			team, err := svc.CreateTeam(ctx, teamUsecase.CreateTeamInput{
				CallerID: owner.ID,
				Email:    owner.Email,
				TeamName: name,
			})
			if err != nil {
				return err
			}
			for _, u := range devUsers[1:] {
				if _, err := svc.JoinTeam(ctx, teamUsecase.JoinTeamInput{
					CallerID:   u.ID,
					Email:      u.Email,
					InviteCode: team.InviteCode,
				}); err != nil {
					return fmt.Errorf("failed to join %s: %w", u.Email, err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✅ Team %q created: id=%s inviteCode=%s\n", team.TeamName, team.TeamID, team.InviteCode)
			rows := make([][]string, 0, len(devUsers))
			for i, u := range devUsers {
				role := "member"
				if i == 0 {
					role = "owner"
				}
				rows = append(rows, []string{u.ID, u.Email, role})
			}
			renderTable(out, []string{"User", "Email", "Role"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Dev Team", "team name")
	return cmd
}
