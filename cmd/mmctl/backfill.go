package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/bootstrap"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	"github.com/johnquangdev/meetingmind/pkg/config"
)

func backfillMembershipsCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-memberships",
		Short: "Write the member index entries missing for existing teams",
		Long: "Scans every team and writes a membership entry for each listed member that has none. " +
			"Teams created before the member index existed cannot be listed by member until this runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stores, err := bootstrap.OpenStores(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer stores.Close()

			indexer, ok := stores.Indexer()
			if !ok {
				return fmt.Errorf("store %s keeps no member index", cfg.Store.Backend)
			}
			rows, written, err := backfillMemberships(ctx, stores.Teams, indexer, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderTable(out, []string{"Team", "Members", "Written"}, rows)
			fmt.Fprintf(out, "✅ Wrote %d membership(s) across %d team(s)\n", written, len(rows))
			return nil
		},
	}
}

// backfillMemberships indexes the members of every team and returns one
// report row per team plus the number of entries written
func backfillMemberships(ctx context.Context, teams repositories.TeamRepository, indexer repositories.MembershipIndexer, logger *zap.Logger) ([][]string, int, error) {
	all, err := teams.Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan teams: %w", err)
	}

	rows := make([][]string, 0, len(all))
	total := 0
	for _, team := range all {
		n, err := indexer.IndexMembers(ctx, team)
		if err != nil {
			return rows, total, fmt.Errorf("failed to index members of team %s: %w", team.TeamID, err)
		}
		total += n
		if n > 0 {
			logger.Info("team.memberships.backfilled", zap.String("team_id", team.TeamID), zap.Int("written", n))
		}
		rows = append(rows, []string{team.TeamID, strconv.Itoa(len(team.Members)), strconv.Itoa(n)})
	}
	return rows, total, nil
}
