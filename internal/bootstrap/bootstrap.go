// Package bootstrap builds the stores and notification plumbing shared by
// the API server and the reminder job from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/adapter/dynamo"
	"github.com/johnquangdev/meetingmind/internal/adapter/repository"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/cache"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/database"
	"github.com/johnquangdev/meetingmind/internal/infrastructure/notify"
	"github.com/johnquangdev/meetingmind/pkg/config"
)

// Stores holds the record and team stores of the configured backend
type Stores struct {
	Meetings repositories.MeetingRepository
	Teams    repositories.TeamRepository
	close    func()
}

// Close releases the backend's connections
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Purger returns the meeting store's expiry purger. Backends that expire
// records natively have none.
func (s *Stores) Purger() (repositories.ExpiredMeetingPurger, bool) {
	p, ok := s.Meetings.(repositories.ExpiredMeetingPurger)
	return p, ok
}

// Indexer returns the team store's membership indexer
func (s *Stores) Indexer() (repositories.MembershipIndexer, bool) {
	i, ok := s.Teams.(repositories.MembershipIndexer)
	return i, ok
}

// OpenStores connects to the backend selected by STORE_BACKEND
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.Dynamo.Region, cfg.Dynamo.Endpoint)
		if err != nil {
			return nil, err
		}
		tables := dynamo.Tables{
			Meetings:        cfg.Store.MeetingsTable,
			Teams:           cfg.Store.TeamsTable,
			Memberships:     cfg.Dynamo.MembershipsTable,
			StatusIndex:     cfg.Dynamo.StatusIndex,
			TeamIndex:       cfg.Dynamo.TeamIndex,
			InviteCodeIndex: cfg.Dynamo.InviteCodeIndex,
		}
		logger.Info("store.dynamodb.ready",
			zap.String("region", cfg.Dynamo.Region),
			zap.String("meetings_table", tables.Meetings),
			zap.String("teams_table", tables.Teams),
		)
		return &Stores{
			Meetings: dynamo.NewMeetingRepository(client, tables, cfg.Store.Timeout),
			Teams:    dynamo.NewTeamRepository(client, tables, cfg.Store.Timeout),
		}, nil

	case config.StoreBackendPostgres:
		db, err := database.NewPostgresDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		// Production deployments manage schema via sql-migrate out of band
		if cfg.Database.AutoMigrate {
			if cfg.IsProduction() {
				_ = database.CloseDB(db)
				return nil, fmt.Errorf("DB_AUTO_MIGRATE must be disabled in production")
			}
			if err := database.AutoMigrate(db, cfg.Database.MigrationsDir, logger); err != nil {
				_ = database.CloseDB(db)
				return nil, err
			}
		}
		return &Stores{
			Meetings: repository.NewMeetingRepository(db, cfg.Store.MeetingsTable, cfg.Store.Timeout),
			Teams:    repository.NewTeamRepository(db, cfg.Store.TeamsTable, cfg.Store.Timeout),
			close: func() {
				if err := database.CloseDB(db); err != nil {
					logger.Warn("store.postgres.close_failed", zap.Error(err))
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// Notifications holds the reminder job's outbound channels and dedupe ledger
type Notifications struct {
	Channel repositories.NotificationChannel
	Direct  repositories.RecipientChannel
	Ledger  repositories.ReminderLedger
	close   func()
}

// Close releases the Redis connection when one was opened
func (n *Notifications) Close() {
	if n.close != nil {
		n.close()
	}
}

// OpenNotifications builds the channel selected by NOTIFY_BACKEND. The
// ledger shares its Redis connection, or lives in process memory when the
// channel is log-only.
func OpenNotifications(cfg *config.Config, logger *zap.Logger) (*Notifications, error) {
	switch cfg.Notify.Backend {
	case config.NotifyBackendRedis:
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("notify.redis.ready",
			zap.String("addr", cfg.GetRedisAddr()),
			zap.String("channel", cfg.Notify.Channel),
		)
		channel := notify.NewRedisChannel(client, cfg.Notify.Channel)
		return &Notifications{
			Channel: channel,
			Direct:  channel,
			Ledger:  cache.NewRedisLedger(client),
			close:   closeRedis(client, logger),
		}, nil

	case config.NotifyBackendLog:
		channel := notify.NewLogChannel(logger)
		return &Notifications{
			Channel: channel,
			Direct:  channel,
			Ledger:  cache.NewMemoryStore(),
		}, nil
	}

	return nil, fmt.Errorf("unknown notify backend %q", cfg.Notify.Backend)
}

func closeRedis(client *redis.Client, logger *zap.Logger) func() {
	return func() {
		if err := client.Close(); err != nil {
			logger.Warn("notify.redis.close_failed", zap.Error(err))
		}
	}
}
