package services

import (
	"context"
	"time"

	"github.com/hoteldesk/chat-admin/src/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// CleanupService purges denylist entries for session tokens that have
// expired on their own. Revoked tokens only need to stay on the denylist
// for as long as their signature would still verify.
type CleanupService struct {
	cron     *cron.Cron
	pool     *pgxpool.Pool
	sessions repositories.SessionRepository
	enabled  bool
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(pool *pgxpool.Pool, enabled bool) *CleanupService {
	return &CleanupService{
		cron:    cron.New(),
		pool:    pool,
		enabled: enabled,
	}
}

// NewCleanupServiceWithRepo creates a new cleanup service with a repository (for testing)
func NewCleanupServiceWithRepo(sessions repositories.SessionRepository, enabled bool) *CleanupService {
	return &CleanupService{
		cron:     cron.New(),
		sessions: sessions,
		enabled:  enabled,
	}
}

// Start schedules the hourly purge
func (cs *CleanupService) Start(ctx context.Context) {
	if !cs.enabled {
		log.Info().Msg("session cleanup disabled")
		return
	}

	cs.cron.AddFunc("0 * * * *", func() {
		cs.Purge(ctx)
	})
	cs.cron.Start()
	log.Info().Msg("session cleanup scheduled")
}

// Stop stops the scheduler and waits for a running purge to finish
func (cs *CleanupService) Stop() {
	ctx := cs.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("session cleanup stopped")
}

// Purge deletes denylist entries whose natural expiry has passed
func (cs *CleanupService) Purge(ctx context.Context) (int64, error) {
	now := time.Now()

	// Use repository if available (for testing)
	if cs.sessions != nil {
		deleted, err := cs.sessions.DeleteExpired(ctx, now)
		if err != nil {
			log.Error().Err(err).Msg("session cleanup failed")
			return 0, err
		}
		return deleted, nil
	}

	result, err := cs.pool.Exec(ctx, `DELETE FROM revoked_sessions WHERE expires_at < $1`, now)
	if err != nil {
		log.Error().Err(err).Msg("session cleanup failed")
		return 0, err
	}

	deleted := result.RowsAffected()
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("purged expired revoked sessions")
	}
	return deleted, nil
}
