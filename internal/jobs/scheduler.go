package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper deletes expired session records and reports how many went.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron     *cron.Cron
	sessions Sweeper
	interval time.Duration
	log      zerolog.Logger
}

func NewScheduler(sessions Sweeper, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		sessions: sessions,
		interval: interval,
		log:      log,
	}
}

// Start registers the sweep. A non-positive interval disables it.
func (s *Scheduler) Start() error {
	if s.sessions == nil || s.interval <= 0 {
		return nil
	}

	if _, err := s.cron.AddFunc("@every "+s.interval.String(), s.SweepSessions); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		<-s.cron.Stop().Done()
		cancel()
	}()
	return func() {
		<-ctx.Done()
	}
}

func (s *Scheduler) SweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.sessions.Sweep(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("expired sessions swept")
	}
}
