package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// OrphanSweeper removes uploads no product references.
type OrphanSweeper interface {
	SweepOrphanFiles(ctx context.Context, grace time.Duration) (removed int, err error)
}

// StartOrphanSweeper runs sweeper every interval, using the interval as the
// grace period for recent uploads. A zero interval disables the job and
// returns a nil scheduler.
func StartOrphanSweeper(sweeper OrphanSweeper, interval time.Duration) (gocron.Scheduler, error) {
	if interval <= 0 {
		log.Info().Str("component", "StartOrphanSweeper").Msg("orphan file sweeper disabled")
		return nil, nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			interval,
		),
		gocron.NewTask(
			func() {
				sweep(sweeper, interval)
			},
		),
		gocron.WithName("orphan-file-sweeper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		s.Shutdown()
		return nil, err
	}

	s.Start()

	return s, nil
}

func sweep(sweeper OrphanSweeper, grace time.Duration) {
	logger := log.With().Str("job", "orphan-file-sweeper").Logger()
	ctx := logger.WithContext(context.Background())

	removed, err := sweeper.SweepOrphanFiles(ctx, grace)
	if err != nil {
		logger.Error().Err(err).Str("component", "sweep").Msg("")
		return
	}

	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("orphan files removed")
	}
}
