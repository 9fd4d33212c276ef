package cache

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const DefaultSweepSchedule = "@every 1m"

// Sweeper periodically drops expired entries from a MemoryStore.
type Sweeper struct {
	store  *MemoryStore
	cron   *cron.Cron
	logger zerolog.Logger
}

// StartSweeper schedules store.Sweep on schedule (cron syntax or @every) and
// starts the scheduler.
func StartSweeper(store *MemoryStore, schedule string, logger zerolog.Logger) (*Sweeper, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	s := &Sweeper{
		store:  store,
		cron:   cron.New(),
		logger: logger,
	}

	entryID, err := s.cron.AddFunc(schedule, s.sweep)
	if err != nil {
		return nil, err
	}
	s.cron.Start()
	s.logger.Info().Str("schedule", schedule).Int("cronEntryID", int(entryID)).Msg("Cache sweeper started")
	return s, nil
}

func (s *Sweeper) sweep() {
	if removed := s.store.Sweep(); removed > 0 {
		s.logger.Debug().Int("removed", removed).Int("remaining", s.store.Len()).Msg("Swept expired cache entries")
	}
}

// Stop stops scheduling; the returned context is done once a running sweep ends.
func (s *Sweeper) Stop() context.Context {
	return s.cron.Stop()
}
