// Package scheduler runs FRIDAY's housekeeping and digest jobs on cron
// schedules.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"friday/internal/notifier"
)

// Processor answers a command the way a chat user would get it answered.
type Processor interface {
	Process(ctx context.Context, text string) string
}

// Sender delivers digest messages.
type Sender interface {
	SendWithRetry(ctx context.Context, chatID, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	ChartDir  string
	Retention time.Duration
	Processor Processor
	Sender    Sender
	ChatID    string
	Watchlist []string
	Now       func() time.Time
	Ctx       context.Context
}

// NewScheduler creates a Scheduler that prunes charts in chartDir older
// than retention. proc and sender may be nil when no digest is wanted.
func NewScheduler(ctx context.Context, chartDir string, retention time.Duration, proc Processor, sender Sender, chatID string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		ChartDir:  chartDir,
		Retention: retention,
		Processor: proc,
		Sender:    sender,
		ChatID:    chatID,
		Now:       time.Now,
		Ctx:       ctx,
	}
}

// RegisterAll registers the chart cleanup and, when a watchlist and a
// sender are configured, the watchlist digest.
func (s *Scheduler) RegisterAll(cleanupCron, digestCron string, watchlist []string) error {
	if _, err := s.Cron.AddFunc(cleanupCron, s.cleanupTask); err != nil {
		return fmt.Errorf("register cleanup task: %w", err)
	}
	s.Watchlist = watchlist
	if digestCron == "" || len(watchlist) == 0 || s.Sender == nil || s.Processor == nil || s.ChatID == "" {
		return nil
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunCleanupNow prunes charts immediately, as done once at startup.
func (s *Scheduler) RunCleanupNow() {
	s.cleanupTask()
}

func (s *Scheduler) cleanupTask() {
	n, err := s.PruneCharts()
	if err != nil {
		log.Error().Err(err).Str("dir", s.ChartDir).Msg("chart cleanup failed")
		return
	}
	log.Info().Int("removed", n).Dur("retention", s.Retention).Msg("chart cleanup finished")
}

// PruneCharts deletes regular files in ChartDir last modified before the
// retention window and returns how many were removed. A missing directory
// is not an error.
func (s *Scheduler) PruneCharts() (int, error) {
	entries, err := os.ReadDir(s.ChartDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read chart dir: %w", err)
	}

	cutoff := s.Now().Add(-s.Retention)
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("stat chart")
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.ChartDir, e.Name())); err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("remove chart")
			continue
		}
		removed++
	}
	return removed, nil
}

// RunDigestNow sends the watchlist digest immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Info().Strs("watchlist", s.Watchlist).Msg("running watchlist digest")
	for _, symbol := range s.Watchlist {
		if s.Ctx.Err() != nil {
			return
		}
		reply := s.Processor.Process(s.Ctx, "analyze stock "+symbol)
		text, _ := notifier.ExtractChart(reply)
		s.trySend(text)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Sender.SendWithRetry(s.Ctx, s.ChatID, text, 3); err != nil {
		log.Error().Err(err).Msg("send digest")
	}
}
