package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/robfig/cron/v3"
)

// SyncSource is the part of the data store the scheduler drives
type SyncSource interface {
	Settings() entity.Settings
	SyncToCloud(ctx context.Context) error
}

// BackupState reports whether the signed-in account can push
type BackupState interface {
	IsBackupConfigured() bool
}

// SyncScheduler pushes the local data to the backup store every settings.SyncInterval
// minutes while auto-sync is on
type SyncScheduler struct {
	cron         *cron.Cron
	data         SyncSource
	accounts     BackupState
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	entryID  cron.EntryID
	interval int
	running  bool
}

// NewSyncScheduler creates a stopped scheduler
func NewSyncScheduler(
	data SyncSource,
	accounts BackupState,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *SyncScheduler {
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())

	return &SyncScheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		data:         data,
		accounts:     accounts,
		timeProvider: timeProvider,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start schedules the job from the current settings and starts the cron loop
func (s *SyncScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.scheduleLocked(s.data.Settings())
	s.cron.Start()
	s.running = true

	s.logger.Info("Sync scheduler started", map[string]any{
		"interval_minutes": s.interval,
	})
}

// Stop halts the cron loop and waits for a running sync until ctx expires
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		s.logger.Info("Sync scheduler stopped", nil)
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync scheduler stop timed out", nil)
		return ctx.Err()
	}
}

// Reschedule applies changed settings; it is registered as a settings listener
func (s *SyncScheduler) Reschedule(settings entity.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleLocked(settings)
}

// Interval returns the active interval in minutes, 0 when nothing is scheduled
func (s *SyncScheduler) Interval() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *SyncScheduler) scheduleLocked(settings entity.Settings) {
	if !settings.AutoSync || settings.SyncInterval < 1 {
		if s.entryID != 0 {
			s.cron.Remove(s.entryID)
			s.logger.Debug("Periodic sync disabled", nil)
		}
		s.entryID = 0
		s.interval = 0
		return
	}

	if s.entryID != 0 && s.interval == settings.SyncInterval {
		return
	}
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	id, err := s.cron.AddFunc(Spec(settings.SyncInterval), s.tick)
	if err != nil {
		s.logger.Error("Failed to schedule periodic sync", coreport.ErrorFields(err, map[string]any{
			"interval_minutes": settings.SyncInterval,
		}))
		s.entryID = 0
		s.interval = 0
		return
	}

	s.entryID = id
	s.interval = settings.SyncInterval
	s.logger.Debug("Periodic sync scheduled", map[string]any{
		"interval_minutes": s.interval,
	})
}

func (s *SyncScheduler) tick() {
	_ = s.RunOnce(s.ctx)
}

// RunOnce pushes when auto-sync is on and a token is stored.
// A skipped run returns nil.
func (s *SyncScheduler) RunOnce(ctx context.Context) error {
	if !s.data.Settings().AutoSync {
		s.logger.Debug("Periodic sync skipped, auto-sync is off", nil)
		return nil
	}
	if !s.accounts.IsBackupConfigured() {
		s.logger.Debug("Periodic sync skipped, backup is not configured", nil)
		return nil
	}

	start := s.timeProvider.Now()
	if err := s.data.SyncToCloud(ctx); err != nil {
		s.logger.Warn("Periodic sync failed", coreport.ErrorFields(err, map[string]any{
			"duration_ms": s.timeProvider.Since(start).Std().Milliseconds(),
		}))
		return err
	}

	s.logger.Info("Periodic sync completed", map[string]any{
		"duration_ms": s.timeProvider.Since(start).Std().Milliseconds(),
	})
	return nil
}

// Spec returns the cron spec for an interval in minutes
func Spec(minutes int) string {
	return fmt.Sprintf("@every %dm", minutes)
}

// cronLogger forwards cron's key/value logging to the core logger
type cronLogger struct {
	logger coreport.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, kvFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, coreport.ErrorFields(err, kvFields(keysAndValues)))
}

func kvFields(keysAndValues []interface{}) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
