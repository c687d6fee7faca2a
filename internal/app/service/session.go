package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDebounce is the window over which remote change notifications
// are coalesced into a single reload.
const DefaultDebounce = 500 * time.Millisecond

// SyncSession keeps one client's view of the hosted store fresh without
// racing its own writes: change-feed notifications are debounced, a
// reload never runs while a local mutation's persistence calls are in
// flight, and an in-flight reload suppresses reentrant reload handling.
type SyncSession struct {
	reload   func(ctx context.Context) error
	debounce time.Duration
	cron     *cron.Cron

	mu      sync.Mutex
	saving  int
	loading bool
	pending bool
	timer   *time.Timer
}

func NewSyncSession(reload func(ctx context.Context) error, debounce time.Duration) *SyncSession {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SyncSession{
		reload:   reload,
		debounce: debounce,
		cron:     cron.New(),
	}
}

// NotifyChanged is the entry point for the hosted store's change feed.
// Bursts within the debounce window collapse into one reload.
func (s *SyncSession) NotifyChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

func (s *SyncSession) flush() {
	s.mu.Lock()
	if s.saving > 0 || s.loading {
		// A local write or reload is in flight; rerun once it finishes
		// instead of clobbering the state it is producing.
		s.pending = true
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	err := s.reload(context.Background())

	s.mu.Lock()
	s.loading = false
	rerun := s.pending
	s.pending = false
	s.mu.Unlock()

	if err != nil {
		zap.L().Error("reload after remote change failed", zap.Error(err))
	}
	if rerun {
		s.NotifyChanged()
	}
}

// BeginSave and EndSave implement ports.SyncGuard. Saves nest: the
// pending reload only fires once the outermost span closes.
func (s *SyncSession) BeginSave() {
	s.mu.Lock()
	s.saving++
	s.mu.Unlock()
}

func (s *SyncSession) EndSave() {
	s.mu.Lock()
	if s.saving > 0 {
		s.saving--
	}
	rerun := s.saving == 0 && s.pending
	s.pending = s.pending && !rerun
	s.mu.Unlock()
	if rerun {
		s.NotifyChanged()
	}
}

// StartResync schedules a periodic full resync as a safety net under
// the change feed, using an "@every" cron spec built from the interval.
func (s *SyncSession) StartResync(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("resync interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), s.NotifyChanged); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the resync schedule and any armed debounce timer.
func (s *SyncSession) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
}
