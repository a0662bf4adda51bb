package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tasksure/client/domain"
	"github.com/tasksure/client/internal/infrastructure/snapshot"
	"github.com/tasksure/client/usecase/calendar"
)

// API is the slice of the server boundary the store depends on.
type API interface {
	ListTasks(ctx context.Context, sess *domain.Session) ([]domain.Task, error)
	CreateTask(ctx context.Context, sess *domain.Session, draft domain.TaskDraft) (*domain.Task, error)
	DeleteTask(ctx context.Context, sess *domain.Session, id string) error
	Stats(ctx context.Context, sess *domain.Session) (*domain.Stats, error)
	Leaderboard(ctx context.Context, sess *domain.Session) ([]domain.LeaderboardEntry, error)
	StreakCalendar(ctx context.Context, sess *domain.Session) (map[string]int, error)
}

// Snapshots persists the last good cache contents so a fresh client can
// show data before its first successful resync.
type Snapshots interface {
	Save(snap snapshot.Snapshot) error
	Load() (*snapshot.Snapshot, error)
}

// Store holds the authoritative in-memory task list and stats. The
// cache is single-writer (only LoadAll replaces it) and multi-reader.
// Mutations never touch the cache directly: every successful create or
// delete is followed by exactly one full resynchronization before the
// call returns, so the cache only ever reflects the server echo.
type Store struct {
	api       API
	snapshots Snapshots
	logger    *zap.Logger

	mu       sync.RWMutex
	tasks    []domain.Task
	stats    domain.Stats
	loadedAt time.Time
	haveData bool
}

// New builds a Store. snapshots may be nil to disable persistence.
func New(api API, snapshots Snapshots, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:       api,
		snapshots: snapshots,
		logger:    logger,
	}
}

// LoadAll fetches the task list and the stats snapshot concurrently and
// replaces the cache atomically once both complete. If either fetch
// fails the cache is left untouched and the failure(s) are reported.
func (s *Store) LoadAll(ctx context.Context, sess *domain.Session) error {
	var (
		tasks    []domain.Task
		stats    *domain.Stats
		tasksErr error
		statsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasks, tasksErr = s.api.ListTasks(gctx, sess)
		return tasksErr
	})
	g.Go(func() error {
		stats, statsErr = s.api.Stats(gctx, sess)
		return statsErr
	})
	_ = g.Wait()

	var combined error
	if tasksErr != nil {
		combined = multierror.Append(combined, tasksErr)
	}
	if statsErr != nil {
		combined = multierror.Append(combined, statsErr)
	}
	if combined != nil {
		return domain.WrapError(errCode(combined), "load failed", combined)
	}
	if stats == nil {
		return domain.NewError(domain.ErrCodeInternal, "stats fetch returned no data")
	}

	s.mu.Lock()
	s.tasks = tasks
	s.stats = *stats
	s.loadedAt = time.Now()
	s.haveData = true
	s.mu.Unlock()

	s.persistSnapshot(tasks, *stats)
	s.logger.Debug("cache resynchronized", zap.Int("tasks", len(tasks)))
	return nil
}

// Create validates and submits a task draft. The local cache is never
// mutated optimistically; a successful create triggers exactly one
// LoadAll before returning.
func (s *Store) Create(ctx context.Context, sess *domain.Session, draft domain.TaskDraft) (*domain.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	created, err := s.api.CreateTask(ctx, sess, draft.Normalize())
	if err != nil {
		return nil, domain.WrapError(errCode(err), "create failed", err)
	}

	if err := s.LoadAll(ctx, sess); err != nil {
		return created, err
	}
	return created, nil
}

// Delete removes a task by id. Deleting an unknown id surfaces the
// server's not-found condition; a successful delete triggers exactly
// one LoadAll before returning.
func (s *Store) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if id == "" {
		return domain.NewError(domain.ErrCodeInvalid, "task id must not be empty")
	}

	if err := s.api.DeleteTask(ctx, sess, id); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		return domain.WrapError(errCode(err), "delete failed", err)
	}

	return s.LoadAll(ctx, sess)
}

// Tasks returns a copy of the cached task list.
func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Stats returns the cached stats aggregate.
func (s *Store) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// CompletedDates exposes the completion instants of the cached tasks,
// the input the calendar deriver consumes.
func (s *Store) CompletedDates() []time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var dates []time.Time
	for _, t := range s.tasks {
		if t.CompletedAt != nil {
			dates = append(dates, *t.CompletedAt)
		}
	}
	return dates
}

// CompletionCalendar returns the completion instants for the calendar
// deriver, preferring the server's per-day streak counts and falling
// back to the cached task list when that endpoint is unavailable.
func (s *Store) CompletionCalendar(ctx context.Context, sess *domain.Session) []time.Time {
	counts, err := s.api.StreakCalendar(ctx, sess)
	if err != nil {
		s.logger.Debug("streak calendar unavailable, using cached tasks", zap.Error(err))
		return s.CompletedDates()
	}
	return calendar.DatesFromCounts(counts)
}

// HasData reports whether the cache has ever been populated.
func (s *Store) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.haveData
}

// LoadedAt reports when the cache was last replaced.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Leaderboard fetches the global ranking. It is a passthrough; rows are
// not cached because the ranking is not owned by this user.
func (s *Store) Leaderboard(ctx context.Context, sess *domain.Session) ([]domain.LeaderboardEntry, error) {
	return s.api.Leaderboard(ctx, sess)
}

// RestoreSnapshot installs the persisted last-good snapshot, if any.
// It only applies before the first successful LoadAll so it can never
// clobber fresher server data.
func (s *Store) RestoreSnapshot() bool {
	if s.snapshots == nil {
		return false
	}
	snap, err := s.snapshots.Load()
	if err != nil {
		s.logger.Warn("snapshot restore failed", zap.Error(err))
		return false
	}
	if snap == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.haveData {
		return false
	}
	s.tasks = snap.Tasks
	s.stats = snap.Stats
	s.loadedAt = snap.SavedAt
	s.haveData = true
	return true
}

func (s *Store) persistSnapshot(tasks []domain.Task, stats domain.Stats) {
	if s.snapshots == nil {
		return
	}
	snap := snapshot.Snapshot{
		Tasks:   tasks,
		Stats:   stats,
		SavedAt: time.Now(),
	}
	if err := s.snapshots.Save(snap); err != nil {
		s.logger.Warn("snapshot save failed", zap.Error(err))
	}
}

// errCode extracts the dominant domain code from an error chain,
// preferring the authentication condition so it stays distinct.
func errCode(err error) domain.ErrorCode {
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			if domain.IsDomainError(e, domain.ErrCodeUnauthorized) {
				return domain.ErrCodeUnauthorized
			}
		}
	}
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return domain.ErrCodeInternal
}
