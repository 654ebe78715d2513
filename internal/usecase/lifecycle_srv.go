package usecase

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/internal/data/repository"
	"cinema-catalog/pkg/events"
	"cinema-catalog/pkg/lock"
	"cinema-catalog/pkg/metrics"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const reconcileLockKey = "catalog:reconcile"

// LifecycleService removes or retires movies whose end date has passed.
type LifecycleService interface {
	Reconcile(ctx context.Context, now time.Time) (*entity.ReconcileResult, error)
}

type lifecycleService struct {
	repo      repository.LifecycleRepository
	locker    lock.Locker
	lockTTL   time.Duration
	publisher events.Publisher
	metrics   *metrics.Metrics
	group     singleflight.Group
	log       *zap.Logger
}

func NewLifecycleService(
	repo repository.LifecycleRepository,
	locker lock.Locker,
	lockTTL time.Duration,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) LifecycleService {
	if locker == nil {
		locker = lock.Local{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &lifecycleService{
		repo:      repo,
		locker:    locker,
		lockTTL:   lockTTL,
		publisher: publisher,
		metrics:   m,
		log:       log.With(zap.String("service", "lifecycle")),
	}
}

// Reconcile runs one cleanup pass. Callers arriving while a pass is running
// in this process share its result.
func (s *lifecycleService) Reconcile(ctx context.Context, now time.Time) (*entity.ReconcileResult, error) {
	v, err, _ := s.group.Do(reconcileLockKey, func() (any, error) {
		// a caller hanging up must not abort the pass for the others
		return s.reconcile(context.WithoutCancel(ctx), now)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.ReconcileResult), nil
}

func (s *lifecycleService) reconcile(ctx context.Context, now time.Time) (result *entity.ReconcileResult, err error) {
	start := time.Now()
	result = &entity.ReconcileResult{RunID: uuid.New()}
	log := s.log.With(zap.String("run_id", result.RunID.String()))

	defer func() {
		result.Duration = time.Since(start)
		s.metrics.RecordReconcile(result.DeletedCount, result.ExpiredCount, len(result.Failures), result.Duration, result.Skipped, err)
	}()

	release, err := s.locker.Acquire(ctx, reconcileLockKey, s.lockTTL)
	switch {
	case errors.Is(err, lock.ErrLocked):
		log.Debug("Reconcile already running elsewhere, skipping")
		result.Skipped = true
		return result, nil
	case err != nil:
		// row locks still keep concurrent cascades safe
		log.Warn("Reconcile lock unavailable, continuing without it", zap.Error(err))
		err = nil
	default:
		defer func() {
			if rerr := release(ctx); rerr != nil {
				log.Warn("Failed to release reconcile lock", zap.Error(rerr))
			}
		}()
	}

	ids, err := s.repo.FindExpiredIDs(ctx, startOfDay(now))
	if err != nil {
		log.Error("Failed to list expired movies", zap.Error(err))
		return result, fmt.Errorf("list expired movies: %w", err)
	}

	changed := false
	for _, id := range ids {
		if s.reconcileMovie(ctx, log, id, result) {
			changed = true
		}
	}

	notable := changed || len(result.Failures) > 0
	logDone := log.Debug
	if notable {
		logDone = log.Info
	}
	logDone("Reconcile finished",
		zap.Int("candidates", len(ids)),
		zap.Int("deleted", result.DeletedCount),
		zap.Int("expired", result.ExpiredCount),
		zap.Int("failures", len(result.Failures)),
		zap.Bool("changed", changed),
	)

	if notable {
		s.publish(ctx, log, events.NewEvent(events.TypeMoviesReconciled, map[string]any{
			"run_id":        result.RunID.String(),
			"deleted_count": result.DeletedCount,
			"expired_count": result.ExpiredCount,
			"failure_count": len(result.Failures),
		}))
	}

	return result, nil
}

const (
	reasonCountFailed    = "could not check bookings"
	reasonExpireFailed   = "could not mark expired"
	reasonCascadeExpired = "cascade delete failed, marked expired"
	reasonCascadeFailed  = "cascade delete and expiry both failed"
)

// reconcileMovie resolves one candidate and reports whether the store changed.
func (s *lifecycleService) reconcileMovie(ctx context.Context, log *zap.Logger, id int64, result *entity.ReconcileResult) bool {
	log = log.With(zap.Int64("movie_id", id))

	fail := func(reason string, err error) {
		result.Failures = append(result.Failures, entity.ReconcileFailure{MovieID: id, Reason: reason, Err: err})
	}

	bookings, err := s.repo.CountBookings(ctx, id)
	if err != nil {
		log.Error("Failed to count bookings", zap.Error(err))
		fail(reasonCountFailed, err)
		return false
	}

	if bookings == 0 {
		deleted, err := s.repo.Purge(ctx, id)
		switch {
		case err == nil:
			if deleted {
				result.DeletedCount++
			}
			return deleted
		case errors.Is(err, repository.ErrStillBooked):
			log.Info("Movie was booked during reconcile, marking expired instead")
		default:
			log.Error("Cascade delete failed, marking movie expired instead", zap.Error(err))
			changed, err2 := s.repo.MarkExpired(ctx, id)
			if err2 != nil {
				log.Error("Fallback expiry failed", zap.Error(err2))
				fail(reasonCascadeFailed, errors.Join(err, err2))
				return false
			}
			fail(reasonCascadeExpired, err)
			result.ExpiredCount++
			return changed
		}
	}

	changed, err := s.repo.MarkExpired(ctx, id)
	if err != nil {
		log.Error("Failed to mark movie expired", zap.Error(err))
		fail(reasonExpireFailed, err)
		return false
	}
	result.ExpiredCount++
	return changed
}

func (s *lifecycleService) publish(ctx context.Context, log *zap.Logger, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish event", zap.Error(err), zap.String("type", event.Type))
	}
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
