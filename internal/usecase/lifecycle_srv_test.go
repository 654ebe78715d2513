package usecase

import (
	"cinema-catalog/internal/data/repository"
	"cinema-catalog/internal/data/repository/mocks"
	"cinema-catalog/pkg/events"
	"cinema-catalog/pkg/lock"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestLifecycle(t *testing.T, locker lock.Locker, pub events.Publisher) (LifecycleService, *mocks.MockLifecycleRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockLifecycleRepository(ctrl)
	return NewLifecycleService(repo, locker, time.Second, pub, nil, zap.NewNop()), repo
}

func TestReconcile_DeletesUnbookedAndExpiresBooked(t *testing.T) {
	t.Parallel()
	locker := &stubLocker{}
	pub := &recordingPublisher{}
	svc, repo := newTestLifecycle(t, locker, pub)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().FindExpiredIDs(gomock.Any(), fixedToday()).Return([]int64{1, 2}, nil),
		repo.EXPECT().CountBookings(gomock.Any(), int64(1)).Return(int64(0), nil),
		repo.EXPECT().Purge(gomock.Any(), int64(1)).Return(true, nil),
		repo.EXPECT().CountBookings(gomock.Any(), int64(2)).Return(int64(4), nil),
		repo.EXPECT().MarkExpired(gomock.Any(), int64(2)).Return(true, nil),
	)

	result, err := svc.Reconcile(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, 1, result.ExpiredCount)
	assert.Empty(t, result.Failures)
	assert.False(t, result.Skipped)
	assert.NotEmpty(t, result.RunID)
	assert.True(t, locker.released)
	assert.Equal(t, []string{events.TypeMoviesReconciled}, pub.types())
}

func TestReconcile_SecondPassIsIdempotent(t *testing.T) {
	t.Parallel()
	pub := &recordingPublisher{}
	svc, repo := newTestLifecycle(t, &stubLocker{}, pub)
	ctx := context.Background()

	// first pass removes movie 1, the booked movie 2 stays behind
	repo.EXPECT().FindExpiredIDs(gomock.Any(), gomock.Any()).Return([]int64{1, 2}, nil)
	repo.EXPECT().CountBookings(gomock.Any(), int64(1)).Return(int64(0), nil)
	repo.EXPECT().Purge(gomock.Any(), int64(1)).Return(true, nil)
	repo.EXPECT().FindExpiredIDs(gomock.Any(), gomock.Any()).Return([]int64{2}, nil)
	repo.EXPECT().CountBookings(gomock.Any(), int64(2)).Return(int64(1), nil).Times(2)
	gomock.InOrder(
		repo.EXPECT().MarkExpired(gomock.Any(), int64(2)).Return(true, nil),
		repo.EXPECT().MarkExpired(gomock.Any(), int64(2)).Return(false, nil),
	)

	first, err := svc.Reconcile(ctx, fixedNow)
	require.NoError(t, err)
	second, err := svc.Reconcile(ctx, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, 1, first.DeletedCount)
	assert.Equal(t, 0, second.DeletedCount)
	assert.Equal(t, 1, first.ExpiredCount)
	// movie 2 is flagged again even though its status no longer changes
	assert.Equal(t, first.ExpiredCount, second.ExpiredCount)
	assert.Empty(t, second.Failures)
	assert.NotEqual(t, first.RunID, second.RunID)
	// an unchanged store produces no second event
	assert.Equal(t, []string{events.TypeMoviesReconciled}, pub.types())
}

func TestReconcile_CascadeFailureFallsBackToExpire(t *testing.T) {
	t.Parallel()
	svc, repo := newTestLifecycle(t, &stubLocker{}, nil)
	cascadeErr := errors.New("purge movie 5: delete from payments: deadlock detected")

	repo.EXPECT().FindExpiredIDs(gomock.Any(), gomock.Any()).Return([]int64{5, 6}, nil)
	repo.EXPECT().CountBookings(gomock.Any(), int64(5)).Return(int64(0), nil)
	repo.EXPECT().Purge(gomock.Any(), int64(5)).Return(false, cascadeErr)
	repo.EXPECT().MarkExpired(gomock.Any(), int64(5)).Return(true, nil)
	// a failure on one candidate does not stop the pass
	repo.EXPECT().CountBookings(gomock.Any(), int64(6)).Return(int64(0), nil)
	repo.EXPECT().Purge(gomock.Any(), int64(6)).Return(true, nil)

	result, err := svc.Reconcile(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, 1, result.ExpiredCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, int64(5), result.Failures[0].MovieID)
	assert.Equal(t, "cascade delete failed, marked expired", result.Failures[0].Reason)
	assert.ErrorIs(t, result.Failures[0].Err, cascadeErr)
}

func TestReconcile_BookedDuringPassIsExpiredNotDeleted(t *testing.T) {
	t.Parallel()
	pub := &recordingPublisher{}
	svc, repo := newTestLifecycle(t, &stubLocker{}, pub)

	gomock.InOrder(
		repo.EXPECT().FindExpiredIDs(gomock.Any(), gomock.Any()).Return([]int64{4}, nil),
		repo.EXPECT().CountBookings(gomock.Any(), int64(4)).Return(int64(0), nil),
		repo.EXPECT().Purge(gomock.Any(), int64(4)).Return(false, fmt.Errorf("purge movie 4: %w", repository.ErrStillBooked)),
		repo.EXPECT().MarkExpired(gomock.Any(), int64(4)).Return(true, nil),
	)

	result, err := svc.Reconcile(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Zero(t, result.DeletedCount)
	assert.Equal(t, 1, result.ExpiredCount)
	assert.Empty(t, result.Failures)
	assert.Equal(t, []string{events.TypeMoviesReconciled}, pub.types())
}

func TestReconcile_FallbackFailureNotCounted(t *testing.T) {
	t.Parallel()
	svc, repo := newTestLifecycle(t, &stubLocker{}, nil)

	repo.EXPECT().FindExpiredIDs(gomock.Any(), gomock.Any()).Return([]int64{5}, nil)
	repo.EXPECT().CountBookings(gomock.Any(), int64(5)).Return(int64(0), nil)
	repo.EXPECT().Purge(gomock.Any(), int64(5)).Return(false, errors.New("conn reset"))
	repo.EXPECT().MarkExpired(gomock.Any(), int64(5)).Return(false, errors.New("conn reset"))

	result, err := svc.Reconcile(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Zero(t, result.ExpiredCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "cascade delete and expiry both failed", result.Failures[0].Reason)
}

func TestReconcile_MovieAlreadyGone(t *testing.T) {
	t.Parallel()
	pub := &recordingPublisher{}
	svc, repo := newTestLifecycle(t, &stubLocker{}, pub)

	repo.EXPECT().FindExpiredIDs(gomock.Any(), gomock.Any()).Return([]int64{8}, nil)
	repo.EXPECT().CountBookings(gomock.Any(), int64(8)).Return(int64(0), nil)
	repo.EXPECT().Purge(gomock.Any(), int64(8)).Return(false, nil)

	result, err := svc.Reconcile(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Zero(t, result.DeletedCount)
	assert.Empty(t, pub.types())
}

func TestReconcile_SkipsWhenLockHeld(t *testing.T) {
	t.Parallel()
	svc, _ := newTestLifecycle(t, &stubLocker{err: lock.ErrLocked}, nil)

	result, err := svc.Reconcile(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Zero(t, result.DeletedCount)
}

func TestReconcile_RunsWithoutLockBackend(t *testing.T) {
	t.Parallel()
	svc, repo := newTestLifecycle(t, &stubLocker{err: errors.New("redis: connection refused")}, nil)

	repo.EXPECT().FindExpiredIDs(gomock.Any(), gomock.Any()).Return([]int64{}, nil)

	result, err := svc.Reconcile(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
}

func TestReconcile_ListFailure(t *testing.T) {
	t.Parallel()
	svc, repo := newTestLifecycle(t, &stubLocker{}, nil)

	repo.EXPECT().FindExpiredIDs(gomock.Any(), gomock.Any()).Return(nil, errors.New("relation \"movies\" does not exist"))

	_, err := svc.Reconcile(context.Background(), fixedNow)
	assert.Error(t, err)
}
