package usecase

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/internal/data/repository/mocks"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestGenreList_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGenreRepository(ctrl)
	svc := NewGenreService(repo, time.Minute, zap.NewNop())

	repo.EXPECT().FindAll(gomock.Any()).Return([]*entity.Genre{{ID: 1, Name: "Action"}}, nil).Times(2)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	svc.Invalidate()
	_, err = svc.List(context.Background())
	require.NoError(t, err)
}

func TestGenreGet(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGenreRepository(ctrl)
	svc := NewGenreService(repo, time.Minute, zap.NewNop())

	repo.EXPECT().FindByID(gomock.Any(), int64(4)).Return(&entity.Genre{ID: 4, Name: "Drama"}, nil)
	repo.EXPECT().FindByID(gomock.Any(), int64(5)).Return(nil, nil)
	repo.EXPECT().FindByID(gomock.Any(), int64(6)).Return(nil, errors.New("timeout"))

	genre, err := svc.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Drama", genre.Name)

	_, err = svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, ErrGenreNotFound)

	_, err = svc.Get(context.Background(), 6)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGenreNotFound)
}

func TestGenreList_ErrorNotCached(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockGenreRepository(ctrl)
	svc := NewGenreService(repo, time.Minute, zap.NewNop())

	gomock.InOrder(
		repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("timeout")),
		repo.EXPECT().FindAll(gomock.Any()).Return([]*entity.Genre{}, nil),
	)

	_, err := svc.List(context.Background())
	assert.Error(t, err)

	genres, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, genres)
}
