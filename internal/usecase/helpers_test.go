package usecase

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/internal/dto/response"
	"cinema-catalog/pkg/events"
	"cinema-catalog/pkg/lock"
	"context"
	"sync"
	"time"
)

var fixedNow = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

func fixedToday() time.Time {
	return startOfDay(fixedNow)
}

type stubLocker struct {
	err      error
	released bool
}

func (l *stubLocker) Acquire(context.Context, string, time.Duration) (lock.ReleaseFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	return func(context.Context) error {
		l.released = true
		return nil
	}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type stubCleaner struct {
	calls int
	err   error
}

func (c *stubCleaner) Reconcile(context.Context, time.Time) (*entity.ReconcileResult, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &entity.ReconcileResult{}, nil
}

type stubGenreService struct {
	invalidated int
}

func (s *stubGenreService) List(context.Context) ([]response.GenreResponse, error) {
	return nil, nil
}

func (s *stubGenreService) Get(context.Context, int64) (*response.GenreResponse, error) {
	return nil, ErrGenreNotFound
}

func (s *stubGenreService) Invalidate() {
	s.invalidated++
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
