package sweep

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/internal/media"
	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
	"github.com/iamdominic/portfolio-backend/internal/projects/repository"
)

type stubRefs struct {
	urls []string
	err  error
}

func (s stubRefs) ScreenshotRefs(context.Context) ([]string, error) {
	return s.urls, s.err
}

func TestSweeper_Run(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := media.NewMemoryStore()

	store.SetClock(func() time.Time { return now.Add(-48 * time.Hour) })
	keptURL, err := store.Put(ctx, "projects/old-kept.png", "image/png", []byte("k"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "projects/old-orphan.png", "image/png", []byte("o"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "other/untouched.png", "image/png", []byte("x"))
	require.NoError(t, err)

	store.SetClock(func() time.Time { return now.Add(-time.Hour) })
	_, err = store.Put(ctx, "projects/fresh.png", "image/png", []byte("f"))
	require.NoError(t, err)

	refs := stubRefs{urls: []string{keptURL, "https://images.unsplash.com/x"}}

	s := New(store, refs, "projects", 24*time.Hour, zap.NewNop())
	s.now = func() time.Time { return now }

	report, err := s.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, 2, report.Kept)
	assert.Equal(t, 0, report.Failed)

	assert.True(t, store.Has("projects/old-kept.png"))
	assert.True(t, store.Has("projects/fresh.png"))
	assert.True(t, store.Has("other/untouched.png"))
	assert.False(t, store.Has("projects/old-orphan.png"))
}

func TestSweeper_RefsFailureDeletesNothing(t *testing.T) {
	ctx := context.Background()
	store := media.NewMemoryStore()
	store.SetClock(func() time.Time { return time.Unix(0, 0) })
	_, err := store.Put(ctx, "projects/a.png", "image/png", []byte("a"))
	require.NoError(t, err)

	s := New(store, stubRefs{err: errors.New("firestore down")}, "projects", time.Hour, zap.NewNop())

	_, err = s.Run(ctx)
	assert.Error(t, err)
	assert.True(t, store.Has("projects/a.png"))
	assert.Empty(t, store.Deletes())
}

func TestSweeper_StartRejectsBadSchedule(t *testing.T) {
	s := New(media.NewMemoryStore(), stubRefs{}, "projects", time.Hour, zap.NewNop())
	_, err := s.Start("every tuesday")
	assert.Error(t, err)
}

func TestSweeper_RecordHiddenFromListStillProtectsBlob(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	store := media.NewMemoryStore()
	store.SetClock(func() time.Time { return time.Unix(0, 0) })

	url, err := store.Put(ctx, "projects/1-a.png", "image/png", []byte("a"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.ProjectFormData{
		Title:       "A",
		Description: "d",
		TechStack:   []string{"Go"},
		Screenshots: []string{url},
	})
	require.NoError(t, err)

	s := New(store, hiddenFromList{repo}, "projects", time.Hour, zap.NewNop())

	report, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Deleted)
	assert.True(t, store.Has("projects/1-a.png"))
}

// hiddenFromList behaves like a backend whose List skips a record it cannot
// map while the record is still stored.
type hiddenFromList struct {
	*repository.MemoryRepository
}

func (hiddenFromList) List(context.Context) ([]domain.Project, error) {
	return []domain.Project{}, nil
}

type blockingRefs struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRefs) ScreenshotRefs(context.Context) ([]string, error) {
	b.calls.Add(1)
	b.entered <- struct{}{}
	<-b.release
	return nil, nil
}

func TestSweeper_JobSkipsOverlappingRuns(t *testing.T) {
	refs := &blockingRefs{entered: make(chan struct{}, 1), release: make(chan struct{})}
	s := New(media.NewMemoryStore(), refs, "projects", time.Hour, zap.NewNop())
	j := s.job()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		j.Run()
	}()
	<-refs.entered

	j.Run()
	assert.Equal(t, int32(1), refs.calls.Load())

	close(refs.release)
	wg.Wait()

	go j.Run()
	<-refs.entered
	assert.Equal(t, int32(2), refs.calls.Load())
}
