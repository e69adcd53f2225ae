package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a, err := repo.Create(ctx, domain.ProjectFormData{Title: "A", Description: "d", TechStack: []string{"Go"}})
	require.NoError(t, err)
	b, err := repo.Create(ctx, domain.ProjectFormData{Title: "B", Description: "d", TechStack: []string{"Go"}})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	err = repo.Update(ctx, a.ID, domain.ProjectFormData{Title: "A2", Description: "d", TechStack: []string{"Go", "Rust"}})
	require.NoError(t, err)

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, []string{"Go", "Rust"}, got.TechStack)
	assert.Equal(t, a.CreatedAt, got.CreatedAt)

	require.NoError(t, repo.Delete(ctx, a.ID))
	require.NoError(t, repo.Delete(ctx, a.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	assert.ErrorIs(t, repo.Update(ctx, a.ID, domain.ProjectFormData{}), domain.ErrNotFound)
	_, err = repo.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	p, err := repo.Create(ctx, domain.ProjectFormData{Title: "A", Description: "d", TechStack: []string{"Go"}})
	require.NoError(t, err)
	p.TechStack[0] = "mutated"

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.TechStack)
}

func TestMemoryRepository_ScreenshotRefs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, domain.ProjectFormData{Title: "A", Description: "d", TechStack: []string{"Go"}, Screenshots: []string{"u1", "u2"}})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.ProjectFormData{Title: "B", Description: "d", TechStack: []string{"Go"}})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.ProjectFormData{Title: "C", Description: "d", TechStack: []string{"Go"}, Screenshots: []string{"u3"}})
	require.NoError(t, err)

	refs, err := repo.ScreenshotRefs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, refs)
}
