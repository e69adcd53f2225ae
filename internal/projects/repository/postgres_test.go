package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

func setupPostgresRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(db), mock
}

var projectColumns = []string{
	"id", "title", "description", "tech_stack", "github_url", "live_url", "screenshots", "created_at", "updated_at",
}

func TestPostgresRepository_Create(t *testing.T) {
	repo, mock := setupPostgresRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs(
			sqlmock.AnyArg(), // id
			"A",
			"d",
			sqlmock.AnyArg(), // tech_stack
			"",
			"https://a.dev",
			sqlmock.AnyArg(), // screenshots
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p, err := repo.Create(context.Background(), domain.ProjectFormData{
		Title:       "A",
		Description: "d",
		TechStack:   []string{"Go"},
		LiveURL:     "https://a.dev",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, []string{"Go"}, p.TechStack)
	assert.Equal(t, now, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_List(t *testing.T) {
	repo, mock := setupPostgresRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, title, description`).
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p1", "A", "d", "{Go,Rust}", "https://github.com/me/a", nil, "{https://x/2.png,https://x/1.png}", now, now).
			AddRow("p2", "B", "d", "{}", nil, nil, "{}", now, now))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, []string{"Go", "Rust"}, items[0].TechStack)
	assert.Equal(t, []string{"https://x/2.png", "https://x/1.png"}, items[0].Screenshots)
	assert.Equal(t, "https://github.com/me/a", items[0].GithubURL)
	assert.Empty(t, items[0].LiveURL)
	assert.Empty(t, items[1].Screenshots)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListFailure(t *testing.T) {
	repo, mock := setupPostgresRepo(t)

	mock.ExpectQuery(`SELECT id, title, description`).WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Get(t *testing.T) {
	repo, mock := setupPostgresRepo(t)

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, title, description`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_Update(t *testing.T) {
	repo, mock := setupPostgresRepo(t)
	data := domain.ProjectFormData{Title: "A", Description: "d", TechStack: []string{"Go", "Rust"}}

	t.Run("updates existing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects`).
			WithArgs("p1", "A", "d", sqlmock.AnyArg(), "", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), "p1", data))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE projects`).
			WithArgs("nope", "A", "d", sqlmock.AnyArg(), "", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), "nope", data), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_Delete(t *testing.T) {
	repo, mock := setupPostgresRepo(t)

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs("p1").
		WillReturnError(errors.New("boom"))

	assert.ErrorIs(t, repo.Delete(context.Background(), "p1"), domain.ErrStoreUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ScreenshotRefs(t *testing.T) {
	repo, mock := setupPostgresRepo(t)

	mock.ExpectQuery(`SELECT screenshots FROM projects`).
		WillReturnRows(sqlmock.NewRows([]string{"screenshots"}).
			AddRow("{https://x/1.png,https://x/2.png}").
			AddRow("{}").
			AddRow("{https://x/3.png}"))

	refs, err := repo.ScreenshotRefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x/1.png", "https://x/2.png", "https://x/3.png"}, refs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ScreenshotRefsFailure(t *testing.T) {
	repo, mock := setupPostgresRepo(t)

	mock.ExpectQuery(`SELECT screenshots FROM projects`).WillReturnError(errors.New("connection refused"))

	_, err := repo.ScreenshotRefs(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}
