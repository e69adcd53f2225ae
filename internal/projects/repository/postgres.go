package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

// PostgresRepository keeps projects in a single table. Lists are stored as
// text[] so their order survives round trips.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
  id          text PRIMARY KEY,
  title       text NOT NULL,
  description text NOT NULL,
  tech_stack  text[] NOT NULL DEFAULT '{}',
  github_url  text,
  live_url    text,
  screenshots text[] NOT NULL DEFAULT '{}',
  created_at  timestamptz NOT NULL DEFAULT now(),
  updated_at  timestamptz NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the projects table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const selectColumns = `id, title, description, tech_stack, github_url, live_url, screenshots, created_at, updated_at`

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Project, error) {
	q := `SELECT ` + selectColumns + ` FROM projects ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %v", domain.ErrStoreUnavailable, err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list: %v", domain.ErrStoreUnavailable, err)
	}
	return out, nil
}

func (r *PostgresRepository) ScreenshotRefs(ctx context.Context) ([]string, error) {
	const q = `SELECT screenshots FROM projects;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: screenshot refs: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var shots []string
		if err := rows.Scan(pq.Array(&shots)); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", domain.ErrStoreUnavailable, err)
		}
		refs = append(refs, shots...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: screenshot refs: %v", domain.ErrStoreUnavailable, err)
	}
	return refs, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	q := `SELECT ` + selectColumns + ` FROM projects WHERE id = $1;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrStoreUnavailable, id, err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, data domain.ProjectFormData) (*domain.Project, error) {
	const q = `
INSERT INTO projects (id, title, description, tech_stack, github_url, live_url, screenshots)
VALUES ($1, $2, $3, $4, nullif($5, ''), nullif($6, ''), $7)
RETURNING created_at, updated_at;
`
	id := uuid.NewString()
	p := data.WithID(id)

	err := r.db.QueryRowContext(ctx, q,
		id, data.Title, data.Description,
		pq.Array(nonNil(data.TechStack)),
		data.GithubURL, data.LiveURL,
		pq.Array(nonNil(data.Screenshots)),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: create: %v", domain.ErrStoreUnavailable, err)
	}
	return &p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, data domain.ProjectFormData) error {
	const q = `
UPDATE projects
SET title = $2, description = $3, tech_stack = $4,
    github_url = nullif($5, ''), live_url = nullif($6, ''),
    screenshots = $7, updated_at = now()
WHERE id = $1;
`
	result, err := r.db.ExecContext(ctx, q,
		id, data.Title, data.Description,
		pq.Array(nonNil(data.TechStack)),
		data.GithubURL, data.LiveURL,
		pq.Array(nonNil(data.Screenshots)),
	)
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", domain.ErrStoreUnavailable, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", domain.ErrStoreUnavailable, id, err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the row. Deleting a missing row is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = $1;`

	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrStoreUnavailable, id, err)
	}
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p         domain.Project
		githubURL sql.NullString
		liveURL   sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description,
		pq.Array(&p.TechStack),
		&githubURL, &liveURL,
		pq.Array(&p.Screenshots),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.GithubURL = githubURL.String
	p.LiveURL = liveURL.String
	p.TechStack = nonNil(p.TechStack)
	p.Screenshots = nonNil(p.Screenshots)
	return &p, nil
}
