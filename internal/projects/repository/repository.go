package repository

import (
	"context"

	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

// Repository provides persistence operations for projects. Implementations
// wrap backend failures in domain.ErrStoreUnavailable and report unknown ids
// with domain.ErrNotFound.
type Repository interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, data domain.ProjectFormData) (*domain.Project, error)
	Update(ctx context.Context, id string, data domain.ProjectFormData) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error

	// ScreenshotRefs returns every screenshot URL stored on any record,
	// including records List skips as malformed.
	ScreenshotRefs(ctx context.Context) ([]string, error)
}

// Document field names, shared by every backend that stores raw documents.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldTechStack   = "techStack"
	fieldGithubURL   = "githubUrl"
	fieldLiveURL     = "liveUrl"
	fieldScreenshots = "screenshots"
	fieldCreatedAt   = "createdAt"
	fieldUpdatedAt   = "updatedAt"
)
