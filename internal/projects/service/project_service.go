package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/internal/platform/besteffort"
	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
	"github.com/iamdominic/portfolio-backend/internal/projects/repository"
)

// ImageDeleter is the part of the media client a project delete needs.
type ImageDeleter interface {
	DeleteImages(ctx context.Context, urls []string) []besteffort.Outcome[string]
}

// ProjectService handles project-related business logic. It holds no state
// of its own; callers keep whatever in-memory list they display.
type ProjectService struct {
	repo   repository.Repository
	images ImageDeleter
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.Repository, images ImageDeleter) *ProjectService {
	return &ProjectService{
		repo:   repo,
		images: images,
	}
}

// ListProjects returns every project in store order.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("list projects failed", zap.String("operation", "list_projects"), zap.Error(err))
		return nil, err
	}
	return items, nil
}

// GetProject returns a single project.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.FromContext(ctx).Error("get project failed",
			zap.String("operation", "get_project"), zap.String("id", id), zap.Error(err))
	}
	return p, err
}

// CreateProject stores data and returns it merged with the new id.
func (s *ProjectService) CreateProject(ctx context.Context, data domain.ProjectFormData) (*domain.Project, error) {
	p, err := s.repo.Create(ctx, data)
	if err != nil {
		logger.FromContext(ctx).Error("create project failed", zap.String("operation", "create_project"), zap.Error(err))
		return nil, err
	}

	logger.FromContext(ctx).Info("project created", zap.String("operation", "create_project"), zap.String("id", p.ID))
	return p, nil
}

// UpdateProject replaces every mutable field of the project. It does not
// return the stored record.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, data domain.ProjectFormData) error {
	if err := s.repo.Update(ctx, id, data); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.FromContext(ctx).Error("update project failed",
				zap.String("operation", "update_project"), zap.String("id", id), zap.Error(err))
		}
		return err
	}

	logger.FromContext(ctx).Info("project updated", zap.String("operation", "update_project"), zap.String("id", id))
	return nil
}

// DeleteProject deletes every screenshot concurrently, waits for all of
// them to settle and only then deletes the record. Screenshot failures are
// logged by the media client and never block the record delete; screenshots
// already gone stay gone if the record delete fails.
func (s *ProjectService) DeleteProject(ctx context.Context, id string, screenshots []string) error {
	outcomes := s.images.DeleteImages(ctx, screenshots)
	failed := len(besteffort.Failed(outcomes))

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Error("delete project failed",
			zap.String("operation", "delete_project"), zap.String("id", id), zap.Error(err))
		if errors.Is(err, domain.ErrStoreUnavailable) || errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	logger.FromContext(ctx).Info("project deleted",
		zap.String("operation", "delete_project"),
		zap.String("id", id),
		zap.Int("screenshots", len(screenshots)),
		zap.Int("screenshot_failures", failed))
	return nil
}
