// Package seed loads project records from a YAML fixture, for bootstrapping
// a fresh store or a local memory backend.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

type file struct {
	Projects []entry `yaml:"projects"`
}

type entry struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	TechStack   []string `yaml:"techStack"`
	GithubURL   string   `yaml:"githubUrl"`
	LiveURL     string   `yaml:"liveUrl"`
	Screenshots []string `yaml:"screenshots"`
}

// Store is the part of the project repository a seed run needs.
type Store interface {
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, data domain.ProjectFormData) (*domain.Project, error)
}

type Result struct {
	Created int
	Skipped int
}

// Parse reads a fixture. Unknown keys are rejected and every entry must
// pass the admin form rules after normalization.
func Parse(r io.Reader) ([]domain.ProjectFormData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	out := make([]domain.ProjectFormData, 0, len(f.Projects))
	for i, e := range f.Projects {
		data := domain.ProjectFormData{
			Title:       e.Title,
			Description: e.Description,
			TechStack:   e.TechStack,
			GithubURL:   e.GithubURL,
			LiveURL:     e.LiveURL,
			Screenshots: e.Screenshots,
		}.Normalize()
		if err := data.Validate(); err != nil {
			return nil, fmt.Errorf("project %d (%q): %w", i, e.Title, err)
		}
		out = append(out, data)
	}
	return out, nil
}

// Apply creates every project whose title is not stored yet, in fixture
// order. Running it twice creates nothing the second time.
func Apply(ctx context.Context, store Store, projects []domain.ProjectFormData) (Result, error) {
	var res Result

	existing, err := store.List(ctx)
	if err != nil {
		return res, err
	}
	titles := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		titles[p.Title] = struct{}{}
	}

	for _, data := range projects {
		if _, ok := titles[data.Title]; ok {
			res.Skipped++
			continue
		}
		p, err := store.Create(ctx, data)
		if err != nil {
			return res, fmt.Errorf("create %q: %w", data.Title, err)
		}
		titles[data.Title] = struct{}{}
		res.Created++
		logger.FromContext(ctx).Info("seeded project", zap.String("id", p.ID), zap.String("title", p.Title))
	}
	return res, nil
}
