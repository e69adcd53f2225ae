package domain

import "time"

// Project is one portfolio entry. It is storage-agnostic and shared by the
// repository, service and HTTP layers.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TechStack   []string  `json:"techStack"`
	GithubURL   string    `json:"githubUrl,omitempty"`
	LiveURL     string    `json:"liveUrl,omitempty"`
	Screenshots []string  `json:"screenshots"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// ProjectFormData carries every mutable field of a Project.
// An empty GithubURL or LiveURL means "not provided".
type ProjectFormData struct {
	Title       string   `json:"title" binding:"required" validate:"required"`
	Description string   `json:"description" binding:"required" validate:"required"`
	TechStack   []string `json:"techStack" binding:"required" validate:"required,min=1,dive,required"`
	GithubURL   string   `json:"githubUrl" validate:"omitempty,url"`
	LiveURL     string   `json:"liveUrl" validate:"omitempty,url"`
	Screenshots []string `json:"screenshots" validate:"dive,required"`
}

// WithID merges form data with a store-assigned id.
func (d ProjectFormData) WithID(id string) Project {
	return Project{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		TechStack:   cloneStrings(d.TechStack),
		GithubURL:   d.GithubURL,
		LiveURL:     d.LiveURL,
		Screenshots: cloneStrings(d.Screenshots),
	}
}

// FormData returns the mutable part of p.
func (p Project) FormData() ProjectFormData {
	return ProjectFormData{
		Title:       p.Title,
		Description: p.Description,
		TechStack:   cloneStrings(p.TechStack),
		GithubURL:   p.GithubURL,
		LiveURL:     p.LiveURL,
		Screenshots: cloneStrings(p.Screenshots),
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
