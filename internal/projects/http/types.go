package http

import "github.com/iamdominic/portfolio-backend/internal/projects/service"

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

// deleteReq optionally carries the screenshot list the caller already holds.
// When absent the handler reads it from the stored record.
type deleteReq struct {
	Screenshots *[]string `json:"screenshots"`
}
