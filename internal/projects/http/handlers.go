package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

const (
	msgLoadFailed   = "Failed to load projects"
	msgNotFound     = "Project not found"
	msgInvalidBody  = "Invalid project data"
	msgSaveFailed   = "Failed to save project"
	msgDeleteFailed = "Failed to delete project"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": msgLoadFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := errorStatus(err, msgLoadFailed)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	data, ok := bindForm(c)
	if !ok {
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": msgSaveFailed})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	data, ok := bindForm(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.svc.UpdateProject(c.Request.Context(), id, data); err != nil {
		status, msg := errorStatus(err, msgSaveFailed)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": data.WithID(id)})
}

func (h *Handler) delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req deleteReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}

	var screenshots []string
	if req.Screenshots != nil {
		screenshots = *req.Screenshots
	} else {
		p, err := h.svc.GetProject(ctx, id)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// nothing stored; the record delete below is a no-op
		case errors.Is(err, domain.ErrMalformedRecord):
			// unreadable record: remove it anyway, its images are left to the sweep
			logger.FromContext(ctx).Warn("deleting malformed project",
				zap.String("id", id), zap.Error(err))
		case err != nil:
			status, msg := errorStatus(err, msgDeleteFailed)
			c.JSON(status, gin.H{"ok": false, "error": msg})
			return
		default:
			screenshots = p.Screenshots
		}
	}

	if err := h.svc.DeleteProject(ctx, id, screenshots); err != nil {
		status, msg := errorStatus(err, msgDeleteFailed)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// bindForm decodes, normalizes and validates the admin form. It writes the
// 400 response itself.
func bindForm(c *gin.Context) (domain.ProjectFormData, bool) {
	var data domain.ProjectFormData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msgInvalidBody})
		return data, false
	}

	data = data.Normalize()
	if err := data.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msgInvalidBody})
		return data, false
	}
	return data, true
}

func errorStatus(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrMalformedRecord):
		return http.StatusUnprocessableEntity, fallback
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, fallback
	default:
		return http.StatusInternalServerError, fallback
	}
}
