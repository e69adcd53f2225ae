package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/internal/media"
	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
)

const msgUploadFailed = "Failed to upload image"

// Handler exposes the media client to the admin UI.
type Handler struct {
	client *media.Client
}

func New(client *media.Client) *Handler {
	return &Handler{client: client}
}

// Register attaches media routes to an admin-gated group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.upload)
	rg.DELETE("", h.delete)
}

// upload stores every "files" part one after another and returns the URLs
// in request order. The first failure ends the batch; URLs of files already
// stored are reported so the caller can still reference or delete them.
func (h *Handler) upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "files are required"})
		return
	}

	ctx := c.Request.Context()
	urls := make([]string, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			logger.FromContext(ctx).Error("open upload part failed", zap.String("file", fh.Filename), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msgUploadFailed, "urls": urls})
			return
		}

		url, err := h.client.UploadImage(ctx, f, fh.Filename)
		f.Close()
		if err != nil {
			c.JSON(uploadStatus(err), gin.H{"ok": false, "error": msgUploadFailed, "urls": urls})
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "urls": urls})
}

type deleteReq struct {
	URL string `json:"url" binding:"required"`
}

// delete is best-effort: it answers ok even when the image could not be
// removed.
func (h *Handler) delete(c *gin.Context) {
	var req deleteReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "url is required"})
		return
	}

	h.client.DeleteImage(c.Request.Context(), strings.TrimSpace(req.URL))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, media.ErrInvalidImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, media.ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
