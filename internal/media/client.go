package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/internal/platform/besteffort"
	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
)

type Options struct {
	// Namespace is the fixed folder every upload lands in.
	Namespace string
	// MaxUploadBytes caps a single upload; zero means no cap.
	MaxUploadBytes int64
	// MaxWidth down-scales wider JPEG and PNG images; zero disables it.
	MaxWidth int
}

// Client uploads and deletes screenshot images.
type Client struct {
	store BlobStore
	opts  Options
	now   func() time.Time
}

func NewClient(store BlobStore, opts Options) *Client {
	if opts.Namespace == "" {
		opts.Namespace = "projects"
	}
	return &Client{store: store, opts: opts, now: time.Now}
}

func (c *Client) Namespace() string { return c.opts.Namespace }

// UploadImage stores the image under "<namespace>/<unix-millis>-<name>" and
// returns its public URL. Two uploads of the same name within the same
// millisecond address the same object; the later one wins.
func (c *Client) UploadImage(ctx context.Context, r io.Reader, originalName string) (string, error) {
	data, err := c.readAll(r)
	if err != nil {
		return "", err
	}

	data, contentType, err := prepareImage(data, c.opts.MaxWidth)
	if err != nil {
		return "", err
	}

	name := c.ObjectName(originalName)
	url, err := c.store.Put(ctx, name, contentType, data)
	if err != nil {
		logger.FromContext(ctx).Error("image upload failed",
			zap.String("operation", "upload_image"),
			zap.String("object", name),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	logger.FromContext(ctx).Info("image uploaded",
		zap.String("operation", "upload_image"),
		zap.String("object", name),
		zap.Int("bytes", len(data)))
	return url, nil
}

// ObjectName derives the stored object name for an upload happening now.
func (c *Client) ObjectName(originalName string) string {
	return fmt.Sprintf("%s/%d-%s", c.opts.Namespace, c.now().UnixMilli(), baseName(originalName))
}

// DeleteImage removes the image behind rawURL. It never fails: a malformed
// URL, a missing object or a backend error is logged and dropped.
func (c *Client) DeleteImage(ctx context.Context, rawURL string) {
	if err := c.deleteImage(ctx, rawURL); err != nil {
		logDeleteFailure(ctx, rawURL, err)
	}
}

// DeleteImages removes every URL concurrently and waits for all of them.
// Failures are logged and reported per item, never as a whole.
func (c *Client) DeleteImages(ctx context.Context, urls []string) []besteffort.Outcome[string] {
	outcomes := besteffort.Run(ctx, urls, c.deleteImage)
	for _, o := range besteffort.Failed(outcomes) {
		logDeleteFailure(ctx, o.Item, o.Err)
	}
	return outcomes
}

func (c *Client) deleteImage(ctx context.Context, rawURL string) error {
	name, err := c.store.NameFromURL(rawURL)
	if err != nil {
		return err
	}
	return c.store.Delete(ctx, name)
}

func (c *Client) readAll(r io.Reader) ([]byte, error) {
	if c.opts.MaxUploadBytes <= 0 {
		return io.ReadAll(r)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, c.opts.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n > c.opts.MaxUploadBytes {
		return nil, ErrTooLarge
	}
	return buf.Bytes(), nil
}

func logDeleteFailure(ctx context.Context, rawURL string, err error) {
	logger.FromContext(ctx).Warn("screenshot delete failed",
		zap.String("operation", "delete_image"),
		zap.String("url", rawURL),
		zap.Error(err))
}

// baseName strips any client-side directory from an uploaded file name.
func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return name
}
