package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestClient(store BlobStore, opts Options, ticks ...time.Time) *Client {
	c := NewClient(store, opts)
	i := 0
	c.now = func() time.Time {
		t := ticks[i%len(ticks)]
		i++
		return t
	}
	return c
}

type failingPutStore struct{ *MemoryStore }

func (failingPutStore) Put(context.Context, string, string, []byte) (string, error) {
	return "", errors.New("503 backend unavailable")
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ts := time.UnixMilli(1700000000123)
	c := newTestClient(store, Options{Namespace: "projects"}, ts)

	url, err := c.UploadImage(ctx, bytes.NewReader(pngBytes(t, 4, 4)), "shot.png")
	require.NoError(t, err)
	assert.Equal(t, "memory://blobs/projects/1700000000123-shot.png", url)
	assert.True(t, store.Has("projects/1700000000123-shot.png"))
}

func TestUploadImage_DistinctURLs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	t0 := time.UnixMilli(1000)
	c := newTestClient(store, Options{Namespace: "projects"}, t0, t0, t0.Add(time.Millisecond))

	data := pngBytes(t, 2, 2)
	a, err := c.UploadImage(ctx, bytes.NewReader(data), "a.png")
	require.NoError(t, err)
	b, err := c.UploadImage(ctx, bytes.NewReader(data), "b.png")
	require.NoError(t, err)
	a2, err := c.UploadImage(ctx, bytes.NewReader(data), "a.png")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "different names, same tick")
	assert.NotEqual(t, a, a2, "same name, different tick")
}

func TestUploadImage_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("backend error", func(t *testing.T) {
		c := NewClient(failingPutStore{NewMemoryStore()}, Options{})
		url, err := c.UploadImage(ctx, bytes.NewReader(pngBytes(t, 2, 2)), "a.png")
		assert.ErrorIs(t, err, ErrUploadFailed)
		assert.Empty(t, url)
	})

	t.Run("not an image", func(t *testing.T) {
		c := NewClient(NewMemoryStore(), Options{})
		_, err := c.UploadImage(ctx, strings.NewReader("plain text, not pixels"), "a.txt")
		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("too large", func(t *testing.T) {
		c := NewClient(NewMemoryStore(), Options{MaxUploadBytes: 16})
		_, err := c.UploadImage(ctx, bytes.NewReader(pngBytes(t, 8, 8)), "a.png")
		assert.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestUploadImage_DownScalesWideImages(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := newTestClient(store, Options{Namespace: "projects", MaxWidth: 10}, time.UnixMilli(5))

	_, err := c.UploadImage(ctx, bytes.NewReader(pngBytes(t, 40, 20)), "wide.png")
	require.NoError(t, err)

	blob := store.blobs["projects/5-wide.png"]
	img, err := png.Decode(bytes.NewReader(blob.data))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
	assert.Equal(t, "image/png", blob.contentType)
}

func TestDeleteImage_NeverRaises(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))
	c := NewClient(NewMemoryStore(), Options{})

	assert.NotPanics(t, func() {
		c.DeleteImage(ctx, "::not a url::")
		c.DeleteImage(ctx, "memory://blobs/projects/already-gone.png")
	})
	assert.Equal(t, 2, logs.Len())
}

func TestDeleteImages_BestEffort(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))

	store := NewMemoryStore()
	c := NewClient(store, Options{Namespace: "projects"})

	urlA, err := store.Put(ctx, "projects/a.png", "image/png", []byte("a"))
	require.NoError(t, err)
	urlB, err := store.Put(ctx, "projects/b.png", "image/png", []byte("b"))
	require.NoError(t, err)
	store.FailDelete("projects/a.png", errors.New("permission denied"))

	outcomes := c.DeleteImages(ctx, []string{urlA, urlB})

	require.Len(t, outcomes, 2)
	assert.Error(t, outcomes[0].Err)
	assert.NoError(t, outcomes[1].Err)
	assert.False(t, store.Has("projects/b.png"))
	assert.ElementsMatch(t, []string{"projects/a.png", "projects/b.png"}, store.Deletes())

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, urlA, logs.All()[0].ContextMap()["url"])
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "shot.png", baseName("shot.png"))
	assert.Equal(t, "shot.png", baseName(`C:\Users\me\shot.png`))
	assert.Equal(t, "shot.png", baseName("../../shot.png"))
	assert.Equal(t, "image", baseName("  "))
}
