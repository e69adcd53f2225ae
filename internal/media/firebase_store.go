package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

const firebaseDownloadHost = "firebasestorage.googleapis.com"

// FirebaseStore writes to the Cloud Storage bucket behind a Firebase project
// and hands out Firebase download URLs, the same shape client SDKs return.
type FirebaseStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStore(bucket *gcs.BucketHandle, bucketName string) *FirebaseStore {
	return &FirebaseStore{bucket: bucket, bucketName: bucketName}
}

func (s *FirebaseStore) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	token := uuid.NewString()

	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return s.downloadURL(name, token), nil
}

func (s *FirebaseStore) Delete(ctx context.Context, name string) error {
	err := s.bucket.Object(name).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// NameFromURL accepts Firebase download URLs, gs:// URLs and
// storage.googleapis.com URLs for this bucket.
func (s *FirebaseStore) NameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	var name string
	switch {
	case u.Scheme == "gs" && u.Host == s.bucketName:
		name = strings.TrimPrefix(u.Path, "/")
	case u.Host == firebaseDownloadHost:
		prefix := "/v0/b/" + s.bucketName + "/o/"
		if !strings.HasPrefix(u.Path, prefix) {
			return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
		}
		name = strings.TrimPrefix(u.Path, prefix)
	case u.Host == "storage.googleapis.com":
		prefix := "/" + s.bucketName + "/"
		if !strings.HasPrefix(u.Path, prefix) {
			return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
		}
		name = strings.TrimPrefix(u.Path, prefix)
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	if name == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	return name, nil
}

func (s *FirebaseStore) List(ctx context.Context, prefix string) ([]BlobInfo, error) {
	it := s.bucket.Objects(ctx, &gcs.Query{Prefix: prefix})

	var out []BlobInfo
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		out = append(out, BlobInfo{Name: attrs.Name, Created: attrs.Created})
	}
	return out, nil
}

func (s *FirebaseStore) downloadURL(name, token string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return fmt.Sprintf("https://%s/v0/b/%s/o/%s?alt=media&token=%s",
		firebaseDownloadHost, s.bucketName, escaped, token)
}
