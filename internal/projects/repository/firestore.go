package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
	"github.com/iamdominic/portfolio-backend/internal/projects/domain"
)

// FirestoreRepository keeps projects as documents of a single collection.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreRepository(client *firestore.Client, collection string) *FirestoreRepository {
	return &FirestoreRepository{client: client, collection: collection}
}

func (r *FirestoreRepository) col() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

// List returns every document in the collection, in Firestore's own order.
// Documents that cannot be mapped are skipped and logged.
func (r *FirestoreRepository) List(ctx context.Context) ([]domain.Project, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", domain.ErrStoreUnavailable, r.collection, err)
	}

	out := make([]domain.Project, 0, len(snaps))
	for _, snap := range snaps {
		p, err := fromDocument(snap.Ref.ID, snap.Data())
		if err != nil {
			logger.FromContext(ctx).Warn("skipping project document",
				zap.String("operation", "list_projects"),
				zap.String("id", snap.Ref.ID),
				zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ScreenshotRefs reads only the screenshots field of every document, so
// records that fail to map still report what they reference.
func (r *FirestoreRepository) ScreenshotRefs(ctx context.Context) ([]string, error) {
	it := r.col().Select(fieldScreenshots).Documents(ctx)
	defer it.Stop()

	var refs []string
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: screenshot refs %s: %v", domain.ErrStoreUnavailable, r.collection, err)
		}
		refs = append(refs, screenshotRefs(snap.Data())...)
	}
	return refs, nil
}

func (r *FirestoreRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, r.wrap("get", id, err)
	}

	p, err := fromDocument(snap.Ref.ID, snap.Data())
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create adds a new document with server-assigned timestamps. The returned
// project carries the generated id; its timestamps are left unresolved.
func (r *FirestoreRepository) Create(ctx context.Context, data domain.ProjectFormData) (*domain.Project, error) {
	doc := toDocument(data)
	doc[fieldCreatedAt] = firestore.ServerTimestamp
	doc[fieldUpdatedAt] = firestore.ServerTimestamp

	ref, _, err := r.col().Add(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: create: %v", domain.ErrStoreUnavailable, err)
	}

	p := data.WithID(ref.ID)
	return &p, nil
}

// Update replaces every mutable field. Update fails with NotFound on a
// missing document, which is what surfaces domain.ErrNotFound here.
func (r *FirestoreRepository) Update(ctx context.Context, id string, data domain.ProjectFormData) error {
	if id == "" {
		return domain.ErrNotFound
	}

	updates := []firestore.Update{
		{Path: fieldTitle, Value: data.Title},
		{Path: fieldDescription, Value: data.Description},
		{Path: fieldTechStack, Value: nonNil(data.TechStack)},
		{Path: fieldGithubURL, Value: optionalValue(data.GithubURL)},
		{Path: fieldLiveURL, Value: optionalValue(data.LiveURL)},
		{Path: fieldScreenshots, Value: nonNil(data.Screenshots)},
		{Path: fieldUpdatedAt, Value: firestore.ServerTimestamp},
	}

	if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
		return r.wrap("update", id, err)
	}
	return nil
}

// Delete removes the document. Deleting a missing document is not an error.
func (r *FirestoreRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrNotFound
	}

	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrStoreUnavailable, id, err)
	}
	return nil
}

func (r *FirestoreRepository) Ping(ctx context.Context) error {
	it := r.col().Limit(1).Documents(ctx)
	defer it.Stop()

	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *FirestoreRepository) wrap(op, id string, err error) error {
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %s %s: %v", domain.ErrStoreUnavailable, op, id, err)
}

// optionalValue clears a field instead of storing an empty string.
func optionalValue(s string) any {
	if s == "" {
		return firestore.Delete
	}
	return s
}
