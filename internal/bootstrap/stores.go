package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/config"
	"github.com/iamdominic/portfolio-backend/internal/auth"
	authrepo "github.com/iamdominic/portfolio-backend/internal/auth/repository"
	"github.com/iamdominic/portfolio-backend/internal/media"
	"github.com/iamdominic/portfolio-backend/internal/projects/repository"
	"github.com/iamdominic/portfolio-backend/internal/storage/postgres"
)

// Stores holds every external backend the API talks to.
type Stores struct {
	Projects repository.Repository
	Blobs    media.BlobStore
	Sessions authrepo.SessionRepository
	Verifier auth.Verifier

	closers []func() error
}

// Close releases every opened client. It is safe to call on a partially
// opened Stores.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenStores connects the backends selected by cfg.
func OpenStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Stores, error) {
	s := &Stores{}

	app, err := NewFirebaseApp(ctx, &cfg.Firebase)
	if err != nil {
		return nil, err
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	s.Verifier = auth.NewFirebaseVerifier(authClient)

	if err := s.openProjects(ctx, cfg, app); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.openBlobs(ctx, cfg, app); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.openSessions(ctx, cfg); err != nil {
		s.Close()
		return nil, err
	}

	log.Info("stores ready",
		zap.String("document_store", cfg.Store.Backend),
		zap.String("blob_store", cfg.Blob.Backend),
		zap.Bool("firebase_data", cfg.UsesFirebase()),
		zap.Bool("redis_sessions", cfg.Redis.Addr != ""))
	return s, nil
}

func (s *Stores) openProjects(ctx context.Context, cfg *config.Config, app *firebase.App) error {
	switch cfg.Store.Backend {
	case "firestore":
		client, err := app.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("failed to get Firestore client: %w", err)
		}
		s.closers = append(s.closers, client.Close)
		s.Projects = repository.NewFirestoreRepository(client, cfg.Store.Collection)

	case "postgres":
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, db.Close)
		repo := repository.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		s.Projects = repo

	case "memory":
		s.Projects = repository.NewMemoryRepository()

	default:
		return fmt.Errorf("unknown DOCUMENT_STORE %q", cfg.Store.Backend)
	}
	return nil
}

func (s *Stores) openBlobs(ctx context.Context, cfg *config.Config, app *firebase.App) error {
	switch cfg.Blob.Backend {
	case "firebase":
		client, err := app.Storage(ctx)
		if err != nil {
			return fmt.Errorf("failed to get Storage client: %w", err)
		}
		bucket, err := client.Bucket(cfg.Firebase.StorageBucket)
		if err != nil {
			return fmt.Errorf("failed to open bucket: %w", err)
		}
		s.Blobs = media.NewFirebaseStore(bucket, cfg.Firebase.StorageBucket)

	case "s3":
		store, err := media.NewS3Store(ctx, cfg.Blob.S3Region, cfg.Blob.S3Bucket, cfg.Blob.S3Endpoint, cfg.Blob.S3PublicBaseURL)
		if err != nil {
			return err
		}
		s.Blobs = store

	case "memory":
		s.Blobs = media.NewMemoryStore()

	default:
		return fmt.Errorf("unknown BLOB_STORE %q", cfg.Blob.Backend)
	}
	return nil
}

func (s *Stores) openSessions(ctx context.Context, cfg *config.Config) error {
	if cfg.Redis.Addr == "" {
		s.Sessions = authrepo.NewMemorySessionRepository()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	s.closers = append(s.closers, client.Close)

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	s.Sessions = authrepo.NewRedisSessionRepository(client)
	return nil
}
