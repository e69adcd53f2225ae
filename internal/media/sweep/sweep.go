// Package sweep removes uploaded images that no project references, such as
// uploads abandoned before the project form was saved.
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/iamdominic/portfolio-backend/internal/media"
	"github.com/iamdominic/portfolio-backend/internal/platform/besteffort"
	"github.com/iamdominic/portfolio-backend/internal/platform/logger"
)

// ReferenceSource is the part of the project repository the sweep reads. It
// must report the screenshots of every stored record, malformed ones too.
type ReferenceSource interface {
	ScreenshotRefs(ctx context.Context) ([]string, error)
}

type Report struct {
	Scanned  int
	Kept     int
	Deleted  int
	Failed   int
	Duration time.Duration
}

type Sweeper struct {
	store     media.BlobStore
	refs      ReferenceSource
	namespace string
	grace     time.Duration
	now       func() time.Time
	log       *zap.Logger
}

// New builds a sweeper over namespace. Blobs younger than grace are never
// touched so uploads still sitting in an unsaved form survive.
func New(store media.BlobStore, refs ReferenceSource, namespace string, grace time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		store:     store,
		refs:      refs,
		namespace: namespace,
		grace:     grace,
		now:       time.Now,
		log:       log,
	}
}

// Run performs one sweep. If the stored references cannot be read nothing is
// deleted.
func (s *Sweeper) Run(ctx context.Context) (Report, error) {
	start := s.now()
	ctx = logger.WithContext(ctx, s.log)

	urls, err := s.refs.ScreenshotRefs(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("sweep: read screenshot refs: %w", err)
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if name, err := s.store.NameFromURL(u); err == nil {
			referenced[name] = struct{}{}
		}
	}

	blobs, err := s.store.List(ctx, s.namespace+"/")
	if err != nil {
		return Report{}, fmt.Errorf("sweep: list blobs: %w", err)
	}

	cutoff := start.Add(-s.grace)
	var orphans []string
	for _, b := range blobs {
		if _, ok := referenced[b.Name]; ok || b.Created.After(cutoff) {
			continue
		}
		orphans = append(orphans, b.Name)
	}

	outcomes := besteffort.Run(ctx, orphans, s.store.Delete)
	failed := besteffort.Failed(outcomes)
	for _, o := range failed {
		s.log.Warn("orphan delete failed", zap.String("object", o.Item), zap.Error(o.Err))
	}

	report := Report{
		Scanned:  len(blobs),
		Kept:     len(blobs) - len(orphans),
		Deleted:  len(orphans) - len(failed),
		Failed:   len(failed),
		Duration: s.now().Sub(start),
	}
	return report, nil
}

// Start schedules Run on a cron spec with a seconds field, e.g. "0 30 3 * * *".
// The caller stops the returned cron on shutdown.
func (s *Sweeper) Start(schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddJob(schedule, s.job()); err != nil {
		return nil, fmt.Errorf("schedule media sweep: %w", err)
	}

	c.Start()
	s.log.Info("media sweep scheduled", zap.String("schedule", schedule))
	return c, nil
}

// job wraps one logged run so that a tick arriving while the previous run is
// still going is dropped.
func (s *Sweeper) job() cron.Job {
	skip := cron.SkipIfStillRunning(cron.PrintfLogger(zap.NewStdLog(s.log)))
	return cron.NewChain(skip).Then(cron.FuncJob(s.runLogged))
}

func (s *Sweeper) runLogged() {
	report, err := s.Run(context.Background())
	if err != nil {
		s.log.Error("media sweep failed", zap.Error(err))
		return
	}
	s.log.Info("media sweep completed",
		zap.Int("scanned", report.Scanned),
		zap.Int("kept", report.Kept),
		zap.Int("deleted", report.Deleted),
		zap.Int("failed", report.Failed),
		zap.Duration("took", report.Duration))
}
