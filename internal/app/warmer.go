package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-pool/external/jobqueue"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
	"github.com/riskibarqy/pickem-pool/internal/usecase"
	"github.com/robfig/cron/v3"
)

const (
	warmRunTimeout = 5 * time.Minute
	warmJobPath    = "/v1/internal/cache/warm"
)

type seasonWarmer interface {
	Warm(ctx context.Context) (usecase.WarmResult, error)
}

type jobPublisher interface {
	Publish(ctx context.Context, job jobqueue.Job) error
}

// CacheWarmer periodically scores the season so finished weeks land in the
// score cache before anyone asks for standings. With a publisher set, each
// tick is handed to the job queue instead and the warm runs wherever the
// queue delivers it.
type CacheWarmer struct {
	season    seasonWarmer
	publisher jobPublisher
	logger    *logging.Logger
	cron      *cron.Cron
	now       func() time.Time
}

func NewCacheWarmer(season seasonWarmer, schedule string, logger *logging.Logger) (*CacheWarmer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("cache_warmer")

	cl := cronLogger{logger: logger}
	w := &CacheWarmer{
		season: season,
		logger: logger,
		now:    time.Now,
		cron: cron.New(
			cron.WithLocation(easternTime(logger)),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return nil, fmt.Errorf("parse CACHE_WARM_SCHEDULE %q: %w", schedule, err)
	}
	return w, nil
}

// DispatchVia routes scheduled warms through the job queue. Replicas firing
// in the same minute publish the same deduplication id.
func (w *CacheWarmer) DispatchVia(publisher jobPublisher) {
	w.publisher = publisher
}

func (w *CacheWarmer) Start() {
	w.cron.Start()
	w.logger.Info("cache warmer started", "entries", len(w.cron.Entries()))
}

// Stop halts the schedule and waits for a running warm to finish or ctx to
// expire.
func (w *CacheWarmer) Stop(ctx context.Context) error {
	done := w.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop cache warmer: %w", ctx.Err())
	}
}

func (w *CacheWarmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), warmRunTimeout)
	defer cancel()

	if w.publisher != nil {
		w.enqueue(ctx)
		return
	}

	started := time.Now()
	result, err := w.season.Warm(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "scheduled cache warm failed", "error", err)
		return
	}
	w.logger.InfoContext(ctx, "scheduled cache warm finished",
		"season", result.Season,
		"weeks", result.Weeks,
		"cacheable", result.Cacheable,
		"duration_ms", time.Since(started).Milliseconds(),
	)
}

func (w *CacheWarmer) enqueue(ctx context.Context) {
	dedupID := "cache-warm-" + w.now().UTC().Truncate(time.Minute).Format("200601021504")
	if err := w.publisher.Publish(ctx, jobqueue.Job{Path: warmJobPath, DeduplicationID: dedupID}); err != nil {
		w.logger.ErrorContext(ctx, "enqueue cache warm failed", "deduplication_id", dedupID, "error", err)
		return
	}
	w.logger.InfoContext(ctx, "cache warm enqueued", "deduplication_id", dedupID)
}

// Games are scheduled in US Eastern time.
func easternTime(logger *logging.Logger) *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		logger.Warn("load America/New_York failed, falling back to EST", "error", err)
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
