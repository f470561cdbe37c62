package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/pickem-pool/external/jobqueue"
	"github.com/riskibarqy/pickem-pool/external/thesportsdb"
	"github.com/riskibarqy/pickem-pool/internal/config"
	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	repocache "github.com/riskibarqy/pickem-pool/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pickem-pool/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/pickem-pool/internal/platform/cache"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
	"github.com/riskibarqy/pickem-pool/internal/platform/resilience"
	"github.com/riskibarqy/pickem-pool/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App owns the HTTP server and the resources it was built on.
type App struct {
	Server *http.Server

	warmer     *CacheWarmer
	closeStore func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var matches pickem.MatchProvider = thesportsdb.NewClient(thesportsdb.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.ScheduleTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:       cfg.ScheduleBaseURL,
		APIKey:        cfg.ScheduleAPIKey,
		LeagueID:      cfg.ScheduleLeagueID,
		Timeout:       cfg.ScheduleTimeout,
		MaxRetries:    cfg.ScheduleMaxRetries,
		RatePerSecond: cfg.ScheduleRatePerSecond,
		Logger:        logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScheduleCircuitEnabled,
			FailureThreshold: cfg.ScheduleCircuitFailures,
			OpenTimeout:      cfg.ScheduleCircuitOpen,
			HalfOpenMaxReq:   cfg.ScheduleCircuitHalfOpen,
			OnStateChange:    logBreakerTransition(logger, "thesportsdb"),
		},
	})
	features := st.features

	var matchCache *repocache.MatchProvider
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		matchCache = repocache.NewMatchProvider(matches, store, cfg.CacheTTL, cfg.CacheFinalTTL)
		matches = matchCache
		features = repocache.NewFeatureRepository(features, store)
	}

	scope := usecase.PoolScope{PoolID: cfg.PoolID, Season: cfg.Season}
	scorer := cfg.Scorer()
	svcLogger := logger.Named("usecase")

	scoringSvc := usecase.NewScoringService(scope, scorer, st.picks, features, matches, svcLogger)
	seasonSvc := usecase.NewSeasonService(scoringSvc, cfg.ScoringWorkers, svcLogger)
	statsSvc := usecase.NewStatsService(scope, scorer, st.picks, features, matches, cfg.ScoringWorkers, svcLogger)
	picksSvc := usecase.NewPicksService(scope, st.picks, features, matches, svcLogger)
	featureSvc := usecase.NewFeatureService(scope, features, matches, svcLogger)

	handlerLogger := logger.Named("httpapi")
	handler := httpapi.NewHandler(picksSvc, featureSvc, scoringSvc, seasonSvc, statsSvc, handlerLogger)
	if matchCache != nil {
		handler.SetMatchCacheInvalidator(func(ctx context.Context, week pickem.Week) {
			matchCache.Invalidate(ctx, cfg.Season, week)
		})
	}
	router := httpapi.NewRouter(handler, handlerLogger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	a := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		closeStore: st.close,
	}

	if cfg.CacheWarmEnabled {
		a.warmer, err = NewCacheWarmer(seasonSvc, cfg.CacheWarmSchedule, logger)
		if err != nil {
			_ = st.close()
			return nil, err
		}
		if cfg.QStashEnabled {
			a.warmer.DispatchVia(jobqueue.NewPublisher(jobqueue.Config{
				HTTPClient:    &http.Client{Timeout: 10 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
				BaseURL:       cfg.QStashBaseURL,
				Token:         cfg.QStashToken,
				TargetBaseURL: cfg.QStashTargetBaseURL,
				Retries:       cfg.QStashRetries,
				ForwardToken:  cfg.AdminToken,
				CircuitBreaker: resilience.CircuitBreakerConfig{
					Enabled:          true,
					FailureThreshold: 5,
					OpenTimeout:      15 * time.Second,
					HalfOpenMaxReq:   2,
					OnStateChange:    logBreakerTransition(logger, "qstash"),
				},
				Logger: logger,
			}))
		}
	}

	return a, nil
}

// Start runs the background jobs. The HTTP server is started by the caller.
func (a *App) Start() {
	if a.warmer != nil {
		a.warmer.Start()
	}
}

// Shutdown drains the HTTP server, stops background jobs and closes the store.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.warmer != nil {
		if err := a.warmer.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}

func logBreakerTransition(logger *logging.Logger, upstream string) func(from, to resilience.CircuitState) {
	return func(from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "upstream", upstream, "from", from, "to", to)
	}
}
