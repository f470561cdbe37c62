// Package observability starts the process-wide tracing and profiling
// backends. Each one is optional and switched on from config.
package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/pickem-pool/internal/config"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Telemetry holds whatever backends Start enabled. The zero value is a
// valid, empty set.
type Telemetry struct {
	logger   *logging.Logger
	stoppers []stopper
}

type stopper struct {
	name string
	stop func(context.Context) error
}

// Start brings up Uptrace, Pyroscope and the pprof listener in that order.
// On failure the backends already started are shut down again.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger.Named("telemetry")}

	for _, start := range []func(config.Config) error{t.startUptrace, t.startPyroscope, t.startPprof} {
		if err := start(cfg); err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = t.Shutdown(ctx)
			cancel()
			return nil, err
		}
	}
	return t, nil
}

// Enabled lists the running backends, e.g. for a startup log line.
func (t *Telemetry) Enabled() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.stoppers))
	for i, s := range t.stoppers {
		names[i] = s.name
	}
	return names
}

// Shutdown stops the backends in reverse start order so traces emitted while
// profiling winds down are still exported.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.stoppers) - 1; i >= 0; i-- {
		s := t.stoppers[i]
		if err := s.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.name, err))
			continue
		}
		t.logger.Info("telemetry backend stopped", "backend", s.name)
	}
	t.stoppers = nil
	return errors.Join(errs...)
}

func (t *Telemetry) add(name string, stop func(context.Context) error) {
	t.stoppers = append(t.stoppers, stopper{name: name, stop: stop})
}

func (t *Telemetry) startUptrace(cfg config.Config) error {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		t.logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled)
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	t.add("uptrace", uptrace.Shutdown)
	t.logger.Info("uptrace enabled", "pool_id", cfg.PoolID, "season", cfg.Season)
	return nil
}

func (t *Telemetry) startPyroscope(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopePassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":    cfg.AppEnv,
			"store":  cfg.StoreDriver,
			"season": strconv.Itoa(cfg.Season),
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return fmt.Errorf("start pyroscope: %w", err)
	}
	t.add("pyroscope", func(context.Context) error { return profiler.Stop() })
	t.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

func (t *Telemetry) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		return nil
	}

	srv := &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           pprofMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("pprof listener failed", "addr", cfg.PprofAddr, "error", err)
		}
	}()
	t.add("pprof", srv.Shutdown)
	t.logger.Info("pprof listening", "addr", cfg.PprofAddr)
	return nil
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
