// Package app assembles the motion analysis service from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ayusman/motionlab/internal/config"
	"github.com/ayusman/motionlab/internal/detector"
	"github.com/ayusman/motionlab/internal/extractor"
	"github.com/ayusman/motionlab/internal/server"
	"github.com/ayusman/motionlab/internal/session"
	"github.com/ayusman/motionlab/internal/store"
	"github.com/sirupsen/logrus"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Recorder is a session result sink that owns resources.
type Recorder interface {
	session.Recorder
	io.Closer
}

// Option customizes New.
type Option func(*App)

// WithEstimator replaces the MediaPipe estimator, mainly for tests.
func WithEstimator(e detector.Estimator) Option {
	return func(a *App) { a.estimator = e }
}

// App owns every long-lived component of the process.
type App struct {
	config    config.Config
	log       logrus.FieldLogger
	estimator detector.Estimator
	recorder  Recorder
	service   *session.Service
	server    *server.Server
	closeOnce sync.Once
}

// New creates the estimator, result sink, session service and HTTP server.
func New(cfg config.Config, log logrus.FieldLogger, opts ...Option) (*App, error) {
	a := &App{
		config: cfg,
		log:    log,
	}
	for _, opt := range opts {
		opt(a)
	}

	// Try MediaPipe first, fall back to mock estimator
	if a.estimator == nil {
		dcfg := detector.DefaultConfig()
		dcfg.ScriptPath = cfg.MediaPipeScript
		dcfg.PythonPath = cfg.MediaPipePython
		dcfg.IdleTimeoutSec = int(cfg.EstimatorIdle / time.Second)

		if mp, err := detector.NewMediaPipeEstimator(dcfg, log.WithField("component", "mediapipe")); err == nil {
			a.estimator = mp
			log.Info("Using MediaPipe pose and hand estimation")
		} else {
			log.WithError(err).Warn("MediaPipe not available, using mock estimator")
			a.estimator = detector.NewMockEstimator()
		}
	}

	recorder, err := openRecorder(cfg)
	if err != nil {
		a.estimator.Close()
		return nil, err
	}
	a.recorder = recorder

	ext := extractor.New(a.estimator, extractor.Config{
		Annotate:      cfg.AnnotateFrames,
		MaxFrameWidth: cfg.MaxFrameWidth,
	}, log.WithField("component", "extractor"))

	a.service = session.NewService(ext, recorder, log.WithField("component", "session"))

	a.server = server.New(server.Config{
		StaticDir:       cfg.StaticDir,
		Service:         a.service,
		Log:             log.WithField("component", "http"),
		RateLimit:       cfg.RateLimitRPS,
		RateBurst:       cfg.RateLimitBurst,
		TrustedProxies:  cfg.TrustedProxies,
		MotionThreshold: cfg.MotionThreshold,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
	})

	return a, nil
}

// openRecorder creates the configured result sink under cfg.DataDir.
func openRecorder(cfg config.Config) (Recorder, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	switch cfg.StorageDriver {
	case config.StorageCSV:
		sink, err := store.NewCSVSink(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open csv sink: %w", err)
		}
		return sink, nil
	default:
		st, err := store.New(filepath.Join(cfg.DataDir, "motionlab.db"))
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return st, nil
	}
}

// Handler returns the HTTP handler of the service.
func (a *App) Handler() http.Handler {
	return a.server
}

// Service returns the session service.
func (a *App) Service() *session.Service {
	return a.service
}

// Estimator returns the landmark estimator in use.
func (a *App) Estimator() detector.Estimator {
	return a.estimator
}

// Run serves HTTP on cfg.HTTPAddr until ctx is cancelled, then drains
// in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := a.server.HTTPServer(a.config.HTTPAddr)

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", a.config.HTTPAddr).Info("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the estimator and the result sink.
func (a *App) Close() error {
	var errs []error
	a.closeOnce.Do(func() {
		if err := a.estimator.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close estimator: %w", err))
		}
		if err := a.recorder.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close recorder: %w", err))
		}
	})
	return errors.Join(errs...)
}
