// Package ui is the public SDK for building reactive entity-backed UIs.
package ui

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/zeusui/internal/config"
	"github.com/zeusync/zeusui/internal/core/observability/log"
	"github.com/zeusync/zeusui/internal/injector"
)

// Runtime owns an App, its host window and, when enabled, the mirror server.
type Runtime struct {
	rt      *injector.Runtime
	running int32
}

// New wires a Runtime from cfg.
func New(cfg Config) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rt, err := injector.InitializeRuntime(cfg)
	if err != nil {
		return nil, err
	}
	return &Runtime{rt: rt}, nil
}

// NewDefault wires a Runtime from the default configuration.
func NewDefault() (*Runtime, error) {
	return New(config.Default())
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

func (r *Runtime) App() *App { return r.rt.App }

func (r *Runtime) Logger() log.Log { return r.rt.Logger }

// MirrorEnabled reports whether patches are served over websocket.
func (r *Runtime) MirrorEnabled() bool { return r.rt.Server != nil }

// HTML renders the current host document.
func (r *Runtime) HTML() string { return r.rt.Host.HTML.String() }

// Run drives the scheduler and the mirror server until ctx is done.
func (r *Runtime) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&r.running, 0, 1) {
		return ErrAlreadyRunning
	}
	defer atomic.StoreInt32(&r.running, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.rt.App.Run(gctx) })
	if r.rt.Server != nil {
		g.Go(func() error { return r.rt.Server.Run(gctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Close flushes the logger.
func (r *Runtime) Close() error {
	_ = r.rt.Logger.Sync()
	return nil
}
