package lens

import (
	"context"

	"github.com/pitabwire/util"

	"github.com/pitabwire/lens/catalog"
	"github.com/pitabwire/lens/page"
	"github.com/pitabwire/lens/workerpool"
)

// WithConfig supplies an already-parsed configuration object. Anything the
// harness needs is discovered through the capability interfaces in config.
func WithConfig(cfg any) Option {
	return func(_ context.Context, h *Harness) {
		h.configuration = cfg
	}
}

// WithRegistry supplies a catalog registry, replacing the embedded catalogs.
func WithRegistry(reg *catalog.Registry) Option {
	return func(_ context.Context, h *Harness) {
		h.registry = reg
	}
}

// WithPageFactory supplies the browser automation boundary. Scenarios cannot
// run without one.
func WithPageFactory(factory page.Factory) Option {
	return func(_ context.Context, h *Harness) {
		h.pageFactory = factory
	}
}

// WithLogger supplies a logger in place of the configuration-derived one.
func WithLogger(logger *util.LogEntry) Option {
	return func(_ context.Context, h *Harness) {
		h.logger = logger
	}
}

// WithTracing toggles per-scenario spans. Enabled by default; spans are
// no-ops unless the embedding runner installs an OpenTelemetry SDK.
func WithTracing(enable bool) Option {
	return func(_ context.Context, h *Harness) {
		h.enableTracing = enable
	}
}

// WithConcurrency caps how many scenarios execute at once.
func WithConcurrency(concurrency int) Option {
	return func(_ context.Context, h *Harness) {
		h.poolOptions = append(h.poolOptions,
			workerpool.WithSinglePoolCapacity(concurrency),
			workerpool.WithConcurrency(concurrency))
	}
}

// WithPoolManager supplies a pre-built worker pool manager.
func WithPoolManager(manager workerpool.Manager) Option {
	return func(_ context.Context, h *Harness) {
		h.poolManager = manager
	}
}
