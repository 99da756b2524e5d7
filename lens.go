// Package lens is a locale-aware UI verification harness. It resolves the
// language a run targets, serves the matching translation catalog with a safe
// fallback, and drives structural and content assertions against live pages
// through an external browser automation engine.
package lens

import (
	"context"
	"errors"

	"github.com/pitabwire/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/pitabwire/lens/catalog"
	"github.com/pitabwire/lens/config"
	"github.com/pitabwire/lens/page"
	"github.com/pitabwire/lens/workerpool"
)

type contextKey string

func (c contextKey) String() string {
	return "lens/" + string(c)
}

const ctxKeyHarness = contextKey("harnessKey")

const instrumentationName = "github.com/pitabwire/lens"

// Harness holds together the components of a verification run: parsed
// configuration, the catalog registry, the page factory and the worker pool.
// An instance is scoped to stay for the lifetime of the test process and is
// pushed and pulled from contexts to make it easy to pass around.
type Harness struct {
	name          string
	logger        *util.LogEntry
	configuration any
	registry      *catalog.Registry
	pageFactory   page.Factory
	poolManager   workerpool.Manager
	poolOptions   []workerpool.Option
	enableTracing bool
	tracer        trace.Tracer
}

// Option configures a harness during New.
type Option func(ctx context.Context, h *Harness)

// New creates a harness with the supplied options. Configuration defaults to
// the environment-parsed ConfigurationDefault and the registry defaults to
// the embedded catalogs; both can be overridden. The returned context carries
// the harness, its configuration and its logger.
func New(ctx context.Context, name string, opts ...Option) (context.Context, *Harness, error) {
	h := &Harness{
		name:          name,
		enableTracing: true,
	}

	for _, opt := range opts {
		opt(ctx, h)
	}

	if h.configuration == nil {
		cfg, err := config.FromEnv[config.ConfigurationDefault]()
		if err != nil {
			return ctx, nil, err
		}
		h.configuration = &cfg
	}

	if h.logger == nil {
		h.logger = newLogger(ctx, h.configuration)
	}
	ctx = util.ContextWithLogger(ctx, h.logger)

	if h.registry == nil {
		reg, err := catalog.NewRegistry()
		if err != nil {
			return ctx, nil, err
		}
		h.registry = reg
	}

	if cfg, ok := h.configuration.(config.ConfigurationTelemetry); ok && cfg.DisableOpenTelemetry() {
		h.enableTracing = false
	}
	if h.enableTracing {
		h.tracer = otel.Tracer(instrumentationName)
	} else {
		h.tracer = noop.NewTracerProvider().Tracer(instrumentationName)
	}

	if h.poolManager == nil {
		poolCfg, ok := h.configuration.(config.ConfigurationWorkerPool)
		if !ok {
			defaultCfg := config.ConfigurationDefault{}
			_ = config.FillEnv(&defaultCfg)
			poolCfg = &defaultCfg
		}
		manager, err := workerpool.NewManager(ctx, poolCfg, h.poolOptions...)
		if err != nil {
			return ctx, nil, err
		}
		h.poolManager = manager
	}

	ctx = ToContext(ctx, h)
	ctx = config.ToContext(ctx, h.configuration)
	return ctx, h, nil
}

// ToContext pushes a harness instance into the supplied context for easier propagation.
func ToContext(ctx context.Context, h *Harness) context.Context {
	return context.WithValue(ctx, ctxKeyHarness, h)
}

// FromContext obtains a harness instance being propagated through the context.
func FromContext(ctx context.Context) *Harness {
	h, ok := ctx.Value(ctxKeyHarness).(*Harness)
	if !ok {
		return nil
	}
	return h
}

// Name gets the name of the harness.
func (h *Harness) Name() string {
	return h.name
}

// Config returns the configuration the harness was built with.
func (h *Harness) Config() any {
	return h.configuration
}

// Registry returns the catalog registry.
func (h *Harness) Registry() *catalog.Registry {
	return h.registry
}

// PageFactory returns the configured browser boundary, or nil when none was supplied.
func (h *Harness) PageFactory() page.Factory {
	return h.pageFactory
}

// Log returns the harness logger bound to ctx.
func (h *Harness) Log(ctx context.Context) *util.LogEntry {
	return h.logger.WithContext(ctx)
}

// Language resolves the active language from configuration at call time. It
// is recomputed on every call rather than cached, so it always reflects the
// configuration value currently held.
func (h *Harness) Language() catalog.Language {
	cfg, ok := h.configuration.(config.ConfigurationLanguage)
	if !ok {
		return catalog.DefaultLanguage
	}
	return catalog.ResolveFromConfig(cfg)
}

// Locale returns the catalog for the supplied language, or for the active
// language when none is given. The result is never absent: unregistered
// identifiers fall back to the default catalog with a warning.
func (h *Harness) Locale(lang ...catalog.Language) catalog.Catalog {
	target := h.Language()
	if len(lang) > 0 {
		target = lang[0]
	}

	if !h.registry.Has(target) && h.logger != nil {
		h.logger.
			WithField("language", target.String()).
			WithField("fallback", h.registry.DefaultLanguage().String()).
			Warn("unknown language identifier, using default catalog")
	}

	return h.registry.Locale(target)
}

// Stop releases the harness resources.
func (h *Harness) Stop(ctx context.Context) error {
	if h.poolManager == nil {
		return nil
	}
	return h.poolManager.Shutdown(ctx)
}

// targetConfig extracts the target settings, failing when the configuration
// cannot describe where to navigate.
func (h *Harness) targetConfig() (config.ConfigurationTarget, error) {
	cfg, ok := h.configuration.(config.ConfigurationTarget)
	if !ok {
		return nil, errors.New("configuration does not supply a target URL")
	}
	return cfg, nil
}
