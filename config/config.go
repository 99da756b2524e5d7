package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
)

type contextKey string

func (c contextKey) String() string {
	return "lens/config/" + string(c)
}

const (
	ctxKeyConfiguration = contextKey("configurationKey")

	// DefaultNavigationTimeout bounds page navigations when the configured value is unusable.
	DefaultNavigationTimeout = 30 * time.Second
	// DefaultActionTimeout bounds individual page interactions and assertions.
	DefaultActionTimeout = 5 * time.Second
)

// ToContext adds harness configuration to the current supplied context.
func ToContext(ctx context.Context, config any) context.Context {
	return context.WithValue(ctx, ctxKeyConfiguration, config)
}

// FromContext extracts harness configuration from the supplied context if any exist.
func FromContext[T any](ctx context.Context) T {
	if cfg, ok := ctx.Value(ctxKeyConfiguration).(T); ok {
		return cfg
	}
	var zero T
	return zero
}

// FromEnv convenience method to process configs.
func FromEnv[T any]() (T, error) {
	return env.ParseAs[T]()
}

// FillEnv convenience method to fill a config object with environment data.
func FillEnv(v any) error {
	return env.Parse(v)
}

// ConfigurationDefault carries every setting the harness reads from the
// environment. It is parsed once at startup and passed around explicitly;
// nothing re-reads process state after that point.
type ConfigurationDefault struct {
	LogLevel      string `envDefault:"info"                      env:"LOG_LEVEL"       yaml:"log_level"`
	LogFormat     string `envDefault:"text"                      env:"LOG_FORMAT"      yaml:"log_format"`
	LogTimeFormat string `envDefault:"2006-01-02T15:04:05Z07:00" env:"LOG_TIME_FORMAT" yaml:"log_time_format"`
	LogColored    bool   `envDefault:"true"                      env:"LOG_COLORED"     yaml:"log_colored"`

	LogShowStackTrace bool `envDefault:"false" env:"LOG_SHOW_STACK_TRACE" yaml:"log_show_stack_trace"`

	RunName        string `envDefault:"" env:"TEST_RUN_NAME"        yaml:"run_name"`
	RunEnvironment string `envDefault:"" env:"TEST_RUN_ENVIRONMENT" yaml:"run_environment"`
	RunVersion     string `envDefault:"" env:"TEST_RUN_VERSION"     yaml:"run_version"`

	TargetLanguage string `envDefault:""                      env:"TEST_LANG"     yaml:"target_language"`
	TargetBaseURL  string `envDefault:"http://localhost:3000" env:"TEST_BASE_URL" yaml:"target_base_url"`

	NavigationTimeoutValue string `envDefault:"30s" env:"TEST_NAVIGATION_TIMEOUT" yaml:"navigation_timeout"`
	ActionTimeoutValue     string `envDefault:"5s"  env:"TEST_ACTION_TIMEOUT"     yaml:"action_timeout"`

	OpenTelemetryDisable bool `envDefault:"false" env:"OPENTELEMETRY_DISABLE" yaml:"opentelemetry_disable"`

	// Worker pool settings
	WorkerPoolCPUFactorForWorkerCount int    `envDefault:"10"  env:"WORKER_POOL_CPU_FACTOR_FOR_WORKER_COUNT" yaml:"worker_pool_cpu_factor_for_worker_count"`
	WorkerPoolCapacity                int    `envDefault:"100" env:"WORKER_POOL_CAPACITY"                    yaml:"worker_pool_capacity"`
	WorkerPoolCount                   int    `envDefault:"1"   env:"WORKER_POOL_COUNT"                       yaml:"worker_pool_count"`
	WorkerPoolExpiryDuration          string `envDefault:"1s"  env:"WORKER_POOL_EXPIRY_DURATION"             yaml:"worker_pool_expiry_duration"`
}

type ConfigurationRun interface {
	Name() string
	Environment() string
	Version() string
}

var _ ConfigurationRun = new(ConfigurationDefault)

func (c *ConfigurationDefault) Name() string {
	return c.RunName
}
func (c *ConfigurationDefault) Environment() string {
	return c.RunEnvironment
}
func (c *ConfigurationDefault) Version() string {
	return c.RunVersion
}

type ConfigurationLogLevel interface {
	LoggingLevel() string
	LoggingFormat() string
	LoggingTimeFormat() string
	LoggingShowStackTrace() bool
	LoggingColored() bool
	LoggingLevelIsDebug() bool
}

var _ ConfigurationLogLevel = new(ConfigurationDefault)

func (c *ConfigurationDefault) LoggingLevel() string {
	return c.LogLevel
}

func (c *ConfigurationDefault) LoggingTimeFormat() string {
	return c.LogTimeFormat
}

func (c *ConfigurationDefault) LoggingFormat() string {
	return c.LogFormat
}

func (c *ConfigurationDefault) LoggingColored() bool {
	return c.LogColored
}

func (c *ConfigurationDefault) LoggingShowStackTrace() bool {
	return c.LogShowStackTrace
}

func (c *ConfigurationDefault) LoggingLevelIsDebug() bool {
	return c.LoggingLevel() == "debug" || c.LoggingLevel() == "trace"
}

// ConfigurationLanguage exposes the raw language identifier requested for the
// run. The value is whatever TEST_LANG held when the configuration was parsed;
// membership validation happens at catalog lookup, not here.
type ConfigurationLanguage interface {
	TargetLang() string
}

var _ ConfigurationLanguage = new(ConfigurationDefault)

func (c *ConfigurationDefault) TargetLang() string {
	return c.TargetLanguage
}

type ConfigurationTarget interface {
	TargetURL() string
	GetNavigationTimeout() time.Duration
	GetActionTimeout() time.Duration
}

var _ ConfigurationTarget = new(ConfigurationDefault)

func (c *ConfigurationDefault) TargetURL() string {
	return c.TargetBaseURL
}

func (c *ConfigurationDefault) GetNavigationTimeout() time.Duration {
	if c.NavigationTimeoutValue != "" {
		duration, err := time.ParseDuration(c.NavigationTimeoutValue)
		if err == nil {
			return duration
		}
	}

	return DefaultNavigationTimeout
}

func (c *ConfigurationDefault) GetActionTimeout() time.Duration {
	if c.ActionTimeoutValue != "" {
		duration, err := time.ParseDuration(c.ActionTimeoutValue)
		if err == nil {
			return duration
		}
	}

	return DefaultActionTimeout
}

type ConfigurationTelemetry interface {
	DisableOpenTelemetry() bool
}

var _ ConfigurationTelemetry = new(ConfigurationDefault)

func (c *ConfigurationDefault) DisableOpenTelemetry() bool {
	return c.OpenTelemetryDisable
}

type ConfigurationWorkerPool interface {
	GetCPUFactor() int
	GetCapacity() int
	GetCount() int
	GetExpiryDuration() time.Duration
}

var _ ConfigurationWorkerPool = new(ConfigurationDefault)

func (c *ConfigurationDefault) GetCPUFactor() int {
	return c.WorkerPoolCPUFactorForWorkerCount
}

func (c *ConfigurationDefault) GetCapacity() int {
	return c.WorkerPoolCapacity
}

func (c *ConfigurationDefault) GetCount() int {
	return c.WorkerPoolCount
}

func (c *ConfigurationDefault) GetExpiryDuration() time.Duration {
	if c.WorkerPoolExpiryDuration != "" {
		duration, err := time.ParseDuration(c.WorkerPoolExpiryDuration)
		if err == nil {
			return duration
		}
	}

	return time.Second
}
