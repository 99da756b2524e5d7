package lens

import (
	"context"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pitabwire/util"

	"github.com/pitabwire/lens/config"
)

const (
	tintAttrCodeStep     = 214
	tintAttrCodeLanguage = 12
	tintAttrCodeDuration = 2
)

// newLogger builds the harness logger from configuration, matching whatever
// level, format and colour settings the environment requested.
func newLogger(ctx context.Context, configuration any) *util.LogEntry {
	var opts []util.Option

	if cfg, ok := configuration.(config.ConfigurationLogLevel); ok {
		logLevel, err := util.ParseLevel(cfg.LoggingLevel())
		if err == nil {
			opts = append(opts, util.WithLogLevel(logLevel))
		}
		opts = append(opts,
			util.WithLogTimeFormat(cfg.LoggingTimeFormat()),
			util.WithLogNoColor(!cfg.LoggingColored()))
		if cfg.LoggingShowStackTrace() {
			opts = append(opts, util.WithLogStackTrace())
		}
	}

	return util.NewLogger(ctx, opts...)
}

// logStep emits one structured line per state-machine transition. The step,
// language and duration attributes are tinted so a failing step stands out
// in an interactive run.
func logStep(ctx context.Context, scenario string, lang string, step Step, elapsed time.Duration, err error) {
	log := util.Log(ctx).
		WithField("scenario", scenario).
		With(
			tint.Attr(tintAttrCodeStep, slog.Any("step", step.String())),
			tint.Attr(tintAttrCodeLanguage, slog.Any("language", lang)),
			tint.Attr(tintAttrCodeDuration, slog.Any("duration", elapsed.String())),
		)
	defer log.Release()

	if err != nil {
		log.WithError(err).Error("scenario step failed")
		return
	}

	log.Debug("scenario step completed")
}
