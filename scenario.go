package lens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pitabwire/lens/catalog"
	"github.com/pitabwire/lens/check"
	"github.com/pitabwire/lens/config"
	"github.com/pitabwire/lens/page"
	"github.com/pitabwire/lens/workerpool"
)

// Step names a position in the per-scenario state machine. Steps run
// strictly in order; a failure terminates the scenario at the step that
// discriminated it and later steps do not run.
type Step int

const (
	StepNotStarted Step = iota
	StepNavigate
	StepInteract
	StepAssertStructure
	StepAssertContent
	StepCompleted
)

func (s Step) String() string {
	switch s {
	case StepNotStarted:
		return "not-started"
	case StepNavigate:
		return "navigate"
	case StepInteract:
		return "interact"
	case StepAssertStructure:
		return "assert-structure"
	case StepAssertContent:
		return "assert-content"
	case StepCompleted:
		return "completed"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Interaction is one UI action performed between navigation and assertion,
// such as opening a panel or dismissing an overlay.
type Interaction struct {
	Name string
	Do   func(ctx context.Context, p page.Page) error
}

// Scenario is one language × test-case unit. It runs against its own page so
// no UI state leaks between scenarios.
type Scenario struct {
	Name string
	// Language under test. Empty means the harness resolves it from
	// configuration at run time.
	Language catalog.Language
	// Path is joined onto the configured target base URL.
	Path         string
	Interactions []Interaction
	// Structural checks assert the page's accessible shape; they are
	// language-neutral and run identically for every language.
	Structural []check.Structural
	// Content checks assert localized wording against the active catalog.
	Content []check.Check
}

// Outcome records how far a scenario progressed and what stopped it.
type Outcome struct {
	RunID    string
	Scenario string
	Language catalog.Language
	Step     Step
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario completed with every check holding.
func (o Outcome) Passed() bool {
	return o.Err == nil && o.Step == StepCompleted
}

func (o Outcome) String() string {
	if o.Passed() {
		return fmt.Sprintf("%s [lang=%s] passed in %s", o.Scenario, o.Language, o.Duration)
	}
	return fmt.Sprintf("%s [lang=%s] failed at %s: %v", o.Scenario, o.Language, o.Step, o.Err)
}

// RunScenario executes one scenario to completion on its own page. Steps are
// strictly sequential; the first failure is recorded with the step that
// produced it and nothing later runs.
func (h *Harness) RunScenario(ctx context.Context, sc Scenario) Outcome {
	started := time.Now()

	lang := sc.Language
	if lang == "" {
		lang = h.Language()
	}

	outcome := Outcome{
		RunID:    xid.New().String(),
		Scenario: sc.Name,
		Language: lang,
		Step:     StepNotStarted,
	}

	ctx, span := h.tracer.Start(ctx, "lens.scenario",
		trace.WithAttributes(
			attribute.String("scenario", sc.Name),
			attribute.String("language", lang.String()),
		))
	defer span.End()

	cat := h.Locale(lang)

	fail := func(step Step, err error) Outcome {
		err = annotateStep(err, step)
		outcome.Step = step
		outcome.Err = err
		outcome.Duration = time.Since(started)
		span.RecordError(err)
		span.SetStatus(codes.Error, step.String())
		logStep(ctx, sc.Name, lang.String(), step, outcome.Duration, err)
		return outcome
	}

	if h.pageFactory == nil {
		return fail(StepNavigate, errors.New("no page factory configured"))
	}

	targetCfg, err := h.targetConfig()
	if err != nil {
		return fail(StepNavigate, err)
	}

	p, err := h.pageFactory.NewPage(ctx)
	if err != nil {
		return fail(StepNavigate, fmt.Errorf("creating page: %w", err))
	}
	defer func() {
		_ = p.Close(ctx)
	}()

	if err = h.navigate(ctx, p, targetCfg, sc.Path); err != nil {
		return fail(StepNavigate, err)
	}
	span.AddEvent(StepNavigate.String())

	for _, interaction := range sc.Interactions {
		if err = h.interact(ctx, p, targetCfg, interaction); err != nil {
			return fail(StepInteract, err)
		}
	}
	span.AddEvent(StepInteract.String())

	for _, structural := range sc.Structural {
		if err = structural.Verify(ctx, p, cat); err != nil {
			return fail(StepAssertStructure, err)
		}
	}
	span.AddEvent(StepAssertStructure.String())

	for _, content := range sc.Content {
		if err = content.Verify(ctx, p, cat); err != nil {
			return fail(StepAssertContent, err)
		}
	}
	span.AddEvent(StepAssertContent.String())

	outcome.Step = StepCompleted
	outcome.Duration = time.Since(started)
	logStep(ctx, sc.Name, lang.String(), StepCompleted, outcome.Duration, nil)
	return outcome
}

func (h *Harness) navigate(ctx context.Context, p page.Page, cfg config.ConfigurationTarget, path string) error {
	url := joinURL(cfg.TargetURL(), path)

	navCtx, cancel := context.WithTimeout(ctx, cfg.GetNavigationTimeout())
	defer cancel()

	if err := p.Navigate(navCtx, url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

func (h *Harness) interact(ctx context.Context, p page.Page, cfg config.ConfigurationTarget, interaction Interaction) error {
	if interaction.Do == nil {
		return fmt.Errorf("interaction %q has no action", interaction.Name)
	}

	actCtx, cancel := context.WithTimeout(ctx, cfg.GetActionTimeout())
	defer cancel()

	if err := interaction.Do(actCtx, p); err != nil {
		return fmt.Errorf("interaction %q: %w", interaction.Name, err)
	}
	return nil
}

// Run executes scenarios concurrently on the worker pool, each against its
// own page. Outcomes arrive in no particular order; Run itself errors only
// when scenarios could not be submitted, never because one failed.
func (h *Harness) Run(ctx context.Context, scenarios ...Scenario) ([]Outcome, error) {
	jobs := make([]workerpool.Job[Outcome], 0, len(scenarios))

	for _, sc := range scenarios {
		job := workerpool.NewJob(func(jobCtx context.Context, result workerpool.JobResultPipe[Outcome]) error {
			return result.WriteResult(jobCtx, h.RunScenario(jobCtx, sc))
		})

		if err := workerpool.SubmitJob(ctx, h.poolManager, job); err != nil {
			return nil, fmt.Errorf("submitting scenario %q: %w", sc.Name, err)
		}
		jobs = append(jobs, job)
	}

	outcomes := make([]Outcome, 0, len(jobs))
	for _, job := range jobs {
		err := workerpool.ConsumeResultStream(ctx, job, func(o Outcome) {
			outcomes = append(outcomes, o)
		})
		if err != nil {
			return outcomes, err
		}
	}

	return outcomes, nil
}

// ForEachLanguage expands every scenario into one copy per registered
// language, so a single test case runs across the whole catalog set.
func (h *Harness) ForEachLanguage(scenarios ...Scenario) []Scenario {
	languages := h.registry.Languages()

	expanded := make([]Scenario, 0, len(scenarios)*len(languages))
	for _, sc := range scenarios {
		for _, lang := range languages {
			copied := sc
			copied.Language = lang
			copied.Name = fmt.Sprintf("%s/%s", sc.Name, lang)
			expanded = append(expanded, copied)
		}
	}
	return expanded
}

// annotateStep stamps the state-machine step onto assertion failures so the
// report names where the scenario stopped.
func annotateStep(err error, step Step) error {
	var failure *check.Failure
	if errors.As(err, &failure) && failure.Step == "" {
		failure.Step = step.String()
	}
	return err
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
