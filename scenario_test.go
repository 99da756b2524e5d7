package lens_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/lens"
	"github.com/pitabwire/lens/aria"
	"github.com/pitabwire/lens/catalog"
	"github.com/pitabwire/lens/check"
	"github.com/pitabwire/lens/config"
	"github.com/pitabwire/lens/lenstests"
	"github.com/pitabwire/lens/lenstests/htmlpage"
	"github.com/pitabwire/lens/page"
)

// settingsFragment is the language-neutral shape of the settings list. The
// same expectation holds for every language: localization may change wording
// but never the accessible structure.
const settingsFragment = `
- list:
    - listitem:
        - text: Language
        - paragraph: Change the language
`

type ScenarioSuite struct {
	lenstests.LensBaseTestSuite
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, &ScenarioSuite{})
}

func (s *ScenarioSuite) newConfig(lang string) *config.ConfigurationDefault {
	return &config.ConfigurationDefault{
		LogLevel:                          "error",
		LogFormat:                         "text",
		LogTimeFormat:                     "15:04:05",
		TargetBaseURL:                     s.Server.URL,
		TargetLanguage:                    lang,
		NavigationTimeoutValue:            "5s",
		ActionTimeoutValue:                "2s",
		WorkerPoolCPUFactorForWorkerCount: 2,
		WorkerPoolCapacity:                10,
		WorkerPoolCount:                   1,
		WorkerPoolExpiryDuration:          "1s",
	}
}

func (s *ScenarioSuite) newHarness(lang string) (context.Context, *lens.Harness) {
	ctx, h, err := lens.New(context.Background(), "lens-tests",
		lens.WithConfig(s.newConfig(lang)),
		lens.WithRegistry(s.Registry),
		lens.WithPageFactory(htmlpage.NewFactory(s.Server.Client())),
		lens.WithTracing(false),
	)
	s.Require().NoError(err)
	s.T().Cleanup(func() {
		_ = h.Stop(ctx)
	})
	return ctx, h
}

// settingsScenario is the canonical settings-page verification for one
// language: navigate, dismiss the welcome overlay, open the account panel,
// assert structure, then assert localized wording through both selector
// strategies.
func (s *ScenarioSuite) settingsScenario(lang catalog.Language) lens.Scenario {
	want, err := aria.ParseSnapshot(settingsFragment)
	s.Require().NoError(err)

	return lens.Scenario{
		Name:     "settings-page",
		Language: lang,
		Path:     fmt.Sprintf("?lang=%s", lang),
		Interactions: []lens.Interaction{
			lens.DismissOverlay(page.ByTestID("dismiss-welcome")),
			lens.OpenPanel(page.ByTestID("open-account"), page.ByRole("button", "account")),
		},
		Structural: []check.Structural{
			{Anchor: page.ByTestID("settings-list"), Want: want},
		},
		Content: []check.Check{
			check.Title{Key: "title"},
			check.Content{Key: "rhdhLanguage", Selectors: []page.Selector{
				page.ByTestID("language-selector"),
				page.ByRole("button", "language selector"),
			}},
			check.Content{Key: "signOut", Selectors: []page.Selector{
				page.ByTestID("sign-out"),
				page.ByRole("button", "sign out"),
			}},
		},
	}
}

func (s *ScenarioSuite) TestHarnessResolvesLanguageFromConfig() {
	ctx, h := s.newHarness("")

	s.Equal(catalog.English, h.Language(), "no configured language resolves to the default")
	s.Equal("Google", h.Locale().Get("title"))
	s.Same(h, lens.FromContext(ctx))

	_, french := s.newHarness("fr")
	s.Equal(catalog.French, french.Language())
	s.Equal("Français", french.Locale().Get("rhdhLanguage"))

	_, unknown := s.newHarness("xx")
	s.Equal(catalog.Language("xx"), unknown.Language(), "resolution passes unknown identifiers through")
	s.True(unknown.Locale().Equal(unknown.Locale(catalog.English)),
		"catalog lookup falls back to the default for unknown identifiers")
}

func (s *ScenarioSuite) TestRunScenarioPerLanguage() {
	for _, lang := range s.Registry.Languages() {
		s.Run(lang.String(), func() {
			ctx, h := s.newHarness("")

			outcome := h.RunScenario(ctx, s.settingsScenario(lang))
			s.True(outcome.Passed(), "scenario should pass: %v", outcome.Err)
			s.Equal(lens.StepCompleted, outcome.Step)
			s.Equal(lang, outcome.Language)
			s.NotEmpty(outcome.RunID)
		})
	}
}

func (s *ScenarioSuite) TestContentCheckDiscriminatesLanguages() {
	ctx, h := s.newHarness("")

	// A French page compared against the English catalog: structure still
	// matches, wording does not.
	sc := s.settingsScenario(catalog.English)
	sc.Path = "?lang=fr"

	outcome := h.RunScenario(ctx, sc)
	s.False(outcome.Passed())
	s.Equal(lens.StepAssertContent, outcome.Step)

	failure, ok := check.AsFailure(outcome.Err)
	s.Require().True(ok)
	s.Equal(check.KindContent, failure.Kind)
	s.Equal(catalog.English, failure.Language)
	s.Equal(lens.StepAssertContent.String(), failure.Step)
}

func (s *ScenarioSuite) TestStructuralFailureStopsScenario() {
	ctx, h := s.newHarness("")

	want, err := aria.ParseSnapshot(`
- list:
    - listitem:
        - paragraph: Change the theme
`)
	s.Require().NoError(err)

	sc := s.settingsScenario(catalog.English)
	sc.Structural = []check.Structural{{Anchor: page.ByTestID("settings-list"), Want: want}}

	outcome := h.RunScenario(ctx, sc)
	s.False(outcome.Passed())
	s.Equal(lens.StepAssertStructure, outcome.Step, "failure is recorded at the discriminating step")

	failure, ok := check.AsFailure(outcome.Err)
	s.Require().True(ok)
	s.Equal(check.KindStructure, failure.Kind)
	s.NotEmpty(failure.Path)
}

func (s *ScenarioSuite) TestMissingKeyIsHardFailure() {
	ctx, h := s.newHarness("")

	sc := s.settingsScenario(catalog.German)
	sc.Content = []check.Check{
		check.Content{Key: "nonexistent", Selectors: []page.Selector{page.ByTestID("language-selector")}},
	}

	outcome := h.RunScenario(ctx, sc)
	s.False(outcome.Passed())
	s.Equal(lens.StepAssertContent, outcome.Step)

	failure, ok := check.AsFailure(outcome.Err)
	s.Require().True(ok)
	s.Equal(check.KindMissingKey, failure.Kind)
	s.ErrorContains(outcome.Err, "nonexistent")
	s.ErrorContains(outcome.Err, "de")
}

func (s *ScenarioSuite) TestInteractionFailureStopsScenario() {
	ctx, h := s.newHarness("")

	sc := s.settingsScenario(catalog.English)
	sc.Interactions = []lens.Interaction{
		lens.OpenPanel(page.ByTestID("nonexistent-button")),
	}

	outcome := h.RunScenario(ctx, sc)
	s.False(outcome.Passed())
	s.Equal(lens.StepInteract, outcome.Step)
	s.ErrorContains(outcome.Err, "open panel")
}

func (s *ScenarioSuite) TestNavigationFailureStopsScenario() {
	cfg := s.newConfig("")
	cfg.TargetBaseURL = "http://127.0.0.1:1"

	ctx, h, err := lens.New(context.Background(), "lens-tests",
		lens.WithConfig(cfg),
		lens.WithRegistry(s.Registry),
		lens.WithPageFactory(htmlpage.NewFactory(nil)),
		lens.WithTracing(false),
	)
	s.Require().NoError(err)
	defer func() {
		_ = h.Stop(ctx)
	}()

	outcome := h.RunScenario(ctx, s.settingsScenario(catalog.English))
	s.False(outcome.Passed())
	s.Equal(lens.StepNavigate, outcome.Step)
}

func (s *ScenarioSuite) TestRunExecutesScenariosInParallel() {
	ctx, h := s.newHarness("")

	var scenarios []lens.Scenario
	for _, lang := range s.Registry.Languages() {
		scenarios = append(scenarios, s.settingsScenario(lang))
	}

	outcomes, err := h.Run(ctx, scenarios...)
	s.Require().NoError(err)
	s.Len(outcomes, len(scenarios))

	seen := map[catalog.Language]bool{}
	for _, outcome := range outcomes {
		s.True(outcome.Passed(), "scenario %s should pass: %v", outcome.Scenario, outcome.Err)
		seen[outcome.Language] = true
	}
	s.Len(seen, len(scenarios), "every language ran exactly once")
}

func (s *ScenarioSuite) TestForEachLanguageExpansion() {
	_, h := s.newHarness("")

	expanded := h.ForEachLanguage(lens.Scenario{Name: "settings-page"})
	s.Len(expanded, len(s.Registry.Languages()))

	names := make([]string, 0, len(expanded))
	for _, sc := range expanded {
		names = append(names, sc.Name)
		s.NotEmpty(sc.Language)
	}
	s.Equal([]string{"settings-page/de", "settings-page/en", "settings-page/fr"}, names)
}

func TestStepString(t *testing.T) {
	steps := map[lens.Step]string{
		lens.StepNotStarted:      "not-started",
		lens.StepNavigate:        "navigate",
		lens.StepInteract:        "interact",
		lens.StepAssertStructure: "assert-structure",
		lens.StepAssertContent:   "assert-content",
		lens.StepCompleted:       "completed",
	}
	for step, want := range steps {
		if step.String() != want {
			t.Fatalf("step %d: want %q, got %q", int(step), want, step.String())
		}
	}
}
