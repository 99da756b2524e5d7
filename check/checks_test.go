package check_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pitabwire/lens/aria"
	"github.com/pitabwire/lens/catalog"
	"github.com/pitabwire/lens/check"
	"github.com/pitabwire/lens/page"
)

// stubPage serves canned answers so checks can be exercised without a
// browser or a fixture site.
type stubPage struct {
	title    string
	texts    map[string]string
	snapshot *aria.Snapshot
	err      error
}

func (s *stubPage) Navigate(_ context.Context, _ string) error { return s.err }

func (s *stubPage) Title(_ context.Context) (string, error) { return s.title, s.err }

func (s *stubPage) Text(_ context.Context, sel page.Selector) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	text, ok := s.texts[sel.String()]
	if !ok {
		return "", errors.New("no element matches " + sel.String())
	}
	return text, nil
}

func (s *stubPage) Visible(_ context.Context, _ page.Selector) (bool, error) { return true, s.err }

func (s *stubPage) Click(_ context.Context, _ page.Selector) error { return s.err }

func (s *stubPage) Snapshot(_ context.Context, _ page.Selector) (*aria.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *stubPage) Close(_ context.Context) error { return nil }

func loadCatalog(t *testing.T, lang catalog.Language) catalog.Catalog {
	t.Helper()
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)
	return reg.Locale(lang)
}

func TestContentCheck(t *testing.T) {
	ctx := context.Background()
	french := loadCatalog(t, catalog.French)

	selectors := []page.Selector{
		page.ByRole("button", "language selector"),
		page.ByTestID("language-selector"),
	}

	testCases := []struct {
		name     string
		check    check.Content
		page     *stubPage
		wantKind check.Kind
	}{
		{
			name:  "matching text on every strategy passes",
			check: check.Content{Key: "rhdhLanguage", Selectors: selectors},
			page: &stubPage{texts: map[string]string{
				selectors[0].String(): "Français",
				selectors[1].String(): "Français",
			}},
		},
		{
			name:  "wording mismatch is a content failure",
			check: check.Content{Key: "rhdhLanguage", Selectors: selectors},
			page: &stubPage{texts: map[string]string{
				selectors[0].String(): "English",
				selectors[1].String(): "English",
			}},
			wantKind: check.KindContent,
		},
		{
			name:  "one strategy failing fails the check",
			check: check.Content{Key: "rhdhLanguage", Selectors: selectors},
			page: &stubPage{texts: map[string]string{
				selectors[0].String(): "Français",
				selectors[1].String(): "English",
			}},
			wantKind: check.KindContent,
		},
		{
			name:     "absent key is a missing-key failure",
			check:    check.Content{Key: "nonexistent", Selectors: selectors},
			page:     &stubPage{},
			wantKind: check.KindMissingKey,
		},
		{
			name:     "unreachable element is an interaction failure",
			check:    check.Content{Key: "rhdhLanguage", Selectors: selectors},
			page:     &stubPage{texts: map[string]string{}},
			wantKind: check.KindInteraction,
		},
		{
			name:  "contains mode accepts surrounding text",
			check: check.Content{Key: "rhdhLanguage", Selectors: selectors[:1], Mode: check.MatchContains},
			page: &stubPage{texts: map[string]string{
				selectors[0].String(): "Langue: Français",
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check.Verify(ctx, tc.page, french)
			if tc.wantKind == "" {
				require.NoError(t, err)
				return
			}

			failure, ok := check.AsFailure(err)
			require.True(t, ok, "check errors must be failures: %v", err)
			require.Equal(t, tc.wantKind, failure.Kind)
			require.Equal(t, catalog.French, failure.Language)
		})
	}
}

func TestContentFailureNamesKeyAndLanguage(t *testing.T) {
	french := loadCatalog(t, catalog.French)

	c := check.Content{Key: "nonexistent", Selectors: []page.Selector{page.ByTestID("x")}}
	err := c.Verify(context.Background(), &stubPage{}, french)

	require.ErrorContains(t, err, "nonexistent")
	require.ErrorContains(t, err, "fr")
}

func TestStructuralCheck(t *testing.T) {
	ctx := context.Background()
	english := loadCatalog(t, catalog.English)

	captured, err := aria.ParseSnapshot(`
- listitem:
    - text: Language
    - paragraph: Change the language
`)
	require.NoError(t, err)

	matching, err := aria.ParseSnapshot(`
- listitem:
    - paragraph: Change the language
`)
	require.NoError(t, err)

	diverging, err := aria.ParseSnapshot(`
- listitem:
    - paragraph: Change the theme
`)
	require.NoError(t, err)

	anchor := page.ByTestID("settings-list")

	c := check.Structural{Anchor: anchor, Want: matching}
	require.NoError(t, c.Verify(ctx, &stubPage{snapshot: captured}, english))

	c = check.Structural{Anchor: anchor, Want: diverging}
	failure, ok := check.AsFailure(c.Verify(ctx, &stubPage{snapshot: captured}, english))
	require.True(t, ok)
	require.Equal(t, check.KindStructure, failure.Kind)
	require.NotEmpty(t, failure.Path, "structural failures carry the diverging snapshot path")

	c = check.Structural{Anchor: anchor, Want: matching}
	failure, ok = check.AsFailure(c.Verify(ctx, &stubPage{err: errors.New("timeout")}, english))
	require.True(t, ok)
	require.Equal(t, check.KindInteraction, failure.Kind)
}

func TestTitleCheck(t *testing.T) {
	ctx := context.Background()
	english := loadCatalog(t, catalog.English)

	require.NoError(t, check.Title{Key: "title"}.Verify(ctx, &stubPage{title: "Google"}, english))

	failure, ok := check.AsFailure(check.Title{Key: "title"}.Verify(ctx, &stubPage{title: "Bing"}, english))
	require.True(t, ok)
	require.Equal(t, check.KindContent, failure.Kind)
	require.Equal(t, "Google", failure.Want)

	failure, ok = check.AsFailure(check.Title{Key: "nonexistent"}.Verify(ctx, &stubPage{title: "Google"}, english))
	require.True(t, ok)
	require.Equal(t, check.KindMissingKey, failure.Kind)
}

func TestFailureError(t *testing.T) {
	failure := &check.Failure{
		Kind:     check.KindContent,
		Language: catalog.French,
		Check:    "content(rhdhLanguage)",
		Key:      "rhdhLanguage",
		Selector: "testid=language-selector",
		Step:     "assert-content",
		Want:     "Français",
		Got:      "English",
	}

	msg := failure.Error()
	require.Contains(t, msg, "content failure")
	require.Contains(t, msg, "lang=fr")
	require.Contains(t, msg, "step=assert-content")
	require.Contains(t, msg, `key="rhdhLanguage"`)
	require.Contains(t, msg, `want "Français", got "English"`)

	cause := errors.New("boom")
	wrapped := &check.Failure{Kind: check.KindInteraction, Cause: cause}
	require.ErrorIs(t, wrapped, cause)
}
