package check

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pitabwire/lens/aria"
	"github.com/pitabwire/lens/catalog"
	"github.com/pitabwire/lens/page"
)

// Check is one assertion against a live page for one language's catalog.
type Check interface {
	Name() string
	Verify(ctx context.Context, p page.Page, cat catalog.Catalog) error
}

// MatchMode selects how content checks compare live text to catalog values.
type MatchMode int

const (
	// MatchExact requires the element text to equal the catalog value.
	MatchExact MatchMode = iota
	// MatchContains requires the element text to contain the catalog value.
	MatchContains
)

func (m MatchMode) String() string {
	if m == MatchContains {
		return "contains"
	}
	return "exact"
}

// Structural asserts that the accessibility fragment captured at Anchor
// matches Want. The expectation is written in language-neutral vocabulary,
// so the same check runs unchanged for every language.
type Structural struct {
	// Label names the check in failure messages; optional.
	Label  string
	Anchor page.Selector
	Want   *aria.Snapshot
}

func (c Structural) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("structural(%s)", c.Anchor)
}

func (c Structural) Verify(ctx context.Context, p page.Page, cat catalog.Catalog) error {
	got, err := p.Snapshot(ctx, c.Anchor)
	if err != nil {
		return &Failure{
			Kind:     KindInteraction,
			Language: cat.Language(),
			Check:    c.Name(),
			Selector: c.Anchor.String(),
			Cause:    err,
		}
	}

	if err = aria.Match(got, c.Want); err != nil {
		failure := &Failure{
			Kind:     KindStructure,
			Language: cat.Language(),
			Check:    c.Name(),
			Selector: c.Anchor.String(),
			Cause:    err,
		}
		var mismatch *aria.Mismatch
		if errors.As(err, &mismatch) {
			failure.Path = mismatch.Path
			failure.Want = mismatch.Want
			failure.Got = mismatch.Got
			failure.Cause = nil
		}
		return failure
	}

	return nil
}

// Content asserts that the element located by every selector shows the
// catalog value for Key. Each selector is verified independently: the same
// logical element must be reachable by role+name and by stable identifier,
// so a single wording change can never leave the target unlocatable.
type Content struct {
	Label     string
	Key       string
	Selectors []page.Selector
	Mode      MatchMode
}

func (c Content) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("content(%s)", c.Key)
}

func (c Content) Verify(ctx context.Context, p page.Page, cat catalog.Catalog) error {
	want, ok := cat.Value(c.Key)
	if !ok {
		return &Failure{
			Kind:     KindMissingKey,
			Language: cat.Language(),
			Check:    c.Name(),
			Key:      c.Key,
		}
	}

	for _, sel := range c.Selectors {
		got, err := p.Text(ctx, sel)
		if err != nil {
			return &Failure{
				Kind:     KindInteraction,
				Language: cat.Language(),
				Check:    c.Name(),
				Key:      c.Key,
				Selector: sel.String(),
				Cause:    err,
			}
		}

		if !textMatches(got, want, c.Mode) {
			return &Failure{
				Kind:     KindContent,
				Language: cat.Language(),
				Check:    c.Name(),
				Key:      c.Key,
				Selector: sel.String(),
				Want:     want,
				Got:      aria.NormalizeName(got),
			}
		}
	}

	return nil
}

// Title asserts that the document title equals the catalog value for Key.
type Title struct {
	Key string
}

func (c Title) Name() string {
	return fmt.Sprintf("title(%s)", c.Key)
}

func (c Title) Verify(ctx context.Context, p page.Page, cat catalog.Catalog) error {
	want, ok := cat.Value(c.Key)
	if !ok {
		return &Failure{
			Kind:     KindMissingKey,
			Language: cat.Language(),
			Check:    c.Name(),
			Key:      c.Key,
		}
	}

	got, err := p.Title(ctx)
	if err != nil {
		return &Failure{
			Kind:     KindInteraction,
			Language: cat.Language(),
			Check:    c.Name(),
			Key:      c.Key,
			Cause:    err,
		}
	}

	if aria.NormalizeName(got) != aria.NormalizeName(want) {
		return &Failure{
			Kind:     KindContent,
			Language: cat.Language(),
			Check:    c.Name(),
			Key:      c.Key,
			Want:     want,
			Got:      aria.NormalizeName(got),
		}
	}

	return nil
}

func textMatches(got, want string, mode MatchMode) bool {
	got = aria.NormalizeName(got)
	want = aria.NormalizeName(want)
	if mode == MatchContains {
		return strings.Contains(got, want)
	}
	return got == want
}
