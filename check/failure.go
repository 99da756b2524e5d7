// Package check holds the UI assertion layer: structural checks that verify
// the page's accessible shape is preserved under localization, and content
// checks that verify localized wording against the active catalog. Both run
// for every language under test and either can fail a scenario.
package check

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pitabwire/lens/catalog"
)

// Kind discriminates failure classes so a reader can tell "UI changed" from
// "translation wrong" from "harness could not reach the element".
type Kind string

const (
	// KindStructure is a shape divergence from the expected accessibility fragment.
	KindStructure Kind = "structure"
	// KindContent is localized text not matching the catalog value.
	KindContent Kind = "content"
	// KindMissingKey is a catalog lookup for a key the catalog does not hold.
	KindMissingKey Kind = "missing-key"
	// KindInteraction is a page interaction the automation engine could not complete.
	KindInteraction Kind = "interaction"
)

// Failure is an assertion outcome that fails a scenario. It names the
// language under test and whichever of key, selector or snapshot path
// discriminates the failing check; Step is filled in by the scenario runner.
type Failure struct {
	Kind     Kind
	Language catalog.Language
	Check    string
	Key      string
	Selector string
	Path     string
	Want     string
	Got      string
	Step     string
	Cause    error
}

func (f *Failure) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s failure", f.Kind)
	if f.Check != "" {
		fmt.Fprintf(&b, " in %s", f.Check)
	}
	fmt.Fprintf(&b, " [lang=%s", f.Language)
	if f.Step != "" {
		fmt.Fprintf(&b, " step=%s", f.Step)
	}
	b.WriteString("]")

	if f.Key != "" {
		fmt.Fprintf(&b, " key=%q", f.Key)
	}
	if f.Selector != "" {
		fmt.Fprintf(&b, " selector=%s", f.Selector)
	}
	if f.Path != "" {
		fmt.Fprintf(&b, " at %s", f.Path)
	}
	if f.Want != "" || f.Got != "" {
		fmt.Fprintf(&b, ": want %q, got %q", f.Want, f.Got)
	}
	if f.Cause != nil {
		fmt.Fprintf(&b, ": %v", f.Cause)
	}

	return b.String()
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// AsFailure extracts a *Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	ok := errors.As(err, &f)
	return f, ok
}
