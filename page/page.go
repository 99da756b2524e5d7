// Package page is the boundary to the browser automation engine. The harness
// never drives a browser itself; it issues navigation, query and snapshot
// requests through these interfaces and leaves timeouts, retries and browser
// lifecycle to the implementation behind them.
package page

import (
	"context"

	"github.com/pitabwire/lens/aria"
)

// Page is one isolated browsing context. Implementations are not required to
// be safe for concurrent use; the harness gives every scenario its own Page.
type Page interface {
	// Navigate loads the given URL and returns once the page is ready for
	// queries.
	Navigate(ctx context.Context, url string) error

	// Title returns the document title.
	Title(ctx context.Context) (string, error)

	// Text returns the visible text content of the element sel locates.
	Text(ctx context.Context, sel Selector) (string, error)

	// Visible reports whether the element sel locates exists and is shown.
	Visible(ctx context.Context, sel Selector) (bool, error)

	// Click activates the element sel locates.
	Click(ctx context.Context, sel Selector) error

	// Snapshot captures the accessibility tree fragment rooted at anchor.
	Snapshot(ctx context.Context, anchor Selector) (*aria.Snapshot, error)

	// Close releases the browsing context.
	Close(ctx context.Context) error
}

// Factory creates isolated pages, one per scenario.
type Factory interface {
	NewPage(ctx context.Context) (Page, error)
}
