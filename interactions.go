package lens

import (
	"context"
	"fmt"

	"github.com/pitabwire/lens/page"
)

// ClickInteraction builds an interaction that activates the element any one
// of the selectors locates; the first selector that works wins.
func ClickInteraction(name string, selectors ...page.Selector) Interaction {
	return Interaction{
		Name: name,
		Do: func(ctx context.Context, p page.Page) error {
			var lastErr error
			for _, sel := range selectors {
				if lastErr = p.Click(ctx, sel); lastErr == nil {
					return nil
				}
			}
			if lastErr == nil {
				lastErr = fmt.Errorf("no selectors supplied")
			}
			return lastErr
		},
	}
}

// OpenPanel expands a collapsed panel or menu before assertions run.
func OpenPanel(selectors ...page.Selector) Interaction {
	interaction := ClickInteraction("open panel", selectors...)
	return interaction
}

// DismissOverlay closes an overlay when it is present and does nothing when
// it is not, so scenarios stay valid whether or not the overlay appeared.
func DismissOverlay(sel page.Selector) Interaction {
	return Interaction{
		Name: "dismiss overlay",
		Do: func(ctx context.Context, p page.Page) error {
			visible, err := p.Visible(ctx, sel)
			if err != nil {
				return err
			}
			if !visible {
				return nil
			}
			return p.Click(ctx, sel)
		},
	}
}
