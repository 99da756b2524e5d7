package lenstests

import (
	"context"
	"fmt"
	"time"

	"github.com/pitabwire/lens/page"
)

// WaitForCondition polls a condition function until it holds or the timeout
// elapses. Errors from the condition end the wait immediately.
func WaitForCondition(
	ctx context.Context,
	condition func() (bool, error),
	timeout time.Duration,
	pollInterval time.Duration,
) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		ok, err := condition()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
			// Continue polling
		}
	}

	return fmt.Errorf("condition not met within timeout of %v", timeout)
}

// WaitForVisible polls until the element sel locates becomes visible.
func WaitForVisible(
	ctx context.Context,
	p page.Page,
	sel page.Selector,
	timeout time.Duration,
	pollInterval time.Duration,
) error {
	return WaitForCondition(ctx, func() (bool, error) {
		return p.Visible(ctx, sel)
	}, timeout, pollInterval)
}
