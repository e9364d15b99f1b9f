package gmaps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gmaps-scraper/utils"

	"github.com/chromedp/chromedp"
)

// Outcome is how the scroll loop ended.
type Outcome int

const (
	// OutcomeReachedTarget: at least the requested number of listings is visible.
	OutcomeReachedTarget Outcome = iota
	// OutcomeStabilized: a scroll loaded nothing new; every visible listing is taken.
	OutcomeStabilized
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReachedTarget:
		return "reached target"
	case OutcomeStabilized:
		return "stabilized"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// listingFeed is the scrollable result list.
type listingFeed interface {
	Scroll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// collectListings scrolls feed until target listings are visible or a scroll
// stops producing new ones. After each scroll it waits up to settle for the
// count to move before comparing. It returns how many listings to open,
// which is never more than target.
//
// There is no cap on iterations: a feed that keeps growing below target
// keeps being scrolled until ctx is cancelled.
func collectListings(ctx context.Context, feed listingFeed, target int, settle, poll time.Duration) (int, Outcome, error) {
	previous := 0

	for {
		if err := feed.Scroll(ctx); err != nil {
			return 0, 0, fmt.Errorf("scroll failed: %w", err)
		}

		count := previous
		err := utils.WaitFor(ctx, settle, poll, func(ctx context.Context) (bool, error) {
			n, err := feed.Count(ctx)
			if err != nil {
				return false, err
			}
			count = n
			return n != previous, nil
		})
		if err != nil && !errors.Is(err, utils.ErrWaitTimeout) {
			return 0, 0, fmt.Errorf("counting listings failed: %w", err)
		}

		if count >= target {
			utils.Info("Total scraped: %d", target)
			return target, OutcomeReachedTarget, nil
		}
		if count == previous {
			utils.Info("Arrived at all available | total scraped: %d", count)
			return count, OutcomeStabilized, nil
		}

		previous = count
		utils.Info("Currently scraped: %d", count)
	}
}

// chromeFeed scrolls the Maps results panel in a live tab.
type chromeFeed struct{}

func (chromeFeed) Scroll(ctx context.Context) error {
	return chromedp.Run(ctx, chromedp.Evaluate(scrollScript, nil))
}

func (chromeFeed) Count(ctx context.Context) (int, error) {
	var n int
	err := chromedp.Run(ctx, chromedp.Evaluate(countScript, &n))
	return n, err
}

const countScript = `document.querySelectorAll('` + listingLinkSelector + `').length`

// The feed is its own scroll container; fall back to the window on layouts
// without one.
const scrollScript = `(() => {
	const feed = document.querySelector('div[role="feed"]');
	if (feed) {
		feed.scrollBy(0, 10000);
	} else {
		window.scrollBy(0, 10000);
	}
})()`
