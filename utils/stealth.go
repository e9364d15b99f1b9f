package utils

import (
	"context"
	"math/rand"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Desktop Chrome strings rotated per browser launch so repeated runs
// don't all present the same fingerprint to Maps.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
}

func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// StealthOpts returns exec allocator options for a Chrome that looks like a
// regular desktop browser. An empty userAgent picks one at random.
//
// Key flags:
//   - disable-blink-features=AutomationControlled → removes navigator.webdriver flag
//   - headless=new → newer headless mode, renders the Maps side panel like headful
//   - WindowSize → the results feed only lazy-loads inside a full-size viewport
func StealthOpts(headless bool, userAgent string) []chromedp.ExecAllocatorOption {
	if userAgent == "" {
		userAgent = RandomUserAgent()
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("excludeSwitches", "enable-automation"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("lang", "en-US"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	}

	if headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}

	return opts
}

const hideWebDriverScript = `
	Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
	Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
`

// HideWebDriver registers a script that patches the navigator properties
// page scripts probe for. It runs on every new document, ahead of the
// page's own scripts, so it must be applied before Navigate.
func HideWebDriver() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(hideWebDriverScript).Do(ctx)
		return err
	})
}

// AcceptConsent clicks through the cookie consent interstitial if one is
// shown. Finding no button is not an error.
func AcceptConsent() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var clicked bool
		return chromedp.Evaluate(`(() => {
			const selectors = [
				'button[aria-label="Accept all"]',
				'button[aria-label="I agree"]',
				'form[action*="consent"] button'
			];
			for (const sel of selectors) {
				const btn = document.querySelector(sel);
				if (btn) { btn.click(); return true; }
			}
			return false;
		})()`, &clicked).Do(ctx)
	})
}
