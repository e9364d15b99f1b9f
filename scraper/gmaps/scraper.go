// Package gmaps drives a Google Maps search in Chrome and reads business
// listings out of the result feed.
package gmaps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gmaps-scraper/config"
	"gmaps-scraper/models"
	"gmaps-scraper/services"
	"gmaps-scraper/utils"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

const searchBoxSelector = `#searchboxinput`

type Scraper struct {
	cfg         *config.Config
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// SearchResult describes how the result feed was paged.
type SearchResult struct {
	Outcome Outcome
	// Listings is how many result rows were opened.
	Listings int
}

func NewScraper(cfg *config.Config) (*Scraper, error) {
	utils.Info("Launching Chrome browser...")
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		utils.StealthOpts(cfg.Headless, cfg.UserAgent)...,
	)
	utils.Success("Browser ready")
	return &Scraper{
		cfg:         cfg,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}, nil
}

func (s *Scraper) Close() {
	utils.Info("Closing browser...")
	s.allocCancel()
}

// Search runs job in a fresh tab: it types the query, pages the feed until
// cfg.Total listings are visible or no more load, then opens each listing
// and extracts it. If a listing fails, the records read before it are
// returned along with the error.
func (s *Scraper) Search(ctx context.Context, job models.SearchJob) (*models.BusinessList, SearchResult, error) {
	list := &models.BusinessList{}
	var result SearchResult

	tabCtx, tabCancel := chromedp.NewContext(s.allocCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	// Start the browser on tabCtx itself; the first Run owns its lifetime,
	// and the per-step timeouts below must not close it.
	if err := chromedp.Run(tabCtx); err != nil {
		return list, result, fmt.Errorf("could not open tab: %w", err)
	}

	if err := s.openSearch(tabCtx, job.Query); err != nil {
		return list, result, err
	}

	n, outcome, err := collectListings(tabCtx, chromeFeed{}, s.cfg.Total, s.cfg.ScrollSettle, s.cfg.PollInterval)
	if err != nil {
		return list, result, err
	}
	result.Outcome = outcome

	businessType := strings.ToLower(strings.TrimSpace(job.Search))
	for i := 0; i < n; i++ {
		listing, err := s.extractOne(tabCtx, i)
		if err != nil {
			return list, result, err
		}
		result.Listings++

		list.Add(toBusiness(listing, businessType))
		utils.Debug("✓ %s | %s", truncate(listing.Name, 30), truncate(listing.Address, 40))

		if i < n-1 {
			if err := utils.RandomDelay(tabCtx, s.cfg.MinDelay, s.cfg.MaxDelay); err != nil {
				return list, result, err
			}
		}
	}

	utils.Success("Extracted %d listings for %q", list.Len(), job.Query)
	return list, result, nil
}

func (s *Scraper) openSearch(tabCtx context.Context, query string) error {
	ctx, cancel := context.WithTimeout(tabCtx, s.cfg.NavigationTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		utils.HideWebDriver(),
		chromedp.Navigate(s.cfg.BaseURL),
		utils.AcceptConsent(),
		chromedp.WaitVisible(searchBoxSelector, chromedp.ByQuery),
		chromedp.SendKeys(searchBoxSelector, query, chromedp.ByQuery),
		chromedp.SendKeys(searchBoxSelector, kb.Enter, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("search %q failed: %w", query, err)
	}

	err = utils.WaitFor(ctx, s.cfg.NavigationTimeout, s.cfg.PollInterval, func(ctx context.Context) (bool, error) {
		n, err := chromeFeed{}.Count(ctx)
		return n > 0, err
	})
	// No results rendered in time; the scroll loop will stabilize at zero.
	if errors.Is(err, utils.ErrWaitTimeout) || errors.Is(err, context.DeadlineExceeded) {
		utils.Warn("No listings appeared for %q", query)
		return nil
	}
	return err
}

func (s *Scraper) extractOne(tabCtx context.Context, i int) (Listing, error) {
	ctx, cancel := context.WithTimeout(tabCtx, s.cfg.NavigationTimeout)
	defer cancel()
	return s.extractListing(ctx, i)
}

// toBusiness turns raw listing text into a record. The business type is
// always the search term, never read from the page.
func toBusiness(l Listing, businessType string) models.Business {
	b := models.Business{
		Name:         l.Name,
		BusinessType: businessType,
		Website:      l.Website,
		PhoneNumber:  l.Phone,
	}

	if l.Address != "" {
		addr := services.ParseAddress(l.Address)
		b.Address = addr.Street
		b.City = addr.City
		b.State = addr.State
		b.ZipCode = addr.ZipCode
	}

	return b
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
