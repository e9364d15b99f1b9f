package gmaps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gmaps-scraper/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	listingLinkSelector = `a[href^="https://www.google.com/maps/place"]`

	nameSelector    = `div[class*="fontHeadlineSmall"]`
	addressSelector = `button[data-item-id="address"] div[class*="fontBodyMedium"]`
	websiteSelector = `a[data-item-id="authority"] div[class*="fontBodyMedium"]`
	phoneSelector   = `button[data-item-id^="phone:tel:"] div[class*="fontBodyMedium"]`
)

// Listing holds the raw text read from one result row and its detail panel.
// Any region that wasn't rendered is "".
type Listing struct {
	Name    string
	Address string
	Website string
	Phone   string
}

// ParseListing reads the name from the result row and the address, website
// and phone from the page with the detail panel open. Regions are
// independent; a missing one leaves only its field empty.
func ParseListing(rowHTML, pageHTML string) (Listing, error) {
	row, err := goquery.NewDocumentFromReader(strings.NewReader(rowHTML))
	if err != nil {
		return Listing{}, fmt.Errorf("failed to parse row html: %w", err)
	}
	page, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return Listing{}, fmt.Errorf("failed to parse page html: %w", err)
	}

	return Listing{
		Name:    regionText(row.Selection, nameSelector),
		Address: regionText(page.Selection, addressSelector),
		Website: regionText(page.Selection, websiteSelector),
		Phone:   regionText(page.Selection, phoneSelector),
	}, nil
}

func regionText(s *goquery.Selection, selector string) string {
	found := s.Find(selector).First()
	if found.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(found.Text()), " ")
}

// linkXPath addresses the i-th (0-based) result link.
func linkXPath(i int) string {
	return fmt.Sprintf(`(//a[starts-with(@href, "https://www.google.com/maps/place")])[%d]`, i+1)
}

// rowXPath addresses the result row containing the i-th link.
func rowXPath(i int) string {
	return linkXPath(i) + "/.."
}

// extractListing opens result i and reads its fields. The detail panel is
// given panelTimeout to show the listing's name; if it doesn't, whatever is
// rendered is read anyway.
func (s *Scraper) extractListing(ctx context.Context, i int) (Listing, error) {
	xpath := rowXPath(i)

	var (
		rowHTML, title string
		hasTitle       bool
	)
	err := chromedp.Run(ctx,
		chromedp.ScrollIntoView(xpath, chromedp.BySearch),
		chromedp.OuterHTML(xpath, &rowHTML, chromedp.BySearch),
		chromedp.AttributeValue(linkXPath(i), "aria-label", &title, &hasTitle, chromedp.BySearch),
		chromedp.Click(xpath, chromedp.BySearch),
	)
	if err != nil {
		return Listing{}, fmt.Errorf("could not open listing %d: %w", i, err)
	}

	err = utils.WaitFor(ctx, s.cfg.PanelTimeout, s.cfg.PollInterval, panelShows(title))
	if errors.Is(err, utils.ErrWaitTimeout) {
		utils.Debug("Detail panel for listing %d (%q) not ready, reading as is", i, title)
	} else if err != nil {
		return Listing{}, err
	}

	var pageHTML string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("body", &pageHTML, chromedp.ByQuery)); err != nil {
		return Listing{}, fmt.Errorf("could not read detail panel %d: %w", i, err)
	}

	return ParseListing(rowHTML, pageHTML)
}

// panelShows reports whether the detail panel heading reads title. With no
// title to compare, any rendered heading will do.
func panelShows(title string) utils.Condition {
	return func(ctx context.Context) (bool, error) {
		var heading string
		err := chromedp.Run(ctx, chromedp.Evaluate(
			`(document.querySelector('div[role="main"] h1') || {}).textContent || ''`, &heading))
		if err != nil {
			return false, err
		}
		heading = strings.TrimSpace(heading)
		if title == "" {
			return heading != "", nil
		}
		return heading == strings.TrimSpace(title), nil
	}
}
