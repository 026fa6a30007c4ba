// The extraction pipeline never touches playwright directly: it runs against
// the Navigator capability so parsers and the controller stay testable
// against captured HTML and fake sessions.

package portal

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-placement-automation/internal/browser"
)

const (
	// ListingReadySelector appears once the DataTables listing widget has
	// rendered. Its presence does not mean the rows are final; callers still
	// apply a settle delay because the table repaints asynchronously.
	ListingReadySelector = "#job-listings_info"

	paginationNextSelector = "#job-listings_next"
)

// Navigator owns one authenticated browsing context. All calls block until
// the target page is loaded; two navigations never overlap on one context.
type Navigator interface {
	// Navigate loads url in the current context.
	Navigate(url string) error
	// HTML returns the serialized document of the current page.
	HTML() (string, error)
	// WaitFor blocks until selector is present or the timeout elapses.
	WaitFor(selector string, timeout time.Duration) error
	// SelectYear picks a placement year from the year dropdown by its
	// visible text.
	SelectYear(year string) error
	// ClickPaginationNext advances the listing table one page. Returns false
	// without clicking when the next control is absent or disabled.
	ClickPaginationNext() (bool, error)
	// OpenPage opens url in a fresh tab inheriting this context's session.
	OpenPage(url string) (Navigator, error)
	// Close tears down this navigator's page.
	Close() error
}

type PageNavigator struct {
	page        playwright.Page
	screenshots *browser.ScreenshotDebugger
}

var _ Navigator = (*PageNavigator)(nil)

func NewPageNavigator(page playwright.Page, screenshots *browser.ScreenshotDebugger) *PageNavigator {
	return &PageNavigator{page: page, screenshots: screenshots}
}

func (n *PageNavigator) Navigate(url string) error {
	if _, err := n.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return nil
}

func (n *PageNavigator) HTML() (string, error) {
	content, err := n.page.Content()
	if err != nil {
		return "", fmt.Errorf("could not read page content: %w", err)
	}
	return content, nil
}

func (n *PageNavigator) WaitFor(selector string, timeout time.Duration) error {
	if _, err := n.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("timed out waiting for %s: %w", selector, err)
	}
	return nil
}

func (n *PageNavigator) SelectYear(year string) error {
	if err := n.WaitFor(browser.YearSelector, 15*time.Second); err != nil {
		return err
	}
	if _, err := n.page.Locator(browser.YearSelector).SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{year},
	}); err != nil {
		return fmt.Errorf("could not select year %q: %w", year, err)
	}
	return nil
}

func (n *PageNavigator) ClickPaginationNext() (bool, error) {
	next := n.page.Locator(paginationNextSelector)
	count, err := next.Count()
	if err != nil || count == 0 {
		return false, nil
	}

	class, _ := next.GetAttribute("class")
	if strings.Contains(class, "disabled") {
		return false, nil
	}

	if err := next.Locator("a").First().Click(); err != nil {
		return false, fmt.Errorf("could not click pagination next: %w", err)
	}
	return true, nil
}

func (n *PageNavigator) OpenPage(url string) (Navigator, error) {
	sub, err := n.page.Context().NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not open tab: %w", err)
	}

	nav := &PageNavigator{page: sub, screenshots: n.screenshots}
	if err := nav.Navigate(url); err != nil {
		sub.Close()
		return nil, err
	}

	//brief pause to manage tab creation
	browser.RandomDelay(800, 1500)
	return nav, nil
}

func (n *PageNavigator) Close() error {
	return n.page.Close()
}

// CaptureFailure saves a debug screenshot of the current page. Best effort,
// only used on page-level traversal failures.
func (n *PageNavigator) CaptureFailure(name string) {
	if n.screenshots != nil {
		n.screenshots.Capture(n.page, name)
	}
}
