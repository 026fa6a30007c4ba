package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

const (
	identitySelector = "#identity"
	passwordSelector = "#password"
	loginSelector    = `input[value="Login"]`

	// The year selector only renders once the portal accepts the session,
	// so its appearance doubles as the login success signal.
	YearSelector = "#_placeyr"
)

// Login submits credentials to the portal's login form. Failure here is fatal
// for the whole run: nothing can be extracted without a session.
func Login(page playwright.Page, portalURL, username, password string) error {
	if _, err := page.Goto(portalURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("could not load portal login page: %w", err)
	}

	if err := page.Locator(identitySelector).Fill(username); err != nil {
		return fmt.Errorf("could not fill username: %w", err)
	}
	if err := page.Locator(passwordSelector).Fill(password); err != nil {
		return fmt.Errorf("could not fill password: %w", err)
	}
	if err := page.Locator(loginSelector).Click(); err != nil {
		return fmt.Errorf("could not click login: %w", err)
	}

	if _, err := page.WaitForSelector(YearSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(15000),
	}); err != nil {
		return fmt.Errorf("login failed: year selector never appeared: %w", err)
	}

	return nil
}
