package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// CaptureSession reads the authenticated context's cookie jar in a form that
// can seed fresh worker contexts. The run logs in exactly once; workers reuse
// this capture read-only and never renew it.
func CaptureSession(ctx playwright.BrowserContext) ([]playwright.OptionalCookie, error) {
	cookies, err := ctx.Cookies()
	if err != nil {
		return nil, fmt.Errorf("could not read session cookies: %w", err)
	}
	if len(cookies) == 0 {
		return nil, fmt.Errorf("session cookie jar is empty; login did not stick")
	}

	transferable := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		transferable = append(transferable, toOptionalCookie(c))
	}
	return transferable, nil
}

func toOptionalCookie(c playwright.Cookie) playwright.OptionalCookie {
	oc := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(c.Path),
	}

	if c.Expires > 0 {
		oc.Expires = playwright.Float(c.Expires)
	}

	if c.HttpOnly {
		oc.HttpOnly = playwright.Bool(true)
	}

	if c.Secure {
		oc.Secure = playwright.Bool(true)
	}

	oc.SameSite = c.SameSite

	return oc
}
