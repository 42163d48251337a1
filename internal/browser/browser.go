// Package browser drives a real Chromium session against the search
// page and surrenders the catalog API body the page itself fetched.
// Two backends exist: chromedp (CDP, default) and playwright.
package browser

import "context"

type Session interface {
	// CaptureSearch navigates to pageURL, waits for the results grid to
	// render, allows the settle delay for the in-page catalog fetch to
	// complete, then returns the raw body of the captured search
	// response. capture.ErrNoCapture if none arrived inside the window.
	CaptureSearch(ctx context.Context, pageURL string) ([]byte, error)

	Close() error
}
