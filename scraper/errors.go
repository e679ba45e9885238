package scraper

import (
	"errors"
	"fmt"
)

// ErrTimeout indicates a timeout while issuing a request.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Errorf("timeout: %w", e.Err).Error()
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrConnection indicates a network connectivity failure.
type ErrConnection struct {
	Err error
}

func (e ErrConnection) Error() string {
	return fmt.Errorf("connection: %w", e.Err).Error()
}

func (e ErrConnection) Unwrap() error {
	return e.Err
}

// ErrForbidden indicates a forbidden response (HTTP 403).
type ErrForbidden struct {
	Err error
}

func (e ErrForbidden) Error() string {
	return fmt.Errorf("forbidden: %w", e.Err).Error()
}

func (e ErrForbidden) Unwrap() error {
	return e.Err
}

// ErrNotFound indicates a missing resource (HTTP 404).
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return fmt.Errorf("not_found: %w", e.Err).Error()
}

func (e ErrNotFound) Unwrap() error {
	return e.Err
}

// ErrRateLimited indicates the target rate-limited the request.
type ErrRateLimited struct {
	Err error
}

func (e ErrRateLimited) Error() string {
	return fmt.Errorf("rate_limited: %w", e.Err).Error()
}

func (e ErrRateLimited) Unwrap() error {
	return e.Err
}

// ErrBlocked indicates the site refused automated collection before any
// data was gathered. The batch halts and the caller should print
// ManualInstructions rather than continue hammering a wall.
type ErrBlocked struct {
	URL string
	Err error
}

func (e ErrBlocked) Error() string {
	return fmt.Errorf("blocked by %s: %w", e.URL, e.Err).Error()
}

func (e ErrBlocked) Unwrap() error {
	return e.Err
}

func errorTypeLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return "connection"
	}
	var forbidden ErrForbidden
	if errors.As(err, &forbidden) {
		return "forbidden"
	}
	var notFound ErrNotFound
	if errors.As(err, &notFound) {
		return "not_found"
	}
	var rateLimited ErrRateLimited
	if errors.As(err, &rateLimited) {
		return "rate_limited"
	}
	return "other"
}

// ManualInstructions describes the browser-console fallback for collecting
// the country list when the site blocks automated requests.
func ManualInstructions(baseURL string) string {
	return fmt.Sprintf(`The website appears to be blocking automated requests.

Alternative method, using your browser's developer console:

1. Go to: %s
2. Open the console (F12) and paste this JavaScript:

   countries = [];
   document.querySelectorAll('a[href*="/advice/"]').forEach(link => {
       const href = link.getAttribute('href');
       if (href && href.split('/').length >= 5) {
           const country = href.split('/').filter(x => x).pop();
           if (!['covid', 'index', 'search', 'about'].includes(country)) {
               countries.push({country: country.replace(/-/g, ' '), url: href});
           }
       }
   });
   console.log(JSON.stringify(countries, null, 2));

3. Copy the output and save it as countries.json.
4. Re-run collection later, or file the advisory levels by hand.
`, baseURL)
}
