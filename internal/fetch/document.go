package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/job-autofill/internal/dom"
)

var (
	// ErrNoSource is returned when neither markup nor an address is given.
	ErrNoSource = errors.New("html or url is required")
	// ErrUnsupportedScheme rejects addresses that are not http or https.
	ErrUnsupportedScheme = errors.New("must be an http or https URL")
)

// Document resolves a page from submitted markup or an address. Restricted
// addresses are refused even alongside markup. Markup wins over the address,
// which then only names the page; an address alone is fetched.
func Document(ctx context.Context, markup, urlStr string, opts *Options) (*dom.Document, error) {
	if urlStr != "" && IsRestrictedURL(urlStr) {
		return nil, &Error{URL: urlStr, Message: "cannot autofill restricted pages"}
	}
	if strings.TrimSpace(markup) != "" {
		return dom.ParseString(markup, dom.WithURL(urlStr))
	}
	if urlStr == "" {
		return nil, ErrNoSource
	}
	if u, err := url.Parse(urlStr); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, urlStr)
	}

	result, err := Page(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	return dom.ParseString(result.HTML, dom.WithURL(result.URL))
}
