package source

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrNoArticles is returned when the search provider answers successfully with zero articles
var ErrNoArticles = errors.New("no articles found for this topic")

// UpstreamError describes a failed call to a third-party provider
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s error: status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s error (%d): %s", e.Provider, e.StatusCode, e.Message)
}

// transportMessage describes a client error without the request URL, which carries the API key
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
