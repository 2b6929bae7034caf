package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/trendscope/internal/cache"
	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
	"github.com/ppiankov/trendscope/internal/util"
)

// Fetch modes
const (
	ModeProxy  = "proxy"  // Ask a readability proxy for a text rendering
	ModeDirect = "direct" // Fetch the page and extract the article locally
)

// DefaultTimeout bounds a single content fetch
const DefaultTimeout = 15 * time.Second

// Fetcher retrieves a best-effort full-text rendering of article pages
type Fetcher struct {
	httpClient *http.Client
	mode       string
	proxyBase  string
	userAgent  string
	maxBytes   int64
	timeout    time.Duration
	robots     *util.RobotsGate // nil unless direct mode respects robots.txt
	store      cache.Store      // optional
	log        logrus.FieldLogger
}

// NewFetcher creates a Fetcher from configuration. store may be nil to disable caching.
func NewFetcher(cfg model.ContentConfig, httpCfg model.HTTPConfig, store cache.Store, log logrus.FieldLogger) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}
	mode := strings.ToLower(cfg.Mode)
	if mode == "" {
		mode = ModeProxy
	}

	f := &Fetcher{
		httpClient: util.NewHTTPClient(timeout, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
		mode:       mode,
		proxyBase:  strings.TrimSuffix(cfg.ProxyBaseURL, "/"),
		userAgent:  cfg.UserAgent,
		maxBytes:   maxBytes,
		timeout:    timeout,
		store:      store,
		log:        logger.Or(log).WithField("component", "content"),
	}
	if mode == ModeDirect && cfg.RespectRobots {
		f.robots = util.NewRobotsGate(cfg.UserAgent, f.httpClient, util.DefaultRobotsTTL)
	}
	return f
}

// FetchFullContent returns the article text behind rawURL, or "" when it cannot be retrieved.
// An empty URL returns "" without any network call. Failures are logged, never returned.
func (f *Fetcher) FetchFullContent(ctx context.Context, rawURL string) string {
	if rawURL == "" {
		return ""
	}

	if f.store != nil {
		if text, found := f.store.Lookup(rawURL); found {
			return text
		}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var (
		text string
		err  error
	)
	switch f.mode {
	case ModeDirect:
		text, err = f.fetchDirect(ctx, rawURL)
	default:
		text, err = f.fetchViaProxy(ctx, rawURL)
	}
	if err != nil {
		f.log.WithError(err).WithField("url", rawURL).Warn("Content unavailable")
		return ""
	}

	text = strings.TrimSpace(text)
	if f.store != nil && text != "" {
		if err := f.store.Save(rawURL, text); err != nil {
			f.log.WithError(err).Debug("Cache write failed")
		}
	}

	return text
}

// CacheStats reports content cache lookups when the configured store counts them
func (f *Fetcher) CacheStats() (hits, misses int64, ok bool) {
	c, ok := f.store.(cache.Counter)
	if !ok {
		return 0, 0, false
	}
	hits, misses = c.Stats()
	return hits, misses, true
}

// Endpoint returns the URL actually requested for rawURL, so callers can rate limit by the real host
func (f *Fetcher) Endpoint(rawURL string) string {
	if f.mode == ModeProxy && f.proxyBase != "" {
		return f.proxyBase + "/" + rawURL
	}
	return rawURL
}

// fetchViaProxy requests GET {proxyBase}/{targetURL}
func (f *Fetcher) fetchViaProxy(ctx context.Context, rawURL string) (string, error) {
	if f.proxyBase == "" {
		return "", fmt.Errorf("no readability proxy configured")
	}

	body, _, err := f.get(ctx, f.proxyBase+"/"+rawURL, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// fetchDirect downloads the page and extracts the main article text
func (f *Fetcher) fetchDirect(ctx context.Context, rawURL string) (string, error) {
	if f.robots != nil && !f.robots.Allowed(ctx, rawURL) {
		return "", fmt.Errorf("disallowed by robots.txt")
	}

	body, finalURL, err := f.get(ctx, rawURL, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(bytes.NewReader(body), finalURL)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	return article.TextContent, nil
}

// get performs a single GET and returns the size-limited body and the final URL
func (f *Fetcher) get(ctx context.Context, target string, accept string) ([]byte, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", accept)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	return body, resp.Request.URL, nil
}
