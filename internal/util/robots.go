package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsTTL is how long a site's robots.txt is trusted before it is refetched
const DefaultRobotsTTL = time.Hour

// RobotsPolicy is the robots.txt verdict for one page
type RobotsPolicy struct {
	Allowed    bool
	CrawlDelay time.Duration
}

// RobotsGate decides whether an article page may be fetched directly.
// Rules are cached per origin; an unreachable robots.txt is cached as allow-all.
type RobotsGate struct {
	client    *http.Client
	userAgent string
	agent     string
	rules     *gocache.Cache
}

// NewRobotsGate creates a gate that fetches robots.txt with client, identifying as userAgent
func NewRobotsGate(userAgent string, client *http.Client, ttl time.Duration) *RobotsGate {
	if ttl <= 0 {
		ttl = DefaultRobotsTTL
	}
	return &RobotsGate{
		client:    client,
		userAgent: userAgent,
		agent:     ProductToken(userAgent),
		rules:     gocache.New(ttl, 2*ttl),
	}
}

// Check returns the policy for rawURL. Only an unusable URL is an error.
func (g *RobotsGate) Check(ctx context.Context, rawURL string) (RobotsPolicy, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return RobotsPolicy{}, fmt.Errorf("parse URL: %w", err)
	}
	if u.Host == "" {
		return RobotsPolicy{}, fmt.Errorf("URL has no host: %s", rawURL)
	}

	data := g.rulesFor(ctx, u.Scheme+"://"+u.Host)
	if data == nil {
		return RobotsPolicy{Allowed: true}, nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	policy := RobotsPolicy{Allowed: data.TestAgent(path, g.agent)}
	if group := data.FindGroup(g.agent); group != nil {
		policy.CrawlDelay = group.CrawlDelay
	}
	return policy, nil
}

// Allowed reports whether rawURL may be fetched; malformed URLs are refused
func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	policy, err := g.Check(ctx, rawURL)
	return err == nil && policy.Allowed
}

// Forget drops every cached robots.txt
func (g *RobotsGate) Forget() {
	g.rules.Flush()
}

func (g *RobotsGate) rulesFor(ctx context.Context, origin string) *robotstxt.RobotsData {
	if v, found := g.rules.Get(origin); found {
		data, _ := v.(*robotstxt.RobotsData)
		return data
	}

	data, err := g.fetch(ctx, origin+"/robots.txt")
	if err != nil && ctx.Err() != nil {
		// Do not remember failures caused by the caller giving up
		return nil
	}
	g.rules.SetDefault(origin, data)
	return data
}

func (g *RobotsGate) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// FromResponse maps 4xx to allow-all and 5xx to disallow-all
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}

// ProductToken reduces a User-Agent header to the name robots.txt groups match on
func ProductToken(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return ua
	}
	return strings.Split(fields[0], "/")[0]
}
