package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/trendscope/internal/extract"
	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
	"github.com/ppiankov/trendscope/internal/util"
)

const newsProvider = "GNews"

// NewsClient searches news articles through the GNews search API
type NewsClient struct {
	apiKey     string
	baseURL    string
	lang       string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewNewsClient creates a news client from configuration
func NewNewsClient(cfg model.NewsConfig, httpCfg model.HTTPConfig, log logrus.FieldLogger) *NewsClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}

	return &NewsClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		lang:       lang,
		httpClient: util.NewHTTPClient(timeout, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
		log:        logger.Or(log).WithField("component", "news"),
	}
}

type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
	Errors        []string       `json:"errors"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"source"`
}

// Search returns the provider's articles for topic in provider order.
// A non-2xx answer yields *UpstreamError and an empty result yields ErrNoArticles.
func (c *NewsClient) Search(ctx context.Context, topic string) ([]model.Article, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, model.ErrEmptyTopic
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("lang", c.lang)
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: newsProvider, Message: transportMessage(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstream := &UpstreamError{Provider: newsProvider, StatusCode: resp.StatusCode}
		var payload gnewsResponse
		if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
			upstream.Message = strings.Join(payload.Errors, "; ")
		}
		return nil, upstream
	}

	var payload gnewsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(payload.Articles) == 0 {
		return nil, ErrNoArticles
	}

	articles := make([]model.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, toArticle(a))
	}

	return articles, nil
}

// FetchArticles is Search with failures absorbed: any error is logged and an empty slice returned
func (c *NewsClient) FetchArticles(ctx context.Context, topic string) []model.Article {
	articles, err := c.Search(ctx, topic)
	if err != nil {
		c.log.WithError(err).WithField("topic", topic).Warn("Failed to fetch news")
		return []model.Article{}
	}
	return articles
}

func toArticle(a gnewsArticle) model.Article {
	article := model.Article{
		Title:       strings.TrimSpace(a.Title),
		Description: extract.PlainText(a.Description),
		Content:     extract.PlainText(a.Content),
		URL:         a.URL,
		Image:       a.Image,
		Source: model.ArticleSource{
			Name: a.Source.Name,
			URL:  a.Source.URL,
		},
	}
	if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		article.PublishedAt = t.UTC()
	}
	return article
}
