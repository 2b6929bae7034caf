package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/trendscope/internal/cache"
	"github.com/ppiankov/trendscope/internal/content"
	"github.com/ppiankov/trendscope/internal/llm"
	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
	"github.com/ppiankov/trendscope/internal/score"
	"github.com/ppiankov/trendscope/internal/source"
	"github.com/ppiankov/trendscope/internal/worker"
)

// ErrSuperseded is returned when a newer run started before this one could publish
var ErrSuperseded = errors.New("analysis superseded by a newer run")

// ArticleSource searches news articles for a topic
type ArticleSource interface {
	Search(ctx context.Context, topic string) ([]model.Article, error)
}

// ContentFetcher returns the full text behind an article URL, or ""
type ContentFetcher interface {
	FetchFullContent(ctx context.Context, url string) string
}

// Classifier classifies one article; it never fails
type Classifier interface {
	Classify(ctx context.Context, content, title string) model.ClassificationResult
}

// PriceSource fetches the recent daily price series
type PriceSource interface {
	FetchPriceSeries(ctx context.Context) ([]model.PricePoint, error)
}

// endpointer is implemented by content fetchers that request a different host than the article's
type endpointer interface {
	Endpoint(rawURL string) string
}

// symbolSource is implemented by price sources that know the instrument they track
type symbolSource interface {
	Symbol() string
}

// cacheReporter is implemented by content fetchers with a counting cache
type cacheReporter interface {
	CacheStats() (hits, misses int64, ok bool)
}

// providerNamer is implemented by classifiers backed by a named LLM provider
type providerNamer interface {
	ProviderName() string
}

// Components are the collaborators a Pipeline drives
type Components struct {
	Articles   ArticleSource
	Content    ContentFetcher
	Classifier Classifier
	Prices     PriceSource // optional; the fallback series is used when nil
}

// Options tune a Pipeline
type Options struct {
	MaxArticles int
	Workers     int
	Limiter     *worker.Limiter // optional
	Board       *Board          // optional; a private board is created when nil
}

// Pipeline orchestrates one analysis run end to end
type Pipeline struct {
	articles   ArticleSource
	content    ContentFetcher
	classifier Classifier
	prices     PriceSource
	scorer     *score.Scorer
	limiter    *worker.Limiter
	board      *Board

	maxArticles int
	workers     int
	runSeq      atomic.Uint64
	background  sync.WaitGroup

	log logrus.FieldLogger
}

// New creates a pipeline from explicit components
func New(c Components, opts Options, log logrus.FieldLogger) *Pipeline {
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = 5
	}
	if opts.Workers <= 0 {
		opts.Workers = 5
	}
	if opts.Board == nil {
		opts.Board = NewBoard()
	}

	return &Pipeline{
		articles:    c.Articles,
		content:     c.Content,
		classifier:  c.Classifier,
		prices:      c.Prices,
		scorer:      score.NewScorer(),
		limiter:     opts.Limiter,
		board:       opts.Board,
		maxArticles: opts.MaxArticles,
		workers:     opts.Workers,
		log:         logger.Or(log).WithField("component", "pipeline"),
	}
}

// NewPipeline wires the production clients described by cfg
func NewPipeline(cfg *model.Config, log logrus.FieldLogger) (*Pipeline, error) {
	log = logger.Or(log)

	switch strings.ToLower(cfg.Content.Mode) {
	case "", content.ModeProxy, content.ModeDirect:
	default:
		return nil, fmt.Errorf("unknown content mode: %s (supported: proxy, direct)", cfg.Content.Mode)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		log.WithError(err).Warn("LLM provider unavailable, classifications will use defaults")
		provider = nil
	}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	if provider != nil && cfg.RateLimiting.LLMRequestsPerSecond > 0 {
		limiter.SetRate(classifierKey(provider.Name()), cfg.RateLimiting.LLMRequestsPerSecond, cfg.RateLimiting.BurstSize)
	}

	components := Components{
		Articles:   source.NewNewsClient(cfg.News, cfg.HTTP, log),
		Content:    content.NewFetcher(cfg.Content, cfg.HTTP, cache.FromConfig(cfg.Cache), log),
		Classifier: llm.NewClassifier(provider, cfg.LLM.MaxContentChars, cfg.LLM.Timeout, log),
		Prices:     source.NewMarketClient(cfg.Market, cfg.HTTP, log),
	}

	return New(components, Options{
		MaxArticles: cfg.News.MaxArticles,
		Workers:     cfg.Concurrency.Workers,
		Limiter:     limiter,
	}, log), nil
}

// Board returns the board this pipeline publishes to
func (p *Pipeline) Board() *Board {
	return p.board
}

type priceOutcome struct {
	series []model.PricePoint
	err    error
}

// RunAnalysis runs the full analysis for topic and publishes the batch.
// A batch from a run that was overtaken by a newer one is returned with ErrSuperseded
// and is not published.
func (p *Pipeline) RunAnalysis(ctx context.Context, topic string) (*model.AnalysisBatch, error) {
	batch, err := p.begin(topic)
	if err != nil {
		return nil, err
	}
	return p.execute(ctx, batch)
}

// StartAnalysis begins a run and completes it in the background.
// The run id is allocated before StartAnalysis returns; Wait blocks until background runs finish.
func (p *Pipeline) StartAnalysis(ctx context.Context, topic string) (uint64, error) {
	batch, err := p.begin(topic)
	if err != nil {
		return 0, err
	}

	p.background.Add(1)
	go func() {
		defer p.background.Done()
		_, _ = p.execute(ctx, batch)
	}()

	return batch.RunID, nil
}

// Wait blocks until every run started with StartAnalysis has finished
func (p *Pipeline) Wait() {
	p.background.Wait()
}

// begin validates the topic, allocates the run id and clears the board
func (p *Pipeline) begin(topic string) (*model.AnalysisBatch, error) {
	query := model.ResolveTopic(topic)
	if query == "" {
		return nil, model.ErrEmptyTopic
	}

	runID := p.runSeq.Add(1)
	p.board.Begin(runID)

	return &model.AnalysisBatch{
		ID:              uuid.NewString(),
		RunID:           runID,
		Topic:           query,
		Articles:        []model.Article{},
		Classifications: []model.Classification{},
		Outcomes:        []model.Outcome{},
		DisplayTitles:   []string{},
		SectorScores:    []model.SectorScore{},
		StartedAt:       time.Now().UTC(),
	}, nil
}

// execute fills batch and publishes it
func (p *Pipeline) execute(ctx context.Context, batch *model.AnalysisBatch) (*model.AnalysisBatch, error) {
	log := p.log.WithFields(logrus.Fields{"run_id": batch.RunID, "topic": batch.Topic})
	log.Info("Analysis started")

	// Market data is independent of the news chain
	priceCh := make(chan priceOutcome, 1)
	if src, ok := p.prices.(symbolSource); ok {
		batch.PriceSymbol = src.Symbol()
	}
	go func() {
		if p.prices == nil {
			priceCh <- priceOutcome{err: errors.New("no market source configured")}
			return
		}
		series, err := p.prices.FetchPriceSeries(ctx)
		priceCh <- priceOutcome{series: series, err: err}
	}()

	articles, err := p.articles.Search(ctx, batch.Topic)
	if err != nil {
		log.WithError(err).Error("Article search failed")
		batch.Error = fmt.Sprintf("Failed to fetch and analyze news: %v", err)
	} else {
		if len(articles) > p.maxArticles {
			articles = articles[:p.maxArticles]
		}
		p.analyzeArticles(ctx, log, articles, batch)
		batch.SectorScores = p.scorer.Calculate(batch.Classifications)
		batch.Sentiment = score.SentimentDistribution(batch.Classifications)
	}

	price := <-priceCh
	if price.err != nil || len(price.series) == 0 {
		if price.err != nil {
			log.WithError(price.err).Warn("Market data unavailable, using fallback series")
		}
		batch.PriceSeries = FallbackPriceSeries()
		batch.PriceFallback = true
		batch.Notices = append(batch.Notices, FallbackNotice)
	} else {
		batch.PriceSeries = price.series
	}

	batch.CompletedAt = time.Now().UTC()

	if !p.board.Publish(batch) {
		log.Info("Analysis superseded by a newer run, result dropped")
		return batch, ErrSuperseded
	}

	fields := logrus.Fields{
		"articles":  len(batch.Articles),
		"defaulted": batch.DefaultedCount(),
		"duration":  batch.CompletedAt.Sub(batch.StartedAt).Round(time.Millisecond),
	}
	if r, ok := p.content.(cacheReporter); ok {
		if hits, misses, ok := r.CacheStats(); ok {
			fields["cache_hits"] = hits
			fields["cache_misses"] = misses
		}
	}
	log.WithFields(fields).Info("Analysis published")

	return batch, nil
}

// analyzeArticles enriches and classifies every article through the worker pool
// and writes the index-aligned results into batch
func (p *Pipeline) analyzeArticles(ctx context.Context, log logrus.FieldLogger, articles []model.Article, batch *model.AnalysisBatch) {
	pool := worker.NewPool(ctx, p.workers)
	pool.Start()

	for i, a := range articles {
		i, a := i, a
		job := worker.JobFunc(func(ctx context.Context) worker.Result {
			return p.analyzeArticle(ctx, i, a)
		})
		if err := pool.Submit(job); err != nil {
			log.WithError(err).Warn("Article not submitted")
			break
		}
	}

	results := make([]*articleResult, len(articles))
	for _, r := range pool.Wait() {
		ar := r.(*articleResult)
		results[ar.index] = ar
	}

	for i, a := range articles {
		res := results[i]
		if res == nil {
			res = &articleResult{index: i, classification: model.Defaulted("analysis cancelled")}
		}
		a.Content = res.content

		batch.Articles = append(batch.Articles, a)
		batch.Classifications = append(batch.Classifications, res.classification.Classification)
		batch.Outcomes = append(batch.Outcomes, res.classification.Outcome)
		batch.DisplayTitles = append(batch.DisplayTitles, a.Title)
	}
}

// articleResult is the per-article outcome; index restores fetch order
type articleResult struct {
	index          int
	content        string
	classification model.ClassificationResult
}

// GetError reports a defaulted classification as an error
func (r *articleResult) GetError() error {
	if r.classification.IsDefaulted() {
		return errors.New(r.classification.Reason)
	}
	return nil
}

// analyzeArticle runs the per-article chain: rate limit, fetch content, classify
func (p *Pipeline) analyzeArticle(ctx context.Context, index int, a model.Article) *articleResult {
	log := p.log.WithField("url", a.URL)

	var text string
	if a.URL != "" {
		if err := p.waitHost(ctx, a.URL); err != nil {
			log.WithError(err).Debug("Content fetch skipped by rate limiter")
		} else {
			text = p.content.FetchFullContent(ctx, a.URL)
		}
	}

	prompt := text
	if prompt == "" {
		prompt = a.Description
	}

	if err := p.waitClassifier(ctx); err != nil {
		return &articleResult{index: index, content: text, classification: model.Defaulted(err.Error())}
	}

	return &articleResult{
		index:          index,
		content:        text,
		classification: p.classifier.Classify(ctx, prompt, a.Title),
	}
}

func (p *Pipeline) waitHost(ctx context.Context, articleURL string) error {
	if p.limiter == nil {
		return nil
	}
	endpoint := articleURL
	if e, ok := p.content.(endpointer); ok {
		endpoint = e.Endpoint(articleURL)
	}
	return p.limiter.Wait(ctx, endpoint)
}

func (p *Pipeline) waitClassifier(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	name := "default"
	if n, ok := p.classifier.(providerNamer); ok && n.ProviderName() != "" {
		name = n.ProviderName()
	}
	return p.limiter.WaitKey(ctx, classifierKey(name))
}

func classifierKey(provider string) string {
	return "llm:" + provider
}
