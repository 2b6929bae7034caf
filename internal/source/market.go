package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
	"github.com/ppiankov/trendscope/internal/util"
)

const marketProvider = "Twelve Data"

// MarketClient fetches a daily price series for a fixed instrument from Twelve Data
type MarketClient struct {
	apiKey     string
	baseURL    string
	symbol     string
	interval   string
	outputSize int
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewMarketClient creates a market client from configuration
func NewMarketClient(cfg model.MarketConfig, httpCfg model.HTTPConfig, log logrus.FieldLogger) *MarketClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	interval := cfg.Interval
	if interval == "" {
		interval = "1day"
	}
	outputSize := cfg.OutputSize
	if outputSize <= 0 {
		outputSize = 7
	}

	return &MarketClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		symbol:     cfg.Symbol,
		interval:   interval,
		outputSize: outputSize,
		httpClient: util.NewHTTPClient(timeout, httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
		log:        logger.Or(log).WithField("component", "market"),
	}
}

type timeSeriesResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Meta    struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
	} `json:"values"`
}

// Symbol returns the instrument this client tracks
func (c *MarketClient) Symbol() string {
	return c.symbol
}

// FetchPriceSeries returns the recent daily closes in ascending date order.
// Unlike the other sources it does not fall back; callers substitute their own series.
func (c *MarketClient) FetchPriceSeries(ctx context.Context) ([]model.PricePoint, error) {
	params := url.Values{}
	params.Set("symbol", c.symbol)
	params.Set("interval", c.interval)
	params.Set("outputsize", strconv.Itoa(c.outputSize))
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: marketProvider, Message: transportMessage(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Provider: marketProvider, StatusCode: resp.StatusCode, Message: "failed to fetch market data"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var payload timeSeriesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if payload.Status == "error" || payload.Values == nil {
		msg := payload.Message
		if msg == "" {
			msg = "invalid market data returned"
		}
		return nil, &UpstreamError{Provider: marketProvider, StatusCode: payload.Code, Message: msg}
	}

	// Provider order is newest first
	series := make([]model.PricePoint, len(payload.Values))
	for i, v := range payload.Values {
		series[len(payload.Values)-1-i] = model.PricePoint{
			Date:  v.Datetime,
			Close: v.Close,
		}
	}

	c.log.WithField("points", len(series)).Debug("Fetched price series")
	return series, nil
}
