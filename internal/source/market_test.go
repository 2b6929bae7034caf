package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/trendscope/internal/logger"
	"github.com/ppiankov/trendscope/internal/model"
)

func marketClient(baseURL string) *MarketClient {
	cfg := model.MarketConfig{
		APIKey:  "test-market-key",
		BaseURL: baseURL,
		Symbol:  "APT/USD",
		Timeout: 2 * time.Second,
	}
	return NewMarketClient(cfg, model.HTTPConfig{}, logger.Discard())
}

func TestMarketClient_FetchPriceSeries_ReversesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("symbol") != "APT/USD" || q.Get("interval") != "1day" || q.Get("outputsize") != "7" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("apikey") != "test-market-key" {
			t.Errorf("expected apikey, got %s", q.Get("apikey"))
		}
		_, _ = fmt.Fprint(w, `{
			"meta": {"symbol": "APT/USD", "interval": "1day"},
			"values": [
				{"datetime": "2025-09-12", "close": "7.90"},
				{"datetime": "2025-09-11", "close": "7.70"},
				{"datetime": "2025-09-10", "close": "7.75"}
			],
			"status": "ok"
		}`)
	}))
	defer server.Close()

	series, err := marketClient(server.URL).FetchPriceSeries(context.Background())
	if err != nil {
		t.Fatalf("FetchPriceSeries failed: %v", err)
	}

	expected := []model.PricePoint{
		{Date: "2025-09-10", Close: "7.75"},
		{Date: "2025-09-11", Close: "7.70"},
		{Date: "2025-09-12", Close: "7.90"},
	}
	if len(series) != len(expected) {
		t.Fatalf("expected %d points, got %d", len(expected), len(series))
	}
	for i := range expected {
		if series[i] != expected[i] {
			t.Errorf("point %d: expected %+v, got %+v", i, expected[i], series[i])
		}
	}
}

func TestMarketClient_FetchPriceSeries_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"code": 429, "message": "You have run out of API credits for the current minute.", "status": "error"}`)
	}))
	defer server.Close()

	_, err := marketClient(server.URL).FetchPriceSeries(context.Background())

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Message != "You have run out of API credits for the current minute." {
		t.Errorf("unexpected message: %s", upstream.Message)
	}
}

func TestMarketClient_FetchPriceSeries_MissingValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"status": "ok"}`)
	}))
	defer server.Close()

	_, err := marketClient(server.URL).FetchPriceSeries(context.Background())
	if err == nil {
		t.Fatal("expected error for missing values")
	}
}

func TestMarketClient_FetchPriceSeries_NonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := marketClient(server.URL).FetchPriceSeries(context.Background())

	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502 UpstreamError, got %v", err)
	}
}

func TestUpstreamError_Error(t *testing.T) {
	tests := []struct {
		err  UpstreamError
		want string
	}{
		{UpstreamError{Provider: "GNews", StatusCode: 403, Message: "bad key"}, "GNews error (403): bad key"},
		{UpstreamError{Provider: "GNews", StatusCode: 500}, "GNews error: status 500"},
		{UpstreamError{Provider: "GNews", Message: "connection refused"}, "GNews error: connection refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
