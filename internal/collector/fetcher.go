package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"CarrySentinel/internal/model"
)

// Fetcher retrieves daily price history from a market-data source.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}

// Internal symbols understood by every Fetcher. FX pairs use model.CurrencyPair.Symbol().
const (
	SymbolVIX         = "VIX"
	SymbolBroadMarket = "SPX500"
)

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}
