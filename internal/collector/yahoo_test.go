package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooSymbol(t *testing.T) {
	f := NewYahooFetcher("", 0)
	assert.Equal(t, "^VIX", f.yahooSymbol(SymbolVIX))
	assert.Equal(t, "^GSPC", f.yahooSymbol(SymbolBroadMarket))
	assert.Equal(t, "AUDJPY=X", f.yahooSymbol("AUDJPY"))
	assert.Equal(t, "AAPL", f.yahooSymbol("AAPL"))
}

func TestYahooRange(t *testing.T) {
	assert.Equal(t, "5d", yahooRange(5))
	assert.Equal(t, "1mo", yahooRange(30))
	assert.Equal(t, "3mo", yahooRange(50))
	assert.Equal(t, "2y", yahooRange(500))
}

func TestYahooFetchDailyBars(t *testing.T) {
	now := time.Now()
	ts := []string{
		fmt.Sprint(now.AddDate(0, 0, -2).Unix()),
		fmt.Sprint(now.AddDate(0, 0, -1).Unix()),
		fmt.Sprint(now.Unix()),
	}
	var gotPath, gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotRange = r.URL.Query().Get("range")
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{
			"open":[1.1,1.2,1.3],"high":[1.15,1.25,1.35],"low":[1.05,1.15,1.25],
			"close":[1.12,null,1.32],"volume":[0,0,0]}]}}],"error":null}}`, strings.Join(ts, ","))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", time.Second)
	f.BaseURL = srv.URL

	bars, err := f.FetchDailyBars(context.Background(), "EURUSD", 30)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/EURUSD=X", gotPath)
	assert.Equal(t, "1mo", gotRange)
	require.Len(t, bars, 2) // null close skipped
	assert.Equal(t, 1.12, bars[0].Close)
	assert.Equal(t, 1.32, bars[1].Close)

	price, err := f.FetchCurrentPrice(context.Background(), "EURUSD")
	require.NoError(t, err)
	assert.Equal(t, 1.32, price)
}

func TestYahooErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "BAD") {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	f := NewYahooFetcher("", time.Second)
	f.BaseURL = srv.URL

	_, err := f.FetchDailyBars(context.Background(), "BAD", 5)
	assert.ErrorContains(t, err, "status 404")

	_, err = f.FetchDailyBars(context.Background(), "GBPUSD", 5)
	assert.ErrorContains(t, err, "No data found")
}

func TestVsTraderFetchDailyBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "USDJPY", r.URL.Query().Get("symbol"))
		fmt.Fprint(w, `[{"timestamp":200,"close":151.2},{"timestamp":100,"close":150.1}]`)
	}))
	defer srv.Close()

	f := NewVsTraderFetcher(srv.URL, "key", "", time.Second)
	bars, err := f.FetchDailyBars(context.Background(), "USDJPY", 10)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 150.1, bars[0].Close)
	assert.Equal(t, 151.2, bars[1].Close)
}
