package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"market-analytics/internal/model"
)

// finnhubSymbols maps portal symbols to Finnhub/OANDA instrument codes.
var finnhubSymbols = map[string]string{
	"EURUSD": "OANDA:EUR_USD",
	"GBPUSD": "OANDA:GBP_USD",
	"USDJPY": "OANDA:USD_JPY",
	"XAUUSD": "OANDA:XAU_USD",
	"XAGUSD": "OANDA:XAG_USD",
	"USOIL":  "OANDA:BCO_USD",
}

// finnhubResolutions maps portal timeframes to Finnhub resolution codes.
var finnhubResolutions = map[string]string{
	"M5":  "5",
	"M15": "15",
	"H1":  "60",
	"H4":  "240",
	"D1":  "D",
	"W1":  "W",
}

// FinnhubConfig configures the Finnhub candle provider.
type FinnhubConfig struct {
	BaseURL string // default https://finnhub.io/api/v1
	APIKey  string
	Timeout time.Duration // per-request; default 10s
}

// Finnhub fetches candles from the Finnhub stock-candle endpoint.
type Finnhub struct {
	cfg    FinnhubConfig
	client *http.Client
	now    func() time.Time
}

// NewFinnhub creates a Finnhub provider.
func NewFinnhub(cfg FinnhubConfig) *Finnhub {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://finnhub.io/api/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Finnhub{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    time.Now,
	}
}

func (f *Finnhub) Name() string { return "finnhub" }

// finnhubCandleResponse is the column-oriented candle payload:
// s is "ok" or "no_data", the arrays are index-aligned.
type finnhubCandleResponse struct {
	Status  string    `json:"s"`
	Times   []int64   `json:"t"`
	Opens   []float64 `json:"o"`
	Highs   []float64 `json:"h"`
	Lows    []float64 `json:"l"`
	Closes  []float64 `json:"c"`
	Volumes []float64 `json:"v"`
}

func (f *Finnhub) Candles(ctx context.Context, symbol, timeframe string, limit int) ([]model.Candle, error) {
	mapped, ok := finnhubSymbols[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: unmapped symbol %q", ErrNoData, symbol)
	}
	resolution, ok := finnhubResolutions[timeframe]
	if !ok {
		resolution = "60"
	}

	to := f.now().Unix()
	from := to - int64(limit)*TimeframeSeconds(timeframe)

	q := url.Values{}
	q.Set("symbol", mapped)
	q.Set("resolution", resolution)
	q.Set("from", strconv.FormatInt(from, 10))
	q.Set("to", strconv.FormatInt(to, 10))
	q.Set("token", f.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.BaseURL+"/stock/candle?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("finnhub request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("finnhub fetch %s: status %d", symbol, resp.StatusCode)
	}

	var payload finnhubCandleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("finnhub decode %s: %w", symbol, err)
	}

	if payload.Status != "ok" || len(payload.Times) == 0 {
		return nil, fmt.Errorf("%w: finnhub returned %q for %s", ErrNoData, payload.Status, symbol)
	}

	n := len(payload.Times)
	if len(payload.Opens) != n || len(payload.Highs) != n || len(payload.Lows) != n ||
		len(payload.Closes) != n || len(payload.Volumes) != n {
		return nil, fmt.Errorf("finnhub decode %s: misaligned candle arrays", symbol)
	}

	candles := make([]model.Candle, len(payload.Times))
	for i, ts := range payload.Times {
		candles[i] = model.Candle{
			Time:   ts,
			Open:   payload.Opens[i],
			High:   payload.Highs[i],
			Low:    payload.Lows[i],
			Close:  payload.Closes[i],
			Volume: payload.Volumes[i],
		}
	}
	return candles, nil
}
