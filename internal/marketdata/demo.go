package marketdata

import (
	"context"
	"math/rand"
	"time"

	"market-analytics/internal/model"
)

// demoBasePrices anchor synthetic candles near realistic quotes so the
// indicator output stays plausible for demonstration answers.
var demoBasePrices = map[string]float64{
	"XAUUSD": 2650,
	"EURUSD": 1.0850,
	"GBPUSD": 1.2950,
	"USDJPY": 149.50,
	"USOIL":  71.20,
}

// Demo synthesizes candles when no live provider can serve a symbol.
// Bars wander ±1% around the symbol's base price with fixed intra-bar
// geometry, so low <= open,close <= high always holds. The randomness
// source is injectable for deterministic tests.
type Demo struct {
	rng *rand.Rand
	now func() time.Time
}

// NewDemo creates a demo provider seeded from the current time.
func NewDemo() *Demo {
	return &Demo{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewDemoSeeded creates a deterministic demo provider. Test hook.
func NewDemoSeeded(seed int64, now func() time.Time) *Demo {
	return &Demo{rng: rand.New(rand.NewSource(seed)), now: now}
}

func (d *Demo) Name() string { return "demo" }

// Candles always succeeds; unknown symbols fall back to EURUSD pricing,
// mirroring how the portal demos an unconfigured instrument.
func (d *Demo) Candles(_ context.Context, symbol, timeframe string, limit int) ([]model.Candle, error) {
	base, ok := demoBasePrices[symbol]
	if !ok {
		base = demoBasePrices["EURUSD"]
	}

	tfSeconds := TimeframeSeconds(timeframe)
	now := d.now().Unix()

	candles := make([]model.Candle, limit)
	for i := range candles {
		variance := (d.rng.Float64() - 0.5) * 0.02 // ±1%
		price := base * (1 + variance)
		candles[i] = model.Candle{
			Time:   now - int64(limit-i)*tfSeconds,
			Open:   price * 0.999,
			High:   price * 1.001,
			Low:    price * 0.998,
			Close:  price,
			Volume: float64(d.rng.Intn(10000) + 5000),
		}
	}
	return candles, nil
}
