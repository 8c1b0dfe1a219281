package rates

import (
	"log/slog"
	"math"
	"time"
)

// Reference currency and its stable-value aliases; all convert 1:1.
const (
	ReferenceCurrency = "USD"

	dayKeyFormat   = "2006-01-02"
	monthKeyFormat = "2006-01"
)

func isStable(code string) bool {
	return code == "USD" || code == "USDC" || code == "USDT"
}

// Provider answers USD conversion lookups. The zero value is usable and
// reports every non-reference currency as unpriceable.
type Provider struct {
	logger  *slog.Logger
	daily   map[string]float64            // YYYY-MM-DD (UTC) -> USD per ETH
	monthly map[string]map[string]float64 // YYYY-MM -> code -> units per USD
}

// New creates a Provider over a static monthly table. The daily series
// starts empty until FetchDailySeries populates it.
func New(monthly map[string]map[string]float64, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if monthly == nil {
		monthly = map[string]map[string]float64{}
	}
	return &Provider{
		logger:  logger,
		monthly: monthly,
		daily:   map[string]float64{},
	}
}

// DailyRate returns the ETH/USD rate for the UTC day of t. A day outside
// the series falls back to the entry with minimum absolute date distance
// (first one scanned wins ties); an empty series yields 0.
func (p *Provider) DailyRate(t time.Time) float64 {
	key := t.UTC().Format(dayKeyFormat)
	if rate, ok := p.daily[key]; ok {
		return rate
	}
	if len(p.daily) == 0 {
		return 0
	}

	target := t.UTC()
	bestDist := time.Duration(math.MaxInt64)
	best := 0.0
	for day, rate := range p.daily {
		d, err := time.ParseInLocation(dayKeyFormat, day, time.UTC)
		if err != nil {
			continue
		}
		dist := target.Sub(d)
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			bestDist = dist
			best = rate
		}
	}

	p.logger.Debug("daily rate fallback", "date", key, "rate", best)
	return best
}

// MonthlyRate returns the units-per-USD rate for currency in month
// (YYYY-MM). A month outside the table falls back to the latest available
// month; an unknown currency yields the 0 sentinel.
func (p *Provider) MonthlyRate(month, currency string) float64 {
	table, ok := p.monthly[month]
	if !ok {
		latest := ""
		for m := range p.monthly {
			if m > latest {
				latest = m
			}
		}
		if latest == "" {
			return 0
		}
		table = p.monthly[latest]
	}
	return table[currency]
}

// ToUSD converts amount in the given currency at time t. ok is false when
// no rate can price the amount; callers must then exclude the record from
// financial totals.
func (p *Provider) ToUSD(amount float64, currency string, t time.Time) (usd float64, ok bool) {
	switch {
	case isStable(currency):
		return amount, true

	case currency == "ETH":
		rate := p.DailyRate(t)
		if rate == 0 {
			p.logger.Warn("no daily rate for date", "date", t.UTC().Format(dayKeyFormat))
			return 0, false
		}
		return amount * rate, true

	case currency == "SOL":
		// No series available for SOL; always unpriceable.
		return 0, false

	default:
		month := t.Local().Format(monthKeyFormat)
		rate := p.MonthlyRate(month, currency)
		if rate == 0 {
			p.logger.Warn("no monthly rate for currency", "month", month, "currency", currency)
			return 0, false
		}
		// The table stores units per USD, so divide.
		return amount / rate, true
	}
}
