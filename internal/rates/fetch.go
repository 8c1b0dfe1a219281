package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultDailyURL fetches roughly three years of ETH/USD closes; the
// endpoint caps a single request at 2000 days so 1095 is safe.
const DefaultDailyURL = "https://min-api.cryptocompare.com/data/v2/histoday?fsym=ETH&tsym=USD&limit=1095"

// histodayResponse is the CryptoCompare history envelope.
type histodayResponse struct {
	Data struct {
		Data []struct {
			Time  int64   `json:"time"`
			Close float64 `json:"close"`
		} `json:"Data"`
	} `json:"Data"`
}

// FetchDailySeries populates the daily ETH/USD series from url. On failure
// the provider keeps its current (possibly empty) series; the caller logs
// and the run continues with daily lookups unpriceable.
func (p *Provider) FetchDailySeries(ctx context.Context, client *http.Client, url string) error {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if url == "" {
		url = DefaultDailyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch daily series: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read daily series: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch daily series: status %d", resp.StatusCode)
	}

	var parsed histodayResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("decode daily series: %w", err)
	}
	if len(parsed.Data.Data) == 0 {
		return fmt.Errorf("daily series response carried no data")
	}

	series := make(map[string]float64, len(parsed.Data.Data))
	for _, day := range parsed.Data.Data {
		key := time.Unix(day.Time, 0).UTC().Format(dayKeyFormat)
		series[key] = day.Close
	}
	p.daily = series

	p.logger.Info("daily rate series loaded", "days", len(series))
	return nil
}

// LoadMonthlyTable reads the static month -> currency -> rate table.
func LoadMonthlyTable(path string) (map[string]map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table: %w", err)
	}

	table := map[string]map[string]float64{}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode rate table: %w", err)
	}
	return table, nil
}
