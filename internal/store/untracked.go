package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rickgao/metawin-stats/internal/model"
)

// LoadUntrackedGames reads a manually maintained page of wagering records
// that never appeared in the fetched history (support compensations,
// delisted games). The page joins the primary aggregation input. A missing
// file or an empty page yields nil.
func LoadUntrackedGames(path string) (*model.Page, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read untracked games: %w", err)
	}

	var page model.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode untracked games: %w", err)
	}
	if len(page.Items) == 0 {
		return nil, nil
	}
	return &page, nil
}

// LoadUntrackedRewards reads a manual month -> USD reward override map used
// to seed the reward-by-month accumulator. Absent or malformed files yield
// an empty map; hand-edited JSON must never take the run down.
func LoadUntrackedRewards(path string) map[string]float64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]float64{}
	}

	rewards := map[string]float64{}
	if err := json.Unmarshal(data, &rewards); err != nil {
		return map[string]float64{}
	}
	return rewards
}
