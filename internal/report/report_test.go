package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/metawin-stats/internal/aggregate"
)

func emptyResult() *aggregate.Result {
	return &aggregate.Result{
		Games:          map[string]*aggregate.GameStats{},
		Providers:      map[string]*aggregate.DimensionStats{},
		GameTypes:      map[string]*aggregate.DimensionStats{},
		Currencies:     map[string]*aggregate.DimensionStats{},
		Days:           map[string]*aggregate.DayStats{},
		Sessions:       map[int64]*aggregate.SessionStats{},
		Overall:        &aggregate.OverallStats{},
		RewardsByMonth: map[string]float64{},
		Meta:           map[string]*aggregate.GameMeta{},
	}
}

func TestPrepareRTPBoundary(t *testing.T) {
	res := emptyResult()
	// Payout arrived without any tracked stake.
	res.Games["Orphan Payout"] = &aggregate.GameStats{Payouts: 1, WinsUSD: 12, NetUSD: 12}
	res.Meta["Orphan Payout"] = &aggregate.GameMeta{}

	rep := Prepare(res)
	require.Len(t, rep.Games, 1)

	row := rep.Games[0]
	assert.Zero(t, row.RTP)
	assert.Zero(t, row.AverageBet)
	assert.Zero(t, row.TotalWagered)
	assert.False(t, math.IsNaN(row.AverageBet))
}

func TestPrepareGameRows(t *testing.T) {
	res := emptyResult()
	res.Games["Sugar Rush"] = &aggregate.GameStats{
		Plays: 4, Payouts: 2,
		WinsUSD: 50, LossesUSD: 40, NetUSD: 10,
		BestMulti: 12.5, BestWinUSD: 30,
	}
	res.Meta["Sugar Rush"] = &aggregate.GameMeta{Thumbnail: "sr.png"}

	rep := Prepare(res)
	require.Len(t, rep.Games, 1)

	row := rep.Games[0]
	assert.Equal(t, "Sugar Rush", row.Game)
	assert.Equal(t, "sr.png", row.Thumbnail)
	assert.InDelta(t, 10, row.AverageBet, 1e-9)
	assert.InDelta(t, 40, row.TotalWagered, 1e-9)
	assert.InDelta(t, 125, row.RTP, 1e-9)
}

func TestPrepareProviderSorting(t *testing.T) {
	res := emptyResult()
	for _, label := range []string{"Pragmatic Play", "Evolution", "Hacksaw"} {
		res.Providers[label] = &aggregate.DimensionStats{Plays: 1, LossesUSD: 10}
	}

	rep := Prepare(res)
	require.Len(t, rep.Providers, 3)

	assert.Equal(t, "Evolution", rep.Providers[0].Provider)
	assert.Equal(t, "Hacksaw", rep.Providers[1].Provider)
	assert.Equal(t, "Pragmatic Play", rep.Providers[2].Provider)
}

func TestPrepareSessionRows(t *testing.T) {
	res := emptyResult()
	res.Sessions[12] = &aggregate.SessionStats{
		NetUSD: -10, Plays: 2, BetSize: 20,
		Day:      "2024-06-15",
		Duration: 2*time.Hour + 4*time.Minute + 30*time.Second,
	}
	res.Sessions[99] = &aggregate.SessionStats{
		NetUSD: 5, Plays: 1, BetSize: 5,
		Day: "2024-06-16",
	}

	rep := Prepare(res)
	require.Len(t, rep.Sessions, 2)

	// Descending session id.
	assert.Equal(t, int64(99), rep.Sessions[0].SessionID)
	assert.Equal(t, int64(12), rep.Sessions[1].SessionID)

	row := rep.Sessions[1]
	assert.InDelta(t, 10, row.AverageBet, 1e-9)
	assert.InDelta(t, 20, row.TotalWagered, 1e-9)
	// (net + wagered) / wagered: (-10 + 20) / 20.
	assert.InDelta(t, 50, row.RTP, 1e-9)
	// 124.5 minutes round up to 125.
	assert.Equal(t, "2h 5m", row.TimePlayed)

	assert.Equal(t, "0h 0m", rep.Sessions[0].TimePlayed)
}

func TestPrepareDayAndMonthRows(t *testing.T) {
	res := emptyResult()
	res.Days["2024-06-15"] = &aggregate.DayStats{NetUSD: -10, Plays: 2, BetSize: 20}
	res.Days["2024-06-16"] = &aggregate.DayStats{NetUSD: 5, Plays: 1, BetSize: 10}
	res.Days["2024-05-31"] = &aggregate.DayStats{NetUSD: 0, Plays: 1, BetSize: 5}
	res.RewardsByMonth["2024-06"] = 30
	res.RewardsByMonth["2024-01"] = 100

	rep := Prepare(res)

	require.Len(t, rep.Days, 3)
	assert.Equal(t, "2024-06-16", rep.Days[0].Day)
	assert.Equal(t, "2024-06-15", rep.Days[1].Day)
	assert.Equal(t, "2024-05-31", rep.Days[2].Day)

	require.Len(t, rep.Months, 3)
	assert.Equal(t, "2024-06", rep.Months[0].Month)
	assert.Equal(t, "2024-05", rep.Months[1].Month)
	assert.Equal(t, "2024-01", rep.Months[2].Month)

	june := rep.Months[0]
	assert.Equal(t, 3, june.Plays)
	assert.InDelta(t, 30, june.TotalWagered, 1e-9)
	assert.InDelta(t, 10, june.AverageBet, 1e-9)
	assert.InDelta(t, -5, june.NetUSD, 1e-9)
	assert.InDelta(t, 30, june.Rewards, 1e-9)

	may := rep.Months[1]
	assert.Zero(t, may.Rewards)

	// A reward-only month still gets a row.
	january := rep.Months[2]
	assert.Zero(t, january.Plays)
	assert.InDelta(t, 100, january.Rewards, 1e-9)
	assert.Zero(t, january.RTP)
}

func TestPrepareDimensionRows(t *testing.T) {
	res := emptyResult()
	res.GameTypes["Slots"] = &aggregate.DimensionStats{Plays: 2, WinsUSD: 15, LossesUSD: 20, NetUSD: -5}
	res.Currencies["ETH"] = &aggregate.DimensionStats{Plays: 1, LossesUSD: 10, NetUSD: -10}
	res.Currencies["USD"] = &aggregate.DimensionStats{Plays: 1, LossesUSD: 5, NetUSD: -5}

	rep := Prepare(res)

	require.Len(t, rep.GameTypes, 1)
	assert.InDelta(t, 75, rep.GameTypes[0].RTP, 1e-9)

	require.Len(t, rep.Currencies, 2)
	assert.Equal(t, "ETH", rep.Currencies[0].Label)
	assert.Equal(t, "USD", rep.Currencies[1].Label)
}
