package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rickgao/metawin-stats/internal/aggregate"
)

// ============================================================================
// Row types
// ============================================================================

// GameRow is one game's line in the report.
type GameRow struct {
	Game         string
	Thumbnail    string
	Plays        int
	Payouts      int
	TotalWagered float64
	AverageBet   float64
	BestMulti    float64
	BestWinUSD   float64
	NetUSD       float64
	RTP          float64
}

// ProviderRow is one provider's line.
type ProviderRow struct {
	Provider     string
	Plays        int
	TotalWagered float64
	AverageBet   float64
	NetUSD       float64
	RTP          float64
}

// DimensionRow serves the game-type and currency breakdowns.
type DimensionRow struct {
	Label        string
	Plays        int
	TotalWagered float64
	AverageBet   float64
	NetUSD       float64
	RTP          float64
}

// SessionRow is one wagering session's line.
type SessionRow struct {
	SessionID    int64
	Day          string
	Plays        int
	AverageBet   float64
	TotalWagered float64
	NetUSD       float64
	RTP          float64
	TimePlayed   string
}

// DayRow is one calendar day's line.
type DayRow struct {
	Day          string
	Plays        int
	AverageBet   float64
	TotalWagered float64
	NetUSD       float64
	RTP          float64
}

// MonthRow is one calendar month's line, with its reward total folded in.
type MonthRow struct {
	Month        string
	Plays        int
	AverageBet   float64
	TotalWagered float64
	Rewards      float64
	NetUSD       float64
	RTP          float64
}

// Report is the full prepared report.
type Report struct {
	Games      []GameRow
	Providers  []ProviderRow
	GameTypes  []DimensionRow
	Currencies []DimensionRow
	Sessions   []SessionRow
	Days       []DayRow
	Months     []MonthRow
	Overall    aggregate.OverallStats
}

// Prepare derives every report row set from one aggregation result. Zero
// plays yields an average bet of 0 rather than NaN; zero losses yield an
// RTP of 0 rather than an error.
func Prepare(res *aggregate.Result) *Report {
	rep := &Report{Overall: *res.Overall}

	for name, gs := range res.Games {
		avg := safeAverage(gs.LossesUSD, gs.Plays)
		thumbnail := ""
		if meta := res.Meta[name]; meta != nil {
			thumbnail = meta.Thumbnail
		}
		rep.Games = append(rep.Games, GameRow{
			Game:         name,
			Thumbnail:    thumbnail,
			Plays:        gs.Plays,
			Payouts:      gs.Payouts,
			TotalWagered: avg * float64(gs.Plays),
			AverageBet:   avg,
			BestMulti:    gs.BestMulti,
			BestWinUSD:   gs.BestWinUSD,
			NetUSD:       gs.NetUSD,
			RTP:          winLossRTP(gs.WinsUSD, gs.LossesUSD),
		})
	}
	sort.Slice(rep.Games, func(i, j int) bool {
		return rep.Games[i].Game < rep.Games[j].Game
	})

	for label, ps := range res.Providers {
		avg := safeAverage(ps.LossesUSD, ps.Plays)
		rep.Providers = append(rep.Providers, ProviderRow{
			Provider:     label,
			Plays:        ps.Plays,
			TotalWagered: avg * float64(ps.Plays),
			AverageBet:   avg,
			NetUSD:       ps.NetUSD,
			RTP:          winLossRTP(ps.WinsUSD, ps.LossesUSD),
		})
	}
	sort.Slice(rep.Providers, func(i, j int) bool {
		return rep.Providers[i].Provider < rep.Providers[j].Provider
	})

	rep.GameTypes = dimensionRows(res.GameTypes)
	rep.Currencies = dimensionRows(res.Currencies)

	for id, ss := range res.Sessions {
		avg := safeAverage(ss.BetSize, ss.Plays)
		wagered := avg * float64(ss.Plays)
		rep.Sessions = append(rep.Sessions, SessionRow{
			SessionID:    id,
			Day:          ss.Day,
			Plays:        ss.Plays,
			AverageBet:   avg,
			TotalWagered: wagered,
			NetUSD:       ss.NetUSD,
			RTP:          turnoverRTP(ss.NetUSD, wagered, avg),
			TimePlayed:   formatPlayTime(ss.Duration),
		})
	}
	sort.Slice(rep.Sessions, func(i, j int) bool {
		return rep.Sessions[i].SessionID > rep.Sessions[j].SessionID
	})

	type monthAccum struct {
		plays   int
		stake   float64
		wagered float64
		net     float64
	}
	months := map[string]*monthAccum{}

	for day, ds := range res.Days {
		avg := safeAverage(ds.BetSize, ds.Plays)
		wagered := avg * float64(ds.Plays)
		rep.Days = append(rep.Days, DayRow{
			Day:          day,
			Plays:        ds.Plays,
			AverageBet:   avg,
			TotalWagered: wagered,
			NetUSD:       ds.NetUSD,
			RTP:          turnoverRTP(ds.NetUSD, wagered, avg),
		})

		key := day[:7]
		m := months[key]
		if m == nil {
			m = &monthAccum{}
			months[key] = m
		}
		m.plays += ds.Plays
		m.stake += ds.BetSize
		m.wagered += wagered
		m.net += ds.NetUSD
	}
	sort.Slice(rep.Days, func(i, j int) bool {
		return rep.Days[i].Day > rep.Days[j].Day
	})

	// Months that only received rewards still get a row.
	for month := range res.RewardsByMonth {
		if months[month] == nil {
			months[month] = &monthAccum{}
		}
	}
	for key, m := range months {
		avg := safeAverage(m.stake, m.plays)
		rep.Months = append(rep.Months, MonthRow{
			Month:        key,
			Plays:        m.plays,
			AverageBet:   avg,
			TotalWagered: m.wagered,
			Rewards:      res.RewardsByMonth[key],
			NetUSD:       m.net,
			RTP:          turnoverRTP(m.net, m.wagered, avg),
		})
	}
	sort.Slice(rep.Months, func(i, j int) bool {
		return rep.Months[i].Month > rep.Months[j].Month
	})

	return rep
}

func dimensionRows(stats map[string]*aggregate.DimensionStats) []DimensionRow {
	rows := make([]DimensionRow, 0, len(stats))
	for label, ds := range stats {
		avg := safeAverage(ds.LossesUSD, ds.Plays)
		rows = append(rows, DimensionRow{
			Label:        label,
			Plays:        ds.Plays,
			TotalWagered: avg * float64(ds.Plays),
			AverageBet:   avg,
			NetUSD:       ds.NetUSD,
			RTP:          winLossRTP(ds.WinsUSD, ds.LossesUSD),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Label < rows[j].Label
	})
	return rows
}

func safeAverage(stake float64, plays int) float64 {
	if plays == 0 {
		return 0
	}
	return stake / float64(plays)
}

// winLossRTP is wins over losses; 0 when nothing was lost.
func winLossRTP(wins, losses float64) float64 {
	if losses == 0 {
		return 0
	}
	return wins / losses * 100
}

// turnoverRTP expresses net against turnover for the time-bucketed rows.
func turnoverRTP(net, wagered, averageBet float64) float64 {
	if averageBet <= 0 {
		return 0
	}
	return (net + wagered) / wagered * 100
}

// formatPlayTime renders a session duration as whole hours and minutes,
// rounding the minute count up.
func formatPlayTime(d time.Duration) string {
	minutes := int(math.Ceil(d.Minutes()))
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
