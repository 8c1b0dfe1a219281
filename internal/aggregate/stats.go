package aggregate

import "time"

// ============================================================================
// Accumulator Set
// ============================================================================

// GameStats accumulates per-game totals plus the round watermarks.
type GameStats struct {
	Plays      int
	Payouts    int
	WinsUSD    float64
	LossesUSD  float64
	NetUSD     float64
	BestMulti  float64
	BestWinUSD float64
}

// DimensionStats is the shared accumulator shape for the provider,
// game-type and currency dimensions.
type DimensionStats struct {
	Plays     int
	Payouts   int
	WinsUSD   float64
	LossesUSD float64
	NetUSD    float64
}

// DayStats accumulates one calendar day of wagering.
type DayStats struct {
	NetUSD  float64
	Plays   int
	BetSize float64
}

// SessionStats accumulates one wagering session. DateMin and DateMax track
// the first and last observed activity; Duration is re-derived on every
// update.
type SessionStats struct {
	NetUSD   float64
	Plays    int
	BetSize  float64
	Day      string
	DateMin  time.Time
	DateMax  time.Time
	Duration time.Duration
}

// OverallStats holds the account-wide totals.
type OverallStats struct {
	WinsUSD        float64
	LossesUSD      float64
	LossesUSD7Days float64
	NetUSD         float64
	Rewards        float64
}

// GameMeta carries presentation data keyed by game name. The first
// thumbnail observed for a game wins.
type GameMeta struct {
	Thumbnail string
}

// Result is the complete accumulator set of one aggregation pass.
type Result struct {
	Games          map[string]*GameStats
	Providers      map[string]*DimensionStats
	GameTypes      map[string]*DimensionStats
	Currencies     map[string]*DimensionStats
	Days           map[string]*DayStats
	Sessions       map[int64]*SessionStats
	Overall        *OverallStats
	RewardsByMonth map[string]float64
	Meta           map[string]*GameMeta
}

func newResult() *Result {
	return &Result{
		Games:          map[string]*GameStats{},
		Providers:      map[string]*DimensionStats{},
		GameTypes:      map[string]*DimensionStats{},
		Currencies:     map[string]*DimensionStats{},
		Days:           map[string]*DayStats{},
		Sessions:       map[int64]*SessionStats{},
		Overall:        &OverallStats{},
		RewardsByMonth: map[string]float64{},
		Meta:           map[string]*GameMeta{},
	}
}

// Accumulators are created lazily on first reference and never removed
// during a pass.

func (r *Result) game(name string) *GameStats {
	s := r.Games[name]
	if s == nil {
		s = &GameStats{}
		r.Games[name] = s
	}
	return s
}

func (r *Result) provider(label string) *DimensionStats {
	s := r.Providers[label]
	if s == nil {
		s = &DimensionStats{}
		r.Providers[label] = s
	}
	return s
}

func (r *Result) gameType(name string) *DimensionStats {
	s := r.GameTypes[name]
	if s == nil {
		s = &DimensionStats{}
		r.GameTypes[name] = s
	}
	return s
}

func (r *Result) currency(code string) *DimensionStats {
	s := r.Currencies[code]
	if s == nil {
		s = &DimensionStats{}
		r.Currencies[code] = s
	}
	return s
}

func (r *Result) day(key string) *DayStats {
	s := r.Days[key]
	if s == nil {
		s = &DayStats{}
		r.Days[key] = s
	}
	return s
}

// session returns the session accumulator for id, folding t into the
// min/max activity bounds as a side effect.
func (r *Result) session(id int64, day string, t time.Time) *SessionStats {
	s := r.Sessions[id]
	if s == nil {
		s = &SessionStats{Day: day, DateMin: t, DateMax: t}
		r.Sessions[id] = s
		return s
	}
	if t.Before(s.DateMin) {
		s.DateMin = t
	}
	if t.After(s.DateMax) {
		s.DateMax = t
	}
	s.Duration = s.DateMax.Sub(s.DateMin)
	return s
}

func (r *Result) meta(name, thumbnail string) {
	if _, ok := r.Meta[name]; !ok {
		r.Meta[name] = &GameMeta{Thumbnail: thumbnail}
	}
}
