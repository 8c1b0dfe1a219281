package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Kind discriminates the event-record variants observed upstream.
type Kind string

const (
	KindBuyIn                   Kind = "BuyIn"
	KindPayOut                  Kind = "PayOut"
	KindRollback                Kind = "Rollback"
	KindSweepstakeEntry         Kind = "SweepstakeEntry"
	KindScheduledLeaderboardWin Kind = "ScheduledLeaderboardWin"
	KindTipReceived             Kind = "TipReceived"
	KindCash                    Kind = "Cash"
	KindFunds                   Kind = "Funds"
	KindInventoryFunds          Kind = "InventoryFunds"
	KindTradingOrderClosed      Kind = "TradingOrderClosed"
	KindMiniGameResult          Kind = "MiniGameResult"
	KindUnknown                 Kind = "Unknown"
)

// Mini-game names reported through round-result events.
const (
	MiniGameHILO = "HILO"
	MiniGameREKT = "REKT"
)

// Page is the upstream pagination envelope. Items stay raw until a reader
// classifies them; stored blobs carry exactly this shape.
type Page struct {
	Items      []json.RawMessage `json:"items"`
	PageCount  int               `json:"pageCount"`
	TotalCount int               `json:"totalCount"`
}

// Game describes the game a wagering record belongs to.
type Game struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Provider  string  `json:"provider"`
	Thumbnail string  `json:"thumbnail"`
	Studio    *Studio `json:"studio,omitempty"`
}

// Studio is the optional studio behind a game.
type Studio struct {
	Name string `json:"name"`
}

// MiniGame carries the payload of a platform mini-game round result.
type MiniGame struct {
	Name     string  // MiniGameHILO or MiniGameREKT
	Bet      float64 // stake in source currency
	Prize    float64 // payout in source currency, 0 when the round busted
	Currency string  // source currency code (HILO only)
}

// Record is one classified unit of platform activity. Only the fields
// relevant to the record's Kind are populated; everything else is zero.
type Record struct {
	Kind       Kind
	ID         int64
	CreateTime time.Time

	// Wagering (BuyIn / PayOut / Rollback)
	Game      Game
	Currency  string
	Amount    float64
	SessionID int64
	RoundID   int64

	// Rewards (ScheduledLeaderboardWin / TipReceived / Cash / Funds)
	Claimed  *bool
	Status   string
	CashType string

	// Mini-game round result
	Mini *MiniGame
}

// IsClaimed reports whether a Cash record was claimed. Records without the
// flag count as claimed; the upstream only sets it on unclaimed items.
func (r *Record) IsClaimed() bool {
	return r.Claimed == nil || *r.Claimed
}

// Amount decodes a JSON value that upstream serializes either as a number
// or as a numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}
