package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// roundResultEvent marks mini-game items, which carry an "event" field
// instead of a "type" tag.
const roundResultEvent = "player-round-result"

// rawItem is the union of every item shape the platform returns. Absent
// fields stay zero; Classify decides which ones matter.
type rawItem struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Event      string    `json:"event"`
	CreateTime time.Time `json:"createTime"`

	Game             *Game `json:"game"`
	ProviderCurrency *struct {
		Code   string `json:"code"`
		Amount Amount `json:"amount"`
	} `json:"providerCurrency"`
	SessionID int64 `json:"sessionId"`
	RoundID   int64 `json:"roundId"`

	Data json.RawMessage `json:"data"`

	Claimed      *bool  `json:"claimed"`
	Status       string `json:"status"`
	CashType     string `json:"cashType"`
	Amount       Amount `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// hiloData is the round payload of the HILO mini-game.
type hiloData struct {
	LifeNumber     *int   `json:"lifeNumber"`
	SourceCurrency string `json:"sourceCurrency"`
	BetAmount      Amount `json:"betAmount"`
	PrizeAmount    Amount `json:"prizeAmount"`
}

// rektData is the round payload of the crash mini-game.
type rektData struct {
	PlayerLastRound *struct {
		BetAmount Amount `json:"betAmount"`
		Payout    Amount `json:"payout"`
	} `json:"playerLastRound"`
}

// prizeData is the payload of leaderboard wins and tips.
type prizeData struct {
	PrizeTotal *struct {
		Amount       Amount `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"prizeTotal"`
	Amount Amount `json:"amount"`
}

// Classify parses one raw page item into a tagged Record. It never fails on
// unrecognized shapes: those come back with Kind KindUnknown so callers can
// log and move on. A parse error means the blob itself is damaged.
func Classify(raw json.RawMessage) (Record, error) {
	var item rawItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return Record{}, fmt.Errorf("decode item: %w", err)
	}

	rec := Record{
		ID:         item.ID,
		CreateTime: item.CreateTime,
	}

	// Mini-game results have no "type" tag; the presence of a round-result
	// event is the discriminator.
	if item.Event != "" {
		if item.Event != roundResultEvent {
			rec.Kind = KindUnknown
			return rec, nil
		}
		return classifyMiniGame(item, rec)
	}

	switch Kind(item.Type) {
	case KindBuyIn, KindPayOut, KindRollback:
		rec.Kind = Kind(item.Type)
		if item.Game != nil {
			rec.Game = *item.Game
		}
		if item.ProviderCurrency != nil {
			rec.Currency = item.ProviderCurrency.Code
			rec.Amount = float64(item.ProviderCurrency.Amount)
		}
		rec.SessionID = item.SessionID
		rec.RoundID = item.RoundID

	case KindSweepstakeEntry, KindTradingOrderClosed:
		rec.Kind = Kind(item.Type)

	case KindScheduledLeaderboardWin:
		rec.Kind = KindScheduledLeaderboardWin
		var d prizeData
		if err := json.Unmarshal(item.Data, &d); err != nil {
			return Record{}, fmt.Errorf("decode leaderboard win payload: %w", err)
		}
		if d.PrizeTotal != nil {
			rec.Amount = float64(d.PrizeTotal.Amount)
			rec.Currency = d.PrizeTotal.CurrencyCode
		}

	case KindTipReceived:
		rec.Kind = KindTipReceived
		var d prizeData
		if err := json.Unmarshal(item.Data, &d); err != nil {
			return Record{}, fmt.Errorf("decode tip payload: %w", err)
		}
		rec.Amount = float64(d.Amount)
		// Tips arrive without a currency code; observed traffic is ETH only.
		rec.Currency = "ETH"

	case KindCash, KindFunds, KindInventoryFunds:
		rec.Kind = Kind(item.Type)
		rec.Amount = float64(item.Amount)
		rec.Currency = item.CurrencyCode
		rec.Claimed = item.Claimed
		rec.Status = item.Status
		rec.CashType = item.CashType

	default:
		rec.Kind = KindUnknown
	}

	return rec, nil
}

func classifyMiniGame(item rawItem, rec Record) (Record, error) {
	rec.Kind = KindMiniGameResult
	// Mini-game sources have no numeric id; createTime doubles as the
	// monotonic identifier downstream.
	rec.ID = item.CreateTime.UnixMilli()

	var hilo hiloData
	if err := json.Unmarshal(item.Data, &hilo); err != nil {
		return Record{}, fmt.Errorf("decode mini-game payload: %w", err)
	}

	if hilo.LifeNumber != nil {
		rec.Mini = &MiniGame{
			Name:     MiniGameHILO,
			Bet:      float64(hilo.BetAmount),
			Prize:    float64(hilo.PrizeAmount),
			Currency: hilo.SourceCurrency,
		}
		return rec, nil
	}

	var rekt rektData
	if err := json.Unmarshal(item.Data, &rekt); err != nil {
		return Record{}, fmt.Errorf("decode crash payload: %w", err)
	}
	mini := &MiniGame{Name: MiniGameREKT}
	if rekt.PlayerLastRound != nil {
		mini.Bet = float64(rekt.PlayerLastRound.BetAmount)
		mini.Prize = float64(rekt.PlayerLastRound.Payout)
	}
	rec.Mini = mini
	return rec, nil
}
