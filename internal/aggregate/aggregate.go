package aggregate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/rickgao/metawin-stats/internal/model"
	"github.com/rickgao/metawin-stats/internal/rates"
)

// batchSize bounds how many pages are folded between progress reports.
// Batch boundaries have no effect on totals.
const batchSize = 25

// providerMetawin labels mini-game results, which report no provider of
// their own.
const providerMetawin = "Metawinstudios"

// Mini-games carry no game metadata; thumbnails are pinned here.
const (
	hiloThumbnailURL = "https://content.prod.platform.mwapp.io/games/NEWHILO.png"
	rektThumbnailURL = "https://content.prod.platform.mwapp.io/games/NEWREKT.png"
)

// Day and month bucketing follows the local clock; only the daily crypto
// rate series is keyed in UTC.
const (
	dayKeyFormat   = "2006-01-02"
	monthKeyFormat = "2006-01"
)

// roundLegs pairs the two legs of one game round while both are in flight.
// Discarded at end of pass, never persisted.
type roundLegs struct {
	buy    float64
	payout float64
}

// Aggregator folds persisted pages into a fresh Result per pass.
type Aggregator struct {
	rates     *rates.Provider
	logger    *slog.Logger
	now       time.Time
	overrides map[string]float64
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithNow pins the reference time for the trailing-7-day stake window.
func WithNow(t time.Time) Option {
	return func(a *Aggregator) {
		a.now = t
	}
}

// WithRewardOverrides seeds the reward-by-month mapping with manual
// adjustments (compensations not tracked through the reward sources)
// before any record is folded.
func WithRewardOverrides(m map[string]float64) Option {
	return func(a *Aggregator) {
		a.overrides = m
	}
}

// New creates an Aggregator pricing amounts through rp.
func New(rp *rates.Provider, logger *slog.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Aggregator{
		rates:  rp,
		logger: logger,
		now:    time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate folds all pages into one accumulator set. Primary pages must
// hold the game-action and mini-game records, secondary pages the reward,
// claim and notification records; primary is always folded first. An error
// means a blob could not be decoded, which is fatal for the pass.
func (a *Aggregator) Aggregate(primary, secondary []model.Page) (*Result, error) {
	a.logger.Info("data processing starting",
		"primary_pages", len(primary),
		"secondary_pages", len(secondary),
	)

	res := newResult()
	for month, usd := range a.overrides {
		res.RewardsByMonth[month] = usd
	}

	rounds := map[int64]*roundLegs{}

	all := make([]model.Page, 0, len(primary)+len(secondary))
	all = append(all, primary...)
	all = append(all, secondary...)

	for start := 0; start < len(all); start += batchSize {
		end := min(start+batchSize, len(all))
		for _, page := range all[start:end] {
			for _, raw := range page.Items {
				rec, err := model.Classify(raw)
				if err != nil {
					return nil, fmt.Errorf("classify record: %w", err)
				}
				a.fold(res, rounds, &rec)
			}
		}
		a.logger.Info("processing stats",
			"percent", fmt.Sprintf("%.2f", float64(end)/float64(len(all))*100),
		)
	}

	for _, usd := range res.RewardsByMonth {
		res.Overall.Rewards += usd
	}

	a.logger.Info("data processing completed")
	return res, nil
}

func (a *Aggregator) fold(res *Result, rounds map[int64]*roundLegs, rec *model.Record) {
	switch rec.Kind {
	case model.KindMiniGameResult:
		a.foldMiniGame(res, rec)

	case model.KindBuyIn, model.KindPayOut:
		a.foldWager(res, rounds, rec)

	case model.KindSweepstakeEntry:
		// Competition entries have no financial effect.

	case model.KindRollback:
		a.logger.Info("transaction rollback encountered", "game_type", rec.Game.Type)

	case model.KindScheduledLeaderboardWin, model.KindTipReceived,
		model.KindCash, model.KindFunds, model.KindInventoryFunds:
		a.foldReward(res, rec)

	case model.KindTradingOrderClosed:
		// TODO: fold HODL trading rounds once the payload is understood.
		a.logger.Debug("trading order record skipped", "id", rec.ID)

	default:
		a.logger.Debug("unrecognized record skipped", "id", rec.ID)
	}
}

func (a *Aggregator) foldMiniGame(res *Result, rec *model.Record) {
	m := rec.Mini
	if m == nil {
		return
	}
	// HILO rounds settle in a source currency; only USD rounds count.
	if m.Name == model.MiniGameHILO && m.Currency != rates.ReferenceCurrency {
		return
	}

	thumb := hiloThumbnailURL
	if m.Name == model.MiniGameREKT {
		thumb = rektThumbnailURL
	}
	res.meta(m.Name, thumb)

	gs := res.game(m.Name)
	ps := res.provider(providerMetawin)
	gt := res.gameType(m.Name)
	cs := res.currency(rates.ReferenceCurrency)
	ds := res.day(rec.CreateTime.Local().Format(dayKeyFormat))

	if m.Bet > 0 {
		if multi := m.Prize / m.Bet; multi > gs.BestMulti {
			gs.BestMulti = multi
		}
	}
	if m.Prize > gs.BestWinUSD {
		gs.BestWinUSD = m.Prize
	}

	a.addTrailingStake(res, rec.CreateTime, m.Bet)

	prizeDiff := m.Prize - m.Bet
	profit := prizeDiff > 0

	gs.Plays++
	gs.LossesUSD += m.Bet
	gs.NetUSD += prizeDiff

	ps.Plays++
	ps.LossesUSD += m.Bet
	ps.NetUSD += prizeDiff

	gt.Plays++
	gt.LossesUSD += m.Bet
	gt.NetUSD += prizeDiff

	cs.Plays++
	cs.LossesUSD += m.Bet
	cs.NetUSD += prizeDiff

	res.Overall.LossesUSD += m.Bet
	res.Overall.NetUSD += prizeDiff

	ds.Plays++
	ds.BetSize += m.Bet
	ds.NetUSD += prizeDiff

	if profit {
		gs.Payouts++
		gs.WinsUSD += prizeDiff
		ps.Payouts++
		ps.WinsUSD += prizeDiff
		gt.Payouts++
		gt.WinsUSD += prizeDiff
		cs.Payouts++
		cs.WinsUSD += prizeDiff
		res.Overall.WinsUSD += prizeDiff
	}
}

func (a *Aggregator) foldWager(res *Result, rounds map[int64]*roundLegs, rec *model.Record) {
	usd, ok := a.rates.ToUSD(rec.Amount, rec.Currency, rec.CreateTime)
	if !ok {
		a.logger.Warn("unpriceable wager skipped",
			"currency", rec.Currency,
			"id", rec.ID,
		)
		return
	}

	name := normalizeGameName(rec.Game)
	label := providerLabel(rec.Game.Provider, rec.Game.Studio)
	day := rec.CreateTime.Local().Format(dayKeyFormat)

	res.meta(name, rec.Game.Thumbnail)
	gs := res.game(name)
	ps := res.provider(label)
	gt := res.gameType(rec.Game.Type)
	cs := res.currency(rec.Currency)
	ds := res.day(day)
	ss := res.session(rec.SessionID, day, rec.CreateTime)

	legs := rounds[rec.RoundID]
	if legs == nil {
		legs = &roundLegs{}
		rounds[rec.RoundID] = legs
	}
	if rec.Kind == model.KindBuyIn {
		legs.buy = usd
	} else {
		legs.payout = usd
	}
	// Both legs present: settle the round's multiplier watermarks. Strict
	// greater-than, so the first value wins ties.
	if legs.buy > 0 && legs.payout > 0 {
		if multi := legs.payout / legs.buy; multi > gs.BestMulti {
			gs.BestMulti = multi
		}
		if legs.payout > gs.BestWinUSD {
			gs.BestWinUSD = legs.payout
		}
	}

	if rec.Kind == model.KindBuyIn {
		a.addTrailingStake(res, rec.CreateTime, usd)

		gs.Plays++
		gs.LossesUSD += usd
		gs.NetUSD -= usd

		ps.Plays++
		ps.LossesUSD += usd
		ps.NetUSD -= usd

		gt.Plays++
		gt.LossesUSD += usd
		gt.NetUSD -= usd

		cs.Plays++
		cs.LossesUSD += usd
		cs.NetUSD -= usd

		res.Overall.LossesUSD += usd
		res.Overall.NetUSD -= usd

		ds.Plays++
		ds.BetSize += usd
		ds.NetUSD -= usd

		ss.Plays++
		ss.BetSize += usd
		ss.NetUSD -= usd
	} else {
		gs.Payouts++
		gs.WinsUSD += usd
		gs.NetUSD += usd

		ps.Payouts++
		ps.WinsUSD += usd
		ps.NetUSD += usd

		gt.Payouts++
		gt.WinsUSD += usd
		gt.NetUSD += usd

		cs.Payouts++
		cs.WinsUSD += usd
		cs.NetUSD += usd

		res.Overall.WinsUSD += usd
		res.Overall.NetUSD += usd

		ds.NetUSD += usd
		ss.NetUSD += usd
	}
}

func (a *Aggregator) foldReward(res *Result, rec *model.Record) {
	switch rec.Kind {
	case model.KindCash:
		// Unclaimed cash is not yet the player's.
		if !rec.IsClaimed() {
			return
		}
	case model.KindFunds, model.KindInventoryFunds:
		// Winback and boost codes count once completed and playable.
		if (rec.Status != "Completed" && rec.Status != "Claimed") || rec.CashType != "Playable" {
			return
		}
	}

	currency := rec.Currency
	if currency == "" {
		currency = rates.ReferenceCurrency
	}

	usd, ok := a.rates.ToUSD(rec.Amount, currency, rec.CreateTime)
	if !ok {
		a.logger.Warn("unpriceable reward skipped",
			"currency", currency,
			"kind", rec.Kind,
		)
		return
	}

	month := rec.CreateTime.Local().Format(monthKeyFormat)
	res.RewardsByMonth[month] += usd
}

// addTrailingStake counts stake placed within the trailing 7-day window,
// measured against the moment the pass runs.
func (a *Aggregator) addTrailingStake(res *Result, t time.Time, usd float64) {
	sevenDaysAgo := a.now.AddDate(0, 0, -7)
	if !t.Before(sevenDaysAgo) && !t.After(a.now) {
		res.Overall.LossesUSD7Days += usd
	}
}

// normalizeGameName collapses live-dealer table variants, which expose one
// game per table, into their family name.
func normalizeGameName(g model.Game) string {
	if g.Type != "LiveCasino" {
		return g.Name
	}
	for _, family := range []string{"Baccarat", "Blackjack", "Roulette"} {
		if strings.HasPrefix(g.Name, family) {
			return family
		}
	}
	return g.Name
}

// providerLabel resolves the combined provider and studio label: the
// studio name wins when present and different from the provider,
// title-cased.
func providerLabel(provider string, studio *model.Studio) string {
	if studio == nil || strings.EqualFold(provider, studio.Name) {
		return provider
	}
	return titleCase(studio.Name)
}

func titleCase(s string) string {
	var b strings.Builder
	inWord := false
	for _, r := range strings.ToLower(s) {
		if !inWord && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		inWord = unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}
	return b.String()
}
