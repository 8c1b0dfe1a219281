package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestClassifyWagering(t *testing.T) {
	raw := `{
		"id": 1021,
		"type": "BuyIn",
		"createTime": "2024-06-01T18:09:55.877Z",
		"game": {
			"name": "Roulette Live",
			"type": "LiveCasino",
			"provider": "Evolution",
			"thumbnail": "https://cdn.example/roulette.png",
			"studio": {"name": "evolution"}
		},
		"providerCurrency": {"code": "USD", "amount": "10.50"},
		"sessionId": 77,
		"roundId": 9001
	}`

	rec, err := Classify(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if rec.Kind != KindBuyIn {
		t.Errorf("Kind = %q, want %q", rec.Kind, KindBuyIn)
	}
	if rec.ID != 1021 {
		t.Errorf("ID = %d, want 1021", rec.ID)
	}
	if rec.Game.Name != "Roulette Live" {
		t.Errorf("Game.Name = %q, want %q", rec.Game.Name, "Roulette Live")
	}
	if rec.Currency != "USD" || rec.Amount != 10.50 {
		t.Errorf("amount = %f %s, want 10.50 USD", rec.Amount, rec.Currency)
	}
	if rec.SessionID != 77 || rec.RoundID != 9001 {
		t.Errorf("session/round = %d/%d, want 77/9001", rec.SessionID, rec.RoundID)
	}
	want := time.Date(2024, 6, 1, 18, 9, 55, 877000000, time.UTC)
	if !rec.CreateTime.Equal(want) {
		t.Errorf("CreateTime = %v, want %v", rec.CreateTime, want)
	}
}

func TestClassifyMiniGames(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantName  string
		wantBet   float64
		wantPrize float64
	}{
		{
			name: "hilo",
			raw: `{
				"event": "player-round-result",
				"createTime": "2024-05-02T10:00:00.000Z",
				"data": {"lifeNumber": 3, "sourceCurrency": "USD", "betAmount": 5, "prizeAmount": 12.5}
			}`,
			wantName:  MiniGameHILO,
			wantBet:   5,
			wantPrize: 12.5,
		},
		{
			name: "rekt",
			raw: `{
				"event": "player-round-result",
				"createTime": "2024-05-02T11:00:00.000Z",
				"data": {"playerLastRound": {"betAmount": 2, "payout": 0}}
			}`,
			wantName:  MiniGameREKT,
			wantBet:   2,
			wantPrize: 0,
		},
		{
			name: "rekt missing payout",
			raw: `{
				"event": "player-round-result",
				"createTime": "2024-05-02T12:00:00.000Z",
				"data": {"playerLastRound": {"betAmount": 4}}
			}`,
			wantName:  MiniGameREKT,
			wantBet:   4,
			wantPrize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Classify(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if rec.Kind != KindMiniGameResult {
				t.Fatalf("Kind = %q, want %q", rec.Kind, KindMiniGameResult)
			}
			if rec.Mini == nil {
				t.Fatal("Mini is nil")
			}
			if rec.Mini.Name != tt.wantName {
				t.Errorf("Mini.Name = %q, want %q", rec.Mini.Name, tt.wantName)
			}
			if rec.Mini.Bet != tt.wantBet || rec.Mini.Prize != tt.wantPrize {
				t.Errorf("bet/prize = %f/%f, want %f/%f",
					rec.Mini.Bet, rec.Mini.Prize, tt.wantBet, tt.wantPrize)
			}
			if rec.ID != rec.CreateTime.UnixMilli() {
				t.Errorf("ID = %d, want createTime millis %d", rec.ID, rec.CreateTime.UnixMilli())
			}
		})
	}
}

func TestClassifyNonRoundResultEvent(t *testing.T) {
	raw := `{"event": "player-joined", "createTime": "2024-05-02T10:00:00.000Z"}`

	rec, err := Classify(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if rec.Kind != KindUnknown {
		t.Errorf("Kind = %q, want %q", rec.Kind, KindUnknown)
	}
}

func TestClassifyRewards(t *testing.T) {
	t.Run("leaderboard win", func(t *testing.T) {
		raw := `{
			"id": 5,
			"type": "ScheduledLeaderboardWin",
			"createTime": "2024-06-01T00:00:00.000Z",
			"data": {"prizeTotal": {"amount": "0.01", "currencyCode": "ETH"}}
		}`
		rec, err := Classify(json.RawMessage(raw))
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if rec.Kind != KindScheduledLeaderboardWin {
			t.Fatalf("Kind = %q", rec.Kind)
		}
		if rec.Amount != 0.01 || rec.Currency != "ETH" {
			t.Errorf("amount = %f %s, want 0.01 ETH", rec.Amount, rec.Currency)
		}
	})

	t.Run("tip defaults to ETH", func(t *testing.T) {
		raw := `{
			"id": 6,
			"type": "TipReceived",
			"createTime": "2024-06-01T18:09:55.877Z",
			"data": {"from": {"id": 15, "displayName": "SKEL_0x"}, "amount": 0.0029}
		}`
		rec, err := Classify(json.RawMessage(raw))
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if rec.Kind != KindTipReceived {
			t.Fatalf("Kind = %q", rec.Kind)
		}
		if rec.Amount != 0.0029 || rec.Currency != "ETH" {
			t.Errorf("amount = %f %s, want 0.0029 ETH", rec.Amount, rec.Currency)
		}
	})

	t.Run("unclaimed cash", func(t *testing.T) {
		raw := `{
			"id": 7,
			"type": "Cash",
			"createTime": "2024-06-02T00:00:00.000Z",
			"amount": "25",
			"currencyCode": "USD",
			"claimed": false
		}`
		rec, err := Classify(json.RawMessage(raw))
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if rec.Kind != KindCash {
			t.Fatalf("Kind = %q", rec.Kind)
		}
		if rec.IsClaimed() {
			t.Error("IsClaimed() = true, want false")
		}
	})

	t.Run("funds", func(t *testing.T) {
		raw := `{
			"id": 8,
			"type": "InventoryFunds",
			"createTime": "2024-06-03T00:00:00.000Z",
			"amount": 50,
			"currencyCode": "USDT",
			"status": "Completed",
			"cashType": "Playable"
		}`
		rec, err := Classify(json.RawMessage(raw))
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if rec.Kind != KindInventoryFunds {
			t.Fatalf("Kind = %q", rec.Kind)
		}
		if rec.Status != "Completed" || rec.CashType != "Playable" {
			t.Errorf("status/cashType = %q/%q", rec.Status, rec.CashType)
		}
	})
}

func TestClassifyUnknownType(t *testing.T) {
	raw := `{"id": 9, "type": "SomethingNew", "createTime": "2024-06-01T00:00:00.000Z"}`

	rec, err := Classify(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if rec.Kind != KindUnknown {
		t.Errorf("Kind = %q, want %q", rec.Kind, KindUnknown)
	}
}

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{`12.5`, 12.5},
		{`"12.5"`, 12.5},
		{`""`, 0},
		{`0`, 0},
	}

	for _, tt := range tests {
		var a Amount
		if err := json.Unmarshal([]byte(tt.in), &a); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tt.in, err)
		}
		if float64(a) != tt.want {
			t.Errorf("Unmarshal(%s) = %f, want %f", tt.in, float64(a), tt.want)
		}
	}
}
