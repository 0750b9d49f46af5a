package analysis

import (
	"testing"

	"market-analyzer-go/market"
)

func TestProfileTradesRetailWinsOverProfessional(t *testing.T) {
	// 15 large trades would satisfy the professional rule
	// (large_trade_count > 10), but the average size stays tiny, the size
	// deviation stays low and every timestamp is distinct, so the retail
	// rule matches first and wins.
	trades := make([]market.Trade, 0, 1015)
	ts := int64(0)
	for i := 0; i < 15; i++ {
		ts++
		trades = append(trades, market.Trade{Time: ts, Price: 100, Qty: 1.0, Side: market.SideBuy})
	}
	for i := 0; i < 1000; i++ {
		ts++
		trades = append(trades, market.Trade{Time: ts, Price: 100, Qty: 0, Side: market.SideSell})
	}

	p := ProfileTrades(trades, DefaultScoreConfig())
	if p.LargeTrades != 15 {
		t.Fatalf("LargeTrades = %d, want 15", p.LargeTrades)
	}
	if p.AvgTradeSize >= 0.1 || p.SizeStd >= 0.5 || p.MaxPerTimestamp > 5 {
		t.Fatalf("setup does not satisfy the retail rule: %+v", p)
	}
	if p.Type != TraderRetail {
		t.Errorf("Type = %s, want Retail", p.Type)
	}
}

func TestProfileTrades(t *testing.T) {
	tests := []struct {
		name   string
		trades []market.Trade
		want   TraderType
	}{
		{
			name: "small consistent trades are retail",
			trades: []market.Trade{
				{Time: 1, Qty: 0.01}, {Time: 2, Qty: 0.02}, {Time: 3, Qty: 0.015},
			},
			want: TraderRetail,
		},
		{
			name: "large average size is professional",
			trades: []market.Trade{
				{Time: 1, Qty: 2}, {Time: 2, Qty: 3},
			},
			want: TraderProfessional,
		},
		{
			name: "bot-like burst on one timestamp is professional",
			trades: func() []market.Trade {
				out := make([]market.Trade, 25)
				for i := range out {
					out[i] = market.Trade{Time: 99, Qty: 0.01}
				}
				return out
			}(),
			want: TraderProfessional,
		},
		{
			name: "moderate size is mixed",
			trades: []market.Trade{
				{Time: 1, Qty: 0.5}, {Time: 2, Qty: 0.5},
			},
			want: TraderMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ProfileTrades(tt.trades, DefaultScoreConfig())
			if p.Type != tt.want {
				t.Errorf("Type = %s, want %s", p.Type, tt.want)
			}
		})
	}
}

func TestProfileTradesStatistics(t *testing.T) {
	trades := []market.Trade{
		{Time: 5, Qty: 1}, {Time: 5, Qty: 3}, {Time: 6, Qty: 2},
	}
	p := ProfileTrades(trades, DefaultScoreConfig())
	if p.AvgTradeSize != 2 {
		t.Errorf("AvgTradeSize = %f, want 2", p.AvgTradeSize)
	}
	// Sample standard deviation of {1, 3, 2} is 1.
	if p.SizeStd != 1 {
		t.Errorf("SizeStd = %f, want 1", p.SizeStd)
	}
	if p.MaxPerTimestamp != 2 {
		t.Errorf("MaxPerTimestamp = %d, want 2", p.MaxPerTimestamp)
	}
	if p.LargeTrades != 3 {
		t.Errorf("LargeTrades = %d, want 3", p.LargeTrades)
	}
}

func TestTraderTypeString(t *testing.T) {
	if TraderRetail.String() != "Retail" ||
		TraderProfessional.String() != "Professional/Institutional" ||
		TraderMixed.String() != "Mixed" {
		t.Errorf("unexpected trader type strings")
	}
}

func TestProfileTradesSingleTradeHasZeroStd(t *testing.T) {
	p := ProfileTrades([]market.Trade{{Time: 1, Qty: 0.05}}, DefaultScoreConfig())
	if p.SizeStd != 0 {
		t.Errorf("SizeStd = %f, want 0", p.SizeStd)
	}
	if p.Type != TraderRetail {
		t.Errorf("Type = %s, want Retail", p.Type)
	}
}
