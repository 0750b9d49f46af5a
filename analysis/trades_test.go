package analysis

import (
	"errors"
	"math"
	"testing"

	"market-analyzer-go/market"
)

func TestVWAP(t *testing.T) {
	tests := []struct {
		name   string
		trades []market.Trade
		want   float64
	}{
		{
			name: "same price regardless of volume distribution",
			trades: []market.Trade{
				{Price: 100, Qty: 0.5, Side: market.SideBuy},
				{Price: 100, Qty: 3, Side: market.SideSell},
				{Price: 100, Qty: 0.001, Side: market.SideBuy},
			},
			want: 100,
		},
		{
			name: "weighted",
			trades: []market.Trade{
				{Price: 100, Qty: 1, Side: market.SideBuy},
				{Price: 102, Qty: 1, Side: market.SideSell},
			},
			want: 101,
		},
		{
			name: "zero total volume",
			trades: []market.Trade{
				{Price: 100, Qty: 0, Side: market.SideBuy},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VWAP(tt.trades); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("VWAP() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRealizedVolatility(t *testing.T) {
	if got := RealizedVolatility(nil); got != 0 {
		t.Errorf("RealizedVolatility(nil) = %f, want 0", got)
	}
	if got := RealizedVolatility([]market.Trade{{Price: 100, Qty: 1}}); got != 0 {
		t.Errorf("RealizedVolatility(1 trade) = %f, want 0", got)
	}

	identical := []market.Trade{{Price: 100, Qty: 1}, {Price: 100, Qty: 2}, {Price: 100, Qty: 3}}
	if got := RealizedVolatility(identical); got != 0 {
		t.Errorf("RealizedVolatility(identical prices) = %f, want 0", got)
	}

	// One log return has zero population deviation from its own mean.
	twoPrices := []market.Trade{{Price: 100, Qty: 1}, {Price: 102, Qty: 1}}
	if got := RealizedVolatility(twoPrices); got != 0 {
		t.Errorf("RealizedVolatility(single return) = %f, want 0", got)
	}

	// Symmetric up/down move: returns +r, -r with mean 0, population std r.
	moving := []market.Trade{{Price: 100, Qty: 1}, {Price: 102, Qty: 1}, {Price: 100, Qty: 1}}
	r := math.Log(102.0 / 100.0)
	want := r * math.Sqrt(252*24*60)
	if got := RealizedVolatility(moving); math.Abs(got-want) > 1e-9 {
		t.Errorf("RealizedVolatility() = %f, want %f", got, want)
	}
}

func TestMarketImpact(t *testing.T) {
	tests := []struct {
		name   string
		trades []market.Trade
		want   float64
	}{
		{
			name:   "empty",
			trades: nil,
			want:   0,
		},
		{
			name: "largest trade is last",
			trades: []market.Trade{
				{Price: 100, Qty: 1},
				{Price: 101, Qty: 5},
			},
			want: 0,
		},
		{
			name: "price change after largest trade",
			trades: []market.Trade{
				{Price: 100, Qty: 1},
				{Price: 101, Qty: 5},
				{Price: 103, Qty: 2},
			},
			want: 2,
		},
		{
			name: "tie picks first occurrence",
			trades: []market.Trade{
				{Price: 100, Qty: 1},
				{Price: 102, Qty: 1},
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarketImpact(tt.trades); got != tt.want {
				t.Errorf("MarketImpact() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNetOrderFlow(t *testing.T) {
	trades := []market.Trade{
		{Price: 100, Qty: 2, Side: market.SideBuy},
		{Price: 100, Qty: 0.5, Side: market.SideSell},
		{Price: 100, Qty: 1, Side: market.SideBuy},
	}
	if got := NetOrderFlow(trades); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("NetOrderFlow() = %f, want 2.5", got)
	}

	// Anti-symmetry: swapping every buy/sell label negates the flow exactly.
	flipped := make([]market.Trade, len(trades))
	for i, tr := range trades {
		flipped[i] = tr
		if tr.Side == market.SideBuy {
			flipped[i].Side = market.SideSell
		} else {
			flipped[i].Side = market.SideBuy
		}
	}
	if got := NetOrderFlow(flipped); got != -NetOrderFlow(trades) {
		t.Errorf("NetOrderFlow(flipped) = %f, want %f", got, -NetOrderFlow(trades))
	}
}

func TestAnalyzeTrades(t *testing.T) {
	trades := []market.Trade{
		{Time: 1, Price: 100, Qty: 2, Side: market.SideBuy},
		{Time: 2, Price: 101, Qty: 1, Side: market.SideSell},
	}
	report, err := AnalyzeTrades(trades, DefaultScoreConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// volumeRatio = 2 -> volumeScore 4; marketScore = 0.5*10 = 5;
	// sizeRatio = 2 -> sizeScore 4; raw = 4*0.5 + 5*0.3 + 4*0.2 = 4.3 -> 4
	if math.Abs(report.RawScore-4.3) > 1e-12 {
		t.Errorf("RawScore = %f, want 4.3", report.RawScore)
	}
	if report.Score != 4 {
		t.Errorf("Score = %d, want 4", report.Score)
	}
	if report.BuyVolume != 2 || report.SellVolume != 1 {
		t.Errorf("volumes = (%f, %f), want (2, 1)", report.BuyVolume, report.SellVolume)
	}
	if report.MarketBuyRatio != 0.5 {
		t.Errorf("MarketBuyRatio = %f, want 0.5", report.MarketBuyRatio)
	}
	if report.AvgBuySize != 2 || report.AvgSellSize != 1 {
		t.Errorf("avg sizes = (%f, %f), want (2, 1)", report.AvgBuySize, report.AvgSellSize)
	}
	if report.TradeCount != 2 || report.LastTradeTime != 2 {
		t.Errorf("count/last = (%d, %d), want (2, 2)", report.TradeCount, report.LastTradeTime)
	}
	// avg trade size 1.5 >= 1.0
	if report.TraderType != "Professional/Institutional" {
		t.Errorf("TraderType = %s, want Professional/Institutional", report.TraderType)
	}
}

func TestAnalyzeTradesEmpty(t *testing.T) {
	if _, err := AnalyzeTrades(nil, DefaultScoreConfig()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty trade list error = %v, want ErrInvalidInput", err)
	}
}

func TestAnalyzeTradesScoreBounds(t *testing.T) {
	// Only taker buys, zero sell volume: every ratio caps out.
	// raw = 10*0.5 + 10*0.3 + 5*0.2 = 9 -> 9
	allBuys := []market.Trade{
		{Time: 1, Price: 100, Qty: 3, Side: market.SideBuy},
		{Time: 2, Price: 100, Qty: 4, Side: market.SideBuy},
	}
	report, err := AnalyzeTrades(allBuys, DefaultScoreConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Score != 9 {
		t.Errorf("Score = %d, want 9", report.Score)
	}

	// Only taker sells: raw = 0*0.5 + 0*0.3 + 0*0.2 = 0, clamped to 1.
	allSells := []market.Trade{
		{Time: 1, Price: 100, Qty: 3, Side: market.SideSell},
	}
	report, err = AnalyzeTrades(allSells, DefaultScoreConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Score != 1 {
		t.Errorf("Score = %d, want 1", report.Score)
	}
}

func TestZeroVolumeTradesContributeNothing(t *testing.T) {
	trades := []market.Trade{
		{Time: 1, Price: 100, Qty: 1, Side: market.SideBuy},
		{Time: 2, Price: 100, Qty: 0, Side: market.SideSell},
	}
	report, err := AnalyzeTrades(trades, DefaultScoreConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.SellVolume != 0 {
		t.Errorf("SellVolume = %f, want 0", report.SellVolume)
	}
	if report.TotalVolume != 1 {
		t.Errorf("TotalVolume = %f, want 1", report.TotalVolume)
	}
}
