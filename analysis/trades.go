package analysis

import (
	"fmt"
	"math"

	"market-analyzer-go/market"
)

// annualization scales the standard deviation of per-trade log returns as
// if each trade were one minute apart (252 trading days of minutes). The
// convention has no calendar meaning for a fixed-count trade sample and is
// preserved for score reproducibility only.
var annualization = math.Sqrt(252 * 24 * 60)

// VWAP is the volume-weighted average price, 0 when total volume is 0.
func VWAP(trades []market.Trade) float64 {
	totalValue := 0.0
	totalVolume := 0.0
	for _, t := range trades {
		totalValue += t.Price * t.Qty
		totalVolume += t.Qty
	}
	if totalVolume == 0 {
		return 0
	}
	return totalValue / totalVolume
}

// RealizedVolatility is the population standard deviation of consecutive
// log returns over the trade sequence in its given order, annualized.
// Returns 0 when fewer than two trades are supplied.
func RealizedVolatility(trades []market.Trade) float64 {
	if len(trades) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(trades)-1)
	for i := 1; i < len(trades); i++ {
		returns = append(returns, math.Log(trades[i].Price)-math.Log(trades[i-1].Price))
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))
	return math.Sqrt(variance) * annualization
}

// MarketImpact is the price change immediately after the largest trade.
// Ties pick the first occurrence; a largest trade in last position has no
// observable aftermath and yields 0.
func MarketImpact(trades []market.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	largest := 0
	for i, t := range trades {
		if t.Qty > trades[largest].Qty {
			largest = i
		}
	}
	if largest == len(trades)-1 {
		return 0
	}
	return trades[largest+1].Price - trades[largest].Price
}

// NetOrderFlow is taker buy volume minus taker sell volume.
func NetOrderFlow(trades []market.Trade) float64 {
	net := 0.0
	for _, t := range trades {
		switch t.Side {
		case market.SideBuy:
			net += t.Qty
		case market.SideSell:
			net -= t.Qty
		}
	}
	return net
}

// TradeReport is the trade-tape-flavored bullishness report.
type TradeReport struct {
	Score          int     `json:"bullishness_score"`
	TotalVolume    float64 `json:"total_volume"`
	BuyVolume      float64 `json:"buy_volume"`
	SellVolume     float64 `json:"sell_volume"`
	MarketBuyRatio float64 `json:"market_buy_ratio"`
	AvgBuySize     float64 `json:"avg_buy_size"`
	AvgSellSize    float64 `json:"avg_sell_size"`
	AvgTradeSize   float64 `json:"avg_trade_size"`
	LargeTrades    int     `json:"large_trade_count"`
	TraderType     string  `json:"trader_type"`
	TradeCount     int     `json:"trade_count"`
	LastTradeTime  int64   `json:"last_trade_time"`

	BuyCount  int `json:"-"`
	SellCount int `json:"-"`

	VolumeRatio float64 `json:"-"`
	VolumeScore float64 `json:"-"`
	MarketScore float64 `json:"-"`
	SizeRatio   float64 `json:"-"`
	SizeScore   float64 `json:"-"`
	RawScore    float64 `json:"-"`

	Profile TraderProfile `json:"-"`
}

// AnalyzeTrades computes the trade bullishness report over a non-empty
// trade sequence.
func AnalyzeTrades(trades []market.Trade, cfg ScoreConfig) (*TradeReport, error) {
	if len(trades) == 0 {
		return nil, fmt.Errorf("analyze trades: empty trade list: %w", ErrInvalidInput)
	}

	totalVolume := 0.0
	buyVolume := 0.0
	sellVolume := 0.0
	buyCount := 0
	for _, t := range trades {
		totalVolume += t.Qty
		if t.Side == market.SideBuy {
			buyVolume += t.Qty
			buyCount++
		} else {
			sellVolume += t.Qty
		}
	}
	sellCount := len(trades) - buyCount
	marketBuyRatio := float64(buyCount) / float64(len(trades))

	avgBuySize := 0.0
	if buyCount > 0 {
		avgBuySize = buyVolume / float64(buyCount)
	}
	avgSellSize := 0.0
	if sellCount > 0 {
		avgSellSize = sellVolume / float64(sellCount)
	}

	volumeRatio := cappedRatio(buyVolume, sellVolume, cfg.VolumeFloor, 10)
	volumeScore := min(volumeRatio*2, 10)
	marketScore := min(marketBuyRatio*10, 10)
	sizeRatio := cappedRatio(avgBuySize, avgSellSize, cfg.VolumeFloor, 5)
	sizeScore := min(sizeRatio*2, 5)

	raw := volumeScore*cfg.Trade.Volume + marketScore*cfg.Trade.MarketBuy + sizeScore*cfg.Trade.Size

	profile := ProfileTrades(trades, cfg)

	return &TradeReport{
		Score:          clampScore(raw),
		TotalVolume:    roundTo(totalVolume, 5),
		BuyVolume:      roundTo(buyVolume, 5),
		SellVolume:     roundTo(sellVolume, 5),
		MarketBuyRatio: roundTo(marketBuyRatio, 3),
		AvgBuySize:     roundTo(avgBuySize, 5),
		AvgSellSize:    roundTo(avgSellSize, 5),
		AvgTradeSize:   roundTo(profile.AvgTradeSize, 5),
		LargeTrades:    profile.LargeTrades,
		TraderType:     profile.Type.String(),
		TradeCount:     len(trades),
		LastTradeTime:  trades[len(trades)-1].Time,

		BuyCount:  buyCount,
		SellCount: sellCount,

		VolumeRatio: volumeRatio,
		VolumeScore: volumeScore,
		MarketScore: marketScore,
		SizeRatio:   sizeRatio,
		SizeScore:   sizeScore,
		RawScore:    raw,

		Profile: profile,
	}, nil
}
