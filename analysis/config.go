package analysis

import "math"

// BookWeights are the order-book bullishness component weights.
type BookWeights struct {
	Near  float64
	Total float64
	Top   float64
}

// TradeWeights are the trade-tape bullishness component weights.
type TradeWeights struct {
	Volume    float64
	MarketBuy float64
	Size      float64
}

// ScoreConfig carries every heuristic constant used by the scoring
// functions, so they can be tuned and tested without code edits.
type ScoreConfig struct {
	// NearBand is the half-width in quote currency of the near-market
	// window around the best bid.
	NearBand float64
	// VolumeFloor replaces any volume denominator that could be zero:
	// ratio = x / max(y, VolumeFloor).
	VolumeFloor float64
	// LargeTradeQty is the minimum quantity that counts as a large trade
	// for the trader-type classification.
	LargeTradeQty float64
	// DepthLevels is how many top-of-book levels depth and imbalance use.
	DepthLevels int

	Book  BookWeights
	Trade TradeWeights
}

// DefaultScoreConfig returns the production constants.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		NearBand:      10,
		VolumeFloor:   0.001,
		LargeTradeQty: 1.0,
		DepthLevels:   10,
		Book:          BookWeights{Near: 0.7, Total: 0.15, Top: 0.15},
		Trade:         TradeWeights{Volume: 0.5, MarketBuy: 0.3, Size: 0.2},
	}
}

// cappedRatio computes num/max(den, floor) capped at limit.
func cappedRatio(num, den, floor, limit float64) float64 {
	return math.Min(num/math.Max(den, floor), limit)
}

// clampScore rounds a raw composite to the nearest integer and clamps it
// into [1, 10].
func clampScore(raw float64) int {
	s := int(math.Round(raw))
	if s < 1 {
		return 1
	}
	if s > 10 {
		return 10
	}
	return s
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
