package analysis

import (
	"math"

	"market-analyzer-go/market"
)

// TraderType classifies whose activity dominates a trade tape.
type TraderType int

const (
	TraderMixed TraderType = iota
	TraderRetail
	TraderProfessional
)

func (t TraderType) String() string {
	switch t {
	case TraderRetail:
		return "Retail"
	case TraderProfessional:
		return "Professional/Institutional"
	default:
		return "Mixed"
	}
}

// TraderProfile holds the size and frequency statistics the classification
// is derived from. SizeStd is the sample standard deviation of trade sizes
// (0 with fewer than two trades); MaxPerTimestamp is the largest number of
// trades sharing one identical timestamp value.
type TraderProfile struct {
	Type            TraderType
	AvgTradeSize    float64
	SizeStd         float64
	LargeTrades     int
	MaxPerTimestamp int
}

// ProfileTrades computes the trader-type profile of a trade tape. Rules are
// evaluated in fixed priority order, first match wins:
//
//  1. small average size, low variability, low per-timestamp frequency -> Retail
//  2. large average size, many large trades, or bot-like frequency -> Professional
//  3. otherwise -> Mixed
//
// An input satisfying both 1 and 2 classifies Retail.
func ProfileTrades(trades []market.Trade, cfg ScoreConfig) TraderProfile {
	if len(trades) == 0 {
		return TraderProfile{Type: TraderMixed, MaxPerTimestamp: 1}
	}

	total := 0.0
	large := 0
	perTimestamp := make(map[int64]int, len(trades))
	for _, t := range trades {
		total += t.Qty
		if t.Qty >= cfg.LargeTradeQty {
			large++
		}
		perTimestamp[t.Time]++
	}
	avg := total / float64(len(trades))

	std := 0.0
	if len(trades) > 1 {
		sumSq := 0.0
		for _, t := range trades {
			d := t.Qty - avg
			sumSq += d * d
		}
		std = math.Sqrt(sumSq / float64(len(trades)-1))
	}

	maxPerTs := 0
	for _, n := range perTimestamp {
		if n > maxPerTs {
			maxPerTs = n
		}
	}

	p := TraderProfile{
		AvgTradeSize:    avg,
		SizeStd:         std,
		LargeTrades:     large,
		MaxPerTimestamp: maxPerTs,
	}
	switch {
	case avg < 0.1 && std < 0.5 && maxPerTs <= 5:
		p.Type = TraderRetail
	case avg >= cfg.LargeTradeQty || large > 10 || maxPerTs > 20:
		p.Type = TraderProfessional
	default:
		p.Type = TraderMixed
	}
	return p
}
