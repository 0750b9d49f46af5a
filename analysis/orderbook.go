package analysis

import (
	"fmt"

	"market-analyzer-go/market"
)

// Spread returns best ask minus best bid. It is negative for a crossed
// book; that is reported as-is rather than treated as an error.
func Spread(b *market.Book) (float64, error) {
	if b == nil {
		return 0, fmt.Errorf("spread: nil book: %w", ErrInvalidInput)
	}
	bid, okBid := b.BestBid()
	ask, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return 0, fmt.Errorf("spread: empty book side: %w", ErrInsufficientData)
	}
	return ask.Price - bid.Price, nil
}

// Depth sums resting quantity over the first levels entries of each side.
// Sides shorter than levels are summed in full.
func Depth(b *market.Book, levels int) (bidDepth, askDepth float64) {
	if b == nil || levels <= 0 {
		return 0, 0
	}
	return market.SumQty(b.Bids, levels), market.SumQty(b.Asks, levels)
}

// Imbalance is (bidDepth - askDepth) / (bidDepth + askDepth) over the first
// levels entries, always in [-1, 1]. A zero denominator yields exactly 0;
// that is a division guard, not a claim of a neutral market.
func Imbalance(b *market.Book, levels int) float64 {
	bidDepth, askDepth := Depth(b, levels)
	total := bidDepth + askDepth
	if total == 0 {
		return 0
	}
	return (bidDepth - askDepth) / total
}

// BookReport is the order-book-flavored bullishness report. Ratio and score
// intermediates are kept at full precision so the rationale text can
// reproduce the calculation; descriptive fields carry the documented
// rounding (prices 2dp, volumes 5dp).
type BookReport struct {
	Score        int     `json:"bullishness_score"`
	CurrentPrice float64 `json:"current_price"`
	Spread       float64 `json:"spread"`

	NearBidVolume  float64 `json:"near_bid_volume"`
	NearAskVolume  float64 `json:"near_ask_volume"`
	TotalBidVolume float64 `json:"total_bid_volume"`
	TotalAskVolume float64 `json:"total_ask_volume"`
	TopBidSize     float64 `json:"top_bid_size"`
	TopAskSize     float64 `json:"top_ask_size"`
	LastUpdateID   int64   `json:"last_update_id"`

	BestBid float64 `json:"-"`
	BestAsk float64 `json:"-"`
	NearMin float64 `json:"-"`
	NearMax float64 `json:"-"`

	NearRatio  float64 `json:"-"`
	NearScore  float64 `json:"-"`
	TotalRatio float64 `json:"-"`
	TotalScore float64 `json:"-"`
	TopRatio   float64 `json:"-"`
	TopScore   float64 `json:"-"`
	RawScore   float64 `json:"-"`
}

// AnalyzeBook computes the order-book bullishness report.
func AnalyzeBook(b *market.Book, cfg ScoreConfig) (*BookReport, error) {
	if b == nil {
		return nil, fmt.Errorf("analyze book: nil book: %w", ErrInvalidInput)
	}
	bestBid, okBid := b.BestBid()
	bestAsk, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return nil, fmt.Errorf("analyze book: empty book side: %w", ErrInsufficientData)
	}

	nearMin := bestBid.Price - cfg.NearBand
	nearMax := bestBid.Price + cfg.NearBand

	nearBidVolume := 0.0
	totalBidVolume := 0.0
	for _, lv := range b.Bids {
		totalBidVolume += lv.Qty
		if lv.Price >= nearMin {
			nearBidVolume += lv.Qty
		}
	}
	nearAskVolume := 0.0
	totalAskVolume := 0.0
	for _, lv := range b.Asks {
		totalAskVolume += lv.Qty
		if lv.Price <= nearMax {
			nearAskVolume += lv.Qty
		}
	}

	nearRatio := cappedRatio(nearBidVolume, nearAskVolume, cfg.VolumeFloor, 10)
	nearScore := min(nearRatio*2, 10)
	totalRatio := cappedRatio(totalBidVolume, totalAskVolume, cfg.VolumeFloor, 5)
	totalScore := min(totalRatio, 5)
	topRatio := cappedRatio(bestBid.Qty, bestAsk.Qty, cfg.VolumeFloor, 5)
	topScore := min(topRatio*0.5, 2.5)

	raw := nearScore*cfg.Book.Near + totalScore*cfg.Book.Total + topScore*cfg.Book.Top

	return &BookReport{
		Score:        clampScore(raw),
		CurrentPrice: roundTo(bestBid.Price, 2),
		Spread:       bestAsk.Price - bestBid.Price,

		NearBidVolume:  roundTo(nearBidVolume, 5),
		NearAskVolume:  roundTo(nearAskVolume, 5),
		TotalBidVolume: roundTo(totalBidVolume, 5),
		TotalAskVolume: roundTo(totalAskVolume, 5),
		TopBidSize:     bestBid.Qty,
		TopAskSize:     bestAsk.Qty,
		LastUpdateID:   b.LastUpdateID,

		BestBid: bestBid.Price,
		BestAsk: bestAsk.Price,
		NearMin: nearMin,
		NearMax: nearMax,

		NearRatio:  nearRatio,
		NearScore:  nearScore,
		TotalRatio: totalRatio,
		TotalScore: totalScore,
		TopRatio:   topRatio,
		TopScore:   topScore,
		RawScore:   raw,
	}, nil
}
