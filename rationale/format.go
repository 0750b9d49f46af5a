// Package rationale renders analysis reports as deterministic markdown.
// The template text is part of the external contract: downstream consumers
// display or parse it verbatim, so the section structure is byte-stable and
// only the computed numbers vary.
package rationale

import (
	"fmt"

	"market-analyzer-go/analysis"
)

const bookTemplate = `# Rationale for Order Book Analysis

## Bullishness Score Explanation
The bullishness score (1-10) is a weighted combination of three ratios:
- **Near-market bid-to-ask ratio (70%%)**: Measures buying vs. selling pressure within ±$10 of the top bid.
- **Total bid-to-ask volume ratio (15%%)**: Reflects overall demand vs. supply across the entire order book.
- **Top bid-to-ask size ratio (15%%)**: Indicates aggressive buying intent at the top of the book.

### Current Calculation
- **Near-market ratio**: %.2f (capped at 10), scaled to %.2f. Weight: 70%%.
- **Total volume ratio**: %.2f (capped at 5), scaled to %.2f. Weight: 15%%.
- **Top order ratio**: %.2f (capped at 5), scaled to %.2f. Weight: 15%%.
- **Final Score**: (%.2f × 0.7) + (%.2f × 0.15) + (%.2f × 0.15) = %.2f, rounded and clamped to **%d**.

## Near-Market Volume Explanation
Near-market volumes are sums of bid and ask quantities within ±$10 of the top bid (%.2f USDT):
- **Bids**: From %.2f USDT and up, totaling **%.5f BTC**.
- **Asks**: Up to %.2f USDT, totaling **%.5f BTC**.

## Total Volume Explanation
Total volumes are the sums of all bid and ask quantities in the order book:
- **Total Bids**: **%.5f BTC**
- **Total Asks**: **%.5f BTC**

## Top Order Explanation
Top order sizes are the quantities at the highest bid and lowest ask:
- **Top Bid**: **%.5f BTC** at %.2f USDT
- **Top Ask**: **%.5f BTC** at %.2f USDT

## Score Interpretation
How to interpret the bullishness score:
- **8-10**: Strong bullishness (buying pressure dominates).
- **4-7**: Neutral to mild bullishness or bearishness.
- **1-3**: Strong bearishness (selling pressure dominates).

**Current Score**: %d
`

// OrderBook renders the order-book bullishness rationale.
func OrderBook(r *analysis.BookReport) string {
	return fmt.Sprintf(bookTemplate,
		r.NearRatio, r.NearScore,
		r.TotalRatio, r.TotalScore,
		r.TopRatio, r.TopScore,
		r.NearScore, r.TotalScore, r.TopScore, r.RawScore, r.Score,
		r.BestBid,
		r.NearMin, r.NearBidVolume,
		r.NearMax, r.NearAskVolume,
		r.TotalBidVolume,
		r.TotalAskVolume,
		r.TopBidSize, r.BestBid,
		r.TopAskSize, r.BestAsk,
		r.Score,
	)
}

const tradesTemplate = `# Trades Rationale for %s

## Bullishness Score Explanation
The bullishness score (1-10) reflects buying pressure in recent trades, based on:
- **Buy-to-sell volume ratio (50%%)**: Higher buy volume indicates bullishness.
- **Market buy proportion (30%%)**: Percentage of trades where buyers were takers (market buys), showing aggressive buying.
- **Average buy-to-sell size ratio (20%%)**: Larger buy trades suggest stronger conviction.

### Current Calculation
- **Buy-to-sell volume ratio**: %.5f BTC / %.5f BTC = %.2f (capped at 10), scaled to %.2f.
- **Market buy proportion**: %d taker buys / %d trades = %.3f, scaled to %.2f.
- **Avg buy-to-sell size ratio**: %.5f BTC / %.5f BTC = %.2f (capped at 5), scaled to %.2f.
- **Final Score**: (%.2f × 0.5) + (%.2f × 0.3) + (%.2f × 0.2) = %.2f, rounded to **%d**.

## Trade Volume Summary
- **Total Volume**: **%.5f BTC** over %d trades.
- **Buy Volume**: **%.5f BTC** (market/taker buys).
- **Sell Volume**: **%.5f BTC** (market/taker sells).

## Market Buy Analysis
- **Market Buy Ratio**: **%.3f** (%d taker buys out of %d trades).
- Taker buys (` + "`isBuyerMaker: false`" + `) indicate aggressive buying, lifting offers from the order book.

## Trade Size Analysis
- **Average Buy Size**: **%.5f BTC** across %d buy trades.
- **Average Sell Size**: **%.5f BTC** across %d sell trades.
- Larger buy sizes relative to sell sizes suggest stronger buying intent.

## Retail vs. Professional Assessment
Based on trade sizes and frequency:
%s
- **Conclusion**: Likely **%s** activity dominates these trades.

## Score Interpretation
- **8-10**: Strong bullishness (buyers dominate in volume and aggression).
- **4-7**: Neutral or mild bullishness/bearishness.
- **1-3**: Strong bearishness (sellers dominate).
- **Current Score**: **%d**
`

// Trades renders the trade-tape bullishness rationale for a symbol.
func Trades(symbol string, r *analysis.TradeReport) string {
	return fmt.Sprintf(tradesTemplate,
		symbol,
		r.BuyVolume, r.SellVolume, r.VolumeRatio, r.VolumeScore,
		r.BuyCount, r.TradeCount, r.MarketBuyRatio, r.MarketScore,
		r.AvgBuySize, r.AvgSellSize, r.SizeRatio, r.SizeScore,
		r.VolumeScore, r.MarketScore, r.SizeScore, r.RawScore, r.Score,
		r.TotalVolume, r.TradeCount,
		r.BuyVolume,
		r.SellVolume,
		r.MarketBuyRatio, r.BuyCount, r.TradeCount,
		r.AvgBuySize, r.BuyCount,
		r.AvgSellSize, r.SellCount,
		traderAssessment(r.Profile),
		r.TraderType,
		r.Score,
	)
}

func traderAssessment(p analysis.TraderProfile) string {
	switch p.Type {
	case analysis.TraderRetail:
		return fmt.Sprintf(
			"- **Average trade size**: %.5f BTC (<0.1 BTC, typical for retail).\n"+
				"- **Size variability**: Std dev %.5f BTC (low, suggesting small, consistent trades).\n"+
				"- **Max trades per millisecond**: %d (low frequency, not algorithmic).",
			p.AvgTradeSize, p.SizeStd, p.MaxPerTimestamp)
	case analysis.TraderProfessional:
		return fmt.Sprintf(
			"- **Average trade size**: %.5f BTC (>=1 BTC or significant).\n"+
				"- **Large trades**: %d trades >= 1 BTC (institutional activity).\n"+
				"- **Max trades per millisecond**: %d (high frequency, likely bots).",
			p.AvgTradeSize, p.LargeTrades, p.MaxPerTimestamp)
	default:
		return fmt.Sprintf(
			"- **Average trade size**: %.5f BTC (moderate, not clearly retail or pro).\n"+
				"- **Size variability**: Std dev %.5f BTC (some variation).\n"+
				"- **Max trades per millisecond**: %d (moderate frequency).",
			p.AvgTradeSize, p.SizeStd, p.MaxPerTimestamp)
	}
}
