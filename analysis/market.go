package analysis

import (
	"fmt"

	"market-analyzer-go/market"
)

// Metric names of the combined market report.
const (
	MetricBidAskSpread       = "BidAskSpread"
	MetricOrderBookDepth     = "OrderBookDepth"
	MetricOrderBookImbalance = "OrderBookImbalance"
	MetricVWAP               = "VWAP"
	MetricRealizedVolatility = "RealizedVolatility"
	MetricMarketImpact       = "MarketImpact"
	MetricNetOrderFlow       = "NetOrderFlow"
)

// metricExplanations are static template text, part of the external
// contract; they are never computed from the specific input.
var metricExplanations = map[string]string{
	MetricBidAskSpread:       "The difference between the highest buy price and lowest sell price. A smaller spread means lower trading costs and higher liquidity.",
	MetricOrderBookDepth:     "Total volume of buy (bids) and sell (asks) orders in the top 10 levels. Shows how much can be traded without moving the price much.",
	MetricOrderBookImbalance: "Compares buy vs. sell volume. Positive means more buying pressure; negative means more selling pressure.",
	MetricVWAP:               "Volume-weighted average price of recent trades. A benchmark for what traders paid on average.",
	MetricRealizedVolatility: "Measures price swings over time. Higher values mean more risk and opportunity for price changes.",
	MetricMarketImpact:       "Price change after the largest trade. Shows how much trades affect the market.",
	MetricNetOrderFlow:       "Net difference between buy and sell volumes. Positive suggests bullish sentiment; negative suggests bearish.",
}

// MetricResult is one named metric with its fixed explanation. Values has a
// single element for every metric except OrderBookDepth, which carries the
// (bid depth, ask depth) pair.
type MetricResult struct {
	Name        string
	Values      []float64
	Explanation string
}

// MarketReport is the combined seven-metric descriptive report over one
// order book and one trade sequence captured at the same nominal instant.
// It carries no bullishness score.
type MarketReport struct {
	Spread             float64 `json:"bid_ask_spread"`
	BidDepth           float64 `json:"bid_depth"`
	AskDepth           float64 `json:"ask_depth"`
	Imbalance          float64 `json:"order_book_imbalance"`
	VWAP               float64 `json:"vwap"`
	RealizedVolatility float64 `json:"realized_volatility"`
	MarketImpact       float64 `json:"market_impact"`
	NetOrderFlow       float64 `json:"net_order_flow"`
}

// Analyze computes the combined market report. The book must have both
// sides populated and at least one trade must be supplied.
func Analyze(b *market.Book, trades []market.Trade, cfg ScoreConfig) (*MarketReport, error) {
	if len(trades) == 0 {
		return nil, fmt.Errorf("analyze market: empty trade list: %w", ErrInvalidInput)
	}
	spread, err := Spread(b)
	if err != nil {
		return nil, err
	}
	bidDepth, askDepth := Depth(b, cfg.DepthLevels)

	return &MarketReport{
		Spread:             spread,
		BidDepth:           bidDepth,
		AskDepth:           askDepth,
		Imbalance:          Imbalance(b, cfg.DepthLevels),
		VWAP:               VWAP(trades),
		RealizedVolatility: RealizedVolatility(trades),
		MarketImpact:       MarketImpact(trades),
		NetOrderFlow:       NetOrderFlow(trades),
	}, nil
}

// Metrics enumerates the report as the seven fixed-order named metrics.
func (r *MarketReport) Metrics() []MetricResult {
	return []MetricResult{
		{MetricBidAskSpread, []float64{r.Spread}, metricExplanations[MetricBidAskSpread]},
		{MetricOrderBookDepth, []float64{r.BidDepth, r.AskDepth}, metricExplanations[MetricOrderBookDepth]},
		{MetricOrderBookImbalance, []float64{r.Imbalance}, metricExplanations[MetricOrderBookImbalance]},
		{MetricVWAP, []float64{r.VWAP}, metricExplanations[MetricVWAP]},
		{MetricRealizedVolatility, []float64{r.RealizedVolatility}, metricExplanations[MetricRealizedVolatility]},
		{MetricMarketImpact, []float64{r.MarketImpact}, metricExplanations[MetricMarketImpact]},
		{MetricNetOrderFlow, []float64{r.NetOrderFlow}, metricExplanations[MetricNetOrderFlow]},
	}
}
