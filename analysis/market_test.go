package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-analyzer-go/market"
)

func TestAnalyze(t *testing.T) {
	trades := []market.Trade{
		{Time: 1, Price: 100, Qty: 1, Side: market.SideBuy},
		{Time: 2, Price: 102, Qty: 1, Side: market.SideSell},
	}
	report, err := Analyze(sampleBook(), trades, DefaultScoreConfig())
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Spread)
	assert.Equal(t, 7.0, report.BidDepth)
	assert.Equal(t, 5.0, report.AskDepth)
	assert.InDelta(t, 2.0/12.0, report.Imbalance, 1e-12)
	assert.InDelta(t, 101.0, report.VWAP, 1e-12)
	// The two trades tie on volume; the first occurrence is not last, so
	// the impact is the next price minus the tied trade's price.
	assert.Equal(t, 2.0, report.MarketImpact)
	assert.Equal(t, 0.0, report.NetOrderFlow)
	// A single log return has zero population deviation.
	assert.Equal(t, 0.0, report.RealizedVolatility)
}

func TestAnalyzeErrors(t *testing.T) {
	trades := []market.Trade{{Time: 1, Price: 100, Qty: 1, Side: market.SideBuy}}

	_, err := Analyze(sampleBook(), nil, DefaultScoreConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)

	oneSided := &market.Book{Bids: []market.Level{{Price: 100, Qty: 1}}}
	_, err = Analyze(oneSided, trades, DefaultScoreConfig())
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Analyze(nil, trades, DefaultScoreConfig())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarketReportMetrics(t *testing.T) {
	report := &MarketReport{
		Spread:   1,
		BidDepth: 7,
		AskDepth: 5,
	}
	results := report.Metrics()
	require.Len(t, results, 7)

	wantOrder := []string{
		MetricBidAskSpread,
		MetricOrderBookDepth,
		MetricOrderBookImbalance,
		MetricVWAP,
		MetricRealizedVolatility,
		MetricMarketImpact,
		MetricNetOrderFlow,
	}
	for i, m := range results {
		assert.Equal(t, wantOrder[i], m.Name)
		assert.NotEmpty(t, m.Explanation, "metric %s must carry its static explanation", m.Name)
	}

	assert.Equal(t, []float64{1}, results[0].Values)
	assert.Equal(t, []float64{7, 5}, results[1].Values, "depth carries the bid/ask pair")
}

func TestMetricExplanationsAreStatic(t *testing.T) {
	a := &MarketReport{Spread: 1}
	b := &MarketReport{Spread: 999}
	assert.Equal(t, a.Metrics()[0].Explanation, b.Metrics()[0].Explanation)
}
