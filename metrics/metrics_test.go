package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAnalysis(t *testing.T) {
	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues("book"))
	RecordAnalysis("book", 7)

	if got := testutil.ToFloat64(AnalysesTotal.WithLabelValues("book")); got != before+1 {
		t.Errorf("AnalysesTotal = %f, want %f", got, before+1)
	}
	if got := testutil.ToFloat64(BullishnessScore.WithLabelValues("book")); got != 7 {
		t.Errorf("BullishnessScore = %f, want 7", got)
	}
}

func TestRecordAnalysisMarketShapeHasNoScore(t *testing.T) {
	BullishnessScore.Reset()
	RecordAnalysis("market", 0)

	if got := testutil.CollectAndCount(BullishnessScore); got != 0 {
		t.Errorf("market shape must not set a score gauge, got %d series", got)
	}
}
