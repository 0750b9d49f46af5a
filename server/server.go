// Package server renders analysis reports over HTTP. It is a thin
// presentation layer: data fetching is delegated to a Fetcher and every
// number comes from the analysis core.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"market-analyzer-go/analysis"
	"market-analyzer-go/config"
	"market-analyzer-go/infrastructure/logger"
	"market-analyzer-go/market"
	"market-analyzer-go/metrics"
	"market-analyzer-go/rationale"
)

// Fetcher supplies raw snapshots. The gateway client implements it; tests
// use a stub.
type Fetcher interface {
	FetchBook(ctx context.Context, symbol string, limit int, futures bool) (*market.Book, error)
	FetchTrades(ctx context.Context, symbol string, limit int, futures bool) ([]market.Trade, error)
}

// Server holds the handler state. Config is swappable at runtime so the
// watcher can apply tuned scoring weights.
type Server struct {
	mu      sync.RWMutex
	cfg     config.AppConfig
	fetcher Fetcher
	log     *logger.Logger
}

// New creates a Server.
func New(cfg config.AppConfig, fetcher Fetcher, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{cfg: cfg, fetcher: fetcher, log: log}
}

// UpdateConfig swaps in a new validated config.
func (s *Server) UpdateConfig(cfg config.AppConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.log.Info("config reloaded")
}

func (s *Server) config() config.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Router builds the HTTP routes: the spot, futures and compare market
// report pages of the original app plus the two heuristic report pages.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleMarket(false)).Methods(http.MethodGet)
	r.HandleFunc("/futures", s.handleMarket(true)).Methods(http.MethodGet)
	r.HandleFunc("/compare", s.handleCompare).Methods(http.MethodGet)
	r.HandleFunc("/book", s.handleBook).Methods(http.MethodGet)
	r.HandleFunc("/trades", s.handleTrades).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

func (s *Server) analyzeMarket(ctx context.Context, futures bool) (*analysis.MarketReport, error) {
	cfg := s.config()
	book, err := s.fetcher.FetchBook(ctx, cfg.Symbol, cfg.Gateway.Limit, futures)
	if err != nil {
		return nil, err
	}
	trades, err := s.fetcher.FetchTrades(ctx, cfg.Symbol, cfg.Gateway.Limit, futures)
	if err != nil {
		return nil, err
	}
	report, err := analysis.Analyze(book, trades, cfg.Scoring.ScoreConfig())
	if err != nil {
		return nil, err
	}
	metrics.RecordAnalysis("market", 0)
	return report, nil
}

func (s *Server) handleMarket(futures bool) http.HandlerFunc {
	marketType := "Spot"
	if futures {
		marketType = "Futures"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := s.analyzeMarket(r.Context(), futures)
		if err != nil {
			s.fail(w, err)
			return
		}
		data := marketPage{
			MarketType: marketType,
			Symbol:     s.config().Symbol,
			Metrics:    metricViews(report),
		}
		s.render(w, marketTmpl, data)
	}
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	spot, err := s.analyzeMarket(r.Context(), false)
	if err != nil {
		s.fail(w, err)
		return
	}
	fut, err := s.analyzeMarket(r.Context(), true)
	if err != nil {
		s.fail(w, err)
		return
	}
	data := comparePage{
		Symbol: s.config().Symbol,
		Rows:   compareRows(spot, fut),
	}
	s.render(w, compareTmpl, data)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	cfg := s.config()
	book, err := s.fetcher.FetchBook(r.Context(), cfg.Symbol, cfg.Gateway.Limit, false)
	if err != nil {
		s.fail(w, err)
		return
	}
	report, err := analysis.AnalyzeBook(book, cfg.Scoring.ScoreConfig())
	if err != nil {
		s.fail(w, err)
		return
	}
	metrics.RecordAnalysis("book", report.Score)
	s.log.LogAnalysis("book", map[string]interface{}{"score": report.Score, "symbol": cfg.Symbol})
	s.render(w, rationaleTmpl, rationalePage{
		Title:     "Order Book Analysis",
		Symbol:    cfg.Symbol,
		Score:     report.Score,
		Rationale: rationale.OrderBook(report),
	})
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	cfg := s.config()
	trades, err := s.fetcher.FetchTrades(r.Context(), cfg.Symbol, cfg.Gateway.Limit, false)
	if err != nil {
		s.fail(w, err)
		return
	}
	report, err := analysis.AnalyzeTrades(trades, cfg.Scoring.ScoreConfig())
	if err != nil {
		s.fail(w, err)
		return
	}
	metrics.RecordAnalysis("trades", report.Score)
	s.log.LogAnalysis("trades", map[string]interface{}{"score": report.Score, "symbol": cfg.Symbol})
	s.render(w, rationaleTmpl, rationalePage{
		Title:     "Trades Analysis",
		Symbol:    cfg.Symbol,
		Score:     report.Score,
		Rationale: rationale.Trades(cfg.Symbol, report),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.LogError(err, nil)
	http.Error(w, fmt.Sprintf("Error: %v", err), http.StatusBadGateway)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func metricView(m analysis.MetricResult) metricViewData {
	value := formatValue(m.Values[0])
	if len(m.Values) == 2 {
		value = fmt.Sprintf("(%s, %s)", formatValue(m.Values[0]), formatValue(m.Values[1]))
	}
	return metricViewData{Name: m.Name, Value: value, Explanation: m.Explanation}
}

func metricViews(r *analysis.MarketReport) []metricViewData {
	out := make([]metricViewData, 0, 7)
	for _, m := range r.Metrics() {
		out = append(out, metricView(m))
	}
	return out
}

func compareRows(spot, fut *analysis.MarketReport) []compareRow {
	spotMetrics := spot.Metrics()
	futMetrics := fut.Metrics()
	rows := make([]compareRow, 0, len(spotMetrics))
	for i := range spotMetrics {
		rows = append(rows, compareRow{
			Name:        spotMetrics[i].Name,
			Spot:        metricView(spotMetrics[i]).Value,
			Futures:     metricView(futMetrics[i]).Value,
			Explanation: spotMetrics[i].Explanation,
		})
	}
	return rows
}
