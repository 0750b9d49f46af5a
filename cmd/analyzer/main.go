package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"market-analyzer-go/analysis"
	"market-analyzer-go/config"
	"market-analyzer-go/gateway"
	"market-analyzer-go/infrastructure/logger"
	"market-analyzer-go/metrics"
	"market-analyzer-go/rationale"
	"market-analyzer-go/server"
)

type rootOptions struct {
	configPath string
	symbol     string
	limit      int
	futures    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "analyzer",
		Short: "Market microstructure analyzer",
		Long:  "Computes descriptive market metrics and bullishness heuristics from order book and trade snapshots.",
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to yaml config (defaults used when empty)")
	root.PersistentFlags().StringVar(&opts.symbol, "symbol", "", "symbol override, e.g. BTCUSDT")
	root.PersistentFlags().IntVar(&opts.limit, "limit", 0, "depth levels / trade count override")
	root.PersistentFlags().BoolVar(&opts.futures, "futures", false, "use the derivatives endpoints")

	root.AddCommand(newMarketCmd(opts))
	root.AddCommand(newBookCmd(opts))
	root.AddCommand(newTradesCmd(opts))
	root.AddCommand(newServeCmd(opts))
	return root
}

func loadConfig(opts *rootOptions) (config.AppConfig, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadWithEnvOverrides(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if opts.symbol != "" {
		cfg.Symbol = opts.symbol
	}
	if opts.limit > 0 {
		cfg.Gateway.Limit = opts.limit
	}
	return cfg, config.Validate(cfg)
}

func newGateway(cfg config.AppConfig) *gateway.Client {
	return &gateway.Client{
		BaseURL:        cfg.Gateway.BaseURL,
		FuturesBaseURL: cfg.Gateway.FuturesBaseURL,
		HTTPClient:     gateway.NewDefaultHTTPClient(time.Duration(cfg.Gateway.TimeoutMs) * time.Millisecond),
	}
}

// newMarketCmd prints the combined seven-metric report, one line per metric.
func newMarketCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Print the combined market report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			cli := newGateway(cfg)
			ctx := cmd.Context()
			book, err := cli.FetchBook(ctx, cfg.Symbol, cfg.Gateway.Limit, opts.futures)
			if err != nil {
				return err
			}
			trades, err := cli.FetchTrades(ctx, cfg.Symbol, cfg.Gateway.Limit, opts.futures)
			if err != nil {
				return err
			}
			report, err := analysis.Analyze(book, trades, cfg.Scoring.ScoreConfig())
			if err != nil {
				return err
			}
			metrics.RecordAnalysis("market", 0)
			for _, m := range report.Metrics() {
				if len(m.Values) == 2 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: (%v, %v)\n", m.Name, m.Values[0], m.Values[1])
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", m.Name, m.Values[0])
			}
			return nil
		},
	}
}

// newBookCmd prints the order-book bullishness report as JSON and exports
// the rationale markdown.
func newBookCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Analyze the order book and export its rationale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			book, err := newGateway(cfg).FetchBook(cmd.Context(), cfg.Symbol, cfg.Gateway.Limit, opts.futures)
			if err != nil {
				return err
			}
			report, err := analysis.AnalyzeBook(book, cfg.Scoring.ScoreConfig())
			if err != nil {
				return err
			}
			metrics.RecordAnalysis("book", report.Score)
			if err := printJSON(cmd, report); err != nil {
				return err
			}
			return writeRationale(cmd, out, rationale.OrderBook(report))
		},
	}
	cmd.Flags().StringVar(&out, "out", "order_book_rationale.md", "rationale output file, empty to skip")
	return cmd
}

// newTradesCmd prints the trade bullishness report as JSON and exports the
// rationale markdown.
func newTradesCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Analyze recent trades and export their rationale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			trades, err := newGateway(cfg).FetchTrades(cmd.Context(), cfg.Symbol, cfg.Gateway.Limit, opts.futures)
			if err != nil {
				return err
			}
			report, err := analysis.AnalyzeTrades(trades, cfg.Scoring.ScoreConfig())
			if err != nil {
				return err
			}
			metrics.RecordAnalysis("trades", report.Score)
			if err := printJSON(cmd, report); err != nil {
				return err
			}
			return writeRationale(cmd, out, rationale.Trades(cfg.Symbol, report))
		},
	}
	cmd.Flags().StringVar(&out, "out", "trades_rationale.md", "rationale output file, empty to skip")
	return cmd
}

// newServeCmd runs the HTTP presentation server with metrics and config
// hot reload.
func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis pages over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer log.Close()

			srv := server.New(cfg, newGateway(cfg), log)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if cfg.Server.MetricsListen != "" {
				metrics.StartMetricsServer(cfg.Server.MetricsListen)
			}
			if opts.configPath != "" {
				watcher := config.Watcher{Path: opts.configPath}
				go func() {
					_ = watcher.Start(ctx, srv.UpdateConfig)
				}()
			}

			httpServer := &http.Server{
				Addr:    cfg.Server.Listen,
				Handler: srv.Router(),
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			log.Info("serving analysis pages")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}

func writeRationale(cmd *cobra.Command, path, text string) error {
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write rationale: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rationale exported to %q.\n", path)
	return nil
}
