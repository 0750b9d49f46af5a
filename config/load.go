package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"market-analyzer-go/analysis"
	"market-analyzer-go/infrastructure/logger"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Symbol  string        `yaml:"symbol"`
	Gateway GatewayConfig `yaml:"gateway"`
	Scoring ScoringConfig `yaml:"scoring"`
	Server  ServerConfig  `yaml:"server"`
	Logging logger.Config `yaml:"logging"`
}

type GatewayConfig struct {
	BaseURL        string `yaml:"baseURL"`        // spot REST base
	FuturesBaseURL string `yaml:"futuresBaseURL"` // derivatives REST base
	Limit          int    `yaml:"limit"`          // depth levels / trade count per fetch
	TimeoutMs      int    `yaml:"timeoutMs"`
}

// ScoringConfig exposes every heuristic constant of the analysis core so
// weights can be tuned without code edits.
type ScoringConfig struct {
	NearBand      float64      `yaml:"nearBand"`
	VolumeFloor   float64      `yaml:"volumeFloor"`
	LargeTradeQty float64      `yaml:"largeTradeQty"`
	DepthLevels   int          `yaml:"depthLevels"`
	Book          BookWeights  `yaml:"book"`
	Trade         TradeWeights `yaml:"trade"`
}

type BookWeights struct {
	Near  float64 `yaml:"near"`
	Total float64 `yaml:"total"`
	Top   float64 `yaml:"top"`
}

type TradeWeights struct {
	Volume    float64 `yaml:"volume"`
	MarketBuy float64 `yaml:"marketBuy"`
	Size      float64 `yaml:"size"`
}

type ServerConfig struct {
	Listen        string `yaml:"listen"`
	MetricsListen string `yaml:"metricsListen"` // empty disables the metrics endpoint
}

// Default returns the configuration used when no file is supplied.
func Default() AppConfig {
	sc := analysis.DefaultScoreConfig()
	return AppConfig{
		Symbol: "BTCUSDT",
		Gateway: GatewayConfig{
			BaseURL:        "https://api.binance.com",
			FuturesBaseURL: "https://fapi.binance.com",
			Limit:          1000,
			TimeoutMs:      5000,
		},
		Scoring: ScoringConfig{
			NearBand:      sc.NearBand,
			VolumeFloor:   sc.VolumeFloor,
			LargeTradeQty: sc.LargeTradeQty,
			DepthLevels:   sc.DepthLevels,
			Book:          BookWeights{Near: sc.Book.Near, Total: sc.Book.Total, Top: sc.Book.Top},
			Trade:         TradeWeights{Volume: sc.Trade.Volume, MarketBuy: sc.Trade.MarketBuy, Size: sc.Trade.Size},
		},
		Server: ServerConfig{
			Listen:        ":4200",
			MetricsListen: ":9100",
		},
		Logging: logger.DefaultConfig(),
	}
}

// Load reads YAML config from path and applies basic validation. Fields not
// present in the file keep their defaults.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides endpoint fields from env
// vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("MA_GATEWAY_BASE_URL"); v != "" {
		cfg.Gateway.BaseURL = v
	}
	if v := os.Getenv("MA_GATEWAY_FUTURES_BASE_URL"); v != "" {
		cfg.Gateway.FuturesBaseURL = v
	}
	return cfg, Validate(cfg)
}

// Validate ensures required fields are present and sane.
func Validate(cfg AppConfig) error {
	if cfg.Symbol == "" {
		return errors.New("symbol is required")
	}
	if cfg.Gateway.BaseURL == "" {
		return errors.New("gateway.baseURL is required")
	}
	if cfg.Gateway.Limit <= 0 {
		return errors.New("gateway.limit must be > 0")
	}
	if cfg.Gateway.TimeoutMs <= 0 {
		return errors.New("gateway.timeoutMs must be > 0")
	}
	if cfg.Scoring.NearBand <= 0 {
		return errors.New("scoring.nearBand must be > 0")
	}
	if cfg.Scoring.VolumeFloor <= 0 {
		return errors.New("scoring.volumeFloor must be > 0")
	}
	if cfg.Scoring.LargeTradeQty <= 0 {
		return errors.New("scoring.largeTradeQty must be > 0")
	}
	if cfg.Scoring.DepthLevels <= 0 {
		return errors.New("scoring.depthLevels must be > 0")
	}
	for name, w := range map[string]float64{
		"scoring.book.near":       cfg.Scoring.Book.Near,
		"scoring.book.total":      cfg.Scoring.Book.Total,
		"scoring.book.top":        cfg.Scoring.Book.Top,
		"scoring.trade.volume":    cfg.Scoring.Trade.Volume,
		"scoring.trade.marketBuy": cfg.Scoring.Trade.MarketBuy,
		"scoring.trade.size":      cfg.Scoring.Trade.Size,
	} {
		if w <= 0 || w > 1 {
			return fmt.Errorf("%s must be in (0, 1]", name)
		}
	}
	return nil
}

// ScoreConfig converts the yaml scoring section into the analysis core's
// configuration value.
func (s ScoringConfig) ScoreConfig() analysis.ScoreConfig {
	return analysis.ScoreConfig{
		NearBand:      s.NearBand,
		VolumeFloor:   s.VolumeFloor,
		LargeTradeQty: s.LargeTradeQty,
		DepthLevels:   s.DepthLevels,
		Book:          analysis.BookWeights{Near: s.Book.Near, Total: s.Book.Total, Top: s.Book.Top},
		Trade:         analysis.TradeWeights{Volume: s.Trade.Volume, MarketBuy: s.Trade.MarketBuy, Size: s.Trade.Size},
	}
}
