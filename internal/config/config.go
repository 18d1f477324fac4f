package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Scorer   ScorerConfig   `yaml:"scorer" mapstructure:"scorer"`
	Tiering  TieringConfig  `yaml:"tiering" mapstructure:"tiering"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Import   ImportConfig   `yaml:"import" mapstructure:"import"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ScorerConfig configures opportunity scoring. CategoryWeights maps a primary
// category to its energy weight; categories not in the map fall back to
// DefaultWeight.
type ScorerConfig struct {
	CategoryWeights map[string]float64 `yaml:"category_weights" mapstructure:"category_weights"`
	DefaultWeight   float64            `yaml:"default_weight" mapstructure:"default_weight"`
}

// TieringConfig configures decile partitioning and the decile→tier mapping.
// Buckets is the number of rank bands. When the entity count is not a
// multiple of Buckets, remainder entities go to the top bands. GoldDeciles
// bands from the top map to Gold, the next SilverDeciles to Silver, the rest
// to Bronze.
type TieringConfig struct {
	Buckets       int `yaml:"buckets" mapstructure:"buckets"`
	GoldDeciles   int `yaml:"gold_deciles" mapstructure:"gold_deciles"`
	SilverDeciles int `yaml:"silver_deciles" mapstructure:"silver_deciles"`
}

// PipelineConfig configures pipeline execution.
type PipelineConfig struct {
	ScoreWorkers int `yaml:"score_workers" mapstructure:"score_workers"`
}

// ImportConfig configures observation import.
type ImportConfig struct {
	Bounds BoundsConfig `yaml:"bounds" mapstructure:"bounds"`
}

// BoundsConfig is an optional lat/lng bounding box restricting imports to the
// study area. All-zero disables the filter.
type BoundsConfig struct {
	MinLat float64 `yaml:"min_lat" mapstructure:"min_lat"`
	MinLng float64 `yaml:"min_lng" mapstructure:"min_lng"`
	MaxLat float64 `yaml:"max_lat" mapstructure:"max_lat"`
	MaxLng float64 `yaml:"max_lng" mapstructure:"max_lng"`
}

// Enabled reports whether the bounding box is set.
func (b BoundsConfig) Enabled() bool {
	return b.MinLat != 0 || b.MinLng != 0 || b.MaxLat != 0 || b.MaxLng != 0
}

// ServerConfig configures the read-only HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("POIRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "poi-rank.db")
	v.SetDefault("scorer.default_weight", 1.0)
	v.SetDefault("tiering.buckets", 10)
	v.SetDefault("tiering.gold_deciles", 2)
	v.SetDefault("tiering.silver_deciles", 3)
	v.SetDefault("pipeline.score_workers", 8)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
