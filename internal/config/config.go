package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Gesture  GestureConfig  `mapstructure:"gesture"`
	Routing  RoutingConfig  `mapstructure:"routing"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
}

// UIConfig holds board presentation settings. The board works in pixels;
// CellPixels is the pixel width of one terminal cell.
type UIConfig struct {
	Zoom        string  `mapstructure:"zoom"`
	CellPixels  float64 `mapstructure:"cell_pixels"`
	WeekCells   int     `mapstructure:"week_cells"`
	MonthCells  int     `mapstructure:"month_cells"`
	RowHeight   float64 `mapstructure:"row_height"`
	PaddingDays int     `mapstructure:"padding_days"`
}

// GestureConfig holds drag thresholds in pixels.
type GestureConfig struct {
	ClickThreshold  float64 `mapstructure:"click_threshold"`
	MinBarWidth     float64 `mapstructure:"min_bar_width"`
	CreateThreshold float64 `mapstructure:"create_threshold"`
}

// RoutingConfig holds dependency path settings.
type RoutingConfig struct {
	Gap float64 `mapstructure:"gap"`
}

// LogConfig controls use-case logging. An empty File logs to stderr.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Path:          filepath.Join(homeDir(), ".gantt", "gantt.db"),
			BusyTimeoutMS: 5000,
		},
		UI: UIConfig{
			Zoom:        string(domain.GranularityWeek),
			CellPixels:  8,
			WeekCells:   7,
			MonthCells:  10,
			RowHeight:   16,
			PaddingDays: 14,
		},
		Gesture: GestureConfig{
			ClickThreshold:  3,
			MinBarWidth:     16,
			CreateThreshold: 10,
		},
		Routing: RoutingConfig{Gap: 15},
	}
}

// Load reads configuration from defaults, the optional config file and env.
// Env var overrides use prefix GANTT_ with dots replaced by underscores.
func Load() (Config, error) {
	v := viper.New()
	setValues(Default(), v.SetDefault)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("GANTT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "gantt"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GANTT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := domain.ParseGranularity(c.UI.Zoom); err != nil {
		return Config{}, fmt.Errorf("ui.zoom: %w", err)
	}
	return c, nil
}

// Save writes cfg to the config file, creating the directory if needed.
// The board uses it to persist the zoom level across sessions.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setValues(cfg, v.Set)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path is the config file Save writes to.
func Path() string {
	if p := os.Getenv("GANTT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "gantt", "config.yaml")
}

// Zoom returns the configured granularity, falling back to week.
func (c Config) Zoom() domain.Granularity {
	g, err := domain.ParseGranularity(c.UI.Zoom)
	if err != nil {
		return domain.GranularityWeek
	}
	return g
}

// ColumnWidth is the pixel width of one timeline column at g.
func (c Config) ColumnWidth(g domain.Granularity) float64 {
	cells := c.UI.WeekCells
	if g == domain.GranularityMonth {
		cells = c.UI.MonthCells
	}
	return float64(cells) * c.UI.CellPixels
}

func setValues(c Config, set func(string, any)) {
	set("database.path", c.Database.Path)
	set("database.busy_timeout_ms", c.Database.BusyTimeoutMS)
	set("ui.zoom", c.UI.Zoom)
	set("ui.cell_pixels", c.UI.CellPixels)
	set("ui.week_cells", c.UI.WeekCells)
	set("ui.month_cells", c.UI.MonthCells)
	set("ui.row_height", c.UI.RowHeight)
	set("ui.padding_days", c.UI.PaddingDays)
	set("gesture.click_threshold", c.Gesture.ClickThreshold)
	set("gesture.min_bar_width", c.Gesture.MinBarWidth)
	set("gesture.create_threshold", c.Gesture.CreateThreshold)
	set("routing.gap", c.Routing.Gap)
	set("log.enabled", c.Log.Enabled)
	set("log.file", c.Log.File)
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}
