package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultGridRows  = 5
	defaultGridCols  = 5
	defaultDockSlots = 5
	defaultTheme     = "catppuccin-mocha"
)

type Config struct {
	GridRows    int      `mapstructure:"grid_rows"`
	GridCols    int      `mapstructure:"grid_cols"`
	DockSlots   int      `mapstructure:"dock_slots"`
	Theme       string   `mapstructure:"theme"`
	DBPath      string   `mapstructure:"db_path"`
	SearchPaths []string `mapstructure:"search_paths"`
	StrictSort  bool     `mapstructure:"strict_sort"`
}

func defaultConfig() *Config {
	return &Config{
		GridRows:  defaultGridRows,
		GridCols:  defaultGridCols,
		DockSlots: defaultDockSlots,
		Theme:     defaultTheme,
	}
}

// DefaultDBPath resolves the favorites database location when db_path
// is not configured.
func DefaultDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "deskmux", "favorites.db")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "deskmux", "favorites.db")
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "deskmux"))
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "deskmux"))
	v.SetConfigType("yaml")

	v.SetDefault("grid_rows", defaultGridRows)
	v.SetDefault("grid_cols", defaultGridCols)
	v.SetDefault("dock_slots", defaultDockSlots)
	v.SetDefault("theme", defaultTheme)
	v.SetDefault("strict_sort", false)

	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg.validated(), nil
	}

	// fallback to TOML if yaml missing
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg.validated(), nil
	}

	// legacy shell config
	if legacyCfg, err := loadLegacy(); err == nil && legacyCfg != nil {
		return legacyCfg.validated(), nil
	}

	return cfg, nil
}

// validated clamps nonsensical grid dimensions back to the defaults.
func (c *Config) validated() *Config {
	if c.GridRows < 1 {
		c.GridRows = defaultGridRows
	}
	if c.GridCols < 1 {
		c.GridCols = defaultGridCols
	}
	if c.DockSlots < 1 {
		c.DockSlots = defaultDockSlots
	}
	return c
}

func loadLegacy() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "deskmux", "config")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := defaultConfig()
	found := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := parts[0]
		val := strings.Trim(parts[1], "\"'")
		switch key {
		case "DESKMUX_GRID_ROWS":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.GridRows = n
				found = true
			}
		case "DESKMUX_GRID_COLS":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.GridCols = n
				found = true
			}
		case "DESKMUX_DB_PATH":
			cfg.DBPath = val
			found = true
		case "DESKMUX_THEME":
			cfg.Theme = val
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("no legacy keys")
	}
	return cfg, nil
}
