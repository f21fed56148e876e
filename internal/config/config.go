package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config represents the itempicker configuration.
type Config struct {
	Wheel WheelConfig       `yaml:"wheel"`
	Log   LogConfig         `yaml:"log"`
	Lists map[string]string `yaml:"lists"` // Named item lists, shell-quoted words
}

// WheelConfig holds the look and feel of a picker wheel.
type WheelConfig struct {
	RowUnits        int    `yaml:"row_units"`         // Scroll steps per row; higher is smoother
	FrameIntervalMs int    `yaml:"frame_interval_ms"` // Delay between animation frames (0 = jump)
	DividerChar     string `yaml:"divider_char"`      // Rune repeated for the lines around the centre row
	DividerColor    string `yaml:"divider_color"`     // ANSI 256 colour or #rrggbb
	Width           int    `yaml:"width"`             // Column width of one wheel (0 = auto)
	ShowHelp        bool   `yaml:"show_help"`         // Show key help below the wheel
	Mouse           bool   `yaml:"mouse"`             // Enable mouse wheel and click
	Ellipsis        string `yaml:"ellipsis"`          // Where long labels are cut: end or middle
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

// Limits for wheel settings.
const (
	MinRowUnits = 1
	MaxRowUnits = 16

	MaxFrameIntervalMs = 1000
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Wheel: WheelConfig{
			RowUnits:        4,
			FrameIntervalMs: 16,
			DividerChar:     "─",
			DividerColor:    "196",
			Width:           0,
			ShowHelp:        true,
			Mouse:           true,
			Ellipsis:        "end",
		},
		Log: LogConfig{
			Level: "warn",
			File:  "",
		},
		Lists: map[string]string{
			"months": "Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// A lists section in the file replaces the defaults instead of merging
	// into them, so a removed list stays removed.
	var sections map[string]yaml.Node
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if _, ok := sections["lists"]; ok {
		cfg.Lists = nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Lists == nil {
		cfg.Lists = make(map[string]string)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "wheel.row_units" or "lists.months"
func (c *Config) Get(key string) (string, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "wheel":
		return c.getWheelField(field)
	case "log":
		return c.getLogField(field)
	case "lists":
		v, ok := c.Lists[field]
		if !ok {
			return "", fmt.Errorf("unknown list: %s", field)
		}
		return v, nil
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "wheel":
		return c.setWheelField(field, value)
	case "log":
		return c.setLogField(field, value)
	case "lists":
		if c.Lists == nil {
			c.Lists = make(map[string]string)
		}
		if value == "" {
			delete(c.Lists, field)
			return nil
		}
		c.Lists[field] = value
		return nil
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func splitKey(key string) (string, string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.New("key must be in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

func (c *Config) getWheelField(field string) (string, error) {
	switch field {
	case "row_units":
		return strconv.Itoa(c.Wheel.RowUnits), nil
	case "frame_interval_ms":
		return strconv.Itoa(c.Wheel.FrameIntervalMs), nil
	case "divider_char":
		return c.Wheel.DividerChar, nil
	case "divider_color":
		return c.Wheel.DividerColor, nil
	case "width":
		return strconv.Itoa(c.Wheel.Width), nil
	case "show_help":
		return strconv.FormatBool(c.Wheel.ShowHelp), nil
	case "mouse":
		return strconv.FormatBool(c.Wheel.Mouse), nil
	case "ellipsis":
		return c.Wheel.Ellipsis, nil
	default:
		return "", fmt.Errorf("unknown field: wheel.%s", field)
	}
}

func (c *Config) setWheelField(field, value string) error {
	switch field {
	case "row_units":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for row_units: %w", err)
		}
		c.Wheel.RowUnits = v
	case "frame_interval_ms":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for frame_interval_ms: %w", err)
		}
		c.Wheel.FrameIntervalMs = v
	case "divider_char":
		c.Wheel.DividerChar = value
	case "divider_color":
		c.Wheel.DividerColor = value
	case "width":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for width: %w", err)
		}
		c.Wheel.Width = v
	case "show_help":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for show_help: %w", err)
		}
		c.Wheel.ShowHelp = v
	case "mouse":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for mouse: %w", err)
		}
		c.Wheel.Mouse = v
	case "ellipsis":
		c.Wheel.Ellipsis = value
	default:
		return fmt.Errorf("unknown field: wheel.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Wheel.RowUnits < MinRowUnits || c.Wheel.RowUnits > MaxRowUnits {
		return fmt.Errorf("wheel.row_units must be between %d and %d (got: %d)", MinRowUnits, MaxRowUnits, c.Wheel.RowUnits)
	}

	if c.Wheel.FrameIntervalMs < 0 || c.Wheel.FrameIntervalMs > MaxFrameIntervalMs {
		return fmt.Errorf("wheel.frame_interval_ms must be between 0 and %d (got: %d)", MaxFrameIntervalMs, c.Wheel.FrameIntervalMs)
	}

	if utf8.RuneCountInString(c.Wheel.DividerChar) != 1 {
		return fmt.Errorf("wheel.divider_char must be a single character (got: %q)", c.Wheel.DividerChar)
	}

	if c.Wheel.Ellipsis != "end" && c.Wheel.Ellipsis != "middle" {
		return fmt.Errorf("wheel.ellipsis must be end or middle (got: %s)", c.Wheel.Ellipsis)
	}

	if c.Wheel.Width < 0 {
		return errors.New("wheel.width must be >= 0")
	}

	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// SlogLevel converts the configured level for log/slog.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ITEMPICKER_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("ITEMPICKER_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("ITEMPICKER_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("ITEMPICKER_MOUSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Wheel.Mouse = b
		}
	}
}

// ListKeys returns user-facing configuration keys, including one key per
// configured list.
func (c *Config) ListKeys() []string {
	keys := []string{
		"wheel.row_units",
		"wheel.frame_interval_ms",
		"wheel.divider_char",
		"wheel.divider_color",
		"wheel.width",
		"wheel.show_help",
		"wheel.mouse",
		"wheel.ellipsis",
		"log.level",
		"log.file",
	}
	names := make([]string, 0, len(c.Lists))
	for name := range c.Lists {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keys = append(keys, "lists."+name)
	}
	return keys
}
