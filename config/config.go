package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/ini.v1"
)

const (
	configFile = "config.ini"
	appDir     = "floatdim"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Gesture holds the tap / drag / hold classification thresholds.
type Gesture struct {
	HoldMs           int  `ini:"hold_ms"`
	TouchSlop        int  `ini:"touch_slop"`
	CancelTogglesDim bool `ini:"cancel_toggles_dim"`
}

// Hold returns the hold threshold as a duration.
func (g Gesture) Hold() time.Duration {
	return time.Duration(g.HoldMs) * time.Millisecond
}

// Layout holds screen and overlay window sizes in pixels.
type Layout struct {
	ScreenWidth  int `ini:"screen_width"`
	ScreenHeight int `ini:"screen_height"`
	IconWidth    int `ini:"icon_width"`
	IconHeight   int `ini:"icon_height"`
	CloseWidth   int `ini:"close_width"`
	CloseHeight  int `ini:"close_height"`
	Padding      int `ini:"padding"`
}

// Server holds the JSON-RPC server settings.
type Server struct {
	Listen      string `ini:"listen"`
	CORS        bool   `ini:"cors"`
	MaxOverlays int    `ini:"max_overlays"`
}

type Config struct {
	Gesture Gesture
	Layout  Layout
	Server  Server
}

// Default returns the built-in configuration. The icon asset is 144x(144*126/176)
// and the close asset 92x92, both scaled by 170/144.
func Default() Config {
	return Config{
		Gesture: Gesture{
			HoldMs:    600,
			TouchSlop: 24,
		},
		Layout: Layout{
			ScreenWidth:  1080,
			ScreenHeight: 2340,
			IconWidth:    170,
			IconHeight:   121,
			CloseWidth:   108,
			CloseHeight:  108,
			Padding:      14,
		},
		Server: Server{
			Listen:      "localhost:12100",
			MaxOverlays: 16,
		},
	}
}

// Validate checks that sizes and thresholds are usable.
func (c Config) Validate() error {
	switch {
	case c.Gesture.HoldMs <= 0:
		return fmt.Errorf("%w: gesture.hold_ms must be positive, got %d", ErrInvalid, c.Gesture.HoldMs)
	case c.Gesture.TouchSlop < 0:
		return fmt.Errorf("%w: gesture.touch_slop must not be negative, got %d", ErrInvalid, c.Gesture.TouchSlop)
	case c.Layout.ScreenWidth <= 0 || c.Layout.ScreenHeight <= 0:
		return fmt.Errorf("%w: layout screen size must be positive, got %dx%d", ErrInvalid, c.Layout.ScreenWidth, c.Layout.ScreenHeight)
	case c.Layout.IconWidth <= 0 || c.Layout.IconHeight <= 0:
		return fmt.Errorf("%w: layout icon size must be positive, got %dx%d", ErrInvalid, c.Layout.IconWidth, c.Layout.IconHeight)
	case c.Layout.CloseWidth <= 0 || c.Layout.CloseHeight <= 0:
		return fmt.Errorf("%w: layout close size must be positive, got %dx%d", ErrInvalid, c.Layout.CloseWidth, c.Layout.CloseHeight)
	case c.Layout.Padding < 0:
		return fmt.Errorf("%w: layout.padding must not be negative, got %d", ErrInvalid, c.Layout.Padding)
	case c.Server.MaxOverlays <= 0:
		return fmt.Errorf("%w: server.max_overlays must be positive, got %d", ErrInvalid, c.Server.MaxOverlays)
	}
	return nil
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := file.Section("gesture").MapTo(&cfg.Gesture); err != nil {
		return cfg, fmt.Errorf("failed to parse [gesture] in %s: %w", path, err)
	}
	if err := file.Section("layout").MapTo(&cfg.Layout); err != nil {
		return cfg, fmt.Errorf("failed to parse [layout] in %s: %w", path, err)
	}
	if err := file.Section("server").MapTo(&cfg.Server); err != nil {
		return cfg, fmt.Errorf("failed to parse [server] in %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	file := ini.Empty()

	if err := file.Section("gesture").ReflectFrom(&cfg.Gesture); err != nil {
		return fmt.Errorf("failed to encode [gesture]: %w", err)
	}
	if err := file.Section("layout").ReflectFrom(&cfg.Layout); err != nil {
		return fmt.Errorf("failed to encode [layout]: %w", err)
	}
	if err := file.Section("server").ReflectFrom(&cfg.Server); err != nil {
		return fmt.Errorf("failed to encode [server]: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/floatdim/config.ini, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	return filepath.Join(configDir(), configFile)
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".config", appDir)
}
