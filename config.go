package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// AppConfig holds all persistent user settings.
type AppConfig struct {
	LogLevel        string `json:"logLevel"`
	StartMinimized  bool   `json:"startMinimized"`
	PlacementStrict bool   `json:"placementStrict"` // abort startup if the window cannot be placed
	WindowWidth     int    `json:"windowWidth"`
	WindowHeight    int    `json:"windowHeight"`
}

const (
	defaultWindowWidth  = 420
	defaultWindowHeight = 640
)

var (
	appDataDir     string
	appDataDirOnce sync.Once
)

// DefaultConfig returns config with default values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		LogLevel:     "error",
		WindowWidth:  defaultWindowWidth,
		WindowHeight: defaultWindowHeight,
	}
}

// AppDataDir returns the path to ~/.pester/, creating it if needed.
// PESTER_HOME overrides the location.
func AppDataDir() string {
	appDataDirOnce.Do(func() {
		if dir := os.Getenv("PESTER_HOME"); dir != "" {
			appDataDir = dir
			os.MkdirAll(appDataDir, 0755)
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			// Fallback to exe directory
			if exe, err2 := os.Executable(); err2 == nil {
				appDataDir = filepath.Dir(exe)
			} else {
				appDataDir = "."
			}
			return
		}
		appDataDir = filepath.Join(home, ".pester")
		os.MkdirAll(appDataDir, 0755)
	})
	return appDataDir
}

// DataPath returns the full path for a file inside the data directory.
func DataPath(elem ...string) string {
	parts := append([]string{AppDataDir()}, elem...)
	return filepath.Join(parts...)
}

// configPath returns the config file path.
func configPath() string {
	return DataPath("config.json")
}

// LoadConfig reads config from ~/.pester/config.json.
// Returns default config if the file doesn't exist or can't be parsed.
func LoadConfig() *AppConfig {
	return loadConfigFile(configPath())
}

func loadConfigFile(path string) *AppConfig {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		Log.Warn("config file unreadable, using defaults", "path", path, "error", err)
		return DefaultConfig()
	}

	// Ensure window size has valid defaults
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = defaultWindowWidth
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = defaultWindowHeight
	}

	return cfg
}

// SaveConfig writes the config to ~/.pester/config.json.
func SaveConfig(cfg *AppConfig) error {
	return saveConfigFile(configPath(), cfg)
}

func saveConfigFile(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
