package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Config represents the auracoil configuration.
type Config struct {
	Command        string            `json:"command"`
	Model          string            `json:"model"`
	DocPath        string            `json:"docPath"`
	// OutputFile, when set, names a file (relative to the repository root)
	// the reviewer command writes its response to; it is then preferred
	// over captured stdout.
	OutputFile     string            `json:"outputFile,omitempty"`
	TimeoutSeconds int               `json:"timeoutSeconds"`
	RecentCommits  int               `json:"recentCommits"`
	Env            map[string]string `json:"env,omitempty"`
	Bundle         BundleConfig      `json:"bundle"`
	Cache          CacheConfig       `json:"cache"`
}

// BundleConfig bounds evidence bundle construction.
type BundleConfig struct {
	MaxFiles     int      `json:"maxFiles"`
	MaxTotalSize int64    `json:"maxTotalSize"`
	MaxTokens    int      `json:"maxTokens"`
	Exclude      []string `json:"exclude,omitempty"`
}

// CacheConfig controls reviewer-response caching.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Command:        "claude",
		Model:          "claude-sonnet-4-20250514",
		DocPath:        "README.md",
		TimeoutSeconds: 1800,
		RecentCommits:  10,
		Bundle: BundleConfig{
			MaxFiles:     40,
			MaxTotalSize: 400_000,
			MaxTokens:    100_000,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for auracoil.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "auracoil"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "auracoil"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "auracoil"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "auracoil"), nil
	default:
		return filepath.Join(home, ".config", "auracoil"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Command != "" {
		dst.Command = src.Command
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.DocPath != "" {
		dst.DocPath = src.DocPath
	}
	if src.OutputFile != "" {
		dst.OutputFile = src.OutputFile
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.RecentCommits > 0 {
		dst.RecentCommits = src.RecentCommits
	}
	if len(src.Env) > 0 {
		dst.Env = src.Env
	}
	if src.Bundle.MaxFiles > 0 {
		dst.Bundle.MaxFiles = src.Bundle.MaxFiles
	}
	if src.Bundle.MaxTotalSize > 0 {
		dst.Bundle.MaxTotalSize = src.Bundle.MaxTotalSize
	}
	if src.Bundle.MaxTokens > 0 {
		dst.Bundle.MaxTokens = src.Bundle.MaxTokens
	}
	if len(src.Bundle.Exclude) > 0 {
		dst.Bundle.Exclude = src.Bundle.Exclude
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("AURACOIL_COMMAND"); v != "" {
		cfg.Command = v
	}
	if v := os.Getenv("AURACOIL_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("AURACOIL_DOC"); v != "" {
		cfg.DocPath = v
	}
	if v := os.Getenv("AURACOIL_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["command"]; ok && v != "" {
		cfg.Command = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["doc"]; ok && v != "" {
		cfg.DocPath = v
	}
	if v, ok := overrides["timeout"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v, ok := overrides["maxFiles"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bundle.MaxFiles = n
		}
	}
	if v, ok := overrides["maxTotalSize"]; ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Bundle.MaxTotalSize = n
		}
	}
	if v, ok := overrides["maxTokens"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bundle.MaxTokens = n
		}
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "command":
		cfg.Command = value
	case "model":
		cfg.Model = value
	case "doc":
		cfg.DocPath = value
	case "outputFile":
		cfg.OutputFile = value
	case "timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeout must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	case "recentCommits":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("recentCommits must be an integer: %w", err)
		}
		cfg.RecentCommits = n
	case "maxFiles":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxFiles must be an integer: %w", err)
		}
		cfg.Bundle.MaxFiles = n
	case "maxTotalSize":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("maxTotalSize must be an integer: %w", err)
		}
		cfg.Bundle.MaxTotalSize = n
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.Bundle.MaxTokens = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
