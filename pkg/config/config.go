package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultFile is the config file read from the working directory when --config is not given
const DefaultFile = "taskboard.toml"

// EnvPrefix prefixes environment overrides (e.g., TASKBOARD_PORT=9090)
const EnvPrefix = "TASKBOARD_"

// Config holds all configuration for the application
type Config struct {
	Port         int    `koanf:"port"`
	PresetsFile  string `koanf:"presets"`      // TOML file with preset definitions, "" = built-ins
	Preset       string `koanf:"preset"`       // Initially active preset id
	HistoryLimit int    `koanf:"history"`      // Undo/redo depth per stack
	Watch        bool   `koanf:"watch"`        // Hot-reload the presets file
	Verbosity    string `koanf:"verbosity"`    // error, warn, info, debug, trace
	VerboseCnt   int    `koanf:"verbose"`      // -v count
	JSONLogs     bool   `koanf:"json_logs"`    // Structured JSON logs instead of compact text
	ListPresets  bool   `koanf:"list_presets"` // Print presets and exit
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"port":         8080,
		"presets":      "",
		"preset":       "",
		"history":      50,
		"watch":        false,
		"verbosity":    "",
		"verbose":      0,
		"json_logs":    false,
		"list_presets": false,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file. The default file is optional; an explicit --config must exist.
	path, explicit := configFile(f)
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil && explicit {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	// 3. Environment Variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	return &cfg, nil
}

// configFile returns the config file path and whether it was set explicitly
func configFile(f *pflag.FlagSet) (string, bool) {
	if f == nil {
		return DefaultFile, false
	}
	flag := f.Lookup("config")
	if flag == nil || !flag.Changed {
		return DefaultFile, false
	}
	return flag.Value.String(), true
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
