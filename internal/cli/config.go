package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/pipeline"
	"github.com/matzehuels/hassetower/pkg/render"
)

const (
	// envPrefix marks environment variables read as config, e.g. HASSE_REDIS_URL.
	envPrefix = "HASSE_"

	// projectConfigFile is looked up in the working directory.
	projectConfigFile = ".hasse.yaml"

	defaultListen = "127.0.0.1:8080"
)

// Config holds persisted defaults for the CLI.
// Precedence: defaults < user file < project file < environment < flags.
type Config struct {
	Formats     []string      `koanf:"formats"`
	Detailed    bool          `koanf:"detailed"`
	PrintTuples bool          `koanf:"print_tuples"`
	NoCache     bool          `koanf:"no_cache"`
	CacheDir    string        `koanf:"cache_dir"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
	RedisURL    string        `koanf:"redis_url"`
	Listen      string        `koanf:"listen"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Formats:  []string{string(pipeline.DefaultFormat)},
		CacheTTL: pipeline.DefaultArtifactTTL,
		Listen:   defaultListen,
	}
}

// defaults flattens DefaultConfig into koanf keys.
func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"formats":   d.Formats,
		"cache_ttl": d.CacheTTL.String(),
		"listen":    d.Listen,
	}
}

// UserConfigPath returns $XDG_CONFIG_HOME/hasse/config.yaml.
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}

// LoadConfig loads defaults, the user config, the project config and the
// environment, in that order. projectPath overrides .hasse.yaml; unlike the
// default location it must exist.
func LoadConfig(projectPath string) (*Config, error) {
	k := koanf.New(".")
	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, err
		}
	}

	if userPath, err := UserConfigPath(); err == nil {
		if err := loadYAMLConfig(k, userPath, false); err != nil {
			return nil, err
		}
	}

	required := projectPath != ""
	if projectPath == "" {
		projectPath = projectConfigFile
	}
	if err := loadYAMLConfig(k, projectPath, required); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment config: %w", err)
	}

	return finalizeConfig(k)
}

// loadYAMLConfig merges a YAML file into k. Missing optional files are skipped.
func loadYAMLConfig(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "load config %s", path)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: HASSE_REDIS_URL -> redis_url
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

func finalizeConfig(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// A comma-separated HASSE_FORMATS arrives as one string.
	if s, ok := k.Get("formats").(string); ok {
		cfg.Formats = strings.Split(s, ",")
	}

	if _, err := render.ParseFormats(cfg.Formats); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "config formats")
	}
	if cfg.CacheTTL < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "cache_ttl must not be negative")
	}
	return &cfg, nil
}

// formats returns the configured formats, parsed.
func (c Config) formats() []render.Format {
	out, err := render.ParseFormats(c.Formats)
	if err != nil {
		return nil
	}
	return out
}
