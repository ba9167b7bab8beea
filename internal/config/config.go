package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spectree/toolaudit/internal/audit"
)

// FileNames are the config files Find looks for, in order.
var FileNames = []string{"toolaudit.toml", "toolaudit.yaml", "toolaudit.yml"}

type Config struct {
	Path string `toml:"-" yaml:"-"`

	Prefix             string   `toml:"prefix" yaml:"prefix"`
	Marker             string   `toml:"marker" yaml:"marker"`
	Sources            []string `toml:"sources" yaml:"sources"`
	Exclude            []string `toml:"exclude" yaml:"exclude"`
	Docs               []string `toml:"docs" yaml:"docs"`
	DeprecationMarkers []string `toml:"deprecation_markers" yaml:"deprecation_markers"`
	DeprecationWindow  int      `toml:"deprecation_window" yaml:"deprecation_window"`
	DescriptionLength  int      `toml:"description_length" yaml:"description_length"`
	Lookahead          int      `toml:"lookahead" yaml:"lookahead"`
	Format             string   `toml:"format" yaml:"format"`
}

func Default() Config {
	return Config{
		Prefix:             audit.DefaultPrefix,
		Marker:             audit.DefaultMarker,
		Sources:            []string{"packages/mcp/src/tools/**/*.ts"},
		Exclude:            []string{"**/*.test.ts"},
		Docs:               []string{"docs/mcp/*.md"},
		DeprecationMarkers: append([]string{}, audit.DefaultDeprecationMarkers...),
		DeprecationWindow:  audit.DefaultDeprecationWindow,
		DescriptionLength:  audit.DefaultDescriptionLength,
		Lookahead:          audit.DefaultLookahead,
		Format:             FormatText,
	}
}

// SourceOptions maps the config onto the source extractor settings.
func (c Config) SourceOptions() audit.SourceOptions {
	return audit.SourceOptions{
		Prefix:             c.Prefix,
		Marker:             c.Marker,
		DeprecationMarkers: c.DeprecationMarkers,
		DeprecationWindow:  c.DeprecationWindow,
		DescriptionLength:  c.DescriptionLength,
		Lookahead:          c.Lookahead,
	}
}

// Find returns the first config file present in dir, or "" when none is.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		if !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// ParseFile decodes a TOML or YAML config file without applying defaults.
func ParseFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(contents, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(contents, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config file %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = absPath
	return cfg, nil
}

// Load resolves the effective config for root: defaults, then the config
// file (explicit path or the one Find locates), then overrides. The result
// is validated.
func Load(root, path string, overrides Config) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		found, err := Find(root)
		if err != nil {
			return Config{}, err
		}
		path = found
	}
	if path != "" {
		parsed, err := ParseFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = Merge(cfg, parsed)
	}

	cfg = Merge(cfg, overrides)
	if err := Validate(cfg); err != nil {
		if cfg.Path != "" {
			return Config{}, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return Config{}, err
	}
	return cfg, nil
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
