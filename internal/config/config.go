package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/wahlandcase/attuned.issuekey/internal/patterns"
)

// EnvPrefix prefixes environment overrides, e.g. ISSUEKEY_INSERT_AUTOMATICALLY=true
const EnvPrefix = "ISSUEKEY_"

// RepoFileNames are looked up in the work-tree root, first match wins
var RepoFileNames = []string{".issuekey.toml", ".issuekey.yaml", ".issuekey.yml"}

type Config struct {
	IssuePattern        string   `koanf:"issue_pattern" toml:"issue_pattern"`
	MergePattern        string   `koanf:"merge_pattern" toml:"merge_pattern"`
	MagicPattern        string   `koanf:"magic_pattern" toml:"magic_pattern"`
	Ignore              []string `koanf:"ignore" toml:"ignore"`
	InsertAutomatically bool     `koanf:"insert_automatically" toml:"insert_automatically"`
	Backend             string   `koanf:"backend" toml:"backend"`

	// Files that contributed to this config, in load order (not serialized)
	sources []string
}

func DefaultConfig() *Config {
	return &Config{
		IssuePattern: patterns.DefaultIssuePattern,
		MergePattern: patterns.DefaultMergePattern,
		Ignore:       []string{},
		Backend:      "cli",
	}
}

func defaultsMap() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"issue_pattern":        d.IssuePattern,
		"merge_pattern":        d.MergePattern,
		"magic_pattern":        d.MagicPattern,
		"ignore":               d.Ignore,
		"insert_automatically": d.InsertAutomatically,
		"backend":              d.Backend,
	}
}

// UserConfigPath returns $XDG_CONFIG_HOME/issuekey/config.toml
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "issuekey", "config.toml")
}

// LoadOptions selects the files Load layers over the defaults
type LoadOptions struct {
	// UserFile is the per-user config; skipped when empty or missing
	UserFile string
	// RepoRoot is searched for RepoFileNames; skipped when empty
	RepoRoot string
	// File is an explicitly requested config and must exist
	File string
}

// Load builds the effective configuration. Later layers win:
// defaults, user file, repository file, explicit file, environment.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	var sources []string
	loadFile := func(path string) error {
		parser, err := parserFor(path)
		if err != nil {
			return err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		sources = append(sources, path)
		return nil
	}

	if opts.UserFile != "" && fileExists(opts.UserFile) {
		if err := loadFile(opts.UserFile); err != nil {
			return nil, err
		}
	}

	if opts.RepoRoot != "" {
		for _, name := range RepoFileNames {
			path := filepath.Join(opts.RepoRoot, name)
			if fileExists(path) {
				if err := loadFile(path); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	if opts.File != "" {
		if !fileExists(opts.File) {
			return nil, fmt.Errorf("config file %s does not exist", opts.File)
		}
		if err := loadFile(opts.File); err != nil {
			return nil, err
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.sources = sources

	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Sources returns the files that contributed to the config, in load order
func (c *Config) Sources() []string {
	return c.sources
}

// Patterns compiles every configured pattern. Any invalid pattern makes the
// whole configuration invalid.
func (c *Config) Patterns() (*patterns.Set, error) {
	set, err := patterns.Compile(patterns.Sources{
		Issue:  c.IssuePattern,
		Merge:  c.MergePattern,
		Magic:  c.MagicPattern,
		Ignore: c.Ignore,
	})
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	return set, nil
}

// Encode writes the config as TOML
func (c *Config) Encode(w io.Writer) error {
	return gotoml.NewEncoder(w).Encode(c)
}

// Save writes the config as TOML to path, creating its directory
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := gotoml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ConfigurationError reports configuration that cannot be used, such as a
// pattern that does not compile.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
