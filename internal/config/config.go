package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DocsRoot      string   `mapstructure:"docs_root" yaml:"docs_root"`
	SummaryFile   string   `mapstructure:"summary_file" yaml:"summary_file"`
	HeadingParser string   `mapstructure:"heading_parser" yaml:"heading_parser"`
	Exclude       []string `mapstructure:"exclude" yaml:"exclude"`
	UseGitignore  bool     `mapstructure:"use_gitignore" yaml:"use_gitignore"`

	// Watch mode
	WatchDebounceMs int `mapstructure:"watch_debounce_ms" yaml:"watch_debounce_ms"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Global {
	return &Global{
		SummaryFile:     "SUMMARY.md",
		HeadingParser:   "line",
		Exclude:         []string{},
		WatchDebounceMs: 300,
		LogLevel:        "info",
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.mdsummary/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MDSUMMARY")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("docs_root", d.DocsRoot)
	v.SetDefault("summary_file", d.SummaryFile)
	v.SetDefault("heading_parser", d.HeadingParser)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("use_gitignore", d.UseGitignore)
	v.SetDefault("watch_debounce_ms", d.WatchDebounceMs)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.SummaryFile == "" {
		c.SummaryFile = d.SummaryFile
	}
	if c.WatchDebounceMs <= 0 {
		c.WatchDebounceMs = d.WatchDebounceMs
	}
	return &c, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".mdsummary"), nil
}
