package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/planbiir/kmlday/internal/track"
)

// EnvPrefix is prepended to every environment override, e.g. KMLDAY_INPUT
const EnvPrefix = "KMLDAY"

// Config keys
const (
	KeyInput     = "input"
	KeyOutput    = "output"
	KeyReport    = "report"
	KeyExclude   = "filter.exclude"
	KeyLogLevel  = "logLevel"
	KeyLogPretty = "logPretty"
	KeyProgress  = "progress"
	KeyDryRun    = "dryRun"
)

// ErrMissingInput is returned by Load when no input file is configured
var ErrMissingInput = errors.New("no input file configured")

// Config is the resolved configuration of one run
type Config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Report string `yaml:"report"`

	Filter struct {
		Exclude string `yaml:"exclude"`
	} `yaml:"filter"`

	LogLevel  string `yaml:"logLevel"`
	LogPretty bool   `yaml:"logPretty"`
	Progress  bool   `yaml:"progress"`
	DryRun    bool   `yaml:"dryRun"`
}

// New returns a viper instance with defaults and KMLDAY_ env overrides set
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInput, "")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyReport, "")
	v.SetDefault(KeyExclude, track.DefaultExclude)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogPretty, true)
	v.SetDefault(KeyProgress, false)
	v.SetDefault(KeyDryRun, false)
}

// ReadFile merges a YAML, JSON or TOML config file into v
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Load resolves a Config from v. Output and report paths default to names
// derived from the input file.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config

	cfg.Input = v.GetString(KeyInput)
	cfg.Output = v.GetString(KeyOutput)
	cfg.Report = v.GetString(KeyReport)
	cfg.Filter.Exclude = v.GetString(KeyExclude)
	cfg.LogLevel = v.GetString(KeyLogLevel)
	cfg.LogPretty = v.GetBool(KeyLogPretty)
	cfg.Progress = v.GetBool(KeyProgress)
	cfg.DryRun = v.GetBool(KeyDryRun)

	if cfg.Input == "" {
		return cfg, ErrMissingInput
	}

	ext := filepath.Ext(cfg.Input)
	base := strings.TrimSuffix(cfg.Input, ext)
	if cfg.Output == "" {
		cfg.Output = base + "_by_date.kml"
	}
	if cfg.Report == "" {
		cfg.Report = base + "_report.csv"
	}

	return cfg, nil
}

// YAML renders the configuration as a YAML document
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
