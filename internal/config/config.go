package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/manifest-placeholders/internal/manifest"
)

const (
	defaultEnvFile  = ".env"
	defaultFormat   = manifest.FormatEnv
	defaultLogLevel = "info"

	envPrefix = "PLACEHOLDERS_"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	EnvFile          string
	RulesFile        string
	ParamsFiles      []string
	Params           map[string]string
	ParamsFromEnv    bool
	Format           manifest.Format
	Output           string
	ManifestTemplate string
	ManifestOutput   string
	LogLevel         string
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	EnvFile       string            `yaml:"env_file"`
	RulesFile     string            `yaml:"rules_file"`
	ParamsFiles   []string          `yaml:"params_files"`
	Params        map[string]string `yaml:"params"`
	ParamsFromEnv *bool             `yaml:"params_from_env"`
	Format        string            `yaml:"format"`
	Output        string            `yaml:"output"`
	Manifest      yamlManifest      `yaml:"manifest"`
	LogLevel      string            `yaml:"log_level"`
}

// yamlManifest represents the manifest section in YAML.
type yamlManifest struct {
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile       string
	EnvFile          *string
	RulesFile        *string
	ParamsFiles      []string
	Params           map[string]string
	ParamsFromEnv    *bool
	Format           *string
	Output           *string
	ManifestTemplate *string
	ManifestOutput   *string
	LogLevel         *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		EnvFile:  defaultEnvFile,
		Params:   map[string]string{},
		Format:   defaultFormat,
		LogLevel: defaultLogLevel,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.EnvFile != "" {
		cfg.EnvFile = yamlCfg.EnvFile
	}

	if yamlCfg.RulesFile != "" {
		cfg.RulesFile = yamlCfg.RulesFile
	}

	cfg.ParamsFiles = append(cfg.ParamsFiles, yamlCfg.ParamsFiles...)

	for k, v := range yamlCfg.Params {
		cfg.Params[k] = v
	}

	if yamlCfg.ParamsFromEnv != nil {
		cfg.ParamsFromEnv = *yamlCfg.ParamsFromEnv
	}

	if yamlCfg.Format != "" {
		format, err := manifest.ParseFormat(yamlCfg.Format)
		if err != nil {
			return fmt.Errorf("parse format: %w", err)
		}
		cfg.Format = format
	}

	if yamlCfg.Output != "" {
		cfg.Output = yamlCfg.Output
	}

	if yamlCfg.Manifest.Template != "" {
		cfg.ManifestTemplate = yamlCfg.Manifest.Template
	}

	if yamlCfg.Manifest.Output != "" {
		cfg.ManifestOutput = yamlCfg.Manifest.Output
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if path := getenv("ENV_FILE"); path != "" {
		cfg.EnvFile = path
	}

	if path := getenv("RULES_FILE"); path != "" {
		cfg.RulesFile = path
	}

	if raw := getenv("PARAMS_FROM_ENV"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%sPARAMS_FROM_ENV: %w", envPrefix, err)
		}
		cfg.ParamsFromEnv = value
	}

	if raw := getenv("FORMAT"); raw != "" {
		format, err := manifest.ParseFormat(raw)
		if err != nil {
			return fmt.Errorf("%sFORMAT: %w", envPrefix, err)
		}
		cfg.Format = format
	}

	if level := getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return nil
}

func getenv(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.EnvFile != nil && *overrides.EnvFile != "" {
		cfg.EnvFile = *overrides.EnvFile
	}

	if overrides.RulesFile != nil && *overrides.RulesFile != "" {
		cfg.RulesFile = *overrides.RulesFile
	}

	cfg.ParamsFiles = append(cfg.ParamsFiles, overrides.ParamsFiles...)

	for k, v := range overrides.Params {
		cfg.Params[k] = v
	}

	if overrides.ParamsFromEnv != nil {
		cfg.ParamsFromEnv = *overrides.ParamsFromEnv
	}

	if overrides.Format != nil && *overrides.Format != "" {
		format, err := manifest.ParseFormat(*overrides.Format)
		if err != nil {
			return fmt.Errorf("parse format: %w", err)
		}
		cfg.Format = format
	}

	if overrides.Output != nil && *overrides.Output != "" {
		cfg.Output = *overrides.Output
	}

	if overrides.ManifestTemplate != nil && *overrides.ManifestTemplate != "" {
		cfg.ManifestTemplate = *overrides.ManifestTemplate
	}

	if overrides.ManifestOutput != nil && *overrides.ManifestOutput != "" {
		cfg.ManifestOutput = *overrides.ManifestOutput
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.EnvFile == "" {
		return fmt.Errorf("env file path cannot be empty")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.ManifestOutput != "" && cfg.ManifestTemplate == "" {
		return fmt.Errorf("manifest output requires a manifest template")
	}
	return nil
}
