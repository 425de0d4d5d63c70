package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"cellstats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Columns ColumnsConfig `yaml:"columns" envconfig:"COLUMNS"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes the dataset to ingest. Leaf keys derive from the
// field names (CELLSTATS_INPUT_PATH and so on); explicit envconfig names are
// avoided on leaves because they double as unprefixed alternates and PATH is
// always set in the environment.
type InputConfig struct {
	Path    string `yaml:"path" default:"cells.csv" validate:"required"`
	Format  string `yaml:"format" default:"csv" validate:"oneof=csv xlsx"`
	Sheet   string `yaml:"sheet"`
	Workers int    `yaml:"workers" default:"1" validate:"min=1"`
}

// ColumnsConfig maps the dataset's column headers to their roles. The
// defaults match the public cells.csv handset dataset; override them when
// ingesting a file with renamed headers.
type ColumnsConfig struct {
	OEM             string `yaml:"oem" default:"oem" validate:"required"`
	Model           string `yaml:"model" default:"model" validate:"required"`
	LaunchAnnounced string `yaml:"launch_announced" split_words:"true" default:"launch_announced" validate:"required"`
	LaunchStatus    string `yaml:"launch_status" split_words:"true" default:"launch_status" validate:"required"`
	BodyWeight      string `yaml:"body_weight" split_words:"true" default:"body_weight" validate:"required"`
	DisplaySize     string `yaml:"display_size" split_words:"true" default:"display_size" validate:"required"`
	FeaturesSensors string `yaml:"features_sensors" split_words:"true" default:"features_sensors" validate:"required"`
}

// OutputConfig controls where report files are written
type OutputConfig struct {
	Dir      string `yaml:"dir" default:"reports"`
	CSVFile  string `yaml:"csv_file" split_words:"true" default:"report.csv"`
	JSONFile string `yaml:"json_file" split_words:"true" default:"report.json"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" split_words:"true" default:"logs/cellstats.log"`
}

// Load builds the configuration from environment variables layered over an
// optional config.yaml file, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("CELLSTATS", &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, errors.NewConfigError("failed to load config from file", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg, *Default())
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all default values applied and no
// environment or file lookups. Intended for tests and embedding callers.
func Default() *Config {
	var cfg Config
	// envconfig applies `default` tags even when no variables are set; an
	// empty prefix guarantees no real variable can leak in.
	_ = envconfig.Process("CELLSTATS_TEST_DEFAULTS", &cfg)
	return &cfg
}

func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}

// mergeConfigs layers file values under environment values. envconfig has
// already applied the `default` tags, so "unset by the environment" means
// "still equal to the default": those fields take the file's value when the
// file provides one. A field the environment changed always wins.
func mergeConfigs(fileConfig, envConfig, defaults Config) Config {
	overlayString(&envConfig.Input.Path, fileConfig.Input.Path, defaults.Input.Path)
	overlayString(&envConfig.Input.Format, fileConfig.Input.Format, defaults.Input.Format)
	overlayString(&envConfig.Input.Sheet, fileConfig.Input.Sheet, defaults.Input.Sheet)
	overlayInt(&envConfig.Input.Workers, fileConfig.Input.Workers, defaults.Input.Workers)

	overlayString(&envConfig.Columns.OEM, fileConfig.Columns.OEM, defaults.Columns.OEM)
	overlayString(&envConfig.Columns.Model, fileConfig.Columns.Model, defaults.Columns.Model)
	overlayString(&envConfig.Columns.LaunchAnnounced, fileConfig.Columns.LaunchAnnounced, defaults.Columns.LaunchAnnounced)
	overlayString(&envConfig.Columns.LaunchStatus, fileConfig.Columns.LaunchStatus, defaults.Columns.LaunchStatus)
	overlayString(&envConfig.Columns.BodyWeight, fileConfig.Columns.BodyWeight, defaults.Columns.BodyWeight)
	overlayString(&envConfig.Columns.DisplaySize, fileConfig.Columns.DisplaySize, defaults.Columns.DisplaySize)
	overlayString(&envConfig.Columns.FeaturesSensors, fileConfig.Columns.FeaturesSensors, defaults.Columns.FeaturesSensors)

	overlayString(&envConfig.Output.Dir, fileConfig.Output.Dir, defaults.Output.Dir)
	overlayString(&envConfig.Output.CSVFile, fileConfig.Output.CSVFile, defaults.Output.CSVFile)
	overlayString(&envConfig.Output.JSONFile, fileConfig.Output.JSONFile, defaults.Output.JSONFile)

	overlayString(&envConfig.Logging.Level, fileConfig.Logging.Level, defaults.Logging.Level)
	overlayString(&envConfig.Logging.Format, fileConfig.Logging.Format, defaults.Logging.Format)
	overlayString(&envConfig.Logging.Output, fileConfig.Logging.Output, defaults.Logging.Output)
	overlayString(&envConfig.Logging.FilePath, fileConfig.Logging.FilePath, defaults.Logging.FilePath)

	return envConfig
}

func overlayString(env *string, file, def string) {
	if *env == def && file != "" {
		*env = file
	}
}

func overlayInt(env *int, file, def int) {
	if *env == def && file != 0 {
		*env = file
	}
}

func (c *Config) validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Logging.Output != "stdout" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging file path required for output %q", c.Logging.Output)
	}

	return nil
}

func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}
