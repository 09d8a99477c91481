package conf

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Config is the top level sigtype.yaml configuration. It describes the
	// classes annotations may refer to along with how output is produced.
	Config struct {
		// Owner is the class whose methods are being annotated. self resolves
		// against it.
		Owner string `yaml:"owner,omitempty"`
		// Workers bounds how many signatures resolve in parallel.
		Workers int `yaml:"workers,omitempty"`
		// TimeFormat is a strftime pattern for the report header. Empty disables it.
		TimeFormat string `yaml:"time_format,omitempty"`
		// Color is auto, always or never.
		Color   string      `yaml:"color,omitempty"`
		Classes []ClassDecl `yaml:"classes"`
		Aliases []AliasDecl `yaml:"aliases"`
	}
	// ClassDecl declares a class, its generic type members and its methods.
	ClassDecl struct {
		Name        string   `yaml:"name"`
		TypeMembers []string `yaml:"type_members,omitempty"`
		Methods     []string `yaml:"methods,omitempty"`
	}
	// AliasDecl declares a constant that names another class, Name = Class.
	AliasDecl struct {
		Name  string `yaml:"name"`
		Class string `yaml:"class"`
	}
)

const (
	// ColorAuto colours output when writing to a terminal.
	ColorAuto = "auto"
	// ColorAlways always colours output.
	ColorAlways = "always"
	// ColorNever never colours output.
	ColorNever = "never"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Workers: DEFAULTWORKERS,
		Color:   ColorAuto,
	}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Parse(file)
}

// Parse reads and validates a config from yaml source.
func Parse(src io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(src)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for values that cannot be used.
func (cfg *Config) Validate() error {
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always or never, got %q", cfg.Color)
	}
	seen := map[string]bool{}
	for _, class := range cfg.Classes {
		if class.Name == "" {
			return errors.New("class without a name")
		} else if seen[class.Name] {
			return fmt.Errorf("class %s declared twice", class.Name)
		}
		seen[class.Name] = true
	}
	for _, alias := range cfg.Aliases {
		if alias.Name == "" || alias.Class == "" {
			return errors.New("alias needs both a name and a class")
		} else if seen[alias.Name] {
			return fmt.Errorf("alias %s collides with another constant", alias.Name)
		}
		seen[alias.Name] = true
	}
	return nil
}
