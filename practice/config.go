package practice

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from a YAML file with
// environment-variable overrides on top.
type Config struct {
	Listen       string `yaml:"listen" env:"POSELOOP_LISTEN"`
	DatabasePath string `yaml:"database" env:"POSELOOP_DATABASE"`
	ImagesDir    string `yaml:"images_dir" env:"POSELOOP_IMAGES_DIR"`
	Meta         struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"meta"`
}

// DefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultConfig() *Config {
	cfg := &Config{
		Listen:       ":8080",
		DatabasePath: "poseloop.db",
		ImagesDir:    "images",
	}
	cfg.Meta.Title = "poseloop"
	return cfg
}

// LoadConfig reads filename as YAML and applies environment overrides.
// An empty filename skips the file and starts from defaults.
func LoadConfig(filename string) (*Config, error) {
	ret := DefaultConfig()
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, ret); err != nil {
			return nil, fmt.Errorf("while parsing config %s: %w", filename, err)
		}
	}
	if err := env.Parse(ret); err != nil {
		return nil, fmt.Errorf("while reading config overrides from environment: %w", err)
	}
	if ret.Meta.Title == "" {
		ret.Meta.Title = "poseloop"
	}
	return ret, nil
}
