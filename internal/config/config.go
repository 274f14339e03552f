// Package config loads the tool configuration from file, environment, and
// defaults. Precedence: flags > env > config file > defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/giilab/giiscope/pkg/errors"
)

// Config is the full tool configuration.
type Config struct {
	// DataPath is the GII CSV to load.
	DataPath string `mapstructure:"data_path" yaml:"data_path"`

	// OutputDir receives reports, charts, and saved models.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// ModelPath is where train writes and predict/serve read the bundle.
	ModelPath string `mapstructure:"model_path" yaml:"model_path"`

	// Seed drives every random choice in the pipeline.
	Seed int64 `mapstructure:"seed" yaml:"seed"`

	// Folds is the cross-validation fold count.
	Folds int `mapstructure:"folds" yaml:"folds"`

	// Trials is the randomized-search trial count.
	Trials int `mapstructure:"trials" yaml:"trials"`

	// NumTrees and MaxDepth configure the baseline forest.
	NumTrees int `mapstructure:"num_trees" yaml:"num_trees"`
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// ListenAddr is the scenario server's bind address.
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Load reads configuration with the standard precedence. cfgFile may be
// empty, in which case giiscope.yaml in the working directory is tried.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GIISCOPE")
	v.AutomaticEnv()

	v.SetDefault("data_path", "Gender_Inequality_Index.csv")
	v.SetDefault("output_dir", "out")
	v.SetDefault("model_path", filepath.Join("out", "model.gob"))
	v.SetDefault("seed", 42)
	v.SetDefault("folds", 5)
	v.SetDefault("trials", 20)
	v.SetDefault("num_trees", 200)
	v.SetDefault("max_depth", 0)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read config")
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("giiscope")
		v.SetConfigType("yaml")
		// Optional when not named explicitly.
		_ = v.ReadInConfig()
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if c.Folds < 2 {
		return nil, errors.NewValueError("config", "folds must be at least 2")
	}
	return &c, nil
}

// Save writes the configuration to path as YAML.
func Save(c *Config, path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "mkdir config dir")
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
