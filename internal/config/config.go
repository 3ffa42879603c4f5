// Package config loads the cipher settings used by the command line tool.
//
// Values are resolved in this order, later sources winning: defaults, YAML file, .env files,
// process environment. Command line flags are applied by the caller on top of the result.
package config

import (
	"os"
	"strconv"

	"github.com/hengadev/errsx"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-hybrid-cipher/pkg/cipher"
)

// Environment variables read by Load.
const (
	EnvShift       = "HYBRID_SHIFT"
	EnvBlockSize   = "HYBRID_BLOCK_SIZE"
	EnvLabel       = "HYBRID_LABEL"
	EnvKeyword     = "HYBRID_KEYWORD"
	EnvConcurrency = "HYBRID_CONCURRENCY"
	EnvLogLevel    = "HYBRID_LOG_LEVEL"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Config holds the cipher parameters and the runtime settings of the tool.
type Config struct {
	Shift       int    `yaml:"shift"`
	BlockSize   int    `yaml:"block_size"`
	Label       string `yaml:"label"`
	Keyword     string `yaml:"keyword"`
	Concurrency int    `yaml:"concurrency"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() *Config {
	return &Config{
		Shift:       3,
		BlockSize:   4,
		Label:       "ADFGVX",
		Keyword:     "CIPHER",
		Concurrency: 1,
		LogLevel:    "info",
	}
}

// Load reads the YAML file at path on top of the defaults, then applies the HYBRID_* variables
// found in envFiles and in the process environment. A missing file is not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "failed to read config")
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(err, "failed to parse config")
			}
		}
	}

	dotenv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]

		return v, ok
	}
	if err := cfg.applyEnvOverrides(lookup); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readEnvFiles(paths []string) (map[string]string, error) {
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return map[string]string{}, nil
	}

	env, err := godotenv.Read(existing...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read env file")
	}

	return env, nil
}

func (c *Config) applyEnvOverrides(lookup func(string) (string, bool)) error {
	var errs errsx.Map

	setInt := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Set(key, errors.Errorf("%q is not an integer", v))
			return
		}
		*dst = n
	}
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	setInt(EnvShift, &c.Shift)
	setInt(EnvBlockSize, &c.BlockSize)
	setString(EnvLabel, &c.Label)
	setString(EnvKeyword, &c.Keyword)
	setInt(EnvConcurrency, &c.Concurrency)
	setString(EnvLogLevel, &c.LogLevel)

	return errs.AsError()
}

// Validate reports every invalid field at once, keyed by its YAML name.
func (c *Config) Validate() error {
	var errs errsx.Map

	if c.BlockSize < 1 {
		errs.Set("block_size", errors.Wrapf(cipher.ErrInvalidBlockSize, "got %d", c.BlockSize))
	}
	if err := cipher.ValidateLabel(c.Label); err != nil {
		errs.Set("label", err)
	}
	if len(c.Keyword) < cipher.MinKeywordLength {
		errs.Set("keyword", errors.Wrapf(cipher.ErrInvalidKeyword, "got %d characters", len(c.Keyword)))
	}
	if c.Concurrency < 1 {
		errs.Set("concurrency", errors.Errorf("must be at least 1, got %d", c.Concurrency))
	}
	if !logLevels[c.LogLevel] {
		errs.Set("log_level", errors.Errorf("unknown level %q", c.LogLevel))
	}

	return errs.AsError()
}

// Params returns the cipher parameters held by c.
func (c *Config) Params() cipher.Params {
	return cipher.Params{
		Shift:     c.Shift,
		BlockSize: c.BlockSize,
		Label:     c.Label,
		Keyword:   c.Keyword,
	}
}
