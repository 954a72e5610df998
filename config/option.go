package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/dashkit/core/validator"
)

// Option is a function that configures a Config
type Option func(*Config)

// WithViper sets a custom viper instance
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		if v != nil {
			c.viper = v
		}
	}
}

// WithValidator sets a custom validator; nil disables validation
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader sets the configuration loader
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithFile reads exactly this file instead of searching for dashkit.yaml
func WithFile(path string) Option {
	return func(c *Config) {
		c.file = path
	}
}

// WithOptional keeps defaults and environment overrides when no file exists
func WithOptional() Option {
	return func(c *Config) {
		c.optional = true
	}
}

// WithOnChange registers a callback run after every successful reload
func WithOnChange(fn func()) Option {
	return func(c *Config) {
		if fn != nil {
			c.onChange = append(c.onChange, fn)
		}
	}
}
