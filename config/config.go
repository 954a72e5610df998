// Package config loads dashkit.yaml into a settings struct: struct-tag
// defaults first, then the file, then environment overrides, then validation.
package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/dashkit/core/validator"
	"github.com/kochabx/dashkit/log"
)

const DefaultFile = "dashkit.yaml"

// Loader fills a target from some source and reports later changes to it
type Loader interface {
	Load(target any) error
	Watch(callback func()) error
}

// Config manages application configuration
type Config struct {
	mu       sync.RWMutex
	viper    *viper.Viper
	validate validator.Validator
	target   any
	loader   Loader
	file     string
	optional bool
	onChange []func()
}

// New creates a Config unmarshalling into target. Without WithLoader or
// WithFile it searches the working directory for dashkit.yaml.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.NewWithOptions(viper.ExperimentalBindStruct()),
		validate: validator.Validate,
		target:   target,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		var l *FileLoader
		if c.file != "" {
			l = NewExplicitFileLoader(c.file, c.viper, c.validate)
		} else {
			l = NewFileLoader(DefaultFile, []string{"."}, c.viper, c.validate)
		}
		l.optional = c.optional
		c.loader = l
	}

	return c
}

// Load reads the configuration using the configured loader
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loader.Load(c.target)
}

// Reload loads again and runs the change callbacks on success
func (c *Config) Reload() error {
	if err := c.Load(); err != nil {
		return err
	}

	c.mu.RLock()
	callbacks := append([]func(){}, c.onChange...)
	c.mu.RUnlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// Read runs fn while no reload can modify the target
func (c *Config) Read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// Write runs fn with reloads blocked, for callers that patch the target
func (c *Config) Write(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// Watch reloads the configuration whenever the file changes
func (c *Config) Watch() error {
	return c.loader.Watch(func() {
		log.Info().Msg("config change detected")

		if err := c.Reload(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}

		log.Info().Msg("config reloaded successfully")
	})
}

// GetViper returns the underlying viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
