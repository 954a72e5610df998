package config

import (
	"time"

	"github.com/kochabx/dashkit/core/host"
	"github.com/kochabx/dashkit/log"
)

// Settings is the layout of dashkit.yaml
type Settings struct {
	Host   host.Config  `json:"host" mapstructure:"host"`
	Client ClientConfig `json:"client" mapstructure:"client"`
	Log    log.Config   `json:"log" mapstructure:"log"`
	Notify NotifyConfig `json:"notify" mapstructure:"notify"`
	Chat   ChatConfig   `json:"chat" mapstructure:"chat"`
	Server ServerConfig `json:"server" mapstructure:"server"`
}

// ClientConfig applies to every backend call
type ClientConfig struct {
	Headers  map[string]string `json:"headers" mapstructure:"headers"`
	Username string            `json:"username" mapstructure:"username"`
	Password string            `json:"password" mapstructure:"password"`
	// Workers bounds concurrent report tile loads
	Workers int `json:"workers" mapstructure:"workers" default:"4" validate:"min=1,max=64"`
}

// NotifyConfig sizes the in-memory notification buffer
type NotifyConfig struct {
	Capacity int           `json:"capacity" mapstructure:"capacity" default:"100" validate:"min=1"`
	TTL      time.Duration `json:"ttl" mapstructure:"ttl" default:"5m"`
}

// ChatConfig drives the chat poller
type ChatConfig struct {
	LocationID string  `json:"location_id" mapstructure:"location_id"`
	ChatIDs    []int64 `json:"chat_ids" mapstructure:"chat_ids"`
	Spec       string  `json:"spec" mapstructure:"spec" default:"@every 30s" validate:"required"`
	Sync       bool    `json:"sync" mapstructure:"sync" default:"true"`
	// MaxFailures consecutive unreachable polls pause polling for Cooldown; 0 never pauses
	MaxFailures int           `json:"max_failures" mapstructure:"max_failures" default:"5" validate:"min=0"`
	Cooldown    time.Duration `json:"cooldown" mapstructure:"cooldown" default:"2m"`
}

// ServerConfig is the daemon's own HTTP endpoint
type ServerConfig struct {
	Addr          string `json:"addr" mapstructure:"addr" default:":9090"`
	Metrics       bool   `json:"metrics" mapstructure:"metrics" default:"true"`
	Health        bool   `json:"health" mapstructure:"health" default:"true"`
	Notifications bool   `json:"notifications" mapstructure:"notifications" default:"true"`
	// AllowOrigins may read the endpoints from a browser
	AllowOrigins []string `json:"allow_origins" mapstructure:"allow_origins" default:"*"`
	AccessLog    bool     `json:"access_log" mapstructure:"access_log"`
}

// LoadSettings reads settings from path, or searches for dashkit.yaml when
// path is empty. A missing file leaves defaults and environment in place.
func LoadSettings(path string, opts ...Option) (*Settings, *Config, error) {
	s := new(Settings)
	opts = append([]Option{WithOptional()}, opts...)
	if path != "" {
		opts = append(opts, WithFile(path))
	}

	c := New(s, opts...)
	if err := c.Load(); err != nil {
		return nil, nil, err
	}
	return s, c, nil
}
