package http

import "github.com/kochabx/dashkit/core/tag"

type Options struct {
	Metrics       MetricsOption       `json:"metrics" mapstructure:"metrics"`
	Health        HealthOption        `json:"health" mapstructure:"health"`
	Notifications NotificationsOption `json:"notifications" mapstructure:"notifications"`
}

type MetricsOption struct {
	Enabled                   bool   `json:"enabled" mapstructure:"enabled"`
	Path                      string `json:"path" mapstructure:"path" default:"/metrics"`
	EnabledGoCollector        bool   `json:"enabled_go_collector" mapstructure:"enabled_go_collector"`
	EnabledBuildInfoCollector bool   `json:"enabled_build_info_collector" mapstructure:"enabled_build_info_collector"`
}

func (m *MetricsOption) init() error {
	return tag.ApplyDefaults(m)
}

type HealthOption struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path" default:"/health"`
}

func (h *HealthOption) init() error {
	return tag.ApplyDefaults(h)
}

// NotificationsOption exposes the recorded user notices as JSON
type NotificationsOption struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path" default:"/notifications"`
}

func (n *NotificationsOption) init() error {
	return tag.ApplyDefaults(n)
}
