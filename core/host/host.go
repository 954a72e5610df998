// Package host resolves the base URL every backend path is appended to.
package host

import (
	"net/url"
	"slices"
	"strings"

	"github.com/kochabx/dashkit/errors"
)

const (
	DefaultScheme      = "https"
	DefaultDevHostname = "localhost"
)

// Config describes how the host is derived from the hostname the app is served on
type Config struct {
	// Hostname the dashboard is viewed on.
	Hostname string `json:"hostname" mapstructure:"hostname" default:"localhost"`
	// Fallback replaces the host when Hostname is a development hostname.
	// A bare hostname gets the scheme prefixed.
	Fallback     string   `json:"fallback" mapstructure:"fallback"`
	DevHostnames []string `json:"dev_hostnames" mapstructure:"dev_hostnames" default:"localhost"`
	Scheme       string   `json:"scheme" mapstructure:"scheme" default:"https" validate:"oneof=http https"`
}

// Host is the resolved base URL, e.g. "https://dash.example.com". It never
// ends with a slash.
type Host string

// Resolve derives the host from c
func Resolve(c Config) (Host, error) {
	hostname := strings.TrimSpace(c.Hostname)
	if hostname == "" {
		return "", errors.BadRequest("hostname is required")
	}

	scheme := c.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}

	dev := c.DevHostnames
	if len(dev) == 0 {
		dev = []string{DefaultDevHostname}
	}

	if slices.Contains(dev, hostname) {
		fallback := strings.TrimSpace(c.Fallback)
		if fallback == "" {
			return "", errors.BadRequest("hostname %q needs a fallback host", hostname)
		}
		return normalize(scheme, fallback)
	}

	return normalize(scheme, hostname)
}

// MustResolve panics when c cannot be resolved
func MustResolve(c Config) Host {
	h, err := Resolve(c)
	if err != nil {
		panic(err)
	}
	return h
}

func normalize(scheme, raw string) (Host, error) {
	if !strings.Contains(raw, "://") {
		raw = scheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", errors.BadRequest("invalid host %q", raw)
	}
	return Host(strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/")), nil
}

// URL appends path to the host. Paths are used verbatim, query included.
func (h Host) URL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return string(h) + path
}

func (h Host) String() string {
	return string(h)
}
