package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kochabx/dashkit/config"
	"github.com/kochabx/dashkit/core/fetch"
	"github.com/kochabx/dashkit/core/host"
	"github.com/kochabx/dashkit/core/notify"
	"github.com/kochabx/dashkit/log"
	"github.com/kochabx/dashkit/transport/http/metrics"
)

// cli is the state shared by every command, built before any of them runs
type cli struct {
	configPath string
	hostname   string
	fallback   string
	logLevel   string

	settings *config.Settings
	config   *config.Config
	logger   *log.Logger
	recorder *notify.Recorder
	prom     *metrics.Prometheus
	client   *fetch.Client
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "dashkit",
		Short: "Client for the reporting, chat and survey backend",
		Long: `dashkit talks to the dashboard backend the way its web apps do: it
resolves the backend host, unwraps the {data, message, isOk} envelope and
reports every failure as a notification.

Settings come from dashkit.yaml (or --config) and environment variables
such as HOST_HOSTNAME; a missing file falls back to defaults.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default: ./dashkit.yaml)")
	root.PersistentFlags().StringVar(&c.hostname, "hostname", "", "hostname the dashboard is served on")
	root.PersistentFlags().StringVar(&c.fallback, "fallback", "", "backend host used for development hostnames")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		c.newGetCmd(),
		c.newLocationsCmd(),
		c.newReportCmd(),
		c.newSurveyCmd(),
		c.newChatCmd(),
	)
	return root
}

func (c *cli) init() error {
	settings, cfg, err := config.LoadSettings(c.configPath, config.WithOnChange(c.reloaded))
	if err != nil {
		return err
	}
	c.settings, c.config = settings, cfg
	c.applyFlags()

	logger, err := log.FromConfig(settings.Log, log.WithField("app", "dashkit"))
	if err != nil {
		return err
	}
	log.SetGlobalLogger(logger)
	c.logger = logger

	h, err := host.Resolve(settings.Host)
	if err != nil {
		return err
	}

	c.recorder = notify.NewRecorder(settings.Notify.Capacity, notify.WithTTL(settings.Notify.TTL))
	c.prom = metrics.New()
	observer, err := metrics.NewFetchObserver(c.prom)
	if err != nil {
		return err
	}

	opts := []fetch.Option{
		fetch.WithLogger(logger),
		fetch.WithObserver(observer),
		fetch.WithDefaultHeaders(settings.Client.Headers),
	}
	if settings.Client.Username != "" {
		opts = append(opts, fetch.WithBasicAuth(settings.Client.Username, settings.Client.Password))
	}
	c.client = fetch.New(h, notify.Multi(c.recorder, notify.NewLogger(logger)), opts...)

	logger.Debug().Str("host", h.String()).Msg("backend resolved")
	return nil
}

// applyFlags lays the command line overrides over the loaded settings
func (c *cli) applyFlags() {
	if c.hostname != "" {
		c.settings.Host.Hostname = c.hostname
	}
	if c.fallback != "" {
		c.settings.Host.Fallback = c.fallback
	}
	if c.logLevel != "" {
		c.settings.Log.Level = c.logLevel
	}
}

// reloaded keeps the flags in force after a config reload and follows log.level
func (c *cli) reloaded() {
	var level string
	c.config.Write(func() {
		c.applyFlags()
		level = c.settings.Log.Level
	})
	if lvl, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		log.SetGlobalLevel(lvl)
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
