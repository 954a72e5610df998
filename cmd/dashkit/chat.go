package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/kochabx/dashkit/api/chat"
	"github.com/kochabx/dashkit/app"
	"github.com/kochabx/dashkit/core/breaker"
	"github.com/kochabx/dashkit/log"
	middleware "github.com/kochabx/dashkit/middleware/http"
	khttp "github.com/kochabx/dashkit/transport/http"
)

func (c *cli) newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Telephony chat widget",
	}
	cmd.AddCommand(c.newChatWatchCmd(), c.newChatSendCmd())
	return cmd
}

func (c *cli) newChatWatchCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll chats and log new messages until interrupted",
		Long: `Polls the configured chats (chat.chat_ids, plus every chat of
chat.location_id) on the chat.spec schedule. New messages are logged and
inbound ones raise a notification. The notifications, /metrics and /health
are served on server.addr. The settings file is watched for changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.settings
			brk := breaker.New(s.Chat.MaxFailures, s.Chat.Cooldown)
			poller, err := chat.NewPoller(chat.New(c.client), s.Chat.Spec,
				chat.WithChats(s.Chat.ChatIDs...),
				chat.WithLocation(s.Chat.LocationID),
				chat.WithSync(s.Chat.Sync),
				chat.WithBreaker(brk),
				chat.WithPollerLogger(c.logger))
			if err != nil {
				return err
			}

			if once {
				poller.Poll(cmd.Context())
				return nil
			}

			if err := c.config.Watch(); err != nil {
				log.Warn().Err(err).Msg("config watch disabled")
			}

			gin.SetMode(gin.ReleaseMode)
			engine := gin.New()
			engine.Use(middleware.Recovery(middleware.RecoveryConfig{StackTrace: true, Logger: c.logger}))
			if s.Server.AccessLog {
				engine.Use(middleware.Logger(middleware.LoggerConfig{Logger: c.logger, SkipPaths: []string{"/health"}}))
			}
			cors := middleware.DefaultCorsConfig()
			cors.AllowOrigins = s.Server.AllowOrigins
			engine.Use(middleware.Cors(cors))
			server := khttp.NewServer(s.Server.Addr, engine,
				khttp.WithMeta(khttp.Meta{Name: "dashkit"}),
				khttp.WithRegistry(c.prom),
				khttp.WithMetricsOptions(khttp.MetricsOption{
					Enabled:                   s.Server.Metrics,
					EnabledGoCollector:        true,
					EnabledBuildInfoCollector: true,
				}),
				khttp.WithHealthOptions(khttp.HealthOption{Enabled: s.Server.Health}),
				khttp.WithHealthCheck("chat_backend", func(context.Context) error {
					if st := brk.State(); st == breaker.StateOpen {
						return fmt.Errorf("polling paused, breaker %s", st)
					}
					return nil
				}),
				khttp.WithNotifications(khttp.NotificationsOption{Enabled: s.Server.Notifications}, c.recorder),
			)

			a := app.New(
				app.WithName("dashkit-chat"),
				app.WithContext(cmd.Context()),
				app.WithServers(poller, server),
				app.WithClose("logger", func(context.Context) error { return c.logger.Close() }, time.Second),
			)
			return a.Start()
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "poll once and exit")
	return cmd
}

func (c *cli) newChatSendCmd() *cobra.Command {
	var req chat.SendRequest

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Text a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := chat.New(c.client).Send(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent to chat %d\n", res.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&req.LocationID, "location", "", "location id")
	cmd.Flags().StringVar(&req.ContactID, "contact", "", "contact id")
	cmd.Flags().StringVar(&req.Text, "text", "", "message text")
	cmd.Flags().StringVar(&req.ManagerName, "manager", "", "name shown as the sender")
	return cmd
}
