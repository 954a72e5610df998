package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kochabx/dashkit/api/dashboard"
	"github.com/kochabx/dashkit/core/fetch"
)

func (c *cli) newGetCmd() *cobra.Command {
	var (
		raw    bool
		method string
		data   string
	)

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Call a backend path and print its data",
		Long: `Calls <path> on the resolved host and prints the unwrapped data as JSON.
Use --raw for routes that do not answer with the envelope.

Example:
  dashkit get /settings/locations
  dashkit get /reports/stats/Sales --data '{"Locations":["loc-1"]}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			var opts []fetch.RequestOption
			if method != "" {
				opts = append(opts, fetch.WithMethod(strings.ToUpper(method)))
			}
			if data != "" {
				opts = append(opts, fetch.WithBody([]byte(data)))
				if method == "" {
					opts = append(opts, fetch.WithMethod(http.MethodPost))
				}
			}

			call := fetch.Fetch[json.RawMessage]
			if raw {
				call = fetch.Raw[json.RawMessage]
			}
			out, err := call(cmd.Context(), c.client, path, opts...)
			if err != nil {
				return err
			}
			if out == nil {
				return printJSON(cmd.OutOrStdout(), nil)
			}
			return printJSON(cmd.OutOrStdout(), *out)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "the route answers with bare JSON")
	cmd.Flags().StringVarP(&method, "method", "X", "", "HTTP method (default GET, or POST with --data)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	return cmd
}

func (c *cli) newLocationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locs, err := dashboard.New(c.client).Locations(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), locs)
		},
	}
}
