package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kochabx/dashkit/api/dashboard"
)

const dateLayout = time.DateOnly

// period holds --from/--to; the default is the month up to today
type period struct {
	from string
	to   string
}

func (p *period) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.from, "from", "", "start date, YYYY-MM-DD (default: a month before --to)")
	cmd.Flags().StringVar(&p.to, "to", "", "end date, YYYY-MM-DD (default: today)")
}

func (p *period) resolve(now time.Time) (time.Time, time.Time, error) {
	to := now
	if p.to != "" {
		t, err := time.Parse(dateLayout, p.to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
		}
		to = t
	}
	from := to.AddDate(0, -1, 0)
	if p.from != "" {
		t, err := time.Parse(dateLayout, p.from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
		}
		from = t
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from %s is after --to %s", from.Format(dateLayout), to.Format(dateLayout))
	}
	return from, to, nil
}

func (c *cli) newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reporting dashboard stats",
	}
	cmd.AddCommand(c.newTilesCmd(), c.newExpenseCmd())
	return cmd
}

type tileOutput struct {
	Resource string `json:"resource"`
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (c *cli) newTilesCmd() *cobra.Command {
	var (
		p         period
		resources []string
		locations []string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "tiles",
		Short: "Load stats tiles concurrently",
		Long: `Loads every --resource (default: the whole JFM catalog) for the given
locations and period. Tiles load in parallel, bounded by client.workers;
a failing tile is reported next to the others.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := p.resolve(time.Now())
			if err != nil {
				return err
			}
			if len(resources) == 0 {
				resources = dashboard.Resources(dashboard.Stats)
			}

			req := dashboard.StatsRequest{From: from, To: to, Locations: locations, Tags: tags}
			if req.Tags == nil {
				req.Tags = []string{}
			}
			tiles, err := dashboard.New(c.client).LoadTiles(cmd.Context(), req, resources, c.settings.Client.Workers)
			if err != nil {
				return err
			}

			out := make([]tileOutput, 0, len(tiles))
			failed := 0
			for _, t := range tiles {
				o := tileOutput{Resource: t.Resource}
				if t.Err != nil {
					o.Error = t.Err.Error()
					failed++
				} else if t.Data != nil {
					o.Data = t.Data
				}
				out = append(out, o)
			}
			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if failed == len(tiles) && failed > 0 {
				return fmt.Errorf("all %d tiles failed", failed)
			}
			return nil
		},
	}

	p.bind(cmd)
	cmd.Flags().StringSliceVar(&resources, "resource", nil, "stats resource, repeatable (e.g. Sales, ROI)")
	cmd.Flags().StringSliceVar(&locations, "location", nil, "location id, repeatable")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "contact tag, repeatable")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}

func (c *cli) newExpenseCmd() *cobra.Command {
	var (
		p         period
		locations []string
		total     float64
	)

	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record ad spend for locations over a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := p.resolve(time.Now())
			if err != nil {
				return err
			}
			err = dashboard.New(c.client).SetExpense(cmd.Context(), dashboard.ExpenseRequest{
				Locations: locations,
				From:      from,
				To:        to,
				Total:     total,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "expense saved")
			return err
		},
	}

	p.bind(cmd)
	cmd.Flags().StringSliceVar(&locations, "location", nil, "location id, repeatable")
	cmd.Flags().Float64Var(&total, "total", 0, "amount spent")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}
