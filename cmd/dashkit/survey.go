package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kochabx/dashkit/api/survey"
)

func (c *cli) newSurveyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Survey wizard submissions",
	}
	cmd.AddCommand(c.newSurveySubmitCmd())
	return cmd
}

func (c *cli) newSurveySubmitCmd() *cobra.Command {
	var (
		location string
		workflow string
		form     survey.Form
		answers  []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a completed survey",
		Long: `Submits a survey for a location's workflow.

Example:
  dashkit survey submit --location loc-1 --workflow wf-1 \
    --name "Jane Roe" --phone "+1 555 010 2030" --email jane@example.com \
    --answer "Which area bothers you most?=Stomach"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range answers {
				q, v, ok := strings.Cut(a, "=")
				if !ok || strings.TrimSpace(q) == "" {
					return fmt.Errorf("invalid --answer %q, want question=answer", a)
				}
				form.SetAnswer(strings.TrimSpace(q), strings.TrimSpace(v))
			}

			if err := survey.New(c.client).Submit(cmd.Context(), location, workflow, form); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "survey submitted")
			return err
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "location id")
	cmd.Flags().StringVar(&workflow, "workflow", "", "workflow id")
	cmd.Flags().StringVar(&form.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&form.Email, "email", "", "contact email")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "question=answer, repeatable")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("workflow")
	return cmd
}
