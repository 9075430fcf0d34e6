package cmd

import (
	"fmt"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSelectCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Build the selection a submission is made from",
	}

	// The services exist only after wiring, so each setter resolves them on call.
	setters := []struct {
		use   string
		short string
		set   func(string) (domain.Selection, error)
	}{
		{use: "language", short: "Select the output language", set: func(v string) (domain.Selection, error) { return app.selection.SetLanguage(v) }},
		{use: "model", short: "Select the model", set: func(v string) (domain.Selection, error) { return app.selection.SetModel(v) }},
		{use: "category", short: "Select the content category (clears style and source type)", set: func(v string) (domain.Selection, error) { return app.selection.SetCategory(v) }},
		{use: "style", short: "Select a style of the selected category", set: func(v string) (domain.Selection, error) { return app.selection.SetStyle(v) }},
		{use: "source-type", short: "Select a source type of the selected style", set: func(v string) (domain.Selection, error) { return app.selection.SetSourceType(v) }},
		{use: "level", short: "Select the summary level", set: func(v string) (domain.Selection, error) { return app.selection.SetSummaryLevel(v) }},
		{use: "format", short: "Select the output format", set: func(v string) (domain.Selection, error) { return app.selection.SetOutputFormat(v) }},
	}
	for _, setter := range setters {
		cmd.AddCommand(newSelectSetCmd(app, setter.use, setter.short, setter.set))
	}

	cmd.AddCommand(newSelectShowCmd(app), newSelectResetCmd(app))

	return cmd
}

func newSelectSetCmd(app *app, use, short string, set func(string) (domain.Selection, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <value>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.loadCatalog(cmd.Context())
			if _, err := set(args[0]); err != nil {
				return err
			}
			if err := app.saveWorkspace(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", use, args[0])
			return err
		},
	}
}

func newSelectShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selection and what is still missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeWorkspace(cmd, app, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newSelectResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.selection.Reset()
			if err := app.saveWorkspace(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "selection cleared")
			return err
		},
	}
}
