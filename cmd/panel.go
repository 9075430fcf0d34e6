package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/spf13/cobra"
)

const configPanelPrefix = "configuration-"

func newToolCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "tool <youtube|media|document>",
		Short:     "Switch the active summary tool",
		Long:      "tool switches between the YouTube, media and document tools. Styles and source types the new tool cannot use are cleared.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.ToolVariantYoutube), string(domain.ToolVariantMedia), string(domain.ToolVariantDocument)},
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := domain.ParseToolVariant(args[0])
			if err != nil {
				return err
			}

			app.loadCatalog(cmd.Context())
			app.panels.SelectVariant(variant)
			if err := app.saveWorkspace(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "tool: %s\n", variant)
			return err
		},
	}
}

func newPanelCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Open and close workspace panels",
	}

	cmd.AddCommand(newPanelToggleCmd(app), newPanelConfigCmd(app), newPanelShowCmd(app))

	return cmd
}

func newPanelToggleCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <text-tool-box|configuration>",
		Short: "Open a closed panel or close an open one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.panels.ToggleOpenPanel(args[0])
			if err != nil {
				return err
			}
			if err := app.saveWorkspace(cmd.Context()); err != nil {
				return err
			}

			return writePanels(cmd, state)
		},
	}
}

func newPanelConfigCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config <language|model>",
		Short: "Choose the active configuration panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !strings.HasPrefix(key, configPanelPrefix) {
				key = configPanelPrefix + key
			}

			state, err := app.panels.SelectConfigPanel(key)
			if err != nil {
				return err
			}
			if err := app.saveWorkspace(cmd.Context()); err != nil {
				return err
			}

			return writePanels(cmd, state)
		},
	}
}

func newPanelShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show open panels and the active tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writePanels(cmd, app.panels.State())
		},
	}
}

func writePanels(cmd *cobra.Command, state domain.PanelState) error {
	open := make([]string, 0, len(state.OpenPanels))
	for _, key := range state.OpenPanels {
		open = append(open, string(key))
	}
	if len(open) == 0 {
		open = append(open, "none")
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "open: %s\ntool: %s\nconfig: %s\n",
		strings.Join(open, ", "), state.ActiveTool, state.ActiveConfigPanel)
	return err
}
