package cmd

import (
	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the options offered by the server",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Output JSON")

	list := func(use, short, title string, pick func(domain.Catalog) []domain.Option, selected func(domain.Selection) string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				catalog := app.loadCatalog(cmd.Context())
				return writeOptions(cmd, title, pick(catalog), selected(app.selection.Snapshot()), asJSON)
			},
		}
	}

	cmd.AddCommand(
		list("languages", "List output languages", "Languages",
			func(c domain.Catalog) []domain.Option { return c.Languages },
			func(s domain.Selection) string { return s.Language }),
		list("models", "List models", "Models",
			func(c domain.Catalog) []domain.Option { return c.Models },
			func(s domain.Selection) string { return s.Model }),
		list("formats", "List output formats", "Output formats",
			func(c domain.Catalog) []domain.Option { return c.OutputFormats },
			func(s domain.Selection) string { return s.OutputFormat }),
		list("levels", "List summary levels", "Summary levels",
			func(c domain.Catalog) []domain.Option { return c.SummaryLevels },
			func(s domain.Selection) string { return s.SummaryLevel }),
		newCatalogCategoriesCmd(app, &asJSON),
		newCatalogStylesCmd(app, &asJSON),
		newCatalogSourceTypesCmd(app, &asJSON),
	)

	return cmd
}

func newCatalogCategoriesCmd(app *app, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List content categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.loadCatalog(cmd.Context())
			options, err := app.catalog.CategoryOptions()
			if err != nil {
				return err
			}
			return writeOptions(cmd, "Categories", options, app.selection.Snapshot().Category, *asJSON)
		},
	}
}

func newCatalogStylesCmd(app *app, asJSON *bool) *cobra.Command {
	var category string
	var tool string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the styles of a category usable by a tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			variant := app.panels.ActiveVariant()
			if tool != "" {
				parsed, err := domain.ParseToolVariant(tool)
				if err != nil {
					return err
				}
				variant = parsed
			}

			selection := app.selection.Snapshot()
			if category == "" {
				category = selection.Category
			}

			app.loadCatalog(cmd.Context())
			options, err := app.catalog.StyleOptions(category, variant)
			if err != nil {
				return err
			}
			return writeOptions(cmd, "Styles", options, selection.Style, *asJSON)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category (defaults to the selected one)")
	cmd.Flags().StringVar(&tool, "tool", "", "Tool (youtube|media|document, defaults to the active one)")

	return cmd
}

func newCatalogSourceTypesCmd(app *app, asJSON *bool) *cobra.Command {
	var category string
	var style string

	cmd := &cobra.Command{
		Use:   "source-types",
		Short: "List the source types of a style",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selection := app.selection.Snapshot()
			if category == "" {
				category = selection.Category
			}
			if style == "" {
				style = selection.Style
			}

			app.loadCatalog(cmd.Context())
			options, err := app.catalog.SourceTypeOptions(category, style)
			if err != nil {
				return err
			}
			return writeOptions(cmd, "Source types", options, string(selection.SourceType), *asJSON)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category (defaults to the selected one)")
	cmd.Flags().StringVar(&style, "style", "", "Style (defaults to the selected one)")

	return cmd
}
