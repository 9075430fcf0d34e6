package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/brevio-cli/internal/adapters/render/overview"
	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeOptions(cmd *cobra.Command, title string, options []domain.Option, selected string, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, options)
	}

	rendered, err := overview.RenderOptions(title, options, selected)
	if err != nil {
		return fmt.Errorf("render %s: %w", title, err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

type attachmentView struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type selectionView struct {
	Language     string           `json:"language,omitempty"`
	Model        string           `json:"model,omitempty"`
	Category     string           `json:"category,omitempty"`
	Style        string           `json:"style,omitempty"`
	SourceType   string           `json:"sourceType,omitempty"`
	SummaryLevel string           `json:"summaryLevel,omitempty"`
	OutputFormat string           `json:"outputFormat,omitempty"`
	Attachments  []attachmentView `json:"attachments,omitempty"`
	Tool         string           `json:"tool"`
	OpenPanels   []string         `json:"openPanels"`
	ConfigPanel  string           `json:"configPanel"`
	Missing      []string         `json:"missing"`
	LoggedIn     bool             `json:"loggedIn"`
}

func newSelectionView(app *app) selectionView {
	selection := app.selection.Snapshot()
	panels := app.panels.State()

	view := selectionView{
		Language:     selection.Language,
		Model:        selection.Model,
		Category:     selection.Category,
		Style:        selection.Style,
		SourceType:   string(selection.SourceType),
		SummaryLevel: selection.SummaryLevel,
		OutputFormat: selection.OutputFormat,
		Tool:         string(panels.ActiveVariant()),
		OpenPanels:   make([]string, 0, len(panels.OpenPanels)),
		ConfigPanel:  string(panels.ActiveConfigPanel),
		Missing:      app.submission.Missing(selection),
		LoggedIn:     app.session.IsLoggedIn(),
	}
	if view.Missing == nil {
		view.Missing = []string{}
	}
	for _, key := range panels.OpenPanels {
		view.OpenPanels = append(view.OpenPanels, string(key))
	}
	for _, attachment := range selection.Attachments {
		view.Attachments = append(view.Attachments, attachmentView{Path: attachment.Path, Name: attachment.Name, Size: attachment.Size})
	}
	return view
}

func writeWorkspace(cmd *cobra.Command, app *app, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, newSelectionView(app))
	}

	selection := app.selection.Snapshot()
	rendered, err := overview.Render(overview.Workspace{
		Selection: selection,
		Panels:    app.panels.State(),
		LoggedIn:  app.session.IsLoggedIn(),
		Missing:   app.submission.Missing(selection),
	})
	if err != nil {
		return fmt.Errorf("render workspace: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
