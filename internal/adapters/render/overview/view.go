package overview

import (
	"fmt"
	"strings"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const readinessBarWidth = 24

// requiredFieldCount is the number of fields a submission cannot do without,
// attachments included.
const requiredFieldCount = 7

type Option = domain.Option

type Workspace struct {
	Selection domain.Selection
	Panels    domain.PanelState
	LoggedIn  bool
	// Missing lists required fields that are still unset.
	Missing []string
}

func renderWorkspace(w Workspace, s styles) string {
	session := s.warning.Render("logged out")
	if w.LoggedIn {
		session = s.ok.Render("logged in")
	}

	lines := []string{
		s.title.Render("Brevio workspace"),
		s.header.Render(fmt.Sprintf("session: %s  tool: %s", session, w.Panels.ActiveVariant())),
		s.header.Render(fmt.Sprintf("open panels: %s  config panel: %s", panelList(w.Panels.OpenPanels), w.Panels.ActiveConfigPanel)),
		s.section.Render(renderSelection(w.Selection, s)),
		s.section.Render(renderReadiness(w.Missing, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSelection(sel domain.Selection, s styles) string {
	rows := [][2]string{
		{"language", sel.Language},
		{"model", sel.Model},
		{"category", sel.Category},
		{"style", sel.Style},
		{"source type", string(sel.SourceType)},
		{"summary level", sel.SummaryLevel},
		{"output format", sel.OutputFormat},
	}

	lines := make([]string, 0, len(rows)+len(sel.Attachments)+1)
	for _, row := range rows {
		lines = append(lines, field(row[0], row[1], s))
	}

	if len(sel.Attachments) == 0 {
		lines = append(lines, field("attachments", "", s))
	}
	for i, attachment := range sel.Attachments {
		label := ""
		if i == 0 {
			label = "attachments"
		}
		lines = append(lines, field(label, fmt.Sprintf("%s (%s)", attachment.Name, humanSize(attachment.Size)), s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(label, value string, s styles) string {
	rendered := s.unset.Render("unset")
	if value != "" {
		rendered = s.value.Render(value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(fmt.Sprintf("%-14s", label)), rendered)
}

func renderReadiness(missing []string, s styles) string {
	done := requiredFieldCount - len(missing)
	if done < 0 {
		done = 0
	}

	bar := renderProgressBar(done, requiredFieldCount, readinessBarWidth, s)
	status := s.ok.Render("ready to submit")
	if len(missing) > 0 {
		status = s.warning.Render("missing: " + strings.Join(missing, ", "))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", s.value.Render(fmt.Sprintf("%d/%d", done, requiredFieldCount)), " ", status)
}

func renderOptions(title string, options []Option, selected string, s styles) string {
	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("options: %d", len(options))),
	}

	if len(options) == 0 {
		lines = append(lines, s.empty.Render("Nothing available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, option := range options {
		marker := "  "
		style := s.value
		if selected != "" && option.Value == selected {
			marker = "> "
			style = s.selected
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-20s %s", marker, option.Value, option.Label)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(done, total, width int, s styles) string {
	if width <= 0 || total <= 0 {
		return ""
	}

	filled := done * width / total
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func panelList(keys []domain.PanelKey) string {
	if len(keys) == 0 {
		return "none"
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, string(key))
	}
	return strings.Join(names, ", ")
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	value := float64(size)
	for _, suffix := range []string{"KiB", "MiB", "GiB"} {
		value /= unit
		if value < unit {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%.1f TiB", value/unit)
}
