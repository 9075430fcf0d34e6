package notify

import (
	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	kinds       map[domain.NotificationKind]lipgloss.Style
	title       lipgloss.Style
	description lipgloss.Style
}

func newStyles() styles {
	return styles{
		kinds: map[domain.NotificationKind]lipgloss.Style{
			domain.NotificationSuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
			domain.NotificationInfo:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
			domain.NotificationWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			domain.NotificationError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		},
		title:       lipgloss.NewStyle().Bold(true),
		description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2),
	}
}

func (s styles) kind(kind domain.NotificationKind) lipgloss.Style {
	if style, ok := s.kinds[kind]; ok {
		return style
	}
	return s.kinds[domain.NotificationInfo]
}

func symbol(kind domain.NotificationKind) string {
	switch kind {
	case domain.NotificationSuccess:
		return "✓"
	case domain.NotificationWarning:
		return "!"
	case domain.NotificationError:
		return "✗"
	default:
		return "•"
	}
}
