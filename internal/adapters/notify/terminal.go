package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
	"github.com/muesli/reflow/wordwrap"
)

const defaultWidth = 72

// Terminal writes one block per notification. Descriptions are split on the
// server's <br> separator and wrapped to the configured width.
type Terminal struct {
	out    io.Writer
	width  int
	styles styles

	mu      sync.Mutex
	history []domain.Notification
}

var _ ports.Notifier = (*Terminal)(nil)

func NewTerminal(out io.Writer, width int) *Terminal {
	if width <= 0 {
		width = defaultWidth
	}
	return &Terminal{out: out, width: width, styles: newStyles()}
}

func (t *Terminal) Notify(notification domain.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = append(t.history, notification)
	_, _ = fmt.Fprintln(t.out, t.render(notification))
}

// Count reports how many notifications of kind were shown.
func (t *Terminal) Count(kind domain.NotificationKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, notification := range t.history {
		if notification.Kind == kind {
			count++
		}
	}
	return count
}

func (t *Terminal) render(notification domain.Notification) string {
	kindStyle := t.styles.kind(notification.Kind)
	lines := []string{
		kindStyle.Render(symbol(notification.Kind)) + " " + t.styles.title.Render(notification.Title),
	}

	for _, line := range notification.DescriptionLines() {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, t.styles.description.Render(wordwrap.String(line, t.width-2)))
	}

	return strings.Join(lines, "\n")
}
