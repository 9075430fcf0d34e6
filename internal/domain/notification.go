package domain

import (
	"strings"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationInfo    NotificationKind = "info"
	NotificationWarning NotificationKind = "warning"
	NotificationError   NotificationKind = "error"
)

// DescriptionSeparator joins multi-line descriptions, the way the server
// reports aggregated field errors.
const DescriptionSeparator = "<br>"

type Notification struct {
	ID          uuid.UUID
	Kind        NotificationKind
	Title       string
	Description string
}

func NewNotification(kind NotificationKind, title, description string) Notification {
	return Notification{
		ID:          uuid.New(),
		Kind:        kind,
		Title:       title,
		Description: description,
	}
}

func (n Notification) DescriptionLines() []string {
	if n.Description == "" {
		return nil
	}
	return strings.Split(n.Description, DescriptionSeparator)
}
