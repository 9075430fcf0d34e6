package ports

import "github.com/bnema/brevio-cli/internal/domain"

// Notifier is the user-facing notification surface.
type Notifier interface {
	Notify(notification domain.Notification)
}

// Navigator moves the user to a location. Logout sends them home.
type Navigator interface {
	Home()
}
