package domain

// Workspace is the draft persisted between CLI invocations. Attachments are
// never persisted.
type Workspace struct {
	Selection Selection
	Panels    PanelState
}

func DefaultWorkspace() Workspace {
	return Workspace{Panels: DefaultPanelState()}
}
