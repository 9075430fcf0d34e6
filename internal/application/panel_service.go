package application

import (
	"sync"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
)

// PanelService holds which panels are open and which tool and configuration
// panel are active. It doubles as the navigator: going home restores the
// default layout.
type PanelService struct {
	mu    sync.RWMutex
	state domain.PanelState

	subs subscribers[domain.PanelState]
}

var _ ports.Navigator = (*PanelService)(nil)

func NewPanelService(initial domain.PanelState) *PanelService {
	return &PanelService{state: initial.Clone()}
}

func (s *PanelService) State() domain.PanelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *PanelService) ActiveVariant() domain.ToolVariant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActiveVariant()
}

// ToggleOpenPanel opens key when closed and closes it when open.
func (s *PanelService) ToggleOpenPanel(raw string) (domain.PanelState, error) {
	key, err := domain.ParsePanelKey(raw)
	if err != nil {
		return s.State(), err
	}
	return s.apply(func(state domain.PanelState) domain.PanelState { return state.Toggle(key) }), nil
}

func (s *PanelService) SelectTool(raw string) (domain.PanelState, error) {
	key, err := domain.ParseToolKey(raw)
	if err != nil {
		return s.State(), err
	}
	return s.apply(func(state domain.PanelState) domain.PanelState { return state.WithTool(key) }), nil
}

// SelectVariant activates the tool panel of variant.
func (s *PanelService) SelectVariant(variant domain.ToolVariant) domain.PanelState {
	key := domain.ToolKeyFor(variant)
	return s.apply(func(state domain.PanelState) domain.PanelState { return state.WithTool(key) })
}

func (s *PanelService) SelectConfigPanel(raw string) (domain.PanelState, error) {
	key, err := domain.ParseConfigKey(raw)
	if err != nil {
		return s.State(), err
	}
	return s.apply(func(state domain.PanelState) domain.PanelState { return state.WithConfigPanel(key) }), nil
}

func (s *PanelService) Home() {
	s.apply(func(domain.PanelState) domain.PanelState { return domain.DefaultPanelState() })
}

func (s *PanelService) Subscribe(fn func(domain.PanelState)) func() {
	return s.subs.add(fn)
}

func (s *PanelService) apply(mutate func(domain.PanelState) domain.PanelState) domain.PanelState {
	s.mu.Lock()
	s.state = mutate(s.state)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.subs.publish(snapshot)
	return snapshot
}
