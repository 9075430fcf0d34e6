package application

import (
	"fmt"
	"sync"

	"github.com/bnema/brevio-cli/internal/domain"
)

type catalogReader interface {
	Catalog() (domain.Catalog, error)
}

// SelectionService owns the in-progress selection. Every setter checks the
// value against the loaded catalog and applies cascading resets before the
// new snapshot is published.
type SelectionService struct {
	catalog catalogReader

	mu        sync.RWMutex
	selection domain.Selection
	variant   domain.ToolVariant

	subs subscribers[domain.Selection]
}

func NewSelectionService(catalog catalogReader, initial domain.Selection, variant domain.ToolVariant) *SelectionService {
	if variant == "" {
		variant = domain.ToolVariantYoutube
	}

	return &SelectionService{
		catalog:   catalog,
		selection: initial.Clone(),
		variant:   variant,
	}
}

func (s *SelectionService) Snapshot() domain.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.Clone()
}

func (s *SelectionService) Variant() domain.ToolVariant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.variant
}

func (s *SelectionService) SetLanguage(language string) (domain.Selection, error) {
	return s.setOption("language", language, func(c domain.Catalog) []domain.Option { return c.Languages },
		func(sel domain.Selection) domain.Selection { return sel.WithLanguage(language) })
}

func (s *SelectionService) SetModel(model string) (domain.Selection, error) {
	return s.setOption("model", model, func(c domain.Catalog) []domain.Option { return c.Models },
		func(sel domain.Selection) domain.Selection { return sel.WithModel(model) })
}

func (s *SelectionService) SetSummaryLevel(level string) (domain.Selection, error) {
	return s.setOption("summary level", level, func(c domain.Catalog) []domain.Option { return c.SummaryLevels },
		func(sel domain.Selection) domain.Selection { return sel.WithSummaryLevel(level) })
}

func (s *SelectionService) SetOutputFormat(format string) (domain.Selection, error) {
	return s.setOption("output format", format, func(c domain.Catalog) []domain.Option { return c.OutputFormats },
		func(sel domain.Selection) domain.Selection { return sel.WithOutputFormat(format) })
}

// SetCategory resets style and source type unless category is already set.
func (s *SelectionService) SetCategory(category string) (domain.Selection, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return s.Snapshot(), err
	}
	if !catalog.Combinations.HasCategory(category) {
		return s.Snapshot(), fmt.Errorf("%w: category %q is not offered", domain.ErrInvalidSelection, category)
	}

	return s.mutate(func(sel domain.Selection, _ domain.ToolVariant) (domain.Selection, error) {
		return sel.WithCategory(category), nil
	})
}

func (s *SelectionService) SetStyle(style string) (domain.Selection, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return s.Snapshot(), err
	}

	return s.mutate(func(sel domain.Selection, variant domain.ToolVariant) (domain.Selection, error) {
		return sel.WithStyle(catalog.Combinations, variant, style)
	})
}

func (s *SelectionService) SetSourceType(raw string) (domain.Selection, error) {
	sourceType, err := domain.ParseSourceType(raw)
	if err != nil {
		return s.Snapshot(), fmt.Errorf("%w: %w", domain.ErrInvalidSelection, err)
	}
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return s.Snapshot(), err
	}

	return s.mutate(func(sel domain.Selection, variant domain.ToolVariant) (domain.Selection, error) {
		return sel.WithSourceType(catalog.Combinations, variant, sourceType)
	})
}

func (s *SelectionService) SetAttachments(attachments []domain.Attachment) domain.Selection {
	selection, _ := s.mutate(func(sel domain.Selection, _ domain.ToolVariant) (domain.Selection, error) {
		return sel.WithAttachments(attachments), nil
	})
	return selection
}

// SetVariant switches the active tool and drops style and source type when
// they no longer fit it. Without a catalog the fields are kept as is.
func (s *SelectionService) SetVariant(variant domain.ToolVariant) domain.Selection {
	catalog, err := s.catalog.Catalog()

	s.mu.Lock()
	s.variant = variant
	if err == nil {
		s.selection = s.selection.Reconcile(catalog.Combinations, variant)
	}
	snapshot := s.selection.Clone()
	s.mu.Unlock()

	s.subs.publish(snapshot)
	return snapshot
}

// Reconcile re-checks the selection after a catalog load.
func (s *SelectionService) Reconcile() (domain.Selection, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return s.Snapshot(), err
	}

	return s.mutate(func(sel domain.Selection, variant domain.ToolVariant) (domain.Selection, error) {
		return sel.Reconcile(catalog.Combinations, variant), nil
	})
}

func (s *SelectionService) Reset() domain.Selection {
	selection, _ := s.mutate(func(domain.Selection, domain.ToolVariant) (domain.Selection, error) {
		return domain.Selection{}, nil
	})
	return selection
}

func (s *SelectionService) Subscribe(fn func(domain.Selection)) func() {
	return s.subs.add(fn)
}

func (s *SelectionService) setOption(what, value string, options func(domain.Catalog) []domain.Option, apply func(domain.Selection) domain.Selection) (domain.Selection, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return s.Snapshot(), err
	}
	if !domain.HasOption(options(catalog), value) {
		return s.Snapshot(), fmt.Errorf("%w: %s %q is not offered", domain.ErrInvalidSelection, what, value)
	}

	return s.mutate(func(sel domain.Selection, _ domain.ToolVariant) (domain.Selection, error) {
		return apply(sel), nil
	})
}

func (s *SelectionService) mutate(fn func(domain.Selection, domain.ToolVariant) (domain.Selection, error)) (domain.Selection, error) {
	s.mu.Lock()
	next, err := fn(s.selection, s.variant)
	if err != nil {
		snapshot := s.selection.Clone()
		s.mu.Unlock()
		return snapshot, err
	}
	s.selection = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.subs.publish(snapshot)
	return snapshot, nil
}
