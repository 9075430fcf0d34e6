package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	languagesPath     = "/brevio/languages"
	modelsPath        = "/brevio/models"
	outputFormatsPath = "/brevio/output-formats"
	summaryLevelsPath = "/brevio/summary-levels"
	combinationsPath  = "/brevio/categories-styles"
)

// CatalogService fetches the option lists the selection is validated
// against. Fetches never fail towards the caller: a failed list is empty and
// the user gets an error notification.
type CatalogService struct {
	gateway  ports.Gateway
	notifier ports.Notifier
	logger   *zap.Logger

	mu      sync.RWMutex
	catalog domain.Catalog

	ready     chan struct{}
	readyOnce sync.Once
}

func NewCatalogService(gateway ports.Gateway, notifier ports.Notifier, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogService{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

func (s *CatalogService) FetchLanguages(ctx context.Context) []domain.Option {
	return fetchList(ctx, s, languagesPath, "languages", decodeLanguages)
}

func (s *CatalogService) FetchModels(ctx context.Context) []domain.Option {
	return fetchList(ctx, s, modelsPath, "models", decodeModels)
}

func (s *CatalogService) FetchOutputFormats(ctx context.Context) []domain.Option {
	return fetchList(ctx, s, outputFormatsPath, "output formats", decodeOutputFormats)
}

func (s *CatalogService) FetchSummaryLevels(ctx context.Context) []domain.Option {
	return fetchList(ctx, s, summaryLevelsPath, "summary levels", decodeSummaryLevels)
}

// FetchCombinations rejects the whole payload when any part of it is
// malformed; a partial graph could accept selections the server refuses.
func (s *CatalogService) FetchCombinations(ctx context.Context) domain.CombinationGraph {
	graph, ok := fetch(ctx, s, combinationsPath, "categories and styles", decodeCombinations)
	if !ok {
		return domain.CombinationGraph{}
	}
	return graph
}

// Load runs the five fetches concurrently, stores the result and releases
// every WaitReady caller. Loading again replaces the stored catalog.
func (s *CatalogService) Load(ctx context.Context) domain.Catalog {
	var (
		catalog domain.Catalog
		wg      conc.WaitGroup
	)

	wg.Go(func() { catalog.Languages = s.FetchLanguages(ctx) })
	wg.Go(func() { catalog.Models = s.FetchModels(ctx) })
	wg.Go(func() { catalog.OutputFormats = s.FetchOutputFormats(ctx) })
	wg.Go(func() { catalog.SummaryLevels = s.FetchSummaryLevels(ctx) })
	wg.Go(func() { catalog.Combinations = s.FetchCombinations(ctx) })
	wg.Wait()

	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()

	s.readyOnce.Do(func() { close(s.ready) })
	s.logger.Debug("catalog loaded",
		zap.Int("languages", len(catalog.Languages)),
		zap.Int("models", len(catalog.Models)),
		zap.Int("output_formats", len(catalog.OutputFormats)),
		zap.Int("summary_levels", len(catalog.SummaryLevels)),
		zap.Int("categories", catalog.Combinations.Len()),
	)

	return catalog
}

func (s *CatalogService) Ready() <-chan struct{} {
	return s.ready
}

func (s *CatalogService) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for catalog: %w", ctx.Err())
	}
}

func (s *CatalogService) Catalog() (domain.Catalog, error) {
	if !s.isReady() {
		return domain.Catalog{}, domain.ErrCatalogNotReady
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, nil
}

// CategoryOptions lists categories in wire order with readable labels.
func (s *CatalogService) CategoryOptions() ([]domain.Option, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}

	categories := catalog.Combinations.Categories()
	options := make([]domain.Option, 0, len(categories))
	for _, category := range categories {
		options = append(options, domain.Option{Value: category.Name, Label: titleWords(category.Name, "_")})
	}
	return options, nil
}

// StyleOptions lists the styles of category that offer at least one source
// type the variant allows.
func (s *CatalogService) StyleOptions(category string, variant domain.ToolVariant) ([]domain.Option, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}

	styles, ok := catalog.Combinations.Styles(category)
	if !ok {
		return []domain.Option{}, nil
	}

	options := make([]domain.Option, 0, len(styles))
	for _, style := range styles {
		if !style.Intersects(variant) {
			continue
		}
		options = append(options, domain.Option{Value: style.Style, Label: upperFirst(style.Style)})
	}
	return options, nil
}

// SourceTypeOptions lists exactly the source types of the matched style.
func (s *CatalogService) SourceTypeOptions(category, style string) ([]domain.Option, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}

	entry, ok := catalog.Combinations.Style(category, style)
	if !ok {
		return []domain.Option{}, nil
	}

	options := make([]domain.Option, 0, len(entry.SourceTypes))
	for _, sourceType := range entry.SourceTypes {
		options = append(options, domain.Option{Value: string(sourceType), Label: upperFirst(string(sourceType))})
	}
	return options, nil
}

func (s *CatalogService) isReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

func fetchList(ctx context.Context, s *CatalogService, path, what string, decode func(json.RawMessage) ([]domain.Option, error)) []domain.Option {
	options, ok := fetch(ctx, s, path, what, decode)
	if !ok || options == nil {
		return []domain.Option{}
	}
	return options
}

func fetch[T any](ctx context.Context, s *CatalogService, path, what string, decode func(json.RawMessage) (T, error)) (T, bool) {
	var zero T

	raw, err := s.gateway.Get(ctx, path)
	if err == nil {
		var value T
		value, err = decode(raw)
		if err == nil {
			return value, true
		}
	}

	s.logger.Warn("fetch catalog list failed", zap.String("path", path), zap.Error(err))
	if s.notifier != nil {
		s.notifier.Notify(domain.NewNotification(domain.NotificationError, "Failed to fetch "+what, ""))
	}
	return zero, false
}
