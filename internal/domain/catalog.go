package domain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

type SourceType string

const (
	SourceTypeVideo SourceType = "video"
	SourceTypeAudio SourceType = "audio"
	SourceTypeText  SourceType = "text"
)

func ParseSourceType(raw string) (SourceType, error) {
	sourceType := SourceType(strings.ToLower(strings.TrimSpace(raw)))
	switch sourceType {
	case SourceTypeVideo, SourceTypeAudio, SourceTypeText:
		return sourceType, nil
	default:
		return "", fmt.Errorf("%w: unknown source type %q", ErrInvalidCatalog, raw)
	}
}

// ToolVariant is the fixed tool context constraining which source types are
// ever valid.
type ToolVariant string

const (
	ToolVariantYoutube  ToolVariant = "youtube"
	ToolVariantMedia    ToolVariant = "media"
	ToolVariantDocument ToolVariant = "document"
)

func ParseToolVariant(raw string) (ToolVariant, error) {
	variant := ToolVariant(strings.ToLower(strings.TrimSpace(raw)))
	switch variant {
	case ToolVariantYoutube, ToolVariantMedia, ToolVariantDocument:
		return variant, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownToolVariant, raw)
	}
}

func (v ToolVariant) AllowedSourceTypes() []SourceType {
	switch v {
	case ToolVariantYoutube, ToolVariantMedia:
		return []SourceType{SourceTypeVideo, SourceTypeAudio}
	case ToolVariantDocument:
		return []SourceType{SourceTypeText}
	default:
		return nil
	}
}

func (v ToolVariant) Allows(sourceType SourceType) bool {
	return slices.Contains(v.AllowedSourceTypes(), sourceType)
}

// AcceptedExtensions lists the file extensions the tool uploads. An empty
// list accepts any file.
func (v ToolVariant) AcceptedExtensions() []string {
	switch v {
	case ToolVariantMedia:
		return []string{".mp4", ".mp3"}
	case ToolVariantDocument:
		return []string{".pdf", ".docx"}
	default:
		return nil
	}
}

func (v ToolVariant) AcceptsFile(name string) bool {
	accepted := v.AcceptedExtensions()
	if len(accepted) == 0 {
		return true
	}
	return slices.Contains(accepted, strings.ToLower(filepath.Ext(name)))
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type StyleEntry struct {
	Style       string
	SourceTypes []SourceType
}

func (s StyleEntry) Supports(sourceType SourceType) bool {
	return slices.Contains(s.SourceTypes, sourceType)
}

// Intersects reports whether at least one of the style's source types is
// allowed by the variant.
func (s StyleEntry) Intersects(variant ToolVariant) bool {
	for _, sourceType := range s.SourceTypes {
		if variant.Allows(sourceType) {
			return true
		}
	}
	return false
}

type CategoryEntry struct {
	Name   string
	Styles []StyleEntry
}

// CombinationGraph maps category -> styles -> source types. Categories and
// styles keep wire order.
type CombinationGraph struct {
	categories []CategoryEntry
	index      map[string]int
}

// NewCombinationGraph validates the entries and builds the graph. Category
// names are unique, style names are unique within a category and every style
// has at least one distinct source type.
func NewCombinationGraph(categories []CategoryEntry) (CombinationGraph, error) {
	graph := CombinationGraph{
		categories: make([]CategoryEntry, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}

	for _, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return CombinationGraph{}, fmt.Errorf("%w: category name is empty", ErrInvalidCatalog)
		}
		if _, ok := graph.index[name]; ok {
			return CombinationGraph{}, fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, name)
		}

		styles := make([]StyleEntry, 0, len(category.Styles))
		seenStyles := make(map[string]struct{}, len(category.Styles))
		for _, style := range category.Styles {
			styleName := strings.TrimSpace(style.Style)
			if styleName == "" {
				return CombinationGraph{}, fmt.Errorf("%w: category %q has a style without a name", ErrInvalidCatalog, name)
			}
			if _, ok := seenStyles[styleName]; ok {
				return CombinationGraph{}, fmt.Errorf("%w: duplicate style %q in category %q", ErrInvalidCatalog, styleName, name)
			}
			seenStyles[styleName] = struct{}{}

			if len(style.SourceTypes) == 0 {
				return CombinationGraph{}, fmt.Errorf("%w: style %q in category %q has no source types", ErrInvalidCatalog, styleName, name)
			}

			sourceTypes := make([]SourceType, 0, len(style.SourceTypes))
			for _, sourceType := range style.SourceTypes {
				parsed, err := ParseSourceType(string(sourceType))
				if err != nil {
					return CombinationGraph{}, err
				}
				if slices.Contains(sourceTypes, parsed) {
					return CombinationGraph{}, fmt.Errorf("%w: style %q in category %q repeats source type %q", ErrInvalidCatalog, styleName, name, parsed)
				}
				sourceTypes = append(sourceTypes, parsed)
			}

			styles = append(styles, StyleEntry{Style: styleName, SourceTypes: sourceTypes})
		}

		graph.index[name] = len(graph.categories)
		graph.categories = append(graph.categories, CategoryEntry{Name: name, Styles: styles})
	}

	return graph, nil
}

func (g CombinationGraph) Len() int {
	return len(g.categories)
}

func (g CombinationGraph) Categories() []CategoryEntry {
	out := make([]CategoryEntry, 0, len(g.categories))
	for _, category := range g.categories {
		out = append(out, CategoryEntry{Name: category.Name, Styles: cloneStyles(category.Styles)})
	}
	return out
}

func (g CombinationGraph) HasCategory(category string) bool {
	_, ok := g.index[category]
	return ok
}

func (g CombinationGraph) Styles(category string) ([]StyleEntry, bool) {
	i, ok := g.index[category]
	if !ok {
		return nil, false
	}
	return cloneStyles(g.categories[i].Styles), true
}

func (g CombinationGraph) Style(category, style string) (StyleEntry, bool) {
	i, ok := g.index[category]
	if !ok {
		return StyleEntry{}, false
	}
	for _, entry := range g.categories[i].Styles {
		if entry.Style == style {
			return StyleEntry{Style: entry.Style, SourceTypes: slices.Clone(entry.SourceTypes)}, true
		}
	}
	return StyleEntry{}, false
}

func cloneStyles(styles []StyleEntry) []StyleEntry {
	out := make([]StyleEntry, 0, len(styles))
	for _, style := range styles {
		out = append(out, StyleEntry{Style: style.Style, SourceTypes: slices.Clone(style.SourceTypes)})
	}
	return out
}

// Catalog is the set of fetched option lists. Each list fails independently,
// an empty list means the fetch failed or the server offered nothing.
type Catalog struct {
	Languages     []Option
	Models        []Option
	OutputFormats []Option
	SummaryLevels []Option
	Combinations  CombinationGraph
}

func HasOption(options []Option, value string) bool {
	for _, option := range options {
		if option.Value == value {
			return true
		}
	}
	return false
}
