package domain

import (
	"fmt"
	"slices"
)

type Attachment struct {
	Path string
	Name string
	Size int64
}

// Selection is an immutable snapshot of the user's in-progress choices. The
// zero string means unset. Every With* method returns a new snapshot with
// dependent fields already reconciled.
type Selection struct {
	Language     string
	Model        string
	Category     string
	Style        string
	SourceType   SourceType
	SummaryLevel string
	OutputFormat string
	Attachments  []Attachment
}

func (s Selection) Clone() Selection {
	out := s
	out.Attachments = slices.Clone(s.Attachments)
	return out
}

func (s Selection) WithLanguage(language string) Selection {
	out := s.Clone()
	out.Language = language
	return out
}

func (s Selection) WithModel(model string) Selection {
	out := s.Clone()
	out.Model = model
	return out
}

func (s Selection) WithSummaryLevel(level string) Selection {
	out := s.Clone()
	out.SummaryLevel = level
	return out
}

func (s Selection) WithOutputFormat(format string) Selection {
	out := s.Clone()
	out.OutputFormat = format
	return out
}

func (s Selection) WithAttachments(attachments []Attachment) Selection {
	out := s.Clone()
	out.Attachments = slices.Clone(attachments)
	return out
}

// WithCategory resets Style and SourceType in the same step. Setting the
// current category again is a no-op.
func (s Selection) WithCategory(category string) Selection {
	if category == s.Category {
		return s.Clone()
	}
	out := s.Clone()
	out.Category = category
	out.Style = ""
	out.SourceType = ""
	return out
}

// WithStyle requires the style to exist in the current category and to offer
// at least one source type the variant allows. SourceType is kept only when
// the new style still supports it.
func (s Selection) WithStyle(graph CombinationGraph, variant ToolVariant, style string) (Selection, error) {
	if s.Category == "" {
		return s, fmt.Errorf("%w: choose a category before a style", ErrInvalidSelection)
	}
	entry, ok := graph.Style(s.Category, style)
	if !ok {
		return s, fmt.Errorf("%w: style %q is not offered for category %q", ErrInvalidSelection, style, s.Category)
	}
	if !entry.Intersects(variant) {
		return s, fmt.Errorf("%w: style %q has no source type usable by the %s tool", ErrInvalidSelection, style, variant)
	}

	out := s.Clone()
	out.Style = style
	if out.SourceType != "" && !(entry.Supports(out.SourceType) && variant.Allows(out.SourceType)) {
		out.SourceType = ""
	}
	return out, nil
}

func (s Selection) WithSourceType(graph CombinationGraph, variant ToolVariant, sourceType SourceType) (Selection, error) {
	if s.Style == "" {
		return s, fmt.Errorf("%w: choose a style before a source type", ErrInvalidSelection)
	}
	entry, ok := graph.Style(s.Category, s.Style)
	if !ok {
		return s, fmt.Errorf("%w: style %q is not offered for category %q", ErrInvalidSelection, s.Style, s.Category)
	}
	if !entry.Supports(sourceType) {
		return s, fmt.Errorf("%w: style %q does not accept source type %q", ErrInvalidSelection, s.Style, sourceType)
	}
	if !variant.Allows(sourceType) {
		return s, fmt.Errorf("%w: the %s tool does not accept source type %q", ErrInvalidSelection, variant, sourceType)
	}

	out := s.Clone()
	out.SourceType = sourceType
	return out, nil
}

// Reconcile drops the style and source type when they no longer hold under
// the given graph and variant. It is applied after a tool change or a fresh
// catalog load.
func (s Selection) Reconcile(graph CombinationGraph, variant ToolVariant) Selection {
	out := s.Clone()
	if out.Style == "" {
		out.SourceType = ""
		return out
	}

	entry, ok := graph.Style(out.Category, out.Style)
	if !ok || !entry.Intersects(variant) {
		out.Style = ""
		out.SourceType = ""
		return out
	}
	if out.SourceType != "" && !(entry.Supports(out.SourceType) && variant.Allows(out.SourceType)) {
		out.SourceType = ""
	}
	return out
}

// Request builds the submission snapshot. It never aliases the selection's
// attachments.
func (s Selection) Request() SubmissionRequest {
	return SubmissionRequest{
		Language:     s.Language,
		Model:        s.Model,
		Category:     s.Category,
		Style:        s.Style,
		SourceType:   s.SourceType,
		OutputFormat: s.OutputFormat,
		SummaryLevel: s.SummaryLevel,
		Attachments:  slices.Clone(s.Attachments),
	}
}

type SubmissionRequest struct {
	Language     string       `field:"language" validate:"required"`
	Model        string       `field:"model" validate:"required"`
	Category     string       `field:"category" validate:"required"`
	Style        string       `field:"style" validate:"required"`
	SourceType   SourceType   `field:"sourceType"`
	OutputFormat string       `field:"outputFormat" validate:"required"`
	SummaryLevel string       `field:"summaryLevel" validate:"required"`
	Attachments  []Attachment `field:"attachments" validate:"min=1"`
}
