package domain

import (
	"fmt"
	"slices"
)

type PanelKey string

const (
	PanelTextToolBox   PanelKey = "text-tool-box"
	PanelConfiguration PanelKey = "configuration"
)

type ToolKey string

const (
	ToolYoutube  ToolKey = "text-tool-box-summary-youtube"
	ToolMedia    ToolKey = "text-tool-box-summary-media"
	ToolDocument ToolKey = "text-tool-box-summary-document"
)

type ConfigKey string

const (
	ConfigLanguage ConfigKey = "configuration-language"
	ConfigModel    ConfigKey = "configuration-model"
)

func ParsePanelKey(raw string) (PanelKey, error) {
	switch key := PanelKey(raw); key {
	case PanelTextToolBox, PanelConfiguration:
		return key, nil
	default:
		return "", fmt.Errorf("%w: panel %q", ErrUnknownPanelKey, raw)
	}
}

func ParseToolKey(raw string) (ToolKey, error) {
	switch key := ToolKey(raw); key {
	case ToolYoutube, ToolMedia, ToolDocument:
		return key, nil
	default:
		return "", fmt.Errorf("%w: tool %q", ErrUnknownPanelKey, raw)
	}
}

func ParseConfigKey(raw string) (ConfigKey, error) {
	switch key := ConfigKey(raw); key {
	case ConfigLanguage, ConfigModel:
		return key, nil
	default:
		return "", fmt.Errorf("%w: configuration panel %q", ErrUnknownPanelKey, raw)
	}
}

func (k ToolKey) Variant() ToolVariant {
	switch k {
	case ToolMedia:
		return ToolVariantMedia
	case ToolDocument:
		return ToolVariantDocument
	default:
		return ToolVariantYoutube
	}
}

func ToolKeyFor(variant ToolVariant) ToolKey {
	switch variant {
	case ToolVariantMedia:
		return ToolMedia
	case ToolVariantDocument:
		return ToolDocument
	default:
		return ToolYoutube
	}
}

// PanelState tracks open panels as a cumulative set. The active tool and the
// active configuration panel are independent axes.
type PanelState struct {
	OpenPanels        []PanelKey
	ActiveTool        ToolKey
	ActiveConfigPanel ConfigKey
}

func DefaultPanelState() PanelState {
	return PanelState{
		OpenPanels:        []PanelKey{PanelTextToolBox},
		ActiveTool:        ToolYoutube,
		ActiveConfigPanel: ConfigLanguage,
	}
}

func (p PanelState) Clone() PanelState {
	out := p
	out.OpenPanels = slices.Clone(p.OpenPanels)
	return out
}

func (p PanelState) IsOpen(key PanelKey) bool {
	return slices.Contains(p.OpenPanels, key)
}

// Toggle removes key when open and appends it otherwise.
func (p PanelState) Toggle(key PanelKey) PanelState {
	out := p.Clone()
	if i := slices.Index(out.OpenPanels, key); i >= 0 {
		out.OpenPanels = slices.Delete(out.OpenPanels, i, i+1)
		return out
	}
	out.OpenPanels = append(out.OpenPanels, key)
	return out
}

func (p PanelState) WithTool(key ToolKey) PanelState {
	out := p.Clone()
	out.ActiveTool = key
	return out
}

func (p PanelState) WithConfigPanel(key ConfigKey) PanelState {
	out := p.Clone()
	out.ActiveConfigPanel = key
	return out
}

func (p PanelState) ActiveVariant() ToolVariant {
	return p.ActiveTool.Variant()
}
