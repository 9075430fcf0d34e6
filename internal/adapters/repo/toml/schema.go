package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int             `toml:"version"`
	Selection selectionSchema `toml:"selection"`
	Panels    panelsSchema    `toml:"panels"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported workspace schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type selectionSchema struct {
	Language     string `toml:"language,omitempty"`
	Model        string `toml:"model,omitempty"`
	Category     string `toml:"category,omitempty"`
	Style        string `toml:"style,omitempty"`
	SourceType   string `toml:"source_type,omitempty"`
	SummaryLevel string `toml:"summary_level,omitempty"`
	OutputFormat string `toml:"output_format,omitempty"`
}

type panelsSchema struct {
	Open         []string `toml:"open"`
	ActiveTool   string   `toml:"active_tool,omitempty"`
	ActiveConfig string   `toml:"active_config,omitempty"`
}
