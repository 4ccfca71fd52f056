package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawScheme struct {
	FG     *string `yaml:"fg"`
	BG     *string `yaml:"bg"`
	Border *string `yaml:"border"`
}

type RawColors struct {
	Normal   *RawScheme `yaml:"normal"`
	Selected *RawScheme `yaml:"selected"`
}

type RawSwallow struct {
	Decay       *int    `yaml:"decay"`
	Retroactive *bool   `yaml:"retroactive"`
	Symbol      *string `yaml:"symbol"`
}

// RawConfig mirrors one YAML file. Nil fields were not set. Lists replace
// the previous value as a whole.
type RawConfig struct {
	Include       IncludeList    `yaml:"include"`
	LogLevel      *string        `yaml:"log_level"`
	BorderPx      *int           `yaml:"border_px"`
	GapPx         *int           `yaml:"gap_px"`
	Snap          *int           `yaml:"snap"`
	ShowBar       *bool          `yaml:"show_bar"`
	TopBar        *bool          `yaml:"top_bar"`
	BarPadding    *int           `yaml:"bar_padding"`
	StatusPadding *int           `yaml:"status_padding"`
	Colors        *RawColors     `yaml:"colors"`
	Tags          []string       `yaml:"tags"`
	Rules         []Rule         `yaml:"rules"`
	Swallow       *RawSwallow    `yaml:"swallow"`
	MFact         *float64       `yaml:"mfact"`
	NMaster       *int           `yaml:"nmaster"`
	ResizeHints   *bool          `yaml:"resize_hints"`
	Layouts       []LayoutConfig `yaml:"layouts"`
	Keys          []Key          `yaml:"keys"`
	Buttons       []Button       `yaml:"buttons"`
	StatusCommand *string        `yaml:"status_command"`
	Autostart     *bool          `yaml:"autostart"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.BorderPx != nil {
		out.BorderPx = overlay.BorderPx
	}
	if overlay.GapPx != nil {
		out.GapPx = overlay.GapPx
	}
	if overlay.Snap != nil {
		out.Snap = overlay.Snap
	}
	if overlay.ShowBar != nil {
		out.ShowBar = overlay.ShowBar
	}
	if overlay.TopBar != nil {
		out.TopBar = overlay.TopBar
	}
	if overlay.BarPadding != nil {
		out.BarPadding = overlay.BarPadding
	}
	if overlay.StatusPadding != nil {
		out.StatusPadding = overlay.StatusPadding
	}
	if overlay.Colors != nil {
		base := RawColors{}
		if out.Colors != nil {
			base = *out.Colors
		}
		merged := mergeRawColors(base, *overlay.Colors)
		out.Colors = &merged
	}
	if overlay.Tags != nil {
		out.Tags = overlay.Tags
	}
	if overlay.Rules != nil {
		out.Rules = overlay.Rules
	}
	if overlay.Swallow != nil {
		base := RawSwallow{}
		if out.Swallow != nil {
			base = *out.Swallow
		}
		merged := mergeRawSwallow(base, *overlay.Swallow)
		out.Swallow = &merged
	}
	if overlay.MFact != nil {
		out.MFact = overlay.MFact
	}
	if overlay.NMaster != nil {
		out.NMaster = overlay.NMaster
	}
	if overlay.ResizeHints != nil {
		out.ResizeHints = overlay.ResizeHints
	}
	if overlay.Layouts != nil {
		out.Layouts = overlay.Layouts
	}
	if overlay.Keys != nil {
		out.Keys = overlay.Keys
	}
	if overlay.Buttons != nil {
		out.Buttons = overlay.Buttons
	}
	if overlay.StatusCommand != nil {
		out.StatusCommand = overlay.StatusCommand
	}
	if overlay.Autostart != nil {
		out.Autostart = overlay.Autostart
	}
	return out
}

func mergeRawScheme(base *RawScheme, overlay *RawScheme) *RawScheme {
	if overlay == nil {
		return base
	}
	out := RawScheme{}
	if base != nil {
		out = *base
	}
	if overlay.FG != nil {
		out.FG = overlay.FG
	}
	if overlay.BG != nil {
		out.BG = overlay.BG
	}
	if overlay.Border != nil {
		out.Border = overlay.Border
	}
	return &out
}

func mergeRawColors(base RawColors, overlay RawColors) RawColors {
	base.Normal = mergeRawScheme(base.Normal, overlay.Normal)
	base.Selected = mergeRawScheme(base.Selected, overlay.Selected)
	return base
}

func mergeRawSwallow(base RawSwallow, overlay RawSwallow) RawSwallow {
	if overlay.Decay != nil {
		base.Decay = overlay.Decay
	}
	if overlay.Retroactive != nil {
		base.Retroactive = overlay.Retroactive
	}
	if overlay.Symbol != nil {
		base.Symbol = overlay.Symbol
	}
	return base
}
