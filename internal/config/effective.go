package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.Line > 0 {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw on top of the compiled-in defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	cfg.BorderPx = derefInt(raw.BorderPx, cfg.BorderPx)
	cfg.GapPx = derefInt(raw.GapPx, cfg.GapPx)
	cfg.Snap = derefInt(raw.Snap, cfg.Snap)
	cfg.BarPadding = derefInt(raw.BarPadding, cfg.BarPadding)
	cfg.StatusPadding = derefInt(raw.StatusPadding, cfg.StatusPadding)
	cfg.NMaster = derefInt(raw.NMaster, cfg.NMaster)
	cfg.ShowBar = derefBool(raw.ShowBar, cfg.ShowBar)
	cfg.TopBar = derefBool(raw.TopBar, cfg.TopBar)
	cfg.ResizeHints = derefBool(raw.ResizeHints, cfg.ResizeHints)
	cfg.Autostart = derefBool(raw.Autostart, cfg.Autostart)
	if raw.MFact != nil {
		cfg.MFact = *raw.MFact
	}
	if raw.StatusCommand != nil {
		cfg.StatusCommand = *raw.StatusCommand
	}

	if raw.Colors != nil {
		applyScheme(&cfg.Colors.Normal, raw.Colors.Normal)
		applyScheme(&cfg.Colors.Selected, raw.Colors.Selected)
	}

	if raw.Tags != nil {
		cfg.Tags = raw.Tags
		if raw.Keys == nil {
			cfg.Keys = DefaultKeys(len(cfg.Tags))
		}
	}
	if raw.Rules != nil {
		cfg.Rules = raw.Rules
	}

	if raw.Swallow != nil {
		cfg.Swallow.Decay = derefInt(raw.Swallow.Decay, cfg.Swallow.Decay)
		cfg.Swallow.Retroactive = derefBool(raw.Swallow.Retroactive, cfg.Swallow.Retroactive)
		if raw.Swallow.Symbol != nil {
			cfg.Swallow.Symbol = *raw.Swallow.Symbol
		}
	}

	if raw.Layouts != nil {
		cfg.Layouts = raw.Layouts
	}
	if raw.Keys != nil {
		cfg.Keys = raw.Keys
	}
	if raw.Buttons != nil {
		cfg.Buttons = raw.Buttons
	}

	return cfg, nil
}

func applyScheme(dst *Scheme, raw *RawScheme) {
	if raw == nil {
		return
	}
	if raw.FG != nil {
		dst.FG = *raw.FG
	}
	if raw.BG != nil {
		dst.BG = *raw.BG
	}
	if raw.Border != nil {
		dst.Border = *raw.Border
	}
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func derefBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
