package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/1broseidon/tagwm/internal/hotkeys"
	"github.com/1broseidon/tagwm/internal/tiling"
	"gopkg.in/yaml.v3"
)

// Scheme is one colour set for bar text, bar background and window borders.
type Scheme struct {
	FG     string `yaml:"fg"`
	BG     string `yaml:"bg"`
	Border string `yaml:"border"`
}

// Colors holds the unfocused and focused schemes.
type Colors struct {
	Normal   Scheme `yaml:"normal"`
	Selected Scheme `yaml:"selected"`
}

// Rule applies tags, floating state and a monitor to new windows whose
// WM_CLASS and title contain the given substrings. Empty fields match all.
type Rule struct {
	Class    string `yaml:"class,omitempty"`
	Instance string `yaml:"instance,omitempty"`
	Title    string `yaml:"title,omitempty"`
	// Tags are 1-based tag numbers. Empty keeps the monitor's active tags.
	Tags     []int `yaml:"tags,omitempty"`
	Floating bool  `yaml:"floating,omitempty"`
	// Monitor is the monitor index, or -1 for the selected one.
	Monitor int `yaml:"monitor"`
}

// UnmarshalYAML defaults an omitted monitor to -1.
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	type plain Rule
	p := plain{Monitor: -1}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = Rule(p)
	return nil
}

// SwallowConfig tunes window swallowing.
type SwallowConfig struct {
	// Decay is the number of unrelated windows a queued intent survives.
	// Zero keeps intents until they match.
	Decay int `yaml:"decay"`
	// Retroactive matches queued intents again when a window changes its title.
	Retroactive bool   `yaml:"retroactive"`
	Symbol      string `yaml:"symbol"`
}

// LayoutConfig is one entry of the layout table.
type LayoutConfig struct {
	Symbol string `yaml:"symbol"`
	Kind   string `yaml:"kind"`
}

// Key binds a key combination such as "Mod4-Shift-j" to an action.
type Key struct {
	Key    string `yaml:"key"`
	Action Action `yaml:"action"`
	Arg    string `yaml:"arg,omitempty"`
}

// Button binds a pointer button on a click region to an action.
type Button struct {
	Click  Click  `yaml:"click"`
	Button string `yaml:"button"`
	Action Action `yaml:"action"`
	Arg    string `yaml:"arg,omitempty"`
}

// Config is the effective configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`

	BorderPx int  `yaml:"border_px"`
	GapPx    int  `yaml:"gap_px"`
	Snap     int  `yaml:"snap"`
	ShowBar  bool `yaml:"show_bar"`
	TopBar   bool `yaml:"top_bar"`
	// BarPadding is added to the font height to get the bar height.
	BarPadding    int    `yaml:"bar_padding"`
	StatusPadding int    `yaml:"status_padding"`
	Colors        Colors `yaml:"colors"`

	Tags  []string `yaml:"tags"`
	Rules []Rule   `yaml:"rules"`

	Swallow SwallowConfig `yaml:"swallow"`

	MFact       float64        `yaml:"mfact"`
	NMaster     int            `yaml:"nmaster"`
	ResizeHints bool           `yaml:"resize_hints"`
	Layouts     []LayoutConfig `yaml:"layouts"`

	Keys    []Key    `yaml:"keys"`
	Buttons []Button `yaml:"buttons"`

	// StatusCommand runs when the status text is clicked, with BUTTON set in
	// its environment.
	StatusCommand string `yaml:"status_command"`
	Autostart     bool   `yaml:"autostart"`
}

// Dir returns $XDG_CONFIG_HOME/tagwm, or ~/.config/tagwm.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); filepath.IsAbs(xdg) {
		return filepath.Join(xdg, "tagwm"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tagwm"), nil
}

// DefaultConfigPath returns config.yaml inside Dir.
func DefaultConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		BorderPx:      1,
		GapPx:         10,
		Snap:          0,
		ShowBar:       true,
		TopBar:        true,
		BarPadding:    12,
		StatusPadding: 12,
		Colors: Colors{
			Normal:   Scheme{FG: "#ffffff", BG: "#222222", Border: "#222222"},
			Selected: Scheme{FG: "#eeeeee", BG: "#f90f47", Border: "#f90f47"},
		},
		Tags: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Rules: []Rule{
			{Class: "Gimp", Floating: true, Monitor: -1},
			{Class: "Microsoft Teams", Title: "Microsoft Teams Notification", Floating: true, Monitor: -1},
		},
		Swallow: SwallowConfig{
			Decay:       0,
			Retroactive: true,
			Symbol:      "(s)",
		},
		MFact:       0.55,
		NMaster:     1,
		ResizeHints: false,
		Layouts:     BuiltinLayouts(),
		Keys:        DefaultKeys(9),
		Buttons:     DefaultButtons(),
		Autostart:   true,
	}
}

// TagMask returns the mask covering every configured tag.
func (c *Config) TagMask() uint32 {
	return uint32(1)<<len(c.Tags) - 1
}

// RuleTags converts a rule's tag numbers into a mask.
func (c *Config) RuleTags(r Rule) uint32 {
	var mask uint32
	for _, t := range r.Tags {
		mask |= 1 << (t - 1)
	}
	return mask & c.TagMask()
}

// TilingLayouts converts the layout table.
func (c *Config) TilingLayouts() []tiling.Layout {
	out := make([]tiling.Layout, 0, len(c.Layouts))
	for _, l := range c.Layouts {
		kind, err := tiling.ParseKind(l.Kind)
		if err != nil {
			continue
		}
		out = append(out, tiling.Layout{Symbol: l.Symbol, Kind: kind})
	}
	return out
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.BorderPx < 0 {
		return &ValidationError{Path: "border_px", Err: fmt.Errorf("border_px must be >= 0")}
	}
	if c.GapPx < 0 {
		return &ValidationError{Path: "gap_px", Err: fmt.Errorf("gap_px must be >= 0")}
	}
	if c.Snap < 0 {
		return &ValidationError{Path: "snap", Err: fmt.Errorf("snap must be >= 0")}
	}
	if c.BarPadding < 0 || c.StatusPadding < 0 {
		return &ValidationError{Path: "bar_padding", Err: fmt.Errorf("bar paddings must be >= 0")}
	}
	for path, s := range map[string]Scheme{"colors.normal": c.Colors.Normal, "colors.selected": c.Colors.Selected} {
		for field, v := range map[string]string{"fg": s.FG, "bg": s.BG, "border": s.Border} {
			if _, err := ParseColor(v); err != nil {
				return &ValidationError{Path: path + "." + field, Err: err}
			}
		}
	}
	if len(c.Tags) == 0 || len(c.Tags) > 31 {
		return &ValidationError{Path: "tags", Err: fmt.Errorf("tags must have between 1 and 31 entries")}
	}
	for i, r := range c.Rules {
		if r.Monitor < -1 {
			return &ValidationError{Path: fmt.Sprintf("rules.%d.monitor", i), Err: fmt.Errorf("monitor must be >= -1")}
		}
		for _, t := range r.Tags {
			if t < 1 || t > len(c.Tags) {
				return &ValidationError{Path: fmt.Sprintf("rules.%d.tags", i), Err: fmt.Errorf("tag %d out of range 1..%d", t, len(c.Tags))}
			}
		}
	}
	if c.Swallow.Decay < 0 {
		return &ValidationError{Path: "swallow.decay", Err: fmt.Errorf("decay must be >= 0")}
	}
	if c.MFact < tiling.MinMFact || c.MFact > tiling.MaxMFact {
		return &ValidationError{Path: "mfact", Err: fmt.Errorf("mfact must be within [%g, %g]", tiling.MinMFact, tiling.MaxMFact)}
	}
	if c.NMaster < 0 {
		return &ValidationError{Path: "nmaster", Err: fmt.Errorf("nmaster must be >= 0")}
	}
	if len(c.Layouts) == 0 {
		return &ValidationError{Path: "layouts", Err: fmt.Errorf("layouts must not be empty")}
	}
	for i, l := range c.Layouts {
		if _, err := tiling.ParseKind(l.Kind); err != nil {
			return &ValidationError{Path: fmt.Sprintf("layouts.%d.kind", i), Err: err}
		}
	}
	for i, k := range c.Keys {
		if _, err := hotkeys.ParseCombo(k.Key); err != nil {
			return &ValidationError{Path: fmt.Sprintf("keys.%d.key", i), Err: err}
		}
		if _, err := ParseArg(k.Action, k.Arg, len(c.Tags), len(c.Layouts)); err != nil {
			return &ValidationError{Path: fmt.Sprintf("keys.%d", i), Err: err}
		}
	}
	for i, b := range c.Buttons {
		if !b.Click.valid() {
			return &ValidationError{Path: fmt.Sprintf("buttons.%d.click", i), Err: fmt.Errorf("unknown click region %q", b.Click)}
		}
		if _, err := hotkeys.ParseButton(b.Button); err != nil {
			return &ValidationError{Path: fmt.Sprintf("buttons.%d.button", i), Err: err}
		}
		if _, err := ParseArg(b.Action, b.Arg, len(c.Tags), len(c.Layouts)); err != nil {
			return &ValidationError{Path: fmt.Sprintf("buttons.%d", i), Err: err}
		}
	}
	return nil
}

// ParseColor parses "#rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("colour %q must look like #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Pixel converts a validated colour into a 24-bit TrueColor pixel value.
func Pixel(s string) uint32 {
	c, _ := ParseColor(s)
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ShellCommand returns the argv that runs cmd through /bin/sh.
func ShellCommand(cmd string) []string {
	return []string{"/bin/sh", "-c", strings.TrimSpace(cmd)}
}
