package hotkeys

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier masks as carried in the X event state field.
const (
	ModShift   uint16 = 1 << 0
	ModLock    uint16 = 1 << 1
	ModControl uint16 = 1 << 2
	Mod1       uint16 = 1 << 3
	Mod2       uint16 = 1 << 4
	Mod3       uint16 = 1 << 5
	Mod4       uint16 = 1 << 6
	Mod5       uint16 = 1 << 7
)

const allMods = ModShift | ModControl | Mod1 | Mod2 | Mod3 | Mod4 | Mod5

// Combo is a parsed key binding such as "Mod4-Shift-j".
type Combo struct {
	Mods uint16
	Key  string
}

// ButtonCombo is a parsed mouse binding such as "Mod4-1".
type ButtonCombo struct {
	Mods   uint16
	Button uint8
}

// ParseCombo parses the xgbutil key string format '[Mod[-Mod[...]]]-KEY'.
// A literal "-" key is written as "minus".
func ParseCombo(s string) (Combo, error) {
	mods, rest, err := parseMods(s)
	if err != nil {
		return Combo{}, err
	}
	if len(rest) != 1 {
		return Combo{}, fmt.Errorf("key binding %q: expected exactly one key, got %d", s, len(rest))
	}
	return Combo{Mods: mods, Key: rest[0]}, nil
}

// ParseButton parses '[Mod[-Mod[...]]]-BUTTON' with BUTTON in 1..255.
func ParseButton(s string) (ButtonCombo, error) {
	mods, rest, err := parseMods(s)
	if err != nil {
		return ButtonCombo{}, err
	}
	if len(rest) != 1 {
		return ButtonCombo{}, fmt.Errorf("button binding %q: expected exactly one button", s)
	}
	n, err := strconv.ParseUint(rest[0], 10, 8)
	if err != nil || n == 0 {
		return ButtonCombo{}, fmt.Errorf("button binding %q: invalid button %q", s, rest[0])
	}
	return ButtonCombo{Mods: mods, Button: uint8(n)}, nil
}

func parseMods(s string) (uint16, []string, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil, fmt.Errorf("empty binding")
	}
	var mods uint16
	var rest []string
	for _, part := range strings.Split(s, "-") {
		switch strings.ToLower(part) {
		case "shift":
			mods |= ModShift
		case "lock":
			mods |= ModLock
		case "control", "ctrl":
			mods |= ModControl
		case "mod1", "alt":
			mods |= Mod1
		case "mod2":
			mods |= Mod2
		case "mod3":
			mods |= Mod3
		case "mod4", "super":
			mods |= Mod4
		case "mod5":
			mods |= Mod5
		case "":
			return 0, nil, fmt.Errorf("binding %q: empty component", s)
		default:
			rest = append(rest, part)
		}
	}
	return mods, rest, nil
}

// String renders the combo back in parseable form.
func (c Combo) String() string {
	return modString(c.Mods) + c.Key
}

// String renders the combo back in parseable form.
func (b ButtonCombo) String() string {
	return modString(b.Mods) + strconv.Itoa(int(b.Button))
}

func modString(mods uint16) string {
	names := []struct {
		mask uint16
		name string
	}{
		{Mod4, "Mod4"}, {Mod1, "Mod1"}, {Mod2, "Mod2"}, {Mod3, "Mod3"}, {Mod5, "Mod5"},
		{ModControl, "Control"}, {ModShift, "Shift"}, {ModLock, "Lock"},
	}
	var b strings.Builder
	for _, n := range names {
		if mods&n.mask != 0 {
			b.WriteString(n.name)
			b.WriteByte('-')
		}
	}
	return b.String()
}

// CleanMask strips lock modifiers and pointer button state so bindings match
// regardless of NumLock or CapsLock.
func CleanMask(state, numLock uint16) uint16 {
	return state &^ (numLock | ModLock) & allMods
}

// IgnoreMasks returns every combination of the lock modifiers that must be
// grabbed alongside a binding. Zero masks are skipped.
func IgnoreMasks(locks ...uint16) []uint16 {
	var base []uint16
	for _, l := range locks {
		if l == 0 {
			continue
		}
		dup := false
		for _, b := range base {
			if b == l {
				dup = true
				break
			}
		}
		if !dup {
			base = append(base, l)
		}
	}

	out := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}
