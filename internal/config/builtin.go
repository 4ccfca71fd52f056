package config

import "fmt"

// BuiltinLayouts returns the built-in layout table. The first entry is the
// default layout of every monitor.
func BuiltinLayouts() []LayoutConfig {
	return []LayoutConfig{
		{Symbol: "[]=", Kind: "tile"},
		{Symbol: "><>", Kind: "float"},
		{Symbol: "[M]", Kind: "monocle"},
	}
}

// DefaultKeys returns the built-in key table for ntags tags.
func DefaultKeys(ntags int) []Key {
	keys := []Key{
		{Key: "Mod4-b", Action: ActionToggleBar},
		{Key: "Mod4-j", Action: ActionFocusStack, Arg: "+1"},
		{Key: "Mod4-k", Action: ActionFocusStack, Arg: "-1"},
		{Key: "Mod4-Shift-j", Action: ActionMoveClient, Arg: "+1"},
		{Key: "Mod4-Shift-k", Action: ActionMoveClient, Arg: "-1"},
		{Key: "Mod4-i", Action: ActionIncNMaster, Arg: "+1"},
		{Key: "Mod4-Shift-i", Action: ActionIncNMaster, Arg: "-1"},
		{Key: "Mod4-Shift-comma", Action: ActionSetMFact, Arg: "-0.05"},
		{Key: "Mod4-Shift-period", Action: ActionSetMFact, Arg: "+0.05"},
		{Key: "Mod4-Shift-Return", Action: ActionZoom},
		{Key: "Mod4-u", Action: ActionSwallowStop},
		{Key: "Mod4-Tab", Action: ActionView},
		{Key: "Mod4-q", Action: ActionKillClient},
		{Key: "Mod4-minus", Action: ActionSetCFact, Arg: "-0.25"},
		{Key: "Mod4-Shift-equal", Action: ActionSetCFact, Arg: "+0.25"},
		{Key: "Mod4-t", Action: ActionSetLayout, Arg: "0"},
		{Key: "Mod4-f", Action: ActionToggleFullscreen},
		{Key: "Mod4-space", Action: ActionSetLayout},
		{Key: "Mod4-Shift-space", Action: ActionToggleFloating},
		{Key: "Mod4-0", Action: ActionView, Arg: "all"},
		{Key: "Mod4-Shift-0", Action: ActionTag, Arg: "all"},
		{Key: "Mod4-l", Action: ActionFocusMon, Arg: "+1"},
		{Key: "Mod4-h", Action: ActionFocusMon, Arg: "-1"},
		{Key: "Mod4-Shift-l", Action: ActionTagMon, Arg: "+1"},
		{Key: "Mod4-Shift-h", Action: ActionTagMon, Arg: "-1"},
		{Key: "Mod4-Control-Shift-equal", Action: ActionSetGaps, Arg: "+1"},
		{Key: "Mod4-Control-minus", Action: ActionSetGaps, Arg: "-1"},
		{Key: "Mod4-Shift-r", Action: ActionQuit, Arg: "restart"},
	}
	for i := 1; i <= ntags && i <= 9; i++ {
		tag := fmt.Sprint(i)
		keys = append(keys,
			Key{Key: "Mod4-" + tag, Action: ActionView, Arg: tag},
			Key{Key: "Mod4-Control-" + tag, Action: ActionToggleView, Arg: tag},
			Key{Key: "Mod4-Shift-" + tag, Action: ActionTag, Arg: tag},
			Key{Key: "Mod4-Control-Shift-" + tag, Action: ActionToggleTag, Arg: tag},
		)
	}
	return keys
}

// DefaultButtons returns the built-in pointer binding table.
func DefaultButtons() []Button {
	return []Button{
		{Click: ClickLayoutSymbol, Button: "1", Action: ActionSetLayout},
		{Click: ClickLayoutSymbol, Button: "3", Action: ActionSetLayout, Arg: "2"},
		{Click: ClickWindowTitle, Button: "2", Action: ActionZoom},
		{Click: ClickStatusText, Button: "1", Action: ActionStatusClick},
		{Click: ClickStatusText, Button: "2", Action: ActionStatusClick},
		{Click: ClickStatusText, Button: "3", Action: ActionStatusClick},
		{Click: ClickClientWindow, Button: "Mod4-1", Action: ActionMoveMouse},
		{Click: ClickClientWindow, Button: "Mod4-2", Action: ActionToggleFloating},
		{Click: ClickClientWindow, Button: "Mod4-3", Action: ActionResizeMouse},
		{Click: ClickClientWindow, Button: "Mod4-Shift-1", Action: ActionSwallowMouse},
		{Click: ClickTagBar, Button: "1", Action: ActionView},
		{Click: ClickTagBar, Button: "3", Action: ActionToggleView},
		{Click: ClickTagBar, Button: "Mod4-1", Action: ActionTag},
		{Click: ClickTagBar, Button: "Mod4-3", Action: ActionToggleTag},
		{Click: ClickRootWindow, Button: "1", Action: ActionSpawn, Arg: "st"},
	}
}
