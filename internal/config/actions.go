package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Action names a user operation bound to a key or button.
type Action string

const (
	ActionView             Action = "view"
	ActionToggleView       Action = "toggleview"
	ActionTag              Action = "tag"
	ActionToggleTag        Action = "toggletag"
	ActionFocusStack       Action = "focusstack"
	ActionMoveClient       Action = "moveclient"
	ActionZoom             Action = "zoom"
	ActionIncNMaster       Action = "incnmaster"
	ActionSetMFact         Action = "setmfact"
	ActionSetCFact         Action = "setcfact"
	ActionSetGaps          Action = "setgaps"
	ActionSetLayout        Action = "setlayout"
	ActionToggleBar        Action = "togglebar"
	ActionToggleFloating   Action = "togglefloating"
	ActionToggleFullscreen Action = "togglefullscreen"
	ActionFocusMon         Action = "focusmon"
	ActionTagMon           Action = "tagmon"
	ActionKillClient       Action = "killclient"
	ActionSpawn            Action = "spawn"
	ActionQuit             Action = "quit"
	ActionMoveMouse        Action = "movemouse"
	ActionResizeMouse      Action = "resizemouse"
	ActionSwallowMouse     Action = "swalmouse"
	ActionSwallowStop      Action = "swalstopsel"
	ActionStatusClick      Action = "statusclick"
)

// Click is a region of the screen a button binding applies to.
type Click string

const (
	ClickTagBar       Click = "tagbar"
	ClickLayoutSymbol Click = "ltsymbol"
	ClickStatusText   Click = "statustext"
	ClickWindowTitle  Click = "wintitle"
	ClickClientWindow Click = "clientwin"
	ClickRootWindow   Click = "rootwin"
)

func (c Click) valid() bool {
	switch c {
	case ClickTagBar, ClickLayoutSymbol, ClickStatusText, ClickWindowTitle, ClickClientWindow, ClickRootWindow:
		return true
	}
	return false
}

// Arg is the decoded argument of a binding. Which field is meaningful
// depends on the action.
type Arg struct {
	Int   int
	Float float64
	// Mask is a tag mask. Zero means "previous" for view and "from the
	// clicked tag" for tag bar buttons.
	Mask uint32
	// Layout is an index into the layout table, or -1 to toggle.
	Layout  int
	Command string
	Restart bool
}

// ParseArg decodes the argument string of action.
func ParseArg(action Action, s string, ntags, nlayouts int) (Arg, error) {
	s = strings.TrimSpace(s)
	arg := Arg{Layout: -1}
	switch action {
	case ActionView, ActionToggleView, ActionTag, ActionToggleTag:
		switch s {
		case "":
		case "all":
			arg.Mask = ^uint32(0)
		default:
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > ntags {
				return arg, fmt.Errorf("%s: tag %q must be 1..%d or \"all\"", action, s, ntags)
			}
			arg.Mask = 1 << (n - 1)
		}
	case ActionFocusStack, ActionMoveClient, ActionIncNMaster, ActionSetGaps, ActionFocusMon, ActionTagMon:
		n, err := strconv.Atoi(s)
		if err != nil {
			return arg, fmt.Errorf("%s: integer argument required, got %q", action, s)
		}
		arg.Int = n
	case ActionSetMFact, ActionSetCFact:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return arg, fmt.Errorf("%s: numeric argument required, got %q", action, s)
		}
		arg.Float = f
	case ActionSetLayout:
		if s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n >= nlayouts {
				return arg, fmt.Errorf("%s: layout index %q must be 0..%d", action, s, nlayouts-1)
			}
			arg.Layout = n
		}
	case ActionSpawn:
		if s == "" {
			return arg, fmt.Errorf("%s: command required", action)
		}
		arg.Command = s
	case ActionQuit:
		switch s {
		case "":
		case "restart":
			arg.Restart = true
		default:
			return arg, fmt.Errorf("%s: argument must be empty or \"restart\"", action)
		}
	case ActionZoom, ActionToggleBar, ActionToggleFloating, ActionToggleFullscreen, ActionKillClient,
		ActionMoveMouse, ActionResizeMouse, ActionSwallowMouse, ActionSwallowStop, ActionStatusClick:
	default:
		return arg, fmt.Errorf("unknown action %q", action)
	}
	return arg, nil
}
