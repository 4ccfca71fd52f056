package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Core request major opcodes that may legitimately fail when a window
// disappears between a request and its processing.
const (
	opConfigureWindow   = 12
	opGrabButton        = 28
	opGrabKey           = 33
	opSetInputFocus     = 42
	opCopyArea          = 62
	opPolySegment       = 66
	opPolyFillRectangle = 70
	opPutImage          = 72
	opPolyText8         = 74
)

// IsIgnorable reports whether an asynchronous X error is expected while
// managing windows owned by other clients. Everything else is fatal.
func IsIgnorable(err xgb.Error) bool {
	switch e := err.(type) {
	case xproto.WindowError:
		return true
	case xproto.MatchError:
		return e.MajorOpcode == opSetInputFocus || e.MajorOpcode == opConfigureWindow
	case xproto.DrawableError:
		switch e.MajorOpcode {
		case opPolyText8, opPolyFillRectangle, opPolySegment, opCopyArea, opPutImage:
			return true
		}
	case xproto.AccessError:
		return e.MajorOpcode == opGrabButton || e.MajorOpcode == opGrabKey
	}
	return false
}
