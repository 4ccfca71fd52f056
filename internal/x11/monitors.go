package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/xinerama"
)

// Output is the geometry of one physical head.
type Output struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Outputs lists the active heads. Xinerama is asked first; when it is absent
// or reports nothing, enabled RandR CRTCs are used. An empty result means the
// caller should fall back to the whole screen.
func (c *Connection) Outputs() ([]Output, error) {
	if heads, err := xinerama.PhysicalHeads(c.XUtil); err == nil && len(heads) > 0 {
		out := make([]Output, 0, len(heads))
		for _, h := range heads {
			out = append(out, Output{X: h.X(), Y: h.Y(), Width: h.Width(), Height: h.Height()})
		}
		return out, nil
	}
	return c.crtcOutputs()
}

func (c *Connection) crtcOutputs() ([]Output, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, nil
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var outputs []Output
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		outputs = append(outputs, Output{
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return outputs, nil
}
