package registry

import "github.com/1broseidon/tagwm/internal/tiling"

// UniqueOutputs drops outputs whose geometry duplicates an earlier one.
// Cloned outputs are treated as a single monitor.
func UniqueOutputs(outputs []tiling.Rect) []tiling.Rect {
	out := make([]tiling.Rect, 0, len(outputs))
	for _, o := range outputs {
		dup := false
		for _, u := range out {
			if u == o {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, o)
		}
	}
	return out
}

// Reconcile brings the monitor set in line with the reported outputs and
// returns whether any geometry-dependent state changed, along with the
// monitors that were dropped. With no outputs a single synthetic monitor
// spans the whole screen.
func (r *Registry) Reconcile(outputs []tiling.Rect, screen tiling.Rect, barHeight int) (bool, []*Monitor) {
	dirty := false
	var removed []*Monitor
	unique := UniqueOutputs(outputs)

	if len(unique) == 0 {
		if len(r.Monitors) == 0 {
			r.Monitors = append(r.Monitors, newMonitor(r.defaults))
		}
		for len(r.Monitors) > 1 {
			removed = append(removed, r.removeLast())
			dirty = true
		}
		m := r.Monitors[0]
		if m.Bounds != screen {
			dirty = true
			m.Num = 0
			m.Bounds = screen
			m.UpdateBarPos(barHeight)
		}
	} else {
		n := len(r.Monitors)
		if n <= len(unique) {
			for i := n; i < len(unique); i++ {
				r.Monitors = append(r.Monitors, newMonitor(r.defaults))
			}
			for i, m := range r.Monitors {
				if i >= n || m.Bounds != unique[i] {
					dirty = true
					m.Num = i
					m.Bounds = unique[i]
					m.UpdateBarPos(barHeight)
				}
			}
		} else {
			for len(r.Monitors) > len(unique) {
				removed = append(removed, r.removeLast())
				dirty = true
			}
			for i, m := range r.Monitors {
				if m.Bounds != unique[i] {
					m.Num = i
					m.Bounds = unique[i]
					m.UpdateBarPos(barHeight)
				}
			}
		}
	}

	if r.Selected == nil || r.monitorIndex(r.Selected) < 0 {
		r.Selected = r.Monitors[0]
	}
	return dirty, removed
}

// removeLast migrates the last monitor's clients onto the first monitor and
// drops it.
func (r *Registry) removeLast() *Monitor {
	last := r.Monitors[len(r.Monitors)-1]
	first := r.Monitors[0]
	r.Monitors = r.Monitors[:len(r.Monitors)-1]

	// Heads keep their relative order; their focus stack membership moves
	// with them.
	for _, id := range last.Clients {
		c := r.clients[id]
		last.Stack = remove(last.Stack, id)
		c.Mon = first
		first.Clients = append(first.Clients, id)
		first.Stack = insertAt(first.Stack, 0, id)
	}
	last.Clients = nil
	last.Stack = nil
	last.Sel = 0

	// Hidden chain members follow their heads.
	for _, c := range r.clients {
		if c.Mon == last {
			c.Mon = first
		}
	}

	if r.Selected == last {
		r.Selected = first
	}
	return last
}
