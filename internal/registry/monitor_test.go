package registry

import (
	"testing"

	"github.com/1broseidon/tagwm/internal/tiling"
)

const allTags = 1<<9 - 1

func TestView_SameMaskIsNoop(t *testing.T) {
	m := newMonitor(testDefaults())

	if !m.View(1<<2, allTags) {
		t.Fatalf("expected view of a new mask to change state")
	}
	if m.Tags() != 1<<2 || m.TagSet[m.SelTags^1] != 1 {
		t.Fatalf("expected active 1<<2 and previous 1, got %v", m.TagSet)
	}

	sel := m.SelTags
	if m.View(1<<2, allTags) {
		t.Fatalf("expected view of the active mask to be a no-op")
	}
	if m.SelTags != sel {
		t.Fatalf("expected tag set slot to stay put")
	}
}

func TestView_ZeroMaskTogglesPrevious(t *testing.T) {
	m := newMonitor(testDefaults())
	m.View(1<<4, allTags)

	if !m.View(0, allTags) {
		t.Fatalf("expected toggle to previous view")
	}
	if m.Tags() != 1 {
		t.Fatalf("expected previous view 1, got %d", m.Tags())
	}
	m.View(0, allTags)
	if m.Tags() != 1<<4 {
		t.Fatalf("expected to flip back to 1<<4, got %d", m.Tags())
	}
}

func TestToggleView_NeverEmpties(t *testing.T) {
	m := newMonitor(testDefaults())
	if m.ToggleView(1, allTags) {
		t.Fatalf("expected toggling the only tag to be refused")
	}
	if !m.ToggleView(1<<1, allTags) || m.Tags() != 0b11 {
		t.Fatalf("expected tags 0b11, got %b", m.Tags())
	}
}

func TestSetMFact_Bounds(t *testing.T) {
	m := newMonitor(testDefaults())

	if !m.SetMFact(0.05) || m.MFact < 0.5999 || m.MFact > 0.6001 {
		t.Fatalf("expected relative increase to 0.6, got %v", m.MFact)
	}
	if m.SetMFact(0.5) {
		t.Fatalf("expected 1.1 to be rejected")
	}
	if !m.SetMFact(1.3) || m.MFact < 0.2999 || m.MFact > 0.3001 {
		t.Fatalf("expected absolute 0.3, got %v", m.MFact)
	}
	if m.SetMFact(1.95) {
		t.Fatalf("expected absolute 0.95 to be rejected")
	}

	m.SetLayout(&tiling.Layout{Symbol: "><>", Kind: tiling.KindFloat})
	if m.SetMFact(0.05) {
		t.Fatalf("expected mfact to be fixed without an arrange function")
	}
}

func TestIncNMasterAndGaps(t *testing.T) {
	m := newMonitor(testDefaults())
	m.IncNMaster(-5)
	if m.NMaster != 0 {
		t.Fatalf("expected nmaster clamped at 0, got %d", m.NMaster)
	}

	m.SetGaps(+5)
	if m.Gap != 15 {
		t.Fatalf("expected gap 15, got %d", m.Gap)
	}
	m.SetGaps(-100)
	if m.Gap != 0 {
		t.Fatalf("expected gap clamped at 0, got %d", m.Gap)
	}
	m.SetGaps(+3)
	m.SetGaps(0)
	if m.Gap != 0 {
		t.Fatalf("expected zero delta to reset gap, got %d", m.Gap)
	}
}

func TestSetLayout_TogglesPrevious(t *testing.T) {
	m := newMonitor(testDefaults())
	if m.Symbol != "[]=" {
		t.Fatalf("expected default symbol []=, got %q", m.Symbol)
	}

	monocle := tiling.Layout{Symbol: "[M]", Kind: tiling.KindMonocle}
	m.SetLayout(&monocle)
	if m.Layout() != monocle || m.Symbol != "[M]" {
		t.Fatalf("expected monocle, got %+v", m.Layout())
	}

	m.SetLayout(nil)
	if m.Layout().Kind != tiling.KindTile {
		t.Fatalf("expected toggle back to tile, got %+v", m.Layout())
	}

	m.SetLayout(nil)
	if m.Layout() != monocle {
		t.Fatalf("expected toggle to monocle again, got %+v", m.Layout())
	}
}
