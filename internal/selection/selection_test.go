package selection

import (
	"fmt"
	"testing"

	"github.com/dshills/gridview/internal/record"
)

func makeView(n int) []*record.Record {
	view := make([]*record.Record, n)
	for i := range view {
		view[i] = record.New(map[string]any{"id": i})
	}
	return view
}

func ids(recs []*record.Record) string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Text("id")
	}
	return fmt.Sprint(out)
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Replace, "replace"},
		{Toggle, "toggle"},
		{Extend, "extend"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlainClickReplaces(t *testing.T) {
	view := makeView(5)
	m := New()

	m.Click(view, view[1], Replace)
	m.Click(view, view[3], Replace)

	if got := ids(m.Selected(nil)); got != "[3]" {
		t.Errorf("expected [3], got %s", got)
	}
}

func TestToggle(t *testing.T) {
	view := makeView(5)
	m := New()

	m.Click(view, view[0], Replace)
	m.Click(view, view[2], Toggle)
	m.Click(view, view[4], Toggle)
	if got := ids(m.Selected(nil)); got != "[0 2 4]" {
		t.Fatalf("expected [0 2 4], got %s", got)
	}

	m.Click(view, view[2], Toggle)
	if got := ids(m.Selected(nil)); got != "[0 4]" {
		t.Errorf("expected [0 4], got %s", got)
	}
	if m.Contains(view[2]) {
		t.Error("toggled record should be removed")
	}
}

func TestToggleRemovesExactRecord(t *testing.T) {
	a := record.New(map[string]any{"id": "same"})
	b := record.New(map[string]any{"id": "same"})
	view := []*record.Record{a, b}
	m := New()

	m.Click(view, a, Toggle)
	m.Click(view, b, Toggle)
	m.Click(view, b, Toggle)

	if !m.Contains(a) || m.Contains(b) {
		t.Error("toggle should act on the clicked record identity only")
	}
}

func TestExtendRange(t *testing.T) {
	view := makeView(10)
	m := New()

	m.Click(view, view[2], Replace)
	m.Click(view, view[5], Extend)

	if got := ids(m.Selected(nil)); got != "[2 3 4 5]" {
		t.Errorf("expected [2 3 4 5], got %s", got)
	}
}

func TestExtendBackwardsKeepsOthers(t *testing.T) {
	view := makeView(10)
	m := New()

	m.Click(view, view[6], Replace)
	m.Click(view, view[9], Toggle)
	m.Click(view, view[3], Extend)

	got := m.Selected(nil)
	if len(got) != 5 {
		t.Fatalf("expected 5 selected, got %s", ids(got))
	}
	for _, i := range []int{3, 4, 5, 6, 9} {
		if !m.Contains(view[i]) {
			t.Errorf("expected record %d selected", i)
		}
	}
}

func TestExtendWithoutAnchorActsAsPlainClick(t *testing.T) {
	view := makeView(4)
	m := New()

	m.Click(view, view[2], Extend)
	if got := ids(m.Selected(nil)); got != "[2]" {
		t.Errorf("expected [2], got %s", got)
	}
}

func TestExtendAnchorOutsideView(t *testing.T) {
	full := makeView(6)
	m := New()
	m.Click(full, full[0], Replace)

	filtered := full[3:]
	m.Click(filtered, filtered[2], Extend)
	if got := ids(m.Selected(nil)); got != "[5]" {
		t.Errorf("expected [5], got %s", got)
	}
}

func TestExtendUsesCurrentOrdering(t *testing.T) {
	view := makeView(5)
	m := New()
	m.Click(view, view[1], Replace)

	reversed := []*record.Record{view[4], view[3], view[2], view[1], view[0]}
	m.Click(reversed, view[0], Extend)

	// In reversed order record 1 sits next to record 0.
	if got := ids(m.Selected(nil)); got != "[1 0]" {
		t.Errorf("expected [1 0], got %s", got)
	}
}

func TestRangeInvariant(t *testing.T) {
	view := makeView(30)
	clicks := []struct {
		first, clicked int
	}{
		{0, 29},
		{15, 3},
		{7, 7},
		{29, 0},
	}

	for _, c := range clicks {
		t.Run(fmt.Sprintf("%d-%d", c.first, c.clicked), func(t *testing.T) {
			m := New()
			m.Click(view, view[c.first], Replace)
			m.Click(view, view[c.clicked], Extend)

			lo, hi := c.first, c.clicked
			if lo > hi {
				lo, hi = hi, lo
			}
			for i := lo; i <= hi; i++ {
				if !m.Contains(view[i]) {
					t.Errorf("record %d missing from selection", i)
				}
			}
			if m.Len() != hi-lo+1 {
				t.Errorf("expected %d selected, got %d", hi-lo+1, m.Len())
			}
		})
	}
}

func TestClear(t *testing.T) {
	view := makeView(3)
	m := New()
	m.Click(view, view[0], Replace)
	m.Click(view, view[2], Extend)

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("expected empty selection, got %d", m.Len())
	}
	if _, ok := m.Anchor(); ok {
		t.Error("expected no anchor after Clear")
	}
}

func TestSelectedPrunesDeadRecords(t *testing.T) {
	view := makeView(4)
	m := New()
	m.Click(view, view[0], Replace)
	m.Click(view, view[3], Extend)

	removed := view[1]
	alive := func(r *record.Record) bool { return r != removed }

	if got := ids(m.Selected(alive)); got != "[0 2 3]" {
		t.Errorf("expected [0 2 3], got %s", got)
	}
	if m.Contains(removed) {
		t.Error("pruned record should no longer be contained")
	}
	if m.Len() != 3 {
		t.Errorf("expected 3, got %d", m.Len())
	}
}

func TestNilClickIgnored(t *testing.T) {
	m := New()
	m.Click(nil, nil, Replace)
	if m.Len() != 0 {
		t.Errorf("expected empty selection, got %d", m.Len())
	}
}
