package viewport

import (
	"math"
	"testing"
)

func TestNewVertical(t *testing.T) {
	v := NewVertical(0)
	if v.WindowLength() != DefaultWindowLength {
		t.Errorf("expected default window length %d, got %d", DefaultWindowLength, v.WindowLength())
	}
	if v.ThumbSize() != 100 {
		t.Errorf("expected full thumb on empty view, got %v", v.ThumbSize())
	}
}

func TestVertical_MaxOffset(t *testing.T) {
	tests := []struct {
		length, window, want int
	}{
		{0, 20, 0},
		{10, 20, 0},
		{20, 20, 0},
		{21, 20, 1},
		{5, 2, 3},
	}

	for _, tt := range tests {
		v := NewVertical(tt.window)
		v.Reset(tt.length)
		if got := v.MaxOffset(); got != tt.want {
			t.Errorf("MaxOffset(len=%d, window=%d) = %d, want %d", tt.length, tt.window, got, tt.want)
		}
	}
}

func TestVertical_ScenarioB(t *testing.T) {
	v := NewVertical(2)
	v.Reset(5)

	res, changed := v.PerformScroll(10)
	if !changed {
		t.Fatal("expected scroll to change the offset")
	}
	if res.Offset != 3 || v.Offset() != 3 {
		t.Errorf("expected offset 3, got %d", res.Offset)
	}
	if res.Steps != 10 || res.WindowLength != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Start != 3 || res.End != 5 {
		t.Errorf("expected window [3,5), got [%d,%d)", res.Start, res.End)
	}
}

func TestVertical_NoChangeNoResult(t *testing.T) {
	v := NewVertical(2)
	v.Reset(5)

	if _, changed := v.PerformScroll(-1); changed {
		t.Error("scrolling up at the top should not change anything")
	}
	v.PerformScroll(3)
	if _, changed := v.PerformScroll(1); changed {
		t.Error("scrolling down at the bottom should not change anything")
	}
	if _, changed := v.PerformScroll(0); changed {
		t.Error("zero steps should not change anything")
	}
}

func TestVertical_ResetAndSetLength(t *testing.T) {
	v := NewVertical(10)
	v.Reset(100)
	v.ScrollTo(50)

	v.SetLength(40)
	if v.Offset() != 30 {
		t.Errorf("expected offset clamped to 30, got %d", v.Offset())
	}

	v.Reset(100)
	if v.Offset() != 0 {
		t.Errorf("expected offset 0 after Reset, got %d", v.Offset())
	}
}

func TestVertical_SetWindowLength(t *testing.T) {
	v := NewVertical(10)
	v.Reset(30)
	v.ScrollTo(20)

	v.SetWindowLength(25)
	if v.Offset() != 5 {
		t.Errorf("expected offset clamped to 5, got %d", v.Offset())
	}
	if start, end := v.Window(); start != 5 || end != 30 {
		t.Errorf("expected window [5,30), got [%d,%d)", start, end)
	}
}

func TestVertical_WindowShortView(t *testing.T) {
	v := NewVertical(20)
	v.Reset(3)
	if start, end := v.Window(); start != 0 || end != 3 {
		t.Errorf("expected window [0,3), got [%d,%d)", start, end)
	}
}

func TestThumbSize_ScenarioD(t *testing.T) {
	if got := ThumbSize(1000, 20); got != MinThumbSize {
		t.Errorf("expected thumb size %v, got %v", MinThumbSize, got)
	}
}

func TestThumbSize(t *testing.T) {
	if got := ThumbSize(10, 20); got != 100 {
		t.Errorf("no excess should give 100, got %v", got)
	}
	if got := ThumbSize(21, 20); got != 99 {
		t.Errorf("one row of excess should give 99, got %v", got)
	}
	if got := ThumbSize(22, 20); math.Abs(got-98.01) > 1e-9 {
		t.Errorf("two rows of excess should give 98.01, got %v", got)
	}

	prev := 100.0
	for n := 20; n < 400; n++ {
		got := ThumbSize(n, 20)
		if got > prev {
			t.Fatalf("thumb size grew at n=%d: %v > %v", n, got, prev)
		}
		if got < MinThumbSize {
			t.Fatalf("thumb size below floor at n=%d: %v", n, got)
		}
		prev = got
	}
}

func TestVertical_ThumbBoundInvariant(t *testing.T) {
	for _, n := range []int{0, 5, 21, 57, 300, 5000} {
		v := NewVertical(20)
		v.Reset(n)
		limit := 100 - v.ThumbSize()
		for offset := 0; offset <= v.MaxOffset(); offset++ {
			v.ScrollTo(offset)
			top := v.ThumbTop()
			if top < 0 || top > limit+1e-9 {
				t.Fatalf("n=%d offset=%d: thumb top %v outside [0,%v]", n, offset, top, limit)
			}
		}
		if v.MaxOffset() > 0 && math.Abs(v.ThumbTop()-limit) > 1e-9 {
			t.Errorf("n=%d: expected thumb at %v at max offset, got %v", n, limit, v.ThumbTop())
		}
	}
}

func TestWheelSteps(t *testing.T) {
	tests := []struct {
		delta float64
		want  int
	}{
		{0, 0},
		{1, 1},
		{50, 1},
		{51, 2},
		{120, 3},
		{-1, -1},
		{-100, -2},
		{-101, -3},
	}
	for _, tt := range tests {
		if got := WheelSteps(tt.delta); got != tt.want {
			t.Errorf("WheelSteps(%v) = %d, want %d", tt.delta, got, tt.want)
		}
	}
}

func TestDragSteps(t *testing.T) {
	// 100 rows, 50% thumb, 200px track: travel is 100px, one row per pixel.
	if got := DragSteps(100, 50, 200, 10); got != 10 {
		t.Errorf("expected 10 steps, got %d", got)
	}
	if got := DragSteps(100, 50, 200, -3.4); got != -3 {
		t.Errorf("expected -3 steps, got %d", got)
	}
	if got := DragSteps(100, 100, 200, 10); got != 0 {
		t.Errorf("full thumb should not move, got %d", got)
	}
}

func TestVertical_Drag(t *testing.T) {
	v := NewVertical(20)
	v.Reset(1000)

	if _, changed := v.DragTo(50); changed {
		t.Error("DragTo without BeginDrag should do nothing")
	}

	v.BeginDrag(10, 100)
	if !v.Dragging() {
		t.Fatal("expected drag to be active")
	}

	// Thumb is 20%: travel 80px, 12.5 rows per pixel.
	res, changed := v.DragTo(18)
	if !changed || res.Offset != 100 {
		t.Errorf("expected offset 100, got %d (changed=%v)", res.Offset, changed)
	}

	v.DragTo(500)
	if v.Offset() != v.MaxOffset() {
		t.Errorf("drag past the end should snap to %d, got %d", v.MaxOffset(), v.Offset())
	}
	v.DragTo(-5)
	if v.Offset() != 0 {
		t.Errorf("drag past the start should snap to 0, got %d", v.Offset())
	}

	v.EndDrag()
	if v.Dragging() {
		t.Error("expected drag to end")
	}
}

func TestVertical_DragToLastCell(t *testing.T) {
	v := NewVertical(10)
	v.Reset(1000)

	// A 9-cell track reports positions 0..8.
	v.BeginDrag(0, 9)
	if _, changed := v.DragTo(8); !changed {
		t.Fatal("expected drag to the last cell to scroll")
	}
	if v.Offset() != v.MaxOffset() {
		t.Errorf("expected last cell to reach %d, got %d", v.MaxOffset(), v.Offset())
	}

	v.DragTo(7)
	if v.Offset() == v.MaxOffset() {
		t.Error("expected second to last cell to stop short of the end")
	}
}

func TestHorizontal_ThumbSize(t *testing.T) {
	tests := []struct {
		total, container, want float64
	}{
		{0, 80, 100},
		{50, 80, 100},
		{200, 80, 40},
		{160, 80, 50},
	}
	for _, tt := range tests {
		h := NewHorizontal()
		h.SetWidths(tt.total, tt.container)
		if got := h.ThumbSize(); got != tt.want {
			t.Errorf("ThumbSize(%v, %v) = %v, want %v", tt.total, tt.container, got, tt.want)
		}
	}
}

func TestHorizontal_PerformScroll(t *testing.T) {
	h := NewHorizontal()
	h.SetWidths(200, 100)

	if !h.PerformScroll(0.5) || h.Offset() != 0.5 {
		t.Errorf("expected offset 0.5, got %v", h.Offset())
	}
	if got := h.Pan(); got != -25 {
		t.Errorf("expected pan -25, got %v", got)
	}
	if got := h.PanCells(); got != 50 {
		t.Errorf("expected 50 cells, got %d", got)
	}

	h.PerformScroll(0.495)
	if h.Offset() != 1 {
		t.Errorf("expected snap to 1, got %v", h.Offset())
	}
	if h.PerformScroll(0.3) {
		t.Error("scrolling past the end should not change anything")
	}

	h.PerformScroll(-0.995)
	if h.Offset() != 0 {
		t.Errorf("expected snap to 0, got %v", h.Offset())
	}
	if h.Pan() != 0 {
		t.Errorf("expected pan 0, got %v", h.Pan())
	}
}

func TestHorizontal_Drag(t *testing.T) {
	h := NewHorizontal()
	h.SetWidths(200, 100)

	h.BeginDrag(20, 100)
	// Thumb is 50%: travel 50px.
	h.DragTo(45)
	if math.Abs(h.Offset()-0.5) > 1e-9 {
		t.Errorf("expected offset 0.5, got %v", h.Offset())
	}

	h.DragTo(99)
	if h.Offset() != 1 {
		t.Errorf("expected last cell to snap to 1, got %v", h.Offset())
	}
	h.DragTo(0)
	if h.Offset() != 0 {
		t.Errorf("expected snap to 0, got %v", h.Offset())
	}

	h.EndDrag()
	if h.DragTo(50) {
		t.Error("DragTo after EndDrag should do nothing")
	}
}
