package textbox

import "testing"

func newTestBox(t *testing.T, text string) *TextBox {
	t.Helper()
	tb, err := New(&Options{Text: text, TrackHistory: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tb
}

func TestIndexClamping(t *testing.T) {
	tb := newTestBox(t, "hello\nworld")

	// Out-of-range construction never errors; it clamps.
	if p := tb.Index(99, 99); !p.Eq(tb.End()) {
		t.Errorf("Expected end %v, got %v", tb.End(), p)
	}
	if p := tb.Index(-5, -5); !p.Eq(tb.Start()) {
		t.Errorf("Expected start, got %v", p)
	}
	if p := tb.Index(1, 100); p.Line != 1 || p.Col != 5 {
		t.Errorf("Expected 1.5, got %v", p)
	}

	// Every constructed or moved position stays inside [start, end].
	probes := []Position{
		tb.Index(1, 3).Forward(100, 0, 0),
		tb.Index(2, 2).Back(100, 0, 0),
		tb.Index(1, 0).Back(0, 0, 5),
		tb.Index(2, 0).Forward(0, 0, 5),
	}
	for _, p := range probes {
		if p.Less(tb.Start()) || p.Greater(tb.End()) {
			t.Errorf("Position %v escaped the buffer", p)
		}
	}
}

func TestPositionMovement(t *testing.T) {
	tb := newTestBox(t, "hello\nworld")

	// The line delimiter is one char; movement crosses it.
	if p := tb.Index(1, 3).Forward(4, 0, 0); p.Line != 2 || p.Col != 1 {
		t.Errorf("Expected 2.1, got %v", p)
	}
	if p := tb.Index(2, 1).Back(4, 0, 0); p.Line != 1 || p.Col != 3 {
		t.Errorf("Expected 1.3, got %v", p)
	}
	if p := tb.Index(1, 2).Forward(0, 0, 1); p.Line != 2 || p.Col != 2 {
		t.Errorf("Expected 2.2, got %v", p)
	}

	// Movement past either end clamps.
	if p := tb.Start().Back(10, 0, 0); !p.Eq(tb.Start()) {
		t.Errorf("Expected start, got %v", p)
	}
	if p := tb.End().Forward(10, 0, 0); !p.Eq(tb.End()) {
		t.Errorf("Expected end, got %v", p)
	}
}

func TestPositionComparison(t *testing.T) {
	tb := newTestBox(t, "hello\nworld")

	a, b := tb.Index(1, 2), tb.Index(2, 0)
	if !a.Less(b) || !b.Greater(a) || a.Eq(b) {
		t.Errorf("Expected %v < %v", a, b)
	}

	// Two syntactically different addresses of the same live unit
	// compare equal after normalization.
	if !tb.Index(1, 100).Eq(tb.Index(1, 5)) {
		t.Errorf("Expected 1.100 to normalize to 1.5")
	}
}

func TestLineAndWordBoundaries(t *testing.T) {
	tb := newTestBox(t, "hello world\nsecond")

	if p := tb.Index(1, 7).LineStart(); p.Col != 0 {
		t.Errorf("Expected column 0, got %v", p)
	}
	if p := tb.Index(1, 7).LineEnd(); p.Col != 11 {
		t.Errorf("Expected column 11, got %v", p)
	}
	if p := tb.Index(1, 8).WordStart(); p.Col != 6 {
		t.Errorf("Expected word start at 1.6, got %v", p)
	}
	if p := tb.Index(1, 8).WordEnd(); p.Col != 11 {
		t.Errorf("Expected word end at 1.11, got %v", p)
	}
	// A non-word unit is a word of its own.
	if p := tb.Index(1, 5).WordStart(); p.Col != 5 {
		t.Errorf("Expected 1.5, got %v", p)
	}
	if p := tb.Index(1, 5).WordEnd(); p.Col != 6 {
		t.Errorf("Expected 1.6, got %v", p)
	}
}

func TestRangeContains(t *testing.T) {
	tb := newTestBox(t, "hello\nworld")

	r := tb.RangeOf(1, 2, 2, 1)
	if r.Start.Greater(r.End) {
		t.Errorf("Range not normalized: %v", r)
	}

	// Construction from swapped bounds normalizes.
	swapped := tb.NewRange(tb.Index(2, 1), tb.Index(1, 2))
	if !swapped.Start.Eq(r.Start) || !swapped.End.Eq(r.End) {
		t.Errorf("Expected %v, got %v", r, swapped)
	}

	// Half-open: start in, end out.
	if !r.Contains(r.Start) {
		t.Errorf("Expected range to contain its start")
	}
	if r.Contains(r.End) {
		t.Errorf("Expected range not to contain its end")
	}
	if !r.Contains(tb.Index(1, 5)) || r.Contains(tb.Index(1, 1)) {
		t.Errorf("Containment wrong around %v", r)
	}
}

func TestAtResolution(t *testing.T) {
	tb := newTestBox(t, "hello\nworld")
	tb.SetMark("m", tb.Index(2, 3))

	if p, err := tb.At(0); err != nil || !p.Eq(tb.Start()) {
		t.Errorf("At(0) = %v, %v", p, err)
	}
	if p, err := tb.At(-1); err != nil || !p.Eq(tb.End()) {
		t.Errorf("At(-1) = %v, %v", p, err)
	}
	if p, err := tb.At("m"); err != nil || p.Line != 2 || p.Col != 3 {
		t.Errorf("At(\"m\") = %v, %v", p, err)
	}
	if p, err := tb.At("2.1"); err != nil || p.Line != 2 || p.Col != 1 {
		t.Errorf("At(\"2.1\") = %v, %v", p, err)
	}

	if _, err := tb.At(3.14); err == nil {
		t.Errorf("Expected ErrUnsupportedValueType for a float")
	}
}
