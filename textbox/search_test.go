package textbox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collectMatches(t *testing.T, it *SearchIter) ([]string, []int) {
	t.Helper()
	var ranges []string
	var lengths []int
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		ranges = append(ranges, m.Range.String())
		lengths = append(lengths, m.Length)
	}
	return ranges, lengths
}

func TestSearchForward(t *testing.T) {
	tb := newTestBox(t, "the cat sat on the mat")

	it, err := tb.Search("at", tb.Start(), Position{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ranges, lengths := collectMatches(t, it)

	want := []string{"1.5-1.7", "1.9-1.11", "1.20-1.22"}
	if diff := cmp.Diff(want, ranges); diff != "" {
		t.Errorf("Matches mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 2, 2}, lengths); diff != "" {
		t.Errorf("Lengths mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchBackward(t *testing.T) {
	tb := newTestBox(t, "the cat sat on the mat")

	it, err := tb.Search("at", tb.End(), Position{}, &SearchOptions{Backwards: true})
	if err != nil {
		t.Fatal(err)
	}
	ranges, _ := collectMatches(t, it)

	want := []string{"1.20-1.22", "1.9-1.11", "1.5-1.7"}
	if diff := cmp.Diff(want, ranges); diff != "" {
		t.Errorf("Matches mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchIgnoreCase(t *testing.T) {
	tb := newTestBox(t, "The CAT sat")

	it, err := tb.Search("cat", tb.Start(), Position{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := it.Next(); ok {
		t.Errorf("Case-sensitive search should not match CAT")
	}

	it, err = tb.Search("cat", tb.Start(), Position{}, &SearchOptions{IgnoreCase: true})
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := it.Next(); !ok || m.Range.Start.Col != 4 {
		t.Errorf("Expected match at 1.4, got %v, %v", m, ok)
	}
}

func TestSearchRegexp(t *testing.T) {
	tb := newTestBox(t, "ab12cd34")

	it, err := tb.Search(`[0-9]+`, tb.Start(), Position{}, &SearchOptions{Regexp: true})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := it.Next()
	if !ok || m.Range.String() != "1.2-1.4" || m.Length != 2 {
		t.Errorf("First match = %v, %v", m, ok)
	}

	// A bad pattern fails at Search time, before any iteration.
	if _, err := tb.Search(`[`, tb.Start(), Position{}, &SearchOptions{Regexp: true}); err == nil {
		t.Errorf("Expected a compile error")
	}
}

func TestSearchMatchNewline(t *testing.T) {
	tb := newTestBox(t, "ab\ncd")

	it, err := tb.Search(`b.c`, tb.Start(), Position{}, &SearchOptions{Regexp: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := it.Next(); ok {
		t.Errorf("'.' should not cross lines by default")
	}

	it, err = tb.Search(`b.c`, tb.Start(), Position{}, &SearchOptions{Regexp: true, MatchNewline: true})
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := it.Next(); !ok || m.Range.String() != "1.1-2.1" {
		t.Errorf("Expected 1.1-2.1, got %v, %v", m, ok)
	}
}

func TestSearchSkipsHidden(t *testing.T) {
	tb := newTestBox(t, "the cat sat on the mat")
	tb.HiddenTag().Add(tb.RangeOf(1, 4, 1, 8)) // hide "cat "

	it, err := tb.Search("at", tb.Start(), Position{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ranges, _ := collectMatches(t, it)
	want := []string{"1.9-1.11", "1.20-1.22"}
	if diff := cmp.Diff(want, ranges); diff != "" {
		t.Errorf("Hidden content searched (-want +got):\n%s", diff)
	}

	it, err = tb.Search("at", tb.Start(), Position{}, &SearchOptions{IncludeHidden: true})
	if err != nil {
		t.Fatal(err)
	}
	ranges, _ = collectMatches(t, it)
	if len(ranges) != 3 {
		t.Errorf("Expected 3 matches including hidden, got %v", ranges)
	}
}

func TestSearchBounds(t *testing.T) {
	tb := newTestBox(t, "aaa")

	// Matches must start before the stop bound...
	it, err := tb.Search("aa", tb.Start(), tb.Index(1, 1), nil)
	if err != nil {
		t.Fatal(err)
	}
	ranges, _ := collectMatches(t, it)
	if len(ranges) != 1 || ranges[0] != "1.0-1.2" {
		t.Errorf("Got %v", ranges)
	}

	// ...and with strict limits, end inside it too.
	it, err = tb.Search("aa", tb.Start(), tb.Index(1, 1), &SearchOptions{StrictLimits: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := it.Next(); ok {
		t.Errorf("Strict limits should reject a match crossing the bound")
	}
}

func TestSearchProgressOnZeroWidth(t *testing.T) {
	tb := newTestBox(t, "abc")

	// A zero-width pattern must still advance one unit per match.
	it, err := tb.Search(`x*`, tb.Start(), Position{}, &SearchOptions{Regexp: true})
	if err != nil {
		t.Fatal(err)
	}
	seen := 0
	for _, ok := it.Next(); ok && seen < 10; _, ok = it.Next() {
		seen++
	}
	if seen < 2 || seen >= 10 {
		t.Errorf("Zero-width iteration did not progress and terminate, got %v matches", seen)
	}
}

func TestSearchForwardsOverridesBackwards(t *testing.T) {
	tb := newTestBox(t, "cat cat")

	it, err := tb.Search("cat", tb.Start(), Position{}, &SearchOptions{Backwards: true, Forwards: true})
	if err != nil {
		t.Fatal(err)
	}
	if m, ok := it.Next(); !ok || m.Range.Start.Col != 0 {
		t.Errorf("Expected the forward search to run, got %v, %v", m, ok)
	}
}
