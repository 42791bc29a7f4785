package textbox

import "testing"

func TestReconstructInsertsSpanAtOpenIndex(t *testing.T) {
	tb := newTestBox(t, "abcd")
	tag := tb.NewNamedTag("t", Attributes{Bold: On})

	// The stream: text "ab" @1.0, tag-open @1.2, text "cd" @1.2,
	// tag-close @1.4. The span lands where the open was recorded.
	events := []Event{
		{Kind: EventText, Pos: tb.Index(1, 0), Text: "ab"},
		{Kind: EventTagOn, Pos: tb.Index(1, 2), Tag: tag},
		{Kind: EventText, Pos: tb.Index(1, 2), Text: "cd"},
		{Kind: EventTagOff, Pos: tb.Index(1, 4), Tag: tag},
	}

	items := Reconstruct(events, tb.End())
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %v", len(items))
	}
	if items[0].Kind != ContentText || items[0].Text != "ab" || items[0].Pos.String() != "1.0" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Kind != ContentTagSpan || items[1].Span.String() != "1.2-1.4" || items[1].Tag != tag {
		t.Errorf("items[1] = %+v", items[1])
	}
	if items[2].Kind != ContentText || items[2].Text != "cd" || items[2].Pos.String() != "1.2" {
		t.Errorf("items[2] = %+v", items[2])
	}
}

func TestReconstructAutoClosesUnterminated(t *testing.T) {
	tb := newTestBox(t, "abcd")
	tag := tb.NewNamedTag("t", Attributes{Bold: On})

	events := []Event{
		{Kind: EventText, Pos: tb.Index(1, 0), Text: "ab"},
		{Kind: EventTagOn, Pos: tb.Index(1, 2), Tag: tag},
		{Kind: EventText, Pos: tb.Index(1, 2), Text: "cd"},
		// No tag-close before the stream ends.
	}

	items := Reconstruct(events, tb.End())
	if len(items) != 3 {
		t.Fatalf("Expected the span to be auto-closed, got %v items", len(items))
	}
	if items[1].Kind != ContentTagSpan || items[1].Span.String() != "1.2-1.4" {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestDumpOrderAndKinds(t *testing.T) {
	tb := newTestBox(t, "abcd")
	tag := tb.NewNamedTag("t", Attributes{Italic: On})
	tag.Add(tb.RangeOf(1, 1, 1, 3))
	tb.SetMark("m", tb.Index(1, 2))

	events := tb.Dump(tb.All())

	// Expected document order: insert mark @1.0, text "a", tagon @1.1,
	// text "b", mark m @1.2, text "c", tagoff @1.3, text "d".
	kinds := make([]EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	want := []EventKind{EventMark, EventText, EventTagOn, EventText, EventMark, EventText, EventTagOff, EventText}
	if len(kinds) != len(want) {
		t.Fatalf("Expected %v events, got %v: %v", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("events[%v].Kind = %v, want %v", i, kinds[i], want[i])
		}
	}

	if events[2].Pos.String() != "1.1" || events[6].Pos.String() != "1.3" {
		t.Errorf("Tag events at %v and %v", events[2].Pos, events[6].Pos)
	}
}

func TestContentReconstruction(t *testing.T) {
	tb := newTestBox(t, "abcd")
	tag := tb.NewNamedTag("t", Attributes{Bold: On})
	tag.Add(tb.RangeOf(1, 2, 1, 4))

	items := tb.Content()

	// insert mark @1.0, "ab", span (1.2-1.4), "cd" -- the span sits at
	// the index recorded when the tag opened.
	if len(items) != 4 {
		t.Fatalf("Expected 4 items, got %v: %+v", len(items), items)
	}
	if items[0].Kind != ContentMark || items[0].Mark != "insert" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Kind != ContentText || items[1].Text != "ab" {
		t.Errorf("items[1] = %+v", items[1])
	}
	if items[2].Kind != ContentTagSpan || items[2].Span.String() != "1.2-1.4" {
		t.Errorf("items[2] = %+v", items[2])
	}
	if items[3].Kind != ContentText || items[3].Text != "cd" {
		t.Errorf("items[3] = %+v", items[3])
	}
}

func TestContentWithEmbed(t *testing.T) {
	tb := newTestBox(t, "ab")
	if _, err := tb.InsertImage(tb.Index(1, 1), "img", nil); err != nil {
		t.Fatal(err)
	}

	items := tb.Content()

	// insert mark, "a", the embed, "b" -- the placeholder unit never
	// shows up as text.
	if len(items) != 4 {
		t.Fatalf("Expected 4 items, got %v: %+v", len(items), items)
	}
	if items[2].Kind != ContentEmbed || items[2].Pos.String() != "1.1" {
		t.Errorf("items[2] = %+v", items[2])
	}
	for _, item := range items {
		if item.Kind == ContentText && item.Text == string(objectReplacement) {
			t.Errorf("Placeholder leaked into a text run")
		}
	}
}
