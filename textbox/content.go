package textbox

import "sort"

type EventKind uint8

const (
	EventText EventKind = iota
	EventTagOn
	EventTagOff
	EventMark
	EventEmbed
)

// An Event is one entry of the buffer's flat, position-ordered event
// stream: a text run, a tag opening or closing, a mark, or an embedded
// object, annotated with where it occurs.
type Event struct {
	Kind  EventKind
	Pos   Position
	Text  string // EventText
	Tag   *Tag   // EventTagOn, EventTagOff
	Mark  string // EventMark
	Embed *Embed // EventEmbed
}

// eventClass orders events sharing a position: closings first, then
// openings, then marks, then embeds; text runs come last.
func eventClass(k EventKind) int {
	switch k {
	case EventTagOff:
		return 0
	case EventTagOn:
		return 1
	case EventMark:
		return 2
	case EventEmbed:
		return 3
	}
	return 4
}

// Dump flattens the given range into its event stream. Tag spans are
// clipped to the range; a span reaching past it opens or closes at the
// range boundary.
func (tb *TextBox) Dump(r Range) []Event {
	c := tb.core
	start, end := r.Start.clamp().pos(), r.End.clamp().pos()

	inRange := func(p pos) bool {
		return cmpPos(p, start) >= 0 && cmpPos(p, end) <= 0
	}
	clip := func(p pos) pos {
		if cmpPos(p, start) < 0 {
			return start
		}
		if cmpPos(p, end) > 0 {
			return end
		}
		return p
	}

	var events []Event
	boundaries := map[pos]bool{start: true, end: true}

	for _, name := range c.tagOrder {
		t := c.tags[name]
		for _, s := range t.spans {
			if cmpPos(s.end, start) <= 0 || cmpPos(s.start, end) >= 0 {
				continue
			}
			on, off := clip(s.start), clip(s.end)
			events = append(events,
				Event{Kind: EventTagOn, Pos: tb.position(on), Tag: t},
				Event{Kind: EventTagOff, Pos: tb.position(off), Tag: t},
			)
			boundaries[on], boundaries[off] = true, true
		}
	}

	markNames := make([]string, 0, len(c.marks))
	for name := range c.marks {
		markNames = append(markNames, name)
	}
	sort.Strings(markNames)
	for _, name := range markNames {
		m := c.marks[name]
		if inRange(m.pos) {
			events = append(events, Event{Kind: EventMark, Pos: tb.position(m.pos), Mark: name})
			boundaries[m.pos] = true
		}
	}

	for _, e := range tb.Embeds() {
		if cmpPos(e.pos, start) >= 0 && cmpPos(e.pos, end) < 0 {
			events = append(events, Event{Kind: EventEmbed, Pos: tb.position(e.pos), Embed: e})
			// The placeholder unit is its own gap; the text runs around
			// it must not include it.
			boundaries[e.pos] = true
			after := tb.position(e.pos).Forward(0, 1, 0).pos()
			boundaries[after] = true
		}
	}

	// Text runs between consecutive boundaries, skipping embed units.
	cuts := make([]pos, 0, len(boundaries))
	for p := range boundaries {
		cuts = append(cuts, p)
	}
	sort.Slice(cuts, func(i, j int) bool { return cmpPos(cuts[i], cuts[j]) < 0 })

	for i := 0; i+1 < len(cuts); i++ {
		a, b := cuts[i], cuts[i+1]
		if tb.embedAt(a.line, a.col) {
			continue
		}
		if text := tb.Get(Range{tb.position(a), tb.position(b)}); text != "" {
			events = append(events, Event{Kind: EventText, Pos: tb.position(a), Text: text})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if c := a.Pos.Cmp(b.Pos); c != 0 {
			return c < 0
		}
		return eventClass(a.Kind) < eventClass(b.Kind)
	})
	return events
}

type ContentKind uint8

const (
	ContentText ContentKind = iota
	ContentTagSpan
	ContentMark
	ContentEmbed
)

// A ContentItem is one entry of the reconstructed document: a text run,
// a fully resolved tag span, a mark reference, or an embedded object.
type ContentItem struct {
	Kind  ContentKind
	Pos   Position
	Span  Range  // ContentTagSpan
	Text  string // ContentText
	Tag   *Tag   // ContentTagSpan
	Mark  string // ContentMark
	Embed *Embed // ContentEmbed
}

// Content reconstructs the whole buffer as an ordered item sequence:
// text runs, embeds and marks in stream order, with each tag span
// inserted at the index recorded when the tag opened. It is computed on
// demand and never cached across mutations.
func (tb *TextBox) Content() []ContentItem {
	return Reconstruct(tb.Dump(tb.All()), tb.End())
}

// Reconstruct runs the scanning algorithm over an arbitrary event
// stream. A tag-open with no matching close is auto-closed at streamEnd
// rather than dropped, so its formatting survives reconstruction.
func Reconstruct(events []Event, streamEnd Position) []ContentItem {
	type openTag struct {
		tag   *Tag
		pos   Position
		index int
	}

	var result []ContentItem
	open := make(map[string]openTag)

	for _, ev := range events {
		switch ev.Kind {
		case EventTagOn:
			open[ev.Tag.Name()] = openTag{ev.Tag, ev.Pos, len(result)}
		case EventTagOff:
			o, ok := open[ev.Tag.Name()]
			if !ok {
				continue
			}
			delete(open, ev.Tag.Name())
			item := ContentItem{
				Kind: ContentTagSpan,
				Pos:  o.pos,
				Span: Range{o.pos, ev.Pos},
				Tag:  o.tag,
			}
			result = append(result, ContentItem{})
			copy(result[o.index+1:], result[o.index:])
			result[o.index] = item
			// The insertion displaced everything recorded at or after it.
			for name, other := range open {
				if other.index >= o.index {
					other.index++
					open[name] = other
				}
			}
		case EventText:
			result = append(result, ContentItem{Kind: ContentText, Pos: ev.Pos, Text: ev.Text})
		case EventMark:
			result = append(result, ContentItem{Kind: ContentMark, Pos: ev.Pos, Mark: ev.Mark})
		case EventEmbed:
			result = append(result, ContentItem{Kind: ContentEmbed, Pos: ev.Pos, Embed: ev.Embed})
		}
	}

	// Unterminated opens: close them at stream end. Descending recorded
	// index so earlier insertions don't displace later ones.
	if len(open) > 0 {
		leftovers := make([]openTag, 0, len(open))
		for _, o := range open {
			leftovers = append(leftovers, o)
		}
		sort.Slice(leftovers, func(i, j int) bool { return leftovers[i].index > leftovers[j].index })
		for _, o := range leftovers {
			item := ContentItem{
				Kind: ContentTagSpan,
				Pos:  o.pos,
				Span: Range{o.pos, streamEnd},
				Tag:  o.tag,
			}
			result = append(result, ContentItem{})
			copy(result[o.index+1:], result[o.index:])
			result[o.index] = item
		}
	}

	return result
}
