package textbox

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// OptBool is a tristate: an attribute a tag does not set falls through
// to the next tag in recency order, and finally to the buffer default.
type OptBool int8

const (
	Unset OptBool = iota
	Off
	On
)

// Attributes is a tag's payload. Zero values mean "not set by this tag":
// tcell.ColorDefault for the colors, empty string for justify and wrap.
type Attributes struct {
	Bold          OptBool
	Italic        OptBool
	Underline     OptBool
	Strikethrough OptBool

	// Hidden elides the covered text: displayed counts skip it and
	// searches ignore it unless asked to include hidden content.
	Hidden OptBool

	Foreground tcell.Color
	Background tcell.Color

	Justify string // "left", "right", "center"
	Wrap    string // "none", "char", "word"
}

// merge fills every attribute a leaves unset from b. a wins: it is the
// more recently applied of the two.
func (a Attributes) merge(b Attributes) Attributes {
	if a.Bold == Unset {
		a.Bold = b.Bold
	}
	if a.Italic == Unset {
		a.Italic = b.Italic
	}
	if a.Underline == Unset {
		a.Underline = b.Underline
	}
	if a.Strikethrough == Unset {
		a.Strikethrough = b.Strikethrough
	}
	if a.Hidden == Unset {
		a.Hidden = b.Hidden
	}
	if a.Foreground == tcell.ColorDefault {
		a.Foreground = b.Foreground
	}
	if a.Background == tcell.ColorDefault {
		a.Background = b.Background
	}
	if a.Justify == "" {
		a.Justify = b.Justify
	}
	if a.Wrap == "" {
		a.Wrap = b.Wrap
	}
	return a
}

// Style renders the attributes on top of a base style.
func (a Attributes) Style(base tcell.Style) tcell.Style {
	s := base
	if a.Bold != Unset {
		s = s.Bold(a.Bold == On)
	}
	if a.Italic != Unset {
		s = s.Italic(a.Italic == On)
	}
	if a.Underline != Unset {
		s = s.Underline(a.Underline == On)
	}
	if a.Strikethrough != Unset {
		s = s.StrikeThrough(a.Strikethrough == On)
	}
	if a.Foreground != tcell.ColorDefault {
		s = s.Foreground(a.Foreground)
	}
	if a.Background != tcell.ColorDefault {
		s = s.Background(a.Background)
	}
	return s
}

// span is one maximal contiguous stretch of a tag's coverage. seq is the
// application recency used to settle attribute conflicts between
// overlapping tags.
type span struct {
	start, end pos
	seq        uint64
}

// A Tag is a named attribute set plus the set of ranges it currently
// covers. A tag with no coverage still exists and can be re-applied.
type Tag struct {
	core  *core
	name  string
	attrs Attributes
	spans []span // sorted by start, pairwise disjoint
}

// NewTag creates a tag with a generated name, registered in this
// textbox's arena.
func (tb *TextBox) NewTag(attrs Attributes) *Tag {
	tb.core.nameSeq++
	return tb.NewNamedTag(fmt.Sprintf("tag_%d", tb.core.nameSeq), attrs)
}

// NewNamedTag creates the named tag, or reconfigures it if it already
// exists (coverage is kept).
func (tb *TextBox) NewNamedTag(name string, attrs Attributes) *Tag {
	if t, ok := tb.core.tags[name]; ok {
		t.attrs = attrs
		return t
	}
	t := &Tag{core: tb.core, name: name, attrs: attrs}
	tb.core.tags[name] = t
	tb.core.tagOrder = append(tb.core.tagOrder, name)
	return t
}

// TagNamed looks up a tag by name.
func (tb *TextBox) TagNamed(name string) (*Tag, bool) {
	t, ok := tb.core.tags[name]
	return t, ok
}

// The convenience tags are derived from the buffer's default attribute
// set once and are ordinary tags from then on.

func (tb *TextBox) BoldTag() *Tag { return tb.NewNamedTag("bold", Attributes{Bold: On}) }

func (tb *TextBox) ItalicTag() *Tag { return tb.NewNamedTag("italic", Attributes{Italic: On}) }

func (tb *TextBox) UnderlineTag() *Tag {
	return tb.NewNamedTag("underline", Attributes{Underline: On})
}

func (tb *TextBox) StrikethroughTag() *Tag {
	return tb.NewNamedTag("strikethrough", Attributes{Strikethrough: On})
}

func (tb *TextBox) HiddenTag() *Tag { return tb.NewNamedTag("hidden", Attributes{Hidden: On}) }

func (t *Tag) Name() string { return t.name }

func (t *Tag) Attributes() Attributes { return t.attrs }

// Configure replaces the tag's attribute set.
func (t *Tag) Configure(attrs Attributes) { t.attrs = attrs }

// Add extends the tag's coverage by the given ranges. Applying a range
// the tag already covers changes nothing but the recency: the re-applied
// stretch counts as the newest at its positions.
func (t *Tag) Add(ranges ...Range) {
	for _, r := range ranges {
		start, end := r.Start.clamp().pos(), r.End.clamp().pos()
		if cmpPos(start, end) >= 0 {
			continue
		}
		t.core.tagSeq++
		t.add(start, end, t.core.tagSeq)
	}
}

func (t *Tag) add(start, end pos, seq uint64) {
	spans := make([]span, 0, len(t.spans)+2)

	// put coalesces spans that touch and share a recency; recency is
	// per position, so fragments applied at different times stay apart.
	put := func(s span) {
		if n := len(spans); n > 0 {
			last := &spans[n-1]
			if last.seq == s.seq && cmpPos(last.end, s.start) >= 0 {
				if cmpPos(s.end, last.end) > 0 {
					last.end = s.end
				}
				return
			}
		}
		spans = append(spans, s)
	}

	inserted := false
	for _, s := range t.spans {
		switch {
		case cmpPos(s.end, start) <= 0:
			put(s)
		case cmpPos(end, s.start) <= 0:
			if !inserted {
				put(span{start, end, seq})
				inserted = true
			}
			put(s)
		default:
			// s overlaps the new application. Only the overlapped part
			// takes the new recency; the rest keeps its own.
			if cmpPos(s.start, start) < 0 {
				put(span{s.start, start, s.seq})
			}
			if !inserted {
				put(span{start, end, seq})
				inserted = true
			}
			if cmpPos(end, s.end) < 0 {
				put(span{end, s.end, s.seq})
			}
		}
	}
	if !inserted {
		put(span{start, end, seq})
	}
	t.spans = spans
}

// Remove subtracts the given ranges from the tag's coverage, splitting
// spans where necessary.
func (t *Tag) Remove(ranges ...Range) {
	for _, r := range ranges {
		start, end := r.Start.clamp().pos(), r.End.clamp().pos()
		if cmpPos(start, end) >= 0 {
			continue
		}
		t.remove(start, end)
	}
}

func (t *Tag) remove(start, end pos) {
	spans := make([]span, 0, len(t.spans))
	for _, s := range t.spans {
		if cmpPos(s.end, start) <= 0 || cmpPos(end, s.start) <= 0 {
			spans = append(spans, s)
			continue
		}
		if cmpPos(s.start, start) < 0 {
			spans = append(spans, span{s.start, start, s.seq})
		}
		if cmpPos(end, s.end) < 0 {
			spans = append(spans, span{end, s.end, s.seq})
		}
	}
	t.spans = spans
}

// Delete removes the tag and all of its coverage from the textbox.
func (t *Tag) Delete() {
	t.spans = nil
	delete(t.core.tags, t.name)
	for i, name := range t.core.tagOrder {
		if name == t.name {
			t.core.tagOrder = append(t.core.tagOrder[:i], t.core.tagOrder[i+1:]...)
			break
		}
	}
}

// Ranges returns a restartable iterator over the tag's current coverage
// in increasing, non-overlapping order.
func (t *Tag) Ranges(tb *TextBox) *TagRangeIter {
	return &TagRangeIter{tb: tb, tag: t}
}

// A TagRangeIter yields a tag's coverage ranges one at a time. It reads
// the live coverage, so mutating the tag mid-iteration has the usual
// no-concurrent-mutation caveat.
type TagRangeIter struct {
	tb  *TextBox
	tag *Tag
	i   int
}

func (it *TagRangeIter) Next() (Range, bool) {
	if it.i >= len(it.tag.spans) {
		return Range{}, false
	}
	s := it.tag.spans[it.i]
	it.i++
	return Range{it.tb.position(s.start), it.tb.position(s.end)}, true
}

func (it *TagRangeIter) Reset() { it.i = 0 }

// NextRange returns the first coverage range whose start lies at or
// after from, within [from, to). A zero to means the end of the buffer.
func (t *Tag) NextRange(tb *TextBox, from Position, to ...Position) (Range, bool) {
	limit := tb.End()
	if len(to) > 0 {
		limit = to[0]
	}
	f, l := from.clamp().pos(), limit.clamp().pos()
	for _, s := range t.spans {
		if cmpPos(s.start, f) >= 0 && cmpPos(s.start, l) < 0 {
			return Range{tb.position(s.start), tb.position(s.end)}, true
		}
	}
	return Range{}, false
}

// PrevRange returns the last coverage range whose start lies before
// from, at or after to. A zero to means the start of the buffer.
func (t *Tag) PrevRange(tb *TextBox, from Position, to ...Position) (Range, bool) {
	limit := tb.Start()
	if len(to) > 0 {
		limit = to[0]
	}
	f, l := from.clamp().pos(), limit.clamp().pos()
	for i := len(t.spans) - 1; i >= 0; i-- {
		s := t.spans[i]
		if cmpPos(s.start, f) < 0 && cmpPos(s.start, l) >= 0 {
			return Range{tb.position(s.start), tb.position(s.end)}, true
		}
	}
	return Range{}, false
}

// TagsAt returns the tags covering the position, newest application
// first. That is the order attribute resolution walks.
func (tb *TextBox) TagsAt(p Position) []*Tag {
	q := p.clamp().pos()

	type hit struct {
		tag *Tag
		seq uint64
	}
	var hits []hit
	for _, name := range tb.core.tagOrder {
		t := tb.core.tags[name]
		for _, s := range t.spans {
			if cmpPos(s.start, q) <= 0 && cmpPos(q, s.end) < 0 {
				hits = append(hits, hit{t, s.seq})
				break
			}
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].seq > hits[j].seq })

	tags := make([]*Tag, len(hits))
	for i, h := range hits {
		tags[i] = h.tag
	}
	return tags
}

// AttributesAt resolves the effective attribute set at a position:
// attribute by attribute, the most recently applied tag that sets one
// wins, and unset attributes fall through to older tags.
func (tb *TextBox) AttributesAt(p Position) Attributes {
	var merged Attributes
	for _, t := range tb.TagsAt(p) {
		merged = merged.merge(t.attrs)
	}
	return merged
}

// StyleAt renders the effective attributes at a position on top of the
// buffer's default style.
func (tb *TextBox) StyleAt(p Position) tcell.Style {
	return tb.AttributesAt(p).Style(tb.core.defaultStyle)
}

// hiddenAt reports whether the unit at p is elided by the effective
// attribute set.
func (tb *TextBox) hiddenAt(p Position) bool {
	return tb.AttributesAt(p).Hidden == On
}
