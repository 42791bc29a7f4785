// Package textbox implements a rich-text buffer engine: line/column
// addressed mutable text, named attribute tags, edit-following marks,
// grouped undo history, resumable search and a content reconstruction
// of the buffer's event stream. It does no rendering of its own; the
// narrow collaborator interfaces in info.go are the only seams toward
// a display layer.
package textbox

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// pos is the package-internal address: zero-based line, rune column.
// Positions exposed to callers are the one-based Position type.
type pos struct {
	line, col int
}

func cmpPos(a, b pos) int {
	switch {
	case a.line != b.line:
		if a.line < b.line {
			return -1
		}
		return 1
	case a.col != b.col:
		if a.col < b.col {
			return -1
		}
		return 1
	}
	return 0
}

func (p Position) pos() pos { return pos{p.Line - 1, p.Col} }

func (tb *TextBox) position(p pos) Position { return Position{tb, p.line + 1, p.col} }

// core is the state shared by a textbox and all of its peers: storage,
// marks, tags, embeds and history are one arena owned by this instance,
// never process-wide (generated names come from its own counters).
type core struct {
	text     *ropeText
	marks    map[string]*mark
	tags     map[string]*Tag
	tagOrder []string // creation order, for deterministic dumps
	embeds   map[string]*Embed
	history  *history

	defaultStyle tcell.Style
	tagSeq       uint64 // recency of tag applications
	nameSeq      int    // generated tag/embed names

	loader ResourceLoader

	clipMethod        ClipMethod
	internalClipboard string
}

// A TextBox is one view over a core. Peers share the core by reference,
// so an edit through any peer is visible to all of them.
type TextBox struct {
	core   *core
	peerOf *TextBox

	padX, padY int
	renderer   Renderer
	windowing  Windowing
}

// Options configures a new TextBox. The zero value is usable: empty
// buffer, no history tracking, no padding.
type Options struct {
	Text         string
	TrackHistory bool
	HistoryLimit int // max undo groups kept; 0 means unlimited
	Padding      []int
	DefaultStyle tcell.Style
	Loader       ResourceLoader
	Renderer     Renderer
	Windowing    Windowing
}

// New creates a TextBox. Argument validation happens before any state is
// built, so a failed New leaves nothing behind.
func New(opts *Options) (*TextBox, error) {
	if opts == nil {
		opts = &Options{}
	}

	var padX, padY int
	switch len(opts.Padding) {
	case 0:
	case 1:
		padX, padY = opts.Padding[0], opts.Padding[0]
	case 2:
		padX, padY = opts.Padding[0], opts.Padding[1]
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidArgumentShape, len(opts.Padding))
	}

	c := &core{
		text:         newRopeText([]byte(opts.Text)),
		marks:        make(map[string]*mark),
		tags:         make(map[string]*Tag),
		embeds:       make(map[string]*Embed),
		defaultStyle: opts.DefaultStyle,
		loader:       opts.Loader,
		clipMethod:   ClipInternal,
	}
	c.history = &history{core: c, tracking: opts.TrackHistory, limit: opts.HistoryLimit, separators: true}
	if c.loader == nil {
		c.loader = osLoader{}
	}

	tb := &TextBox{
		core:      c,
		padX:      padX,
		padY:      padY,
		renderer:  opts.Renderer,
		windowing: opts.Windowing,
	}

	// The insertion cursor always exists and can never be deleted.
	c.marks[insertMark] = &mark{gravity: GravityRight}

	return tb, nil
}

// Peer creates another view sharing this textbox's storage, marks, tags,
// embeds and history. Only the original may spawn peers.
func (tb *TextBox) Peer(opts *Options) (*TextBox, error) {
	if tb.peerOf != nil {
		return nil, ErrPeerOfPeer
	}
	if opts == nil {
		opts = &Options{}
	}

	var padX, padY int
	switch len(opts.Padding) {
	case 0:
		padX, padY = tb.padX, tb.padY
	case 1:
		padX, padY = opts.Padding[0], opts.Padding[0]
	case 2:
		padX, padY = opts.Padding[0], opts.Padding[1]
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidArgumentShape, len(opts.Padding))
	}

	peer := &TextBox{
		core:      tb.core,
		peerOf:    tb,
		padX:      padX,
		padY:      padY,
		renderer:  opts.Renderer,
		windowing: opts.Windowing,
	}
	if peer.renderer == nil {
		peer.renderer = tb.renderer
	}
	if peer.windowing == nil {
		peer.windowing = tb.windowing
	}
	return peer, nil
}

// History returns the undo/redo log shared by this textbox and its peers.
func (tb *TextBox) History() *History {
	return &History{tb.core.history}
}

// At resolves an opaque reference into a clamped Position. It accepts a
// Position, the offsets 0 and 1 (buffer start) and -1 (buffer end), a
// mark or embed name, a "line.col" address, an "@x,y" viewport
// coordinate (resolved by the windowing collaborator) or an *Embed
// handle. Anything else fails with ErrUnsupportedValueType.
func (tb *TextBox) At(ref any) (Position, error) {
	switch v := ref.(type) {
	case Position:
		return v.clamp(), nil
	case int:
		switch v {
		case 0, 1:
			return tb.Start(), nil
		case -1:
			return tb.End(), nil
		}
	case *Embed:
		if e, ok := tb.core.embeds[v.name]; ok {
			return tb.position(e.pos), nil
		}
		return tb.End(), nil
	case string:
		if m, ok := tb.core.marks[v]; ok {
			return tb.position(m.pos), nil
		}
		if e, ok := tb.core.embeds[v]; ok {
			return tb.position(e.pos), nil
		}
		if strings.HasPrefix(v, "@") {
			var x, y int
			if _, err := fmt.Sscanf(v, "@%d,%d", &x, &y); err == nil {
				return tb.PositionAt(x, y), nil
			}
		}
		var line, col int
		if _, err := fmt.Sscanf(v, "%d.%d", &line, &col); err == nil {
			return tb.Index(line, col), nil
		}
	}
	return Position{}, fmt.Errorf("%w: %T", ErrUnsupportedValueType, ref)
}

// runeAt returns the unit at p: the rune itself, or '\n' when p sits on
// a line delimiter or at the very end of the buffer.
func (tb *TextBox) runeAt(p Position) rune {
	p = p.clamp()
	line := p.Line - 1
	if p.Col >= tb.core.text.runesInLine(line) {
		return '\n'
	}
	r, _ := utf8.DecodeRune(tb.core.text.slice(line, p.Col, line, p.Col+1))
	return r
}

func (tb *TextBox) embedAt(line, col int) bool {
	for _, e := range tb.core.embeds {
		if e.pos.line == line && e.pos.col == col {
			return true
		}
	}
	return false
}

// Insert places text at the given position, shifting every unit at or
// after it forward. Marks, tag spans and embeds are adjusted in the same
// step, and the edit is recorded as one undo group.
func (tb *TextBox) Insert(at Position, text string) {
	if text == "" {
		return
	}
	c := tb.core
	c.history.beginEdit()
	c.insertText(at.clamp().pos(), text, true)
	c.history.autoSeparate()
}

// InsertFile inserts the text content of an external resource, read
// through the resource-loader collaborator.
func (tb *TextBox) InsertFile(at Position, name string) error {
	text, err := tb.core.loader.ReadText(name)
	if err != nil {
		return err
	}
	tb.Insert(at, text)
	return nil
}

// Delete removes every unit in [r.Start, r.End), shifting the rest back.
func (tb *TextBox) Delete(r Range) {
	c := tb.core
	c.history.beginEdit()
	c.deleteRange(r.Start.clamp().pos(), r.End.clamp().pos(), true)
	c.history.autoSeparate()
}

// Replace atomically deletes the range and inserts text in its place,
// optionally tagging the inserted span. History records the whole thing
// as a single invertible group.
func (tb *TextBox) Replace(r Range, text string, tags ...*Tag) {
	c := tb.core
	c.history.beginEdit()
	start := r.Start.clamp().pos()
	c.deleteRange(start, r.End.clamp().pos(), true)
	end := c.insertText(start, text, true)
	c.history.autoSeparate()

	for _, t := range tags {
		if t != nil {
			t.Add(tb.NewRange(tb.position(start), tb.position(end)))
		}
	}
}

// Get returns the literal text of the range. Embedded objects appear as
// the object-replacement placeholder they occupy in storage.
func (tb *TextBox) Get(r Range) string {
	start, end := r.Start.clamp().pos(), r.End.clamp().pos()
	if cmpPos(start, end) >= 0 {
		return ""
	}
	return string(tb.core.text.slice(start.line, start.col, end.line, end.col))
}

// Text returns the whole buffer's text.
func (tb *TextBox) Text() string {
	return string(tb.core.text.bytes())
}

// SetText replaces the entire content in one undo group.
func (tb *TextBox) SetText(text string) {
	tb.Replace(tb.All(), text)
}

// Contains reports whether the buffer's text contains the substring.
func (tb *TextBox) Contains(sub string) bool {
	return strings.Contains(tb.Text(), sub)
}

// Cursor returns the position of the insertion cursor mark.
func (tb *TextBox) Cursor() Position {
	p, _ := tb.Mark(insertMark)
	return p
}

// SetCursor moves the insertion cursor mark.
func (tb *TextBox) SetCursor(p Position) {
	tb.SetMark(insertMark, p)
}

// ScrollTo asks the windowing collaborator to bring a position into
// view. Without a collaborator it is a no-op.
func (tb *TextBox) ScrollTo(p Position) {
	if tb.windowing != nil {
		tb.windowing.ScrollTo(p.clamp())
	}
}

// insertEnd computes where inserted text ends when placed at 'at'.
func insertEnd(at pos, text string) pos {
	lines := strings.Count(text, "\n")
	if lines == 0 {
		return pos{at.line, at.col + utf8.RuneCountInString(text)}
	}
	lastLen := utf8.RuneCountInString(text[strings.LastIndexByte(text, '\n')+1:])
	return pos{at.line + lines, lastLen}
}

// shiftInsert relocates q for an insertion of extent [at, end). When
// q sits exactly at the insertion point, rightGravity decides whether it
// follows the text after the edit (shifts) or stays put.
func shiftInsert(q, at, end pos, rightGravity bool) pos {
	if c := cmpPos(q, at); c < 0 || (c == 0 && !rightGravity) {
		return q
	}
	if q.line == at.line {
		return pos{end.line, end.col + (q.col - at.col)}
	}
	return pos{q.line + (end.line - at.line), q.col}
}

// shiftDelete relocates q for a deletion of [start, end): positions
// inside the range collapse to its start, later ones shift back.
func shiftDelete(q, start, end pos) pos {
	if cmpPos(q, start) <= 0 {
		return q
	}
	if cmpPos(q, end) <= 0 {
		return start
	}
	if q.line == end.line {
		return pos{start.line, start.col + (q.col - end.col)}
	}
	return pos{q.line - (end.line - start.line), q.col}
}

// insertText is the one primitive that grows the buffer. It shifts every
// mark, tag span and embed in the same step and, when record is set,
// appends the inverse to the history's open group. Returns the end of
// the inserted extent.
func (c *core) insertText(at pos, text string, record bool) pos {
	if text == "" {
		return at
	}
	end := insertEnd(at, text)

	c.text.insert(at.line, at.col, []byte(text))

	for _, m := range c.marks {
		m.pos = shiftInsert(m.pos, at, end, m.gravity == GravityRight)
	}
	for _, t := range c.tags {
		for i := range t.spans {
			// Text inserted exactly at a span boundary is not tagged:
			// the start shifts out of the way, the end stays.
			t.spans[i].start = shiftInsert(t.spans[i].start, at, end, true)
			t.spans[i].end = shiftInsert(t.spans[i].end, at, end, false)
		}
	}
	for _, e := range c.embeds {
		e.pos = shiftInsert(e.pos, at, end, true)
	}

	if record {
		c.history.record(editOp{kind: opInsert, start: at, end: end, text: text})
	}
	return end
}

// deleteRange is the one primitive that shrinks the buffer. Returns the
// removed text.
func (c *core) deleteRange(start, end pos, record bool) string {
	if cmpPos(start, end) >= 0 {
		return ""
	}
	removed := string(c.text.slice(start.line, start.col, end.line, end.col))

	c.text.remove(start.line, start.col, end.line, end.col)

	for _, m := range c.marks {
		m.pos = shiftDelete(m.pos, start, end)
	}
	for _, t := range c.tags {
		spans := t.spans[:0]
		for _, s := range t.spans {
			s.start = shiftDelete(s.start, start, end)
			s.end = shiftDelete(s.end, start, end)
			if cmpPos(s.start, s.end) < 0 {
				spans = append(spans, s)
			}
		}
		t.spans = spans
	}
	// Embeds covered by the deletion keep their position so that an undo
	// can put them back where the placeholder reappears.
	var removedEmbeds []*Embed
	for name, e := range c.embeds {
		if cmpPos(e.pos, start) >= 0 && cmpPos(e.pos, end) < 0 {
			delete(c.embeds, name)
			removedEmbeds = append(removedEmbeds, e)
			continue
		}
		e.pos = shiftDelete(e.pos, start, end)
	}

	if record {
		c.history.record(editOp{kind: opDelete, start: start, end: end, text: removed, embeds: removedEmbeds})
	}
	return removed
}

// restoreEmbeds re-registers embeds whose placeholder units have just
// been re-inserted. Their stored positions are already correct: they
// were never shifted while deregistered.
func (c *core) restoreEmbeds(embeds []*Embed) {
	for _, e := range embeds {
		c.embeds[e.name] = e
	}
}
