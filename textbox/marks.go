package textbox

import "sort"

// insertMark is the reserved name of the insertion cursor. It always
// exists and refuses deletion.
const insertMark = "insert"

// Gravity decides which side of an insertion a mark sticks to when text
// is inserted exactly at the mark's position.
type Gravity uint8

const (
	// GravityRight keeps the mark with the text that follows it, so an
	// insertion at the mark pushes it past the new text. The default.
	GravityRight Gravity = iota

	// GravityLeft keeps the mark with the preceding text; an insertion
	// at the mark leaves it where it is.
	GravityLeft
)

type mark struct {
	pos     pos
	gravity Gravity
}

// SetMark creates the named mark at the position, or moves it if it
// already exists. A moved mark keeps its gravity.
func (tb *TextBox) SetMark(name string, p Position) {
	if m, ok := tb.core.marks[name]; ok {
		m.pos = p.clamp().pos()
		return
	}
	tb.core.marks[name] = &mark{pos: p.clamp().pos(), gravity: GravityRight}
}

// Mark returns the current, always-valid position of the named mark, or
// false if no such mark exists.
func (tb *TextBox) Mark(name string) (Position, bool) {
	m, ok := tb.core.marks[name]
	if !ok {
		return Position{}, false
	}
	return tb.position(m.pos).clamp(), true
}

// HasMark reports whether a mark with the name is defined.
func (tb *TextBox) HasMark(name string) bool {
	_, ok := tb.core.marks[name]
	return ok
}

// DeleteMark removes the named mark. Deleting the insertion cursor fails
// with ErrProtectedMark; deleting an unknown mark is a no-op.
func (tb *TextBox) DeleteMark(name string) error {
	if name == insertMark {
		return ErrProtectedMark
	}
	delete(tb.core.marks, name)
	return nil
}

// SetMarkGravity changes which side of an edit the mark stays attached
// to. Reports whether the mark exists.
func (tb *TextBox) SetMarkGravity(name string, g Gravity) bool {
	m, ok := tb.core.marks[name]
	if ok {
		m.gravity = g
	}
	return ok
}

// MarkGravity returns the mark's gravity.
func (tb *TextBox) MarkGravity(name string) (Gravity, bool) {
	m, ok := tb.core.marks[name]
	if !ok {
		return 0, false
	}
	return m.gravity, true
}

// MarkNames returns a finite, restartable iterator over the names of the
// currently defined marks, in sorted order.
func (tb *TextBox) MarkNames() *MarkIter {
	names := make([]string, 0, len(tb.core.marks))
	for name := range tb.core.marks {
		names = append(names, name)
	}
	sort.Strings(names)
	return &MarkIter{names: names}
}

// A MarkIter walks mark names one at a time.
type MarkIter struct {
	names []string
	i     int
}

// Next yields the next name, or false when the sequence is exhausted.
func (it *MarkIter) Next() (string, bool) {
	if it.i >= len(it.names) {
		return "", false
	}
	name := it.names[it.i]
	it.i++
	return name, true
}

// Reset restarts the iterator from the first name.
func (it *MarkIter) Reset() { it.i = 0 }
