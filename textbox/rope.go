package textbox

import (
	"io"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

// ropeText is the storage substrate: a rope of UTF-8 bytes addressed by
// zero-based line and rune column. Lines are delimited by '\n' only; an
// empty rope still has one (empty) line. Embedded objects live in the
// rope as a single U+FFFC rune, so every addressable unit is one rune.
//
// Ranges taken by removal and slicing are half-open.
type ropeText rope.Node

func newRopeText(contents []byte) *ropeText {
	return (*ropeText)(rope.New(contents))
}

// lineStart returns the byte offset of the first unit of the given line.
// Panics if the line does not exist; callers clamp first.
func (t *ropeText) lineStart(line int) int {
	r := (*rope.Node)(t)
	var pos int

	if line > 0 {
		r.IndexAllFunc(0, r.Len(), []byte{'\n'}, func(idx int) bool {
			line--
			pos = idx + 1
			return line <= 0
		})
	}

	if line > 0 {
		panic("lineStart: line beyond end of text")
	}
	return pos
}

// offset converts a line and rune column into a byte offset. The column
// is capped at the end of the line (just before its delimiter, or at the
// end of the text for the last line).
func (t *ropeText) offset(line, col int) int {
	r := (*rope.Node)(t)
	pos := t.lineStart(line)

	if col > 0 {
		_, rest := r.SplitAt(pos)
		tail, _ := rest.SplitAt(r.Len() - pos)

		tail.EachLeaf(func(n *rope.Node) bool {
			data := n.Value() // Reference; not a copy.
			var i int
			for i < len(data) {
				if col == 0 || data[i] == '\n' {
					return true
				}
				_, size := utf8.DecodeRune(data[i:])
				pos += size
				col--
				i += size
			}
			return false
		})
	}

	return pos
}

// position converts a byte offset back into a zero-based line and rune
// column. Offsets past the end report the last addressable position.
func (t *ropeText) position(off int) (line, col int) {
	if off <= 0 {
		return 0, 0
	}

	(*rope.Node)(t).EachLeaf(func(n *rope.Node) bool {
		data := n.Value()
		var i int
		for i < len(data) {
			if off <= 0 {
				return true
			}
			if data[i] == '\n' {
				line, col = line+1, 0
			} else {
				col++
			}
			_, size := utf8.DecodeRune(data[i:])
			i += size
			off -= size
		}
		return false
	})

	return line, col
}

func (t *ropeText) insert(line, col int, value []byte) {
	(*rope.Node)(t).Insert(t.offset(line, col), value)
}

// remove deletes the units in [start, end), both given as (line, col).
func (t *ropeText) remove(startLine, startCol, endLine, endCol int) {
	start := t.offset(startLine, startCol)
	end := t.offset(endLine, endCol)
	if end > start {
		(*rope.Node)(t).Remove(start, end)
	}
}

// slice returns the bytes in [start, end). May or may not be a copy; do
// not write to it.
func (t *ropeText) slice(startLine, startCol, endLine, endCol int) []byte {
	return (*rope.Node)(t).Slice(t.offset(startLine, startCol), t.offset(endLine, endCol))
}

func (t *ropeText) bytes() []byte {
	return (*rope.Node)(t).Value()
}

func (t *ropeText) len() int {
	return (*rope.Node)(t).Len()
}

// lines returns the number of lines, which is always at least one.
func (t *ropeText) lines() int {
	r := (*rope.Node)(t)
	return r.Count(0, r.Len(), []byte{'\n'}) + 1
}

// runesInLine counts the rune units on a line, excluding its delimiter.
func (t *ropeText) runesInLine(line int) int {
	r := (*rope.Node)(t)
	pos := t.lineStart(line)
	if pos >= r.Len() {
		return 0
	}

	var count int
	_, rest := r.SplitAt(pos)
	tail, _ := rest.SplitAt(r.Len() - pos)

	tail.EachLeaf(func(n *rope.Node) bool {
		data := n.Value() // Reference; not a copy.
		var i int
		for i < len(data) {
			if data[i] == '\n' {
				return true
			}
			count++
			_, size := utf8.DecodeRune(data[i:])
			i += size
		}
		return false
	})

	return count
}

// line returns the bytes of a line without its delimiter.
func (t *ropeText) line(line int) []byte {
	return t.slice(line, 0, line, t.runesInLine(line))
}

// clamp forces a line and column onto an existing unit boundary: the
// line first, then the column within it.
func (t *ropeText) clamp(line, col int) (int, int) {
	if line < 0 {
		line = 0
	} else if last := t.lines() - 1; line > last {
		line = last
	}

	if col < 0 {
		col = 0
	} else if runes := t.runesInLine(line); col > runes {
		col = runes
	}

	return line, col
}

func (t *ropeText) writeTo(w io.Writer) (int64, error) {
	return (*rope.Node)(t).WriteTo(w)
}
