package textbox

import (
	"fmt"
	"unicode"
)

// A Position addresses one unit in its textbox: a rune, an embedded
// object's placeholder, or a line delimiter. Lines count from 1, columns
// from 0. Positions are values; movement returns a new Position and the
// result is always clamped back inside [Start, End]. A Position keeps a
// reference to its textbox so that comparisons and movement see the live
// text, much like a cursor has to know the buffer it moves through.
type Position struct {
	tb   *TextBox
	Line int
	Col  int
}

// Index constructs a clamped Position from a line and column. Values out
// of range never error; they are clamped to the nearest buffer boundary.
func (tb *TextBox) Index(line, col int) Position {
	l, c := tb.core.text.clamp(line-1, col)
	return Position{tb, l + 1, c}
}

// Start returns the first position of the buffer.
func (tb *TextBox) Start() Position {
	return Position{tb, 1, 0}
}

// End returns the position just past the last addressable unit.
func (tb *TextBox) End() Position {
	last := tb.core.text.lines() - 1
	return Position{tb, last + 1, tb.core.text.runesInLine(last)}
}

func (p Position) String() string {
	return fmt.Sprintf("%d.%d", p.Line, p.Col)
}

func (p Position) clamp() Position {
	if p.tb == nil {
		return p
	}
	return p.tb.Index(p.Line, p.Col)
}

// Cmp orders two positions lexicographically by (line, column), after
// normalizing both through the live buffer, so two differently written
// addresses of the same unit compare equal.
func (p Position) Cmp(other Position) int {
	a, b := p.clamp(), other.clamp()
	switch {
	case a.Line != b.Line:
		if a.Line < b.Line {
			return -1
		}
		return 1
	case a.Col != b.Col:
		if a.Col < b.Col {
			return -1
		}
		return 1
	}
	return 0
}

func (p Position) Eq(other Position) bool        { return p.Cmp(other) == 0 }
func (p Position) Less(other Position) bool      { return p.Cmp(other) < 0 }
func (p Position) LessEq(other Position) bool    { return p.Cmp(other) <= 0 }
func (p Position) Greater(other Position) bool   { return p.Cmp(other) > 0 }
func (p Position) GreaterEq(other Position) bool { return p.Cmp(other) >= 0 }

// Forward moves the position ahead by a rune count, an index count and a
// line count, in that order, and clamps the result. Indices count every
// unit including embedded objects; chars skip over embeds for free.
func (p Position) Forward(chars, indices, lines int) Position {
	q := p.clamp()
	q = q.moveUnits(chars, false)
	q = q.moveUnits(indices, true)
	if lines != 0 {
		q = q.tb.Index(q.Line+lines, q.Col)
	}
	return q
}

// Back is Forward with all three counts negated.
func (p Position) Back(chars, indices, lines int) Position {
	return p.Forward(-chars, -indices, -lines)
}

// moveUnits steps the position by n units, forward when n is positive.
// When countEmbeds is false, stepping over an embedded object's
// placeholder does not consume any of the count.
func (p Position) moveUnits(n int, countEmbeds bool) Position {
	if n == 0 {
		return p
	}
	text := p.tb.core.text

	line, col := p.Line-1, p.Col
	if n > 0 {
		lastLine := text.lines() - 1
		for n > 0 {
			if col >= text.runesInLine(line) {
				if line >= lastLine {
					break
				}
				line, col = line+1, 0 // the delimiter counts as one unit
				n--
			} else {
				isEmbed := p.tb.embedAt(line, col)
				col++
				if countEmbeds || !isEmbed {
					n--
				}
			}
		}
	} else {
		for n < 0 {
			if col == 0 {
				if line == 0 {
					break
				}
				line--
				col = text.runesInLine(line) // the delimiter counts as one unit
				n++
			} else {
				col--
				if countEmbeds || !p.tb.embedAt(line, col) {
					n++
				}
			}
		}
	}

	return Position{p.tb, line + 1, col}
}

// LineStart returns the first position of the line p is on.
func (p Position) LineStart() Position {
	q := p.clamp()
	q.Col = 0
	return q
}

// LineEnd returns the position of the line's delimiter (or the end of the
// buffer on the last line).
func (p Position) LineEnd() Position {
	q := p.clamp()
	q.Col = q.tb.core.text.runesInLine(q.Line - 1)
	return q
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordStart returns the first position of the word containing p. A word
// is a run of letters, digits and underscores; any other unit is a word
// of its own.
func (p Position) WordStart() Position {
	q := p.clamp()
	if !isWordRune(q.tb.runeAt(q)) {
		return q
	}
	for q.Col > 0 && isWordRune(q.tb.runeAt(Position{q.tb, q.Line, q.Col - 1})) {
		q.Col--
	}
	return q
}

// WordEnd returns the position just past the word containing p.
func (p Position) WordEnd() Position {
	q := p.clamp()
	end := q.LineEnd()
	if !isWordRune(q.tb.runeAt(q)) {
		if q.Less(end) {
			q.Col++
		}
		return q
	}
	for q.Less(end) && isWordRune(q.tb.runeAt(q)) {
		q.Col++
	}
	return q
}

// A Range is a half-open span between two positions of the same textbox.
// It is normalized on construction so Start never exceeds End.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a normalized Range from two positions.
func (tb *TextBox) NewRange(start, end Position) Range {
	start, end = start.clamp(), end.clamp()
	if start.Greater(end) {
		start, end = end, start
	}
	return Range{start, end}
}

// RangeOf builds a Range from two (line, column) pairs.
func (tb *TextBox) RangeOf(startLine, startCol, endLine, endCol int) Range {
	return tb.NewRange(tb.Index(startLine, startCol), tb.Index(endLine, endCol))
}

// All returns the Range covering the whole buffer.
func (tb *TextBox) All() Range {
	return Range{tb.Start(), tb.End()}
}

// Contains reports whether p lies in the half-open span [Start, End).
func (r Range) Contains(p Position) bool {
	return r.Start.LessEq(p) && p.Less(r.End)
}

func (r Range) IsEmpty() bool {
	return r.Start.Eq(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%v-%v", r.Start, r.End)
}
