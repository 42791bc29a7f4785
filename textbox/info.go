package textbox

import (
	"os"

	"github.com/mattn/go-runewidth"
)

// LineInfo is the geometry of the display line holding a position. The
// units are whatever the rendering collaborator reports; the fallback
// reports terminal cells.
type LineInfo struct {
	X, Y, Width, Height, Baseline int
}

// RangeInfo aggregates counts over a range. Indices count every
// addressable unit including embeds and delimiters; Chars exclude
// embeds; the Displayed variants additionally exclude hidden content.
type RangeInfo struct {
	Chars            int
	DisplayedChars   int
	DisplayedIndices int
	DisplayedLines   int
	Indices          int
	Lines            int
	Width            int
	Height           int
}

// Renderer is the rendering/layout collaborator. The engine only ever
// asks it for opaque geometry; it never renders anything itself.
type Renderer interface {
	LineInfo(p Position) (LineInfo, bool)
	RangeSize(r Range) (width, height int, ok bool)
}

// Windowing is the windowing collaborator: it resolves raw viewport
// coordinates to positions and accepts scroll-into-view requests.
type Windowing interface {
	PositionAt(x, y int) (line, col int)
	ScrollTo(p Position)
}

// ResourceLoader supplies literal text when an insert's source is an
// external resource reference.
type ResourceLoader interface {
	ReadText(name string) (string, error)
}

// osLoader reads resources from the filesystem; the default loader.
type osLoader struct{}

func (osLoader) ReadText(name string) (string, error) {
	data, err := os.ReadFile(name)
	return string(data), err
}

// LineInfo reports the geometry of the line at p, from the rendering
// collaborator when one is attached, else in plain cell units.
func (tb *TextBox) LineInfo(p Position) LineInfo {
	p = p.clamp()
	if tb.renderer != nil {
		if info, ok := tb.renderer.LineInfo(p); ok {
			return info
		}
	}

	line := string(tb.core.text.line(p.Line - 1))
	return LineInfo{
		X:        tb.padX,
		Y:        tb.padY + p.Line - 1,
		Width:    runewidth.StringWidth(line),
		Height:   1,
		Baseline: 1,
	}
}

// RangeInfo aggregates unit counts and extents over the range.
func (tb *TextBox) RangeInfo(r Range) RangeInfo {
	var info RangeInfo

	start, end := r.Start.clamp(), r.End.clamp()
	text := tb.core.text

	lineWidth := 0
	for p := start; p.Less(end); {
		line, col := p.Line-1, p.Col
		atDelim := col >= text.runesInLine(line)
		isEmbed := tb.embedAt(line, col)
		hidden := tb.hiddenAt(p)

		info.Indices++
		if !isEmbed {
			info.Chars++
		}
		if !hidden {
			info.DisplayedIndices++
			if !isEmbed {
				info.DisplayedChars++
			}
		}

		if atDelim {
			info.Lines++
			if !hidden {
				info.DisplayedLines++
			}
			if lineWidth > info.Width {
				info.Width = lineWidth
			}
			lineWidth = 0
			p = Position{tb, p.Line + 1, 0}
		} else {
			if !hidden {
				lineWidth += runewidth.RuneWidth(tb.runeAt(p))
			}
			p = Position{tb, p.Line, p.Col + 1}
		}
	}
	if lineWidth > info.Width {
		info.Width = lineWidth
	}
	info.Height = info.DisplayedLines + 1

	if tb.renderer != nil {
		if w, h, ok := tb.renderer.RangeSize(tb.NewRange(start, end)); ok {
			info.Width, info.Height = w, h
		}
	}
	return info
}

// PositionAt resolves a viewport coordinate to the nearest position,
// through the windowing collaborator when attached, else by treating
// the coordinate as padded cells.
func (tb *TextBox) PositionAt(x, y int) Position {
	if tb.windowing != nil {
		line, col := tb.windowing.PositionAt(x, y)
		return tb.Index(line, col)
	}
	return tb.Index(y-tb.padY+1, x-tb.padX)
}
