package main

import (
	"fmt"
	"os"

	"github.com/fivemoreminix/qtext/textbox"
	"github.com/gdamore/tcell/v2"
)

// A tiny editor exercising the textbox engine: typing, undo/redo,
// tagging the word under the cursor, search and clipboard.

func draw(s tcell.Screen, tb *textbox.TextBox) {
	s.Clear()

	end := tb.End()
	screenY := 0
	for line := 1; line <= end.Line; line++ {
		lineEnd := tb.Index(line, 0).LineEnd()
		screenX := 0
		for col := 0; col < lineEnd.Col; col++ {
			p := tb.Index(line, col)
			if tb.AttributesAt(p).Hidden == textbox.On {
				continue // elided
			}
			r := []rune(tb.Get(tb.NewRange(p, p.Forward(0, 1, 0))))
			if len(r) == 0 {
				continue
			}
			s.SetContent(screenX, screenY, r[0], nil, tb.StyleAt(p))
			screenX++
		}
		screenY++
	}

	cur := tb.Cursor()
	s.ShowCursor(cur.Col, cur.Line-1)

	status := fmt.Sprintf("%v  ^Q quit  ^Z undo  ^Y redo  ^B bold word  ^F find 'the'", cur)
	_, sizey := s.Size()
	for i, r := range status {
		s.SetContent(i, sizey-1, r, nil, tcell.StyleDefault.Reverse(true))
	}

	s.Show()
}

func main() {
	s, e := tcell.NewScreen()
	if e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		os.Exit(1)
	}
	if e := s.Init(); e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		os.Exit(1)
	}
	defer s.Fini() // Useful for handling panics

	tb, err := textbox.New(&textbox.Options{
		Text:         "the cat sat on the mat\ntype here; the engine does the rest\n",
		TrackHistory: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Not fatal: the internal clipboard takes over when the system one
	// is unavailable.
	_, _ = tb.InitClipboard(textbox.ClipExternal)

	tb.BoldTag().Add(tb.RangeOf(1, 4, 1, 7))
	tb.ItalicTag().Add(tb.RangeOf(1, 8, 1, 11))

	for {
		draw(s, tb)

		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			cur := tb.Cursor()
			switch ev.Key() {
			case tcell.KeyCtrlQ, tcell.KeyEscape:
				return
			case tcell.KeyLeft:
				tb.SetCursor(cur.Back(1, 0, 0))
			case tcell.KeyRight:
				tb.SetCursor(cur.Forward(1, 0, 0))
			case tcell.KeyUp:
				tb.SetCursor(cur.Back(0, 0, 1))
			case tcell.KeyDown:
				tb.SetCursor(cur.Forward(0, 0, 1))
			case tcell.KeyEnter:
				tb.Insert(cur, "\n")
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				tb.Delete(tb.NewRange(cur.Back(1, 0, 0), cur))
			case tcell.KeyCtrlZ:
				_ = tb.History().Undo(1)
			case tcell.KeyCtrlY:
				_ = tb.History().Redo(1)
			case tcell.KeyCtrlB:
				tb.BoldTag().Add(tb.NewRange(cur.WordStart(), cur.WordEnd()))
			case tcell.KeyCtrlC:
				_ = tb.Copy(tb.NewRange(cur.LineStart(), cur.LineEnd()))
			case tcell.KeyCtrlV:
				_ = tb.Paste(cur)
			case tcell.KeyCtrlF:
				// Jump the cursor to the next "the" after it.
				it, err := tb.Search("the", cur.Forward(1, 0, 0), textbox.Position{}, nil)
				if err == nil {
					if m, ok := it.Next(); ok {
						tb.SetCursor(m.Range.Start)
						tb.ScrollTo(m.Range.Start)
					}
				}
			case tcell.KeyRune:
				tb.Insert(cur, string(ev.Rune()))
			}
		}
	}
}
