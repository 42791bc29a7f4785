package textbox

import (
	"regexp"
	"strings"
)

// SearchOptions toggles the matching behavior. The zero value searches
// forward, case-sensitively, for the literal pattern, skipping hidden
// content, with lenient limits.
type SearchOptions struct {
	// Backwards searches from start toward stop, which must then lie at
	// or before start.
	Backwards bool

	// Forwards makes the direction explicit; when both direction flags
	// are set, Forwards wins.
	Forwards bool

	IgnoreCase bool

	// IncludeHidden searches elided (hidden-tagged) content too.
	IncludeHidden bool

	// Exact forces literal matching even when Regexp is set.
	Exact bool

	Regexp bool

	// MatchNewline lets '.'-like wildcards cross line boundaries in
	// regexp mode.
	MatchNewline bool

	// StrictLimits requires the whole match to lie inside the search
	// bounds, not just its start.
	StrictLimits bool
}

// A SearchMatch is one hit: its half-open range and the matched length
// in index units, so the caller can compute the end without rescanning.
type SearchMatch struct {
	Range  Range
	Length int
}

// A SearchIter produces matches lazily, one per Next call, re-probing
// the live buffer each time. It terminates silently when nothing more
// matches before the stop bound. Mutating the buffer mid-iteration has
// undefined positional correctness; don't.
type SearchIter struct {
	tb   *TextBox
	re   *regexp.Regexp // nil for literal matching
	lit  string
	opts SearchOptions

	cur, stop Position
	backwards bool
	done      bool
}

// Search begins an incremental search for pattern between start and
// stop. A zero stop defaults to the buffer end (or start, when searching
// backwards). The only error is a failed regexp compilation.
func (tb *TextBox) Search(pattern string, start, stop Position, opts *SearchOptions) (*SearchIter, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	backwards := opts.Backwards && !opts.Forwards

	if stop.tb == nil {
		if backwards {
			stop = tb.Start()
		} else {
			stop = tb.End()
		}
	}

	it := &SearchIter{
		tb:        tb,
		opts:      *opts,
		cur:       start.clamp(),
		stop:      stop.clamp(),
		backwards: backwards,
	}

	if opts.Regexp && !opts.Exact {
		expr := pattern
		if opts.MatchNewline {
			expr = "(?s)" + expr
		}
		if opts.IgnoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		it.re = re
	} else {
		it.lit = pattern
	}

	return it, nil
}

// searchUnit is one searchable unit with the address it came from.
type searchUnit struct {
	r rune
	p pos
}

// visibleUnits flattens the buffer into the rune sequence the search
// runs over, dropping elided units unless the search includes hidden
// content. Re-derived per probe so each pull sees the current buffer.
func (it *SearchIter) visibleUnits() []searchUnit {
	tb := it.tb
	text := tb.core.text
	lastLine := text.lines() - 1

	var units []searchUnit
	for line := 0; line <= lastLine; line++ {
		runes := []rune(string(text.line(line)))
		for col, r := range runes {
			p := pos{line, col}
			if it.opts.IncludeHidden || !tb.hiddenAt(tb.position(p)) {
				units = append(units, searchUnit{r, p})
			}
		}
		if line < lastLine {
			p := pos{line, len(runes)}
			if it.opts.IncludeHidden || !tb.hiddenAt(tb.position(p)) {
				units = append(units, searchUnit{'\n', p})
			}
		}
	}
	return units
}

// unitIndex returns the index of the first unit at or after p.
func unitIndex(units []searchUnit, p pos) int {
	for i, u := range units {
		if cmpPos(u.p, p) >= 0 {
			return i
		}
	}
	return len(units)
}

// findIn locates the first match in the rune sequence at or after the
// from index. Returns the match's start index and length in units.
func (it *SearchIter) findIn(units []searchUnit, from int) (int, int, bool) {
	if from > len(units) {
		return 0, 0, false
	}
	rs := make([]rune, len(units)-from)
	for i, u := range units[from:] {
		rs[i] = u.r
	}
	s := string(rs)

	if it.re != nil {
		loc := it.re.FindStringIndex(s)
		if loc == nil {
			return 0, 0, false
		}
		startRunes := len([]rune(s[:loc[0]]))
		lenRunes := len([]rune(s[loc[0]:loc[1]]))
		return from + startRunes, lenRunes, true
	}

	hay, needle := s, it.lit
	if it.opts.IgnoreCase {
		hay, needle = strings.ToLower(hay), strings.ToLower(needle)
	}
	i := strings.Index(hay, needle)
	if i < 0 {
		return 0, 0, false
	}
	return from + len([]rune(hay[:i])), len([]rune(needle)), true
}

// Next yields the next match, or false when the search is exhausted.
// After a match the next probe starts one unit past the match start, so
// iteration makes progress even on zero-width matches.
func (it *SearchIter) Next() (SearchMatch, bool) {
	if it.done {
		return SearchMatch{}, false
	}

	units := it.visibleUnits()

	if it.backwards {
		return it.nextBackwards(units)
	}

	from := unitIndex(units, it.cur.clamp().pos())
	limit := unitIndex(units, it.stop.clamp().pos())

	for {
		start, length, ok := it.findIn(units, from)
		if !ok || start >= limit {
			it.done = true
			return SearchMatch{}, false
		}
		if it.opts.StrictLimits && start+length > limit {
			from = start + 1
			continue
		}
		return it.yield(units, start, length), true
	}
}

func (it *SearchIter) nextBackwards(units []searchUnit) (SearchMatch, bool) {
	limit := unitIndex(units, it.stop.clamp().pos())
	curIdx := unitIndex(units, it.cur.clamp().pos())

	// Scan forward from the stop bound and keep the last hit that still
	// starts before the cursor.
	best, bestLen := -1, 0
	from := limit
	for {
		start, length, ok := it.findIn(units, from)
		if !ok || start >= curIdx {
			break
		}
		if !it.opts.StrictLimits || start+length <= curIdx {
			best, bestLen = start, length
		}
		from = start + 1
	}

	if best < 0 {
		it.done = true
		return SearchMatch{}, false
	}

	m := it.yield(units, best, bestLen)
	it.cur = m.Range.Start // next probe looks strictly before this hit
	return m, true
}

func (it *SearchIter) yield(units []searchUnit, start, length int) SearchMatch {
	tb := it.tb

	startPos := tb.position(units[start].p)
	var endPos Position
	if start+length < len(units) {
		endPos = tb.position(units[start+length].p)
	} else {
		endPos = tb.End()
	}

	if !it.backwards {
		if start+1 < len(units) {
			it.cur = tb.position(units[start+1].p)
		} else {
			it.done = true
		}
	}

	return SearchMatch{Range: Range{startPos, endPos}, Length: length}
}
