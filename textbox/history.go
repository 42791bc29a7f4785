package textbox

type opKind uint8

const (
	opInsert opKind = iota
	opDelete
)

// editOp is one primitive mutation, recorded with enough information to
// invert it: the extent it covered, the text involved, and the embeds
// occupying that extent while its text is present. Whenever replaying
// an op puts the text back, the embeds come back with it; taking the
// text out removes them.
type editOp struct {
	kind       opKind
	start, end pos
	text       string
	embeds     []*Embed
}

type editGroup []editOp

// history is the grouped, depth-limited undo/redo log. groups[:cursor]
// are applied; anything past the cursor is the redo path, destroyed by
// the next fresh edit.
type history struct {
	core     *core
	tracking bool

	groups []editGroup
	cursor int
	open   bool // an unclosed group sits at groups[cursor-1]

	limit      int // max groups kept; 0 means unlimited
	separators bool
}

// beginEdit is called before every top-level mutation: an edit while the
// cursor is behind the tip discards the redo path.
func (h *history) beginEdit() {
	if !h.tracking {
		return
	}
	if h.cursor < len(h.groups) {
		h.groups = h.groups[:h.cursor]
		h.open = false
	}
}

// record appends a primitive op to the open group, starting one if
// necessary, and enforces the depth limit.
func (h *history) record(op editOp) {
	if !h.tracking {
		return
	}
	if !h.open {
		h.groups = append(h.groups, nil)
		h.cursor = len(h.groups)
		h.open = true
	}
	h.groups[h.cursor-1] = append(h.groups[h.cursor-1], op)
	h.trim()
}

func (h *history) trim() {
	if h.limit > 0 && len(h.groups) > h.limit {
		drop := len(h.groups) - h.limit
		h.groups = append([]editGroup(nil), h.groups[drop:]...)
		h.cursor -= drop
		if h.cursor < 0 {
			h.cursor = 0
		}
	}
}

// autoSeparate closes the current group after a mutation call when
// automatic separators are on, so one call is one undoable step.
func (h *history) autoSeparate() {
	if h.separators {
		h.open = false
	}
}

// History is the caller-facing handle on the undo/redo log, shared by a
// textbox and its peers.
type History struct {
	h *history
}

// CanUndo reports whether at least one group can be undone.
func (hh *History) CanUndo() bool {
	return hh.h.tracking && hh.h.cursor > 0
}

// CanRedo reports whether at least one undone group can be reapplied.
func (hh *History) CanRedo() bool {
	return hh.h.tracking && hh.h.cursor < len(hh.h.groups)
}

// Undo steps the log back by up to n groups, stopping silently at the
// beginning. With history tracking disabled it is a no-op that returns
// ErrHistoryDisabled.
func (hh *History) Undo(n int) error {
	h := hh.h
	if !h.tracking {
		return ErrHistoryDisabled
	}
	for ; n > 0 && h.cursor > 0; n-- {
		group := h.groups[h.cursor-1]
		for i := len(group) - 1; i >= 0; i-- {
			h.invert(group[i])
		}
		h.cursor--
		h.open = false
	}
	return nil
}

// Redo reapplies up to n undone groups, stopping silently at the tip.
func (hh *History) Redo(n int) error {
	h := hh.h
	if !h.tracking {
		return ErrHistoryDisabled
	}
	for ; n > 0 && h.cursor < len(h.groups); n-- {
		for _, op := range h.groups[h.cursor] {
			h.replay(op)
		}
		h.cursor++
		h.open = false
	}
	return nil
}

func (h *history) invert(op editOp) {
	switch op.kind {
	case opInsert:
		h.core.deleteRange(op.start, op.end, false)
	case opDelete:
		h.core.insertText(op.start, op.text, false)
		h.core.restoreEmbeds(op.embeds)
	}
}

func (h *history) replay(op editOp) {
	switch op.kind {
	case opInsert:
		h.core.insertText(op.start, op.text, false)
		h.core.restoreEmbeds(op.embeds)
	case opDelete:
		h.core.deleteRange(op.start, op.end, false)
	}
}

// attachEmbed ties an embed to the newest recorded op, so undo and redo
// of that op re-register it instead of leaving a bare placeholder.
func (h *history) attachEmbed(e *Embed) {
	if !h.tracking || !h.open {
		return
	}
	group := h.groups[h.cursor-1]
	op := &group[len(group)-1]
	op.embeds = append(op.embeds, e)
}

// AddSeparator closes the current group; the next edit starts a new one.
func (hh *History) AddSeparator() {
	hh.h.open = false
}

// SetSeparators turns automatic group separation per mutation call on or
// off. With it off, consecutive edits coalesce until AddSeparator.
func (hh *History) SetSeparators(auto bool) {
	hh.h.separators = auto
}

// Clear discards the whole log.
func (hh *History) Clear() {
	hh.h.groups = nil
	hh.h.cursor = 0
	hh.h.open = false
}

// Limit returns the maximum number of groups retained; 0 is unlimited.
func (hh *History) Limit() int { return hh.h.limit }

// SetLimit reconfigures the retention depth, discarding the oldest
// groups if the log already exceeds it.
func (hh *History) SetLimit(limit int) {
	hh.h.limit = limit
	hh.h.trim()
}
