package textbox

import (
	"fmt"
	"sort"
)

// objectReplacement is the placeholder unit an embedded object occupies
// in storage; it is what textual extraction reports for an embed.
const objectReplacement = '￼'

type EmbedKind uint8

const (
	EmbedImage EmbedKind = iota
	EmbedWidget
)

// An Embed is a non-text object living at a single buffer position and
// occupying exactly one addressable unit. The value itself is opaque to
// the engine; rendering it is the display collaborator's business.
type Embed struct {
	name  string
	kind  EmbedKind
	value any

	align      string
	padX, padY int

	pos pos
}

// EmbedOptions carries the layout hints tolerated for embedded objects.
// Margin takes one or two values; four-side margins are not supported.
type EmbedOptions struct {
	Align  string
	Margin []int
}

func (e *Embed) Name() string    { return e.name }
func (e *Embed) Kind() EmbedKind { return e.kind }
func (e *Embed) Value() any      { return e.value }
func (e *Embed) Align() string   { return e.align }

// Position reports where the embed currently lives in the given view.
func (e *Embed) Position(tb *TextBox) Position {
	return tb.position(e.pos)
}

// InsertImage embeds an opaque image value at the position.
func (tb *TextBox) InsertImage(at Position, image any, opts *EmbedOptions) (*Embed, error) {
	return tb.insertEmbed(at, EmbedImage, image, opts)
}

// InsertWidget embeds an opaque widget value at the position.
func (tb *TextBox) InsertWidget(at Position, widget any, opts *EmbedOptions) (*Embed, error) {
	return tb.insertEmbed(at, EmbedWidget, widget, opts)
}

func (tb *TextBox) insertEmbed(at Position, kind EmbedKind, value any, opts *EmbedOptions) (*Embed, error) {
	if opts == nil {
		opts = &EmbedOptions{}
	}

	// Validate before mutating anything.
	var padX, padY int
	switch len(opts.Margin) {
	case 0:
	case 1:
		padX, padY = opts.Margin[0], opts.Margin[0]
	case 2:
		padX, padY = opts.Margin[0], opts.Margin[1]
	default:
		return nil, fmt.Errorf("%w: got %d margin values", ErrInvalidArgumentShape, len(opts.Margin))
	}

	c := tb.core
	c.nameSeq++
	e := &Embed{
		name:  fmt.Sprintf("embed_%d", c.nameSeq),
		kind:  kind,
		value: value,
		align: opts.Align,
		padX:  padX,
		padY:  padY,
	}

	p := at.clamp().pos()
	c.history.beginEdit()
	c.insertText(p, string(objectReplacement), true)

	// The placeholder shifted along with everything else; the embed sits
	// where the insertion began. It rides the recorded op so redo brings
	// it back after an undo.
	e.pos = p
	c.embeds[e.name] = e
	c.history.attachEmbed(e)
	c.history.autoSeparate()
	return e, nil
}

// Embeds returns the live embeds in document order.
func (tb *TextBox) Embeds() []*Embed {
	es := make([]*Embed, 0, len(tb.core.embeds))
	for _, e := range tb.core.embeds {
		es = append(es, e)
	}
	sort.Slice(es, func(i, j int) bool { return cmpPos(es[i].pos, es[j].pos) < 0 })
	return es
}
