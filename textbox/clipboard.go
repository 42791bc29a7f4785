package textbox

import "github.com/zyedidia/clipboard"

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota
	ClipInternal
)

// InitClipboard selects the clipboard method for this textbox and its
// peers: the system clipboard first, and if that fails, an internal
// per-engine fallback. The method chosen is returned along with any
// error from probing the system clipboard; the error is not fatal
// because the internal method always works.
func (tb *TextBox) InitClipboard(m ClipMethod) (ClipMethod, error) {
	if m == ClipExternal {
		if err := clipboard.Initialize(); err != nil {
			tb.core.clipMethod = ClipInternal
			return ClipInternal, err
		}
		tb.core.clipMethod = ClipExternal
		return ClipExternal, nil
	}
	tb.core.clipMethod = ClipInternal
	return ClipInternal, nil
}

func (tb *TextBox) clipRead() (string, error) {
	if tb.core.clipMethod == ClipExternal {
		return clipboard.ReadAll("clipboard")
	}
	return tb.core.internalClipboard, nil
}

func (tb *TextBox) clipWrite(content string) error {
	if tb.core.clipMethod == ClipExternal {
		return clipboard.WriteAll(content, "clipboard")
	}
	tb.core.internalClipboard = content
	return nil
}

// Copy places the text of the range on the clipboard.
func (tb *TextBox) Copy(r Range) error {
	return tb.clipWrite(tb.Get(r))
}

// Cut copies the text of the range and deletes it in one undo group.
func (tb *TextBox) Cut(r Range) error {
	if err := tb.clipWrite(tb.Get(r)); err != nil {
		return err
	}
	tb.Delete(r)
	return nil
}

// Paste inserts the clipboard contents at the position.
func (tb *TextBox) Paste(at Position) error {
	content, err := tb.clipRead()
	if err != nil {
		return err
	}
	tb.Insert(at, content)
	return nil
}
