package textbox

import "errors"

var (
	// ErrProtectedMark is returned when deleting the insertion cursor mark.
	ErrProtectedMark = errors.New("textbox: can't delete insertion cursor")

	// ErrUnsupportedValueType is returned by At when given a value it
	// cannot resolve into a position.
	ErrUnsupportedValueType = errors.New("textbox: unsupported value type for a position")

	// ErrInvalidArgumentShape is returned for padding or margin values
	// with more than two sides. Four-side shapes are not supported.
	ErrInvalidArgumentShape = errors.New("textbox: padding and margins take one or two values")

	// ErrHistoryDisabled is the non-fatal warning surfaced when undo or
	// redo is invoked on a textbox created without history tracking. The
	// call itself is a no-op.
	ErrHistoryDisabled = errors.New("textbox: history tracking is disabled on this textbox")

	// ErrPeerOfPeer is returned when creating a peer from a peer.
	ErrPeerOfPeer = errors.New("textbox: can't create a peer of a peer")
)
