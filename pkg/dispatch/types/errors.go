package types

import "errors"

var (
	// ErrNilEvent is a programming error: a hook was invoked with no
	// event to route.
	ErrNilEvent = errors.New("dispatch: nil event")

	// ErrEncodeFailed signals the external codec produced a zero-length
	// payload, which the spec treats as a programmer error (an offset
	// table out of sync with a new field).
	ErrEncodeFailed = errors.New("dispatch: codec produced zero-length payload")

	// ErrNoSelection signals a targeted poller-group selection has no
	// registered entry.
	ErrNoSelection = errors.New("dispatch: no matching poller selection registered")

	// ErrHoldSlotOccupied signals a second hold was attempted while the
	// one-deep notification hold slot was still occupied.
	ErrHoldSlotOccupied = errors.New("dispatch: notification hold slot already occupied")

	// ErrUnknownCallback signals a callback id outside the registered
	// hook table.
	ErrUnknownCallback = errors.New("dispatch: unknown callback kind")
)
