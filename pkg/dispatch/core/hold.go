package core

import (
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// HeldNotification is a deep-copied notification packet parked in the
// NotificationHoldSlot until the triggering check result is dispatched.
type HeldNotification struct {
	Event *types.Event
	Body  *types.NotificationBody
}

// NotificationHoldSlot is the single-slot deferred-send queue for a
// notification packet described in spec.md §4.5. It inverts the natural
// intake order of a notification and its triggering check result so
// that, on the wire, the check result always precedes the notification
// it caused — see property P3.
type NotificationHoldSlot struct {
	held *HeldNotification
}

// Hold parks ev/body until the next Flush. It refuses (without
// overwriting the existing entry) if the slot is already occupied,
// logging the collision is the caller's responsibility per spec.md §7.
func (s *NotificationHoldSlot) Hold(ev *types.Event, body *types.NotificationBody) error {
	if s.held != nil {
		return types.ErrHoldSlotOccupied
	}
	s.held = &HeldNotification{Event: ev, Body: body.Clone()}
	return nil
}

// Flush removes and returns the held packet, or nil if the slot is
// empty. It is called after every check-result dispatch so a pending
// notification rides the wire immediately behind its trigger.
func (s *NotificationHoldSlot) Flush() *HeldNotification {
	h := s.held
	s.held = nil
	return h
}

// Pending reports whether a notification is currently parked. Exposed
// so an operator-facing diagnostic can flag a slot that a bug left
// stuck past its triggering check result (spec.md §5: the slot has no
// timeout of its own).
func (s *NotificationHoldSlot) Pending() bool { return s.held != nil }
