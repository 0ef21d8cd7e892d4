package core

import (
	"testing"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

func TestNotificationHoldSlot_HoldThenFlush(t *testing.T) {
	var slot NotificationHoldSlot
	if slot.Pending() {
		t.Fatal("a fresh slot must not be pending")
	}

	ev := types.NewEvent(types.KindNotification)
	body := &types.NotificationBody{ObjectID: 7, Output: "down"}
	if err := slot.Hold(ev, body); err != nil {
		t.Fatalf("Hold on an empty slot must not fail: %v", err)
	}
	if !slot.Pending() {
		t.Fatal("slot must report pending after Hold")
	}

	held := slot.Flush()
	if held == nil {
		t.Fatal("Flush must return the held packet")
	}
	if held.Body.ObjectID != 7 || held.Body.Output != "down" {
		t.Errorf("Flush returned wrong body: %+v", held.Body)
	}
	if slot.Pending() {
		t.Fatal("slot must not be pending after Flush")
	}
}

func TestNotificationHoldSlot_FlushEmptyReturnsNil(t *testing.T) {
	var slot NotificationHoldSlot
	if got := slot.Flush(); got != nil {
		t.Errorf("Flush on an empty slot = %v, want nil", got)
	}
}

func TestNotificationHoldSlot_SecondHoldRefusedWithoutOverwriting(t *testing.T) {
	var slot NotificationHoldSlot
	first := &types.NotificationBody{ObjectID: 1}
	second := &types.NotificationBody{ObjectID: 2}

	if err := slot.Hold(types.NewEvent(types.KindNotification), first); err != nil {
		t.Fatalf("first Hold must succeed: %v", err)
	}
	if err := slot.Hold(types.NewEvent(types.KindNotification), second); err != types.ErrHoldSlotOccupied {
		t.Fatalf("second Hold = %v, want ErrHoldSlotOccupied", err)
	}

	held := slot.Flush()
	if held == nil || held.Body.ObjectID != 1 {
		t.Errorf("collision must not overwrite the original held packet, got %+v", held)
	}
}

func TestNotificationHoldSlot_HoldClonesBody(t *testing.T) {
	var slot NotificationHoldSlot
	body := &types.NotificationBody{ObjectID: 9, Output: "original"}
	if err := slot.Hold(types.NewEvent(types.KindNotification), body); err != nil {
		t.Fatalf("Hold must succeed: %v", err)
	}

	body.Output = "mutated after hold"

	held := slot.Flush()
	if held.Body.Output != "original" {
		t.Errorf("held body was affected by a mutation of the original: %q", held.Body.Output)
	}
}
