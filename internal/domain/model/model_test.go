package model

import "testing"

func TestActionTargetStatus(t *testing.T) {
	cases := []struct {
		action Action
		want   TicketStatus
	}{
		{ActionReceive, TicketStatusReceivedAtFacility},
		{ActionMarkReady, TicketStatusReadyForDelivery},
		{ActionMarkDelivered, TicketStatusDelivered},
	}

	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			got, ok := tc.action.TargetStatus()
			if !ok || got != tc.want {
				t.Fatalf("expected %s, got %s (ok=%v)", tc.want, got, ok)
			}
		})
	}

	if _, ok := Action("bogus").TargetStatus(); ok {
		t.Fatal("expected unknown action to have no target status")
	}
}

func TestTicketCloneCopiesTransientIDs(t *testing.T) {
	original := &Ticket{ID: "ABC", TransientMessageIDs: []int64{1, 2}}
	cp := original.Clone()
	cp.TransientMessageIDs[0] = 99
	if original.TransientMessageIDs[0] != 1 {
		t.Fatalf("clone shares transient ids with original")
	}
	if (*Ticket)(nil).Clone() != nil {
		t.Fatal("expected nil clone of nil ticket")
	}
}

func TestDraftCloneCopiesTransientIDs(t *testing.T) {
	d := &DraftOrder{Zone: "Cerro", TransientMessageIDs: []int64{5}}
	cp := d.Clone()
	cp.TransientMessageIDs = append(cp.TransientMessageIDs, 6)
	cp.TransientMessageIDs[0] = 7
	if len(d.TransientMessageIDs) != 1 || d.TransientMessageIDs[0] != 5 {
		t.Fatalf("clone mutated original: %v", d.TransientMessageIDs)
	}
	if !cp.HasZone() {
		t.Fatal("expected clone to keep zone")
	}
}

func TestLabels(t *testing.T) {
	if TicketStatusPendingPickup.Label() != "Pendiente de recogida" {
		t.Fatalf("unexpected label %q", TicketStatusPendingPickup.Label())
	}
	if ServiceExpress.Label() != "Servicio exprés" {
		t.Fatalf("unexpected label %q", ServiceExpress.Label())
	}
	if !(&Keyboard{}).Empty() || (&Keyboard{RemoveReply: true}).Empty() {
		t.Fatal("unexpected keyboard emptiness")
	}
}
