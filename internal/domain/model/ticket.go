package model

import "time"

// TicketStatus describes the fulfillment lifecycle of an issued ticket.
type TicketStatus string

const (
	TicketStatusPendingPickup      TicketStatus = "PENDING_PICKUP"
	TicketStatusReceivedAtFacility TicketStatus = "RECEIVED_AT_FACILITY"
	TicketStatusReadyForDelivery   TicketStatus = "READY_FOR_DELIVERY"
	TicketStatusDelivered          TicketStatus = "DELIVERED"
)

// Label returns the customer-facing status text.
func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusPendingPickup:
		return "Pendiente de recogida"
	case TicketStatusReceivedAtFacility:
		return "Recibido en lavandería"
	case TicketStatusReadyForDelivery:
		return "Listo para entrega"
	case TicketStatusDelivered:
		return "Entregado"
	default:
		return string(s)
	}
}

// Action is an administrator command that moves a ticket to a new status.
type Action string

const (
	ActionReceive       Action = "recv"
	ActionMarkReady     Action = "ready"
	ActionMarkDelivered Action = "dlv"
)

// Actions lists admin actions in their intended order.
var Actions = []Action{ActionReceive, ActionMarkReady, ActionMarkDelivered}

// TargetStatus maps the action to the status it commits.
func (a Action) TargetStatus() (TicketStatus, bool) {
	switch a {
	case ActionReceive:
		return TicketStatusReceivedAtFacility, true
	case ActionMarkReady:
		return TicketStatusReadyForDelivery, true
	case ActionMarkDelivered:
		return TicketStatusDelivered, true
	default:
		return "", false
	}
}

// Ticket is the committed record of one customer order.
type Ticket struct {
	ID                  string
	CustomerChatID      int64
	CustomerName        string
	Phone               string
	Address             string
	Zone                string
	ServiceType         ServiceType
	QuantityDescription string
	Price               int64
	FormattedPrice      string
	Status              TicketStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
	// TransientMessageIDs are customer chat prompts purged on the first status change.
	TransientMessageIDs []int64
	// TicketMessageID is the customer receipt and is never purged.
	TicketMessageID int64
	AdminMessageID  int64
}

// Clone returns a copy safe to hand out of the store.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	cp := *t
	cp.TransientMessageIDs = append([]int64(nil), t.TransientMessageIDs...)
	return &cp
}
