package conversation

import "github.com/polkiloo/brisa/internal/domain/model"

// Step is the position of a customer inside the order flow.
type Step int

const (
	StepIdle Step = iota
	StepAwaitingZone
	StepAwaitingServiceType
	StepAwaitingExpressConfirm
	StepAwaitingQuantity
	StepAwaitingName
	StepAwaitingPhone
	StepAwaitingAddress
	StepAwaitingPreTicketConfirm
	StepCompleted
)

var stepNames = map[Step]string{
	StepIdle:                     "idle",
	StepAwaitingZone:             "awaiting_zone",
	StepAwaitingServiceType:      "awaiting_service_type",
	StepAwaitingExpressConfirm:   "awaiting_express_confirm",
	StepAwaitingQuantity:         "awaiting_quantity",
	StepAwaitingName:             "awaiting_name",
	StepAwaitingPhone:            "awaiting_phone",
	StepAwaitingAddress:          "awaiting_address",
	StepAwaitingPreTicketConfirm: "awaiting_pre_ticket_confirm",
	StepCompleted:                "completed",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// State pairs the current step with the draft it owns. Draft is nil only when idle.
type State struct {
	Step  Step
	Draft *model.DraftOrder
}

// Idle is the state of a customer with no order in progress.
func Idle() State {
	return State{Step: StepIdle}
}

// Active reports whether an order is being collected.
func (s State) Active() bool {
	return s.Step != StepIdle && s.Draft != nil
}

// EffectKind enumerates side effects requested by a transition.
type EffectKind int

const (
	// EffectPrompt sends a bot message tracked as transient on the draft.
	EffectPrompt EffectKind = iota + 1
	// EffectReply sends an informational message that is not tracked.
	EffectReply
	// EffectEdit rewrites the message carrying the pressed button.
	EffectEdit
	// EffectCommit hands the completed draft over for ticket issuing.
	EffectCommit
)

// Effect is a side effect the runner executes after a transition.
type Effect struct {
	Kind     EffectKind
	Text     string
	Keyboard *model.Keyboard
	// Invalid marks a re-prompt caused by unrecognized input.
	Invalid bool
}
