package conversation

import (
	"strings"

	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/pricing"
)

// Machine holds the immutable inputs of the order flow. Transition never mutates the
// state it receives.
type Machine struct {
	engine   *pricing.Engine
	zoneMenu *model.Keyboard
}

func NewMachine(engine *pricing.Engine) *Machine {
	return &Machine{engine: engine, zoneMenu: ZoneMenu(engine.Table())}
}

// Transition consumes one inbound event and returns the next state together with the
// effects the caller must run, in order.
func (m *Machine) Transition(st State, in model.Inbound) (State, []Effect) {
	if in.Kind == model.InboundText {
		switch commandOf(in.Text) {
		case commandStart:
			return m.restart(st)
		case commandCancel:
			return m.cancel()
		}
	}

	if !st.Active() {
		return m.idle(in)
	}

	next := State{Step: st.Step, Draft: st.Draft.Clone()}
	switch st.Step {
	case StepAwaitingZone:
		return m.zone(next, in)
	case StepAwaitingServiceType:
		return m.service(next, in)
	case StepAwaitingExpressConfirm:
		return m.express(next, in)
	case StepAwaitingQuantity:
		return m.text(next, in, textQuantityPrompt, func(d *model.DraftOrder, v string) (Step, Effect) {
			d.QuantityDescription = v
			return StepAwaitingName, prompt(textNamePrompt, nil)
		})
	case StepAwaitingName:
		return m.text(next, in, textNamePrompt, func(d *model.DraftOrder, v string) (Step, Effect) {
			d.CustomerName = v
			return StepAwaitingPhone, prompt(phonePrompt(v), nil)
		})
	case StepAwaitingPhone:
		return m.text(next, in, phonePrompt(next.Draft.CustomerName), func(d *model.DraftOrder, v string) (Step, Effect) {
			d.CustomerPhone = v
			return StepAwaitingAddress, prompt("Excelente. 📍\n\n"+textAddressPrompt, nil)
		})
	case StepAwaitingAddress:
		return m.text(next, in, textAddressPrompt, func(d *model.DraftOrder, v string) (Step, Effect) {
			d.CustomerAddress = v
			return StepAwaitingPreTicketConfirm, prompt(summaryText(d), confirmMenu())
		})
	case StepAwaitingPreTicketConfirm:
		return m.confirm(next, in)
	default:
		// Completed drafts are handed over by the runner and never reach here.
		return Idle(), []Effect{reply(textMenuHint, MainMenu())}
	}
}

func (m *Machine) restart(st State) (State, []Effect) {
	effects := make([]Effect, 0, 2)
	if st.Active() {
		effects = append(effects, reply(textDiscarded, removeReply()))
	}
	return Idle(), append(effects, reply(textWelcome, MainMenu()))
}

func (m *Machine) cancel() (State, []Effect) {
	return Idle(), []Effect{
		reply(textCancelled, removeReply()),
		reply(textAnythingElse, MainMenu()),
	}
}

func (m *Machine) idle(in model.Inbound) (State, []Effect) {
	if in.Kind != model.InboundButton {
		return Idle(), []Effect{reply(textWelcome, MainMenu())}
	}

	switch in.Token {
	case TokenRequest:
		return State{Step: StepAwaitingZone, Draft: &model.DraftOrder{}},
			[]Effect{prompt(textZonePrompt, m.zoneMenu)}
	case TokenPrices:
		return Idle(), []Effect{edit(PriceList(m.engine.Table()), MainMenu())}
	case TokenContact:
		return Idle(), []Effect{edit(textContact, MainMenu())}
	default:
		return Idle(), []Effect{reply(textStale, MainMenu())}
	}
}

func (m *Machine) zone(next State, in model.Inbound) (State, []Effect) {
	input := strings.TrimSpace(in.Text)
	if in.Kind == model.InboundText && strings.EqualFold(input, CancelEntry) {
		return m.cancel()
	}

	z, ok := m.engine.Table().Lookup(input)
	if in.Kind != model.InboundText || !ok {
		return next, []Effect{invalid(unknownZoneText(input), m.zoneMenu)}
	}

	next.Draft.Zone = z.Zone
	next.Step = StepAwaitingServiceType
	return next, []Effect{
		prompt(zoneSelectedText(z), removeReply()),
		prompt(textServicePrompt, serviceMenu()),
	}
}

func (m *Machine) service(next State, in model.Inbound) (State, []Effect) {
	switch buttonOf(in) {
	case TokenServiceNormal:
		m.settle(next.Draft, model.ServiceNormal)
		next.Step = StepAwaitingQuantity
		return next, []Effect{edit(serviceChosenText(next.Draft), nil)}
	case TokenServiceExpress:
		next.Step = StepAwaitingExpressConfirm
		return next, []Effect{edit(expressConfirmText(m.engine.Table().BasePrice(next.Draft.Zone)), expressMenu())}
	default:
		return next, []Effect{invalid(invalidText(textServicePrompt), serviceMenu())}
	}
}

func (m *Machine) express(next State, in model.Inbound) (State, []Effect) {
	switch buttonOf(in) {
	case TokenExpressYes:
		m.settle(next.Draft, model.ServiceExpress)
		next.Step = StepAwaitingQuantity
		return next, []Effect{edit(serviceChosenText(next.Draft), nil)}
	case TokenExpressNo:
		next.Draft.Zone = ""
		next.Draft.ServiceType = ""
		next.Step = StepAwaitingZone
		return next, []Effect{
			edit(textExpressDropped, nil),
			prompt(textZonePrompt, m.zoneMenu),
		}
	default:
		base := m.engine.Table().BasePrice(next.Draft.Zone)
		return next, []Effect{invalid(invalidText(expressConfirmText(base)), expressMenu())}
	}
}

func (m *Machine) confirm(next State, in model.Inbound) (State, []Effect) {
	switch buttonOf(in) {
	case TokenConfirmYes:
		next.Step = StepCompleted
		return next, []Effect{
			edit(summaryText(next.Draft)+"\n\n"+textRegistering, nil),
			{Kind: EffectCommit},
		}
	case TokenConfirmNo:
		next.Draft.CustomerAddress = ""
		next.Step = StepAwaitingAddress
		return next, []Effect{
			edit(summaryText(next.Draft), nil),
			prompt(textAddressRetry, nil),
		}
	default:
		return next, []Effect{invalid(invalidText(summaryText(next.Draft)), confirmMenu())}
	}
}

// text handles the free-text steps. Buttons and blank text re-issue the current prompt.
func (m *Machine) text(next State, in model.Inbound, current string, store func(*model.DraftOrder, string) (Step, Effect)) (State, []Effect) {
	value := strings.TrimSpace(in.Text)
	if in.Kind != model.InboundText || value == "" {
		return next, []Effect{invalid(invalidText(current), nil)}
	}
	step, effect := store(next.Draft, value)
	next.Step = step
	return next, []Effect{effect}
}

func (m *Machine) settle(d *model.DraftOrder, service model.ServiceType) {
	d.ServiceType = service
	d.ComputedPrice = m.engine.Price(d.Zone, service)
	d.PriceComputed = true
}

func commandOf(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	// Group chats append the bot name: /start@brisa_bot.
	cmd, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(cmd)
}

func buttonOf(in model.Inbound) string {
	if in.Kind != model.InboundButton {
		return ""
	}
	return in.Token
}

func prompt(text string, kb *model.Keyboard) Effect {
	return Effect{Kind: EffectPrompt, Text: text, Keyboard: kb}
}

func invalid(text string, kb *model.Keyboard) Effect {
	return Effect{Kind: EffectPrompt, Text: text, Keyboard: kb, Invalid: true}
}

func reply(text string, kb *model.Keyboard) Effect {
	return Effect{Kind: EffectReply, Text: text, Keyboard: kb}
}

func edit(text string, kb *model.Keyboard) Effect {
	return Effect{Kind: EffectEdit, Text: text, Keyboard: kb}
}
