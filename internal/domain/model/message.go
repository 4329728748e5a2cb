package model

// InboundKind distinguishes typed text from inline button presses.
type InboundKind int

const (
	InboundText InboundKind = iota + 1
	InboundButton
)

// Inbound is one event received from the messaging channel.
type Inbound struct {
	Kind       InboundKind
	ChatID     int64
	UserID     int64
	Text       string
	Token      string
	CallbackID string
	// MessageID is the message carrying the pressed button, or the typed message.
	MessageID int64
}

// Button is a single-shot inline action carrying an opaque token.
type Button struct {
	Text  string
	Token string
}

// Keyboard describes the selectable options attached to an outgoing message.
// Inline and Reply are mutually exclusive; RemoveReply hides a persistent menu.
type Keyboard struct {
	Inline      [][]Button
	Reply       [][]string
	RemoveReply bool
}

// Empty reports whether the keyboard carries nothing to render.
func (k *Keyboard) Empty() bool {
	return k == nil || (len(k.Inline) == 0 && len(k.Reply) == 0 && !k.RemoveReply)
}
