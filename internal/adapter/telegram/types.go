package telegram

import (
	"strings"

	"github.com/polkiloo/brisa/internal/domain/model"
)

// Update is the subset of a Bot API update the bot consumes.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date,omitempty"`
	Text      string `json:"text,omitempty"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// ChatID returns the chat the update belongs to, or 0.
func (u *Update) ChatID() int64 {
	switch {
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return u.CallbackQuery.Message.Chat.ID
	case u.Message != nil:
		return u.Message.Chat.ID
	default:
		return 0
	}
}

// ToInbound converts the update into a domain event. Updates without text or
// button data are reported as not ok.
func (u *Update) ToInbound() (model.Inbound, bool) {
	if cq := u.CallbackQuery; cq != nil {
		if cq.Message == nil || cq.Data == "" {
			return model.Inbound{}, false
		}
		return model.Inbound{
			Kind:       model.InboundButton,
			ChatID:     cq.Message.Chat.ID,
			UserID:     cq.From.ID,
			Token:      cq.Data,
			CallbackID: cq.ID,
			MessageID:  cq.Message.MessageID,
		}, true
	}

	if msg := u.Message; msg != nil && strings.TrimSpace(msg.Text) != "" {
		in := model.Inbound{
			Kind:      model.InboundText,
			ChatID:    msg.Chat.ID,
			Text:      msg.Text,
			MessageID: msg.MessageID,
		}
		if msg.From != nil {
			in.UserID = msg.From.ID
		}
		return in, true
	}
	return model.Inbound{}, false
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type replyButton struct {
	Text string `json:"text"`
}

type replyKeyboardMarkup struct {
	Keyboard       [][]replyButton `json:"keyboard"`
	ResizeKeyboard bool            `json:"resize_keyboard"`
	IsPersistent   bool            `json:"is_persistent"`
}

type replyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

// markup maps a domain keyboard to the Bot API reply_markup object.
func markup(kb *model.Keyboard) any {
	if kb == nil || kb.Empty() {
		return nil
	}
	switch {
	case len(kb.Inline) > 0:
		rows := make([][]inlineButton, len(kb.Inline))
		for i, row := range kb.Inline {
			rows[i] = make([]inlineButton, len(row))
			for j, b := range row {
				rows[i][j] = inlineButton{Text: b.Text, CallbackData: b.Token}
			}
		}
		return inlineKeyboardMarkup{InlineKeyboard: rows}
	case len(kb.Reply) > 0:
		rows := make([][]replyButton, len(kb.Reply))
		for i, row := range kb.Reply {
			rows[i] = make([]replyButton, len(row))
			for j, label := range row {
				rows[i][j] = replyButton{Text: label}
			}
		}
		return replyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true, IsPersistent: true}
	default:
		return replyKeyboardRemove{RemoveKeyboard: true}
	}
}
