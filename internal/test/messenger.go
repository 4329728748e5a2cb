package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/polkiloo/brisa/internal/domain/model"
)

// SentMessage records one SendMessage call.
type SentMessage struct {
	ChatID    int64
	MessageID int64
	Text      string
	Keyboard  *model.Keyboard
}

// EditedMessage records one EditMessage call.
type EditedMessage struct {
	ChatID    int64
	MessageID int64
	Text      string
	Keyboard  *model.Keyboard
}

// DeletedMessage records one DeleteMessage call.
type DeletedMessage struct {
	ChatID    int64
	MessageID int64
}

// CallbackAnswer records one AnswerCallback call.
type CallbackAnswer struct {
	CallbackID string
	Text       string
	Alert      bool
}

// MessengerStub records outgoing traffic and hands out sequential message ids.
type MessengerStub struct {
	mu sync.Mutex

	NextID   int64
	Sent     []SentMessage
	Edited   []EditedMessage
	Deleted  []DeletedMessage
	Answers  []CallbackAnswer
	Webhooks []string

	// SendErr fails every send to the given chat.
	SendErr map[int64]error
	// DeleteErr fails deletion of the given message ids.
	DeleteErr map[int64]error
	EditErr   error
}

// NewMessengerStub constructs stub with message ids starting at 100.
func NewMessengerStub() *MessengerStub {
	return &MessengerStub{NextID: 100}
}

// SendMessage stores the message and returns a new id.
func (s *MessengerStub) SendMessage(ctx context.Context, chatID int64, text string, kb *model.Keyboard) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.SendErr[chatID]; ok {
		return 0, err
	}
	s.NextID++
	s.Sent = append(s.Sent, SentMessage{ChatID: chatID, MessageID: s.NextID, Text: text, Keyboard: kb})
	return s.NextID, nil
}

// EditMessage stores the edit.
func (s *MessengerStub) EditMessage(ctx context.Context, chatID, messageID int64, text string, kb *model.Keyboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EditErr != nil {
		return s.EditErr
	}
	s.Edited = append(s.Edited, EditedMessage{ChatID: chatID, MessageID: messageID, Text: text, Keyboard: kb})
	return nil
}

// DeleteMessage stores the deletion unless configured to fail.
func (s *MessengerStub) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.DeleteErr[messageID]; ok {
		return err
	}
	s.Deleted = append(s.Deleted, DeletedMessage{ChatID: chatID, MessageID: messageID})
	return nil
}

// AnswerCallback stores the callback answer.
func (s *MessengerStub) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Answers = append(s.Answers, CallbackAnswer{CallbackID: callbackID, Text: text, Alert: alert})
	return nil
}

// SetWebhook stores the registered url.
func (s *MessengerStub) SetWebhook(ctx context.Context, url, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Webhooks = append(s.Webhooks, url)
	return nil
}

// SentTo returns messages sent to chatID in order.
func (s *MessengerStub) SentTo(chatID int64) []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []SentMessage
	for _, m := range s.Sent {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

// LastSentTo returns the latest message sent to chatID.
func (s *MessengerStub) LastSentTo(chatID int64) (SentMessage, error) {
	msgs := s.SentTo(chatID)
	if len(msgs) == 0 {
		return SentMessage{}, fmt.Errorf("no messages sent to %d", chatID)
	}
	return msgs[len(msgs)-1], nil
}

// DeletedIDs returns deleted message ids in order.
func (s *MessengerStub) DeletedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, len(s.Deleted))
	for i, d := range s.Deleted {
		ids[i] = d.MessageID
	}
	return ids
}

// AnswerTexts returns callback answer texts in order.
func (s *MessengerStub) AnswerTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Answers))
	for i, a := range s.Answers {
		out[i] = a.Text
	}
	return out
}
