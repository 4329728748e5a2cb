package conversation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/polkiloo/brisa/internal/domain/model"
)

// Messenger is the outbound channel used by the order flow.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb *model.Keyboard) (int64, error)
	EditMessage(ctx context.Context, chatID, messageID int64, text string, kb *model.Keyboard) error
}

// Committer turns a confirmed draft into an issued ticket.
type Committer interface {
	CommitOrder(ctx context.Context, chatID int64, draft *model.DraftOrder) error
}

type session struct {
	mu     sync.Mutex
	state  State
	closed bool
}

// Service keeps one session per customer chat and runs the machine's effects.
type Service struct {
	machine   *Machine
	messenger Messenger
	committer Committer
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

func NewService(machine *Machine, messenger Messenger, committer Committer, logger *slog.Logger) *Service {
	return &Service{
		machine:   machine,
		messenger: messenger,
		committer: committer,
		logger:    logger,
		sessions:  make(map[int64]*session),
	}
}

// Handle feeds one customer event through the machine.
func (s *Service) Handle(ctx context.Context, in model.Inbound) error {
	for {
		sess := s.session(in.ChatID)
		sess.mu.Lock()
		if sess.closed {
			sess.mu.Unlock()
			continue
		}
		err := s.handle(ctx, sess, in)
		sess.mu.Unlock()
		return err
	}
}

// State returns a copy of the chat's current state.
func (s *Service) State(chatID int64) State {
	s.mu.Lock()
	sess, ok := s.sessions[chatID]
	s.mu.Unlock()
	if !ok {
		return Idle()
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return State{Step: sess.state.Step, Draft: sess.state.Draft.Clone()}
}

// Active reports whether the chat has an order in progress.
func (s *Service) Active(chatID int64) bool {
	return s.State(chatID).Active()
}

// Sessions is the number of chats with an order in progress.
func (s *Service) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Service) session(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &session{state: Idle()}
		s.sessions[chatID] = sess
	}
	return sess
}

func (s *Service) handle(ctx context.Context, sess *session, in model.Inbound) error {
	prev := sess.state.Step
	next, effects := s.machine.Transition(sess.state, in)

	var commitErr error
	for _, effect := range effects {
		switch effect.Kind {
		case EffectPrompt:
			s.prompt(ctx, in.ChatID, &next, effect)
		case EffectReply:
			s.send(ctx, in.ChatID, effect)
		case EffectEdit:
			if in.MessageID == 0 {
				s.prompt(ctx, in.ChatID, &next, effect)
				continue
			}
			if err := s.messenger.EditMessage(ctx, in.ChatID, in.MessageID, effect.Text, effect.Keyboard); err != nil {
				s.logger.Warn("edit failed, sending instead",
					slog.Int64("chat_id", in.ChatID),
					slog.Int64("message_id", in.MessageID),
					slog.String("error", err.Error()))
				s.prompt(ctx, in.ChatID, &next, effect)
			}
		case EffectCommit:
			if commitErr = s.committer.CommitOrder(ctx, in.ChatID, next.Draft); commitErr != nil {
				s.logger.Error("commit order failed",
					slog.Int64("chat_id", in.ChatID),
					slog.String("error", commitErr.Error()))
				next.Step = StepAwaitingPreTicketConfirm
				s.prompt(ctx, in.ChatID, &next, prompt(textCommitFailed, confirmMenu()))
				continue
			}
			next = Idle()
		}
	}

	if effectsInvalid(effects) {
		s.logger.Debug("input rejected",
			slog.Int64("chat_id", in.ChatID),
			slog.String("step", prev.String()))
	} else if prev != next.Step {
		s.logger.Debug("conversation advanced",
			slog.Int64("chat_id", in.ChatID),
			slog.String("from", prev.String()),
			slog.String("to", next.Step.String()))
	}

	sess.state = next
	if !next.Active() {
		sess.closed = true
		s.mu.Lock()
		if s.sessions[in.ChatID] == sess {
			delete(s.sessions, in.ChatID)
		}
		s.mu.Unlock()
	}
	return commitErr
}

// prompt sends a message and records its id on the draft when one is active.
func (s *Service) prompt(ctx context.Context, chatID int64, next *State, effect Effect) {
	id, ok := s.send(ctx, chatID, effect)
	if ok && next.Draft != nil {
		next.Draft.TransientMessageIDs = append(next.Draft.TransientMessageIDs, id)
	}
}

func (s *Service) send(ctx context.Context, chatID int64, effect Effect) (int64, bool) {
	id, err := s.messenger.SendMessage(ctx, chatID, effect.Text, effect.Keyboard)
	if err != nil {
		s.logger.Warn("send message failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
		return 0, false
	}
	return id, true
}

func effectsInvalid(effects []Effect) bool {
	for _, e := range effects {
		if e.Invalid {
			return true
		}
	}
	return false
}
