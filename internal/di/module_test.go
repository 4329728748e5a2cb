package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/brisa/internal/app"
	"github.com/polkiloo/brisa/internal/config"
	"github.com/polkiloo/brisa/internal/conversation"
	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/domain/repository"
	"github.com/polkiloo/brisa/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		BotToken:        "123:abc",
		BotAPIURL:       "http://localhost",
		AdminChatID:     1000,
		WebhookPath:     "/webhook",
		WorkerPoolSize:  1,
		UpdateQueueSize: 1,
		ShutdownTimeout: time.Millisecond,
		TicketRetention: time.Hour,
		SweepInterval:   time.Hour,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	messenger := test.NewMessengerStub()

	var (
		facade  *app.BotFacade
		tickets repository.TicketRepository
		bound   Messenger
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Decorate(func(Messenger) Messenger { return messenger }),
		),
		fx.Populate(&facade, &tickets, &bound),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || tickets == nil {
		t.Fatal("expected bot facade and ticket repository")
	}
	if bound != Messenger(messenger) {
		t.Fatalf("graph messenger is %T, want the stub", bound)
	}

	ctx := context.Background()
	events := []model.Inbound{
		{Kind: model.InboundButton, ChatID: 77, UserID: 77, Token: conversation.TokenRequest},
		{Kind: model.InboundText, ChatID: 77, UserID: 77, Text: "Cerro"},
		{Kind: model.InboundButton, ChatID: 77, UserID: 77, Token: conversation.TokenServiceNormal},
		{Kind: model.InboundText, ChatID: 77, UserID: 77, Text: "5 prendas"},
		{Kind: model.InboundText, ChatID: 77, UserID: 77, Text: "Ana"},
		{Kind: model.InboundText, ChatID: 77, UserID: 77, Text: "5355"},
		{Kind: model.InboundText, ChatID: 77, UserID: 77, Text: "Calle 1"},
		{Kind: model.InboundButton, ChatID: 77, UserID: 77, Token: conversation.TokenConfirmYes},
	}
	for _, ev := range events {
		if err := facade.HandleInbound(ctx, ev); err != nil {
			t.Fatalf("handle %+v: %v", ev, err)
		}
	}

	card, err := messenger.LastSentTo(1000)
	if err != nil {
		t.Fatalf("admin card not sent: %v", err)
	}
	id, _, ok := app.ParseAdminToken(card.Keyboard.Inline[0][0].Token)
	if !ok {
		t.Fatalf("admin card has no action menu")
	}
	ticket, err := tickets.Get(ctx, id)
	if err != nil {
		t.Fatalf("ticket not stored: %v", err)
	}
	if ticket.Price != 600 || ticket.Status != model.TicketStatusPendingPickup {
		t.Fatalf("unexpected ticket %+v", ticket)
	}
}
