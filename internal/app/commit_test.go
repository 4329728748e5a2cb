package app

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/brisa/internal/domain/errors"
	"github.com/polkiloo/brisa/internal/domain/model"
	testhelpers "github.com/polkiloo/brisa/internal/test"
	"github.com/polkiloo/brisa/internal/usecase"
)

func completeDraft() *model.DraftOrder {
	return &model.DraftOrder{
		Zone:                "Cerro",
		ServiceType:         model.ServiceNormal,
		QuantityDescription: "5",
		CustomerName:        "Ana",
		CustomerPhone:       "5355",
		CustomerAddress:     "Calle 1",
		ComputedPrice:       600,
		PriceComputed:       true,
		TransientMessageIDs: []int64{3, 4},
	}
}

func TestCommitOrderReportsIssueFailure(t *testing.T) {
	repo := &testhelpers.TicketRepositoryStub{
		CreateFn: func(context.Context, *model.Ticket) error { return domainErrors.ErrAlreadyExists },
	}
	messenger := testhelpers.NewMessengerStub()
	c := NewOrderCommitter(usecase.NewTicketUseCase(repo), messenger, usecase.AdminID(adminID), testLogger())

	err := c.CommitOrder(context.Background(), customerID, completeDraft())
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if len(messenger.Sent) != 0 {
		t.Fatalf("nothing may be sent on failure, got %d", len(messenger.Sent))
	}
}

func TestCommitOrderToleratesAdminDeliveryFailure(t *testing.T) {
	env := newTestEnv(t)
	env.messenger.SendErr = map[int64]error{adminID: errors.New("chat not found")}
	c := NewOrderCommitter(env.tickets, env.messenger, usecase.AdminID(adminID), testLogger())

	if err := c.CommitOrder(context.Background(), customerID, completeDraft()); err != nil {
		t.Fatalf("admin failure must not fail commit: %v", err)
	}
	if env.store.Len() != 1 {
		t.Fatalf("expected ticket stored")
	}
	if sent := env.messenger.SentTo(customerID); len(sent) != 2 {
		t.Fatalf("expected receipt and menu, got %d", len(sent))
	}
}
