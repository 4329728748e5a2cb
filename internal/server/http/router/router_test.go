package router

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/brisa/internal/config"
	"github.com/polkiloo/brisa/internal/domain/model"
	"github.com/polkiloo/brisa/internal/server/http/middleware"
)

type submitterStub struct {
	received []model.Inbound
}

func (s *submitterStub) Submit(in model.Inbound) error {
	s.received = append(s.received, in)
	return nil
}

func TestSetupRoutes(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	submitter := &submitterStub{}
	engine := Setup(Params{
		Submitter: submitter,
		Config:    &config.Config{WebhookPath: "/hook", WebhookSecret: "s3cret"},
		Logger:    logger,
	})
	gin.SetMode(gin.TestMode)

	update := []byte(`{"update_id":1,"callback_query":{"id":"cb","from":{"id":5},"data":"solicitar","message":{"message_id":9,"chat":{"id":5}}}}`)

	req := httptest.NewRequest(http.MethodPost, "/hook", bytes.NewReader(update))
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/hook", bytes.NewReader(update))
	req.Header.Set(middleware.SecretTokenHeader, "s3cret")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d", resp.Code)
	}
	if len(submitter.received) != 1 || submitter.received[0].Token != "solicitar" {
		t.Fatalf("unexpected submissions %+v", submitter.received)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for health, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/hook", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for GET webhook, got %d", resp.Code)
	}
}
