package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/polkiloo/brisa/internal/domain/model"
)

// APIError is a failed Bot API call reported with ok=false.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// TooManyRequestsError represents flood control from the Bot API.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client calls the Telegram Bot API over HTTPS.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// NewClient creates a Bot API client with default timeout.
func NewClient(baseURL, token string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse telegram url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("telegram url must be absolute")
	}
	if token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}
	return &Client{
		baseURL: parsed,
		token:   token,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type sendMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	Text        string `json:"text"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

type editMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	MessageID   int64  `json:"message_id"`
	Text        string `json:"text"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

type deleteMessageRequest struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int64 `json:"message_id"`
}

type answerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
}

type setWebhookRequest struct {
	URL            string   `json:"url"`
	SecretToken    string   `json:"secret_token,omitempty"`
	AllowedUpdates []string `json:"allowed_updates"`
}

// SendMessage posts a text message and returns its id.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, kb *model.Keyboard) (int64, error) {
	var sent Message
	req := sendMessageRequest{ChatID: chatID, Text: text, ReplyMarkup: markup(kb)}
	if err := c.call(ctx, "sendMessage", req, &sent); err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessage replaces text and inline buttons of a sent message.
// Reply menus cannot be attached to edits and are ignored.
func (c *Client) EditMessage(ctx context.Context, chatID, messageID int64, text string, kb *model.Keyboard) error {
	req := editMessageRequest{ChatID: chatID, MessageID: messageID, Text: text}
	if kb != nil && len(kb.Inline) > 0 {
		req.ReplyMarkup = markup(kb)
	}
	return c.call(ctx, "editMessageText", req, nil)
}

func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return c.call(ctx, "deleteMessage", deleteMessageRequest{ChatID: chatID, MessageID: messageID}, nil)
}

// AnswerCallback acknowledges a button press, optionally as a modal alert.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	return c.call(ctx, "answerCallbackQuery", answerCallbackRequest{CallbackQueryID: callbackID, Text: text, ShowAlert: alert}, nil)
}

// SetWebhook registers the public update endpoint.
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	req := setWebhookRequest{
		URL:            webhookURL,
		SecretToken:    secret,
		AllowedUpdates: []string{"message", "callback_query"},
	}
	return c.call(ctx, "setWebhook", req, nil)
}

func (c *Client) call(ctx context.Context, method string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", method, err)
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "bot"+c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the url embeds the token
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("telegram %s: %w", method, uerr.Err)
		}
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var data apiResponse
	decodeErr := json.Unmarshal(raw, &data)

	if resp.StatusCode == http.StatusTooManyRequests || (decodeErr == nil && data.ErrorCode == http.StatusTooManyRequests) {
		retry := 5 * time.Second
		if decodeErr == nil && data.Parameters != nil && data.Parameters.RetryAfter > 0 {
			retry = time.Duration(data.Parameters.RetryAfter) * time.Second
		}
		return TooManyRequestsError{RetryAfter: retry}
	}
	if decodeErr != nil {
		c.logger.Error("telegram response undecodable", slog.String("method", method), slog.Int("status", resp.StatusCode))
		return fmt.Errorf("telegram %s: %s", method, resp.Status)
	}
	if !data.OK {
		c.logger.Warn("telegram request failed",
			slog.String("method", method),
			slog.Int("code", data.ErrorCode),
			slog.String("description", data.Description))
		return &APIError{Method: method, Code: data.ErrorCode, Description: data.Description}
	}

	if result == nil || len(data.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(data.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
