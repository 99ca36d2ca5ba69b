package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"helloworld/config"
	"helloworld/internal/domain/service"
	"helloworld/internal/infra/pubsub"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func newPushRequest(t *testing.T, event any, attributes map[string]string) *http.Request {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg pubsub.PushMessage
	msg.Subscription = "projects/local/subscriptions/interaction-audit"
	msg.Message.MessageID = "msg-1"
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = attributes

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func newTestPushHandler(buf *bytes.Buffer, cfg *config.Config) *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config: cfg,
		Logger: slog.New(slog.NewJSONHandler(buf, nil)),
	})
}

func validEvent() *service.InteractionEvent {
	return &service.InteractionEvent{
		EventID:       "evt-1",
		RequestID:     "req-from-event",
		InteractionID: 3,
		UserID:        7,
		Channel:       "API",
		Content:       "Hello World",
		OccurredAt:    "2024-03-01T12:00:00Z",
	}
}

func serve(h *PushHandler, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_WritesAuditLine(t *testing.T) {
	var buf bytes.Buffer
	h := newTestPushHandler(&buf, &config.Config{})

	rec := serve(h, newPushRequest(t, validEvent(), map[string]string{"request_id": "req-from-attr"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"msg":"interaction recorded"`)
	assert.Contains(t, out, `"log_type":"audit"`)
	assert.Contains(t, out, `"request_id":"req-from-attr"`)
	assert.Contains(t, out, `"interaction_id":3`)
	assert.Contains(t, out, `"channel":"API"`)
}

func TestPushHandler_RequestIDFallsBackToEvent(t *testing.T) {
	var buf bytes.Buffer
	h := newTestPushHandler(&buf, &config.Config{})

	rec := serve(h, newPushRequest(t, validEvent(), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"request_id":"req-from-event"`)
}

func TestPushHandler_InvalidEventIsAcknowledged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*service.InteractionEvent)
	}{
		{name: "missing event id", mutate: func(e *service.InteractionEvent) { e.EventID = "" }},
		{name: "missing interaction id", mutate: func(e *service.InteractionEvent) { e.InteractionID = 0 }},
		{name: "missing user id", mutate: func(e *service.InteractionEvent) { e.UserID = 0 }},
		{name: "unknown channel", mutate: func(e *service.InteractionEvent) { e.Channel = "SMS" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTestPushHandler(&buf, &config.Config{})
			event := validEvent()
			tt.mutate(event)

			rec := serve(h, newPushRequest(t, event, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotContains(t, buf.String(), "interaction recorded")
			assert.Contains(t, buf.String(), "Dropping invalid interaction event")
		})
	}
}

func TestPushHandler_MalformedEnvelope(t *testing.T) {
	var buf bytes.Buffer
	h := newTestPushHandler(&buf, &config.Config{})

	t.Run("bad json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader("{"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
	})

	t.Run("bad base64", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/push",
			strings.NewReader(`{"message":{"data":"%%%","messageId":"1"}}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
	})

	t.Run("payload is not an event", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(h, newPushRequest(t, "just a string", nil)).Code)
	})
}

func TestPushHandler_VerifiesGooglePushOutsideDevelop(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: "google"}}
	cfg.Env.Env = "production"

	tests := []struct {
		name       string
		header     string
		payload    *idtoken.Payload
		err        error
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer tok", err: errors.New("bad signature"), wantStatus: http.StatusUnauthorized},
		{
			name:       "wrong issuer",
			header:     "Bearer tok",
			payload:    &idtoken.Payload{Issuer: "https://evil.example.com"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unverified email",
			header:     "Bearer tok",
			payload:    &idtoken.Payload{Issuer: "accounts.google.com", Claims: map[string]any{"email_verified": false}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid google token",
			header:     "Bearer tok",
			payload:    &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTestPushHandler(&buf, cfg)
			require.True(t, h.verifyPushAuth)

			var gotAudience string
			h.validateToken = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
				gotAudience = audience
				assert.Equal(t, "tok", token)

				return tt.payload, tt.err
			}

			req := newPushRequest(t, validEvent(), nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := serve(h, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.payload != nil {
				assert.Equal(t, "http://example.com/push", gotAudience)
			}
		})
	}
}

func TestNewPushHandler_SkipsVerificationLocally(t *testing.T) {
	var buf bytes.Buffer

	local := &config.Config{PubSub: &config.PubSubConfig{Provider: "local"}}
	local.Env.Env = "production"
	assert.False(t, newTestPushHandler(&buf, local).verifyPushAuth)

	develop := &config.Config{PubSub: &config.PubSubConfig{Provider: "google"}}
	develop.Env.Env = "develop"
	assert.False(t, newTestPushHandler(&buf, develop).verifyPushAuth)
}
