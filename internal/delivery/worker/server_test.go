package worker

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"helloworld/config"
	deliverycontext "helloworld/internal/delivery/context"
	"helloworld/internal/delivery/worker/handler"
	"helloworld/internal/domain/service"
	"helloworld/internal/infra/pubsub"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditEcho(buf *bytes.Buffer) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	cfg := &config.Config{}

	return newAuditEcho(ServerParams{
		Cfg:         cfg,
		Logger:      logger,
		PushHandler: handler.NewPushHandler(handler.PushHandlerParams{Config: cfg, Logger: logger}),
	})
}

func TestAuditServer_Health(t *testing.T) {
	var buf bytes.Buffer
	e := newTestAuditEcho(&buf)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, pathHealth, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderRequestID))
}

func TestAuditServer_PushIsAudited(t *testing.T) {
	var buf bytes.Buffer
	e := newTestAuditEcho(&buf)

	data, err := json.Marshal(service.InteractionEvent{
		EventID:       "evt-1",
		InteractionID: 3,
		UserID:        7,
		Channel:       "API",
		Content:       "Hello World",
		OccurredAt:    "2024-03-01T12:00:00Z",
	})
	require.NoError(t, err)

	var msg pubsub.PushMessage
	msg.Message.MessageID = "msg-1"
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, pathPush, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(deliverycontext.HeaderRequestID, "req-push")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Contains(t, buf.String(), `"log_type":"audit"`)
	assert.Contains(t, buf.String(), `"request_id":"req-push"`)
}

func TestAuditServer_RejectsOversizedPush(t *testing.T) {
	var buf bytes.Buffer
	e := newTestAuditEcho(&buf)

	req := httptest.NewRequest(http.MethodPost, pathPush, strings.NewReader(strings.Repeat("x", 2<<20)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
