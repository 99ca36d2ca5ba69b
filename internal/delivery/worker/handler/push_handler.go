// Package handler contains the Pub/Sub push handlers of the audit worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"helloworld/config"
	deliverycontext "helloworld/internal/delivery/context"
	"helloworld/internal/domain/constants"
	"helloworld/internal/domain/entity"
	"helloworld/internal/domain/service"
	"helloworld/internal/infra/pubsub"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// tokenValidator checks a Google-signed ID token for the given audience.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler consumes interaction events pushed by Pub/Sub and writes them to the audit log.
type PushHandler struct {
	verifyPushAuth bool
	validateToken  tokenValidator
	logger         *slog.Logger
	audit          *slog.Logger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google push requests carry an ID token; the local publisher does not sign.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		!params.Config.IsDevelop()

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		validateToken:  idtoken.Validate,
		logger:         params.Logger,
		audit:          params.Logger.With(slog.String("log_type", "audit")),
	}
}

// HandlePush handles incoming Pub/Sub push messages.
// Malformed envelopes are rejected with 400; well-formed messages whose event
// does not describe a valid interaction are acknowledged so Pub/Sub stops redelivering them.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.InteractionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse interaction event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Priority: message attributes > event field > existing context
	ctx, requestID := deliverycontext.Begin(ctx, extractRequestID(ctx, &pushMsg, &event), h.logger)
	reqLogger := deliverycontext.Logger(ctx, h.logger)

	if err := validateEvent(&event); err != nil {
		reqLogger.WarnContext(ctx, "[Worker] Dropping invalid interaction event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	h.audit.LogAttrs(ctx, slog.LevelInfo, "interaction recorded",
		slog.String("request_id", requestID),
		slog.String("event_id", event.EventID),
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.Int64("interaction_id", event.InteractionID),
		slog.Int64("user_id", event.UserID),
		slog.String("channel", event.Channel),
		slog.String("content", event.Content),
		slog.String("occurred_at", event.OccurredAt),
		slog.String("published_at", pushMsg.Message.PublishTime),
	)

	return c.NoContent(http.StatusOK)
}

// validateEvent checks that the event identifies a stored interaction of a known channel.
func validateEvent(event *service.InteractionEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}
	if event.InteractionID <= 0 {
		return errors.Errorf("invalid interaction id: %d", event.InteractionID)
	}
	if event.UserID <= 0 {
		return errors.Errorf("invalid user id: %d", event.UserID)
	}

	switch entity.Channel(event.Channel) {
	case entity.ChannelAPI, entity.ChannelCLI:
		return nil
	default:
		return errors.Errorf("unknown channel: %q", event.Channel)
	}
}

// extractRequestID picks request_id from message attributes, then the event, then ctx.
// "" lets Begin generate one.
func extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, event *service.InteractionEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	// From RequestIDMiddleware via X-Request-Id header
	if requestID := deliverycontext.RequestID(ctx); requestID != "" {
		return requestID
	}

	return ""
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
