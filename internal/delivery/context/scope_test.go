package context

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBegin_KeepsGivenID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx, id := Begin(context.Background(), "req-42", base)
	assert.Equal(t, "req-42", id)
	assert.Equal(t, "req-42", RequestID(ctx))

	Logger(ctx, nil).Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}

func TestBegin_GeneratesID(t *testing.T) {
	base := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx, id := Begin(context.Background(), "", base)
	assert.Len(t, id, 36)
	assert.Equal(t, id, RequestID(ctx))
}

func TestLogger_FallsBackOutsideRequest(t *testing.T) {
	fallback := slog.Default()

	assert.Same(t, fallback, Logger(context.Background(), fallback))
	assert.Empty(t, RequestID(context.Background()))
}
