package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown", "k", "v")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestContextRoundTrip(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := NewWithWriter(&bytes.Buffer{}, "debug")
	ctx := IntoContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Equal(t, ctx, WithRequestID(ctx, ""))
	assert.Equal(t, "rid-1", RequestIDFromContext(WithRequestID(ctx, "rid-1")))
}
