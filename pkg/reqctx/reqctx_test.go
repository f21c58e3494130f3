package reqctx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMetaRoundTrip(t *testing.T) {
	meta := &RequestMeta{
		RequestID:   "abc-123",
		ClientIP:    "10.0.0.1",
		UserAgent:   "test-agent",
		RequestedAt: time.Now(),
	}

	ctx := WithRequestMeta(context.Background(), meta)

	got, ok := RequestMetaFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, meta, got)
	assert.Equal(t, "abc-123", RequestIDFromContext(ctx))
}

func TestRequestMetaMissing(t *testing.T) {
	_, ok := RequestMetaFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
