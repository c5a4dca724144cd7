package time

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealTimeProvider_Now(t *testing.T) {
	p := NewRealTimeProvider()
	now := p.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}

func TestRealTimeProvider_WithTimeout(t *testing.T) {
	p := NewRealTimeProvider()

	ctx, cancel := p.WithTimeout(context.Background(), 10*core.Millisecond)
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)

	ctx, cancel = p.WithTimeout(context.Background(), 0)
	_, hasDeadline = ctx.Deadline()
	assert.False(t, hasDeadline)
	cancel()
}

func TestRealTimeProvider_ParseDuration(t *testing.T) {
	p := NewRealTimeProvider()

	d, err := p.ParseDuration("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*core.Second, d)

	_, err = p.ParseDuration("soon")
	assert.Error(t, err)
}
