package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindow_AllowsUpToLimit(t *testing.T) {
	fw := NewFixedWindow(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := fw.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be admitted", i+1)
	}

	ok, err := fw.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	fw := NewFixedWindow(1, time.Minute)
	ctx := context.Background()

	ok, _ := fw.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = fw.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = fw.Allow(ctx, "b")
	assert.True(t, ok)
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	fw := NewFixedWindow(1, time.Minute)
	ctx := context.Background()

	now := time.Now()
	fw.now = func() time.Time { return now }

	ok, _ := fw.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = fw.Allow(ctx, "a")
	assert.False(t, ok)

	fw.now = func() time.Time { return now.Add(61 * time.Second) }
	ok, _ = fw.Allow(ctx, "a")
	assert.True(t, ok)
}

func TestNewAllowAll(t *testing.T) {
	l := NewAllowAll()
	for i := 0; i < 100; i++ {
		ok, err := l.Allow(context.Background(), "whoever")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
