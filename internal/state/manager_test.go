package state

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

var (
	_ StateManager = (*Manager)(nil)
	_ StateManager = (*RedisManager)(nil)
)

func TestManagerSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	m := NewManager()
	m.now = func() time.Time { return now }

	s, err := m.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, DefaultSession(now), *s)
	assert.Equal(t, "2024-05-06", s.CurrentDate)

	want := domain.Session{ActiveKidID: "k1", CurrentDate: "2024-05-07", PantryView: domain.PantryViewList}
	require.NoError(t, m.SaveSession(ctx, "abc", want))

	s, err = m.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, want, *s)

	now = now.Add(SessionTTL + time.Minute)
	s, err = m.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, s.ActiveKidID)

	require.NoError(t, m.SaveSession(ctx, "abc", want))
	require.NoError(t, m.ClearSession(ctx, "abc"))
	s, err = m.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, s.ActiveKidID)
}

func TestManagerMarkOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	m := NewManager()
	m.now = func() time.Time { return now }

	first, err := m.MarkOnce(ctx, "expiry:2024-05-06", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := m.MarkOnce(ctx, "expiry:2024-05-06", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	now = now.Add(2 * time.Hour)
	later, err := m.MarkOnce(ctx, "expiry:2024-05-06", time.Hour)
	require.NoError(t, err)
	assert.True(t, later)
}

func TestRedisManager(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	m := NewRedisManagerWithClient(redis.NewClient(&redis.Options{Addr: addr}))
	defer m.Close()

	id := uuid.NewString()
	want := domain.Session{ActiveKidID: "k1", CurrentDate: "2024-05-07", PantryView: domain.PantryViewList}
	require.NoError(t, m.SaveSession(ctx, id, want))

	s, err := m.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want, *s)

	require.NoError(t, m.ClearSession(ctx, id))
	s, err = m.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PantryViewGrid, s.PantryView)

	first, err := m.MarkOnce(ctx, id, time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
	again, err := m.MarkOnce(ctx, id, time.Minute)
	require.NoError(t, err)
	assert.False(t, again)
}
