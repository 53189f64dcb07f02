package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(0)

	_, err := m.Load(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)

	s := domain.NewSession(1, domain.StateCategoryChosen, time.Now())
	s.SelectedBrand = "Acme"
	require.NoError(t, m.Save(ctx, s))

	// Saved sessions are copies.
	s.SelectedBrand = "Globex"
	got, err := m.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.SelectedBrand)
	assert.Equal(t, domain.StateCategoryChosen, got.State)

	require.NoError(t, m.Delete(ctx, 1))
	_, err = m.Load(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Save(ctx, nil), ErrNilSession)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(time.Hour)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, domain.NewSession(7, domain.StateChatting, now)))
	now = now.Add(59 * time.Minute)
	_, err := m.Load(ctx, 7)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = m.Load(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, m.Len())
}

func TestRedisStoreKeyAndPayload(t *testing.T) {
	s := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), time.Hour)
	t.Cleanup(func() { _ = s.Close() })
	assert.Equal(t, "shopbot:session:42", s.key(42))

	in := &domain.Session{UserID: 42, State: domain.StateProductChosen, SelectedBrand: "Acme", SelectedCategory: "Widgets"}
	raw, err := encode(in)
	require.NoError(t, err)
	assert.True(t, in.UpdatedAt.IsZero(), "encode must not touch the caller's session")

	out, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, in.State, out.State)
	assert.Equal(t, in.SelectedBrand, out.SelectedBrand)
	assert.Equal(t, in.SelectedCategory, out.SelectedCategory)
	assert.False(t, out.UpdatedAt.IsZero())

	_, err = decode([]byte("{"))
	assert.Error(t, err)
	_, err = encode(nil)
	assert.True(t, errors.Is(err, ErrNilSession))
}

func TestRedisStoreUnreachable(t *testing.T) {
	s := NewRedisStoreWithClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}), time.Hour)
	t.Cleanup(func() { _ = s.Close() })

	_, err := s.Load(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound), "transport errors must not read as Idle")
}
