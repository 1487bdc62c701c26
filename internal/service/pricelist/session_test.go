package pricelist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	store := NewSessionStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	store.Put(Session{ID: "a", CreatedAt: now})
	store.Put(Session{ID: "b", CreatedAt: now.Add(-time.Hour)})

	_, ok := store.Get("a")
	assert.True(t, ok)
	_, ok = store.Get("b")
	assert.False(t, ok, "expired sessions read as missing")

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	store.Delete("a")
	_, ok = store.Get("a")
	assert.False(t, ok)
}

func TestSessionStoreTake(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	store := NewSessionStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	store.Put(Session{ID: "a", CreatedAt: now})
	store.Put(Session{ID: "old", CreatedAt: now.Add(-time.Hour)})

	session, ok := store.Take("a")
	assert.True(t, ok)
	assert.Equal(t, "a", session.ID)
	_, ok = store.Take("a")
	assert.False(t, ok, "a session can only be taken once")

	_, ok = store.Take("old")
	assert.False(t, ok)
	assert.Zero(t, store.Len(), "expired sessions are dropped when taken")
}
