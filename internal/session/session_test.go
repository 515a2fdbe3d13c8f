package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tazkara/internal/models"
)

func TestEstablishAndCurrent(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()

	user := models.User{ID: 5, Name: "Aidar", Phone: "+77001234567", Token: "tok-1"}
	require.NoError(t, m.Establish(ctx, user))

	got, ok := m.Current(ctx, "tok-1")
	require.True(t, ok)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, "Aidar", got.Name)
	assert.Equal(t, "tok-1", got.Token)
}

func TestAnonymousUserIsNotStored(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, m.Establish(ctx, models.User{ID: 5, Name: "NoToken"}))

	_, ok := m.Current(ctx, "")
	assert.False(t, ok)
}

func TestCurrentDiscardsCorruptRecords(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "bad-json", []byte("{not json")))
	_, ok := m.Current(ctx, "bad-json")
	assert.False(t, ok)
	_, err := store.Load(ctx, "bad-json")
	assert.Error(t, err)

	require.NoError(t, store.Save(ctx, "bad-schema", []byte(`{"id": 0, "name": ""}`)))
	_, ok = m.Current(ctx, "bad-schema")
	assert.False(t, ok)
	_, err = store.Load(ctx, "bad-schema")
	assert.Error(t, err)
}

func TestClearEndsSession(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, m.Establish(ctx, models.User{ID: 1, Name: "A", Token: "tok"}))
	m.Clear(ctx, "tok")

	_, ok := m.Current(ctx, "tok")
	assert.False(t, ok)

	// Clearing an unknown token is fine.
	m.Clear(ctx, "never-existed")
	m.Clear(ctx, "")
}

func TestSetBalanceClearsPending(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, m.Establish(ctx, models.User{ID: 1, Name: "A", Token: "tok"}))

	user, ok := m.SetBalance(ctx, "tok", 1000)
	require.True(t, ok)
	assert.Equal(t, 1000.0, user.WalletBalance)
	assert.True(t, user.BalanceKnown)
	assert.False(t, user.BalancePending)

	user, ok = m.ApplyDebit(ctx, "tok", 250)
	require.True(t, ok)
	assert.Equal(t, 750.0, user.WalletBalance)
	assert.True(t, user.BalancePending)

	user, ok = m.SetBalance(ctx, "tok", 700)
	require.True(t, ok)
	assert.Equal(t, 700.0, user.WalletBalance)
	assert.False(t, user.BalancePending)
}

func TestApplyDebitRequiresKnownBalance(t *testing.T) {
	m := NewManager(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, m.Establish(ctx, models.User{ID: 1, Name: "A", Token: "tok"}))

	user, ok := m.ApplyDebit(ctx, "tok", 250)
	require.True(t, ok)
	assert.False(t, user.BalanceKnown)
	assert.False(t, user.BalancePending)
	assert.Zero(t, user.WalletBalance)
}
