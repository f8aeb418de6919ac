package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrFetchUser(t *testing.T) {
	c := New()
	ctx := context.Background()

	u, err := c.CreateOrFetchUser(ctx, "+15550001111")
	require.NoError(t, err)
	assert.True(t, u.IsNew)
	assert.Equal(t, "user_001", u.ID)

	again, err := c.CreateOrFetchUser(ctx, "+15550001111")
	require.NoError(t, err)
	assert.False(t, again.IsNew)
	assert.Equal(t, u.ID, again.ID)

	other, err := c.CreateOrFetchUser(ctx, "+15550002222")
	require.NoError(t, err)
	assert.Equal(t, "user_002", other.ID)
}

func TestSendMessageIdempotency(t *testing.T) {
	c := New()
	ctx := context.Background()

	first, err := c.SendMessage(ctx, "conv_1", "hello", nil, "key-1")
	require.NoError(t, err)
	assert.True(t, first.Accepted)

	// Same key replays the outcome without sending again.
	replay, err := c.SendMessage(ctx, "conv_1", "hello", nil, "key-1")
	require.NoError(t, err)
	assert.Equal(t, first.ServerID, replay.ServerID)
	assert.Len(t, c.Sent(), 1)

	// A fresh key is a fresh send.
	second, err := c.SendMessage(ctx, "conv_1", "hello again", nil, "key-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ServerID, second.ServerID)
	assert.Len(t, c.Sent(), 2)
}

func TestFailNextSend(t *testing.T) {
	c := New()
	ctx := context.Background()
	c.FailNextSend("blocked")

	res, err := c.SendMessage(ctx, "conv_1", "hello", nil, "key-1")
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, "blocked", res.Reason)
	assert.Empty(t, c.Sent())

	// The failure is consumed; the rejection replays only for its key.
	res2, err := c.SendMessage(ctx, "conv_1", "hello", nil, "key-2")
	require.NoError(t, err)
	assert.True(t, res2.Accepted)

	replay, err := c.SendMessage(ctx, "conv_1", "hello", nil, "key-1")
	require.NoError(t, err)
	assert.False(t, replay.Accepted)
}

func TestVerifyCode(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.RequestCode(ctx, "+15550001111"))

	ok, err := c.VerifyCode(ctx, "+15550001111", "000000")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.VerifyCode(ctx, "+15550001111", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPurchase(t *testing.T) {
	c := New()

	res, err := c.Purchase(context.Background(), "mira_plus_monthly", "key-1")
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.NotEmpty(t, res.Receipt)
}
