package chat

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/miralabs/mira/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryMessageRoundTrip(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	msg := Message{
		Key:            "k1",
		ConversationID: "conv_1",
		Body:           "hello",
		Attachment:     &media.Attachment{Kind: media.KindPhoto, URI: "file:///media/a.jpg"},
		Status:         StatusPending,
		SentAt:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, h.SaveMessage(ctx, msg))

	msgs, err := h.Conversation(ctx, "conv_1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	got := msgs[0]
	assert.Equal(t, msg.Key, got.Key)
	assert.Equal(t, msg.Body, got.Body)
	assert.Equal(t, StatusPending, got.Status)
	require.NotNil(t, got.Attachment)
	assert.Equal(t, media.KindPhoto, got.Attachment.Kind)
	assert.True(t, msg.SentAt.Equal(got.SentAt))
}

func TestHistorySaveUpsertsLifecycle(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	msg := Message{Key: "k1", ConversationID: "conv_1", Body: "hello", Status: StatusPending, SentAt: time.Now()}
	require.NoError(t, h.SaveMessage(ctx, msg))

	msg.Status = StatusConfirmed
	msg.ServerID = "msg_001"
	require.NoError(t, h.SaveMessage(ctx, msg))

	msgs, err := h.Conversation(ctx, "conv_1")
	require.NoError(t, err)
	require.Len(t, msgs, 1, "upsert must not duplicate the row")
	assert.Equal(t, StatusConfirmed, msgs[0].Status)
	assert.Equal(t, "msg_001", msgs[0].ServerID)
}

func TestHistoryPendingOutboxSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	h, err := OpenHistory(path)
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, h.SaveMessage(ctx, Message{Key: "k1", ConversationID: "conv_1", Body: "old", Status: StatusConfirmed, ServerID: "msg_001", SentAt: base}))
	require.NoError(t, h.SaveMessage(ctx, Message{Key: "k2", ConversationID: "conv_1", Body: "stuck", Status: StatusPending, SentAt: base.Add(time.Minute)}))
	require.NoError(t, h.SaveMessage(ctx, Message{Key: "k3", ConversationID: "conv_2", Body: "also stuck", Status: StatusPending, SentAt: base.Add(2 * time.Minute)}))
	require.NoError(t, h.Close())

	h, err = OpenHistory(path)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	outbox, err := h.PendingOutbox(ctx)
	require.NoError(t, err)
	require.Len(t, outbox, 2)
	assert.Equal(t, "k2", outbox[0].Key)
	assert.Equal(t, "k3", outbox[1].Key)
}

func TestHistoryConversationOrdering(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, h.SaveMessage(ctx, Message{Key: "k2", ConversationID: "conv_1", Body: "second", Status: StatusConfirmed, SentAt: base.Add(time.Second)}))
	require.NoError(t, h.SaveMessage(ctx, Message{Key: "k1", ConversationID: "conv_1", Body: "first", Status: StatusConfirmed, SentAt: base}))

	msgs, err := h.Conversation(ctx, "conv_1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, "second", msgs[1].Body)
}

func TestHistoryDeleteMessage(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.SaveMessage(ctx, Message{Key: "k1", ConversationID: "conv_1", Body: "bye", Status: StatusFailed, SentAt: time.Now()}))
	require.NoError(t, h.DeleteMessage(ctx, "k1"))

	msgs, err := h.Conversation(ctx, "conv_1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestHistoryReportQueue(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	id, err := h.QueueReport(ctx, Report{
		ConversationID: "conv_1",
		ReportedUserID: "user_002",
		Reason:         "spam",
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	pending, err := h.PendingReports(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.Equal(t, "spam", pending[0].Reason)
	assert.False(t, pending[0].Submitted)

	require.NoError(t, h.MarkReportSubmitted(ctx, id))

	pending, err = h.PendingReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
