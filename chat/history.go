package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/miralabs/mira/errors"
	"github.com/miralabs/mira/media"

	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS messages (
	key             TEXT PRIMARY KEY,
	server_id       TEXT NOT NULL DEFAULT '',
	conversation_id TEXT NOT NULL,
	body            TEXT NOT NULL,
	attachment      TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	fail_reason     TEXT NOT NULL DEFAULT '',
	sent_at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, sent_at);
CREATE INDEX IF NOT EXISTS idx_messages_status ON messages(status);

CREATE TABLE IF NOT EXISTS reports (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	conversation_id  TEXT NOT NULL,
	reported_user_id TEXT NOT NULL,
	reason           TEXT NOT NULL,
	created_at       INTEGER NOT NULL,
	submitted        INTEGER NOT NULL DEFAULT 0
);
`

// History is the local message store. Messages persist through their
// whole lifecycle, so pending sends survive a restart and can be
// retried, and user reports queue locally until submission.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.HistoryOpen(path, err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(10000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.HistoryOpen(path, err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, errors.HistoryOpen(path, err)
	}
	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

// SaveMessage upserts a message under its idempotency key. Called on
// every lifecycle transition, so the stored row always matches the
// thread.
func (h *History) SaveMessage(ctx context.Context, m Message) error {
	attachment := ""
	if m.Attachment != nil {
		data, err := json.Marshal(m.Attachment)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to encode attachment")
		}
		attachment = string(data)
	}

	_, err := h.db.ExecContext(ctx, `
		INSERT INTO messages (key, server_id, conversation_id, body, attachment, status, fail_reason, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			server_id = excluded.server_id,
			status = excluded.status,
			fail_reason = excluded.fail_reason`,
		m.Key, m.ServerID, m.ConversationID, m.Body, attachment, string(m.Status), m.FailReason, m.SentAt.UnixMilli())
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to save message").
			WithDetail("key", m.Key)
	}
	return nil
}

// Conversation returns a conversation's messages in send order.
func (h *History) Conversation(ctx context.Context, conversationID string) ([]Message, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT key, server_id, conversation_id, body, attachment, status, fail_reason, sent_at
		FROM messages WHERE conversation_id = ? ORDER BY sent_at, key`,
		conversationID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to load conversation").
			WithDetail("conversation_id", conversationID)
	}
	defer rows.Close()
	return scanMessages(rows)
}

// PendingOutbox returns every message still in Pending, oldest first.
// Called at startup to resume sends interrupted by a previous exit.
func (h *History) PendingOutbox(ctx context.Context) ([]Message, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT key, server_id, conversation_id, body, attachment, status, fail_reason, sent_at
		FROM messages WHERE status = ? ORDER BY sent_at, key`,
		string(StatusPending))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to load outbox")
	}
	defer rows.Close()
	return scanMessages(rows)
}

// DeleteMessage removes a message, mirroring a Dismissed event.
func (h *History) DeleteMessage(ctx context.Context, key string) error {
	_, err := h.db.ExecContext(ctx, `DELETE FROM messages WHERE key = ?`, key)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to delete message").
			WithDetail("key", key)
	}
	return nil
}

// QueueReport stores a user report locally until it can be submitted.
func (h *History) QueueReport(ctx context.Context, r Report) (int64, error) {
	res, err := h.db.ExecContext(ctx, `
		INSERT INTO reports (conversation_id, reported_user_id, reason, created_at)
		VALUES (?, ?, ?, ?)`,
		r.ConversationID, r.ReportedUserID, r.Reason, r.CreatedAt.UnixMilli())
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to queue report")
	}
	return res.LastInsertId()
}

// PendingReports returns reports not yet submitted, oldest first.
func (h *History) PendingReports(ctx context.Context) ([]Report, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, conversation_id, reported_user_id, reason, created_at, submitted
		FROM reports WHERE submitted = 0 ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to load reports")
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var r Report
		var createdAt int64
		var submitted int
		if err := rows.Scan(&r.ID, &r.ConversationID, &r.ReportedUserID, &r.Reason, &createdAt, &submitted); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to scan report")
		}
		r.CreatedAt = time.UnixMilli(createdAt)
		r.Submitted = submitted != 0
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// MarkReportSubmitted flags a queued report as delivered.
func (h *History) MarkReportSubmitted(ctx context.Context, id int64) error {
	_, err := h.db.ExecContext(ctx, `UPDATE reports SET submitted = 1 WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to mark report submitted").
			WithDetail("id", id)
	}
	return nil
}

func scanMessages(rows *sql.Rows) ([]Message, error) {
	var msgs []Message
	for rows.Next() {
		var m Message
		var attachment, status string
		var sentAt int64
		if err := rows.Scan(&m.Key, &m.ServerID, &m.ConversationID, &m.Body, &attachment, &status, &m.FailReason, &sentAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to scan message")
		}
		m.Status = Status(status)
		m.SentAt = time.UnixMilli(sentAt)
		if attachment != "" {
			var a media.Attachment
			if err := json.Unmarshal([]byte(attachment), &a); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeHistoryQuery, "failed to decode attachment").
					WithDetail("key", m.Key)
			}
			m.Attachment = &a
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
