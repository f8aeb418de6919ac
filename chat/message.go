// Package chat implements the composer and the optimistic message
// lifecycle. A send appears in the thread immediately as Pending under a
// client-generated idempotency key; the backend's answer moves it to
// Confirmed or Failed, never leaving a success state on screen for a
// failed action.
package chat

import (
	"time"

	"github.com/miralabs/mira/media"
)

// Status is a message's delivery state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Message is one chat message as the thread displays it.
type Message struct {
	// Key is the client-generated idempotency key. It identifies the
	// message across its whole lifecycle; the server id arrives only on
	// confirmation.
	Key            string            `json:"key"`
	ServerID       string            `json:"server_id,omitempty"`
	ConversationID string            `json:"conversation_id"`
	Body           string            `json:"body"`
	Attachment     *media.Attachment `json:"attachment,omitempty"`
	Status         Status            `json:"status"`
	FailReason     string            `json:"fail_reason,omitempty"`
	SentAt         time.Time         `json:"sent_at"`
}

// Report is a locally queued user report awaiting submission.
type Report struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	ReportedUserID string    `json:"reported_user_id"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
	Submitted      bool      `json:"submitted"`
}
