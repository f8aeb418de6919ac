// Package backend defines the data-source seam between the client core
// and whichever backend serves it. Exactly one implementation is picked
// at startup from config and injected; nothing downstream branches on
// demo vs live.
package backend

import (
	"context"

	"github.com/miralabs/mira/media"
)

// User is the authenticated account the client acts as.
type User struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	DisplayName string `json:"display_name"`
	IsNew       bool   `json:"is_new"`
}

// SendResult is the backend's answer to a message send. A rejection is
// a value with Accepted false and the reason set, not an error, so the
// caller can roll back the optimistic entry.
type SendResult struct {
	Accepted bool   `json:"accepted"`
	ServerID string `json:"server_id,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// PurchaseResult reports the outcome of an in-app purchase call.
type PurchaseResult struct {
	Completed bool   `json:"completed"`
	Receipt   string `json:"receipt,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Client is the backend contract the client core consumes. Mutating
// operations carry a client-generated idempotency key so a retry never
// duplicates the effect.
type Client interface {
	// CreateOrFetchUser resolves the account for a verified phone
	// number, creating it on first contact.
	CreateOrFetchUser(ctx context.Context, phoneNumber string) (*User, error)

	// SendMessage delivers one chat message. A rejection is returned in
	// the result, not as an error; errors mean the backend was
	// unreachable and the send may be retried with the same key.
	SendMessage(ctx context.Context, conversationID, body string, attachment *media.Attachment, idempotencyKey string) (*SendResult, error)

	// RequestCode asks for a one-time login code for a phone number.
	RequestCode(ctx context.Context, phoneNumber string) error

	// VerifyCode checks a one-time code and returns whether it matched.
	VerifyCode(ctx context.Context, phoneNumber, code string) (bool, error)

	// Purchase runs an in-app purchase for a product.
	Purchase(ctx context.Context, productID, idempotencyKey string) (*PurchaseResult, error)

	// Close releases the client's resources.
	Close() error
}
