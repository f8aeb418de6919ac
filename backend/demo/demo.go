// Package demo is the in-memory backend used by tests and demo mode.
// Results are deterministic: the same inputs always produce the same
// outputs, and idempotency keys are honored the way the live backend
// honors them.
package demo

import (
	"context"
	"fmt"
	"sync"

	"github.com/miralabs/mira/backend"
	"github.com/miralabs/mira/media"
)

// demoCode is the one-time code the demo backend always accepts.
const demoCode = "000000"

// SentMessage records one accepted send, for assertions.
type SentMessage struct {
	ConversationID string
	Body           string
	Attachment     *media.Attachment
	IdempotencyKey string
}

// Client implements backend.Client against in-memory fixtures.
type Client struct {
	mu       sync.Mutex
	users    map[string]*backend.User
	sends    map[string]*backend.SendResult
	sent     []SentMessage
	nextFail string
	nextSeq  int
}

var _ backend.Client = (*Client)(nil)

func New() *Client {
	return &Client{
		users: make(map[string]*backend.User),
		sends: make(map[string]*backend.SendResult),
	}
}

func (c *Client) CreateOrFetchUser(ctx context.Context, phoneNumber string) (*backend.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if u, ok := c.users[phoneNumber]; ok {
		fetched := *u
		fetched.IsNew = false
		return &fetched, nil
	}
	u := &backend.User{
		ID:          fmt.Sprintf("user_%03d", len(c.users)+1),
		PhoneNumber: phoneNumber,
		DisplayName: "Demo User",
		IsNew:       true,
	}
	c.users[phoneNumber] = u
	created := *u
	return &created, nil
}

func (c *Client) SendMessage(ctx context.Context, conversationID, body string, attachment *media.Attachment, idempotencyKey string) (*backend.SendResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A retried key replays the original outcome without a second send.
	if res, ok := c.sends[idempotencyKey]; ok {
		replay := *res
		return &replay, nil
	}

	var res *backend.SendResult
	if c.nextFail != "" {
		res = &backend.SendResult{Reason: c.nextFail}
		c.nextFail = ""
	} else {
		c.nextSeq++
		res = &backend.SendResult{Accepted: true, ServerID: fmt.Sprintf("msg_%03d", c.nextSeq)}
		c.sent = append(c.sent, SentMessage{
			ConversationID: conversationID,
			Body:           body,
			Attachment:     attachment,
			IdempotencyKey: idempotencyKey,
		})
	}
	c.sends[idempotencyKey] = res
	replay := *res
	return &replay, nil
}

func (c *Client) RequestCode(ctx context.Context, phoneNumber string) error {
	return nil
}

func (c *Client) VerifyCode(ctx context.Context, phoneNumber, code string) (bool, error) {
	return code == demoCode, nil
}

func (c *Client) Purchase(ctx context.Context, productID, idempotencyKey string) (*backend.PurchaseResult, error) {
	return &backend.PurchaseResult{
		Completed: true,
		Receipt:   "demo-receipt-" + idempotencyKey,
	}, nil
}

func (c *Client) Close() error {
	return nil
}

// FailNextSend makes the next SendMessage with a fresh idempotency key
// come back rejected with reason.
func (c *Client) FailNextSend(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextFail = reason
}

// Sent returns the accepted sends in order.
func (c *Client) Sent() []SentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SentMessage, len(c.sent))
	copy(out, c.sent)
	return out
}
