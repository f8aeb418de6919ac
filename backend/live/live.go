// Package live is the websocket backend client. It speaks a small JSON
// envelope: every request frame carries a correlation key, and the
// server answers with a frame carrying the same key. Mutating requests
// reuse the idempotency key as the correlation key, so a retry after a
// dropped connection replays as the same operation server-side.
package live

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/miralabs/mira/backend"
	"github.com/miralabs/mira/errors"
	"github.com/miralabs/mira/logging"
	"github.com/miralabs/mira/media"
	"github.com/sirupsen/logrus"
)

// frame is the wire envelope in both directions.
type frame struct {
	Type string `json:"type"`
	Key  string `json:"key"`

	// Request fields
	PhoneNumber    string            `json:"phone_number,omitempty"`
	Code           string            `json:"code,omitempty"`
	ConversationID string            `json:"conversation_id,omitempty"`
	Body           string            `json:"body,omitempty"`
	Attachment     *media.Attachment `json:"attachment,omitempty"`
	ProductID      string            `json:"product_id,omitempty"`

	// Response fields
	User     *backend.User           `json:"user,omitempty"`
	ServerID string                  `json:"server_id,omitempty"`
	Verified bool                    `json:"verified,omitempty"`
	Purchase *backend.PurchaseResult `json:"purchase,omitempty"`
	Reason   string                  `json:"reason,omitempty"`
}

// Request frame types.
const (
	frameUserFetch   = "user.fetch"
	frameSend        = "message.send"
	frameCodeRequest = "code.request"
	frameCodeVerify  = "code.verify"
	framePurchase    = "purchase"
)

// Response frame types.
const (
	frameAck    = "ack"
	frameReject = "reject"
	frameError  = "error"
)

// Client implements backend.Client over a websocket connection.
type Client struct {
	url     string
	timeout time.Duration
	log     *logrus.Entry

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]chan frame
	closed  bool
}

var _ backend.Client = (*Client)(nil)

// Dial connects to the backend at url. timeout bounds each round trip
// when the caller's context carries no deadline of its own.
func Dial(ctx context.Context, url string, timeout time.Duration) (*Client, error) {
	c := &Client{
		url:     url,
		timeout: timeout,
		log:     logging.NewLogger("backend-live"),
		pending: make(map[string]chan frame),
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return errors.BackendUnavailable(c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(conn)
	c.log.WithField("url", c.url).Debug("Connected to backend")
	return nil
}

// readLoop dispatches response frames to their waiting callers. When
// the connection drops, every caller still waiting gets an unavailable
// error and the next request redials.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			waiters := c.pending
			c.pending = make(map[string]chan frame)
			closed := c.closed
			c.mu.Unlock()

			for _, ch := range waiters {
				close(ch)
			}
			if !closed {
				c.log.WithError(err).Warn("Backend connection lost")
			}
			return
		}

		c.mu.Lock()
		ch, ok := c.pending[f.Key]
		if ok {
			delete(c.pending, f.Key)
		}
		c.mu.Unlock()

		if !ok {
			c.log.WithFields(logrus.Fields{"type": f.Type, "key": f.Key}).Debug("Uncorrelated frame dropped")
			continue
		}
		ch <- f
		close(ch)
	}
}

// roundTrip writes a request frame and waits for the frame answering
// its key.
func (c *Client) roundTrip(ctx context.Context, req frame) (frame, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return frame{}, errors.New(errors.ErrCodeBackendUnavailable, "client closed")
	}
	if c.conn == nil {
		c.mu.Unlock()
		if err := c.connect(ctx); err != nil {
			return frame{}, err
		}
		c.mu.Lock()
	}
	conn := c.conn
	if conn == nil {
		// The fresh connection can drop between connect and re-lock.
		c.mu.Unlock()
		return frame{}, errors.New(errors.ErrCodeBackendUnavailable, "connection lost before send").
			WithDetail("type", req.Type)
	}
	ch := make(chan frame, 1)
	c.pending[req.Key] = ch
	err := conn.WriteJSON(req)
	if err != nil {
		delete(c.pending, req.Key)
	}
	c.mu.Unlock()

	if err != nil {
		return frame{}, errors.BackendUnavailable(c.url, err)
	}

	select {
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, req.Key)
		c.mu.Unlock()
		return frame{}, errors.Wrap(ctx.Err(), errors.ErrCodeBackendUnavailable, "backend request timed out").
			WithDetail("type", req.Type)
	case resp, ok := <-ch:
		if !ok {
			return frame{}, errors.New(errors.ErrCodeBackendUnavailable, "connection lost awaiting response").
				WithDetail("type", req.Type)
		}
		return resp, nil
	}
}

func (c *Client) CreateOrFetchUser(ctx context.Context, phoneNumber string) (*backend.User, error) {
	resp, err := c.roundTrip(ctx, frame{
		Type:        frameUserFetch,
		Key:         uuid.NewString(),
		PhoneNumber: phoneNumber,
	})
	if err != nil {
		return nil, err
	}
	if resp.Type == frameError || resp.User == nil {
		return nil, errors.New(errors.ErrCodeBackendUnavailable, "user fetch failed").
			WithDetail("reason", resp.Reason)
	}
	return resp.User, nil
}

func (c *Client) SendMessage(ctx context.Context, conversationID, body string, attachment *media.Attachment, idempotencyKey string) (*backend.SendResult, error) {
	resp, err := c.roundTrip(ctx, frame{
		Type:           frameSend,
		Key:            idempotencyKey,
		ConversationID: conversationID,
		Body:           body,
		Attachment:     attachment,
	})
	if err != nil {
		return nil, err
	}
	switch resp.Type {
	case frameAck:
		return &backend.SendResult{Accepted: true, ServerID: resp.ServerID}, nil
	case frameReject:
		return &backend.SendResult{Reason: resp.Reason}, nil
	default:
		return nil, errors.New(errors.ErrCodeBackendUnavailable, "unexpected send response").
			WithDetail("type", resp.Type)
	}
}

func (c *Client) RequestCode(ctx context.Context, phoneNumber string) error {
	resp, err := c.roundTrip(ctx, frame{
		Type:        frameCodeRequest,
		Key:         uuid.NewString(),
		PhoneNumber: phoneNumber,
	})
	if err != nil {
		return err
	}
	if resp.Type != frameAck {
		return errors.New(errors.ErrCodeBackendUnavailable, "code request failed").
			WithDetail("reason", resp.Reason)
	}
	return nil
}

func (c *Client) VerifyCode(ctx context.Context, phoneNumber, code string) (bool, error) {
	resp, err := c.roundTrip(ctx, frame{
		Type:        frameCodeVerify,
		Key:         uuid.NewString(),
		PhoneNumber: phoneNumber,
		Code:        code,
	})
	if err != nil {
		return false, err
	}
	return resp.Verified, nil
}

func (c *Client) Purchase(ctx context.Context, productID, idempotencyKey string) (*backend.PurchaseResult, error) {
	resp, err := c.roundTrip(ctx, frame{
		Type:      framePurchase,
		Key:       idempotencyKey,
		ProductID: productID,
	})
	if err != nil {
		return nil, err
	}
	if resp.Purchase == nil {
		return nil, errors.PurchaseFailed(productID,
			errors.New(errors.ErrCodeBackendUnavailable, "empty purchase response"))
	}
	return resp.Purchase, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return conn.Close()
}
