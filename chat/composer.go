package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/miralabs/mira/backend"
	"github.com/miralabs/mira/errors"
	"github.com/miralabs/mira/logging"
	"github.com/miralabs/mira/media"
	"github.com/sirupsen/logrus"
)

// SendState tracks one submit through its lifecycle. The explicit states
// make the double-submit guard visible: Stage refuses while a send is in
// progress, so a rapid double-tap produces one message, not two.
type SendState int

const (
	SendNotStarted SendState = iota
	SendInProgress
	SendDone
)

// Composer holds the draft for one conversation and runs the send
// handshake against the backend. At most one send is in flight at a
// time; the draft clears the moment a send is staged so the user can
// start typing the next message while delivery runs.
type Composer struct {
	mu             sync.Mutex
	conversationID string
	body           string
	attachment     *media.Attachment
	state          SendState
	client         backend.Client
	log            *logrus.Entry
}

func NewComposer(conversationID string, client backend.Client) *Composer {
	return &Composer{
		conversationID: conversationID,
		client:         client,
		log:            logging.NewLogger("chat"),
	}
}

func (c *Composer) SetBody(body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.body = body
}

func (c *Composer) Body() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body
}

// Attach sets the draft's attachment. The composer carries at most one;
// attaching again replaces the previous attachment.
func (c *Composer) Attach(a media.Attachment) error {
	if !a.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "attachment needs a kind and a uri")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachment = &a
	return nil
}

func (c *Composer) ClearAttachment() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachment = nil
}

func (c *Composer) Attachment() *media.Attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attachment == nil {
		return nil
	}
	a := *c.attachment
	return &a
}

func (c *Composer) State() SendState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSend reports whether the draft has content and no send is running.
func (c *Composer) CanSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != SendInProgress &&
		(strings.TrimSpace(c.body) != "" || c.attachment != nil)
}

// Stage snapshots the draft as a Pending message and marks the send in
// progress. The caller shows the returned message optimistically, then
// calls Deliver with it. A second Stage while one is in flight is
// rejected rather than queued.
func (c *Composer) Stage() (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == SendInProgress {
		return Message{}, errors.New(errors.ErrCodeInvalidInput, "a send is already in progress")
	}
	body := strings.TrimSpace(c.body)
	if body == "" && c.attachment == nil {
		return Message{}, errors.New(errors.ErrCodeInvalidInput, "nothing to send")
	}

	msg := Message{
		Key:            uuid.NewString(),
		ConversationID: c.conversationID,
		Body:           body,
		Attachment:     c.attachment,
		Status:         StatusPending,
		SentAt:         time.Now(),
	}

	c.state = SendInProgress
	c.body = ""
	c.attachment = nil
	return msg, nil
}

// Deliver runs the backend call for a staged message and returns the
// lifecycle event to apply. Backend unreachability and rejection both
// come back as SendFailed; the message stays retriable under its
// original key either way.
func (c *Composer) Deliver(ctx context.Context, msg Message) Event {
	res, err := c.client.SendMessage(ctx, msg.ConversationID, msg.Body, msg.Attachment, msg.Key)

	c.mu.Lock()
	c.state = SendDone
	c.mu.Unlock()

	if err != nil {
		c.log.WithError(err).WithField("key", msg.Key).Warn("Send failed")
		return SendFailed{Key: msg.Key, Reason: "backend unreachable"}
	}
	if !res.Accepted {
		c.log.WithFields(logrus.Fields{"key": msg.Key, "reason": res.Reason}).Warn("Send rejected")
		return SendFailed{Key: msg.Key, Reason: res.Reason}
	}
	return SendConfirmed{Key: msg.Key, ServerID: res.ServerID}
}

// Reset arms the composer for the next send once the previous one has
// finished.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == SendDone {
		c.state = SendNotStarted
	}
}

// Retry re-delivers a Failed message under its original idempotency
// key, so a send that actually landed server-side is not duplicated.
func (c *Composer) Retry(ctx context.Context, msg Message) (Event, error) {
	if msg.Status != StatusFailed {
		return nil, errors.New(errors.ErrCodeInvalidInput, "only failed messages can be retried")
	}
	c.mu.Lock()
	if c.state == SendInProgress {
		c.mu.Unlock()
		return nil, errors.New(errors.ErrCodeInvalidInput, "a send is already in progress")
	}
	c.state = SendInProgress
	c.mu.Unlock()

	return c.Deliver(ctx, msg), nil
}
