package chat

// Event is a message-lifecycle transition applied to a thread.
type Event interface {
	key() string
}

// SendStarted adds an optimistic Pending message to the thread.
type SendStarted struct {
	Message Message
}

// SendConfirmed moves a Pending message to Confirmed and records the
// server id.
type SendConfirmed struct {
	Key      string
	ServerID string
}

// SendFailed rolls a Pending message back to Failed with the reason.
type SendFailed struct {
	Key    string
	Reason string
}

// Dismissed removes a Failed message from the thread after the user
// acknowledges the failure notice.
type Dismissed struct {
	Key string
}

func (e SendStarted) key() string   { return e.Message.Key }
func (e SendConfirmed) key() string { return e.Key }
func (e SendFailed) key() string    { return e.Key }
func (e Dismissed) key() string     { return e.Key }

// Thread is an ordered message list. Apply never mutates its receiver,
// so tests can assert full lifecycles against plain values.
type Thread struct {
	Messages []Message
}

// Find returns the message under key, if present.
func (t Thread) Find(key string) (Message, bool) {
	for _, m := range t.Messages {
		if m.Key == key {
			return m, true
		}
	}
	return Message{}, false
}

// Pending returns the messages still awaiting backend confirmation.
func (t Thread) Pending() []Message {
	var out []Message
	for _, m := range t.Messages {
		if m.Status == StatusPending {
			out = append(out, m)
		}
	}
	return out
}

// Apply returns the thread after one lifecycle event. Events for keys
// already past the transition are no-ops, so a duplicate confirmation
// or a replayed failure never corrupts the thread:
//
//   - SendStarted with an existing key is dropped,
//   - SendConfirmed and SendFailed never move a Confirmed message
//     (a retry of a Failed one may still resolve it),
//   - Dismissed only removes Failed messages.
func (t Thread) Apply(e Event) Thread {
	switch ev := e.(type) {
	case SendStarted:
		if _, exists := t.Find(ev.Message.Key); exists {
			return t
		}
		msg := ev.Message
		msg.Status = StatusPending
		next := t.clone()
		next.Messages = append(next.Messages, msg)
		return next

	case SendConfirmed:
		return t.transition(ev.Key, func(m Message) Message {
			m.Status = StatusConfirmed
			m.ServerID = ev.ServerID
			m.FailReason = ""
			return m
		})

	case SendFailed:
		return t.transition(ev.Key, func(m Message) Message {
			m.Status = StatusFailed
			m.FailReason = ev.Reason
			return m
		})

	case Dismissed:
		m, ok := t.Find(ev.Key)
		if !ok || m.Status != StatusFailed {
			return t
		}
		next := Thread{Messages: make([]Message, 0, len(t.Messages)-1)}
		for _, cur := range t.Messages {
			if cur.Key != ev.Key {
				next.Messages = append(next.Messages, cur)
			}
		}
		return next
	}
	return t
}

// transition rewrites the unresolved message under key. Confirmed is
// terminal; Pending and Failed (awaiting retry) may still move.
func (t Thread) transition(key string, fn func(Message) Message) Thread {
	m, ok := t.Find(key)
	if !ok || m.Status == StatusConfirmed {
		return t
	}
	next := t.clone()
	for i, cur := range next.Messages {
		if cur.Key == key {
			next.Messages[i] = fn(cur)
			break
		}
	}
	return next
}

func (t Thread) clone() Thread {
	msgs := make([]Message, len(t.Messages))
	copy(msgs, t.Messages)
	return Thread{Messages: msgs}
}
