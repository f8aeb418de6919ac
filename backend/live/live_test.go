package live

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/miralabs/mira/backend"
	"github.com/miralabs/mira/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers each request frame through handle.
func fakeBackend(t *testing.T, handle func(req frame) frame) *Client {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req frame
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			resp := handle(req)
			resp.Key = req.Key
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, err := Dial(context.Background(), url, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSendMessageAck(t *testing.T) {
	client := fakeBackend(t, func(req frame) frame {
		assert.Equal(t, frameSend, req.Type)
		assert.Equal(t, "conv_1", req.ConversationID)
		return frame{Type: frameAck, ServerID: "msg_001"}
	})

	res, err := client.SendMessage(context.Background(), "conv_1", "hello", nil, "key-1")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "msg_001", res.ServerID)
}

func TestSendMessageReject(t *testing.T) {
	client := fakeBackend(t, func(req frame) frame {
		return frame{Type: frameReject, Reason: "blocked"}
	})

	res, err := client.SendMessage(context.Background(), "conv_1", "hello", nil, "key-1")
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, "blocked", res.Reason)
}

func TestSendCarriesIdempotencyKey(t *testing.T) {
	var seen string
	client := fakeBackend(t, func(req frame) frame {
		seen = req.Key
		return frame{Type: frameAck, ServerID: "msg_001"}
	})

	_, err := client.SendMessage(context.Background(), "conv_1", "hello", nil, "key-42")
	require.NoError(t, err)
	assert.Equal(t, "key-42", seen)
}

func TestCreateOrFetchUser(t *testing.T) {
	client := fakeBackend(t, func(req frame) frame {
		assert.Equal(t, frameUserFetch, req.Type)
		return frame{Type: frameAck, User: &backend.User{
			ID:          "user_001",
			PhoneNumber: req.PhoneNumber,
		}}
	})

	u, err := client.CreateOrFetchUser(context.Background(), "+15550001111")
	require.NoError(t, err)
	assert.Equal(t, "user_001", u.ID)
	assert.Equal(t, "+15550001111", u.PhoneNumber)
}

func TestVerifyCode(t *testing.T) {
	client := fakeBackend(t, func(req frame) frame {
		return frame{Type: frameAck, Verified: req.Code == "123456"}
	})

	ok, err := client.VerifyCode(context.Background(), "+15550001111", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.VerifyCode(context.Background(), "+15550001111", "000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoundTripTimeout(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// Read but never answer.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, err := Dial(context.Background(), url, 100*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	_, err = client.SendMessage(context.Background(), "conv_1", "hello", nil, "key-1")
	assert.Error(t, err)
}

func TestSendAfterConnectionDrops(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Drop every connection as soon as it is established.
		conn.Close()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, err := Dial(context.Background(), url, 200*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// Every send races the read loop nulling the dead connection, both
	// on the initial write and on the redial path. Each attempt must
	// surface a backend-unavailable error rather than panic on a nil
	// connection.
	for i := 0; i < 20; i++ {
		_, err := client.SendMessage(context.Background(), "conv_1", "hello", nil, fmt.Sprintf("key-%d", i))
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeBackendUnavailable, errors.GetCode(err))
	}
}

func TestDialFailure(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:1/ws", time.Second)
	assert.Error(t, err)
}
