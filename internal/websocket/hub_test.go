package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

// connect serves one websocket endpoint that registers every connection as
// userID and dials it.
func connect(t *testing.T, hub *Hub, userID uint) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, userID)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.IsOnline(userID) }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPublish_ReachesAudienceOnly(t *testing.T) {
	hub := startHub(t)

	alice := connect(t, hub, 1)
	bob := connect(t, hub, 2)

	require.NoError(t, hub.Publish([]uint{1}, TypePostCreated, 2, map[string]interface{}{"post_id": 7}))
	require.NoError(t, hub.Publish([]uint{2}, TypeCommentCreated, 1, map[string]interface{}{"post_id": 8}))

	msg := readMessage(t, alice)
	assert.Equal(t, TypePostCreated, msg.Type)
	assert.Equal(t, uint(2), msg.UserID)

	var data struct {
		PostID uint `json:"post_id"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, uint(7), data.PostID)

	// bob only receives the comment event
	msg = readMessage(t, bob)
	assert.Equal(t, TypeCommentCreated, msg.Type)
}

func TestUnregister_OnClose(t *testing.T) {
	hub := startHub(t)

	conn := connect(t, hub, 5)
	assert.Contains(t, hub.GetOnlineUsers(), uint(5))

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return !hub.IsOnline(5) }, 2*time.Second, 10*time.Millisecond)
}

func TestReadPump_RejectsClientMessages(t *testing.T) {
	hub := startHub(t)

	conn := connect(t, hub, 3)
	require.NoError(t, conn.WriteJSON(Message{Type: TypePostCreated}))

	msg := readMessage(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, string(msg.Data), ErrInvalidMessage.Error())
}

func TestPublish_AfterStop(t *testing.T) {
	hub := NewHub()
	hub.Stop()

	err := hub.Publish([]uint{1}, TypePostCreated, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
