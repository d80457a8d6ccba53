package handlers

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	ws "github.com/thereayou/socialnet/internal/websocket"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestNotifierSend_LogsPublishFailure(t *testing.T) {
	buf := captureLog(t)

	hub := ws.NewHub()
	hub.Stop()

	notifier{hub: hub}.send([]uint{1}, ws.TypeFriendAdded, 2, map[string]string{"username": "bob"})

	assert.Contains(t, buf.String(), "publish live event")
	assert.Contains(t, buf.String(), string(ws.TypeFriendAdded))
}

func TestNotifierSend_NoHub(t *testing.T) {
	buf := captureLog(t)

	notifier{}.send([]uint{1}, ws.TypeFriendAdded, 2, nil)

	assert.Empty(t, buf.String())
}
