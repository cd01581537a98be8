package syncer

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWSServer(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	router := gin.New()
	router.GET("/ws", hub.HandleWS)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubFansOutToEveryClient(t *testing.T) {
	hub, url := newWSServer(t)

	first := dialWS(t, url)
	second := dialWS(t, url)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		2*time.Second, 10*time.Millisecond)

	hub.Send(Message{Type: TypeAssetsUpdated, Timestamp: 42})

	assert.Equal(t, TypeAssetsUpdated, readMessage(t, first).Type)

	msg := readMessage(t, second)
	assert.Equal(t, TypeAssetsUpdated, msg.Type)
	assert.Equal(t, int64(42), msg.Timestamp)
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub, url := newWSServer(t)

	first := dialWS(t, url)
	second := dialWS(t, url)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, first.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	// the surviving view still gets broadcasts
	hub.Send(Message{Type: TypeStockUpdated})
	assert.Equal(t, TypeStockUpdated, readMessage(t, second).Type)
}

func TestHubSendWithNoClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Send(Message{Type: TypeEventLogged})
	assert.Zero(t, hub.ClientCount())
}
