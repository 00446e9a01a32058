package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, hub *Hub) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", hub.ServeWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestBroadcastReachesKidAndAllSubscribers(t *testing.T) {
	hub := NewHub()
	url := startServer(t, hub)

	mia := dial(t, url+"?kid=k1")
	leo := dial(t, url+"?kid=k2")
	all := dial(t, url)

	require.Eventually(t, func() bool { return hub.Count() == 3 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast("lunchbox.updated", "k1", map[string]string{"id": "lb1"})

	ev := readEvent(t, mia)
	assert.Equal(t, "lunchbox.updated", ev.Type)
	assert.Equal(t, "k1", ev.KidID)

	ev = readEvent(t, all)
	assert.Equal(t, "k1", ev.KidID)

	require.NoError(t, leo.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := leo.ReadMessage()
	assert.Error(t, err)
}

func TestClientIsUnregisteredOnClose(t *testing.T) {
	hub := NewHub()
	url := startServer(t, hub)

	conn := dial(t, url+"?kid=k1")
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no origin header", []string{"http://localhost:5173"}, "", true},
		{"listed origin", []string{"http://localhost:5173"}, "http://localhost:5173", true},
		{"listed origin with trailing slash", []string{"http://localhost:5173/"}, "http://LOCALHOST:5173", true},
		{"foreign origin", []string{"http://localhost:5173"}, "https://evil.example", false},
		{"wildcard", []string{"*"}, "https://evil.example", true},
		{"nothing configured", nil, "http://localhost:5173", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, NewHub(tt.allowed...).checkOrigin(req))
		})
	}
}
