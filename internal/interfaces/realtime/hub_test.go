package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
	"github.com/riskibarqy/tournament-tracker/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, origin string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_BroadcastsReadModelVersion(t *testing.T) {
	hub := NewHub(HubConfig{}, logging.NewNop())
	t.Cleanup(hub.Close)

	conn := dialHub(t, hub, "")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.OnReadModel(usecase.ReadModel{Version: 7})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type    string `json:"type"`
		Payload struct {
			Version uint64 `json:"version"`
		} `json:"payload"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &got))
	assert.Equal(t, MessageReadModelUpdated, got.Type)
	assert.Equal(t, uint64(7), got.Payload.Version)
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	hub := NewHub(HubConfig{AllowedOrigins: []string{"https://scores.example.com"}}, logging.NewNop())
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	header := http.Header{"Origin": []string{"https://elsewhere.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Clients())
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(HubConfig{AllowedOrigins: []string{"*"}}, logging.NewNop())
	conn := dialHub(t, hub, "https://anywhere.example.com")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Zero(t, hub.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{" https://scores.example.com ", ""})

	req := httptest.NewRequest(http.MethodGet, "/v1/live", nil)
	assert.True(t, check(req), "same-origin requests carry no Origin header")

	req.Header.Set("Origin", "https://scores.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://other.example.com")
	assert.False(t, check(req))
}
