package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"pulsecheck/internal/config"
	"pulsecheck/internal/service"
)

func newTestServer(t *testing.T) (*Hub, *service.AuthService, *httptest.Server) {
	t.Helper()
	auth := service.NewAuthService(config.AuthConfig{
		AdminUsername: "admin",
		AdminPassword: "pw",
		JWTSecret:     "ws-secret",
	})
	hub := NewHub(zap.NewNop())
	t.Cleanup(hub.Close)

	srv := httptest.NewServer(http.HandlerFunc(NewHandler(hub, auth, zap.NewNop()).MonitorWS))
	t.Cleanup(srv.Close)
	return hub, auth, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=" + token
}

func TestMonitorWS_ReceivesBroadcast(t *testing.T) {
	hub, auth, srv := newTestServer(t)
	login, err := auth.Login("admin", "pw")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, login.Token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.MonitorCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToMonitors(service.MsgSelectionAudit, map[string]int{"items": 5})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MsgSelectionAudit, msg.Type)
	assert.JSONEq(t, `{"items":5}`, string(msg.Payload))
}

func TestMonitorWS_RejectsBadTokens(t *testing.T) {
	_, auth, srv := newTestServer(t)
	respondent, err := auth.IssueRespondentToken("u1")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing":    "",
		"garbage":    "not-a-jwt",
		"respondent": respondent.Token,
	} {
		t.Run(name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestHub_CloseDisconnectsMonitors(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub(nil)
	conn := &Connection{AdminID: "a", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)
	require.Eventually(t, func() bool { return hub.MonitorCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	select {
	case _, ok := <-conn.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}

	// Broadcasting after close must not block.
	hub.BroadcastToMonitors("noop", nil)
	hub.Close()
}
