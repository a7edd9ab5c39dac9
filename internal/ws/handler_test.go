package ws

import (
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"skillswap/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserIDKey = "user_id"

// serve starts a listening app whose stand-in auth takes the user id from
// the ?uid= query parameter.
func serve(t *testing.T, h *Hub) string {
	t.Helper()

	app := fiber.New()
	identity := func(c fiber.Ctx) error {
		if uid := c.Query("uid"); uid != "" {
			c.Locals(testUserIDKey, uid)
		}
		return c.Next()
	}
	app.Get("/ws/notifications", identity, NewHandler(h, nil, testUserIDKey).HandleNotifications)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "ws://" + ln.Addr().String() + "/ws/notifications"
}

func TestHandler_UpgradesAndStreamsNotifications(t *testing.T) {
	h, ctx := startHub(t)
	url := serve(t, h)

	conn, resp, err := websocket.DefaultDialer.Dial(url+"?uid=bob", nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return h.ClientCount(ctx) == 1 }, 2*time.Second, 10*time.Millisecond)

	h.Notify("bob", user.Notification{Type: user.NotificationTypeMatch, From: "ada", Message: "ada matched with you"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt NotificationEvent
	require.NoError(t, json.Unmarshal(msg, &evt))
	assert.Equal(t, EventNotification, evt.Type)
	assert.Equal(t, "ada", evt.Notification.From)
	assert.Equal(t, user.NotificationTypeMatch, evt.Notification.Type)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return h.ClientCount(ctx) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_RejectsAnonymous(t *testing.T) {
	h, _ := startHub(t)
	url := serve(t, h)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
