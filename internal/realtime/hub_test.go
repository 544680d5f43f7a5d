package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zap.NewNop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/issues", hub.ServeWS)
	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/issues"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastsToAllClients(t *testing.T) {
	hub, srv := startHub(t)

	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	issueID := uuid.New()
	hub.Publish(Event{Type: EventIssueStatusChanged, IssueID: issueID, Status: "resolved"})

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		assert.Equal(t, EventIssueStatusChanged, evt.Type)
		assert.Equal(t, issueID, evt.IssueID)
		assert.Equal(t, "resolved", evt.Status)
		assert.False(t, evt.Timestamp.IsZero())
	}
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, srv := startHub(t)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// a client whose buffer is never drained
	slow := &client{send: make(chan []byte, 1)}
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	hub.Publish(Event{Type: EventIssueCreated, IssueID: uuid.New()})
	hub.Publish(Event{Type: EventIssueCreated, IssueID: uuid.New()})

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, time.Millisecond)

	// the first event was delivered before the channel was closed
	msg, ok := <-slow.send
	assert.True(t, ok)
	assert.Contains(t, string(msg), string(EventIssueCreated))
	_, ok = <-slow.send
	assert.False(t, ok)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)

	done := make(chan struct{})
	go func() {
		// Run is not started, so the backlog fills up
		for i := 0; i < 1000; i++ {
			hub.Publish(Event{Type: EventIssueUpvoted, IssueID: uuid.New()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked")
	}

	var nilHub *Hub
	assert.NotPanics(t, func() { nilHub.Publish(Event{Type: EventIssueDeleted}) })
}
