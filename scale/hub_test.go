package scale

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHubLatest(t *testing.T) {
	hub := NewHub(testLogger())

	_, ok := hub.Latest()
	assert.False(t, ok, "no sample published yet")

	at := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	hub.Publish(Reading{Weight: 15000, Stable: true, At: at})

	got, ok := hub.Latest()
	require.True(t, ok)
	assert.Equal(t, 15000.0, got.Weight)
	assert.True(t, got.Stable)
	assert.Equal(t, at, got.At)

	hub.Publish(Reading{Weight: 15010, Stable: false, At: at.Add(time.Second)})
	got, _ = hub.Latest()
	assert.Equal(t, 15010.0, got.Weight)
	assert.False(t, got.Stable)
}

func TestHubBroadcastsToClients(t *testing.T) {
	hub := NewHub(testLogger())
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register("test-client", conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	require.Eventually(t, func() bool { return hub.Clients() == 1 },
		2*time.Second, 10*time.Millisecond, "client never registered")

	sent := Reading{Weight: 12340, Stable: true, At: time.Now().UTC()}
	hub.Publish(sent)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Reading
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, sent.Weight, got.Weight)
	assert.True(t, got.Stable)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(testLogger())
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register("gone-soon", conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	require.Eventually(t, func() bool { return hub.Clients() == 1 },
		2*time.Second, 10*time.Millisecond)

	hub.Unregister("gone-soon")
	assert.Equal(t, 0, hub.Clients())

	// Unregistering twice is harmless.
	hub.Unregister("gone-soon")
	assert.Equal(t, 0, hub.Clients())

	// Publishing with nobody connected still retains the sample.
	hub.Publish(Reading{Weight: 500, Stable: true, At: time.Now().UTC()})
	got, ok := hub.Latest()
	require.True(t, ok)
	assert.Equal(t, 500.0, got.Weight)
}
