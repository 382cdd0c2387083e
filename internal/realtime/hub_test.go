package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialPair upgrades a loopback connection and returns both ends
func dialPair(t *testing.T) (server *websocket.Conn, client *websocket.Conn) {
	t.Helper()
	serverCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverCh <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverCh:
	case <-time.After(2 * time.Second):
		t.Fatal("server side of websocket never arrived")
	}
	t.Cleanup(func() { server.Close() })
	return server, client
}

func TestHub_RegisterAndEmit(t *testing.T) {
	hub := NewHub()
	serverConn, clientConn := dialPair(t)

	hub.Register(7, serverConn)
	require.Equal(t, 1, hub.ConnectionCount(7))
	require.Equal(t, 0, hub.ConnectionCount(8))

	hub.Emit(7, map[string]string{"title": "New like"})

	clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	require.NoError(t, clientConn.ReadJSON(&event))
	require.Equal(t, "notification", event.Type)
	data, ok := event.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "New like", data["title"])
}

func TestHub_EmitToOtherRoomIsSilent(t *testing.T) {
	hub := NewHub()
	serverConn, clientConn := dialPair(t)
	hub.Register(7, serverConn)

	hub.Emit(8, map[string]string{"title": "not for you"})

	clientConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var event Event
	require.Error(t, clientConn.ReadJSON(&event))
}

func TestHub_UnregisterRemovesRoomWhenEmpty(t *testing.T) {
	hub := NewHub()
	serverConn, _ := dialPair(t)

	hub.Register(7, serverConn)
	hub.Unregister(7, serverConn)
	require.Equal(t, 0, hub.ConnectionCount(7))

	// Unregistering an unknown connection is a no-op
	hub.Unregister(7, serverConn)
	hub.Unregister(99, serverConn)
}

func TestHub_MultipleConnectionsPerRoom(t *testing.T) {
	hub := NewHub()
	serverA, clientA := dialPair(t)
	serverB, clientB := dialPair(t)

	hub.Register(7, serverA)
	hub.Register(7, serverB)
	require.Equal(t, 2, hub.ConnectionCount(7))

	hub.Emit(7, map[string]string{"title": "fan-out"})

	for _, client := range []*websocket.Conn{clientA, clientB} {
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		var event Event
		require.NoError(t, client.ReadJSON(&event))
		require.Equal(t, "notification", event.Type)
	}
}

func TestHub_ConcurrentEmitsToOneConnection(t *testing.T) {
	hub := NewHub()
	serverConn, clientConn := dialPair(t)
	hub.Register(7, serverConn)

	// Concurrent requests notifying the same online account must serialize
	// their writes; the websocket library allows only one writer at a time
	const emits = 50
	var wg sync.WaitGroup
	wg.Add(emits)
	for i := 0; i < emits; i++ {
		go func(n int) {
			defer wg.Done()
			hub.Emit(7, map[string]int{"n": n})
		}(i)
	}
	wg.Wait()

	for i := 0; i < emits; i++ {
		clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var event Event
		require.NoError(t, clientConn.ReadJSON(&event))
		require.Equal(t, "notification", event.Type)
	}
	require.Equal(t, 1, hub.ConnectionCount(7))
}

func TestHub_FailedWriteEvictsConnection(t *testing.T) {
	hub := NewHub()
	serverConn, clientConn := dialPair(t)

	hub.Register(7, serverConn)

	// Kill the transport underneath the hub, then emit
	serverConn.Close()
	clientConn.Close()
	hub.Emit(7, map[string]string{"title": "into the void"})

	require.Equal(t, 0, hub.ConnectionCount(7))
}
