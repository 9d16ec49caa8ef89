package overlay

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialTestBroadcaster stands a broadcaster's subscriber handler up on an
// httptest server and dials it, so tests exercise the real upgrade path
// without binding a fixed port.
func dialTestBroadcaster(t *testing.T, b *broadcasterImpl) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(b.handleSubscriber))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial test broadcaster: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// awaitClients waits for the handler goroutines to finish registering.
func awaitClients(t *testing.T, b *broadcasterImpl, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if b.ClientCount() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", b.ClientCount(), want)
}

func readReadout(t *testing.T, conn *websocket.Conn) Readout {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var r Readout
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatalf("failed to read readout: %v", err)
	}
	return r
}

func TestPublishFansOut(t *testing.T) {
	b := NewBroadcaster().(*broadcasterImpl)

	first := dialTestBroadcaster(t, b)
	second := dialTestBroadcaster(t, b)
	awaitClients(t, b, 2)

	want := Readout{UTC: "2024-06-21 12:00:00 UTC", Local: "x", Subsolar: "23.4N 0.0E"}
	b.Publish(want)

	for i, conn := range []*websocket.Conn{first, second} {
		if got := readReadout(t, conn); got != want {
			t.Errorf("subscriber %d got %+v, want %+v", i, got, want)
		}
	}
}

func TestLateJoinerGetsLatestReadout(t *testing.T) {
	b := NewBroadcaster().(*broadcasterImpl)

	want := Readout{UTC: "2024-01-01 00:00:00 UTC", Subsolar: "23.0S 180.0W"}
	b.Publish(want)

	conn := dialTestBroadcaster(t, b)
	if got := readReadout(t, conn); got != want {
		t.Errorf("late joiner got %+v, want %+v", got, want)
	}
}

func TestDisconnectedClientIsDropped(t *testing.T) {
	b := NewBroadcaster().(*broadcasterImpl)

	conn := dialTestBroadcaster(t, b)
	awaitClients(t, b, 1)

	conn.Close()
	awaitClients(t, b, 0)

	// Publishing into an empty client set must not panic.
	b.Publish(Readout{UTC: "after"})
}

func TestClientCountStartsAtZero(t *testing.T) {
	b := NewBroadcaster()
	if b.ClientCount() != 0 {
		t.Errorf("fresh broadcaster has %d clients", b.ClientCount())
	}
}
