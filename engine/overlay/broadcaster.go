package overlay

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// broadcasterImpl is the implementation of the Broadcaster interface.
type broadcasterImpl struct {
	addr string
	path string

	server *http.Server

	clientsMu sync.RWMutex
	// Each connection carries its own write mutex because gorilla/websocket
	// permits at most one concurrent writer per connection.
	clients map[*websocket.Conn]*sync.Mutex

	latestMu sync.Mutex
	latest   *Readout
}

// Broadcaster serves the overlay readout over a websocket endpoint. New
// subscribers immediately receive the latest readout; every Publish fans the
// readout out to all connected subscribers. Thread-safe.
type Broadcaster interface {
	// Start begins listening on the configured address. Non-blocking; the
	// HTTP server runs on its own goroutine until Shutdown.
	//
	// Returns:
	//   - error: an error if the listener could not be created
	Start() error

	// Publish fans a readout out to every connected subscriber and retains
	// it for subscribers that connect later. Failed connections are dropped.
	//
	// Parameters:
	//   - r: the readout to broadcast
	Publish(r Readout)

	// ClientCount reports the number of connected subscribers.
	//
	// Returns:
	//   - int: the subscriber count
	ClientCount() int

	// Shutdown stops the HTTP server and closes all subscriber connections.
	//
	// Parameters:
	//   - ctx: bounds how long to wait for in-flight requests
	//
	// Returns:
	//   - error: an error if shutdown did not complete before ctx expired
	Shutdown(ctx context.Context) error
}

var _ Broadcaster = &broadcasterImpl{}

// NewBroadcaster creates an overlay broadcaster. It does not listen until
// Start is called.
//
// Parameters:
//   - options: functional options for the listen address and endpoint path
//
// Returns:
//   - Broadcaster: the newly created broadcaster
func NewBroadcaster(options ...BroadcasterBuilderOption) Broadcaster {
	b := &broadcasterImpl{
		addr:    "localhost:8691",
		path:    "/readout",
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *broadcasterImpl) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc(b.path, b.handleSubscriber)
	b.server = &http.Server{Addr: b.addr, Handler: mux}

	go func() {
		if err := b.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("overlay: server stopped: %v", err)
		}
	}()
	return nil
}

func (b *broadcasterImpl) handleSubscriber(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("overlay: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	b.clientsMu.Lock()
	b.clients[conn] = connMu
	b.clientsMu.Unlock()
	defer func() {
		b.clientsMu.Lock()
		delete(b.clients, conn)
		b.clientsMu.Unlock()
	}()

	// Late joiners get the current readout right away rather than waiting
	// for the next tick.
	b.latestMu.Lock()
	latest := b.latest
	b.latestMu.Unlock()
	if latest != nil {
		connMu.Lock()
		err := conn.WriteJSON(latest)
		connMu.Unlock()
		if err != nil {
			return
		}
	}

	// Drain (and discard) client messages until the connection closes; the
	// read loop is what detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *broadcasterImpl) Publish(r Readout) {
	b.latestMu.Lock()
	b.latest = &r
	b.latestMu.Unlock()

	b.clientsMu.RLock()
	var failed []*websocket.Conn
	for conn, connMu := range b.clients {
		connMu.Lock()
		err := conn.WriteJSON(r)
		connMu.Unlock()
		if err != nil {
			conn.Close()
			failed = append(failed, conn)
		}
	}
	b.clientsMu.RUnlock()

	if len(failed) > 0 {
		b.clientsMu.Lock()
		for _, conn := range failed {
			delete(b.clients, conn)
		}
		b.clientsMu.Unlock()
	}
}

func (b *broadcasterImpl) ClientCount() int {
	b.clientsMu.RLock()
	defer b.clientsMu.RUnlock()
	return len(b.clients)
}

func (b *broadcasterImpl) Shutdown(ctx context.Context) error {
	b.clientsMu.Lock()
	for conn := range b.clients {
		conn.Close()
	}
	b.clients = make(map[*websocket.Conn]*sync.Mutex)
	b.clientsMu.Unlock()

	if b.server == nil {
		return nil
	}
	return b.server.Shutdown(ctx)
}
