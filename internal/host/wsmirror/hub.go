package wsmirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/zeusui/internal/core/observability/log"
	"github.com/zeusync/zeusui/pkg/concurrent"
	"github.com/zeusync/zeusui/pkg/generic"
	"github.com/zeusync/zeusui/pkg/sequence"
)

var buffers = generic.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

// encode marshals p into a pooled buffer that is only valid inside fn.
func encode(p Patch, fn func(msg []byte) error) error {
	return buffers.With(func(b *bytes.Buffer) error {
		if err := json.NewEncoder(b).Encode(p); err != nil {
			return err
		}
		return fn(b.Bytes())
	})
}

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(msg []byte, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

func (c *client) send(p Patch, timeout time.Duration) error {
	return encode(p, func(msg []byte) error { return c.write(msg, timeout) })
}

type writeError struct {
	client *client
	err    error
}

func (e *writeError) Error() string { return "client " + e.client.id + ": " + e.err.Error() }

func (e *writeError) Unwrap() error { return e.err }

// Hub numbers patches, keeps the full history for late joiners and fans every
// new patch out to the connected clients.
type Hub struct {
	mu      sync.Mutex
	seq     uint64
	history []Patch
	clients map[string]*client
	timeout time.Duration
	log     log.Log
}

// NewHub creates a hub whose writes give up after writeTimeout.
func NewHub(logger log.Log, writeTimeout time.Duration) *Hub {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Hub{
		clients: make(map[string]*client),
		timeout: writeTimeout,
		log:     logger.Named("mirror"),
	}
}

// Publish records p and sends it to every client. Clients that fail to
// receive it are disconnected.
func (h *Hub) Publish(p Patch) {
	h.mu.Lock()
	h.seq++
	p.Seq = h.seq
	h.history = append(h.history, p)
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	if len(targets) == 0 {
		return
	}
	var errs []error
	if err := encode(p, func(msg []byte) error {
		errs = concurrent.Each(context.Background(), sequence.From(targets), 0, func(_ context.Context, c *client) error {
			if err := c.write(msg, h.timeout); err != nil {
				return &writeError{client: c, err: err}
			}
			return nil
		})
		return nil
	}); err != nil {
		h.log.Error("patch encoding failed", log.String("op", string(p.Op)), log.Error(err))
		return
	}
	for _, err := range errs {
		var we *writeError
		if errors.As(err, &we) {
			h.log.Warn("dropping mirror client", log.String("client", we.client.id), log.Error(we.err))
			h.detach(we.client.id)
		}
	}
}

// History returns every patch published so far.
func (h *Hub) History() []Patch {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Patch(nil), h.history...)
}

// Clients returns the ids of connected clients.
func (h *Hub) Clients() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return sequence.FromSeq(maps.Keys(h.clients)).SortFunc(strings.Compare).Collect()
}

// attach greets conn, replays the history and starts broadcasting to it.
// The hub stays locked meanwhile so no patch is missed or sent twice.
func (h *Hub) attach(conn *websocket.Conn) (*client, error) {
	c := &client{id: uuid.NewString(), conn: conn}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := c.send(Patch{Seq: h.seq, Op: OpHello, Value: c.id}, h.timeout); err != nil {
		return nil, err
	}
	for _, p := range h.history {
		if err := c.send(p, h.timeout); err != nil {
			return nil, err
		}
	}
	h.clients[c.id] = c
	h.log.Info("mirror client attached", log.String("client", c.id), log.Int("replayed", len(h.history)))
	return c, nil
}

func (h *Hub) detach(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if ok {
		_ = c.conn.Close()
		h.log.Info("mirror client detached", log.String("client", id))
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
}
