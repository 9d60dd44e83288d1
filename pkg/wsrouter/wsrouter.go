// Package wsrouter dispatches typed websocket messages to handlers, the way
// an http mux dispatches requests to routes. Messages are JSON envelopes of
// the form {"type": "...", "payload": {...}}.
package wsrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Conn wraps a websocket connection with a write lock so handlers and
// background goroutines can write concurrently. gorilla/websocket allows
// only one concurrent writer per connection.
type Conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ws.WriteJSON(v)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

type HandlerFunc func(ctx context.Context, conn *Conn, payload json.RawMessage) error

// Typed adapts a handler taking a concrete payload struct into a HandlerFunc
// by unmarshalling the raw payload first.
func Typed[T any](handler func(ctx context.Context, conn *Conn, input T) error) HandlerFunc {
	return func(ctx context.Context, conn *Conn, payload json.RawMessage) error {
		var input T
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &input); err != nil {
				return fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		return handler(ctx, conn, input)
	}
}

type WSRouter struct {
	routes map[string]HandlerFunc

	// ErrorHandler is called when a handler returns an error. Optional. The
	// message type is available via GetMessageTypeFromCtx.
	ErrorHandler func(ctx context.Context, conn *Conn, err error)
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]HandlerFunc)}
}

func (r *WSRouter) Handle(messageType string, handler HandlerFunc) {
	r.routes[messageType] = handler
}

// ServeConn reads messages until the connection closes or the context is
// cancelled. Handler errors do not terminate the loop.
func (r *WSRouter) ServeConn(ctx context.Context, conn *Conn) error {
	defer conn.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var msg message
		if err := conn.ws.ReadJSON(&msg); err != nil {
			return err
		}

		handler, exists := r.routes[msg.Type]
		if !exists {
			conn.WriteJSON(map[string]string{"error": "unknown message type"})
			continue
		}

		msgCtx := setMessageTypeToCtx(ctx, msg.Type)
		if err := handler(msgCtx, conn, msg.Payload); err != nil && r.ErrorHandler != nil {
			r.ErrorHandler(msgCtx, conn, err)
		}
	}
}
