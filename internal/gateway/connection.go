package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Connection is one live realtime session: an authenticated principal plus
// a buffered outbound queue drained by the transport's write loop.
type Connection struct {
	ID        string
	Principal *Principal

	send      chan outbound
	done      chan struct{}
	closeOnce sync.Once
	ctx       context.Context
	cancel    context.CancelFunc
}

func newConnection(p *Principal, sendBuffer int) *Connection {
	if sendBuffer < 1 {
		sendBuffer = 64
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		ID:        uuid.NewString(),
		Principal: p,
		send:      make(chan outbound, sendBuffer),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Context is cancelled when the connection closes. Event handlers run
// under it so in-flight work stops on disconnect.
func (c *Connection) Context() context.Context {
	return c.ctx
}

// Enqueue hands a frame to the write loop without blocking. A full buffer
// means the client is not draining; the frame is dropped and the caller
// told so it can decide to disconnect.
func (c *Connection) Enqueue(event string, payload any) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- outbound{Event: event, Data: payload}:
		return true
	default:
		return false
	}
}

// Close tears the connection down. Safe to call any number of times.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.done)
	})
}

// Done reports connection teardown to the pumps.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Outbound exposes the send queue to the write loop.
func (c *Connection) Outbound() <-chan outbound {
	return c.send
}
