package gateway

import (
	"sync"

	"github.com/rs/zerolog"

	"kisaanchat/internal/common"
)

// Registry tracks live connections and their room memberships. It is the
// fan-out point for every realtime event; delivery is fire-and-forget and
// a slow client only loses its own frames.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*Connection
	rooms  map[string]map[string]*Connection
	logger zerolog.Logger
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		conns:  make(map[string]*Connection),
		rooms:  make(map[string]map[string]*Connection),
		logger: logger,
	}
}

// Register adds a connection and joins it to the rooms its principal kind
// implies: farmers get their personal room, agents the room of the farmer
// they serve. Admins join monitoring explicitly, not here.
func (r *Registry) Register(conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[conn.ID] = conn

	switch conn.Principal.Kind {
	case KindFarmer:
		r.joinLocked(conn, common.UserRoom(conn.Principal.UserID))
	case KindAgent:
		r.joinLocked(conn, common.UserRoom(conn.Principal.FarmerID))
		r.joinLocked(conn, common.AgentRoom(conn.Principal.FarmerID))
	}

	r.logger.Info().
		Str("connection_id", conn.ID).
		Str("user_id", conn.Principal.UserID).
		Str("kind", string(conn.Principal.Kind)).
		Msg("connection registered")
}

// Deregister removes the connection from every room and the registry.
// Unknown connections are a no-op, so a double disconnect is harmless.
func (r *Registry) Deregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(r.conns, connID)

	for room, members := range r.rooms {
		if _, in := members[connID]; in {
			delete(members, connID)
			if len(members) == 0 {
				delete(r.rooms, room)
			}
		}
	}

	r.logger.Info().
		Str("connection_id", connID).
		Str("user_id", conn.Principal.UserID).
		Msg("connection deregistered")
}

// Join adds a registered connection to a room. Joining twice is a no-op.
func (r *Registry) Join(connID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connID]
	if !ok {
		return ErrNotRegistered
	}
	r.joinLocked(conn, room)
	return nil
}

// Leave removes a connection from one room.
func (r *Registry) Leave(connID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

func (r *Registry) joinLocked(conn *Connection, room string) {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]*Connection)
		r.rooms[room] = members
	}
	members[conn.ID] = conn
}

// Broadcast delivers an event to every member of a room. Frames dropped
// by a full buffer are counted but never retried.
func (r *Registry) Broadcast(room, event string, payload any) {
	r.mu.RLock()
	members := make([]*Connection, 0, len(r.rooms[room]))
	for _, conn := range r.rooms[room] {
		members = append(members, conn)
	}
	r.mu.RUnlock()

	dropped := 0
	for _, conn := range members {
		if !conn.Enqueue(event, payload) {
			dropped++
		}
	}
	if dropped > 0 {
		r.logger.Warn().
			Str("room", room).
			Str("event", event).
			Int("dropped", dropped).
			Msg("dropped frames for slow connections")
	}
}

// Stats is a point-in-time view of the registry for monitoring.
type Stats struct {
	Connections int `json:"connections"`
	Farmers     int `json:"farmers"`
	Admins      int `json:"admins"`
	Agents      int `json:"agents"`
	Rooms       int `json:"rooms"`
}

func (r *Registry) Snapshot() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{
		Connections: len(r.conns),
		Rooms:       len(r.rooms),
	}
	for _, conn := range r.conns {
		switch conn.Principal.Kind {
		case KindFarmer:
			s.Farmers++
		case KindAdmin:
			s.Admins++
		case KindAgent:
			s.Agents++
		}
	}
	return s
}

// OnlineFarmers lists the distinct farmer IDs with at least one live
// connection.
func (r *Registry) OnlineFarmers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, conn := range r.conns {
		if conn.Principal.Kind == KindFarmer {
			seen[conn.Principal.UserID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids
}

// InRoom reports membership, mostly for authorization checks.
func (r *Registry) InRoom(connID, room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[room]
	if !ok {
		return false
	}
	_, in := members[connID]
	return in
}
