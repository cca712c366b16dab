package websocket

import (
	"sync"
)

// RoomRegistry maps session rooms to the connections currently joined to
// them. It is pure in-memory bookkeeping: state lives for the process
// lifetime and is rebuilt from client re-joins after a restart. Construct
// one per hub; there is no package-level instance, so tests can run
// isolated registries.
type RoomRegistry struct {
	// rooms maps room id to the set of member connection ids
	rooms map[string]map[string]bool

	// connRooms maps connection id to the set of rooms it has joined
	connRooms map[string]map[string]bool

	mu sync.RWMutex
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:     make(map[string]map[string]bool),
		connRooms: make(map[string]map[string]bool),
	}
}

// Join adds the connection to the room's member set, creating the room on
// demand. Joining a room twice is a no-op.
func (r *RoomRegistry) Join(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[roomID] == nil {
		r.rooms[roomID] = make(map[string]bool)
	}
	r.rooms[roomID][connID] = true

	if r.connRooms[connID] == nil {
		r.connRooms[connID] = make(map[string]bool)
	}
	r.connRooms[connID][roomID] = true
}

// Leave removes the connection from the room's member set. Empty rooms are
// reaped to bound memory. Leaving a room never joined is a no-op.
func (r *RoomRegistry) Leave(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(connID, roomID)
}

func (r *RoomRegistry) leaveLocked(connID, roomID string) {
	if members, ok := r.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
	if joined, ok := r.connRooms[connID]; ok {
		delete(joined, roomID)
		if len(joined) == 0 {
			delete(r.connRooms, connID)
		}
	}
}

// OnDisconnect removes the connection from every room it was a member of.
// The hub calls this exactly once when a connection terminates.
func (r *RoomRegistry) OnDisconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roomID := range r.connRooms[connID] {
		r.leaveLocked(connID, roomID)
	}
	delete(r.connRooms, connID)
}

// MembersOf returns a snapshot of the connection ids currently in the room.
// Unknown rooms yield an empty slice.
func (r *RoomRegistry) MembersOf(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(members))
	for connID := range members {
		result = append(result, connID)
	}
	return result
}

// IsMember reports whether the connection has joined the room. The relay
// uses this to refuse broadcasts from non-members.
func (r *RoomRegistry) IsMember(connID, roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[roomID]
	return ok && members[connID]
}

// RoomsOf returns a snapshot of the room ids the connection has joined.
func (r *RoomRegistry) RoomsOf(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	joined, ok := r.connRooms[connID]
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(joined))
	for roomID := range joined {
		result = append(result, roomID)
	}
	return result
}
