package websocket

import (
	"testing"
)

func TestRegistryJoinLeave(t *testing.T) {
	reg := NewRoomRegistry()

	t.Run("JoinAddsMember", func(t *testing.T) {
		reg.Join("conn-a", "session-1")

		members := reg.MembersOf("session-1")
		if len(members) != 1 || members[0] != "conn-a" {
			t.Errorf("Expected [conn-a] in session-1, got %v", members)
		}
		if !reg.IsMember("conn-a", "session-1") {
			t.Error("conn-a should be a member of session-1")
		}
	})

	t.Run("JoinIsIdempotent", func(t *testing.T) {
		reg.Join("conn-a", "session-1")
		reg.Join("conn-a", "session-1")

		if got := len(reg.MembersOf("session-1")); got != 1 {
			t.Errorf("Expected 1 member after repeated joins, got %d", got)
		}
	})

	t.Run("LeaveRemovesMember", func(t *testing.T) {
		reg.Join("conn-b", "session-1")
		reg.Leave("conn-a", "session-1")

		if reg.IsMember("conn-a", "session-1") {
			t.Error("conn-a should not be a member after leave")
		}
		if !reg.IsMember("conn-b", "session-1") {
			t.Error("conn-b should still be a member")
		}
	})

	t.Run("LeaveIsIdempotent", func(t *testing.T) {
		reg.Leave("conn-a", "session-1")
		reg.Leave("conn-a", "unknown-room")

		if got := len(reg.MembersOf("session-1")); got != 1 {
			t.Errorf("Expected 1 member, got %d", got)
		}
	})

	t.Run("UnknownRoomIsEmpty", func(t *testing.T) {
		if got := reg.MembersOf("nope"); len(got) != 0 {
			t.Errorf("Expected empty member set for unknown room, got %v", got)
		}
	})
}

func TestRegistryReapsEmptyRooms(t *testing.T) {
	reg := NewRoomRegistry()

	reg.Join("conn-a", "session-1")
	reg.Leave("conn-a", "session-1")

	if len(reg.rooms) != 0 {
		t.Errorf("Expected empty room to be reaped, still tracking %d rooms", len(reg.rooms))
	}
	if len(reg.connRooms) != 0 {
		t.Errorf("Expected conn bookkeeping to be reaped, still tracking %d conns", len(reg.connRooms))
	}
}

func TestRegistryOnDisconnect(t *testing.T) {
	reg := NewRoomRegistry()

	reg.Join("conn-a", "session-1")
	reg.Join("conn-a", "session-2")
	reg.Join("conn-b", "session-1")

	reg.OnDisconnect("conn-a")

	if reg.IsMember("conn-a", "session-1") {
		t.Error("conn-a should be removed from session-1 on disconnect")
	}
	if reg.IsMember("conn-a", "session-2") {
		t.Error("conn-a should be removed from session-2 on disconnect")
	}
	if !reg.IsMember("conn-b", "session-1") {
		t.Error("conn-b should be unaffected by conn-a's disconnect")
	}
	if got := len(reg.RoomsOf("conn-a")); got != 0 {
		t.Errorf("Expected conn-a to be in no rooms, got %d", got)
	}
}

func TestRegistryRejoinAfterLeave(t *testing.T) {
	reg := NewRoomRegistry()

	reg.Join("conn-a", "session-1")
	reg.Leave("conn-a", "session-1")
	reg.Join("conn-a", "session-1")

	if !reg.IsMember("conn-a", "session-1") {
		t.Error("re-join after leave should be permitted")
	}
}
