package reconcile

import (
	"testing"

	"classroom-service/internal/websocket"
)

func TestAttendanceReplacesStatusById(t *testing.T) {
	r := New()

	apply := func(studentID uint, status string) {
		t.Helper()
		ev, err := websocket.NewEvent("ev", websocket.EventAttendanceChange, "session-1",
			websocket.AttendanceChangePayload{StudentID: studentID, Status: status})
		if err != nil {
			t.Fatalf("building attendance event: %v", err)
		}
		if err := r.Apply(ev); err != nil {
			t.Fatalf("apply attendance: %v", err)
		}
	}

	apply(7, "present")
	apply(8, "absent")
	apply(7, "absent")

	if got, _ := r.Attendance().Status(7); got != "absent" {
		t.Errorf("student 7: expected absent after re-mark, got %s", got)
	}
	if got, _ := r.Attendance().Status(8); got != "absent" {
		t.Errorf("student 8: expected absent, got %s", got)
	}
	if r.Attendance().Len() != 2 {
		t.Errorf("expected 2 roster entries, got %d", r.Attendance().Len())
	}

	if _, ok := r.Attendance().Status(99); ok {
		t.Error("unknown student should have no status")
	}
}
