package reconcile

// Roster is the local attendance view for one session: student id mapped to
// the last announced status. Statuses are replaced wholesale from event
// payloads, never derived locally.
type Roster struct {
	statuses map[uint]string
}

func NewRoster() *Roster {
	return &Roster{statuses: make(map[uint]string)}
}

func (r *Roster) Set(studentID uint, status string) {
	r.statuses[studentID] = status
}

func (r *Roster) Status(studentID uint) (string, bool) {
	status, ok := r.statuses[studentID]
	return status, ok
}

func (r *Roster) Len() int {
	return len(r.statuses)
}
