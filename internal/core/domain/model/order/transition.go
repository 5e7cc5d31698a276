package order

import (
	"time"
)

// SystemActor marks transitions triggered by the engine itself rather than
// a participant: the automatic Created -> Searching step, departure
// tracking events and settlement.
const SystemActor = "system"

// Transition is one record of the order's append-only transition log.
// The log is the projection external collaborators render timelines and
// status narratives from; the engine itself only appends to it.
type Transition struct {
	At    time.Time
	From  Status
	To    Status
	Actor string
}

// NewTransition creates a log record for a state change.
func NewTransition(at time.Time, from, to Status, actor string) Transition {
	return Transition{At: at, From: from, To: to, Actor: actor}
}
