package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeAttendanceEvent = "attendance:event"

// AttendancePayload describes one check-in or check-out to notify about.
type AttendancePayload struct {
	SessionID  string `json:"session_id"`
	ChildID    string `json:"child_id"`
	GuardianID string `json:"guardian_id"`
	Event      string `json:"event"` // "check-in" | "check-out"
}

func NewAttendanceEventTask(sessionID, childID, guardianID, event string) (*asynq.Task, error) {
	payload, err := json.Marshal(AttendancePayload{
		SessionID:  sessionID,
		ChildID:    childID,
		GuardianID: guardianID,
		Event:      event,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAttendanceEvent, payload), nil
}

const TypeOverdueSweep = "attendance:overdue-sweep"

func NewOverdueSweepTask() *asynq.Task {
	return asynq.NewTask(TypeOverdueSweep, nil)
}
