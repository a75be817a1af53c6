package attendance

import (
	"context"
	"time"

	"Backend-KiddoCare/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Clock supplies the current time. Injected so tests are deterministic.
type Clock func() time.Time

// Manager owns the attendance session lifecycle: check-in, check-out, bulk
// operations, history, and corrections. It enforces at-most-one-open-session
// per child and the temporal rules on every write.
type Manager struct {
	store SessionStore
	now   Clock
}

// NewManager creates a Manager. A nil clock defaults to time.Now.
func NewManager(store SessionStore, clock Clock) *Manager {
	if clock == nil {
		clock = time.Now
	}
	return &Manager{store: store, now: clock}
}

// CheckInInput carries everything captured at drop-off.
type CheckInInput struct {
	ChildID           string
	DropOff           models.DropOffInfo
	Health            models.HealthStatus
	Meals             models.Meals
	Concerns          string
	AlternativePickup *models.AlternativePickup
}

// SessionPatch corrects fields on an existing session. Nil fields are left
// untouched. CheckOutTime and PickUp may only be changed on an
// already-closed session; closing happens through CheckOut alone, and
// reopening is unsupported.
type SessionPatch struct {
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	DropOff           *models.DropOffInfo
	PickUp            *models.PickUpInfo
	Health            *models.HealthStatus
	Meals             *models.Meals
	Concerns          *string
	AlternativePickup *models.AlternativePickup
}

// BulkFailure records why one child in a bulk operation was skipped.
type BulkFailure struct {
	ChildID string
	Err     error
}

// BulkResult aggregates per-child outcomes. Failures never roll back
// already-committed items.
type BulkResult struct {
	Succeeded []string
	Failed    []BulkFailure
}

// ActiveSession returns the child's open session, or nil when there is
// none. Finding more than one open session is reported as IntegrityError
// rather than silently picking the first.
func (m *Manager) ActiveSession(ctx context.Context, childID string) (*models.AttendanceSession, error) {
	if err := validateID("childId", childID); err != nil {
		return nil, err
	}

	open, err := m.store.OpenSessions(ctx, childID)
	if err != nil {
		return nil, err
	}

	switch len(open) {
	case 0:
		return nil, nil
	case 1:
		s := open[0]
		return &s, nil
	default:
		return nil, &IntegrityError{ChildID: childID, Count: len(open)}
	}
}

// CheckIn opens a new session for the child. Fails with ConflictError when
// the child is already checked in; the store's conditional insert closes
// the race between two callers who both saw no open session.
func (m *Manager) CheckIn(ctx context.Context, callerID string, in CheckInInput) (*models.AttendanceSession, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if err := validateID("childId", in.ChildID); err != nil {
		return nil, err
	}
	if err := validateDropOff(in.DropOff); err != nil {
		return nil, err
	}
	if err := validateHealth(in.Health); err != nil {
		return nil, err
	}

	active, err := m.ActiveSession(ctx, in.ChildID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, &ConflictError{Reason: "child already has an open session"}
	}

	childOID, _ := primitive.ObjectIDFromHex(in.ChildID)
	now := m.now()

	health := in.Health
	if !health.HasFever {
		health.Temperature = nil
	}

	session := &models.AttendanceSession{
		ChildID:           childOID,
		GuardianID:        callerID,
		CheckInTime:       now,
		CheckOutTime:      nil,
		DropOffInfo:       in.DropOff,
		HealthStatus:      health,
		Meals:             in.Meals,
		Concerns:          in.Concerns,
		AlternativePickup: in.AlternativePickup,
		CreatedAt:         now,
		CreatedBy:         callerID,
	}

	if err := m.store.InsertOpenSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Session fetches one session by id.
func (m *Manager) Session(ctx context.Context, sessionID string) (*models.AttendanceSession, error) {
	if err := validateID("sessionId", sessionID); err != nil {
		return nil, err
	}
	return m.store.SessionByID(ctx, sessionID)
}

// CheckOut closes an open session, recording who picked the child up. The
// check-out time must land strictly after the check-in time. Closed
// sessions stay closed: a second check-out fails with ConflictError and
// leaves the record unchanged.
func (m *Manager) CheckOut(ctx context.Context, callerID, sessionID string, pickUp models.PickUpInfo) (*models.AttendanceSession, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if err := validateID("sessionId", sessionID); err != nil {
		return nil, err
	}
	if err := validatePickUp(pickUp); err != nil {
		return nil, err
	}

	session, err := m.store.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	if session.Open() && !now.After(session.CheckInTime) {
		return nil, &ValidationError{Field: "checkOutTime", Reason: "must be after the check-in time"}
	}
	pickUp.Time = now

	if err := m.store.CloseSession(ctx, sessionID, pickUp, now, callerID); err != nil {
		return nil, err
	}
	return m.store.SessionByID(ctx, sessionID)
}

// BulkCheckIn checks in each child independently with the same drop-off
// info, continuing past individual failures. Health defaults to no fever;
// per-child details can be corrected afterwards with EditSession.
func (m *Manager) BulkCheckIn(ctx context.Context, callerID string, childIDs []string, dropOff models.DropOffInfo) (BulkResult, error) {
	if callerID == "" {
		return BulkResult{}, ErrUnauthenticated
	}

	var result BulkResult
	for _, childID := range dedup(childIDs) {
		_, err := m.CheckIn(ctx, callerID, CheckInInput{
			ChildID: childID,
			DropOff: dropOff,
		})
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{ChildID: childID, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, childID)
	}
	return result, nil
}

// BulkCheckOut checks out each child's open session with the same pick-up
// info. Children with no open session are recorded as failed, not skipped
// silently.
func (m *Manager) BulkCheckOut(ctx context.Context, callerID string, childIDs []string, pickUp models.PickUpInfo) (BulkResult, error) {
	if callerID == "" {
		return BulkResult{}, ErrUnauthenticated
	}

	var result BulkResult
	for _, childID := range dedup(childIDs) {
		active, err := m.ActiveSession(ctx, childID)
		if err == nil && active == nil {
			err = &ConflictError{Reason: "child has no open session"}
		}
		if err == nil {
			_, err = m.CheckOut(ctx, callerID, active.ID.Hex(), pickUp)
		}
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{ChildID: childID, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, childID)
	}
	return result, nil
}

// History returns the child's sessions, newest check-in first. Pure read.
func (m *Manager) History(ctx context.Context, childID string, maxRecords int64) ([]models.AttendanceSession, error) {
	if err := validateID("childId", childID); err != nil {
		return nil, err
	}
	return m.store.SessionsByChild(ctx, childID, maxRecords)
}

// EditSession corrects fields on a past session. The patched record is
// re-validated before committing: check-in must not be in the future, and
// check-out must be after check-in and not in the future. Each violation is
// reported against its own field.
func (m *Manager) EditSession(ctx context.Context, callerID, sessionID string, patch SessionPatch) (*models.AttendanceSession, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if err := validateID("sessionId", sessionID); err != nil {
		return nil, err
	}

	session, err := m.store.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if (patch.CheckOutTime != nil || patch.PickUp != nil) && session.Open() {
		return nil, &ConflictError{Reason: "session is still open; close it with a check-out"}
	}

	updated := *session
	if patch.CheckInTime != nil {
		updated.CheckInTime = *patch.CheckInTime
	}
	if patch.CheckOutTime != nil {
		t := *patch.CheckOutTime
		updated.CheckOutTime = &t
		if updated.PickUpInfo != nil {
			pickUp := *updated.PickUpInfo
			pickUp.Time = t
			updated.PickUpInfo = &pickUp
		}
	}
	if patch.DropOff != nil {
		if err := validateDropOff(*patch.DropOff); err != nil {
			return nil, err
		}
		updated.DropOffInfo = *patch.DropOff
	}
	if patch.PickUp != nil {
		if err := validatePickUp(*patch.PickUp); err != nil {
			return nil, err
		}
		pickUp := *patch.PickUp
		if updated.CheckOutTime != nil {
			pickUp.Time = *updated.CheckOutTime
		}
		updated.PickUpInfo = &pickUp
	}
	if patch.Health != nil {
		if err := validateHealth(*patch.Health); err != nil {
			return nil, err
		}
		updated.HealthStatus = *patch.Health
	}
	if patch.Meals != nil {
		updated.Meals = *patch.Meals
	}
	if patch.Concerns != nil {
		updated.Concerns = *patch.Concerns
	}
	if patch.AlternativePickup != nil {
		updated.AlternativePickup = patch.AlternativePickup
	}

	now := m.now()
	if updated.CheckInTime.After(now) {
		return nil, &ValidationError{Field: "checkInTime", Reason: "must not be in the future"}
	}
	if updated.CheckOutTime != nil {
		if !updated.CheckOutTime.After(updated.CheckInTime) {
			return nil, &ValidationError{Field: "checkOutTime", Reason: "must be after the check-in time"}
		}
		if updated.CheckOutTime.After(now) {
			return nil, &ValidationError{Field: "checkOutTime", Reason: "must not be in the future"}
		}
	}

	updated.UpdatedAt = &now
	updated.UpdatedBy = callerID

	if err := m.store.ReplaceSession(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
