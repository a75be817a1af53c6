package attendance_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"Backend-KiddoCare/src/attendance"
	"Backend-KiddoCare/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory SessionStore with the same conditional-write
// semantics as the Mongo implementation.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]models.AttendanceSession
	failWith error // when set, every call fails with this error
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]models.AttendanceSession)}
}

// seed injects a session as-is, bypassing the open-session check. Used to
// set up integrity-violation scenarios.
func (s *memStore) seed(session models.AttendanceSession) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	s.sessions[session.ID.Hex()] = session
	return session.ID.Hex()
}

func (s *memStore) OpenSessions(ctx context.Context, childID string) ([]models.AttendanceSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	var out []models.AttendanceSession
	for _, session := range s.sessions {
		if session.ChildID.Hex() == childID && session.CheckOutTime == nil {
			out = append(out, session)
		}
	}
	return out, nil
}

func (s *memStore) InsertOpenSession(ctx context.Context, session *models.AttendanceSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	for _, existing := range s.sessions {
		if existing.ChildID == session.ChildID && existing.CheckOutTime == nil {
			return &attendance.ConflictError{Reason: "child already has an open session"}
		}
	}

	session.ID = primitive.NewObjectID()
	s.sessions[session.ID.Hex()] = *session
	return nil
}

func (s *memStore) SessionByID(ctx context.Context, id string) (*models.AttendanceSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	session, ok := s.sessions[id]
	if !ok {
		return nil, &attendance.NotFoundError{Resource: "session", ID: id}
	}
	out := session
	return &out, nil
}

func (s *memStore) CloseSession(ctx context.Context, id string, pickUp models.PickUpInfo, at time.Time, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	session, ok := s.sessions[id]
	if !ok {
		return &attendance.NotFoundError{Resource: "session", ID: id}
	}
	if session.CheckOutTime != nil {
		return &attendance.ConflictError{Reason: "session is already closed"}
	}

	closedAt := at
	session.CheckOutTime = &closedAt
	session.PickUpInfo = &pickUp
	session.UpdatedAt = &closedAt
	session.UpdatedBy = callerID
	s.sessions[id] = session
	return nil
}

func (s *memStore) ReplaceSession(ctx context.Context, session *models.AttendanceSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	id := session.ID.Hex()
	if _, ok := s.sessions[id]; !ok {
		return &attendance.NotFoundError{Resource: "session", ID: id}
	}
	s.sessions[id] = *session
	return nil
}

func (s *memStore) SessionsByChild(ctx context.Context, childID string, limit int64) ([]models.AttendanceSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	var out []models.AttendanceSession
	for _, session := range s.sessions {
		if session.ChildID.Hex() == childID {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckInTime.After(out[j].CheckInTime)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// openCount is a test helper for invariant assertions.
func (s *memStore) openCount(childID string) int {
	sessions, _ := s.OpenSessions(context.Background(), childID)
	return len(sessions)
}
