package attendance

import (
	"context"
	"time"

	"Backend-KiddoCare/src/models"
)

// SessionStore is the persistence boundary for attendance sessions. The
// production implementation is MongoStore; tests use an in-memory fake.
//
// Implementations must return the package's error types: NotFoundError for
// missing ids, ConflictError from the conditional operations, and
// StoreUnavailableError for transport failures.
type SessionStore interface {
	// OpenSessions returns every session for the child with no check-out
	// time. More than one result is a data-integrity violation that the
	// manager surfaces; the store just reports what is there.
	OpenSessions(ctx context.Context, childID string) ([]models.AttendanceSession, error)

	// InsertOpenSession atomically creates a session if and only if the
	// child has no open session, and fills in the assigned ID. A losing
	// race returns ConflictError.
	InsertOpenSession(ctx context.Context, session *models.AttendanceSession) error

	// SessionByID fetches one session.
	SessionByID(ctx context.Context, id string) (*models.AttendanceSession, error)

	// CloseSession sets the check-out fields if and only if the session is
	// still open. Returns ConflictError when already closed, NotFoundError
	// when absent.
	CloseSession(ctx context.Context, id string, pickUp models.PickUpInfo, at time.Time, callerID string) error

	// ReplaceSession overwrites a session document by ID.
	ReplaceSession(ctx context.Context, session *models.AttendanceSession) error

	// SessionsByChild returns the child's sessions ordered by check-in
	// time, newest first, up to limit (0 means no limit).
	SessionsByChild(ctx context.Context, childID string, limit int64) ([]models.AttendanceSession, error)
}
