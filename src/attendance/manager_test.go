package attendance_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"Backend-KiddoCare/src/attendance"
	"Backend-KiddoCare/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testClock is a controllable clock for deterministic timestamps.
type testClock struct {
	now time.Time
}

func (tc *testClock) Now() time.Time { return tc.now }

func (tc *testClock) Advance(d time.Duration) { tc.now = tc.now.Add(d) }

var baseTime = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

func newTestManager() (*attendance.Manager, *memStore, *testClock) {
	store := newMemStore()
	clock := &testClock{now: baseTime}
	return attendance.NewManager(store, clock.Now), store, clock
}

func validDropOff() models.DropOffInfo {
	return models.DropOffInfo{
		PersonName:   "Jane",
		Relationship: "Mother",
		Signature:    "Jane D.",
	}
}

func validPickUp() models.PickUpInfo {
	return models.PickUpInfo{
		PersonName:   "John",
		Relationship: "Father",
		Signature:    "John D.",
	}
}

func validCheckIn(childID string) attendance.CheckInInput {
	return attendance.CheckInInput{
		ChildID: childID,
		DropOff: validDropOff(),
		Meals:   models.Meals{Breakfast: true},
	}
}

func newChildID() string { return primitive.NewObjectID().Hex() }

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessThenActiveSessionMatches", func(t *testing.T) {
		mgr, _, _ := newTestManager()
		childID := newChildID()

		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)
		assert.Nil(t, session.CheckOutTime)
		assert.Equal(t, baseTime, session.CheckInTime)
		assert.Equal(t, "u1", session.CreatedBy)
		assert.True(t, session.Meals.Breakfast)

		active, err := mgr.ActiveSession(ctx, childID)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, session.ID, active.ID)
	})

	t.Run("SecondCheckInConflicts", func(t *testing.T) {
		mgr, _, _ := newTestManager()
		childID := newChildID()

		_, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)

		_, err = mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		assert.True(t, attendance.IsConflict(err), "expected ConflictError, got %v", err)
	})

	t.Run("MissingDropOffFields", func(t *testing.T) {
		mgr, store, _ := newTestManager()
		childID := newChildID()

		for field, mutate := range map[string]func(*models.DropOffInfo){
			"dropOffInfo.personName":   func(d *models.DropOffInfo) { d.PersonName = "" },
			"dropOffInfo.relationship": func(d *models.DropOffInfo) { d.Relationship = " " },
			"dropOffInfo.signature":    func(d *models.DropOffInfo) { d.Signature = "" },
		} {
			in := validCheckIn(childID)
			mutate(&in.DropOff)

			_, err := mgr.CheckIn(ctx, "u1", in)
			var ve *attendance.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, field, ve.Field)
		}
		assert.Zero(t, store.openCount(childID), "no record may be created on validation failure")
	})

	t.Run("FeverWithoutTemperature", func(t *testing.T) {
		mgr, store, _ := newTestManager()
		childID := newChildID()

		in := validCheckIn(childID)
		in.Health = models.HealthStatus{HasFever: true}

		_, err := mgr.CheckIn(ctx, "u1", in)
		var ve *attendance.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "healthStatus.temperature", ve.Field)
		assert.Zero(t, store.openCount(childID))
	})

	t.Run("TemperatureDroppedWithoutFever", func(t *testing.T) {
		mgr, _, _ := newTestManager()
		childID := newChildID()

		temp := 37.0
		in := validCheckIn(childID)
		in.Health = models.HealthStatus{HasFever: false, Temperature: &temp}

		session, err := mgr.CheckIn(ctx, "u1", in)
		require.NoError(t, err)
		assert.Nil(t, session.HealthStatus.Temperature)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		mgr, _, _ := newTestManager()

		_, err := mgr.CheckIn(ctx, "", validCheckIn(newChildID()))
		assert.ErrorIs(t, err, attendance.ErrUnauthenticated)
	})
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("ClosesOpenSession", func(t *testing.T) {
		mgr, _, clock := newTestManager()
		childID := newChildID()

		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)

		clock.Advance(8 * time.Hour)

		closed, err := mgr.CheckOut(ctx, "u2", session.ID.Hex(), validPickUp())
		require.NoError(t, err)
		require.NotNil(t, closed.CheckOutTime)
		assert.Equal(t, clock.Now(), *closed.CheckOutTime)
		assert.Equal(t, clock.Now(), closed.PickUpInfo.Time)
		assert.Equal(t, "u2", closed.UpdatedBy)

		active, err := mgr.ActiveSession(ctx, childID)
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("DoubleCheckOutConflictsAndLeavesRecordUnchanged", func(t *testing.T) {
		mgr, _, clock := newTestManager()
		childID := newChildID()

		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)

		clock.Advance(time.Hour)
		closed, err := mgr.CheckOut(ctx, "u1", session.ID.Hex(), validPickUp())
		require.NoError(t, err)

		clock.Advance(time.Hour)
		_, err = mgr.CheckOut(ctx, "u1", session.ID.Hex(), validPickUp())
		assert.True(t, attendance.IsConflict(err), "expected ConflictError, got %v", err)

		after, err := mgr.Session(ctx, session.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, *closed.CheckOutTime, *after.CheckOutTime)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		mgr, _, _ := newTestManager()

		_, err := mgr.CheckOut(ctx, "u1", primitive.NewObjectID().Hex(), validPickUp())
		assert.True(t, attendance.IsNotFound(err), "expected NotFoundError, got %v", err)
	})

	t.Run("SameInstantRejected", func(t *testing.T) {
		mgr, store, _ := newTestManager()
		childID := newChildID()

		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)

		// Clock never advances, so the check-out would not land strictly
		// after the check-in.
		_, err = mgr.CheckOut(ctx, "u1", session.ID.Hex(), validPickUp())
		var ve *attendance.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "checkOutTime", ve.Field)
		assert.Equal(t, 1, store.openCount(childID), "session must stay open")
	})

	t.Run("MissingPickUpFields", func(t *testing.T) {
		mgr, _, _ := newTestManager()
		childID := newChildID()

		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)

		pickUp := validPickUp()
		pickUp.Signature = ""

		_, err = mgr.CheckOut(ctx, "u1", session.ID.Hex(), pickUp)
		var ve *attendance.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "pickUpInfo.signature", ve.Field)

		active, err := mgr.ActiveSession(ctx, childID)
		require.NoError(t, err)
		assert.NotNil(t, active, "session must stay open after a failed check-out")
	})
}

func TestBulkOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("CheckInContinuesPastConflicts", func(t *testing.T) {
		mgr, _, _ := newTestManager()
		c1, c2 := newChildID(), newChildID()

		_, err := mgr.CheckIn(ctx, "u1", validCheckIn(c1))
		require.NoError(t, err)

		result, err := mgr.BulkCheckIn(ctx, "u1", []string{c1, c2}, validDropOff())
		require.NoError(t, err)

		assert.Equal(t, []string{c2}, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, c1, result.Failed[0].ChildID)
		assert.True(t, attendance.IsConflict(result.Failed[0].Err))
	})

	t.Run("CheckOutFailsChildrenWithoutOpenSession", func(t *testing.T) {
		mgr, _, clock := newTestManager()
		c1, c2 := newChildID(), newChildID()

		_, err := mgr.CheckIn(ctx, "u1", validCheckIn(c1))
		require.NoError(t, err)
		clock.Advance(time.Hour)

		result, err := mgr.BulkCheckOut(ctx, "u1", []string{c1, c2}, validPickUp())
		require.NoError(t, err)

		assert.Equal(t, []string{c1}, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, c2, result.Failed[0].ChildID)
		assert.True(t, attendance.IsConflict(result.Failed[0].Err))
	})

	t.Run("DuplicateIDsProcessedOnce", func(t *testing.T) {
		mgr, _, _ := newTestManager()
		c1 := newChildID()

		result, err := mgr.BulkCheckIn(ctx, "u1", []string{c1, c1, c1}, validDropOff())
		require.NoError(t, err)
		assert.Equal(t, []string{c1}, result.Succeeded)
		assert.Empty(t, result.Failed)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		mgr, _, _ := newTestManager()

		_, err := mgr.BulkCheckIn(ctx, "", []string{newChildID()}, validDropOff())
		assert.ErrorIs(t, err, attendance.ErrUnauthenticated)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	mgr, _, clock := newTestManager()
	childID := newChildID()

	// Three day cycle: check in each morning, out each evening.
	for day := 0; day < 3; day++ {
		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)
		clock.Advance(8 * time.Hour)
		_, err = mgr.CheckOut(ctx, "u1", session.ID.Hex(), validPickUp())
		require.NoError(t, err)
		clock.Advance(16 * time.Hour)
	}

	history, err := mgr.History(ctx, childID, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		assert.True(t, history[i-1].CheckInTime.After(history[i].CheckInTime),
			"history must be newest first")
	}

	limited, err := mgr.History(ctx, childID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEditSession(t *testing.T) {
	ctx := context.Background()

	closedSession := func(t *testing.T, mgr *attendance.Manager, clock *testClock, childID string) *models.AttendanceSession {
		t.Helper()
		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)
		clock.Advance(8 * time.Hour)
		closed, err := mgr.CheckOut(ctx, "u1", session.ID.Hex(), validPickUp())
		require.NoError(t, err)
		return closed
	}

	t.Run("CheckOutBeforeCheckInRejected", func(t *testing.T) {
		mgr, _, clock := newTestManager()
		session := closedSession(t, mgr, clock, newChildID())

		// Check-in 08:00, attempted check-out 07:00.
		before := session.CheckInTime.Add(-time.Hour)
		_, err := mgr.EditSession(ctx, "staff1", session.ID.Hex(), attendance.SessionPatch{
			CheckOutTime: &before,
		})
		var ve *attendance.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "checkOutTime", ve.Field)
	})

	t.Run("FutureCheckInRejected", func(t *testing.T) {
		mgr, _, clock := newTestManager()
		session := closedSession(t, mgr, clock, newChildID())

		future := clock.Now().Add(time.Hour)
		_, err := mgr.EditSession(ctx, "staff1", session.ID.Hex(), attendance.SessionPatch{
			CheckInTime: &future,
		})
		var ve *attendance.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "checkInTime", ve.Field)
	})

	t.Run("FutureCheckOutRejected", func(t *testing.T) {
		mgr, _, clock := newTestManager()
		session := closedSession(t, mgr, clock, newChildID())

		future := clock.Now().Add(2 * time.Hour)
		_, err := mgr.EditSession(ctx, "staff1", session.ID.Hex(), attendance.SessionPatch{
			CheckOutTime: &future,
		})
		var ve *attendance.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "checkOutTime", ve.Field)
	})

	t.Run("ValidCorrectionCommits", func(t *testing.T) {
		mgr, _, clock := newTestManager()
		session := closedSession(t, mgr, clock, newChildID())

		corrected := session.CheckInTime.Add(30 * time.Minute)
		concerns := "arrived late"
		updated, err := mgr.EditSession(ctx, "staff1", session.ID.Hex(), attendance.SessionPatch{
			CheckInTime: &corrected,
			Concerns:    &concerns,
		})
		require.NoError(t, err)
		assert.Equal(t, corrected, updated.CheckInTime)
		assert.Equal(t, "arrived late", updated.Concerns)
		assert.Equal(t, "staff1", updated.UpdatedBy)

		reloaded, err := mgr.Session(ctx, session.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, corrected, reloaded.CheckInTime)
	})

	t.Run("CannotSetCheckOutOnOpenSession", func(t *testing.T) {
		mgr, _, clock := newTestManager()
		childID := newChildID()

		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)

		clock.Advance(time.Hour)
		at := clock.Now()
		_, err = mgr.EditSession(ctx, "staff1", session.ID.Hex(), attendance.SessionPatch{
			CheckOutTime: &at,
		})
		assert.True(t, attendance.IsConflict(err), "closing must go through CheckOut, got %v", err)
	})

	t.Run("CannotSetPickUpOnOpenSession", func(t *testing.T) {
		mgr, _, _ := newTestManager()
		childID := newChildID()

		session, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
		require.NoError(t, err)

		pickUp := validPickUp()
		_, err = mgr.EditSession(ctx, "staff1", session.ID.Hex(), attendance.SessionPatch{
			PickUp: &pickUp,
		})
		assert.True(t, attendance.IsConflict(err), "pick-up info belongs to a closed session, got %v", err)

		reloaded, err := mgr.Session(ctx, session.ID.Hex())
		require.NoError(t, err)
		assert.Nil(t, reloaded.PickUpInfo)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		mgr, _, _ := newTestManager()

		_, err := mgr.EditSession(ctx, "staff1", primitive.NewObjectID().Hex(), attendance.SessionPatch{})
		assert.True(t, attendance.IsNotFound(err))
	})
}

func TestActiveSessionIntegrity(t *testing.T) {
	ctx := context.Background()
	mgr, store, _ := newTestManager()
	childOID := primitive.NewObjectID()

	// Two open sessions for one child, as corrupted data could hold.
	for i := 0; i < 2; i++ {
		store.seed(models.AttendanceSession{
			ChildID:     childOID,
			GuardianID:  "u1",
			CheckInTime: baseTime.Add(time.Duration(i) * time.Minute),
			DropOffInfo: validDropOff(),
			CreatedAt:   baseTime,
			CreatedBy:   "u1",
		})
	}

	_, err := mgr.ActiveSession(ctx, childOID.Hex())
	var ie *attendance.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 2, ie.Count)

	// Check-in must refuse to proceed rather than pile on.
	_, err = mgr.CheckIn(ctx, "u1", validCheckIn(childOID.Hex()))
	assert.True(t, attendance.IsIntegrity(err))
}

func TestStoreFailurePropagates(t *testing.T) {
	ctx := context.Background()
	mgr, store, _ := newTestManager()
	childID := newChildID()

	store.failWith = &attendance.StoreUnavailableError{Op: "insert", Err: context.DeadlineExceeded}

	_, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
	var sue *attendance.StoreUnavailableError
	require.ErrorAs(t, err, &sue)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = mgr.History(ctx, childID, 0)
	assert.ErrorAs(t, err, &sue)
}

// TestOpenSessionInvariant interleaves random check-ins and check-outs for
// a small set of children and asserts the one-open-session invariant after
// every step.
func TestOpenSessionInvariant(t *testing.T) {
	ctx := context.Background()
	mgr, store, clock := newTestManager()
	rng := rand.New(rand.NewSource(42))

	childIDs := []string{newChildID(), newChildID(), newChildID()}

	for step := 0; step < 500; step++ {
		childID := childIDs[rng.Intn(len(childIDs))]
		clock.Advance(time.Duration(1+rng.Intn(300)) * time.Second)

		if rng.Intn(2) == 0 {
			_, err := mgr.CheckIn(ctx, "u1", validCheckIn(childID))
			if err != nil && !attendance.IsConflict(err) {
				t.Fatalf("step %d: unexpected check-in error: %v", step, err)
			}
		} else {
			active, err := mgr.ActiveSession(ctx, childID)
			require.NoError(t, err)
			if active != nil {
				_, err = mgr.CheckOut(ctx, "u1", active.ID.Hex(), validPickUp())
				require.NoError(t, err)
			}
		}

		for _, id := range childIDs {
			if n := store.openCount(id); n > 1 {
				t.Fatalf("step %d: child %s has %d open sessions", step, id, n)
			}
		}
	}
}
