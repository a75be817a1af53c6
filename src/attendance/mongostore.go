package attendance

import (
	"context"
	"time"

	"Backend-KiddoCare/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists attendance sessions in a MongoDB collection.
//
// The open-session invariant is enforced by the database itself: a partial
// unique index on childId over documents whose checkOutTime is null. Two
// concurrent check-ins for the same child race at the insert, and the loser
// gets a duplicate-key error.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore wraps a collection.
func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

// EnsureIndexes creates the partial unique index backing the one-open-
// session-per-child invariant. Call once at startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "childId", Value: 1}},
		Options: options.Index().
			SetName("one_open_session_per_child").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"checkOutTime": bson.M{"$type": "null"}}),
	})
	if err != nil {
		return &StoreUnavailableError{Op: "ensure indexes", Err: err}
	}
	return nil
}

func (s *MongoStore) OpenSessions(ctx context.Context, childID string) ([]models.AttendanceSession, error) {
	oid, err := primitive.ObjectIDFromHex(childID)
	if err != nil {
		return nil, &ValidationError{Field: "childId", Reason: "must be a valid id"}
	}

	cursor, err := s.col.Find(ctx, bson.M{"childId": oid, "checkOutTime": nil})
	if err != nil {
		return nil, &StoreUnavailableError{Op: "find open sessions", Err: err}
	}
	defer cursor.Close(ctx)

	var sessions []models.AttendanceSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, &StoreUnavailableError{Op: "decode open sessions", Err: err}
	}
	return sessions, nil
}

func (s *MongoStore) InsertOpenSession(ctx context.Context, session *models.AttendanceSession) error {
	session.ID = primitive.NewObjectID()
	_, err := s.col.InsertOne(ctx, session)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &ConflictError{Reason: "child already has an open session"}
		}
		return &StoreUnavailableError{Op: "insert session", Err: err}
	}
	return nil
}

func (s *MongoStore) SessionByID(ctx context.Context, id string) (*models.AttendanceSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &ValidationError{Field: "sessionId", Reason: "must be a valid id"}
	}

	var session models.AttendanceSession
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Resource: "session", ID: id}
	}
	if err != nil {
		return nil, &StoreUnavailableError{Op: "find session", Err: err}
	}
	return &session, nil
}

func (s *MongoStore) CloseSession(ctx context.Context, id string, pickUp models.PickUpInfo, at time.Time, callerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &ValidationError{Field: "sessionId", Reason: "must be a valid id"}
	}

	// Conditional update: only an open session matches, so a concurrent
	// double check-out loses cleanly.
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "checkOutTime": nil},
		bson.M{"$set": bson.M{
			"checkOutTime": at,
			"pickUpInfo":   pickUp,
			"updatedAt":    at,
			"updatedBy":    callerID,
		}},
	)
	if err != nil {
		return &StoreUnavailableError{Op: "close session", Err: err}
	}
	if res.MatchedCount == 0 {
		if _, err := s.SessionByID(ctx, id); err != nil {
			return err
		}
		return &ConflictError{Reason: "session is already closed"}
	}
	return nil
}

func (s *MongoStore) ReplaceSession(ctx context.Context, session *models.AttendanceSession) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	if err != nil {
		return &StoreUnavailableError{Op: "replace session", Err: err}
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{Resource: "session", ID: session.ID.Hex()}
	}
	return nil
}

func (s *MongoStore) SessionsByChild(ctx context.Context, childID string, limit int64) ([]models.AttendanceSession, error) {
	oid, err := primitive.ObjectIDFromHex(childID)
	if err != nil {
		return nil, &ValidationError{Field: "childId", Reason: "must be a valid id"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "checkInTime", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.col.Find(ctx, bson.M{"childId": oid}, opts)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "find sessions", Err: err}
	}
	defer cursor.Close(ctx)

	var sessions []models.AttendanceSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, &StoreUnavailableError{Op: "decode sessions", Err: err}
	}
	return sessions, nil
}
