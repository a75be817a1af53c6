package activities

import (
	"context"
	"errors"
	"time"

	"Backend-KiddoCare/src/database"
	"Backend-KiddoCare/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddActivity appends one daily activity entry for a child.
func AddActivity(childID, recordedBy, activityType, description string) (*models.DailyActivity, error) {
	oid, err := primitive.ObjectIDFromHex(childID)
	if err != nil {
		return nil, errors.New("invalid child ID")
	}

	activity := &models.DailyActivity{
		ID:          primitive.NewObjectID(),
		ChildID:     oid,
		Type:        activityType,
		Description: description,
		Timestamp:   time.Now(),
		RecordedBy:  recordedBy,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.ActivityCollection.InsertOne(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// ListActivities returns a child's activity log, newest first.
func ListActivities(childID string, limit int64) ([]models.DailyActivity, error) {
	oid, err := primitive.ObjectIDFromHex(childID)
	if err != nil {
		return nil, errors.New("invalid child ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := database.ActivityCollection.Find(ctx, bson.M{"childId": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.DailyActivity
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
