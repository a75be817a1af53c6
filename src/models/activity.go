package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyActivity is one logged event for a child (nap, meal, play, note).
type DailyActivity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChildID     primitive.ObjectID `bson:"childId" json:"childId"`
	Type        string             `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	RecordedBy  string             `bson:"recordedBy" json:"recordedBy"`
}
