package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotifyCheckIn         = "attendance:check-in"
	NotifyCheckOut        = "attendance:check-out"
	NotifyCheckOutOverdue = "attendance:overdue"
)

// Notification stored for a user. Delivery (push/toast) is outside this
// backend; clients poll their notification list.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	ChildID   string             `bson:"childId,omitempty" json:"childId,omitempty"`
	SessionID string             `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
