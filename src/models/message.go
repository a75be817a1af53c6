package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message between a guardian and staff. ThreadID groups a conversation;
// Participants carries both user ids for array-contains queries.
type Message struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ThreadID     string             `bson:"threadId" json:"threadId"`
	SenderID     string             `bson:"senderId" json:"senderId"`
	RecipientID  string             `bson:"recipientId" json:"recipientId"`
	Participants []string           `bson:"participants" json:"participants"`
	Content      string             `bson:"content" json:"content"`
	Read         bool               `bson:"read" json:"read"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
