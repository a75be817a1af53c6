package messages

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"Backend-KiddoCare/src/database"
	"Backend-KiddoCare/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SendMessage stores a message between two users. The first message between
// a pair opens a new thread; later ones reuse it.
func SendMessage(senderID, recipientID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("message content is required")
	}
	if senderID == recipientID {
		return nil, errors.New("cannot message yourself")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	threadID, err := findThread(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if threadID == "" {
		threadID = uuid.NewString()
	}

	participants := []string{senderID, recipientID}
	sort.Strings(participants)

	msg := &models.Message{
		ID:           primitive.NewObjectID(),
		ThreadID:     threadID,
		SenderID:     senderID,
		RecipientID:  recipientID,
		Participants: participants,
		Content:      content,
		CreatedAt:    time.Now(),
	}

	if _, err := database.MessageCollection.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListConversation returns the messages between two users, newest first.
func ListConversation(userID, otherID string, limit int64) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	participants := []string{userID, otherID}
	sort.Strings(participants)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := database.MessageCollection.Find(ctx, bson.M{"participants": participants}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Message
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForUser returns every message involving the user, newest first.
func ListForUser(userID string, limit int64) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := database.MessageCollection.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Message
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findThread(ctx context.Context, a, b string) (string, error) {
	participants := []string{a, b}
	sort.Strings(participants)

	var existing models.Message
	err := database.MessageCollection.FindOne(ctx, bson.M{"participants": participants}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return existing.ThreadID, nil
}
