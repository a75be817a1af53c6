package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"Backend-KiddoCare/src/database"
	"Backend-KiddoCare/src/models"
	"Backend-KiddoCare/src/services/notifications"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleAttendanceEventTask writes a notification for the guardian when a
// child was checked in or out.
func HandleAttendanceEventTask(ctx context.Context, t *asynq.Task) error {
	var payload AttendancePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	childName := "your child"
	if oid, err := primitive.ObjectIDFromHex(payload.ChildID); err == nil {
		var child models.Child
		err := database.ChildCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&child)
		if err == mongo.ErrNoDocuments {
			log.Println("⚠️ Child not found. Possibly removed. Skipping task:", payload.ChildID)
			return nil
		}
		if err != nil {
			return err
		}
		childName = child.FirstName + " " + child.LastName
	}

	notifyType := models.NotifyCheckIn
	title := "Checked in"
	body := fmt.Sprintf("%s was checked in", childName)
	if payload.Event == "check-out" {
		notifyType = models.NotifyCheckOut
		title = "Checked out"
		body = fmt.Sprintf("%s was checked out", childName)
	}

	return notifications.Create(&models.Notification{
		UserID:    payload.GuardianID,
		Type:      notifyType,
		Title:     title,
		Body:      body,
		ChildID:   payload.ChildID,
		SessionID: payload.SessionID,
	})
}
