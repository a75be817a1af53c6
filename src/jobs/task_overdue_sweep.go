package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"Backend-KiddoCare/src/database"
	"Backend-KiddoCare/src/models"
	"Backend-KiddoCare/src/services/notifications"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

// closingHour is when the daycare closes; sessions still open past it are
// flagged to their guardians. Configured via CLOSING_HOUR (0-23).
func closingHour() int {
	if v, err := strconv.Atoi(os.Getenv("CLOSING_HOUR")); err == nil && v >= 0 && v <= 23 {
		return v
	}
	return 18
}

// HandleOverdueSweepTask notifies guardians of sessions still open after
// closing time. Runs periodically via the scheduler.
func HandleOverdueSweepTask(ctx context.Context, t *asynq.Task) error {
	now := time.Now()
	closing := time.Date(now.Year(), now.Month(), now.Day(), closingHour(), 0, 0, 0, now.Location())
	if now.Before(closing) {
		return nil
	}

	cursor, err := database.CheckInCollection.Find(ctx, bson.M{
		"checkOutTime": nil,
		"checkInTime":  bson.M{"$lt": closing},
	})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var open []models.AttendanceSession
	if err := cursor.All(ctx, &open); err != nil {
		return err
	}

	for _, session := range open {
		err := notifications.Create(&models.Notification{
			UserID:    session.GuardianID,
			Type:      models.NotifyCheckOutOverdue,
			Title:     "Check-out overdue",
			Body:      fmt.Sprintf("A session opened at %s has not been checked out", session.CheckInTime.Format("15:04")),
			ChildID:   session.ChildID.Hex(),
			SessionID: session.ID.Hex(),
		})
		if err != nil {
			log.Println("❌ overdue sweep: notification failed:", err)
		}
	}

	if len(open) > 0 {
		log.Printf("⚠️ overdue sweep: %d session(s) still open after closing", len(open))
	}
	return nil
}
