package jobs

import (
	"log"

	"Backend-KiddoCare/src/database"

	"github.com/hibiken/asynq"
)

// StartWorker runs the Asynq server and the periodic overdue sweep in the
// background. Skipped entirely when Redis is not configured.
func StartWorker() {
	if database.RedisURI == "" || database.RedisClient == nil {
		log.Println("⚠️ Redis not available. Background worker will not start.")
		return
	}

	redisOpt := asynq.RedisClientOpt{Addr: database.RedisURI}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAttendanceEvent, HandleAttendanceEventTask)
	mux.HandleFunc(TypeOverdueSweep, HandleOverdueSweepTask)

	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Asynq server stopped:", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("*/15 * * * *", NewOverdueSweepTask()); err != nil {
		log.Println("❌ Failed to register overdue sweep:", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Println("❌ Asynq scheduler stopped:", err)
		}
	}()

	log.Println("✅ Background worker started")
}

// EnqueueAttendanceEvent fires the guardian notification task for a
// check-in or check-out. Best effort; attendance never fails because the
// queue is down.
func EnqueueAttendanceEvent(sessionID, childID, guardianID, event string) {
	if database.AsynqClient == nil {
		return
	}

	task, err := NewAttendanceEventTask(sessionID, childID, guardianID, event)
	if err != nil {
		log.Println("❌ Failed to build attendance event task:", err)
		return
	}
	if _, err := database.AsynqClient.Enqueue(task); err != nil {
		log.Println("❌ Failed to enqueue attendance event:", err)
	}
}
