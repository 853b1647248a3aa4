package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 00:15, after the day has rolled over
			if now.Hour() == 0 && now.Minute() == 15 {
				log.Println("Triggering scheduled tasks [00:15]...")

				if err := ExpireLapsedSubscriptions(db); err != nil {
					log.Printf("Error expiring subscriptions: %v", err)
				}
			}
		}
	}()
}
