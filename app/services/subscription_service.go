package services

import (
	"database/sql"
	"log"

	"healy-academy/app/database"
	"healy-academy/app/models"
)

// ExpireLapsedSubscriptions marks every active subscription whose end date
// has passed as expired. One failing row does not stop the sweep.
func ExpireLapsedSubscriptions(db *sql.DB) error {
	log.Println("Starting subscription expiry sweep...")

	lapsed, err := database.GetExpiredActiveSubscriptions(db)
	if err != nil {
		return err
	}

	count := 0
	for _, sub := range lapsed {
		if err := database.UpdateSubscriptionStatus(db, sub.ID, models.SubscriptionExpired); err != nil {
			log.Printf("Failed to expire subscription %s: %v", sub.ID, err)
			continue
		}
		count++
	}

	log.Printf("Subscription expiry sweep completed. Expired %d of %d.", count, len(lapsed))
	return nil
}
