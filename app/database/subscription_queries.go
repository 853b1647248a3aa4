package database

import (
	"database/sql"
	"fmt"

	"healy-academy/app/models"
)

// CreatePlan inserts a new membership plan.
func CreatePlan(db *sql.DB, plan *models.Plan) error {
	query := `
		INSERT INTO plans (name, price, currency, sessions_per_week, duration_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query,
		plan.Name, plan.Price, plan.Currency, plan.SessionsPerWeek, plan.DurationDays,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	return nil
}

// GetAllPlans returns all active membership plans.
func GetAllPlans(db *sql.DB) ([]*models.Plan, error) {
	query := `
		SELECT id, name, price, currency, sessions_per_week, duration_days, is_active, created_at, updated_at
		FROM plans
		WHERE deleted_at IS NULL AND is_active = true
		ORDER BY price`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		plan := &models.Plan{}
		err := rows.Scan(
			&plan.ID, &plan.Name, &plan.Price, &plan.Currency,
			&plan.SessionsPerWeek, &plan.DurationDays, &plan.IsActive,
			&plan.CreatedAt, &plan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// CreateSubscription inserts a subscription period for a student.
func CreateSubscription(db *sql.DB, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (student_id, plan_id, start_date, end_date, status, amount_paid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := db.QueryRow(query,
		sub.StudentID, sub.PlanID, sub.StartDate, sub.EndDate, sub.Status, sub.AmountPaid,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// GetStudentSubscriptions returns a student's subscriptions with the plan
// joined in, newest first.
func GetStudentSubscriptions(db *sql.DB, studentID string) ([]*models.Subscription, error) {
	query := `
		SELECT sub.id, sub.student_id, sub.plan_id, sub.start_date, sub.end_date,
		       sub.status, sub.amount_paid, sub.created_at, sub.updated_at,
		       p.id, p.name, p.price, p.currency, p.duration_days
		FROM subscriptions sub
		JOIN plans p ON sub.plan_id = p.id
		WHERE sub.student_id = $1 AND sub.deleted_at IS NULL
		ORDER BY sub.start_date DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	defer rows.Close()

	return scanSubscriptionsWithPlan(rows)
}

// GetExpiredActiveSubscriptions returns active subscriptions whose end date
// has passed. The nightly sweep marks these expired.
func GetExpiredActiveSubscriptions(db *sql.DB) ([]*models.Subscription, error) {
	query := `
		SELECT sub.id, sub.student_id, sub.plan_id, sub.start_date, sub.end_date,
		       sub.status, sub.amount_paid, sub.created_at, sub.updated_at,
		       p.id, p.name, p.price, p.currency, p.duration_days
		FROM subscriptions sub
		JOIN plans p ON sub.plan_id = p.id
		WHERE sub.status = 'active' AND sub.end_date < CURRENT_DATE AND sub.deleted_at IS NULL`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get expired subscriptions: %w", err)
	}
	defer rows.Close()

	return scanSubscriptionsWithPlan(rows)
}

// UpdateSubscriptionStatus moves a subscription to a new lifecycle state.
func UpdateSubscriptionStatus(db *sql.DB, id string, status models.SubscriptionStatus) error {
	query := `
		UPDATE subscriptions
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND deleted_at IS NULL`

	result, err := db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func scanSubscriptionsWithPlan(rows *sql.Rows) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for rows.Next() {
		sub := &models.Subscription{Plan: &models.Plan{}}
		err := rows.Scan(
			&sub.ID, &sub.StudentID, &sub.PlanID, &sub.StartDate, &sub.EndDate,
			&sub.Status, &sub.AmountPaid, &sub.CreatedAt, &sub.UpdatedAt,
			&sub.Plan.ID, &sub.Plan.Name, &sub.Plan.Price, &sub.Plan.Currency,
			&sub.Plan.DurationDays,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
