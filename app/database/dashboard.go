package database

import (
	"database/sql"
	"fmt"
	"time"

	"healy-academy/app/models"
)

// GetDashboardStats collects the headline numbers for the dashboard in one
// pass. Any single failing query fails the whole call.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(
		`SELECT COUNT(*) FROM students WHERE deleted_at IS NULL AND is_active = true`,
	).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(DISTINCT u.id)
		FROM users u
		JOIN user_roles ur ON u.id = ur.user_id
		JOIN roles r ON ur.role_id = r.id
		WHERE r.name IN ('coach', 'head_coach') AND u.deleted_at IS NULL AND u.is_active = true`,
	).Scan(&stats.TotalCoaches)
	if err != nil {
		return nil, fmt.Errorf("failed to count coaches: %w", err)
	}

	err = db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(amount_paid), 0)
		FROM subscriptions
		WHERE status = 'active' AND deleted_at IS NULL
		  AND start_date >= date_trunc('month', CURRENT_DATE)`,
	).Scan(&stats.ActiveSubscriptions, &stats.MonthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	rate, err := GetAttendanceRate(db, 30)
	if err != nil {
		return nil, err
	}
	stats.StudentAttendance = rate

	activities, err := getRecentActivities(db)
	if err != nil {
		return nil, err
	}
	stats.RecentActivities = activities

	return stats, nil
}

// getRecentActivities builds the activity feed from the latest enrollments
// and assessment batches.
func getRecentActivities(db *sql.DB) ([]models.Activity, error) {
	query := `
		SELECT 'student', first_name || ' ' || last_name || ' enrolled', created_at
		FROM students WHERE deleted_at IS NULL
		UNION ALL
		SELECT 'assessment', title || ' recorded', MAX(created_at)
		FROM assessment_records WHERE deleted_at IS NULL
		GROUP BY title, date
		ORDER BY 3 DESC
		LIMIT 8`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var activity models.Activity
		if err := rows.Scan(&activity.Type, &activity.Title, &activity.RawTime); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.TimeAgo = timeAgo(activity.RawTime)
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
