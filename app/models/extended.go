package models

import "time"

// DashboardStats aggregates the headline numbers shown on the dashboard.
type DashboardStats struct {
	TotalStudents       int        `json:"total_students"`
	TotalCoaches        int        `json:"total_coaches"`
	ActiveSubscriptions int        `json:"active_subscriptions"`
	MonthlyRevenue      float64    `json:"monthly_revenue"`
	StudentAttendance   float64    `json:"student_attendance"`
	RecentActivities    []Activity `json:"recent_activities"`
}

type Activity struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TimeAgo     string    `json:"time_ago"`
	RawTime     time.Time `json:"-"`
}
