package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	steps := []struct {
		name string
		fn   func(*sql.DB) error
	}{
		{"extensions", createExtensions},
		{"users", createUsersTable},
		{"roles", createRolesTables},
		{"sessions", createSessionsTable},
		{"students", createStudentsTable},
		{"attendance", createAttendanceTable},
		{"plans_subscriptions", createSubscriptionTables},
		{"assessment_records", createAssessmentRecordsTable},
		{"seed_roles", seedRoles},
	}

	for _, step := range steps {
		if err := step.fn(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", step.name, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createExtensions(db *sql.DB) error {
	_, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`)
	return err
}

func createUsersTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone VARCHAR(20) DEFAULT '',
			specialty TEXT DEFAULT '',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	_, err := db.Exec(query)
	return err
}

func createRolesTables(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS user_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (user_id, role_id)
		);
		CREATE INDEX IF NOT EXISTS idx_user_roles_user ON user_roles(user_id);
	`
	_, err := db.Exec(query)
	return err
}

func createSessionsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
	`
	_, err := db.Exec(query)
	return err
}

func createStudentsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id TEXT UNIQUE NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			gender VARCHAR(10) DEFAULT '',
			date_of_birth DATE,
			guardian_name TEXT DEFAULT '',
			phone VARCHAR(20) DEFAULT '',
			coach_id UUID REFERENCES users(id),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_students_coach ON students(coach_id);
	`
	_, err := db.Exec(query)
	return err
}

func createAttendanceTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS attendance (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL,
			marked_by UUID REFERENCES users(id),
			notes TEXT DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (student_id, date)
		);
		CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);
	`
	_, err := db.Exec(query)
	return err
}

func createSubscriptionTables(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS plans (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'USD',
			sessions_per_week INT DEFAULT 2,
			duration_days INT NOT NULL DEFAULT 30,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS subscriptions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			plan_id UUID NOT NULL REFERENCES plans(id),
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			status VARCHAR(12) NOT NULL DEFAULT 'active',
			amount_paid NUMERIC DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_subscriptions_student ON subscriptions(student_id);
		CREATE INDEX IF NOT EXISTS idx_subscriptions_status ON subscriptions(status, end_date);
	`
	_, err := db.Exec(query)
	return err
}

func createAssessmentRecordsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS assessment_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			coach_id UUID NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'normal',
			skills JSONB NOT NULL DEFAULT '[]',
			total_score DECIMAL(7,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_assessment_records_batch ON assessment_records(title, date);
		CREATE INDEX IF NOT EXISTS idx_assessment_records_coach ON assessment_records(coach_id);
		CREATE INDEX IF NOT EXISTS idx_assessment_records_student ON assessment_records(student_id);
	`
	_, err := db.Exec(query)
	return err
}

func seedRoles(db *sql.DB) error {
	query := `
		INSERT INTO roles (name)
		VALUES ('admin'), ('head_coach'), ('coach'), ('front_desk')
		ON CONFLICT (name) DO NOTHING
	`
	_, err := db.Exec(query)
	return err
}
