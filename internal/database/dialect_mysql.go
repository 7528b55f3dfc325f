package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) SupportsLastInsertId() bool {
	return true
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	// Configure connection pool for MySQL
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Ensure foreign key checks are enabled
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1;"); err != nil {
		return err
	}

	return nil
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

func (d *MySQLDialect) UpsertReviewState() string {
	return `
		INSERT INTO review_states (learner_id, item_id, skill_type, ease_factor, interval_days, review_count, next_review_at, last_reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			ease_factor = VALUES(ease_factor),
			interval_days = VALUES(interval_days),
			review_count = VALUES(review_count),
			next_review_at = VALUES(next_review_at),
			last_reviewed_at = VALUES(last_reviewed_at),
			updated_at = CURRENT_TIMESTAMP`
}

func (d *MySQLDialect) UpsertStreakState() string {
	return `
		INSERT INTO streak_states (learner_id, freeze_count, last_freeze_used_at, freeze_used_for_date, consecutive_days_at_earn)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			freeze_count = VALUES(freeze_count),
			last_freeze_used_at = VALUES(last_freeze_used_at),
			freeze_used_for_date = VALUES(freeze_used_for_date),
			consecutive_days_at_earn = VALUES(consecutive_days_at_earn),
			updated_at = CURRENT_TIMESTAMP`
}

func (d *MySQLDialect) UpsertWeakArea() string {
	return `
		INSERT INTO weak_areas (learner_id, area_type, area_identifier, mistake_count, needs_focus, last_mistake_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			mistake_count = VALUES(mistake_count),
			needs_focus = VALUES(needs_focus),
			last_mistake_at = VALUES(last_mistake_at)`
}
