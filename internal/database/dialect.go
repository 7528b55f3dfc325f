package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// UpsertReviewState returns the insert-or-update SQL for review schedules
	UpsertReviewState() string

	// UpsertStreakState returns the insert-or-update SQL for streak state
	UpsertStreakState() string

	// UpsertWeakArea returns the insert-or-update SQL for weak-area tallies
	UpsertWeakArea() string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders not inside quotes
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// Upsert statements in the ON CONFLICT form shared by SQLite and
// PostgreSQL. MySQL overrides these with ON DUPLICATE KEY UPDATE.
const (
	upsertReviewStateOnConflict = `
		INSERT INTO review_states (learner_id, item_id, skill_type, ease_factor, interval_days, review_count, next_review_at, last_reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, item_id, skill_type) DO UPDATE SET
			ease_factor = excluded.ease_factor,
			interval_days = excluded.interval_days,
			review_count = excluded.review_count,
			next_review_at = excluded.next_review_at,
			last_reviewed_at = excluded.last_reviewed_at,
			updated_at = CURRENT_TIMESTAMP`

	upsertStreakStateOnConflict = `
		INSERT INTO streak_states (learner_id, freeze_count, last_freeze_used_at, freeze_used_for_date, consecutive_days_at_earn)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (learner_id) DO UPDATE SET
			freeze_count = excluded.freeze_count,
			last_freeze_used_at = excluded.last_freeze_used_at,
			freeze_used_for_date = excluded.freeze_used_for_date,
			consecutive_days_at_earn = excluded.consecutive_days_at_earn,
			updated_at = CURRENT_TIMESTAMP`

	upsertWeakAreaOnConflict = `
		INSERT INTO weak_areas (learner_id, area_type, area_identifier, mistake_count, needs_focus, last_mistake_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, area_type, area_identifier) DO UPDATE SET
			mistake_count = excluded.mistake_count,
			needs_focus = excluded.needs_focus,
			last_mistake_at = excluded.last_mistake_at`
)
