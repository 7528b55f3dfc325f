package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})

	t.Run("UpsertsUseOnConflict", func(t *testing.T) {
		for name, query := range map[string]string{
			"UpsertReviewState": dialect.UpsertReviewState(),
			"UpsertStreakState": dialect.UpsertStreakState(),
			"UpsertWeakArea":    dialect.UpsertWeakArea(),
		} {
			if !strings.Contains(query, "ON CONFLICT") {
				t.Errorf("%s should use ON CONFLICT", name)
			}
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if result {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})

	t.Run("UpsertsUseOnConflict", func(t *testing.T) {
		for name, query := range map[string]string{
			"UpsertReviewState": dialect.UpsertReviewState(),
			"UpsertStreakState": dialect.UpsertStreakState(),
			"UpsertWeakArea":    dialect.UpsertWeakArea(),
		} {
			if !strings.Contains(query, "ON CONFLICT") {
				t.Errorf("%s should use ON CONFLICT", name)
			}
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})

	t.Run("UpsertsUseOnDuplicateKey", func(t *testing.T) {
		for name, query := range map[string]string{
			"UpsertReviewState": dialect.UpsertReviewState(),
			"UpsertStreakState": dialect.UpsertStreakState(),
			"UpsertWeakArea":    dialect.UpsertWeakArea(),
		} {
			if !strings.Contains(query, "ON DUPLICATE KEY UPDATE") {
				t.Errorf("%s should use ON DUPLICATE KEY UPDATE", name)
			}
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM review_states WHERE learner_id = ?",
			expected: "SELECT * FROM review_states WHERE learner_id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM review_states WHERE learner_id = ?",
			expected: "SELECT * FROM review_states WHERE learner_id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO weak_areas (area_type, area_identifier) VALUES (?, ?)",
			expected: "INSERT INTO weak_areas (area_type, area_identifier) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE streak_states SET freeze_count = ?, freeze_used_for_date = ? WHERE learner_id = ?",
			expected: "UPDATE streak_states SET freeze_count = ?, freeze_used_for_date = ? WHERE learner_id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}
