package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"wortschatz/internal/database"
)

// BackupData represents the complete progress backup structure
type BackupData struct {
	Version      string              `json:"version"`
	ExportedAt   time.Time           `json:"exported_at"`
	ReviewStates []ReviewStateBackup `json:"review_states"`
	StreakStates []StreakStateBackup `json:"streak_states"`
	WeakAreas    []WeakAreaBackup    `json:"weak_areas"`
	Sessions     []SessionBackup     `json:"sessions"`
	Attempts     []AttemptBackup     `json:"attempts"`
}

// ReviewStateBackup represents a review schedule record for backup
type ReviewStateBackup struct {
	LearnerID      int64      `json:"learner_id"`
	ItemID         int64      `json:"item_id"`
	SkillType      string     `json:"skill_type"`
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   int        `json:"interval_days"`
	ReviewCount    int        `json:"review_count"`
	NextReviewAt   time.Time  `json:"next_review_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// StreakStateBackup represents a streak record for backup
type StreakStateBackup struct {
	LearnerID             int64      `json:"learner_id"`
	FreezeCount           int        `json:"freeze_count"`
	LastFreezeUsedAt      *time.Time `json:"last_freeze_used_at,omitempty"`
	FreezeUsedForDate     string     `json:"freeze_used_for_date,omitempty"`
	ConsecutiveDaysAtEarn int        `json:"consecutive_days_at_earn"`
}

// WeakAreaBackup represents a weak-area tally for backup
type WeakAreaBackup struct {
	LearnerID     int64     `json:"learner_id"`
	AreaType      string    `json:"area_type"`
	AreaID        string    `json:"area_identifier"`
	MistakeCount  int       `json:"mistake_count"`
	NeedsFocus    bool      `json:"needs_focus"`
	LastMistakeAt time.Time `json:"last_mistake_at"`
}

// SessionBackup represents a practice session record for backup
type SessionBackup struct {
	ID             int64      `json:"id"`
	LearnerID      int64      `json:"learner_id"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
}

// AttemptBackup represents a question attempt record for backup
type AttemptBackup struct {
	SessionID     int64     `json:"session_id"`
	ItemID        int64     `json:"item_id"`
	SkillType     string    `json:"skill_type"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	TimeTakenMs   int       `json:"time_taken_ms"`
	AttemptedAt   time.Time `json:"attempted_at"`
}

// BackupService exports and imports learner progress as portable JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes all learner progress to a JSON file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Progress exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports all learner progress to an io.Writer
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportReviewStates(backup); err != nil {
		return fmt.Errorf("failed to export review states: %w", err)
	}
	if err := s.exportStreakStates(backup); err != nil {
		return fmt.Errorf("failed to export streak states: %w", err)
	}
	if err := s.exportWeakAreas(backup); err != nil {
		return fmt.Errorf("failed to export weak areas: %w", err)
	}
	if err := s.exportSessions(backup); err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	if err := s.exportAttempts(backup); err != nil {
		return fmt.Errorf("failed to export attempts: %w", err)
	}

	log.Printf("Exported: %d review states, %d streak states, %d weak areas, %d sessions, %d attempts",
		len(backup.ReviewStates), len(backup.StreakStates), len(backup.WeakAreas),
		len(backup.Sessions), len(backup.Attempts))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores learner progress from a backup file. Review, streak
// and weak-area rows are upserted by their natural keys; session
// history keeps its original IDs, so restoring over existing sessions
// needs the clear flag first.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores learner progress from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// All tables import in one transaction so a failed restore leaves
	// the existing progress untouched
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.importReviewStates(tx, backup.ReviewStates); err != nil {
		return fmt.Errorf("failed to import review states: %w", err)
	}
	if err := s.importStreakStates(tx, backup.StreakStates); err != nil {
		return fmt.Errorf("failed to import streak states: %w", err)
	}
	if err := s.importWeakAreas(tx, backup.WeakAreas); err != nil {
		return fmt.Errorf("failed to import weak areas: %w", err)
	}
	if err := s.importSessions(tx, backup.Sessions); err != nil {
		return fmt.Errorf("failed to import sessions: %w", err)
	}
	if err := s.importAttempts(tx, backup.Attempts); err != nil {
		return fmt.Errorf("failed to import attempts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Println("Progress import completed successfully")
	return nil
}

func (s *BackupService) exportReviewStates(backup *BackupData) error {
	query := "SELECT learner_id, item_id, skill_type, ease_factor, interval_days, review_count, next_review_at, last_reviewed_at FROM review_states ORDER BY learner_id, item_id, skill_type"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rs ReviewStateBackup
		var lastReviewedAt sql.NullTime
		if err := rows.Scan(&rs.LearnerID, &rs.ItemID, &rs.SkillType, &rs.EaseFactor, &rs.IntervalDays, &rs.ReviewCount, &rs.NextReviewAt, &lastReviewedAt); err != nil {
			return err
		}
		if lastReviewedAt.Valid {
			rs.LastReviewedAt = &lastReviewedAt.Time
		}
		backup.ReviewStates = append(backup.ReviewStates, rs)
	}
	return rows.Err()
}

func (s *BackupService) exportStreakStates(backup *BackupData) error {
	query := "SELECT learner_id, freeze_count, last_freeze_used_at, freeze_used_for_date, consecutive_days_at_earn FROM streak_states ORDER BY learner_id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ss StreakStateBackup
		var lastFreezeUsedAt sql.NullTime
		var freezeUsedForDate sql.NullString
		if err := rows.Scan(&ss.LearnerID, &ss.FreezeCount, &lastFreezeUsedAt, &freezeUsedForDate, &ss.ConsecutiveDaysAtEarn); err != nil {
			return err
		}
		if lastFreezeUsedAt.Valid {
			ss.LastFreezeUsedAt = &lastFreezeUsedAt.Time
		}
		if freezeUsedForDate.Valid {
			ss.FreezeUsedForDate = freezeUsedForDate.String
		}
		backup.StreakStates = append(backup.StreakStates, ss)
	}
	return rows.Err()
}

func (s *BackupService) exportWeakAreas(backup *BackupData) error {
	query := "SELECT learner_id, area_type, area_identifier, mistake_count, needs_focus, last_mistake_at FROM weak_areas ORDER BY learner_id, area_type, area_identifier"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var wa WeakAreaBackup
		if err := rows.Scan(&wa.LearnerID, &wa.AreaType, &wa.AreaID, &wa.MistakeCount, &wa.NeedsFocus, &wa.LastMistakeAt); err != nil {
			return err
		}
		backup.WeakAreas = append(backup.WeakAreas, wa)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	query := "SELECT id, learner_id, started_at, completed_at, total_questions, correct_answers FROM practice_sessions ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sb SessionBackup
		var completedAt sql.NullTime
		if err := rows.Scan(&sb.ID, &sb.LearnerID, &sb.StartedAt, &completedAt, &sb.TotalQuestions, &sb.CorrectAnswers); err != nil {
			return err
		}
		if completedAt.Valid {
			sb.CompletedAt = &completedAt.Time
		}
		backup.Sessions = append(backup.Sessions, sb)
	}
	return rows.Err()
}

func (s *BackupService) exportAttempts(backup *BackupData) error {
	query := "SELECT session_id, item_id, skill_type, user_answer, correct_answer, is_correct, time_taken_ms, attempted_at FROM question_attempts ORDER BY session_id, attempted_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ab AttemptBackup
		if err := rows.Scan(&ab.SessionID, &ab.ItemID, &ab.SkillType, &ab.UserAnswer, &ab.CorrectAnswer, &ab.IsCorrect, &ab.TimeTakenMs, &ab.AttemptedAt); err != nil {
			return err
		}
		backup.Attempts = append(backup.Attempts, ab)
	}
	return rows.Err()
}

func (s *BackupService) importReviewStates(tx *database.Tx, states []ReviewStateBackup) error {
	log.Printf("Importing %d review states...", len(states))
	for _, rs := range states {
		var lastReviewedAt sql.NullTime
		if rs.LastReviewedAt != nil {
			lastReviewedAt = sql.NullTime{Time: *rs.LastReviewedAt, Valid: true}
		}
		_, err := tx.Exec(tx.GetDialect().UpsertReviewState(),
			rs.LearnerID, rs.ItemID, rs.SkillType, rs.EaseFactor, rs.IntervalDays, rs.ReviewCount, rs.NextReviewAt, lastReviewedAt)
		if err != nil {
			return fmt.Errorf("failed to import review state for learner %d item %d: %w", rs.LearnerID, rs.ItemID, err)
		}
	}
	return nil
}

func (s *BackupService) importStreakStates(tx *database.Tx, states []StreakStateBackup) error {
	log.Printf("Importing %d streak states...", len(states))
	for _, ss := range states {
		var lastFreezeUsedAt sql.NullTime
		if ss.LastFreezeUsedAt != nil {
			lastFreezeUsedAt = sql.NullTime{Time: *ss.LastFreezeUsedAt, Valid: true}
		}
		var freezeUsedForDate sql.NullString
		if ss.FreezeUsedForDate != "" {
			freezeUsedForDate = sql.NullString{String: ss.FreezeUsedForDate, Valid: true}
		}
		_, err := tx.Exec(tx.GetDialect().UpsertStreakState(),
			ss.LearnerID, ss.FreezeCount, lastFreezeUsedAt, freezeUsedForDate, ss.ConsecutiveDaysAtEarn)
		if err != nil {
			return fmt.Errorf("failed to import streak state for learner %d: %w", ss.LearnerID, err)
		}
	}
	return nil
}

func (s *BackupService) importWeakAreas(tx *database.Tx, areas []WeakAreaBackup) error {
	log.Printf("Importing %d weak areas...", len(areas))
	for _, wa := range areas {
		_, err := tx.Exec(tx.GetDialect().UpsertWeakArea(),
			wa.LearnerID, wa.AreaType, wa.AreaID, wa.MistakeCount, wa.NeedsFocus, wa.LastMistakeAt)
		if err != nil {
			return fmt.Errorf("failed to import weak area %s/%s for learner %d: %w", wa.AreaType, wa.AreaID, wa.LearnerID, err)
		}
	}
	return nil
}

func (s *BackupService) importSessions(tx *database.Tx, sessions []SessionBackup) error {
	log.Printf("Importing %d sessions...", len(sessions))
	for _, sb := range sessions {
		var completedAt sql.NullTime
		if sb.CompletedAt != nil {
			completedAt = sql.NullTime{Time: *sb.CompletedAt, Valid: true}
		}
		query := "INSERT INTO practice_sessions (id, learner_id, started_at, completed_at, total_questions, correct_answers) VALUES (?, ?, ?, ?, ?, ?)"
		_, err := tx.Exec(query, sb.ID, sb.LearnerID, sb.StartedAt, completedAt, sb.TotalQuestions, sb.CorrectAnswers)
		if err != nil {
			return fmt.Errorf("failed to import session %d: %w", sb.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importAttempts(tx *database.Tx, attempts []AttemptBackup) error {
	log.Printf("Importing %d attempts...", len(attempts))
	for _, ab := range attempts {
		query := "INSERT INTO question_attempts (session_id, item_id, skill_type, user_answer, correct_answer, is_correct, time_taken_ms, attempted_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := tx.Exec(query, ab.SessionID, ab.ItemID, ab.SkillType, ab.UserAnswer, ab.CorrectAnswer, ab.IsCorrect, ab.TimeTakenMs, ab.AttemptedAt)
		if err != nil {
			return fmt.Errorf("failed to import attempt for session %d: %w", ab.SessionID, err)
		}
	}
	return nil
}
