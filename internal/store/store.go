// Package store provides SQLite-backed persistence for voxdo.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voxdo/voxdo/internal/models"
	_ "modernc.org/sqlite"
)

// Store provides access to the voxdo SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Open with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT 'medium',
		status TEXT NOT NULL DEFAULT 'pending',
		due_date DATETIME,
		due_time TEXT,
		transcript TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS command_log (
		id TEXT PRIMARY KEY,
		transcript TEXT NOT NULL,
		action TEXT NOT NULL,
		outcome TEXT NOT NULL,
		task_id TEXT,
		details TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);
	CREATE INDEX IF NOT EXISTS idx_command_log_timestamp ON command_log(timestamp);
	`

	_, err := s.db.Exec(schema)
	return err
}

// --- Task Operations ---

// CreateTask inserts a new task from a projected draft.
func (s *Store) CreateTask(draft models.TaskDraft) (*models.Task, error) {
	now := time.Now().UTC()
	task := &models.Task{
		ID:         uuid.New().String(),
		Title:      draft.Title,
		Priority:   draft.Priority,
		Status:     draft.Status,
		DueDate:    draft.DueDate,
		DueTime:    draft.DueTime,
		Transcript: draft.Transcript,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var due sql.NullTime
	if task.DueDate != nil {
		due = sql.NullTime{Time: *task.DueDate, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO tasks (id, title, priority, status, due_date, due_time, transcript, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Priority, task.Status, due, task.DueTime, task.Transcript, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(id string) (*models.Task, error) {
	row := s.db.QueryRow(
		`SELECT id, title, priority, status, due_date, due_time, transcript, created_at, updated_at FROM tasks WHERE id = ?`,
		id,
	)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query task: %w", err)
	}
	return task, nil
}

// ListTasks returns all tasks, optionally filtered by status and priority.
func (s *Store) ListTasks(status, priority string) ([]models.Task, error) {
	query := `SELECT id, title, priority, status, due_date, due_time, transcript, created_at, updated_at FROM tasks`
	var conds []string
	var args []interface{}

	if status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, status)
	}
	if priority != "" {
		conds = append(conds, `priority = ?`)
		args = append(args, priority)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// FindTaskByTitle returns the best match for a spoken title: a
// case-insensitive substring match, preferring tasks that are not yet
// completed, newest first. Returns nil when nothing matches.
func (s *Store) FindTaskByTitle(title string) (*models.Task, error) {
	q := strings.TrimSpace(title)
	if q == "" {
		return nil, nil
	}

	row := s.db.QueryRow(
		`SELECT id, title, priority, status, due_date, due_time, transcript, created_at, updated_at
		 FROM tasks WHERE title LIKE ? COLLATE NOCASE
		 ORDER BY CASE WHEN status = 'completed' THEN 1 ELSE 0 END, created_at DESC
		 LIMIT 1`,
		"%"+q+"%",
	)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query task by title: %w", err)
	}
	return task, nil
}

// UpdateTaskStatus updates the status of a task.
func (s *Store) UpdateTaskStatus(id string, status models.Status) error {
	_, err := s.db.Exec(
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	return err
}

// DeleteTask removes a task. Deleting a missing task is not an error.
func (s *Store) DeleteTask(id string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// DueTasksBetween returns non-completed tasks whose due date falls inside
// the half-open interval [from, to).
func (s *Store) DueTasksBetween(from, to time.Time) ([]models.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, title, priority, status, due_date, due_time, transcript, created_at, updated_at
		 FROM tasks WHERE status != 'completed' AND due_date IS NOT NULL AND due_date >= ? AND due_date < ?
		 ORDER BY due_date ASC`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan due task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (*models.Task, error) {
	task := &models.Task{}
	var due sql.NullTime
	var dueTime, transcript sql.NullString

	err := row.Scan(&task.ID, &task.Title, &task.Priority, &task.Status, &due, &dueTime, &transcript, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		t := due.Time
		task.DueDate = &t
	}
	if dueTime.Valid {
		task.DueTime = dueTime.String
	}
	if transcript.Valid {
		task.Transcript = transcript.String
	}
	return task, nil
}

// --- Command Log Operations ---

// LogCommand appends an entry to the command audit log.
func (s *Store) LogCommand(transcript string, action models.Action, outcome, taskID, details string) (*models.CommandRecord, error) {
	rec := &models.CommandRecord{
		ID:         uuid.New().String(),
		Transcript: transcript,
		Action:     action,
		Outcome:    outcome,
		TaskID:     taskID,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO command_log (id, transcript, action, outcome, task_id, details, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Transcript, rec.Action, rec.Outcome, rec.TaskID, rec.Details, rec.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert command log: %w", err)
	}
	return rec, nil
}

// RecentCommands returns the newest command log entries, newest first.
func (s *Store) RecentCommands(limit int) ([]models.CommandRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, transcript, action, outcome, task_id, details, timestamp FROM command_log ORDER BY timestamp DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query command log: %w", err)
	}
	defer rows.Close()

	var recs []models.CommandRecord
	for rows.Next() {
		var rec models.CommandRecord
		var taskID, details sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Transcript, &rec.Action, &rec.Outcome, &taskID, &details, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan command log: %w", err)
		}
		if taskID.Valid {
			rec.TaskID = taskID.String
		}
		if details.Valid {
			rec.Details = details.String
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
