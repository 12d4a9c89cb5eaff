package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/voxdo/voxdo/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "voxdo.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetTask(t *testing.T) {
	s := newTestStore(t)

	due := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	draft := models.TaskDraft{
		Title:      "Buy milk",
		Priority:   models.PriorityHigh,
		Status:     models.StatusPending,
		DueDate:    &due,
		DueTime:    "17:00",
		Transcript: "add task buy milk tomorrow at 5pm",
	}

	created, err := s.CreateTask(draft)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := s.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got == nil {
		t.Fatal("expected task, got nil")
	}
	if got.Title != "Buy milk" || got.Priority != models.PriorityHigh {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", got.DueDate, due)
	}
	if got.DueTime != "17:00" {
		t.Errorf("due time = %q, want 17:00", got.DueTime)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetTask("no-such-id")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing task, got %+v", got)
	}
}

func TestListTasksFilters(t *testing.T) {
	s := newTestStore(t)

	drafts := []models.TaskDraft{
		{Title: "One", Priority: models.PriorityHigh, Status: models.StatusPending},
		{Title: "Two", Priority: models.PriorityLow, Status: models.StatusPending},
		{Title: "Three", Priority: models.PriorityHigh, Status: models.StatusCompleted},
	}
	for _, d := range drafts {
		if _, err := s.CreateTask(d); err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	all, err := s.ListTasks("", "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(all))
	}

	pending, err := s.ListTasks("pending", "")
	if err != nil {
		t.Fatalf("ListTasks pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending tasks, got %d", len(pending))
	}

	highPending, err := s.ListTasks("pending", "high")
	if err != nil {
		t.Fatalf("ListTasks pending high: %v", err)
	}
	if len(highPending) != 1 || highPending[0].Title != "One" {
		t.Errorf("unexpected filtered result: %+v", highPending)
	}
}

func TestFindTaskByTitle(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateTask(models.TaskDraft{Title: "Call the dentist", Priority: models.PriorityMedium, Status: models.StatusCompleted}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	open, err := s.CreateTask(models.TaskDraft{Title: "Call the dentist again", Priority: models.PriorityMedium, Status: models.StatusPending})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := s.FindTaskByTitle("dentist")
	if err != nil {
		t.Fatalf("FindTaskByTitle: %v", err)
	}
	if got == nil {
		t.Fatal("expected a match")
	}
	// The open task wins over the completed one.
	if got.ID != open.ID {
		t.Errorf("matched %q, want the pending task", got.Title)
	}

	none, err := s.FindTaskByTitle("groceries")
	if err != nil {
		t.Fatalf("FindTaskByTitle: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for no match, got %+v", none)
	}

	blank, err := s.FindTaskByTitle("   ")
	if err != nil {
		t.Fatalf("FindTaskByTitle blank: %v", err)
	}
	if blank != nil {
		t.Errorf("expected nil for blank query, got %+v", blank)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateTask(models.TaskDraft{Title: "Finish report", Priority: models.PriorityMedium, Status: models.StatusPending})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := s.UpdateTaskStatus(created.ID, models.StatusCompleted); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}

	got, err := s.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("updated_at not refreshed: %v < %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateTask(models.TaskDraft{Title: "Temp", Priority: models.PriorityLow, Status: models.StatusPending})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := s.DeleteTask(created.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	got, err := s.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got != nil {
		t.Error("task still present after delete")
	}

	// Deleting again is a no-op.
	if err := s.DeleteTask(created.ID); err != nil {
		t.Errorf("DeleteTask missing: %v", err)
	}
}

func TestDueTasksBetween(t *testing.T) {
	s := newTestStore(t)

	mk := func(title string, due time.Time, status models.Status) {
		t.Helper()
		if _, err := s.CreateTask(models.TaskDraft{Title: title, Priority: models.PriorityMedium, Status: status, DueDate: &due}); err != nil {
			t.Fatalf("CreateTask %s: %v", title, err)
		}
	}

	base := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	mk("inside", base.Add(6*time.Hour), models.StatusPending)
	mk("completed", base.Add(6*time.Hour), models.StatusCompleted)
	mk("outside", base.Add(48*time.Hour), models.StatusPending)
	if _, err := s.CreateTask(models.TaskDraft{Title: "no due", Priority: models.PriorityMedium, Status: models.StatusPending}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := s.DueTasksBetween(base, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("DueTasksBetween: %v", err)
	}
	if len(got) != 1 || got[0].Title != "inside" {
		t.Errorf("unexpected due tasks: %+v", got)
	}
}

func TestCommandLog(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.LogCommand("add task buy milk", models.ActionAdd, "ok", "task-1", "created")
	if err != nil {
		t.Fatalf("LogCommand: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated id")
	}

	if _, err := s.LogCommand("list my tasks", models.ActionList, "ok", "", ""); err != nil {
		t.Fatalf("LogCommand: %v", err)
	}

	recs, err := s.RecentCommands(10)
	if err != nil {
		t.Fatalf("RecentCommands: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Action != models.ActionList {
		t.Errorf("expected newest first, got %q", recs[0].Action)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
