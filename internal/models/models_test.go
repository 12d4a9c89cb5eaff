package models

import (
	"testing"
	"time"
)

func TestNewTaskDraftFallbackTitle(t *testing.T) {
	due := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	cmd := Command{
		Action:     ActionAdd,
		Priority:   PriorityHigh,
		Status:     StatusPending,
		DueDate:    &due,
		DueTime:    "17:00",
		Transcript: "  mumbled something  ",
	}

	draft := NewTaskDraft(cmd)
	if draft.Title != "mumbled something" {
		t.Errorf("Expected trimmed transcript as fallback title, got %q", draft.Title)
	}
	if draft.Priority != PriorityHigh || draft.Status != StatusPending {
		t.Errorf("Priority/status not carried through: %s/%s", draft.Priority, draft.Status)
	}
	if draft.DueDate == nil || !draft.DueDate.Equal(due) || draft.DueTime != "17:00" {
		t.Errorf("Schedule not carried through: %v %q", draft.DueDate, draft.DueTime)
	}
}

func TestNewTaskDraftKeepsExtractedTitle(t *testing.T) {
	cmd := Command{Action: ActionAdd, Title: "Buy milk", Priority: PriorityMedium, Status: StatusPending, Transcript: "add task buy milk"}
	if draft := NewTaskDraft(cmd); draft.Title != "Buy milk" {
		t.Errorf("Expected extracted title to win, got %q", draft.Title)
	}
}
