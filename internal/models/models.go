// Package models defines the core domain types for voxdo.
package models

import (
	"strings"
	"time"
)

// Action represents the intent of a spoken or typed command.
type Action string

const (
	ActionAdd      Action = "add"
	ActionComplete Action = "complete"
	ActionDelete   Action = "delete"
	ActionList     Action = "list"
	ActionUnknown  Action = "unknown"
)

// Priority represents task urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status represents the current state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Command is the structured result of parsing one utterance. Transcript
// always holds the caller's raw input, never the working text the parser
// consumed along the way.
type Command struct {
	Action     Action     `json:"action"`
	Title      string     `json:"title,omitempty"`
	Priority   Priority   `json:"priority"`
	Status     Status     `json:"status"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	DueTime    string     `json:"due_time,omitempty"` // 24-hour "HH:MM"
	Transcript string     `json:"transcript"`
}

// HasTitle reports whether extraction produced a usable title.
func (c Command) HasTitle() bool {
	return c.Title != ""
}

// TaskDraft is a task-creation payload projected from a Command. Unlike
// Command, the title is always set: when extraction left nothing usable the
// trimmed transcript stands in.
type TaskDraft struct {
	Title      string
	Priority   Priority
	Status     Status
	DueDate    *time.Time
	DueTime    string
	Transcript string
}

// NewTaskDraft projects a parsed command into a task-creation payload.
func NewTaskDraft(cmd Command) TaskDraft {
	title := cmd.Title
	if title == "" {
		title = strings.TrimSpace(cmd.Transcript)
	}
	return TaskDraft{
		Title:      title,
		Priority:   cmd.Priority,
		Status:     cmd.Status,
		DueDate:    cmd.DueDate,
		DueTime:    cmd.DueTime,
		Transcript: cmd.Transcript,
	}
}

// Task is a persisted task.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Priority   Priority   `json:"priority"`
	Status     Status     `json:"status"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	DueTime    string     `json:"due_time,omitempty"`
	Transcript string     `json:"transcript,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CommandRecord is an audit entry for one handled utterance.
type CommandRecord struct {
	ID         string    `json:"id"`
	Transcript string    `json:"transcript"`
	Action     Action    `json:"action"`
	Outcome    string    `json:"outcome"`
	TaskID     string    `json:"task_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
