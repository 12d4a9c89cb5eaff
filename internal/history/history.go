// Package history records every processed utterance so users can review
// what the assistant heard and what it did about it.
package history

import (
	"fmt"

	"github.com/voxdo/voxdo/internal/models"
)

// Outcome values for recorded commands.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not-found"
	OutcomeIgnored  = "ignored"
	OutcomeError    = "error"
)

// CommandLog is the subset of the persistence layer the recorder needs.
type CommandLog interface {
	LogCommand(transcript string, action models.Action, outcome, taskID, details string) (*models.CommandRecord, error)
	RecentCommands(limit int) ([]models.CommandRecord, error)
}

// Recorder appends command records to the command log.
type Recorder struct {
	log CommandLog
}

// NewRecorder creates a Recorder backed by the given command log.
func NewRecorder(log CommandLog) *Recorder {
	return &Recorder{log: log}
}

// Record writes a single command record. taskID may be empty when the
// command did not resolve to a task.
func (r *Recorder) Record(transcript string, action models.Action, outcome, taskID, details string) (*models.CommandRecord, error) {
	rec, err := r.log.LogCommand(transcript, action, outcome, taskID, details)
	if err != nil {
		return nil, fmt.Errorf("record command: %w", err)
	}
	return rec, nil
}

// Recent returns the newest records, newest first.
func (r *Recorder) Recent(limit int) ([]models.CommandRecord, error) {
	return r.log.RecentCommands(limit)
}
