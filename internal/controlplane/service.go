// Package controlplane provides the HTTP API and service layer for voxdo.
package controlplane

import (
	"time"

	"github.com/voxdo/voxdo/internal/history"
	"github.com/voxdo/voxdo/internal/models"
	"github.com/voxdo/voxdo/internal/nlp"
	"github.com/voxdo/voxdo/internal/store"
)

// Result is the outcome of processing one utterance: the parsed command,
// whether it succeeded, the spoken-style reply, and the task(s) involved.
type Result struct {
	Command models.Command `json:"command"`
	OK      bool           `json:"ok"`
	Reply   string         `json:"reply"`
	Task    *models.Task   `json:"task,omitempty"`
	Tasks   []models.Task  `json:"tasks,omitempty"`
}

// Service turns parsed voice commands into task operations.
type Service struct {
	store    *store.Store
	recorder *history.Recorder
}

// NewService creates a new control plane service.
func NewService(s *store.Store, rec *history.Recorder) *Service {
	return &Service{
		store:    s,
		recorder: rec,
	}
}

// HandleUtterance parses a transcript, executes the resulting command,
// and records the outcome. It never returns an error for a command that
// simply failed to match a task; that is reported through Result.
func (s *Service) HandleUtterance(transcript string, now time.Time) (*Result, error) {
	cmd := nlp.ParseAt(transcript, now)

	switch cmd.Action {
	case models.ActionAdd:
		return s.addTask(cmd)
	case models.ActionComplete:
		return s.completeTask(cmd)
	case models.ActionDelete:
		return s.deleteTask(cmd)
	case models.ActionList:
		return s.listTasks(cmd)
	default:
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeIgnored, "", "unrecognized utterance")
		return &Result{Command: cmd, OK: false, Reply: nlp.Respond(cmd, false)}, nil
	}
}

// PreviewUtterance parses a transcript without executing or recording
// anything. Used by the confirm-before-apply flow.
func (s *Service) PreviewUtterance(transcript string, now time.Time) models.Command {
	return nlp.ParseAt(transcript, now)
}

// --- Command Execution ---

func (s *Service) addTask(cmd models.Command) (*Result, error) {
	// The draft always carries a title: blank transcripts never parse to
	// an add, and NewTaskDraft falls back to the transcript otherwise.
	draft := models.NewTaskDraft(cmd)
	task, err := s.store.CreateTask(draft)
	if err != nil {
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeError, "", err.Error())
		return nil, err
	}

	s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeOK, task.ID, "created "+task.Title)
	return &Result{Command: cmd, OK: true, Reply: nlp.Respond(cmd, true), Task: task}, nil
}

func (s *Service) completeTask(cmd models.Command) (*Result, error) {
	task, err := s.store.FindTaskByTitle(cmd.Title)
	if err != nil {
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeError, "", err.Error())
		return nil, err
	}
	if task == nil {
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeNotFound, "", "")
		return &Result{Command: cmd, OK: false, Reply: nlp.Respond(cmd, false)}, nil
	}

	if err := s.store.UpdateTaskStatus(task.ID, models.StatusCompleted); err != nil {
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeError, task.ID, err.Error())
		return nil, err
	}
	task.Status = models.StatusCompleted

	s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeOK, task.ID, "completed "+task.Title)
	return &Result{Command: cmd, OK: true, Reply: nlp.Respond(cmd, true), Task: task}, nil
}

func (s *Service) deleteTask(cmd models.Command) (*Result, error) {
	task, err := s.store.FindTaskByTitle(cmd.Title)
	if err != nil {
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeError, "", err.Error())
		return nil, err
	}
	if task == nil {
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeNotFound, "", "")
		return &Result{Command: cmd, OK: false, Reply: nlp.Respond(cmd, false)}, nil
	}

	if err := s.store.DeleteTask(task.ID); err != nil {
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeError, task.ID, err.Error())
		return nil, err
	}

	s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeOK, task.ID, "deleted "+task.Title)
	return &Result{Command: cmd, OK: true, Reply: nlp.Respond(cmd, true), Task: task}, nil
}

func (s *Service) listTasks(cmd models.Command) (*Result, error) {
	tasks, err := s.store.ListTasks("", "")
	if err != nil {
		s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeError, "", err.Error())
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	s.recorder.Record(cmd.Transcript, cmd.Action, history.OutcomeOK, "", "")
	return &Result{Command: cmd, OK: true, Reply: nlp.Respond(cmd, true), Tasks: tasks}, nil
}

// --- Passthroughs ---

// GetTask retrieves a task by ID.
func (s *Service) GetTask(id string) (*models.Task, error) {
	return s.store.GetTask(id)
}

// ListTasks returns filtered tasks.
func (s *Service) ListTasks(status, priority string) ([]models.Task, error) {
	return s.store.ListTasks(status, priority)
}

// CompleteTask marks a task completed by ID.
func (s *Service) CompleteTask(id string) (*models.Task, error) {
	task, err := s.store.GetTask(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if err := s.store.UpdateTaskStatus(id, models.StatusCompleted); err != nil {
		return nil, err
	}
	task.Status = models.StatusCompleted
	return task, nil
}

// DeleteTask removes a task by ID.
func (s *Service) DeleteTask(id string) error {
	task, err := s.store.GetTask(id)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	return s.store.DeleteTask(id)
}

// History returns recent command records.
func (s *Service) History(limit int) ([]models.CommandRecord, error) {
	return s.recorder.Recent(limit)
}
