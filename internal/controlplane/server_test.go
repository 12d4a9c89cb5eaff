package controlplane

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voxdo/voxdo/internal/history"
	"github.com/voxdo/voxdo/internal/models"
	"github.com/voxdo/voxdo/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	service := NewService(st, history.NewRecorder(st))
	return NewServer(service, "127.0.0.1:0", discardLogger()), st
}

func TestHealthEndpoint_OK(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !health.OK || !health.DB {
		t.Errorf("Expected healthy response, got %+v", health)
	}
	if health.Version == "" {
		t.Error("Expected version to be set")
	}
}

func TestHealthEndpoint_MethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Result().StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Result().StatusCode)
	}
}

func TestHealthEndpoint_DBError(t *testing.T) {
	s, st := newTestServer(t)

	// Close the store to simulate DB error
	st.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if health.OK || health.DB {
		t.Errorf("Expected unhealthy response, got %+v", health)
	}
}

func TestCommandsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	body := strings.NewReader(`{"transcript":"add task buy milk tomorrow at 5pm"}`)
	req := httptest.NewRequest(http.MethodPost, "/commands", body)
	w := httptest.NewRecorder()

	s.handleCommands(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected OK, reply: %q", result.Reply)
	}
	if result.Task == nil || result.Task.Title != "Buy milk" {
		t.Errorf("unexpected task: %+v", result.Task)
	}
	if result.Command.DueTime != "17:00" {
		t.Errorf("due time = %q, want 17:00", result.Command.DueTime)
	}
}

func TestCommandsEndpoint_InvalidJSON(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	s.handleCommands(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Result().StatusCode)
	}
}

func TestPreviewEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	body := strings.NewReader(`{"transcript":"this is urgent, add task finish report"}`)
	req := httptest.NewRequest(http.MethodPost, "/commands/preview", body)
	w := httptest.NewRecorder()

	s.handlePreview(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var cmd models.Command
	if err := json.NewDecoder(resp.Body).Decode(&cmd); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if cmd.Action != models.ActionAdd || cmd.Priority != models.PriorityHigh {
		t.Errorf("unexpected command: %+v", cmd)
	}
	if cmd.Title != "Finish report" {
		t.Errorf("title = %q, want %q", cmd.Title, "Finish report")
	}

	// Preview must not create anything.
	tasks, err := s.service.ListTasks("", "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("preview created %d tasks", len(tasks))
	}
}

func TestTasksEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	// Create via POST /tasks
	body := strings.NewReader(`{"transcript":"add task buy groceries"}`)
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	w := httptest.NewRecorder()
	s.handleTasks(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Result().StatusCode)
	}
	var created models.Task
	if err := json.NewDecoder(w.Result().Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// List
	req = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w = httptest.NewRecorder()
	s.handleTasks(w, req)

	var tasks []models.Task
	if err := json.NewDecoder(w.Result().Body).Decode(&tasks); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	// Get by ID
	req = httptest.NewRequest(http.MethodGet, "/tasks/"+created.ID, nil)
	w = httptest.NewRecorder()
	s.handleTaskByID(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("get: expected status 200, got %d", w.Result().StatusCode)
	}

	// Complete
	req = httptest.NewRequest(http.MethodPost, "/tasks/"+created.ID+"/complete", nil)
	w = httptest.NewRecorder()
	s.handleTaskByID(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("complete: expected status 200, got %d", w.Result().StatusCode)
	}
	var completed models.Task
	if err := json.NewDecoder(w.Result().Body).Decode(&completed); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if completed.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", completed.Status)
	}

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/tasks/"+created.ID, nil)
	w = httptest.NewRecorder()
	s.handleTaskByID(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("delete: expected status 200, got %d", w.Result().StatusCode)
	}

	// Missing task
	req = httptest.NewRequest(http.MethodGet, "/tasks/"+created.ID, nil)
	w = httptest.NewRecorder()
	s.handleTaskByID(w, req)
	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Result().StatusCode)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	body := strings.NewReader(`{"transcript":"add task buy milk"}`)
	req := httptest.NewRequest(http.MethodPost, "/commands", body)
	s.handleCommands(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	s.handleHistory(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Result().StatusCode)
	}
	var recs []models.CommandRecord
	if err := json.NewDecoder(w.Result().Body).Decode(&recs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 record, got %d", len(recs))
	}

	// Bad limit
	req = httptest.NewRequest(http.MethodGet, "/history?limit=abc", nil)
	w = httptest.NewRecorder()
	s.handleHistory(w, req)
	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Result().StatusCode)
	}
}
