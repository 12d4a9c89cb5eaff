package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultClientTimeout is the default timeout for API requests.
const DefaultClientTimeout = 10 * time.Second

// Client wraps HTTP calls to the voxdo API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client with timeout
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultClientTimeout,
		},
	}
}

// ListTasks fetches tasks from the API
func (c *Client) ListTasks(status string) ([]TaskItem, error) {
	url := c.baseURL + "/tasks"
	if status != "" {
		url += "?status=" + status
	}

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	var tasks []struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		Priority string  `json:"priority"`
		Status   string  `json:"status"`
		DueDate  *string `json:"due_date"`
		DueTime  string  `json:"due_time"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, err
	}

	items := make([]TaskItem, len(tasks))
	for i, t := range tasks {
		due := ""
		if t.DueDate != nil && len(*t.DueDate) >= 10 {
			due = (*t.DueDate)[:10]
			if t.DueTime != "" {
				due += " " + t.DueTime
			}
		}
		items[i] = TaskItem{
			ID:       t.ID,
			Title:    t.Title,
			Priority: t.Priority,
			Status:   t.Status,
			Due:      due,
		}
	}
	return items, nil
}

// SendUtterance sends a transcript for execution
func (c *Client) SendUtterance(transcript string) (*CommandResult, error) {
	resp, err := c.post("/commands", map[string]string{"transcript": transcript})
	if err != nil {
		return nil, err
	}

	var result struct {
		OK      bool   `json:"ok"`
		Reply   string `json:"reply"`
		Command struct {
			Action string `json:"action"`
		} `json:"command"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &CommandResult{OK: result.OK, Reply: result.Reply, Action: result.Command.Action}, nil
}

// PreviewUtterance parses a transcript without executing it
func (c *Client) PreviewUtterance(transcript string) (*CommandPreview, error) {
	resp, err := c.post("/commands/preview", map[string]string{"transcript": transcript})
	if err != nil {
		return nil, err
	}

	var cmd struct {
		Action   string  `json:"action"`
		Title    string  `json:"title"`
		Priority string  `json:"priority"`
		Status   string  `json:"status"`
		DueDate  *string `json:"due_date"`
		DueTime  string  `json:"due_time"`
	}
	if err := json.Unmarshal(resp, &cmd); err != nil {
		return nil, err
	}

	preview := &CommandPreview{
		Action:   cmd.Action,
		Title:    cmd.Title,
		Priority: cmd.Priority,
		Status:   cmd.Status,
		DueTime:  cmd.DueTime,
	}
	if cmd.DueDate != nil && len(*cmd.DueDate) >= 10 {
		preview.DueDate = (*cmd.DueDate)[:10]
	}
	return preview, nil
}

// CompleteTask marks a task completed
func (c *Client) CompleteTask(taskID string) error {
	_, err := c.post("/tasks/"+taskID+"/complete", nil)
	return err
}

// DeleteTask removes a task
func (c *Client) DeleteTask(taskID string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/tasks/"+taskID, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(body))
	}
	return nil
}

func (c *Client) post(path string, data interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	return body, nil
}

// CheckHealth checks if the daemon is healthy
func (c *Client) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var health struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false, err
	}

	return health.OK, nil
}
