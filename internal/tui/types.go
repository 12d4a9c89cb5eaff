package tui

// TaskItem is a summary of a task for the list view
type TaskItem struct {
	ID       string
	Title    string
	Priority string
	Status   string
	Due      string
}

// CommandResult is the daemon's answer to a processed utterance
type CommandResult struct {
	OK     bool
	Reply  string
	Action string
}

// CommandPreview is a parsed utterance before it is applied
type CommandPreview struct {
	Action   string
	Title    string
	Priority string
	Status   string
	DueDate  string
	DueTime  string
}
