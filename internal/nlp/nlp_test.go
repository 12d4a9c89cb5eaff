package nlp

import (
	"testing"
	"time"

	"github.com/voxdo/voxdo/internal/models"
)

// refNow is a Wednesday, 10:00 local.
var refNow = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func TestParseAddWithDateAndTime(t *testing.T) {
	cmd := ParseAt("Add task buy milk tomorrow at 5pm", refNow)

	if cmd.Action != models.ActionAdd {
		t.Errorf("Expected action add, got %s", cmd.Action)
	}
	if cmd.Title != "Buy milk" {
		t.Errorf("Expected title 'Buy milk', got %q", cmd.Title)
	}
	if cmd.DueTime != "17:00" {
		t.Errorf("Expected due time 17:00, got %q", cmd.DueTime)
	}
	wantDate := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	if cmd.DueDate == nil || !cmd.DueDate.Equal(wantDate) {
		t.Errorf("Expected due date %v, got %v", wantDate, cmd.DueDate)
	}
	if cmd.Transcript != "Add task buy milk tomorrow at 5pm" {
		t.Errorf("Transcript was not preserved verbatim: %q", cmd.Transcript)
	}
}

func TestParseUrgentAdd(t *testing.T) {
	cmd := ParseAt("This is urgent, add task finish report", refNow)

	if cmd.Action != models.ActionAdd {
		t.Errorf("Expected action add, got %s", cmd.Action)
	}
	if cmd.Priority != models.PriorityHigh {
		t.Errorf("Expected high priority, got %s", cmd.Priority)
	}
	if cmd.Title != "Finish report" {
		t.Errorf("Expected title 'Finish report', got %q", cmd.Title)
	}
}

func TestParseList(t *testing.T) {
	cmd := ParseAt("List my tasks", refNow)

	if cmd.Action != models.ActionList {
		t.Errorf("Expected action list, got %s", cmd.Action)
	}
	if cmd.Title != "" {
		t.Errorf("Expected empty title for list, got %q", cmd.Title)
	}
}

func TestParseDelete(t *testing.T) {
	cmd := ParseAt("Delete task groceries", refNow)

	if cmd.Action != models.ActionDelete {
		t.Errorf("Expected action delete, got %s", cmd.Action)
	}
	if cmd.Title != "Groceries" {
		t.Errorf("Expected title 'Groceries', got %q", cmd.Title)
	}
}

func TestParseComplete(t *testing.T) {
	cmd := ParseAt("Mark done: call the dentist", refNow)

	if cmd.Action != models.ActionComplete {
		t.Errorf("Expected action complete, got %s", cmd.Action)
	}
	if cmd.Title != "Call the dentist" {
		t.Errorf("Expected title 'Call the dentist', got %q", cmd.Title)
	}
}

func TestParseEmptyTranscript(t *testing.T) {
	for _, in := range []string{"", "   "} {
		cmd := ParseAt(in, refNow)
		if cmd.Action != models.ActionUnknown {
			t.Errorf("ParseAt(%q): expected action unknown, got %s", in, cmd.Action)
		}
	}
}

func TestParseDefaultsToAdd(t *testing.T) {
	cmd := ParseAt("call mom in 2 hours", refNow)

	if cmd.Action != models.ActionAdd {
		t.Errorf("Expected fallthrough action add, got %s", cmd.Action)
	}
	if cmd.Title != "Call mom" {
		t.Errorf("Expected title 'Call mom', got %q", cmd.Title)
	}
	// "in N hours" resolves to an absolute instant, not a day boundary.
	want := refNow.Add(2 * time.Hour)
	if cmd.DueDate == nil || !cmd.DueDate.Equal(want) {
		t.Errorf("Expected due instant %v, got %v", want, cmd.DueDate)
	}
}

func TestParseDefaults(t *testing.T) {
	cmd := ParseAt("Add task water the plants", refNow)

	if cmd.Priority != models.PriorityMedium {
		t.Errorf("Expected default priority medium, got %s", cmd.Priority)
	}
	if cmd.Status != models.StatusPending {
		t.Errorf("Expected default status pending, got %s", cmd.Status)
	}
	if cmd.DueDate != nil || cmd.DueTime != "" {
		t.Errorf("Expected no schedule, got date=%v time=%q", cmd.DueDate, cmd.DueTime)
	}
}

func TestParseActionIsAlwaysDefined(t *testing.T) {
	inputs := []string{
		"Add task pay rent",
		"complete the report",
		"remove shopping",
		"show my tasks",
		"total gibberish xyzzy",
	}
	for _, in := range inputs {
		cmd := ParseAt(in, refNow)
		switch cmd.Action {
		case models.ActionAdd, models.ActionComplete, models.ActionDelete, models.ActionList, models.ActionUnknown:
		default:
			t.Errorf("ParseAt(%q): undefined action %q", in, cmd.Action)
		}
	}
}

func TestParseSoftIntents(t *testing.T) {
	tests := []struct {
		in    string
		title string
	}{
		{"I need to pay the electricity bill", "Pay the electricity bill"},
		{"remind me to water the plants", "Water the plants"},
		{"don't forget to book flights", "Book flights"},
		{"make sure to submit the form", "Submit the form"},
	}
	for _, tt := range tests {
		cmd := ParseAt(tt.in, refNow)
		if cmd.Action != models.ActionAdd {
			t.Errorf("ParseAt(%q): expected add, got %s", tt.in, cmd.Action)
		}
		if cmd.Title != tt.title {
			t.Errorf("ParseAt(%q): expected title %q, got %q", tt.in, tt.title, cmd.Title)
		}
	}
}

func TestRespond(t *testing.T) {
	add := ParseAt("Add task buy milk", refNow)
	if got := Respond(add, true); got != `Added "Buy milk" to your tasks with medium priority.` {
		t.Errorf("Unexpected add reply: %q", got)
	}

	unknown := ParseAt("", refNow)
	reply := Respond(unknown, false)
	if reply == "" {
		t.Error("Expected a retry prompt for unknown commands")
	}

	del := ParseAt("delete task groceries", refNow)
	if got := Respond(del, false); got != `I couldn't find a task matching "Groceries".` {
		t.Errorf("Unexpected delete failure reply: %q", got)
	}
}
