package nlp

import (
	"fmt"
	"strings"

	"github.com/voxdo/voxdo/internal/models"
)

// Respond renders the one-sentence spoken reply for a handled command. The
// success flag reflects whether the surrounding action (store write, title
// lookup) went through; the parser itself never fails.
func Respond(cmd models.Command, success bool) string {
	title := cmd.Title
	if title == "" {
		title = strings.TrimSpace(cmd.Transcript)
	}

	switch cmd.Action {
	case models.ActionAdd:
		if success {
			return fmt.Sprintf("Added %q to your tasks with %s priority.", title, cmd.Priority)
		}
		return fmt.Sprintf("Sorry, I couldn't add %q to your tasks.", title)
	case models.ActionComplete:
		if success {
			return fmt.Sprintf("Marked %q as completed. Nice work!", title)
		}
		return fmt.Sprintf("I couldn't find a task matching %q.", title)
	case models.ActionDelete:
		if success {
			return fmt.Sprintf("Deleted %q from your tasks.", title)
		}
		return fmt.Sprintf("I couldn't find a task matching %q.", title)
	case models.ActionList:
		if success {
			return "Here are your tasks."
		}
		return "Sorry, I couldn't fetch your tasks."
	default:
		return "Sorry, I didn't catch that. Try something like: add task buy milk tomorrow."
	}
}
