// Package nlp converts free-form task commands into structured intents.
//
// Parsing is an ordered cascade of pattern-matching passes. Each pass
// receives the current working text, removes exactly the span it matched,
// and hands the residual text to the next pass, so no two passes can claim
// the same phrase. Every stage is a pure function; the only input besides
// text is the reference instant relative date expressions resolve against.
package nlp

import (
	"strings"
	"time"

	"github.com/voxdo/voxdo/internal/models"
)

// Parse parses a transcript against the current wall clock.
func Parse(transcript string) models.Command {
	return ParseAt(transcript, time.Now())
}

// ParseAt parses a transcript with an explicit reference instant. Fields
// stripping order is deliberate: priority before date/time, status last,
// because status cues like "done" share vocabulary with date words and must
// not be consumed early.
func ParseAt(transcript string, now time.Time) models.Command {
	cmd := models.Command{
		Action:     models.ActionUnknown,
		Priority:   models.PriorityMedium,
		Status:     models.StatusPending,
		Transcript: transcript,
	}

	raw := strings.TrimSpace(transcript)
	if raw == "" {
		return cmd
	}

	action, working := classifyAction(raw)
	cmd.Action = action

	cmd.Priority, working = extractPriority(working)

	var sched Resolution
	sched, working = resolveDateTime(working, now)
	cmd.DueDate = sched.Date
	cmd.DueTime = sched.Time

	cmd.Status, working = extractStatus(working)

	cmd.Title = NormalizeTitle(working)
	return cmd
}

// cut removes the span loc from s and normalizes whitespace around the seam
// so later patterns still see word boundaries.
func cut(s string, loc []int) string {
	out := s[:loc[0]] + " " + s[loc[1]:]
	return strings.Join(strings.Fields(out), " ")
}
