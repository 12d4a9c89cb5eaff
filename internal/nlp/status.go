package nlp

import (
	"regexp"

	"github.com/voxdo/voxdo/internal/models"
)

// statusRule maps a phrase cue to a task status. Families are mutually
// exclusive and tried in order: in-progress, completed, pending.
type statusRule struct {
	status models.Status
	re     *regexp.Regexp
}

var statusRules = []statusRule{
	{models.StatusInProgress, regexp.MustCompile(`(?i)\b(?:already\s+)?in\s+progress\b`)},
	{models.StatusInProgress, regexp.MustCompile(`(?i)\b(?:i'?m\s+)?(?:currently\s+)?working\s+on\s+(?:it|this|that)\b`)},
	{models.StatusInProgress, regexp.MustCompile(`(?i)\b(?:i\s+)?(?:already\s+)?started\s+(?:working\s+)?(?:on\s+)?(?:it|this|that)\b`)},

	{models.StatusCompleted, regexp.MustCompile(`(?i)\balready\s+(?:done|complete[d]?|finished)\b`)},
	{models.StatusCompleted, regexp.MustCompile(`(?i)\b(?:it'?s|is|which\s+is)\s+(?:done|complete[d]?|finished)\b`)},

	{models.StatusPending, regexp.MustCompile(`(?i)\b(?:not|haven'?t)\s+started(?:\s+(?:it|this|that))?(?:\s+yet)?\b`)},
	{models.StatusPending, regexp.MustCompile(`(?i)\bstill\s+(?:pending|to\s+do|to\s+be\s+done)\b`)},
}

// extractStatus classifies status from phrase cues and strips the matched
// span. No hit yields pending with the text unchanged.
func extractStatus(text string) (models.Status, string) {
	for _, rule := range statusRules {
		if loc := rule.re.FindStringIndex(text); loc != nil {
			return rule.status, cut(text, loc)
		}
	}
	return models.StatusPending, text
}
