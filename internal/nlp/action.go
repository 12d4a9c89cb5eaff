package nlp

import (
	"regexp"

	"github.com/voxdo/voxdo/internal/models"
)

// actionRule pairs a verb-phrase pattern with the action it signals. Rules
// are evaluated top to bottom; the first match wins and its span is removed
// from the transcript to form the initial working text.
type actionRule struct {
	action models.Action
	re     *regexp.Regexp
}

var actionRules = []actionRule{
	// Explicit add phrasing.
	{models.ActionAdd, regexp.MustCompile(`(?i)\b(?:add|create|make)\s+(?:a\s+)?(?:new\s+)?(?:task|todo|to-do|reminder)\b[:,]?\s*`)},
	{models.ActionAdd, regexp.MustCompile(`(?i)\bnew\s+(?:task|todo|to-do|reminder)\b[:,]?\s*`)},
	// Softer add intents.
	{models.ActionAdd, regexp.MustCompile(`(?i)\bi\s+(?:need|have|want)\s+to\s+`)},
	{models.ActionAdd, regexp.MustCompile(`(?i)\b(?:please\s+)?remind\s+me\s+to\s+`)},
	{models.ActionAdd, regexp.MustCompile(`(?i)\bdon'?t\s+forget\s+to\s+`)},
	{models.ActionAdd, regexp.MustCompile(`(?i)\bmake\s+sure\s+(?:to|i|we)\s+`)},
	{models.ActionAdd, regexp.MustCompile(`(?i)\bi\s+gotta\s+`)},

	// Complete.
	{models.ActionComplete, regexp.MustCompile(`(?i)\bi(?:\s+have|'?ve)?\s+(?:just\s+)?(?:completed|finished)\s+(?:the\s+)?(?:task\s+)?`)},
	{models.ActionComplete, regexp.MustCompile(`(?i)\b(?:complete|finish)\s+(?:the\s+)?(?:task\s+)?`)},
	{models.ActionComplete, regexp.MustCompile(`(?i)\bmark\s+(?:as\s+)?(?:done|complete[d]?)\b[:,]?\s*`)},
	{models.ActionComplete, regexp.MustCompile(`(?i)\b(?:i'?m\s+)?done\s+with\s+(?:the\s+)?(?:task\s+)?`)},

	// Delete.
	{models.ActionDelete, regexp.MustCompile(`(?i)\b(?:delete|remove|cancel)\s+(?:the\s+)?(?:task\s+)?`)},
	{models.ActionDelete, regexp.MustCompile(`(?i)\bget\s+rid\s+of\s+(?:the\s+)?(?:task\s+)?`)},

	// List.
	{models.ActionList, regexp.MustCompile(`(?i)\b(?:list|show|display)\s+(?:me\s+)?(?:all\s+)?(?:my\s+)?(?:tasks?|todos?)\b`)},
	{models.ActionList, regexp.MustCompile(`(?i)\bwhat(?:\s+are|'?s)\s+(?:my|the|on\s+my)\s+(?:tasks?|todos?|list)\b`)},
	{models.ActionList, regexp.MustCompile(`(?i)\bwhat\s+do\s+i\s+have\s+(?:to\s+do|today)\b`)},
}

// classifyAction determines the command action and the initial working text.
// The transcript must be non-empty and trimmed. When no rule matches, the
// action defaults to add with the whole transcript as working text: in a
// task assistant an unrecognized sentence is far more likely a task to
// capture than noise.
func classifyAction(transcript string) (models.Action, string) {
	for _, rule := range actionRules {
		loc := rule.re.FindStringIndex(transcript)
		if loc == nil {
			continue
		}
		if rule.action == models.ActionList {
			// A list command carries no payload.
			return models.ActionList, ""
		}
		return rule.action, cut(transcript, loc)
	}
	return models.ActionAdd, transcript
}
