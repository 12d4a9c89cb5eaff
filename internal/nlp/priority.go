package nlp

import (
	"regexp"

	"github.com/voxdo/voxdo/internal/models"
)

// priorityRule maps a phrase cue to a priority level. The high family is
// listed entirely before the low family; the first hit sets the priority and
// ends extraction.
type priorityRule struct {
	priority models.Priority
	re       *regexp.Regexp
}

var priorityRules = []priorityRule{
	{models.PriorityHigh, regexp.MustCompile(`(?i)\b(?:this\s+is\s+|it'?s\s+|really\s+)?urgent(?:ly)?\b`)},
	{models.PriorityHigh, regexp.MustCompile(`(?i)\b(?:this\s+is\s+|it'?s\s+)?critical\b`)},
	{models.PriorityHigh, regexp.MustCompile(`(?i)\basap\b`)},
	{models.PriorityHigh, regexp.MustCompile(`(?i)\bas\s+soon\s+as\s+possible\b`)},
	{models.PriorityHigh, regexp.MustCompile(`(?i)\bmust\s+be\s+done\b`)},
	{models.PriorityHigh, regexp.MustCompile(`(?i)\b(?:high|top)\s+priority\b`)},
	{models.PriorityHigh, regexp.MustCompile(`(?i)\bpriority[:\s]\s*high\b`)},
	{models.PriorityHigh, regexp.MustCompile(`(?i)\b(?:this\s+is\s+|it'?s\s+)?(?:very\s+|really\s+)?important\b`)},

	{models.PriorityLow, regexp.MustCompile(`(?i)\b(?:this\s+is\s+|it'?s\s+)?not\s+urgent\b`)},
	{models.PriorityLow, regexp.MustCompile(`(?i)\bno\s+(?:rush|hurry)\b`)},
	{models.PriorityLow, regexp.MustCompile(`(?i)\bwhenever(?:\s+you\s+(?:can|get\s+a\s+chance))?\b`)},
	{models.PriorityLow, regexp.MustCompile(`(?i)\bwhen\s+(?:you|i)\s+have\s+time\b`)},
	{models.PriorityLow, regexp.MustCompile(`(?i)\b(?:sometime|eventually)\b`)},
	{models.PriorityLow, regexp.MustCompile(`(?i)\blow\s+priority\b`)},
	{models.PriorityLow, regexp.MustCompile(`(?i)\bpriority[:\s]\s*low\b`)},
}

// extractPriority classifies priority from phrase cues and strips the
// matched span. No hit leaves the text unchanged and yields medium.
func extractPriority(text string) (models.Priority, string) {
	for _, rule := range priorityRules {
		if loc := rule.re.FindStringIndex(text); loc != nil {
			return rule.priority, cut(text, loc)
		}
	}
	return models.PriorityMedium, text
}
