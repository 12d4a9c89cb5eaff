package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

// Filler the earlier passes leave behind. Prefixes are anchored to the start
// of the surviving text, suffixes to its end; both lists are applied
// repeatedly until the text stops changing, which makes normalization
// idempotent.
var fillerPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^please\s+`),
	regexp.MustCompile(`(?i)^(?:i\s+(?:need|have|want)\s+to|i\s+gotta)\s+`),
	regexp.MustCompile(`(?i)^(?:please\s+)?remind\s+me\s+to\s+`),
	regexp.MustCompile(`(?i)^don'?t\s+forget\s+to\s+`),
	regexp.MustCompile(`(?i)^make\s+sure\s+(?:to|i|we)\s+`),
	regexp.MustCompile(`(?i)^(?:this\s+is|it'?s)\s+`),
	regexp.MustCompile(`(?i)^to\s+`),
}

var fillerSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+please$`),
	regexp.MustCompile(`(?i)\s+thanks?(?:\s+you)?$`),
	regexp.MustCompile(`(?i)\s+if\s+(?:you\s+can|possible)$`),
	regexp.MustCompile(`(?i)\s+when\s+you\s+(?:get|have)\s+a\s+chance$`),
}

// Dangling connectives stranded at the end of the text once a date, time,
// or priority phrase was cut out ("finish report by" <- "by tomorrow").
var danglingTail = regexp.MustCompile(`(?i)(?:\s+(?:by|due|for|at|on|and)|\s+it'?s|,)$`)

var (
	leadingPunct  = regexp.MustCompile(`^[\s,.!?;:\-]+`)
	trailingPunct = regexp.MustCompile(`[\s,.!?;:\-]+$`)
)

// NormalizeTitle strips filler and stranded connectives from the text that
// survived all extraction passes, collapses whitespace, and capitalizes the
// first letter. An empty result returns ""; the caller substitutes the
// original transcript as a fallback title.
func NormalizeTitle(text string) string {
	t := strings.Join(strings.Fields(text), " ")

	for changed := true; changed; {
		changed = false
		if s := leadingPunct.ReplaceAllString(t, ""); s != t {
			t, changed = s, true
		}
		if s := trailingPunct.ReplaceAllString(t, ""); s != t {
			t, changed = s, true
		}
		for _, re := range fillerPrefixes {
			if loc := re.FindStringIndex(t); loc != nil {
				t, changed = t[loc[1]:], true
			}
		}
		for _, re := range fillerSuffixes {
			if loc := re.FindStringIndex(t); loc != nil {
				t, changed = t[:loc[0]], true
			}
		}
		if loc := danglingTail.FindStringIndex(t); loc != nil {
			t, changed = t[:loc[0]], true
		}
	}

	if t == "" {
		return ""
	}
	r := []rune(t)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
