package extract

import (
	"regexp"
	"strings"
)

// fieldRule pairs a pattern with an extractor over its submatches. Rules for
// a field are ordered by priority and evaluated first-match-wins; keeping the
// table data-driven lets each pattern be tested independently of the
// extraction loop.
type fieldRule struct {
	re   *regexp.Regexp
	pick func(m []string) string
}

// firstMatch walks the rules in order and returns the first non-empty
// extraction, or "" when no rule matches.
func firstMatch(text string, rules []fieldRule) string {
	for _, r := range rules {
		if m := r.re.FindStringSubmatch(text); m != nil {
			if v := r.pick(m); v != "" {
				return v
			}
		}
	}
	return ""
}

func group1(m []string) string { return strings.TrimSpace(m[1]) }

// Dosage: parenthesized "(number unit)" outranks a bare "number unit" so
// strength callouts like "Lisinopril (10 mg)" beat incidental numbers. The
// match is recomposed as "<number> <unit>" regardless of source spacing.
var dosageRules = []fieldRule{
	{
		re:   regexp.MustCompile(`(?i)\((\d+(?:\.\d+)?)\s*(mg|mcg|g|ml|units?)\)`),
		pick: joinDosage,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(mg|mcg|g|ml|units?)\b`),
		pick: joinDosage,
	},
}

func joinDosage(m []string) string {
	return m[1] + " " + strings.ToLower(m[2])
}

// dailyPhrase is the shared "once/twice/three times daily" vocabulary.
const dailyPhrase = `(?:once|twice|three\s+times)\s+(?:daily|per\s+day|a\s+day|in\s+the\s+morning|in\s+the\s+evening)`

var frequencyRules = []fieldRule{
	// "Take N tablet(s) … once daily" sig lines.
	{
		re:   regexp.MustCompile(`(?i)\btake\s+\d+\s+tablets?[^.\n]*?\b(` + dailyPhrase + `)`),
		pick: lower1,
	},
	// Bare daily phrase anywhere in the block.
	{
		re:   regexp.MustCompile(`(?i)\b(` + dailyPhrase + `)\b`),
		pick: lower1,
	},
	// Latin abbreviation codes, reported uppercase.
	{
		re:   regexp.MustCompile(`(?i)\b(QD|BID|TID|QID|Q\d+H)\b`),
		pick: func(m []string) string { return strings.ToUpper(m[1]) },
	},
	{
		re:   regexp.MustCompile(`(?i)\b((?:in\s+the|every)\s+(?:morning|evening|afternoon|night))\b`),
		pick: lower1,
	},
}

func lower1(m []string) string {
	return strings.ToLower(collapseSpaces(m[1]))
}

var routeRules = []fieldRule{
	{
		re:   regexp.MustCompile(`(?i)\bby\s+(mouth|injection|inhalation)\b`),
		pick: func(m []string) string { return strings.ToLower(m[1]) },
	},
	{
		re:   regexp.MustCompile(`(?i)\b(oral|topical|injection|IV|IM|sublingual|transdermal|inhalation|ophthalmic|otic)\b`),
		pick: normalizeRoute,
	},
}

// normalizeRoute lowercases route words but keeps the two-letter parenteral
// abbreviations uppercase.
func normalizeRoute(m []string) string {
	v := m[1]
	if len(v) <= 2 {
		return strings.ToUpper(v)
	}
	return strings.ToLower(v)
}

var prescriberRules = []fieldRule{
	{
		re:   regexp.MustCompile(`\b(?:Dr\.?|Doctor)\s+([A-Z][A-Za-z'-]+(?:\s+[A-Z]\.?)?\s+[A-Z][A-Za-z'-]+)`),
		pick: group1,
	},
	{
		re:   regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z]\.?)?\s+[A-Z][a-z]+),?\s*(?:MD|M\.D\.|DO|RPh|NP|PA|CRNP|DDS)\b`),
		pick: group1,
	},
}

var quantityRules = []fieldRule{
	{
		re:   regexp.MustCompile(`(?i)\b(?:qty|quantity)\s*[:#.]?\s*(\d+)\b`),
		pick: group1,
	},
}

var refillsRules = []fieldRule{
	{
		re:   regexp.MustCompile(`(?i)\brefills?\s*:?\s*(\d+)\b(?:\s*remaining)?`),
		pick: group1,
	},
	{
		re:   regexp.MustCompile(`(?i)\bno\s+refills\b`),
		pick: func([]string) string { return "0" },
	},
}

var instructionsRules = []fieldRule{
	// First sentence that reads like a sig: "Take N tablet …".
	{
		re:   regexp.MustCompile(`(?i)\b(take\s+\d+\s+tablets?[^.\n]*)`),
		pick: group1,
	},
}

// extractFields runs every field cascade over one text block. Fields are
// independent except for name, which runs last because its fallback
// strategies need to know which substrings the other fields consumed.
func extractFields(text string) MedicationCandidate {
	c := MedicationCandidate{}

	dosageLoc := -1
	for _, r := range dosageRules {
		if loc := r.re.FindStringSubmatchIndex(text); loc != nil {
			c.Dosage = r.pick(expandSubmatches(text, loc))
			dosageLoc = loc[0]
			break
		}
	}

	c.Frequency = firstMatch(text, frequencyRules)
	c.Route = firstMatch(text, routeRules)
	c.Prescriber = firstMatch(text, prescriberRules)
	c.Quantity = firstMatch(text, quantityRules)
	c.Refills = firstMatch(text, refillsRules)
	c.Instructions = firstMatch(text, instructionsRules)
	c.Name = extractName(text, &c, dosageLoc)

	c.Confidence = confidence(&c)
	return c
}

// expandSubmatches converts a SubmatchIndex result into the submatch strings
// FindStringSubmatch would have produced.
func expandSubmatches(text string, loc []int) []string {
	out := make([]string, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			out = append(out, "")
			continue
		}
		out = append(out, text[loc[i]:loc[i+1]])
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
