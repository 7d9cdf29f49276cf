package extract

import (
	"regexp"
	"strings"
)

// DocumentShape describes whether a text block looks like a single medication
// label or a multi-medication listing.
type DocumentShape string

const (
	ShapeSingle   DocumentShape = "single"
	ShapeMultiple DocumentShape = "multiple"
)

// minSectionLength filters out stub sections (page furniture, stray
// separators) from multi-medication splits.
const minSectionLength = 20

var (
	reRxNumber   = regexp.MustCompile(`(?i)\bRx\s*#?\s*\d{5,}`)
	reBulletLine = regexp.MustCompile(`(?m)^\s*[•·●▪‣◦*]\s*\S`)
	reNumbered   = regexp.MustCompile(`(?m)^\s*\d+\.\s+[A-Z]`)
	reSectionGap = regexp.MustCompile(`\n[ \t]*\n`)
)

// Classify decides the document shape of a text block:
// "multiple" when it carries two or more prescription numbers, or any
// bulleted line, or any numbered-list line starting a capitalized entry;
// otherwise "single".
func Classify(text string) DocumentShape {
	if len(reRxNumber.FindAllString(text, -1)) >= 2 {
		return ShapeMultiple
	}
	if reBulletLine.MatchString(text) {
		return ShapeMultiple
	}
	if reNumbered.MatchString(text) {
		return ShapeMultiple
	}
	return ShapeSingle
}

// Medications extracts medication candidates from one page's recognized text.
//
// Single-shaped blocks get one extraction pass over the whole text, kept only
// when at least one of name, dosage or frequency was found. Multiple-shaped
// blocks are split into sections and extracted independently; a section is
// kept only when it produced a name AND at least one of dosage, frequency or
// route. When a multiple classification keeps nothing, the whole block is
// retried as single — a listing that fails to section cleanly is still better
// parsed as one record than dropped.
func Medications(text string) []MedicationCandidate {
	text = normalizeText(text)
	if text == "" {
		return nil
	}

	if Classify(text) == ShapeMultiple {
		if found := extractSections(text); len(found) > 0 {
			return found
		}
	}

	c := extractFields(text)
	if !c.hasCore() {
		return nil
	}
	return []MedicationCandidate{c}
}

func extractSections(text string) []MedicationCandidate {
	var out []MedicationCandidate
	for _, section := range splitSections(text) {
		if len(section) <= minSectionLength {
			continue
		}
		c := extractFields(section)
		if c.Name == "" {
			continue
		}
		if c.Dosage == "" && c.Frequency == "" && c.Route == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// splitSections divides a multi-medication block on blank-line pairs, falling
// back to numbered-list markers when the text has no blank lines to split on.
func splitSections(text string) []string {
	parts := reSectionGap.Split(text, -1)
	if len(parts) > 1 {
		return trimAll(parts)
	}

	marks := reNumbered.FindAllStringIndex(text, -1)
	if len(marks) < 2 {
		return []string{strings.TrimSpace(text)}
	}
	var sections []string
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		sections = append(sections, strings.TrimSpace(text[m[0]:end]))
	}
	return sections
}

func trimAll(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
