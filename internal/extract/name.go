package extract

import (
	"regexp"
	"strings"
)

// Drug-name extraction is the least reliable cascade, so it runs four
// fallback strategies in order, each attempted only while the name is still
// unset:
//
//  1. A tall-man-lettered token (lowercase run with an embedded capital,
//     e.g. "cloNIDine") anywhere in the text.
//  2. The capitalized word run immediately preceding the matched dosage.
//  3. The first standalone line that looks like a product name: enough
//     letters, sane length, high letter density, and not administrative
//     boilerplate.
//  4. The target of a "commonly known as <word>" phrase.
//
// Every strategy rejects candidates already consumed by the frequency, route,
// instructions or quantity extractions, checked by case-insensitive substring
// containment in either direction.

var (
	reTallMan       = regexp.MustCompile(`\b([a-z]+[A-Z][A-Za-z]*)\b`)
	reBeforeDosage  = regexp.MustCompile(`([A-Z][A-Za-z-]+(?:\s+[A-Z][A-Za-z-]+)*)[\s:]*$`)
	reCommonlyKnown = regexp.MustCompile(`(?i)commonly\s+known\s+as\s+([A-Za-z][A-Za-z-]*)`)
	reLetters       = regexp.MustCompile(`[A-Za-z]`)
)

// nameExclusions rejects standalone lines that are pharmacy, facility,
// address, phone, identifier or sig boilerplate rather than a product name.
var nameExclusions = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(pharmacy|pharmacies|drugstore|dispensary)\b`),
	regexp.MustCompile(`(?i)\b(hospital|clinic|medical\s+center|healthcare|health)\b`),
	regexp.MustCompile(`(?i)^\s*(dr\.?|doctor)\b`),
	regexp.MustCompile(`(?i)\brx\s*#?\s*\d`),
	regexp.MustCompile(`(?i)\b(mrn|medical\s+record|patient)\b`),
	regexp.MustCompile(`\(?\d{3}\)?[\s.-]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z]+\s+(st|street|ave|avenue|rd|road|dr|drive|blvd|ln|lane|suite|ste)\b`),
	regexp.MustCompile(`(?i)\b(date|dob|birth|filled|expires?|exp|discard|lot\s*#?)\b`),
	regexp.MustCompile(`(?i)\b(take|tablet|capsule|refills?|qty|quantity)\b`),
	regexp.MustCompile(`(?i)\b(warning|caution|keep\s+out|store|shake\s+well)\b`),
}

func extractName(text string, c *MedicationCandidate, dosageLoc int) string {
	if name := tallManToken(text, c); name != "" {
		return name
	}
	if dosageLoc > 0 {
		if name := wordsBeforeDosage(text[:dosageLoc], c); name != "" {
			return name
		}
	}
	if name := plausibleLine(text, c); name != "" {
		return name
	}
	if m := reCommonlyKnown.FindStringSubmatch(text); m != nil {
		if cand := strings.TrimSpace(m[1]); !consumed(cand, c) {
			return cand
		}
	}
	return ""
}

func tallManToken(text string, c *MedicationCandidate) string {
	for _, m := range reTallMan.FindAllStringSubmatch(text, -1) {
		cand := m[1]
		// Short matches are usually unit noise ("mL", "pH"), not tall-man
		// lettering.
		if len(cand) < 4 {
			continue
		}
		if !consumed(cand, c) {
			return cand
		}
	}
	return ""
}

func wordsBeforeDosage(prefix string, c *MedicationCandidate) string {
	// Only the dosage's own line can name the drug.
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		prefix = prefix[i+1:]
	}
	m := reBeforeDosage.FindStringSubmatch(prefix)
	if m == nil {
		return ""
	}
	cand := strings.TrimSpace(m[1])
	if consumed(cand, c) {
		return ""
	}
	return cand
}

func plausibleLine(text string, c *MedicationCandidate) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 || len(line) > 40 {
			continue
		}
		letters := len(reLetters.FindAllString(line, -1))
		if letters < 3 {
			continue
		}
		if float64(letters)/float64(len(line)) <= 0.6 {
			continue
		}
		if excludedLine(line) || consumed(line, c) {
			continue
		}
		return line
	}
	return ""
}

func excludedLine(line string) bool {
	for _, re := range nameExclusions {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// consumed reports whether cand overlaps text already claimed by the
// frequency, route, instructions or quantity fields.
func consumed(cand string, c *MedicationCandidate) bool {
	lc := strings.ToLower(cand)
	for _, field := range []string{c.Frequency, c.Route, c.Instructions, c.Quantity} {
		if field == "" {
			continue
		}
		lf := strings.ToLower(field)
		if strings.Contains(lf, lc) || strings.Contains(lc, lf) {
			return true
		}
	}
	return false
}
