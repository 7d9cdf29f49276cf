package extract

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reRuleLine   = regexp.MustCompile(`(?m)^\s*[_=]{3,}\s*$`)
)

// normalizeText collapses noisy whitespace from the recognizer while keeping
// line structure intact. Blank-line pairs survive (the document-shape
// classifier splits on them); runs of three or more newlines collapse to one
// blank line. Horizontal rules that OCR renders as underscore runs are
// dropped.
func normalizeText(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reRuleLine.ReplaceAllString(s, "")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
