package extract

import (
	"regexp"
	"strings"
)

// Patient-identity extraction follows the same discipline as the medication
// cascades: ordered labeled/pattern heuristics per field, first match wins,
// a populated field is never overwritten.

var (
	rePatientName = regexp.MustCompile(`(?i)\bpatient(?:\s+name)?\s*:\s*([A-Z][a-z]+)\s+([A-Z][a-z]+)`)
	reNameLastFirst = regexp.MustCompile(`(?i)\bname\s*:\s*([A-Z][a-z]+)\s*,\s*([A-Z][a-z]+)`)
	reNameFirstLast = regexp.MustCompile(`(?i)\bname\s*:\s*([A-Z][a-z]+)\s+([A-Z][a-z]+)`)

	reDOB = regexp.MustCompile(`(?i)\b(?:dob|date\s+of\s+birth|born)\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)

	rePhoneLabeled = regexp.MustCompile(`(?i)\b(?:phone|tel|telephone)\s*:?\s*(\(?\d{3}\)?[\s.-]?\d{3}[-.\s]?\d{4})`)
	rePhoneBare    = regexp.MustCompile(`(\(?\d{3}\)?[\s.-]?\d{3}[-.\s]?\d{4})`)

	reMRN = regexp.MustCompile(`(?i)\b(?:mrn|medical\s+record(?:\s+(?:number|no\.?|#))?)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9-]{3,})`)

	reAddress = regexp.MustCompile(`(?im)^\s*(\d+\s+[A-Za-z0-9 .'-]+\b(?:street|st|avenue|ave|road|rd|drive|dr|lane|ln|boulevard|blvd|court|ct|way|place|pl)\b\.?(?:,?\s*[^\n]*)?)$`)
)

// Patient extracts an identity record from recognized text. Callers pass the
// first page's text only; later pages never contribute identity by design.
// Returns nil when no field matched.
func Patient(text string) *PatientIdentityCandidate {
	text = normalizeText(text)
	if text == "" {
		return nil
	}

	p := PatientIdentityCandidate{}

	if m := rePatientName.FindStringSubmatch(text); m != nil {
		p.FirstName, p.LastName = m[1], m[2]
	} else if m := reNameLastFirst.FindStringSubmatch(text); m != nil {
		// "Name: Last, First" order.
		p.FirstName, p.LastName = m[2], m[1]
	} else if m := reNameFirstLast.FindStringSubmatch(text); m != nil {
		p.FirstName, p.LastName = m[1], m[2]
	}

	if m := reDOB.FindStringSubmatch(text); m != nil {
		p.DateOfBirth = m[1]
	}

	if m := rePhoneLabeled.FindStringSubmatch(text); m != nil {
		p.Phone = strings.TrimSpace(m[1])
	} else if m := rePhoneBare.FindStringSubmatch(text); m != nil {
		p.Phone = strings.TrimSpace(m[1])
	}

	if m := reMRN.FindStringSubmatch(text); m != nil {
		p.MedicalRecordNumber = m[1]
	}

	if m := reAddress.FindStringSubmatch(text); m != nil {
		p.Address = strings.TrimSpace(m[1])
	}

	if p.isEmpty() {
		return nil
	}
	return &p
}
