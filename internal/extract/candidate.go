package extract

// MedicationCandidate is a partial medication record assembled from one text
// block. Empty string means the field was not found. Candidates are never
// mutated after extraction completes.
type MedicationCandidate struct {
	Name         string `json:"name,omitempty"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Route        string `json:"route,omitempty"`
	Prescriber   string `json:"prescriber,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
	Refills      string `json:"refills,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	// Confidence is derived from field presence alone; see confidence().
	Confidence float64 `json:"confidence"`
}

// PatientIdentityCandidate is a partial patient-identity record. At most one
// is produced per scanned document, from the first page's text only.
type PatientIdentityCandidate struct {
	FirstName           string `json:"firstName,omitempty"`
	LastName            string `json:"lastName,omitempty"`
	DateOfBirth         string `json:"dateOfBirth,omitempty"`
	Phone               string `json:"phone,omitempty"`
	Address             string `json:"address,omitempty"`
	MedicalRecordNumber string `json:"medicalRecordNumber,omitempty"`
}

// confidenceWeights assigns each scored field its share of a nominal 100
// points. Prescriber and refills carry no weight: they are administrative
// detail, not evidence that the block describes a medication.
var confidenceWeights = []struct {
	weight  float64
	present func(*MedicationCandidate) bool
}{
	{30, func(c *MedicationCandidate) bool { return c.Name != "" }},
	{25, func(c *MedicationCandidate) bool { return c.Dosage != "" }},
	{20, func(c *MedicationCandidate) bool { return c.Frequency != "" }},
	{10, func(c *MedicationCandidate) bool { return c.Route != "" }},
	{10, func(c *MedicationCandidate) bool { return c.Quantity != "" }},
	{5, func(c *MedicationCandidate) bool { return c.Instructions != "" }},
}

// confidence scores a candidate by renormalizing the weights over the
// populated subset: the sum of present weights divided by itself, times 100.
// The result is therefore always 100 when any scored field is present and 0
// when none is. Confidence measures how complete and coherent the found
// record is, not how much of the full schema was filled in.
func confidence(c *MedicationCandidate) float64 {
	var present float64
	for _, w := range confidenceWeights {
		if w.present(c) {
			present += w.weight
		}
	}
	if present == 0 {
		return 0
	}
	return 100 * present / present
}

// hasCore reports whether the candidate found at least one of the fields that
// justify keeping a single-block extraction.
func (c *MedicationCandidate) hasCore() bool {
	return c.Name != "" || c.Dosage != "" || c.Frequency != ""
}

// isEmpty reports whether no patient field was found.
func (p *PatientIdentityCandidate) isEmpty() bool {
	return p.FirstName == "" && p.LastName == "" && p.DateOfBirth == "" &&
		p.Phone == "" && p.Address == "" && p.MedicalRecordNumber == ""
}
