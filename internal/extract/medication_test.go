package extract

import (
	"strings"
	"testing"
)

func TestMedications_SingleBottleLabel(t *testing.T) {
	text := "Lisinopril 10mg\nTake 1 tablet by mouth once daily\nQty: 30\nRefills: 2"

	meds := Medications(text)
	if len(meds) != 1 {
		t.Fatalf("candidates: got %d, want 1", len(meds))
	}

	c := meds[0]
	if c.Name != "Lisinopril" {
		t.Errorf("Name: got %q, want %q", c.Name, "Lisinopril")
	}
	if c.Dosage != "10 mg" {
		t.Errorf("Dosage: got %q, want %q", c.Dosage, "10 mg")
	}
	if !strings.Contains(c.Frequency, "once daily") {
		t.Errorf("Frequency: got %q, want match for \"once daily\"", c.Frequency)
	}
	if c.Route != "mouth" {
		t.Errorf("Route: got %q, want %q", c.Route, "mouth")
	}
	if c.Quantity != "30" {
		t.Errorf("Quantity: got %q, want %q", c.Quantity, "30")
	}
	if c.Refills != "2" {
		t.Errorf("Refills: got %q, want %q", c.Refills, "2")
	}
	if c.Confidence != 100 {
		t.Errorf("Confidence: got %v, want 100", c.Confidence)
	}
}

func TestMedications_MultiDrugList(t *testing.T) {
	text := "Rx# 12345678\nLisinopril 10mg\nTake 1 tablet by mouth once daily\n\n" +
		"Rx# 67890123\nMetformin 500 mg\nTake 1 tablet twice a day"

	if shape := Classify(text); shape != ShapeMultiple {
		t.Fatalf("shape: got %v, want %v", shape, ShapeMultiple)
	}

	meds := Medications(text)
	if len(meds) != 2 {
		t.Fatalf("candidates: got %d, want 2", len(meds))
	}
	if meds[0].Name != "Lisinopril" || meds[1].Name != "Metformin" {
		t.Errorf("names: got %q, %q", meds[0].Name, meds[1].Name)
	}
	for i, c := range meds {
		if c.Confidence != 100 {
			t.Errorf("candidate %d: confidence %v, want independent score of 100", i, c.Confidence)
		}
	}
}

func TestExtractFields_NeverOverwrite(t *testing.T) {
	// The parenthesized dosage pattern outranks the bare pattern; the winner
	// must not depend on which one appears first in the document.
	tests := []struct {
		name string
		text string
	}{
		{"high priority first", "Aspirin (20 mg) dispensed as 500 ml solution"},
		{"high priority last", "Aspirin dispensed as 500 ml solution (20 mg)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := extractFields(tt.text)
			if c.Dosage != "20 mg" {
				t.Errorf("Dosage: got %q, want %q regardless of order", c.Dosage, "20 mg")
			}
		})
	}
}

func TestExtractFields_FrequencyCascade(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Take 2 tablets by mouth twice daily", "twice daily"},
		{"three times per day with food", "three times per day"},
		{"Metoprolol 25mg BID", "BID"},
		{"insulin q8h as needed", "Q8H"},
		{"use every evening before bed", "every evening"},
	}
	for _, tt := range tests {
		c := extractFields(tt.text)
		if c.Frequency != tt.want {
			t.Errorf("%q: Frequency got %q, want %q", tt.text, c.Frequency, tt.want)
		}
	}
}

func TestExtractFields_RouteCascade(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Take 1 tablet by mouth daily", "mouth"},
		{"administer via IV push", "IV"},
		{"apply topical cream", "topical"},
		{"sublingual as directed", "sublingual"},
	}
	for _, tt := range tests {
		c := extractFields(tt.text)
		if c.Route != tt.want {
			t.Errorf("%q: Route got %q, want %q", tt.text, c.Route, tt.want)
		}
	}
}

func TestExtractFields_Prescriber(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Prescribed by Dr. Jane Doe", "Jane Doe"},
		{"Doctor Alan B. Smith authorized", "Alan B. Smith"},
		{"Maria Lopez, MD", "Maria Lopez"},
	}
	for _, tt := range tests {
		c := extractFields(tt.text)
		if c.Prescriber != tt.want {
			t.Errorf("%q: Prescriber got %q, want %q", tt.text, c.Prescriber, tt.want)
		}
	}
}

func TestExtractFields_Refills(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Refills: 2", "2"},
		{"refills 3 remaining", "3"},
		{"no refills", "0"},
	}
	for _, tt := range tests {
		c := extractFields(tt.text)
		if c.Refills != tt.want {
			t.Errorf("%q: Refills got %q, want %q", tt.text, c.Refills, tt.want)
		}
	}
}

func TestExtractName_TallManLettering(t *testing.T) {
	c := extractFields("cloNIDine 0.1 mg tablet at bedtime")
	if c.Name != "cloNIDine" {
		t.Errorf("Name: got %q, want %q", c.Name, "cloNIDine")
	}
}

func TestExtractName_CommonlyKnownAs(t *testing.T) {
	// One long lowercase line defeats the first three strategies, leaving
	// only the "commonly known as" capture.
	text := "this medication is commonly known as aspirin and is used for mild pain relief"
	c := extractFields(text)
	if c.Name != "aspirin" {
		t.Errorf("Name: got %q, want %q", c.Name, "aspirin")
	}
}

func TestExtractName_RejectsBoilerplateLine(t *testing.T) {
	// The only standalone-line candidate is the sig line itself, which the
	// exclusion list rejects as administrative boilerplate.
	c := extractFields("Take 2 tablets daily")
	if c.Name != "" {
		t.Errorf("Name: got %q, want unset for a sig-only block", c.Name)
	}
}

func TestConfidence_RenormalizedOverPopulatedSubset(t *testing.T) {
	// Confidence is always 0 or 100 for one scoring pass: the weights are
	// renormalized to the populated subset, so name+dosage alone scores a
	// full 100, not 55.
	partial := &MedicationCandidate{Name: "Lisinopril", Dosage: "10 mg"}
	if got := confidence(partial); got != 100 {
		t.Errorf("name+dosage: got %v, want 100", got)
	}

	full := &MedicationCandidate{
		Name: "a", Dosage: "b", Frequency: "c",
		Route: "d", Quantity: "e", Instructions: "f",
	}
	if got := confidence(full); got != 100 {
		t.Errorf("all fields: got %v, want 100", got)
	}

	empty := &MedicationCandidate{}
	if got := confidence(empty); got != 0 {
		t.Errorf("no fields: got %v, want 0", got)
	}

	// Unscored fields alone contribute nothing.
	admin := &MedicationCandidate{Prescriber: "Dr. Doe", Refills: "2"}
	if got := confidence(admin); got != 0 {
		t.Errorf("prescriber+refills only: got %v, want 0", got)
	}
}
