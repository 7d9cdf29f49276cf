// Package extract reconstructs structured medication and patient records from
// noisy recognizer output.
//
// Recognition text from labels and prescriptions is unstructured and full of
// artifacts, so extraction is heuristic: each record field has an ordered list
// of (pattern, extractor) rules, evaluated first-match-wins. A field set by a
// higher-priority rule is never overwritten by a later one; later rules only
// fill gaps. A rule that fails to match is not an error — the field is simply
// left unset, and absence means "not found", never "empty string".
//
// Candidate confidence is a deterministic function of which fields were
// populated. It deliberately ignores engine-reported per-word confidence: it
// measures how coherent the extracted record is, not how certain the OCR was.
package extract
