package models

// Severity grades a validation finding. CRITICAL fails the document outright,
// MANUAL_REVIEW defers it to a human reviewer.
type Severity string

const (
	SeverityCritical     Severity = "CRITICAL"
	SeverityManualReview Severity = "MANUAL_REVIEW"
)

// Finding is one itemized validation defect on a document field.
type Finding struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ReduceStatus derives the document validation status from its findings.
// Any CRITICAL finding forces ERROR; absent those, any MANUAL_REVIEW finding
// forces PENDIENTE_MANUAL; an empty list is OK. The reduction is the only
// place a status is computed, so ordering of findings never matters.
func ReduceStatus(findings []Finding) ValidationStatus {
	status := ValidationOK
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			return ValidationError
		case SeverityManualReview:
			status = ValidationPendienteManual
		}
	}
	return status
}
