package models

import "strings"

// DocumentType is the closed set of credit-application document categories.
// Classification may only resolve to one of these; anything else falls back
// to DocumentTypeOtro.
type DocumentType string

const (
	DocumentTypeCedulaIdentidad      DocumentType = "CEDULA_IDENTIDAD"
	DocumentTypeLiquidacionSueldo    DocumentType = "LIQUIDACION_SUELDO"
	DocumentTypeComprobanteDomicilio DocumentType = "COMPROBANTE_DOMICILIO"
	DocumentTypeCertificadoDeuda     DocumentType = "CERTIFICADO_DEUDA"
	DocumentTypeReferencias          DocumentType = "REFERENCIAS_PERSONALES"
	DocumentTypeOtro                 DocumentType = "OTRO"
)

// AllDocumentTypes returns every recognized type, in classification-prompt order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeCedulaIdentidad,
		DocumentTypeLiquidacionSueldo,
		DocumentTypeComprobanteDomicilio,
		DocumentTypeCertificadoDeuda,
		DocumentTypeReferencias,
		DocumentTypeOtro,
	}
}

// ParseDocumentType resolves a label (case-insensitive, surrounding whitespace
// ignored) to a DocumentType. Unknown labels resolve to DocumentTypeOtro with
// ok=false so the caller can record the unexpected value.
func ParseDocumentType(label string) (DocumentType, bool) {
	normalized := DocumentType(strings.ToUpper(strings.TrimSpace(label)))
	for _, t := range AllDocumentTypes() {
		if normalized == t {
			return t, true
		}
	}
	return DocumentTypeOtro, false
}

// Content types accepted by the preprocessor.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

// DocumentInput is one submitted document, exactly as received at the API
// boundary. Filename is the identifying key within a request.
type DocumentInput struct {
	Filename      string
	Tipo          string // caller hint, not authoritative
	Base64Content string
	ContentType   string
}

// FieldMap holds extracted document fields after boundary normalization:
// JSON null, empty strings and absent keys all collapse to "key absent",
// so presence checks downstream are uniform.
type FieldMap map[string]string

// Get returns the value for key and whether it is present.
func (m FieldMap) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok && v != ""
}

// DocumentResult is the full per-document record returned to the caller.
// It accumulates the outcome of every pipeline stage the document reached.
type DocumentResult struct {
	Filename             string               `json:"filename"`
	DocType              DocumentType         `json:"doc_type,omitempty"`
	PreprocessStatus     PreprocessStatus     `json:"preprocess_status"`
	RawText              string               `json:"raw_text,omitempty"`
	PreprocessError      string               `json:"preprocess_error,omitempty"`
	ClassificationStatus ClassificationStatus `json:"classification_status,omitempty"`
	ClassificationError  string               `json:"classification_error,omitempty"`
	ExtractionStatus     ExtractionStatus     `json:"extraction_status,omitempty"`
	ExtractionError      string               `json:"extraction_error,omitempty"`
	ExtractedData        FieldMap             `json:"extracted_data,omitempty"`
	ExtractedReferences  []FieldMap           `json:"extracted_references,omitempty"`
	ValidationStatus     ValidationStatus     `json:"validation_status"`
	Findings             []Finding            `json:"validation_errors,omitempty"`
}

// GlobalResult is the application-level response for one validation request.
type GlobalResult struct {
	ValidationStatus GlobalStatus               `json:"validation_status"`
	ErrorMessage     string                     `json:"error_message,omitempty"`
	DocumentResults  map[string]*DocumentResult `json:"document_results"`
	GlobalSummary    *GlobalSummary             `json:"global_summary"`
}

// GlobalSummary aggregates per-document outcomes into request-level counters
// and a human-readable status message.
type GlobalSummary struct {
	OverallStatus         GlobalStatus             `json:"overall_status"`
	StatusMessage         string                   `json:"status_message"`
	DocumentStatusSummary map[ValidationStatus]int `json:"document_status_summary"`
	TotalDocuments        int                      `json:"total_documents"`
	TotalErrors           int                      `json:"total_errors"`
	DocumentsWithErrors   int                      `json:"documents_with_errors"`
	ErrorDetails          []ErrorDetail            `json:"error_details,omitempty"`
}

// ErrorDetail lists the findings of a single document that carried any.
type ErrorDetail struct {
	DocumentID   string       `json:"document_id"`
	DocumentType DocumentType `json:"document_type"`
	ErrorCount   int          `json:"error_count"`
	Errors       []Finding    `json:"errors"`
}
