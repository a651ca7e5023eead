package models

// PreprocessStatus reports how text was obtained from a document, or why it
// could not be.
type PreprocessStatus string

const (
	PreprocessDigitalPDF  PreprocessStatus = "processed_digital_pdf"
	PreprocessLLMOCR      PreprocessStatus = "processed_llm_ocr"
	PreprocessNoTextFound PreprocessStatus = "no_text_found_by_llm"
	PreprocessNoContent   PreprocessStatus = "no_content"
	PreprocessUnsupported PreprocessStatus = "unsupported_format"
	PreprocessFailed      PreprocessStatus = "processing_failed"
)

// Succeeded reports whether preprocessing produced usable text.
func (s PreprocessStatus) Succeeded() bool {
	return s == PreprocessDigitalPDF || s == PreprocessLLMOCR
}

type ClassificationStatus string

const (
	ClassificationOK     ClassificationStatus = "classified"
	ClassificationFailed ClassificationStatus = "failed"
)

type ExtractionStatus string

const (
	ExtractionOK         ExtractionStatus = "extracted"
	ExtractionRawText    ExtractionStatus = "extracted_raw_text"
	ExtractionFailed     ExtractionStatus = "failed"
	ExtractionParseError ExtractionStatus = "failed_json_parse"
)

// Succeeded reports whether extraction produced a usable field map.
func (s ExtractionStatus) Succeeded() bool {
	return s == ExtractionOK || s == ExtractionRawText
}

// ValidationStatus is the per-document validation outcome.
type ValidationStatus string

const (
	ValidationOK              ValidationStatus = "OK"
	ValidationError           ValidationStatus = "ERROR"
	ValidationPendienteManual ValidationStatus = "PENDIENTE_MANUAL"
)

// GlobalStatus is the application-wide decision for a whole request.
type GlobalStatus string

const (
	GlobalCursado          GlobalStatus = "CURSADO"
	GlobalPendienteManual  GlobalStatus = "PENDIENTE_REVISION_MANUAL"
	GlobalRechazada        GlobalStatus = "RECHAZADA_REVISION_AUTOMATICA"
	GlobalCriticalFailure  GlobalStatus = "FAILED_CRITICAL_ERROR"
)
