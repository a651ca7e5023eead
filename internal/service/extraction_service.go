package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"validocs/internal/models"
)

// ExtractionService pulls structured fields out of a classified document via
// a multimodal model call over the document's page images.
type ExtractionService struct {
	llm     Generator
	timeout time.Duration
	logger  *zap.Logger
}

func NewExtractionService(llm Generator, timeout time.Duration, logger *zap.Logger) *ExtractionService {
	return &ExtractionService{
		llm:     llm,
		timeout: timeout,
		logger:  logger,
	}
}

type ExtractionResult struct {
	Status     models.ExtractionStatus
	Fields     models.FieldMap
	References []models.FieldMap
	Err        string
}

// Extract runs the type-specific extraction prompt over the rendered page
// images. Document types without a structured prompt keep only their raw
// text; for every other type, a document that could not be rendered fails
// here before any model call.
func (s *ExtractionService) Extract(ctx context.Context, docType models.DocumentType, rawText string, images [][]byte) ExtractionResult {
	prompt := extractionPrompt(docType)
	if prompt == "" {
		if rawText == "" {
			return ExtractionResult{
				Status: models.ExtractionFailed,
				Err:    "no hay texto disponible para el documento sin tipo estructurado",
			}
		}
		return ExtractionResult{
			Status: models.ExtractionRawText,
			Fields: models.FieldMap{"texto_extraido": rawText},
		}
	}

	if len(images) == 0 {
		return ExtractionResult{
			Status: models.ExtractionFailed,
			Err:    "no se pudieron preparar las imágenes del documento para la extracción",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.llm.GenerateVision(ctx, prompt, images)
	if err != nil {
		return ExtractionResult{
			Status: models.ExtractionFailed,
			Err:    fmt.Sprintf("error al extraer datos del documento: %v", err),
		}
	}

	payload := stripJSONFence(reply)
	if docType == models.DocumentTypeReferencias {
		refs, err := parseReferenceList(payload)
		if err != nil {
			return ExtractionResult{
				Status: models.ExtractionParseError,
				Fields: models.FieldMap{"respuesta_sin_procesar": truncate(payload, 2000)},
				Err:    fmt.Sprintf("respuesta del modelo no es un JSON válido: %v", err),
			}
		}
		s.logger.Info("references extracted", zap.Int("count", len(refs)))
		return ExtractionResult{Status: models.ExtractionOK, References: refs}
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return ExtractionResult{
			Status: models.ExtractionParseError,
			Fields: models.FieldMap{"respuesta_sin_procesar": truncate(payload, 2000)},
			Err:    fmt.Sprintf("respuesta del modelo no es un JSON válido: %v", err),
		}
	}
	fields := normalizeFields(raw)
	s.logger.Info("fields extracted",
		zap.String("doc_type", string(docType)),
		zap.Int("fields", len(fields)),
	)
	return ExtractionResult{Status: models.ExtractionOK, Fields: fields}
}

func parseReferenceList(payload string) ([]models.FieldMap, error) {
	var raw []map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, err
	}
	refs := make([]models.FieldMap, 0, len(raw))
	for _, entry := range raw {
		refs = append(refs, normalizeFields(entry))
	}
	return refs, nil
}

// normalizeFields flattens a decoded JSON object into string fields. Nulls
// and empty strings are dropped entirely so that absence is represented by a
// missing key, never by a sentinel value.
func normalizeFields(raw map[string]any) models.FieldMap {
	fields := make(models.FieldMap, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
			fields[key] = v
		case float64:
			fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			fields[key] = strconv.FormatBool(v)
		default:
			// Nested objects and arrays are rare in practice; keep them as
			// compact JSON so nothing is silently lost.
			if encoded, err := json.Marshal(v); err == nil {
				fields[key] = string(encoded)
			}
		}
	}
	return fields
}
