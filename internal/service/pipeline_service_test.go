package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"validocs/internal/docimage"
	"validocs/internal/models"
)

func newTestPipeline(gen *fakeGenerator) *PipelineService {
	renderer := docimage.NewRenderer(docimage.DefaultMaxDimension)
	timeout := time.Second
	logger := testLogger()

	validation := NewValidationService(logger)
	validation.now = fixedNow

	return NewPipelineService(
		NewPreprocessService(gen, renderer, timeout, logger),
		NewClassificationService(gen, timeout, logger),
		NewExtractionService(gen, timeout, logger),
		validation,
		NewAggregationService(logger),
		renderer,
		2,
		logger,
	)
}

// cedulaGenerator scripts the full happy path for a scanned cédula: OCR
// transcription, classification and structured extraction.
func cedulaGenerator() *fakeGenerator {
	const extracted = `{
		"nombre_completo": "Juan Carlos Perez Soto",
		"run": "12.345.678-5",
		"fecha_nacimiento": "1990-04-12",
		"fecha_vencimiento": "2031-06-01",
		"sexo": "M"
	}`
	return &fakeGenerator{
		textFunc: func(string) (string, error) {
			return "CEDULA_IDENTIDAD", nil
		},
		visionFunc: func(prompt string, _ [][]byte) (string, error) {
			if prompt == ocrPrompt {
				return "REPUBLICA DE CHILE CEDULA DE IDENTIDAD JUAN CARLOS PEREZ SOTO RUN 12.345.678-5", nil
			}
			return extracted, nil
		},
	}
}

func pngDocument(t *testing.T, filename string) models.DocumentInput {
	t.Helper()
	return models.DocumentInput{
		Filename:      filename,
		Base64Content: base64.StdEncoding.EncodeToString(testPNG(t, 120, 80)),
		ContentType:   models.ContentTypePNG,
	}
}

func TestProcessRequestHappyPath(t *testing.T) {
	pipeline := newTestPipeline(cedulaGenerator())

	result := pipeline.ProcessRequest(context.Background(), testClient(), []models.DocumentInput{
		pngDocument(t, "cedula.png"),
	})

	assert.Equal(t, models.GlobalCursado, result.ValidationStatus)
	require.Contains(t, result.DocumentResults, "cedula.png")

	doc := result.DocumentResults["cedula.png"]
	assert.Equal(t, models.PreprocessLLMOCR, doc.PreprocessStatus)
	assert.Equal(t, models.DocumentTypeCedulaIdentidad, doc.DocType)
	assert.Equal(t, models.ExtractionOK, doc.ExtractionStatus)
	assert.Equal(t, models.ValidationOK, doc.ValidationStatus)
	assert.Empty(t, doc.Findings)

	require.NotNil(t, result.GlobalSummary)
	assert.Equal(t, models.GlobalCursado, result.GlobalSummary.OverallStatus)
}

func TestProcessRequestKeysResultsByFilename(t *testing.T) {
	pipeline := newTestPipeline(cedulaGenerator())

	result := pipeline.ProcessRequest(context.Background(), testClient(), []models.DocumentInput{
		pngDocument(t, "b.png"),
		pngDocument(t, "a.png"),
	})

	assert.Len(t, result.DocumentResults, 2)
	assert.Contains(t, result.DocumentResults, "a.png")
	assert.Contains(t, result.DocumentResults, "b.png")
	assert.Equal(t, "a.png", result.DocumentResults["a.png"].Filename)
	assert.Equal(t, "b.png", result.DocumentResults["b.png"].Filename)
}

func TestProcessRequestMalformedBase64(t *testing.T) {
	gen := &fakeGenerator{}
	pipeline := newTestPipeline(gen)

	result := pipeline.ProcessRequest(context.Background(), testClient(), []models.DocumentInput{
		{Filename: "broken.pdf", Base64Content: "%%%not-base64%%%", ContentType: models.ContentTypePDF},
	})

	doc := result.DocumentResults["broken.pdf"]
	require.NotNil(t, doc)
	assert.Equal(t, models.PreprocessFailed, doc.PreprocessStatus)
	assert.Equal(t, models.ValidationError, doc.ValidationStatus)
	require.Len(t, doc.Findings, 1)
	assert.Equal(t, "preprocessing", doc.Findings[0].Field)

	// the document never reached any model
	text, vision := gen.calls()
	assert.Zero(t, text)
	assert.Zero(t, vision)
}

func TestProcessRequestUnsupportedFormatShortCircuits(t *testing.T) {
	gen := &fakeGenerator{}
	pipeline := newTestPipeline(gen)

	content := base64.StdEncoding.EncodeToString([]byte("plain text file"))
	result := pipeline.ProcessRequest(context.Background(), testClient(), []models.DocumentInput{
		{Filename: "notes.txt", Base64Content: content, ContentType: "text/plain"},
	})

	doc := result.DocumentResults["notes.txt"]
	require.NotNil(t, doc)
	assert.Equal(t, models.PreprocessUnsupported, doc.PreprocessStatus)
	assert.Equal(t, models.ValidationError, doc.ValidationStatus)
	assert.Empty(t, doc.ClassificationStatus)
	assert.Empty(t, doc.ExtractionStatus)

	text, vision := gen.calls()
	assert.Zero(t, text)
	assert.Zero(t, vision)
}

func TestProcessRequestEmptyDocumentList(t *testing.T) {
	pipeline := newTestPipeline(&fakeGenerator{})

	result := pipeline.ProcessRequest(context.Background(), testClient(), nil)

	assert.Equal(t, models.GlobalRechazada, result.ValidationStatus)
	assert.Empty(t, result.DocumentResults)
}

func TestProcessRequestClassificationFailureShortCircuits(t *testing.T) {
	gen := &fakeGenerator{
		textReply: "RESPUESTA SIN SENTIDO",
		visionFunc: func(prompt string, _ [][]byte) (string, error) {
			return "texto transcrito", nil
		},
	}
	pipeline := newTestPipeline(gen)

	result := pipeline.ProcessRequest(context.Background(), testClient(), []models.DocumentInput{
		pngDocument(t, "raro.png"),
	})

	doc := result.DocumentResults["raro.png"]
	require.NotNil(t, doc)
	assert.Equal(t, models.ClassificationFailed, doc.ClassificationStatus)
	assert.Equal(t, models.ValidationError, doc.ValidationStatus)
	require.Len(t, doc.Findings, 1)
	assert.Equal(t, "classification", doc.Findings[0].Field)
	assert.Empty(t, doc.ExtractionStatus)
}

func TestProcessRequestCriticalFailureKeepsPartialResults(t *testing.T) {
	// An error escaping per-document handling must yield the critical-error
	// envelope with a populated summary over whatever was completed. A nil
	// aggregator makes the post-processing step blow up deterministically.
	renderer := docimage.NewRenderer(docimage.DefaultMaxDimension)
	timeout := time.Second
	logger := testLogger()
	gen := cedulaGenerator()

	validation := NewValidationService(logger)
	validation.now = fixedNow

	var aggregation *AggregationService
	pipeline := NewPipelineService(
		NewPreprocessService(gen, renderer, timeout, logger),
		NewClassificationService(gen, timeout, logger),
		NewExtractionService(gen, timeout, logger),
		validation,
		aggregation,
		renderer,
		2,
		logger,
	)

	result := pipeline.ProcessRequest(context.Background(), testClient(), []models.DocumentInput{
		pngDocument(t, "cedula.png"),
	})

	assert.Equal(t, models.GlobalCriticalFailure, result.ValidationStatus)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.Contains(t, result.DocumentResults, "cedula.png")

	require.NotNil(t, result.GlobalSummary)
	assert.Equal(t, models.GlobalCriticalFailure, result.GlobalSummary.OverallStatus)
	assert.NotEmpty(t, result.GlobalSummary.StatusMessage)
	assert.Equal(t, 1, result.GlobalSummary.TotalDocuments)
	assert.Equal(t, 1, result.GlobalSummary.DocumentStatusSummary[models.ValidationOK])
}

func TestProcessRequestMixedOutcomes(t *testing.T) {
	pipeline := newTestPipeline(cedulaGenerator())

	result := pipeline.ProcessRequest(context.Background(), testClient(), []models.DocumentInput{
		pngDocument(t, "cedula.png"),
		{Filename: "broken.pdf", Base64Content: "###", ContentType: models.ContentTypePDF},
	})

	assert.Equal(t, models.GlobalPendienteManual, result.ValidationStatus)
	assert.Len(t, result.DocumentResults, 2)
	assert.Equal(t, models.ValidationOK, result.DocumentResults["cedula.png"].ValidationStatus)
	assert.Equal(t, models.ValidationError, result.DocumentResults["broken.pdf"].ValidationStatus)
}
