package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"validocs/internal/docimage"
	"validocs/internal/models"
)

// PipelineService orchestrates the full per-request flow: every document runs
// preprocess → classify → extract → validate independently, then the
// per-document outcomes are aggregated into the global decision.
type PipelineService struct {
	preprocess  *PreprocessService
	classify    *ClassificationService
	extract     *ExtractionService
	validate    *ValidationService
	aggregate   *AggregationService
	renderer    *docimage.Renderer
	maxParallel int
	logger      *zap.Logger
}

func NewPipelineService(
	preprocess *PreprocessService,
	classify *ClassificationService,
	extract *ExtractionService,
	validate *ValidationService,
	aggregate *AggregationService,
	renderer *docimage.Renderer,
	maxParallel int,
	logger *zap.Logger,
) *PipelineService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &PipelineService{
		preprocess:  preprocess,
		classify:    classify,
		extract:     extract,
		validate:    validate,
		aggregate:   aggregate,
		renderer:    renderer,
		maxParallel: maxParallel,
		logger:      logger,
	}
}

// ProcessRequest validates one credit application. It always returns a
// result: an escaping panic is converted into a FAILED_CRITICAL_ERROR
// envelope carrying whatever per-document results were completed.
func (s *PipelineService) ProcessRequest(ctx context.Context, client models.ClientData, documents []models.DocumentInput) (result *models.GlobalResult) {
	results := make(map[string]*models.DocumentResult, len(documents))
	var mu sync.Mutex

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("pipeline panic", zap.Any("panic", r), zap.String("solicitud_id", client.SolicitudID))
			mu.Lock()
			defer mu.Unlock()
			summary := &models.GlobalSummary{
				OverallStatus:         models.GlobalCriticalFailure,
				StatusMessage:         "Error crítico durante el procesamiento de la solicitud. Los resultados pueden estar incompletos.",
				DocumentStatusSummary: make(map[models.ValidationStatus]int),
				TotalDocuments:        len(results),
			}
			for _, doc := range results {
				summary.DocumentStatusSummary[doc.ValidationStatus]++
			}
			result = &models.GlobalResult{
				ValidationStatus: models.GlobalCriticalFailure,
				ErrorMessage:     fmt.Sprintf("error crítico durante el procesamiento: %v", r),
				DocumentResults:  results,
				GlobalSummary:    summary,
			}
		}
	}()

	s.logger.Info("processing validation request",
		zap.String("solicitud_id", client.SolicitudID),
		zap.Int("documents", len(documents)),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	for _, doc := range documents {
		doc := doc
		g.Go(func() error {
			docResult := s.processDocument(gctx, client, doc)
			mu.Lock()
			results[doc.Filename] = docResult
			mu.Unlock()
			return nil
		})
	}
	// Worker funcs never return errors; failures are recorded per document.
	_ = g.Wait()

	status, summary := s.aggregate.Aggregate(results)
	return &models.GlobalResult{
		ValidationStatus: status,
		DocumentResults:  results,
		GlobalSummary:    summary,
	}
}

// processDocument runs the four stages for one document. A stage failure
// stops the remaining stages and marks the document ERROR with a finding
// attributed to the failing stage. Panics are contained per document.
func (s *PipelineService) processDocument(ctx context.Context, client models.ClientData, doc models.DocumentInput) (result *models.DocumentResult) {
	result = &models.DocumentResult{
		Filename:         doc.Filename,
		ValidationStatus: models.ValidationError,
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("document processing panic", zap.Any("panic", r), zap.String("filename", doc.Filename))
			result.PreprocessStatus = models.PreprocessFailed
			result.PreprocessError = fmt.Sprintf("error interno al procesar el documento: %v", r)
			result.ValidationStatus = models.ValidationError
			result.Findings = []models.Finding{critical("preprocessing", result.PreprocessError)}
		}
	}()

	content, err := base64.StdEncoding.DecodeString(doc.Base64Content)
	if err != nil {
		result.PreprocessStatus = models.PreprocessFailed
		result.PreprocessError = fmt.Sprintf("contenido Base64 inválido: %v", err)
		result.Findings = []models.Finding{critical("preprocessing", result.PreprocessError)}
		return result
	}

	pre := s.preprocess.Process(ctx, content, doc.ContentType)
	result.PreprocessStatus = pre.Status
	result.RawText = pre.RawText
	result.PreprocessError = pre.Err
	if !pre.Status.Succeeded() {
		result.Findings = []models.Finding{critical("preprocessing", fmt.Sprintf("el preprocesamiento falló (%s): %s", pre.Status, pre.Err))}
		return result
	}

	cls := s.classify.Classify(ctx, pre.RawText)
	result.DocType = cls.DocType
	result.ClassificationStatus = cls.Status
	result.ClassificationError = cls.Err
	if cls.Status != models.ClassificationOK {
		result.Findings = []models.Finding{critical("classification", fmt.Sprintf("la clasificación falló: %s", cls.Err))}
		return result
	}

	ext := s.extract.Extract(ctx, cls.DocType, pre.RawText, s.renderForExtraction(doc.ContentType, content))
	result.ExtractionStatus = ext.Status
	result.ExtractionError = ext.Err
	result.ExtractedData = ext.Fields
	result.ExtractedReferences = ext.References
	if !ext.Status.Succeeded() {
		result.Findings = []models.Finding{critical("extraction", fmt.Sprintf("la extracción falló (%s): %s", ext.Status, ext.Err))}
		return result
	}

	status, findings := s.validate.Validate(client, cls.DocType, ext.Fields, ext.References)
	result.ValidationStatus = status
	result.Findings = findings
	return result
}

// renderForExtraction produces the page images the extractor sends to the
// vision model. A render failure yields no images, which the extractor turns
// into a terminal extraction failure for structured document types.
func (s *PipelineService) renderForExtraction(contentType string, content []byte) [][]byte {
	switch contentType {
	case models.ContentTypePDF:
		images, err := s.renderer.RenderPDF(content)
		if err != nil {
			s.logger.Error("PDF rasterization for extraction failed", zap.Error(err))
			return nil
		}
		return images
	case models.ContentTypeJPEG, models.ContentTypePNG:
		img, err := s.renderer.RenderImage(content)
		if err != nil {
			s.logger.Error("image decode for extraction failed", zap.Error(err))
			return nil
		}
		return [][]byte{img}
	default:
		return nil
	}
}
