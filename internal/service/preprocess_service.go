package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"validocs/internal/docimage"
	"validocs/internal/models"
)

// PreprocessService turns a document's binary content into plain text:
// digital extraction for text PDFs, model OCR for scanned PDFs and raster
// images.
type PreprocessService struct {
	llm      Generator
	renderer *docimage.Renderer
	timeout  time.Duration
	logger   *zap.Logger
}

func NewPreprocessService(llm Generator, renderer *docimage.Renderer, timeout time.Duration, logger *zap.Logger) *PreprocessService {
	return &PreprocessService{
		llm:      llm,
		renderer: renderer,
		timeout:  timeout,
		logger:   logger,
	}
}

// PreprocessResult is the per-document preprocessing outcome.
type PreprocessResult struct {
	Status  models.PreprocessStatus
	RawText string
	Err     string
}

// Process extracts text from one document. Errors never escape: every
// failure mode maps to a terminal PreprocessStatus with the message retained.
func (s *PreprocessService) Process(ctx context.Context, content []byte, contentType string) PreprocessResult {
	switch contentType {
	case models.ContentTypePDF:
		return s.processPDF(ctx, content)
	case models.ContentTypeJPEG, models.ContentTypePNG:
		return s.processImage(ctx, content)
	default:
		return PreprocessResult{
			Status: models.PreprocessUnsupported,
			Err:    fmt.Sprintf("formato no soportado para preprocesamiento: %s", contentType),
		}
	}
}

func (s *PreprocessService) processPDF(ctx context.Context, content []byte) PreprocessResult {
	scanned, err := s.renderer.ScanPDF(content)
	if err != nil {
		return PreprocessResult{
			Status: models.PreprocessFailed,
			Err:    fmt.Sprintf("error al procesar PDF: %v", err),
		}
	}

	// Digital text anywhere in the document wins and OCR is skipped even for
	// image-only sibling pages. Cost policy, not a correctness guarantee:
	// mixed digital/scanned PDFs can lose scanned content.
	if scanned.HasDigitalText() {
		s.logger.Info("PDF text extracted digitally",
			zap.Int("text_pages", len(scanned.PageTexts)),
			zap.Int("image_pages", len(scanned.PageImages)),
		)
		return PreprocessResult{
			Status:  models.PreprocessDigitalPDF,
			RawText: collapseWhitespace(scanned.DigitalText()),
		}
	}

	if len(scanned.PageImages) == 0 {
		return PreprocessResult{
			Status: models.PreprocessNoContent,
			Err:    "el PDF no contiene texto digital ni imágenes procesables",
		}
	}

	return s.ocr(ctx, scanned.PageImages)
}

func (s *PreprocessService) processImage(ctx context.Context, content []byte) PreprocessResult {
	png, err := s.renderer.RenderImage(content)
	if err != nil {
		return PreprocessResult{
			Status: models.PreprocessFailed,
			Err:    fmt.Sprintf("error al procesar imagen: %v", err),
		}
	}
	return s.ocr(ctx, [][]byte{png})
}

// ocr sends every queued page image in one batched multimodal request.
func (s *PreprocessService) ocr(ctx context.Context, images [][]byte) PreprocessResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.llm.GenerateVision(ctx, ocrPrompt, images)
	if err != nil {
		return PreprocessResult{
			Status: models.PreprocessFailed,
			Err:    fmt.Sprintf("error al invocar el modelo multimodal: %v", err),
		}
	}

	text := collapseWhitespace(reply)
	if text == "" {
		return PreprocessResult{
			Status: models.PreprocessNoTextFound,
			Err:    "el modelo no pudo extraer texto del documento",
		}
	}

	s.logger.Info("text extracted via model OCR",
		zap.Int("pages", len(images)),
		zap.Int("text_length", len(text)),
	)
	return PreprocessResult{
		Status:  models.PreprocessLLMOCR,
		RawText: text,
	}
}
