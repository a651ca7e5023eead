package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"validocs/internal/models"
)

// ClassificationService resolves a document's extracted text to one of the
// allowed document types via a single text-only model call.
type ClassificationService struct {
	llm     Generator
	timeout time.Duration
	logger  *zap.Logger
}

func NewClassificationService(llm Generator, timeout time.Duration, logger *zap.Logger) *ClassificationService {
	return &ClassificationService{
		llm:     llm,
		timeout: timeout,
		logger:  logger,
	}
}

type ClassificationResult struct {
	DocType models.DocumentType
	Status  models.ClassificationStatus
	Err     string
}

// Classify asks the model for exactly one of the six labels. Anything else
// defaults to OTRO with the unexpected reply recorded.
func (s *ClassificationService) Classify(ctx context.Context, rawText string) ClassificationResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.llm.GenerateText(ctx, classificationPrompt(rawText))
	if err != nil {
		return ClassificationResult{
			DocType: models.DocumentTypeOtro,
			Status:  models.ClassificationFailed,
			Err:     fmt.Sprintf("error al clasificar documento: %v", err),
		}
	}

	docType, ok := models.ParseDocumentType(reply)
	if !ok {
		return ClassificationResult{
			DocType: models.DocumentTypeOtro,
			Status:  models.ClassificationFailed,
			Err:     fmt.Sprintf("el modelo devolvió un tipo inesperado: %q", truncate(reply, 120)),
		}
	}

	s.logger.Info("document classified", zap.String("doc_type", string(docType)))
	return ClassificationResult{
		DocType: docType,
		Status:  models.ClassificationOK,
	}
}
