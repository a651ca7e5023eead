package service

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"validocs/internal/models"
)

// AggregationService folds per-document outcomes into the request-level
// decision and its summary.
type AggregationService struct {
	logger *zap.Logger
}

func NewAggregationService(logger *zap.Logger) *AggregationService {
	return &AggregationService{logger: logger}
}

// Aggregate derives the global status from the per-document statuses:
// all OK → CURSADO, all ERROR → automatic rejection, anything pending or
// mixed → manual review. An empty result set is an automatic rejection.
func (s *AggregationService) Aggregate(results map[string]*models.DocumentResult) (models.GlobalStatus, *models.GlobalSummary) {
	summary := &models.GlobalSummary{
		DocumentStatusSummary: make(map[models.ValidationStatus]int),
		TotalDocuments:        len(results),
	}

	if len(results) == 0 {
		summary.OverallStatus = models.GlobalRechazada
		summary.StatusMessage = "No se encontraron documentos para procesar. La solicitud es rechazada automáticamente."
		return models.GlobalRechazada, summary
	}

	okCount, errorCount, pendingCount := 0, 0, 0
	for _, result := range results {
		summary.DocumentStatusSummary[result.ValidationStatus]++
		switch result.ValidationStatus {
		case models.ValidationOK:
			okCount++
		case models.ValidationError:
			errorCount++
		default:
			pendingCount++
		}

		if len(result.Findings) > 0 {
			summary.TotalErrors += len(result.Findings)
			summary.DocumentsWithErrors++
			summary.ErrorDetails = append(summary.ErrorDetails, models.ErrorDetail{
				DocumentID:   result.Filename,
				DocumentType: result.DocType,
				ErrorCount:   len(result.Findings),
				Errors:       result.Findings,
			})
		}
	}
	sort.Slice(summary.ErrorDetails, func(i, j int) bool {
		return summary.ErrorDetails[i].DocumentID < summary.ErrorDetails[j].DocumentID
	})

	var status models.GlobalStatus
	switch {
	case pendingCount > 0:
		status = models.GlobalPendienteManual
		summary.StatusMessage = "Uno o más documentos requieren revisión manual antes de cursar la solicitud."
	case errorCount == len(results):
		status = models.GlobalRechazada
		summary.StatusMessage = fmt.Sprintf("Todos los documentos presentan errores críticos (%d errores en total). La solicitud es rechazada automáticamente.", summary.TotalErrors)
	case okCount == len(results):
		status = models.GlobalCursado
		summary.StatusMessage = "Todos los documentos fueron validados exitosamente. La solicitud puede ser cursada."
	default:
		status = models.GlobalPendienteManual
		summary.StatusMessage = "Algunos documentos presentan errores. La solicitud requiere revisión manual."
	}
	summary.OverallStatus = status

	s.logger.Info("validation aggregated",
		zap.String("overall_status", string(status)),
		zap.Int("total_documents", summary.TotalDocuments),
		zap.Int("documents_with_errors", summary.DocumentsWithErrors),
	)
	return status, summary
}
