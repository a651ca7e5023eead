package service

import (
	"time"

	"go.uber.org/zap"

	"validocs/internal/models"
)

// ValidationService applies the per-type business rules to extracted data.
// Rules only accumulate findings; the final status comes from a single
// reduction over the accumulated severities.
type ValidationService struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewValidationService(logger *zap.Logger) *ValidationService {
	return &ValidationService{
		logger: logger,
		now:    time.Now,
	}
}

// Validate checks one document's extracted fields against the client data.
// The returned findings include the curse-date finding when the request
// carried an unparseable date.
func (s *ValidationService) Validate(client models.ClientData, docType models.DocumentType, fields models.FieldMap, references []models.FieldMap) (models.ValidationStatus, []models.Finding) {
	anchor := resolveAnchor(client.FechaCurse, s.now)

	findings := append([]models.Finding(nil), anchor.findings...)

	switch docType {
	case models.DocumentTypeCedulaIdentidad:
		findings = append(findings, validateCedula(client, fields, anchor)...)
	case models.DocumentTypeComprobanteDomicilio:
		findings = append(findings, validateComprobante(client, fields, anchor)...)
	case models.DocumentTypeCertificadoDeuda:
		findings = append(findings, validateCertificado(client, fields, anchor)...)
	case models.DocumentTypeReferencias:
		findings = append(findings, validateReferencias(references)...)
	case models.DocumentTypeLiquidacionSueldo:
		findings = append(findings, validateLiquidacion(client, fields, anchor)...)
	case models.DocumentTypeOtro:
		findings = append(findings, manual("document_type", "el tipo de documento no pudo ser determinado, requiere revisión manual"))
	default:
		findings = append(findings, manual("document_type", "tipo de documento sin reglas de validación, requiere revisión manual"))
	}

	status := models.ReduceStatus(findings)
	s.logger.Info("document validated",
		zap.String("doc_type", string(docType)),
		zap.String("status", string(status)),
		zap.Int("findings", len(findings)),
	)
	return status, findings
}
