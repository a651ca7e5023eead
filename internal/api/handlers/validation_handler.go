package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"validocs/internal/dto"
	"validocs/internal/models"
)

// Processor is the slice of the pipeline the HTTP layer depends on.
type Processor interface {
	ProcessRequest(ctx context.Context, client models.ClientData, documents []models.DocumentInput) *models.GlobalResult
}

type ValidationHandler struct {
	pipeline Processor
	logger   *zap.Logger
}

func NewValidationHandler(pipeline Processor, logger *zap.Logger) *ValidationHandler {
	return &ValidationHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// ValidateApplication handles POST /api/v1/validaciones. Structural problems
// with the request are rejected here with 400; per-document content problems
// (including malformed Base64) are reported inside the per-document results.
func (h *ValidationHandler) ValidateApplication(c *fiber.Ctx) error {
	var req dto.ValidationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.DataCliente.SolicitudID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "solicitud_id is required",
		})
	}
	if req.DataCliente.Nombres == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cliente_nombres is required",
		})
	}

	seen := make(map[string]struct{}, len(req.DataDocuments))
	documents := make([]models.DocumentInput, 0, len(req.DataDocuments))
	for _, doc := range req.DataDocuments {
		if doc.Filename == "" || doc.Base64Content == "" || doc.ContentType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "each document requires filename, base64_content and content_type",
			})
		}
		if _, dup := seen[doc.Filename]; dup {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "duplicate filename: " + doc.Filename,
			})
		}
		seen[doc.Filename] = struct{}{}
		documents = append(documents, doc.ToModel())
	}

	requestID := uuid.New().String()
	h.logger.Info("validation request received",
		zap.String("request_id", requestID),
		zap.String("solicitud_id", req.DataCliente.SolicitudID),
		zap.Int("documents", len(documents)),
	)

	result := h.pipeline.ProcessRequest(c.Context(), req.DataCliente.ToModel(), documents)

	h.logger.Info("validation request completed",
		zap.String("request_id", requestID),
		zap.String("status", string(result.ValidationStatus)),
	)
	return c.JSON(dto.ValidationResponse{
		RequestID:    requestID,
		GlobalResult: result,
	})
}

// Health handles GET /health.
func (h *ValidationHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "validocs",
	})
}
