package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"validocs/pkg/config"
)

// Generator is the slice of the language model the pipeline depends on.
// Implemented by LLMService; tests substitute a fake.
type Generator interface {
	// GenerateText sends a text-only prompt and returns the model reply.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateVision sends a prompt together with inline PNG images in one
	// multimodal request and returns the model reply.
	GenerateVision(ctx context.Context, prompt string, images [][]byte) (string, error)
}

type LLMService struct {
	client      *genai.Client
	textModel   *genai.GenerativeModel
	visionModel *genai.GenerativeModel
	logger      *zap.Logger
}

func NewLLMService(ctx context.Context, cfg *config.GeminiConfig, logger *zap.Logger) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Low temperatures keep classification and extraction deterministic
	textModel := client.GenerativeModel(cfg.TextModel)
	textModel.SetTemperature(0.1)

	visionModel := client.GenerativeModel(cfg.VisionModel)
	visionModel.SetTemperature(0.3)

	logger.Info("Gemini models initialized",
		zap.String("text_model", cfg.TextModel),
		zap.String("vision_model", cfg.VisionModel),
	)

	return &LLMService{
		client:      client,
		textModel:   textModel,
		visionModel: visionModel,
		logger:      logger,
	}, nil
}

func (s *LLMService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, s.textModel, genai.Text(prompt))
}

func (s *LLMService) GenerateVision(ctx context.Context, prompt string, images [][]byte) (string, error) {
	parts := make([]genai.Part, 0, len(images)+1)
	parts = append(parts, genai.Text(prompt))
	for _, img := range images {
		parts = append(parts, genai.Blob{MIMEType: "image/png", Data: img})
	}
	return s.generate(ctx, s.visionModel, parts...)
}

func (s *LLMService) generate(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (string, error) {
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from model")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return sanitizeUTF8(b.String()), nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
