package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"manualdesk/internal/logger"
	"manualdesk/internal/models"
)

const procedurePrompt = `
You are an expert mechanic's assistant. Based on the following service manual procedure HTML content, extract the key information.

The output MUST be a single, valid JSON object that conforms to the provided schema. Do not include any text or markdown formatting before or after the JSON object.

Here is the procedure content:
---
%s
---
`

const troubleshootPrompt = `
You are an AI-powered master technician and troubleshooting assistant. Your goal is to help a user diagnose a problem with their heavy machinery.
Use the provided manual context to formulate your response. Be clear, concise, and provide actionable steps.
Format your response using simple markdown. Use headings for sections, bullet points for lists, and bold text for emphasis.
When you refer to a section of the manual, link it as [Section title](page-id:<id>) using only page ids present in the context.

**Manual Context:**
%s

**User's Described Symptom:**
"%s"

Based on this information, provide a diagnostic plan.
`

// GeminiClient — AIClient поверх Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: AI client is not initialized. API key may be missing.", ErrAIUnavailable)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: создание клиента: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	var text string
	err := retry.Do(
		func() error {
			resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
			if err != nil {
				return err
			}
			text = strings.TrimSpace(resp.Text())
			if text == "" {
				return fmt.Errorf("пустой ответ модели")
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.WithCtx(ctx).Warn("gemini: повтор запроса", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	return text, nil
}

func (g *GeminiClient) Troubleshoot(ctx context.Context, manualContext, symptom string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(troubleshootPrompt, manualContext, symptom), nil)
}

func (g *GeminiClient) ExtractProcedure(ctx context.Context, pageHTML string) (*models.ProcedureDetails, error) {
	text, err := g.generate(ctx, fmt.Sprintf(procedurePrompt, pageHTML), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   procedureSchema,
	})
	if err != nil {
		return nil, err
	}
	var details models.ProcedureDetails
	if err := json.Unmarshal([]byte(text), &details); err != nil {
		return nil, fmt.Errorf("%w: разбор ответа: %v", ErrAIUnavailable, err)
	}
	return &details, nil
}

func stringList(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: desc,
	}
}

var procedureSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":    {Type: genai.TypeString, Description: "A concise title for the procedure."},
		"tools":    stringList("An array of strings listing required tools."),
		"parts":    stringList("An array of strings listing required parts."),
		"warnings": stringList("An array of strings for safety precautions."),
		"steps": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"step":        {Type: genai.TypeInteger},
					"description": {Type: genai.TypeString},
				},
				Required: []string{"step", "description"},
			},
			Description: "An array of step objects.",
		},
		"torqueSpecs": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"part": {Type: genai.TypeString},
					"spec": {Type: genai.TypeString},
				},
				Required: []string{"part", "spec"},
			},
			Description: "An array of torque specification objects.",
		},
	},
	Required: []string{"title", "tools", "parts", "warnings", "steps", "torqueSpecs"},
}
