package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const defaultReason = "No reason provided"

// Assessment is the structured result of an AI proposal review. Transient;
// it exists only long enough to compose a message.
type Assessment struct {
	Rating int    `json:"rating"`
	Reason string `json:"reason"`
}

// Generator produces support assessments for proposal summaries via the
// Gemini API.
type Generator struct {
	client       *genai.Client
	model        string
	instructions string
}

// New loads the static instructions file and creates the Gemini client.
// A missing instructions file is a startup failure.
func New(ctx context.Context, apiKey, model, instructionsPath string) (*Generator, error) {
	raw, err := os.ReadFile(instructionsPath)
	if err != nil {
		return nil, fmt.Errorf("load instructions file: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Generator{
		client:       client,
		model:        model,
		instructions: string(raw),
	}, nil
}

var assessmentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"rating": {Type: genai.TypeInteger},
		"reason": {Type: genai.TypeString},
	},
	Required: []string{"rating", "reason"},
}

// Assess rates a proposal summary. Errors are surfaced to the caller, which
// decides whether to degrade or skip.
func (g *Generator) Assess(ctx context.Context, summary string) (*Assessment, error) {
	prompt := g.instructions + "\n\n" + summary

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   assessmentSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("ai assessment failed: %w", err)
	}

	var text string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
	}
	if text == "" {
		return nil, fmt.Errorf("empty response from model %s", g.model)
	}

	return parseAssessment(text)
}

// parseAssessment decodes the model output. Missing fields default rather
// than fail; undecodable output is an error.
func parseAssessment(raw string) (*Assessment, error) {
	var a Assessment
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &a); err != nil {
		return nil, fmt.Errorf("parse assessment response: %w", err)
	}
	if a.Reason == "" {
		a.Reason = defaultReason
	}
	return &a, nil
}

// stripCodeFences removes a Markdown code fence some models wrap JSON in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
