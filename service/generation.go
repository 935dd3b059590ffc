package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
)

// GenerationContext carries the grounding information passed to the
// generation collaborator for one section.
type GenerationContext struct {
	ReportTitle   string
	Department    string
	ChapterNumber int
	ChapterTitle  string
	SectionNumber string
	SectionTitle  string

	// Current user-authored content (typed or uploaded), passed as
	// grounding context
	UserContent string
}

// Generator is the text-generation collaborator contract
type Generator interface {
	Generate(ctx context.Context, genCtx GenerationContext) (string, error)
}

const (
	generationModel = "gemini-2.0-flash"
	maxRetries      = 3
	initialBackoff  = time.Second

	// DefaultGenerationTimeout bounds a single section generation call
	DefaultGenerationTimeout = 90 * time.Second
)

// GeminiGenerator generates section prose with the Gemini API
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiGenerator creates a generator backed by a Gemini client
func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{
		client:    client,
		modelName: generationModel,
	}
}

// buildPrompt assembles the generation prompt from the section context
func buildPrompt(genCtx GenerationContext) string {
	var b strings.Builder

	b.WriteString("You are an academic writing assistant drafting one section of a structured report.\n\n")
	fmt.Fprintf(&b, "REPORT: %s\n", genCtx.ReportTitle)
	fmt.Fprintf(&b, "DEPARTMENT: %s\n", genCtx.Department)
	fmt.Fprintf(&b, "CHAPTER %d: %s\n", genCtx.ChapterNumber, genCtx.ChapterTitle)
	fmt.Fprintf(&b, "SECTION %s: %s\n\n", genCtx.SectionNumber, genCtx.SectionTitle)

	if genCtx.UserContent != "" {
		b.WriteString("AUTHOR NOTES (use as grounding, do not contradict):\n")
		b.WriteString(genCtx.UserContent + "\n\n")
	}

	b.WriteString(`TASK:
Write the body of this section only.

OUTPUT REQUIREMENTS:
- Formal academic prose, third person
- 2-4 paragraphs
- No markdown formatting (plain text)
- Do NOT include the section number or title as a header
- Do NOT invent citations, statistics, or named sources

Write the section now:`)

	return b.String()
}

// Generate calls the Gemini API with retry and exponential backoff
func (g *GeminiGenerator) Generate(ctx context.Context, genCtx GenerationContext) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client not set")
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0.4)

	prompt := buildPrompt(genCtx)

	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}

		content := extractText(resp)
		if content != "" {
			return content, nil
		}
		lastErr = errors.New("model returned empty content")
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", maxRetries, lastErr)
}

// extractText concatenates the text parts of all candidates
func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// generateBounded runs the collaborator under a bounded timeout and maps
// failures to the generation error taxonomy. The caller's prior section
// state is never touched here; on any error nothing has been written.
func generateBounded(ctx context.Context, gen Generator, genCtx GenerationContext, timeout time.Duration) (string, error) {
	genContext, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	content, err := gen.Generate(genContext, genCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(genContext.Err(), context.DeadlineExceeded) {
			return "", ErrGenerationTimeout
		}
		log.Printf("Generation failed for section %s: %v", genCtx.SectionNumber, err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if content == "" {
		return "", ErrGenerationFailed
	}
	return content, nil
}
