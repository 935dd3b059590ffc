package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns canned output, optionally after a delay
type stubGenerator struct {
	content string
	err     error
	delay   time.Duration
}

func (g *stubGenerator) Generate(ctx context.Context, genCtx GenerationContext) (string, error) {
	if g.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.delay):
		}
	}
	return g.content, g.err
}

func TestGenerateBoundedSuccess(t *testing.T) {
	gen := &stubGenerator{content: "Generated prose."}

	content, err := generateBounded(context.Background(), gen, GenerationContext{}, time.Second)

	require.NoError(t, err)
	assert.Equal(t, "Generated prose.", content)
}

func TestGenerateBoundedTimeout(t *testing.T) {
	gen := &stubGenerator{content: "too late", delay: 200 * time.Millisecond}

	_, err := generateBounded(context.Background(), gen, GenerationContext{}, 10*time.Millisecond)

	assert.ErrorIs(t, err, ErrGenerationTimeout)
}

func TestGenerateBoundedFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 500")}

	_, err := generateBounded(context.Background(), gen, GenerationContext{SectionNumber: "1.1"}, time.Second)

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "upstream 500")
}

func TestGenerateBoundedEmptyContent(t *testing.T) {
	gen := &stubGenerator{content: ""}

	_, err := generateBounded(context.Background(), gen, GenerationContext{}, time.Second)

	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestBuildPromptIncludesContext(t *testing.T) {
	prompt := buildPrompt(GenerationContext{
		ReportTitle:   "Smart Irrigation",
		Department:    "Agricultural Engineering",
		ChapterNumber: 3,
		ChapterTitle:  "Methodology",
		SectionNumber: "3.1",
		SectionTitle:  "Research Design",
		UserContent:   "We used a mixed-methods approach.",
	})

	assert.Contains(t, prompt, "Smart Irrigation")
	assert.Contains(t, prompt, "Agricultural Engineering")
	assert.Contains(t, prompt, "CHAPTER 3: Methodology")
	assert.Contains(t, prompt, "SECTION 3.1: Research Design")
	assert.Contains(t, prompt, "We used a mixed-methods approach.")
}

func TestBuildPromptOmitsEmptyNotes(t *testing.T) {
	prompt := buildPrompt(GenerationContext{
		ReportTitle:   "Smart Irrigation",
		ChapterNumber: 1,
		SectionNumber: "1.1",
	})

	assert.NotContains(t, prompt, "AUTHOR NOTES")
}
