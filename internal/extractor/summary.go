package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/mofasa/internal/anthropic"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

// Summarizer writes participant summaries with the streaming LLM call.
type Summarizer struct {
	llm       Streamer
	maxTokens int
	logger    *slog.Logger
}

func NewSummarizer(llm Streamer, maxTokens int, logger *slog.Logger) *Summarizer {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Summarizer{llm: llm, maxTokens: maxTokens, logger: logger}
}

// Summarize streams a summary of the participant's answers. It refuses to
// call the model when every section is unanswered.
func (s *Summarizer) Summarize(ctx context.Context, part project.Participant, bySection map[project.Section][]project.Question, onDelta func(string)) (string, error) {
	if len(project.AnsweredSections(part)) == 0 {
		return "", ErrNoAnswers
	}
	prompt := BuildSummaryPrompt(part, bySection)

	s.logger.Info("generating summary", "participant_id", part.ID, "prompt_len", len(prompt))

	text, err := s.llm.Stream(ctx, summarySystemPrompt, []anthropic.Message{{Role: "user", Content: prompt}}, s.maxTokens, onDelta)
	if err != nil {
		return "", fmt.Errorf("llm summary: %w", err)
	}
	return strings.TrimSpace(text), nil
}
