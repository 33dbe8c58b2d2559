package extractor

import (
	"context"
	"errors"
	"strings"

	"github.com/MikeSquared-Agency/mofasa/internal/anthropic"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

var (
	ErrEmptyTranscript  = errors.New("interview transcript is empty")
	ErrNoQuestions      = errors.New("no questions enabled for extraction")
	ErrInvalidBatchSize = errors.New("batch size must be 3, 5, 7 or 10")
	ErrNoAnswers        = errors.New("participant has no answers to summarise")
)

// DefaultBatchSize is used when a request does not set one.
const DefaultBatchSize = 5

// ValidBatchSize reports whether n is one of the supported batch sizes.
func ValidBatchSize(n int) bool {
	switch n {
	case 3, 5, 7, 10:
		return true
	}
	return false
}

// Completer is the single-shot LLM call used for extraction.
type Completer interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
}

// Streamer is the streaming LLM call used for summaries.
type Streamer interface {
	Stream(ctx context.Context, system string, messages []anthropic.Message, maxTokens int, onDelta func(string)) (string, error)
}

// Mode selects how questions are sent to the model.
type Mode string

const (
	ModeBatch      Mode = "batch"
	ModeIndividual Mode = "individual"
)

// ParseMode accepts "batch" or "individual"; empty means batch.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeBatch:
		return ModeBatch, nil
	case ModeIndividual:
		return ModeIndividual, nil
	}
	return "", errors.New("mode must be batch or individual")
}

// Request is one extraction run over a single interview.
type Request struct {
	Transcript  string
	Description string
	Questions   []project.Question
	BatchSize   int // 0 uses the extractor default
}

// Progress is called after each completed unit with the number of questions
// processed so far and the total.
type Progress func(done, total int)

// Answer is the extracted value for one question.
type Answer struct {
	Question project.Question
	Value    string
	Failed   bool
}

// ExtractionResult holds every answer of a run in question order.
type ExtractionResult struct {
	Mode    Mode
	Answers []Answer
	Skipped int // questions in sections that are not extracted
}

// Failed counts answers that carry the ErrorProcessing sentinel.
func (r *ExtractionResult) Failed() int {
	n := 0
	for _, a := range r.Answers {
		if a.Failed {
			n++
		}
	}
	return n
}

// BySection groups answers into the participant answer map shape.
func (r *ExtractionResult) BySection() map[project.Section]map[string]string {
	out := map[project.Section]map[string]string{}
	for _, a := range r.Answers {
		sec := a.Question.Section
		if out[sec] == nil {
			out[sec] = map[string]string{}
		}
		out[sec][a.Question.Key()] = a.Value
	}
	return out
}
