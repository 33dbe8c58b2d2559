package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/mofasa/internal/anthropic"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

const defaultMaxTokens = 2048

type Extractor struct {
	llm       Completer
	batchSize int
	maxTokens int
	logger    *slog.Logger
}

// New creates an extractor. An unsupported batch size falls back to DefaultBatchSize.
func New(llm Completer, batchSize, maxTokens int, logger *slog.Logger) *Extractor {
	if !ValidBatchSize(batchSize) {
		batchSize = DefaultBatchSize
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Extractor{llm: llm, batchSize: batchSize, maxTokens: maxTokens, logger: logger}
}

// Extract runs the request in the given mode.
func (e *Extractor) Extract(ctx context.Context, mode Mode, req Request, progress Progress) (*ExtractionResult, error) {
	switch mode {
	case ModeIndividual:
		return e.ExtractIndividual(ctx, req, progress)
	default:
		return e.ExtractBatch(ctx, req, progress)
	}
}

// prepare validates the request and drops questions that are disabled or
// belong to sections coded by hand. Nothing is sent to the model when it fails.
func (e *Extractor) prepare(req Request) ([]project.Question, int, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, 0, ErrEmptyTranscript
	}
	var qs []project.Question
	skipped := 0
	for _, q := range req.Questions {
		if !q.Enabled {
			continue
		}
		if !q.Section.Extractable() {
			skipped++
			continue
		}
		qs = append(qs, q)
	}
	if len(qs) == 0 {
		return nil, skipped, ErrNoQuestions
	}
	return qs, skipped, nil
}

// ExtractBatch sends the questions in numbered batches, one request at a
// time. A failed request marks every question of that batch with
// ErrorProcessing and the run continues with the next batch.
func (e *Extractor) ExtractBatch(ctx context.Context, req Request, progress Progress) (*ExtractionResult, error) {
	size := req.BatchSize
	if size == 0 {
		size = e.batchSize
	}
	if !ValidBatchSize(size) {
		return nil, ErrInvalidBatchSize
	}
	qs, skipped, err := e.prepare(req)
	if err != nil {
		return nil, err
	}

	batches := ChunkQuestions(qs, size)
	result := &ExtractionResult{Mode: ModeBatch, Skipped: skipped}

	e.logger.Info("batch extraction starting",
		"questions", len(qs),
		"batches", len(batches),
		"batch_size", size,
		"transcript_len", len(req.Transcript),
	)

	for bi, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		texts := make([]string, len(batch))
		for i, q := range batch {
			texts[i] = QuestionPrompt(q)
		}
		prompt := BuildBatchPrompt(texts, req.Transcript, req.Description)

		raw, err := e.llm.Complete(ctx, systemPrompt, []anthropic.Message{{Role: "user", Content: prompt}}, e.maxTokens)
		if err != nil {
			e.logger.Warn("batch extraction failed", "batch", bi+1, "questions", len(batch), "error", err)
			for _, q := range batch {
				result.Answers = append(result.Answers, Answer{Question: q, Value: ErrorProcessing, Failed: true})
			}
		} else {
			for i, v := range ParseBatchAnswersFor(raw, texts) {
				result.Answers = append(result.Answers, Answer{Question: batch[i], Value: normalizeOption(batch[i], v)})
			}
		}

		if progress != nil {
			progress(len(result.Answers), len(qs))
		}
	}

	e.logger.Info("batch extraction complete", "answers", len(result.Answers), "failed", result.Failed())
	return result, nil
}

// ExtractIndividual asks one question per request. A failed request only
// affects its own question.
func (e *Extractor) ExtractIndividual(ctx context.Context, req Request, progress Progress) (*ExtractionResult, error) {
	qs, skipped, err := e.prepare(req)
	if err != nil {
		return nil, err
	}
	result := &ExtractionResult{Mode: ModeIndividual, Skipped: skipped}

	e.logger.Info("individual extraction starting", "questions", len(qs), "transcript_len", len(req.Transcript))

	for i, q := range qs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prompt := BuildSinglePrompt(QuestionPrompt(q), req.Transcript, req.Description)
		raw, err := e.llm.Complete(ctx, systemPrompt, []anthropic.Message{{Role: "user", Content: prompt}}, e.maxTokens)
		if err != nil {
			e.logger.Warn("question extraction failed", "question_id", q.ID, "error", err)
			result.Answers = append(result.Answers, Answer{Question: q, Value: ErrorProcessing, Failed: true})
		} else {
			result.Answers = append(result.Answers, Answer{Question: q, Value: normalizeOption(q, ParseSingleAnswer(raw))})
		}
		if progress != nil {
			progress(i+1, len(qs))
		}
	}

	e.logger.Info("individual extraction complete", "answers", len(result.Answers), "failed", result.Failed())
	return result, nil
}

// normalizeOption maps a dropdown answer to the option's own spelling when
// it matches case-insensitively.
func normalizeOption(q project.Question, v string) string {
	if q.Type != project.QuestionDropdown {
		return v
	}
	for _, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(v), opt) {
			return opt
		}
	}
	return v
}

// ChunkQuestions splits questions into consecutive batches of at most size.
func ChunkQuestions(qs []project.Question, size int) [][]project.Question {
	if len(qs) == 0 || size <= 0 {
		return nil
	}
	var chunks [][]project.Question
	for start := 0; start < len(qs); start += size {
		end := min(start+size, len(qs))
		chunk := make([]project.Question, end-start)
		copy(chunk, qs[start:end])
		chunks = append(chunks, chunk)
	}
	return chunks
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Describe is a short human-readable line for logs and CLI output.
func (r *ExtractionResult) Describe() string {
	return fmt.Sprintf("%s extraction: %d answers, %d failed, %d skipped", r.Mode, len(r.Answers), r.Failed(), r.Skipped)
}
