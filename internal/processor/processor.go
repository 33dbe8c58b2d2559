package processor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/mofasa/internal/extractor"
	"github.com/MikeSquared-Agency/mofasa/internal/hermes"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
	"github.com/MikeSquared-Agency/mofasa/internal/questions"
	"github.com/MikeSquared-Agency/mofasa/internal/store"
)

// Publisher sends events to the bus. A nil Publisher disables events.
type Publisher interface {
	Publish(subject string, data any) error
}

// Processor ties extraction, summaries and rule edits to the project store.
type Processor struct {
	store      *store.Store
	catalog    *questions.Catalog
	extractor  *extractor.Extractor
	summarizer *extractor.Summarizer
	bus        Publisher
	logger     *slog.Logger

	mu      sync.Mutex
	running map[string]bool // participant extractions in flight
}

func New(s *store.Store, catalog *questions.Catalog, ext *extractor.Extractor, sum *extractor.Summarizer, bus Publisher, logger *slog.Logger) *Processor {
	return &Processor{
		store:      s,
		catalog:    catalog,
		extractor:  ext,
		summarizer: sum,
		bus:        bus,
		logger:     logger,
		running:    make(map[string]bool),
	}
}

// ErrBusy is returned when the participant already has an extraction running.
var ErrBusy = fmt.Errorf("extraction already running for participant: %w", project.ErrDuplicate)

// ExtractInput identifies the participant to extract and how.
type ExtractInput struct {
	ProjectID     string
	Scope         int
	ParticipantID string
	Mode          extractor.Mode
	BatchSize     int
}

// ExtractParticipant runs extraction over the participant's stored interview
// and writes every answer, sentinels included, into the project.
func (p *Processor) ExtractParticipant(ctx context.Context, in ExtractInput, progress extractor.Progress) (*extractor.ExtractionResult, error) {
	key := in.ProjectID + "/" + in.ParticipantID
	p.mu.Lock()
	if p.running[key] {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.running[key] = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.running, key)
		p.mu.Unlock()
	}()

	proj, err := p.store.Get(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	part, err := project.FindParticipant(proj, in.Scope, in.ParticipantID)
	if err != nil {
		return nil, err
	}

	req := extractor.Request{
		Transcript:  part.InterviewText,
		Description: proj.Description,
		Questions:   questions.Flatten(p.catalog.Enabled(proj)),
		BatchSize:   in.BatchSize,
	}

	p.logger.Info("extracting participant",
		"project_id", in.ProjectID,
		"scope", in.Scope,
		"participant_id", in.ParticipantID,
		"mode", in.Mode,
		"questions", len(req.Questions),
	)

	result, err := p.extractor.Extract(ctx, in.Mode, req, progress)
	if err != nil {
		return nil, fmt.Errorf("extract participant %s: %w", in.ParticipantID, err)
	}

	_, err = p.store.Update(ctx, in.ProjectID, func(doc project.Project) (project.Project, error) {
		for _, a := range result.Answers {
			sec, key := a.Question.Section, a.Question.Key()
			opts := project.WriteOptions{AllScopes: p.catalog.SameForAllScopes(doc, sec, key)}
			doc, err = project.SetAnswer(doc, in.Scope, in.ParticipantID, sec, key, a.Value, opts)
			if err != nil {
				return doc, err
			}
		}
		return doc, nil
	})
	if err != nil {
		return nil, fmt.Errorf("store answers: %w", err)
	}

	p.publish(hermes.SubjectAnswersExtracted, hermes.AnswersExtracted{
		ProjectID:     in.ProjectID,
		Scope:         in.Scope,
		ParticipantID: in.ParticipantID,
		Mode:          string(result.Mode),
		Answers:       len(result.Answers),
		Failed:        result.Failed(),
		ExtractedAt:   time.Now().UTC(),
	})

	p.logger.Info("participant extracted",
		"project_id", in.ProjectID,
		"participant_id", in.ParticipantID,
		"answers", len(result.Answers),
		"failed", result.Failed(),
	)
	return result, nil
}

// SetAnswer records one manual answer. Questions marked same-for-all-scopes
// are written into every scope.
func (p *Processor) SetAnswer(ctx context.Context, projectID string, scope int, participantID string, section project.Section, key, value string) (project.Project, error) {
	return p.store.Update(ctx, projectID, func(doc project.Project) (project.Project, error) {
		opts := project.WriteOptions{AllScopes: p.catalog.SameForAllScopes(doc, section, key)}
		return project.SetAnswer(doc, scope, participantID, section, key, value, opts)
	})
}

// SetInterview stores the participant's interview transcript.
func (p *Processor) SetInterview(ctx context.Context, projectID string, scope int, participantID, text string) (project.Project, error) {
	return p.store.Update(ctx, projectID, func(doc project.Project) (project.Project, error) {
		return project.SetInterview(doc, scope, participantID, text)
	})
}

// DeleteRule removes a rule and every reference to it from the scope.
func (p *Processor) DeleteRule(ctx context.Context, projectID string, scope int, rule string) (project.Project, error) {
	doc, err := p.store.Update(ctx, projectID, func(doc project.Project) (project.Project, error) {
		return project.DeleteRule(doc, scope, rule)
	})
	if err != nil {
		return doc, err
	}

	p.publish(hermes.SubjectRuleDeleted, hermes.RuleDeleted{
		ProjectID: projectID,
		Scope:     scope,
		Rule:      rule,
		DeletedAt: time.Now().UTC(),
	})
	p.logger.Info("rule deleted", "project_id", projectID, "scope", scope, "rule", rule)
	return doc, nil
}

// Summarize generates and stores the participant's summary. onDelta receives
// streamed text as it arrives.
func (p *Processor) Summarize(ctx context.Context, projectID string, scope int, participantID string, onDelta func(string)) (string, error) {
	proj, err := p.store.Get(ctx, projectID)
	if err != nil {
		return "", err
	}
	part, err := project.FindParticipant(proj, scope, participantID)
	if err != nil {
		return "", err
	}

	text, err := p.summarizer.Summarize(ctx, part, p.catalog.Enabled(proj), onDelta)
	if err != nil {
		return "", err
	}

	_, err = p.store.Update(ctx, projectID, func(doc project.Project) (project.Project, error) {
		return project.SetSummary(doc, scope, participantID, text)
	})
	if err != nil {
		return "", fmt.Errorf("store summary: %w", err)
	}

	p.publish(hermes.SubjectSummaryGenerated, hermes.SummaryGenerated{
		ProjectID:     projectID,
		Scope:         scope,
		ParticipantID: participantID,
		Length:        len(text),
		GeneratedAt:   time.Now().UTC(),
	})
	return text, nil
}

// HandleExtractRequested is the NATS handler for mofasa.extract.requested.
func (p *Processor) HandleExtractRequested(subject string, data []byte) {
	req, err := hermes.ParseExtractRequested(data)
	if err != nil {
		p.logger.Error("failed to parse extract request", "subject", subject, "error", err)
		return
	}
	mode, err := extractor.ParseMode(req.Mode)
	if err != nil {
		p.logger.Error("invalid extract request", "mode", req.Mode, "error", err)
		return
	}

	_, err = p.ExtractParticipant(context.Background(), ExtractInput{
		ProjectID:     req.ProjectID,
		Scope:         req.Scope,
		ParticipantID: req.ParticipantID,
		Mode:          mode,
		BatchSize:     req.BatchSize,
	}, func(done, total int) {
		p.logger.Debug("extraction progress", "participant_id", req.ParticipantID, "done", done, "total", total)
	})
	if err != nil {
		p.logger.Error("requested extraction failed",
			"project_id", req.ProjectID,
			"participant_id", req.ParticipantID,
			"error", err,
		)
	}
}

func (p *Processor) publish(subject string, data any) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(subject, data); err != nil {
		p.logger.Error("failed to publish event", "subject", subject, "error", err)
	}
}
