package hermes

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	// SubjectAnswersExtracted is published after extracted answers are stored.
	SubjectAnswersExtracted = "mofasa.answers.extracted"
	// SubjectRuleDeleted is published after a rule and its references are removed.
	SubjectRuleDeleted = "mofasa.rule.deleted"
	// SubjectSummaryGenerated is published after a participant summary is stored.
	SubjectSummaryGenerated = "mofasa.summary.generated"
	// SubjectExtractRequested asks a running server to extract a participant.
	SubjectExtractRequested = "mofasa.extract.requested"
)

type AnswersExtracted struct {
	ProjectID     string    `json:"project_id"`
	Scope         int       `json:"scope"`
	ParticipantID string    `json:"participant_id"`
	Mode          string    `json:"mode"`
	Answers       int       `json:"answers"`
	Failed        int       `json:"failed"`
	ExtractedAt   time.Time `json:"extracted_at"`
}

type RuleDeleted struct {
	ProjectID string    `json:"project_id"`
	Scope     int       `json:"scope"`
	Rule      string    `json:"rule"`
	DeletedAt time.Time `json:"deleted_at"`
}

type SummaryGenerated struct {
	ProjectID     string    `json:"project_id"`
	Scope         int       `json:"scope"`
	ParticipantID string    `json:"participant_id"`
	Length        int       `json:"length"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// ExtractRequested is the inbound request to run extraction headlessly.
type ExtractRequested struct {
	ProjectID     string `json:"project_id"`
	Scope         int    `json:"scope"`
	ParticipantID string `json:"participant_id"`
	Mode          string `json:"mode,omitempty"`
	BatchSize     int    `json:"batch_size,omitempty"`
}

// ParseExtractRequested decodes and checks an inbound extraction request.
func ParseExtractRequested(data []byte) (ExtractRequested, error) {
	var req ExtractRequested
	if err := json.Unmarshal(data, &req); err != nil {
		return ExtractRequested{}, fmt.Errorf("decode extract request: %w", err)
	}
	if req.ProjectID == "" || req.ParticipantID == "" {
		return ExtractRequested{}, errors.New("extract request needs project_id and participant_id")
	}
	if req.Scope < 0 {
		return ExtractRequested{}, fmt.Errorf("extract request scope %d is negative", req.Scope)
	}
	return req, nil
}
