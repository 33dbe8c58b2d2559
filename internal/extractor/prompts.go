package extractor

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

const systemPrompt = `You are a research assistant helping a human-robot interaction researcher code participant interviews with the MoFASA framework (Situation, Identity, Definition of Situation, Rule Selection, Decision).

You answer questions about a single interview. You are precise, literal and brief. You never guess.`

const summarySystemPrompt = `You are a research assistant helping a human-robot interaction researcher. You write short, neutral participant summaries from coded interview answers. You do not add information that is not in the answers.`

// extractionRules apply to both prompt shapes.
const extractionRules = `Rules:
- Extract only information that is explicitly present in the interview transcript.
- Do not repeat or rephrase the question in your answer.
- If the question lists options, return only the selected option.
- If the question can be answered with yes or no, return only the participant's reasoning, not the literal "yes" or "no".
- If the transcript does not contain the information, reply exactly "Information not provided".
- Never invent quotes from the participant and never use a made-up quote as the answer.`

// BuildSinglePrompt renders the one-question extraction prompt.
func BuildSinglePrompt(question, transcript, description string) string {
	var sb strings.Builder
	writeContext(&sb, description)
	sb.WriteString("Read the interview transcript and answer the question.\n\n")
	sb.WriteString(extractionRules)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	writeTranscript(&sb, transcript)
	sb.WriteString("\nRespond with the answer only.")
	return sb.String()
}

// BuildBatchPrompt renders the numbered multi-question extraction prompt.
func BuildBatchPrompt(questions []string, transcript, description string) string {
	var sb strings.Builder
	writeContext(&sb, description)
	sb.WriteString("Read the interview transcript and answer each of the numbered questions.\n\n")
	sb.WriteString(extractionRules)
	sb.WriteString("\n\nQuestions:\n")
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}
	sb.WriteString("\n")
	writeTranscript(&sb, transcript)
	sb.WriteString("\nReply with exactly one line per question, in the same order, using this format:\n")
	for i := range questions {
		fmt.Fprintf(&sb, "%d. <answer>\n", i+1)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeContext(sb *strings.Builder, description string) {
	if d := strings.TrimSpace(description); d != "" {
		sb.WriteString("Project description: ")
		sb.WriteString(d)
		sb.WriteString("\n\n")
	}
}

func writeTranscript(sb *strings.Builder, transcript string) {
	sb.WriteString("Interview transcript:\n---\n")
	sb.WriteString(strings.TrimSpace(transcript))
	sb.WriteString("\n---\n")
}

const optionsMarker = " (Options: "

// QuestionPrompt renders a question the way it appears in a prompt. Dropdown
// questions carry their options so the model can pick one.
func QuestionPrompt(q project.Question) string {
	if q.Type == project.QuestionDropdown && len(q.Options) > 0 {
		return q.Text + optionsMarker + strings.Join(q.Options, ", ") + ")"
	}
	return q.Text
}

// BuildSummaryPrompt lists the participant's non-blank answers by section.
func BuildSummaryPrompt(part project.Participant, bySection map[project.Section][]project.Question) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a summary of participant %q in one paragraph of at most 120 words, based only on the coded answers below.\n", part.Name)
	for _, sec := range project.Sections {
		answers := part.Answers[sec]
		if !project.HasAnswers(part, sec) {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n", sec)
		seen := map[string]bool{}
		for _, q := range bySection[sec] {
			seen[q.Key()] = true
			if v := strings.TrimSpace(answers[q.Key()]); v != "" {
				fmt.Fprintf(&sb, "Q: %s\nA: %s\n", q.Text, v)
			}
		}
		for _, key := range sortedKeys(answers) {
			if seen[key] {
				continue
			}
			if v := strings.TrimSpace(answers[key]); v != "" {
				fmt.Fprintf(&sb, "Q: %s\nA: %s\n", key, v)
			}
		}
	}
	if rules := part.Rules(); len(rules) > 0 {
		sb.WriteString("\n## Selected rules\n")
		for _, r := range rules {
			if d := strings.TrimSpace(part.Decision[r]); d != "" {
				fmt.Fprintf(&sb, "- %s: %s\n", r, d)
			} else {
				fmt.Fprintf(&sb, "- %s\n", r)
			}
		}
	}
	return sb.String()
}
