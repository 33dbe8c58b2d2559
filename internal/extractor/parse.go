package extractor

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// InfoNotProvided is recorded when the model found nothing for a question.
	InfoNotProvided = "Information not provided"
	// ErrorProcessing is recorded when the call for a question failed.
	ErrorProcessing = "Error processing this question"
)

// batchPrefixes are labels the model tends to put in front of numbered answers.
var batchPrefixes = []string{
	"Answer:",
	"[Answer: ",
	"Age-Range: ",
	"Age Range: ",
	"Gender: ",
	"Nationality: ",
	"Occupation: ",
	"Education: ",
}

// singlePrefixes are the boilerplate openers stripped from single answers.
var singlePrefixes = []string{
	"Answer:",
	"The answer is:",
	"Based on the interview:",
	"From the interview:",
	"The participant:",
	"The individual:",
}

var leadingTag = regexp.MustCompile(`^\[.*?\]\s*`)

// ParseBatchAnswers recovers n answers from a numbered reply. A question with
// no "<i>." line gets InfoNotProvided.
func ParseBatchAnswers(raw string, n int) []string {
	return parseBatch(raw, n, nil)
}

// ParseBatchAnswersFor is ParseBatchAnswers that also strips the question
// text when the model echoed it as a label.
func ParseBatchAnswersFor(raw string, questions []string) []string {
	return parseBatch(raw, len(questions), questions)
}

func parseBatch(raw string, n int, questions []string) []string {
	if n <= 0 {
		return []string{}
	}
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	out := make([]string, n)
	for i := range out {
		marker := fmt.Sprintf("%d.", i+1)
		out[i] = InfoNotProvided
		for _, l := range lines {
			if !strings.HasPrefix(l, marker) {
				continue
			}
			var extra []string
			if i < len(questions) {
				extra = questionLabels(questions[i])
			}
			out[i] = cleanBatchAnswer(l[len(marker):], extra)
			break
		}
	}
	return out
}

func cleanBatchAnswer(s string, extra []string) string {
	s = strings.TrimSpace(s)
	bracketed := false
	for _, p := range append(extra, batchPrefixes...) {
		if hasPrefixFold(s, p) {
			if p == "[Answer: " {
				bracketed = true
			}
			s = strings.TrimSpace(s[len(p):])
		}
	}
	if bracketed {
		s = strings.TrimSpace(strings.TrimSuffix(s, "]"))
	}
	s = leadingTag.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// questionLabels returns the echoed-question forms the model uses as labels.
// q is the question as the prompt listed it. A dropdown's "(Options: ...)"
// tail may or may not be echoed, so both forms are returned, longest first.
func questionLabels(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	labels := []string{q + ":"}
	if i := strings.Index(q, optionsMarker); i > 0 {
		labels = append(labels, strings.TrimSpace(q[:i])+":")
	}
	return labels
}

// ParseSingleAnswer cleans a one-question reply: one leading boilerplate
// prefix is removed, and when several lines remain the last one is the answer.
func ParseSingleAnswer(raw string) string {
	s := strings.TrimSpace(raw)
	for _, p := range singlePrefixes {
		if hasPrefixFold(s, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	var last string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			last = l
		}
	}
	return last
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
