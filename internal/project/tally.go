package project

import "slices"

// RuleCount is how many participants of a scope selected a rule.
type RuleCount struct {
	Rule        string `json:"rule"`
	Count       int    `json:"count"`
	Undesirable bool   `json:"undesirable"`
}

// RuleFrequencies tallies rule selections in rule order. A participant
// counts at most once per rule.
func RuleFrequencies(s Scope) []RuleCount {
	out := make([]RuleCount, 0, len(s.Rules))
	for _, rule := range s.Rules {
		rc := RuleCount{Rule: rule, Undesirable: slices.Contains(s.UndesirableRules, rule)}
		for _, part := range s.Participants {
			if slices.Contains(part.Rules(), rule) {
				rc.Count++
			}
		}
		out = append(out, rc)
	}
	return out
}

// UndesirableShare is the fraction of participants in the scope who selected
// at least one undesirable rule. Zero when the scope has no participants.
func UndesirableShare(s Scope) float64 {
	if len(s.Participants) == 0 {
		return 0
	}
	n := 0
	for _, part := range s.Participants {
		for _, r := range part.Rules() {
			if slices.Contains(s.UndesirableRules, r) {
				n++
				break
			}
		}
	}
	return float64(n) / float64(len(s.Participants))
}
