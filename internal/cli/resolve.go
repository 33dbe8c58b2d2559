package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

// resolveProject finds a project by exact id, case-insensitive name or
// unique id prefix.
func resolveProject(ctx context.Context, app *App, input string) (project.Project, error) {
	if input == "" {
		return project.Project{}, fmt.Errorf("project is required")
	}
	projects := app.Store.List(ctx)

	for _, p := range projects {
		if p.ID == input {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p, nil
		}
	}

	var matches []project.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return project.Project{}, fmt.Errorf("project %q: %w", input, project.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return project.Project{}, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveParticipant finds a participant of the scope by id or name.
func resolveParticipant(p project.Project, scopeIdx int, input string) (project.Participant, error) {
	if scopeIdx < 0 || scopeIdx >= len(p.Scopes) {
		return project.Participant{}, fmt.Errorf("scope %d: %w", scopeIdx+1, project.ErrNotFound)
	}
	for _, part := range p.Scopes[scopeIdx].Participants {
		if part.ID == input || strings.EqualFold(part.Name, input) {
			return part, nil
		}
	}
	return project.Participant{}, fmt.Errorf("participant %q: %w", input, project.ErrNotFound)
}
