package builder

import (
	"context"

	"resume-builder/resume/editor"
	"resume-builder/resume/model"
)

// AssistResult is the state after a text-assist operation. Applied is false
// when the provider fell back and nothing changed.
type AssistResult struct {
	Data    model.ResumeData `json:"data"`
	Applied bool             `json:"applied"`
}

// DraftSummary asks for a new summary. An empty draft keeps the current one.
func (s *Service) DraftSummary(ctx context.Context, ownerID string) (AssistResult, error) {
	data, err := s.Get(ctx, ownerID)
	if err != nil {
		return AssistResult{}, err
	}
	text, ok := s.Assist.DraftSummary(ctx, data.PrimaryRole(), "", data.SkillNames())
	if !ok || text == "" {
		return AssistResult{Data: data}, nil
	}
	next, err := s.Apply(ctx, ownerID, editor.SetSummary{Text: text})
	if err != nil {
		return AssistResult{}, err
	}
	return AssistResult{Data: next, Applied: true}, nil
}

// RewriteBullet improves one highlight of an experience in place.
func (s *Service) RewriteBullet(ctx context.Context, ownerID, experienceID string, index int) (AssistResult, error) {
	data, err := s.Get(ctx, ownerID)
	if err != nil {
		return AssistResult{}, err
	}
	idx := data.ExperienceByID(experienceID)
	if idx < 0 {
		return AssistResult{}, editor.ErrUnknownEntry
	}
	exp := data.Experiences[idx]
	if index < 0 || index >= len(exp.Highlights) {
		return AssistResult{}, editor.ErrIndexOutOfRange
	}
	text, ok := s.Assist.RewriteBullet(ctx, exp.Highlights[index], exp.Position)
	if !ok {
		return AssistResult{Data: data}, nil
	}
	next, err := s.Apply(ctx, ownerID, editor.SetHighlight{ExperienceID: experienceID, Index: index, Text: text})
	if err != nil {
		return AssistResult{}, err
	}
	return AssistResult{Data: next, Applied: true}, nil
}

// SuggestSkills appends suggested skills with an unset level.
func (s *Service) SuggestSkills(ctx context.Context, ownerID string) (AssistResult, []string, error) {
	data, err := s.Get(ctx, ownerID)
	if err != nil {
		return AssistResult{}, nil, err
	}
	names, ok := s.Assist.SuggestSkills(ctx, data.PrimaryRole())
	if !ok || len(names) == 0 {
		return AssistResult{Data: data}, names, nil
	}
	next, err := s.Apply(ctx, ownerID, editor.AppendSkills{Names: names})
	if err != nil {
		return AssistResult{}, nil, err
	}
	return AssistResult{Data: next, Applied: true}, names, nil
}
