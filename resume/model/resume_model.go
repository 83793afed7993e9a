package model

import (
	"errors"
	"fmt"
	"strings"
)

// ResumeData is the root aggregate holding all résumé content and the active template.
type ResumeData struct {
	Contact     Contact      `json:"contact"`
	Summary     string       `json:"summary"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Skills      []Skill      `json:"skills"`
	Template    Template     `json:"template"`
}

// Contact captures top-of-resume identity details. All fields are optional free text.
type Contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
}

// Experience represents a work history entry. An empty EndDate means ongoing.
type Experience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

// Education represents an academic credential.
type Education struct {
	ID             string `json:"id"`
	School         string `json:"school"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"fieldOfStudy"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa,omitempty"`
}

// Skill is a named competency with an optional proficiency level.
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// Validate enforces enum membership and unique, non-empty entry ids.
// Free text is never validated.
func (d ResumeData) Validate() error {
	if _, err := ParseTemplate(string(d.Template)); err != nil {
		return err
	}
	expIDs := make([]string, 0, len(d.Experiences))
	for _, exp := range d.Experiences {
		expIDs = append(expIDs, exp.ID)
	}
	if err := checkIDs("experiences", expIDs); err != nil {
		return err
	}
	eduIDs := make([]string, 0, len(d.Education))
	for _, edu := range d.Education {
		eduIDs = append(eduIDs, edu.ID)
	}
	if err := checkIDs("education", eduIDs); err != nil {
		return err
	}
	skillIDs := make([]string, 0, len(d.Skills))
	for i, skill := range d.Skills {
		if _, err := ParseSkillLevel(string(skill.Level)); err != nil {
			return fmt.Errorf("skills[%d]: %w", i, err)
		}
		skillIDs = append(skillIDs, skill.ID)
	}
	return checkIDs("skills", skillIDs)
}

// Normalize makes every slice non-nil and maps unknown enum values to their defaults,
// so downstream rendering is total.
func (d ResumeData) Normalize() ResumeData {
	out := d.Clone()
	if out.Experiences == nil {
		out.Experiences = []Experience{}
	}
	for i := range out.Experiences {
		if out.Experiences[i].Highlights == nil {
			out.Experiences[i].Highlights = []string{}
		}
	}
	if out.Education == nil {
		out.Education = []Education{}
	}
	if out.Skills == nil {
		out.Skills = []Skill{}
	}
	for i := range out.Skills {
		if _, err := ParseSkillLevel(string(out.Skills[i].Level)); err != nil {
			out.Skills[i].Level = LevelNone
		}
	}
	if _, err := ParseTemplate(string(out.Template)); err != nil {
		out.Template = TemplateStandard
	}
	return out
}

// Clone returns a deep copy; the state container never hands out aliased slices.
func (d ResumeData) Clone() ResumeData {
	out := d
	if d.Experiences != nil {
		out.Experiences = make([]Experience, len(d.Experiences))
		for i, exp := range d.Experiences {
			out.Experiences[i] = exp
			if exp.Highlights != nil {
				out.Experiences[i].Highlights = append([]string{}, exp.Highlights...)
			}
		}
	}
	if d.Education != nil {
		out.Education = append([]Education{}, d.Education...)
	}
	if d.Skills != nil {
		out.Skills = append([]Skill{}, d.Skills...)
	}
	return out
}

// SkillNames returns skill names in list order.
func (d ResumeData) SkillNames() []string {
	names := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		names = append(names, s.Name)
	}
	return names
}

// PrimaryRole is the role used for text-assist prompts and the minimalist title line.
func (d ResumeData) PrimaryRole() string {
	if len(d.Experiences) > 0 {
		return d.Experiences[0].Position
	}
	return ""
}

// ExperienceByID returns the index of the experience with the given id, or -1.
func (d ResumeData) ExperienceByID(id string) int {
	for i, exp := range d.Experiences {
		if exp.ID == id {
			return i
		}
	}
	return -1
}

// IsBlank reports whether s is empty or whitespace-only. Every visibility
// rule in the layouts and the aligned export uses it.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// VisibleHighlights drops empty and whitespace-only bullets.
func VisibleHighlights(highlights []string) []string {
	out := make([]string, 0, len(highlights))
	for _, h := range highlights {
		if IsBlank(h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func checkIDs(list string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if IsBlank(id) {
			return fmt.Errorf("%s[%d].id is required", list, i)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%s[%d].id %q is duplicated", list, i, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ErrUnknownValue is returned when an enumerated value is not recognized.
var ErrUnknownValue = errors.New("unknown value")
