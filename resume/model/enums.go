package model

import "fmt"

// Template selects one of the fixed layout variants.
type Template string

const (
	TemplateStandard Template = "standard"
	TemplateClassic  Template = "classic"
	TemplateModern   Template = "modern"
	TemplateMinimal  Template = "minimal"
)

// Templates lists the layout variants in picker order.
var Templates = []Template{TemplateStandard, TemplateClassic, TemplateModern, TemplateMinimal}

// Label is the display name shown in the template picker.
func (t Template) Label() string {
	switch t {
	case TemplateStandard:
		return "Standard"
	case TemplateClassic:
		return "Executive"
	case TemplateModern:
		return "Modern"
	case TemplateMinimal:
		return "Minimalist"
	default:
		return string(t)
	}
}

// ParseTemplate validates a template selector.
func ParseTemplate(raw string) (Template, error) {
	switch t := Template(raw); t {
	case TemplateStandard, TemplateClassic, TemplateModern, TemplateMinimal:
		return t, nil
	default:
		return "", fmt.Errorf("template %q: %w", raw, ErrUnknownValue)
	}
}

// SkillLevel is a proficiency drawn from a fixed enumeration. LevelNone means unset.
type SkillLevel string

const (
	LevelNone         SkillLevel = "None"
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelExpert       SkillLevel = "Expert"
)

// ParseSkillLevel validates a skill level. The empty string maps to LevelNone.
func ParseSkillLevel(raw string) (SkillLevel, error) {
	switch l := SkillLevel(raw); l {
	case "":
		return LevelNone, nil
	case LevelNone, LevelBeginner, LevelIntermediate, LevelExpert:
		return l, nil
	default:
		return "", fmt.Errorf("skill level %q: %w", raw, ErrUnknownValue)
	}
}

// Section identifies an editor section. Order is significant.
type Section string

const (
	SectionContact    Section = "contact"
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// SectionInfo pairs a section with its editor label.
type SectionInfo struct {
	ID    Section `json:"id"`
	Label string  `json:"label"`
}

// Sections returns the editor sections in their fixed order.
func Sections() []SectionInfo {
	return []SectionInfo{
		{ID: SectionContact, Label: "Contact Info"},
		{ID: SectionSummary, Label: "Profile Summary"},
		{ID: SectionExperience, Label: "Work History"},
		{ID: SectionEducation, Label: "Education"},
		{ID: SectionSkills, Label: "Expertise & Skills"},
	}
}

// NextSection returns the section after s; the last section returns itself.
func NextSection(s Section) Section {
	sections := Sections()
	for i, info := range sections {
		if info.ID == s && i < len(sections)-1 {
			return sections[i+1].ID
		}
	}
	return s
}

// PreviousSection returns the section before s; the first section returns itself.
func PreviousSection(s Section) Section {
	sections := Sections()
	for i, info := range sections {
		if info.ID == s && i > 0 {
			return sections[i-1].ID
		}
	}
	return s
}
