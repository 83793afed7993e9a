package editor

import (
	"fmt"

	"resume-builder/resume/model"
)

// SetContactField updates one contact field by its JSON name.
type SetContactField struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (c SetContactField) apply(d *model.ResumeData, _ IDSource) error {
	switch c.Field {
	case "fullName":
		d.Contact.FullName = c.Value
	case "email":
		d.Contact.Email = c.Value
	case "phone":
		d.Contact.Phone = c.Value
	case "location":
		d.Contact.Location = c.Value
	case "website":
		d.Contact.Website = c.Value
	case "linkedin":
		d.Contact.LinkedIn = c.Value
	default:
		return fmt.Errorf("contact.%s: %w", c.Field, ErrUnknownField)
	}
	return nil
}

// SetSummary replaces the biography text.
type SetSummary struct {
	Text string `json:"text"`
}

func (c SetSummary) apply(d *model.ResumeData, _ IDSource) error {
	d.Summary = c.Text
	return nil
}

// SetTemplate switches the active layout.
type SetTemplate struct {
	Template model.Template `json:"template"`
}

func (c SetTemplate) apply(d *model.ResumeData, _ IDSource) error {
	t, err := model.ParseTemplate(string(c.Template))
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}
	d.Template = t
	return nil
}

// AddExperience appends an empty entry with one blank bullet awaiting input.
type AddExperience struct{}

func (AddExperience) apply(d *model.ResumeData, ids IDSource) error {
	d.Experiences = append(d.Experiences, model.Experience{
		ID:         ids.NewID(),
		Highlights: []string{""},
	})
	return nil
}

// UpdateExperience sets a scalar field on one experience entry.
type UpdateExperience struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

func (c UpdateExperience) apply(d *model.ResumeData, _ IDSource) error {
	idx := d.ExperienceByID(c.ID)
	if idx < 0 {
		return fmt.Errorf("experience %q: %w", c.ID, ErrUnknownEntry)
	}
	exp := &d.Experiences[idx]
	switch c.Field {
	case "company":
		exp.Company = c.Value
	case "position":
		exp.Position = c.Value
	case "startDate":
		exp.StartDate = c.Value
	case "endDate":
		exp.EndDate = c.Value
	case "description":
		exp.Description = c.Value
	default:
		return fmt.Errorf("experience.%s: %w", c.Field, ErrUnknownField)
	}
	return nil
}

// RemoveExperience deletes exactly one entry; sibling order is unchanged.
type RemoveExperience struct {
	ID string `json:"id"`
}

func (c RemoveExperience) apply(d *model.ResumeData, _ IDSource) error {
	idx := d.ExperienceByID(c.ID)
	if idx < 0 {
		return fmt.Errorf("experience %q: %w", c.ID, ErrUnknownEntry)
	}
	d.Experiences = append(d.Experiences[:idx], d.Experiences[idx+1:]...)
	return nil
}

// AddHighlight appends a blank bullet to an experience.
type AddHighlight struct {
	ExperienceID string `json:"experienceId"`
}

func (c AddHighlight) apply(d *model.ResumeData, _ IDSource) error {
	idx := d.ExperienceByID(c.ExperienceID)
	if idx < 0 {
		return fmt.Errorf("experience %q: %w", c.ExperienceID, ErrUnknownEntry)
	}
	d.Experiences[idx].Highlights = append(d.Experiences[idx].Highlights, "")
	return nil
}

// SetHighlight replaces the bullet at Index.
type SetHighlight struct {
	ExperienceID string `json:"experienceId"`
	Index        int    `json:"index"`
	Text         string `json:"text"`
}

func (c SetHighlight) apply(d *model.ResumeData, _ IDSource) error {
	exp, err := highlightTarget(d, c.ExperienceID, c.Index)
	if err != nil {
		return err
	}
	exp.Highlights[c.Index] = c.Text
	return nil
}

// RemoveHighlight deletes the bullet at Index.
type RemoveHighlight struct {
	ExperienceID string `json:"experienceId"`
	Index        int    `json:"index"`
}

func (c RemoveHighlight) apply(d *model.ResumeData, _ IDSource) error {
	exp, err := highlightTarget(d, c.ExperienceID, c.Index)
	if err != nil {
		return err
	}
	exp.Highlights = append(exp.Highlights[:c.Index], exp.Highlights[c.Index+1:]...)
	return nil
}

func highlightTarget(d *model.ResumeData, expID string, index int) (*model.Experience, error) {
	idx := d.ExperienceByID(expID)
	if idx < 0 {
		return nil, fmt.Errorf("experience %q: %w", expID, ErrUnknownEntry)
	}
	exp := &d.Experiences[idx]
	if index < 0 || index >= len(exp.Highlights) {
		return nil, fmt.Errorf("highlight %d of %d: %w", index, len(exp.Highlights), ErrIndexOutOfRange)
	}
	return exp, nil
}

// AddEducation appends an empty credential.
type AddEducation struct{}

func (AddEducation) apply(d *model.ResumeData, ids IDSource) error {
	d.Education = append(d.Education, model.Education{ID: ids.NewID()})
	return nil
}

// UpdateEducation sets a scalar field on one credential.
type UpdateEducation struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

func (c UpdateEducation) apply(d *model.ResumeData, _ IDSource) error {
	idx := educationIndex(d, c.ID)
	if idx < 0 {
		return fmt.Errorf("education %q: %w", c.ID, ErrUnknownEntry)
	}
	edu := &d.Education[idx]
	switch c.Field {
	case "school":
		edu.School = c.Value
	case "degree":
		edu.Degree = c.Value
	case "fieldOfStudy":
		edu.FieldOfStudy = c.Value
	case "graduationDate":
		edu.GraduationDate = c.Value
	case "gpa":
		edu.GPA = c.Value
	default:
		return fmt.Errorf("education.%s: %w", c.Field, ErrUnknownField)
	}
	return nil
}

// RemoveEducation deletes one credential.
type RemoveEducation struct {
	ID string `json:"id"`
}

func (c RemoveEducation) apply(d *model.ResumeData, _ IDSource) error {
	idx := educationIndex(d, c.ID)
	if idx < 0 {
		return fmt.Errorf("education %q: %w", c.ID, ErrUnknownEntry)
	}
	d.Education = append(d.Education[:idx], d.Education[idx+1:]...)
	return nil
}

func educationIndex(d *model.ResumeData, id string) int {
	for i, edu := range d.Education {
		if edu.ID == id {
			return i
		}
	}
	return -1
}

// AddSkill appends a skill. A blank name is allowed while the user types.
type AddSkill struct {
	Name  string           `json:"name"`
	Level model.SkillLevel `json:"level"`
}

func (c AddSkill) apply(d *model.ResumeData, ids IDSource) error {
	level, err := model.ParseSkillLevel(string(c.Level))
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}
	d.Skills = append(d.Skills, model.Skill{ID: ids.NewID(), Name: c.Name, Level: level})
	return nil
}

// UpdateSkill changes the name and/or level of one skill. Nil fields are left alone.
type UpdateSkill struct {
	ID    string            `json:"id"`
	Name  *string           `json:"name,omitempty"`
	Level *model.SkillLevel `json:"level,omitempty"`
}

func (c UpdateSkill) apply(d *model.ResumeData, _ IDSource) error {
	idx := skillIndex(d, c.ID)
	if idx < 0 {
		return fmt.Errorf("skill %q: %w", c.ID, ErrUnknownEntry)
	}
	if c.Level != nil {
		level, err := model.ParseSkillLevel(string(*c.Level))
		if err != nil {
			return fmt.Errorf("%v: %w", err, ErrInvalidValue)
		}
		d.Skills[idx].Level = level
	}
	if c.Name != nil {
		d.Skills[idx].Name = *c.Name
	}
	return nil
}

// RemoveSkill deletes one skill.
type RemoveSkill struct {
	ID string `json:"id"`
}

func (c RemoveSkill) apply(d *model.ResumeData, _ IDSource) error {
	idx := skillIndex(d, c.ID)
	if idx < 0 {
		return fmt.Errorf("skill %q: %w", c.ID, ErrUnknownEntry)
	}
	d.Skills = append(d.Skills[:idx], d.Skills[idx+1:]...)
	return nil
}

// AppendSkills adds suggested skills with an unset level.
type AppendSkills struct {
	Names []string `json:"names"`
}

func (c AppendSkills) apply(d *model.ResumeData, ids IDSource) error {
	for _, name := range c.Names {
		d.Skills = append(d.Skills, model.Skill{ID: ids.NewID(), Name: name, Level: model.LevelNone})
	}
	return nil
}

func skillIndex(d *model.ResumeData, id string) int {
	for i, s := range d.Skills {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Replace swaps the whole aggregate, as when importing a snapshot.
type Replace struct {
	Data model.ResumeData `json:"data"`
}

func (c Replace) apply(d *model.ResumeData, _ IDSource) error {
	next := c.Data.Normalize()
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidValue)
	}
	*d = next
	return nil
}
