package layout

import (
	"strings"

	"resume-builder/resume/model"
)

// Standard is the bordered single-column layout with a two-column footer.
type Standard struct{}

func (Standard) Template() model.Template { return model.TemplateStandard }

func (Standard) Render(data model.ResumeData) *Node {
	root := el(KindDocument, "document", "tpl-standard",
		standardHeader(data.Contact),
	)

	if !model.IsBlank(data.Summary) {
		root.Children = append(root.Children, section(KeySummary, "std-section",
			heading(2, "caption", "std-caption", "Professional Profile"),
			txt(KindParagraph, "summary", "std-summary", data.Summary),
		))
	}

	if len(data.Experiences) > 0 {
		sec := section(KeyExperience, "std-section",
			heading(2, "caption", "std-caption", "Employment History"),
		)
		for _, exp := range data.Experiences {
			sec.Children = append(sec.Children, el(KindBlock, "entry", "std-entry",
				el(KindBlock, "entry-head", "std-entry-head",
					heading(3, "position", "std-position", exp.Position),
					txt(KindSpan, "dates", "std-dates", dateRange(exp.StartDate, exp.EndDate, "—", "Present")),
				),
				txt(KindParagraph, "company", "std-company", exp.Company),
				bullets("std-bullets", exp.Highlights),
			))
		}
		root.Children = append(root.Children, sec)
	}

	footer := el(KindBlock, "footer", "std-footer")
	if len(data.Education) > 0 {
		sec := section(KeyEducation, "std-column",
			heading(2, "caption", "std-caption", "Education"),
		)
		for _, edu := range data.Education {
			sec.Children = append(sec.Children, el(KindBlock, "entry", "std-edu",
				el(KindBlock, "entry-head", "std-entry-head",
					txt(KindSpan, "school", "std-school", edu.School),
					txt(KindSpan, "dates", "std-dates", edu.GraduationDate),
				),
				txt(KindParagraph, "degree", "std-degree", edu.Degree+" in "+edu.FieldOfStudy),
			))
		}
		footer.Children = append(footer.Children, sec)
	}
	if len(data.Skills) > 0 {
		line := el(KindParagraph, "skill-line", "std-skills")
		for i, s := range data.Skills {
			if i > 0 {
				line.Children = append(line.Children, txt(KindSpan, "separator", "", ", "))
			}
			line.Children = append(line.Children, txt(KindSpan, "skill", "", s.Name))
		}
		footer.Children = append(footer.Children, section(KeySkills, "std-column",
			heading(2, "caption", "std-caption", "Expertise"),
			line,
		))
	}
	if len(footer.Children) > 0 {
		root.Children = append(root.Children, footer)
	}
	return root
}

func standardHeader(c model.Contact) *Node {
	var segments []string
	for _, v := range []string{c.Email, c.Phone, c.Location, c.LinkedIn} {
		if !model.IsBlank(v) {
			segments = append(segments, v)
		}
	}
	contact := el(KindParagraph, "contact", "std-contact")
	for i, seg := range segments {
		if i > 0 {
			contact.Children = append(contact.Children, txt(KindSpan, "separator", "", " | "))
		}
		contact.Children = append(contact.Children, txt(KindSpan, "contact-item", "", seg))
	}
	header := section(KeyContact, "std-header",
		heading(1, "name", "std-name", strings.ToUpper(orDefault(c.FullName, "YOUR FULL NAME"))),
		contact,
	)
	return header
}
