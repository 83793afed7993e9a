package layout

import (
	"strings"

	"resume-builder/resume/model"
)

// Executive is the centered serif layout selected by the classic template.
type Executive struct{}

func (Executive) Template() model.Template { return model.TemplateClassic }

func (Executive) Render(data model.ResumeData) *Node {
	return centered(data, "tpl-executive font-serif")
}

// Modern shares the Executive skeleton and differs only in font family.
type Modern struct{}

func (Modern) Template() model.Template { return model.TemplateModern }

func (Modern) Render(data model.ResumeData) *Node {
	return centered(data, "tpl-modern font-sans")
}

func centered(data model.ResumeData, class string) *Node {
	c := data.Contact
	root := el(KindDocument, "document", class,
		section(KeyContact, "ctr-header",
			heading(1, "name", "ctr-name", strings.ToUpper(orDefault(c.FullName, "NAME"))),
			el(KindParagraph, "contact", "ctr-contact",
				txt(KindSpan, "contact-item", "", strings.ToUpper(c.Email)),
				txt(KindSpan, "separator", "", " | "),
				txt(KindSpan, "contact-item", "", c.Phone),
				txt(KindSpan, "separator", "", " | "),
				txt(KindSpan, "contact-item", "", strings.ToUpper(c.Location)),
			),
			el(KindRule, "divider", "ctr-rule"),
		),
	)

	if !model.IsBlank(data.Summary) {
		root.Children = append(root.Children, section(KeySummary, "ctr-section",
			heading(2, "caption", "ctr-caption", "Objective"),
			txt(KindParagraph, "summary", "ctr-summary italic", data.Summary),
		))
	}

	if len(data.Experiences) > 0 {
		sec := section(KeyExperience, "ctr-section",
			heading(2, "caption", "ctr-caption", "Experience"),
		)
		for _, exp := range data.Experiences {
			sec.Children = append(sec.Children, el(KindBlock, "entry", "ctr-entry",
				el(KindBlock, "entry-head", "ctr-entry-head",
					heading(3, "position", "ctr-position", exp.Position),
					txt(KindSpan, "dates", "ctr-dates", dateRange(exp.StartDate, exp.EndDate, "-", "Now")),
				),
				txt(KindParagraph, "company", "ctr-company accent", strings.ToUpper(exp.Company)),
				bullets("ctr-bullets", exp.Highlights),
			))
		}
		root.Children = append(root.Children, sec)
	}

	if len(data.Education) > 0 {
		sec := section(KeyEducation, "ctr-section",
			heading(2, "caption", "ctr-caption", "Academic"),
		)
		for _, edu := range data.Education {
			sec.Children = append(sec.Children, el(KindBlock, "entry", "ctr-edu",
				el(KindBlock, "entry-head", "ctr-entry-head",
					heading(3, "school", "ctr-school", edu.School),
					txt(KindSpan, "dates", "ctr-dates", edu.GraduationDate),
				),
				txt(KindParagraph, "degree", "ctr-degree", edu.Degree+" / "+edu.FieldOfStudy),
			))
		}
		root.Children = append(root.Children, sec)
	}

	if len(data.Skills) > 0 {
		tags := el(KindBlock, "skill-tags", "ctr-tags")
		for _, s := range data.Skills {
			tags.Children = append(tags.Children, txt(KindTag, "skill", "ctr-tag", s.Name))
		}
		root.Children = append(root.Children, section(KeySkills, "ctr-section",
			heading(2, "caption", "ctr-caption", "Inventory"),
			tags,
		))
	}
	return root
}
