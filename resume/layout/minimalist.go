package layout

import (
	"strings"

	"resume-builder/resume/model"
)

// Minimalist is the two-column layout with a contact sidebar.
// It never renders education.
type Minimalist struct{}

func (Minimalist) Template() model.Template { return model.TemplateMinimal }

func (Minimalist) Render(data model.ResumeData) *Node {
	c := data.Contact
	title := strings.ToUpper(orDefault(data.PrimaryRole(), "PROFESSIONAL"))

	sidebar := el(KindBlock, "sidebar", "min-sidebar",
		section(KeyContact, "min-block",
			heading(2, "label", "min-label", "Connection"),
			txt(KindParagraph, "contact-item", "min-contact", c.Email),
			txt(KindParagraph, "contact-item", "min-contact", c.Phone),
			txt(KindParagraph, "contact-item", "min-contact", c.Location),
			txt(KindParagraph, "contact-item", "min-contact", c.Website),
		),
	)
	if len(data.Skills) > 0 {
		list := el(KindList, "skill-list", "min-skills")
		for _, s := range data.Skills {
			list.Children = append(list.Children, txt(KindItem, "skill", "", s.Name))
		}
		sidebar.Children = append(sidebar.Children, section(KeySkills, "min-block",
			heading(2, "label", "min-label", "Competencies"),
			list,
		))
	}

	main := el(KindBlock, "main", "min-main")
	if !model.IsBlank(data.Summary) {
		main.Children = append(main.Children, section(KeySummary, "min-block",
			txt(KindParagraph, "summary", "min-summary", data.Summary),
		))
	}
	if len(data.Experiences) > 0 {
		sec := section(KeyExperience, "min-block",
			heading(2, "label", "min-label", "Trajectory"),
		)
		for _, exp := range data.Experiences {
			entry := el(KindBlock, "entry", "min-entry",
				heading(3, "position", "min-position", exp.Position),
				el(KindParagraph, "entry-meta", "min-meta",
					txt(KindSpan, "company", "min-company", exp.Company),
					txt(KindSpan, "dates", "min-dates", dateRange(exp.StartDate, exp.EndDate, "–", "Now")),
				),
			)
			if list := bullets("min-bullets slash", exp.Highlights); list != nil {
				entry.Children = append(entry.Children, list)
			}
			sec.Children = append(sec.Children, entry)
		}
		main.Children = append(main.Children, sec)
	}

	return el(KindDocument, "document", "tpl-minimal",
		el(KindBlock, "masthead", "min-masthead",
			heading(1, "name", "min-name light", orDefault(c.FullName, "NAME")),
			txt(KindParagraph, "title", "min-title", title),
		),
		el(KindBlock, "columns", "min-columns", sidebar, main),
	)
}
