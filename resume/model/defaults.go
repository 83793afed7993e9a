package model

// Default returns the built-in sample aggregate used when nothing is persisted yet.
func Default() ResumeData {
	return ResumeData{
		Contact: Contact{
			FullName: "Alexander Sterling",
			Email:    "a.sterling@exec.com",
			Phone:    "+1 415 555 0123",
			Location: "San Francisco, CA",
			Website:  "sterling.design",
			LinkedIn: "linkedin.com/in/alexsterling",
		},
		Summary: "Strategic technology leader with 10+ years of experience in architecting high-performance distributed systems. Proven track record of scaling engineering teams from 5 to 50 while maintaining agile excellence and product-market fit.",
		Experiences: []Experience{
			{
				ID:          "1",
				Company:     "Quantum Systems",
				Position:    "VP of Engineering",
				StartDate:   "2021-06",
				EndDate:     "Present",
				Description: "Overseeing the technical roadmap for the core cloud infrastructure.",
				Highlights: []string{
					"Reduced infrastructure costs by 35% through strategic migration to serverless architecture.",
					"Implemented AI-driven code review processes that increased deployment velocity by 50%.",
				},
			},
		},
		Education: []Education{
			{
				ID:             "1",
				School:         "Stanford University",
				Degree:         "Master of Science",
				FieldOfStudy:   "Computer Science",
				GraduationDate: "2019-05",
			},
		},
		Skills: []Skill{
			{ID: "1", Name: "Strategic Planning", Level: LevelExpert},
			{ID: "2", Name: "Cloud Architecture", Level: LevelExpert},
			{ID: "3", Name: "Team Leadership", Level: LevelExpert},
		},
		Template: TemplateClassic,
	}
}

// Empty returns an aggregate with no content and non-nil lists.
func Empty() ResumeData {
	return ResumeData{
		Experiences: []Experience{},
		Education:   []Education{},
		Skills:      []Skill{},
		Template:    TemplateStandard,
	}
}
