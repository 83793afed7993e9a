package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/summary.txt
	summaryPrompt string
	//go:embed prompts/bullet.txt
	bulletPrompt string
	//go:embed prompts/skills.txt
	skillsPrompt string
)

// SummaryPrompt asks for a short professional summary.
func SummaryPrompt(role, experience string, skills []string) string {
	return fill(summaryPrompt, map[string]string{
		"{{ROLE}}":   role,
		"{{YEARS}}":  experience,
		"{{SKILLS}}": strings.Join(skills, ", "),
	})
}

// BulletPrompt asks for a stronger rewrite of one achievement line.
func BulletPrompt(bullet, role string) string {
	return fill(bulletPrompt, map[string]string{
		"{{ROLE}}":   role,
		"{{BULLET}}": bullet,
	})
}

// SkillsPrompt asks for ten skills as a JSON array of strings.
func SkillsPrompt(role string) string {
	return fill(skillsPrompt, map[string]string{"{{ROLE}}": role})
}

func fill(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for token, value := range values {
		pairs = append(pairs, token, value)
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}
