package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"resume-builder/resume/model"
)

var allTemplates = []model.Template{
	model.TemplateStandard,
	model.TemplateClassic,
	model.TemplateModern,
	model.TemplateMinimal,
}

func TestRenderIsDeterministic(t *testing.T) {
	data := model.Default()
	for _, tpl := range allTemplates {
		t.Run(string(tpl), func(t *testing.T) {
			r := For(tpl)
			first, second := r.Render(data), r.Render(data)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("trees differ (-first +second):\n%s", diff)
			}
			if HTML(first) != HTML(second) {
				t.Fatalf("html differs between renders")
			}
			p1, err := Page(data, PageOptions{Template: tpl})
			if err != nil {
				t.Fatalf("page: %v", err)
			}
			p2, _ := Page(data, PageOptions{Template: tpl})
			if !bytes.Equal(p1, p2) {
				t.Fatalf("page bytes differ between renders")
			}
		})
	}
}

func TestForSelectsRenderer(t *testing.T) {
	for _, tpl := range allTemplates {
		if got := For(tpl).Template(); got != tpl {
			t.Fatalf("For(%s) returned %s", tpl, got)
		}
	}
	if got := For("bogus").Template(); got != model.TemplateStandard {
		t.Fatalf("unknown selector should fall back to standard, got %s", got)
	}
}

func hasSection(root *Node, key string) bool {
	for _, k := range SectionKeys(root) {
		if k == key {
			return true
		}
	}
	return false
}

func TestSectionGating(t *testing.T) {
	full := model.Default()
	droppers := map[string]func(d *model.ResumeData){
		KeySummary:    func(d *model.ResumeData) { d.Summary = "" },
		KeyExperience: func(d *model.ResumeData) { d.Experiences = nil },
		KeyEducation:  func(d *model.ResumeData) { d.Education = nil },
		KeySkills:     func(d *model.ResumeData) { d.Skills = nil },
	}
	for _, tpl := range allTemplates {
		for key, drop := range droppers {
			t.Run(string(tpl)+"/"+key, func(t *testing.T) {
				r := For(tpl)
				present := r.Render(full.Normalize())
				wantPresent := !(tpl == model.TemplateMinimal && key == KeyEducation)
				if hasSection(present, key) != wantPresent {
					t.Fatalf("section %s presence with content: want %v", key, wantPresent)
				}

				emptied := full.Clone()
				drop(&emptied)
				absent := r.Render(emptied.Normalize())
				if hasSection(absent, key) {
					t.Fatalf("section %s rendered with empty content", key)
				}
			})
		}
	}
}

func TestStandardScenario(t *testing.T) {
	data := model.Empty()
	data.Experiences = []model.Experience{{
		ID:         "e1",
		Position:   "Engineer",
		Company:    "Acme",
		StartDate:  "2020",
		Highlights: []string{"   ", "Shipped the billing rewrite."},
	}}
	data.Skills = []model.Skill{{ID: "s1", Name: "Go"}, {ID: "s2", Name: "SQL"}}

	tree := Standard{}.Render(data.Normalize())

	if diff := cmp.Diff([]string{KeyContact, KeyExperience, KeySkills}, SectionKeys(tree)); diff != "" {
		t.Fatalf("unexpected sections (-want +got):\n%s", diff)
	}
	bulletNodes := Find(tree, ByRole("bullet"))
	if len(bulletNodes) != 1 || bulletNodes[0].Text != "Shipped the billing rewrite." {
		t.Fatalf("expected exactly one visible bullet, got %+v", bulletNodes)
	}
	if got := len(Find(tree, ByRole("skill"))); got != 2 {
		t.Fatalf("expected two skills, got %d", got)
	}
	if line := Find(tree, ByRole("skill-line")); TextContent(line[0]) != "Go, SQL" {
		t.Fatalf("unexpected skill line %q", TextContent(line[0]))
	}
	if dates := Find(tree, ByRole("dates")); dates[0].Text != "2020 — Present" {
		t.Fatalf("unexpected dates %q", dates[0].Text)
	}
}

func TestBlankBulletsFilteredEverywhere(t *testing.T) {
	data := model.Default()
	data.Experiences[0].Highlights = []string{"", "\t", "Kept"}
	for _, tpl := range allTemplates {
		tree := For(tpl).Render(data)
		got := Find(tree, ByRole("bullet"))
		if len(got) != 1 || got[0].Text != "Kept" {
			t.Fatalf("%s: unexpected bullets %+v", tpl, got)
		}
	}

	data.Experiences[0].Highlights = []string{" "}
	for _, tpl := range allTemplates {
		if lists := Find(For(tpl).Render(data), ByRole("bullets")); len(lists) != 0 {
			t.Fatalf("%s: empty bullet list rendered", tpl)
		}
	}
}

func TestPlaceholdersAndContactLines(t *testing.T) {
	data := model.Empty()
	data.Contact.Email = "me@example.com"
	data.Contact.LinkedIn = "linkedin.com/in/me"

	std := Standard{}.Render(data)
	if name := Find(std, ByRole("name"))[0].Text; name != "YOUR FULL NAME" {
		t.Fatalf("standard placeholder %q", name)
	}
	if line := TextContent(Find(std, ByRole("contact"))[0]); line != "me@example.com | linkedin.com/in/me" {
		t.Fatalf("standard contact line %q", line)
	}

	exec := Executive{}.Render(data)
	if name := Find(exec, ByRole("name"))[0].Text; name != "NAME" {
		t.Fatalf("executive placeholder %q", name)
	}
	if line := TextContent(Find(exec, ByRole("contact"))[0]); line != "ME@EXAMPLE.COM |  | " {
		t.Fatalf("executive contact line %q", line)
	}

	minimal := Minimalist{}.Render(data)
	if title := Find(minimal, ByRole("title"))[0].Text; title != "PROFESSIONAL" {
		t.Fatalf("minimalist title %q", title)
	}
}

func TestStandardTreatsWhitespaceAsBlank(t *testing.T) {
	data := model.Default()
	data.Contact.Phone = "  "
	data.Summary = "\n"

	std := Standard{}.Render(data)
	if line := TextContent(Find(std, ByRole("contact"))[0]); line != "a.sterling@exec.com | San Francisco, CA | linkedin.com/in/alexsterling" {
		t.Fatalf("standard contact line %q", line)
	}
	if hasSection(std, KeySummary) {
		t.Fatalf("whitespace summary should omit the section")
	}
	for _, r := range []Renderer{Executive{}, Minimalist{}} {
		if hasSection(r.Render(data), KeySummary) {
			t.Fatalf("%s: whitespace summary should omit the section", r.Template())
		}
	}
}

func TestCenteredHeaderDivider(t *testing.T) {
	for _, r := range []Renderer{Executive{}, Modern{}} {
		tree := r.Render(model.Default())
		rules := Find(tree, func(n *Node) bool { return n.Kind == KindRule })
		if len(rules) != 1 || rules[0].Role != "divider" {
			t.Fatalf("%s: expected one header divider, got %d", r.Template(), len(rules))
		}
		out := HTML(tree)
		if !strings.Contains(out, `<hr class="ctr-rule" data-role="divider">`) || strings.Contains(out, "</hr>") {
			t.Fatalf("%s: unexpected divider markup in %s", r.Template(), out)
		}
	}
}

func TestExecutiveAndModernDifferOnlyInFont(t *testing.T) {
	data := model.Default()
	exec := Executive{}.Render(data)
	modern := Modern{}.Render(data)
	if exec.Class == modern.Class {
		t.Fatalf("expected distinct root classes")
	}
	exec.Class, modern.Class = "", ""
	if diff := cmp.Diff(exec, modern); diff != "" {
		t.Fatalf("skeletons differ:\n%s", diff)
	}
	if dates := Find(exec, ByRole("dates")); dates[0].Text != "2021-06 - Present" {
		t.Fatalf("unexpected dates %q", dates[0].Text)
	}
	if tags := Find(exec, func(n *Node) bool { return n.Kind == KindTag }); len(tags) != 3 {
		t.Fatalf("expected three skill tags, got %d", len(tags))
	}
}

func TestMinimalistOngoingDates(t *testing.T) {
	data := model.Default()
	data.Experiences[0].EndDate = ""
	tree := Minimalist{}.Render(data)
	if dates := Find(tree, ByRole("dates")); dates[0].Text != "2021-06 – Now" {
		t.Fatalf("unexpected dates %q", dates[0].Text)
	}
	if title := Find(tree, ByRole("title"))[0].Text; title != "VP OF ENGINEERING" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestWriteHTMLEscapes(t *testing.T) {
	data := model.Empty()
	data.Summary = `<script>alert("x")</script>`
	out := HTML(Standard{}.Render(data))
	if strings.Contains(out, "<script>") {
		t.Fatalf("summary not escaped: %s", out)
	}
	if !strings.Contains(out, `data-section="summary"`) {
		t.Fatalf("missing section marker: %s", out)
	}
}

func TestPagePrintMode(t *testing.T) {
	preview, err := Page(model.Default(), PageOptions{})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if !bytes.Contains(preview, []byte(`class="toolbar no-print"`)) {
		t.Fatalf("preview should carry the toolbar")
	}
	printed, err := Page(model.Default(), PageOptions{Print: true})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if bytes.Contains(printed, []byte(`class="toolbar no-print"`)) {
		t.Fatalf("print page should not carry the toolbar")
	}
	for _, want := range []string{"mode-print", "@media print", "210mm", `data-template="classic"`, "Alexander Sterling - Resume"} {
		if !bytes.Contains(printed, []byte(want)) {
			t.Fatalf("print page missing %q", want)
		}
	}
}
