// Package render serializes the résumé aggregate into a WordprocessingML (.docx) package.
package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"resume-builder/resume/model"
)

// Policy selects how the serializer treats blank content.
type Policy int

const (
	// Aligned applies the same visibility rules as the on-screen layouts: blank
	// highlights are dropped, blank contact segments are omitted and empty
	// sections are left out. It is the zero value.
	Aligned Policy = iota
	// Verbatim emits every section, every highlight and every contact segment,
	// blank or not.
	Verbatim
)

// ParsePolicy maps "verbatim" and "aligned" to a Policy. Anything else is Aligned.
func ParsePolicy(raw string) Policy {
	if strings.EqualFold(strings.TrimSpace(raw), "verbatim") {
		return Verbatim
	}
	return Aligned
}

func (p Policy) String() string {
	if p == Verbatim {
		return "verbatim"
	}
	return "aligned"
}

const (
	documentRootStart = `<w:document xmlns:w="` + wmlNamespace + `" xmlns:r="` + relNamespace + `"><w:body>`
	documentRootEnd   = `</w:body></w:document>`
)

// RenderDocx builds a complete .docx package for data.
func RenderDocx(data model.ResumeData, policy Policy) ([]byte, error) {
	data = data.Normalize()
	documentXML, err := encodeXMLDocument(documentRootStart, documentRootEnd, documentBody(data, policy))
	if err != nil {
		return nil, fmt.Errorf("encode document.xml: %w", err)
	}
	if err := validateDocumentXMLStrict(documentXML); err != nil {
		return nil, err
	}
	if err := validateDocumentXMLStructure(documentXML); err != nil {
		return nil, err
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", corePropertiesXML(data.Contact.FullName)},
		{"word/document.xml", documentXML},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, part := range parts {
		dst, err := writer.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return nil, err
		}
		if _, err := dst.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

type paraOpts struct {
	center  bool
	before  int
	border  bool
	tabStop int
	bullet  bool
}

func paragraph(opts paraOpts, runs ...*xmlNode) *xmlNode {
	pPr := w("pPr")
	if opts.bullet {
		pPr.add(w("numPr").add(w("ilvl", "val", "0"), w("numId", "val", "1")))
	}
	if opts.border {
		pPr.add(w("pBdr").add(w("bottom", "val", "single", "sz", "6", "space", "1", "color", "auto")))
	}
	if opts.tabStop > 0 {
		pPr.add(w("tabs").add(w("tab", "val", "right", "pos", strconv.Itoa(opts.tabStop))))
	}
	if opts.before > 0 {
		pPr.add(w("spacing", "before", strconv.Itoa(opts.before)))
	}
	if opts.center {
		pPr.add(w("jc", "val", "center"))
	}
	p := w("p")
	if len(pPr.Children) > 0 {
		p.add(pPr)
	}
	return p.add(runs...)
}

// run emits a single w:r; tab characters become w:tab elements.
func run(text string, style RunStyle) *xmlNode {
	r := w("r").add(style.properties())
	for i, segment := range strings.Split(text, "\t") {
		if i > 0 {
			r.add(w("tab"))
		}
		if segment == "" {
			continue
		}
		t := w("t")
		t.Attr = append(t.Attr, xmlSpacePreserve)
		r.add(t.add(textNode(segment)))
	}
	return r
}

func spacer() *xmlNode {
	return paragraph(paraOpts{before: SectionGap})
}

func caption(text string) *xmlNode {
	return paragraph(paraOpts{border: true}, run(text, StyleMap["caption"]))
}

func documentBody(data model.ResumeData, policy Policy) []*xmlNode {
	aligned := policy == Aligned
	c := data.Contact
	body := []*xmlNode{
		paragraph(paraOpts{center: true}, run(strings.ToUpper(c.FullName), StyleMap["name"])),
	}

	contact := c.Email + " | " + c.Phone + " | " + c.Location
	if aligned {
		contact = joinNonBlank(" | ", c.Email, c.Phone, c.Location)
	}
	if !aligned || contact != "" {
		body = append(body, paragraph(paraOpts{center: true}, run(contact, StyleMap["contact"])))
	}

	if !aligned || !model.IsBlank(data.Summary) {
		body = append(body,
			spacer(),
			caption("PROFESSIONAL SUMMARY"),
			paragraph(paraOpts{before: 100}, run(data.Summary, StyleMap["body"])),
		)
	}

	if !aligned || len(data.Experiences) > 0 {
		body = append(body, spacer(), caption("WORK EXPERIENCE"))
		for _, exp := range data.Experiences {
			end := exp.EndDate
			if end == "" {
				end = "Present"
			}
			body = append(body,
				paragraph(paraOpts{before: 150, tabStop: RightTabStop},
					run(exp.Position, StyleMap["roleLine"]),
					run("\t"+exp.StartDate+" - "+end, StyleMap["roleLine"]),
				),
				paragraph(paraOpts{}, run(exp.Company, StyleMap["meta"])),
			)
			highlights := exp.Highlights
			if aligned {
				highlights = model.VisibleHighlights(highlights)
			}
			for _, h := range highlights {
				body = append(body, paragraph(paraOpts{bullet: true, before: 50}, run(h, RunStyle{})))
			}
		}
	}

	if !aligned || len(data.Education) > 0 {
		body = append(body, spacer(), caption("EDUCATION"))
		for _, edu := range data.Education {
			body = append(body, paragraph(paraOpts{before: 100, tabStop: RightTabStop},
				run(edu.School+": "+edu.Degree+" in "+edu.FieldOfStudy, StyleMap["body"]),
				run("\t"+edu.GraduationDate, StyleMap["body"]),
			))
		}
	}

	if !aligned || len(data.Skills) > 0 {
		body = append(body,
			spacer(),
			caption("SKILLS"),
			paragraph(paraOpts{before: 100}, run(strings.Join(data.SkillNames(), ", "), StyleMap["body"])),
		)
	}

	return append(body, sectionProperties())
}

func sectionProperties() *xmlNode {
	return w("sectPr").add(
		w("pgSz", "w", "11906", "h", "16838"),
		w("pgMar", "top", "1440", "right", "1440", "bottom", "1440", "left", "1440", "header", "708", "footer", "708", "gutter", "0"),
	)
}

func joinNonBlank(sep string, values ...string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if !model.IsBlank(v) {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}
