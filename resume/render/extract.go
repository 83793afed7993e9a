package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"resume-builder/internal/shared/util"
)

var whitespacePattern = regexp.MustCompile(`\s`)

// FileName derives the download name from the person's full name.
func FileName(fullName string) string {
	base := whitespacePattern.ReplaceAllString(strings.TrimSpace(fullName), "_")
	if base == "" {
		return "Resume.docx"
	}
	safe, err := util.SanitizeFileName(base)
	if err != nil {
		return "Resume.docx"
	}
	return safe + "_Resume.docx"
}

// ExtractText returns the text of every paragraph in word/document.xml, in order.
func ExtractText(docx []byte) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		root, err := parseXMLDocument(string(content))
		if err != nil {
			return nil, err
		}
		out := []string{}
		walkXMLTree(root, func(n *xmlNode) bool {
			if isElement(n, "p") {
				out = append(out, paragraphText(n))
				return false
			}
			return true
		})
		return out, nil
	}
	return nil, errors.New("docx has no word/document.xml")
}
