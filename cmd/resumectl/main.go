// Command resumectl renders and checks résumé snapshots offline:
//
//	go run ./cmd/resumectl sample > resume.json
//	go run ./cmd/resumectl render --in resume.json --template modern --out page.html
//	go run ./cmd/resumectl docx --in resume.json --out resume.docx
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
