// Package parser extracts plain text from paper PDFs. It is the only
// consumer of the PDF library; everything downstream works on strings.
package parser

import (
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPages returns the plain text of each page of a PDF, in order.
// Pages that yield no text are skipped.
func ExtractPages(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var pages []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		if pageText != "" {
			pages = append(pages, pageText)
		}
	}
	return pages, nil
}

// ExtractText concatenates the per-page text with line breaks preserved,
// the form the segmenter expects.
func ExtractText(filePath string) (string, error) {
	pages, err := ExtractPages(filePath)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}
