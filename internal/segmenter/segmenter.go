// Package segmenter turns raw paper text into section-labeled,
// token-bounded chunks ready for indexing.
package segmenter

import (
	"regexp"
	"strings"

	"scholar-rag/internal/models"
)

// sectionHeaders is the fixed vocabulary of academic section names. A line
// starts a new section when its trimmed, case-folded form begins with one
// of these and is shorter than maxHeaderLen characters.
var sectionHeaders = []string{
	"abstract", "introduction", "background", "related work",
	"method", "methods", "methodology", "approach",
	"model", "models", "algorithm",
	"experiments", "experimental setup", "results", "evaluation",
	"discussion", "conclusion", "conclusions",
}

// maxHeaderLen rejects body lines that merely start with a keyword.
const maxHeaderLen = 50

// skipSections are discarded before chunking; low-signal boilerplate.
var skipSections = map[string]bool{
	"references":       true,
	"acknowledgements": true,
	"acknowledgments":  true,
}

var whitespaceRun = regexp.MustCompile(`\s+`)

const (
	// DefaultMinTokens is the smallest trailing window worth emitting.
	DefaultMinTokens = 300
	// DefaultMaxTokens is the word-window size of a full chunk.
	DefaultMaxTokens = 800
)

// Section is a labeled span of a paper in document order. Label is the
// trimmed, case-folded header line; leading text before the first header
// carries the label "unknown".
type Section struct {
	Label string
	Text  string
}

// Segmenter segments paper text and windows it into chunks.
type Segmenter struct {
	minTokens int
	maxTokens int
}

func New(minTokens, maxTokens int) *Segmenter {
	if minTokens <= 0 {
		minTokens = DefaultMinTokens
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Segmenter{minTokens: minTokens, maxTokens: maxTokens}
}

// isHeader reports whether a cleaned line opens a new section.
func isHeader(cleaned string) bool {
	if len(cleaned) >= maxHeaderLen {
		return false
	}
	for _, h := range sectionHeaders {
		if strings.HasPrefix(cleaned, h) {
			return true
		}
	}
	return false
}

// SplitSections splits raw text into sections in order of first appearance.
// A header seen again with the same label restarts that section's content.
func SplitSections(text string) []Section {
	type acc struct {
		label string
		lines []string
	}
	accs := []*acc{{label: "unknown"}}
	index := map[string]*acc{"unknown": accs[0]}
	cur := accs[0]

	for _, line := range strings.Split(text, "\n") {
		cleaned := strings.ToLower(strings.TrimSpace(line))
		if isHeader(cleaned) {
			a, ok := index[cleaned]
			if ok {
				a.lines = nil
			} else {
				a = &acc{label: cleaned}
				accs = append(accs, a)
				index[cleaned] = a
			}
			cur = a
			continue
		}
		cur.lines = append(cur.lines, line)
	}

	sections := make([]Section, 0, len(accs))
	for _, a := range accs {
		sections = append(sections, Section{Label: a.label, Text: strings.Join(a.lines, " ")})
	}
	return sections
}

// CleanText collapses all whitespace runs, newlines included, to single
// spaces and trims the result.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// ChunkText windows whitespace tokens greedily: every maxTokens words emit
// a chunk; a trailing remainder is emitted only when it reaches minTokens,
// otherwise it is dropped. A short section can therefore yield no chunks.
func (s *Segmenter) ChunkText(text string) []string {
	words := strings.Fields(text)
	var chunks []string
	var current []string

	for _, word := range words {
		current = append(current, word)
		if len(current) >= s.maxTokens {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) >= s.minTokens {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// ChunkPaper segments one paper's raw text and packages the emitted chunks
// with paper metadata. ChunkIndex increments across all kept sections in
// document order.
func (s *Segmenter) ChunkPaper(paper models.Paper, rawText string) []models.Chunk {
	var out []models.Chunk
	chunkIndex := 0

	for _, section := range SplitSections(rawText) {
		if skipSections[section.Label] {
			continue
		}
		sectionText := CleanText(section.Text)
		for _, text := range s.ChunkText(sectionText) {
			out = append(out, models.Chunk{
				Text:       text,
				PaperID:    paper.ArxivID,
				PaperTitle: paper.Title,
				Authors:    paper.Authors,
				Section:    section.Label,
				ChunkIndex: chunkIndex,
			})
			chunkIndex++
		}
	}
	return out
}
