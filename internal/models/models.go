package models

// Paper is one corpus entry as produced by the acquisition step.
// Immutable after download; identified by ArxivID.
type Paper struct {
	ArxivID    string   `json:"arxiv_id"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Abstract   string   `json:"abstract"`
	Published  string   `json:"published"`
	Categories []string `json:"categories"`
	PDFPath    string   `json:"pdf_path"`
}

// Chunk is a bounded span of a paper's text, the atomic unit of indexing.
// ChunkIndex increments per paper across all of its kept sections.
type Chunk struct {
	Text       string   `json:"text"`
	PaperID    string   `json:"paper_id"`
	PaperTitle string   `json:"paper_title"`
	Authors    []string `json:"authors"`
	Section    string   `json:"section"`
	ChunkIndex int      `json:"chunk_index"`
}

// RetrievedChunk is a chunk as returned by a similarity lookup.
// Similarity is attached at query time and is not part of the index.
type RetrievedChunk struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Metadata   map[string]string `json:"metadata"`
	Similarity float32           `json:"similarity_score,omitempty"`
}

// Source is a display-ready citation record derived from one or more chunks.
// Recomputed per response, never persisted.
type Source struct {
	PaperTitle string `json:"paper_title,omitempty"`
	Authors    string `json:"authors,omitempty"`
	Section    string `json:"section,omitempty"`
	Link       string `json:"link,omitempty"`
}
