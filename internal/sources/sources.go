// Package sources normalizes chunk records into deduplicated, display-ready
// citations. Alias resolution happens here and only here: the alias tables
// below are the single normalization boundary for the several field
// spellings found in cached and externally supplied chunk payloads.
package sources

import (
	"fmt"
	"regexp"
	"strings"

	"scholar-rag/internal/models"
)

// Alias tables, tried in order. Top-level keys win over nested metadata.
var (
	metaKeys    = []string{"metadata", "meta"}
	titleKeys   = []string{"paper_title", "title", "paper"}
	authorKeys  = []string{"authors", "author"}
	sectionKeys = []string{"section", "chunk", "context", "excerpt", "part"}
	linkKeys    = []string{"link", "url", "source"}
	paperIDKeys = []string{"paper_id", "id"}
)

var versionSuffix = regexp.MustCompile(`v\d+$`)

// FromRecords resolves a heterogeneous sequence of chunk-like records.
// Records that are not key-value maps are skipped. Output order equals
// input order with duplicates removed at first occurrence.
func FromRecords(records []any) []models.Source {
	seen := make(map[string]bool)
	var out []models.Source

	for _, record := range records {
		m, ok := record.(map[string]any)
		if !ok {
			continue
		}
		meta := subMap(m, metaKeys)

		title := lookupString(m, meta, titleKeys)
		authors := lookupAuthors(m, meta)
		section := lookupString(m, meta, sectionKeys)
		link := lookupString(m, meta, linkKeys)
		if link == "" {
			if paperID := lookupString(m, meta, paperIDKeys); paperID != "" {
				link = SynthesizeLink(paperID)
			}
		}

		key := link
		if key == "" {
			key = title + "\x1f" + section
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, models.Source{
			PaperTitle: title,
			Authors:    authors,
			Section:    section,
			Link:       link,
		})
	}
	return out
}

// FromChunks resolves the canonical retrieved-chunk shape. It funnels
// through the same alias tables so both entry points agree.
func FromChunks(chunks []models.RetrievedChunk) []models.Source {
	records := make([]any, len(chunks))
	for i, chunk := range chunks {
		meta := make(map[string]any, len(chunk.Metadata))
		for k, v := range chunk.Metadata {
			meta[k] = v
		}
		records[i] = map[string]any{"metadata": meta}
	}
	return FromRecords(records)
}

// SynthesizeLink forms the canonical arXiv URL for a paper identifier,
// stripping any trailing version suffix so all versions of a paper share
// one link.
func SynthesizeLink(paperID string) string {
	return models.ArxivAbsURL + versionSuffix.ReplaceAllString(paperID, "")
}

// subMap returns the first nested map found under the given keys.
func subMap(m map[string]any, keys []string) map[string]any {
	for _, key := range keys {
		if nested, ok := m[key].(map[string]any); ok {
			return nested
		}
	}
	return nil
}

// lookupString tries the aliases top-level first, then in the metadata map.
func lookupString(m, meta map[string]any, keys []string) string {
	for _, key := range keys {
		if s := asString(m[key]); s != "" {
			return s
		}
	}
	for _, key := range keys {
		if s := asString(meta[key]); s != "" {
			return s
		}
	}
	return ""
}

// lookupAuthors resolves authors, comma-joining list values.
func lookupAuthors(m, meta map[string]any) string {
	for _, source := range []map[string]any{m, meta} {
		for _, key := range authorKeys {
			switch v := source[key].(type) {
			case nil:
			case []any:
				parts := make([]string, len(v))
				for i, a := range v {
					parts[i] = fmt.Sprint(a)
				}
				return strings.Join(parts, ", ")
			case []string:
				return strings.Join(v, ", ")
			default:
				if s := asString(v); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
