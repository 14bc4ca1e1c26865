package ingest

import "strings"

// Splitter cuts text into chunks of at most Size runes. Consecutive chunks
// share exactly Overlap runes so that context spanning a cut survives
// retrieval. Cut points prefer paragraph, line, sentence and word boundaries
// in that order, falling back to a hard cut. Splitting is deterministic.
type Splitter struct {
	Size    int
	Overlap int
}

var separators = []string{"\n\n", "\n", ". ", " "}

func NewSplitter(size, overlap int) *Splitter {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 5
	}
	return &Splitter{Size: size, Overlap: overlap}
}

func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(strings.TrimSpace(text)) == 0 {
		return nil
	}
	if len(runes) <= s.Size {
		return []string{text}
	}
	var chunks []string
	start := 0
	for {
		end := start + s.Size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		cut := s.findCut(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))
		start = cut - s.Overlap
	}
	return chunks
}

// findCut picks the cut position in (start+Overlap, end]. The lower bound
// keeps the next window strictly advancing past the previous start.
func (s *Splitter) findCut(runes []rune, start, end int) int {
	lower := start + s.Overlap + 1
	window := string(runes[lower:end])
	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		// cut after the separator so it stays with the leading chunk
		cut := lower + len([]rune(window[:idx])) + len([]rune(sep))
		if cut > end {
			cut = end
		}
		return cut
	}
	return end
}
