package engine

import (
	"bufio"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/starford/raido/internal/models"
)

// Read buffer sizing for streaming very large files.
const (
	scanBufSize = 64 * 1024
	maxLineSize = 4 * 1024 * 1024
)

// Search streams every cached document, collects case-insensitive substring
// matches, ranks them, and returns one page of results.
//
// Total work is bounded: scanning stops once the collected hit count reaches
// an early-stop threshold derived from offset+limit, so Total may undercount
// the true match count on large corpora; Truncated is set when that happens.
//
// A zero limit with zero offset collects nothing; over a non-empty corpus
// Truncated is set, since Total then vouches for nothing.
func (e *Engine) Search(query string, limit, offset int) models.SearchResponse {
	queryLower := strings.ToLower(query)
	sc := newScorer(queryLower)

	// Bound the collected set: deep pagination gets a flat surplus, shallow
	// pagination a 3x multiplier, so sorting stays meaningful without
	// scanning the whole corpus.
	target := offset + limit
	threshold := target * 3
	if target > 10000 {
		threshold = target + 20000
	}

	var hits []models.Hit
	truncated := false
	for idx, doc := range e.cache {
		if len(hits) >= threshold {
			truncated = true
			break
		}
		found, stopped, err := e.searchInDocument(doc, idx, queryLower, sc, threshold-len(hits))
		if err != nil {
			e.logger.Warn("search: skipping unreadable document",
				slog.String("path", doc.Path),
				slog.String("error", err.Error()))
			continue
		}
		hits = append(hits, found...)
		if stopped {
			truncated = true
		}
	}

	// Stable sort keeps discovery order among equal scores.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	total := len(hits)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	results := hits[start:end]
	if results == nil {
		results = []models.Hit{}
	}

	return models.SearchResponse{
		Query:     query,
		Results:   results,
		Total:     total,
		Truncated: truncated,
		Limit:     limit,
		Offset:    offset,
	}
}

// searchInDocument scans one document line by line, collecting at most budget
// hits. It reports whether it stopped early on the budget. A document that
// fails mid-read is dropped entirely, partial hits included.
func (e *Engine) searchInDocument(doc models.Document, docIdx int, query string, sc *scorer, budget int) ([]models.Hit, bool, error) {
	f, err := e.store.Open(doc.Path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, scanBufSize), maxLineSize)

	var hits []models.Hit
	var lineNo int64
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		lower := strings.ToLower(line)
		if !strings.Contains(lower, query) {
			continue
		}
		hits = append(hits, models.Hit{
			ID:         fmt.Sprintf("%d-%d", docIdx, lineNo),
			Title:      fmt.Sprintf("%s (line %d)", doc.Name, lineNo),
			Content:    line,
			Score:      sc.score(lower),
			Path:       doc.Path,
			LineNumber: lineNo,
			IndexedAt:  time.Now().UTC(),
		})
		if len(hits) >= budget {
			return hits, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	return hits, false, nil
}
