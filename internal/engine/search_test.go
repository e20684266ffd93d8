package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSearchSingleDocument(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "doc.txt", "ab ab\nxyz\n")
	e.Refresh()

	resp := e.Search("ab", 10, 0)
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	hit := resp.Results[0]
	if hit.Score != 27 {
		t.Errorf("score = %v, want 27", hit.Score)
	}
	if hit.Content != "ab ab" {
		t.Errorf("content = %q, want \"ab ab\"", hit.Content)
	}
	if hit.LineNumber != 1 {
		t.Errorf("line_number = %d, want 1", hit.LineNumber)
	}
	if hit.ID != "0-1" {
		t.Errorf("id = %q, want \"0-1\"", hit.ID)
	}
	if hit.Title != "doc.txt (line 1)" {
		t.Errorf("title = %q", hit.Title)
	}
	if resp.Truncated {
		t.Error("small corpus search should not be truncated")
	}
}

func TestSearchCaseInsensitivePreservesOriginal(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "doc.txt", "Apple Pie\n")
	e.Refresh()

	resp := e.Search("apple", 10, 0)
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if resp.Results[0].Content != "Apple Pie" {
		t.Errorf("content = %q, original case not preserved", resp.Results[0].Content)
	}
}

func TestSearchOrderingAndTieStability(t *testing.T) {
	e, root := newTestEngine(t)
	// All three lines tie at 15 (one occurrence + word boundary, no short
	// boost for a 5-char query); discovery order must be preserved.
	writeFile(t, root, "doc.txt", "apple\nbanana apple\nApple pie\n")
	e.Refresh()

	resp := e.Search("apple", 10, 0)
	if resp.Total != 3 {
		t.Fatalf("total = %d, want 3", resp.Total)
	}
	for i := 0; i < len(resp.Results)-1; i++ {
		if resp.Results[i].Score < resp.Results[i+1].Score {
			t.Errorf("results not sorted: score[%d]=%v < score[%d]=%v",
				i, resp.Results[i].Score, i+1, resp.Results[i+1].Score)
		}
	}
	wantLines := []int64{1, 2, 3}
	for i, h := range resp.Results {
		if h.Score != 15 {
			t.Errorf("score[%d] = %v, want 15", i, h.Score)
		}
		if h.LineNumber != wantLines[i] {
			t.Errorf("tie order broken: line[%d] = %d, want %d", i, h.LineNumber, wantLines[i])
		}
	}
}

func TestSearchHigherScoreFirst(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "doc.txt", "cat\ncat cat cat\n")
	e.Refresh()

	resp := e.Search("cat", 10, 0)
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	if resp.Results[0].LineNumber != 2 {
		t.Errorf("highest-scoring line should come first, got line %d", resp.Results[0].LineNumber)
	}
	if resp.Results[0].Score <= resp.Results[1].Score {
		t.Errorf("scores not descending: %v then %v", resp.Results[0].Score, resp.Results[1].Score)
	}
}

func TestSearchPagination(t *testing.T) {
	e, root := newTestEngine(t)
	var b strings.Builder
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&b, "needle %d\n", i)
	}
	writeFile(t, root, "doc.txt", b.String())
	e.Refresh()

	full := e.Search("needle", 100, 0)
	if full.Total != 9 {
		t.Fatalf("total = %d, want 9", full.Total)
	}

	page := e.Search("needle", 3, 3)
	if len(page.Results) != 3 {
		t.Fatalf("page size = %d, want 3", len(page.Results))
	}
	for i, h := range page.Results {
		if h.ID != full.Results[3+i].ID {
			t.Errorf("page[%d] = %s, want %s", i, h.ID, full.Results[3+i].ID)
		}
	}
	if page.Limit != 3 || page.Offset != 3 {
		t.Errorf("limit/offset echo = %d/%d", page.Limit, page.Offset)
	}
}

func TestSearchOffsetBeyondResults(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "doc.txt", "match\n")
	e.Refresh()

	resp := e.Search("match", 10, 50)
	if len(resp.Results) != 0 {
		t.Errorf("results = %d, want 0", len(resp.Results))
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestSearchAcrossDocumentsInCacheOrder(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "a.txt", "token here\n")
	writeFile(t, root, "b.txt", "token there\n")
	e.Refresh()

	resp := e.Search("token", 10, 0)
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	// Equal scores: document cache order decides.
	if resp.Results[0].ID != "0-1" || resp.Results[1].ID != "1-1" {
		t.Errorf("ids = %s, %s; want 0-1, 1-1", resp.Results[0].ID, resp.Results[1].ID)
	}
}

func TestSearchEarlyStopTruncates(t *testing.T) {
	e, root := newTestEngine(t)
	// threshold = (0+1)*3 = 3; ten matching lines exist.
	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("hit\n")
	}
	writeFile(t, root, "doc.txt", b.String())
	e.Refresh()

	resp := e.Search("hit", 1, 0)
	if !resp.Truncated {
		t.Error("expected truncated response")
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3 (collected before pagination)", resp.Total)
	}
	if len(resp.Results) != 1 {
		t.Errorf("results = %d, want 1", len(resp.Results))
	}
}

func TestSearchDeepOffsetExactTotal(t *testing.T) {
	e, root := newTestEngine(t)
	var b strings.Builder
	for i := 0; i < 12000; i++ {
		b.WriteString("needle\n")
	}
	writeFile(t, root, "doc.txt", b.String())
	e.Refresh()

	// target = 10101, so collection may run to target+20000; the corpus is
	// far smaller and the count stays exact.
	resp := e.Search("needle", 100, 10001)
	if resp.Truncated {
		t.Error("corpus below the deep-pagination cap must not truncate")
	}
	if resp.Total != 12000 {
		t.Errorf("total = %d, want exact count 12000", resp.Total)
	}
	if len(resp.Results) != 100 {
		t.Errorf("results = %d, want 100", len(resp.Results))
	}
}

func TestSearchDeepOffsetFlatSurplus(t *testing.T) {
	e, root := newTestEngine(t)
	var b strings.Builder
	for i := 0; i < 30002; i++ {
		b.WriteString("needle\n")
	}
	writeFile(t, root, "doc.txt", b.String())
	e.Refresh()

	// target = 10001 switches the cap from the 3x multiplier to a flat
	// +20000 surplus: collection stops at 30001 of the 30002 matching lines.
	resp := e.Search("needle", 1, 10000)
	if !resp.Truncated {
		t.Error("expected truncation at the deep-pagination cap")
	}
	if resp.Total != 30001 {
		t.Errorf("total = %d, want 30001", resp.Total)
	}
	if len(resp.Results) != 1 {
		t.Errorf("results = %d, want 1", len(resp.Results))
	}
}

func TestSearchZeroTarget(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "doc.txt", "match\n")
	e.Refresh()

	// limit 0 + offset 0 collects nothing; Truncated signals that Total
	// vouches for nothing on a non-empty corpus.
	resp := e.Search("match", 0, 0)
	if len(resp.Results) != 0 || resp.Total != 0 {
		t.Errorf("results = %d, total = %d, want 0/0", len(resp.Results), resp.Total)
	}
	if !resp.Truncated {
		t.Error("zero-target search over documents should report truncation")
	}

	empty, _ := newTestEngine(t)
	if r := empty.Search("match", 0, 0); r.Truncated {
		t.Error("zero-target search over an empty corpus has nothing to truncate")
	}
}

func TestSearchExactTotalUnderThreshold(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "a.txt", "word\nother\nword again\n")
	writeFile(t, root, "b.txt", "more word\n")
	e.Refresh()

	resp := e.Search("word", 10, 0)
	if resp.Total != 3 {
		t.Errorf("total = %d, want exact count 3", resp.Total)
	}
	if resp.Truncated {
		t.Error("should not be truncated under threshold")
	}
}

func TestSearchSkipsUnreadableDocument(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "gone.txt", "match\n")
	writeFile(t, root, "stays.txt", "match\n")
	e.Refresh()

	// Delete one file behind the cache's back; the stale entry is logged
	// and skipped, not a search failure.
	var gone string
	for _, d := range e.cache {
		if d.Name == "gone.txt" {
			gone = d.Path
		}
	}
	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}

	resp := e.Search("match", 10, 0)
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if filepath.Base(resp.Results[0].Path) != "stays.txt" {
		t.Errorf("unexpected hit path: %s", resp.Results[0].Path)
	}
}

func TestSearchNoMatches(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "doc.txt", "nothing relevant\n")
	e.Refresh()

	resp := e.Search("absent", 10, 0)
	if resp.Total != 0 || len(resp.Results) != 0 {
		t.Errorf("total = %d, results = %d, want 0/0", resp.Total, len(resp.Results))
	}
	if resp.Results == nil {
		t.Error("results should be an empty slice, not nil")
	}
	if resp.Query != "absent" {
		t.Errorf("query echo = %q", resp.Query)
	}
}
