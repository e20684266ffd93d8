package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// scorer ranks matched lines for a single lowercased query. Word-boundary
// facts about the query are computed once per query rather than per line.
type scorer struct {
	query     string
	boundary  bool // apply the whole-word boost (queries of 2+ bytes)
	short     bool
	firstWord bool // word-ness of the query's first and last runes
	lastWord  bool
}

func newScorer(query string) *scorer {
	s := &scorer{query: query, boundary: len(query) >= 2, short: len(query) <= 4}
	if s.boundary {
		first, _ := utf8.DecodeRuneInString(query)
		last, _ := utf8.DecodeLastRuneInString(query)
		s.firstWord = isWordRune(first)
		s.lastWord = isWordRune(last)
	}
	return s
}

// isWordRune mirrors regex \w over the full Unicode range: letters, digits,
// and underscore in any script.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wholeWord reports whether some occurrence of the query in line sits on word
// boundaries. A boundary exists where the word-ness of the adjacent rune
// differs from the word-ness of the query's edge rune; line edges count as
// non-word.
func (s *scorer) wholeWord(line string) bool {
	for start := 0; ; {
		i := strings.Index(line[start:], s.query)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(s.query)

		beforeWord := false
		if i > 0 {
			r, _ := utf8.DecodeLastRuneInString(line[:i])
			beforeWord = isWordRune(r)
		}
		afterWord := false
		if end < len(line) {
			r, _ := utf8.DecodeRuneInString(line[end:])
			afterWord = isWordRune(r)
		}
		if beforeWord != s.firstWord && afterWord != s.lastWord {
			return true
		}
		start = i + 1
	}
}

// score computes the relevance of a lowercased line:
//
//	10 × non-overlapping occurrence count
//	+5 when the query matches as a whole word (queries of 2+ bytes)
//	+2 flat boost for short queries (4 bytes or fewer), stacking with the above
//
// The whole-word check is Unicode-aware in every script. The absolute
// magnitude has no meaning beyond relative ordering, but the formula is fixed
// for output compatibility.
func (s *scorer) score(line string) float64 {
	score := float64(strings.Count(line, s.query)) * 10

	if s.boundary && s.wholeWord(line) {
		score += 5
	}
	if s.short {
		score += 2
	}
	return score
}

// Score is the scoring heuristic applied to one matched line. Both inputs
// must already be lowercased. It is a pure function of its arguments.
func Score(line, query string) float64 {
	return newScorer(query).score(line)
}
