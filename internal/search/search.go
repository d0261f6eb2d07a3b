// Package search compiles free-form queries into matchers and ranks
// task collections. It also hosts the pure sort/filter derivations
// applied at render time; nothing here mutates application state.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tmoreno/studyplanner/internal/model"
)

// Match ranks, highest first. A zero rank means no match.
const (
	RankNone = iota
	RankOther // tag or description match
	RankSubstring
	RankPrefix
	RankExact
)

// Field names reported in results.
const (
	FieldTitle       = "title"
	FieldTag         = "tag"
	FieldDescription = "description"
)

// Result pairs a task with where and how strongly it matched.
type Result struct {
	Task   model.Task
	Fields []string
	Rank   int
}

// Matcher is a compiled query applied to individual fields.
type Matcher struct {
	query         string
	caseSensitive bool
	re            *regexp.Regexp // nil when falling back to literal matching
}

// Compile builds a matcher for the given query. The query is first
// treated as a regular expression; a malformed pattern silently falls
// back to literal substring matching, so user input never produces an
// error here.
func Compile(query string, caseSensitive bool) Matcher {
	m := Matcher{query: query, caseSensitive: caseSensitive}
	if query == "" {
		return m
	}

	pattern := query
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	if re, err := regexp.Compile(pattern); err == nil {
		m.re = re
	}
	return m
}

// Empty reports whether the matcher was compiled from an empty query.
func (m Matcher) Empty() bool {
	return m.query == ""
}

// matches reports whether a single field value matches the query.
func (m Matcher) matches(value string) bool {
	if m.re != nil {
		return m.re.MatchString(value)
	}
	if m.caseSensitive {
		return strings.Contains(value, m.query)
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(m.query))
}

// titleRank classifies how strongly the title matches: exact beats
// prefix beats substring. Regex queries rank via the position of the
// leftmost match.
func (m Matcher) titleRank(title string) int {
	q, t := m.query, title
	if !m.caseSensitive {
		q, t = strings.ToLower(q), strings.ToLower(t)
	}

	if m.re != nil {
		loc := m.re.FindStringIndex(title)
		if loc == nil {
			return RankNone
		}
		switch {
		case loc[0] == 0 && loc[1] == len(title):
			return RankExact
		case loc[0] == 0:
			return RankPrefix
		default:
			return RankSubstring
		}
	}

	switch {
	case t == q:
		return RankExact
	case strings.HasPrefix(t, q):
		return RankPrefix
	case strings.Contains(t, q):
		return RankSubstring
	default:
		return RankNone
	}
}

// Run applies the matcher to a collection. An empty query returns the
// full collection unranked, in input order. Otherwise results are
// ordered by descending rank; ties keep input order.
func Run(m Matcher, tasks []model.Task) []Result {
	if m.Empty() {
		results := make([]Result, len(tasks))
		for i, t := range tasks {
			results[i] = Result{Task: t}
		}
		return results
	}

	var results []Result
	for _, t := range tasks {
		rank := m.titleRank(t.Title)
		var fields []string
		if rank > RankNone {
			fields = append(fields, FieldTitle)
		}
		if m.matches(t.Tag) {
			fields = append(fields, FieldTag)
			if rank < RankOther {
				rank = RankOther
			}
		}
		if t.Description != "" && m.matches(t.Description) {
			fields = append(fields, FieldDescription)
			if rank < RankOther {
				rank = RankOther
			}
		}
		if rank == RankNone {
			continue
		}
		results = append(results, Result{Task: t, Fields: fields, Rank: rank})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank > results[j].Rank
	})
	return results
}
