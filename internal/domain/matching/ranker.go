package matching

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"talent-match/internal/domain/job"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrUnknownSortMode = errors.New("unknown sort mode")

type SortMode string

const (
	SortByScore SortMode = "score"
	SortByDate  SortMode = "date"
	SortByTitle SortMode = "title"
)

func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortByScore, nil
	case SortByScore, SortByDate, SortByTitle:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
	}
}

type RankOptions struct {
	SortBy   SortMode
	Query    string
	Location string
	JobType  job.Type
	MinScore int
	// Limit keeps the top N entries; zero or negative keeps everything.
	Limit int
	// Locale drives title collation. The zero value is language.Und.
	Locale language.Tag
}

// Filter returns the job filter hint matching the options.
func (o RankOptions) Filter() job.Filter {
	return job.Filter{Query: o.Query, Location: o.Location, Type: o.JobType}
}

// Rank filters and orders job matches. The input slice is left untouched.
func Rank(items []JobMatch, opts RankOptions) []JobMatch {
	out := make([]JobMatch, 0, len(items))
	for _, it := range items {
		if keep(it, opts) {
			out = append(out, it)
		}
	}

	// collate.Collator is not safe for concurrent use.
	col := collate.New(opts.Locale)
	titleLess := func(a, b string) bool { return col.CompareString(a, b) < 0 }

	switch opts.SortBy {
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if !a.Job.PostedAt.Equal(b.Job.PostedAt) {
				return a.Job.PostedAt.After(b.Job.PostedAt)
			}
			return a.Result.Score > b.Result.Score
		})
	case SortByTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return titleLess(out[i].Job.Title, out[j].Job.Title)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.Result.Score != b.Result.Score {
				return a.Result.Score > b.Result.Score
			}
			return titleLess(a.Job.Title, b.Job.Title)
		})
	}

	return truncate(out, opts.Limit)
}

// RankCandidates orders candidate matches by score, ties by name.
func RankCandidates(items []CandidateMatch, minScore, limit int) []CandidateMatch {
	out := make([]CandidateMatch, 0, len(items))
	for _, it := range items {
		if it.Result.Score >= minScore {
			out = append(out, it)
		}
	}

	col := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Result.Score != b.Result.Score {
			return a.Result.Score > b.Result.Score
		}
		return col.CompareString(a.Candidate.Name, b.Candidate.Name) < 0
	})

	return truncate(out, limit)
}

func keep(it JobMatch, opts RankOptions) bool {
	if it.Result.Score < opts.MinScore {
		return false
	}
	if opts.JobType != "" && it.Job.Type != opts.JobType {
		return false
	}
	if loc := normalizeText(opts.Location); loc != "" && !strings.Contains(normalizeText(it.Job.Location), loc) {
		return false
	}
	return matchesQuery(it.Job, opts.Query)
}

func matchesQuery(j job.Posting, query string) bool {
	q := normalizeText(query)
	if q == "" {
		return true
	}
	for _, field := range []string{j.Title, j.Company.Name, j.Location, j.Description} {
		if strings.Contains(normalizeText(field), q) {
			return true
		}
	}
	return false
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
