package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
)

const DefaultDateLayout = "02/01/2006"

var header = []string{
	"Job Title",
	"Company",
	"Location",
	"Score",
	"Matched Skills",
	"Missing Skills",
	"Salary",
	"Job Type",
	"Posted Date",
}

// Exporter renders ranked job matches as flat tables. It never touches the
// file system; callers decide where the bytes go.
type Exporter struct {
	DateLayout string
}

func NewExporter(dateLayout string) Exporter {
	if strings.TrimSpace(dateLayout) == "" {
		dateLayout = DefaultDateLayout
	}
	return Exporter{DateLayout: dateLayout}
}

// ToDelimitedText renders matches with the default exporter.
func ToDelimitedText(matches []matching.JobMatch) string {
	return NewExporter("").ToDelimitedText(matches)
}

// ToDelimitedText returns a CSV document: one header row and one row per match.
func (e Exporter) ToDelimitedText(matches []matching.JobMatch) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	// strings.Builder writes cannot fail, so the errors are only checked once.
	_ = w.Write(header)
	for _, m := range matches {
		_ = w.Write(e.row(m))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return ""
	}
	return b.String()
}

func (e Exporter) row(m matching.JobMatch) []string {
	posted := ""
	if !m.Job.PostedAt.IsZero() {
		posted = m.Job.PostedAt.Format(e.layout())
	}
	return []string{
		m.Job.Title,
		m.Job.Company.Name,
		m.Job.Location,
		FormatScore(m.Result.Score),
		strings.Join(m.Result.MatchedSkills, ", "),
		strings.Join(m.Result.MissingSkills, ", "),
		FormatSalary(m.Job.Salary),
		string(m.Job.Type),
		posted,
	}
}

func (e Exporter) layout() string {
	if e.DateLayout == "" {
		return DefaultDateLayout
	}
	return e.DateLayout
}

func FormatScore(score int) string {
	return fmt.Sprintf("%d%%", score)
}

// FormatSalary renders "min - max CUR", or an empty string when s is nil.
func FormatSalary(s *job.Salary) string {
	if s == nil {
		return ""
	}
	out := formatAmount(s.Min) + " - " + formatAmount(s.Max)
	if c := strings.TrimSpace(s.Currency); c != "" {
		out += " " + strings.ToUpper(c)
	}
	return out
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
