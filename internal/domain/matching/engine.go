package matching

import (
	"math"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
)

const (
	coverageWeight    = 0.7
	utilizationWeight = 0.3
)

type Result struct {
	CandidateID    uuid.UUID `json:"candidate_id"`
	JobID          uuid.UUID `json:"job_id"`
	Score          int       `json:"score"`
	MatchedSkills  []string  `json:"matched_skills"`
	MissingSkills  []string  `json:"missing_skills"`
	Recommendation string    `json:"recommendation"`
}

type JobMatch struct {
	Job    job.Posting
	Result Result
}

type CandidateMatch struct {
	Candidate candidate.Profile
	Result    Result
}

// Calculate scores one candidate against one job posting.
func Calculate(c candidate.Profile, j job.Posting) Result {
	score, matched, missing := ScoreSkills(c.Skills, j.RequiredSkills)
	return Result{
		CandidateID:    c.ID,
		JobID:          j.ID,
		Score:          score,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		Recommendation: Recommendation(score),
	}
}

// ScoreSkills partitions requiredSkills into matched and missing and blends
// coverage (70%) with utilization (30%) into a score in [0, 100].
func ScoreSkills(candidateSkills, requiredSkills []string) (int, []string, []string) {
	have := NormalizeSkills(candidateSkills)
	reqs := NormalizeSkills(requiredSkills)

	matched := make([]string, 0, len(reqs))
	missing := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if matchesAny(have, r) {
			matched = append(matched, r)
			continue
		}
		missing = append(missing, r)
	}

	coverage := 0.0
	if len(reqs) > 0 {
		coverage = float64(len(matched)) / float64(len(reqs))
	}
	utilization := 0.0
	if len(have) > 0 {
		utilization = math.Min(1, float64(len(matched))/float64(len(have)))
	}

	total := 100 * (coverageWeight*coverage + utilizationWeight*utilization)
	return clampInt(int(math.Round(total)), 0, 100), matched, missing
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
