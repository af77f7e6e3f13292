package dto

import (
	"time"

	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

type SalaryResponse struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type JobResponse struct {
	JobID          uuid.UUID       `json:"job_id"`
	Title          string          `json:"title"`
	CompanyName    string          `json:"company_name"`
	Location       string          `json:"location"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	PostedDate     string          `json:"posted_date"`
	RequiredSkills []string        `json:"required_skills"`
	Salary         *SalaryResponse `json:"salary"`
}

type MatchResultResponse struct {
	Score          int      `json:"score"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Recommendation string   `json:"recommendation"`
}

type JobMatchResponse struct {
	Job   JobResponse         `json:"job"`
	Match MatchResultResponse `json:"match"`
}

type CandidateResponse struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Name        string    `json:"name"`
	Skills      []string  `json:"skills"`
}

type CandidateMatchResponse struct {
	Candidate CandidateResponse   `json:"candidate"`
	Match     MatchResultResponse `json:"match"`
}

type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

type ExtractSkillsResponse struct {
	Skills []string `json:"skills"`
}

func NewJobMatchResponses(items []matching.JobMatch) []JobMatchResponse {
	out := make([]JobMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, JobMatchResponse{Job: newJobResponse(it.Job), Match: newMatchResult(it.Result)})
	}
	return out
}

func NewCandidateMatchResponses(items []matching.CandidateMatch) []CandidateMatchResponse {
	out := make([]CandidateMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, CandidateMatchResponse{
			Candidate: CandidateResponse{
				CandidateID: it.Candidate.ID,
				Name:        it.Candidate.Name,
				Skills:      nonNil(it.Candidate.Skills),
			},
			Match: newMatchResult(it.Result),
		})
	}
	return out
}

func newJobResponse(p job.Posting) JobResponse {
	posted := ""
	if !p.PostedAt.IsZero() {
		posted = p.PostedAt.UTC().Format(time.RFC3339)
	}

	var salary *SalaryResponse
	if p.Salary != nil {
		salary = &SalaryResponse{Min: p.Salary.Min, Max: p.Salary.Max, Currency: p.Salary.Currency}
	}

	return JobResponse{
		JobID:          p.ID,
		Title:          p.Title,
		CompanyName:    p.Company.Name,
		Location:       p.Location,
		Description:    p.Description,
		Type:           string(p.Type),
		PostedDate:     posted,
		RequiredSkills: nonNil(p.RequiredSkills),
		Salary:         salary,
	}
}

func newMatchResult(r matching.Result) MatchResultResponse {
	return MatchResultResponse{
		Score:          r.Score,
		MatchedSkills:  nonNil(r.MatchedSkills),
		MissingSkills:  nonNil(r.MissingSkills),
		Recommendation: r.Recommendation,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
