package usecase

import (
	"context"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
)

// CandidateProvider resolves candidate profiles. Implementations return an
// error wrapping candidate.ErrNotFound for unknown ids.
type CandidateProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Profile, error)
}

// JobCatalogProvider lists job postings. The filter is only a hint: callers
// re-apply their own filtering on whatever is returned.
type JobCatalogProvider interface {
	List(ctx context.Context, filter job.Filter) ([]job.Posting, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
}

// SkillExtractor derives skill labels from free-text resume content.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, resumeText string) ([]string, error)
}
