package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type MatchingUsecase interface {
	FindJobsForCandidate(ctx context.Context, candidateID uuid.UUID, opts matching.RankOptions) ([]matching.JobMatch, error)
	FindCandidatesForJob(ctx context.Context, jobID uuid.UUID, pool []candidate.Profile, topN int) ([]matching.CandidateMatch, error)
}

type Matching struct {
	candidates CandidateProvider
	jobs       JobCatalogProvider
	workers    int
	logger     *zap.Logger
}

func NewMatchingUsecase(candidates CandidateProvider, jobs JobCatalogProvider, workers int, logger *zap.Logger) *Matching {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{candidates: candidates, jobs: jobs, workers: workers, logger: logger}
}

func (u *Matching) FindJobsForCandidate(ctx context.Context, candidateID uuid.UUID, opts matching.RankOptions) ([]matching.JobMatch, error) {
	if candidateID == uuid.Nil {
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}

	c, err := u.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
		}
		u.logger.Warn("candidate lookup failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return nil, err
	}

	postings, err := u.jobs.List(ctx, opts.Filter())
	if err != nil {
		u.logger.Warn("job catalog listing failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return nil, err
	}
	if len(postings) == 0 {
		return []matching.JobMatch{}, nil
	}

	start := time.Now()
	scored := scoreAll(postings, u.workers, func(p job.Posting) matching.JobMatch {
		return matching.JobMatch{Job: p, Result: matching.Calculate(c, p)}
	})
	out := matching.Rank(scored, opts)

	u.logger.Debug("jobs matched for candidate",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("catalog_size", len(postings)),
		zap.Int("returned", len(out)),
		zap.Duration("scoring", time.Since(start)),
	)
	return out, nil
}

func (u *Matching) FindCandidatesForJob(ctx context.Context, jobID uuid.UUID, pool []candidate.Profile, topN int) ([]matching.CandidateMatch, error) {
	if jobID == uuid.Nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
		}
		u.logger.Warn("job lookup failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, err
	}
	if len(pool) == 0 {
		return []matching.CandidateMatch{}, nil
	}

	scored := scoreAll(pool, u.workers, func(c candidate.Profile) matching.CandidateMatch {
		return matching.CandidateMatch{Candidate: c, Result: matching.Calculate(c, p)}
	})
	out := matching.RankCandidates(scored, 0, topN)

	u.logger.Debug("candidates matched for job",
		zap.String("job_id", jobID.String()),
		zap.Int("pool_size", len(pool)),
		zap.Int("returned", len(out)),
	)
	return out, nil
}

// scoreAll applies fn to every item on a bounded set of goroutines. Results
// keep the input order.
func scoreAll[T, R any](items []T, workers int, fn func(T) R) []R {
	out := make([]R, len(items))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range items {
		g.Go(func() error {
			out[i] = fn(items[i])
			return nil
		})
	}
	_ = g.Wait()
	return out
}
