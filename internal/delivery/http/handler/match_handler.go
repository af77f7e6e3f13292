package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
	"talent-match/internal/export"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CandidatePool lists the candidates scored against a job.
type CandidatePool interface {
	List(ctx context.Context, limit, offset int) ([]candidate.Profile, error)
}

type MatchHandler struct {
	uc       usecase.MatchingUsecase
	pool     CandidatePool
	poolSize int
	locale   language.Tag
	exporter export.Exporter
}

// NewMatchHandler serves the match routes. locale orders titles for requests
// without a usable Accept-Language header.
func NewMatchHandler(uc usecase.MatchingUsecase, pool CandidatePool, poolSize int, locale language.Tag, exporter export.Exporter) *MatchHandler {
	return &MatchHandler{uc: uc, pool: pool, poolSize: poolSize, locale: locale, exporter: exporter}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	candidates := r.Group("/candidates")
	candidates.Get("/:candidate_id/matches", h.ListJobMatches)
	candidates.Get("/:candidate_id/matches/export", h.ExportJobMatches)

	jobs := r.Group("/jobs")
	jobs.Get("/:job_id/candidates", h.ListCandidateMatches)
}

func (h *MatchHandler) ListJobMatches(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate id", nil, err)
	}

	opts, err := h.rankOptions(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.FindJobsForCandidate(c.Context(), candidateID, opts)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobMatchResponses(items))
}

func (h *MatchHandler) ExportJobMatches(c fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidate_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate id", nil, err)
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format", "csv")))
	if format != "csv" && format != "xlsx" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported export format", nil, nil)
	}

	opts, err := h.rankOptions(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.FindJobsForCandidate(c.Context(), candidateID, opts)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	filename := fmt.Sprintf("matches-%s.%s", candidateID, format)
	if format == "csv" {
		return response.Attachment(c, contentTypeCSV, filename, []byte(h.exporter.ToDelimitedText(items)))
	}

	body, err := h.exporter.ToWorkbook(items)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Attachment(c, contentTypeXLSX, filename, body)
}

func (h *MatchHandler) ListCandidateMatches(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil || limit < 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	minScore, err := parseQueryIntStrict(c, "min_score", 0)
	if err != nil || minScore < 0 || minScore > 100 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	pool, err := h.pool.List(c.Context(), h.poolSize, 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, nil, err)
	}

	items, err := h.uc.FindCandidatesForJob(c.Context(), jobID, pool, 0)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	items = matching.RankCandidates(items, minScore, limit)

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateMatchResponses(items))
}

func (h *MatchHandler) rankOptions(c fiber.Ctx) (matching.RankOptions, error) {
	sortBy, err := matching.ParseSortMode(c.Query("sort"))
	if err != nil {
		return matching.RankOptions{}, err
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return matching.RankOptions{}, err
	}
	if limit < 0 {
		return matching.RankOptions{}, fmt.Errorf("limit must not be negative, got %d", limit)
	}

	minScore, err := parseQueryIntStrict(c, "min_score", 0)
	if err != nil {
		return matching.RankOptions{}, err
	}
	if minScore < 0 || minScore > 100 {
		return matching.RankOptions{}, fmt.Errorf("min_score must be within 0-100, got %d", minScore)
	}

	return matching.RankOptions{
		SortBy:   sortBy,
		Query:    strings.TrimSpace(c.Query("q")),
		Location: strings.TrimSpace(c.Query("location")),
		JobType:  job.Type(strings.TrimSpace(c.Query("type"))),
		MinScore: minScore,
		Limit:    limit,
		Locale:   requestLocale(c.Get(fiber.HeaderAcceptLanguage), h.locale),
	}, nil
}

// requestLocale picks the most preferred Accept-Language tag, or fallback when
// the header is missing or unparseable.
func requestLocale(header string, fallback language.Tag) language.Tag {
	if strings.TrimSpace(header) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 || tags[0] == language.Und {
		return fallback
	}
	return tags[0]
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusGatewayTimeout, "Request timed out", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageBadGateway, nil, err)
	}
}
