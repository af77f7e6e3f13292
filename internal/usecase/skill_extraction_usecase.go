package usecase

import (
	"context"
	"strings"

	"talent-match/internal/domain/matching"

	"go.uber.org/zap"
)

type SkillExtractionUsecase interface {
	Extract(ctx context.Context, resumeText string) ([]string, error)
}

type SkillExtraction struct {
	extractor SkillExtractor
	logger    *zap.Logger
}

func NewSkillExtractionUsecase(extractor SkillExtractor, logger *zap.Logger) *SkillExtraction {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillExtraction{extractor: extractor, logger: logger}
}

// Extract returns the normalized skills found in resumeText. Extractor output is
// treated as noisy: blanks and case-insensitive duplicates are dropped.
func (u *SkillExtraction) Extract(ctx context.Context, resumeText string) ([]string, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, ErrInvalidInput
	}
	if u.extractor == nil {
		return nil, ErrExtractionUnavailable
	}

	raw, err := u.extractor.ExtractSkills(ctx, resumeText)
	if err != nil {
		u.logger.Warn("skill extraction failed", zap.Int("text_len", len(resumeText)), zap.Error(err))
		return nil, err
	}

	skills := matching.NormalizeSkills(raw)
	u.logger.Debug("skills extracted", zap.Int("raw", len(raw)), zap.Int("normalized", len(skills)))
	return skills, nil
}
