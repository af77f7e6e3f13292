package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"
	retryDelay   = 500 * time.Millisecond
)

const extractPrompt = `You extract professional skills from resumes for a staffing agency.
Return only a JSON array of short skill labels (tools, technologies, certifications, trades).
Do not add explanations. Resume:

%s`

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// SkillExtractor asks Gemini for the skills listed in a resume.
type SkillExtractor struct {
	models     contentGenerator
	modelName  string
	maxRetries int
	logger     *zap.Logger
}

func NewSkillExtractor(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*SkillExtractor, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newSkillExtractor(client.Models, model, maxRetries, logger), nil
}

func newSkillExtractor(models contentGenerator, model string, maxRetries int, logger *zap.Logger) *SkillExtractor {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillExtractor{models: models, modelName: model, maxRetries: maxRetries, logger: logger}
}

func (e *SkillExtractor) ExtractSkills(ctx context.Context, resumeText string) ([]string, error) {
	if e == nil || e.models == nil {
		return nil, errors.New("gemini extractor is not initialized")
	}

	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	contents := genai.Text(fmt.Sprintf(extractPrompt, strings.TrimSpace(resumeText)))

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryDelay):
			}
		}

		resp, err := e.models.GenerateContent(ctx, e.modelName, contents, cfg)
		if err != nil {
			lastErr = fmt.Errorf("generate content: %w", err)
			e.logger.Warn("gemini request failed", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}

		skills, err := parseSkills(responseText(resp))
		if err != nil {
			lastErr = err
			e.logger.Warn("gemini response not parseable", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}
		return skills, nil
	}
	return nil, lastErr
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// parseSkills accepts a bare JSON array or an object with a "skills" array,
// optionally wrapped in a markdown code fence.
func parseSkills(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("gemini api returned empty response")
	}

	var list []string
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return list, nil
	}

	var obj struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return obj.Skills, nil
}
