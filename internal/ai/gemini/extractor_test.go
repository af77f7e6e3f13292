package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	model     string
	mime      string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.model = model
	if cfg != nil {
		f.mime = cfg.ResponseMIMEType
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp *genai.GenerateContentResponse
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: s}}},
	}}}
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "array", in: `["Go", "SQL"]`, want: []string{"Go", "SQL"}},
		{name: "fenced", in: "```json\n[\"Forklift\"]\n```", want: []string{"Forklift"}},
		{name: "object", in: `{"skills": ["Welding", "TIG"]}`, want: []string{"Welding", "TIG"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSkills(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseSkills("   ")
	assert.Error(t, err)
	_, err = parseSkills("not json")
	assert.Error(t, err)
}

func TestSkillExtractor_RetriesThenSucceeds(t *testing.T) {
	models := &fakeModels{
		errs:      []error{errors.New("503 unavailable")},
		responses: []*genai.GenerateContentResponse{nil, textResponse(`["React","Node.js"]`)},
	}
	ex := newSkillExtractor(models, "", 1, nil)

	got, err := ex.ExtractSkills(context.Background(), "React developer, Node.js backend")
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "Node.js"}, got)
	assert.Equal(t, 2, models.calls)
	assert.Equal(t, defaultModel, models.model)
	assert.Equal(t, "application/json", models.mime)
}

func TestSkillExtractor_GivesUp(t *testing.T) {
	boom := errors.New("quota")
	models := &fakeModels{errs: []error{boom}}
	ex := newSkillExtractor(models, "gemini-test", 0, nil)

	_, err := ex.ExtractSkills(context.Background(), "resume")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, models.calls)
}

func TestNewSkillExtractor_RequiresKey(t *testing.T) {
	_, err := NewSkillExtractor(context.Background(), " ", "", 0, nil)
	assert.Error(t, err)
}
