package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"
)

var demoCandidates = []candidate.Profile{
	{
		Name:       "Camille Martin",
		Skills:     []string{"habilitation électrique", "Lecture de plans", "Électrotechnique"},
		Experience: []string{"Électricienne, Batiplus, 2019-2023"},
		Education:  []string{"CAP Électricien"},
		Summary:    "Électricienne tertiaire, 5 ans de chantier.",
	},
	{
		Name:       "Yanis Benali",
		Skills:     []string{"CACES 3", "CACES 5", "Gestion de stock"},
		Experience: []string{"Cariste, LogiNord, 2021-2024"},
		Summary:    "Cariste polyvalent disponible immédiatement.",
	},
	{
		Name:      "Lea Dubois",
		Skills:    []string{"Go", "PostgreSQL", "Kubernetes", "Python"},
		Education: []string{"Master Informatique"},
		Summary:   "Backend developer.",
	},
}

type CandidateSeeder struct{}

func (CandidateSeeder) Name() string { return "candidates" }

func (CandidateSeeder) Run(ctx context.Context, db database.DB) error {
	if err := database.EnsureTableColumns(ctx, db, "candidates", "id", "name", "skills", "experience", "education", "summary"); err != nil {
		return err
	}

	for _, c := range demoCandidates {
		_, err := db.Exec(ctx,
			`INSERT INTO candidates (id, name, skills, experience, education, summary)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (id) DO NOTHING`,
			stableID("candidate", c.Name),
			c.Name,
			nonNil(c.Skills),
			nonNil(c.Experience),
			nonNil(c.Education),
			c.Summary,
		)
		if err != nil {
			return fmt.Errorf("insert candidate %s: %w", c.Name, err)
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
