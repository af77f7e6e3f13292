package seeder

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/job"
)

var demoCompanies = []string{"Batiplus", "LogiNord", "Clinique Saint-Roch", "Atelier Meca", "DataVille"}

type CompanySeeder struct{}

func (CompanySeeder) Name() string { return "companies" }

func (CompanySeeder) Run(ctx context.Context, db database.DB) error {
	if err := database.EnsureTableColumns(ctx, db, "companies", "id", "name"); err != nil {
		return err
	}
	for _, name := range demoCompanies {
		if _, err := db.Exec(ctx,
			`INSERT INTO companies (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			stableID("company", name), name,
		); err != nil {
			return fmt.Errorf("insert company %s: %w", name, err)
		}
	}
	return nil
}

type demoJob struct {
	Title       string
	Company     string
	Location    string
	Type        job.Type
	Description string
	Skills      []string
	AgeDays     int
	Salary      *job.Salary
}

var demoJobs = []demoJob{
	{
		Title:       "Électricien bâtiment",
		Company:     "Batiplus",
		Location:    "Lyon",
		Type:        job.TypeTemp,
		Description: "Mission de 3 mois sur chantier tertiaire, habilitation électrique requise.",
		Skills:      []string{"Habilitation électrique", "Lecture de plans", "CACES"},
		AgeDays:     2,
		Salary:      &job.Salary{Min: 13.5, Max: 15, Currency: "EUR"},
	},
	{
		Title:       "Cariste",
		Company:     "LogiNord",
		Location:    "Lille",
		Type:        job.TypeTemp,
		Description: "Préparation de commandes et chargement de camions en entrepôt.",
		Skills:      []string{"CACES 3", "Gestion de stock"},
		AgeDays:     1,
		Salary:      &job.Salary{Min: 12, Max: 13, Currency: "EUR"},
	},
	{
		Title:       "Infirmier de nuit",
		Company:     "Clinique Saint-Roch",
		Location:    "Montpellier",
		Type:        job.TypeFixedTerm,
		Description: "Remplacement de 6 mois en service de chirurgie.",
		Skills:      []string{"Soins infirmiers", "Gestion des urgences"},
		AgeDays:     5,
	},
	{
		Title:       "Technicien de maintenance",
		Company:     "Atelier Meca",
		Location:    "Lyon",
		Type:        job.TypePermanent,
		Description: "Maintenance préventive et curative sur lignes de production.",
		Skills:      []string{"Mécanique", "Électrotechnique", "Lecture de plans"},
		AgeDays:     9,
		Salary:      &job.Salary{Min: 28000, Max: 34000, Currency: "EUR"},
	},
	{
		Title:       "Backend Developer",
		Company:     "DataVille",
		Location:    "Remote",
		Type:        job.TypeFreelance,
		Description: "APIs in Go on top of PostgreSQL and Redis.",
		Skills:      []string{"Go", "PostgreSQL", "Redis", "Docker"},
		AgeDays:     3,
		Salary:      &job.Salary{Min: 450, Max: 550, Currency: "EUR"},
	},
	{
		Title:       "Assistant data analyst",
		Company:     "DataVille",
		Location:    "Paris",
		Type:        job.TypeInternship,
		Description: "Reporting and dashboards for the operations team.",
		Skills:      []string{"SQL", "Excel", "Python"},
		AgeDays:     14,
	},
}

type JobSeeder struct{}

func (JobSeeder) Name() string { return "jobs" }

func (JobSeeder) Run(ctx context.Context, db database.DB) error {
	if err := database.EnsureTableColumns(ctx, db, "jobs",
		"id",
		"title",
		"company_id",
		"location",
		"description",
		"job_type",
		"posted_at",
		"required_skills",
		"salary_min",
		"salary_max",
		"salary_currency",
	); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, it := range demoJobs {
		var salaryMin, salaryMax *float64
		var currency *string
		if it.Salary != nil {
			salaryMin, salaryMax, currency = &it.Salary.Min, &it.Salary.Max, &it.Salary.Currency
		}

		_, err := db.Exec(ctx,
			`INSERT INTO jobs (
				id, title, company_id, location, description, job_type,
				posted_at, required_skills, salary_min, salary_max, salary_currency
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (id) DO NOTHING`,
			stableID("job", it.Company+"/"+it.Title),
			it.Title,
			stableID("company", it.Company),
			it.Location,
			it.Description,
			string(it.Type),
			now.Add(-time.Duration(it.AgeDays)*24*time.Hour),
			it.Skills,
			salaryMin,
			salaryMax,
			currency,
		)
		if err != nil {
			return fmt.Errorf("insert job %s: %w", it.Title, err)
		}
	}

	return nil
}
