package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

// namespace derives stable ids so seeding twice leaves a single copy of each row.
var namespace = uuid.MustParse("6f1c2b5e-8d4a-4e3b-9a57-2c0d1e9f4b61")

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{
		CompanySeeder{},
		JobSeeder{},
		CandidateSeeder{},
	}
}

func stableID(kind, name string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(kind+":"+name))
}
