package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS candidates (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	skills TEXT[] NOT NULL DEFAULT '{}',
	experience TEXT[] NOT NULL DEFAULT '{}',
	education TEXT[] NOT NULL DEFAULT '{}',
	summary TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	company_id UUID NOT NULL REFERENCES companies(id),
	location TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL DEFAULT '',
	posted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	required_skills TEXT[] NOT NULL DEFAULT '{}',
	salary_min NUMERIC,
	salary_max NUMERIC,
	salary_currency TEXT,
	is_active BOOLEAN NOT NULL DEFAULT true,
	CONSTRAINT jobs_salary_range CHECK (salary_min IS NULL OR salary_max IS NULL OR salary_min <= salary_max)
)`,
	`CREATE INDEX IF NOT EXISTS jobs_posted_at_idx ON jobs (posted_at DESC)`,
}

var requiredColumns = map[string][]string{
	"candidates": {"id", "name", "skills", "experience", "education", "summary"},
	"jobs":       {"id", "title", "company_id", "location", "description", "job_type", "posted_at", "required_skills", "salary_min", "salary_max", "salary_currency", "is_active"},
	"companies":  {"id", "name"},
}

// EnsureSchema creates the tables the repositories read and checks that an
// existing schema carries every column they select.
func EnsureSchema(ctx context.Context, db DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	for table, cols := range requiredColumns {
		if err := EnsureTableColumns(ctx, db, table, cols...); err != nil {
			return err
		}
	}
	return nil
}

func EnsureTableColumns(ctx context.Context, db DB, table string, columns ...string) error {
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
