package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"talent-match/internal/app"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ranked job matches of a candidate as csv or xlsx",
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		candidateID, _ := flags.GetString("candidate")
		format, _ := flags.GetString("format")
		out, _ := flags.GetString("out")
		sortBy, _ := flags.GetString("sort")
		limit, _ := flags.GetInt("limit")
		minScore, _ := flags.GetInt("min-score")
		locale, _ := flags.GetString("locale")

		return runExport(cmd.Context(), exportParams{
			CandidateID: candidateID,
			Format:      format,
			Out:         out,
			SortBy:      sortBy,
			Limit:       limit,
			MinScore:    minScore,
			Locale:      locale,
		})
	},
}

type exportParams struct {
	CandidateID string
	Format      string
	Out         string
	SortBy      string
	Limit       int
	MinScore    int
	Locale      string
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("candidate", "c", "", "candidate id to export matches for")
	exportCmd.Flags().StringP("format", "f", "csv", "export format: csv or xlsx")
	exportCmd.Flags().StringP("out", "o", "", "output file (default is stdout for csv)")
	exportCmd.Flags().String("sort", "score", "sort order: score, date or title")
	exportCmd.Flags().Int("limit", 0, "keep only the top N matches (0 keeps all)")
	exportCmd.Flags().Int("min-score", 0, "drop matches scoring below this value")
	exportCmd.Flags().String("locale", "", "BCP 47 locale for title ordering (default MATCH_LOCALE)")

	_ = exportCmd.MarkFlagRequired("candidate")
}

// writeExport sends body to out, or to stdout when out is empty.
func writeExport(stdout io.Writer, out string, body []byte) error {
	if out == "" {
		_, err := stdout.Write(body)
		return err
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}

func runExport(parent context.Context, p exportParams) error {
	if parent == nil {
		parent = context.Background()
	}

	id, err := uuid.Parse(strings.TrimSpace(p.CandidateID))
	if err != nil {
		return fmt.Errorf("invalid candidate id %q: %w", p.CandidateID, err)
	}
	sortBy, err := matching.ParseSortMode(p.SortBy)
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(p.Format))
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unsupported export format %q", p.Format)
	}
	if format == "xlsx" && p.Out == "" {
		return fmt.Errorf("xlsx export needs --out")
	}
	var locale *language.Tag
	if s := strings.TrimSpace(p.Locale); s != "" {
		tag, err := language.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", p.Locale, err)
		}
		locale = &tag
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	c, err := app.NewContainer(parent, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing dependencies: %w", err)
	}
	defer func() { _ = c.Close() }()

	opts := matching.RankOptions{
		SortBy:   sortBy,
		MinScore: p.MinScore,
		Limit:    p.Limit,
		Locale:   cfg.Matching.Locale,
	}
	if locale != nil {
		opts.Locale = *locale
	}

	matches, err := c.Matching.FindJobsForCandidate(parent, id, opts)
	if err != nil {
		return fmt.Errorf("finding matches: %w", err)
	}

	var body []byte
	if format == "csv" {
		body = []byte(c.Exporter.ToDelimitedText(matches))
	} else {
		body, err = c.Exporter.ToWorkbook(matches)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
	}

	if err := writeExport(os.Stdout, p.Out, body); err != nil {
		return err
	}

	logger.Info("matches exported",
		zap.String("candidate_id", id.String()),
		zap.String("format", format),
		zap.String("out", p.Out),
		zap.Int("count", len(matches)),
	)
	return nil
}
