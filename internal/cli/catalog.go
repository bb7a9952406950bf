package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizpractice/backend/internal/app"
	"github.com/quizpractice/backend/internal/catalog"
	"github.com/quizpractice/backend/internal/domain/question"
	"github.com/quizpractice/backend/internal/domain/questionbank"
	"github.com/quizpractice/backend/internal/grader"
	"github.com/quizpractice/backend/internal/service"
	"github.com/quizpractice/backend/internal/store"
)

// errCatalogInvalid makes validate exit non-zero after printing its report.
var errCatalogInvalid = errors.New("catalog has problems")

func newTopicsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List topics with question counts per difficulty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			p := opts.printer(cmd.OutOrStdout())
			for _, t := range a.Sessions.Topics() {
				total, err := a.Questions.Count(t, "")
				if err != nil {
					return err
				}
				p.title("%s (%d)", t, total)
				for _, d := range a.Sessions.Difficulties() {
					n, err := a.Questions.Count(t, d)
					if err != nil {
						return err
					}
					if n > 0 {
						p.line("  %-8s %d", d, n)
					}
				}
			}
			return nil
		},
	}
}

func newDifficultiesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "difficulties",
		Short: "List difficulty levels present in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			p := opts.printer(cmd.OutOrStdout())
			for _, d := range a.Sessions.Difficulties() {
				p.line("%s", d)
			}
			return nil
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check catalog files or the catalog database and report every problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			p := opts.printer(cmd.OutOrStdout())
			problems := 0

			var qs []question.Question
			if cfg.CatalogDSN != "" {
				logger := slog.New(slog.DiscardHandler)
				if qs, err = app.LoadQuestions(cmd.Context(), cfg, logger); err != nil {
					return err
				}
				p.title("%s: %d questions", cfg.CatalogDSN, len(qs))
			} else {
				for _, path := range cfg.CatalogPaths {
					res, err := catalog.LoadFile(path)
					p.title("%s: %d questions, %d skipped", path, len(res.Questions), len(res.Skipped))
					for _, s := range res.Skipped {
						p.incorrect("  %s", s)
					}
					problems += len(res.Skipped)
					if err != nil {
						p.incorrect("  %v", err)
						problems++
					}
					qs = append(qs, res.Questions...)
				}
			}

			bank, err := questionbank.NewFromQuestions(qs)
			if err != nil {
				p.incorrect("%v", err)
				return errCatalogInvalid
			}
			report := service.NewQuestionService(bank, grader.ExactGrader{}).Audit()
			for _, v := range report.Violations {
				p.incorrect("  %s", v)
			}
			problems += len(report.Violations)

			p.line("%d questions across %d topics and %d difficulties", report.TotalQuestions, len(report.Topics), len(report.Difficulties))
			if problems > 0 {
				return fmt.Errorf("%w: %d problems", errCatalogInvalid, problems)
			}
			p.correct("Catalog is valid")
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		topic      string
		difficulty string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			qs, err := a.Questions.Export(question.Topic(topic), question.Difficulty(difficulty))
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return catalog.WriteJSON(cmd.OutOrStdout(), qs, time.Now())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := catalog.WriteJSON(f, qs, time.Now()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			opts.printer(cmd.OutOrStdout()).correct("Exported %d questions to %s", len(qs), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Only this topic")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "Only this difficulty")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load catalog files into a SQLite catalog database",
		Long: `Load the catalog files into a SQLite database, replacing what it held.
Serve from it afterwards with --dsn sqlite://<path>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			qs, err := catalog.NewLoader(cfg.CatalogWorkers, opts.terminalLogger(cmd)).LoadAll(cmd.Context(), cfg.CatalogPaths)
			if err != nil {
				return err
			}

			db, err := store.NewSQLite(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.SaveQuestions(cmd.Context(), qs); err != nil {
				return fmt.Errorf("save questions: %w", err)
			}
			n, err := db.CountQuestions(cmd.Context())
			if err != nil {
				return err
			}
			opts.printer(cmd.OutOrStdout()).correct("Imported %d questions into %s", n, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "quiz.db", "SQLite database file to write")
	return cmd
}
