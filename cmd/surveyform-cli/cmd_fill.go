package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/components/address"
	"github.com/goliatone/go-surveyform/components/phone"
	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
	"github.com/goliatone/go-surveyform/pkg/session"
	"github.com/goliatone/go-surveyform/pkg/submit"
	"github.com/goliatone/go-surveyform/pkg/surveys"
)

var (
	fillDevMode bool
	fillOutDir  string
	fillNoEmail bool
	fillSigner  string
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a survey from the terminal",
	Long: `Walks through the survey questions interactively, validates the
answers, and produces the same PDF and CSV exports as the web flow.
Exports are written to --out; when email credentials are configured the
submission is also dispatched unless --no-email is set.`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().BoolVar(&fillDevMode, "dev", false, "skip validation (testing only)")
	fillCmd.Flags().StringVar(&fillOutDir, "out", ".", "directory for the generated exports")
	fillCmd.Flags().BoolVar(&fillNoEmail, "no-email", false, "never dispatch email, only write exports")
	fillCmd.Flags().StringVar(&fillSigner, "signed-by", "", "declaration signer named in the submission")
}

func runFill(cmd *cobra.Command, args []string) error {
	spec, err := resolveSpec()
	if err != nil {
		return err
	}

	registry := component.NewRegistry()
	address.Register(registry)
	phone.Register(registry)
	eng := engine.New(engine.WithComponents(registry))
	if err := eng.CheckSpec(spec); err != nil {
		return err
	}

	filler, err := tui.NewFiller(eng, tui.NewSurveyDriver())
	if err != nil {
		return err
	}

	store := session.NewStore()
	ns := spec.ID
	err = filler.Fill(cmd.Context(), spec, ns, store, tui.FillOptions{DevMode: fillDevMode})
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted, answers discarded.")
		return nil
	}
	if err != nil {
		return err
	}

	rec, err := eng.Serialize(spec, ns, store)
	if err != nil {
		return err
	}

	var pipeline *submit.Pipeline
	if fillNoEmail {
		pipeline = submit.New(submit.WithLogger(logger))
	} else {
		pipeline, err = buildPipeline(logger)
		if err != nil {
			return err
		}
	}

	req := submit.Request{Record: rec, SignedBy: fillSigner}
	if spec.ID == surveys.InvestmentResearchID {
		analytics, aerr := surveys.AnalyticsCSV(rec, time.Now())
		if aerr != nil {
			return aerr
		}
		req.ExtraCSV = analytics
	}

	artifacts, err := pipeline.Submit(cmd.Context(), req)
	if err != nil && !errors.Is(err, submit.ErrEmailDispatch) {
		return err
	}
	dispatchErr := err

	if werr := writeArtifacts(artifacts, req.ExtraCSV); werr != nil {
		return werr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reference: %s\n", artifacts.Reference)
	if artifacts.Dispatched {
		fmt.Fprintln(cmd.OutOrStdout(), "Submission emailed to the research team.")
	} else if !fillNoEmail {
		logger.Warn("email dispatch failed, exports kept", zap.Error(dispatchErr))
		fmt.Fprintln(cmd.OutOrStdout(), "Email dispatch failed; exports were written locally.")
	}
	return nil
}

func writeArtifacts(artifacts *submit.Artifacts, analytics []byte) error {
	if err := os.MkdirAll(fillOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	files := map[string][]byte{
		artifacts.PDFName: artifacts.PDF,
		artifacts.CSVName: artifacts.CSV,
	}
	if len(analytics) > 0 {
		name := strings.TrimSuffix(artifacts.CSVName, ".csv") + "_analytics.csv"
		files[name] = analytics
	}
	for name, body := range files {
		path := filepath.Join(fillOutDir, name)
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
