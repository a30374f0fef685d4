package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/internal/httpui"
	"github.com/goliatone/go-surveyform/pkg/mailer"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/specfile"
	"github.com/goliatone/go-surveyform/pkg/submit"
	"github.com/goliatone/go-surveyform/pkg/surveys"
)

var (
	serveAddr    string
	devRecipient string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web survey flow",
	Long: `Starts the HTTP server with the full respondent flow: informed
consent, the questionnaire, review and declaration, and submission.

Email credentials are read from SURVEYFORM_EMAIL_ADDRESS and
SURVEYFORM_EMAIL_APP_PASSWORD; without them submissions still generate
the PDF and CSV exports but dispatch is reported as failed and the
files stay downloadable.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8501", "listen address")
	serveCmd.Flags().StringVar(&devRecipient, "dev-recipient", "", "recipient override used while dev mode is on")
}

func runServe(cmd *cobra.Command, args []string) error {
	spec, err := resolveSpec()
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(logger)
	if err != nil {
		return err
	}

	server, err := httpui.New(
		httpui.WithSpec(spec),
		httpui.WithPipeline(pipeline),
		httpui.WithLogger(logger),
		httpui.WithDevRecipient(devRecipient),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", serveAddr), zap.String("survey", spec.ID))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func resolveSpec() (model.FormSpec, error) {
	if specPath == "" {
		return surveys.InvestmentResearch(), nil
	}
	return specfile.LoadFile(specPath)
}

// buildPipeline wires the SMTP dispatcher when email credentials are present
// in the environment, and leaves the pipeline undispatched otherwise so
// exports are still produced.
func buildPipeline(logger *zap.Logger) (*submit.Pipeline, error) {
	cfg, err := mailer.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("mail config: %w", err)
	}
	options := []submit.Option{submit.WithLogger(logger)}
	if err := cfg.Validate(); err != nil {
		logger.Warn("email dispatch disabled", zap.Error(err))
	} else {
		dispatcher, err := mailer.NewSMTPDispatcher(cfg)
		if err != nil {
			return nil, fmt.Errorf("smtp dispatcher: %w", err)
		}
		options = append(options, submit.WithDispatcher(dispatcher))
	}
	return submit.New(options...), nil
}
