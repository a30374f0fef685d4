// Package submit runs the post-validation pipeline: build the PDF and CSV
// exports for a serialized record, then email them to the research recipient.
// Dispatch failure never discards the exports; they stay available for
// manual download and the user can retry.
package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/export"
	"github.com/goliatone/go-surveyform/pkg/mailer"
)

var (
	// ErrExportGeneration flags a PDF or CSV build failure.
	ErrExportGeneration = errors.New("submit: export generation failed")
	// ErrEmailDispatch flags a network or credential failure sending mail.
	// When returned, the accompanying Artifacts are still valid.
	ErrEmailDispatch = errors.New("submit: email dispatch failed")
)

// Artifacts holds everything a submission produced. The exports stay
// available even when dispatch fails.
type Artifacts struct {
	Reference   string
	GeneratedAt time.Time
	PDFName     string
	PDF         []byte
	CSVName     string
	CSV         []byte
	Dispatched  bool
}

// Request carries the per-submission inputs alongside the record.
type Request struct {
	Record engine.Record
	// SignedBy is the declaration signer named in the email body.
	SignedBy string
	// RecipientOverride redirects the email; only honored in dev mode flows.
	RecipientOverride string
	// ExtraCSV optionally attaches a second, survey-specific CSV (for
	// example the investment research analytics export).
	ExtraCSV     []byte
	ExtraCSVName string
}

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithDispatcher injects the email dispatcher.
func WithDispatcher(d mailer.Dispatcher) Option {
	return func(p *Pipeline) {
		p.dispatcher = d
	}
}

// WithLogger injects a zap logger; a nop logger is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock overrides the time source, for deterministic artifacts in tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithReference overrides the reference generator, for deterministic tests.
func WithReference(ref func() string) Option {
	return func(p *Pipeline) {
		if ref != nil {
			p.newRef = ref
		}
	}
}

// Pipeline consumes serialized records and produces dispatched submissions.
type Pipeline struct {
	dispatcher mailer.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
	newRef     func() string
}

// New constructs a Pipeline applying any provided options. A pipeline without
// a dispatcher still generates artifacts and reports ErrEmailDispatch.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		logger: zap.NewNop(),
		now:    time.Now,
		newRef: func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Submit builds the exports and dispatches the email. On dispatch failure the
// artifacts are returned together with an error wrapping ErrEmailDispatch so
// the caller can offer manual downloads and a retry.
func (p *Pipeline) Submit(ctx context.Context, req Request) (*Artifacts, error) {
	if ctx == nil {
		return nil, errors.New("submit: context is required")
	}
	if len(req.Record.Tuples) == 0 {
		return nil, errors.New("submit: record has no answers")
	}

	generated := p.now()
	reference := p.newRef()
	base := export.BaseFilename(req.Record.Title, generated)

	csvBytes, err := export.CSV(req.Record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportGeneration, err)
	}
	pdfBytes, err := export.PDF(req.Record, export.PDFOptions{
		Reference:   reference,
		GeneratedAt: generated,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportGeneration, err)
	}

	artifacts := &Artifacts{
		Reference:   reference,
		GeneratedAt: generated,
		PDFName:     base + ".pdf",
		PDF:         pdfBytes,
		CSVName:     base + ".csv",
		CSV:         csvBytes,
	}

	p.logger.Info("submission exports generated",
		zap.String("form", req.Record.FormID),
		zap.String("reference", reference),
		zap.Int("tuples", len(req.Record.Tuples)),
	)

	msg := mailer.Message{
		Subject:   fmt.Sprintf("New Survey Submission: %s", req.Record.Title),
		Body:      emailBody(req, reference, generated),
		Recipient: req.RecipientOverride,
		Attachments: []mailer.Attachment{
			{Filename: artifacts.PDFName, Body: pdfBytes},
			{Filename: artifacts.CSVName, Body: csvBytes},
		},
	}
	if len(req.ExtraCSV) > 0 {
		name := req.ExtraCSVName
		if name == "" {
			name = base + "_analytics.csv"
		}
		msg.Attachments = append(msg.Attachments, mailer.Attachment{Filename: name, Body: req.ExtraCSV})
	}

	if p.dispatcher == nil {
		return artifacts, fmt.Errorf("%w: no dispatcher configured", ErrEmailDispatch)
	}
	if err := p.dispatcher.Dispatch(ctx, msg); err != nil {
		p.logger.Warn("submission email failed",
			zap.String("reference", reference),
			zap.Error(err),
		)
		return artifacts, fmt.Errorf("%w: %v", ErrEmailDispatch, err)
	}

	artifacts.Dispatched = true
	p.logger.Info("submission email dispatched", zap.String("reference", reference))
	return artifacts, nil
}

func emailBody(req Request, reference string, generated time.Time) string {
	signer := req.SignedBy
	if signer == "" {
		signer = "Anonymous"
	}
	body := "A new survey has been submitted for review.\n\n"
	body += "Survey Details:\n"
	body += fmt.Sprintf("- Survey Type: %s\n", req.Record.Title)
	body += fmt.Sprintf("- Informed Consent Signed By: %s\n", signer)
	body += fmt.Sprintf("- Submission Date: %s\n", generated.Format("2006-01-02 15:04:05"))
	body += fmt.Sprintf("- Reference: %s\n\n", reference)
	body += "Please find the complete survey response attached as a PDF.\n"
	body += "A CSV data file is also attached for data processing.\n\n"
	body += "Regards,\nResearch Survey System"
	return body
}
