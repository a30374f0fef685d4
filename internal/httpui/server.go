// Package httpui serves the multi-page survey flow: informed consent, the
// questionnaire, review and declaration, submission, and artifact downloads.
// State lives in per-cookie sessions so a respondent can move between pages
// without losing answers.
package httpui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/components/address"
	"github.com/goliatone/go-surveyform/components/phone"
	"github.com/goliatone/go-surveyform/pkg/component"
	"github.com/goliatone/go-surveyform/pkg/engine"
	"github.com/goliatone/go-surveyform/pkg/model"
	"github.com/goliatone/go-surveyform/pkg/render"
	rendertemplate "github.com/goliatone/go-surveyform/pkg/render/template"
	"github.com/goliatone/go-surveyform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/submit"
	"github.com/goliatone/go-surveyform/pkg/surveys"
)

// Server wires the form engine, renderer, and submission pipeline behind the
// page handlers.
type Server struct {
	engine    *engine.Engine
	spec      model.FormSpec
	form      *html.Renderer
	pages     rendertemplate.TemplateRenderer
	pipeline  *submit.Pipeline
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
	sessions  *Manager
	theme     *theme.Selection

	// devRecipient redirects submission email while dev mode is on.
	devRecipient string
}

// Option customises the server.
type Option func(*Server)

// WithSpec replaces the default investment research survey.
func WithSpec(spec model.FormSpec) Option {
	return func(s *Server) {
		s.spec = spec
	}
}

// WithEngine injects a preconfigured form engine.
func WithEngine(eng *engine.Engine) Option {
	return func(s *Server) {
		s.engine = eng
	}
}

// WithPipeline injects the submission pipeline.
func WithPipeline(p *submit.Pipeline) Option {
	return func(s *Server) {
		s.pipeline = p
	}
}

// WithLogger injects the server logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme selects the design tokens applied to every page.
func WithTheme(sel *theme.Selection) Option {
	return func(s *Server) {
		s.theme = sel
	}
}

// WithDevRecipient sets the address dev mode submissions are mailed to
// instead of the research recipient.
func WithDevRecipient(addr string) Option {
	return func(s *Server) {
		s.devRecipient = addr
	}
}

// New builds a server with the investment research survey, the default
// component registry, and an undispatched pipeline unless options say
// otherwise.
func New(options ...Option) (*Server, error) {
	registry := component.NewRegistry()
	address.Register(registry)
	phone.Register(registry)

	s := &Server{
		engine:    engine.New(engine.WithComponents(registry)),
		spec:      surveys.InvestmentResearch(),
		pipeline:  submit.New(),
		sanitizer: bluemonday.StrictPolicy(),
		logger:    zap.NewNop(),
		sessions:  NewManager(),
		theme:     DefaultTheme(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if err := s.engine.CheckSpec(s.spec); err != nil {
		return nil, fmt.Errorf("httpui: %w", err)
	}

	form, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("httpui: form renderer: %w", err)
	}
	s.form = form

	pages, err := gotemplate.New(
		gotemplate.WithFS(pagesFS()),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("httpui: page templates: %w", err)
	}
	s.pages = pages

	return s, nil
}

// DefaultTheme returns the built-in design tokens.
func DefaultTheme() *theme.Selection {
	return &theme.Selection{
		Theme:   "surveyform",
		Variant: "default",
		Manifest: &theme.Manifest{
			Name:    "surveyform",
			Version: "1.0.0",
			Tokens: map[string]string{
				"brand":        "#1e40af",
				"brand-accent": "#3b82f6",
				"surface":      "#ffffff",
				"text":         "#1f2937",
				"muted":        "#6b7280",
				"danger":       "#ef4444",
				"warn":         "#f59e0b",
			},
		},
	}
}

// Handler returns the routed handler for the whole flow.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /consent", s.handleConsentPage)
	mux.HandleFunc("POST /consent", s.handleConsentSubmit)
	mux.HandleFunc("GET /survey", s.handleSurveyPage)
	mux.HandleFunc("POST /survey", s.handleSurveySubmit)
	mux.HandleFunc("GET /review", s.handleReviewPage)
	mux.HandleFunc("POST /submit", s.handleSubmit)
	mux.HandleFunc("GET /downloads/pdf", s.handleDownloadPDF)
	mux.HandleFunc("GET /downloads/csv", s.handleDownloadCSV)
	mux.HandleFunc("GET /downloads/analytics", s.handleDownloadAnalytics)
	mux.HandleFunc("POST /devmode", s.handleDevMode)
	mux.HandleFunc("POST /reset", s.handleReset)
	return mux
}

func (s *Server) namespace() string {
	return s.spec.ID
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	if sess.Snapshot().ConsentAccepted {
		http.Redirect(w, r, "/survey", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/consent", http.StatusSeeOther)
}

func (s *Server) handleConsentPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	snap := sess.Snapshot()
	s.renderPage(w, "templates/consent.tmpl", map[string]any{
		"title":        s.spec.Title,
		"consent_name": snap.ConsentName,
		"dev_mode":     snap.DevMode,
		"error":        r.URL.Query().Get("error"),
	})
}

func (s *Server) handleConsentSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	name := s.sanitizer.Sanitize(r.PostFormValue("consent_name"))
	accepted := r.PostFormValue("consent_accept") == "yes"
	if !accepted || name == "" {
		http.Redirect(w, r, "/consent?error=consent", http.StatusSeeOther)
		return
	}
	sess.Update(func(s *Session) {
		s.ConsentName = name
		s.ConsentAccepted = true
	})
	s.logger.Info("consent recorded", zap.String("session", sess.ID))
	http.Redirect(w, r, "/survey", http.StatusSeeOther)
}

func (s *Server) handleSurveyPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	if !sess.Snapshot().ConsentAccepted {
		http.Redirect(w, r, "/consent", http.StatusSeeOther)
		return
	}
	s.renderSurvey(w, r, sess, nil)
}

func (s *Server) renderSurvey(w http.ResponseWriter, r *http.Request, sess *Session, errs []model.ValidationError) {
	form, err := s.engine.RenderForm(r.Context(), s.spec, s.namespace(), sess.Store)
	if err != nil {
		s.fail(w, "render form", err)
		return
	}
	page, err := s.form.Render(r.Context(), form, render.Options{
		Action:      "/survey",
		SubmitLabel: "Continue to Review",
		Errors:      errs,
		Theme:       s.theme,
		HiddenFields: map[string]string{
			"intent": "review",
		},
	})
	if err != nil {
		s.fail(w, "render page", err)
		return
	}
	w.Header().Set("Content-Type", s.form.ContentType())
	if len(errs) > 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	w.Write(page)
}

// handleSurveySubmit persists every posted answer into the session store,
// then validates only when the respondent asked to continue. Saving partial
// progress never triggers validation.
func (s *Server) handleSurveySubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	snap := sess.Snapshot()
	if !snap.ConsentAccepted {
		http.Redirect(w, r, "/consent", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form, err := s.engine.RenderForm(r.Context(), s.spec, s.namespace(), sess.Store)
	if err != nil {
		s.fail(w, "render form", err)
		return
	}
	for _, sec := range form.Sections {
		for _, f := range sec.Fields {
			s.persistField(r, sess, f)
		}
	}

	if r.PostFormValue("intent") != "review" {
		http.Redirect(w, r, "/survey", http.StatusSeeOther)
		return
	}

	errs := s.engine.Validate(s.spec, s.namespace(), sess.Store, engine.ValidateOptions{
		DevMode: snap.DevMode,
	})
	if len(errs) > 0 {
		s.renderSurvey(w, r, sess, errs)
		return
	}
	http.Redirect(w, r, "/review", http.StatusSeeOther)
}

func (s *Server) persistField(r *http.Request, sess *Session, f engine.RenderedField) {
	switch f.Kind {
	case model.FieldKindMultiselect:
		sess.Store.SetList(f.StateKey, r.PostForm[f.StateKey])
	case model.FieldKindCheckbox:
		if r.PostFormValue(f.StateKey) != "" {
			sess.Store.Set(f.StateKey, "yes")
		} else {
			sess.Store.Set(f.StateKey, "")
		}
	default:
		sess.Store.Set(f.StateKey, r.PostFormValue(f.StateKey))
	}
}

func (s *Server) handleReviewPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	snap := sess.Snapshot()
	if !snap.ConsentAccepted {
		http.Redirect(w, r, "/consent", http.StatusSeeOther)
		return
	}

	errs := s.engine.Validate(s.spec, s.namespace(), sess.Store, engine.ValidateOptions{
		DevMode: snap.DevMode,
	})
	if len(errs) > 0 {
		s.renderSurvey(w, r, sess, errs)
		return
	}

	form, err := s.engine.RenderForm(r.Context(), s.spec, s.namespace(), sess.Store)
	if err != nil {
		s.fail(w, "render form", err)
		return
	}

	s.renderPage(w, "templates/review.tmpl", map[string]any{
		"title":        s.spec.Title,
		"consent_name": snap.ConsentName,
		"dev_mode":     snap.DevMode,
		"sections":     s.reviewSections(form),
		"error":        r.URL.Query().Get("error"),
	})
}

// reviewSections echoes the stored answers for the review page; free text
// passes through the sanitizer before it is rendered back.
func (s *Server) reviewSections(form engine.RenderedForm) []map[string]any {
	var out []map[string]any
	for _, sec := range form.Sections {
		var rows []map[string]string
		for _, f := range sec.Fields {
			value := f.Value
			if len(f.Values) > 0 {
				value = ""
				for i, v := range f.Values {
					if i > 0 {
						value += "; "
					}
					value += v
				}
			}
			rows = append(rows, map[string]string{
				"label": f.Label,
				"value": s.sanitizer.Sanitize(value),
			})
		}
		out = append(out, map[string]any{
			"title":  sec.Title,
			"fields": rows,
		})
	}
	return out
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	snap := sess.Snapshot()
	if !snap.ConsentAccepted {
		http.Redirect(w, r, "/consent", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if r.PostFormValue("declaration") != "yes" {
		http.Redirect(w, r, "/review?error=declaration", http.StatusSeeOther)
		return
	}
	sess.Update(func(s *Session) { s.DeclarationAccepted = true })

	errs := s.engine.Validate(s.spec, s.namespace(), sess.Store, engine.ValidateOptions{
		DevMode: snap.DevMode,
	})
	if len(errs) > 0 {
		s.renderSurvey(w, r, sess, errs)
		return
	}

	rec, err := s.engine.Serialize(s.spec, s.namespace(), sess.Store)
	if err != nil {
		s.fail(w, "serialize answers", err)
		return
	}

	req := submit.Request{
		Record:   rec,
		SignedBy: snap.ConsentName,
	}
	if snap.DevMode && s.devRecipient != "" {
		req.RecipientOverride = s.devRecipient
	}
	if s.spec.ID == surveys.InvestmentResearchID {
		analytics, err := surveys.AnalyticsCSV(rec, time.Now())
		if err != nil {
			s.fail(w, "analytics export", err)
			return
		}
		req.ExtraCSV = analytics
	}

	artifacts, err := s.pipeline.Submit(r.Context(), req)
	if err != nil && !errors.Is(err, submit.ErrEmailDispatch) {
		s.fail(w, "submit", err)
		return
	}
	if artifacts == nil {
		s.fail(w, "submit", errors.New("no artifacts produced"))
		return
	}

	dispatchErr := ""
	if err != nil {
		dispatchErr = err.Error()
	}
	sess.Update(func(st *Session) {
		st.Artifacts = artifacts
		st.Analytics = req.ExtraCSV
		if len(req.ExtraCSV) > 0 {
			st.AnalyticsName = strings.TrimSuffix(artifacts.CSVName, ".csv") + "_analytics.csv"
		}
		st.DispatchError = dispatchErr
	})

	s.logger.Info("submission handled",
		zap.String("session", sess.ID),
		zap.String("reference", artifacts.Reference),
		zap.Bool("dispatched", artifacts.Dispatched),
	)

	s.renderPage(w, "templates/done.tmpl", map[string]any{
		"title":          s.spec.Title,
		"reference":      artifacts.Reference,
		"dispatched":     artifacts.Dispatched,
		"dispatch_error": dispatchErr,
		"pdf_name":       artifacts.PDFName,
		"csv_name":       artifacts.CSVName,
		"has_analytics":  len(req.ExtraCSV) > 0,
	})
}

func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	snap := s.sessions.Get(w, r).Snapshot()
	if snap.Artifacts == nil {
		http.NotFound(w, r)
		return
	}
	serveAttachment(w, snap.Artifacts.PDFName, "application/pdf", snap.Artifacts.PDF)
}

func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	snap := s.sessions.Get(w, r).Snapshot()
	if snap.Artifacts == nil {
		http.NotFound(w, r)
		return
	}
	serveAttachment(w, snap.Artifacts.CSVName, "text/csv", snap.Artifacts.CSV)
}

func (s *Server) handleDownloadAnalytics(w http.ResponseWriter, r *http.Request) {
	snap := s.sessions.Get(w, r).Snapshot()
	if len(snap.Analytics) == 0 {
		http.NotFound(w, r)
		return
	}
	serveAttachment(w, snap.AnalyticsName, "text/csv", snap.Analytics)
}

func (s *Server) handleDevMode(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	enabled := r.PostFormValue("enabled") == "yes"
	sess.Update(func(s *Session) { s.DevMode = enabled })
	s.logger.Info("dev mode toggled",
		zap.String("session", sess.ID),
		zap.Bool("enabled", enabled),
	)
	// Only the known pages are valid redirect targets; anything else would
	// let a crafted form bounce the respondent off-site.
	back := r.PostFormValue("back")
	switch back {
	case "/consent", "/survey", "/review":
	default:
		back = "/survey"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(w, r)
	s.sessions.Reset(sess)
	s.logger.Info("session reset", zap.String("session", sess.ID))
	http.Redirect(w, r, "/consent", http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data map[string]any) {
	data["tokens"] = s.themeTokens()
	page, err := s.pages.Render(name, data)
	if err != nil {
		s.fail(w, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

func (s *Server) themeTokens() map[string]string {
	opts := render.Options{Theme: s.theme}
	return opts.ThemeTokens()
}

func (s *Server) fail(w http.ResponseWriter, action string, err error) {
	s.logger.Error(action, zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func serveAttachment(w http.ResponseWriter, name, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(body)
}
