package httpui_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-surveyform/internal/httpui"
	"github.com/goliatone/go-surveyform/pkg/mailer"
	"github.com/goliatone/go-surveyform/pkg/session"
	"github.com/goliatone/go-surveyform/pkg/submit"
)

type recordingDispatcher struct {
	messages []mailer.Message
	err      error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, msg mailer.Message) error {
	d.messages = append(d.messages, msg)
	return d.err
}

// flow drives the handler while carrying the session cookie between requests.
type flow struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newFlow(t *testing.T, dispatcher mailer.Dispatcher) (*flow, *httpui.Server) {
	t.Helper()
	var options []submit.Option
	if dispatcher != nil {
		options = append(options, submit.WithDispatcher(dispatcher))
	}
	server, err := httpui.New(
		httpui.WithPipeline(submit.New(options...)),
		httpui.WithDevRecipient("dev@example.com"),
	)
	require.NoError(t, err)
	return &flow{t: t, handler: server.Handler()}, server
}

func (f *flow) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	f.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	if f.cookie == nil {
		for _, c := range rr.Result().Cookies() {
			if c.Name == "surveyform_session" {
				f.cookie = c
			}
		}
	}
	return rr
}

func (f *flow) consent(name string) {
	f.t.Helper()
	rr := f.do(http.MethodPost, "/consent", url.Values{
		"consent_name":   {name},
		"consent_accept": {"yes"},
	})
	require.Equal(f.t, http.StatusSeeOther, rr.Code)
	require.Equal(f.t, "/survey", rr.Header().Get("Location"))
}

// completeAnswers covers every required question of the built-in survey.
func completeAnswers() url.Values {
	ns := "investment_research"
	form := url.Values{"intent": {"review"}}
	form.Set(session.Key(ns, "investment_experience_years"), "3-5 years")
	form.Set(session.Key(ns, "investment_proficiency"), "Competent (Solid understanding, independent decision-making)")
	form.Set(session.Key(ns, "investment_frequency"), "Monthly")
	form.Set(session.Key(ns, "portfolio_complexity"), "Moderate diversification (4-5 asset classes)")
	for _, key := range []string{
		"prescriptive_structured", "human_explanations", "complexity_components",
		"causality_differentiation", "mechanisms_verification", "justification_metrics",
		"boundary_understanding",
	} {
		form.Set(session.Key(ns, key), "4 - Agree")
	}
	form.Set(session.Key(ns, "trust_insights"), "5 - Completely Trustworthy")
	form.Set(session.Key(ns, "trust_improvements"), "More charts, please.")
	return form
}

func TestFlowRedirectsToConsentFirst(t *testing.T) {
	f, _ := newFlow(t, &recordingDispatcher{})

	rr := f.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/consent", rr.Header().Get("Location"))

	rr = f.do(http.MethodGet, "/survey", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/consent", rr.Header().Get("Location"))
}

func TestFlowConsentRequiresNameAndAcceptance(t *testing.T) {
	f, _ := newFlow(t, &recordingDispatcher{})

	rr := f.do(http.MethodPost, "/consent", url.Values{"consent_name": {"Jane"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "error=consent")

	rr = f.do(http.MethodPost, "/consent", url.Values{"consent_accept": {"yes"}})
	assert.Contains(t, rr.Header().Get("Location"), "error=consent")
}

func TestFlowSurveyPageRendersForm(t *testing.T) {
	f, _ := newFlow(t, &recordingDispatcher{})
	f.consent("Jane Respondent")

	rr := f.do(http.MethodGet, "/survey", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Investment Decision-Making Research Survey")
	assert.Contains(t, body, "Prescriptive Knowledge")
	assert.Contains(t, body, "5 - Strongly Agree")
}

func TestFlowValidationCollectsAllErrors(t *testing.T) {
	f, _ := newFlow(t, &recordingDispatcher{})
	f.consent("Jane Respondent")

	rr := f.do(http.MethodPost, "/survey", url.Values{"intent": {"review"}})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := rr.Body.String()
	// every required question is reported at once
	assert.Contains(t, body, "is required")
	assert.Contains(t, body, "Would you trust insights provided")
}

func TestFlowSavingPartialProgressSkipsValidation(t *testing.T) {
	f, _ := newFlow(t, &recordingDispatcher{})
	f.consent("Jane Respondent")

	form := url.Values{}
	form.Set(session.Key("investment_research", "investment_frequency"), "Monthly")
	rr := f.do(http.MethodPost, "/survey", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/survey", rr.Header().Get("Location"))

	rr = f.do(http.MethodGet, "/survey", nil)
	assert.Contains(t, rr.Body.String(), `value="Monthly"`)
}

func TestFlowFullSubmission(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	f, _ := newFlow(t, dispatcher)
	f.consent("Jane Respondent")

	rr := f.do(http.MethodPost, "/survey", completeAnswers())
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/review", rr.Header().Get("Location"))

	rr = f.do(http.MethodGet, "/review", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Review &amp; Submit")
	assert.Contains(t, body, "More charts, please.")
	assert.Contains(t, body, "Jane Respondent")

	// declaration is mandatory
	rr = f.do(http.MethodPost, "/submit", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "error=declaration")

	rr = f.do(http.MethodPost, "/submit", url.Values{"declaration": {"yes"}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Thank you for your participation")

	require.Len(t, dispatcher.messages, 1)
	msg := dispatcher.messages[0]
	assert.Contains(t, msg.Body, "Informed Consent Signed By: Jane Respondent")
	// PDF + CSV + analytics CSV for the built-in survey
	assert.Len(t, msg.Attachments, 3)

	rr = f.do(http.MethodGet, "/downloads/pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))

	rr = f.do(http.MethodGet, "/downloads/csv", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Section,Record #,Field,Value")

	rr = f.do(http.MethodGet, "/downloads/analytics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "question_id,response_text,likert_response")
}

func TestFlowDispatchFailureKeepsDownloads(t *testing.T) {
	dispatcher := &recordingDispatcher{err: errors.New("535 authentication failed")}
	f, _ := newFlow(t, dispatcher)
	f.consent("Jane Respondent")

	f.do(http.MethodPost, "/survey", completeAnswers())
	rr := f.do(http.MethodPost, "/submit", url.Values{"declaration": {"yes"}})
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "email failed")
	assert.Contains(t, body, "download the files below")

	rr = f.do(http.MethodGet, "/downloads/pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.Bytes())
}

func TestFlowDevModeBypassesValidation(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	f, _ := newFlow(t, dispatcher)
	f.consent("Jane Respondent")

	rr := f.do(http.MethodPost, "/devmode", url.Values{"enabled": {"yes"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	// no answers at all, straight to submit
	rr = f.do(http.MethodPost, "/submit", url.Values{"declaration": {"yes"}})
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, "dev@example.com", dispatcher.messages[0].Recipient)
}

func TestFlowDevModeRedirectStaysOnSite(t *testing.T) {
	f, _ := newFlow(t, &recordingDispatcher{})
	f.consent("Jane Respondent")

	rr := f.do(http.MethodPost, "/devmode", url.Values{
		"enabled": {"yes"},
		"back":    {"https://evil.example.com/"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/survey", rr.Header().Get("Location"))

	rr = f.do(http.MethodPost, "/devmode", url.Values{
		"enabled": {"no"},
		"back":    {"/review"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/review", rr.Header().Get("Location"))
}

func TestFlowDownloadsMissingBeforeSubmission(t *testing.T) {
	f, _ := newFlow(t, &recordingDispatcher{})
	f.consent("Jane Respondent")

	rr := f.do(http.MethodGet, "/downloads/pdf", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFlowResetClearsAnswers(t *testing.T) {
	f, _ := newFlow(t, &recordingDispatcher{})
	f.consent("Jane Respondent")

	form := url.Values{}
	form.Set(session.Key("investment_research", "investment_frequency"), "Monthly")
	f.do(http.MethodPost, "/survey", form)

	rr := f.do(http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/consent", rr.Header().Get("Location"))

	// consent gates the survey again after reset
	rr = f.do(http.MethodGet, "/survey", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}
