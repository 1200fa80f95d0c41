package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	specialistx "github.com/tanpawarit/Recruitment-Dispatcher/agent/agents/specialist"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/knowledge"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
	toolx "github.com/tanpawarit/Recruitment-Dispatcher/agent/tool"
)

type fakeGenerator struct {
	text  string
	err   error
	calls atomic.Int32
}

func (f *fakeGenerator) Generate(ctx context.Context, req contractx.GenerateRequest) (string, error) {
	f.calls.Add(1)
	return f.text, f.err
}

type fakeHandler struct {
	result contractx.HandlerResult
	err    error
	calls  atomic.Int32
	last   contractx.RequestContext
}

func (f *fakeHandler) Handle(ctx context.Context, req contractx.RequestContext) (contractx.HandlerResult, error) {
	f.calls.Add(1)
	f.last = req
	return f.result, f.err
}

type fakeRegistry struct {
	assessment contractx.Handler
	interview  contractx.Handler
}

func (f *fakeRegistry) Assessment() contractx.Handler {
	return f.assessment
}

func (f *fakeRegistry) Interview() contractx.Handler {
	return f.interview
}

func newTestDispatcher(t *testing.T, store *knowledge.Store, gen contractx.TextGenerator, obs contractx.Observer) *Dispatcher {
	t.Helper()

	tools := toolx.New(store, gen, obs, toolx.Options{ExternalTimeout: 100 * time.Millisecond})
	d, err := New(store, specialistx.NewRegistry(tools, obs), obs, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func assertContains(t *testing.T, message string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(message, want) {
			t.Fatalf("message missing %q:\n%s", want, message)
		}
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, &fakeRegistry{}, nil, Config{}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := New(knowledge.Default(), nil, nil, Config{}); err == nil {
		t.Fatal("expected error for nil registry")
	}
}

func TestDispatchAssessmentScenario(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, knowledge.Default(), nil, nil)
	msg, err := d.Dispatch(context.Background(), Request{
		CandidateName:    "Sarah Johnson",
		CandidateContact: "sarah@example.com",
		Status:           "Assessment",
		JobID:            "J123",
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	assertContains(t, msg, "Sarah Johnson", "Python Developer", "https://assess.example.com/python", "60 minutes")
}

func TestDispatchLowercaseAssessment(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, knowledge.Default(), nil, nil)
	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:    "Mike Chen",
		CandidateContact: "+66 81 234 5678",
		Status:           "assessment",
		JobID:            "J456",
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	if result.Metadata.Handler != contractx.HandlerAssessment {
		t.Fatalf("expected assessment handler, got %s", result.Metadata.Handler)
	}
	assertContains(t, result.Message, "Data Analyst", "https://assess.example.com/data")
	if result.Metadata.Link != "https://assess.example.com/data" {
		t.Fatalf("unexpected link metadata: %s", result.Metadata.Link)
	}
}

func TestDispatchUnknownJobUsesGenericPosting(t *testing.T) {
	t.Parallel()

	rec := &observe.Recorder{}
	d := newTestDispatcher(t, knowledge.Default(), nil, rec)
	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:    "Alex Rivera",
		CandidateContact: "alex@example.com",
		Status:           "Interview",
		JobID:            "UNKNOWN",
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	assertContains(t, result.Message, "Software Engineer", toolx.GenericPrepMessage, toolx.NoTipsFoundMessage)
	if result.Metadata.TipSource != contractx.TipSourceGeneric {
		t.Fatalf("unexpected tip source: %s", result.Metadata.TipSource)
	}
	if len(rec.Named("dispatch.job_not_found")) != 1 {
		t.Fatalf("expected job_not_found event, got %+v", rec.Events())
	}
}

func TestDispatchUnknownJobAssessmentUsesGenericLink(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, knowledge.Default(), nil, nil)
	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:    "Alex Rivera",
		CandidateContact: "alex@example.com",
		Status:           "ASSESSMENT",
		JobID:            "J999",
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	if result.Metadata.Link != knowledge.DefaultGenericLink {
		t.Fatalf("expected generic link, got %s", result.Metadata.Link)
	}
	assertContains(t, result.Message, "Software Engineer", knowledge.DefaultGenericLink)
}

func TestDispatchInterviewSQLDescription(t *testing.T) {
	t.Parallel()

	store := knowledge.MustNew(knowledge.Catalog{
		Jobs: []contractx.JobPosting{{
			ID:          "J900",
			Title:       "BI Analyst",
			Description: "BI Analyst role requiring SQL, Tableau dashboards and stakeholder reporting.",
		}},
		Tips: knowledge.Default().Tips(),
	})
	d := newTestDispatcher(t, store, nil, nil)

	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:    "Priya Patel",
		CandidateContact: "priya@example.com",
		Status:           "Interview",
		JobID:            "J900",
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	sqlTip, _ := store.Tip("sql")
	if result.Metadata.Tip != sqlTip {
		t.Fatalf("expected sql tip, got %q", result.Metadata.Tip)
	}
	assertContains(t, result.Message, sqlTip, "BI Analyst: BI Analyst role requiring SQL")
}

func TestDispatchStockDataAnalystPrefersPythonTip(t *testing.T) {
	t.Parallel()

	store := knowledge.Default()
	d := newTestDispatcher(t, store, nil, nil)

	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:    "Mike Chen",
		CandidateContact: "mike@example.com",
		Status:           "Interview",
		JobID:            "J456",
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	pythonTip, _ := store.Tip("python")
	if result.Metadata.Tip != pythonTip {
		t.Fatalf("python is scanned before sql, got %q", result.Metadata.Tip)
	}
}

func TestDispatchExternalGenerator(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{text: "Walk through a FastAPI dependency graph you designed."}
	d := newTestDispatcher(t, knowledge.Default(), gen, nil)

	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:        "Sarah Johnson",
		CandidateContact:     "sarah@example.com",
		Status:               "Interview",
		JobID:                "J123",
		UseExternalGenerator: true,
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	if result.Metadata.TipSource != contractx.TipSourceExternal || result.Metadata.Tip != gen.text {
		t.Fatalf("unexpected tip metadata: %+v", result.Metadata)
	}
	if gen.calls.Load() != 1 {
		t.Fatalf("expected one generator call, got %d", gen.calls.Load())
	}
}

func TestDispatchExternalFailureFallsBack(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("401 unauthorized")}
	rec := &observe.Recorder{}
	d := newTestDispatcher(t, knowledge.Default(), gen, rec)

	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:        "Sarah Johnson",
		CandidateContact:     "sarah@example.com",
		Status:               "Interview",
		JobID:                "J101",
		UseExternalGenerator: true,
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	if result.Metadata.TipSource != contractx.TipSourceKeyword {
		t.Fatalf("expected keyword fallback, got %s", result.Metadata.TipSource)
	}
	assertContains(t, result.Message, "StatefulSets")
	if len(rec.Named("tool.external_failed")) != 1 {
		t.Fatalf("expected external_failed event, got %+v", rec.Events())
	}
}

func TestRoute(t *testing.T) {
	t.Parallel()

	cases := map[string]contractx.HandlerID{
		"Assessment":   contractx.HandlerAssessment,
		"assessment":   contractx.HandlerAssessment,
		"ASSESSMENT":   contractx.HandlerAssessment,
		" assessment ": contractx.HandlerAssessment,
		"Interview":    contractx.HandlerInterview,
		"INTERVIEW":    contractx.HandlerInterview,
		"offer":        contractx.HandlerInterview,
		"":             contractx.HandlerInterview,
		"assessments":  contractx.HandlerInterview,
	}
	for status, want := range cases {
		if got := Route(status); got != want {
			t.Fatalf("Route(%q) = %s, want %s", status, got, want)
		}
	}
}

func TestDispatchUnrecognizedStatusRoutesToInterview(t *testing.T) {
	t.Parallel()

	assessment := &fakeHandler{}
	interview := &fakeHandler{result: contractx.HandlerResult{Message: "interview message"}}
	d, err := New(knowledge.Default(), &fakeRegistry{assessment: assessment, interview: interview}, nil, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:    "Sarah Johnson",
		CandidateContact: "sarah@example.com",
		Status:           "offer",
		JobID:            "J789",
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	if assessment.calls.Load() != 0 || interview.calls.Load() != 1 {
		t.Fatalf("unexpected handler calls: assessment=%d interview=%d", assessment.calls.Load(), interview.calls.Load())
	}
	if result.Metadata.Handler != contractx.HandlerInterview {
		t.Fatalf("handler metadata must be filled in, got %q", result.Metadata.Handler)
	}
	if interview.last.JobTitle != "Frontend Developer" || interview.last.Status != contractx.StatusInterview {
		t.Fatalf("unexpected request context: %+v", interview.last)
	}
}

func TestDispatchInvalidInput(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, knowledge.Default(), nil, nil)

	_, err := d.Dispatch(context.Background(), Request{CandidateName: "  ", CandidateContact: "x@example.com", Status: "Interview"})
	if !errors.Is(err, ErrInvalidCandidate) || !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrInvalidCandidate, got %v", err)
	}

	_, err = d.Dispatch(context.Background(), Request{CandidateName: "Sarah", Status: "Interview"})
	if !errors.Is(err, ErrInvalidContact) {
		t.Fatalf("expected ErrInvalidContact, got %v", err)
	}
}

func TestDispatchHandlerErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := fmt.Errorf("%w: template broke", contractx.ErrValidation)
	d, err := New(knowledge.Default(), &fakeRegistry{
		assessment: &fakeHandler{err: boom},
		interview:  &fakeHandler{},
	}, nil, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = d.Dispatch(context.Background(), Request{CandidateName: "A", CandidateContact: "B", Status: "Assessment"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestDispatchEmptyMessageIsRejected(t *testing.T) {
	t.Parallel()

	d, err := New(knowledge.Default(), &fakeRegistry{
		assessment: &fakeHandler{},
		interview:  &fakeHandler{result: contractx.HandlerResult{Message: "   "}},
	}, nil, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = d.Dispatch(context.Background(), Request{CandidateName: "A", CandidateContact: "B", Status: "Interview"})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDispatchIsIdempotent(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, knowledge.Default(), nil, nil)
	req := Request{
		CandidateName:    "Sarah Johnson",
		CandidateContact: "sarah@example.com",
		Status:           "Interview",
		JobID:            "J789",
	}

	first, err := d.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("first Dispatch() error = %v", err)
	}
	second, err := d.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("second Dispatch() error = %v", err)
	}
	if first != second {
		t.Fatalf("dispatch must be deterministic without the external generator:\n%s\n---\n%s", first, second)
	}
}

func TestDispatchEmitsLifecycleEvents(t *testing.T) {
	t.Parallel()

	rec := &observe.Recorder{}
	d := newTestDispatcher(t, knowledge.Default(), nil, rec)
	d.newID = func() string { return "dispatch-1" }

	result, err := d.DispatchResult(context.Background(), Request{
		CandidateName:    "Sarah Johnson",
		CandidateContact: "sarah@example.com",
		Status:           "Assessment",
		JobID:            "J101",
	})
	if err != nil {
		t.Fatalf("DispatchResult() error = %v", err)
	}
	msg := result.Message
	if result.Metadata.DispatchID != "dispatch-1" {
		t.Fatalf("unexpected dispatch id: %q", result.Metadata.DispatchID)
	}

	for _, name := range []string{"dispatch.started", "dispatch.routed", "tool.assessment_link", "handler.message_drafted", "dispatch.completed"} {
		if len(rec.Named(name)) != 1 {
			t.Fatalf("expected one %s event, got %+v", name, rec.Events())
		}
	}
	completed := rec.Named("dispatch.completed")[0]
	if completed.Fields["handler"] != "assessment" {
		t.Fatalf("unexpected completed handler: %v", completed.Fields["handler"])
	}
	if completed.Fields["dispatch_id"] != "dispatch-1" || rec.Named("dispatch.started")[0].Fields["dispatch_id"] != "dispatch-1" {
		t.Fatalf("events must carry the dispatch id: %+v", rec.Events())
	}
	if completed.Fields["message_length"] != len([]rune(msg)) {
		t.Fatalf("unexpected message_length: %v", completed.Fields["message_length"])
	}
}
