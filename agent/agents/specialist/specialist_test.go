package specialist

import (
	"context"
	"strings"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/knowledge"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
	toolx "github.com/tanpawarit/Recruitment-Dispatcher/agent/tool"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("ICT", 7*3600))

type fakeLinks struct {
	roles []string
}

func (f *fakeLinks) LookupAssessmentLink(_ context.Context, role string) string {
	f.roles = append(f.roles, role)
	return "https://assess.test/" + strings.ToLower(strings.ReplaceAll(role, " ", "-"))
}

type fakeCoaching struct {
	queries        []string
	descriptions   []string
	preferExternal bool
	tip            toolx.Tip
}

func (f *fakeCoaching) RetrieveContext(_ context.Context, query string) string {
	f.queries = append(f.queries, query)
	return "context for " + query
}

func (f *fakeCoaching) GenerateTip(_ context.Context, description string, preferExternal bool) toolx.Tip {
	f.descriptions = append(f.descriptions, description)
	f.preferExternal = preferExternal
	return f.tip
}

func TestAssessmentHandlerRendersInvitation(t *testing.T) {
	t.Parallel()

	links := &fakeLinks{}
	rec := &observe.Recorder{}
	h := NewAssessment(links, rec)
	h.now = func() time.Time { return fixedNow }

	out, err := h.Handle(context.Background(), contractx.RequestContext{
		CandidateName: "Sarah Johnson",
		JobID:         "J123",
		JobTitle:      "Python Developer",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(links.roles) != 1 || links.roles[0] != "Python Developer" {
		t.Fatalf("link must be resolved by job title, got %#v", links.roles)
	}
	for _, want := range []string{
		"Hi Sarah Johnson!",
		"with the Python Developer position.",
		"→ Assessment Link: https://assess.test/python-developer",
		"→ Time Limit: 60 minutes",
		"RecruitEM Team",
	} {
		if !strings.Contains(out.Message, want) {
			t.Fatalf("message missing %q:\n%s", want, out.Message)
		}
	}

	meta := out.Metadata
	if meta.Handler != contractx.HandlerAssessment {
		t.Fatalf("unexpected handler: %s", meta.Handler)
	}
	if meta.Link != "https://assess.test/python-developer" {
		t.Fatalf("unexpected link: %s", meta.Link)
	}
	if !meta.Timestamp.Equal(fixedNow) || meta.Timestamp.Location() != time.UTC {
		t.Fatalf("unexpected timestamp: %s", meta.Timestamp)
	}

	events := rec.Named("handler.message_drafted")
	if len(events) != 1 || events[0].Fields["handler"] != "assessment" {
		t.Fatalf("unexpected drafted events: %+v", events)
	}
}

func TestInterviewHandlerRendersCoaching(t *testing.T) {
	t.Parallel()

	tools := &fakeCoaching{tip: toolx.Tip{Text: "Practice JOINs.", Source: contractx.TipSourceKeyword, Keyword: "sql"}}
	h := NewInterview(tools, nil)
	h.now = func() time.Time { return fixedNow }

	out, err := h.Handle(context.Background(), contractx.RequestContext{
		CandidateName:        "Mike Chen",
		JobID:                "J456",
		JobTitle:             "Data Analyst",
		JobDescription:       "Reporting role requiring SQL",
		UseExternalGenerator: true,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(tools.queries) != 1 || tools.queries[0] != "J456" {
		t.Fatalf("context must be retrieved by job id, got %#v", tools.queries)
	}
	if len(tools.descriptions) != 1 || tools.descriptions[0] != "Reporting role requiring SQL" {
		t.Fatalf("tip must be generated from the description, got %#v", tools.descriptions)
	}
	if !tools.preferExternal {
		t.Fatal("external preference must be forwarded")
	}

	want := "→ Key Focus Area:\nPractice JOINs.\n\n→ Role Context:\ncontext for J456"
	if !strings.Contains(out.Message, want) {
		t.Fatalf("message missing tip/context block:\n%s", out.Message)
	}
	if !strings.HasPrefix(out.Message, "Hi Mike Chen!") {
		t.Fatalf("unexpected greeting:\n%s", out.Message)
	}
	if out.Metadata.Handler != contractx.HandlerInterview || out.Metadata.Tip != "Practice JOINs." {
		t.Fatalf("unexpected metadata: %+v", out.Metadata)
	}
	if out.Metadata.TipSource != contractx.TipSourceKeyword {
		t.Fatalf("unexpected tip source: %s", out.Metadata.TipSource)
	}
	if out.Metadata.Link != "" {
		t.Fatalf("interview metadata must not carry a link: %s", out.Metadata.Link)
	}
}

func TestInterviewHandlerDoesNotReexpandPlaceholders(t *testing.T) {
	t.Parallel()

	tools := &fakeCoaching{tip: toolx.Tip{Text: "Mention {{CANDIDATE_NAME}} literally."}}
	h := NewInterview(tools, nil)

	out, err := h.Handle(context.Background(), contractx.RequestContext{
		CandidateName: "Ana",
		JobID:         "J1",
		JobTitle:      "Engineer",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(out.Message, "Mention {{CANDIDATE_NAME}} literally.") {
		t.Fatalf("tip text must be inserted verbatim:\n%s", out.Message)
	}
}

func TestRegistryUsesSharedToolset(t *testing.T) {
	t.Parallel()

	ts := toolx.New(knowledge.Default(), nil, nil, toolx.Options{})
	reg := NewRegistry(ts, nil)

	out, err := reg.Assessment().Handle(context.Background(), contractx.RequestContext{
		CandidateName: "Sarah Johnson",
		JobTitle:      "Product Manager",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if out.Metadata.Link != "https://assess.example.com/product" {
		t.Fatalf("unexpected link: %s", out.Metadata.Link)
	}

	out, err = reg.Interview().Handle(context.Background(), contractx.RequestContext{
		CandidateName:  "Sarah Johnson",
		JobID:          "UNKNOWN",
		JobTitle:       knowledge.GenericJobTitle,
		JobDescription: knowledge.GenericJobDescription,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if out.Metadata.Tip != toolx.GenericPrepMessage {
		t.Fatalf("expected generic tip, got %q", out.Metadata.Tip)
	}
	if !strings.Contains(out.Message, toolx.NoTipsFoundMessage) {
		t.Fatalf("expected no-tips context:\n%s", out.Message)
	}
}
