package contract

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Status string

const (
	StatusAssessment Status = "Assessment"
	StatusInterview  Status = "Interview"
)

// ParseStatus folds a caller-supplied status into the closed two-variant set.
// Anything other than "assessment" (any case) is an interview.
func ParseStatus(raw string) Status {
	if strings.EqualFold(strings.TrimSpace(raw), "assessment") {
		return StatusAssessment
	}
	return StatusInterview
}

type HandlerID string

const (
	HandlerAssessment HandlerID = "assessment"
	HandlerInterview  HandlerID = "interview"
)

type TipSource string

const (
	TipSourceExternal TipSource = "external"
	TipSourceKeyword  TipSource = "keyword"
	TipSourceGeneric  TipSource = "generic"
)

type JobPosting struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type TipEntry struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Text    string `json:"text" yaml:"text"`
}

// RequestContext is built once per dispatch and passed by value to the
// selected handler.
type RequestContext struct {
	CandidateName        string `json:"candidate_name"`
	CandidateContact     string `json:"candidate_contact"`
	Status               Status `json:"status"`
	JobID                string `json:"job_id"`
	JobTitle             string `json:"job_title"`
	JobDescription       string `json:"job_description"`
	UseExternalGenerator bool   `json:"use_external_generator"`
}

type HandlerResult struct {
	Message  string   `json:"message"`
	Metadata Metadata `json:"metadata"`
}

type Metadata struct {
	DispatchID string    `json:"dispatch_id,omitempty"`
	Handler    HandlerID `json:"handler"`
	Link       string    `json:"link,omitempty"`
	Tip        string    `json:"tip,omitempty"`
	TipSource  TipSource `json:"tip_source,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type GenerateRequest struct {
	Description     string `json:"description"`
	Instruction     string `json:"instruction"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

type Event struct {
	Name   string
	Level  zerolog.Level
	Fields map[string]any
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
