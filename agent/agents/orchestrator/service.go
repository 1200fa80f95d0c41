package orchestrator

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	nodex "github.com/tanpawarit/Recruitment-Dispatcher/agent/nodes/orchestrator"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
)

var (
	ErrInvalidCandidate = nodex.ErrInvalidCandidate
	ErrInvalidContact   = nodex.ErrInvalidContact
)

const DefaultBatchLimit = 4

type Config struct {
	// BatchLimit caps concurrent dispatches in DispatchBatch when the caller
	// passes a non-positive limit.
	BatchLimit int `envconfig:"BATCH_LIMIT" default:"4"`
}

// Request is the caller-supplied input for a single dispatch.
type Request struct {
	CandidateName        string `json:"candidate_name" yaml:"name"`
	CandidateContact     string `json:"candidate_contact" yaml:"contact"`
	Status               string `json:"status" yaml:"status"`
	JobID                string `json:"job_id" yaml:"job_id"`
	UseExternalGenerator bool   `json:"use_external_generator" yaml:"use_external_generator"`
}

// Dispatcher routes a candidate status update to a specialist handler and
// returns the rendered message. It is stateless across calls and safe for
// concurrent use.
type Dispatcher struct {
	store  contractx.KnowledgeStore
	models contractx.Registry
	obs    contractx.Observer

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	batchLimit int

	now   func() time.Time
	newID func() string
}

func New(
	store contractx.KnowledgeStore,
	models contractx.Registry,
	obs contractx.Observer,
	cfg Config,
) (*Dispatcher, error) {
	if store == nil {
		return nil, errors.New("knowledge store is required")
	}
	if models == nil {
		return nil, errors.New("handler registry is required")
	}
	if obs == nil {
		obs = observe.Nop{}
	}

	batchLimit := cfg.BatchLimit
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}

	d := &Dispatcher{
		store:      store,
		models:     models,
		obs:        obs,
		batchLimit: batchLimit,
		now:        time.Now,
		newID:      uuid.NewString,
	}

	graphRunner, err := d.compileDispatchGraph(context.Background())
	if err != nil {
		return nil, err
	}
	d.graphRunner = graphRunner

	return d, nil
}

// Dispatch returns only the rendered message.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (string, error) {
	result, err := d.DispatchResult(ctx, req)
	if err != nil {
		return "", err
	}
	return result.Message, nil
}

// DispatchResult returns the rendered message together with its metadata.
func (d *Dispatcher) DispatchResult(ctx context.Context, req Request) (contractx.HandlerResult, error) {
	dispatchID := d.newID()
	observe.Emit(ctx, d.obs, zerolog.InfoLevel, "dispatch.started", map[string]any{
		"dispatch_id": dispatchID,
		"candidate":   req.CandidateName,
		"status":      req.Status,
		"job_id":      req.JobID,
		"external":    req.UseExternalGenerator,
	})

	out, err := d.graphRunner.Invoke(ctx, nodex.GraphInput{
		DispatchID:           dispatchID,
		CandidateName:        req.CandidateName,
		CandidateContact:     req.CandidateContact,
		Status:               req.Status,
		JobID:                req.JobID,
		UseExternalGenerator: req.UseExternalGenerator,
	})
	if err != nil {
		return contractx.HandlerResult{}, err
	}

	observe.Emit(ctx, d.obs, zerolog.InfoLevel, "dispatch.completed", map[string]any{
		"dispatch_id":    dispatchID,
		"candidate":      req.CandidateName,
		"handler":        string(out.Result.Metadata.Handler),
		"message_length": utf8.RuneCountInString(out.Result.Message),
	})
	return out.Result, nil
}
