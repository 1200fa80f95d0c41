package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	orchestratorx "github.com/tanpawarit/Recruitment-Dispatcher/agent/agents/orchestrator"
	specialistx "github.com/tanpawarit/Recruitment-Dispatcher/agent/agents/specialist"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/knowledge"
	llmx "github.com/tanpawarit/Recruitment-Dispatcher/agent/llm"
	"github.com/tanpawarit/Recruitment-Dispatcher/agent/observe"
	toolx "github.com/tanpawarit/Recruitment-Dispatcher/agent/tool"
	configx "github.com/tanpawarit/Recruitment-Dispatcher/pkg/config"
	qstashx "github.com/tanpawarit/Recruitment-Dispatcher/pkg/qstash"
)

type runtime struct {
	store      *knowledge.Store
	tools      *toolx.Toolset
	dispatcher *orchestratorx.Dispatcher
}

func buildRuntime(ctx context.Context) (*runtime, error) {
	obs := observe.NewZerolog(log.Logger)

	sourceCfg, err := configx.New[knowledge.SourceConfig]("KNOWLEDGE")
	if err != nil {
		return nil, fmt.Errorf("load knowledge config: %w", err)
	}
	store, err := knowledge.Load(ctx, *sourceCfg)
	if err != nil {
		return nil, fmt.Errorf("load knowledge store: %w", err)
	}

	llmCfg, err := configx.New[llmx.Config]("TIPGEN")
	if err != nil {
		return nil, fmt.Errorf("load tip generator config: %w", err)
	}
	generator, err := llmx.New(ctx, *llmCfg)
	if err != nil {
		return nil, err
	}
	if generator == nil {
		log.Debug().Str("event", "tipgen.disabled").Msg("no TIPGEN_API_KEY configured, external tips unavailable")
	}

	tools := toolx.New(store, generator, obs, toolx.Options{
		ExternalTimeout: llmCfg.Timeout,
		MaxOutputTokens: llmCfg.MaxOutputTokens,
	})

	dispatchCfg, err := configx.New[orchestratorx.Config]("DISPATCH")
	if err != nil {
		return nil, fmt.Errorf("load dispatch config: %w", err)
	}
	dispatcher, err := orchestratorx.New(store, specialistx.NewRegistry(tools, obs), obs, *dispatchCfg)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("event", "runtime.ready").
		Int("jobs", store.JobCount()).
		Bool("external_generator", generator != nil).
		Send()

	return &runtime{
		store:      store,
		tools:      tools,
		dispatcher: dispatcher,
	}, nil
}

func newPublisher() (*qstashx.Client, error) {
	cfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		return nil, fmt.Errorf("load qstash config: %w", err)
	}
	if !cfg.Enabled() {
		return nil, errors.New("--publish requires QSTASH_TOKEN")
	}
	return qstashx.NewClient(*cfg)
}
