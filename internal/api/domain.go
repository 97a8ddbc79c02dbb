package api

import (
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/prompts"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/reconcile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/runs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/taxonomy"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Inputs   inputs.System
	Prompts  prompts.System
	Taxonomy taxonomy.System
	Profile  profile.System
	Runs     runs.System
}

// NewDomain creates all domain systems from the API runtime. The
// workflow runtime wires the analysis producer and judge over the
// shared agent configuration, and the run controller drives the
// workflow from the runs system.
func NewDomain(runtime *Runtime) *Domain {
	inputsSystem := inputs.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	taxonomySystem := taxonomy.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	profileSystem := profile.New(runtime.Memstore, runtime.Logger)

	engine := reconcile.New(runtime.Memstore, runtime.Logger)

	workflowRuntime := &workflow.Runtime{
		Inputs:         inputsSystem,
		Profiles:       profileSystem,
		Producer:       analysis.NewProducer(runtime.Agent, promptsSystem, taxonomySystem, runtime.Logger),
		Judge:          analysis.NewJudge(runtime.Agent, promptsSystem, runtime.Logger),
		Engine:         engine,
		Store:          runtime.Memstore,
		JudgeWorkers:   runtime.Profiler.JudgeWorkers,
		BlockThreshold: runtime.Profiler.BlockThreshold,
		Logger:         runtime.Logger,
	}

	controller := runs.NewController(workflowRuntime, runtime.Logger)

	runsSystem := runs.New(
		runtime.Database.Connection(),
		controller,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Inputs:   inputsSystem,
		Prompts:  promptsSystem,
		Taxonomy: taxonomySystem,
		Profile:  profileSystem,
		Runs:     runsSystem,
	}
}
