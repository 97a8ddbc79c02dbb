package workflow

import (
	"log/slog"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/reconcile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/memstore"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Inputs         inputs.System
	Profiles       profile.System
	Producer       analysis.Producer
	Judge          analysis.Judge
	Engine         reconcile.Engine
	Store          memstore.Store
	JudgeWorkers   int
	BlockThreshold float64
	Logger         *slog.Logger
}
