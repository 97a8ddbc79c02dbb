package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/confidence"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/prompts"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/formatting"
)

// DefaultJudgeWorkers bounds concurrent judge calls per batch.
const DefaultJudgeWorkers = 5

type judge struct {
	agent   gaconfig.AgentConfig
	prompts prompts.System
	logger  *slog.Logger
}

// NewJudge creates an agent-backed evidence quality judge.
func NewJudge(agentCfg gaconfig.AgentConfig, ps prompts.System, logger *slog.Logger) Judge {
	return &judge{
		agent:   agentCfg,
		prompts: ps,
		logger:  logger.With("system", "judge"),
	}
}

func (j *judge) Evaluate(ctx context.Context, candidate Candidate) (Evaluation, error) {
	prompt, err := j.composePrompt(ctx, candidate)
	if err != nil {
		return Evaluation{}, err
	}

	a, err := agent.New(&j.agent)
	if err != nil {
		return Evaluation{}, fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return Evaluation{}, fmt.Errorf("chat call: %w", err)
	}

	eval, err := formatting.Parse[Evaluation](resp.Text())
	if err != nil {
		return Evaluation{}, fmt.Errorf("parse response: %w", err)
	}

	if eval.QualityScore < 0 || eval.QualityScore > 1 {
		return Evaluation{}, fmt.Errorf("quality score %v out of range", eval.QualityScore)
	}

	return eval, nil
}

func (j *judge) composePrompt(ctx context.Context, candidate Candidate) (string, error) {
	instructions, err := j.prompts.Instructions(ctx, prompts.StageJudge)
	if err != nil {
		return "", fmt.Errorf("load judge instructions: %w", err)
	}

	spec, err := j.prompts.Spec(ctx, prompts.StageJudge)
	if err != nil {
		return "", fmt.Errorf("load judge spec: %w", err)
	}

	payload, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize candidate: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nCandidate under review:\n\n")
	sb.Write(payload)

	return sb.String(), nil
}

// JudgeAll evaluates candidates concurrently with bounded workers and
// applies the quality adjustment to each confidence. A judge failure
// on a candidate substitutes the neutral evaluation; judging never
// fails a batch. Candidates scoring below blockThreshold come back
// with Blocked set and must not reach reconciliation.
func JudgeAll(
	ctx context.Context,
	j Judge,
	candidates []Candidate,
	workers int,
	blockThreshold float64,
	logger *slog.Logger,
) ([]Judged, error) {
	if workers <= 0 {
		workers = DefaultJudgeWorkers
	}

	judged := make([]Judged, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			eval, err := j.Evaluate(gctx, candidates[i])
			if err != nil {
				logger.Warn("judge failed, applying neutral default",
					"section", candidates[i].Section,
					"value", candidates[i].Value,
					"error", err,
				)
				eval = NeutralEvaluation
			}

			adjusted, err := confidence.AdjustForQuality(
				candidates[i].Confidence,
				eval.QualityScore,
				confidence.QualityKind(eval.Category),
			)
			if err != nil {
				return fmt.Errorf("adjust candidate %s/%s: %w",
					candidates[i].Section, candidates[i].Value, err)
			}

			judged[i] = Judged{
				Candidate:  candidates[i],
				Evaluation: eval,
				Adjusted:   adjusted,
				Blocked:    confidence.ShouldBlock(eval.QualityScore, blockThreshold),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return judged, nil
}
