package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/prompts"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/taxonomy"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/formatting"
)

type candidateResponse struct {
	Candidates []struct {
		TaxonomyID         string   `json:"taxonomy_id"`
		Value              string   `json:"value"`
		Confidence         float64  `json:"confidence"`
		Evidence           []string `json:"evidence"`
		Rationale          string   `json:"rationale"`
		PurchaseIntentFlag *string  `json:"purchase_intent_flag"`
	} `json:"candidates"`
}

type producer struct {
	agent    gaconfig.AgentConfig
	prompts  prompts.System
	taxonomy taxonomy.System
	logger   *slog.Logger
}

// NewProducer creates an agent-backed candidate producer. Candidates
// whose taxonomy pairing fails validation are dropped with a warning
// rather than failing the stage.
func NewProducer(
	agentCfg gaconfig.AgentConfig,
	ps prompts.System,
	ts taxonomy.System,
	logger *slog.Logger,
) Producer {
	return &producer{
		agent:    agentCfg,
		prompts:  ps,
		taxonomy: ts,
		logger:   logger.With("system", "analysis"),
	}
}

func (p *producer) Produce(
	ctx context.Context,
	stage prompts.Stage,
	messages []inputs.Message,
	existing []profile.Record,
) ([]Candidate, error) {
	section, err := sectionForStage(stage)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, ErrEmptyBatch
	}

	prompt, err := p.composePrompt(ctx, stage, section, messages, existing)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStageFailed, err)
	}

	a, err := agent.New(&p.agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrStageFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrStageFailed, err)
	}

	parsed, err := formatting.Parse[candidateResponse](resp.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrStageFailed, err)
	}

	return p.screen(ctx, section, parsed), nil
}

// screen validates parsed candidates against the taxonomy, keeping
// only well-formed pairings so a hallucinated (ID, value) never
// reaches reconciliation.
func (p *producer) screen(ctx context.Context, section string, resp candidateResponse) []Candidate {
	out := make([]Candidate, 0, len(resp.Candidates))

	for _, c := range resp.Candidates {
		entry, err := p.taxonomy.ValidateCandidate(ctx, c.TaxonomyID, c.Value)
		if err != nil {
			p.logger.Warn("candidate rejected",
				"section", section,
				"taxonomy_id", c.TaxonomyID,
				"value", c.Value,
				"error", err,
			)
			continue
		}

		if c.Confidence < 0 || c.Confidence > 1 {
			p.logger.Warn("candidate confidence out of range",
				"section", section,
				"taxonomy_id", c.TaxonomyID,
				"confidence", c.Confidence,
			)
			continue
		}

		out = append(out, Candidate{
			Section:            section,
			TaxonomyID:         c.TaxonomyID,
			Value:              c.Value,
			CategoryPath:       entry.Path(),
			Tiers:              entry.Tiers(),
			GroupingKey:        entry.GroupingTierKey,
			GroupingValue:      entry.GroupingValue,
			Confidence:         c.Confidence,
			Evidence:           c.Evidence,
			Rationale:          c.Rationale,
			PurchaseIntentFlag: c.PurchaseIntentFlag,
		})
	}

	return out
}

func (p *producer) composePrompt(
	ctx context.Context,
	stage prompts.Stage,
	section string,
	messages []inputs.Message,
	existing []profile.Record,
) (string, error) {
	instructions, err := p.prompts.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := p.prompts.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	entries, err := p.taxonomy.Section(ctx, section)
	if err != nil {
		return "", fmt.Errorf("load taxonomy for %s: %w", section, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nTaxonomy entries:\n\n")
	sb.WriteString(taxonomy.PromptContext(entries))

	if state := FormatRecords(section, existing); state != "" {
		sb.WriteString("\nCurrent profile state:\n\n")
		sb.WriteString(state)
	}

	sb.WriteString("\nMessages:\n\n")
	sb.WriteString(FormatMessages(messages))

	return sb.String(), nil
}

// sectionForStage maps a section stage to its profile section name.
// The two vocabularies are identical today, but the mapping keeps the
// restriction that the judge stage produces no candidates.
func sectionForStage(stage prompts.Stage) (string, error) {
	for _, s := range prompts.SectionStages() {
		if stage == s {
			return string(stage), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotSection, stage)
}

// FormatRecords renders a section's existing profile records for
// prompt inclusion. Records outside the section are skipped; an empty
// section yields an empty string so the prompt omits the block.
func FormatRecords(section string, records []profile.Record) string {
	var sb strings.Builder
	for _, r := range records {
		if r.Section != section {
			continue
		}
		fmt.Fprintf(&sb, "ID %s: %s (confidence %.2f, last validated %d days ago)\n",
			r.TaxonomyID, r.Value, r.Confidence, r.DaysSinceValidation)
	}
	return sb.String()
}

// FormatMessages renders a message batch for prompt inclusion.
func FormatMessages(messages []inputs.Message) string {
	var sb strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&sb, "--- Message %s ---\n", m.ID)
		if m.From != "" {
			fmt.Fprintf(&sb, "From: %s\n", m.From)
		}
		if m.Subject != "" {
			fmt.Fprintf(&sb, "Subject: %s\n", m.Subject)
		}
		if m.Date != "" {
			fmt.Fprintf(&sb, "Date: %s\n", m.Date)
		}

		body := m.Body
		if body == "" {
			body = m.Snippet
		}
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
