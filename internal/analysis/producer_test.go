package analysis_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/analysis"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/inputs"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/profile"
	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/prompts"
)

func TestProduceRejectsNonSectionStage(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	p := analysis.NewProducer(gaconfig.AgentConfig{}, nil, nil, logger)

	messages := []inputs.Message{{ID: "m1", Body: "hello"}}
	if _, err := p.Produce(context.Background(), prompts.StageJudge, messages, nil); !errors.Is(err, analysis.ErrNotSection) {
		t.Errorf("error = %v, want ErrNotSection", err)
	}
}

func TestProduceRejectsEmptyBatch(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	p := analysis.NewProducer(gaconfig.AgentConfig{}, nil, nil, logger)

	if _, err := p.Produce(context.Background(), prompts.StageInterests, nil, nil); !errors.Is(err, analysis.ErrEmptyBatch) {
		t.Errorf("error = %v, want ErrEmptyBatch", err)
	}
}

func TestFormatRecords(t *testing.T) {
	records := []profile.Record{
		{
			Section:             "interests",
			TaxonomyID:          "186",
			Value:               "Hiking",
			Confidence:          0.82,
			DaysSinceValidation: 14,
		},
		{
			Section:    "demographics",
			TaxonomyID: "12",
			Value:      "25-34",
			Confidence: 0.6,
		},
	}

	rendered := analysis.FormatRecords("interests", records)

	if !strings.Contains(rendered, "ID 186: Hiking (confidence 0.82, last validated 14 days ago)") {
		t.Errorf("rendered output = %q, want interests record", rendered)
	}
	if strings.Contains(rendered, "25-34") {
		t.Error("records outside the section should be omitted")
	}

	if got := analysis.FormatRecords("household", records); got != "" {
		t.Errorf("empty section rendered %q, want empty string", got)
	}
}

func TestFormatMessages(t *testing.T) {
	messages := []inputs.Message{
		{
			ID:      "m1",
			From:    "orders@shop.example",
			Subject: "Order shipped",
			Date:    "2026-08-01",
			Body:    "Your trail shoes are on the way.",
		},
		{
			ID:      "m2",
			Snippet: "Weekly cycling digest",
		},
	}

	rendered := analysis.FormatMessages(messages)

	for _, want := range []string{
		"--- Message m1 ---",
		"From: orders@shop.example",
		"Subject: Order shipped",
		"Date: 2026-08-01",
		"Your trail shoes are on the way.",
		"--- Message m2 ---",
		"Weekly cycling digest",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}

	// Empty headers are omitted entirely.
	if strings.Contains(rendered, "From: \n") {
		t.Error("empty From header should be omitted")
	}
}
