package prompts

import (
	"encoding/json"
	"slices"
)

// Stage represents an analysis stage that a prompt override targets.
type Stage string

// Valid analysis stages. The four section stages extract candidate
// classifications from a message batch; the judge stage scores the
// quality of their supporting evidence.
const (
	StageDemographics   Stage = "demographics"
	StageHousehold      Stage = "household"
	StageInterests      Stage = "interests"
	StagePurchaseIntent Stage = "purchase_intent"
	StageJudge          Stage = "judge"
)

var stages = []Stage{
	StageDemographics,
	StageHousehold,
	StageInterests,
	StagePurchaseIntent,
	StageJudge,
}

// Stages returns the list of valid analysis stages.
func Stages() []Stage {
	return stages
}

// SectionStages returns the stages that produce candidate
// classifications, in profile section order.
func SectionStages() []Stage {
	return stages[:4]
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known analysis stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
