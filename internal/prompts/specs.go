package prompts

const candidateSpec = `Respond with a JSON object matching this exact structure:

{
  "candidates": [
    {
      "taxonomy_id": "<id>",
      "value": "<classification value>",
      "confidence": 0.0,
      "evidence": ["<verbatim or near-verbatim message excerpt>"],
      "rationale": "<why this evidence supports this classification>"
    }
  ]
}

Field constraints:
- taxonomy_id: An ID from the taxonomy entries listed in the prompt.
  Never invent IDs.
- value: The classification value the taxonomy entry defines. For
  placeholder entries (values starting with *), provide the concrete
  value observed in the messages.
- confidence: Your confidence in this classification in [0.0, 1.0],
  reflecting both evidence strength and how often it recurs across
  the batch.
- evidence: One or more excerpts from the messages that support the
  classification. Quote the message text; do not paraphrase into
  something the messages never said.
- rationale: Brief explanation connecting the evidence to the
  classification.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Return an empty candidates array when the batch contains no signal
  for this section
- Each candidate must be supported by evidence from the current batch
- Never emit two candidates with the same taxonomy_id and value`

const judgeSpec = `Respond with a JSON object matching this exact structure:

{
  "quality_score": 0.0,
  "category": "<direct|strong|contextual|weak|unsupported>",
  "rationale": "<assessment of the evidence-to-claim linkage>"
}

Field constraints:
- quality_score: Evidence quality in [0.0, 1.0].
  0.9-1.0 = direct statement, 0.8-0.9 = strong inference,
  0.6-0.8 = contextual inference, 0.3-0.5 = weak inference,
  below 0.3 = unsupported.
- category: The band the score falls in.
- rationale: Brief justification for the score, naming what the
  evidence does and does not establish.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Score the linkage between evidence and claim, not claim plausibility
- Evaluate exactly one candidate per response`

var specs = map[Stage]string{
	StageDemographics:   candidateSpec,
	StageHousehold:      candidateSpec,
	StageInterests:      candidateSpec,
	StagePurchaseIntent: candidateSpec,
	StageJudge:          judgeSpec,
}

// DefaultSpec returns the hardcoded specification for an analysis
// stage. Specifications define the expected output format and
// behavioral constraints. Returns ErrInvalidStage if the stage is not
// recognized.
func DefaultSpec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
