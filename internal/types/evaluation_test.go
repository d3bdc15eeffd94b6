// Package types provides type definitions for structured data used throughout the candidate-assessor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdict_RankOrdering(t *testing.T) {
	ladder := []Verdict{
		VerdictNoHire,
		VerdictLeanNoHire,
		VerdictLeanHire,
		VerdictHire,
		VerdictStrongHire,
	}

	for i := 1; i < len(ladder); i++ {
		assert.Greater(t, ladder[i].Rank(), ladder[i-1].Rank(),
			"%s should rank above %s", ladder[i], ladder[i-1])
	}
}

func TestVerdict_Valid(t *testing.T) {
	assert.True(t, VerdictStrongHire.Valid())
	assert.True(t, VerdictNoHire.Valid())
	assert.False(t, Verdict("MAYBE").Valid())
	assert.False(t, Verdict("").Valid())
}

func TestEvaluation_JSONMarshaling(t *testing.T) {
	eval := Evaluation{
		QuestionIndex: 2,
		OverallScore:  78.5,
		Dimensions: DimensionScores{
			TechnicalMastery: 80,
			ProblemSolving:   75,
			Communication:    82,
			Innovation:       70,
			Leadership:       65,
			SystemThinking:   77,
		},
		Feedback:        "Strong performance showing solid competency with room for senior growth.",
		Decision:        VerdictHire,
		Confidence:      0.78,
		Assisted:        true,
		AnswerWordCount: 240,
	}

	jsonBytes, err := json.Marshal(eval)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"question_index":2`)
	assert.Contains(t, string(jsonBytes), `"overall_score":78.5`)
	assert.Contains(t, string(jsonBytes), `"technical_mastery":80`)
	assert.Contains(t, string(jsonBytes), `"decision":"HIRE"`)
	assert.Contains(t, string(jsonBytes), `"assisted":true`)
	assert.Contains(t, string(jsonBytes), `"answer_word_count":240`)
}

func TestEvaluation_JSONUnmarshaling(t *testing.T) {
	jsonInput := `{
		"question_index": 0,
		"overall_score": 20,
		"dimension_scores": {
			"technical_mastery": 20,
			"problem_solving": 20,
			"communication": 10,
			"innovation": 20,
			"leadership": 30,
			"system_thinking": 20
		},
		"feedback": "No response provided.",
		"decision": "NO_HIRE",
		"confidence": 0.9,
		"assisted": false,
		"cached": false,
		"answer_word_count": 0
	}`

	var eval Evaluation
	err := json.Unmarshal([]byte(jsonInput), &eval)
	require.NoError(t, err)
	assert.Equal(t, 20.0, eval.OverallScore)
	assert.Equal(t, 10.0, eval.Dimensions.Communication)
	assert.Equal(t, VerdictNoHire, eval.Decision)
	assert.Equal(t, 0.9, eval.Confidence)
	assert.False(t, eval.Assisted)
}
