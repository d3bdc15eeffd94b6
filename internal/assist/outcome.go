package assist

import "github.com/jonathan/candidate-assessor/internal/types"

// Status tags the result of an assist call. Remote models return ad-hoc
// shapes, so callers branch on the tag instead of guessing from partial
// fields.
type Status string

const (
	// StatusSuccess means the response parsed and validated.
	StatusSuccess Status = "success"
	// StatusUnavailable means the call failed in transport: timeout,
	// network error, disabled client.
	StatusUnavailable Status = "unavailable"
	// StatusMalformed means the call returned, but the payload did not
	// match the expected shape. Callers treat it like unavailable.
	StatusMalformed Status = "malformed"
)

// Evaluation is the parsed payload of a successful answer-evaluation call.
type Evaluation struct {
	Score      float64 `json:"score"`
	Feedback   string  `json:"feedback"`
	Decision   string  `json:"decision"`
	Confidence float64 `json:"confidence"`
}

// Outcome is the tagged result of an answer-evaluation call. Evaluation is
// meaningful only when Status is StatusSuccess.
type Outcome struct {
	Status     Status
	Evaluation Evaluation
	Cached     bool
}

// OK reports whether the outcome carries a usable evaluation.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

// Unavailable returns the outcome used for transport-level failures.
func Unavailable() Outcome {
	return Outcome{Status: StatusUnavailable}
}

// QuestionsOutcome is the tagged result of a question-generation call.
// Questions is meaningful only when Status is StatusSuccess.
type QuestionsOutcome struct {
	Status    Status
	Questions []types.Question
}

// OK reports whether the outcome carries a usable question list.
func (o QuestionsOutcome) OK() bool {
	return o.Status == StatusSuccess
}
