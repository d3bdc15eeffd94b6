package assessment

import "github.com/jonathan/candidate-assessor/internal/types"

// Thresholds maps an overall score onto the five-level verdict ladder. The
// bands must stay ordered; Decide walks them top down, so every score in
// [0,100] lands in exactly one band and verdicts never decrease as the score
// grows.
type Thresholds struct {
	StrongHire float64
	Hire       float64
	LeanHire   float64
	LeanNoHire float64

	// CalibrationBar is the minimum calibration signal (0-10 scale) for the
	// top band. A strong-hire score with calibration below the bar demotes
	// to Hire; no other band consults calibration, which keeps the mapping
	// monotone in score.
	CalibrationBar float64
}

// DefaultThresholds returns the standard verdict bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StrongHire:     85,
		Hire:           75,
		LeanHire:       65,
		LeanNoHire:     50,
		CalibrationBar: 7,
	}
}

// Decide maps an overall score and a calibration signal to a verdict.
// Calibration is on a 0-10 scale: ten times an assist confidence when one
// contributed, otherwise the local clarity proxy.
func (t Thresholds) Decide(score, calibration float64) types.Verdict {
	switch {
	case score >= t.StrongHire:
		if calibration >= t.CalibrationBar {
			return types.VerdictStrongHire
		}
		return types.VerdictHire
	case score >= t.Hire:
		return types.VerdictHire
	case score >= t.LeanHire:
		return types.VerdictLeanHire
	case score >= t.LeanNoHire:
		return types.VerdictLeanNoHire
	default:
		return types.VerdictNoHire
	}
}

// Confidence values reported per verdict band when no assist confidence is
// available. NO_HIRE is deliberately high: a clear miss is an easy call.
func bandConfidence(v types.Verdict) float64 {
	switch v {
	case types.VerdictStrongHire:
		return 0.9
	case types.VerdictHire:
		return 0.8
	case types.VerdictLeanHire:
		return 0.65
	case types.VerdictLeanNoHire:
		return 0.65
	default:
		return 0.85
	}
}
