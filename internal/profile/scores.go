package profile

import (
	"strings"

	"github.com/jonathan/candidate-assessor/internal/patterns"
	"github.com/jonathan/candidate-assessor/internal/types"
)

// Point values for the ATS-readiness heuristic
const (
	atsEmailPoints     = 10
	atsPhonePoints     = 10
	atsLocationPoints  = 5
	atsPerSkillPoints  = 3
	atsSkillCap        = 30
	atsPerYearPoints   = 2
	atsExperienceCap   = 20
	atsEducationPoints = 15
	atsPerCertPoints   = 5
	atsSummaryPoints   = 10
)

// Point values for the technical depth heuristic
const (
	depthPerSkillPoints   = 5
	depthPerProjectPoints = 5
	depthPerCertPoints    = 10
	depthExpDivisor       = 5.0
	depthExpMaxMultiplier = 2.0
)

// Point values for the leadership heuristic
const (
	leadPerYearPoints      = 8
	leadExperienceCap      = 40
	leadPerKeywordPoints   = 10
	leadPerSoftSkillPoints = 3
)

const maxHeuristicScore = 100

// computeATSScore estimates how well the resume would survive automated
// screening: contact details, skill density, experience, education,
// certifications, and a summary all contribute. Each signal is monotonically
// non-decreasing in the total, and the total is capped at 100.
func computeATSScore(p *types.CandidateProfile) int {
	score := 0
	if p.Email != "" {
		score += atsEmailPoints
	}
	if p.Phone != "" {
		score += atsPhonePoints
	}
	if p.Location != "" {
		score += atsLocationPoints
	}
	score += min(p.Skills.TotalCount*atsPerSkillPoints, atsSkillCap)
	score += min(p.ExperienceYears*atsPerYearPoints, atsExperienceCap)
	if len(p.Education) > 0 {
		score += atsEducationPoints
	}
	score += len(p.Certifications) * atsPerCertPoints
	if p.Summary != "" {
		score += atsSummaryPoints
	}
	return min(score, maxHeuristicScore)
}

// computeTechnicalDepth scores breadth of technical skills scaled by
// experience, plus project and certification evidence.
func computeTechnicalDepth(p *types.CandidateProfile) int {
	score := 0
	for _, skills := range p.Skills.ByCategory {
		score += len(skills) * depthPerSkillPoints
	}

	multiplier := float64(p.ExperienceYears) / depthExpDivisor
	if multiplier > depthExpMaxMultiplier {
		multiplier = depthExpMaxMultiplier
	}
	score = int(float64(score) * multiplier)

	score += len(p.Projects) * depthPerProjectPoints
	score += len(p.Certifications) * depthPerCertPoints
	return min(score, maxHeuristicScore)
}

// computeLeadershipScore scores tenure, leadership vocabulary in the leading
// resume text, and soft skill signals.
func computeLeadershipScore(p *types.CandidateProfile, rawExcerpt string) int {
	score := min(p.ExperienceYears*leadPerYearPoints, leadExperienceCap)

	excerptLower := strings.ToLower(rawExcerpt)
	for _, keyword := range patterns.LeadershipKeywords {
		if strings.Contains(excerptLower, keyword) {
			score += leadPerKeywordPoints
		}
	}

	score += len(p.Skills.Soft) * leadPerSoftSkillPoints
	return min(score, maxHeuristicScore)
}
