package profile

import "github.com/jonathan/candidate-assessor/internal/types"

// FallbackProfile returns the well-formed default profile used when resume
// text is empty or unparseable: placeholder name, no extracted fields, and the
// default experience estimate. Derived scores are computed through the same
// functions as any other profile, so the invariant that scores are a pure
// function of the profile fields holds here too.
func FallbackProfile() *types.CandidateProfile {
	p := &types.CandidateProfile{
		Name:            "Candidate",
		Skills:          types.SkillSet{ByCategory: map[string][]string{}},
		ExperienceYears: defaultExperienceYears,
	}
	p.ATSScore = computeATSScore(p)
	p.TechnicalDepth = computeTechnicalDepth(p)
	p.LeadershipScore = computeLeadershipScore(p, "")
	return p
}
