// Package types provides type definitions for structured data used throughout the candidate-assessor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile represents structured candidate data extracted from raw resume text
type CandidateProfile struct {
	Name            string           `json:"name"`
	Email           string           `json:"email,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Location        string           `json:"location,omitempty"`
	LinkedIn        string           `json:"linkedin,omitempty"`
	GitHub          string           `json:"github,omitempty"`
	Skills          SkillSet         `json:"skills"`
	Certifications  []string         `json:"certifications,omitempty"`
	ExperienceYears int              `json:"experience_years"`
	Education       []Education      `json:"education,omitempty"`
	Projects        []Project        `json:"projects,omitempty"`
	WorkExperience  []WorkExperience `json:"work_experience,omitempty"`
	Languages       []string         `json:"languages,omitempty"`
	Summary         string           `json:"summary,omitempty"`
	ATSScore        int              `json:"ats_score"`
	TechnicalDepth  int              `json:"technical_depth"`
	LeadershipScore int              `json:"leadership_score"`
}

// Clone returns a deep copy of the profile, so callers can mutate the copy
// without affecting stored state.
func (p *CandidateProfile) Clone() *CandidateProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.Skills = p.Skills.clone()
	out.Certifications = cloneStrings(p.Certifications)
	out.Education = append([]Education(nil), p.Education...)
	out.Projects = append([]Project(nil), p.Projects...)
	out.WorkExperience = append([]WorkExperience(nil), p.WorkExperience...)
	out.Languages = cloneStrings(p.Languages)
	return &out
}

// SkillSet holds matched skills grouped by category along with the flattened
// view consumers use for counting and display.
type SkillSet struct {
	ByCategory map[string][]string `json:"technical_by_category"`
	Soft       []string            `json:"soft_skills,omitempty"`
	All        []string            `json:"all_skills,omitempty"`
	TotalCount int                 `json:"total_count"`
}

func (s SkillSet) clone() SkillSet {
	out := s
	if s.ByCategory != nil {
		out.ByCategory = make(map[string][]string, len(s.ByCategory))
		for category, skills := range s.ByCategory {
			out.ByCategory[category] = cloneStrings(skills)
		}
	}
	out.Soft = cloneStrings(s.Soft)
	out.All = cloneStrings(s.All)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// Education represents a single education entry with the matched degree, the
// field of study, and the institution found near it when one could be located.
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// Project represents a project entry found in a resume projects section.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WorkExperience represents a job title / company pair found in resume text.
type WorkExperience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}
