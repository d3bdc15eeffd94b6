// Package profile extracts structured candidate profiles from raw resume text.
package profile

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/candidate-assessor/internal/patterns"
	"github.com/jonathan/candidate-assessor/internal/types"
)

const (
	// nameSearchLines is how many leading lines are scanned for the candidate name.
	nameSearchLines = 5
	// maxEducationEntries caps the number of education entries kept.
	maxEducationEntries = 3
	// maxProjectLines caps how many lines of a projects section are considered.
	maxProjectLines = 5
	// maxWorkEntries caps work history entries per title pattern.
	maxWorkEntries = 5
	// maxExperienceYears caps the final experience estimate.
	maxExperienceYears = 30
	// defaultExperienceYears is assumed when the text carries no tenure signal.
	defaultExperienceYears = 2
	// summaryMaxLen and fallbackSummaryMaxLen bound extracted summary length.
	summaryMaxLen         = 500
	fallbackSummaryMaxLen = 300
	// rawTextExcerptLen is how much leading text the leadership heuristic scans.
	rawTextExcerptLen = 1000
)

// CatchAllCategory is where skills the catalogue does not know are bucketed.
const CatchAllCategory = "other"

// Extractor turns raw resume text into a CandidateProfile. Extraction is
// best-effort: it always returns a usable profile, falling back to defaults
// for anything it cannot find.
type Extractor struct {
	currentYear int
}

// NewExtractor creates an extractor that closes open-ended date ranges
// ("2020 - present") against the current calendar year.
func NewExtractor() *Extractor {
	return &Extractor{currentYear: time.Now().Year()}
}

// NewExtractorAt creates an extractor pinned to a fixed calendar year.
// Useful for deterministic tests.
func NewExtractorAt(year int) *Extractor {
	return &Extractor{currentYear: year}
}

// Extract parses resume text into a structured profile. Empty or blank input
// yields the fallback profile; partial input yields a profile with defaults
// for the missing fields. It never fails, and callers cannot distinguish an
// empty resume from an unparseable one at this layer.
func (e *Extractor) Extract(text string) *types.CandidateProfile {
	if strings.TrimSpace(text) == "" {
		return FallbackProfile()
	}

	textLower := strings.ToLower(text)

	p := &types.CandidateProfile{
		Name:            extractName(text),
		Email:           patterns.Email.FindString(text),
		Phone:           extractPhone(text),
		Location:        extractLocation(text),
		LinkedIn:        patterns.LinkedIn.FindString(textLower),
		GitHub:          patterns.GitHub.FindString(textLower),
		Skills:          extractSkills(textLower),
		Certifications:  matchTerms(textLower, patterns.Certifications),
		ExperienceYears: e.extractExperienceYears(textLower),
		Education:       extractEducation(text),
		Projects:        extractProjects(text),
		WorkExperience:  extractWorkExperience(text),
		Languages:       matchTerms(textLower, patterns.SpokenLanguages),
		Summary:         extractSummary(text),
	}

	rawExcerpt := truncate(text, rawTextExcerptLen)
	p.ATSScore = computeATSScore(p)
	p.TechnicalDepth = computeTechnicalDepth(p)
	p.LeadershipScore = computeLeadershipScore(p, rawExcerpt)

	return p
}

// CategorizeSkills buckets explicit skill labels into catalogue categories.
// Labels the catalogue does not know land in the catch-all category. Used
// when callers supply their own skill list instead of resume text.
func CategorizeSkills(labels []string) map[string][]string {
	buckets := make(map[string][]string)
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			continue
		}
		category, ok := termCategory[strings.ToLower(trimmed)]
		if !ok {
			category = CatchAllCategory
		}
		buckets[category] = append(buckets[category], trimmed)
	}
	return buckets
}

// termCategory maps each lowercase catalogue term to its category.
var termCategory = func() map[string]string {
	m := make(map[string]string)
	for category, terms := range patterns.SkillCategories {
		for _, term := range terms {
			m[term] = category
		}
	}
	return m
}()

// extractName returns the first early line that looks like a person's name:
// short, free of digits and contact markers. Defaults to "Candidate".
func extractName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if i >= nameSearchLines {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || len(strings.Fields(line)) > 4 || strings.Contains(line, "@") {
			continue
		}
		if strings.ContainsFunc(line, unicode.IsDigit) {
			continue
		}
		if containsAny(strings.ToLower(line), patterns.NameExclusions) {
			continue
		}
		return line
	}
	return "Candidate"
}

// extractPhone tries each phone pattern in order. Grouped patterns have their
// digit groups joined into a bare number.
func extractPhone(text string) string {
	for _, re := range patterns.Phones {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return strings.Join(m[1:], "")
		}
		return m[0]
	}
	return ""
}

func extractLocation(text string) string {
	m := patterns.Location.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s", strings.TrimSpace(m[1]), m[2])
}

// extractSkills matches catalogue terms against lowercased text, storing hits
// title-cased by category plus the flattened list ATS scoring counts.
func extractSkills(textLower string) types.SkillSet {
	byCategory := make(map[string][]string)
	categories := make([]string, 0, len(patterns.SkillCategories))
	for category := range patterns.SkillCategories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var all []string
	for _, category := range categories {
		found := matchTerms(textLower, patterns.SkillCategories[category])
		if len(found) > 0 {
			byCategory[category] = found
			all = append(all, found...)
		}
	}

	soft := matchTerms(textLower, patterns.SoftSkills)
	all = append(all, soft...)

	return types.SkillSet{
		ByCategory: byCategory,
		Soft:       soft,
		All:        all,
		TotalCount: len(all),
	}
}

// matchTerms returns the title-cased subset of terms present in textLower.
func matchTerms(textLower string, terms []string) []string {
	var found []string
	for _, term := range terms {
		if strings.Contains(textLower, term) {
			found = append(found, titleCase(term))
		}
	}
	return found
}

// extractExperienceYears combines two estimators: the best explicit "N years"
// claim, and the span between the earliest and latest calendar year mentioned
// (extended to the current year for open-ended ranges). The larger estimate
// wins, capped at maxExperienceYears. With no signal at all the default applies.
func (e *Extractor) extractExperienceYears(textLower string) int {
	explicit := 0
	explicitFound := false
	for _, re := range patterns.ExperienceStatements {
		for _, m := range re.FindAllStringSubmatch(textLower, -1) {
			explicitFound = true
			if years := parseInt(m[1]); years > explicit {
				explicit = years
			}
		}
	}

	years := patterns.YearToken.FindAllString(textLower, -1)
	if patterns.OpenEndedRange.MatchString(textLower) {
		years = append(years, fmt.Sprintf("%d", e.currentYear))
	}

	span := 0
	spanFound := len(years) >= 2
	if spanFound {
		earliest, latest := parseInt(years[0]), parseInt(years[0])
		for _, y := range years[1:] {
			year := parseInt(y)
			if year < earliest {
				earliest = year
			}
			if year > latest {
				latest = year
			}
		}
		span = latest - earliest
	}

	if !explicitFound && !spanFound {
		return defaultExperienceYears
	}
	return min(max(explicit, span), maxExperienceYears)
}

func extractEducation(text string) []types.Education {
	var education []types.Education
	for _, re := range patterns.Degrees {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(education) >= maxEducationEntries {
				return education
			}
			degree := strings.TrimSpace(m[1])
			education = append(education, types.Education{
				Degree:      degree,
				Field:       strings.TrimSpace(m[2]),
				Institution: institutionNearDegree(text, degree),
			})
		}
	}
	return education
}

// institutionNearDegree scans two lines either side of the degree mention for
// a line that names a school.
func institutionNearDegree(text, degree string) string {
	lines := strings.Split(text, "\n")
	degreeLower := strings.ToLower(degree)
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), degreeLower) {
			continue
		}
		lo := max(0, i-2)
		hi := min(len(lines), i+3)
		for j := lo; j < hi; j++ {
			if containsAny(strings.ToLower(lines[j]), patterns.InstitutionKeywords) {
				return strings.TrimSpace(lines[j])
			}
		}
	}
	return ""
}

func extractProjects(text string) []types.Project {
	var projects []types.Project
	for _, section := range patterns.ProjectSection.FindAllStringSubmatch(text, -1) {
		lines := nonEmptyLines(section[1])
		for i, line := range lines {
			if i >= maxProjectLines {
				break
			}
			if len(line) <= 10 {
				continue
			}
			name := line
			if idx := strings.Index(line, ":"); idx >= 0 {
				name = line[:idx]
			} else {
				name = truncate(line, 50)
			}
			projects = append(projects, types.Project{Name: name, Description: line})
		}
	}
	return projects
}

func extractWorkExperience(text string) []types.WorkExperience {
	var experience []types.WorkExperience
	for _, re := range patterns.JobTitles {
		matches := re.FindAllStringSubmatch(text, -1)
		for i, m := range matches {
			if i >= maxWorkEntries {
				break
			}
			experience = append(experience, types.WorkExperience{
				Title:   strings.TrimSpace(m[1]),
				Company: strings.TrimSpace(m[2]),
			})
		}
	}
	return experience
}

// extractSummary prefers an explicit summary section; otherwise it falls back
// to the first substantial paragraph that is not contact information.
func extractSummary(text string) string {
	for _, re := range patterns.SummarySections {
		if m := re.FindStringSubmatch(text); m != nil {
			return truncate(strings.TrimSpace(m[1]), summaryMaxLen)
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		trimmed := strings.TrimSpace(para)
		if len(trimmed) > 50 && !containsAny(strings.ToLower(para), patterns.ContactWords) {
			return truncate(trimmed, fallbackSummaryMaxLen)
		}
	}
	return ""
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// parseInt converts a digits-only string produced by a regex capture.
func parseInt(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// titleCase uppercases the first letter of every alphabetic run and lowercases
// the rest, so "node.js" becomes "Node.Js" and "aws certified" becomes
// "Aws Certified". Matches how skill terms are stored in extracted profiles.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
