// Package patterns holds the compiled regular expressions and keyword
// vocabularies used to extract structured candidate data from resume text.
// It is pure data: no extraction logic lives here.
package patterns

import "regexp"

// Contact information patterns.
var (
	// Email matches standard email addresses.
	Email = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Phones are tried in order; the first match wins. Grouped patterns
	// produce digit groups that are joined into a normalized number.
	Phones = []*regexp.Regexp{
		regexp.MustCompile(`\+?1?[-.\s]?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}-\d{4}`),
	}

	// Location matches "City, ST" pairs.
	Location = regexp.MustCompile(`([A-Za-z\s]+),\s*([A-Z]{2})\b`)

	// LinkedIn and GitHub match profile URLs in lowercased text.
	LinkedIn = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
	GitHub   = regexp.MustCompile(`github\.com/[\w-]+`)
)

// Experience patterns, applied to lowercased text.
var (
	// ExperienceStatements capture explicit "N years" claims. All matches are
	// collected and the maximum wins.
	ExperienceStatements = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:in|with)`),
		regexp.MustCompile(`experience.*?(\d+)\+?\s*years?`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:professional|work)`),
	}

	// YearToken matches standalone 4-digit years in [1900,2099]. The span
	// between the earliest and latest mention estimates tenure.
	YearToken = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// OpenEndedRange marks employment ranges that run to the present day, so
	// the current year joins the mentioned years.
	OpenEndedRange = regexp.MustCompile(`(?:19|20)\d{2}\s*[-–]\s*(?:present|current)`)
)

// Section and entry patterns, applied to original-case text.
var (
	// Degrees capture (degree, field) pairs from education lines.
	Degrees = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(bachelor|master|phd|doctorate|associate).*?(?:in|of)\s+([^\n,]+)`),
		regexp.MustCompile(`(?i)(b\.?s\.?|m\.?s\.?|m\.?a\.?|ph\.?d\.?|b\.?a\.?).*?(?:in|of)?\s+([^\n,]+)`),
	}

	// ProjectSection captures the body of a "Projects:" section up to the next
	// section header or end of text.
	ProjectSection = regexp.MustCompile(`(?is)projects?\s*:?\s*\n(.*?)(?:\n\s*[A-Z][^:\n]*:|\z)`)

	// SummarySections are tried in order to find a professional summary body.
	SummarySections = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:summary|objective|profile)\s*:?\s*\n(.*?)(?:\n\s*[A-Z][^:\n]*:|\z)`),
		regexp.MustCompile(`(?is)(?:about|overview)\s*:?\s*\n(.*?)(?:\n\s*[A-Z][^:\n]*:|\z)`),
	}

	// JobTitles capture (title, company) pairs from work history lines.
	JobTitles = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(software engineer|developer|analyst|manager|director|lead|senior|junior)\s+(?:at\s+)?([^\n,]+)`),
		regexp.MustCompile(`(?i)([^\n,]+)\s+(?:at|@)\s+([^\n,]+)`),
	}
)

// SkillCategories maps each technical skill category to the lowercase terms
// matched against lowercased resume text via substring search.
var SkillCategories = map[string][]string{
	"programming_languages": {
		"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
		"php", "ruby", "swift", "kotlin", "scala", "r", "matlab", "perl",
	},
	"web_technologies": {
		"html", "css", "react", "angular", "vue", "node.js", "express", "django",
		"flask", "spring", "laravel", "bootstrap", "jquery", "webpack", "sass",
	},
	"databases": {
		"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
		"cassandra", "elasticsearch", "dynamodb", "firebase", "neo4j",
	},
	"cloud_platforms": {
		"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean", "vercel",
	},
	"devops_tools": {
		"docker", "kubernetes", "jenkins", "gitlab", "github actions", "terraform",
		"ansible", "vagrant", "nginx", "apache",
	},
	"data_science": {
		"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras",
		"matplotlib", "seaborn", "jupyter", "tableau", "power bi",
	},
	"mobile_development": {
		"android", "ios", "react native", "flutter", "xamarin", "ionic",
	},
}

// SoftSkills are matched against lowercased resume text.
var SoftSkills = []string{
	"leadership", "communication", "teamwork", "problem solving", "analytical",
	"creative", "adaptable", "organized", "detail-oriented", "time management",
}

// Certifications are matched against lowercased resume text.
var Certifications = []string{
	"aws certified", "azure certified", "google cloud certified", "pmp",
	"scrum master", "cissp", "comptia", "cisco", "microsoft certified",
}

// SpokenLanguages are matched against lowercased resume text.
var SpokenLanguages = []string{
	"english", "spanish", "french", "german", "chinese", "japanese", "korean",
}

// NameExclusions disqualify a line from being treated as the candidate name.
var NameExclusions = []string{"email", "phone", "address", "linkedin"}

// ContactWords disqualify a paragraph from being used as a fallback summary.
var ContactWords = []string{"email", "phone", "address"}

// LeadershipKeywords each add a fixed bonus to the leadership score when
// present in the profile's raw text excerpt.
var LeadershipKeywords = []string{
	"lead", "manage", "director", "senior", "mentor", "team", "project manager",
}

// InstitutionKeywords identify lines that look like school names when
// searching near a degree mention.
var InstitutionKeywords = []string{"university", "college", "institute", "school"}
