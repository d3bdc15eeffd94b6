package questions

import (
	"strings"

	"github.com/jonathan/candidate-assessor/internal/types"
)

// Role families the bank carries dedicated questions for. Free-form role
// strings normalize onto these through RoleFamily.
const (
	FamilySoftwareEngineer = "software engineer"
	FamilyDataScientist    = "data scientist"
	FamilyDevOps           = "devops engineer"
	FamilyFrontend         = "frontend engineer"
	FamilyBackend          = "backend engineer"
	FamilyGeneric          = "generic"
)

// skillPlaceholder marks where a bank question names the candidate's top
// skill.
const skillPlaceholder = "{skill}"

const tierCount = 4

// familyBank holds the role-specific question pools, one text per tier in
// tierIndex order.
type familyBank struct {
	technical    [tierCount]string
	systemDesign [tierCount]string
}

var banks = map[string]familyBank{
	FamilySoftwareEngineer: {
		technical: [tierCount]string{
			"Describe a project where you used " + skillPlaceholder + ". What part of it would you build differently today?",
			"How do you decide what to test in a codebase with no existing tests? Walk through a concrete example.",
			"Explain a performance problem you diagnosed end to end. What did you measure, and what fixed it?",
			"Pick a system you own. What is its biggest architectural liability, and what would a migration away from it look like?",
		},
		systemDesign: [tierCount]string{
			"Design a URL shortener. What are the main components and how do they talk to each other?",
			"Design a rate limiter for a public API. How does your design behave when the service restarts?",
			"Design a notification system that delivers a million messages an hour across email and push. Where does it fail first?",
			"Design a multi-region deployment for a stateful service. How do you handle a region-wide outage mid-write?",
		},
	},
	FamilyDataScientist: {
		technical: [tierCount]string{
			"Describe a dataset you cleaned recently with " + skillPlaceholder + ". What was the messiest part?",
			"How do you detect and handle data leakage in a model pipeline? Give a real example.",
			"Tell me about a model you shipped that underperformed its offline numbers in production. What was the gap?",
			"How do you decide when a business problem should not be solved with machine learning?",
		},
		systemDesign: [tierCount]string{
			"Design a pipeline that ingests a daily CSV drop and makes it queryable. What can go wrong?",
			"Design a feature store for a team of five data scientists. How do you keep training and serving consistent?",
			"Design an experimentation platform that supports overlapping A/B tests. How do you prevent interaction effects?",
			"Design the data architecture for a company moving from batch reporting to near-real-time decisioning.",
		},
	},
	FamilyDevOps: {
		technical: [tierCount]string{
			"Describe how you have used " + skillPlaceholder + " to automate something that was previously manual.",
			"A deploy gets rolled back twice in one week. What do you instrument to find out why?",
			"Walk through an incident you ran. What did the postmortem change about your systems?",
			"How do you decide what belongs in a paved-road platform versus what teams should own themselves?",
		},
		systemDesign: [tierCount]string{
			"Design a CI pipeline for a small service. What runs on every commit versus every release?",
			"Design zero-downtime deploys for a service with long-lived connections.",
			"Design the observability stack for fifty microservices. What do you standardize and what do you leave to teams?",
			"Design a disaster recovery strategy with a one-hour recovery objective for a business that has never tested a failover.",
		},
	},
	FamilyFrontend: {
		technical: [tierCount]string{
			"Describe a UI you built with " + skillPlaceholder + ". What was hardest to get right?",
			"How do you find and fix a rendering performance problem? Walk through the tools you reach for.",
			"Explain how you structure state management in a large application, and one place that structure has hurt you.",
			"How do you run a framework migration across a codebase dozens of engineers touch daily?",
		},
		systemDesign: [tierCount]string{
			"Design the component structure for a searchable, filterable product list.",
			"Design client-side caching for an app that must work offline. How do you reconcile conflicting edits?",
			"Design a design-system rollout across multiple product teams. How do you version breaking changes?",
			"Design the architecture for a web app that must render its first page in under one second worldwide.",
		},
	},
	FamilyBackend: {
		technical: [tierCount]string{
			"Describe an API you built with " + skillPlaceholder + ". How did you decide its error responses?",
			"How do you make a batch job safe to re-run after it fails halfway?",
			"Explain a database schema decision you regret and how you migrated away from it.",
			"Pick a service boundary you drew. What did it cost you, and when would you redraw it?",
		},
		systemDesign: [tierCount]string{
			"Design a paginated listing endpoint for a large table. What breaks as the table grows?",
			"Design idempotent payment submission. What does the client have to do for it to work?",
			"Design a queue-based order processing system that survives consumer crashes without losing or double-processing orders.",
			"Design the migration of a monolith's core transaction path onto services without a big-bang cutover.",
		},
	},
	FamilyGeneric: {
		technical: [tierCount]string{
			"Describe a recent project you are proud of. What was your specific contribution?",
			"How do you learn a new technology under deadline pressure? Give a concrete example.",
			"Describe the most complex system you have worked on. Where did its complexity come from?",
			"What technical decision have you reversed after new evidence, and what changed your mind?",
		},
		systemDesign: [tierCount]string{
			"How would you organize the moving parts of a small web application? Walk through the pieces.",
			"Design a reporting feature that must not slow down the main application.",
			"Design a system that synchronizes data between two products that were never built to talk to each other.",
			"Design a plan to scale a system tenfold in a year without doubling the team.",
		},
	},
}

// Role-agnostic pools shared by every family.
var (
	problemSolvingBank = [tierCount]string{
		"Walk me through the last bug that took you more than a day to find. What finally cracked it?",
		"Describe a time you had to fix a production issue with incomplete information. How did you narrow the cause?",
		"Tell me about a problem where your first two approaches failed. How did you decide what to try third?",
		"Describe the hardest technical problem your organization faced last year and how you shaped the approach to it.",
	}
	behavioralBank = [tierCount]string{
		"Tell me about a piece of feedback that changed how you work.",
		"Describe a disagreement with a teammate about a technical decision. How was it resolved?",
		"Tell me about a time you had to deliver bad news about a project you owned. How did you handle it?",
		"Describe a time you changed the direction of a team that was already deep into an approach you believed was wrong.",
	}
	innovationBank = [tierCount]string{
		"What is something you built or automated on your own initiative, and why?",
		"Describe a time you replaced an established process or tool with something better. What resistance did you hit?",
		"What emerging technology do you think is overhyped, and what would change your mind?",
		"Describe a bet you made on an unproven technology or approach. How did you limit the downside?",
	}
)

// RoleFamily normalizes a free-form role string onto a bank family. Specific
// families win over the software-engineer catch-all.
func RoleFamily(role string) string {
	r := strings.ToLower(role)
	switch {
	case containsAny(r, "data scien", "machine learning", "ml engineer", "data engineer"):
		return FamilyDataScientist
	case containsAny(r, "devops", "sre", "site reliability", "platform engineer", "infrastructure"):
		return FamilyDevOps
	case containsAny(r, "frontend", "front-end", "front end"):
		return FamilyFrontend
	case containsAny(r, "backend", "back-end", "back end"):
		return FamilyBackend
	case containsAny(r, "software", "developer", "engineer", "programmer"):
		return FamilySoftwareEngineer
	default:
		return FamilyGeneric
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// FromBank returns n deterministic questions for the role and tier. The bank
// never fails: any role maps to a family and any tier defaults to mid. Counts
// beyond one per category rotate through neighbouring tiers.
func FromBank(role, tier string, skills []string, n int) []types.Question {
	if n <= 0 {
		n = DefaultCount
	}

	family := banks[RoleFamily(role)]
	tierIdx := tierIndex(tier)

	type slot struct {
		category string
		pool     [tierCount]string
	}
	slots := []slot{
		{types.CategoryTechnical, family.technical},
		{types.CategoryProblemSolving, problemSolvingBank},
		{types.CategorySystemDesign, family.systemDesign},
		{types.CategoryBehavioral, behavioralBank},
		{types.CategoryInnovation, innovationBank},
	}

	skill := "your primary stack"
	if len(skills) > 0 && strings.TrimSpace(skills[0]) != "" {
		skill = skills[0]
	}

	out := make([]types.Question, 0, n)
	for i := 0; i < n; i++ {
		s := slots[i%len(slots)]
		text := s.pool[(tierIdx+i/len(slots))%tierCount]
		out = append(out, types.Question{
			Index:      i + 1,
			Text:       strings.ReplaceAll(text, skillPlaceholder, skill),
			Category:   s.category,
			Difficulty: tier,
		})
	}
	return out
}
