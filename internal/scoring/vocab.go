package scoring

import "strings"

// A signal is one keyword sub-score within a dimension: every distinct term
// present in the lowercased answer contributes Points, capped at Cap. Terms
// match by substring containment, so multi-word phrases count too.
type signal struct {
	Terms  []string
	Points float64
	Cap    float64
}

func (s signal) score(lower string) float64 {
	hits := 0
	for _, term := range s.Terms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	v := float64(hits) * s.Points
	if v > s.Cap {
		return s.Cap
	}
	return v
}

// Technical mastery signals.
var (
	advancedConcepts = signal{Points: 2, Cap: 30, Terms: []string{
		"distributed systems", "microservices", "event sourcing", "cqrs",
		"eventual consistency", "cap theorem", "acid properties", "base properties",
		"consensus algorithms", "raft", "paxos", "byzantine fault tolerance",
		"load balancing", "circuit breaker", "bulkhead pattern", "saga pattern",
		"caching strategies", "cache coherence", "memory hierarchy", "cpu cache",
		"garbage collection", "memory management", "jvm internals", "compiler optimization",
		"concurrency", "parallelism", "lock-free programming", "atomic operations",
		"database internals", "b-tree", "lsm tree", "mvcc", "isolation levels",
		"networking", "tcp/ip", "http/2", "websockets", "grpc", "message queues",
	}}

	designPrinciples = signal{Points: 2, Cap: 25, Terms: []string{
		"scalability", "reliability", "availability", "consistency", "partition tolerance",
		"fault tolerance", "disaster recovery", "monitoring", "observability",
		"security", "authentication", "authorization", "encryption", "data privacy",
	}}

	codeQuality = signal{Points: 3, Cap: 15, Terms: []string{
		"clean code", "solid principles", "design patterns", "refactoring", "testing",
	}}

	performanceTerms = signal{Points: 4, Cap: 20, Terms: []string{
		"performance", "optimization", "latency", "throughput", "bottleneck", "profiling",
	}}

	// skillDetailTerms qualify a mentioned candidate skill as discussed in
	// depth rather than name-dropped.
	skillDetailTerms = []string{"internal", "architecture", "implementation", "optimization"}
)

const skillDepthPoints = 5

// Problem solving signals.
var (
	structureIndicators = signal{Points: 3, Cap: 25, Terms: []string{
		"first", "second", "third", "step 1", "step 2", "initially", "then", "next", "finally",
		"approach", "strategy", "methodology", "framework", "process",
	}}

	decompositionWords = signal{Points: 4, Cap: 20, Terms: []string{
		"break down", "decompose", "divide", "separate", "isolate", "component",
		"module", "layer", "abstraction", "interface",
	}}

	tradeoffIndicators = signal{Points: 5, Cap: 25, Terms: []string{
		"trade-off", "tradeoff", "pros and cons", "advantages", "disadvantages",
		"benefit", "cost", "compromise", "balance", "versus", "vs", "compared to",
	}}

	edgeCaseWords = signal{Points: 4, Cap: 20, Terms: []string{
		"edge case", "corner case", "boundary", "limit", "exception", "error handling",
		"failure", "fallback", "contingency", "what if", "edge condition",
	}}

	scaleWords = signal{Points: 2, Cap: 10, Terms: []string{
		"scale", "scaling", "growth", "volume", "load", "capacity", "throughput",
		"million", "billion", "users", "requests", "data size",
	}}
)

// Communication signals.
var (
	professionalTerms = signal{Points: 3, Cap: 20, Terms: []string{
		"implement", "develop", "architect", "design", "optimize", "analyze",
		"evaluate", "assess", "collaborate", "coordinate", "facilitate", "deliver",
	}}

	explanationWords = signal{Points: 4, Cap: 25, Terms: []string{
		"because", "therefore", "however", "moreover", "furthermore", "consequently",
		"as a result", "in addition", "for example", "specifically", "in particular",
	}}

	confidenceWords = signal{Points: 3, Cap: 15, Terms: []string{
		"confident", "experienced", "successfully", "achieved", "delivered",
		"proven", "demonstrated", "expertise", "proficient", "skilled",
	}}
)

// Innovation signals.
var (
	innovationWords = signal{Points: 5, Cap: 25, Terms: []string{
		"innovative", "creative", "novel", "unique", "original", "breakthrough",
		"disruptive", "revolutionary", "cutting-edge", "state-of-the-art",
		"reimagine", "rethink", "reinvent", "transform", "paradigm",
	}}

	alternativeWords = signal{Points: 4, Cap: 20, Terms: []string{
		"alternative", "different approach", "another way", "alternatively",
		"option", "variation", "modification", "adaptation", "customization",
	}}

	futureWords = signal{Points: 4, Cap: 20, Terms: []string{
		"future", "evolve", "adapt", "scale", "extend", "enhance", "improve",
		"next generation", "roadmap", "vision", "long-term", "strategic",
	}}

	creativeWords = signal{Points: 5, Cap: 25, Terms: []string{
		"creative", "outside the box", "unconventional", "non-traditional",
		"experimental", "prototype", "proof of concept", "pilot", "trial",
	}}

	trendWords = signal{Points: 2, Cap: 10, Terms: []string{
		"ai", "machine learning", "blockchain", "cloud native", "serverless",
		"microservices", "containerization", "devops", "automation", "iot",
	}}
)

// Leadership signals.
var (
	leadershipActions = signal{Points: 5, Cap: 30, Terms: []string{
		"led", "managed", "coordinated", "organized", "facilitated", "guided",
		"mentored", "coached", "influenced", "motivated", "inspired", "empowered",
	}}

	decisionWords = signal{Points: 5, Cap: 25, Terms: []string{
		"decided", "chose", "selected", "determined", "concluded", "resolved",
		"judgment", "decision", "choice", "option", "recommendation",
	}}

	teamWords = signal{Points: 4, Cap: 20, Terms: []string{
		"team", "collaborate", "cooperation", "partnership", "stakeholder",
		"cross-functional", "interdisciplinary", "coordination", "alignment",
	}}

	ownershipWords = signal{Points: 5, Cap: 25, Terms: []string{
		"ownership", "responsible", "accountable", "committed", "dedicated",
		"initiative", "proactive", "drive", "champion", "advocate",
	}}
)

// System thinking signals.
var (
	systemWords = signal{Points: 3, Cap: 25, Terms: []string{
		"system", "architecture", "ecosystem", "infrastructure", "platform",
		"framework", "integration", "interface", "api", "service",
	}}

	holisticWords = signal{Points: 4, Cap: 20, Terms: []string{
		"holistic", "comprehensive", "end-to-end", "overall", "complete",
		"entire", "whole", "full picture", "big picture", "overview",
	}}

	dependencyWords = signal{Points: 5, Cap: 25, Terms: []string{
		"dependency", "relationship", "connection", "interaction", "integration",
		"coupling", "cohesion", "interface", "contract", "protocol",
	}}

	impactWords = signal{Points: 6, Cap: 30, Terms: []string{
		"impact", "effect", "consequence", "result", "outcome", "implication",
		"ripple effect", "downstream", "upstream", "cascading",
	}}
)
