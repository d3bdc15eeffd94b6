package evalcache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Key families. The family prefix keeps answer-evaluation and
// question-generation entries from ever colliding.
const (
	evalKeyPrefix = "eval"
	qgenKeyPrefix = "qgen"
)

// Only a bounded prefix of the question and answer feeds the key, mirroring
// the bounded prompt the assist client sends.
const (
	questionKeyChars = 50
	answerKeyChars   = 100
	keyDigestChars   = 32
)

// EvaluationKey derives the cache key for an answer evaluation. Inputs are
// normalized before hashing, so keys are deterministic across incidental
// whitespace and casing differences.
func EvaluationKey(role, question, answer string) string {
	material := strings.Join([]string{
		normalize(role),
		truncateRunes(normalize(question), questionKeyChars),
		truncateRunes(normalize(answer), answerKeyChars),
	}, "|")
	return evalKeyPrefix + ":" + digest(material)
}

// QuestionSetKey derives the cache key for a generated question set. Skills
// are deduplicated and sorted so the key is independent of input order.
func QuestionSetKey(role, experienceBucket string, skills []string) string {
	material := strings.Join([]string{
		normalize(role),
		normalize(experienceBucket),
		strings.Join(normalizeSkills(skills), ","),
	}, "|")
	return qgenKeyPrefix + ":" + digest(material)
}

// normalize lowercases and collapses all internal whitespace to single
// spaces, trimming the ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		s := normalize(skill)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func digest(material string) string {
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])[:keyDigestChars]
}
