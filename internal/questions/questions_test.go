package questions

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-assessor/internal/assist"
	"github.com/jonathan/candidate-assessor/internal/evalcache"
	"github.com/jonathan/candidate-assessor/internal/types"
)

type fakeSource struct {
	outcome assist.QuestionsOutcome
	calls   int
	lastReq assist.QuestionsRequest
}

func (f *fakeSource) GenerateQuestions(_ context.Context, req assist.QuestionsRequest) assist.QuestionsOutcome {
	f.calls++
	f.lastReq = req
	return f.outcome
}

func testProfile(years int, skills ...string) *types.CandidateProfile {
	return &types.CandidateProfile{
		Name:            "Jane Doe",
		ExperienceYears: years,
		Skills:          types.SkillSet{All: skills, TotalCount: len(skills)},
	}
}

func assistedSet(n int) []types.Question {
	set := make([]types.Question, 0, n)
	texts := []string{
		"Explain how Go's scheduler multiplexes goroutines onto threads.",
		"How would you shard a PostgreSQL table that outgrew one node?",
		"Describe a caching bug you have debugged.",
		"Walk through a deploy that went wrong and what you changed afterwards.",
		"What would you prototype first in a greenfield service?",
	}
	for i := 0; i < n; i++ {
		set = append(set, types.Question{
			Index:      i + 1,
			Text:       texts[i%len(texts)],
			Category:   types.CategoryTechnical,
			Difficulty: TierSenior,
		})
	}
	return set
}

func TestExperienceTier(t *testing.T) {
	cases := []struct {
		years int
		want  string
	}{
		{0, TierEntry},
		{1, TierEntry},
		{2, TierMid},
		{4, TierMid},
		{5, TierSenior},
		{9, TierSenior},
		{10, TierPrincipal},
		{30, TierPrincipal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExperienceTier(tc.years), "years=%d", tc.years)
	}
}

func TestRoleFamily(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"Software Engineer", FamilySoftwareEngineer},
		{"Senior Backend Software Engineer", FamilyBackend},
		{"Front End Developer", FamilyFrontend},
		{"ML Engineer", FamilyDataScientist},
		{"Data Scientist", FamilyDataScientist},
		{"Site Reliability Engineer", FamilyDevOps},
		{"DevOps Lead", FamilyDevOps},
		{"Full Stack Developer", FamilySoftwareEngineer},
		{"Head of Marketing", FamilyGeneric},
		{"", FamilyGeneric},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoleFamily(tc.role), "role=%q", tc.role)
	}
}

func TestFromBank_CoversCategoriesInOrder(t *testing.T) {
	set := FromBank("Software Engineer", TierMid, []string{"Go"}, 5)
	require.Len(t, set, 5)

	wantCategories := []string{
		types.CategoryTechnical,
		types.CategoryProblemSolving,
		types.CategorySystemDesign,
		types.CategoryBehavioral,
		types.CategoryInnovation,
	}
	for i, q := range set {
		assert.Equal(t, i+1, q.Index)
		assert.NotEmpty(t, q.Text)
		assert.Equal(t, wantCategories[i], q.Category)
		assert.Equal(t, TierMid, q.Difficulty)
	}
}

func TestFromBank_SubstitutesTopSkill(t *testing.T) {
	set := FromBank("Software Engineer", TierEntry, []string{"Go", "PostgreSQL"}, 5)
	assert.Contains(t, set[0].Text, "Go")
	assert.NotContains(t, set[0].Text, skillPlaceholder)

	set = FromBank("Software Engineer", TierEntry, nil, 5)
	assert.Contains(t, set[0].Text, "your primary stack")
}

func TestFromBank_NoPlaceholderSurvivesAnywhere(t *testing.T) {
	roles := []string{
		"Software Engineer", "Data Scientist", "DevOps Engineer",
		"Frontend Engineer", "Backend Engineer", "Astronaut",
	}
	tiers := []string{TierEntry, TierMid, TierSenior, TierPrincipal}
	for _, role := range roles {
		for _, tier := range tiers {
			for _, q := range FromBank(role, tier, nil, 20) {
				assert.NotContains(t, q.Text, skillPlaceholder, "role=%s tier=%s", role, tier)
			}
		}
	}
}

func TestFromBank_LargerCountsStayUnique(t *testing.T) {
	set := FromBank("Backend Engineer", TierSenior, []string{"Go"}, 8)
	require.Len(t, set, 8)

	seen := make(map[string]bool, len(set))
	for i, q := range set {
		assert.Equal(t, i+1, q.Index)
		assert.NotEmpty(t, q.Text)
		assert.False(t, seen[q.Text], "duplicate question: %s", q.Text)
		seen[q.Text] = true
	}
}

func TestFromBank_UnknownTierFallsBackToMid(t *testing.T) {
	weird := FromBank("Software Engineer", "galactic", nil, 5)
	mid := FromBank("Software Engineer", TierMid, nil, 5)
	for i := range weird {
		assert.Equal(t, mid[i].Text, weird[i].Text)
	}
}

func TestGenerator_BankOnlyWithoutSourceOrCache(t *testing.T) {
	g := NewGenerator(nil, nil, nil)

	set := g.Generate(context.Background(), "Software Engineer", testProfile(3, "Go"), 0)
	require.Len(t, set, DefaultCount)
	for i, q := range set {
		assert.Equal(t, i+1, q.Index)
		assert.NotEmpty(t, q.Text)
		assert.Equal(t, TierMid, q.Difficulty)
	}
}

func TestGenerator_UsesAssistedSetAndCaches(t *testing.T) {
	source := &fakeSource{outcome: assist.QuestionsOutcome{
		Status:    assist.StatusSuccess,
		Questions: assistedSet(5),
	}}
	cache := evalcache.NewMemory()
	g := NewGenerator(source, cache, nil)
	profile := testProfile(6, "Go", "PostgreSQL")

	first := g.Generate(context.Background(), "Software Engineer", profile, 5)
	require.Len(t, first, 5)
	assert.Equal(t, assistedSet(5)[0].Text, first[0].Text)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1, cache.Len())

	second := g.Generate(context.Background(), "Software Engineer", profile, 5)
	require.Len(t, second, 5)
	assert.Equal(t, 1, source.calls, "cached set should satisfy the second request")
	for i := range first {
		assert.Equal(t, first[i].Text, second[i].Text)
	}
}

func TestGenerator_RequestCarriesProfileFacts(t *testing.T) {
	source := &fakeSource{outcome: assist.QuestionsOutcome{
		Status:    assist.StatusSuccess,
		Questions: assistedSet(5),
	}}
	g := NewGenerator(source, nil, nil)

	g.Generate(context.Background(), "Backend Engineer", testProfile(6, "Go", "Redis"), 5)

	assert.Equal(t, "Backend Engineer", source.lastReq.Role)
	assert.Equal(t, 6, source.lastReq.Years)
	assert.Equal(t, []string{"Go", "Redis"}, source.lastReq.Skills)
	assert.Equal(t, 5, source.lastReq.Count)
	assert.Equal(t, TierSenior, source.lastReq.Difficulty)
}

func TestGenerator_AssistFailureFallsBackToBank(t *testing.T) {
	source := &fakeSource{outcome: assist.QuestionsOutcome{Status: assist.StatusUnavailable}}
	cache := evalcache.NewMemory()
	g := NewGenerator(source, cache, nil)
	profile := testProfile(1, "Python")

	set := g.Generate(context.Background(), "Data Scientist", profile, 5)
	require.Len(t, set, 5)

	bank := FromBank("Data Scientist", TierEntry, []string{"Python"}, 5)
	for i := range set {
		assert.Equal(t, bank[i].Text, set[i].Text)
	}
	assert.Equal(t, 0, cache.Len(), "failed assist runs must not be cached")

	g.Generate(context.Background(), "Data Scientist", profile, 5)
	assert.Equal(t, 2, source.calls, "nothing cached, so assist is retried")
}

func TestGenerator_TopsUpShortAssistedSets(t *testing.T) {
	source := &fakeSource{outcome: assist.QuestionsOutcome{
		Status:    assist.StatusSuccess,
		Questions: assistedSet(2),
	}}
	g := NewGenerator(source, nil, nil)

	set := g.Generate(context.Background(), "Software Engineer", testProfile(6, "Go"), 5)
	require.Len(t, set, 5)
	assert.Equal(t, assistedSet(2)[0].Text, set[0].Text)
	assert.Equal(t, assistedSet(2)[1].Text, set[1].Text)
	for i, q := range set {
		assert.Equal(t, i+1, q.Index)
		assert.NotEmpty(t, q.Text)
	}
}

func TestGenerator_DropsBlankAssistedQuestions(t *testing.T) {
	broken := assistedSet(5)
	broken[2].Text = "   "
	source := &fakeSource{outcome: assist.QuestionsOutcome{
		Status:    assist.StatusSuccess,
		Questions: broken,
	}}
	g := NewGenerator(source, nil, nil)

	set := g.Generate(context.Background(), "Software Engineer", testProfile(6, "Go"), 5)
	require.Len(t, set, 5)
	for i, q := range set {
		assert.Equal(t, i+1, q.Index)
		assert.NotEmpty(t, q.Text)
	}
}

func TestGenerator_DiscardsCorruptCacheEntry(t *testing.T) {
	profile := testProfile(6, "Go")
	key := evalcache.QuestionSetKey("Software Engineer", TierSenior, profile.Skills.All)

	cache := evalcache.NewMemory()
	require.NoError(t, cache.Put(context.Background(), key, []byte("not json")))

	source := &fakeSource{outcome: assist.QuestionsOutcome{
		Status:    assist.StatusSuccess,
		Questions: assistedSet(5),
	}}
	g := NewGenerator(source, cache, nil)

	set := g.Generate(context.Background(), "Software Engineer", profile, 5)
	require.Len(t, set, 5)
	assert.Equal(t, 1, source.calls, "corrupt entry must fall through to assist")

	raw, ok, err := cache.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, string(mustJSON(t, set)), string(raw), "good set should replace the corrupt entry")
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
