package quiz

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripify-backend/internal/mood"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, questions []Question, entries []WeightEntry) *Engine {
	t.Helper()
	registry, err := NewRegistry(questions)
	require.NoError(t, err)
	weights, err := NewWeightTable(registry, entries)
	require.NoError(t, err)
	engine, err := NewEngine(registry, weights, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return engine
}

func singleQuestionEngine(t *testing.T, first, second mood.Vector) *Engine {
	return newTestEngine(t,
		[]Question{{ID: 1, Prompt: "pick one", Options: []string{"a", "b"}}},
		[]WeightEntry{
			{QuestionID: 1, Option: 0, Weights: first},
			{QuestionID: 1, Option: 1, Weights: second},
		},
	)
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	registry, weights, err := LoadDefault()
	require.NoError(t, err)
	engine, err := NewEngine(registry, weights, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return engine
}

func uniformAnswers(n, option int) AnswerSet {
	answers := make(AnswerSet, n)
	for id := 1; id <= n; id++ {
		answers[id] = option
	}
	return answers
}

func TestScoreSingleQuestionScenarios(t *testing.T) {
	engine := singleQuestionEngine(t, mood.Vector{1, 0, 0, 0}, mood.Vector{0, 1, 0, 0})

	got, err := engine.Score("user-1", AnswerSet{1: 0})
	require.NoError(t, err)
	assert.Equal(t, mood.Vector{100, 0, 0, 0}, got.Scores)
	assert.Equal(t, mood.Energetic, got.DominantMood)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, fixedNow, got.CreatedAt)

	got, err = engine.Score("user-1", AnswerSet{1: 1})
	require.NoError(t, err)
	assert.Equal(t, mood.Vector{0, 100, 0, 0}, got.Scores)
	assert.Equal(t, mood.Calm, got.DominantMood)
}

func TestScoreDefaultQuiz(t *testing.T) {
	engine := defaultEngine(t)
	n := engine.Registry().Len()
	require.Equal(t, 10, n)

	cases := []struct {
		option   int
		dominant mood.Mood
		scores   mood.Vector
	}{
		{0, mood.Energetic, mood.Vector{2000.0 / 46, 1100.0 / 46, 400.0 / 46, 1100.0 / 46}},
		{1, mood.Calm, mood.Vector{1400.0 / 46, 1500.0 / 46, 800.0 / 46, 900.0 / 46}},
		{2, mood.Introspective, mood.Vector{18.75, 1300.0 / 48, 1700.0 / 48, 18.75}},
		{3, mood.Introspective, mood.Vector{18, 20, 34, 28}},
	}
	for _, c := range cases {
		got, err := engine.Score("guest", uniformAnswers(n, c.option))
		require.NoError(t, err)
		assert.Equal(t, c.dominant, got.DominantMood, "option %d", c.option)
		for _, m := range mood.All {
			assert.InDelta(t, c.scores[m], got.Scores[m], 1e-9, "option %d mood %s", c.option, m)
		}
	}
}

func TestScoreIsDeterministicAndNormalised(t *testing.T) {
	engine := defaultEngine(t)
	answers := AnswerSet{1: 3, 2: 2, 3: 1, 4: 0, 5: 3, 6: 2, 7: 1, 8: 0, 9: 3, 10: 2}

	first, err := engine.Score("u", answers)
	require.NoError(t, err)
	second, err := engine.Score("u", answers)
	require.NoError(t, err)

	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.DominantMood, second.DominantMood)
	assert.InDelta(t, 100, first.Scores.Sum(), 1e-6)
}

func TestScoreRejectsIncompleteAnswers(t *testing.T) {
	engine := defaultEngine(t)
	answers := uniformAnswers(10, 0)
	delete(answers, 3)
	delete(answers, 7)

	_, err := engine.Score("u", answers)
	var incomplete *IncompleteAnswersError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []int{3, 7}, incomplete.Missing)
	assert.True(t, IsValidationError(err))

	_, err = engine.Score("u", AnswerSet{})
	require.ErrorAs(t, err, &incomplete)
	assert.Len(t, incomplete.Missing, 10)
}

func TestScoreRejectsOutOfRangeOption(t *testing.T) {
	engine := defaultEngine(t)
	answers := uniformAnswers(10, 1)
	answers[4] = 4
	answers[9] = -1

	_, err := engine.Score("u", answers)
	var invalid *InvalidOptionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []int{4, 9}, invalid.QuestionIDs)
	assert.True(t, IsValidationError(err))
}

func TestScoreRejectsUnknownQuestion(t *testing.T) {
	engine := defaultEngine(t)
	answers := uniformAnswers(10, 1)
	answers[42] = 0
	answers[0] = 0

	_, err := engine.Score("u", answers)
	var unknown *UnknownQuestionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []int{0, 42}, unknown.QuestionIDs)
}

func TestScoreTieBreaksByCanonicalOrder(t *testing.T) {
	cases := []struct {
		name    string
		weights mood.Vector
		want    mood.Mood
	}{
		{"energetic and calm", mood.Vector{1, 1, 0, 0}, mood.Energetic},
		{"calm and adventurous", mood.Vector{0, 2, 0, 2}, mood.Calm},
		{"introspective and adventurous", mood.Vector{0, 0, 5, 5}, mood.Introspective},
		{"all four", mood.Vector{1, 1, 1, 1}, mood.Energetic},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			engine := singleQuestionEngine(t, c.weights, mood.Vector{1, 0, 0, 0})
			for i := 0; i < 5; i++ {
				got, err := engine.Score("u", AnswerSet{1: 0})
				require.NoError(t, err)
				assert.Equal(t, c.want, got.DominantMood)
			}
		})
	}
}

func TestDominantToleratesRoundingNoise(t *testing.T) {
	assert.Equal(t, mood.Energetic, Dominant(mood.Vector{50, 50 + 1e-12, 0, 0}))
	assert.Equal(t, mood.Calm, Dominant(mood.Vector{50, 50 + 1e-6, 0, 0}))

	// Calm is within tolerance of the maximum even though energetic is not.
	assert.Equal(t, mood.Calm, Dominant(mood.Vector{50, 50 + 0.6e-9, 50 + 1.2e-9, 0}))
	assert.Equal(t, mood.Adventurous, Dominant(mood.Vector{10, 20, 30, 40}))
}

func TestScoreDegenerateWeights(t *testing.T) {
	engine := singleQuestionEngine(t, mood.Vector{}, mood.Vector{0, 1, 0, 0})

	_, err := engine.Score("u", AnswerSet{1: 0})
	assert.ErrorIs(t, err, ErrDegenerateScores)
	assert.False(t, IsValidationError(err))
}

func TestScoreWithoutSchema(t *testing.T) {
	var engine *Engine
	_, err := engine.Score("u", AnswerSet{1: 0})
	assert.ErrorIs(t, err, ErrSchemaNotLoaded)

	_, err = NewEngine(nil, nil)
	assert.ErrorIs(t, err, ErrSchemaNotLoaded)
}

func TestScoreConcurrentCalls(t *testing.T) {
	engine := defaultEngine(t)
	want, err := engine.Score("u", uniformAnswers(10, 2))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	errs := make([]error, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Score("u", uniformAnswers(10, 2))
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want.Scores, results[i].Scores)
		assert.Equal(t, want.DominantMood, results[i].DominantMood)
	}
}
