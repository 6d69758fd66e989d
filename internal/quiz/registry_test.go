package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripify-backend/internal/mood"
)

func twoOptions(id int) Question {
	return Question{ID: id, Prompt: "q", Options: []string{"a", "b"}}
}

func TestNewRegistryValidation(t *testing.T) {
	cases := []struct {
		name      string
		questions []Question
		wantErr   string
	}{
		{"empty", nil, "no questions"},
		{"id out of range", []Question{twoOptions(2)}, "outside 1..1"},
		{"duplicate id", []Question{twoOptions(1), twoOptions(1)}, "duplicate question id 1"},
		{"blank prompt", []Question{{ID: 1, Prompt: "  ", Options: []string{"a", "b"}}}, "empty prompt"},
		{"too few options", []Question{{ID: 1, Prompt: "q", Options: []string{"a"}}}, "has 1 options"},
		{"too many options", []Question{{ID: 1, Prompt: "q", Options: []string{"a", "b", "c", "d", "e", "f", "g"}}}, "has 7 options"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewRegistry(c.questions)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
		})
	}
}

func TestRegistryQuestionsAreCopies(t *testing.T) {
	registry, err := NewRegistry([]Question{twoOptions(2), twoOptions(1)})
	require.NoError(t, err)

	questions, err := registry.Questions()
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 2, questions[0].ID, "schema order is preserved")

	questions[0].Options[0] = "mutated"
	again, err := registry.Questions()
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Options[0])

	single, ok := registry.Question(1)
	require.True(t, ok)
	single.Options[1] = "mutated"
	stored, _ := registry.Question(1)
	assert.Equal(t, "b", stored.Options[1])
}

func TestRegistryNotLoaded(t *testing.T) {
	var registry *Registry
	_, err := registry.Questions()
	assert.ErrorIs(t, err, ErrSchemaNotLoaded)

	_, ok := registry.Question(1)
	assert.False(t, ok)
}

func TestWeightTableValidation(t *testing.T) {
	registry, err := NewRegistry([]Question{twoOptions(1)})
	require.NoError(t, err)
	one := mood.Vector{1, 0, 0, 0}

	_, err = NewWeightTable(registry, []WeightEntry{{QuestionID: 1, Option: 0, Weights: one}})
	var missing *UnknownAnswerError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 1, missing.QuestionID)
	assert.Equal(t, 1, missing.Option)

	_, err = NewWeightTable(registry, []WeightEntry{{QuestionID: 2, Option: 0, Weights: one}})
	assert.ErrorContains(t, err, "unknown question 2")

	_, err = NewWeightTable(registry, []WeightEntry{{QuestionID: 1, Option: 2, Weights: one}})
	assert.ErrorContains(t, err, "option 2")

	_, err = NewWeightTable(registry, []WeightEntry{
		{QuestionID: 1, Option: 0, Weights: one},
		{QuestionID: 1, Option: 0, Weights: one},
	})
	assert.ErrorContains(t, err, "duplicate weights")

	_, err = NewWeightTable(registry, []WeightEntry{
		{QuestionID: 1, Option: 0, Weights: one},
		{QuestionID: 1, Option: 1, Weights: mood.Vector{0, -2, 0, 0}},
	})
	var weightErr *mood.InvalidWeightError
	assert.ErrorAs(t, err, &weightErr)

	_, err = NewWeightTable(nil, nil)
	assert.ErrorIs(t, err, ErrSchemaNotLoaded)
}

func TestWeightsForUnknownPair(t *testing.T) {
	registry, weights, err := LoadDefault()
	require.NoError(t, err)

	v, err := weights.WeightsFor(1, 0)
	require.NoError(t, err)
	assert.Equal(t, mood.Vector{0, 3, 2, 0}, v)

	_, err = weights.WeightsFor(1, registry.Len())
	var unknown *UnknownAnswerError
	assert.ErrorAs(t, err, &unknown)
}

func TestLoadRejectsBrokenDefinitions(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			"unknown mood",
			`questions:
  - id: 1
    question: q
    options:
      - {text: a, weights: {happy: 1}}
      - {text: b, weights: {calm: 1}}`,
			"unknown mood",
		},
		{
			"option without weights",
			`questions:
  - id: 1
    question: q
    options:
      - {text: a, weights: {calm: 1}}
      - {text: b}`,
			"incomplete weight table",
		},
		{
			"unknown field",
			`questions:
  - id: 1
    prompt: q`,
			"decode quiz definition",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := Load(strings.NewReader(c.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
		})
	}
}

func TestNewEngineFromFile(t *testing.T) {
	engine, err := NewEngineFromFile("")
	require.NoError(t, err)
	assert.Equal(t, 10, engine.Registry().Len())

	_, err = NewEngineFromFile("does-not-exist.yaml")
	assert.ErrorContains(t, err, "open quiz definition")
}
