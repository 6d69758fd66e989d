package quiz

import (
	"fmt"

	"tripify-backend/internal/mood"
)

type answerKey struct {
	questionID int
	option     int
}

// WeightTable maps every (question, option) pair of a registry to the mood
// vector that answer contributes. It is immutable after construction.
type WeightTable struct {
	weights map[answerKey]mood.Vector
}

// WeightEntry is one row of the weight table as supplied by configuration.
type WeightEntry struct {
	QuestionID int
	Option     int
	Weights    mood.Vector
}

// NewWeightTable builds the table and checks it against the registry: each
// option of each question must have exactly one entry, with valid weights, and
// no entry may point outside the schema.
func NewWeightTable(registry *Registry, entries []WeightEntry) (*WeightTable, error) {
	if registry.Len() == 0 {
		return nil, ErrSchemaNotLoaded
	}

	t := &WeightTable{weights: make(map[answerKey]mood.Vector, len(entries))}
	for _, e := range entries {
		q, ok := registry.Question(e.QuestionID)
		if !ok {
			return nil, fmt.Errorf("weights reference unknown question %d", e.QuestionID)
		}
		if e.Option < 0 || e.Option >= len(q.Options) {
			return nil, fmt.Errorf("weights reference question %d option %d, question has %d options", e.QuestionID, e.Option, len(q.Options))
		}
		if err := e.Weights.Validate(); err != nil {
			return nil, fmt.Errorf("question %d option %d: %w", e.QuestionID, e.Option, err)
		}
		key := answerKey{questionID: e.QuestionID, option: e.Option}
		if _, dup := t.weights[key]; dup {
			return nil, fmt.Errorf("duplicate weights for question %d option %d", e.QuestionID, e.Option)
		}
		t.weights[key] = e.Weights
	}

	var missing error
	registry.each(func(q Question) {
		if missing != nil {
			return
		}
		for opt := range q.Options {
			if _, ok := t.weights[answerKey{questionID: q.ID, option: opt}]; !ok {
				missing = &UnknownAnswerError{QuestionID: q.ID, Option: opt}
				return
			}
		}
	})
	if missing != nil {
		return nil, fmt.Errorf("incomplete weight table: %w", missing)
	}
	return t, nil
}

// WeightsFor returns the contribution of choosing option on questionID.
func (t *WeightTable) WeightsFor(questionID, option int) (mood.Vector, error) {
	if t == nil {
		return mood.Vector{}, ErrSchemaNotLoaded
	}
	v, ok := t.weights[answerKey{questionID: questionID, option: option}]
	if !ok {
		return mood.Vector{}, &UnknownAnswerError{QuestionID: questionID, Option: option}
	}
	return v, nil
}
