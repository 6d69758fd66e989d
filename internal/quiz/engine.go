package quiz

import (
	"sort"
	"time"

	"tripify-backend/internal/mood"
)

// tieEpsilon is the tolerance under which two percentages count as equal when
// picking the dominant mood.
const tieEpsilon = 1e-9

// AnswerSet maps a question id to the zero-based index of the chosen option.
type AnswerSet map[int]int

// Engine turns a complete answer set into a mood distribution. It keeps no
// state between calls and may be used from many goroutines at once.
type Engine struct {
	registry *Registry
	weights  *WeightTable
	now      func() time.Time
}

type EngineOption func(*Engine)

// WithClock overrides the time source used for Result.CreatedAt.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(registry *Registry, weights *WeightTable, opts ...EngineOption) (*Engine, error) {
	if registry.Len() == 0 || weights == nil {
		return nil, ErrSchemaNotLoaded
	}
	e := &Engine{
		registry: registry,
		weights:  weights,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Registry exposes the schema the engine scores against.
func (e *Engine) Registry() *Registry {
	if e == nil {
		return nil
	}
	return e.registry
}

// Score validates answers against the schema, sums the weight vectors of the
// chosen options, normalises the totals to percentages and picks the dominant
// mood. userID is echoed into the result unchecked.
func (e *Engine) Score(userID string, answers AnswerSet) (Result, error) {
	if e == nil || e.registry.Len() == 0 {
		return Result{}, ErrSchemaNotLoaded
	}
	if err := e.validate(answers); err != nil {
		return Result{}, err
	}

	var totals mood.Vector
	var lookupErr error
	e.registry.each(func(q Question) {
		if lookupErr != nil {
			return
		}
		w, err := e.weights.WeightsFor(q.ID, answers[q.ID])
		if err != nil {
			lookupErr = err
			return
		}
		totals = totals.Add(w)
	})
	if lookupErr != nil {
		return Result{}, lookupErr
	}

	total := totals.Sum()
	if total == 0 {
		return Result{}, ErrDegenerateScores
	}

	var scores mood.Vector
	for _, m := range mood.All {
		scores[m] = 100 * totals[m] / total
	}

	return Result{
		UserID:       userID,
		Scores:       scores,
		DominantMood: Dominant(scores),
		CreatedAt:    e.now(),
	}, nil
}

// Dominant returns the first mood in mood.All whose score is within tieEpsilon
// of the highest score.
func Dominant(scores mood.Vector) mood.Mood {
	highest := scores[mood.All[0]]
	for _, m := range mood.All[1:] {
		if scores[m] > highest {
			highest = scores[m]
		}
	}
	for _, m := range mood.All {
		if scores[m] >= highest-tieEpsilon {
			return m
		}
	}
	return mood.All[0]
}

func (e *Engine) validate(answers AnswerSet) error {
	var missing, outOfRange []int
	e.registry.each(func(q Question) {
		opt, ok := answers[q.ID]
		if !ok {
			missing = append(missing, q.ID)
			return
		}
		if opt < 0 || opt >= len(q.Options) {
			outOfRange = append(outOfRange, q.ID)
		}
	})
	if len(missing) > 0 {
		return &IncompleteAnswersError{Missing: missing}
	}

	var unknown []int
	for id := range answers {
		if _, ok := e.registry.Question(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Ints(unknown)
		return &UnknownQuestionError{QuestionIDs: unknown}
	}

	if len(outOfRange) > 0 {
		return &InvalidOptionError{QuestionIDs: outOfRange}
	}
	return nil
}
