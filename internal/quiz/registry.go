package quiz

import (
	"fmt"
	"strings"
)

const (
	MinOptions = 2
	MaxOptions = 6
)

// Question is one quiz prompt with its ordered options.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// Registry holds the fixed, ordered list of quiz questions. It is read-only
// once constructed and safe for concurrent use.
type Registry struct {
	questions []Question
	index     map[int]int
}

// NewRegistry validates the questions and takes a private copy of them.
// Ids must be unique and cover exactly 1..N.
func NewRegistry(questions []Question) (*Registry, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz schema has no questions")
	}

	r := &Registry{
		questions: make([]Question, 0, len(questions)),
		index:     make(map[int]int, len(questions)),
	}
	for _, q := range questions {
		if q.ID < 1 || q.ID > len(questions) {
			return nil, fmt.Errorf("question id %d outside 1..%d", q.ID, len(questions))
		}
		if _, dup := r.index[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("question %d has an empty prompt", q.ID)
		}
		if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
			return nil, fmt.Errorf("question %d has %d options, want %d-%d", q.ID, len(q.Options), MinOptions, MaxOptions)
		}

		r.index[q.ID] = len(r.questions)
		r.questions = append(r.questions, Question{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: append([]string(nil), q.Options...),
		})
	}
	return r, nil
}

// Questions returns the questions in schema order. The result is a copy.
func (r *Registry) Questions() ([]Question, error) {
	if r == nil || len(r.questions) == 0 {
		return nil, ErrSchemaNotLoaded
	}
	out := make([]Question, len(r.questions))
	for i, q := range r.questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out, nil
}

// Question looks up a single question by id.
func (r *Registry) Question(id int) (Question, bool) {
	if r == nil {
		return Question{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return Question{}, false
	}
	q := r.questions[i]
	q.Options = append([]string(nil), q.Options...)
	return q, true
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.questions)
}

// each iterates the questions in schema order without copying.
func (r *Registry) each(fn func(Question)) {
	for _, q := range r.questions {
		fn(q)
	}
}
