package quiz

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tripify-backend/internal/mood"
)

//go:embed data/quiz.yaml
var defaultDefinition []byte

type definitionFile struct {
	Questions []questionDef `yaml:"questions"`
}

type questionDef struct {
	ID       int         `yaml:"id"`
	Question string      `yaml:"question"`
	Options  []optionDef `yaml:"options"`
}

type optionDef struct {
	Text    string             `yaml:"text"`
	Weights map[string]float64 `yaml:"weights"`
}

// Load parses a quiz definition and returns its validated registry and weight
// table. Any inconsistency is an error; nothing is defaulted.
func Load(r io.Reader) (*Registry, *WeightTable, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def definitionFile
	if err := dec.Decode(&def); err != nil {
		return nil, nil, fmt.Errorf("decode quiz definition: %w", err)
	}

	questions := make([]Question, 0, len(def.Questions))
	var entries []WeightEntry
	for _, q := range def.Questions {
		options := make([]string, 0, len(q.Options))
		for i, opt := range q.Options {
			options = append(options, opt.Text)
			if opt.Weights == nil {
				continue
			}
			v, err := mood.FromMap(opt.Weights)
			if err != nil {
				return nil, nil, fmt.Errorf("question %d option %d: %w", q.ID, i, err)
			}
			entries = append(entries, WeightEntry{QuestionID: q.ID, Option: i, Weights: v})
		}
		questions = append(questions, Question{ID: q.ID, Prompt: q.Question, Options: options})
	}

	registry, err := NewRegistry(questions)
	if err != nil {
		return nil, nil, err
	}
	weights, err := NewWeightTable(registry, entries)
	if err != nil {
		return nil, nil, err
	}
	return registry, weights, nil
}

// LoadFile loads a quiz definition from disk.
func LoadFile(path string) (*Registry, *WeightTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open quiz definition: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// LoadDefault loads the quiz definition compiled into the binary.
func LoadDefault() (*Registry, *WeightTable, error) {
	return Load(bytes.NewReader(defaultDefinition))
}

// NewEngineFromFile builds an engine from path, or from the built-in
// definition when path is empty.
func NewEngineFromFile(path string, opts ...EngineOption) (*Engine, error) {
	var (
		registry *Registry
		weights  *WeightTable
		err      error
	)
	if path == "" {
		registry, weights, err = LoadDefault()
	} else {
		registry, weights, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return NewEngine(registry, weights, opts...)
}
