package quiz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Configuration errors. These mean the service is misconfigured, not that the
// caller sent something wrong.
var (
	ErrSchemaNotLoaded  = errors.New("quiz schema not loaded")
	ErrDegenerateScores = errors.New("weight table produced a zero total")
)

// IncompleteAnswersError lists the question ids that have no answer.
type IncompleteAnswersError struct {
	Missing []int
}

func (e *IncompleteAnswersError) Error() string {
	return "incomplete answers: missing question ids " + joinIDs(e.Missing)
}

// InvalidOptionError lists the questions whose chosen option index is out of range.
type InvalidOptionError struct {
	QuestionIDs []int
}

func (e *InvalidOptionError) Error() string {
	return "invalid option index for question ids " + joinIDs(e.QuestionIDs)
}

// UnknownQuestionError lists answer keys that do not name a question in the schema.
type UnknownQuestionError struct {
	QuestionIDs []int
}

func (e *UnknownQuestionError) Error() string {
	return "unknown question ids " + joinIDs(e.QuestionIDs)
}

// UnknownAnswerError means the weight table has no entry for a reachable
// (question, option) pair.
type UnknownAnswerError struct {
	QuestionID int
	Option     int
}

func (e *UnknownAnswerError) Error() string {
	return fmt.Sprintf("no weights configured for question %d option %d", e.QuestionID, e.Option)
}

// IsValidationError reports whether err was caused by the submitted answers
// rather than by configuration.
func IsValidationError(err error) bool {
	var incomplete *IncompleteAnswersError
	var invalid *InvalidOptionError
	var unknown *UnknownQuestionError
	return errors.As(err, &incomplete) || errors.As(err, &invalid) || errors.As(err, &unknown)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
