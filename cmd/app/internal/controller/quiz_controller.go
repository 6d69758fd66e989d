package controller

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripify-backend/internal/quiz"
	"tripify-backend/internal/repository"
	"tripify-backend/internal/service"
	"tripify-backend/utilities"
)

type QuizController struct {
	MoodService service.MoodService
}

func NewQuizController(moodService service.MoodService) *QuizController {
	return &QuizController{MoodService: moodService}
}

type calculateMoodRequest struct {
	UserID  string         `json:"userId"`
	Answers map[string]int `json:"answers"`
}

// moodResponse is the scoring result contract plus its rounded display form.
type moodResponse struct {
	UserID       string             `json:"userId"`
	MoodScores   quiz.MoodScores    `json:"moodScores"`
	DominantMood string             `json:"dominantMood"`
	CreatedAt    time.Time          `json:"createdAt"`
	Display      quiz.DisplayResult `json:"display"`
}

func newMoodResponse(r quiz.Result) moodResponse {
	return moodResponse{
		UserID:       r.UserID,
		MoodScores:   quiz.NewMoodScores(r.Scores),
		DominantMood: r.DominantMood.String(),
		CreatedAt:    r.CreatedAt,
		Display:      quiz.Format(r),
	}
}

// GetQuestions handles GET /quiz/questions
func (qc *QuizController) GetQuestions(c *gin.Context) {
	questions, err := qc.MoodService.Questions()
	if err != nil {
		qc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// CalculateMood handles POST /quiz/calculate-mood
func (qc *QuizController) CalculateMood(c *gin.Context) {
	var req calculateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: expected {userId, answers}"})
		return
	}

	userID, ok := resolveUser(c, strings.TrimSpace(req.UserID))
	if !ok {
		return
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	answers, badKey := parseAnswerKeys(req.Answers)
	if badKey != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     fmt.Sprintf("answer key %q is not a question id", badKey),
			"answerKey": badKey,
		})
		return
	}

	result, err := qc.MoodService.CalculateMood(c.Request.Context(), userID, answers)
	if err != nil {
		qc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMoodResponse(result))
}

// GetMoodHistory handles GET /quiz/mood-history/:user_id
func (qc *QuizController) GetMoodHistory(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}
	history, err := qc.MoodService.History(c.Request.Context(), userID)
	if err != nil {
		qc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moodHistory": history})
}

// GetOverview handles GET /quiz/mood-history/:user_id/overview
func (qc *QuizController) GetOverview(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}
	overview, err := qc.MoodService.Overview(c.Request.Context(), userID)
	if err != nil {
		qc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// DownloadReport handles GET /quiz/mood-history/:user_id/report
func (qc *QuizController) DownloadReport(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}
	report, err := qc.MoodService.Report(c.Request.Context(), userID)
	if err != nil {
		qc.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=mood_report.pdf")
	c.Data(http.StatusOK, "application/pdf", report)
}

// GetLatestMood handles GET /quiz/mood/latest/:user_id
func (qc *QuizController) GetLatestMood(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}
	result, err := qc.MoodService.Latest(c.Request.Context(), userID)
	if err != nil {
		qc.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMoodResponse(result))
}

// parseAnswerKeys converts question-id keys to ints. Only the canonical decimal
// spelling is accepted, so no two keys can name the same question. On failure
// the first offending key in sorted order is returned.
func parseAnswerKeys(raw map[string]int) (quiz.AnswerSet, string) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	answers := make(quiz.AnswerSet, len(raw))
	for _, key := range keys {
		id, err := strconv.Atoi(key)
		if err != nil || strconv.Itoa(id) != key {
			return nil, key
		}
		answers[id] = raw[key]
	}
	return answers, ""
}

// resolveUser returns the user the request acts for. An authenticated caller may
// only act for itself; anonymous callers are taken at their word.
func resolveUser(c *gin.Context, claimed string) (string, bool) {
	tokenUser, ok := utilities.AuthenticatedUserID(c)
	if !ok {
		return claimed, true
	}
	if claimed != "" && claimed != tokenUser {
		c.JSON(http.StatusForbidden, gin.H{"error": "userId does not match the authenticated user"})
		return "", false
	}
	return tokenUser, true
}

func (qc *QuizController) respondError(c *gin.Context, err error) {
	var incomplete *quiz.IncompleteAnswersError
	var invalid *quiz.InvalidOptionError
	var unknown *quiz.UnknownQuestionError

	switch {
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "missingQuestionIds": incomplete.Missing})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "questionIds": invalid.QuestionIDs})
	case errors.As(err, &unknown):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "questionIds": unknown.QuestionIDs})
	case errors.Is(err, repository.ErrMoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No mood results found"})
	default:
		utilities.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
