package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripify-backend/internal/cache"
	"tripify-backend/internal/model"
	"tripify-backend/internal/mood"
	"tripify-backend/internal/quiz"
	"tripify-backend/internal/repository"
	"tripify-backend/utilities"
)

// MoodHistoryEntry is one stored result as listed in a user's history.
type MoodHistoryEntry struct {
	ID           string          `json:"id"`
	MoodScores   quiz.MoodScores `json:"moodScores"`
	DominantMood string          `json:"dominantMood"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// MoodOverview compares a user's first and latest results and summarises the rest.
type MoodOverview struct {
	UserID         string           `json:"userId"`
	TotalResults   int64            `json:"totalResults"`
	Initial        MoodHistoryEntry `json:"initial"`
	Current        MoodHistoryEntry `json:"current"`
	Change         quiz.MoodScores  `json:"change"`
	DominantCounts map[string]int64 `json:"dominantCounts"`
	AverageScores  quiz.MoodScores  `json:"averageScores"`
}

type MoodService interface {
	Questions() ([]quiz.Question, error)
	CalculateMood(ctx context.Context, userID string, answers quiz.AnswerSet) (quiz.Result, error)
	History(ctx context.Context, userID string) ([]MoodHistoryEntry, error)
	Latest(ctx context.Context, userID string) (quiz.Result, error)
	Overview(ctx context.Context, userID string) (*MoodOverview, error)
	Report(ctx context.Context, userID string) ([]byte, error)
}

type moodService struct {
	engine   *quiz.Engine
	moodRepo repository.MoodRepository
	cache    *cache.MoodCache
	bus      *utilities.EventBus
	pageSize int
}

// NewMoodService wires the scoring engine to storage. cache and bus may be nil.
func NewMoodService(
	engine *quiz.Engine,
	moodRepo repository.MoodRepository,
	moodCache *cache.MoodCache,
	bus *utilities.EventBus,
	pageSize int,
) MoodService {
	return &moodService{
		engine:   engine,
		moodRepo: moodRepo,
		cache:    moodCache,
		bus:      bus,
		pageSize: pageSize,
	}
}

func (s *moodService) Questions() ([]quiz.Question, error) {
	return s.engine.Registry().Questions()
}

func (s *moodService) CalculateMood(ctx context.Context, userID string, answers quiz.AnswerSet) (quiz.Result, error) {
	result, err := s.engine.Score(userID, answers)
	if err != nil {
		return quiz.Result{}, err
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return quiz.Result{}, fmt.Errorf("encode answers: %w", err)
	}
	record := &model.MoodRecord{
		ID:            uuid.NewString(),
		UserID:        result.UserID,
		Energetic:     result.Scores[mood.Energetic],
		Calm:          result.Scores[mood.Calm],
		Introspective: result.Scores[mood.Introspective],
		Adventurous:   result.Scores[mood.Adventurous],
		DominantMood:  result.DominantMood.String(),
		Answers:       string(answersJSON),
		CreatedAt:     result.CreatedAt,
	}
	if err := s.moodRepo.SaveMoodRecord(ctx, record); err != nil {
		return quiz.Result{}, fmt.Errorf("save mood record: %w", err)
	}

	utilities.Info("user %s scored %s", result.UserID, result.DominantMood)
	s.bus.Publish(utilities.EventMoodCalculated, result)
	return result, nil
}

func (s *moodService) History(ctx context.Context, userID string) ([]MoodHistoryEntry, error) {
	records, err := s.moodRepo.GetMoodHistory(ctx, userID, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("load mood history: %w", err)
	}
	entries := make([]MoodHistoryEntry, 0, len(records))
	for i := range records {
		entries = append(entries, historyEntry(&records[i]))
	}
	return entries, nil
}

// Latest prefers the cache and falls back to the database, refilling the cache on a hit there.
func (s *moodService) Latest(ctx context.Context, userID string) (quiz.Result, error) {
	cached, err := s.cache.GetLatest(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		utilities.Warn("mood cache read for %s: %v", userID, err)
	}

	record, err := s.moodRepo.GetLatestMood(ctx, userID)
	if err != nil {
		return quiz.Result{}, err
	}
	result, err := recordResult(record)
	if err != nil {
		return quiz.Result{}, err
	}
	if err := s.cache.SetLatest(ctx, result); err != nil {
		utilities.Warn("mood cache write for %s: %v", userID, err)
	}
	return result, nil
}

func (s *moodService) Overview(ctx context.Context, userID string) (*MoodOverview, error) {
	first, err := s.moodRepo.GetFirstMood(ctx, userID)
	if err != nil {
		return nil, err
	}
	latest, err := s.moodRepo.GetLatestMood(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.moodRepo.CountByDominantMood(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count dominant moods: %w", err)
	}
	averages, err := s.moodRepo.GetMoodAverages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("average mood scores: %w", err)
	}

	dominant := make(map[string]int64, len(mood.All))
	for _, m := range mood.All {
		dominant[m.String()] = counts[m.String()]
	}

	initial := historyEntry(first)
	current := historyEntry(latest)
	return &MoodOverview{
		UserID:         userID,
		TotalResults:   averages.Count,
		Initial:        initial,
		Current:        current,
		Change:         quiz.NewMoodScores(subtract(current.MoodScores.Vector(), initial.MoodScores.Vector())),
		DominantCounts: dominant,
		AverageScores: quiz.MoodScores{
			Energetic:     averages.Energetic,
			Calm:          averages.Calm,
			Introspective: averages.Introspective,
			Adventurous:   averages.Adventurous,
		},
	}, nil
}

func (s *moodService) Report(ctx context.Context, userID string) ([]byte, error) {
	overview, err := s.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return renderReport(overview, history)
}

// InitMoodEventListeners keeps the latest-mood cache in step with newly scored results.
func InitMoodEventListeners(bus *utilities.EventBus, moodCache *cache.MoodCache) {
	if moodCache == nil {
		return
	}
	bus.Subscribe(utilities.EventMoodCalculated, func(data interface{}) {
		result, ok := data.(quiz.Result)
		if !ok {
			utilities.Warn("unexpected %s payload %T", utilities.EventMoodCalculated, data)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := moodCache.SetLatest(ctx, result); err != nil {
			utilities.Warn("mood cache write for %s: %v", result.UserID, err)
		}
	})
}

func historyEntry(r *model.MoodRecord) MoodHistoryEntry {
	return MoodHistoryEntry{
		ID:           r.ID,
		MoodScores:   quiz.MoodScores{Energetic: r.Energetic, Calm: r.Calm, Introspective: r.Introspective, Adventurous: r.Adventurous},
		DominantMood: r.DominantMood,
		CreatedAt:    r.CreatedAt,
	}
}

func recordResult(r *model.MoodRecord) (quiz.Result, error) {
	dominant, err := mood.Parse(r.DominantMood)
	if err != nil {
		return quiz.Result{}, fmt.Errorf("stored mood record %s: %w", r.ID, err)
	}
	return quiz.Result{
		UserID:       r.UserID,
		Scores:       mood.Vector{r.Energetic, r.Calm, r.Introspective, r.Adventurous},
		DominantMood: dominant,
		CreatedAt:    r.CreatedAt.UTC(),
	}, nil
}

func subtract(a, b mood.Vector) mood.Vector {
	var out mood.Vector
	for _, m := range mood.All {
		out[m] = a[m] - b[m]
	}
	return out
}
