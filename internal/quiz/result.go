package quiz

import (
	"encoding/json"
	"time"

	"tripify-backend/internal/mood"
)

// Result is the outcome of one scoring call. Scores are percentages at full
// precision and sum to 100.
type Result struct {
	UserID       string
	Scores       mood.Vector
	DominantMood mood.Mood
	CreatedAt    time.Time
}

// MoodScores is the wire shape of a mood distribution.
type MoodScores struct {
	Energetic     float64 `json:"energetic"`
	Calm          float64 `json:"calm"`
	Introspective float64 `json:"introspective"`
	Adventurous   float64 `json:"adventurous"`
}

func NewMoodScores(v mood.Vector) MoodScores {
	return MoodScores{
		Energetic:     v[mood.Energetic],
		Calm:          v[mood.Calm],
		Introspective: v[mood.Introspective],
		Adventurous:   v[mood.Adventurous],
	}
}

func (s MoodScores) Vector() mood.Vector {
	var v mood.Vector
	v[mood.Energetic] = s.Energetic
	v[mood.Calm] = s.Calm
	v[mood.Introspective] = s.Introspective
	v[mood.Adventurous] = s.Adventurous
	return v
}

type resultJSON struct {
	UserID       string     `json:"userId"`
	MoodScores   MoodScores `json:"moodScores"`
	DominantMood mood.Mood  `json:"dominantMood"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		UserID:       r.UserID,
		MoodScores:   NewMoodScores(r.Scores),
		DominantMood: r.DominantMood,
		CreatedAt:    r.CreatedAt,
	})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{
		UserID:       raw.UserID,
		Scores:       raw.MoodScores.Vector(),
		DominantMood: raw.DominantMood,
		CreatedAt:    raw.CreatedAt,
	}
	return nil
}
