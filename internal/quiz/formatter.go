package quiz

import (
	"math"

	"tripify-backend/internal/mood"
)

// DisplayScores is a mood distribution rounded to whole percentages.
type DisplayScores struct {
	Energetic     int `json:"energetic"`
	Calm          int `json:"calm"`
	Introspective int `json:"introspective"`
	Adventurous   int `json:"adventurous"`
}

// DisplayResult is what result screens render.
type DisplayResult struct {
	MoodScores   DisplayScores `json:"moodScores"`
	DominantMood string        `json:"dominantMood"`
	Label        string        `json:"label"`
	Emoji        string        `json:"emoji"`
	Color        string        `json:"color"`
}

// Format rounds a result for presentation. r is passed by value and never
// modified, so formatting the same result again gives the same output.
func Format(r Result) DisplayResult {
	d := mood.DisplayFor(r.DominantMood.String())
	return DisplayResult{
		MoodScores: DisplayScores{
			Energetic:     roundPercent(r.Scores[mood.Energetic]),
			Calm:          roundPercent(r.Scores[mood.Calm]),
			Introspective: roundPercent(r.Scores[mood.Introspective]),
			Adventurous:   roundPercent(r.Scores[mood.Adventurous]),
		},
		DominantMood: r.DominantMood.String(),
		Label:        d.Label,
		Emoji:        d.Emoji,
		Color:        d.Color,
	}
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
