package model

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FullName  string    `json:"fullName" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never serialised
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// MoodRecord is a persisted scoring result. Scores are stored at full precision.
type MoodRecord struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `json:"userId" gorm:"not null;index:idx_mood_user_created,priority:1"`
	Energetic     float64   `json:"energetic" gorm:"not null"`
	Calm          float64   `json:"calm" gorm:"not null"`
	Introspective float64   `json:"introspective" gorm:"not null"`
	Adventurous   float64   `json:"adventurous" gorm:"not null"`
	DominantMood  string    `json:"dominantMood" gorm:"not null;size:32"`
	Answers       string    `json:"answers"` // JSON object of question id -> option index
	CreatedAt     time.Time `json:"createdAt" gorm:"index:idx_mood_user_created,priority:2"`
}
