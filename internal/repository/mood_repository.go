package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tripify-backend/internal/model"
)

var ErrMoodNotFound = errors.New("no mood results for user")

// MoodAverages holds the mean of each stored score column.
type MoodAverages struct {
	Energetic     float64
	Calm          float64
	Introspective float64
	Adventurous   float64
	Count         int64
}

type MoodRepository interface {
	SaveMoodRecord(ctx context.Context, record *model.MoodRecord) error
	GetMoodHistory(ctx context.Context, userID string, limit int) ([]model.MoodRecord, error)
	GetLatestMood(ctx context.Context, userID string) (*model.MoodRecord, error)
	GetFirstMood(ctx context.Context, userID string) (*model.MoodRecord, error)
	CountByDominantMood(ctx context.Context, userID string) (map[string]int64, error)
	GetMoodAverages(ctx context.Context, userID string) (MoodAverages, error)
}

type moodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) SaveMoodRecord(ctx context.Context, record *model.MoodRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetMoodHistory returns the newest records first. A non-positive limit means no limit.
func (r *moodRepository) GetMoodHistory(ctx context.Context, userID string, limit int) ([]model.MoodRecord, error) {
	records := []model.MoodRecord{}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *moodRepository) GetLatestMood(ctx context.Context, userID string) (*model.MoodRecord, error) {
	return r.firstOrdered(ctx, userID, "created_at desc")
}

func (r *moodRepository) GetFirstMood(ctx context.Context, userID string) (*model.MoodRecord, error) {
	return r.firstOrdered(ctx, userID, "created_at asc")
}

func (r *moodRepository) firstOrdered(ctx context.Context, userID, order string) (*model.MoodRecord, error) {
	var record model.MoodRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(order).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMoodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *moodRepository) CountByDominantMood(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []struct {
		DominantMood string
		Total        int64
	}
	err := r.db.WithContext(ctx).Model(&model.MoodRecord{}).
		Select("dominant_mood, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("dominant_mood").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.DominantMood] = row.Total
	}
	return counts, nil
}

func (r *moodRepository) GetMoodAverages(ctx context.Context, userID string) (MoodAverages, error) {
	var avg MoodAverages
	err := r.db.WithContext(ctx).Model(&model.MoodRecord{}).
		Select("COALESCE(AVG(energetic), 0) AS energetic, "+
			"COALESCE(AVG(calm), 0) AS calm, "+
			"COALESCE(AVG(introspective), 0) AS introspective, "+
			"COALESCE(AVG(adventurous), 0) AS adventurous, "+
			"COUNT(*) AS count").
		Where("user_id = ?", userID).
		Scan(&avg).Error
	return avg, err
}
