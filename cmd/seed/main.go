package main

import (
	"context"
	"errors"
	"log"

	"tripify-backend/internal/config"
	"tripify-backend/internal/db"
	"tripify-backend/internal/quiz"
	"tripify-backend/internal/repository"
	"tripify-backend/internal/service"
	"tripify-backend/utilities"
)

const (
	demoName     = "Demo Traveller"
	demoEmail    = "demo@tripify.local"
	demoPassword = "tripify-demo"
	seedRuns     = 4
)

// Seeds a demo account with a short mood history so the history, overview
// and report endpoints have something to show.
func main() {
	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.DB.Initialize = true
	if err := db.InitDBFromConfig(cfg); err != nil {
		log.Fatalf("failed to initialise database: %v", err)
	}
	defer db.Close()

	engine, err := quiz.NewEngineFromFile(cfg.Quiz.File)
	if err != nil {
		log.Fatalf("failed to load quiz definition: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db.GetDB())
	authService := service.NewAuthService(userRepo, utilities.NewJWTManager(cfg.Authentication))
	moodService := service.NewMoodService(engine, repository.NewMoodRepository(db.GetDB()), nil, nil, cfg.Pagination.PageSize)

	user, err := authService.Signup(ctx, demoName, demoEmail, demoPassword)
	if errors.Is(err, service.ErrEmailTaken) {
		log.Printf("%s already exists, nothing to seed", demoEmail)
		return
	}
	if err != nil {
		log.Fatalf("failed to create demo user: %v", err)
	}

	questions, err := moodService.Questions()
	if err != nil {
		log.Fatalf("failed to read questions: %v", err)
	}

	// One run per option column gives a spread of dominant moods.
	for option := 0; option < seedRuns; option++ {
		answers := quiz.AnswerSet{}
		for _, q := range questions {
			answers[q.ID] = option % len(q.Options)
		}
		result, err := moodService.CalculateMood(ctx, user.ID, answers)
		if err != nil {
			log.Fatalf("failed to score demo answers: %v", err)
		}
		log.Printf("seeded %s result for %s", result.DominantMood, demoEmail)
	}
}
