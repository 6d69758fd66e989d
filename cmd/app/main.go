package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"
	"golang.org/x/term"

	"tripify-backend/cmd/app/internal/controller"
	"tripify-backend/internal/cache"
	"tripify-backend/internal/config"
	"tripify-backend/internal/db"
	"tripify-backend/internal/quiz"
	"tripify-backend/internal/repository"
	"tripify-backend/internal/service"
	"tripify-backend/pkg/middleware"
	"tripify-backend/utilities"
)

const version = "1.0.0"

func main() {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		printStartUpBanner()
	}

	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := utilities.SetupLogging(cfg.Logging); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer utilities.CloseLogging()

	// Initialize DB using the loaded config.
	if err := db.InitDBFromConfig(cfg); err != nil {
		log.Fatalf("failed to initialise database: %v", err)
	}
	defer db.Close()

	// The quiz definition is validated once here; a broken one stops start-up.
	engine, err := quiz.NewEngineFromFile(cfg.Quiz.File)
	if err != nil {
		log.Fatalf("failed to load quiz definition: %v", err)
	}

	moodCache, err := cache.NewMoodCacheFromConfig(context.Background(), cfg.Cache)
	if err != nil {
		utilities.Warn("mood cache disabled: %v", err)
		moodCache = nil
	}
	defer moodCache.Close()

	bus := utilities.NewEventBus()
	service.InitMoodEventListeners(bus, moodCache)

	// Create repositories.
	userRepo := repository.NewUserRepository(db.GetDB())
	moodRepo := repository.NewMoodRepository(db.GetDB())

	// Create services.
	tokens := utilities.NewJWTManager(cfg.Authentication)
	authService := service.NewAuthService(userRepo, tokens)
	moodService := service.NewMoodService(engine, moodRepo, moodCache, bus, cfg.Pagination.PageSize)

	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}

	controller.RegisterRoutes(r, cfg.Context.Path, authService, moodService, tokens,
		middleware.NewIPRateLimiter(cfg.RateLimit))

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", addr, err)
	}
	listener = netutil.LimitListener(listener, cfg.Context.MaxConnections)

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		utilities.Info("listening on %s%s", addr, cfg.Context.Path)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utilities.Error("server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	utilities.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utilities.Error("graceful shutdown failed: %v", err)
	}
	bus.Wait()
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("TRIPIFY", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("TRIPIFY MOOD API (v%s)\n\n", version)
}
