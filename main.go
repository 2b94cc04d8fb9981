package main

import (
	"context"
	"net/http"
	"os"

	"pickem-app-go/config"
	"pickem-app-go/database"
	"pickem-app-go/handlers"
	"pickem-app-go/logging"
	"pickem-app-go/middleware"
	"pickem-app-go/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Output:      os.Stdout,
		Prefix:      cfg.Logging.Prefix,
		EnableColor: cfg.Logging.EnableColor,
	})
	cfg.LogConfiguration()

	db, err := database.NewMongoConnection(cfg.Database)
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	// Repositories
	seasonRepo := database.NewMongoSeasonRepository(db)
	userRepo := database.NewMongoUserRepository(db)
	pendingRepo := database.NewMongoPendingUserRepository(db)
	settingsRepo := database.NewMongoSettingsRepository(db)

	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		logging.Warnf("Failed to ensure user indexes: %v", err)
	}

	// Services
	cache := services.NewViewCache()
	results := services.NewResultService()
	locks := services.NewLockService(cfg.App.DeadlineTime, cfg.App.Timezone)
	standings := services.NewStandingsService(seasonRepo, userRepo, results, cache)
	analytics := services.NewAnalyticsService(seasonRepo, userRepo, results, cache)
	pickService := services.NewPickService(seasonRepo, userRepo, standings, results, locks, cache)
	seasonService := services.NewSeasonService(seasonRepo, userRepo, results, cache,
		cfg.App.WeeksPerSeason, cfg.App.GamesPerWeek)
	userService := services.NewUserService(userRepo, pendingRepo, seasonRepo)
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	pickHandler := handlers.NewPickHandler(pickService)
	standingsHandler := handlers.NewStandingsHandler(seasonRepo, settingsRepo, standings, analytics)
	adminHandler := handlers.NewAdminHandler(seasonRepo, pendingRepo, settingsRepo, userRepo,
		seasonService, pickService, userService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	// Public routes
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/welcome", standingsHandler.GetWelcome).Methods("GET")

	// Authenticated routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.RequireAuth)
	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/weeks/{week}/slate", pickHandler.GetWeekSlate).Methods("GET")
	api.HandleFunc("/weeks/{week}/picks", pickHandler.SubmitPicks).Methods("POST")
	api.HandleFunc("/weeks/{week}/picks", pickHandler.GetWeekPicks).Methods("GET")
	api.HandleFunc("/weeks/{week}/picks/mine", pickHandler.GetMyPicks).Methods("GET")
	api.HandleFunc("/standings", standingsHandler.GetSeasonStandings).Methods("GET")
	api.HandleFunc("/weeks/{week}/standings", standingsHandler.GetWeekStandings).Methods("GET")
	api.HandleFunc("/winners", standingsHandler.GetWeeklyWinners).Methods("GET")
	api.HandleFunc("/analytics/teams", standingsHandler.GetTeamPerformance).Methods("GET")
	api.HandleFunc("/analytics/users", standingsHandler.GetUserStats).Methods("GET")

	// Admin routes
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(authMiddleware.RequireAdmin)
	admin.HandleFunc("/seasons", adminHandler.ListSeasons).Methods("GET")
	admin.HandleFunc("/seasons", adminHandler.CreateSeason).Methods("POST")
	admin.HandleFunc("/seasons/{name}", adminHandler.DeleteSeason).Methods("DELETE")
	admin.HandleFunc("/seasons/{name}/activate", adminHandler.ActivateSeason).Methods("POST")
	admin.HandleFunc("/seasons/{name}/lock", adminHandler.LockSeason).Methods("POST")
	admin.HandleFunc("/seasons/{name}/weeks/{week}/games", adminHandler.SaveGames).Methods("PUT")
	admin.HandleFunc("/seasons/{name}/weeks/{week}/winners", adminHandler.SaveWinners).Methods("PUT")
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{username}", adminHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/users/{username}/active", adminHandler.SetUserActive).Methods("POST")
	admin.HandleFunc("/users/{username}/enroll", adminHandler.EnrollUser).Methods("POST")
	admin.HandleFunc("/users/{username}/password", adminHandler.ResetUserPassword).Methods("POST")
	admin.HandleFunc("/users/{username}/weeks/{week}/picks", adminHandler.SetUserPicks).Methods("PUT")
	admin.HandleFunc("/pending", adminHandler.ListPendingUsers).Methods("GET")
	admin.HandleFunc("/pending/{username}/approve", adminHandler.ApproveUser).Methods("POST")
	admin.HandleFunc("/pending/{username}", adminHandler.RejectUser).Methods("DELETE")
	admin.HandleFunc("/welcome", adminHandler.SetWelcome).Methods("PUT")

	addr := cfg.GetServerAddress()
	logging.Infof("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logging.Fatalf("Server failed: %v", err)
	}
}
