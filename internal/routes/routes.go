package routes

import (
	"github.com/Guotai812/FitTrack-Back/internal/config"
	"github.com/Guotai812/FitTrack-Back/internal/handlers"
	"github.com/Guotai812/FitTrack-Back/internal/middleware"
	"github.com/Guotai812/FitTrack-Back/internal/repository"
	"github.com/Guotai812/FitTrack-Back/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	recordRepo := repository.NewDailyRecordRepository(db)
	exerciseLogRepo := repository.NewExerciseLogRepository(db)

	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	authHandler := handlers.NewAuthHandler(db, userRepo, profileRepo, cfg.JWTSecret)
	profileService := services.NewProfileService(db, profileRepo, cfg.Timezone)
	profileHandler := handlers.NewProfileHandler(profileService)
	catalogService := services.NewCatalogService(foodRepo, exerciseRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogService, storageService)
	ledgerService := services.NewLedgerService(db, recordRepo, profileRepo, foodRepo, exerciseRepo, exerciseLogRepo, cfg.Timezone)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	users := authProtected.Group("/users")
	users.Get("/profile", profileHandler.GetProfile)
	users.Post("/profile/setup", profileHandler.CompleteSetup)

	pool := authProtected.Group("/pool")
	pool.Get("", catalogHandler.GetPool)
	pool.Post("/images", catalogHandler.UploadImage)
	pool.Get("/foods", catalogHandler.ListFoods)
	pool.Post("/foods", catalogHandler.CreateFood)
	pool.Patch("/foods/:foodId", catalogHandler.UpdateFood)
	pool.Post("/exercises", catalogHandler.CreateExercise)
	pool.Patch("/exercises/:exerciseId", catalogHandler.UpdateExercise)

	records := authProtected.Group("/records")
	records.Get("/today", ledgerHandler.GetDailyRecord)
	records.Post("/today/diets", ledgerHandler.LogDiet)
	records.Patch("/today/diets", ledgerHandler.EditDiet)
	records.Delete("/today/diets/:foodId", ledgerHandler.RemoveDiet)
	records.Post("/today/exercises/:exerciseId", ledgerHandler.LogExercise)
	records.Patch("/today/exercises/:logId", ledgerHandler.EditExercise)
	records.Delete("/today/exercises/:logId", ledgerHandler.RemoveExercise)
	records.Get("/exercises/:exerciseId/history", ledgerHandler.ExerciseHistory)

	return registerDocsRoutes(app, cfg)
}
