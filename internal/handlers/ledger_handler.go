package handlers

import (
	"context"
	"errors"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/Guotai812/FitTrack-Back/internal/repository"
	"github.com/Guotai812/FitTrack-Back/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ledgerApplicationService interface {
	GetOrCreateDailyRecord(ctx context.Context, userID int64) (*models.DailyRecord, error)
	LogDiet(ctx context.Context, userID int64, meal models.MealSlot, sub models.SubSlot, foodID int64, grams float64) (*models.DailyRecord, error)
	EditDiet(ctx context.Context, userID int64, meal models.MealSlot, sub models.SubSlot, foodID int64, grams float64) (*models.DailyRecord, error)
	RemoveDiet(ctx context.Context, userID int64, meal models.MealSlot, sub models.SubSlot, foodID int64) (*models.DailyRecord, error)
	LogExercise(ctx context.Context, userID int64, input services.LogExerciseInput) (*models.DailyRecord, string, error)
	EditExercise(ctx context.Context, userID int64, logID string, input services.EditExerciseInput) (*models.DailyRecord, error)
	RemoveExercise(ctx context.Context, userID int64, variant models.ExerciseVariant, logID string) (*models.DailyRecord, error)
	ExerciseHistory(ctx context.Context, userID, exerciseID int64) ([]repository.ExerciseLogRecord, error)
}

// LedgerHandler exposes the daily record and its diet/exercise mutations.
// Every mutation responds with the refreshed record, including the
// recomputed remaining-calorie balance.
type LedgerHandler struct {
	service ledgerApplicationService
}

func NewLedgerHandler(service *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

func (h *LedgerHandler) GetDailyRecord(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	record, err := h.service.GetOrCreateDailyRecord(c.Context(), userID)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

type dietRequest struct {
	FoodID int64   `json:"food_id"`
	Meal   string  `json:"meal"`
	IsMain bool    `json:"is_main"`
	Grams  float64 `json:"grams"`
}

func subSlotOf(isMain bool) models.SubSlot {
	if isMain {
		return models.SubSlotMain
	}
	return models.SubSlotExtra
}

func (h *LedgerHandler) LogDiet(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req dietRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.service.LogDiet(c.Context(), userID, models.MealSlot(req.Meal), subSlotOf(req.IsMain), req.FoodID, req.Grams)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

func (h *LedgerHandler) EditDiet(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req dietRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.service.EditDiet(c.Context(), userID, models.MealSlot(req.Meal), subSlotOf(req.IsMain), req.FoodID, req.Grams)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

func (h *LedgerHandler) RemoveDiet(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	foodID, err := c.ParamsInt("foodId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid food id"})
	}

	var req struct {
		Meal   string `json:"meal"`
		IsMain bool   `json:"is_main"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.service.RemoveDiet(c.Context(), userID, models.MealSlot(req.Meal), subSlotOf(req.IsMain), int64(foodID))
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

type logExerciseRequest struct {
	Variant         string            `json:"variant"`
	DurationMinutes float64           `json:"duration_minutes"`
	Sets            []models.SetGroup `json:"sets"`
}

func (h *LedgerHandler) LogExercise(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exerciseID, err := c.ParamsInt("exerciseId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	var req logExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, logID, err := h.service.LogExercise(c.Context(), userID, services.LogExerciseInput{
		ExerciseID:      int64(exerciseID),
		Variant:         models.ExerciseVariant(req.Variant),
		DurationMinutes: req.DurationMinutes,
		Sets:            req.Sets,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"record": record, "log_id": logID})
}

type editExerciseRequest struct {
	Variant         string            `json:"variant"`
	DurationMinutes float64           `json:"duration_minutes"`
	Sets            []models.SetGroup `json:"sets"`
}

func (h *LedgerHandler) EditExercise(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	logID := c.Params("logId")
	if logID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid log id"})
	}

	var req editExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.service.EditExercise(c.Context(), userID, logID, services.EditExerciseInput{
		Variant:         models.ExerciseVariant(req.Variant),
		DurationMinutes: req.DurationMinutes,
		Sets:            req.Sets,
	})
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

func (h *LedgerHandler) RemoveExercise(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	logID := c.Params("logId")
	if logID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid log id"})
	}

	var req struct {
		Variant string `json:"variant"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.service.RemoveExercise(c.Context(), userID, models.ExerciseVariant(req.Variant), logID)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"record": record})
}

func (h *LedgerHandler) ExerciseHistory(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exerciseID, err := c.ParamsInt("exerciseId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	logs, err := h.service.ExerciseHistory(c.Context(), userID, int64(exerciseID))
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs})
}

func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrProfileIncomplete):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Profile setup not completed"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Write conflict, please retry"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
