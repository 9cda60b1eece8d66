package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/Guotai812/FitTrack-Back/internal/services"
	"github.com/gofiber/fiber/v2"
)

type profileApplicationService interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	CompleteSetup(ctx context.Context, userID int64, input services.ProfileInput) (*models.UserProfile, *models.DailyRecord, error)
}

type ProfileHandler struct {
	service profileApplicationService
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type completeSetupRequest struct {
	WeightKG  float64 `json:"weight_kg"`
	HeightCM  float64 `json:"height_cm"`
	BirthDate string  `json:"birth_date"`
	Gender    string  `json:"gender"`
	Frequency string  `json:"frequency"`
	Goal      string  `json:"goal"`
}

// CompleteSetup finishes profile onboarding: it derives the daily calorie
// target and seeds today's record. It can only succeed once per user.
func (h *ProfileHandler) CompleteSetup(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req completeSetupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateCompleteSetupRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "birth_date must be formatted YYYY-MM-DD"})
	}

	profile, record, err := h.service.CompleteSetup(c.Context(), userID, services.ProfileInput{
		WeightKG:  req.WeightKG,
		HeightCM:  req.HeightCM,
		BirthDate: birthDate,
		Gender:    req.Gender,
		Frequency: req.Frequency,
		Goal:      req.Goal,
	})
	if err != nil {
		return mapProfileError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"profile": profile,
		"record":  record,
	})
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		return mapProfileError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

func mapProfileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid profile input"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	case errors.Is(err, services.ErrProfileCompleted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Profile setup already completed"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Daily record already exists"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete setup"})
	}
}
