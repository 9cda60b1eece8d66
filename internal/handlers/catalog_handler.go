package handlers

import (
	"context"
	"errors"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/Guotai812/FitTrack-Back/internal/repository"
	"github.com/Guotai812/FitTrack-Back/internal/services"
	"github.com/gofiber/fiber/v2"
)

const maxCatalogImageSizeBytes = 5 * 1024 * 1024

type catalogApplicationService interface {
	GetPool(ctx context.Context, userID int64) (*services.Pool, error)
	ListFoodsPage(ctx context.Context, userID int64, limit, offset int) ([]models.Food, int, error)
	CreateFood(ctx context.Context, creatorID int64, input services.CreateFoodInput) (*models.Food, error)
	UpdateFood(ctx context.Context, userID, foodID int64, input repository.UpdateFoodInput) (*models.Food, error)
	CreateExercise(ctx context.Context, creatorID int64, input services.CreateExerciseInput) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, userID, exerciseID int64, input services.UpdateExerciseInput) (*models.Exercise, error)
}

// CatalogHandler serves the food/exercise pools and lets users extend them
// with their own entries. Official entries (no creator) stay read-only.
type CatalogHandler struct {
	service        catalogApplicationService
	storageService services.StorageService
}

func NewCatalogHandler(service *services.CatalogService, storageService services.StorageService) *CatalogHandler {
	return &CatalogHandler{service: service, storageService: storageService}
}

func (h *CatalogHandler) GetPool(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	pool, err := h.service.GetPool(c.Context(), userID)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(pool)
}

func (h *CatalogHandler) ListFoods(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	foods, total, err := h.service.ListFoodsPage(c.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		return mapCatalogError(c, err)
	}

	return c.JSON(fiber.Map{
		"foods":      foods,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

type createFoodRequest struct {
	Name        string  `json:"name"`
	ImageURL    string  `json:"image_url"`
	KcalPer100g float64 `json:"kcal_per_100g"`
	CarbsG      float64 `json:"carbs_g"`
	ProteinG    float64 `json:"protein_g"`
	FatG        float64 `json:"fat_g"`
	Category    string  `json:"category"`
}

func (h *CatalogHandler) CreateFood(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	food, err := h.service.CreateFood(c.Context(), userID, services.CreateFoodInput{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		KcalPer100g: req.KcalPer100g,
		CarbsG:      req.CarbsG,
		ProteinG:    req.ProteinG,
		FatG:        req.FatG,
		Category:    req.Category,
	})
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"food": food})
}

func (h *CatalogHandler) UpdateFood(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	foodID, err := c.ParamsInt("foodId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid food id"})
	}

	var req repository.UpdateFoodInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	food, err := h.service.UpdateFood(c.Context(), userID, int64(foodID), req)
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(fiber.Map{"food": food})
}

type createExerciseRequest struct {
	Name       string   `json:"name"`
	ImageURL   string   `json:"image_url"`
	Variant    string   `json:"variant"`
	SubType    *string  `json:"sub_type"`
	MET        *float64 `json:"met"`
	DefaultROM *float64 `json:"default_rom_m"`
	Efficiency float64  `json:"efficiency"`
	Buffer     float64  `json:"buffer"`
}

func (h *CatalogHandler) CreateExercise(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ex, err := h.service.CreateExercise(c.Context(), userID, services.CreateExerciseInput{
		Name:       req.Name,
		ImageURL:   req.ImageURL,
		Variant:    models.ExerciseVariant(req.Variant),
		SubType:    req.SubType,
		MET:        req.MET,
		DefaultROM: req.DefaultROM,
		Efficiency: req.Efficiency,
		Buffer:     req.Buffer,
	})
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"exercise": ex})
}

type updateExerciseRequest struct {
	Name       *string  `json:"name"`
	SubType    *string  `json:"sub_type"`
	MET        *float64 `json:"met"`
	DefaultROM *float64 `json:"default_rom_m"`
	Efficiency *float64 `json:"efficiency"`
	Buffer     *float64 `json:"buffer"`
}

func (h *CatalogHandler) UpdateExercise(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	exerciseID, err := c.ParamsInt("exerciseId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	var req updateExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ex, err := h.service.UpdateExercise(c.Context(), userID, int64(exerciseID), services.UpdateExerciseInput{
		Name:       req.Name,
		SubType:    req.SubType,
		MET:        req.MET,
		DefaultROM: req.DefaultROM,
		Efficiency: req.Efficiency,
		Buffer:     req.Buffer,
	})
	if err != nil {
		return mapCatalogError(c, err)
	}
	return c.JSON(fiber.Map{"exercise": ex})
}

var allowedImageFolders = map[string]struct{}{
	"foodPool":     {},
	"exercisePool": {},
}

// UploadImage stores a catalog image and returns its public URL. Clients
// attach the URL to a create/update request afterwards.
func (h *CatalogHandler) UploadImage(c *fiber.Ctx) error {
	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	}
	if _, err := parseUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	folder := c.FormValue("folder")
	if _, ok := allowedImageFolders[folder]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "folder must be foodPool or exercisePool"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is empty"})
	}
	if fileHeader.Size > maxCatalogImageSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file exceeds 5MB limit"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !services.AllowedImageType(contentType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image must be a jpeg, png, webp, or gif file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open image file"})
	}
	defer file.Close()

	imageURL, err := h.storageService.UploadImage(c.Context(), folder, contentType, file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload image"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"image_url": imageURL})
}

func mapCatalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the creator can modify this entry"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
