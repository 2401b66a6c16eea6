package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/services"
	"marketplace-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Register(app *fiber.App) {
	protectedGr := app.Group("marketplace/protected/api/v1")

	profileGroup := protectedGr.Group("/profile")
	profileGroup.Get("/", h.GetProfile)           // GET  /profile
	profileGroup.Put("/", h.UpsertProfile)        // PUT  /profile
	profileGroup.Post("/complete", h.MarkComplete) // POST /profile/complete
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", "Profile not found"))
		}
		slog.Error("Failed to get profile", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve profile"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(profile))
}

// UpsertProfile creates or replaces the user's marketplace profile.
// Marking the profile completed triggers a recommendation re-score.
func (h *ProfileHandler) UpsertProfile(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var profile models.UserProfile
	if err := c.Bind().Body(&profile); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}

	saved, err := h.profileService.Upsert(c.Context(), userID, &profile)
	if err != nil {
		if strings.Contains(err.Error(), "age") {
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("BAD_REQUEST", err.Error()))
		}
		slog.Error("Failed to upsert profile", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("UPSERT_FAILED", "Failed to save profile"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(saved))
}

func (h *ProfileHandler) MarkComplete(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	if err := h.profileService.MarkCompleted(c.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", "Profile not found"))
		}
		slog.Error("Failed to mark profile completed", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("UPDATE_FAILED", "Failed to mark profile completed"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"completed": true,
	}))
}
