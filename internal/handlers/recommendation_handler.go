package handlers

import (
	"log/slog"
	"net/http"

	"marketplace-service/internal/services"
	"marketplace-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
}

func NewRecommendationHandler(recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

func (h *RecommendationHandler) Register(app *fiber.App) {
	protectedGr := app.Group("marketplace/protected/api/v1")

	protectedGr.Get("/recommendations", h.GetRecommendations)      // GET  /recommendations
	protectedGr.Post("/recommendations/refresh", h.RefreshForUser) // POST /recommendations/refresh
}

// GetRecommendations returns the cached recommendation set, scoring the
// user's profile on a cache miss
func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	set, err := h.recommendationService.GetForUser(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get recommendations", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve recommendations"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(set))
}

// RefreshForUser re-scores the user's profile, bypassing the cache
func (h *RecommendationHandler) RefreshForUser(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	set, err := h.recommendationService.Refresh(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to refresh recommendations", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("REFRESH_FAILED", "Failed to refresh recommendations"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(set))
}
