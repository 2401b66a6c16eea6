package handlers

import (
	"errors"
	"net/http"

	"marketplace-service/internal/models"
	"marketplace-service/internal/services"
	"marketplace-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type ComparisonHandler struct {
	comparisonService *services.ComparisonService
}

func NewComparisonHandler(comparisonService *services.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonService: comparisonService}
}

func (h *ComparisonHandler) Register(app *fiber.App) {
	publicGr := app.Group("marketplace/public/api/v1")

	publicGr.Post("/compare", h.Compare) // POST /compare
}

// Compare proxies a side-by-side feature comparison to the comparison
// backend. The backend is independent of the catalog; failures surface
// as 503 so the caller can fall back to the static feature table.
func (h *ComparisonHandler) Compare(c fiber.Ctx) error {
	var req models.CompareRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}
	if len(req.PolicyNames) < 2 {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "At least two policy names are required"))
	}

	result, err := h.comparisonService.Compare(c.Context(), req.PolicyNames)
	if err != nil {
		if errors.Is(err, services.ErrComparisonUnavailable) {
			return c.Status(http.StatusServiceUnavailable).JSON(
				utils.CreateErrorResponse("COMPARISON_UNAVAILABLE", "Comparison service is unavailable"))
		}
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("COMPARISON_FAILED", "Failed to compare policies"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}
