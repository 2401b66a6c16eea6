package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"marketplace-service/internal/models"
	"marketplace-service/internal/services"
	"marketplace-service/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ClaimHandler struct {
	claimService *services.ClaimService
}

func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

func (h *ClaimHandler) Register(app *fiber.App) {
	protectedGr := app.Group("marketplace/protected/api/v1")

	claimGroup := protectedGr.Group("/claims")
	claimGroup.Post("/", h.FileClaim)      // POST /claims
	claimGroup.Get("/list", h.GetClaims)   // GET  /claims/list
	claimGroup.Get("/:id", h.GetClaimByID) // GET  /claims/:id
}

// FileClaim opens a claim against one of the user's purchases
func (h *ClaimHandler) FileClaim(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var req models.FileClaimRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}
	if req.PurchaseID == uuid.Nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "purchase_id is required"))
	}

	claim, err := h.claimService.FileClaim(c.Context(), userID, req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", err.Error()))
		case strings.Contains(err.Error(), "does not belong"):
			return c.Status(http.StatusForbidden).JSON(
				utils.CreateErrorResponse("FORBIDDEN", "Purchase does not belong to this user"))
		case strings.Contains(err.Error(), "claimed amount"):
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("BAD_REQUEST", err.Error()))
		}
		slog.Error("Failed to file claim", "user_id", userID, "purchase_id", req.PurchaseID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("CLAIM_FAILED", "Failed to file claim"))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) GetClaims(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	claims, err := h.claimService.GetUserClaims(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get claims", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve claims"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"claims": claims,
		"count":  len(claims),
	}))
}

func (h *ClaimHandler) GetClaimByID(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	claimID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid claim ID format"))
	}

	claim, err := h.claimService.GetClaimForUser(c.Context(), claimID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "does not belong") {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", "Claim not found"))
		}
		slog.Error("Failed to get claim", "user_id", userID, "claim_id", claimID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve claim"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(claim))
}
