package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"marketplace-service/internal/models"
	"marketplace-service/internal/services"
	"marketplace-service/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) Register(app *fiber.App) {
	publicGr := app.Group("marketplace/public/api/v1")

	publicGr.Get("/policies", h.GetPolicies)                  // GET /policies?type=&insurer_id=
	publicGr.Get("/policies/:id", h.GetPolicyByID)            // GET /policies/:id
	publicGr.Get("/insurers", h.GetInsurers)                  // GET /insurers
	publicGr.Get("/branches", h.GetBranches)                  // GET /branches?city=&lat=&lng=
	publicGr.Get("/hospitals", h.GetHospitals)                // GET /hospitals?city=
	publicGr.Get("/add-ons", h.GetAddOns)                     // GET /add-ons
	publicGr.Get("/riders", h.GetRiders)                      // GET /riders
	publicGr.Get("/testimonials", h.GetTestimonials)          // GET /testimonials
	publicGr.Get("/claim-process", h.GetClaimProcessSteps)    // GET /claim-process
	publicGr.Get("/medical-questions", h.GetMedicalQuestions) // GET /medical-questions
}

// GetPolicies lists catalog policies, optionally filtered by type or insurer
func (h *CatalogHandler) GetPolicies(c fiber.Ctx) error {
	var policyType *models.PolicyType
	if t := c.Query("type"); t != "" {
		pt := models.PolicyType(t)
		policyType = &pt
	}

	var insurerID *uuid.UUID
	if raw := c.Query("insurer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("INVALID_UUID", "Invalid insurer ID format"))
		}
		insurerID = &id
	}

	policies, err := h.catalogService.GetPolicies(c.Context(), policyType, insurerID)
	if err != nil {
		slog.Error("Failed to get policies", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve policies"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"policies": policies,
		"count":    len(policies),
	}))
}

func (h *CatalogHandler) GetPolicyByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid policy ID format"))
	}

	policy, err := h.catalogService.GetPolicyByID(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", "Policy not found"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(policy))
}

func (h *CatalogHandler) GetInsurers(c fiber.Ctx) error {
	insurers, err := h.catalogService.GetInsurers(c.Context())
	if err != nil {
		slog.Error("Failed to get insurers", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve insurers"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(insurers))
}

// GetBranches lists branches. With lat/lng the results are sorted by
// distance from the caller and carry the distance in kilometers.
func (h *CatalogHandler) GetBranches(c fiber.Ctx) error {
	var city *string
	if v := c.Query("city"); v != "" {
		city = &v
	}

	var origin *models.GeoJSONPoint
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw != "" && lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("BAD_REQUEST", "lat and lng must be decimal degrees"))
		}
		point := models.NewGeoJSONPoint(lng, lat)
		origin = &point
	}

	branches, err := h.catalogService.GetBranches(c.Context(), city, origin)
	if err != nil {
		slog.Error("Failed to get branches", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve branches"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"branches": branches,
		"count":    len(branches),
	}))
}

func (h *CatalogHandler) GetHospitals(c fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "city is required"))
	}

	hospitals, err := h.catalogService.GetHospitalsByCity(c.Context(), city)
	if err != nil {
		slog.Error("Failed to get hospitals", "city", city, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve hospitals"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	}))
}

func (h *CatalogHandler) GetAddOns(c fiber.Ctx) error {
	addOns, err := h.catalogService.GetAddOns(c.Context())
	if err != nil {
		slog.Error("Failed to get add-ons", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve add-ons"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(addOns))
}

func (h *CatalogHandler) GetRiders(c fiber.Ctx) error {
	riders, err := h.catalogService.GetRiders(c.Context())
	if err != nil {
		slog.Error("Failed to get riders", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve riders"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(riders))
}

func (h *CatalogHandler) GetTestimonials(c fiber.Ctx) error {
	testimonials, err := h.catalogService.GetTestimonials(c.Context())
	if err != nil {
		slog.Error("Failed to get testimonials", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve testimonials"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(testimonials))
}

func (h *CatalogHandler) GetClaimProcessSteps(c fiber.Ctx) error {
	steps, err := h.catalogService.GetClaimProcessSteps(c.Context())
	if err != nil {
		slog.Error("Failed to get claim process steps", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve claim process steps"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(steps))
}

func (h *CatalogHandler) GetMedicalQuestions(c fiber.Ctx) error {
	questions, err := h.catalogService.GetMedicalQuestions(c.Context())
	if err != nil {
		slog.Error("Failed to get medical questions", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve medical questions"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(questions))
}
