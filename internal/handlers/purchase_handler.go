package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/services"
	"marketplace-service/internal/utils"
	"marketplace-service/internal/wizard"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
	documentService *services.DocumentService
}

func NewPurchaseHandler(purchaseService *services.PurchaseService, documentService *services.DocumentService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		documentService: documentService,
	}
}

func (h *PurchaseHandler) Register(app *fiber.App) {
	protectedGr := app.Group("marketplace/protected/api/v1")

	wizardGroup := protectedGr.Group("/purchases/wizard")
	wizardGroup.Post("/", h.StartWizard)                                  // POST   /purchases/wizard
	wizardGroup.Get("/:session_id", h.GetWizard)                          // GET    /purchases/wizard/:session_id
	wizardGroup.Post("/:session_id/advance", h.Advance)                   // POST   /purchases/wizard/:session_id/advance
	wizardGroup.Post("/:session_id/retreat", h.Retreat)                   // POST   /purchases/wizard/:session_id/retreat
	wizardGroup.Put("/:session_id/personal-details", h.UpdatePersonal)    // PUT    /purchases/wizard/:session_id/personal-details
	wizardGroup.Put("/:session_id/nominee", h.UpdateNominee)              // PUT    /purchases/wizard/:session_id/nominee
	wizardGroup.Post("/:session_id/documents/:key", h.UploadDocument)     // POST   /purchases/wizard/:session_id/documents/:key
	wizardGroup.Delete("/:session_id/documents/:key", h.RemoveDocument)   // DELETE /purchases/wizard/:session_id/documents/:key
	wizardGroup.Get("/:session_id/documents/:key/preview", h.PreviewDoc)  // GET    /purchases/wizard/:session_id/documents/:key/preview
	wizardGroup.Post("/:session_id/medical-answers", h.AnswerMedical)     // POST   /purchases/wizard/:session_id/medical-answers
	wizardGroup.Put("/:session_id/selections", h.SetSelections)           // PUT    /purchases/wizard/:session_id/selections
	wizardGroup.Put("/:session_id/payment-method", h.SetPaymentMethod)    // PUT    /purchases/wizard/:session_id/payment-method
	wizardGroup.Post("/:session_id/submit", h.Submit)                     // POST   /purchases/wizard/:session_id/submit

	purchaseGroup := protectedGr.Group("/purchases")
	purchaseGroup.Get("/list", h.GetUserPurchases) // GET /purchases/list
}

// StartWizard opens a new wizard session for the selected policy
func (h *PurchaseHandler) StartWizard(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	var req models.StartPurchaseRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}
	if req.PolicyID == uuid.Nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "policy_id is required"))
	}

	state, err := h.purchaseService.Start(c.Context(), userID, req.PolicyID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(http.StatusNotFound).JSON(
				utils.CreateErrorResponse("NOT_FOUND", "Policy not found"))
		}
		slog.Error("Failed to start wizard session", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("START_FAILED", "Failed to start purchase"))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(state))
}

// GetWizard returns the current wizard snapshot with the derived premium
func (h *PurchaseHandler) GetWizard(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	state, err := h.purchaseService.Get(c.Context(), sessionID, userID)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// Advance attempts to move the wizard one step forward
func (h *PurchaseHandler) Advance(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	state, verr, err := h.purchaseService.Advance(c.Context(), sessionID, userID)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}
	if verr != nil {
		return c.Status(http.StatusUnprocessableEntity).JSON(validationResponse(state, verr))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// Retreat moves the wizard one step back; a no-op on the first step
func (h *PurchaseHandler) Retreat(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	state, err := h.purchaseService.Retreat(c.Context(), sessionID, userID)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// UpdatePersonal replaces the personal details section
func (h *PurchaseHandler) UpdatePersonal(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	var req models.UpdatePersonalDetailsRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}

	// Format checks on provided fields are advisory; the wizard's step
	// predicates only require the four mandatory fields to be non-empty.
	if errs := services.ValidateContact(req.PersonalDetails); len(errs) > 0 {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_FORMAT", errs[0].Field+": "+errs[0].Message))
	}

	state, err := h.purchaseService.UpdatePersonalDetails(c.Context(), sessionID, userID, req.PersonalDetails)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// UpdateNominee replaces the nominee section
func (h *PurchaseHandler) UpdateNominee(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	var req models.UpdateNomineeRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}

	state, err := h.purchaseService.UpdateNominee(c.Context(), sessionID, userID, req.NomineeDetails)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// UploadDocument stores one KYC document into its slot
func (h *PurchaseHandler) UploadDocument(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	key := models.DocumentKey(c.Params("key"))
	if !key.Valid() {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Unknown document slot"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "file field is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Failed to open uploaded file"))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadBytes+1))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Failed to read uploaded file"))
	}

	state, err := h.purchaseService.UploadDocument(c.Context(), sessionID, userID, key, fileHeader.Filename, data)
	if err != nil {
		if strings.Contains(err.Error(), "5MB") || strings.Contains(err.Error(), "unsupported file type") ||
			strings.Contains(err.Error(), "invalid PDF") || strings.Contains(err.Error(), "empty upload") {
			return c.Status(http.StatusUnprocessableEntity).JSON(
				utils.CreateErrorResponse("INVALID_DOCUMENT", err.Error()))
		}
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// RemoveDocument resets a slot to pending and discards the stored payload
func (h *PurchaseHandler) RemoveDocument(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	key := models.DocumentKey(c.Params("key"))
	if !key.Valid() {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Unknown document slot"))
	}

	state, err := h.purchaseService.RemoveDocument(c.Context(), sessionID, userID, key)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// PreviewDoc returns a short-lived preview URL for an uploaded document
func (h *PurchaseHandler) PreviewDoc(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	key := models.DocumentKey(c.Params("key"))
	if !key.Valid() {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Unknown document slot"))
	}

	state, err := h.purchaseService.Get(c.Context(), sessionID, userID)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	slot := state.Form.Documents[key]
	if slot == nil || slot.Status != models.DocumentUploaded {
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", "No document uploaded in this slot"))
	}

	url, err := h.documentService.PreviewURL(c.Context(), slot.ObjectName)
	if err != nil {
		slog.Error("Failed to build document preview URL",
			"session_id", sessionID, "document", key, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("PREVIEW_FAILED", "Failed to build preview URL"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"preview_url":  url,
		"display_name": slot.DisplayName,
		"content_type": slot.ContentType,
	}))
}

// AnswerMedical records one medical questionnaire answer
func (h *PurchaseHandler) AnswerMedical(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	var req models.MedicalAnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}

	state, err := h.purchaseService.AnswerMedicalQuestion(c.Context(), sessionID, userID, req.QuestionID, req.Answer)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("BAD_REQUEST", "Unknown medical question"))
		}
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// SetSelections replaces the selected add-on and rider sets
func (h *PurchaseHandler) SetSelections(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	var req models.SelectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}

	state, err := h.purchaseService.SetSelections(c.Context(), sessionID, userID, req.AddOnIDs, req.RiderIDs)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// SetPaymentMethod selects card, UPI or netbanking on the review step
func (h *PurchaseHandler) SetPaymentMethod(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	var req models.PaymentMethodRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("BAD_REQUEST", "Invalid request body"))
	}

	state, err := h.purchaseService.SetPaymentMethod(c.Context(), sessionID, userID, req.Method)
	if err != nil {
		if strings.Contains(err.Error(), "unknown payment method") {
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("BAD_REQUEST", "Unknown payment method"))
		}
		return h.sessionError(c, sessionID, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(state))
}

// Submit finalizes the purchase from the review step
func (h *PurchaseHandler) Submit(c fiber.Ctx) error {
	userID, sessionID, errResp := h.sessionScope(c)
	if errResp != nil {
		return errResp(c)
	}

	purchase, verr, err := h.purchaseService.Submit(c.Context(), sessionID, userID)
	if err != nil {
		return h.sessionError(c, sessionID, err)
	}
	if verr != nil {
		return c.Status(http.StatusUnprocessableEntity).JSON(validationResponse(nil, verr))
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(purchase))
}

// GetUserPurchases lists the user's completed purchases
func (h *PurchaseHandler) GetUserPurchases(c fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}

	purchases, err := h.purchaseService.GetUserPurchases(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get user purchases", "user_id", userID, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("RETRIEVAL_FAILED", "Failed to retrieve purchases"))
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]interface{}{
		"purchases": purchases,
		"count":     len(purchases),
	}))
}

// sessionScope extracts and validates the user and session identifiers.
func (h *PurchaseHandler) sessionScope(c fiber.Ctx) (string, uuid.UUID, func(fiber.Ctx) error) {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return "", uuid.Nil, func(c fiber.Ctx) error {
			return c.Status(http.StatusUnauthorized).JSON(
				utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
		}
	}

	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return "", uuid.Nil, func(c fiber.Ctx) error {
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("INVALID_UUID", "Invalid session ID format"))
		}
	}

	return userID, sessionID, nil
}

func (h *PurchaseHandler) sessionError(c fiber.Ctx, sessionID uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrSessionNotFound) {
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", "Wizard session not found or expired"))
	}
	if strings.Contains(err.Error(), "unauthorized") {
		return c.Status(http.StatusForbidden).JSON(
			utils.CreateErrorResponse("FORBIDDEN", "You do not have permission to access this session"))
	}
	slog.Error("Wizard session operation failed", "session_id", sessionID, "error", err)
	return c.Status(http.StatusInternalServerError).JSON(
		utils.CreateErrorResponse("WIZARD_FAILED", "Failed to process wizard operation"))
}

// validationResponse pairs the standard error envelope with the
// transient validation detail (message plus its on-screen expiry).
func validationResponse(state *services.WizardState, verr *wizard.ValidationError) map[string]interface{} {
	resp := map[string]interface{}{
		"success":    false,
		"error":      utils.APIError{Code: "VALIDATION_FAILED", Message: verr.Message},
		"validation": verr,
	}
	if state != nil {
		resp["state"] = state
	}
	return resp
}
