package handler

import (
	"log"
	"net/http"

	"portal-service/internal/domain"
	"portal-service/internal/service"
	"portal-service/pkg/middleware"
	"portal-service/pkg/response"

	json "github.com/goccy/go-json"

	"github.com/go-chi/chi/v5"
)

type WizardHandler struct {
	service *service.WizardService
}

func NewWizardHandler(s *service.WizardService) *WizardHandler {
	return &WizardHandler{service: s}
}

// StartWizard opens (or resumes) a wizard session. Deep-link selections
// arrive as query parameters, matching the product-page links.
func (h *WizardHandler) StartWizard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok || userID == "" {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	line := domain.InsuranceLine(chi.URLParam(r, "line"))
	nav := service.NavParams{
		ProductID: r.URL.Query().Get("productId"),
		PlanID:    r.URL.Query().Get("planId"),
		Frequency: r.URL.Query().Get("frequency"),
	}

	sess, err := h.service.Start(r.Context(), userID, line, nav)
	if err != nil {
		log.Printf("[ERROR] failed to start wizard for user=%s line=%s: %v", userID, line, err)
		response.Error(w, statusFor(err), clientMessage(err, "failed to start wizard"))
		return
	}

	response.JSON(w, http.StatusOK, sess)
}

func (h *WizardHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.service.Get(r.Context(), userID, sessionID)
	if err != nil {
		response.Error(w, statusFor(err), clientMessage(err, "failed to load wizard"))
		return
	}
	response.JSON(w, http.StatusOK, sess)
}

// MergeStep applies one step's region(s) to the draft.
func (h *WizardHandler) MergeStep(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	var partial domain.StepPartial
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.service.MergeStep(r.Context(), userID, sessionID, partial)
	if err != nil {
		log.Printf("[ERROR] merge failed for session=%s: %v", sessionID, err)
		response.Error(w, statusFor(err), clientMessage(err, "failed to save step"))
		return
	}
	response.JSON(w, http.StatusOK, sess)
}

func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.service.Advance(r.Context(), userID, sessionID)
	if err != nil {
		response.Error(w, statusFor(err), clientMessage(err, "failed to advance"))
		return
	}
	response.JSON(w, http.StatusOK, sess)
}

func (h *WizardHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.service.Retreat(r.Context(), userID, sessionID)
	if err != nil {
		response.Error(w, statusFor(err), clientMessage(err, "failed to go back"))
		return
	}
	response.JSON(w, http.StatusOK, sess)
}

// Quote prices the current selection for this applicant.
func (h *WizardHandler) Quote(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	var in service.QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.service.Quote(r.Context(), userID, sessionID, in)
	if err != nil {
		log.Printf("[ERROR] premium quote failed for session=%s: %v", sessionID, err)
		response.Error(w, statusFor(err), clientMessage(err, "failed to calculate premium"))
		return
	}
	response.JSON(w, http.StatusOK, sess)
}

// Submit sends the accumulated application to the backend. The body may
// carry a final partial from the review step.
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	var final *domain.StepPartial
	if r.Body != nil && r.ContentLength != 0 {
		final = &domain.StepPartial{}
		if err := json.NewDecoder(r.Body).Decode(final); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	receipt, err := h.service.Submit(r.Context(), userID, sessionID, final)
	if err != nil {
		response.Error(w, statusFor(err), clientMessage(err, "failed to submit application"))
		return
	}

	response.JSON(w, http.StatusCreated, receipt)
}

// Applications backs the policy/claims dashboard list.
func (h *WizardHandler) Applications(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	apps, err := h.service.Applications(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] failed to list applications for user=%s: %v", userID, err)
		response.Error(w, statusFor(err), clientMessage(err, "failed to load applications"))
		return
	}
	response.JSON(w, http.StatusOK, apps)
}

func (h *WizardHandler) Application(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "applicationID")

	app, err := h.service.Application(r.Context(), userID, id)
	if err != nil {
		response.Error(w, statusFor(err), clientMessage(err, "failed to load application"))
		return
	}
	response.JSON(w, http.StatusOK, app)
}
