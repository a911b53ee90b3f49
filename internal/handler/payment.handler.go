package handler

import (
	"log"
	"net/http"

	"portal-service/internal/service"
	"portal-service/pkg/middleware"
	"portal-service/pkg/response"

	json "github.com/goccy/go-json"

	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(s *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type payRequest struct {
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes,omitempty"`
}

// Pay executes a payment for an application with the chosen method.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok || userID == "" {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	applicationID := chi.URLParam(r, "applicationID")

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.service.Pay(r.Context(), userID, applicationID, req.PaymentMethod, req.Notes)
	if err != nil {
		log.Printf("[ERROR] payment failed for application=%s user=%s: %v", applicationID, userID, err)
		response.Error(w, statusFor(err), clientMessage(err, "payment failed"))
		return
	}

	response.JSON(w, http.StatusOK, receipt)
}
