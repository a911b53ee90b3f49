package handler

import (
	"log"
	"net/http"

	"portal-service/internal/backend"
	"portal-service/internal/domain"
	"portal-service/internal/service"
	"portal-service/pkg/middleware"
	"portal-service/pkg/response"

	json "github.com/goccy/go-json"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(s *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Products(r.Context())
	if err != nil {
		log.Printf("[ERROR] product catalog fetch failed: %v", err)
		response.Error(w, statusFor(err), clientMessage(err, "failed to load products"))
		return
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Product(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		response.Error(w, statusFor(err), clientMessage(err, "failed to load product"))
		return
	}
	response.JSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Plans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.Plans(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		response.Error(w, statusFor(err), clientMessage(err, "failed to load plans"))
		return
	}
	response.JSON(w, http.StatusOK, plans)
}

type calculateRequest struct {
	Line domain.InsuranceLine `json:"line"`
	backend.PremiumRequest
}

// Calculate runs the standalone premium calculator.
func (h *CatalogHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PlanID == "" {
		response.Error(w, http.StatusBadRequest, "planId is required")
		return
	}

	premium, err := h.service.Calculate(r.Context(), userID, req.Line, req.PremiumRequest)
	if err != nil {
		log.Printf("[ERROR] premium calculation failed for plan=%s: %v", req.PlanID, err)
		response.Error(w, statusFor(err), clientMessage(err, "failed to calculate premium"))
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"calculatedPremium": premium,
	})
}

// CalculatorParams returns the caller's remembered calculator input.
func (h *CatalogHandler) CalculatorParams(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	params, err := h.service.CalculatorParams(r.Context(), userID)
	if err != nil || params == nil {
		response.JSON(w, http.StatusOK, nil)
		return
	}
	response.JSON(w, http.StatusOK, params)
}
