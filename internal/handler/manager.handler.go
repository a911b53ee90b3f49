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

type ManagerHandler struct {
	service *service.ManagerService
}

func NewManagerHandler(s *service.ManagerService) *ManagerHandler {
	return &ManagerHandler{service: s}
}

// Queue lists applications awaiting review.
func (h *ManagerHandler) Queue(w http.ResponseWriter, r *http.Request) {
	managerID, _ := middleware.GetUserID(r.Context())
	status := domain.ApplicationStatus(r.URL.Query().Get("status"))

	apps, err := h.service.Queue(r.Context(), managerID, status)
	if err != nil {
		log.Printf("[ERROR] failed to load review queue for manager=%s: %v", managerID, err)
		response.Error(w, statusFor(err), clientMessage(err, "failed to load review queue"))
		return
	}
	response.JSON(w, http.StatusOK, apps)
}

func (h *ManagerHandler) Detail(w http.ResponseWriter, r *http.Request) {
	managerID, _ := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "applicationID")

	app, err := h.service.Detail(r.Context(), managerID, id)
	if err != nil {
		response.Error(w, statusFor(err), clientMessage(err, "failed to load application"))
		return
	}
	response.JSON(w, http.StatusOK, app)
}

// Decide records an approval or rejection and returns the refreshed
// application when the re-fetch succeeds.
func (h *ManagerHandler) Decide(w http.ResponseWriter, r *http.Request) {
	managerID, _ := middleware.GetUserID(r.Context())
	id := chi.URLParam(r, "applicationID")

	var decision domain.Decision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	refreshed, err := h.service.Decide(r.Context(), managerID, id, decision)
	if err != nil {
		log.Printf("[ERROR] decision failed for application=%s manager=%s: %v", id, managerID, err)
		response.Error(w, statusFor(err), clientMessage(err, "failed to record decision"))
		return
	}

	if refreshed == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	response.JSON(w, http.StatusOK, refreshed)
}
