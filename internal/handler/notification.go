package handler

import (
	"net/http"

	"github.com/segyhp/placement-engine/internal/service"
	"github.com/segyhp/placement-engine/pkg/response"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	service *service.NotificationService
}

func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListByUser handles GET /api/v1/users/{userId}/notifications
func (h *NotificationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	notifications, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, notifications)
}
