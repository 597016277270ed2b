package handler

import (
	"encoding/json"
	"net/http"

	"github.com/segyhp/placement-engine/internal/domain"
	"github.com/segyhp/placement-engine/internal/service"
	"github.com/segyhp/placement-engine/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	service   *service.ScheduleService
	validator *validator.Validate
}

func NewScheduleHandler(service *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		service:   service,
		validator: newValidator(),
	}
}

// GetContractSchedule handles GET /api/v1/contracts/{contractId}/schedule
func (h *ScheduleHandler) GetContractSchedule(w http.ResponseWriter, r *http.Request) {
	contractID := mux.Vars(r)["contractId"]

	projection, err := h.service.GetContractSchedule(r.Context(), contractID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, projection)
}

// Simulate handles POST /api/v1/simulations
func (h *ScheduleHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var request domain.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	projection, err := h.service.Simulate(&request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, projection)
}
