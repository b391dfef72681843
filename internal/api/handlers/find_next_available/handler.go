package find_next_available

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/chrisnails1212/salon-booking-engine/internal/api/handlers"
	findNextAvailable "github.com/chrisnails1212/salon-booking-engine/internal/usecase/find_next_available"
	getAvailableSlots "github.com/chrisnails1212/salon-booking-engine/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidQuery        = "некорректные параметры запроса"
	msgServiceNotFound     = "услуга не найдена"
	msgStaffNotFound       = "сотрудник не найден"
	msgStaffDoesNotPerform = "сотрудник не оказывает эту услугу"
	msgNoAvailability      = "нет свободных слотов в пределах горизонта бронирования"
)

type Handler struct {
	useCase FindNextAvailableUseCase
	logger  Logger
}

func NewHandler(useCase FindNextAvailableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/next-available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/next-available - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req, err := parseQuery(serviceID, 0, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /services/{id}/next-available - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, findNextAvailable.ErrNoAvailability):
			h.logger.Info("GET /services/{id}/next-available - No availability: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNoAvailability)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/next-available - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /services/{id}/next-available - Staff not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffDoesNotPerformService):
			h.logger.Warn("GET /services/{id}/next-available - Staff does not perform service: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgStaffDoesNotPerform)

		case errors.Is(err, findNextAvailable.ErrInvalidInput), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/next-available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /services/{id}/next-available - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/next-available - Found %s %s: service_id=%d",
		result.Date, result.StartTime, serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
