package create_booking

import (
	"errors"
	"net/http"

	"github.com/chrisnails1212/salon-booking-engine/internal/api/handlers"
	"github.com/chrisnails1212/salon-booking-engine/internal/api/middleware"
	createBooking "github.com/chrisnails1212/salon-booking-engine/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgStaffDoesNotPerform  = "сотрудник не оказывает эту услугу"
	msgExtraNotFound        = "дополнительная услуга не принадлежит этой услуге"
	msgStaffNotWorking      = "сотрудник не работает в указанную дату"
	msgSlotNotAvailable     = "слот уже занят"
	msgPromotionNotEligible = "купон или подарочная карта больше не действительны"
	msgCouponNotFound       = "купон не найден"
	msgGiftcardNotFound     = "подарочная карта не найдена"
	msgDuplicateGiftcard    = "подарочная карта указана более одного раза"
	msgInvalidDate          = "некорректная дата бронирования"
	msgDateTooFar           = "дата слишком далеко в будущем"
	msgInvalidStartTime     = "время начала не попадает в сетку слотов"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request fields: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrStaffDoesNotPerformService):
			h.logger.Warn("POST /bookings - Staff does not perform service: staff_id=%d, service_id=%d", req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStaffDoesNotPerform)

		case errors.Is(err, createBooking.ErrExtraNotFound):
			h.logger.Warn("POST /bookings - Extra not found: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgExtraNotFound)

		case errors.Is(err, createBooking.ErrStaffNotWorking):
			h.logger.Warn("POST /bookings - Staff not working: staff_id=%d, date=%s", req.StaffID, req.Date)
			handlers.RespondConflict(w, msgStaffNotWorking)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: staff_id=%d, date=%s, time=%s", req.StaffID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPromotionNoLongerEligible):
			h.logger.Warn("POST /bookings - Promotion no longer eligible: user_id=%d, reason=%v", userID, err)
			handlers.RespondConflict(w, msgPromotionNotEligible)

		case errors.Is(err, createBooking.ErrCouponNotFound):
			h.logger.Warn("POST /bookings - Coupon not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, createBooking.ErrGiftcardNotFound):
			h.logger.Warn("POST /bookings - Giftcard not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgGiftcardNotFound)

		case errors.Is(err, createBooking.ErrDuplicateGiftcard):
			h.logger.Warn("POST /bookings - Duplicate giftcard: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDuplicateGiftcard)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidStartTime):
			h.logger.Warn("POST /bookings - Invalid start time: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidStartTime)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d, user_id=%d, staff_id=%d, date=%s, time=%s",
		result.ID, userID, req.StaffID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
