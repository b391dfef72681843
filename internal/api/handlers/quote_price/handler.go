package quote_price

import (
	"errors"
	"net/http"

	"github.com/chrisnails1212/salon-booking-engine/internal/api/handlers"
	"github.com/chrisnails1212/salon-booking-engine/internal/api/middleware"
	quotePrice "github.com/chrisnails1212/salon-booking-engine/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgServiceNotFound       = "услуга не найдена"
	msgStaffDoesNotPerform   = "сотрудник не оказывает эту услугу"
	msgExtraNotFound         = "дополнительная услуга не принадлежит этой услуге"
	msgCouponNotFound        = "купон не найден"
	msgCouponNotApplicable   = "купон не применим"
	msgGiftcardNotFound      = "подарочная карта не найдена"
	msgGiftcardNotApplicable = "подарочная карта не применима"
	msgNotCombinable         = "купон нельзя сочетать с подарочными картами"
	msgDuplicateGiftcard     = "подарочная карта указана более одного раза"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /quotes - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req QuotePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrServiceNotFound):
			h.logger.Warn("POST /quotes - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quotePrice.ErrStaffDoesNotPerformService):
			h.logger.Warn("POST /quotes - Staff does not perform service: service_id=%d, staff_id=%d", req.ServiceID, req.StaffID)
			handlers.RespondBadRequest(w, msgStaffDoesNotPerform)

		case errors.Is(err, quotePrice.ErrExtraNotFound):
			h.logger.Warn("POST /quotes - Extra not found: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgExtraNotFound)

		case errors.Is(err, quotePrice.ErrCouponNotFound):
			h.logger.Warn("POST /quotes - Coupon not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, quotePrice.ErrCouponNotApplicable):
			h.logger.Warn("POST /quotes - Coupon not applicable: user_id=%d, reason=%v", userID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponNotApplicable)

		case errors.Is(err, quotePrice.ErrGiftcardNotFound):
			h.logger.Warn("POST /quotes - Giftcard not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgGiftcardNotFound)

		case errors.Is(err, quotePrice.ErrGiftcardNotApplicable):
			h.logger.Warn("POST /quotes - Giftcard not applicable: user_id=%d, reason=%v", userID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgGiftcardNotApplicable)

		case errors.Is(err, quotePrice.ErrNotCombinable):
			h.logger.Warn("POST /quotes - Not combinable: user_id=%d", userID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNotCombinable)

		case errors.Is(err, quotePrice.ErrDuplicateGiftcard):
			h.logger.Warn("POST /quotes - Duplicate giftcard: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDuplicateGiftcard)

		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /quotes - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote calculated: user_id=%d, service_id=%d, total=%s",
		userID, req.ServiceID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
