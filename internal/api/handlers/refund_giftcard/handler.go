package refund_giftcard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chrisnails1212/salon-booking-engine/internal/api/handlers"
	"github.com/chrisnails1212/salon-booking-engine/internal/api/middleware"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgMissingCode          = "не указан код подарочной карты"
	msgGiftcardNotFound     = "подарочная карта не найдена"
	msgGiftcardInactive     = "подарочная карта не активна"
	msgInvalidAmount        = "сумма должна быть положительной"
	msgInsufficientBalance  = "недостаточно средств на карте"
	msgRefundNotAllowed     = "возвраты запрещены для этой карты"
	msgRefundDeadlinePassed = "срок возврата истек"
)

type Handler struct {
	service LedgerService
	logger  Logger
}

func NewHandler(service LedgerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/giftcards/{code}/refund
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /giftcards/{code}/refund - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	code := mux.Vars(r)["code"]
	if code == "" {
		h.logger.Warn("POST /giftcards/{code}/refund - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	var req RefundGiftcardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /giftcards/{code}/refund - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Refund(r.Context(), req.ToServiceRequest(code))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrGiftcardNotFound):
			h.logger.Warn("POST /giftcards/{code}/refund - Giftcard not found: code=%s", code)
			handlers.RespondNotFound(w, msgGiftcardNotFound)

		case errors.Is(err, ledger.ErrGiftcardInactive):
			h.logger.Warn("POST /giftcards/{code}/refund - Giftcard inactive: code=%s", code)
			handlers.RespondConflict(w, msgGiftcardInactive)

		case errors.Is(err, ledger.ErrInvalidAmount):
			h.logger.Warn("POST /giftcards/{code}/refund - Invalid amount: code=%s, amount=%s", code, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, ledger.ErrInsufficientBalance):
			h.logger.Warn("POST /giftcards/{code}/refund - Insufficient spent amount: code=%s, amount=%s", code, req.Amount)
			handlers.RespondConflict(w, msgInsufficientBalance)

		case errors.Is(err, ledger.ErrRefundNotAllowed):
			h.logger.Warn("POST /giftcards/{code}/refund - Refund not allowed: code=%s", code)
			handlers.RespondConflict(w, msgRefundNotAllowed)

		case errors.Is(err, ledger.ErrRefundDeadlinePassed):
			h.logger.Warn("POST /giftcards/{code}/refund - Refund deadline passed: code=%s", code)
			handlers.RespondConflict(w, msgRefundDeadlinePassed)

		default:
			h.logger.Error("POST /giftcards/{code}/refund - Failed: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /giftcards/{code}/refund - Refund completed: code=%s, balance=%s", code, result.Balance)
	handlers.RespondJSON(w, http.StatusOK, result)
}
