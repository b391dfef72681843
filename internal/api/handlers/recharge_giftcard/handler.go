package recharge_giftcard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chrisnails1212/salon-booking-engine/internal/api/handlers"
	"github.com/chrisnails1212/salon-booking-engine/internal/api/middleware"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMissingCode        = "не указан код подарочной карты"
	msgGiftcardNotFound   = "подарочная карта не найдена"
	msgGiftcardInactive   = "подарочная карта не активна"
	msgInvalidAmount      = "сумма должна быть положительной"
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

// Handle POST /api/v1/giftcards/{code}/recharge
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /giftcards/{code}/recharge - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	code := mux.Vars(r)["code"]
	if code == "" {
		h.logger.Warn("POST /giftcards/{code}/recharge - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	var req RechargeGiftcardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /giftcards/{code}/recharge - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Recharge(r.Context(), req.ToServiceRequest(code))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrGiftcardNotFound):
			h.logger.Warn("POST /giftcards/{code}/recharge - Giftcard not found: code=%s", code)
			handlers.RespondNotFound(w, msgGiftcardNotFound)

		case errors.Is(err, ledger.ErrGiftcardInactive):
			h.logger.Warn("POST /giftcards/{code}/recharge - Giftcard inactive: code=%s", code)
			handlers.RespondConflict(w, msgGiftcardInactive)

		case errors.Is(err, ledger.ErrInvalidAmount):
			h.logger.Warn("POST /giftcards/{code}/recharge - Invalid amount: code=%s, amount=%s", code, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		default:
			h.logger.Error("POST /giftcards/{code}/recharge - Failed: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /giftcards/{code}/recharge - Giftcard recharged: code=%s, balance=%s", code, result.Balance)
	handlers.RespondJSON(w, http.StatusOK, result)
}
