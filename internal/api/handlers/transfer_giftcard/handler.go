package transfer_giftcard

import (
	"errors"
	"net/http"

	"github.com/chrisnails1212/salon-booking-engine/internal/api/handlers"
	"github.com/chrisnails1212/salon-booking-engine/internal/api/middleware"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgGiftcardNotFound      = "подарочная карта не найдена"
	msgGiftcardInactive      = "подарочная карта не активна"
	msgInvalidAmount         = "сумма должна быть положительной"
	msgInsufficientBalance   = "недостаточно средств на карте"
	msgTransferNotAllowed    = "переводы запрещены для этой карты"
	msgTransferLimitExceeded = "сумма перевода превышает допустимый максимум"
	msgTransferToSelf        = "нельзя перевести средства на ту же карту"
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

// Handle POST /api/v1/giftcards/transfer
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /giftcards/transfer - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.TransferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /giftcards/transfer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Transfer(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrGiftcardNotFound):
			h.logger.Warn("POST /giftcards/transfer - Giftcard not found: from=%s, to=%s", req.FromCode, req.ToCode)
			handlers.RespondNotFound(w, msgGiftcardNotFound)

		case errors.Is(err, ledger.ErrGiftcardInactive):
			h.logger.Warn("POST /giftcards/transfer - Giftcard inactive: from=%s, to=%s", req.FromCode, req.ToCode)
			handlers.RespondConflict(w, msgGiftcardInactive)

		case errors.Is(err, ledger.ErrInvalidAmount):
			h.logger.Warn("POST /giftcards/transfer - Invalid amount: amount=%s", req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, ledger.ErrInsufficientBalance):
			h.logger.Warn("POST /giftcards/transfer - Insufficient balance: from=%s, amount=%s", req.FromCode, req.Amount)
			handlers.RespondConflict(w, msgInsufficientBalance)

		case errors.Is(err, ledger.ErrTransferNotAllowed):
			h.logger.Warn("POST /giftcards/transfer - Transfer not allowed: from=%s", req.FromCode)
			handlers.RespondConflict(w, msgTransferNotAllowed)

		case errors.Is(err, ledger.ErrTransferLimitExceeded):
			h.logger.Warn("POST /giftcards/transfer - Transfer limit exceeded: from=%s, amount=%s", req.FromCode, req.Amount)
			handlers.RespondConflict(w, msgTransferLimitExceeded)

		case errors.Is(err, ledger.ErrTransferToSelf):
			h.logger.Warn("POST /giftcards/transfer - Transfer to self: code=%s", req.FromCode)
			handlers.RespondBadRequest(w, msgTransferToSelf)

		default:
			h.logger.Error("POST /giftcards/transfer - Failed: from=%s, to=%s, error=%v", req.FromCode, req.ToCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /giftcards/transfer - Transfer completed: from=%s, to=%s, amount=%s, fee=%s",
		req.FromCode, req.ToCode, req.Amount, result.Fee)
	handlers.RespondJSON(w, http.StatusOK, result)
}
