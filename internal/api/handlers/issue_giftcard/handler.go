package issue_giftcard

import (
	"errors"
	"net/http"

	"github.com/chrisnails1212/salon-booking-engine/internal/api/handlers"
	"github.com/chrisnails1212/salon-booking-engine/internal/api/middleware"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgDuplicateCode      = "подарочная карта с таким кодом уже существует"
	msgInvalidAmount      = "сумма должна быть положительной"
	msgInvalidExpiryDate  = "некорректная дата окончания действия карты"
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

// Handle POST /api/v1/giftcards
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /giftcards - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.IssueGiftcardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /giftcards - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Issue(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrDuplicateCode):
			h.logger.Warn("POST /giftcards - Duplicate code: code=%s", req.Code)
			handlers.RespondConflict(w, msgDuplicateCode)

		case errors.Is(err, ledger.ErrInvalidAmount):
			h.logger.Warn("POST /giftcards - Invalid amount: code=%s, amount=%s", req.Code, req.InitialAmount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, ledger.ErrInvalidExpiryDate):
			h.logger.Warn("POST /giftcards - Invalid expiry date: code=%s", req.Code)
			handlers.RespondBadRequest(w, msgInvalidExpiryDate)

		default:
			h.logger.Error("POST /giftcards - Failed: code=%s, error=%v", req.Code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /giftcards - Giftcard issued: code=%s, balance=%s", result.Code, result.Balance)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
