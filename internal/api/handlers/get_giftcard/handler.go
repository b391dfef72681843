package get_giftcard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chrisnails1212/salon-booking-engine/internal/api/handlers"
	"github.com/chrisnails1212/salon-booking-engine/internal/api/middleware"
	"github.com/chrisnails1212/salon-booking-engine/internal/service/ledger"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgMissingCode      = "не указан код подарочной карты"
	msgGiftcardNotFound = "подарочная карта не найдена"
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

// Handle GET /api/v1/giftcards/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("GET /giftcards/{code} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	code := mux.Vars(r)["code"]
	if code == "" {
		h.logger.Warn("GET /giftcards/{code} - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	result, err := h.service.Get(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrGiftcardNotFound):
			h.logger.Warn("GET /giftcards/{code} - Giftcard not found: code=%s", code)
			handlers.RespondNotFound(w, msgGiftcardNotFound)

		default:
			h.logger.Error("GET /giftcards/{code} - Failed: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
