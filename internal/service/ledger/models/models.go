package models

import (
	"github.com/shopspring/decimal"

	"github.com/chrisnails1212/salon-booking-engine/internal/domain"
)

// Request модели

// IssueGiftcardRequest запрос на выпуск новой подарочной карты
type IssueGiftcardRequest struct {
	Code          string           `json:"code"`
	InitialAmount decimal.Decimal  `json:"initialAmount"`
	ExpiresAt     *string          `json:"expiresAt,omitempty"` // "2026-12-31"
	UsageLimit    *int64           `json:"usageLimit,omitempty"`
	DailyLimit    *decimal.Decimal `json:"dailyLimit,omitempty"`
	MonthlyLimit  *decimal.Decimal `json:"monthlyLimit,omitempty"`
	ServiceFilter []int64          `json:"serviceFilter,omitempty"`
	StaffFilter   []int64          `json:"staffFilter,omitempty"`
}

// RechargeRequest запрос на пополнение карты
type RechargeRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
	Reason *string         `json:"reason,omitempty"`
}

// TransferRequest запрос на перевод средств между картами
type TransferRequest struct {
	FromCode string          `json:"fromCode"`
	ToCode   string          `json:"toCode"`
	Amount   decimal.Decimal `json:"amount"`
}

// RefundRequest запрос на возврат остатка владельцу
type RefundRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
	Reason *string         `json:"reason,omitempty"`
}

// Response модели

// TransactionResponse одна запись журнала транзакций
type TransactionResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	Amount            decimal.Decimal `json:"amount"`
	Fee               decimal.Decimal `json:"fee"`
	Reason            *string         `json:"reason,omitempty"`
	BookingID         *int64          `json:"bookingId,omitempty"`
	RelatedGiftcardID *int64          `json:"relatedGiftcardId,omitempty"`
	RelatedTxID       *string         `json:"relatedTxId,omitempty"`
	CreatedAt         string          `json:"createdAt"`
}

// GiftcardResponse ответ с состоянием карты
type GiftcardResponse struct {
	ID           int64                 `json:"id"`
	Code         string                `json:"code"`
	Balance      decimal.Decimal       `json:"balance"`
	Spent        decimal.Decimal       `json:"spent"`
	Leftover     decimal.Decimal       `json:"leftover"`
	UsageLimit   *int64                `json:"usageLimit,omitempty"`
	TimesUsed    int64                 `json:"timesUsed"`
	ExpiresAt    *string               `json:"expiresAt,omitempty"`
	IsActive     bool                  `json:"isActive"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
}

// TransferResponse результат перевода
type TransferResponse struct {
	From GiftcardResponse `json:"from"`
	To   GiftcardResponse `json:"to"`
	Fee  decimal.Decimal  `json:"fee"`
}

// FromDomainTransaction конвертирует запись журнала в response
func FromDomainTransaction(tx domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                tx.ID.String(),
		Type:              string(tx.Type),
		Amount:            tx.Amount,
		Fee:               tx.Fee,
		Reason:            tx.Reason,
		BookingID:         tx.BookingID,
		RelatedGiftcardID: tx.RelatedGiftcardID,
		CreatedAt:         tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if tx.RelatedTxID != nil {
		s := tx.RelatedTxID.String()
		resp.RelatedTxID = &s
	}
	return resp
}

// FromDomainGiftcard конвертирует карту в response
func FromDomainGiftcard(card *domain.Giftcard, txs []domain.Transaction) GiftcardResponse {
	resp := GiftcardResponse{
		ID:         card.ID,
		Code:       card.Code,
		Balance:    card.Balance,
		Spent:      card.Spent,
		Leftover:   card.Leftover,
		UsageLimit: card.UsageLimit,
		TimesUsed:  card.TimesUsed,
		IsActive:   card.IsActive,
	}
	if card.ExpiresAt != nil {
		s := card.ExpiresAt.Format("2006-01-02")
		resp.ExpiresAt = &s
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, FromDomainTransaction(tx))
	}
	return resp
}
