package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestFoldTransactions(t *testing.T) {
	spendID := uuid.New()

	tests := []struct {
		name        string
		txs         []Transaction
		wantBalance string
		wantSpent   string
	}{
		{
			name:        "empty ledger",
			txs:         nil,
			wantBalance: "0",
			wantSpent:   "0",
		},
		{
			name: "purchase and recharge add to balance",
			txs: []Transaction{
				{ID: uuid.New(), Type: TxPurchase, Amount: d("100")},
				{ID: uuid.New(), Type: TxRecharge, Amount: d("50")},
			},
			wantBalance: "150",
			wantSpent:   "0",
		},
		{
			name: "spend and refund accumulate in spent",
			txs: []Transaction{
				{ID: uuid.New(), Type: TxPurchase, Amount: d("100")},
				{ID: uuid.New(), Type: TxSpend, Amount: d("30")},
				{ID: uuid.New(), Type: TxRefund, Amount: d("20")},
			},
			wantBalance: "100",
			wantSpent:   "50",
		},
		{
			name: "transfer_out deducts amount plus fee",
			txs: []Transaction{
				{ID: uuid.New(), Type: TxPurchase, Amount: d("100")},
				{ID: uuid.New(), Type: TxTransferOut, Amount: d("40"), Fee: d("2")},
			},
			wantBalance: "58",
			wantSpent:   "0",
		},
		{
			name: "transfer_in adds amount without fee",
			txs: []Transaction{
				{ID: uuid.New(), Type: TxTransferIn, Amount: d("40")},
			},
			wantBalance: "40",
			wantSpent:   "0",
		},
		{
			name: "void excludes both itself and the voided entry",
			txs: []Transaction{
				{ID: uuid.New(), Type: TxPurchase, Amount: d("100")},
				{ID: spendID, Type: TxSpend, Amount: d("30")},
				{ID: uuid.New(), Type: TxVoid, Amount: d("30"), RelatedTxID: &spendID},
			},
			wantBalance: "100",
			wantSpent:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, spent := FoldTransactions(tt.txs)
			assert.True(t, balance.Equal(d(tt.wantBalance)),
				"balance: want %s, got %s", tt.wantBalance, balance)
			assert.True(t, spent.Equal(d(tt.wantSpent)),
				"spent: want %s, got %s", tt.wantSpent, spent)
		})
	}
}

func TestGiftcardCheckInvariant(t *testing.T) {
	tests := []struct {
		name    string
		card    Giftcard
		wantErr bool
	}{
		{
			name: "consistent balances",
			card: Giftcard{Balance: d("100"), Spent: d("30"), Leftover: d("70")},
		},
		{
			name:    "leftover disagrees with balance minus spent",
			card:    Giftcard{Balance: d("100"), Spent: d("30"), Leftover: d("80")},
			wantErr: true,
		},
		{
			name:    "negative leftover",
			card:    Giftcard{Balance: d("10"), Spent: d("30"), Leftover: d("-20")},
			wantErr: true,
		},
		{
			name:    "negative balance",
			card:    Giftcard{Balance: d("-5"), Spent: d("0"), Leftover: d("-5")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.CheckInvariant()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrLedgerInvariant)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGiftcardFilters(t *testing.T) {
	card := Giftcard{
		ServiceFilter: []int64{1, 2},
		StaffFilter:   nil,
	}

	assert.True(t, card.AppliesToService(1))
	assert.False(t, card.AppliesToService(3))
	// nil фильтр означает "для всех"
	assert.True(t, card.AppliesToStaff(42))
}
