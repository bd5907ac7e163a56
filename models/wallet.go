package models

import "time"

// TransactionType classifies a wallet transaction.
type TransactionType string

const (
	TransactionEarn     TransactionType = "earn"
	TransactionSpend    TransactionType = "spend"
	TransactionTransfer TransactionType = "transfer"
	TransactionDeposit  TransactionType = "deposit"
	TransactionRefund   TransactionType = "refund"
)

// Wallet holds the credit balance for the authenticated user.
type Wallet struct {
	Address   string    `json:"address"`
	Balance   float64   `json:"balance"`
	Earned    float64   `json:"total_earned"`
	Spent     float64   `json:"total_spent"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Transaction is a single credit movement on the wallet.
type Transaction struct {
	ID          string          `json:"transaction_id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	FromUser    string          `json:"from_user,omitempty"`
	ToUser      string          `json:"to_user,omitempty"`
}
