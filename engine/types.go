package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ClientID identifies a client account. IDs are externally supplied and are
// never generated by the engine.
type ClientID uint16

// TransactionID identifies a transaction. The input producer treats ids as
// globally unique, but the engine does not trust that: a repeated deposit id
// is tolerated and ignored.
type TransactionID uint32

// TransactionType is the closed set of record types the engine accepts.
type TransactionType string

const (
	// TypeDeposit credits funds to a client account, creating it if needed.
	TypeDeposit TransactionType = "deposit"
	// TypeWithdrawal debits available funds from an existing account.
	TypeWithdrawal TransactionType = "withdrawal"
	// TypeDispute freezes a prior deposit's funds pending resolution.
	TypeDispute TransactionType = "dispute"
	// TypeResolve releases a disputed deposit's funds back to available.
	TypeResolve TransactionType = "resolve"
	// TypeChargeback finalizes a dispute, removing the funds and locking the account.
	TypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType takes a case-insensitive type token and returns the
// matching TransactionType constant. This is the single place unknown tokens
// are rejected.
func ParseTransactionType(token string) (TransactionType, error) {
	switch strings.ToLower(token) {
	case "deposit":
		return TypeDeposit, nil
	case "withdrawal":
		return TypeWithdrawal, nil
	case "dispute":
		return TypeDispute, nil
	case "resolve":
		return TypeResolve, nil
	case "chargeback":
		return TypeChargeback, nil
	}

	return "", fmt.Errorf("not a valid TransactionType: %q", token)
}

// Transaction is one input record. It is read, dispatched, and discarded; it
// never persists beyond one Process call.
//
// Amount is meaningful for deposits and withdrawals only; for the
// dispute-family types the upstream decoder supplies decimal.Zero.
type Transaction struct {
	Type   TransactionType
	Client ClientID
	Tx     TransactionID
	Amount decimal.Decimal
}

// Account is one client's balance state. Accounts are created on first
// accepted deposit only.
//
// Available funds are derived, never stored: see Available.
type Account struct {
	// Held is the funds currently frozen by open disputes.
	Held decimal.Decimal
	// Total is all funds ever deposited minus withdrawals and chargebacks,
	// inclusive of held funds.
	Total decimal.Decimal
	// Locked is set by a chargeback and is permanent for the run. A locked
	// account drops every subsequent record, deposits included.
	Locked bool
}

// newDepositAccount creates the account for a client's first accepted deposit.
func newDepositAccount(amount decimal.Decimal) *Account {
	return &Account{
		Held:  decimal.Zero,
		Total: amount,
	}
}

// Available returns the spendable balance, total minus held.
func (a *Account) Available() decimal.Decimal {
	return a.Total.Sub(a.Held)
}

// CachedTx is the retained record of an accepted deposit, kept so later
// dispute-family records can be resolved against it. Withdrawals are never
// cached; disputes can only target deposits.
type CachedTx struct {
	// Amount is the deposit's original amount, immutable after creation.
	Amount decimal.Decimal
	// Client is the owning client id, immutable after creation. Used to
	// reject dispute attempts that reference another client's deposit.
	Client ClientID
	// Disputed reports whether the deposit is currently under dispute.
	Disputed bool
}

// newCachedTx creates a cache entry for an accepted deposit.
func newCachedTx(amount decimal.Decimal, client ClientID) *CachedTx {
	return &CachedTx{
		Amount: amount,
		Client: client,
	}
}
