package engine

import (
	"context"

	"github.com/lewisbelcher/payments-engine/log"
)

// Processor applies transaction records against the account store and
// transaction cache. It exclusively owns both stores for the duration of a
// run; records must be fed strictly in delivery order from a single
// goroutine.
type Processor struct {
	accounts Accounts
	txCache  TxCache
	logger   log.Logger
}

// NewProcessor creates a processor with empty stores. If logger is nil, a
// no-op logger is used.
func NewProcessor(logger log.Logger) *Processor {
	if logger == nil {
		logger = log.NewNop()
	}

	return &Processor{
		accounts: NewAccounts(),
		txCache:  NewTxCache(),
		logger:   logger,
	}
}

// Accounts returns the account store. Callers must not mutate it while
// records are still being processed.
func (p *Processor) Accounts() Accounts {
	return p.accounts
}

// Process applies exactly one state transition, or none, for the given
// record. Business-rule violations never surface as errors: the record is
// dropped, a debug diagnostic is logged, and the stores are left untouched.
//
// If the client's account is locked the record is dropped before type
// dispatch, so a locked account cannot even receive new deposits.
func (p *Processor) Process(ctx context.Context, transaction Transaction) {
	if account, ok := p.accounts[transaction.Client]; ok && account.Locked {
		p.drop(ctx, transaction, "account is locked")
		return
	}

	switch transaction.Type {
	case TypeDeposit:
		p.handleDeposit(ctx, transaction)
	case TypeWithdrawal:
		p.handleWithdrawal(ctx, transaction)
	case TypeDispute:
		p.handleDispute(ctx, transaction)
	case TypeResolve:
		p.handleResolve(ctx, transaction)
	case TypeChargeback:
		p.handleChargeback(ctx, transaction)
	default:
		p.drop(ctx, transaction, "unknown transaction type")
	}
}

// handleDeposit credits the transaction amount to the client's total,
// creating the account if this is the client's first deposit, and caches the
// deposit for later dispute lookups. A transaction id already present in the
// cache is ignored: ids are assumed globally unique upstream, but a repeat
// must be idempotent.
func (p *Processor) handleDeposit(ctx context.Context, transaction Transaction) {
	if _, ok := p.txCache[transaction.Tx]; ok {
		p.drop(ctx, transaction, "duplicate transaction id")
		return
	}

	if account, ok := p.accounts[transaction.Client]; ok {
		account.Total = account.Total.Add(transaction.Amount)
	} else {
		p.logger.Log(ctx, log.LevelDebug, "new client account",
			log.Uint("client", uint64(transaction.Client)))
		p.accounts[transaction.Client] = newDepositAccount(transaction.Amount)
	}

	p.txCache[transaction.Tx] = newCachedTx(transaction.Amount, transaction.Client)
}

// handleWithdrawal debits the transaction amount from the client's total if
// the account exists and has sufficient available funds. Withdrawals are
// never cached and can never later be disputed.
func (p *Processor) handleWithdrawal(ctx context.Context, transaction Transaction) {
	account, ok := p.accounts[transaction.Client]
	if !ok {
		p.drop(ctx, transaction, "no account for client")
		return
	}

	if account.Available().LessThan(transaction.Amount) {
		p.drop(ctx, transaction, "withdrawal exceeds available funds")
		return
	}

	account.Total = account.Total.Sub(transaction.Amount)
}

// handleDispute freezes a prior deposit's funds: the cached amount moves
// from available to held. Total is unaffected; a dispute only reclassifies
// funds, it does not claw them back.
func (p *Processor) handleDispute(ctx context.Context, transaction Transaction) {
	account, cached, ok := p.lookupDisputable(ctx, transaction)
	if !ok {
		return
	}

	if cached.Disputed {
		p.drop(ctx, transaction, "transaction already disputed")
		return
	}

	cached.Disputed = true
	account.Held = account.Held.Add(cached.Amount)
}

// handleResolve reverses an open dispute, releasing the held funds back to
// available.
func (p *Processor) handleResolve(ctx context.Context, transaction Transaction) {
	account, cached, ok := p.lookupDisputable(ctx, transaction)
	if !ok {
		return
	}

	if !cached.Disputed {
		p.drop(ctx, transaction, "resolve on undisputed transaction")
		return
	}

	account.Held = account.Held.Sub(cached.Amount)
	cached.Disputed = false
}

// handleChargeback finalizes an open dispute: the disputed funds are removed
// from both held and total, and the account is locked for the rest of the
// run.
func (p *Processor) handleChargeback(ctx context.Context, transaction Transaction) {
	account, cached, ok := p.lookupDisputable(ctx, transaction)
	if !ok {
		return
	}

	if !cached.Disputed {
		p.drop(ctx, transaction, "chargeback on undisputed transaction")
		return
	}

	account.Held = account.Held.Sub(cached.Amount)
	account.Total = account.Total.Sub(cached.Amount)
	account.Locked = true
	cached.Disputed = false
}

// lookupDisputable resolves the account and cached deposit a dispute-family
// record refers to. It reports no match when the client has no account, the
// transaction id was never cached, or the cached deposit belongs to a
// different client. These are the three silently-ignored conditions shared
// by dispute, resolve, and chargeback.
func (p *Processor) lookupDisputable(ctx context.Context, transaction Transaction) (*Account, *CachedTx, bool) {
	account, ok := p.accounts[transaction.Client]
	if !ok {
		p.drop(ctx, transaction, "no account for client")
		return nil, nil, false
	}

	cached, ok := p.txCache[transaction.Tx]
	if !ok {
		p.drop(ctx, transaction, "no cached transaction")
		return nil, nil, false
	}

	if cached.Client != transaction.Client {
		p.drop(ctx, transaction, "client mismatch for cached transaction")
		return nil, nil, false
	}

	return account, cached, true
}

// drop records a business-rule rejection. Rejections are diagnostics, not
// errors.
func (p *Processor) drop(ctx context.Context, transaction Transaction, reason string) {
	if !p.logger.Enabled(log.LevelDebug) {
		return
	}

	p.logger.Log(ctx, log.LevelDebug, "dropping transaction",
		log.String("reason", reason),
		log.String("type", string(transaction.Type)),
		log.Uint("client", uint64(transaction.Client)),
		log.Uint("tx", uint64(transaction.Tx)),
	)
}
