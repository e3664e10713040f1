package engine

// Accounts maps client ids to their current account state. It is lazily
// populated: a client gains an entry when its first deposit is accepted,
// and never loses one. No eviction, no size bound; the store lives for one
// run and is discarded at process end.
type Accounts map[ClientID]*Account

// NewAccounts creates an empty account store.
func NewAccounts() Accounts {
	return make(Accounts)
}

// TxCache maps transaction ids to cached deposit records used to resolve
// later dispute-family lookups. Same lifetime semantics as Accounts.
type TxCache map[TransactionID]*CachedTx

// NewTxCache creates an empty transaction cache.
func NewTxCache() TxCache {
	return make(TxCache)
}
