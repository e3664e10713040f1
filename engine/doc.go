// Package engine implements the transaction-application state machine for the
// payments engine.
//
// A Processor consumes an ordered stream of transaction records, one at a
// time, and applies each against two in-process stores: per-client account
// balances and a cache of disputable deposits. Business-rule violations
// (duplicate deposit ids, overdrawn withdrawals, dispute-family records that
// reference missing or mismatched transactions, anything touching a locked
// account) are silently dropped; only input-format failures, which are
// handled upstream of this package, abort a run.
package engine
