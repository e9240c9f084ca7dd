package common

import "errors"

var (
	// ErrNotInitialized is returned by workflows invoked before a ledger
	// binding has been established.
	ErrNotInitialized = errors.New("ledger binding not initialized")

	// ErrAlreadyVoted is the ledger's duplicate-vote rejection, surfaced
	// as a distinct condition so callers can tell it from other failures.
	ErrAlreadyVoted = errors.New("already voted on this poll")

	// ErrInsufficientOptions is the local validation failure for drafts
	// with fewer than MinDraftOptions non-blank options.
	ErrInsufficientOptions = errors.New("a poll needs at least 2 non-blank options")

	// ErrNoWallet indicates the wallet runtime is absent or holds no
	// accounts. Not fatal, voting stays disabled until a wallet shows up.
	ErrNoWallet = errors.New("no wallet account available")

	// ErrTxReverted indicates a mutation was mined but rejected by the
	// ledger without a usable reason string.
	ErrTxReverted = errors.New("transaction reverted by ledger")
)
