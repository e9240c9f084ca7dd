package poll

import (
	"github.com/open-ballot/ballotboard/executor"
)

// Ledger is the slice of the gateway the poll components consume.
type Ledger interface {
	PollCount() (uint64, error)
	GetPoll(id uint64) (*executor.PollRecord, error)
	SubmitCreatePoll(question string, options []string) (executor.Pending, error)
}

// Refresher re-pulls both ledger views after a successful mutation.
type Refresher interface {
	RefreshAll() error
}
