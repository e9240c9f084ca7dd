package vote

import (
	"time"

	"github.com/pkg/errors"

	"github.com/open-ballot/ballotboard/common"
	"github.com/open-ballot/ballotboard/executor"
	"github.com/open-ballot/ballotboard/logging"
	"github.com/open-ballot/ballotboard/metrics"
	"github.com/open-ballot/ballotboard/state"
)

// Ledger is the slice of the gateway the voting workflow consumes.
type Ledger interface {
	HasSigner() bool
	SubmitVote(pollId, optionIndex uint64) (executor.Pending, error)
}

type Refresher interface {
	RefreshAll() error
}

// Workflow drives one vote from submission through finalization. Duplicate
// submissions are not blocked here; the ledger rejects them per identity
// and the workflow reports whatever the ledger decides.
type Workflow struct {
	ledger        Ledger
	refresher     Refresher
	store         *state.Store
	metricService *metrics.MetricService
}

func NewWorkflow(ledger Ledger, refresher Refresher, store *state.Store, metricService *metrics.MetricService) *Workflow {
	return &Workflow{
		ledger:        ledger,
		refresher:     refresher,
		store:         store,
		metricService: metricService,
	}
}

// Vote submits one vote and awaits finalization. The ledger's duplicate-vote
// rejection surfaces as common.ErrAlreadyVoted, distinct from every other
// failure. There is no automatic retry: a second attempt is a ledger-level
// rejection, not a network retry.
func (w *Workflow) Vote(pollId, optionIndex uint64) error {
	if !w.ledger.HasSigner() {
		return common.ErrNotInitialized
	}
	startTime := time.Now()

	w.store.SetVotePhase(state.VoteSubmitting)
	pending, err := w.ledger.SubmitVote(pollId, optionIndex)
	if err != nil {
		w.store.SetVotePhase(state.VoteFailed)
		if errors.Is(err, common.ErrAlreadyVoted) {
			w.metricService.IncAlreadyVoted()
			return err
		}
		w.metricService.IncVoteErr()
		return errors.Wrapf(err, "submit vote for poll %d", pollId)
	}

	w.store.SetVotePhase(state.VoteConfirming)
	if err := pending.Wait(); err != nil {
		w.store.SetVotePhase(state.VoteFailed)
		w.metricService.IncVoteErr()
		return errors.Wrapf(err, "await vote for poll %d", pollId)
	}

	w.store.SetVotePhase(state.VoteDone)
	w.metricService.IncVotesSubmitted()
	w.metricService.SetVoteDuration(time.Since(startTime))
	logging.Logger.Infof("vote finalized for poll %d option %d", pollId, optionIndex)

	if err := w.refresher.RefreshAll(); err != nil {
		logging.Logger.Errorf("refresh after vote failed, err=%s", err.Error())
	}
	return nil
}
