package poll

import (
	"time"

	"github.com/open-ballot/ballotboard/db/model"
	"github.com/open-ballot/ballotboard/executor"
	"github.com/open-ballot/ballotboard/logging"
	"github.com/open-ballot/ballotboard/metrics"
	"github.com/open-ballot/ballotboard/util"
)

// Repository pulls the full poll set from the ledger, tolerating failures
// of individual records.
type Repository struct {
	ledger        Ledger
	metricService *metrics.MetricService
}

func NewRepository(ledger Ledger, metricService *metrics.MetricService) *Repository {
	return &Repository{
		ledger:        ledger,
		metricService: metricService,
	}
}

// LoadPolls returns the valid polls in ascending index order. A failure of
// one record never aborts the load; a failure of the count itself does,
// reporting an empty result plus the error.
func (r *Repository) LoadPolls() ([]model.Poll, error) {
	startTime := time.Now()

	count, err := r.ledger.PollCount()
	if err != nil {
		logging.Logger.Errorf("poll repository failed to get poll count, err=%s", err.Error())
		r.metricService.IncPollLoadErr()
		return []model.Poll{}, err
	}

	polls := make([]model.Poll, 0, count)
	for i := uint64(0); i < count; i++ {
		record, err := r.ledger.GetPoll(i)
		if err != nil {
			logging.Logger.Warnf("poll repository skipping poll %d, err=%s", i, err.Error())
			r.metricService.IncPollsSkipped()
			continue
		}
		p, err := normalize(i, record)
		if err != nil {
			logging.Logger.Warnf("poll repository skipping poll %d, err=%s", i, err.Error())
			r.metricService.IncPollsSkipped()
			continue
		}
		if p == nil {
			continue
		}
		polls = append(polls, *p)
	}

	r.metricService.SetPollsLoaded(len(polls))
	r.metricService.SetPollLoadDuration(time.Since(startTime))
	return polls, nil
}

// normalize converts a raw ledger record into the client model. The poll's
// identifier is its slot index, not a field inside the record. A nil result
// with nil error means the slot is a placeholder to be silently excluded.
func normalize(id uint64, record *executor.PollRecord) (*model.Poll, error) {
	if !record.Valid() {
		return nil, nil
	}
	voteCounts, err := util.BigsToUint64s(record.VoteCounts)
	if err != nil {
		return nil, err
	}
	totalVotes, err := util.BigToUint64(record.TotalVotes)
	if err != nil {
		return nil, err
	}
	return &model.Poll{
		Id:         id,
		Question:   record.Question,
		Options:    record.Options,
		VoteCounts: voteCounts,
		TotalVotes: totalVotes,
		Creator:    record.Creator.Hex(),
	}, nil
}
