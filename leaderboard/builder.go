package leaderboard

import (
	"time"

	"github.com/open-ballot/ballotboard/db/model"
	"github.com/open-ballot/ballotboard/executor"
	"github.com/open-ballot/ballotboard/logging"
	"github.com/open-ballot/ballotboard/metrics"
	"github.com/open-ballot/ballotboard/util"
)

// Ledger is the slice of the gateway the builder consumes. The ranking
// order comes from the ledger; the builder never sorts.
type Ledger interface {
	GetLeaderboard() ([]uint64, error)
	GetPoll(id uint64) (*executor.PollRecord, error)
}

// Builder resolves the ledger's ranking into display entries, tolerating
// failures of individual identifiers independently of the poll repository.
type Builder struct {
	ledger        Ledger
	metricService *metrics.MetricService
}

func NewBuilder(ledger Ledger, metricService *metrics.MetricService) *Builder {
	return &Builder{
		ledger:        ledger,
		metricService: metricService,
	}
}

// LoadLeaderboard returns entries in the ledger's rank order minus any
// identifiers that failed to resolve or were invalid. Display rank is the
// 1-based position in the result, recomputed on every load.
func (b *Builder) LoadLeaderboard() ([]model.LeaderboardEntry, error) {
	startTime := time.Now()

	ids, err := b.ledger.GetLeaderboard()
	if err != nil {
		logging.Logger.Errorf("leaderboard builder failed to get ranking, err=%s", err.Error())
		b.metricService.IncLeaderboardLoadErr()
		return []model.LeaderboardEntry{}, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		record, err := b.ledger.GetPoll(id)
		if err != nil {
			logging.Logger.Warnf("leaderboard builder skipping poll %d, err=%s", id, err.Error())
			b.metricService.IncLeaderboardSkipped()
			continue
		}
		if !record.Valid() {
			continue
		}
		totalVotes, err := util.BigToUint64(record.TotalVotes)
		if err != nil {
			logging.Logger.Warnf("leaderboard builder skipping poll %d, err=%s", id, err.Error())
			b.metricService.IncLeaderboardSkipped()
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			PollId:     id,
			Question:   record.Question,
			TotalVotes: totalVotes,
		})
	}

	b.metricService.SetLeaderboardSize(len(entries))
	b.metricService.SetLeaderboardLoadDuration(time.Since(startTime))
	return entries, nil
}
