package state

import (
	"time"

	"github.com/open-ballot/ballotboard/alert"
	"github.com/open-ballot/ballotboard/config"
	"github.com/open-ballot/ballotboard/db/model"
	"github.com/open-ballot/ballotboard/logging"
	"github.com/open-ballot/ballotboard/metrics"
)

type PollLoader interface {
	LoadPolls() ([]model.Poll, error)
}

type LeaderboardLoader interface {
	LoadLeaderboard() ([]model.LeaderboardEntry, error)
}

// SnapshotStore persists the last successful view so a restart or a ledger
// outage can still serve something.
type SnapshotStore interface {
	SavePollSnapshot(polls []model.Poll) error
	GetPollSnapshot() ([]model.Poll, error)
	SaveLeaderboardSnapshot(entries []model.LeaderboardEntry) error
	GetLeaderboardSnapshot() ([]model.LeaderboardEntry, error)
}

// Refresher re-pulls both ledger views and publishes them into the store.
// The two loads are independent round-trips; one failing does not stop the
// other, and the design accepts that they may not observe a consistent
// joint snapshot.
type Refresher struct {
	polls         PollLoader
	leaderboard   LeaderboardLoader
	store         *Store
	snapshots     SnapshotStore
	alertConfig   *config.AlertConfig
	metricService *metrics.MetricService
}

func NewRefresher(polls PollLoader, leaderboard LeaderboardLoader, store *Store,
	snapshots SnapshotStore, alertConfig *config.AlertConfig, metricService *metrics.MetricService,
) *Refresher {
	return &Refresher{
		polls:         polls,
		leaderboard:   leaderboard,
		store:         store,
		snapshots:     snapshots,
		alertConfig:   alertConfig,
		metricService: metricService,
	}
}

// RefreshAll runs exactly one poll load and one leaderboard load. Aggregate
// load failures surface an empty view plus the error; the snapshot keeps
// the last successful generation in that case.
func (r *Refresher) RefreshAll() error {
	r.metricService.IncRefreshCount()

	var firstErr error

	polls, err := r.polls.LoadPolls()
	r.store.SetPolls(polls)
	if err != nil {
		logging.Logger.Errorf("refresher failed to load polls, err=%s", err.Error())
		firstErr = err
	} else if r.snapshots != nil {
		if err := r.snapshots.SavePollSnapshot(polls); err != nil {
			logging.Logger.Errorf("refresher failed to snapshot polls, err=%s", err.Error())
		}
	}

	entries, err := r.leaderboard.LoadLeaderboard()
	r.store.SetLeaderboard(entries)
	if err != nil {
		logging.Logger.Errorf("refresher failed to load leaderboard, err=%s", err.Error())
		if firstErr == nil {
			firstErr = err
		}
	} else if r.snapshots != nil {
		if err := r.snapshots.SaveLeaderboardSnapshot(entries); err != nil {
			logging.Logger.Errorf("refresher failed to snapshot leaderboard, err=%s", err.Error())
		}
	}

	if firstErr != nil {
		r.metricService.IncRefreshErr()
		if r.alertConfig != nil {
			alert.SendTelegramMessage(r.alertConfig.Identity, r.alertConfig.TelegramBotId,
				r.alertConfig.TelegramChatId, "ledger refresh failed: "+firstErr.Error())
		}
	}
	return firstErr
}

// RestoreSnapshot seeds the store from the local cache before the first
// ledger round-trip.
func (r *Refresher) RestoreSnapshot() {
	if r.snapshots == nil {
		return
	}
	polls, err := r.snapshots.GetPollSnapshot()
	if err != nil {
		logging.Logger.Errorf("refresher failed to restore poll snapshot, err=%s", err.Error())
	} else if len(polls) > 0 {
		r.store.SetPolls(polls)
	}
	entries, err := r.snapshots.GetLeaderboardSnapshot()
	if err != nil {
		logging.Logger.Errorf("refresher failed to restore leaderboard snapshot, err=%s", err.Error())
	} else if len(entries) > 0 {
		r.store.SetLeaderboard(entries)
	}
}

// RefreshLoop re-pulls on a ticker so the view converges even without
// local mutations. interval <= 0 disables the loop.
func (r *Refresher) RefreshLoop(interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	for range ticker.C {
		if err := r.RefreshAll(); err != nil {
			logging.Logger.Errorf("background refresh error, err=%s", err.Error())
		}
	}
}
