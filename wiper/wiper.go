package wiper

import (
	"time"

	"github.com/open-ballot/ballotboard/common"
	"github.com/open-ballot/ballotboard/db/dao"
	"github.com/open-ballot/ballotboard/logging"
)

const (
	SnapshotWipeInterval = 1 * time.Hour
	// SnapshotRetention bounds how stale a cached view may get before it is
	// dropped rather than served.
	SnapshotRetention = 24 * time.Hour
)

// SnapshotWiper prunes cached poll and leaderboard snapshots that are too
// old to be worth serving.
type SnapshotWiper struct {
	daoManager *dao.DaoManager
}

func NewSnapshotWiper(dao *dao.DaoManager) *SnapshotWiper {
	return &SnapshotWiper{
		daoManager: dao,
	}
}

func (w *SnapshotWiper) WipeLoop() {
	ticker := time.NewTicker(SnapshotWipeInterval)
	for range ticker.C {
		err := w.Wipe()
		if err != nil {
			logging.Logger.Errorf("snapshot wipe error, err=%s", err.Error())
			time.Sleep(common.RetryInterval)
		}
	}
}

func (w *SnapshotWiper) Wipe() error {
	cutoff := time.Now().Add(-SnapshotRetention).Unix()
	err := w.daoManager.DeletePollsBefore(cutoff)
	if err != nil {
		return err
	}
	err = w.daoManager.DeleteLeaderboardBefore(cutoff)
	if err != nil {
		return err
	}
	return nil
}
