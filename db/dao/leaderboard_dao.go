package dao

import (
	"time"

	"gorm.io/gorm"

	"github.com/open-ballot/ballotboard/db/model"
)

type LeaderboardDao struct {
	DB *gorm.DB
}

func NewLeaderboardDao(db *gorm.DB) *LeaderboardDao {
	return &LeaderboardDao{
		DB: db,
	}
}

// SaveLeaderboardSnapshot replaces the cached ranking. Position is assigned
// from slice order; readers derive display rank from position, never from id.
func (d *LeaderboardDao) SaveLeaderboardSnapshot(entries []model.LeaderboardEntry) error {
	now := time.Now().Unix()
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.LeaderboardEntry{}).Error; err != nil {
			return err
		}
		for i, entry := range entries {
			entry.Position = uint64(i)
			entry.RefreshedTime = now
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *LeaderboardDao) GetLeaderboardSnapshot() ([]model.LeaderboardEntry, error) {
	entries := make([]model.LeaderboardEntry, 0)
	err := d.DB.Order("position asc").Find(&entries).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return entries, nil
}

func (d *LeaderboardDao) DeleteLeaderboardBefore(unixTimestamp int64) error {
	return d.DB.Where("refreshed_time < ?", unixTimestamp).Delete(&model.LeaderboardEntry{}).Error
}
