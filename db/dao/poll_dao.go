package dao

import (
	"time"

	"gorm.io/gorm"

	"github.com/open-ballot/ballotboard/db/model"
)

type PollDao struct {
	DB *gorm.DB
}

func NewPollDao(db *gorm.DB) *PollDao {
	return &PollDao{
		DB: db,
	}
}

// SavePollSnapshot replaces the cached poll set with the given one. The
// snapshot is all-or-nothing so a crash mid-write cannot leave a mix of
// two refresh generations behind.
func (d *PollDao) SavePollSnapshot(polls []model.Poll) error {
	now := time.Now().Unix()
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Poll{}).Error; err != nil {
			return err
		}
		for _, poll := range polls {
			poll.RefreshedTime = now
			if err := tx.Create(&poll).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *PollDao) GetPollSnapshot() ([]model.Poll, error) {
	polls := make([]model.Poll, 0)
	err := d.DB.Order("id asc").Find(&polls).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return polls, nil
}

func (d *PollDao) DeletePollsBefore(unixTimestamp int64) error {
	return d.DB.Where("refreshed_time < ?", unixTimestamp).Delete(&model.Poll{}).Error
}
