package model

import (
	"gorm.io/gorm"
)

// LeaderboardEntry is a display projection of a poll, fetched independently
// of the full record. Position is the storage order of the snapshot; display
// rank is always derived from position in the loaded sequence.
type LeaderboardEntry struct {
	Position      uint64 `gorm:"primaryKey;autoIncrement:false"`
	PollId        uint64 `gorm:"NOT NULL"`
	Question      string `gorm:"NOT NULL"`
	TotalVotes    uint64 `gorm:"NOT NULL"`
	RefreshedTime int64  `gorm:"NOT NULL"`
}

func (*LeaderboardEntry) TableName() string {
	return "leaderboard_entries"
}

func InitLeaderboardTable(db *gorm.DB) {
	if !db.Migrator().HasTable(&LeaderboardEntry{}) {
		err := db.Migrator().CreateTable(&LeaderboardEntry{})
		if err != nil {
			panic(err)
		}
	}
}
