package model

import (
	"gorm.io/gorm"
)

// Poll is a point-in-time snapshot of one valid ledger record. The ledger
// owns record truth; rows here only cache the last successful refresh.
type Poll struct {
	Id            uint64   `gorm:"primaryKey;autoIncrement:false"`
	Question      string   `gorm:"NOT NULL"`
	Options       []string `gorm:"serializer:json"`
	VoteCounts    []uint64 `gorm:"serializer:json"`
	TotalVotes    uint64   `gorm:"NOT NULL"`
	Creator       string   `gorm:"NOT NULL"`
	RefreshedTime int64    `gorm:"NOT NULL"`
}

func (*Poll) TableName() string {
	return "polls"
}

func InitPollTable(db *gorm.DB) {
	if !db.Migrator().HasTable(&Poll{}) {
		err := db.Migrator().CreateTable(&Poll{})
		if err != nil {
			panic(err)
		}
	}
}
