package dao

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/open-ballot/ballotboard/db/model"
)

type leaderboardSuite struct {
	suite.Suite
	dao *LeaderboardDao
}

func TestLeaderboardSuite(t *testing.T) {
	suite.Run(t, new(leaderboardSuite))
}

func (s *leaderboardSuite) SetupTest() {
	db, err := RunDB()
	s.Require().NoError(err)
	model.InitLeaderboardTable(db)

	s.dao = NewLeaderboardDao(db)
}

func (s *leaderboardSuite) TestLeaderboardDao_SavePreservesOrder() {
	entries := []model.LeaderboardEntry{
		{PollId: 7, Question: "Q7", TotalVotes: 9},
		{PollId: 1, Question: "Q1", TotalVotes: 4},
		{PollId: 3, Question: "Q3", TotalVotes: 4},
	}
	err := s.dao.SaveLeaderboardSnapshot(entries)
	s.Require().NoError(err, "failed to save")

	loaded, err := s.dao.GetLeaderboardSnapshot()
	s.Require().NoError(err)
	s.Require().Len(loaded, 3)
	s.Require().Equal(uint64(7), loaded[0].PollId)
	s.Require().Equal(uint64(1), loaded[1].PollId)
	s.Require().Equal(uint64(3), loaded[2].PollId)
}

func (s *leaderboardSuite) TestLeaderboardDao_SnapshotReplacesPrevious() {
	err := s.dao.SaveLeaderboardSnapshot([]model.LeaderboardEntry{
		{PollId: 0, Question: "Q0", TotalVotes: 1},
		{PollId: 1, Question: "Q1", TotalVotes: 0},
	})
	s.Require().NoError(err)

	err = s.dao.SaveLeaderboardSnapshot([]model.LeaderboardEntry{
		{PollId: 1, Question: "Q1", TotalVotes: 2},
	})
	s.Require().NoError(err)

	loaded, err := s.dao.GetLeaderboardSnapshot()
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Require().Equal(uint64(1), loaded[0].PollId)
	s.Require().Equal(uint64(0), loaded[0].Position)
}
