package dao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/open-ballot/ballotboard/db/model"
)

type pollSuite struct {
	suite.Suite
	dao *PollDao
}

func TestPollSuite(t *testing.T) {
	suite.Run(t, new(pollSuite))
}

func (s *pollSuite) SetupTest() {
	db, err := RunDB()
	s.Require().NoError(err)
	model.InitPollTable(db)

	s.dao = NewPollDao(db)
}

func (s *pollSuite) createPolls() []model.Poll {
	return []model.Poll{
		{Id: 0, Question: "Q0", Options: []string{"A", "B"}, VoteCounts: []uint64{3, 2}, TotalVotes: 5, Creator: "0xabc"},
		{Id: 2, Question: "Q2", Options: []string{"C", "D"}, VoteCounts: []uint64{0, 1}, TotalVotes: 1, Creator: "0xdef"},
	}
}

func (s *pollSuite) TestPollDao_SaveAndGetSnapshot() {
	err := s.dao.SavePollSnapshot(s.createPolls())
	s.Require().NoError(err, "failed to save")

	polls, err := s.dao.GetPollSnapshot()
	s.Require().NoError(err)
	s.Require().Len(polls, 2)
	s.Require().Equal(uint64(0), polls[0].Id)
	s.Require().Equal(uint64(2), polls[1].Id)
	s.Require().Equal([]string{"A", "B"}, polls[0].Options)
	s.Require().Equal([]uint64{3, 2}, polls[0].VoteCounts)
}

func (s *pollSuite) TestPollDao_SnapshotReplacesPrevious() {
	err := s.dao.SavePollSnapshot(s.createPolls())
	s.Require().NoError(err)

	err = s.dao.SavePollSnapshot([]model.Poll{
		{Id: 1, Question: "Q1", Options: []string{"A", "B"}, VoteCounts: []uint64{1, 1}, TotalVotes: 2, Creator: "0xabc"},
	})
	s.Require().NoError(err)

	polls, err := s.dao.GetPollSnapshot()
	s.Require().NoError(err)
	s.Require().Len(polls, 1)
	s.Require().Equal(uint64(1), polls[0].Id)
}

func (s *pollSuite) TestPollDao_DeletePollsBefore() {
	err := s.dao.SavePollSnapshot(s.createPolls())
	s.Require().NoError(err)

	cutoff := time.Now().Add(time.Hour).Unix()
	err = s.dao.DeletePollsBefore(cutoff)
	s.Require().NoError(err)

	polls, err := s.dao.GetPollSnapshot()
	s.Require().NoError(err)
	s.Require().Empty(polls)
}
