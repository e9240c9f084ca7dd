package dao

type DaoManager struct {
	*PollDao
	*LeaderboardDao
}

func NewDaoManager(pollDao *PollDao, leaderboardDao *LeaderboardDao) *DaoManager {
	return &DaoManager{
		PollDao:        pollDao,
		LeaderboardDao: leaderboardDao,
	}
}
