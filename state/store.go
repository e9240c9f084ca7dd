package state

import (
	"sync"

	"github.com/GianlucaGuarini/go-observable"

	"github.com/open-ballot/ballotboard/db/model"
)

// Topics emitted on the store's observable bus whenever the corresponding
// holder changes. The presentation layer subscribes to these instead of
// polling.
const (
	TopicPolls       = "polls"
	TopicLeaderboard = "leaderboard"
	TopicVote        = "vote"
	TopicSession     = "session"
)

type VotePhase string

const (
	VoteIdle       VotePhase = "idle"
	VoteSubmitting VotePhase = "submitting"
	VoteConfirming VotePhase = "confirming"
	VoteDone       VotePhase = "done"
	VoteFailed     VotePhase = "failed"
)

type SessionStatus string

const (
	NoIdentity SessionStatus = "no_identity"
	Connecting SessionStatus = "connecting"
	Connected  SessionStatus = "connected"
)

// Store holds the client-side view of the ledger: the poll list, the
// leaderboard, the in-flight vote phase and the session status. It is
// mutated only by the repository/builder refresh and the workflow
// operations; readers get copies.
type Store struct {
	mtx           sync.RWMutex
	polls         []model.Poll
	leaderboard   []model.LeaderboardEntry
	votePhase     VotePhase
	sessionStatus SessionStatus
	identity      string

	obs *observable.Observable
}

func NewStore() *Store {
	return &Store{
		votePhase:     VoteIdle,
		sessionStatus: NoIdentity,
		obs:           observable.New(),
	}
}

// On registers a subscriber for one of the Topic constants.
func (s *Store) On(topic string, fn interface{}) {
	s.obs.On(topic, fn)
}

func (s *Store) Off(topic string, fn interface{}) {
	s.obs.Off(topic, fn)
}

func (s *Store) SetPolls(polls []model.Poll) {
	s.mtx.Lock()
	s.polls = polls
	s.mtx.Unlock()
	s.obs.Trigger(TopicPolls)
}

func (s *Store) Polls() []model.Poll {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	polls := make([]model.Poll, len(s.polls))
	copy(polls, s.polls)
	return polls
}

func (s *Store) SetLeaderboard(entries []model.LeaderboardEntry) {
	s.mtx.Lock()
	s.leaderboard = entries
	s.mtx.Unlock()
	s.obs.Trigger(TopicLeaderboard)
}

func (s *Store) Leaderboard() []model.LeaderboardEntry {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	entries := make([]model.LeaderboardEntry, len(s.leaderboard))
	copy(entries, s.leaderboard)
	return entries
}

func (s *Store) SetVotePhase(phase VotePhase) {
	s.mtx.Lock()
	s.votePhase = phase
	s.mtx.Unlock()
	s.obs.Trigger(TopicVote)
}

func (s *Store) VotePhase() VotePhase {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.votePhase
}

func (s *Store) SetSessionStatus(status SessionStatus, identity string) {
	s.mtx.Lock()
	s.sessionStatus = status
	s.identity = identity
	s.mtx.Unlock()
	s.obs.Trigger(TopicSession)
}

func (s *Store) SessionStatus() (SessionStatus, string) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.sessionStatus, s.identity
}
