package executor

import (
	"time"
)

const (
	RPCTimeout = 5 * time.Second

	MethodPollCount      = "pollCount"
	MethodGetPoll        = "getPoll"
	MethodGetLeaderboard = "getLeaderboard"
	MethodCreatePoll     = "createPoll"
	MethodVote           = "vote"
	MethodResetAllPolls  = "resetAllPolls"

	// AlreadyVotedReason is the revert reason the ballot contract uses to
	// reject a duplicate vote.
	AlreadyVotedReason = "already voted"
)
