package common

import (
	"time"

	"github.com/avast/retry-go/v4"
)

var (
	RetryAttemptNum = uint(5)
	RetryAttempts   = retry.Attempts(RetryAttemptNum)
	RetryDelay      = retry.Delay(time.Millisecond * 400)
	RetryErr        = retry.LastErrorOnly(true)
)

const (
	RetryInterval = 2 * time.Second

	// MinDraftOptions is the floor a poll draft may shrink to and the
	// minimum number of non-blank options required before submission.
	MinDraftOptions = 2
)
