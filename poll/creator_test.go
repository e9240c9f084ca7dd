package poll

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/open-ballot/ballotboard/common"
)

func TestCreatePollInsufficientOptions(t *testing.T) {
	ledger := &stubLedger{}
	refresher := &stubRefresher{}
	creator := NewCreator(ledger, refresher, testMetrics)

	draft := NewDraft()
	draft.Question = "Q"
	draft.Options = []string{"", "A"}

	err := creator.CreatePoll(draft)
	require.ErrorIs(t, err, common.ErrInsufficientOptions)
	require.Zero(t, ledger.createCalls, "ledger must not be contacted")
	require.Zero(t, refresher.calls)
	require.Equal(t, "Q", draft.Question)
	require.Equal(t, []string{"", "A"}, draft.Options)
}

func TestCreatePollSuccess(t *testing.T) {
	ledger := &stubLedger{}
	refresher := &stubRefresher{}
	creator := NewCreator(ledger, refresher, testMetrics)

	draft := NewDraft()
	draft.Question = "Best option?"
	draft.Options = []string{"A", " ", "B"}

	err := creator.CreatePoll(draft)
	require.NoError(t, err)
	require.Equal(t, 1, ledger.createCalls)
	require.Equal(t, "Best option?", ledger.createdQuestion)
	require.Equal(t, []string{"A", "B"}, ledger.createdOptions)
	require.Equal(t, 1, refresher.calls, "exactly one dual refresh")

	require.Empty(t, draft.Question)
	require.Equal(t, []string{"", ""}, draft.Options)
}

func TestCreatePollSubmitFailurePreservesDraft(t *testing.T) {
	ledger := &stubLedger{submitErr: fmt.Errorf("rejected")}
	refresher := &stubRefresher{}
	creator := NewCreator(ledger, refresher, testMetrics)

	draft := NewDraft()
	draft.Question = "Q"
	draft.Options = []string{"A", "B"}

	err := creator.CreatePoll(draft)
	require.Error(t, err)
	require.Equal(t, "Q", draft.Question)
	require.Equal(t, []string{"A", "B"}, draft.Options)
	require.Zero(t, refresher.calls)
}

func TestCreatePollFinalizationFailurePreservesDraft(t *testing.T) {
	ledger := &stubLedger{waitErr: fmt.Errorf("reverted")}
	refresher := &stubRefresher{}
	creator := NewCreator(ledger, refresher, testMetrics)

	draft := NewDraft()
	draft.Question = "Q"
	draft.Options = []string{"A", "B"}

	err := creator.CreatePoll(draft)
	require.Error(t, err)
	require.Equal(t, "Q", draft.Question)
	require.Zero(t, refresher.calls)
}

func TestDraftOptionFloor(t *testing.T) {
	draft := NewDraft()
	require.Len(t, draft.Options, 2)

	draft.RemoveOption(0)
	require.Len(t, draft.Options, 2, "floor of two options")

	draft.AddOption()
	require.Len(t, draft.Options, 3)

	draft.Options = []string{"A", "B", "C"}
	draft.RemoveOption(1)
	require.Equal(t, []string{"A", "C"}, draft.Options)
}
