package poll

import (
	"fmt"
	"math/big"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/open-ballot/ballotboard/config"
	"github.com/open-ballot/ballotboard/executor"
	"github.com/open-ballot/ballotboard/metrics"
)

var testMetrics = metrics.NewMetricService(&config.Config{})

type stubPending struct {
	err error
}

func (p stubPending) Wait() error {
	return p.err
}

type stubLedger struct {
	count     uint64
	countErr  error
	records   map[uint64]*executor.PollRecord
	recordErr map[uint64]error

	createCalls     int
	createdQuestion string
	createdOptions  []string
	submitErr       error
	waitErr         error
}

func (s *stubLedger) PollCount() (uint64, error) {
	return s.count, s.countErr
}

func (s *stubLedger) GetPoll(id uint64) (*executor.PollRecord, error) {
	if err, ok := s.recordErr[id]; ok {
		return nil, err
	}
	record, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("no poll %d", id)
	}
	return record, nil
}

func (s *stubLedger) SubmitCreatePoll(question string, options []string) (executor.Pending, error) {
	s.createCalls++
	s.createdQuestion = question
	s.createdOptions = options
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return stubPending{err: s.waitErr}, nil
}

type stubRefresher struct {
	calls int
	err   error
}

func (r *stubRefresher) RefreshAll() error {
	r.calls++
	return r.err
}

func validRecord(question string, options []string, counts []int64, total int64) *executor.PollRecord {
	voteCounts := make([]*big.Int, len(counts))
	for i, c := range counts {
		voteCounts[i] = big.NewInt(c)
	}
	return &executor.PollRecord{
		Question:   question,
		Options:    options,
		VoteCounts: voteCounts,
		TotalVotes: big.NewInt(total),
		Creator:    ethcommon.HexToAddress("0xabc"),
	}
}

func TestLoadPollsExcludesUnmaterializedSlots(t *testing.T) {
	ledger := &stubLedger{
		count: 2,
		records: map[uint64]*executor.PollRecord{
			0: validRecord("Q1", []string{"A", "B"}, []int64{3, 2}, 5),
			1: {Question: "", Options: []string{}, VoteCounts: []*big.Int{}, TotalVotes: big.NewInt(0)},
		},
	}
	repo := NewRepository(ledger, testMetrics)

	polls, err := repo.LoadPolls()
	require.NoError(t, err)
	require.Len(t, polls, 1)
	require.Equal(t, uint64(0), polls[0].Id)
	require.Equal(t, "Q1", polls[0].Question)
	require.Equal(t, []string{"A", "B"}, polls[0].Options)
	require.Equal(t, []uint64{3, 2}, polls[0].VoteCounts)
	require.Equal(t, uint64(5), polls[0].TotalVotes)
}

func TestLoadPollsSkipsFailedRecords(t *testing.T) {
	ledger := &stubLedger{
		count: 4,
		records: map[uint64]*executor.PollRecord{
			0: validRecord("Q0", []string{"A", "B"}, []int64{1, 0}, 1),
			2: validRecord("Q2", []string{"A", "B"}, []int64{0, 0}, 0),
			3: validRecord("Q3", []string{"A", "B"}, []int64{2, 2}, 4),
		},
		recordErr: map[uint64]error{
			2: fmt.Errorf("decode error"),
		},
	}
	repo := NewRepository(ledger, testMetrics)

	polls, err := repo.LoadPolls()
	require.NoError(t, err)
	require.Len(t, polls, 2)
	require.Equal(t, uint64(0), polls[0].Id)
	require.Equal(t, uint64(3), polls[1].Id)
}

func TestLoadPollsCountFailure(t *testing.T) {
	ledger := &stubLedger{
		countErr: fmt.Errorf("rpc unavailable"),
	}
	repo := NewRepository(ledger, testMetrics)

	polls, err := repo.LoadPolls()
	require.Error(t, err)
	require.Empty(t, polls)
}

func TestLoadPollsIdempotent(t *testing.T) {
	ledger := &stubLedger{
		count: 2,
		records: map[uint64]*executor.PollRecord{
			0: validRecord("Q0", []string{"A", "B"}, []int64{1, 0}, 1),
			1: validRecord("Q1", []string{"C", "D"}, []int64{0, 2}, 2),
		},
	}
	repo := NewRepository(ledger, testMetrics)

	first, err := repo.LoadPolls()
	require.NoError(t, err)
	second, err := repo.LoadPolls()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadPollsSkipsMalformedNumbers(t *testing.T) {
	bad := validRecord("Qbad", []string{"A", "B"}, []int64{1, 1}, 2)
	bad.TotalVotes = nil
	ledger := &stubLedger{
		count: 2,
		records: map[uint64]*executor.PollRecord{
			0: bad,
			1: validRecord("Qgood", []string{"A", "B"}, []int64{1, 1}, 2),
		},
	}
	repo := NewRepository(ledger, testMetrics)

	polls, err := repo.LoadPolls()
	require.NoError(t, err)
	require.Len(t, polls, 1)
	require.Equal(t, uint64(1), polls[0].Id)
}
