package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/open-ballot/ballotboard/config"
)

const (
	// Poll repository
	MetricPollsLoaded        = "polls_loaded"
	MetricPollsSkipped       = "polls_skipped_count"
	MetricPollLoadDuration   = "poll_load_duration"
	MetricPollLoadErr        = "poll_load_error_count"
	// Leaderboard builder
	MetricLeaderboardSize         = "leaderboard_size"
	MetricLeaderboardSkipped      = "leaderboard_skipped_count"
	MetricLeaderboardLoadDuration = "leaderboard_load_duration"
	MetricLeaderboardLoadErr      = "leaderboard_load_error_count"
	// Voting workflow
	MetricVotesSubmitted = "votes_submitted_count"
	MetricVoteErr        = "vote_error_count"
	MetricAlreadyVoted   = "already_voted_count"
	MetricVoteDuration   = "vote_duration"
	// Creation workflow
	MetricPollsCreated = "polls_created_count"
	MetricCreateErr    = "create_error_count"
	// Refresh
	MetricRefreshCount = "refresh_count"
	MetricRefreshErr   = "refresh_error_count"
	// Session
	MetricIdentityChanges = "identity_changes_count"
)

type MetricService struct {
	MetricsMap map[string]prometheus.Metric
	cfg        *config.Config
}

func NewMetricService(config *config.Config) *MetricService {
	ms := make(map[string]prometheus.Metric, 0)

	// Poll repository
	pollsLoadedMetric := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: MetricPollsLoaded,
		Help: "Valid polls returned by the last load",
	})
	ms[MetricPollsLoaded] = pollsLoadedMetric
	prometheus.MustRegister(pollsLoadedMetric)

	pollsSkippedMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricPollsSkipped,
		Help: "Poll slots skipped for fetch or validity failures",
	})
	ms[MetricPollsSkipped] = pollsSkippedMetric
	prometheus.MustRegister(pollsSkippedMetric)

	pollLoadDurationMetric := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: MetricPollLoadDuration,
		Help: "Duration of one full poll load",
	})
	ms[MetricPollLoadDuration] = pollLoadDurationMetric
	prometheus.MustRegister(pollLoadDurationMetric)

	pollLoadErrMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricPollLoadErr,
		Help: "Aggregate poll load failures",
	})
	ms[MetricPollLoadErr] = pollLoadErrMetric
	prometheus.MustRegister(pollLoadErrMetric)

	// Leaderboard builder
	leaderboardSizeMetric := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: MetricLeaderboardSize,
		Help: "Entries returned by the last leaderboard load",
	})
	ms[MetricLeaderboardSize] = leaderboardSizeMetric
	prometheus.MustRegister(leaderboardSizeMetric)

	leaderboardSkippedMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricLeaderboardSkipped,
		Help: "Ranked identifiers skipped for fetch or validity failures",
	})
	ms[MetricLeaderboardSkipped] = leaderboardSkippedMetric
	prometheus.MustRegister(leaderboardSkippedMetric)

	leaderboardLoadDurationMetric := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: MetricLeaderboardLoadDuration,
		Help: "Duration of one full leaderboard load",
	})
	ms[MetricLeaderboardLoadDuration] = leaderboardLoadDurationMetric
	prometheus.MustRegister(leaderboardLoadDurationMetric)

	leaderboardLoadErrMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricLeaderboardLoadErr,
		Help: "Aggregate leaderboard load failures",
	})
	ms[MetricLeaderboardLoadErr] = leaderboardLoadErrMetric
	prometheus.MustRegister(leaderboardLoadErrMetric)

	// Voting workflow
	votesSubmittedMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricVotesSubmitted,
		Help: "Votes finalized by the ledger",
	})
	ms[MetricVotesSubmitted] = votesSubmittedMetric
	prometheus.MustRegister(votesSubmittedMetric)

	voteErrMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricVoteErr,
		Help: "Vote workflow error count",
	})
	ms[MetricVoteErr] = voteErrMetric
	prometheus.MustRegister(voteErrMetric)

	alreadyVotedMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricAlreadyVoted,
		Help: "Votes rejected by the ledger as duplicates",
	})
	ms[MetricAlreadyVoted] = alreadyVotedMetric
	prometheus.MustRegister(alreadyVotedMetric)

	voteDurationMetric := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: MetricVoteDuration,
		Help: "Duration of one vote workflow from submit to finalization",
	})
	ms[MetricVoteDuration] = voteDurationMetric
	prometheus.MustRegister(voteDurationMetric)

	// Creation workflow
	pollsCreatedMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricPollsCreated,
		Help: "Polls created and finalized",
	})
	ms[MetricPollsCreated] = pollsCreatedMetric
	prometheus.MustRegister(pollsCreatedMetric)

	createErrMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricCreateErr,
		Help: "Creation workflow error count",
	})
	ms[MetricCreateErr] = createErrMetric
	prometheus.MustRegister(createErrMetric)

	// Refresh
	refreshCountMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricRefreshCount,
		Help: "Dual refresh invocations",
	})
	ms[MetricRefreshCount] = refreshCountMetric
	prometheus.MustRegister(refreshCountMetric)

	refreshErrMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricRefreshErr,
		Help: "Dual refresh invocations that reported an error",
	})
	ms[MetricRefreshErr] = refreshErrMetric
	prometheus.MustRegister(refreshErrMetric)

	// Session
	identityChangesMetric := prometheus.NewCounter(prometheus.CounterOpts{
		Name: MetricIdentityChanges,
		Help: "Identity re-binds triggered by wallet events",
	})
	ms[MetricIdentityChanges] = identityChangesMetric
	prometheus.MustRegister(identityChangesMetric)

	return &MetricService{
		MetricsMap: ms,
		cfg:        config,
	}
}

func (m *MetricService) Start() {
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(fmt.Sprintf(":%d", m.cfg.MetricsConfig.Port), nil)
	if err != nil {
		panic(err)
	}
}

// Poll repository
func (m *MetricService) SetPollsLoaded(count int) {
	m.MetricsMap[MetricPollsLoaded].(prometheus.Gauge).Set(float64(count))
}

func (m *MetricService) IncPollsSkipped() {
	m.MetricsMap[MetricPollsSkipped].(prometheus.Counter).Inc()
}

func (m *MetricService) SetPollLoadDuration(duration time.Duration) {
	m.MetricsMap[MetricPollLoadDuration].(prometheus.Histogram).Observe(duration.Seconds())
}

func (m *MetricService) IncPollLoadErr() {
	m.MetricsMap[MetricPollLoadErr].(prometheus.Counter).Inc()
}

// Leaderboard builder
func (m *MetricService) SetLeaderboardSize(count int) {
	m.MetricsMap[MetricLeaderboardSize].(prometheus.Gauge).Set(float64(count))
}

func (m *MetricService) IncLeaderboardSkipped() {
	m.MetricsMap[MetricLeaderboardSkipped].(prometheus.Counter).Inc()
}

func (m *MetricService) SetLeaderboardLoadDuration(duration time.Duration) {
	m.MetricsMap[MetricLeaderboardLoadDuration].(prometheus.Histogram).Observe(duration.Seconds())
}

func (m *MetricService) IncLeaderboardLoadErr() {
	m.MetricsMap[MetricLeaderboardLoadErr].(prometheus.Counter).Inc()
}

// Voting workflow
func (m *MetricService) IncVotesSubmitted() {
	m.MetricsMap[MetricVotesSubmitted].(prometheus.Counter).Inc()
}

func (m *MetricService) IncVoteErr() {
	m.MetricsMap[MetricVoteErr].(prometheus.Counter).Inc()
}

func (m *MetricService) IncAlreadyVoted() {
	m.MetricsMap[MetricAlreadyVoted].(prometheus.Counter).Inc()
}

func (m *MetricService) SetVoteDuration(duration time.Duration) {
	m.MetricsMap[MetricVoteDuration].(prometheus.Histogram).Observe(duration.Seconds())
}

// Creation workflow
func (m *MetricService) IncPollsCreated() {
	m.MetricsMap[MetricPollsCreated].(prometheus.Counter).Inc()
}

func (m *MetricService) IncCreateErr() {
	m.MetricsMap[MetricCreateErr].(prometheus.Counter).Inc()
}

// Refresh
func (m *MetricService) IncRefreshCount() {
	m.MetricsMap[MetricRefreshCount].(prometheus.Counter).Inc()
}

func (m *MetricService) IncRefreshErr() {
	m.MetricsMap[MetricRefreshErr].(prometheus.Counter).Inc()
}

// Session
func (m *MetricService) IncIdentityChanges() {
	m.MetricsMap[MetricIdentityChanges].(prometheus.Counter).Inc()
}
