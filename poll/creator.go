package poll

import (
	"github.com/pkg/errors"

	"github.com/open-ballot/ballotboard/common"
	"github.com/open-ballot/ballotboard/logging"
	"github.com/open-ballot/ballotboard/metrics"
	"github.com/open-ballot/ballotboard/util"
)

// Creator drives the poll creation workflow: local validation, submission,
// finalization, draft reset and the dual refresh.
type Creator struct {
	ledger        Ledger
	refresher     Refresher
	metricService *metrics.MetricService
}

func NewCreator(ledger Ledger, refresher Refresher, metricService *metrics.MetricService) *Creator {
	return &Creator{
		ledger:        ledger,
		refresher:     refresher,
		metricService: metricService,
	}
}

// CreatePoll validates and submits the draft. On failure the draft is left
// intact so the user does not lose input; on success it is reset to two
// empty option slots.
func (c *Creator) CreatePoll(draft *Draft) error {
	options := util.FilterBlank(draft.Options)
	if len(options) < common.MinDraftOptions {
		return common.ErrInsufficientOptions
	}

	question := draft.Question
	pending, err := c.ledger.SubmitCreatePoll(question, options)
	if err != nil {
		c.metricService.IncCreateErr()
		return errors.Wrap(err, "submit poll creation")
	}
	if err := pending.Wait(); err != nil {
		c.metricService.IncCreateErr()
		return errors.Wrap(err, "await poll creation")
	}

	draft.Reset()
	c.metricService.IncPollsCreated()
	logging.Logger.Infof("poll created, question=%q, options=%d", question, len(options))

	if err := c.refresher.RefreshAll(); err != nil {
		logging.Logger.Errorf("refresh after poll creation failed, err=%s", err.Error())
	}
	return nil
}
