package session

import (
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/open-ballot/ballotboard/common"
	"github.com/open-ballot/ballotboard/executor"
	"github.com/open-ballot/ballotboard/logging"
	"github.com/open-ballot/ballotboard/metrics"
	"github.com/open-ballot/ballotboard/state"
)

// Wallet is the external wallet runtime the session consumes.
type Wallet interface {
	Available() bool
	CurrentAccount() (ethcommon.Address, *bind.TransactOpts, error)
	RequestAccount() (ethcommon.Address, *bind.TransactOpts, error)
	Watch(onChange func())
}

// Ledger is the slice of the gateway the session consumes.
type Ledger interface {
	SetSigner(addr ethcommon.Address, opts *bind.TransactOpts)
	HasSigner() bool
	SubmitReset() (executor.Pending, error)
}

type Refresher interface {
	RefreshAll() error
}

// Session tracks the active identity and re-binds the ledger gateway when
// it changes. An absent wallet runtime is a disabled capability, not a
// failure, and is reported once.
type Session struct {
	wallet        Wallet
	ledger        Ledger
	refresher     Refresher
	store         *state.Store
	metricService *metrics.MetricService

	mtx        sync.Mutex
	warnedOnce bool
}

func NewSession(wallet Wallet, ledger Ledger, refresher Refresher, store *state.Store,
	metricService *metrics.MetricService,
) *Session {
	s := &Session{
		wallet:        wallet,
		ledger:        ledger,
		refresher:     refresher,
		store:         store,
		metricService: metricService,
	}
	s.wallet.Watch(s.onIdentityChange)
	return s
}

// TryRestore discovers an already-granted identity on startup without
// prompting. Finding none leaves the session in NoIdentity.
func (s *Session) TryRestore() {
	if !s.wallet.Available() {
		s.disableOnce("wallet runtime absent, voting disabled")
		return
	}
	addr, opts, err := s.wallet.CurrentAccount()
	if err != nil {
		s.disableOnce("no granted identity found, voting disabled")
		return
	}
	s.bind(addr, opts)
}

// Connect requests an identity from the wallet. On denial the session stays
// in NoIdentity and the error is surfaced to the caller.
func (s *Session) Connect() error {
	s.store.SetSessionStatus(state.Connecting, "")
	addr, opts, err := s.wallet.RequestAccount()
	if err != nil {
		s.store.SetSessionStatus(state.NoIdentity, "")
		logging.Logger.Errorf("identity request failed, err=%s", err.Error())
		return errors.Wrap(err, "request identity")
	}
	s.bind(addr, opts)
	return nil
}

// ResetAllPolls submits the administrative reset and awaits finalization.
// Authorization is enforced by the ledger, not here.
func (s *Session) ResetAllPolls() error {
	if !s.ledger.HasSigner() {
		return common.ErrNotInitialized
	}
	pending, err := s.ledger.SubmitReset()
	if err != nil {
		return errors.Wrap(err, "submit reset")
	}
	if err := pending.Wait(); err != nil {
		return errors.Wrap(err, "await reset")
	}
	logging.Logger.Infof("all polls reset")

	if err := s.refresher.RefreshAll(); err != nil {
		logging.Logger.Errorf("refresh after reset failed, err=%s", err.Error())
	}
	return nil
}

// onIdentityChange re-derives the ledger binding for the new identity and
// refreshes both views. Drafts and other client state are untouched.
func (s *Session) onIdentityChange() {
	addr, opts, err := s.wallet.CurrentAccount()
	if err != nil {
		s.ledger.SetSigner(ethcommon.Address{}, nil)
		s.store.SetSessionStatus(state.NoIdentity, "")
		logging.Logger.Infof("active identity removed, voting disabled")
		return
	}
	s.metricService.IncIdentityChanges()
	s.bind(addr, opts)
}

func (s *Session) bind(addr ethcommon.Address, opts *bind.TransactOpts) {
	s.ledger.SetSigner(addr, opts)
	s.store.SetSessionStatus(state.Connected, addr.Hex())
	logging.Logger.Infof("ledger binding established for %s", addr.Hex())

	if err := s.refresher.RefreshAll(); err != nil {
		logging.Logger.Errorf("refresh after identity bind failed, err=%s", err.Error())
	}
}

func (s *Session) disableOnce(msg string) {
	s.store.SetSessionStatus(state.NoIdentity, "")
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.warnedOnce {
		logging.Logger.Infof(msg)
		s.warnedOnce = true
	}
}
