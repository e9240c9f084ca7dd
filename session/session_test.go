package session

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/open-ballot/ballotboard/common"
	"github.com/open-ballot/ballotboard/config"
	"github.com/open-ballot/ballotboard/executor"
	"github.com/open-ballot/ballotboard/metrics"
	"github.com/open-ballot/ballotboard/state"
)

var testMetrics = metrics.NewMetricService(&config.Config{})

type stubPending struct {
	err error
}

func (p stubPending) Wait() error {
	return p.err
}

type stubWallet struct {
	available  bool
	addr       ethcommon.Address
	currentErr error
	requestErr error
	onChange   func()
}

func (w *stubWallet) Available() bool {
	return w.available
}

func (w *stubWallet) CurrentAccount() (ethcommon.Address, *bind.TransactOpts, error) {
	if w.currentErr != nil {
		return ethcommon.Address{}, nil, w.currentErr
	}
	return w.addr, &bind.TransactOpts{From: w.addr}, nil
}

func (w *stubWallet) RequestAccount() (ethcommon.Address, *bind.TransactOpts, error) {
	if w.requestErr != nil {
		return ethcommon.Address{}, nil, w.requestErr
	}
	return w.addr, &bind.TransactOpts{From: w.addr}, nil
}

func (w *stubWallet) Watch(onChange func()) {
	w.onChange = onChange
}

type stubLedger struct {
	signer     *bind.TransactOpts
	addr       ethcommon.Address
	resetErr   error
	resetCalls int
}

func (l *stubLedger) SetSigner(addr ethcommon.Address, opts *bind.TransactOpts) {
	l.addr = addr
	l.signer = opts
}

func (l *stubLedger) HasSigner() bool {
	return l.signer != nil
}

func (l *stubLedger) SubmitReset() (executor.Pending, error) {
	l.resetCalls++
	if l.resetErr != nil {
		return nil, l.resetErr
	}
	return stubPending{}, nil
}

type stubRefresher struct {
	calls int
}

func (r *stubRefresher) RefreshAll() error {
	r.calls++
	return nil
}

func TestTryRestoreWithoutWalletRuntime(t *testing.T) {
	wallet := &stubWallet{available: false}
	ledger := &stubLedger{}
	refresher := &stubRefresher{}
	store := state.NewStore()
	s := NewSession(wallet, ledger, refresher, store, testMetrics)

	s.TryRestore()
	status, _ := store.SessionStatus()
	require.Equal(t, state.NoIdentity, status)
	require.False(t, ledger.HasSigner())
	require.Zero(t, refresher.calls)
}

func TestTryRestoreWithoutGrantedIdentity(t *testing.T) {
	wallet := &stubWallet{available: true, currentErr: common.ErrNoWallet}
	ledger := &stubLedger{}
	store := state.NewStore()
	s := NewSession(wallet, ledger, &stubRefresher{}, store, testMetrics)

	s.TryRestore()
	status, _ := store.SessionStatus()
	require.Equal(t, state.NoIdentity, status)
	require.False(t, ledger.HasSigner())
}

func TestTryRestoreFindsGrantedIdentity(t *testing.T) {
	addr := ethcommon.HexToAddress("0xabc")
	wallet := &stubWallet{available: true, addr: addr}
	ledger := &stubLedger{}
	refresher := &stubRefresher{}
	store := state.NewStore()
	s := NewSession(wallet, ledger, refresher, store, testMetrics)

	s.TryRestore()
	status, identity := store.SessionStatus()
	require.Equal(t, state.Connected, status)
	require.Equal(t, addr.Hex(), identity)
	require.True(t, ledger.HasSigner())
	require.Equal(t, 1, refresher.calls)
}

func TestConnectDeniedStaysDisconnected(t *testing.T) {
	wallet := &stubWallet{available: true, requestErr: fmt.Errorf("denied")}
	ledger := &stubLedger{}
	refresher := &stubRefresher{}
	store := state.NewStore()
	s := NewSession(wallet, ledger, refresher, store, testMetrics)

	err := s.Connect()
	require.Error(t, err)
	status, _ := store.SessionStatus()
	require.Equal(t, state.NoIdentity, status)
	require.False(t, ledger.HasSigner())
	require.Zero(t, refresher.calls)
}

func TestConnectBindsAndRefreshes(t *testing.T) {
	addr := ethcommon.HexToAddress("0xabc")
	wallet := &stubWallet{available: true, addr: addr}
	ledger := &stubLedger{}
	refresher := &stubRefresher{}
	store := state.NewStore()
	s := NewSession(wallet, ledger, refresher, store, testMetrics)

	err := s.Connect()
	require.NoError(t, err)
	status, identity := store.SessionStatus()
	require.Equal(t, state.Connected, status)
	require.Equal(t, addr.Hex(), identity)
	require.Equal(t, 1, refresher.calls)
}

func TestIdentityChangeRebindsWithoutConnecting(t *testing.T) {
	first := ethcommon.HexToAddress("0xabc")
	wallet := &stubWallet{available: true, addr: first}
	ledger := &stubLedger{}
	refresher := &stubRefresher{}
	store := state.NewStore()
	s := NewSession(wallet, ledger, refresher, store, testMetrics)
	require.NotNil(t, wallet.onChange, "session must watch the wallet")

	s.TryRestore()
	require.Equal(t, 1, refresher.calls)

	second := ethcommon.HexToAddress("0xdef")
	wallet.addr = second
	wallet.onChange()

	status, identity := store.SessionStatus()
	require.Equal(t, state.Connected, status)
	require.Equal(t, second.Hex(), identity)
	require.Equal(t, second, ledger.addr)
	require.Equal(t, 2, refresher.calls)
}

func TestIdentityRemovedDropsBinding(t *testing.T) {
	addr := ethcommon.HexToAddress("0xabc")
	wallet := &stubWallet{available: true, addr: addr}
	ledger := &stubLedger{}
	store := state.NewStore()
	s := NewSession(wallet, ledger, &stubRefresher{}, store, testMetrics)

	s.TryRestore()
	require.True(t, ledger.HasSigner())

	wallet.currentErr = common.ErrNoWallet
	wallet.onChange()

	status, _ := store.SessionStatus()
	require.Equal(t, state.NoIdentity, status)
	require.False(t, ledger.HasSigner())
}

func TestResetRequiresBinding(t *testing.T) {
	wallet := &stubWallet{available: true}
	ledger := &stubLedger{}
	s := NewSession(wallet, ledger, &stubRefresher{}, state.NewStore(), testMetrics)

	err := s.ResetAllPolls()
	require.ErrorIs(t, err, common.ErrNotInitialized)
	require.Zero(t, ledger.resetCalls)
}

func TestResetRefreshesAfterFinalization(t *testing.T) {
	addr := ethcommon.HexToAddress("0xabc")
	wallet := &stubWallet{available: true, addr: addr}
	ledger := &stubLedger{}
	refresher := &stubRefresher{}
	s := NewSession(wallet, ledger, refresher, state.NewStore(), testMetrics)

	s.TryRestore()
	require.Equal(t, 1, refresher.calls)

	err := s.ResetAllPolls()
	require.NoError(t, err)
	require.Equal(t, 1, ledger.resetCalls)
	require.Equal(t, 2, refresher.calls)
}
